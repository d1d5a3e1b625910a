// Package api is the HTTP transport for the StyleGenie backend. It owns
// request encoding, the bearer credential header, and the error envelope;
// everything above it works with typed values and tagged errors.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/net/publicsuffix"
)

const defaultTimeout = 30 * time.Second

// ClientOptions groups dependencies for Client.
type ClientOptions struct {
	// BaseURL is the backend origin, e.g. "https://stylegenie-backend.up.railway.app".
	// Trailing slashes are stripped.
	BaseURL string
	// Timeout bounds each request at the transport level. Zero means the
	// 30s default; negative disables the timeout.
	Timeout time.Duration
	// HTTPClient overrides the underlying client. Optional.
	HTTPClient *http.Client
	// Logger is required.
	Logger *slog.Logger
}

// Client executes JSON requests against the backend.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient constructs a Client.
func NewClient(opts ClientOptions) (*Client, error) {
	if strings.TrimSpace(opts.BaseURL) == "" {
		return nil, fmt.Errorf("api: BaseURL is required")
	}
	if opts.Logger == nil {
		return nil, fmt.Errorf("api: Logger is required")
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
		if err != nil {
			return nil, fmt.Errorf("api: new cookie jar: %w", err)
		}
		timeout := opts.Timeout
		switch {
		case timeout == 0:
			timeout = defaultTimeout
		case timeout < 0:
			timeout = 0
		}
		httpClient = &http.Client{Timeout: timeout, Jar: jar}
	}

	return &Client{
		baseURL:    strings.TrimRight(opts.BaseURL, "/"),
		httpClient: httpClient,
		logger:     opts.Logger,
	}, nil
}

// RequestOptions describes a single request. The zero value is a GET with
// no body and no credential.
type RequestOptions struct {
	// Method defaults to GET.
	Method string
	// Token, when set, is sent as a bearer credential.
	Token string
	// Body is JSON-encoded when non-nil. Mutually exclusive with RawBody.
	Body any
	// RawBody is sent verbatim with no Content-Type set by the client.
	RawBody io.Reader
	// Header carries extra headers, merged into the request.
	Header http.Header
}

// Do executes one request against path (which must start with "/") and
// decodes a JSON success body into out when out is non-nil.
//
// Failures are always *Error: KindTransport when the call itself failed
// or a success body could not be decoded, KindHTTP for any non-2xx
// status, KindPrecondition when the request could not be built or its
// body encoded. The HTTP error message comes from the backend's string
// "detail" field when it sends one.
func (c *Client) Do(ctx context.Context, path string, opts RequestOptions, out any) error {
	method := opts.Method
	if method == "" {
		method = http.MethodGet
	}

	var body io.Reader
	contentType := ""
	switch {
	case opts.RawBody != nil:
		body = opts.RawBody
	case opts.Body != nil:
		encoded, err := json.Marshal(opts.Body)
		if err != nil {
			return PreconditionError("encode request body", err)
		}
		body = bytes.NewReader(encoded)
		contentType = "application/json"
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return PreconditionError("build request", err)
	}
	for key, values := range opts.Header {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if opts.Token != "" {
		req.Header.Set("Authorization", "Bearer "+opts.Token)
	}
	req.Header.Set("X-Request-ID", uuid.NewString())

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.DebugContext(ctx, "request transport failure",
			"method", method, "path", path, "error", err)
		return TransportError(err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			c.logger.DebugContext(ctx, "close response body failed", "error", cerr)
		}
	}()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return TransportError(fmt.Errorf("read response body: %w", err))
	}

	c.logger.DebugContext(ctx, "request completed",
		"method", method, "path", path,
		"status", resp.StatusCode, "duration", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return NewHTTPError(resp.StatusCode, parseBody(raw))
	}

	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return DecodeError(err)
	}
	return nil
}

// parseBody decodes an error body as JSON when possible, falling back to
// the raw text so callers never lose the backend's message.
func parseBody(raw []byte) any {
	if len(raw) == 0 {
		return nil
	}
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return string(raw)
	}
	return parsed
}
