package api

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestClient(t *testing.T, baseURL string) *Client {
	t.Helper()
	client, err := NewClient(ClientOptions{BaseURL: baseURL, Logger: testLogger()})
	require.NoError(t, err)
	return client
}

func TestNewClient_RequiredOptions(t *testing.T) {
	_, err := NewClient(ClientOptions{Logger: testLogger()})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "BaseURL is required")

	_, err = NewClient(ClientOptions{BaseURL: "http://localhost"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Logger is required")
}

func TestClient_Do_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/client/wardrobe/", r.URL.Path)
		assert.Empty(t, r.Header.Get("Authorization"))
		assert.NotEmpty(t, r.Header.Get("X-Request-ID"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"w-1","title":"Linen Shirt"}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	var out struct {
		ID    string `json:"id"`
		Title string `json:"title"`
	}
	err := client.Do(context.Background(), "/client/wardrobe/", RequestOptions{}, &out)
	require.NoError(t, err)
	assert.Equal(t, "w-1", out.ID)
	assert.Equal(t, "Linen Shirt", out.Title)
}

func TestClient_Do_SendsJSONBodyAndBearer(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "Bearer token-1", r.Header.Get("Authorization"))

		var payload map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "ava@example.com", payload["email"])
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	err := client.Do(context.Background(), "/client/auth/login/", RequestOptions{
		Method: http.MethodPost,
		Token:  "token-1",
		Body:   map[string]string{"email": "ava@example.com"},
	}, nil)
	require.NoError(t, err)
}

func TestClient_Do_ErrorEnvelope(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		wantMessage string
	}{
		{
			name:        "detail field becomes the message",
			status:      http.StatusBadRequest,
			body:        `{"detail":"invalid credentials"}`,
			wantMessage: "invalid credentials",
		},
		{
			name:        "object without detail falls back to status text",
			status:      http.StatusBadRequest,
			body:        `{"email":["already taken"]}`,
			wantMessage: "Bad Request",
		},
		{
			name:        "non-JSON body falls back to status text",
			status:      http.StatusBadGateway,
			body:        "upstream exploded",
			wantMessage: "Bad Gateway",
		},
		{
			name:        "empty body",
			status:      http.StatusInternalServerError,
			body:        "",
			wantMessage: "Internal Server Error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			client := newTestClient(t, server.URL)
			err := client.Do(context.Background(), "/x/", RequestOptions{}, nil)
			require.Error(t, err)

			apiErr, ok := AsError(err)
			require.True(t, ok)
			assert.Equal(t, KindHTTP, apiErr.Kind)
			assert.Equal(t, tt.status, apiErr.Status)
			assert.Equal(t, tt.wantMessage, apiErr.Message)
		})
	}
}

func TestClient_Do_ErrorBodyPreservedForFieldMapping(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"email":["user with this email already exists."]}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	err := client.Do(context.Background(), "/client/auth/register/", RequestOptions{Method: http.MethodPost}, nil)

	apiErr, ok := AsError(err)
	require.True(t, ok)

	body, ok := apiErr.Body.(map[string]any)
	require.True(t, ok)
	fieldErrors, ok := body["email"].([]any)
	require.True(t, ok)
	assert.Equal(t, "user with this email already exists.", fieldErrors[0])
}

func TestClient_Do_TransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	server.Close() // connection refused from here on

	client := newTestClient(t, server.URL)
	err := client.Do(context.Background(), "/x/", RequestOptions{}, nil)
	require.Error(t, err)
	assert.True(t, IsTransport(err))
	assert.False(t, IsStatus(err, http.StatusUnauthorized))
}

func TestClient_Do_RawBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		assert.Equal(t, "raw-payload", string(raw))
		assert.Empty(t, r.Header.Get("Content-Type"))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	err := client.Do(context.Background(), "/upload/", RequestOptions{
		Method:  http.MethodPost,
		RawBody: strings.NewReader("raw-payload"),
	}, nil)
	require.NoError(t, err)
}

func TestClient_Do_UnencodableBodyIsTaggedError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatal("no request should be sent")
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	err := client.Do(context.Background(), "/x/", RequestOptions{
		Method: http.MethodPost,
		Body:   map[string]any{"bad": make(chan int)},
	}, nil)
	require.Error(t, err)

	apiErr, ok := AsError(err)
	require.True(t, ok)
	assert.Equal(t, KindPrecondition, apiErr.Kind)
	assert.Contains(t, err.Error(), "encode request body")
}

func TestClient_Do_MalformedSuccessBodyIsTaggedError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("<html>not json</html>"))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	var out map[string]any
	err := client.Do(context.Background(), "/x/", RequestOptions{}, &out)
	require.Error(t, err)

	apiErr, ok := AsError(err)
	require.True(t, ok)
	assert.Equal(t, KindTransport, apiErr.Kind)
	assert.True(t, IsTransport(err))
}

func TestErrorPredicates(t *testing.T) {
	httpErr := NewHTTPError(http.StatusUnauthorized, map[string]any{"detail": "token expired"})
	assert.True(t, IsStatus(httpErr, http.StatusUnauthorized))
	assert.True(t, IsAuthFailure(httpErr))
	assert.False(t, IsTransport(httpErr))
	assert.Equal(t, "token expired", httpErr.Message)

	forbidden := NewHTTPError(http.StatusForbidden, nil)
	assert.True(t, IsAuthFailure(forbidden))

	serverErr := NewHTTPError(http.StatusInternalServerError, nil)
	assert.False(t, IsAuthFailure(serverErr))

	assert.True(t, IsNotAuthenticated(NotAuthenticated()))
	assert.False(t, IsNotAuthenticated(httpErr))
}
