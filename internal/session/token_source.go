package session

import (
	"context"
	"time"

	"golang.org/x/oauth2"

	"github.com/stylegenie/stylegenie-go/internal/api"
)

// expirySkew is how close to expiry the TokenSource refreshes proactively.
const expirySkew = 30 * time.Second

// TokenSource adapts the session to oauth2.TokenSource so the credential
// plugs into anything that speaks oauth2 (oauth2.NewClient, piping a token
// to curl). Token returns the current access token, refreshing it first
// when its exp claim is within the skew window; a transient refresh
// failure falls back to the stale token and lets the server decide.
func (m *Manager) TokenSource(ctx context.Context) oauth2.TokenSource {
	return &tokenSource{ctx: ctx, m: m}
}

type tokenSource struct {
	ctx context.Context
	m   *Manager
}

func (ts *tokenSource) Token() (*oauth2.Token, error) {
	st := ts.m.State()
	if !st.IsAuthenticated() {
		return nil, api.NotAuthenticated()
	}

	access := st.Tokens.Access
	if exp, ok := TokenExpiry(access); ok && time.Until(exp) < expirySkew {
		refreshed, err := ts.m.RefreshAccessToken(ts.ctx)
		switch {
		case refreshed != "":
			access = refreshed
		case api.IsAuthFailure(err):
			return nil, err
		}
	}

	token := &oauth2.Token{
		AccessToken:  access,
		RefreshToken: st.Tokens.Refresh,
		TokenType:    "Bearer",
	}
	if exp, ok := TokenExpiry(access); ok {
		token.Expiry = exp
	}
	return token, nil
}
