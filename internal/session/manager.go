// Package session owns "who is logged in and with what credentials". The
// Manager is the single source of truth for the session triple, persists
// every mutation, and wraps authorized calls with a one-shot refresh-and-
// retry on 401. It is constructed once at startup and injected into every
// component that needs it.
package session

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/stylegenie/stylegenie-go/internal/api"
	"github.com/stylegenie/stylegenie-go/internal/domain/auth"
	"github.com/stylegenie/stylegenie-go/internal/state"
)

// ManagerOptions groups dependencies for Manager.
type ManagerOptions struct {
	API    *api.Client
	Store  state.Store
	Logger *slog.Logger
}

// Manager holds the current session state and executes the auth operations
// against the backend. All mutations are atomic and re-persisted as a side
// effect; concurrent refreshes collapse into one via singleflight.
type Manager struct {
	api    *api.Client
	store  state.Store
	logger *slog.Logger

	mu    sync.Mutex
	state auth.State

	refreshGroup singleflight.Group
}

// NewManager constructs a Manager and restores the persisted session.
// A missing, corrupt, or unreadable record degrades to logged out; it never
// fails construction.
func NewManager(ctx context.Context, opts ManagerOptions) (*Manager, error) {
	if opts.API == nil {
		return nil, fmt.Errorf("session: API client is required")
	}
	if opts.Store == nil {
		return nil, fmt.Errorf("session: Store is required")
	}
	if opts.Logger == nil {
		return nil, fmt.Errorf("session: Logger is required")
	}

	m := &Manager{
		api:    opts.API,
		store:  opts.Store,
		logger: opts.Logger,
	}

	restored, err := opts.Store.Load(ctx)
	if err != nil {
		opts.Logger.WarnContext(ctx, "restore session failed, starting logged out", "error", err)
		restored = auth.State{}
	}
	m.state = restored
	return m, nil
}

// State returns a copy of the current session triple.
func (m *Manager) State() auth.State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Role returns the effective role of the current session, or "" when
// logged out.
func (m *Manager) Role() auth.Role {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.Role
}

// IsAuthenticated reports whether a usable access token is present.
func (m *Manager) IsAuthenticated() bool {
	return m.State().IsAuthenticated()
}

// LoginPayload carries login credentials.
type LoginPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Tokens auth.TokenPair `json:"tokens"`
	User   auth.User      `json:"user"`
}

// Login authenticates against the role-scoped login endpoint and replaces
// the whole session state on success. The server's user.role wins over the
// role argument when it reports one: endpoints are role-namespaced in the
// URL, but the server stays authoritative about the true role. A failed
// login leaves any prior session untouched.
func (m *Manager) Login(ctx context.Context, role auth.Role, payload LoginPayload) (*auth.User, error) {
	if !role.Valid() {
		return nil, fmt.Errorf("session: invalid role %q", role)
	}

	var resp loginResponse
	err := m.api.Do(ctx, "/"+string(role)+"/auth/login/", api.RequestOptions{
		Method: http.MethodPost,
		Body:   payload,
	}, &resp)
	if err != nil {
		return nil, err
	}

	effectiveRole := role
	if resp.User.Role.Valid() {
		effectiveRole = resp.User.Role
	}

	user := resp.User
	tokens := resp.Tokens

	m.mu.Lock()
	m.state = auth.State{User: &user, Tokens: &tokens, Role: effectiveRole}
	m.persistLocked(ctx)
	m.mu.Unlock()

	m.logger.InfoContext(ctx, "logged in", "role", effectiveRole, "user", user.Email)
	return &user, nil
}

// RegisterPayload carries the registration form fields. Optional fields are
// omitted from the request body when empty.
type RegisterPayload struct {
	Email          string `json:"email"`
	Username       string `json:"username"`
	Password       string `json:"password"`
	Phone          string `json:"phone,omitempty"`
	FirstName      string `json:"first_name,omitempty"`
	LastName       string `json:"last_name,omitempty"`
	ProfilePicture string `json:"profile_picture,omitempty"`
}

// RegisterResult is the backend's registration response.
type RegisterResult struct {
	ID       string    `json:"id"`
	Email    string    `json:"email"`
	Username string    `json:"username"`
	Role     auth.Role `json:"role"`
	Status   string    `json:"status"`
}

// Register creates an account through the role-scoped registration
// endpoint. It never touches session state: callers log in explicitly if
// they want the new account authenticated.
func (m *Manager) Register(ctx context.Context, role auth.Role, payload RegisterPayload) (*RegisterResult, error) {
	if !role.Valid() {
		return nil, fmt.Errorf("session: invalid role %q", role)
	}

	var resp RegisterResult
	err := m.api.Do(ctx, "/"+string(role)+"/auth/register/", api.RequestOptions{
		Method: http.MethodPost,
		Body:   payload,
	}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

type refreshBody struct {
	Refresh string `json:"refresh"`
}

// Logout ends the session. When logged in it tells the backend to
// invalidate both tokens, but the local session is cleared unconditionally
// afterward: failing to reach the server must never leave the client
// believing it is still logged in. Logging out while already logged out is
// harmless and performs no network call.
func (m *Manager) Logout(ctx context.Context) {
	m.mu.Lock()
	tokens := m.state.Tokens
	role := m.state.Role
	m.mu.Unlock()

	if tokens == nil || !role.Valid() {
		m.ClearSession(ctx)
		return
	}

	err := m.api.Do(ctx, "/"+string(role)+"/auth/logout/", api.RequestOptions{
		Method: http.MethodPost,
		Token:  tokens.Access,
		Body:   refreshBody{Refresh: tokens.Refresh},
	}, nil)
	if err != nil {
		m.logger.WarnContext(ctx, "server-side logout failed, clearing local session anyway", "error", err)
	}

	m.ClearSession(ctx)
}

// RefreshAccessToken exchanges the stored refresh token for a new access
// token, patching only the access half of the pair. It returns "" with a
// nil error when there is nothing to refresh. A 401/403 from the refresh
// endpoint means no token in the pair remains usable, so the whole session
// is cleared; any other failure leaves the session intact so transient
// errors cannot destroy a valid login. Concurrent callers share one
// in-flight refresh.
func (m *Manager) RefreshAccessToken(ctx context.Context) (string, error) {
	v, err, _ := m.refreshGroup.Do("refresh", func() (any, error) {
		return m.doRefresh(ctx)
	})
	token, _ := v.(string)
	return token, err
}

func (m *Manager) doRefresh(ctx context.Context) (string, error) {
	m.mu.Lock()
	tokens := m.state.Tokens
	role := m.state.Role
	m.mu.Unlock()

	if tokens == nil || !role.Valid() {
		return "", nil
	}

	var resp struct {
		Access string `json:"access"`
	}
	err := m.api.Do(ctx, "/"+string(role)+"/auth/token/refresh/", api.RequestOptions{
		Method: http.MethodPost,
		Body:   refreshBody{Refresh: tokens.Refresh},
	}, &resp)
	if err != nil {
		if api.IsAuthFailure(err) {
			m.logger.InfoContext(ctx, "refresh token rejected, session is no longer valid")
			m.ClearSession(ctx)
		}
		return "", err
	}

	m.mu.Lock()
	// A logout may have raced the refresh; never resurrect a cleared session.
	if m.state.Tokens != nil {
		m.state.Tokens = &auth.TokenPair{Access: resp.Access, Refresh: m.state.Tokens.Refresh}
		m.persistLocked(ctx)
	}
	m.mu.Unlock()

	return resp.Access, nil
}

// Do executes an authorized request. It fails with a precondition error
// before any network activity when no access token is present. On a 401 it
// attempts exactly one token refresh and, only when that yields a new
// token, retries the original request once; otherwise the original 401 is
// returned. Bounded to one retry by construction. Any other error is
// propagated as is.
func (m *Manager) Do(ctx context.Context, path string, opts api.RequestOptions, out any) error {
	m.mu.Lock()
	access := ""
	if m.state.Tokens != nil {
		access = m.state.Tokens.Access
	}
	m.mu.Unlock()

	if access == "" {
		return api.NotAuthenticated()
	}

	// A raw body is a one-shot reader; buffer it so the 401 retry replays
	// the same bytes instead of an already-drained stream.
	var rawCopy []byte
	if opts.RawBody != nil {
		buffered, readErr := io.ReadAll(opts.RawBody)
		if readErr != nil {
			return fmt.Errorf("session: buffer request body: %w", readErr)
		}
		rawCopy = buffered
		opts.RawBody = bytes.NewReader(rawCopy)
	}

	opts.Token = access
	err := m.api.Do(ctx, path, opts, out)
	if err == nil || !api.IsStatus(err, http.StatusUnauthorized) {
		return err
	}

	newAccess, refreshErr := m.RefreshAccessToken(ctx)
	if newAccess == "" {
		if refreshErr != nil {
			m.logger.DebugContext(ctx, "refresh after 401 failed", "error", refreshErr)
		}
		return err
	}

	if rawCopy != nil {
		opts.RawBody = bytes.NewReader(rawCopy)
	}
	opts.Token = newAccess
	return m.api.Do(ctx, path, opts, out)
}

// UpdateUser replaces only the cached user record, leaving tokens and role
// untouched. Collaborators call this after fetching richer profile data.
func (m *Manager) UpdateUser(ctx context.Context, user auth.User) {
	m.mu.Lock()
	m.state.User = &user
	m.persistLocked(ctx)
	m.mu.Unlock()
}

// ClearSession resets the session to logged out and removes the persisted
// record.
func (m *Manager) ClearSession(ctx context.Context) {
	m.mu.Lock()
	m.state = auth.State{}
	m.persistLocked(ctx)
	m.mu.Unlock()
}

// persistLocked writes the current state through the store. Tokens absent
// deletes the record entirely so no partial state survives a logout. A
// failed write only matters at the next process start, so it is logged,
// not propagated.
func (m *Manager) persistLocked(ctx context.Context) {
	var err error
	if m.state.Tokens == nil {
		err = m.store.Clear(ctx)
	} else {
		err = m.store.Save(ctx, m.state)
	}
	if err != nil {
		m.logger.WarnContext(ctx, "persist session failed", "error", err)
	}
}
