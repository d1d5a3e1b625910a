package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/stylegenie/stylegenie-go/internal/api"
)

// AccountServiceOptions groups dependencies for AccountService.
type AccountServiceOptions struct {
	Session Session      // Required: authorized-request capability
	Logger  *slog.Logger // Optional: structured logger
}

// AccountService performs account maintenance for the logged-in user.
type AccountService struct {
	session Session
	logger  *slog.Logger
}

// NewAccountService constructs a new AccountService.
func NewAccountService(opts AccountServiceOptions) (*AccountService, error) {
	if opts.Session == nil {
		return nil, errors.New("Session is required")
	}

	var logger *slog.Logger
	if opts.Logger != nil {
		logger = opts.Logger.With("component", "account_service")
	}

	return &AccountService{session: opts.Session, logger: logger}, nil
}

// ChangePassword rotates the account password. The endpoint is role scoped,
// so the current session role picks the path.
func (s *AccountService) ChangePassword(ctx context.Context, oldPassword, newPassword string) error {
	if oldPassword == "" {
		return errors.New("old password is required")
	}
	if newPassword == "" {
		return errors.New("new password is required")
	}

	role := s.session.Role()
	if !role.Valid() {
		return api.NotAuthenticated()
	}

	body := map[string]string{
		"old_password": oldPassword,
		"new_password": newPassword,
	}
	path := fmt.Sprintf("/%s/auth/change-password/", role)
	if err := s.session.Do(ctx, path, api.RequestOptions{
		Method: http.MethodPost,
		Body:   body,
	}, nil); err != nil {
		return err
	}

	if s.logger != nil {
		s.logger.Info("password changed", "role", role)
	}
	return nil
}
