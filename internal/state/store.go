// Package state persists the session triple {user, tokens, role} as one
// atomic record. Stores degrade corrupt data to the logged-out zero state
// instead of failing: a damaged record must never block startup.
package state

import (
	"context"

	"github.com/stylegenie/stylegenie-go/internal/domain/auth"
)

// Store persists the session state. Save always writes the full triple;
// Clear removes the record entirely. Load returns the zero state (never an
// error) when the record is missing or unreadable as JSON.
type Store interface {
	Load(ctx context.Context) (auth.State, error)
	Save(ctx context.Context, s auth.State) error
	Clear(ctx context.Context) error
}
