package ports

import (
	"context"

	"github.com/habitaly/portal/internal/core/domain"
)

// SessionStore persists session snapshots durably. Save is epoch-guarded:
// the caller passes the epoch it observed when the operation started, and
// the store rejects the write with domain.ErrSessionSuperseded if a logout
// bumped the epoch in the meantime. This is what discards late completions
// of operations that were overtaken by a logout.
type SessionStore interface {
	// Epoch returns the current session epoch for the user. Missing keys
	// read as epoch zero.
	Epoch(ctx context.Context, userID string) (int64, error)
	// Save persists the snapshot iff the user's epoch still equals epoch.
	Save(ctx context.Context, snap *domain.SessionSnapshot, epoch int64) error
	// Load retrieves the snapshot for a token. Absent or malformed entries
	// yield domain.ErrSessionNotFound, never a decode error.
	Load(ctx context.Context, token string) (*domain.SessionSnapshot, error)
	// Delete removes the snapshot and bumps the user's epoch. Deleting an
	// absent snapshot is a no-op.
	Delete(ctx context.Context, token, userID string) error
}

// ResetTokenStore issues and consumes single-use password reset tokens.
type ResetTokenStore interface {
	Issue(ctx context.Context, userID string) (string, error)
	// Consume redeems a token and returns the user it was issued for.
	// Unknown or expired tokens yield domain.ErrResetTokenInvalid.
	Consume(ctx context.Context, token string) (string, error)
}
