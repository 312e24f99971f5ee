package ports

import (
	"context"

	"github.com/habitaly/portal/internal/core/domain"
)

// IdentityProvider verifies a client-side assertion (an ID token or OAuth
// code) against an external identity source and returns the asserted
// profile.
type IdentityProvider interface {
	Name() string
	Verify(ctx context.Context, assertion string) (*domain.SocialProfile, error)
}

// Mailer delivers account mail. The session service only ever hands it a
// reset token; rendering and transport are the mailer's concern.
type Mailer interface {
	SendPasswordReset(ctx context.Context, email, resetToken string) error
}
