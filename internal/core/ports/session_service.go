package ports

import (
	"context"

	"github.com/habitaly/portal/internal/core/domain"
)

// RegisterInput is the payload accepted by Register.
type RegisterInput struct {
	Name     string
	Email    string
	Phone    string
	Password string
}

// SessionService owns the session lifecycle: who is signed in, and every
// identity-changing operation. Registration deliberately does not establish
// a session.
type SessionService interface {
	CheckExistingSession(ctx context.Context, token string) (*domain.SessionSnapshot, error)
	Login(ctx context.Context, email, password string) (*domain.SessionSnapshot, error)
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)
	Logout(ctx context.Context, token string) error
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, resetToken, newPassword, confirmPassword string) error
	LoginWithGoogle(ctx context.Context, assertion string) (*domain.SessionSnapshot, error)
	LoginWithFacebook(ctx context.Context, assertion string) (*domain.SessionSnapshot, error)
}
