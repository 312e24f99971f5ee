package ports

import (
	"context"

	"github.com/habitaly/portal/internal/core/domain"
)

// UserRepository defines the interface for user identity persistence.
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	UpdatePassword(ctx context.Context, id, passwordHash string) error
}
