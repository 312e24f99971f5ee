package ports

import (
	"context"

	"github.com/habitaly/portal/internal/core/domain"
)

// CountsRepository supplies the numeric navigation badges for a user.
// Navigation itself never counts; it only passes these values through.
type CountsRepository interface {
	BadgeCounts(ctx context.Context, userID string) (domain.BadgeCounts, error)
}
