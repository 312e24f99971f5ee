package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/habitaly/portal/internal/core/domain"
)

const resetTokenTTL = 15 * time.Minute

// ResetTokenStore issues single-use password reset tokens backed by Redis.
// Key format: reset:<token> → user id, expiring after resetTokenTTL.
type ResetTokenStore struct {
	client *redis.Client
}

// NewResetTokenStore creates a ResetTokenStore wrapping the given Redis client.
func NewResetTokenStore(client *redis.Client) *ResetTokenStore {
	return &ResetTokenStore{client: client}
}

// Issue mints a fresh token for the user. Issuing again before the previous
// token expires simply creates a second valid token.
func (r *ResetTokenStore) Issue(ctx context.Context, userID string) (string, error) {
	token := uuid.NewString()
	if err := r.client.Set(ctx, r.key(token), userID, resetTokenTTL).Err(); err != nil {
		return "", fmt.Errorf("issue reset token: %w", err)
	}
	return token, nil
}

// Consume redeems a token exactly once and returns the user it was issued
// for. Unknown and expired tokens are indistinguishable.
func (r *ResetTokenStore) Consume(ctx context.Context, token string) (string, error) {
	userID, err := r.client.GetDel(ctx, r.key(token)).Result()
	if err == redis.Nil {
		return "", domain.ErrResetTokenInvalid
	}
	if err != nil {
		return "", fmt.Errorf("consume reset token: %w", err)
	}
	return userID, nil
}

func (r *ResetTokenStore) key(token string) string {
	return "reset:" + token
}
