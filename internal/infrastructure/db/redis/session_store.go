package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/habitaly/portal/internal/core/domain"
)

const (
	sessionKeyPrefix = "session:token:"
	epochKeyPrefix   = "session:epoch:"
)

// SessionStore persists session snapshots in Redis.
//
// Each snapshot lives under session:token:<token> with the session TTL.
// session:epoch:<user_id> holds a counter that logout increments; Save is
// conditional on the epoch still matching the value the caller observed
// when its operation started, so a login completion that raced with a
// logout is rejected instead of written.
type SessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSessionStore creates a SessionStore wrapping the given Redis client.
// Snapshots expire after ttl.
func NewSessionStore(client *redis.Client, ttl time.Duration) *SessionStore {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &SessionStore{client: client, ttl: ttl}
}

func (s *SessionStore) Epoch(ctx context.Context, userID string) (int64, error) {
	n, err := s.client.Get(ctx, epochKey(userID)).Int64()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("session epoch: %w", err)
	}
	return n, nil
}

func (s *SessionStore) Save(ctx context.Context, snap *domain.SessionSnapshot, epoch int64) error {
	payload, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	guard := epochKey(snap.User.ID)
	txf := func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, guard).Int64()
		if err == redis.Nil {
			current = 0
		} else if err != nil {
			return fmt.Errorf("session epoch: %w", err)
		}
		if current != epoch {
			return domain.ErrSessionSuperseded
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, sessionKey(snap.Token), payload, s.ttl)
			return nil
		})
		return err
	}

	err = s.client.Watch(ctx, txf, guard)
	if err == redis.TxFailedErr {
		// The epoch key changed under the watch: a logout won the race.
		return domain.ErrSessionSuperseded
	}
	return err
}

func (s *SessionStore) Load(ctx context.Context, token string) (*domain.SessionSnapshot, error) {
	payload, err := s.client.Get(ctx, sessionKey(token)).Bytes()
	if err == redis.Nil {
		return nil, domain.ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}

	snap, err := decodeSnapshot(payload)
	if err != nil {
		// A corrupt snapshot reads as "no session"; drop it so the next
		// load does not hit the same entry.
		_ = s.client.Del(ctx, sessionKey(token)).Err()
		return nil, domain.ErrSessionNotFound
	}
	return snap, nil
}

// decodeSnapshot deserializes a stored snapshot. Anything that does not
// decode to a snapshot with a token and a user is malformed: Load treats
// it as "no session" rather than surfacing a decode error.
func decodeSnapshot(payload []byte) (*domain.SessionSnapshot, error) {
	var snap domain.SessionSnapshot
	if err := json.Unmarshal(payload, &snap); err != nil {
		return nil, err
	}
	if snap.Token == "" || snap.User.ID == "" {
		return nil, fmt.Errorf("snapshot missing token or user")
	}
	return &snap, nil
}

func (s *SessionStore) Delete(ctx context.Context, token, userID string) error {
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, sessionKey(token))
		pipe.Incr(ctx, epochKey(userID))
		return nil
	})
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func sessionKey(token string) string { return sessionKeyPrefix + token }
func epochKey(userID string) string  { return epochKeyPrefix + userID }
