package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"jabRental/domain"

	"github.com/redis/go-redis/v9"
)

type SessionRepository struct {
	client *redis.Client
}

func NewSessionRepository(client *redis.Client) *SessionRepository {
	return &SessionRepository{
		client: client,
	}
}

func sessionKey(sessionID string) string {
	return fmt.Sprintf("rental:session:%s", sessionID)
}

func (r *SessionRepository) Save(ctx context.Context, snapshot domain.SessionSnapshot, ttl time.Duration) error {
	jsonData, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("failed to marshal session snapshot: %w", err)
	}

	err = r.client.Set(ctx, sessionKey(snapshot.SessionID), jsonData, ttl).Err()
	if err != nil {
		return fmt.Errorf("failed to store session in Redis: %w", err)
	}

	return nil
}

func (r *SessionRepository) Load(ctx context.Context, sessionID string) (domain.SessionSnapshot, error) {
	val, err := r.client.Get(ctx, sessionKey(sessionID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domain.SessionSnapshot{}, domain.ErrSessionNotFound
		}
		return domain.SessionSnapshot{}, fmt.Errorf("failed to get session from Redis: %w", err)
	}

	var snapshot domain.SessionSnapshot
	if err := json.Unmarshal([]byte(val), &snapshot); err != nil {
		return domain.SessionSnapshot{}, fmt.Errorf("failed to unmarshal session snapshot: %w", err)
	}

	return snapshot, nil
}

// Touch extends the session expiration time
func (r *SessionRepository) Touch(ctx context.Context, sessionID string, ttl time.Duration) error {
	ok, err := r.client.Expire(ctx, sessionKey(sessionID), ttl).Result()
	if err != nil {
		return fmt.Errorf("failed to refresh session TTL: %w", err)
	}
	if !ok {
		return domain.ErrSessionNotFound
	}

	return nil
}

func (r *SessionRepository) Delete(ctx context.Context, sessionID string) error {
	if err := r.client.Del(ctx, sessionKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	return nil
}

func (r *SessionRepository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
