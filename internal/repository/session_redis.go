package repository

import (
	"context"
	"encoding/json"
	"time"

	"cartridge-quiz/internal/cache"
	"cartridge-quiz/internal/domain"
	"cartridge-quiz/internal/quiz"

	"github.com/redis/go-redis/v9"
)

// RedisSessionRepository stores serialized sessions in Redis with a TTL, so
// abandoned funnels expire on their own and sessions survive restarts.
type RedisSessionRepository struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisSessionRepository creates a session store over a connected client.
func NewRedisSessionRepository(client *redis.Client, ttl time.Duration) *RedisSessionRepository {
	return &RedisSessionRepository{client: client, ttl: ttl}
}

// Get loads and decodes the session with the given id. A missing key maps
// to the domain's session-not-found error.
func (r *RedisSessionRepository) Get(ctx context.Context, id string) (*quiz.Session, error) {
	payload, err := r.client.Get(ctx, cache.SessionKey(id)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, domain.NewSessionNotFoundError(id)
		}
		return nil, domain.NewInternalError("Failed to load session", err)
	}

	session := &quiz.Session{}
	if err := json.Unmarshal([]byte(payload), session); err != nil {
		return nil, domain.NewInternalError("Failed to decode session", err)
	}
	return session, nil
}

// Save serializes the session and refreshes its TTL.
func (r *RedisSessionRepository) Save(ctx context.Context, session *quiz.Session) error {
	payload, err := json.Marshal(session)
	if err != nil {
		return domain.NewInternalError("Failed to encode session", err)
	}
	if err := r.client.Set(ctx, cache.SessionKey(session.ID()), string(payload), r.ttl).Err(); err != nil {
		return domain.NewInternalError("Failed to store session", err)
	}
	return nil
}

// Delete removes the session key; a missing key is not an error.
func (r *RedisSessionRepository) Delete(ctx context.Context, id string) error {
	if err := r.client.Del(ctx, cache.SessionKey(id)).Err(); err != nil {
		return domain.NewInternalError("Failed to delete session", err)
	}
	return nil
}
