package rediscache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/dicapisar/taskboard/internal/domain"
	"github.com/redis/go-redis/v9"
)

const sessionKeyPrefix = "session:"

// SessionKey composes the cache key for a session id.
func SessionKey(sessionID string) string {
	return sessionKeyPrefix + sessionID
}

type cacheRepository struct {
	client     *redis.Client
	sessionTTL time.Duration
}

// NewCacheRepository creates a Redis-backed cache repository.
// sessionTTL is the fixed lifetime applied to session entries; every
// write restarts it, reads never extend it.
func NewCacheRepository(client *redis.Client, sessionTTL time.Duration) *cacheRepository {
	return &cacheRepository{
		client:     client,
		sessionTTL: sessionTTL,
	}
}

func (r *cacheRepository) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	if key == "" {
		return domain.ErrEmptyCacheKey
	}
	if value == nil {
		return domain.ErrEmptyCacheValue
	}

	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache: failed to marshal %q: %w", key, err)
	}

	return r.client.Set(ctx, key, data, ttl).Err()
}

// Get unmarshals the stored value into dest and reports whether the
// key was present. A missing or expired key is not an error.
func (r *cacheRepository) Get(ctx context.Context, key string, dest any) (bool, error) {
	if key == "" {
		return false, domain.ErrEmptyCacheKey
	}

	val, err := r.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	if err := json.Unmarshal([]byte(val), dest); err != nil {
		return false, fmt.Errorf("cache: failed to unmarshal %q: %w", key, err)
	}
	return true, nil
}

func (r *cacheRepository) Delete(ctx context.Context, key string) error {
	if key == "" {
		return domain.ErrEmptyCacheKey
	}
	return r.client.Del(ctx, key).Err()
}

func (r *cacheRepository) SetUserSessionData(ctx context.Context, sessionID string, session *domain.Session) error {
	if sessionID == "" {
		return domain.ErrEmptySessionID
	}
	if session == nil {
		return domain.ErrEmptyCacheValue
	}
	return r.Set(ctx, SessionKey(sessionID), session, r.sessionTTL)
}

func (r *cacheRepository) GetUserSessionData(ctx context.Context, sessionID string) (*domain.Session, error) {
	if sessionID == "" {
		return nil, domain.ErrEmptySessionID
	}

	var session domain.Session
	found, err := r.Get(ctx, SessionKey(sessionID), &session)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return &session, nil
}
