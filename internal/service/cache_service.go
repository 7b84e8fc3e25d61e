package service

import (
	"context"
	"time"

	"github.com/dicapisar/taskboard/internal/domain"
	"github.com/dicapisar/taskboard/internal/repository"
	"github.com/dicapisar/taskboard/internal/repository/rediscache"
)

// CacheService adds argument validation in front of the cache
// repository. Validation failures happen before any I/O, so a rejected
// call leaves no partial state behind.
type CacheService struct {
	cacheRepo repository.CacheRepository
}

func NewCacheService(cacheRepo repository.CacheRepository) *CacheService {
	return &CacheService{cacheRepo: cacheRepo}
}

func (s *CacheService) SetUserSessionData(ctx context.Context, sessionID string, session *domain.Session) error {
	if sessionID == "" {
		return domain.ErrEmptySessionID
	}
	if session == nil {
		return domain.ErrEmptyCacheValue
	}
	return s.cacheRepo.SetUserSessionData(ctx, sessionID, session)
}

// GetUserSessionData returns the cached session snapshot, or nil when
// the key is missing or expired. Absence is not an error.
func (s *CacheService) GetUserSessionData(ctx context.Context, sessionID string) (*domain.Session, error) {
	if sessionID == "" {
		return nil, domain.ErrEmptySessionID
	}
	return s.cacheRepo.GetUserSessionData(ctx, sessionID)
}

func (s *CacheService) DeleteSession(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return domain.ErrEmptySessionID
	}
	return s.cacheRepo.Delete(ctx, rediscache.SessionKey(sessionID))
}

func (s *CacheService) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	if key == "" {
		return domain.ErrEmptyCacheKey
	}
	if value == nil {
		return domain.ErrEmptyCacheValue
	}
	return s.cacheRepo.Set(ctx, key, value, ttl)
}

func (s *CacheService) Get(ctx context.Context, key string, dest any) (bool, error) {
	if key == "" {
		return false, domain.ErrEmptyCacheKey
	}
	return s.cacheRepo.Get(ctx, key, dest)
}

func (s *CacheService) Delete(ctx context.Context, key string) error {
	if key == "" {
		return domain.ErrEmptyCacheKey
	}
	return s.cacheRepo.Delete(ctx, key)
}
