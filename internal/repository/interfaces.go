package repository

import (
	"context"
	"time"

	"github.com/dicapisar/taskboard/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	ListAll(ctx context.Context) ([]*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id int) error
}

type TaskRepository interface {
	Create(ctx context.Context, task *domain.Task) error
	GetByIDAndOwner(ctx context.Context, id, ownerID int) (*domain.Task, error)
	ListByOwner(ctx context.Context, ownerID int) ([]*domain.Task, error)
	Update(ctx context.Context, task *domain.Task) error
	Delete(ctx context.Context, id int) error
}

// CacheRepository is the typed wrapper over the ephemeral store.
// Values are JSON-serialized; every write resets the key's TTL and
// reads never extend it. Get reports absence instead of an error so
// an expired key and a never-written key look the same.
type CacheRepository interface {
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Get(ctx context.Context, key string, dest any) (bool, error)
	Delete(ctx context.Context, key string) error

	SetUserSessionData(ctx context.Context, sessionID string, session *domain.Session) error
	GetUserSessionData(ctx context.Context, sessionID string) (*domain.Session, error)
}

type Repositories struct {
	User  UserRepository
	Task  TaskRepository
	Cache CacheRepository
}
