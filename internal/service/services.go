package service

import (
	"github.com/dicapisar/taskboard/internal/config"
	"github.com/dicapisar/taskboard/internal/repository"
)

type Services struct {
	Auth  *AuthService
	Cache *CacheService
	User  *UserService
	Task  *TaskService
}

func NewServices(repos *repository.Repositories, cfg *config.Config) *Services {
	cache := NewCacheService(repos.Cache)
	return &Services{
		Auth:  NewAuthService(repos.User, cache),
		Cache: cache,
		User:  NewUserService(repos.User, cache, cfg.UserListTTL),
		Task:  NewTaskService(repos.Task),
	}
}
