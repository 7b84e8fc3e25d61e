package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/dicapisar/taskboard/internal/domain"
	"github.com/dicapisar/taskboard/internal/repository"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService struct {
	userRepo repository.UserRepository
	cache    *CacheService
}

func NewAuthService(userRepo repository.UserRepository, cache *CacheService) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		cache:    cache,
	}
}

type LoginInput struct {
	Email    string
	Password string
}

type LoginResult struct {
	SessionID string
	User      *domain.User
}

// Login verifies the credentials and, on success, mints a session id
// and writes the session snapshot to the cache. Unknown email and
// wrong password fail with the same error. One cache write, no
// durable-store writes.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	user, err := s.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	sessionID, err := GenerateSessionID()
	if err != nil {
		return nil, err
	}

	if err := s.cache.SetUserSessionData(ctx, sessionID, user.ToSession()); err != nil {
		return nil, err
	}

	return &LoginResult{
		SessionID: sessionID,
		User:      user,
	}, nil
}

// Logout removes the server-side session entry. The cookie is cleared
// by the handler.
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	return s.cache.DeleteSession(ctx, sessionID)
}

// GenerateSessionID returns an unguessable session token.
// 32 bytes = 256 bits of entropy.
func GenerateSessionID() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("session: failed to generate id: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
