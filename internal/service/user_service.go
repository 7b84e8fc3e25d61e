package service

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/dicapisar/taskboard/internal/domain"
	"github.com/dicapisar/taskboard/internal/repository"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserListCacheKey holds the memoized listing of all users. The entry
// is deleted, never patched, whenever any user row changes; the next
// ListUsers call repopulates it from the database.
const UserListCacheKey = "users:all"

type UserService struct {
	userRepo    repository.UserRepository
	cache       *CacheService
	userListTTL time.Duration
}

func NewUserService(userRepo repository.UserRepository, cache *CacheService, userListTTL time.Duration) *UserService {
	return &UserService{
		userRepo:    userRepo,
		cache:       cache,
		userListTTL: userListTTL,
	}
}

type CreateUserInput struct {
	Username string
	Email    string
	Password string
}

type UserSummary struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type UserListing struct {
	Users []UserSummary `json:"users"`
}

// CreateUser registers a new account with the student role. Username
// and email are checked for uniqueness before the insert; the schema's
// unique indexes remain as a backstop.
func (s *UserService) CreateUser(ctx context.Context, input CreateUserInput) (*domain.User, error) {
	if taken, err := s.isUsernameTaken(ctx, input.Username); err != nil {
		return nil, err
	} else if taken {
		return nil, domain.ErrUsernameTaken
	}

	if taken, err := s.isEmailTaken(ctx, input.Email); err != nil {
		return nil, err
	} else if taken {
		return nil, domain.ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: string(hash),
		IsActive:     true,
		RoleID:       domain.StudentRoleID,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.invalidateUserList(ctx)

	return user, nil
}

// ListUsers serves the cached listing when present, otherwise reads
// the database, repopulates the cache, and returns the fresh result.
func (s *UserService) ListUsers(ctx context.Context) (*UserListing, error) {
	var cached UserListing
	found, err := s.cache.Get(ctx, UserListCacheKey, &cached)
	if err != nil {
		return nil, err
	}
	if found {
		return &cached, nil
	}

	users, err := s.userRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	listing := &UserListing{Users: make([]UserSummary, 0, len(users))}
	for _, u := range users {
		listing.Users = append(listing.Users, UserSummary{
			ID:       u.ID,
			Username: u.Username,
			Email:    u.Email,
		})
	}

	if err := s.cache.Set(ctx, UserListCacheKey, listing, s.userListTTL); err != nil {
		return nil, err
	}

	return listing, nil
}

// UpdateUserDetails changes the username and email of the user and
// overwrites the live session snapshot so the change is visible
// immediately. This is the only path that actively refreshes a
// session.
func (s *UserService) UpdateUserDetails(ctx context.Context, sessionID string, userID int, username, email string) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}

	if user.Username == username && user.Email == email {
		return nil, domain.ErrNoChanges
	}

	if user.Username != username {
		if taken, err := s.isUsernameTaken(ctx, username); err != nil {
			return nil, err
		} else if taken {
			return nil, domain.ErrUsernameTaken
		}
	}

	if user.Email != email {
		if taken, err := s.isEmailTaken(ctx, email); err != nil {
			return nil, err
		} else if taken {
			return nil, domain.ErrEmailTaken
		}
	}

	user.Username = username
	user.Email = email

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	s.invalidateUserList(ctx)

	if err := s.cache.SetUserSessionData(ctx, sessionID, user.ToSession()); err != nil {
		return nil, err
	}

	return user, nil
}

// UpdateUserPassword replaces the password digest after verifying the
// old password against the stored hash. A mismatch leaves the durable
// store and the cache untouched. The session is not refreshed; no
// re-authentication is required after a password change.
func (s *UserService) UpdateUserPassword(ctx context.Context, userID int, oldPassword, newPassword string) error {
	if oldPassword == newPassword {
		return domain.ErrSamePassword
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrUserNotFound
		}
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(oldPassword)); err != nil {
		return domain.ErrPasswordMismatch
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user.PasswordHash = string(hash)
	if err := s.userRepo.Update(ctx, user); err != nil {
		return err
	}

	s.invalidateUserList(ctx)

	return nil
}

// DeleteUser removes the account, its cascaded tasks, and the live
// session entry.
func (s *UserService) DeleteUser(ctx context.Context, sessionID string, userID int) error {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrUserNotFound
		}
		return err
	}

	if err := s.userRepo.Delete(ctx, userID); err != nil {
		return err
	}

	if err := s.cache.DeleteSession(ctx, sessionID); err != nil {
		log.Printf("failed to delete session %q after account deletion: %v", sessionID, err)
	}

	s.invalidateUserList(ctx)

	return nil
}

func (s *UserService) isUsernameTaken(ctx context.Context, username string) (bool, error) {
	_, err := s.userRepo.GetByUsername(ctx, username)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	return false, err
}

func (s *UserService) isEmailTaken(ctx context.Context, email string) (bool, error) {
	_, err := s.userRepo.GetByEmail(ctx, email)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	return false, err
}

// invalidateUserList drops the memoized listing after a user mutation.
// A failed delete is logged and ignored: the durable store has already
// committed, there is no compensating rollback, and the stale entry
// expires with its TTL at worst.
func (s *UserService) invalidateUserList(ctx context.Context) {
	if err := s.cache.Delete(ctx, UserListCacheKey); err != nil {
		log.Printf("failed to invalidate %s: %v", UserListCacheKey, err)
	}
}
