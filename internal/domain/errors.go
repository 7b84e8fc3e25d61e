package domain

import "errors"

// Authentication errors
var (
	// ErrInvalidCredentials covers both unknown email and wrong
	// password so login failures are indistinguishable.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthenticated    = errors.New("not authenticated")
)

// User errors
var (
	ErrUserNotFound     = errors.New("user not found")
	ErrUsernameTaken    = errors.New("username already exists")
	ErrEmailTaken       = errors.New("email already exists")
	ErrNoChanges        = errors.New("no changes detected in user details")
	ErrPasswordMismatch = errors.New("old password is incorrect")
	ErrSamePassword     = errors.New("new password must differ from the old one")
)

// Task errors
var (
	// ErrTaskNotFound is returned both when a task is absent and when
	// it belongs to another user; ownership mismatches must not reveal
	// that the task exists.
	ErrTaskNotFound   = errors.New("task not found")
	ErrEmptyTaskTitle = errors.New("task title is required")
	ErrInvalidStatus  = errors.New("invalid task status")
)

// Cache argument errors, raised before any I/O.
var (
	ErrEmptyCacheKey   = errors.New("cache key is required")
	ErrEmptyCacheValue = errors.New("cache value is required")
	ErrEmptySessionID  = errors.New("session id is required")
)
