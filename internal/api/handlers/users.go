package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dicapisar/taskboard/internal/domain"
	"github.com/dicapisar/taskboard/internal/service"
)

type UserHandler struct {
	userService *service.UserService
}

func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

type CreateUserRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type CreateUserData struct {
	UserID   int    `json:"user_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	IsAdmin  bool   `json:"is_admin"`
}

// Create registers a new account. This endpoint is public so signup
// works without a session.
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Username == "" || req.Email == "" || req.Password == "" {
		respondError(w, http.StatusBadRequest, "Username, email and password are required")
		return
	}

	user, err := h.userService.CreateUser(r.Context(), service.CreateUserInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUsernameTaken):
			respondError(w, http.StatusConflict, "Username already exists")
		case errors.Is(err, domain.ErrEmailTaken):
			respondError(w, http.StatusConflict, "Email already exists")
		default:
			respondError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	respondSuccess(w, http.StatusCreated, "User created successfully", CreateUserData{
		UserID:   user.ID,
		Username: user.Username,
		Email:    user.Email,
		IsAdmin:  user.IsAdmin(),
	})
}

// List returns all users, served from the cached listing when it is
// still live.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	listing, err := h.userService.ListUsers(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	respondSuccess(w, http.StatusOK, "Users retrieved successfully", listing)
}
