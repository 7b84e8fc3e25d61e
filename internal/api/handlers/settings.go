package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dicapisar/taskboard/internal/api/middleware"
	"github.com/dicapisar/taskboard/internal/domain"
	"github.com/dicapisar/taskboard/internal/service"
)

// SettingsHandler serves the account-management endpoints of the
// authenticated user.
type SettingsHandler struct {
	userService *service.UserService
}

func NewSettingsHandler(userService *service.UserService) *SettingsHandler {
	return &SettingsHandler{userService: userService}
}

type UpdateDetailsRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

type UpdatePasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

func (h *SettingsHandler) UpdateDetails(w http.ResponseWriter, r *http.Request) {
	sess, sessionID, ok := sessionInfo(r)
	if !ok {
		respondError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	var req UpdateDetailsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Username == "" || req.Email == "" {
		respondError(w, http.StatusBadRequest, "Username and email are required")
		return
	}

	_, err := h.userService.UpdateUserDetails(r.Context(), sessionID, sess.ID, req.Username, req.Email)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNoChanges):
			respondError(w, http.StatusBadRequest, "No changes detected in user details")
		case errors.Is(err, domain.ErrUsernameTaken):
			respondError(w, http.StatusConflict, "Username already exists")
		case errors.Is(err, domain.ErrEmailTaken):
			respondError(w, http.StatusConflict, "Email already exists")
		case errors.Is(err, domain.ErrUserNotFound):
			respondError(w, http.StatusNotFound, "User not found")
		default:
			respondError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	respondSuccess(w, http.StatusOK, "User details updated successfully", nil)
}

func (h *SettingsHandler) UpdatePassword(w http.ResponseWriter, r *http.Request) {
	sess, _, ok := sessionInfo(r)
	if !ok {
		respondError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	var req UpdatePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.OldPassword == "" || req.NewPassword == "" {
		respondError(w, http.StatusBadRequest, "Old password and new password are required")
		return
	}

	err := h.userService.UpdateUserPassword(r.Context(), sess.ID, req.OldPassword, req.NewPassword)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrSamePassword):
			respondError(w, http.StatusBadRequest, "Old password and new password cannot be the same")
		case errors.Is(err, domain.ErrPasswordMismatch):
			respondError(w, http.StatusBadRequest, "Old password is incorrect")
		case errors.Is(err, domain.ErrUserNotFound):
			respondError(w, http.StatusNotFound, "User not found")
		default:
			respondError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	respondSuccess(w, http.StatusOK, "Password updated successfully", nil)
}

func (h *SettingsHandler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	sess, sessionID, ok := sessionInfo(r)
	if !ok {
		respondError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	if err := h.userService.DeleteUser(r.Context(), sessionID, sess.ID); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			respondError(w, http.StatusNotFound, "User not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	clearSessionCookie(w)

	respondSuccess(w, http.StatusOK, "User deleted successfully", nil)
}

func sessionInfo(r *http.Request) (*domain.Session, string, bool) {
	sess, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		return nil, "", false
	}
	sessionID, ok := middleware.SessionIDFromContext(r.Context())
	if !ok {
		return nil, "", false
	}
	return sess, sessionID, true
}
