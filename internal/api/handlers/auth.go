package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/dicapisar/taskboard/internal/api/middleware"
	"github.com/dicapisar/taskboard/internal/domain"
	"github.com/dicapisar/taskboard/internal/service"
)

type AuthHandler struct {
	authService *service.AuthService
	sessionTTL  time.Duration
}

func NewAuthHandler(authService *service.AuthService, sessionTTL time.Duration) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		sessionTTL:  sessionTTL,
	}
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginData struct {
	SessionID string `json:"session_id"`
	UserID    int    `json:"user_id"`
	UserName  string `json:"user_name"`
	Email     string `json:"email"`
	IsAdmin   bool   `json:"is_admin"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Email == "" || req.Password == "" {
		respondError(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	result, err := h.authService.Login(r.Context(), service.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			respondError(w, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	setSessionCookie(w, result.SessionID, h.sessionTTL)

	respondSuccess(w, http.StatusOK, "Login successful", LoginData{
		SessionID: result.SessionID,
		UserID:    result.User.ID,
		UserName:  result.User.Username,
		Email:     result.User.Email,
		IsAdmin:   result.User.IsAdmin(),
	})
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := middleware.SessionIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	if err := h.authService.Logout(r.Context(), sessionID); err != nil {
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	clearSessionCookie(w)

	respondSuccess(w, http.StatusOK, "Logout successful", nil)
}

// setSessionCookie issues the HTTP-only session cookie. The max-age
// matches the cache TTL so the cookie and the server-side entry expire
// together.
func setSessionCookie(w http.ResponseWriter, sessionID string, ttl time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    sessionID,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
