package middleware

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/dicapisar/taskboard/internal/domain"
	"github.com/dicapisar/taskboard/internal/service"
)

// SessionCookieName is the cookie carrying the opaque session id.
const SessionCookieName = "session_id"

// unexported, collision-proof context keys
type sessionContextKeyType struct{}
type sessionIDContextKeyType struct{}

var (
	sessionKey   = sessionContextKeyType{}
	sessionIDKey = sessionIDContextKeyType{}
)

// SessionFromContext extracts the authenticated session snapshot.
func SessionFromContext(ctx context.Context) (*domain.Session, bool) {
	sess, ok := ctx.Value(sessionKey).(*domain.Session)
	return sess, ok
}

// SessionIDFromContext extracts the session id of the current request.
func SessionIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(sessionIDKey).(string)
	return id, ok
}

type SessionMiddleware struct {
	cache *service.CacheService
}

func NewSessionMiddleware(cache *service.CacheService) *SessionMiddleware {
	return &SessionMiddleware{cache: cache}
}

// RequireSession validates the session cookie against the cache on
// every protected request. It is a pure cache read: the durable store
// is never touched and the entry's TTL is not extended. A missing
// cookie, a missing or expired cache entry, and an undecodable payload
// all fail the same way.
func (m *SessionMiddleware) RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(SessionCookieName)
		if err != nil || cookie.Value == "" {
			unauthorized(w)
			return
		}

		sess, err := m.cache.GetUserSessionData(r.Context(), cookie.Value)
		if err != nil {
			// Decode failures are treated as unauthenticated, not as
			// server errors.
			log.Printf("session lookup failed: %v", err)
			unauthorized(w)
			return
		}
		if sess == nil {
			unauthorized(w)
			return
		}

		ctx := context.WithValue(r.Context(), sessionKey, sess)
		ctx = context.WithValue(ctx, sessionIDKey, cookie.Value)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"success": false,
		"message": "not authenticated",
	})
}
