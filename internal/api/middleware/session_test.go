package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dicapisar/taskboard/internal/api/middleware"
	"github.com/dicapisar/taskboard/internal/domain"
	"github.com/dicapisar/taskboard/internal/repository/rediscache"
	"github.com/dicapisar/taskboard/internal/service"
	"github.com/dicapisar/taskboard/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequireSession(t *testing.T) {
	testCache := testutil.NewTestCache(t, time.Hour)
	cache := service.NewCacheService(testCache.Repo)
	mw := middleware.NewSessionMiddleware(cache)
	ctx := context.Background()

	// The protected handler records what the middleware put on the
	// context.
	var gotSession *domain.Session
	var gotSessionID string
	handler := mw.RequireSession(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotSession, _ = middleware.SessionFromContext(r.Context())
		gotSessionID, _ = middleware.SessionIDFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	validSession := &domain.Session{ID: 7, Username: "alice", Email: "alice@example.com", IsAdmin: false}
	require.NoError(t, cache.SetUserSessionData(ctx, "valid-session", validSession))

	require.NoError(t, cache.SetUserSessionData(ctx, "revoked-session", validSession))
	require.NoError(t, cache.DeleteSession(ctx, "revoked-session"))

	// A payload that is valid JSON for some other shape still fails
	// closed.
	require.NoError(t, testCache.Client.Set(ctx, rediscache.SessionKey("garbled-session"), "not json", time.Hour).Err())

	tests := []struct {
		name       string
		cookie     *http.Cookie
		wantStatus int
	}{
		{
			name:       "no cookie",
			cookie:     nil,
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "empty cookie value",
			cookie:     &http.Cookie{Name: middleware.SessionCookieName, Value: ""},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "unknown session id",
			cookie:     &http.Cookie{Name: middleware.SessionCookieName, Value: "never-issued"},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "revoked session",
			cookie:     &http.Cookie{Name: middleware.SessionCookieName, Value: "revoked-session"},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "undecodable payload",
			cookie:     &http.Cookie{Name: middleware.SessionCookieName, Value: "garbled-session"},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "valid session",
			cookie:     &http.Cookie{Name: middleware.SessionCookieName, Value: "valid-session"},
			wantStatus: http.StatusNoContent,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotSession = nil
			gotSessionID = ""

			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tt.cookie != nil {
				req.AddCookie(tt.cookie)
			}

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)

			if tt.wantStatus == http.StatusNoContent {
				require.NotNil(t, gotSession)
				assert.Equal(t, 7, gotSession.ID)
				assert.Equal(t, "alice", gotSession.Username)
				assert.Equal(t, "valid-session", gotSessionID)
				return
			}

			// Rejections never reach the handler and always carry the
			// same JSON body.
			assert.Nil(t, gotSession)
			assert.JSONEq(t, `{"success":false,"message":"not authenticated"}`, rec.Body.String())
		})
	}
}
