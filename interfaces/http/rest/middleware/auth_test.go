package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"storefront-backend/pkg/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestAuthenticate(t *testing.T) {
	jwtService := auth.NewJWTService("test-secret", "storefront", time.Hour)

	okHandler := func(t *testing.T) (http.Handler, *auth.UserContext) {
		var seen auth.UserContext
		h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, err := auth.GetUserFromContext(r.Context())
			require.NoError(t, err)
			seen = *user
			w.WriteHeader(http.StatusOK)
		})
		return Authenticate(jwtService, zap.NewNop())(h), &seen
	}

	t.Run("valid bearer token passes with identity in context", func(t *testing.T) {
		token, err := jwtService.GenerateToken("u1", "asha@example.com", "admin")
		require.NoError(t, err)

		handler, seen := okHandler(t)
		req := httptest.NewRequest(http.MethodGet, "/api/v1/product/latest", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "u1", seen.UserID)
		assert.Equal(t, "admin", seen.Role)
	})

	t.Run("token can come from the auth cookie", func(t *testing.T) {
		token, err := jwtService.GenerateToken("u2", "ben@example.com", "user")
		require.NoError(t, err)

		handler, seen := okHandler(t)
		req := httptest.NewRequest(http.MethodGet, "/api/v1/order/my", nil)
		req.AddCookie(&http.Cookie{Name: "auth_token", Value: token})
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "u2", seen.UserID)
	})

	t.Run("missing token is unauthorized", func(t *testing.T) {
		handler, _ := okHandler(t)
		req := httptest.NewRequest(http.MethodGet, "/api/v1/order/my", nil)
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.JSONEq(t, `{"success":false,"message":"Missing authentication token"}`, rec.Body.String())
	})

	t.Run("garbage token is unauthorized", func(t *testing.T) {
		handler, _ := okHandler(t)
		req := httptest.NewRequest(http.MethodGet, "/api/v1/order/my", nil)
		req.Header.Set("Authorization", "Bearer garbage")
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("expired token gets a specific message", func(t *testing.T) {
		expired := auth.NewJWTService("test-secret", "storefront", -time.Minute)
		token, err := expired.GenerateToken("u1", "asha@example.com", "user")
		require.NoError(t, err)

		handler, _ := okHandler(t)
		req := httptest.NewRequest(http.MethodGet, "/api/v1/order/my", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), "expired")
	})
}

func TestAdminOnly(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := AdminOnly()(next)

	t.Run("admin passes", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/dashboard/stats", nil)
		ctx := auth.SetUserInContext(req.Context(), &auth.UserContext{UserID: "u1", Role: "admin"})
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req.WithContext(ctx))
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("customer is forbidden", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/dashboard/stats", nil)
		ctx := auth.SetUserInContext(req.Context(), &auth.UserContext{UserID: "u2", Role: "user"})
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req.WithContext(ctx))
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("missing identity is unauthorized", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/dashboard/stats", nil)
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestGetClientIP(t *testing.T) {
	t.Run("prefers the first forwarded address", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
		assert.Equal(t, "203.0.113.7", getClientIP(req))
	})

	t.Run("falls back to the remote address without port", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "192.0.2.4:54321"
		assert.Equal(t, "192.0.2.4", getClientIP(req))
	})
}
