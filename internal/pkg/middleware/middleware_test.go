package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gocatalog/internal/domain"
	"gocatalog/internal/pkg/cache"
	"gocatalog/internal/pkg/logger"
	"gocatalog/internal/pkg/middleware"
	"gocatalog/internal/pkg/token"
)

func okHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func newAuth(t *testing.T) (*token.Service, *cache.MemoryClient, func(http.HandlerFunc) http.HandlerFunc) {
	tok := token.NewService("segredo-de-teste", time.Hour)
	c := cache.NewMemoryClient()
	return tok, c, middleware.NewAuthMiddleware(tok, c, logger.Nop())
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	_, _, auth := newAuth(t)
	rec := httptest.NewRecorder()

	auth(okHandler)(rec, httptest.NewRequest(http.MethodGet, "/api/auth/me", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), `"category":"UNAUTHORIZED"`)
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	_, _, auth := newAuth(t)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer nao-e-um-jwt")

	auth(okHandler)(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddleware_ValidTokenSetsClaims(t *testing.T) {
	tok, _, auth := newAuth(t)
	tokenString, err := tok.GenerateToken(5, "admin", "ADMIN")
	require.NoError(t, err)

	var got middleware.UserClaims
	handler := auth(func(w http.ResponseWriter, r *http.Request) {
		got, _ = middleware.GetUserClaimsFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+tokenString)
	handler(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(5), got.UserID)
	assert.Equal(t, domain.RoleAdmin, got.Role)
	assert.NotEmpty(t, got.TokenID)
	assert.False(t, got.ExpiresAt.IsZero())
}

func TestAuthMiddleware_RevokedToken(t *testing.T) {
	tok, c, auth := newAuth(t)
	tokenString, err := tok.GenerateToken(5, "admin", "ADMIN")
	require.NoError(t, err)
	claims, err := tok.ValidateToken(tokenString)
	require.NoError(t, err)
	require.NoError(t, c.Set(context.Background(), token.RevocationKey(claims.ID), "1", time.Hour))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+tokenString)
	auth(okHandler)(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestPermissionMiddleware(t *testing.T) {
	tests := []struct {
		name   string
		claims *middleware.UserClaims
		want   int
	}{
		{"sem claims", nil, http.StatusUnauthorized},
		{"usuário comum", &middleware.UserClaims{UserID: 2, Role: domain.RoleUser}, http.StatusForbidden},
		{"admin", &middleware.UserClaims{UserID: 1, Role: domain.RoleAdmin}, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/categories", nil)
			if tt.claims != nil {
				req = req.WithContext(context.WithValue(req.Context(), middleware.UserClaimsKey, *tt.claims))
			}
			rec := httptest.NewRecorder()

			middleware.PermissionMiddleware(domain.RoleAdmin)(okHandler)(rec, req)

			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestRateLimiter_BlocksAfterLimit(t *testing.T) {
	c := cache.NewMemoryClient()
	handler := middleware.RateLimiter(c, 2, time.Minute, logger.Nop())(http.HandlerFunc(okHandler))

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
		req.RemoteAddr = "10.0.0.1:5555"
		handler.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)

	// Outro IP tem a sua própria janela.
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
	req.RemoteAddr = "10.0.0.2:5555"
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "1", rec.Header().Get("X-RateLimit-Remaining"))
}

func TestCORS(t *testing.T) {
	handler := middleware.CORS([]string{"http://localhost:4200"})(http.HandlerFunc(okHandler))

	t.Run("pre-flight", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodOptions, "/api/products", nil)
		req.Header.Set("Origin", "http://localhost:4200")
		req.Header.Set("Access-Control-Request-Method", "POST")
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, "http://localhost:4200", rec.Header().Get("Access-Control-Allow-Origin"))
		assert.Contains(t, rec.Header().Get("Access-Control-Allow-Headers"), "Authorization")
	})

	t.Run("origem desconhecida", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
		req.Header.Set("Origin", "http://evil.example")
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	})
}

func TestRequestLogger_SetsRequestID(t *testing.T) {
	var seen string
	handler := middleware.RequestLogger(logger.Nop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = middleware.RequestIDFromContext(r.Context())
		w.WriteHeader(http.StatusCreated)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/products", nil))

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.NotEmpty(t, seen)
	assert.Equal(t, seen, rec.Header().Get("X-Request-ID"))
}
