package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"warehouse/internal/cache"
	"warehouse/internal/config"
	"warehouse/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

type stubLoader struct {
	perms map[string][]string
	calls int
}

func (s *stubLoader) GetPermissionsByRoleName(_ context.Context, role string) ([]string, error) {
	s.calls++
	return s.perms[role], nil
}

func signToken(t *testing.T, secret string, userID uuid.UUID, role string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  userID.String(),
		"role": role,
		"exp":  time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func newTestRouter(auth *Authenticator) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/open", auth.Authenticate(), func(c *gin.Context) {
		p, _ := CurrentPrincipal(c)
		c.String(http.StatusOK, p.Role)
	})
	r.POST("/approve", auth.RequirePermission("quality_control:approve"), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return r
}

func TestRequirePermission(t *testing.T) {
	loader := &stubLoader{perms: map[string][]string{
		"qc_manager":   {"quality_control:approve", "quality_control:read"},
		"qc_inspector": {"quality_control:read"},
	}}
	auth := NewAuthenticator(testSecret, loader, cache.NewMemoryPermissionCache(time.Minute), logger.Discard())
	router := newTestRouter(auth)

	cases := []struct {
		name   string
		header string
		want   int
	}{
		{"missing token", "", http.StatusUnauthorized},
		{"malformed header", "Token abc", http.StatusUnauthorized},
		{"bad signature", "Bearer " + signToken(t, "other", uuid.New(), "qc_manager"), http.StatusUnauthorized},
		{"lacks permission", "Bearer " + signToken(t, testSecret, uuid.New(), "qc_inspector"), http.StatusForbidden},
		{"allowed", "Bearer " + signToken(t, testSecret, uuid.New(), "qc_manager"), http.StatusNoContent},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/approve", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			assert.Equal(t, tc.want, w.Code)
		})
	}
}

func TestAuthenticateCachesPermissions(t *testing.T) {
	loader := &stubLoader{perms: map[string][]string{"viewer": {"inventory:read"}}}
	auth := NewAuthenticator(testSecret, loader, cache.NewMemoryPermissionCache(time.Minute), logger.Discard())
	router := newTestRouter(auth)
	token := signToken(t, testSecret, uuid.New(), "viewer")

	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/open", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "viewer", w.Body.String())
	}
	assert.Equal(t, 1, loader.calls)

	require.NoError(t, auth.ClearPermissionCache(context.Background(), "viewer"))
	_, err := auth.PermissionsForRole(context.Background(), "viewer")
	require.NoError(t, err)
	assert.Equal(t, 2, loader.calls)
}

func TestParseTokenRejectsMissingSubject(t *testing.T) {
	auth := NewAuthenticator(testSecret, &stubLoader{}, cache.NewMemoryPermissionCache(time.Minute), logger.Discard())
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"role": "admin"})
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, _, err = auth.ParseToken(signed)
	assert.Error(t, err)
}

func TestRequestIDAndRateLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)
	limiter := NewRateLimiter(config.RateLimitConfig{RequestsPerSecond: 1, Burst: 2})
	r := gin.New()
	r.Use(RequestID(), limiter.Middleware())
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	codes := make([]int, 0, 3)
	var firstID string
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
		codes = append(codes, w.Code)
		if i == 0 {
			firstID = w.Header().Get(RequestIDHeader)
		}
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
	assert.NotEmpty(t, firstID)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(RequestIDHeader, "given-id")
	r.ServeHTTP(w, req)
	assert.Equal(t, "given-id", w.Header().Get(RequestIDHeader))
}
