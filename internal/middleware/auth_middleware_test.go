package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/albatrip/travel-backend/pkg/jwt"
)

func newTestJWTService() *jwt.Service {
	return jwt.NewService("test-access-secret", "test-refresh-secret", 15*time.Minute, 24*time.Hour)
}

func newTestRouter(jwtService *jwt.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	router.GET("/protected", AuthMiddleware(jwtService), func(c *gin.Context) {
		user, _ := GetUserContext(c)
		c.JSON(http.StatusOK, gin.H{"user_id": user.UserID})
	})
	router.GET("/optional", OptionalAuthMiddleware(jwtService), func(c *gin.Context) {
		_, authenticated := GetUserContext(c)
		c.JSON(http.StatusOK, gin.H{"authenticated": authenticated})
	})
	router.GET("/admin", AuthMiddleware(jwtService), RequireAdmin(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	return router
}

func doRequest(t *testing.T, router *gin.Engine, path, authHeader string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	jwtService := newTestJWTService()
	router := newTestRouter(jwtService)

	t.Run("valid token passes", func(t *testing.T) {
		token, err := jwtService.GenerateAccessToken(uuid.New(), "user@example.com", "customer")
		require.NoError(t, err)
		w := doRequest(t, router, "/protected", "Bearer "+token)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("missing header rejected", func(t *testing.T) {
		w := doRequest(t, router, "/protected", "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("malformed header rejected", func(t *testing.T) {
		w := doRequest(t, router, "/protected", "Token abc")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("garbage token rejected", func(t *testing.T) {
		w := doRequest(t, router, "/protected", "Bearer not.a.jwt")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("refresh token not accepted as access token", func(t *testing.T) {
		refresh, err := jwtService.GenerateRefreshToken(uuid.New(), "user@example.com")
		require.NoError(t, err)
		w := doRequest(t, router, "/protected", "Bearer "+refresh)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestOptionalAuthMiddleware(t *testing.T) {
	jwtService := newTestJWTService()
	router := newTestRouter(jwtService)

	t.Run("anonymous request passes through", func(t *testing.T) {
		w := doRequest(t, router, "/optional", "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"authenticated":false`)
	})

	t.Run("valid token attaches identity", func(t *testing.T) {
		token, err := jwtService.GenerateAccessToken(uuid.New(), "user@example.com", "customer")
		require.NoError(t, err)
		w := doRequest(t, router, "/optional", "Bearer "+token)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"authenticated":true`)
	})

	t.Run("present but invalid token still rejected", func(t *testing.T) {
		w := doRequest(t, router, "/optional", "Bearer expired.or.garbage")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestRequireAdmin(t *testing.T) {
	jwtService := newTestJWTService()
	router := newTestRouter(jwtService)

	t.Run("customer forbidden", func(t *testing.T) {
		token, err := jwtService.GenerateAccessToken(uuid.New(), "user@example.com", "customer")
		require.NoError(t, err)
		w := doRequest(t, router, "/admin", "Bearer "+token)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("admin allowed", func(t *testing.T) {
		token, err := jwtService.GenerateAccessToken(uuid.New(), "admin@example.com", "admin")
		require.NoError(t, err)
		w := doRequest(t, router, "/admin", "Bearer "+token)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}
