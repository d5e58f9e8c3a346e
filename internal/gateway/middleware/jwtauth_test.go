package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"workforce-system/internal/database/models"
	"workforce-system/internal/utils"
)

func newAuthRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/private", JWTAuth(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": c.GetInt64(ContextUserID)})
	})
	r.GET("/admin", JWTAuth(), RequireRoles(models.RoleAdmin, models.RoleManager), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func bearerToken(t *testing.T, role string, ttl time.Duration) string {
	t.Helper()
	token, _, err := utils.GenerateToken(42, "asha@example.com", role, ttl)
	require.NoError(t, err)
	return "Bearer " + token
}

func TestJWTAuthRejectsMissingHeader(t *testing.T) {
	r := newAuthRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/private", nil)
	req.Header.Set("Authorization", "Token abc")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuthRejectsExpiredToken(t *testing.T) {
	r := newAuthRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	req.Header.Set("Authorization", bearerToken(t, models.RoleEmployee, -time.Minute))
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuthAcceptsValidToken(t *testing.T) {
	r := newAuthRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	req.Header.Set("Authorization", bearerToken(t, models.RoleEmployee, time.Hour))
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "42")
}

func TestRequireRolesGatesByRole(t *testing.T) {
	r := newAuthRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", bearerToken(t, models.RoleEmployee, time.Hour))
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)

	for _, role := range []string{models.RoleAdmin, models.RoleManager} {
		w = httptest.NewRecorder()
		req = httptest.NewRequest(http.MethodGet, "/admin", nil)
		req.Header.Set("Authorization", bearerToken(t, role, time.Hour))
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	}
}
