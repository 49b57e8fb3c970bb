package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swifttravel/travel-booking-backend/pkg/jwt"
)

func setupTestRouter(jwtService *jwt.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/admin/ping", RequireAdmin(jwtService, logrus.New()), func(c *gin.Context) {
		claims, ok := GetAdminClaims(c)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "claims missing"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"username": claims.Username, "is_admin": c.GetBool("is_admin")})
	})
	return router
}

func TestRequireAdmin_Success(t *testing.T) {
	jwtService := jwt.NewService("test-secret", time.Hour)
	router := setupTestRouter(jwtService)

	token, err := jwtService.GenerateToken("ops-admin")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin/ping", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "ops-admin")
	assert.Contains(t, w.Body.String(), `"is_admin":true`)
}

func setupOptionalAuthRouter(jwtService *jwt.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/bookings", IdentifyAdmin(jwtService), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"is_admin": c.GetBool("is_admin")})
	})
	return router
}

func TestIdentifyAdmin_ValidToken(t *testing.T) {
	jwtService := jwt.NewService("test-secret", time.Hour)
	router := setupOptionalAuthRouter(jwtService)

	token, err := jwtService.GenerateToken("counter-staff")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/bookings", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"is_admin":true`)
}

func TestIdentifyAdmin_AnonymousPassesThrough(t *testing.T) {
	router := setupOptionalAuthRouter(jwt.NewService("test-secret", time.Hour))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/bookings", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"is_admin":false`)
}

func TestIdentifyAdmin_BadTokenPassesThroughUnflagged(t *testing.T) {
	// An invalid token must not block a traveler booking, it just does
	// not grant the counter flag.
	router := setupOptionalAuthRouter(jwt.NewService("test-secret", time.Hour))

	token, err := jwt.NewService("other-secret", time.Hour).GenerateToken("counter-staff")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/bookings", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"is_admin":false`)
}

func TestRequireAdmin_MissingHeader(t *testing.T) {
	router := setupTestRouter(jwt.NewService("test-secret", time.Hour))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin/ping", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAdmin_MalformedHeader(t *testing.T) {
	router := setupTestRouter(jwt.NewService("test-secret", time.Hour))

	for _, header := range []string{"Bearer", "Bearer ", "Basic abc", "token-without-scheme"} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/admin/ping", nil)
		req.Header.Set("Authorization", header)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code, "header %q", header)
	}
}

func TestRequireAdmin_WrongSecret(t *testing.T) {
	router := setupTestRouter(jwt.NewService("test-secret", time.Hour))

	token, err := jwt.NewService("other-secret", time.Hour).GenerateToken("ops-admin")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin/ping", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAdmin_ExpiredToken(t *testing.T) {
	jwtService := jwt.NewService("test-secret", time.Hour)
	router := setupTestRouter(jwtService)

	token, err := jwt.NewService("test-secret", -time.Minute).GenerateToken("ops-admin")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin/ping", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
