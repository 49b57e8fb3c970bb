package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/swifttravel/travel-booking-backend/pkg/jwt"
)

// AdminContextKey is the key used to store the admin claims in Gin context
const AdminContextKey = "admin"

// RequireAdmin validates the bearer token on admin endpoints and marks
// the request as admin-originated for downstream handlers.
func RequireAdmin(jwtService *jwt.Service, logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "unauthorized",
				"message": "Authorization header is required",
			})
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" || strings.TrimSpace(parts[1]) == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "unauthorized",
				"message": "Invalid authorization header format. Expected: Bearer <token>",
			})
			c.Abort()
			return
		}

		claims, err := jwtService.ValidateToken(strings.TrimSpace(parts[1]))
		if err != nil || claims.Role != "admin" {
			logger.WithFields(logrus.Fields{
				"path": c.Request.URL.Path,
				"ip":   c.ClientIP(),
			}).Warn("Rejected admin token")
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "unauthorized",
				"message": "Invalid or expired token",
			})
			c.Abort()
			return
		}

		c.Set(AdminContextKey, claims)
		c.Set("is_admin", true)
		c.Next()
	}
}

// IdentifyAdmin marks the request as admin-originated when a valid admin
// bearer token is present, but never rejects. It sits on public endpoints
// such as booking creation, where counter staff authenticate and travelers
// do not.
func IdentifyAdmin(jwtService *jwt.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" || strings.TrimSpace(parts[1]) == "" {
			c.Next()
			return
		}

		claims, err := jwtService.ValidateToken(strings.TrimSpace(parts[1]))
		if err != nil || claims.Role != "admin" {
			c.Next()
			return
		}

		c.Set(AdminContextKey, claims)
		c.Set("is_admin", true)
		c.Next()
	}
}

// GetAdminClaims returns the admin claims set by RequireAdmin or
// IdentifyAdmin.
func GetAdminClaims(c *gin.Context) (*jwt.Claims, bool) {
	value, exists := c.Get(AdminContextKey)
	if !exists {
		return nil, false
	}
	claims, ok := value.(*jwt.Claims)
	return claims, ok
}
