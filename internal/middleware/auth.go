// internal/middleware/auth.go
package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/dzfactories/backend/internal/config"
	"github.com/dzfactories/backend/internal/utils"
)

// AuthRequired verifies the bearer credential and attaches the decoded
// identity to the request context. A missing, malformed or expired token
// all produce the same 401 so the client cannot tell which check failed.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.UnauthorizedResponse(c, "")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			logrus.WithField("path", c.Request.URL.Path).Warn("Rejected credential")
			utils.UnauthorizedResponse(c, "")
			c.Abort()
			return
		}

		claims, err := utils.ValidateJWT(parts[1])
		if err != nil {
			logrus.WithField("path", c.Request.URL.Path).Warn("Rejected credential")
			utils.UnauthorizedResponse(c, "")
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("user_email", claims.Email)
		c.Set("user_name", claims.Name)
		c.Set("user_picture", claims.Picture)
		c.Set("user_role", claims.Role)
		c.Next()
	}
}

// AdminRequired checks the authenticated identity against the configured
// admin allow-list. The credential itself is valid at this point, so a
// miss is 403, not 401.
func AdminRequired(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		email, exists := utils.GetUserEmailFromContext(c)
		if !exists || !cfg.IsAdminEmail(email) {
			logrus.WithFields(logrus.Fields{
				"path":  c.Request.URL.Path,
				"email": email,
			}).Warn("Admin access denied")
			utils.ForbiddenResponse(c, "")
			c.Abort()
			return
		}
		c.Next()
	}
}

// OptionalAuth attaches the identity when a valid token is present and
// silently continues otherwise.
func OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Next()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.Next()
			return
		}

		claims, err := utils.ValidateJWT(parts[1])
		if err != nil {
			c.Next()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("user_email", claims.Email)
		c.Set("user_role", claims.Role)
		c.Next()
	}
}
