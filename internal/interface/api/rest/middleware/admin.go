package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"customer-registry-api/internal/domain/user"
)

const MsgAdminRequired = "You need to be an admin in order to access this API"

// RequireAdmin must run after AuthMiddleware; it gates the admin-only user
// management routes.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(CtxUserRole) != user.RoleAdmin {
			c.AbortWithStatusJSON(
				http.StatusUnauthorized,
				gin.H{"errors": MsgAdminRequired},
			)
			return
		}

		c.Next()
	}
}
