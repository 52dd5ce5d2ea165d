package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/prashantkoirala465/Appointment-Management-System/internal/httperr"
)

// RequireRole gates a route group on "identity holding one of the given
// roles". Runs after Authenticate; an anonymous caller is treated as
// unauthenticated, a known caller without any of the roles as forbidden.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := ClaimsFrom(c)

		if claims == nil {
			if IsAPIRequest(c) {
				httperr.Unauthorized(c, "unauthorized", "Authentication required.")
			} else {
				c.Redirect(http.StatusTemporaryRedirect, LoginPath)
			}
			c.Abort()
			return
		}

		allowed := false
		for _, role := range roles {
			if claims.HasRole(role) {
				allowed = true
				break
			}
		}

		if !allowed {
			if IsAPIRequest(c) {
				httperr.Forbidden(c, "forbidden", "Insufficient role.")
			} else {
				c.Redirect(http.StatusTemporaryRedirect, DeniedPath)
			}
			c.Abort()
			return
		}

		c.Next()
	}
}
