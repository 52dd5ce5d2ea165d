package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/prashantkoirala465/Appointment-Management-System/internal/models"
	ucidentity "github.com/prashantkoirala465/Appointment-Management-System/internal/usecase/identity"
)

// MenuResolver attaches the caller's navigation entries to the request
// context before the target handler runs. No-ops for anonymous requests;
// a resolution failure is logged and leaves the list empty rather than
// failing the request.
func MenuResolver(resolver *ucidentity.ResolveMenu, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := ClaimsFrom(c)
		if claims == nil {
			c.Next()
			return
		}

		menus, err := resolver.Execute(c.Request.Context(), claims.UserID)
		if err != nil {
			log.Error().Err(err).
				Uint("user_id", claims.UserID).
				Msg("menu resolution failed")
			menus = []models.Menu{}
		}

		c.Set(ContextNav, menus)
		c.Next()
	}
}

// NavFrom returns the resolved navigation list, empty when nothing was
// attached.
func NavFrom(c *gin.Context) []models.Menu {
	if v, exists := c.Get(ContextNav); exists {
		if menus, ok := v.([]models.Menu); ok {
			return menus
		}
	}
	return []models.Menu{}
}
