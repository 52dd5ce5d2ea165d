package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/prashantkoirala465/Appointment-Management-System/internal/auth"
	"github.com/prashantkoirala465/Appointment-Management-System/internal/domain/identity"
	"github.com/prashantkoirala465/Appointment-Management-System/internal/httperr"
)

const (
	ContextClaims    = "claims"
	ContextNav       = "nav"
	ContextRequestID = "requestID"
)

// Fixed redirect targets for browser clients.
const (
	LoginPath  = "/login"
	DeniedPath = "/denied"
)

const apiPrefix = "/api/"

// IsAPIRequest tells machine clients from browsers by path convention:
// everything under /api/ gets status codes, everything else redirects.
func IsAPIRequest(c *gin.Context) bool {
	return strings.HasPrefix(c.Request.URL.Path, apiPrefix)
}

// Authenticate resolves the caller's identity, bearer token first, cookie
// session second, and stores the claims in the request context. It never
// aborts on an anonymous request; RequireAuth does that. A present but
// invalid bearer token is rejected outright, since such callers are API
// clients by definition.
func Authenticate(signer *auth.TokenSigner, sessionTTLMin int) gin.HandlerFunc {
	return func(c *gin.Context) {
		if raw, present := bearerToken(c); present {
			claims, err := signer.Parse(raw)
			if err != nil {
				httperr.Unauthorized(c, "invalid_token", "Token is invalid or expired.")
				c.Abort()
				return
			}
			c.Set(ContextClaims, claims)
			c.Next()
			return
		}

		if claims := auth.GetSessionClaims(c); claims != nil {
			// Sliding expiry: every authenticated hit re-arms the cookie.
			_ = auth.RefreshSession(c, sessionTTLMin*60)
			c.Set(ContextClaims, claims)
		}

		c.Next()
	}
}

// RequireAuth gates a route group on "any authenticated identity".
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if ClaimsFrom(c) == nil {
			if IsAPIRequest(c) {
				httperr.Unauthorized(c, "unauthorized", "Authentication required.")
			} else {
				c.Redirect(http.StatusTemporaryRedirect, LoginPath)
			}
			c.Abort()
			return
		}
		c.Next()
	}
}

func ClaimsFrom(c *gin.Context) *identity.Claims {
	if v, exists := c.Get(ContextClaims); exists {
		if claims, ok := v.(*identity.Claims); ok {
			return claims
		}
	}
	return nil
}

func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return "", false
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	return strings.TrimSpace(parts[1]), true
}
