package auth

import (
	"encoding/gob"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"github.com/prashantkoirala465/Appointment-Management-System/internal/domain/identity"
)

// Cookie-side serializer of identity.Claims for browser clients.

const sessionClaims = "LOGIN_CLAIMS"

func init() {
	gob.Register(identity.Claims{})
}

func SetSessionClaims(c *gin.Context, claims *identity.Claims, maxAgeSeconds int) error {
	s := sessions.Default(c)
	s.Set(sessionClaims, *claims)
	s.Options(sessions.Options{
		Path:     "/",
		MaxAge:   maxAgeSeconds,
		HttpOnly: true,
	})
	return s.Save()
}

func GetSessionClaims(c *gin.Context) *identity.Claims {
	s := sessions.Default(c)
	if obj := s.Get(sessionClaims); obj != nil {
		if claims, ok := obj.(identity.Claims); ok {
			return &claims
		}
	}
	return nil
}

// RefreshSession re-saves the cookie so the expiry slides on every
// authenticated request.
func RefreshSession(c *gin.Context, maxAgeSeconds int) error {
	s := sessions.Default(c)
	if s.Get(sessionClaims) == nil {
		return nil
	}
	s.Options(sessions.Options{
		Path:     "/",
		MaxAge:   maxAgeSeconds,
		HttpOnly: true,
	})
	return s.Save()
}

func ClearSession(c *gin.Context) error {
	s := sessions.Default(c)
	s.Clear()
	s.Options(sessions.Options{
		Path:   "/",
		MaxAge: -1,
	})
	return s.Save()
}
