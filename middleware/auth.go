package middleware

import (
	"context"

	"github.com/gin-gonic/gin"

	apperrors "github.com/nomiram/weather-api/errors"
)

const (
	// AuthHeader is the request header carrying the caller's identity.
	AuthHeader = "Own-Auth-UserName"
	// UsernameKey is the gin context key the authenticated identity is
	// stored under.
	UsernameKey = "username"
)

// AuthGate decides whether an identity may query the API.
type AuthGate interface {
	Check(ctx context.Context, username string) (bool, error)
}

// AuthMiddleware guards routes behind the remote authorization service.
// A missing header, an explicit denial and an authorization service failure
// all produce the same 403 response: the gate fails closed and never reveals
// which of the three happened.
func AuthMiddleware(gate AuthGate) gin.HandlerFunc {
	return func(c *gin.Context) {
		username := c.GetHeader(AuthHeader)
		if username == "" {
			_ = c.Error(apperrors.AuthDenied())
			c.Abort()
			return
		}

		allowed, err := gate.Check(c.Request.Context(), username)
		if err != nil {
			_ = c.Error(err)
			c.Abort()
			return
		}
		if !allowed {
			_ = c.Error(apperrors.AuthDenied())
			c.Abort()
			return
		}

		c.Set(UsernameKey, username)
		c.Next()
	}
}
