package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/emisero8/backend-reserva-alojamiento-openlodge/errors"
	"github.com/emisero8/backend-reserva-alojamiento-openlodge/models"
	"github.com/emisero8/backend-reserva-alojamiento-openlodge/response"
	"github.com/emisero8/backend-reserva-alojamiento-openlodge/services"
)

// AuthMiddleware validates the bearer token and, when roles are given,
// requires the token's role to be one of them. The validated identity is
// stored in the context for handlers.
func AuthMiddleware(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c)
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		identity, err := services.ValidateToken(tokenString)
		if err != nil {
			response.FromError(c, err)
			c.Abort()
			return
		}

		if len(roles) > 0 {
			hasRole := false
			for _, role := range roles {
				if role == identity.Role {
					hasRole = true
					break
				}
			}
			if !hasRole {
				response.Forbidden(c)
				c.Abort()
				return
			}
		}

		c.Set("userEmail", identity.Email)
		c.Set("userRole", identity.Role)
		c.Next()
	}
}

// ActingEmail returns the authenticated email set by AuthMiddleware.
func ActingEmail(c *gin.Context) (string, bool) {
	email, exists := c.Get("userEmail")
	if !exists {
		return "", false
	}
	return email.(string), true
}

// ErrorHandler translates errors attached to the context into responses.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) > 0 {
			err := c.Errors.Last().Err
			if appErr := errors.GetAppError(err); appErr != nil {
				response.FromError(c, appErr)
				return
			}
			response.ServerError(c)
		}
	}
}
