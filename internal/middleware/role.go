package middleware

import (
	"errors"
	"net/http"

	"github.com/franciscosanchezn/store-rating-api/internal/auth"
	"github.com/franciscosanchezn/store-rating-api/internal/models"
	"github.com/gin-gonic/gin"
)

// RequireRole is a middleware that checks if the user has one of the allowed roles.
// It must run after JWTAuth.
func RequireRole(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, _ := CurrentIdentity(c)

		err := auth.Authorize(identity, roles...)
		switch {
		case err == nil:
			c.Next()
		case errors.Is(err, auth.ErrUnauthenticated):
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				models.NewAPIError(models.ErrUnauthorized, "No token, authorization denied."))
		default:
			c.AbortWithStatusJSON(http.StatusForbidden,
				models.NewAPIError(models.ErrForbidden, "Forbidden: You do not have the required permissions."))
		}
	}
}
