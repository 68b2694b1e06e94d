package auth

import (
	"errors"
	"fmt"

	"github.com/franciscosanchezn/store-rating-api/internal/models"
)

var (
	// ErrUnauthenticated means no verified identity is present
	ErrUnauthenticated = errors.New("unauthenticated")
	// ErrForbidden means the identity's role is not in the required set
	ErrForbidden = errors.New("forbidden")
)

// Authorize allows identity when its role is one of roles
func Authorize(identity *Identity, roles ...models.Role) error {
	if identity == nil || identity.ID == "" {
		return ErrUnauthenticated
	}
	for _, role := range roles {
		if identity.Role == role {
			return nil
		}
	}
	return fmt.Errorf("%w: role '%s' is not allowed", ErrForbidden, identity.Role)
}
