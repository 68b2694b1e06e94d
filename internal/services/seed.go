package services

import (
	"context"
	"errors"

	"github.com/franciscosanchezn/store-rating-api/internal/models"
)

// SeedAdministrator creates an administrator account unless the email is
// already taken. It reports whether an account was created.
func SeedAdministrator(ctx context.Context, users UserService, name, email, password string) (bool, error) {
	_, err := users.CreateUser(ctx, RegisterInput{
		Name:     name,
		Email:    email,
		Password: password,
		Role:     string(models.RoleAdministrator),
	})
	if errors.Is(err, ErrConflict) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
