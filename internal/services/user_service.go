package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/franciscosanchezn/store-rating-api/internal/auth"
	"github.com/franciscosanchezn/store-rating-api/internal/models"
	"github.com/franciscosanchezn/store-rating-api/internal/validation"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RegisterInput is a new account, either self-registered or created by an administrator
type RegisterInput struct {
	Name     string  `json:"name" validate:"required,username"`
	Email    string  `json:"email" validate:"required,emailshape"`
	Address  *string `json:"address" validate:"omitempty,address"`
	Password string  `json:"password" validate:"required,password"`
	Role     string  `json:"role" validate:"omitempty,role"`
}

// UpdateUserInput is a partial update applied by an administrator; nil fields are left untouched
type UpdateUserInput struct {
	Name     *string `json:"name" validate:"omitempty,username"`
	Email    *string `json:"email" validate:"omitempty,emailshape"`
	Address  *string `json:"address" validate:"omitempty,address"`
	Role     *string `json:"role" validate:"omitempty,role"`
	Password *string `json:"password" validate:"omitempty,password"`
}

func (in UpdateUserInput) empty() bool {
	return in.Name == nil && in.Email == nil && in.Address == nil && in.Role == nil && in.Password == nil
}

// UserFilter narrows the administrator user listing. Text fields match substrings.
type UserFilter struct {
	Name    string
	Email   string
	Address string
	Role    string
}

// UserService provides account operations backed by the users table
type UserService interface {
	// Register creates a self-registered account. Role defaults to Normal User
	// and cannot be System Administrator.
	Register(ctx context.Context, in RegisterInput) (*models.User, error)
	// CreateUser creates an account with an explicit role (administrator only)
	CreateUser(ctx context.Context, in RegisterInput) (*models.User, error)
	// Authenticate checks credentials and returns the matching user
	Authenticate(ctx context.Context, email, password string) (*models.User, error)
	// ChangePassword replaces the caller's password after checking the current one
	ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error
	// UpdateUser applies an administrator's partial update
	UpdateUser(ctx context.Context, userID string, in UpdateUserInput) error
	// DeleteUser removes a user together with their ratings and releases their stores
	DeleteUser(ctx context.Context, userID string) error
	// GetUserByID retrieves a user by id
	GetUserByID(ctx context.Context, userID string) (*models.User, error)
	// ListUsers returns the filtered, sorted user directory
	ListUsers(ctx context.Context, filter UserFilter, sort Sort) ([]models.UserListItem, error)
	// CountUsers returns the number of users
	CountUsers(ctx context.Context) (int64, error)
}

type userService struct {
	db        *gorm.DB
	validator *validation.Validator
	log       logrus.FieldLogger
}

// NewUserService creates a new instance of UserService
func NewUserService(db *gorm.DB, validator *validation.Validator, log logrus.FieldLogger) UserService {
	return &userService{db: db, validator: validator, log: log}
}

// normalizeEmail is applied on every write and lookup so emails compare case-insensitively
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *userService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	if in.Role == "" {
		in.Role = string(models.RoleNormal)
	}
	if models.Role(in.Role) == models.RoleAdministrator {
		return nil, forbidden("Administrator accounts can only be created by an administrator.")
	}
	return s.create(ctx, in)
}

func (s *userService) CreateUser(ctx context.Context, in RegisterInput) (*models.User, error) {
	if in.Role == "" {
		return nil, newValidationError("Name, email, password, and role are required.", map[string]string{
			"role": "role is required.",
		})
	}
	return s.create(ctx, in)
}

func (s *userService) create(ctx context.Context, in RegisterInput) (*models.User, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = normalizeEmail(in.Email)
	if fields := s.validator.Struct(in); fields != nil {
		return nil, newValidationError("Invalid user data.", fields)
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		ID:           uuid.New().String(),
		Name:         in.Name,
		Email:        in.Email,
		Address:      emptyToNil(in.Address),
		PasswordHash: hash,
		Role:         models.Role(in.Role),
	}

	// The unique index on email decides; a skipped insert is a duplicate
	result := s.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(user)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return nil, conflict("User with that email already exists.")
		}
		return nil, fmt.Errorf("create user: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, conflict("User with that email already exists.")
	}

	s.log.WithFields(logrus.Fields{"user_id": user.ID, "role": user.Role}).Info("User created")
	return user, nil
}

func (s *userService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("email = ?", normalizeEmail(email)).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		auth.BurnPasswordCheck(password)
		s.log.WithField("email", email).Warn("Login attempt for unknown email")
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("find user by email: %w", err)
	}

	if !auth.CheckPassword(user.PasswordHash, password) {
		s.log.WithField("email", email).Warn("Login attempt with wrong password")
		return nil, ErrInvalidCredentials
	}
	return &user, nil
}

func (s *userService) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	if currentPassword == "" || newPassword == "" {
		return newValidationError("Current and new passwords are required.", nil)
	}
	if !validation.ValidPassword(newPassword) {
		return newValidationError("Invalid new password.", map[string]string{
			"newPassword": "Password must be 8-16 chars, incl. uppercase and special character.",
		})
	}

	user, err := s.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}
	if !auth.CheckPassword(user.PasswordHash, currentPassword) {
		s.log.WithField("user_id", userID).Warn("Incorrect current password")
		return fmt.Errorf("%w: incorrect current password", ErrInvalidCredentials)
	}

	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	err = s.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", userID).
		Updates(map[string]interface{}{"password": hash, "updated_at": time.Now()}).Error
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	return nil
}

func (s *userService) UpdateUser(ctx context.Context, userID string, in UpdateUserInput) error {
	if in.empty() {
		return newValidationError("No fields provided for update.", nil)
	}
	if in.Name != nil {
		trimmed := strings.TrimSpace(*in.Name)
		in.Name = &trimmed
	}
	if in.Email != nil {
		normalized := normalizeEmail(*in.Email)
		in.Email = &normalized
	}
	if fields := s.validator.Struct(in); fields != nil {
		return newValidationError("Invalid user data.", fields)
	}

	updates := map[string]interface{}{"updated_at": time.Now()}
	if in.Name != nil {
		updates["name"] = *in.Name
	}
	if in.Email != nil {
		updates["email"] = *in.Email
	}
	if in.Address != nil {
		// An empty address clears the optional field
		updates["address"] = emptyToNil(in.Address)
	}
	if in.Role != nil {
		updates["role"] = models.Role(*in.Role)
	}
	if in.Password != nil {
		hash, err := auth.HashPassword(*in.Password)
		if err != nil {
			return fmt.Errorf("hash password: %w", err)
		}
		updates["password"] = hash
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if in.Email != nil {
			var taken int64
			if err := tx.Model(&models.User{}).Where("email = ? AND id <> ?", *in.Email, userID).Count(&taken).Error; err != nil {
				return fmt.Errorf("check email: %w", err)
			}
			if taken > 0 {
				return conflict("User with this email already exists.")
			}
		}

		result := tx.Model(&models.User{}).Where("id = ?", userID).Updates(updates)
		if result.Error != nil {
			if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
				return conflict("User with this email already exists.")
			}
			return fmt.Errorf("update user: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return notFound("User not found.")
		}
		return nil
	})
}

func (s *userService) DeleteUser(ctx context.Context, userID string) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&models.Rating{}).Error; err != nil {
			return fmt.Errorf("delete user ratings: %w", err)
		}
		err := tx.Model(&models.Store{}).Where("owner_id = ?", userID).
			Updates(map[string]interface{}{"owner_id": nil, "updated_at": time.Now()}).Error
		if err != nil {
			return fmt.Errorf("release owned stores: %w", err)
		}

		result := tx.Where("id = ?", userID).Delete(&models.User{})
		if result.Error != nil {
			return fmt.Errorf("delete user: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return notFound("User not found.")
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.log.WithField("user_id", userID).Info("User deleted")
	return nil
}

func (s *userService) GetUserByID(ctx context.Context, userID string) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("id = ?", userID).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFound("User not found.")
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	return &user, nil
}

func (s *userService) ListUsers(ctx context.Context, filter UserFilter, sort Sort) ([]models.UserListItem, error) {
	q := s.db.WithContext(ctx).Table("users").
		Select(`users.id, users.name, users.email, users.address, users.role,
			CASE WHEN users.role = ? THEN COALESCE(AVG(r.rating), 0) ELSE NULL END AS average_store_rating`, models.RoleOwner).
		Joins("LEFT JOIN stores s ON s.owner_id = users.id").
		Joins("LEFT JOIN ratings r ON r.store_id = s.id")

	q = whereContains(q, "users.name", filter.Name)
	q = whereContains(q, "users.email", filter.Email)
	q = whereContains(q, "users.address", filter.Address)
	if role := strings.TrimSpace(filter.Role); role != "" {
		parsed, err := models.ParseRole(role)
		if err != nil {
			return nil, newValidationError("Invalid role specified.", map[string]string{"role": err.Error()})
		}
		q = q.Where("users.role = ?", parsed)
	}

	q = q.Group("users.id, users.name, users.email, users.address, users.role")
	q = userSortKeys.apply(q, sort)

	users := []models.UserListItem{}
	if err := q.Scan(&users).Error; err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

func (s *userService) CountUsers(ctx context.Context) (int64, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.User{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return count, nil
}

func emptyToNil(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
