package controllers

import (
	"errors"
	"net/http"

	"github.com/franciscosanchezn/store-rating-api/internal/auth"
	"github.com/franciscosanchezn/store-rating-api/internal/models"
	"github.com/franciscosanchezn/store-rating-api/internal/services"
	"github.com/gin-gonic/gin"
)

// LoginRequest is the body of POST /api/auth/login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UpdatePasswordRequest is the body of PUT /api/auth/profile/update-password
type UpdatePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// AuthController handles registration, login and password changes
type AuthController struct {
	userService services.UserService
	tokens      auth.TokenService
}

// NewAuthController creates a new instance of AuthController
func NewAuthController(userService services.UserService, tokens auth.TokenService) *AuthController {
	return &AuthController{
		userService: userService,
		tokens:      tokens,
	}
}

// Register godoc
// @Summary Register a user
// @Description Self-registration as Normal User (default) or Store Owner
// @Tags auth
// @Accept json
// @Produce json
// @Param user body services.RegisterInput true "New account"
// @Success 201 {object} models.MessageResponse
// @Failure 400 {object} models.APIError
// @Failure 403 {object} models.APIError
// @Failure 409 {object} models.APIError
// @Router /api/auth/register [post]
func (ac *AuthController) Register(c *gin.Context) {
	var req services.RegisterInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadBody(c, err)
		return
	}

	if _, err := ac.userService.Register(c.Request.Context(), req); err != nil {
		respondError(c, err, "Server error during registration.", nil)
		return
	}

	c.JSON(http.StatusCreated, models.MessageResponse{Message: "User registered successfully!"})
}

// Login godoc
// @Summary Log in
// @Description Exchange email and password for a session token
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body LoginRequest true "Credentials"
// @Success 200 {object} models.LoginResponse
// @Failure 400 {object} models.APIError
// @Failure 401 {object} models.APIError
// @Router /api/auth/login [post]
func (ac *AuthController) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadBody(c, err)
		return
	}
	if req.Email == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrValidationFailed, "Email and password are required."))
		return
	}

	user, err := ac.userService.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, models.NewAPIError(models.ErrInvalidCredentials, "Invalid credentials."))
			return
		}
		respondError(c, err, "Server error during login.", nil)
		return
	}

	token, _, err := ac.tokens.Issue(auth.Identity{
		ID:    user.ID,
		Email: user.Email,
		Name:  user.Name,
		Role:  user.Role,
	})
	if err != nil {
		respondError(c, err, "Server error during login.", nil)
		return
	}

	c.JSON(http.StatusOK, models.LoginResponse{
		Message: "Login successful!",
		Token:   token,
		User:    user.Summary(),
	})
}

// UpdatePassword godoc
// @Summary Change own password
// @Tags auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param passwords body UpdatePasswordRequest true "Current and new password"
// @Success 200 {object} models.MessageResponse
// @Failure 400 {object} models.APIError
// @Failure 401 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Router /api/auth/profile/update-password [put]
func (ac *AuthController) UpdatePassword(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}

	var req UpdatePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadBody(c, err)
		return
	}

	err := ac.userService.ChangePassword(c.Request.Context(), identity.ID, req.CurrentPassword, req.NewPassword)
	if errors.Is(err, services.ErrInvalidCredentials) {
		// The caller is authenticated; a wrong current password is bad input
		c.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrInvalidCredentials, "Incorrect current password."))
		return
	}
	if err != nil {
		respondError(c, err, "Server error updating password.", nil)
		return
	}

	c.JSON(http.StatusOK, models.MessageResponse{Message: "Password updated successfully!"})
}
