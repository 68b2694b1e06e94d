package controllers

import (
	"context"
	"net/http"

	"github.com/franciscosanchezn/store-rating-api/internal/models"
	"github.com/franciscosanchezn/store-rating-api/internal/services"
	"github.com/gin-gonic/gin"
)

// AdminController handles the System Administrator routes
type AdminController struct {
	users   services.UserService
	stores  services.StoreService
	ratings services.RatingService
}

// NewAdminController creates a new instance of AdminController
func NewAdminController(users services.UserService, stores services.StoreService, ratings services.RatingService) *AdminController {
	return &AdminController{users: users, stores: stores, ratings: ratings}
}

// ListUsers godoc
// @Summary List users
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param name query string false "Filter by name (substring)"
// @Param email query string false "Filter by email (substring)"
// @Param address query string false "Filter by address (substring)"
// @Param role query string false "Exact role"
// @Param sortBy query string false "name, email, address, role or average_store_rating"
// @Param sortOrder query string false "ASC or DESC"
// @Success 200 {array} models.UserListItem
// @Failure 400 {object} models.APIError
// @Failure 401 {object} models.APIError
// @Failure 403 {object} models.APIError
// @Router /api/admin/users [get]
func (ac *AdminController) ListUsers(c *gin.Context) {
	sort, err := services.ParseUserSort(c.Query("sortBy"), c.Query("sortOrder"))
	if err != nil {
		respondError(c, err, "Server error fetching users.", nil)
		return
	}

	filter := services.UserFilter{
		Name:    c.Query("name"),
		Email:   c.Query("email"),
		Address: c.Query("address"),
		Role:    c.Query("role"),
	}
	users, err := ac.users.ListUsers(c.Request.Context(), filter, sort)
	if err != nil {
		respondError(c, err, "Server error fetching users.", nil)
		return
	}
	c.JSON(http.StatusOK, users)
}

// CreateUser godoc
// @Summary Create a user with any role
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param user body services.RegisterInput true "New account"
// @Success 201 {object} models.UserCreatedResponse
// @Failure 400 {object} models.APIError
// @Failure 409 {object} models.APIError
// @Router /api/admin/users [post]
func (ac *AdminController) CreateUser(c *gin.Context) {
	var req services.RegisterInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadBody(c, err)
		return
	}

	user, err := ac.users.CreateUser(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Server error adding user.", nil)
		return
	}
	c.JSON(http.StatusCreated, models.UserCreatedResponse{
		Message: "User created successfully by admin.",
		User:    user.Summary(),
	})
}

// UpdateUser godoc
// @Summary Update a user
// @Description Partial update; only the provided fields change
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Param user body services.UpdateUserInput true "Fields to change"
// @Success 200 {object} models.MessageResponse
// @Failure 400 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Failure 409 {object} models.APIError
// @Router /api/admin/users/{id} [put]
func (ac *AdminController) UpdateUser(c *gin.Context) {
	var req services.UpdateUserInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadBody(c, err)
		return
	}

	if err := ac.users.UpdateUser(c.Request.Context(), c.Param("id"), req); err != nil {
		respondError(c, err, "Server error updating user.", nil)
		return
	}
	c.JSON(http.StatusOK, models.MessageResponse{Message: "User updated successfully by admin."})
}

// DeleteUser godoc
// @Summary Delete a user
// @Description Removes the user's ratings and releases stores they owned
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 200 {object} models.MessageResponse
// @Failure 404 {object} models.APIError
// @Router /api/admin/users/{id} [delete]
func (ac *AdminController) DeleteUser(c *gin.Context) {
	if err := ac.users.DeleteUser(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err, "Server error deleting user.", nil)
		return
	}
	c.JSON(http.StatusOK, models.MessageResponse{Message: "User deleted successfully by admin."})
}

// ListStores godoc
// @Summary List stores with owners
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param name query string false "Filter by name (substring)"
// @Param address query string false "Filter by address (substring)"
// @Param sortBy query string false "name, address or average_rating"
// @Param sortOrder query string false "ASC or DESC"
// @Success 200 {array} models.AdminStoreItem
// @Failure 400 {object} models.APIError
// @Router /api/admin/stores [get]
func (ac *AdminController) ListStores(c *gin.Context) {
	sort, err := services.ParseStoreSort(c.Query("sortBy"), c.Query("sortOrder"))
	if err != nil {
		respondError(c, err, "Server error fetching stores.", nil)
		return
	}

	filter := services.StoreFilter{Name: c.Query("name"), Address: c.Query("address")}
	stores, err := ac.stores.ListStoresForAdmin(c.Request.Context(), filter, sort)
	if err != nil {
		respondError(c, err, "Server error fetching stores.", nil)
		return
	}
	c.JSON(http.StatusOK, stores)
}

// CountUsers godoc
// @Summary Count users
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.CountResponse
// @Router /api/admin/users/count [get]
func (ac *AdminController) CountUsers(c *gin.Context) {
	respondCount(c, ac.users.CountUsers, "Server error fetching user count.")
}

// CountStores godoc
// @Summary Count stores
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.CountResponse
// @Router /api/admin/stores/count [get]
func (ac *AdminController) CountStores(c *gin.Context) {
	respondCount(c, ac.stores.CountStores, "Server error fetching store count.")
}

// CountRatings godoc
// @Summary Count ratings
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.CountResponse
// @Router /api/admin/ratings/count [get]
func (ac *AdminController) CountRatings(c *gin.Context) {
	respondCount(c, ac.ratings.CountRatings, "Server error fetching rating count.")
}

func respondCount(c *gin.Context, count func(context.Context) (int64, error), fallback string) {
	n, err := count(c.Request.Context())
	if err != nil {
		respondError(c, err, fallback, nil)
		return
	}
	c.JSON(http.StatusOK, models.CountResponse{Count: n})
}
