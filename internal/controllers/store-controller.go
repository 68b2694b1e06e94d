package controllers

import (
	"errors"
	"net/http"

	"github.com/franciscosanchezn/store-rating-api/internal/middleware"
	"github.com/franciscosanchezn/store-rating-api/internal/models"
	"github.com/franciscosanchezn/store-rating-api/internal/services"
	"github.com/gin-gonic/gin"
)

// StoreController handles the public store listing, store creation and ratings
type StoreController interface {
	// GetStores lists stores with averages and the caller's own rating
	GetStores(c *gin.Context)
	// CreateStore adds a store (administrator only)
	CreateStore(c *gin.Context)
	// SubmitRating records the caller's first rating for a store
	SubmitRating(c *gin.Context)
	// ModifyRating replaces the caller's rating for a store
	ModifyRating(c *gin.Context)
}

type storeController struct {
	stores  services.StoreService
	ratings services.RatingService
}

// NewStoreController creates a new instance of StoreController
func NewStoreController(stores services.StoreService, ratings services.RatingService) StoreController {
	return &storeController{stores: stores, ratings: ratings}
}

var ratingErrorCodes = errorCodes{
	services.ErrConflict: models.ErrRatingExists,
}

// GetStores godoc
// @Summary List stores
// @Description List stores with their average rating. With a token, user_rating holds the caller's rating.
// @Tags stores
// @Produce json
// @Param name query string false "Filter by name (substring, case-insensitive)"
// @Param address query string false "Filter by address (substring, case-insensitive)"
// @Param sortBy query string false "name, address or average_rating"
// @Param sortOrder query string false "ASC or DESC"
// @Success 200 {array} models.StoreListItem
// @Failure 400 {object} models.APIError
// @Failure 401 {object} models.APIError
// @Router /api/stores [get]
func (sc *storeController) GetStores(c *gin.Context) {
	sort, err := services.ParseStoreSort(c.Query("sortBy"), c.Query("sortOrder"))
	if err != nil {
		respondError(c, err, "Server error fetching stores.", nil)
		return
	}

	requesterID := ""
	if identity, ok := middleware.CurrentIdentity(c); ok {
		requesterID = identity.ID
	}

	filter := services.StoreFilter{Name: c.Query("name"), Address: c.Query("address")}
	stores, err := sc.stores.ListStores(c.Request.Context(), filter, sort, requesterID)
	if err != nil {
		respondError(c, err, "Server error fetching stores.", nil)
		return
	}
	c.JSON(http.StatusOK, stores)
}

// CreateStore godoc
// @Summary Add a store
// @Tags stores
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param store body services.CreateStoreInput true "Store"
// @Success 201 {object} models.StoreCreatedResponse
// @Failure 400 {object} models.APIError
// @Failure 401 {object} models.APIError
// @Failure 403 {object} models.APIError
// @Router /api/stores [post]
func (sc *storeController) CreateStore(c *gin.Context) {
	var req services.CreateStoreInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadBody(c, err)
		return
	}

	store, err := sc.stores.CreateStore(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Server error adding store.", nil)
		return
	}
	c.JSON(http.StatusCreated, models.StoreCreatedResponse{Message: "Store added successfully", Store: store})
}

// SubmitRating godoc
// @Summary Rate a store
// @Tags ratings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Store ID"
// @Param rating body services.RatingInput true "Rating from 1 to 5"
// @Success 201 {object} models.MessageResponse
// @Failure 400 {object} models.APIError
// @Failure 401 {object} models.APIError
// @Failure 403 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Failure 409 {object} models.APIError
// @Router /api/stores/{id}/rate [post]
func (sc *storeController) SubmitRating(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}

	var req services.RatingInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadBody(c, err)
		return
	}

	if err := sc.ratings.SubmitRating(c.Request.Context(), *identity, c.Param("id"), req); err != nil {
		respondError(c, err, "Server error submitting rating.", ratingErrorCodes)
		return
	}
	c.JSON(http.StatusCreated, models.MessageResponse{Message: "Rating submitted successfully."})
}

// ModifyRating godoc
// @Summary Change a store rating
// @Tags ratings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Store ID"
// @Param rating body services.RatingInput true "Rating from 1 to 5"
// @Success 200 {object} models.MessageResponse
// @Failure 400 {object} models.APIError
// @Failure 401 {object} models.APIError
// @Failure 403 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Router /api/stores/{id}/rate [put]
func (sc *storeController) ModifyRating(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}

	var req services.RatingInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadBody(c, err)
		return
	}

	err := sc.ratings.ModifyRating(c.Request.Context(), *identity, c.Param("id"), req)
	if err != nil {
		codes := ratingErrorCodes
		if errors.Is(err, services.ErrNoRating) {
			codes = errorCodes{services.ErrNotFound: models.ErrRatingNotFound}
		}
		respondError(c, err, "Server error modifying rating.", codes)
		return
	}
	c.JSON(http.StatusOK, models.MessageResponse{Message: "Rating modified successfully."})
}
