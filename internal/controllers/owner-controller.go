package controllers

import (
	"net/http"

	"github.com/franciscosanchezn/store-rating-api/internal/services"
	"github.com/gin-gonic/gin"
)

// OwnerController serves the Store Owner dashboard
type OwnerController struct {
	dashboards services.DashboardService
}

// NewOwnerController creates a new instance of OwnerController
func NewOwnerController(dashboards services.DashboardService) *OwnerController {
	return &OwnerController{dashboards: dashboards}
}

// Dashboard godoc
// @Summary Store owner dashboard
// @Description Owned stores, ratings of the primary store and per-store averages
// @Tags store-owner
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.OwnerDashboard
// @Failure 401 {object} models.APIError
// @Failure 403 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Router /api/store-owner/dashboard [get]
func (oc *OwnerController) Dashboard(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}

	dashboard, err := oc.dashboards.OwnerDashboard(c.Request.Context(), identity.ID)
	if err != nil {
		respondError(c, err, "Server error fetching store owner data.", nil)
		return
	}
	c.JSON(http.StatusOK, dashboard)
}
