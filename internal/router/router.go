package router

import (
	"net/http"
	"time"

	"github.com/franciscosanchezn/store-rating-api/internal/auth"
	"github.com/franciscosanchezn/store-rating-api/internal/controllers"
	"github.com/franciscosanchezn/store-rating-api/internal/middleware"
	"github.com/franciscosanchezn/store-rating-api/internal/models"
	"github.com/franciscosanchezn/store-rating-api/internal/services"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Services are the dependencies the HTTP layer is built from
type Services struct {
	Tokens     auth.TokenService
	Users      services.UserService
	Stores     services.StoreService
	Ratings    services.RatingService
	Dashboards services.DashboardService
}

// Register wires routes and middleware.
func Register(router *gin.Engine, s Services, allowedOrigins []string) {
	router.Use(middleware.CORS(allowedOrigins))

	authController := controllers.NewAuthController(s.Users, s.Tokens)
	storeController := controllers.NewStoreController(s.Stores, s.Ratings)
	adminController := controllers.NewAdminController(s.Users, s.Stores, s.Ratings)
	ownerController := controllers.NewOwnerController(s.Dashboards)

	router.GET("/health", healthCheckHandler)

	requireAuth := middleware.JWTAuth(s.Tokens)

	api := router.Group("/api")
	{
		authApi := api.Group("/auth")
		{
			authApi.POST("/register", authController.Register)
			authApi.POST("/login", authController.Login)
			authApi.PUT("/profile/update-password", requireAuth, authController.UpdatePassword)
		}

		storesApi := api.Group("/stores")
		{
			storesApi.GET("", middleware.OptionalAuth(s.Tokens), storeController.GetStores)
			storesApi.POST("", requireAuth, middleware.RequireRole(models.RoleAdministrator), storeController.CreateStore)

			ratingApi := storesApi.Group("/:id/rate", requireAuth, middleware.RequireRole(models.RoleNormal))
			ratingApi.POST("", storeController.SubmitRating)
			ratingApi.PUT("", storeController.ModifyRating)
		}

		adminApi := api.Group("/admin", requireAuth, middleware.RequireRole(models.RoleAdministrator))
		{
			adminApi.GET("/users", adminController.ListUsers)
			adminApi.POST("/users", adminController.CreateUser)
			adminApi.GET("/users/count", adminController.CountUsers)
			adminApi.PUT("/users/:id", adminController.UpdateUser)
			adminApi.DELETE("/users/:id", adminController.DeleteUser)
			adminApi.GET("/stores", adminController.ListStores)
			adminApi.GET("/stores/count", adminController.CountStores)
			adminApi.GET("/ratings/count", adminController.CountRatings)
		}

		ownerApi := api.Group("/store-owner", requireAuth, middleware.RequireRole(models.RoleOwner))
		ownerApi.GET("/dashboard", ownerController.Dashboard)
	}

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}

// healthCheckHandler handles the health check endpoint
// @Summary Health check
// @Description Check if the service is running
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheckHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"service":   "store-rating-api",
	})
}
