package main

import (
	"context"
	"fmt"

	_ "github.com/franciscosanchezn/store-rating-api/docs" // Import generated docs
	"github.com/franciscosanchezn/store-rating-api/internal/auth"
	"github.com/franciscosanchezn/store-rating-api/internal/config"
	"github.com/franciscosanchezn/store-rating-api/internal/database"
	"github.com/franciscosanchezn/store-rating-api/internal/router"
	"github.com/franciscosanchezn/store-rating-api/internal/services"
	"github.com/franciscosanchezn/store-rating-api/internal/validation"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// @title Store Rating API
// @version 1.0
// @description Store rating platform with administrator, store owner and normal user roles
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	// Load environment variables
	loadDotenvFile()

	// Initialize logger
	setUpLogger()

	// Load configuration
	configuration := loadConfig()

	// Initialize database connection
	db := setupDatabase()
	defer func() {
		if err := database.Close(db); err != nil {
			log.WithError(err).Error("Failed to close database")
		}
	}()

	// Initialize services
	deps := setupServices(db, configuration)
	seedAdministrator(deps.Users, configuration)

	// Initialize Gin router
	engine := gin.Default()
	router.Register(engine, deps, configuration.CORSAllowedOrigins)

	// Start the server
	log.Infof("Starting server on %s:%d", configuration.Host, configuration.Port)
	if err := engine.Run(fmt.Sprintf("%v:%d", configuration.Host, configuration.Port)); err != nil {
		log.WithError(err).Fatal("Server stopped")
	}
}

// checkPanicErr checks if an error occurred and panics if it did
func checkPanicErr(err error) {
	if err != nil {
		panic(err)
	}
}

// loadDotenvFile loads environment variables from a .env file
// If the file is not found, it will log a warning and use system environment variables
func loadDotenvFile() {
	if err := godotenv.Load(); err != nil {
		log.Warn("No .env file found, using system environment variables")
	}
}

// setUpLogger initializes the logger with a JSON formatter and sets the log level based on the environment
func setUpLogger() {
	log.SetFormatter(&log.JSONFormatter{})
	environment := config.GetEnvWithDefault("APP_ENV", "development")
	switch environment {
	case "development":
		log.SetLevel(log.DebugLevel)
	case "production":
		log.SetLevel(log.ErrorLevel)
	default:
		log.SetLevel(log.InfoLevel)
	}
}

// loadConfig loads the application configuration from environment variables
// It returns a Config struct or panics if there is an error
func loadConfig() *config.Config {
	log.Info("Loading configuration from environment variables")
	conf, err := config.LoadConfig()
	checkPanicErr(err)
	log.Infof("Configuration loaded: %s", conf)
	return conf
}

// setupDatabase connects to the configured database and migrates the schema
func setupDatabase() *gorm.DB {
	dbConfig, err := database.LoadConfigFromEnv()
	checkPanicErr(err)
	log.Infof("Database configuration: %s", &dbConfig)

	db, err := database.InitDatabase(dbConfig)
	checkPanicErr(err)
	checkPanicErr(database.Migrate(db))
	return db
}

// setupServices builds the services the HTTP layer depends on
func setupServices(db *gorm.DB, conf *config.Config) router.Services {
	validator := validation.New()
	logger := log.StandardLogger()

	return router.Services{
		Tokens:     auth.NewTokenService(conf.JWTSecret, conf.JWTTTL),
		Users:      services.NewUserService(db, validator, logger),
		Stores:     services.NewStoreService(db, validator, logger),
		Ratings:    services.NewRatingService(db, logger),
		Dashboards: services.NewDashboardService(db),
	}
}

// seedAdministrator creates the bootstrap administrator when SEED_ADMIN_* is set
func seedAdministrator(users services.UserService, conf *config.Config) {
	if !conf.SeedAdminEnabled() {
		log.Debug("No seed administrator configured")
		return
	}

	created, err := services.SeedAdministrator(context.Background(), users,
		conf.SeedAdminName, conf.SeedAdminEmail, conf.SeedAdminPassword)
	checkPanicErr(err)
	if created {
		log.WithField("email", conf.SeedAdminEmail).Info("Seed administrator created")
	} else {
		log.WithField("email", conf.SeedAdminEmail).Info("Seed administrator already exists")
	}
}
