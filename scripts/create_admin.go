package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"

	"github.com/franciscosanchezn/store-rating-api/internal/auth"
	"github.com/franciscosanchezn/store-rating-api/internal/database"
	"github.com/franciscosanchezn/store-rating-api/internal/models"
	"github.com/franciscosanchezn/store-rating-api/internal/services"
	"github.com/franciscosanchezn/store-rating-api/internal/validation"
	"github.com/sirupsen/logrus"
)

func main() {
	// Parse command line flags
	dbPath := flag.String("db", "", "SQLite database file (defaults to DB_PATH / DB_* settings)")
	name := flag.String("name", "System Administrator Account", "Administrator name (20-60 characters)")
	email := flag.String("email", "admin@example.com", "Administrator email")
	password := flag.String("password", "", "Administrator password (8-16 chars, one uppercase, one special)")
	flag.Parse()

	if *password == "" {
		log.Fatal("A -password is required")
	}

	cfg, err := database.LoadConfigFromEnv()
	if err != nil {
		log.Fatal("Failed to load database config:", err)
	}
	if *dbPath != "" {
		cfg.Driver = "sqlite"
		cfg.Path = *dbPath
	}

	db, err := database.InitDatabase(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer database.Close(db)

	if err := database.Migrate(db); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	quiet := logrus.New()
	quiet.SetOutput(io.Discard)
	users := services.NewUserService(db, validation.New(), quiet)

	created, err := services.SeedAdministrator(context.Background(), users, *name, *email, *password)
	if err != nil {
		log.Fatal("Failed to create administrator: ", services.Message(err, err.Error()))
	}
	if !created {
		fmt.Printf("A user with email '%s' already exists, nothing to do.\n", *email)
		return
	}

	// Verify the new account can log in
	user, err := users.Authenticate(context.Background(), *email, *password)
	if err != nil {
		log.Fatal("Administrator created but login check failed:", err)
	}
	if err := auth.Authorize(&auth.Identity{ID: user.ID, Role: user.Role}, models.RoleAdministrator); err != nil {
		log.Fatal("Created user is not an administrator:", err)
	}

	fmt.Printf("✓ Administrator created!\n")
	fmt.Printf("User ID: %s\n", user.ID)
	fmt.Printf("Email: %s\n", user.Email)
	fmt.Println("\nLog in with:")
	fmt.Printf("curl -X POST http://localhost:8080/api/auth/login \\\n")
	fmt.Printf("  -H 'Content-Type: application/json' \\\n")
	fmt.Printf("  -d '{\"email\":\"%s\",\"password\":\"<password>\"}'\n", user.Email)
}
