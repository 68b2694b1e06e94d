package services

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/franciscosanchezn/store-rating-api/internal/auth"
	"github.com/franciscosanchezn/store-rating-api/internal/database"
	"github.com/franciscosanchezn/store-rating-api/internal/models"
	"github.com/franciscosanchezn/store-rating-api/internal/validation"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const (
	testPassword = "Secret!23"
	testName     = "Normal User Full Name Here"
	ownerName    = "Store Owner Full Name Here"
)

type testEnv struct {
	db         *gorm.DB
	users      UserService
	stores     StoreService
	ratings    RatingService
	dashboards DashboardService
}

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := database.InitDatabase(database.DatabaseConfig{Driver: "sqlite", Path: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })

	require.NoError(t, database.Migrate(db))
	return db
}

func setupTestEnv(t *testing.T) *testEnv {
	db := setupTestDB(t)
	log := logrus.New()
	log.SetOutput(io.Discard)
	v := validation.New()

	return &testEnv{
		db:         db,
		users:      NewUserService(db, v, log),
		stores:     NewStoreService(db, v, log),
		ratings:    NewRatingService(db, log),
		dashboards: NewDashboardService(db),
	}
}

func (e *testEnv) createUser(t *testing.T, email string, role models.Role) *models.User {
	name := testName
	if role == models.RoleOwner {
		name = ownerName
	}
	user, err := e.users.CreateUser(context.Background(), RegisterInput{
		Name:     name,
		Email:    email,
		Password: testPassword,
		Role:     string(role),
	})
	require.NoError(t, err)
	return user
}

// insertStore bypasses the service so tests can pin created_at
func (e *testEnv) insertStore(t *testing.T, name, address string, ownerID *string, createdAt time.Time) *models.Store {
	store := &models.Store{
		ID:        uuid.New().String(),
		Name:      name,
		Address:   address,
		OwnerID:   ownerID,
		CreatedAt: createdAt,
	}
	require.NoError(t, e.db.Create(store).Error)
	return store
}

func (e *testEnv) rate(t *testing.T, user *models.User, storeID string, rating int) {
	err := e.ratings.SubmitRating(context.Background(), identityOf(user), storeID, RatingInput{Rating: rating})
	require.NoError(t, err)
}

func identityOf(user *models.User) auth.Identity {
	return auth.Identity{ID: user.ID, Email: user.Email, Name: user.Name, Role: user.Role}
}

func ptr[T any](v T) *T {
	return &v
}
