package services

import (
	"context"
	"testing"
	"time"

	"github.com/franciscosanchezn/store-rating-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOwnerDashboardWithoutStores(t *testing.T) {
	env := setupTestEnv(t)
	owner := env.createUser(t, "owner@example.com", models.RoleOwner)

	_, err := env.dashboards.OwnerDashboard(context.Background(), owner.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, "No stores found for this owner.", Message(err, ""))

	_, err = env.dashboards.AverageForOwner(context.Background(), owner.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestOwnerDashboard(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()
	owner := env.createUser(t, "owner@example.com", models.RoleOwner)
	alice := env.createUser(t, "alice@example.com", models.RoleNormal)
	bob := env.createUser(t, "bob@example.com", models.RoleNormal)

	base := time.Now().Add(-time.Hour)
	later := env.insertStore(t, "Later Store", "2 Late Road", &owner.ID, base.Add(time.Minute))
	primary := env.insertStore(t, "Primary Store", "1 First Road", &owner.ID, base)
	env.insertStore(t, "Someone Else", "3 Other Road", nil, base)

	env.rate(t, alice, primary.ID, 2)
	env.rate(t, bob, primary.ID, 5)
	env.rate(t, alice, later.ID, 1)

	dashboard, err := env.dashboards.OwnerDashboard(ctx, owner.ID)
	require.NoError(t, err)

	assert.Equal(t, owner.ID, dashboard.OwnerID)
	require.Len(t, dashboard.OwnedStores, 2)
	assert.Equal(t, primary.ID, dashboard.OwnedStores[0].ID)
	assert.Equal(t, later.ID, dashboard.OwnedStores[1].ID)

	assert.InDelta(t, 3.5, dashboard.AverageRating, 1e-9)
	assert.InDelta(t, 3.5, dashboard.StoreAverages[primary.ID], 1e-9)
	assert.InDelta(t, 1.0, dashboard.StoreAverages[later.ID], 1e-9)

	require.Len(t, dashboard.Ratings, 2)
	for _, r := range dashboard.Ratings {
		assert.Equal(t, primary.ID, r.StoreID)
		assert.Equal(t, "Primary Store", r.StoreName)
		assert.Equal(t, testName, r.UserName)
	}
	emails := []string{dashboard.Ratings[0].UserEmail, dashboard.Ratings[1].UserEmail}
	assert.ElementsMatch(t, []string{"alice@example.com", "bob@example.com"}, emails)

	average, err := env.dashboards.AverageForOwner(ctx, owner.ID)
	require.NoError(t, err)
	assert.InDelta(t, 3.5, average, 1e-9)
}

func TestOwnerDashboardStoreWithoutRatings(t *testing.T) {
	env := setupTestEnv(t)
	owner := env.createUser(t, "owner@example.com", models.RoleOwner)
	store := env.insertStore(t, "Quiet Store", "1 Silent Road", &owner.ID, time.Now())

	dashboard, err := env.dashboards.OwnerDashboard(context.Background(), owner.ID)
	require.NoError(t, err)
	assert.Empty(t, dashboard.Ratings)
	assert.Equal(t, 0.0, dashboard.AverageRating)
	assert.Equal(t, map[string]float64{store.ID: 0}, dashboard.StoreAverages)
}
