package services

import (
	"context"
	"testing"
	"time"

	"github.com/franciscosanchezn/store-rating-api/internal/auth"
	"github.com/franciscosanchezn/store-rating-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmitRating(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()
	user := env.createUser(t, "rater@example.com", models.RoleNormal)
	store := env.insertStore(t, "Rated Store", "1 Rating Road", nil, time.Now())
	caller := identityOf(user)

	testCases := []struct {
		name   string
		rating int
		err    error
	}{
		{name: "below range", rating: 0, err: ErrValidation},
		{name: "above range", rating: 6, err: ErrValidation},
		{name: "lower bound", rating: 1},
		{name: "duplicate", rating: 5, err: ErrConflict},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			err := env.ratings.SubmitRating(ctx, caller, store.ID, RatingInput{Rating: tt.rating})
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
				return
			}
			assert.NoError(t, err)
		})
	}

	assert.Equal(t, int64(1), mustCount(t, env.ratings.CountRatings))
}

func TestSubmitRatingUpperBoundWithComment(t *testing.T) {
	env := setupTestEnv(t)
	user := env.createUser(t, "rater@example.com", models.RoleNormal)
	store := env.insertStore(t, "Rated Store", "1 Rating Road", nil, time.Now())

	err := env.ratings.SubmitRating(context.Background(), identityOf(user), store.ID, RatingInput{Rating: 5, Comment: ptr("Great")})
	require.NoError(t, err)

	var rating models.Rating
	require.NoError(t, env.db.Where("store_id = ? AND user_id = ?", store.ID, user.ID).First(&rating).Error)
	assert.Equal(t, 5, rating.Rating)
	require.NotNil(t, rating.Comment)
	assert.Equal(t, "Great", *rating.Comment)
}

func TestSubmitRatingChecks(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()
	owner := env.createUser(t, "owner@example.com", models.RoleOwner)
	admin := env.createUser(t, "admin@example.com", models.RoleAdministrator)
	user := env.createUser(t, "rater@example.com", models.RoleNormal)
	store := env.insertStore(t, "Rated Store", "1 Rating Road", nil, time.Now())

	t.Run("store owner is forbidden", func(t *testing.T) {
		err := env.ratings.SubmitRating(ctx, identityOf(owner), store.ID, RatingInput{Rating: 4})
		assert.ErrorIs(t, err, ErrForbidden)
		assert.Equal(t, "Access denied. Only Normal Users can submit ratings.", Message(err, ""))
	})

	t.Run("administrator is forbidden", func(t *testing.T) {
		err := env.ratings.ModifyRating(ctx, identityOf(admin), store.ID, RatingInput{Rating: 4})
		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("anonymous caller", func(t *testing.T) {
		err := env.ratings.SubmitRating(ctx, auth.Identity{}, store.ID, RatingInput{Rating: 4})
		assert.ErrorIs(t, err, auth.ErrUnauthenticated)
	})

	t.Run("role is checked before range", func(t *testing.T) {
		err := env.ratings.SubmitRating(ctx, identityOf(owner), store.ID, RatingInput{Rating: 9})
		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("unknown store", func(t *testing.T) {
		err := env.ratings.SubmitRating(ctx, identityOf(user), "missing", RatingInput{Rating: 4})
		assert.ErrorIs(t, err, ErrNotFound)
	})

	assert.Equal(t, int64(0), mustCount(t, env.ratings.CountRatings))
}

func TestModifyRating(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()
	user := env.createUser(t, "rater@example.com", models.RoleNormal)
	other := env.createUser(t, "other@example.com", models.RoleNormal)
	store := env.insertStore(t, "Rated Store", "1 Rating Road", nil, time.Now())
	caller := identityOf(user)

	err := env.ratings.ModifyRating(ctx, caller, store.ID, RatingInput{Rating: 3})
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, err, ErrNoRating)

	require.NoError(t, env.ratings.SubmitRating(ctx, caller, store.ID, RatingInput{Rating: 4, Comment: ptr("ok")}))
	env.rate(t, other, store.ID, 2)
	require.NoError(t, env.ratings.ModifyRating(ctx, caller, store.ID, RatingInput{Rating: 2}))

	var rating models.Rating
	require.NoError(t, env.db.Where("store_id = ? AND user_id = ?", store.ID, user.ID).First(&rating).Error)
	assert.Equal(t, 2, rating.Rating)
	assert.Nil(t, rating.Comment)

	var untouched models.Rating
	require.NoError(t, env.db.Where("store_id = ? AND user_id = ?", store.ID, other.ID).First(&untouched).Error)
	assert.Equal(t, 2, untouched.Rating)

	err = env.ratings.ModifyRating(ctx, caller, store.ID, RatingInput{Rating: 0})
	assert.ErrorIs(t, err, ErrValidation)

	assert.Equal(t, int64(2), mustCount(t, env.ratings.CountRatings))
}
