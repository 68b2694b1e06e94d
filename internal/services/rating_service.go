package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/franciscosanchezn/store-rating-api/internal/auth"
	"github.com/franciscosanchezn/store-rating-api/internal/models"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrNoRating is returned when modifying a rating that was never submitted.
// It matches ErrNotFound.
var ErrNoRating error = &DomainError{Kind: ErrNotFound, Message: "No existing rating found for this store by this user."}

// RatingInput is the body of a rating submission or modification
type RatingInput struct {
	Rating  int     `json:"rating"`
	Comment *string `json:"comment"`
}

// RatingService keeps at most one rating per (store, user) pair
type RatingService interface {
	// SubmitRating inserts the caller's first rating for a store
	SubmitRating(ctx context.Context, caller auth.Identity, storeID string, in RatingInput) error
	// ModifyRating replaces the caller's existing rating for a store
	ModifyRating(ctx context.Context, caller auth.Identity, storeID string, in RatingInput) error
	// CountRatings returns the number of ratings
	CountRatings(ctx context.Context) (int64, error)
}

type ratingService struct {
	db  *gorm.DB
	log logrus.FieldLogger
}

// NewRatingService creates a new instance of RatingService
func NewRatingService(db *gorm.DB, log logrus.FieldLogger) RatingService {
	return &ratingService{db: db, log: log}
}

func (s *ratingService) checkRequest(ctx context.Context, caller auth.Identity, storeID string, in RatingInput, verb string) error {
	if err := auth.Authorize(&caller, models.RoleNormal); err != nil {
		if errors.Is(err, auth.ErrUnauthenticated) {
			return err
		}
		return forbidden(fmt.Sprintf("Access denied. Only Normal Users can %s ratings.", verb))
	}
	if in.Rating < models.MinRating || in.Rating > models.MaxRating {
		return newValidationError("Rating must be between 1 and 5.", map[string]string{
			"rating": fmt.Sprintf("must be an integer from %d to %d", models.MinRating, models.MaxRating),
		})
	}

	var stores int64
	if err := s.db.WithContext(ctx).Model(&models.Store{}).Where("id = ?", storeID).Count(&stores).Error; err != nil {
		return fmt.Errorf("check store: %w", err)
	}
	if stores == 0 {
		return notFound("Store not found.")
	}
	return nil
}

func (s *ratingService) SubmitRating(ctx context.Context, caller auth.Identity, storeID string, in RatingInput) error {
	if err := s.checkRequest(ctx, caller, storeID, in, "submit"); err != nil {
		return err
	}

	rating := &models.Rating{
		ID:      uuid.New().String(),
		StoreID: storeID,
		UserID:  caller.ID,
		Rating:  in.Rating,
		Comment: emptyToNil(in.Comment),
	}

	// A single conditional insert: the (store_id, user_id) unique index rejects
	// the second of two concurrent submissions
	result := s.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(rating)
	if result.Error != nil && !errors.Is(result.Error, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("insert rating: %w", result.Error)
	}
	if result.Error != nil || result.RowsAffected == 0 {
		return conflict("You have already submitted a rating for this store. Please modify it instead.")
	}

	s.log.WithFields(logrus.Fields{"store_id": storeID, "user_id": caller.ID, "rating": in.Rating}).Info("Rating submitted")
	return nil
}

func (s *ratingService) ModifyRating(ctx context.Context, caller auth.Identity, storeID string, in RatingInput) error {
	if err := s.checkRequest(ctx, caller, storeID, in, "modify"); err != nil {
		return err
	}

	result := s.db.WithContext(ctx).Model(&models.Rating{}).
		Where("store_id = ? AND user_id = ?", storeID, caller.ID).
		Updates(map[string]interface{}{
			"rating":     in.Rating,
			"comment":    emptyToNil(in.Comment),
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return fmt.Errorf("update rating: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNoRating
	}

	s.log.WithFields(logrus.Fields{"store_id": storeID, "user_id": caller.ID, "rating": in.Rating}).Info("Rating modified")
	return nil
}

func (s *ratingService) CountRatings(ctx context.Context) (int64, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Rating{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count ratings: %w", err)
	}
	return count, nil
}
