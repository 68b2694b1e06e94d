package services

import (
	"context"
	"fmt"

	"github.com/franciscosanchezn/store-rating-api/internal/models"
	"gorm.io/gorm"
)

// DashboardService builds the store owner dashboard
type DashboardService interface {
	// OwnerDashboard returns the owner's stores and the ratings of the primary store.
	// Returns ErrNotFound when the owner has no stores.
	OwnerDashboard(ctx context.Context, ownerID string) (*models.OwnerDashboard, error)
	// AverageForOwner returns the mean rating of the owner's primary store
	AverageForOwner(ctx context.Context, ownerID string) (float64, error)
}

type dashboardService struct {
	db *gorm.DB
}

// NewDashboardService creates a new instance of DashboardService
func NewDashboardService(db *gorm.DB) DashboardService {
	return &dashboardService{db: db}
}

// ownedStores lists the owner's stores, primary (earliest created) first
func (s *dashboardService) ownedStores(ctx context.Context, ownerID string) ([]models.OwnedStore, error) {
	stores := []models.OwnedStore{}
	err := s.db.WithContext(ctx).Model(&models.Store{}).
		Select("id, name, address").
		Where("owner_id = ?", ownerID).
		Order("created_at ASC").Order("id ASC").
		Scan(&stores).Error
	if err != nil {
		return nil, fmt.Errorf("list owned stores: %w", err)
	}
	if len(stores) == 0 {
		return nil, notFound("No stores found for this owner.")
	}
	return stores, nil
}

func (s *dashboardService) OwnerDashboard(ctx context.Context, ownerID string) (*models.OwnerDashboard, error) {
	stores, err := s.ownedStores(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	storeIDs := make([]string, len(stores))
	for i, store := range stores {
		storeIDs[i] = store.ID
	}

	averages, err := averagesByStore(ctx, s.db, storeIDs)
	if err != nil {
		return nil, err
	}

	primaryID := stores[0].ID
	ratings := []models.DashboardRating{}
	err = s.db.WithContext(ctx).Table("ratings r").
		Select(`r.id AS rating_id, r.rating AS rating_value, r.comment, r.created_at,
			u.id AS user_id, u.name AS user_name, u.email AS user_email,
			s.id AS store_id, s.name AS store_name`).
		Joins("JOIN users u ON u.id = r.user_id").
		Joins("JOIN stores s ON s.id = r.store_id").
		Where("r.store_id = ?", primaryID).
		Order("r.created_at DESC").Order("r.id ASC").
		Scan(&ratings).Error
	if err != nil {
		return nil, fmt.Errorf("list owner ratings: %w", err)
	}

	return &models.OwnerDashboard{
		OwnerID:       ownerID,
		OwnedStores:   stores,
		Ratings:       ratings,
		AverageRating: averages[primaryID],
		StoreAverages: averages,
	}, nil
}

func (s *dashboardService) AverageForOwner(ctx context.Context, ownerID string) (float64, error) {
	stores, err := s.ownedStores(ctx, ownerID)
	if err != nil {
		return 0, err
	}
	averages, err := averagesByStore(ctx, s.db, []string{stores[0].ID})
	if err != nil {
		return 0, err
	}
	return averages[stores[0].ID], nil
}
