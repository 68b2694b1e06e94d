package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/franciscosanchezn/store-rating-api/internal/models"
	"github.com/franciscosanchezn/store-rating-api/internal/validation"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// CreateStoreInput is a new store created by an administrator
type CreateStoreInput struct {
	Name         string  `json:"name" validate:"required,max=60"`
	Address      string  `json:"address" validate:"required,address"`
	StoreOwnerID *string `json:"store_owner_id"`
}

// StoreFilter narrows store listings. Both fields match substrings, case-insensitively.
type StoreFilter struct {
	Name    string
	Address string
}

// StoreService provides store operations and the rating aggregates shown with them
type StoreService interface {
	// CreateStore adds a store, checking that the optional owner is a Store Owner
	CreateStore(ctx context.Context, in CreateStoreInput) (*models.Store, error)
	// GetStoreByID retrieves a store by id
	GetStoreByID(ctx context.Context, storeID string) (*models.Store, error)
	// ListStores returns the public listing with the requester's own rating joined in.
	// An empty requesterID yields null user ratings.
	ListStores(ctx context.Context, filter StoreFilter, sort Sort, requesterID string) ([]models.StoreListItem, error)
	// ListStoresForAdmin returns the administrator listing with owner names
	ListStoresForAdmin(ctx context.Context, filter StoreFilter, sort Sort) ([]models.AdminStoreItem, error)
	// AverageForStore returns the mean rating of a store, 0 when it has no ratings
	AverageForStore(ctx context.Context, storeID string) (float64, error)
	// CountStores returns the number of stores
	CountStores(ctx context.Context) (int64, error)
}

type storeService struct {
	db        *gorm.DB
	validator *validation.Validator
	log       logrus.FieldLogger
}

// NewStoreService creates a new instance of StoreService
func NewStoreService(db *gorm.DB, validator *validation.Validator, log logrus.FieldLogger) StoreService {
	return &storeService{db: db, validator: validator, log: log}
}

// averageRatingExpr is the single aggregate used wherever a store mean is reported
const averageRatingExpr = "COALESCE(AVG(r.rating), 0)"

func (s *storeService) CreateStore(ctx context.Context, in CreateStoreInput) (*models.Store, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Address = strings.TrimSpace(in.Address)
	if fields := s.validator.Struct(in); fields != nil {
		return nil, newValidationError("Store name and address are required.", fields)
	}

	ownerID := emptyToNil(in.StoreOwnerID)
	if ownerID != nil {
		var owners int64
		err := s.db.WithContext(ctx).Model(&models.User{}).
			Where("id = ? AND role = ?", *ownerID, models.RoleOwner).Count(&owners).Error
		if err != nil {
			return nil, fmt.Errorf("check store owner: %w", err)
		}
		if owners == 0 {
			return nil, newValidationError("Invalid or non-existent Store Owner ID.", map[string]string{
				"store_owner_id": "must reference a user with the Store Owner role",
			})
		}
	}

	store := &models.Store{
		ID:      uuid.New().String(),
		Name:    in.Name,
		Address: in.Address,
		OwnerID: ownerID,
	}
	if err := s.db.WithContext(ctx).Create(store).Error; err != nil {
		return nil, fmt.Errorf("create store: %w", err)
	}

	s.log.WithFields(logrus.Fields{"store_id": store.ID, "owner_id": ownerID}).Info("Store created")
	return store, nil
}

func (s *storeService) GetStoreByID(ctx context.Context, storeID string) (*models.Store, error) {
	var store models.Store
	err := s.db.WithContext(ctx).Where("id = ?", storeID).First(&store).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFound("Store not found.")
	}
	if err != nil {
		return nil, fmt.Errorf("find store: %w", err)
	}
	return &store, nil
}

func (s *storeService) ListStores(ctx context.Context, filter StoreFilter, sort Sort, requesterID string) ([]models.StoreListItem, error) {
	// At most one ratings row matches ur per store, so the join does not skew the mean
	q := s.db.WithContext(ctx).Table("stores").
		Select("stores.id, stores.name, stores.address, stores.owner_id, " + averageRatingExpr + " AS average_rating, ur.rating AS user_rating").
		Joins("LEFT JOIN ratings r ON r.store_id = stores.id").
		Joins("LEFT JOIN ratings ur ON ur.store_id = stores.id AND ur.user_id = ?", requesterID)

	q = whereContains(q, "stores.name", filter.Name)
	q = whereContains(q, "stores.address", filter.Address)
	q = q.Group("stores.id, stores.name, stores.address, stores.owner_id, ur.rating")
	q = storeSortKeys.apply(q, sort)

	stores := []models.StoreListItem{}
	if err := q.Scan(&stores).Error; err != nil {
		return nil, fmt.Errorf("list stores: %w", err)
	}
	return stores, nil
}

func (s *storeService) ListStoresForAdmin(ctx context.Context, filter StoreFilter, sort Sort) ([]models.AdminStoreItem, error) {
	q := s.db.WithContext(ctx).Table("stores").
		Select("stores.id, stores.name, stores.address, stores.owner_id, o.name AS owner_name, " + averageRatingExpr + " AS average_rating").
		Joins("LEFT JOIN users o ON o.id = stores.owner_id").
		Joins("LEFT JOIN ratings r ON r.store_id = stores.id")

	q = whereContains(q, "stores.name", filter.Name)
	q = whereContains(q, "stores.address", filter.Address)
	q = q.Group("stores.id, stores.name, stores.address, stores.owner_id, o.name")
	q = storeSortKeys.apply(q, sort)

	stores := []models.AdminStoreItem{}
	if err := q.Scan(&stores).Error; err != nil {
		return nil, fmt.Errorf("list admin stores: %w", err)
	}
	return stores, nil
}

func (s *storeService) AverageForStore(ctx context.Context, storeID string) (float64, error) {
	if _, err := s.GetStoreByID(ctx, storeID); err != nil {
		return 0, err
	}
	averages, err := averagesByStore(ctx, s.db, []string{storeID})
	if err != nil {
		return 0, err
	}
	return averages[storeID], nil
}

func (s *storeService) CountStores(ctx context.Context) (int64, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Store{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count stores: %w", err)
	}
	return count, nil
}

// averagesByStore returns the mean rating of each store id. Stores without
// ratings map to 0.
func averagesByStore(ctx context.Context, db *gorm.DB, storeIDs []string) (map[string]float64, error) {
	averages := make(map[string]float64, len(storeIDs))
	for _, id := range storeIDs {
		averages[id] = 0
	}
	if len(storeIDs) == 0 {
		return averages, nil
	}

	var rows []struct {
		StoreID       string
		AverageRating float64
	}
	err := db.WithContext(ctx).Table("ratings r").
		Select("r.store_id AS store_id, " + averageRatingExpr + " AS average_rating").
		Where("r.store_id IN ?", storeIDs).
		Group("r.store_id").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("average ratings: %w", err)
	}

	for _, row := range rows {
		averages[row.StoreID] = row.AverageRating
	}
	return averages, nil
}
