package models

import (
	"time"
)

// Read models returned by the directory queries. They are scanned straight
// from aggregate SQL and never persisted.

// StoreListItem is one row of the public store listing
type StoreListItem struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Address       string  `json:"address"`
	StoreOwnerID  *string `json:"store_owner_id" gorm:"column:owner_id"`
	AverageRating float64 `json:"average_rating"`
	UserRating    *int    `json:"user_rating"`
}

// AdminStoreItem is one row of the administrator store listing
type AdminStoreItem struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Address       string  `json:"address"`
	OwnerID       *string `json:"owner_id"`
	OwnerName     *string `json:"owner_name"`
	AverageRating float64 `json:"average_rating"`
}

// UserListItem is one row of the administrator user listing.
// AverageStoreRating is only set for Store Owner rows.
type UserListItem struct {
	ID                 string   `json:"id"`
	Name               string   `json:"name"`
	Email              string   `json:"email"`
	Address            *string  `json:"address"`
	Role               Role     `json:"role"`
	AverageStoreRating *float64 `json:"average_store_rating"`
}

// OwnedStore is a store summary on the owner dashboard
type OwnedStore struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
}

// DashboardRating is a rating joined with its author and store
type DashboardRating struct {
	RatingID    string    `json:"rating_id"`
	RatingValue int       `json:"rating_value"`
	Comment     *string   `json:"comment"`
	CreatedAt   time.Time `json:"created_at"`
	UserID      string    `json:"user_id"`
	UserName    string    `json:"user_name"`
	UserEmail   string    `json:"user_email"`
	StoreID     string    `json:"store_id"`
	StoreName   string    `json:"store_name"`
}

// OwnerDashboard is the payload of the store owner dashboard.
// Ratings and AverageRating describe the primary (earliest created) store,
// StoreAverages covers every owned store.
type OwnerDashboard struct {
	OwnerID       string             `json:"ownerId"`
	OwnedStores   []OwnedStore       `json:"ownedStores"`
	Ratings       []DashboardRating  `json:"ratings"`
	AverageRating float64            `json:"averageRating"`
	StoreAverages map[string]float64 `json:"storeAverages"`
}
