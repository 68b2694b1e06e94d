package models

import (
	"time"
)

// Rating is one user's score for one store. The composite unique index keeps
// it to a single row per (store, user) pair.
type Rating struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	StoreID   string    `gorm:"size:36;not null;uniqueIndex:idx_ratings_store_user,priority:1" json:"store_id"`
	UserID    string    `gorm:"size:36;not null;uniqueIndex:idx_ratings_store_user,priority:2;index" json:"user_id"`
	Rating    int       `gorm:"not null;check:chk_ratings_range,rating >= 1 AND rating <= 5" json:"rating"`
	Comment   *string   `gorm:"type:text" json:"comment"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Rating) TableName() string {
	return "ratings"
}

const (
	MinRating = 1
	MaxRating = 5
)
