package models

import (
	"time"
)

// Store is a rateable shop, optionally owned by a Store Owner user
type Store struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	Name      string    `gorm:"size:60;not null;index" json:"name"`
	Address   string    `gorm:"size:400;not null" json:"address"`
	OwnerID   *string   `gorm:"column:owner_id;size:36;index" json:"store_owner_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Store) TableName() string {
	return "stores"
}
