package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Category is a top-level clothing category
type Category string

const (
	CategoryTops        Category = "tops"
	CategoryBottoms     Category = "bottoms"
	CategoryOuterwear   Category = "outerwear"
	CategoryFootwear    Category = "footwear"
	CategoryAccessories Category = "accessories"
)

// ItemStatus tracks where an item currently is
type ItemStatus string

const (
	StatusInWardrobe  ItemStatus = "in_wardrobe"
	StatusToWash      ItemStatus = "to_wash"
	StatusAtTailor    ItemStatus = "at_tailor"
	StatusDryCleaning ItemStatus = "dry_cleaning"
)

// ValidStatus reports whether s is a known item status
func ValidStatus(s ItemStatus) bool {
	switch s {
	case StatusInWardrobe, StatusToWash, StatusAtTailor, StatusDryCleaning:
		return true
	}
	return false
}

// ClothingItem represents a single wardrobe item
type ClothingItem struct {
	ID          uuid.UUID  `json:"id"`
	UserID      uuid.UUID  `json:"user_id"`
	Name        string     `json:"name"`
	Category    Category   `json:"category"`
	SubCategory string     `json:"sub_category,omitempty"`
	Brand       string     `json:"brand,omitempty"`
	Size        string     `json:"size,omitempty"`
	Material    string     `json:"material,omitempty"`
	Status      ItemStatus `json:"status"`
	Tags        []string   `json:"tags"`
	Price       *float64   `json:"price,omitempty"`
	WearCount   int        `json:"wear_count"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// Available reports whether the item is physically in the wardrobe and
// therefore eligible for recommendation.
func (i ClothingItem) Available() bool {
	return i.Status == StatusInWardrobe
}

// ItemRepository defines the inventory data access contract
type ItemRepository interface {
	Create(ctx context.Context, item *ClothingItem) error
	Get(ctx context.Context, id uuid.UUID) (*ClothingItem, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]ClothingItem, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status ItemStatus, updatedAt time.Time) error
}
