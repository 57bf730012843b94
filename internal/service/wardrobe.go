package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/yuqianw/smart-wardrobe/internal/domain"
)

// WardrobeService handles wardrobe inventory operations
type WardrobeService struct {
	items domain.ItemRepository
}

// NewWardrobeService creates a new wardrobe service
func NewWardrobeService(items domain.ItemRepository) *WardrobeService {
	return &WardrobeService{items: items}
}

// CreateItemInput carries the fields a caller may set on a new item
type CreateItemInput struct {
	Name        string            `json:"name" validate:"required,max=200"`
	Category    domain.Category   `json:"category" validate:"required,oneof=tops bottoms outerwear footwear accessories"`
	SubCategory string            `json:"sub_category" validate:"omitempty,max=100"`
	Brand       string            `json:"brand" validate:"omitempty,max=100"`
	Size        string            `json:"size" validate:"omitempty,max=50"`
	Material    string            `json:"material" validate:"omitempty,max=100"`
	Status      domain.ItemStatus `json:"status" validate:"omitempty,oneof=in_wardrobe to_wash at_tailor dry_cleaning"`
	Tags        []string          `json:"tags" validate:"omitempty,max=20,dive,max=50"`
	Price       *float64          `json:"price" validate:"omitempty,gte=0"`
}

// ListItems returns all items of a user, newest first
func (s *WardrobeService) ListItems(ctx context.Context, userID uuid.UUID) ([]domain.ClothingItem, error) {
	return s.items.ListByUser(ctx, userID)
}

// GetItem returns a single item, hiding other users' items behind
// ErrItemNotFound.
func (s *WardrobeService) GetItem(ctx context.Context, userID, itemID uuid.UUID) (*domain.ClothingItem, error) {
	item, err := s.items.Get(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item.UserID != userID {
		return nil, domain.ErrItemNotFound
	}
	return item, nil
}

// CreateItem adds a new item to the user's wardrobe
func (s *WardrobeService) CreateItem(ctx context.Context, userID uuid.UUID, input CreateItemInput) (*domain.ClothingItem, error) {
	now := time.Now()
	status := input.Status
	if status == "" {
		status = domain.StatusInWardrobe
	}
	tags := input.Tags
	if tags == nil {
		tags = []string{}
	}

	item := &domain.ClothingItem{
		ID:          uuid.New(),
		UserID:      userID,
		Name:        input.Name,
		Category:    input.Category,
		SubCategory: input.SubCategory,
		Brand:       input.Brand,
		Size:        input.Size,
		Material:    input.Material,
		Status:      status,
		Tags:        tags,
		Price:       input.Price,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.items.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to create item: %w", err)
	}
	return item, nil
}

// UpdateItemStatus changes an item's availability status
func (s *WardrobeService) UpdateItemStatus(ctx context.Context, userID, itemID uuid.UUID, status domain.ItemStatus) (*domain.ClothingItem, error) {
	if !domain.ValidStatus(status) {
		return nil, fmt.Errorf("invalid item status: %s", status)
	}

	// Ownership check before mutation
	if _, err := s.GetItem(ctx, userID, itemID); err != nil {
		return nil, err
	}

	if err := s.items.UpdateStatus(ctx, itemID, status, time.Now()); err != nil {
		return nil, err
	}

	return s.items.Get(ctx, itemID)
}
