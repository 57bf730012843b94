package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/yuqianw/smart-wardrobe/internal/domain"
)

// ItemRepository handles wardrobe item data access
type ItemRepository struct {
	db *DB
}

// NewItemRepository creates a new item repository
func NewItemRepository(db *DB) *ItemRepository {
	return &ItemRepository{db: db}
}

const itemColumns = `
	id, user_id, name, category, sub_category, brand, size, material,
	status, tags, price, wear_count, created_at, updated_at`

// Create inserts a new wardrobe item
func (r *ItemRepository) Create(ctx context.Context, item *domain.ClothingItem) error {
	query := `
		INSERT INTO items (
			id, user_id, name, category, sub_category, brand, size, material,
			status, tags, price, wear_count, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`

	_, err := r.db.Pool.Exec(ctx, query,
		item.ID,
		item.UserID,
		item.Name,
		item.Category,
		item.SubCategory,
		item.Brand,
		item.Size,
		item.Material,
		item.Status,
		item.Tags,
		item.Price,
		item.WearCount,
		item.CreatedAt,
		item.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create item: %w", err)
	}

	return nil
}

// Get retrieves an item by ID
func (r *ItemRepository) Get(ctx context.Context, id uuid.UUID) (*domain.ClothingItem, error) {
	query := `SELECT` + itemColumns + ` FROM items WHERE id = $1`

	item, err := scanItem(r.db.Pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrItemNotFound
		}
		return nil, fmt.Errorf("failed to get item: %w", err)
	}

	return item, nil
}

// ListByUser retrieves all items of a user, newest first
func (r *ItemRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.ClothingItem, error) {
	query := `SELECT` + itemColumns + ` FROM items WHERE user_id = $1 ORDER BY created_at DESC`

	rows, err := r.db.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	defer rows.Close()

	var items []domain.ClothingItem
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		items = append(items, *item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}

	return items, nil
}

// UpdateStatus changes the availability status of an item
func (r *ItemRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.ItemStatus, updatedAt time.Time) error {
	query := `UPDATE items SET status = $2, updated_at = $3 WHERE id = $1`

	tag, err := r.db.Pool.Exec(ctx, query, id, status, updatedAt)
	if err != nil {
		return fmt.Errorf("failed to update item status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrItemNotFound
	}

	return nil
}

func scanItem(row pgx.Row) (*domain.ClothingItem, error) {
	var item domain.ClothingItem
	err := row.Scan(
		&item.ID,
		&item.UserID,
		&item.Name,
		&item.Category,
		&item.SubCategory,
		&item.Brand,
		&item.Size,
		&item.Material,
		&item.Status,
		&item.Tags,
		&item.Price,
		&item.WearCount,
		&item.CreatedAt,
		&item.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &item, nil
}
