package repository

import (
	"context"
	"fmt"

	"restaurant-backoffice/internal/database"
	"restaurant-backoffice/internal/models"
)

// InventoryRepository reads inventory items
type InventoryRepository struct {
	db *database.DB
}

// NewInventoryRepository creates a new inventory repository
func NewInventoryRepository(db *database.DB) *InventoryRepository {
	return &InventoryRepository{db: db}
}

// ListAll returns every inventory item
func (r *InventoryRepository) ListAll(ctx context.Context) ([]models.InventoryItem, error) {
	rows, err := r.db.Query(ctx, database.ListInventoryItemsSQL)
	if err != nil {
		return nil, fmt.Errorf("failed to query inventory: %w", err)
	}
	defer rows.Close()

	var items []models.InventoryItem
	for rows.Next() {
		var it models.InventoryItem
		err := rows.Scan(
			&it.ID,
			&it.Name,
			&it.Stock,
			&it.MinLevel,
			&it.MaxLevel,
			&it.UnitCost,
			&it.ExpiryDate,
			&it.Status,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan inventory item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// Count returns the number of inventory items
func (r *InventoryRepository) Count(ctx context.Context) (int64, error) {
	return r.db.Count(ctx, database.CountInventoryItemsSQL)
}

// CountByStatus counts items carrying the given status label
func (r *InventoryRepository) CountByStatus(ctx context.Context, label string) (int64, error) {
	return r.db.Count(ctx, database.CountInventoryByStatusSQL, label)
}
