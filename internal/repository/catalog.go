package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"restaurant-backoffice/internal/database"
	"restaurant-backoffice/internal/models"
)

// MenuRepository reads the menu catalog
type MenuRepository struct {
	db *database.DB
}

// NewMenuRepository creates a new menu repository
func NewMenuRepository(db *database.DB) *MenuRepository {
	return &MenuRepository{db: db}
}

// Resolve returns the current catalog entry for id
func (r *MenuRepository) Resolve(ctx context.Context, id int64) (models.MenuItem, error) {
	var item models.MenuItem
	err := r.db.QueryRow(ctx, database.GetMenuItemByIDSQL, id).Scan(
		&item.ID,
		&item.Name,
		&item.Category,
		&item.Price,
		&item.Cost,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return item, fmt.Errorf("menu item %d: %w", id, models.ErrMenuItemNotFound)
		}
		return item, fmt.Errorf("failed to query menu item: %w", err)
	}
	return item, nil
}
