package repository

import (
	"context"

	"restaurant-backoffice/internal/database"
)

// TableRepository reads dining tables
type TableRepository struct {
	db *database.DB
}

func NewTableRepository(db *database.DB) *TableRepository {
	return &TableRepository{db: db}
}

func (r *TableRepository) Count(ctx context.Context) (int64, error) {
	return r.db.Count(ctx, database.CountDiningTablesSQL)
}

func (r *TableRepository) CountByStatus(ctx context.Context, label string) (int64, error) {
	return r.db.Count(ctx, database.CountDiningTablesByStatusSQL, label)
}

// UserRepository counts staff accounts
type UserRepository struct {
	db *database.DB
}

func NewUserRepository(db *database.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	return r.db.Count(ctx, database.CountUsersSQL)
}
