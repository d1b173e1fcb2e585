package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"restaurant-backoffice/internal/database"
	"restaurant-backoffice/internal/models"
)

const foreignKeyViolation = "23503"

// OrderRepository is the order ledger backed by PostgreSQL
type OrderRepository struct {
	db *database.DB
}

// NewOrderRepository creates a new order repository
func NewOrderRepository(db *database.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// Append stores the order header, its lines and the initial status log
// entry in one transaction. It fills in the generated ids on o.
func (r *OrderRepository) Append(ctx context.Context, o *models.Order) (int64, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx, database.InsertOrderSQL,
		o.TableNumber,
		o.CustomerName,
		o.WaiterName,
		o.Status,
		o.Priority,
		o.TaxRate,
		o.TaxAmount,
		o.TotalAmount,
		o.ItemCount,
		o.CreatedAt,
	).Scan(&o.ID)
	if err != nil {
		return 0, fmt.Errorf("failed to insert order: %w", err)
	}

	for i := range o.Items {
		line := &o.Items[i]
		line.OrderID = o.ID
		err = tx.QueryRow(ctx, database.InsertOrderItemSQL,
			o.ID,
			i+1,
			line.MenuItemID,
			line.ItemName,
			line.Quantity,
			line.PriceAtOrder,
		).Scan(&line.ID)
		if err != nil {
			// The menu item was deleted after it was resolved.
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation {
				return 0, fmt.Errorf("line %d: %w", i+1, models.ErrMenuItemNotFound)
			}
			return 0, fmt.Errorf("failed to insert order item: %w", err)
		}
	}

	changedBy := o.WaiterName
	if changedBy == "" {
		changedBy = "intake"
	}
	note := "order created"
	_, err = tx.Exec(ctx, database.InsertOrderStatusLogSQL, o.ID, o.Status, changedBy, o.CreatedAt, &note)
	if err != nil {
		return 0, fmt.Errorf("failed to insert status log: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("failed to commit order: %w", err)
	}

	o.UpdatedAt = o.CreatedAt
	return o.ID, nil
}

// Get returns one order with its lines
func (r *OrderRepository) Get(ctx context.Context, id int64) (*models.Order, error) {
	o, err := scanOrder(r.db.QueryRow(ctx, database.GetOrderByIDSQL, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to query order: %w", err)
	}

	orders := []models.Order{o}
	if err := r.loadItems(ctx, orders); err != nil {
		return nil, err
	}
	return &orders[0], nil
}

// List returns all orders newest first, optionally restricted to one status
func (r *OrderRepository) List(ctx context.Context, status *models.OrderStatus) ([]models.Order, error) {
	if status != nil {
		return r.queryOrders(ctx, database.ListOrdersByStatusSQL, *status)
	}
	return r.queryOrders(ctx, database.ListOrdersSQL)
}

// ListBetween returns orders created in [from, to), oldest first
func (r *OrderRepository) ListBetween(ctx context.Context, from, to time.Time) ([]models.Order, error) {
	return r.queryOrders(ctx, database.ListOrdersBetweenSQL, from, to)
}

// UpdateStatus sets a new status and logs the change
func (r *OrderRepository) UpdateStatus(ctx context.Context, id int64, status models.OrderStatus, changedBy string, at time.Time) (models.StatusChange, error) {
	change := models.StatusChange{
		OrderID:   id,
		NewStatus: status,
		ChangedBy: changedBy,
		ChangedAt: at,
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return change, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := tx.QueryRow(ctx, database.LockOrderStatusSQL, id).Scan(&change.OldStatus); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return change, models.ErrOrderNotFound
		}
		return change, fmt.Errorf("failed to lock order: %w", err)
	}

	if _, err := tx.Exec(ctx, database.UpdateOrderStatusSQL, id, status, at); err != nil {
		return change, fmt.Errorf("failed to update order status: %w", err)
	}

	note := fmt.Sprintf("status changed from %s to %s", change.OldStatus, status)
	if _, err := tx.Exec(ctx, database.InsertOrderStatusLogSQL, id, status, changedBy, at, &note); err != nil {
		return change, fmt.Errorf("failed to insert status log: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return change, fmt.Errorf("failed to commit status update: %w", err)
	}
	return change, nil
}

// History returns the status log of an order, oldest first
func (r *OrderRepository) History(ctx context.Context, id int64) ([]models.OrderStatusHistory, error) {
	var exists bool
	if err := r.db.QueryRow(ctx, database.OrderExistsSQL, id).Scan(&exists); err != nil {
		return nil, fmt.Errorf("failed to check order existence: %w", err)
	}
	if !exists {
		return nil, models.ErrOrderNotFound
	}

	rows, err := r.db.Query(ctx, database.GetOrderStatusHistorySQL, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query order history: %w", err)
	}
	defer rows.Close()

	history := []models.OrderStatusHistory{}
	for rows.Next() {
		var entry models.OrderStatusHistory
		if err := rows.Scan(&entry.Status, &entry.ChangedBy, &entry.ChangedAt, &entry.Notes); err != nil {
			return nil, fmt.Errorf("failed to scan history row: %w", err)
		}
		history = append(history, entry)
	}
	return history, rows.Err()
}

// CountByStatus counts orders currently in the given status
func (r *OrderRepository) CountByStatus(ctx context.Context, status models.OrderStatus) (int64, error) {
	return r.db.Count(ctx, database.CountOrdersByStatusSQL, status)
}

// SumTotal sums the totals of every order ever recorded
func (r *OrderRepository) SumTotal(ctx context.Context) (float64, error) {
	var sum float64
	err := r.db.QueryRow(ctx, database.SumOrderTotalsSQL).Scan(&sum)
	return sum, err
}

// SumTotalBetween sums the totals of orders created in [from, to)
func (r *OrderRepository) SumTotalBetween(ctx context.Context, from, to time.Time) (float64, error) {
	var sum float64
	err := r.db.QueryRow(ctx, database.SumOrderTotalsBetweenSQL, from, to).Scan(&sum)
	return sum, err
}

// UnitsByCategory returns units sold per menu category across all orders
func (r *OrderRepository) UnitsByCategory(ctx context.Context) ([]models.CategoryUnits, error) {
	rows, err := r.db.Query(ctx, database.UnitsByCategorySQL, models.FallbackCategory)
	if err != nil {
		return nil, fmt.Errorf("failed to query category sales: %w", err)
	}
	defer rows.Close()

	var result []models.CategoryUnits
	for rows.Next() {
		var cu models.CategoryUnits
		if err := rows.Scan(&cu.Category, &cu.Units); err != nil {
			return nil, fmt.Errorf("failed to scan category sales: %w", err)
		}
		result = append(result, cu)
	}
	return result, rows.Err()
}

func (r *OrderRepository) queryOrders(ctx context.Context, sql string, args ...interface{}) ([]models.Order, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	orders := []models.Order{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating orders: %w", err)
	}

	if err := r.loadItems(ctx, orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// loadItems attaches lines to orders with a single query
func (r *OrderRepository) loadItems(ctx context.Context, orders []models.Order) error {
	if len(orders) == 0 {
		return nil
	}

	ids := make([]int64, len(orders))
	index := make(map[int64]int, len(orders))
	for i := range orders {
		ids[i] = orders[i].ID
		index[orders[i].ID] = i
		orders[i].Items = []models.OrderLine{}
	}

	rows, err := r.db.Query(ctx, database.ListOrderItemsSQL, ids)
	if err != nil {
		return fmt.Errorf("failed to query order items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var line models.OrderLine
		err := rows.Scan(
			&line.OrderID,
			&line.ID,
			&line.MenuItemID,
			&line.ItemName,
			&line.Quantity,
			&line.PriceAtOrder,
			&line.Category,
		)
		if err != nil {
			return fmt.Errorf("failed to scan order item: %w", err)
		}
		i := index[line.OrderID]
		orders[i].Items = append(orders[i].Items, line)
	}
	return rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanOrder(row rowScanner) (models.Order, error) {
	var o models.Order
	err := row.Scan(
		&o.ID,
		&o.TableNumber,
		&o.CustomerName,
		&o.WaiterName,
		&o.Status,
		&o.Priority,
		&o.TaxRate,
		&o.TaxAmount,
		&o.TotalAmount,
		&o.ItemCount,
		&o.CreatedAt,
		&o.UpdatedAt,
	)
	return o, err
}
