package models

import (
	"fmt"
	"strings"
	"time"
)

// OrderStatus represents the status of an order
type OrderStatus string

const (
	StatusPending   OrderStatus = "PENDING"
	StatusPreparing OrderStatus = "PREPARING"
	StatusReady     OrderStatus = "READY"
	StatusCompleted OrderStatus = "COMPLETED"
)

// DefaultPriority is assigned to every new order
const DefaultPriority = "Normal"

// ActiveStatuses are the statuses counted as in-flight on the dashboard
var ActiveStatuses = []OrderStatus{StatusPending, StatusPreparing, StatusReady}

// ParseOrderStatus accepts a status name in any letter case
func ParseOrderStatus(s string) (OrderStatus, error) {
	switch status := OrderStatus(strings.ToUpper(strings.TrimSpace(s))); status {
	case StatusPending, StatusPreparing, StatusReady, StatusCompleted:
		return status, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
	}
}

// OrderLine is one menu item on an order, priced at order time
type OrderLine struct {
	ID           int64   `json:"id,omitempty" db:"id"`
	OrderID      int64   `json:"order_id,omitempty" db:"order_id"`
	MenuItemID   *int64  `json:"menu_item_id" db:"menu_item_id"`
	ItemName     string  `json:"item_name" db:"item_name"`
	Quantity     int     `json:"quantity" db:"quantity"`
	PriceAtOrder float64 `json:"price_at_order" db:"price_at_order"`
	// Category is read from the catalog when the line is loaded; nil once
	// the menu item has been removed.
	Category *string `json:"category,omitempty" db:"category"`
}

// Order represents a table order and its lines
type Order struct {
	ID           int64       `json:"id" db:"id"`
	TableNumber  int         `json:"table_number" db:"table_number"`
	CustomerName string      `json:"customer_name" db:"customer_name"`
	WaiterName   string      `json:"waiter_name" db:"waiter_name"`
	Status       OrderStatus `json:"status" db:"status"`
	Priority     string      `json:"priority" db:"priority"`
	TaxRate      float64     `json:"tax_rate" db:"tax_rate"`
	TaxAmount    *float64    `json:"tax_amount" db:"tax_amount"`
	TotalAmount  float64     `json:"total_amount" db:"total_amount"`
	ItemCount    int         `json:"total_items_count" db:"total_items_count"`
	CreatedAt    time.Time   `json:"order_time" db:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at" db:"updated_at"`
	Items        []OrderLine `json:"items"`
}

// Tax returns the tax amount, treating a missing value as zero
func (o *Order) Tax() float64 {
	if o.TaxAmount == nil {
		return 0
	}
	return *o.TaxAmount
}

// CartItem is one requested line of a cart
type CartItem struct {
	MenuItemID int64 `json:"menu_item_id"`
	Quantity   int   `json:"quantity"`
}

// CreateOrderRequest represents the request to create a new order
type CreateOrderRequest struct {
	TableNumber  int        `json:"table_number"`
	CustomerName string     `json:"customer_name"`
	WaiterName   string     `json:"waiter_name"`
	TaxRate      *float64   `json:"tax_rate,omitempty"`
	Items        []CartItem `json:"items"`
}

// OrderStatusHistory represents an entry in the order status log
type OrderStatusHistory struct {
	Status    OrderStatus `json:"status" db:"status"`
	ChangedBy string      `json:"changed_by" db:"changed_by"`
	ChangedAt time.Time   `json:"timestamp" db:"changed_at"`
	Notes     *string     `json:"notes,omitempty" db:"notes"`
}

// StatusChange is the outcome of a status update
type StatusChange struct {
	OrderID   int64       `json:"order_id"`
	OldStatus OrderStatus `json:"old_status"`
	NewStatus OrderStatus `json:"new_status"`
	ChangedBy string      `json:"changed_by"`
	ChangedAt time.Time   `json:"changed_at"`
}
