package models

import "time"

// FallbackCategory labels sales whose menu item has no category
const FallbackCategory = "Food & Dining"

// Inventory and table status labels maintained by the back-office CRUD
const (
	InventoryInStock    = "In Stock"
	InventoryLowStock   = "Low Stock"
	InventoryOutOfStock = "Out of Stock"

	TableAvailable = "Available"
	TableOccupied  = "Occupied"
	TableReserved  = "Reserved"
)

// MenuItem is a sellable dish with its current price
type MenuItem struct {
	ID       int64   `json:"id" db:"id"`
	Name     string  `json:"name" db:"name"`
	Category *string `json:"category" db:"category"`
	Price    float64 `json:"price" db:"price"`
	Cost     float64 `json:"cost" db:"cost"`
}

// InventoryItem is a stocked ingredient or supply
type InventoryItem struct {
	ID         int64      `json:"id" db:"id"`
	Name       string     `json:"name" db:"name"`
	Stock      float64    `json:"stock" db:"stock"`
	MinLevel   float64    `json:"min_level" db:"min_level"`
	MaxLevel   float64    `json:"max_level" db:"max_level"`
	UnitCost   float64    `json:"unit_cost" db:"unit_cost"`
	ExpiryDate *time.Time `json:"expiry_date,omitempty" db:"expiry_date"`
	Status     string     `json:"status" db:"status"`
}
