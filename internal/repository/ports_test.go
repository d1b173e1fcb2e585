package repository_test

import (
	"restaurant-backoffice/internal/repository"
	"restaurant-backoffice/internal/services/dashboard"
	"restaurant-backoffice/internal/services/order"
	"restaurant-backoffice/internal/services/report"
)

var (
	_ order.Catalog = (*repository.MenuRepository)(nil)
	_ order.Ledger  = (*repository.OrderRepository)(nil)

	_ report.OrderSource     = (*repository.OrderRepository)(nil)
	_ report.InventorySource = (*repository.InventoryRepository)(nil)
	_ report.StaffCounter    = (*repository.UserRepository)(nil)

	_ dashboard.OrderStats   = (*repository.OrderRepository)(nil)
	_ dashboard.LabelCounter = (*repository.InventoryRepository)(nil)
	_ dashboard.LabelCounter = (*repository.TableRepository)(nil)
)
