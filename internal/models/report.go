package models

// AmountBucket is one labelled currency value in an ordered series
type AmountBucket struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// CountBucket is one labelled count in an ordered series
type CountBucket struct {
	Label string `json:"label"`
	Count int64  `json:"count"`
}

// Report is the monthly metrics report. Series are ordered slices so the
// JSON keeps chronological and band order.
type Report struct {
	Year  int `json:"year"`
	Month int `json:"month"`

	TotalRevenue       float64 `json:"total_revenue"`
	TotalRevenueGrowth float64 `json:"total_revenue_growth"`
	AvgOrderValue      float64 `json:"avg_order_value"`
	AvgOrderGrowth     float64 `json:"avg_order_growth"`
	TotalOrders        int64   `json:"total_orders"`
	// TotalCustomers is the staff/user account count; there is no separate
	// customer entity behind it.
	TotalCustomers    int64   `json:"total_customers"`
	CustomerGrowth    float64 `json:"customer_growth"`
	InventoryTurnover float64 `json:"inventory_turnover"`

	RevenueTrend    []AmountBucket `json:"revenue_trend"`
	OrdersTrend     []CountBucket  `json:"orders_trend"`
	SalesByCategory []AmountBucket `json:"sales_by_category"`
	PeakDiningHours []CountBucket  `json:"peak_dining_hours"`

	TotalTaxCollected         float64 `json:"total_tax_collected"`
	InventoryWastageValue     float64 `json:"inventory_wastage_value"`
	TopStaffName              string  `json:"top_staff_name"`
	TopStaffSales             float64 `json:"top_staff_sales"`
	CustomerSatisfactionScore float64 `json:"customer_satisfaction_score"`
}

// CategoryUnits is units sold for one category across all orders
type CategoryUnits struct {
	Category string `json:"category"`
	Units    int64  `json:"units"`
}

// DashboardStats is the always-current operational snapshot
type DashboardStats struct {
	ActiveOrders        int64   `json:"active_orders"`
	LowStockItems       int64   `json:"low_stock_items"`
	TodayRevenue        float64 `json:"today_revenue"`
	TotalRevenue        float64 `json:"total_revenue"`
	TotalInventoryItems int64   `json:"total_inventory_items"`
	TotalTables         int64   `json:"total_tables"`
	OccupiedTables      int64   `json:"occupied_tables"`

	RevenueLast7Days        []AmountBucket `json:"revenue_last_7_days"`
	SalesByCategory         []CountBucket  `json:"sales_by_category"`
	SalesByCategoryFallback bool           `json:"sales_by_category_fallback"`
}
