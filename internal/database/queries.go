package database

// Catalog queries
const (
	GetMenuItemByIDSQL = `
		SELECT id, name, category, price, cost
		FROM menu_items
		WHERE id = $1`
)

// Order ledger writes
const (
	InsertOrderSQL = `
		INSERT INTO customer_orders (
			table_number, customer_name, waiter_name, status, priority,
			tax_rate, tax_amount, total_amount, total_items_count, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $10)
		RETURNING id`

	InsertOrderItemSQL = `
		INSERT INTO order_items (order_id, line_no, menu_item_id, item_name, quantity, price_at_order)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`

	InsertOrderStatusLogSQL = `
		INSERT INTO order_status_log (order_id, status, changed_by, changed_at, notes)
		VALUES ($1, $2, $3, $4, $5)`

	LockOrderStatusSQL = `
		SELECT status FROM customer_orders WHERE id = $1 FOR UPDATE`

	UpdateOrderStatusSQL = `
		UPDATE customer_orders SET status = $2, updated_at = $3 WHERE id = $1`
)

// Order ledger reads
const (
	orderColumns = `
		SELECT id, table_number, customer_name, waiter_name, status, priority,
		       tax_rate, tax_amount, total_amount, total_items_count, created_at, updated_at
		FROM customer_orders`

	GetOrderByIDSQL = orderColumns + `
		WHERE id = $1`

	ListOrdersSQL = orderColumns + `
		ORDER BY created_at DESC, id DESC`

	ListOrdersByStatusSQL = orderColumns + `
		WHERE status = $1
		ORDER BY created_at DESC, id DESC`

	// Oldest first: report tie-breaks depend on encounter order.
	ListOrdersBetweenSQL = orderColumns + `
		WHERE created_at >= $1 AND created_at < $2
		ORDER BY created_at, id`

	ListOrderItemsSQL = `
		SELECT oi.order_id, oi.id, oi.menu_item_id, oi.item_name, oi.quantity, oi.price_at_order,
		       NULLIF(mi.category, '')
		FROM order_items oi
		LEFT JOIN menu_items mi ON mi.id = oi.menu_item_id
		WHERE oi.order_id = ANY($1)
		ORDER BY oi.order_id, oi.line_no`

	OrderExistsSQL = `
		SELECT EXISTS(SELECT 1 FROM customer_orders WHERE id = $1)`

	GetOrderStatusHistorySQL = `
		SELECT status, changed_by, changed_at, notes
		FROM order_status_log
		WHERE order_id = $1
		ORDER BY changed_at, id`
)

// Order ledger aggregates
const (
	CountOrdersByStatusSQL = `
		SELECT COUNT(*) FROM customer_orders WHERE status = $1`

	SumOrderTotalsSQL = `
		SELECT COALESCE(SUM(total_amount), 0) FROM customer_orders`

	SumOrderTotalsBetweenSQL = `
		SELECT COALESCE(SUM(total_amount), 0)
		FROM customer_orders
		WHERE created_at >= $1 AND created_at < $2`

	UnitsByCategorySQL = `
		SELECT COALESCE(NULLIF(mi.category, ''), $1) AS category, SUM(oi.quantity)
		FROM order_items oi
		LEFT JOIN menu_items mi ON mi.id = oi.menu_item_id
		GROUP BY 1
		ORDER BY 2 DESC, 1`
)

// Inventory, table and staff reads
const (
	ListInventoryItemsSQL = `
		SELECT id, name, stock, min_level, max_level, unit_cost, expiry_date, status
		FROM inventory_items
		ORDER BY id`

	CountInventoryItemsSQL = `
		SELECT COUNT(*) FROM inventory_items`

	CountInventoryByStatusSQL = `
		SELECT COUNT(*) FROM inventory_items WHERE status = $1`

	CountDiningTablesSQL = `
		SELECT COUNT(*) FROM dining_tables`

	CountDiningTablesByStatusSQL = `
		SELECT COUNT(*) FROM dining_tables WHERE status = $1`

	CountUsersSQL = `
		SELECT COUNT(*) FROM users`
)
