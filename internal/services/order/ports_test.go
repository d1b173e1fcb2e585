package order_test

import (
	"restaurant-backoffice/internal/idempotency"
	"restaurant-backoffice/internal/messaging"
	"restaurant-backoffice/internal/services/order"
)

var (
	_ order.Notifier         = (*messaging.Publisher)(nil)
	_ order.IdempotencyStore = (*idempotency.RedisStore)(nil)
)
