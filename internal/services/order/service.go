package order

import (
	"context"
	"errors"
	"fmt"
	"time"

	"restaurant-backoffice/internal/logger"
	"restaurant-backoffice/internal/metrics"
	"restaurant-backoffice/internal/models"
	"restaurant-backoffice/internal/money"
	"restaurant-backoffice/internal/services/order/internal/validation"
)

// Catalog resolves menu items at their current price
type Catalog interface {
	Resolve(ctx context.Context, id int64) (models.MenuItem, error)
}

// Ledger is the durable record of orders
type Ledger interface {
	Append(ctx context.Context, o *models.Order) (int64, error)
	Get(ctx context.Context, id int64) (*models.Order, error)
	List(ctx context.Context, status *models.OrderStatus) ([]models.Order, error)
	UpdateStatus(ctx context.Context, id int64, status models.OrderStatus, changedBy string, at time.Time) (models.StatusChange, error)
	History(ctx context.Context, id int64) ([]models.OrderStatusHistory, error)
}

// Notifier publishes status change messages
type Notifier interface {
	PublishNotification(ctx context.Context, msg interface{}) error
}

// IdempotencyStore maps client idempotency keys to created orders
type IdempotencyStore interface {
	TryLock(ctx context.Context, key string) (bool, error)
	Unlock(ctx context.Context, key string) error
	Remember(ctx context.Context, key string, orderID int64) error
	Recall(ctx context.Context, key string) (int64, bool, error)
}

// Service implements order intake and the status API
type Service struct {
	catalog  Catalog
	ledger   Ledger
	notifier Notifier
	idem     IdempotencyStore
	logger   *logger.Logger
	now      func() time.Time
}

// Option configures optional collaborators of Service
type Option func(*Service)

// WithNotifier publishes a message after every status change
func WithNotifier(n Notifier) Option {
	return func(s *Service) { s.notifier = n }
}

// WithIdempotency enables Idempotency-Key handling on CreateOrder
func WithIdempotency(store IdempotencyStore) Option {
	return func(s *Service) { s.idem = store }
}

// WithClock overrides the time source used for order timestamps
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService creates a new order service
func NewService(catalog Catalog, ledger Ledger, log *logger.Logger, opts ...Option) *Service {
	s := &Service{
		catalog: catalog,
		ledger:  ledger,
		logger:  log,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateOrder validates the cart, snapshots catalog prices and commits the
// order. A non-empty idempotencyKey makes repeated submissions return the
// order created by the first one.
func (s *Service) CreateOrder(ctx context.Context, req *models.CreateOrderRequest, idempotencyKey, requestID string) (*models.Order, error) {
	if err := validation.ValidateCreateOrderRequest(req); err != nil {
		metrics.OrderIntakeFailures.WithLabelValues("validation").Inc()
		return nil, err
	}

	if idempotencyKey == "" || s.idem == nil {
		return s.createOrder(ctx, req, requestID)
	}

	if id, ok, err := s.idem.Recall(ctx, idempotencyKey); err != nil {
		return nil, fmt.Errorf("failed to recall idempotency key: %w", err)
	} else if ok {
		s.logger.Info("order_replayed", "Returning order for repeated idempotency key", requestID, map[string]interface{}{
			"order_id": id,
		})
		return s.ledger.Get(ctx, id)
	}

	locked, err := s.idem.TryLock(ctx, idempotencyKey)
	if err != nil {
		return nil, fmt.Errorf("failed to lock idempotency key: %w", err)
	}
	if !locked {
		metrics.OrderIntakeFailures.WithLabelValues("duplicate").Inc()
		return nil, models.ErrDuplicateRequest
	}

	order, err := s.createOrder(ctx, req, requestID)
	if err != nil {
		if unlockErr := s.idem.Unlock(ctx, idempotencyKey); unlockErr != nil {
			s.logger.Error("idempotency_unlock_failed", "Failed to release idempotency key", requestID, unlockErr, nil)
		}
		return nil, err
	}

	if err := s.idem.Remember(ctx, idempotencyKey, order.ID); err != nil {
		s.logger.Error("idempotency_remember_failed", "Order committed but key not recorded", requestID, err, map[string]interface{}{
			"order_id": order.ID,
		})
	}
	return order, nil
}

func (s *Service) createOrder(ctx context.Context, req *models.CreateOrderRequest, requestID string) (*models.Order, error) {
	lines := make([]models.OrderLine, 0, len(req.Items))
	priced := make([]money.Line, 0, len(req.Items))

	for _, item := range req.Items {
		menuItem, err := s.catalog.Resolve(ctx, item.MenuItemID)
		if err != nil {
			if errors.Is(err, models.ErrMenuItemNotFound) {
				metrics.OrderIntakeFailures.WithLabelValues("menu_item_not_found").Inc()
			}
			return nil, err
		}

		id := menuItem.ID
		lines = append(lines, models.OrderLine{
			MenuItemID:   &id,
			ItemName:     menuItem.Name,
			Quantity:     item.Quantity,
			PriceAtOrder: menuItem.Price,
			Category:     menuItem.Category,
		})
		priced = append(priced, money.Line{Price: menuItem.Price, Quantity: item.Quantity})
	}

	taxRate := 0.0
	if req.TaxRate != nil {
		taxRate = *req.TaxRate
	}
	totals := money.OrderTotals(priced, taxRate)
	if err := validation.ValidateOrderTotal(totals.Total); err != nil {
		metrics.OrderIntakeFailures.WithLabelValues("validation").Inc()
		return nil, err
	}
	taxAmount := totals.TaxAmount

	order := &models.Order{
		TableNumber:  req.TableNumber,
		CustomerName: req.CustomerName,
		WaiterName:   req.WaiterName,
		Status:       models.StatusPending,
		Priority:     models.DefaultPriority,
		TaxRate:      taxRate,
		TaxAmount:    &taxAmount,
		TotalAmount:  totals.Total,
		ItemCount:    totals.ItemCount,
		CreatedAt:    s.now(),
		Items:        lines,
	}

	if _, err := s.ledger.Append(ctx, order); err != nil {
		metrics.OrderIntakeFailures.WithLabelValues("ledger").Inc()
		return nil, fmt.Errorf("failed to store order: %w", err)
	}

	metrics.OrdersCreated.Inc()
	s.logger.Info("order_created", "Order committed", requestID, map[string]interface{}{
		"order_id":     order.ID,
		"table_number": order.TableNumber,
		"item_count":   order.ItemCount,
		"total_amount": order.TotalAmount,
	})

	return order, nil
}

// GetOrder returns one order with its lines
func (s *Service) GetOrder(ctx context.Context, id int64) (*models.Order, error) {
	return s.ledger.Get(ctx, id)
}

// ListOrders returns all orders, or those in one status when status is non-empty
func (s *Service) ListOrders(ctx context.Context, status string) ([]models.Order, error) {
	if status == "" {
		return s.ledger.List(ctx, nil)
	}
	parsed, err := models.ParseOrderStatus(status)
	if err != nil {
		return nil, err
	}
	return s.ledger.List(ctx, &parsed)
}

// History returns the status log of an order
func (s *Service) History(ctx context.Context, id int64) ([]models.OrderStatusHistory, error) {
	return s.ledger.History(ctx, id)
}

// UpdateStatus applies a status given in any letter case and returns the
// updated order. The notification is best-effort once the change is committed.
func (s *Service) UpdateStatus(ctx context.Context, id int64, status, changedBy, requestID string) (*models.Order, error) {
	newStatus, err := models.ParseOrderStatus(status)
	if err != nil {
		return nil, err
	}
	if changedBy == "" {
		changedBy = "back-office"
	}

	change, err := s.ledger.UpdateStatus(ctx, id, newStatus, changedBy, s.now())
	if err != nil {
		return nil, err
	}
	metrics.OrderStatusChanges.WithLabelValues(string(newStatus)).Inc()

	order, err := s.ledger.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	s.logger.Info("order_status_updated", "Order status updated", requestID, map[string]interface{}{
		"order_id":   id,
		"old_status": change.OldStatus,
		"new_status": change.NewStatus,
		"changed_by": changedBy,
	})

	if s.notifier != nil {
		msg := models.CreateStatusUpdateMessage(order, change)
		if err := s.notifier.PublishNotification(ctx, msg); err != nil {
			s.logger.Error("notification_failed", "Failed to publish status notification", requestID, err, map[string]interface{}{
				"order_id": id,
			})
		}
	}

	return order, nil
}
