package dashboard

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"
	"restaurant-backoffice/internal/logger"
	"restaurant-backoffice/internal/metrics"
	"restaurant-backoffice/internal/models"
	"restaurant-backoffice/internal/money"
)

// OrderStats reads ledger aggregates
type OrderStats interface {
	CountByStatus(ctx context.Context, status models.OrderStatus) (int64, error)
	SumTotal(ctx context.Context) (float64, error)
	SumTotalBetween(ctx context.Context, from, to time.Time) (float64, error)
	ListBetween(ctx context.Context, from, to time.Time) ([]models.Order, error)
	UnitsByCategory(ctx context.Context) ([]models.CategoryUnits, error)
}

// LabelCounter counts rows overall and by status label. Inventory and
// dining tables both satisfy it.
type LabelCounter interface {
	Count(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context, label string) (int64, error)
}

// Service assembles dashboard snapshots
type Service struct {
	orders    OrderStats
	inventory LabelCounter
	tables    LabelCounter
	loc       *time.Location
	logger    *logger.Logger
	now       func() time.Time
}

// NewService creates a new dashboard service
func NewService(orders OrderStats, inventory, tables LabelCounter, loc *time.Location, log *logger.Logger) *Service {
	if loc == nil {
		loc = time.Local
	}
	return &Service{
		orders:    orders,
		inventory: inventory,
		tables:    tables,
		loc:       loc,
		logger:    log,
		now:       time.Now,
	}
}

// Stats reads every dashboard figure concurrently. Any failing read fails
// the snapshot except units per category, which falls back to a fixed
// distribution and sets SalesByCategoryFallback.
func (s *Service) Stats(ctx context.Context, requestID string) (*models.DashboardStats, error) {
	started := time.Now()
	now := s.now()
	today := DayStart(now, s.loc)
	tomorrow := today.AddDate(0, 0, 1)
	chartFrom, chartTo := ChartWindow(now, s.loc)

	stats := &models.DashboardStats{}
	active := make([]int64, len(models.ActiveStatuses))

	g, gctx := errgroup.WithContext(ctx)

	for i, status := range models.ActiveStatuses {
		g.Go(func() error {
			n, err := s.orders.CountByStatus(gctx, status)
			if err != nil {
				return fmt.Errorf("failed to count %s orders: %w", status, err)
			}
			active[i] = n
			return nil
		})
	}
	g.Go(func() error {
		total, err := s.orders.SumTotal(gctx)
		if err != nil {
			return fmt.Errorf("failed to sum revenue: %w", err)
		}
		stats.TotalRevenue = money.Round2(total)
		return nil
	})
	g.Go(func() error {
		total, err := s.orders.SumTotalBetween(gctx, today, tomorrow)
		if err != nil {
			return fmt.Errorf("failed to sum today's revenue: %w", err)
		}
		stats.TodayRevenue = money.Round2(total)
		return nil
	})
	g.Go(func() error {
		orders, err := s.orders.ListBetween(gctx, chartFrom, chartTo)
		if err != nil {
			return fmt.Errorf("failed to load recent orders: %w", err)
		}
		stats.RevenueLast7Days = RevenueByWeekday(orders, now, s.loc)
		return nil
	})
	g.Go(func() error {
		n, err := s.inventory.Count(gctx)
		if err != nil {
			return fmt.Errorf("failed to count inventory: %w", err)
		}
		stats.TotalInventoryItems = n
		return nil
	})
	g.Go(func() error {
		n, err := s.inventory.CountByStatus(gctx, models.InventoryLowStock)
		if err != nil {
			return fmt.Errorf("failed to count low stock: %w", err)
		}
		stats.LowStockItems = n
		return nil
	})
	g.Go(func() error {
		n, err := s.tables.Count(gctx)
		if err != nil {
			return fmt.Errorf("failed to count tables: %w", err)
		}
		stats.TotalTables = n
		return nil
	})
	g.Go(func() error {
		n, err := s.tables.CountByStatus(gctx, models.TableOccupied)
		if err != nil {
			return fmt.Errorf("failed to count occupied tables: %w", err)
		}
		stats.OccupiedTables = n
		return nil
	})
	g.Go(func() error {
		units, err := s.orders.UnitsByCategory(gctx)
		if err != nil {
			s.logger.Warn("category_sales_fallback", "Units per category unavailable, serving fallback distribution", requestID, map[string]interface{}{
				"error": err.Error(),
			})
			metrics.CategorySalesFallbacks.Inc()
			stats.SalesByCategory = fallbackSales()
			stats.SalesByCategoryFallback = true
			return nil
		}
		stats.SalesByCategory = CategoryBuckets(units)
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, n := range active {
		stats.ActiveOrders += n
	}

	metrics.ReportBuildDuration.WithLabelValues("dashboard").Observe(time.Since(started).Seconds())
	s.logger.Debug("dashboard_built", "Dashboard snapshot computed", requestID, map[string]interface{}{
		"active_orders": stats.ActiveOrders,
		"fallback":      stats.SalesByCategoryFallback,
		"duration_ms":   time.Since(started).Milliseconds(),
	})

	return stats, nil
}
