package report

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"
	"restaurant-backoffice/internal/logger"
	"restaurant-backoffice/internal/metrics"
	"restaurant-backoffice/internal/models"
)

// OrderSource reads orders for a time range, oldest first
type OrderSource interface {
	ListBetween(ctx context.Context, from, to time.Time) ([]models.Order, error)
}

// InventorySource lists inventory items
type InventorySource interface {
	ListAll(ctx context.Context) ([]models.InventoryItem, error)
}

// StaffCounter counts staff accounts
type StaffCounter interface {
	Count(ctx context.Context) (int64, error)
}

// Service loads report inputs and aggregates them
type Service struct {
	orders       OrderSource
	inventory    InventorySource
	staff        StaffCounter
	placeholders Placeholders
	loc          *time.Location
	logger       *logger.Logger
	now          func() time.Time
}

// NewService creates a new report service. Report windows and day buckets
// are computed in loc.
func NewService(orders OrderSource, inventory InventorySource, staff StaffCounter, placeholders Placeholders, loc *time.Location, log *logger.Logger) *Service {
	if loc == nil {
		loc = time.Local
	}
	return &Service{
		orders:       orders,
		inventory:    inventory,
		staff:        staff,
		placeholders: placeholders,
		loc:          loc,
		logger:       log,
		now:          time.Now,
	}
}

// CurrentPeriod returns the month containing now
func (s *Service) CurrentPeriod() Period {
	now := s.now().In(s.loc)
	return Period{Year: now.Year(), Month: int(now.Month())}
}

// Build computes the report for year and month. The month is clamped
// into 1..12 rather than rejected.
func (s *Service) Build(ctx context.Context, year, month int, requestID string) (*models.Report, error) {
	started := time.Now()
	period := NewPeriod(year, month)
	from, to := period.Window(s.loc)

	var snap Snapshot
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		orders, err := s.orders.ListBetween(gctx, from, to)
		if err != nil {
			return fmt.Errorf("failed to load orders: %w", err)
		}
		snap.Orders = orders
		return nil
	})
	g.Go(func() error {
		items, err := s.inventory.ListAll(gctx)
		if err != nil {
			return fmt.Errorf("failed to load inventory: %w", err)
		}
		snap.Inventory = items
		return nil
	})
	g.Go(func() error {
		n, err := s.staff.Count(gctx)
		if err != nil {
			return fmt.Errorf("failed to count staff: %w", err)
		}
		snap.StaffCount = n
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	report := Aggregate(period, snap, s.placeholders, s.loc)
	metrics.ReportBuildDuration.WithLabelValues("monthly").Observe(time.Since(started).Seconds())

	s.logger.Debug("report_built", "Monthly report computed", requestID, map[string]interface{}{
		"year":          period.Year,
		"month":         period.Month,
		"orders":        report.TotalOrders,
		"total_revenue": report.TotalRevenue,
		"duration_ms":   time.Since(started).Milliseconds(),
	})

	return report, nil
}
