package report

import (
	"time"

	"restaurant-backoffice/internal/models"
	"restaurant-backoffice/internal/money"
)

// DayLabelLayout formats trend buckets, e.g. "Mar 07"
const DayLabelLayout = "Jan 02"

// NoStaff is reported when no order in the period names a waiter
const NoStaff = "N/A"

// PeakBands are the two-hour dining bands in display order. The last band
// wraps midnight and covers 23:00 to 00:59.
var PeakBands = []string{"11 AM", "1 PM", "3 PM", "5 PM", "7 PM", "9 PM", "11 PM"}

// Placeholders are fixed figures shown on the report. They are not
// derived from any data and exist so the report keeps its shape.
type Placeholders struct {
	RevenueGrowth     float64
	AvgOrderGrowth    float64
	CustomerGrowth    float64
	SatisfactionScore float64
}

// DefaultPlaceholders are used unless configuration overrides them
var DefaultPlaceholders = Placeholders{
	RevenueGrowth:     12.5,
	AvgOrderGrowth:    4.2,
	CustomerGrowth:    8.1,
	SatisfactionScore: 4.8,
}

// Period selects one calendar month
type Period struct {
	Year  int
	Month int
}

// NewPeriod builds a period, clamping month into 1..12
func NewPeriod(year, month int) Period {
	if month < 1 {
		month = 1
	}
	if month > 12 {
		month = 12
	}
	return Period{Year: year, Month: month}
}

// Window returns the half-open range [first of month, first of next month)
func (p Period) Window(loc *time.Location) (time.Time, time.Time) {
	start := time.Date(p.Year, time.Month(p.Month), 1, 0, 0, 0, 0, loc)
	return start, start.AddDate(0, 1, 0)
}

// Snapshot is everything a report is computed from
type Snapshot struct {
	Orders     []models.Order
	Inventory  []models.InventoryItem
	StaffCount int64
}

// Aggregate computes the monthly report. Orders outside the period window
// are ignored, and are expected in creation order so that ties in the
// top-staff ranking go to the waiter seen first.
func Aggregate(p Period, snap Snapshot, ph Placeholders, loc *time.Location) *models.Report {
	if loc == nil {
		loc = time.Local
	}
	p = NewPeriod(p.Year, p.Month)
	start, end := p.Window(loc)

	var days []time.Time
	for d := start; d.Before(end); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	dayRevenue := make([]money.Sum, len(days))
	dayOrders := make([]int64, len(days))
	peak := make([]int64, len(PeakBands))

	var (
		revenue, tax money.Sum
		count        int64
		categories   = newAmountSeries()
		staff        = newAmountSeries()
	)

	for i := range snap.Orders {
		o := &snap.Orders[i]
		at := o.CreatedAt.In(loc)
		if at.Before(start) || !at.Before(end) {
			continue
		}

		count++
		revenue.Add(o.TotalAmount)
		tax.Add(o.Tax())

		day := at.Day() - 1
		dayRevenue[day].Add(o.TotalAmount)
		dayOrders[day]++

		if band, ok := peakBand(at.Hour()); ok {
			peak[band]++
		}

		for _, line := range o.Items {
			categories.get(categoryOf(line)).AddProduct(line.PriceAtOrder, float64(line.Quantity))
		}

		if o.WaiterName != "" {
			staff.get(o.WaiterName).Add(o.TotalAmount)
		}
	}

	report := &models.Report{
		Year:                      p.Year,
		Month:                     p.Month,
		TotalRevenue:              revenue.Rounded(),
		TotalRevenueGrowth:        ph.RevenueGrowth,
		AvgOrderValue:             revenue.Div(count),
		AvgOrderGrowth:            ph.AvgOrderGrowth,
		TotalOrders:               count,
		TotalCustomers:            snap.StaffCount,
		CustomerGrowth:            ph.CustomerGrowth,
		InventoryTurnover:         revenue.Div(int64(len(snap.Inventory))),
		RevenueTrend:              make([]models.AmountBucket, len(days)),
		OrdersTrend:               make([]models.CountBucket, len(days)),
		SalesByCategory:           categories.buckets(),
		PeakDiningHours:           make([]models.CountBucket, len(PeakBands)),
		TotalTaxCollected:         tax.Rounded(),
		InventoryWastageValue:     wastage(snap.Inventory, p),
		CustomerSatisfactionScore: ph.SatisfactionScore,
	}

	for i, d := range days {
		label := d.Format(DayLabelLayout)
		report.RevenueTrend[i] = models.AmountBucket{Label: label, Value: dayRevenue[i].Rounded()}
		report.OrdersTrend[i] = models.CountBucket{Label: label, Count: dayOrders[i]}
	}
	for i, band := range PeakBands {
		report.PeakDiningHours[i] = models.CountBucket{Label: band, Count: peak[i]}
	}

	report.TopStaffName, report.TopStaffSales = staff.top()
	return report
}

// peakBand maps an hour of day to its index in PeakBands
func peakBand(hour int) (int, bool) {
	switch {
	case hour >= 23 || hour < 1:
		return 6, true
	case hour >= 11 && hour < 23:
		return (hour - 11) / 2, true
	default:
		return 0, false
	}
}

func categoryOf(line models.OrderLine) string {
	if line.Category == nil || *line.Category == "" {
		return models.FallbackCategory
	}
	return *line.Category
}

// wastage values stock expiring within the report month
func wastage(items []models.InventoryItem, p Period) float64 {
	var sum money.Sum
	for _, it := range items {
		if it.ExpiryDate == nil {
			continue
		}
		// Dates carry no zone; compare the calendar fields as stored.
		if it.ExpiryDate.Year() == p.Year && int(it.ExpiryDate.Month()) == p.Month {
			sum.AddProduct(it.Stock, it.UnitCost)
		}
	}
	return sum.Rounded()
}

// amountSeries accumulates sums per label in first-seen order
type amountSeries struct {
	labels []string
	sums   map[string]*money.Sum
}

func newAmountSeries() *amountSeries {
	return &amountSeries{sums: map[string]*money.Sum{}}
}

func (s *amountSeries) get(label string) *money.Sum {
	sum, ok := s.sums[label]
	if !ok {
		sum = &money.Sum{}
		s.sums[label] = sum
		s.labels = append(s.labels, label)
	}
	return sum
}

func (s *amountSeries) buckets() []models.AmountBucket {
	out := make([]models.AmountBucket, 0, len(s.labels))
	for _, label := range s.labels {
		out = append(out, models.AmountBucket{Label: label, Value: s.sums[label].Rounded()})
	}
	return out
}

// top returns the label with the strictly largest positive sum; earlier
// labels win ties
func (s *amountSeries) top() (string, float64) {
	name, best := NoStaff, money.Sum{}
	for _, label := range s.labels {
		if sum := s.sums[label]; sum.Cmp(best) > 0 {
			name, best = label, *sum
		}
	}
	return name, best.Rounded()
}
