package report

import (
	"testing"
	"time"

	"restaurant-backoffice/internal/models"
)

func strPtr(s string) *string { return &s }

func taxPtr(v float64) *float64 { return &v }

func at(year int, month time.Month, day, hour, min int) time.Time {
	return time.Date(year, month, day, hour, min, 0, 0, time.UTC)
}

func order(created time.Time, waiter string, total float64, tax *float64, lines ...models.OrderLine) models.Order {
	return models.Order{
		WaiterName:  waiter,
		TotalAmount: total,
		TaxAmount:   tax,
		CreatedAt:   created,
		Items:       lines,
	}
}

func line(category *string, price float64, qty int) models.OrderLine {
	return models.OrderLine{Category: category, PriceAtOrder: price, Quantity: qty}
}

func TestAggregate_MonthScenario(t *testing.T) {
	snap := Snapshot{
		Orders: []models.Order{
			order(at(2025, time.March, 2, 12, 15), "Asha", 100, taxPtr(10)),
			order(at(2025, time.March, 5, 19, 40), "Ravi", 50, taxPtr(0)),
		},
	}

	r := Aggregate(Period{Year: 2025, Month: 3}, snap, DefaultPlaceholders, time.UTC)

	if r.TotalRevenue != 150 {
		t.Errorf("total revenue = %v, want 150", r.TotalRevenue)
	}
	if r.TotalTaxCollected != 10 {
		t.Errorf("tax collected = %v, want 10", r.TotalTaxCollected)
	}
	if len(r.RevenueTrend) != 31 || len(r.OrdersTrend) != 31 {
		t.Fatalf("trend lengths = %d/%d, want 31", len(r.RevenueTrend), len(r.OrdersTrend))
	}
	if r.RevenueTrend[0].Label != "Mar 01" || r.RevenueTrend[30].Label != "Mar 31" {
		t.Errorf("trend labels run %q..%q", r.RevenueTrend[0].Label, r.RevenueTrend[30].Label)
	}

	var sum float64
	for i, b := range r.RevenueTrend {
		sum += b.Value
		switch i {
		case 1:
			if b.Value != 100 || r.OrdersTrend[i].Count != 1 {
				t.Errorf("day 2 = %v/%d, want 100/1", b.Value, r.OrdersTrend[i].Count)
			}
		case 4:
			if b.Value != 50 || r.OrdersTrend[i].Count != 1 {
				t.Errorf("day 5 = %v/%d, want 50/1", b.Value, r.OrdersTrend[i].Count)
			}
		default:
			if b.Value != 0 || r.OrdersTrend[i].Count != 0 {
				t.Errorf("%s = %v/%d, want zero", b.Label, b.Value, r.OrdersTrend[i].Count)
			}
		}
	}
	if sum != r.TotalRevenue {
		t.Errorf("sum of daily revenue %v != total revenue %v", sum, r.TotalRevenue)
	}

	if r.AvgOrderValue != 75 {
		t.Errorf("avg order value = %v, want 75", r.AvgOrderValue)
	}
	if r.TopStaffName != "Asha" || r.TopStaffSales != 100 {
		t.Errorf("top staff = %s/%v, want Asha/100", r.TopStaffName, r.TopStaffSales)
	}
}

func TestAggregate_TrendIsDense(t *testing.T) {
	tests := []struct {
		name  string
		year  int
		month int
		want  int
	}{
		{"february", 2025, 2, 28},
		{"leap february", 2024, 2, 29},
		{"april", 2025, 4, 30},
		{"december", 2025, 12, 31},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Aggregate(Period{Year: tt.year, Month: tt.month}, Snapshot{}, DefaultPlaceholders, time.UTC)
			if len(r.RevenueTrend) != tt.want {
				t.Errorf("trend entries = %d, want %d", len(r.RevenueTrend), tt.want)
			}
			for i := 1; i < len(r.RevenueTrend); i++ {
				if r.RevenueTrend[i].Label == r.RevenueTrend[i-1].Label {
					t.Fatalf("duplicate label %q", r.RevenueTrend[i].Label)
				}
			}
		})
	}
}

func TestAggregate_WindowBoundaries(t *testing.T) {
	snap := Snapshot{
		Orders: []models.Order{
			order(at(2025, time.February, 28, 23, 59), "", 1, nil),
			order(at(2025, time.March, 1, 0, 0), "", 10, nil),
			order(at(2025, time.March, 31, 23, 59), "", 20, nil),
			order(at(2025, time.April, 1, 0, 0), "", 40, nil),
		},
	}

	r := Aggregate(Period{Year: 2025, Month: 3}, snap, DefaultPlaceholders, time.UTC)

	if r.TotalOrders != 2 || r.TotalRevenue != 30 {
		t.Errorf("orders/revenue = %d/%v, want 2/30", r.TotalOrders, r.TotalRevenue)
	}
}

func TestAggregate_UsesLocation(t *testing.T) {
	ist := time.FixedZone("IST", 5*3600+1800)
	// 23:30 UTC on Mar 31 is already Apr 1 in IST.
	snap := Snapshot{Orders: []models.Order{order(at(2025, time.March, 31, 23, 30), "", 10, nil)}}

	march := Aggregate(Period{Year: 2025, Month: 3}, snap, DefaultPlaceholders, ist)
	april := Aggregate(Period{Year: 2025, Month: 4}, snap, DefaultPlaceholders, ist)

	if march.TotalOrders != 0 || april.TotalOrders != 1 {
		t.Errorf("march/april orders = %d/%d, want 0/1", march.TotalOrders, april.TotalOrders)
	}
	if april.OrdersTrend[0].Count != 1 {
		t.Errorf("Apr 01 count = %d, want 1", april.OrdersTrend[0].Count)
	}
}

func TestAggregate_MonthClamp(t *testing.T) {
	tests := []struct {
		month     int
		wantMonth int
		wantFirst string
	}{
		{0, 1, "Jan 01"},
		{-4, 1, "Jan 01"},
		{13, 12, "Dec 01"},
		{6, 6, "Jun 01"},
	}
	for _, tt := range tests {
		r := Aggregate(Period{Year: 2025, Month: tt.month}, Snapshot{}, DefaultPlaceholders, time.UTC)
		if r.Month != tt.wantMonth || r.RevenueTrend[0].Label != tt.wantFirst {
			t.Errorf("month %d: got month %d first label %q, want %d %q", tt.month, r.Month, r.RevenueTrend[0].Label, tt.wantMonth, tt.wantFirst)
		}
	}
}

func TestAggregate_PeakHours(t *testing.T) {
	var orders []models.Order
	for _, h := range []int{0, 1, 10, 11, 12, 13, 22, 23} {
		orders = append(orders, order(at(2025, time.May, 10, h, 30), "", 5, nil))
	}

	r := Aggregate(Period{Year: 2025, Month: 5}, Snapshot{Orders: orders}, DefaultPlaceholders, time.UTC)

	want := map[string]int64{"11 AM": 2, "1 PM": 1, "3 PM": 0, "5 PM": 0, "7 PM": 0, "9 PM": 1, "11 PM": 2}
	if len(r.PeakDiningHours) != len(PeakBands) {
		t.Fatalf("bands = %d, want %d", len(r.PeakDiningHours), len(PeakBands))
	}
	var total int64
	for i, b := range r.PeakDiningHours {
		if b.Label != PeakBands[i] {
			t.Errorf("band %d label = %q, want %q", i, b.Label, PeakBands[i])
		}
		if b.Count != want[b.Label] {
			t.Errorf("band %s = %d, want %d", b.Label, b.Count, want[b.Label])
		}
		total += b.Count
	}
	if total > r.TotalOrders {
		t.Errorf("peak counts %d exceed orders %d", total, r.TotalOrders)
	}
	if total != 6 {
		t.Errorf("peak counts = %d, want 6 (hours 1 and 10 dropped)", total)
	}
}

func TestAggregate_CategorySales(t *testing.T) {
	snap := Snapshot{
		Orders: []models.Order{
			order(at(2025, time.July, 3, 13, 0), "", 0, nil,
				line(strPtr("Main Course"), 14, 2),
				line(nil, 4.5, 1),
			),
			order(at(2025, time.July, 4, 13, 0), "", 0, nil,
				line(strPtr("starters"), 5.25, 1),
				line(strPtr("Starters"), 5.25, 2),
				line(strPtr("Main Course"), 12.75, 1),
				line(strPtr(""), 1.1, 3),
			),
		},
	}

	r := Aggregate(Period{Year: 2025, Month: 7}, snap, DefaultPlaceholders, time.UTC)

	want := []models.AmountBucket{
		{Label: "Main Course", Value: 40.75},
		{Label: "Food & Dining", Value: 7.8},
		{Label: "starters", Value: 5.25},
		{Label: "Starters", Value: 10.5},
	}
	if len(r.SalesByCategory) != len(want) {
		t.Fatalf("categories = %+v, want %+v", r.SalesByCategory, want)
	}
	for i := range want {
		if r.SalesByCategory[i] != want[i] {
			t.Errorf("category %d = %+v, want %+v", i, r.SalesByCategory[i], want[i])
		}
	}
}

func TestAggregate_TopStaff(t *testing.T) {
	tests := []struct {
		name      string
		orders    []models.Order
		wantName  string
		wantSales float64
	}{
		{
			name: "tie keeps first seen",
			orders: []models.Order{
				order(at(2025, time.June, 1, 12, 0), "X", 50, nil),
				order(at(2025, time.June, 1, 13, 0), "Y", 50, nil),
			},
			wantName:  "X",
			wantSales: 50,
		},
		{
			name: "sums per waiter",
			orders: []models.Order{
				order(at(2025, time.June, 1, 12, 0), "X", 30, nil),
				order(at(2025, time.June, 2, 12, 0), "Y", 45, nil),
				order(at(2025, time.June, 3, 12, 0), "X", 20.5, nil),
			},
			wantName:  "X",
			wantSales: 50.5,
		},
		{
			name: "no waiter names",
			orders: []models.Order{
				order(at(2025, time.June, 1, 12, 0), "", 80, nil),
			},
			wantName:  "N/A",
			wantSales: 0,
		},
		{
			name:      "no orders",
			orders:    nil,
			wantName:  "N/A",
			wantSales: 0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Aggregate(Period{Year: 2025, Month: 6}, Snapshot{Orders: tt.orders}, DefaultPlaceholders, time.UTC)
			if r.TopStaffName != tt.wantName || r.TopStaffSales != tt.wantSales {
				t.Errorf("top staff = %s/%v, want %s/%v", r.TopStaffName, r.TopStaffSales, tt.wantName, tt.wantSales)
			}
		})
	}
}

func TestAggregate_EmptyPeriod(t *testing.T) {
	r := Aggregate(Period{Year: 2025, Month: 8}, Snapshot{}, DefaultPlaceholders, time.UTC)

	if r.AvgOrderValue != 0 || r.InventoryTurnover != 0 || r.TotalRevenue != 0 || r.TotalTaxCollected != 0 {
		t.Errorf("expected zero figures, got %+v", r)
	}
	if len(r.SalesByCategory) != 0 {
		t.Errorf("categories = %+v, want none", r.SalesByCategory)
	}
}

func TestAggregate_InventoryFigures(t *testing.T) {
	expiring := time.Date(2025, time.September, 20, 0, 0, 0, 0, time.UTC)
	later := time.Date(2025, time.October, 2, 0, 0, 0, 0, time.UTC)
	lastYear := time.Date(2024, time.September, 20, 0, 0, 0, 0, time.UTC)

	snap := Snapshot{
		Orders: []models.Order{
			order(at(2025, time.September, 1, 12, 0), "", 100, nil),
			order(at(2025, time.September, 2, 12, 0), "", 50, nil),
		},
		Inventory: []models.InventoryItem{
			{Stock: 6, UnitCost: 9.5, ExpiryDate: &expiring},
			{Stock: 2.5, UnitCost: 3.2, ExpiryDate: &expiring},
			{Stock: 10, UnitCost: 1, ExpiryDate: &later},
			{Stock: 4, UnitCost: 2, ExpiryDate: &lastYear},
			{Stock: 40, UnitCost: 2.1},
		},
		StaffCount: 12,
	}

	r := Aggregate(Period{Year: 2025, Month: 9}, snap, DefaultPlaceholders, time.UTC)

	if r.InventoryWastageValue != 65 {
		t.Errorf("wastage = %v, want 65", r.InventoryWastageValue)
	}
	if r.InventoryTurnover != 30 {
		t.Errorf("turnover = %v, want 30", r.InventoryTurnover)
	}
	if r.TotalCustomers != 12 {
		t.Errorf("total customers = %d, want staff count 12", r.TotalCustomers)
	}
}

func TestAggregate_RoundsAtOutput(t *testing.T) {
	snap := Snapshot{
		Orders: []models.Order{
			order(at(2025, time.January, 5, 12, 0), "", 10, taxPtr(0.005)),
			order(at(2025, time.January, 5, 13, 0), "", 10, taxPtr(0.005)),
			order(at(2025, time.January, 6, 13, 0), "", 10.01, taxPtr(0.005)),
		},
	}

	r := Aggregate(Period{Year: 2025, Month: 1}, snap, DefaultPlaceholders, time.UTC)

	// 0.015 rounds to 0.02; rounding each tax first would give 0.03.
	if r.TotalTaxCollected != 0.02 {
		t.Errorf("tax collected = %v, want 0.02", r.TotalTaxCollected)
	}
	if r.AvgOrderValue != 10 {
		t.Errorf("avg order value = %v, want 10", r.AvgOrderValue)
	}
}

func TestAggregate_Placeholders(t *testing.T) {
	ph := Placeholders{RevenueGrowth: 1, AvgOrderGrowth: 2, CustomerGrowth: 3, SatisfactionScore: 4}
	r := Aggregate(Period{Year: 2025, Month: 1}, Snapshot{}, ph, time.UTC)

	if r.TotalRevenueGrowth != 1 || r.AvgOrderGrowth != 2 || r.CustomerGrowth != 3 || r.CustomerSatisfactionScore != 4 {
		t.Errorf("placeholders not carried through: %+v", r)
	}
}
