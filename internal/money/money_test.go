package money

import "testing"

func TestRound2(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{2.675, 2.68},
		{1.005, 1.01},
		{1.004, 1},
		{10, 10},
		{0, 0},
		{-1.005, -1.01},
		{33.333333, 33.33},
	}
	for _, tt := range tests {
		if got := Round2(tt.in); got != tt.want {
			t.Errorf("Round2(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestOrderTotals(t *testing.T) {
	tests := []struct {
		name    string
		lines   []Line
		rate    float64
		want    Totals
	}{
		{
			name:  "no tax",
			lines: []Line{{Price: 12.5, Quantity: 2}, {Price: 3.2, Quantity: 1}},
			rate:  0,
			want:  Totals{Subtotal: 28.2, TaxAmount: 0, Total: 28.2, ItemCount: 3},
		},
		{
			name:  "with tax",
			lines: []Line{{Price: 10, Quantity: 3}},
			rate:  5,
			want:  Totals{Subtotal: 30, TaxAmount: 1.5, Total: 31.5, ItemCount: 3},
		},
		{
			name:  "tax rounds half up",
			lines: []Line{{Price: 0.1, Quantity: 1}, {Price: 0.2, Quantity: 1}, {Price: 10.05, Quantity: 1}},
			rate:  5,
			// subtotal 10.35, tax 0.5175
			want: Totals{Subtotal: 10.35, TaxAmount: 0.52, Total: 10.87, ItemCount: 3},
		},
		{
			name:  "empty",
			lines: nil,
			rate:  18,
			want:  Totals{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := OrderTotals(tt.lines, tt.rate)
			if got != tt.want {
				t.Errorf("OrderTotals() = %+v, want %+v", got, tt.want)
			}
			if Round2(got.Subtotal+got.TaxAmount) != got.Total {
				t.Errorf("total %v != subtotal %v + tax %v", got.Total, got.Subtotal, got.TaxAmount)
			}
		})
	}
}

func TestSum(t *testing.T) {
	var s Sum
	for i := 0; i < 10; i++ {
		s.Add(0.1)
	}
	if s.Float() != 1 {
		t.Errorf("Float() = %v, want exactly 1", s.Float())
	}
	if got := s.Div(3); got != 0.33 {
		t.Errorf("Div(3) = %v, want 0.33", got)
	}
	if got := s.Div(0); got != 0 {
		t.Errorf("Div(0) = %v, want 0", got)
	}

	var p Sum
	p.AddProduct(2.5, 4)
	if p.Cmp(s) <= 0 || p.Rounded() != 10 {
		t.Errorf("AddProduct: got %v", p.Rounded())
	}
}
