// Package money holds the currency arithmetic shared by intake and reporting.
// Amounts travel as float64 but are summed and rounded as decimals.
package money

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// Round2 rounds to two decimal places, halves away from zero
func Round2(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

// Totals are the computed money fields of an order
type Totals struct {
	Subtotal  float64
	TaxAmount float64
	Total     float64
	ItemCount int
}

// Line is a priced quantity
type Line struct {
	Price    float64
	Quantity int
}

// OrderTotals computes subtotal, tax and total for the given lines.
// Arithmetic is exact; tax and total are rounded once at the end, so
// Total equals Subtotal plus TaxAmount for prices with at most two places.
func OrderTotals(lines []Line, taxRate float64) Totals {
	subtotal := decimal.Zero
	items := 0
	for _, l := range lines {
		subtotal = subtotal.Add(decimal.NewFromFloat(l.Price).Mul(decimal.NewFromInt(int64(l.Quantity))))
		items += l.Quantity
	}

	tax := subtotal.Mul(decimal.NewFromFloat(taxRate)).Div(hundred)

	return Totals{
		Subtotal:  subtotal.Round(2).InexactFloat64(),
		TaxAmount: tax.Round(2).InexactFloat64(),
		Total:     subtotal.Add(tax).Round(2).InexactFloat64(),
		ItemCount: items,
	}
}

// Sum accumulates float amounts without binary drift
type Sum struct {
	d decimal.Decimal
}

// Add adds v to the sum
func (s *Sum) Add(v float64) {
	s.d = s.d.Add(decimal.NewFromFloat(v))
}

// AddProduct adds v*n to the sum
func (s *Sum) AddProduct(v float64, n float64) {
	s.d = s.d.Add(decimal.NewFromFloat(v).Mul(decimal.NewFromFloat(n)))
}

// Float returns the unrounded sum
func (s Sum) Float() float64 {
	return s.d.InexactFloat64()
}

// Rounded returns the sum rounded to two places
func (s Sum) Rounded() float64 {
	return s.d.Round(2).InexactFloat64()
}

// Div divides the sum by n and rounds to two places; a zero n yields zero
func (s Sum) Div(n int64) float64 {
	if n == 0 {
		return 0
	}
	return s.d.Div(decimal.NewFromInt(n)).Round(2).InexactFloat64()
}

// Cmp compares two sums
func (s Sum) Cmp(o Sum) int {
	return s.d.Cmp(o.d)
}
