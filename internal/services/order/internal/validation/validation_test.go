package validation

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"testing"

	"restaurant-backoffice/internal/models"
)

func rate(v float64) *float64 { return &v }

func manyLines(n, qty int) []models.CartItem {
	items := make([]models.CartItem, n)
	for i := range items {
		items[i] = models.CartItem{MenuItemID: int64(i + 1), Quantity: qty}
	}
	return items
}

func TestValidateCreateOrderRequest(t *testing.T) {
	tests := []struct {
		name      string
		req       *models.CreateOrderRequest
		wantErr   bool
		wantField string
	}{
		{
			name: "valid request",
			req: &models.CreateOrderRequest{
				TableNumber:  4,
				CustomerName: "John Doe",
				WaiterName:   "Asha",
				TaxRate:      rate(5),
				Items:        []models.CartItem{{MenuItemID: 1, Quantity: 2}},
			},
			wantErr: false,
		},
		{
			name: "tax rate omitted",
			req: &models.CreateOrderRequest{
				TableNumber: 1,
				Items:       []models.CartItem{{MenuItemID: 3, Quantity: 1}},
			},
			wantErr: false,
		},
		{
			name: "missing table number",
			req: &models.CreateOrderRequest{
				Items: []models.CartItem{{MenuItemID: 1, Quantity: 1}},
			},
			wantErr:   true,
			wantField: "table_number",
		},
		{
			name: "empty cart",
			req: &models.CreateOrderRequest{
				TableNumber: 2,
			},
			wantErr:   true,
			wantField: "items",
		},
		{
			name: "zero quantity",
			req: &models.CreateOrderRequest{
				TableNumber: 2,
				Items:       []models.CartItem{{MenuItemID: 1, Quantity: 1}, {MenuItemID: 2, Quantity: 0}},
			},
			wantErr:   true,
			wantField: "items[1].quantity",
		},
		{
			name: "negative quantity",
			req: &models.CreateOrderRequest{
				TableNumber: 2,
				Items:       []models.CartItem{{MenuItemID: 1, Quantity: -3}},
			},
			wantErr:   true,
			wantField: "items[0].quantity",
		},
		{
			name: "missing menu item id",
			req: &models.CreateOrderRequest{
				TableNumber: 2,
				Items:       []models.CartItem{{Quantity: 1}},
			},
			wantErr:   true,
			wantField: "items[0].menu_item_id",
		},
		{
			name: "negative tax rate",
			req: &models.CreateOrderRequest{
				TableNumber: 2,
				TaxRate:     rate(-1),
				Items:       []models.CartItem{{MenuItemID: 1, Quantity: 1}},
			},
			wantErr:   true,
			wantField: "tax_rate",
		},
		{
			name: "customer name too long",
			req: &models.CreateOrderRequest{
				TableNumber:  2,
				CustomerName: strings.Repeat("a", 101),
				Items:        []models.CartItem{{MenuItemID: 1, Quantity: 1}},
			},
			wantErr:   true,
			wantField: "customer_name",
		},
		{
			name: "non-ascii name within limit",
			req: &models.CreateOrderRequest{
				TableNumber:  2,
				CustomerName: strings.Repeat("é", 60),
				WaiterName:   strings.Repeat("名", 100),
				Items:        []models.CartItem{{MenuItemID: 1, Quantity: 1}},
			},
			wantErr: false,
		},
		{
			name: "non-ascii name over limit",
			req: &models.CreateOrderRequest{
				TableNumber: 2,
				WaiterName:  strings.Repeat("名", 101),
				Items:       []models.CartItem{{MenuItemID: 1, Quantity: 1}},
			},
			wantErr:   true,
			wantField: "waiter_name",
		},
		{
			name: "quantity at line limit",
			req: &models.CreateOrderRequest{
				TableNumber: 2,
				Items:       []models.CartItem{{MenuItemID: 1, Quantity: MaxLineQuantity}},
			},
			wantErr: false,
		},
		{
			name: "quantity over line limit",
			req: &models.CreateOrderRequest{
				TableNumber: 2,
				Items:       []models.CartItem{{MenuItemID: 1, Quantity: math.MaxInt64}, {MenuItemID: 2, Quantity: 2}},
			},
			wantErr:   true,
			wantField: "items[0].quantity",
		},
		{
			name: "summed quantity over order limit",
			req: &models.CreateOrderRequest{
				TableNumber: 2,
				Items:       manyLines(MaxOrderItems/MaxLineQuantity+1, MaxLineQuantity),
			},
			wantErr:   true,
			wantField: fmt.Sprintf("items[%d].quantity", MaxOrderItems/MaxLineQuantity),
		},
		{
			name: "tax rate with four places",
			req: &models.CreateOrderRequest{
				TableNumber: 2,
				TaxRate:     rate(8.8755),
				Items:       []models.CartItem{{MenuItemID: 1, Quantity: 1}},
			},
			wantErr: false,
		},
		{
			name: "tax rate with five places",
			req: &models.CreateOrderRequest{
				TableNumber: 2,
				TaxRate:     rate(8.87551),
				Items:       []models.CartItem{{MenuItemID: 1, Quantity: 1}},
			},
			wantErr:   true,
			wantField: "tax_rate",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCreateOrderRequest(tt.req)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateCreateOrderRequest() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr {
				return
			}
			var ve ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("expected ValidationError, got %T", err)
			}
			if ve.Field != tt.wantField {
				t.Errorf("field = %q, want %q", ve.Field, tt.wantField)
			}
		})
	}
}
