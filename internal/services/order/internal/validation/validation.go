package validation

import (
	"fmt"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"restaurant-backoffice/internal/models"
)

// Cart limits keep every line and the order within the ledger's column ranges
const (
	MaxNameLength    = 100
	MaxLineQuantity  = 10000
	MaxOrderItems    = 100000
	MaxTaxRatePlaces = 4
)

// MaxOrderTotal is the largest total the ledger can store
const MaxOrderTotal = 9999999999.99

// ValidateOrderTotal rejects a priced cart whose total cannot be stored
func ValidateOrderTotal(total float64) error {
	if total > MaxOrderTotal {
		return ValidationError{
			Field:   "items",
			Message: fmt.Sprintf("order total must be at most %.2f", MaxOrderTotal),
		}
	}
	return nil
}

type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func ValidateCreateOrderRequest(req *models.CreateOrderRequest) error {
	if err := validateTableNumber(req.TableNumber); err != nil {
		return err
	}

	if err := validateName("customer_name", req.CustomerName); err != nil {
		return err
	}

	if err := validateName("waiter_name", req.WaiterName); err != nil {
		return err
	}

	if err := validateTaxRate(req.TaxRate); err != nil {
		return err
	}

	if err := validateItems(req.Items); err != nil {
		return err
	}

	return nil
}

func validateTableNumber(n int) error {
	if n <= 0 {
		return ValidationError{
			Field:   "table_number",
			Message: "table number must be greater than 0",
		}
	}
	return nil
}

func validateName(field, name string) error {
	if utf8.RuneCountInString(name) > MaxNameLength {
		return ValidationError{
			Field:   field,
			Message: fmt.Sprintf("must be at most %d characters", MaxNameLength),
		}
	}
	return nil
}

func validateTaxRate(rate *float64) error {
	if rate == nil {
		return nil
	}
	if *rate < 0 || *rate > 100 {
		return ValidationError{
			Field:   "tax_rate",
			Message: "tax rate must be between 0 and 100",
		}
	}
	if decimal.NewFromFloat(*rate).Exponent() < -MaxTaxRatePlaces {
		return ValidationError{
			Field:   "tax_rate",
			Message: fmt.Sprintf("tax rate allows at most %d decimal places", MaxTaxRatePlaces),
		}
	}
	return nil
}

func validateItems(items []models.CartItem) error {
	if len(items) == 0 {
		return ValidationError{
			Field:   "items",
			Message: "items cannot be empty",
		}
	}

	total := 0
	for i, item := range items {
		if item.MenuItemID <= 0 {
			return ValidationError{
				Field:   fmt.Sprintf("items[%d].menu_item_id", i),
				Message: "menu item id is required",
			}
		}

		if item.Quantity <= 0 {
			return ValidationError{
				Field:   fmt.Sprintf("items[%d].quantity", i),
				Message: "item quantity must be greater than 0",
			}
		}

		if item.Quantity > MaxLineQuantity {
			return ValidationError{
				Field:   fmt.Sprintf("items[%d].quantity", i),
				Message: fmt.Sprintf("item quantity must be at most %d", MaxLineQuantity),
			}
		}

		total += item.Quantity
		if total > MaxOrderItems {
			return ValidationError{
				Field:   fmt.Sprintf("items[%d].quantity", i),
				Message: fmt.Sprintf("order may hold at most %d items", MaxOrderItems),
			}
		}
	}
	return nil
}
