package services

import (
	"fmt"
	"math"
	"strconv"

	"github.com/bellavista-pos/bellavista-foh-api/models"
)

// RawOrderItem is a simple product line as submitted by a client. Quantity
// and Price arrive as arbitrary JSON scalars and are coerced during
// normalization. TaxRate is accepted but never trusted: the catalog rate
// always wins.
type RawOrderItem struct {
	Name     string `json:"name"`
	Quantity any    `json:"quantity"`
	Price    any    `json:"price"`
	TaxRate  any    `json:"taxRate"`
}

// RawComboItem is a combo product line with its nested choice selections
type RawComboItem struct {
	Name     string          `json:"name"`
	Quantity any             `json:"quantity"`
	Price    any             `json:"price"`
	TaxRate  any             `json:"taxRate"`
	Choices  []RawChoiceItem `json:"choices"`
}

// RawChoiceItem is one chosen sub-item within a combo submission
type RawChoiceItem struct {
	Name       string `json:"name"`
	Quantity   any    `json:"quantity"`
	GroupIndex int    `json:"groupIndex"`
}

// Totals is the result of reducing an order's item lists
type Totals struct {
	Subtotal   float64 `json:"subtotal"`
	TaxTotal   float64 `json:"tax_total"`
	OrderTotal float64 `json:"order_total"`
}

// TaxResolver returns the configured tax rate for a product name. The
// second return value is false when the product is not in the catalog.
type TaxResolver interface {
	TaxRateFor(name string) (float64, bool)
}

// NormalizeItems converts raw order and combo submissions into validated,
// fully numeric line items. Tax rates are resolved through the catalog:
// a known product's configured rate replaces whatever the client sent, an
// unknown product gets rate 0. A quantity or price that cannot be coerced
// to a number fails with a ValidationError naming the item. The transform
// is pure apart from catalog reads.
func NormalizeItems(resolver TaxResolver, items []RawOrderItem, comboItems []RawComboItem) ([]models.OrderLineItem, []models.ComboLineItem, error) {
	normalized := make([]models.OrderLineItem, 0, len(items))
	for _, item := range items {
		qty, err := coerceNumber(item.Quantity)
		if err != nil {
			return nil, nil, NewValidationError(item.Name, fmt.Sprintf("invalid quantity: %v", err))
		}
		price, err := coerceNumber(item.Price)
		if err != nil {
			return nil, nil, NewValidationError(item.Name, fmt.Sprintf("invalid price: %v", err))
		}

		taxRate := 0.0
		if rate, ok := resolver.TaxRateFor(item.Name); ok {
			taxRate = rate
		}

		normalized = append(normalized, models.OrderLineItem{
			ProductName: item.Name,
			Quantity:    qty,
			UnitPrice:   price,
			TaxRate:     taxRate,
		})
	}

	normalizedCombos := make([]models.ComboLineItem, 0, len(comboItems))
	for _, combo := range comboItems {
		qty, err := coerceNumber(combo.Quantity)
		if err != nil {
			return nil, nil, NewValidationError(combo.Name, fmt.Sprintf("invalid quantity: %v", err))
		}
		price, err := coerceNumber(combo.Price)
		if err != nil {
			return nil, nil, NewValidationError(combo.Name, fmt.Sprintf("invalid price: %v", err))
		}

		taxRate := 0.0
		if rate, ok := resolver.TaxRateFor(combo.Name); ok {
			taxRate = rate
		}

		choices := make([]models.ComboChoiceItem, 0, len(combo.Choices))
		for _, choice := range combo.Choices {
			choiceQty, err := coerceNumber(choice.Quantity)
			if err != nil {
				return nil, nil, NewValidationError(choice.Name, fmt.Sprintf("invalid quantity: %v", err))
			}
			choices = append(choices, models.ComboChoiceItem{
				Name:       choice.Name,
				Quantity:   choiceQty,
				GroupIndex: choice.GroupIndex,
			})
		}

		normalizedCombos = append(normalizedCombos, models.ComboLineItem{
			ComboName: combo.Name,
			Quantity:  qty,
			UnitPrice: price,
			TaxRate:   taxRate,
			Choices:   choices,
		})
	}

	return normalized, normalizedCombos, nil
}

// CalculateTotals reduces normalized item lists into subtotal, tax total
// and grand total. Line total = price * quantity, line tax = line total *
// rate/100. No rounding is applied here; presentation rounds to 2 decimal
// places. A zero quantity or price simply contributes zero.
func CalculateTotals(items []models.OrderLineItem, comboItems []models.ComboLineItem) Totals {
	var subtotal, taxTotal float64

	for _, item := range items {
		lineTotal := item.UnitPrice * item.Quantity
		subtotal += lineTotal
		taxTotal += lineTotal * (item.TaxRate / 100)
	}

	for _, combo := range comboItems {
		lineTotal := combo.UnitPrice * combo.Quantity
		subtotal += lineTotal
		taxTotal += lineTotal * (combo.TaxRate / 100)
	}

	return Totals{
		Subtotal:   subtotal,
		TaxTotal:   taxTotal,
		OrderTotal: subtotal + taxTotal,
	}
}

// Round2 rounds a monetary value to 2 decimal places for presentation
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// coerceNumber converts a raw JSON scalar into a float64. Numbers pass
// through, numeric strings are parsed, nil (a missing field) counts as
// zero. Anything else, including NaN, is rejected.
func coerceNumber(v any) (float64, error) {
	switch value := v.(type) {
	case nil:
		return 0, nil
	case float64:
		if math.IsNaN(value) || math.IsInf(value, 0) {
			return 0, fmt.Errorf("not a number")
		}
		return value, nil
	case float32:
		return float64(value), nil
	case int:
		return float64(value), nil
	case int64:
		return float64(value), nil
	case string:
		parsed, err := strconv.ParseFloat(value, 64)
		if err != nil || math.IsNaN(parsed) || math.IsInf(parsed, 0) {
			return 0, fmt.Errorf("%q is not a number", value)
		}
		return parsed, nil
	default:
		return 0, fmt.Errorf("unsupported value %v", v)
	}
}
