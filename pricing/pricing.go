// Package pricing derives order lines and aggregate totals from cart
// lines and catalog prices.
//
// # Determinism
//
// Derive is a pure function over explicit snapshots: given the same
// lines and the same lookup results, it always produces the same
// Result. Lines are processed in slice order and the derived lines
// appear in the same order.
//
// # Rounding
//
// Per-line values keep full decimal precision. Only the aggregates
// are rounded, to 2 decimal places half-up, after summation. Summing
// pre-rounded per-line values would drift across many lines.
//
// # Missing items
//
// A cart line whose item is absent from the catalog is dropped from
// the output and reported in MissingItemIDs. The caller decides
// whether to surface the integrity gap; Derive itself stays silent.
package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/lucafour/pizzeria/cart"
	"github.com/lucafour/pizzeria/catalog"
)

// DiscountThreshold is the line quantity at which the bulk discount
// applies.
const DiscountThreshold = 3

// discountRate is the bulk discount rate (10%).
var discountRate = decimal.New(10, -2)

// DerivedOrderLine is the computed pricing breakdown for one cart
// line. It is never stored independently of an order snapshot.
type DerivedOrderLine struct {
	ItemID         string
	Item           catalog.Item
	Quantity       int
	OriginalPrice  decimal.Decimal
	DiscountAmount decimal.Decimal
	FinalPrice     decimal.Decimal
}

// Result is the full derivation: ordered lines plus aggregates.
type Result struct {
	Lines          []DerivedOrderLine
	Subtotal       decimal.Decimal
	Discount       decimal.Decimal
	Total          decimal.Decimal
	MissingItemIDs []string
}

// Lookup resolves an item id against a catalog snapshot.
type Lookup func(itemID string) (catalog.Item, bool)

// Derive computes the order lines and totals for the given cart lines.
func Derive(lines []cart.Line, lookup Lookup) Result {
	result := Result{
		Lines:    make([]DerivedOrderLine, 0, len(lines)),
		Subtotal: decimal.Zero,
		Discount: decimal.Zero,
		Total:    decimal.Zero,
	}
	if lookup == nil {
		lookup = func(string) (catalog.Item, bool) { return catalog.Item{}, false }
	}

	subtotal := decimal.Zero
	discount := decimal.Zero
	for _, line := range lines {
		item, ok := lookup(line.ItemID)
		if !ok {
			result.MissingItemIDs = append(result.MissingItemIDs, line.ItemID)
			continue
		}
		derived := DeriveLine(item, line.Quantity)
		result.Lines = append(result.Lines, derived)
		subtotal = subtotal.Add(derived.OriginalPrice)
		discount = discount.Add(derived.DiscountAmount)
	}

	result.Subtotal = subtotal.Round(2)
	result.Discount = discount.Round(2)
	result.Total = result.Subtotal.Sub(result.Discount)
	return result
}

// DeriveLine computes the pricing breakdown for a single line at full
// precision.
func DeriveLine(item catalog.Item, quantity int) DerivedOrderLine {
	original := LineOriginal(item.UnitPrice, quantity)
	disc := LineDiscount(item.UnitPrice, quantity)
	return DerivedOrderLine{
		ItemID:         item.ID,
		Item:           item,
		Quantity:       quantity,
		OriginalPrice:  original,
		DiscountAmount: disc,
		FinalPrice:     original.Sub(disc),
	}
}

// LineOriginal returns unit price times quantity.
func LineOriginal(unitPrice decimal.Decimal, quantity int) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt(int64(quantity)))
}

// LineDiscount returns the bulk discount for a line: 10% of the
// original price when the quantity meets the threshold, exactly zero
// below it.
func LineDiscount(unitPrice decimal.Decimal, quantity int) decimal.Decimal {
	if quantity < DiscountThreshold {
		return decimal.Zero
	}
	return LineOriginal(unitPrice, quantity).Mul(discountRate)
}
