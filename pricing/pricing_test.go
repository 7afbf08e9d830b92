package pricing

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/lucafour/pizzeria/cart"
	"github.com/lucafour/pizzeria/catalog"
)

func testLookup(items ...catalog.Item) Lookup {
	index := make(map[string]catalog.Item, len(items))
	for _, item := range items {
		index[item.ID] = item
	}
	return func(id string) (catalog.Item, bool) {
		item, ok := index[id]
		return item, ok
	}
}

func price(t *testing.T, value string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(value)
	if err != nil {
		t.Fatalf("bad price %q: %v", value, err)
	}
	return d
}

func TestDeriveNoDiscountBelowThreshold(t *testing.T) {
	lookup := testLookup(catalog.Item{ID: "margherita", UnitPrice: price(t, "10.00")})

	result := Derive([]cart.Line{{ItemID: "margherita", Quantity: 2}}, lookup)

	if got := result.Subtotal.StringFixed(2); got != "20.00" {
		t.Fatalf("expected subtotal 20.00, got %s", got)
	}
	if !result.Discount.IsZero() {
		t.Fatalf("expected zero discount, got %s", result.Discount)
	}
	if got := result.Total.StringFixed(2); got != "20.00" {
		t.Fatalf("expected total 20.00, got %s", got)
	}
}

func TestDeriveBulkDiscountAtThreshold(t *testing.T) {
	lookup := testLookup(catalog.Item{ID: "margherita", UnitPrice: price(t, "10.00")})

	result := Derive([]cart.Line{{ItemID: "margherita", Quantity: 3}}, lookup)

	if got := result.Subtotal.StringFixed(2); got != "30.00" {
		t.Fatalf("expected subtotal 30.00, got %s", got)
	}
	if got := result.Discount.StringFixed(2); got != "3.00" {
		t.Fatalf("expected discount 3.00, got %s", got)
	}
	if got := result.Total.StringFixed(2); got != "27.00" {
		t.Fatalf("expected total 27.00, got %s", got)
	}

	line := result.Lines[0]
	if got := line.FinalPrice.StringFixed(2); got != "27.00" {
		t.Fatalf("expected line final 27.00, got %s", got)
	}
}

func TestDeriveDiscountPerLineNotAcrossLines(t *testing.T) {
	lookup := testLookup(
		catalog.Item{ID: "a", UnitPrice: price(t, "10.00")},
		catalog.Item{ID: "b", UnitPrice: price(t, "10.00")},
	)

	// Two lines of 2 units each: 4 units total, but neither line meets
	// the threshold on its own.
	result := Derive([]cart.Line{
		{ItemID: "a", Quantity: 2},
		{ItemID: "b", Quantity: 2},
	}, lookup)

	if !result.Discount.IsZero() {
		t.Fatalf("expected zero discount, got %s", result.Discount)
	}
}

func TestDeriveMissingItemsDropped(t *testing.T) {
	lookup := testLookup(catalog.Item{ID: "a", UnitPrice: price(t, "8.50")})

	result := Derive([]cart.Line{
		{ItemID: "gone", Quantity: 2},
		{ItemID: "a", Quantity: 1},
		{ItemID: "also-gone", Quantity: 5},
	}, lookup)

	if len(result.Lines) != 1 || result.Lines[0].ItemID != "a" {
		t.Fatalf("expected only line a, got %+v", result.Lines)
	}
	if len(result.MissingItemIDs) != 2 {
		t.Fatalf("expected 2 missing ids, got %v", result.MissingItemIDs)
	}
	if result.MissingItemIDs[0] != "gone" || result.MissingItemIDs[1] != "also-gone" {
		t.Fatalf("unexpected missing ids: %v", result.MissingItemIDs)
	}
	if got := result.Total.StringFixed(2); got != "8.50" {
		t.Fatalf("expected total 8.50, got %s", got)
	}
}

func TestDeriveAllLinesMissing(t *testing.T) {
	result := Derive([]cart.Line{{ItemID: "gone", Quantity: 2}}, testLookup())

	if len(result.Lines) != 0 {
		t.Fatalf("expected no lines, got %+v", result.Lines)
	}
	if !result.Subtotal.IsZero() || !result.Discount.IsZero() || !result.Total.IsZero() {
		t.Fatalf("expected zero aggregates, got %+v", result)
	}
}

func TestDeriveEmptyCart(t *testing.T) {
	result := Derive(nil, testLookup())
	if len(result.Lines) != 0 || !result.Total.IsZero() {
		t.Fatalf("expected empty zero result, got %+v", result)
	}
}

func TestDeriveNilLookup(t *testing.T) {
	result := Derive([]cart.Line{{ItemID: "a", Quantity: 1}}, nil)
	if len(result.MissingItemIDs) != 1 {
		t.Fatalf("expected line reported missing, got %+v", result)
	}
}

func TestDeriveRoundsAggregatesAfterSummation(t *testing.T) {
	// 3 x 3.333 = 9.999, discount 0.9999. Full precision per line,
	// aggregates rounded once at the end.
	lookup := testLookup(catalog.Item{ID: "a", UnitPrice: price(t, "3.333")})

	result := Derive([]cart.Line{{ItemID: "a", Quantity: 3}}, lookup)

	line := result.Lines[0]
	if got := line.OriginalPrice.String(); got != "9.999" {
		t.Fatalf("expected full-precision line original 9.999, got %s", got)
	}
	if got := line.DiscountAmount.String(); got != "0.9999" {
		t.Fatalf("expected full-precision line discount 0.9999, got %s", got)
	}
	if got := result.Subtotal.StringFixed(2); got != "10.00" {
		t.Fatalf("expected subtotal 10.00, got %s", got)
	}
	if got := result.Discount.StringFixed(2); got != "1.00" {
		t.Fatalf("expected discount 1.00, got %s", got)
	}
	if got := result.Total.StringFixed(2); got != "9.00" {
		t.Fatalf("expected total 9.00, got %s", got)
	}
}

func TestDeriveTotalIsSubtotalMinusDiscount(t *testing.T) {
	lookup := testLookup(
		catalog.Item{ID: "a", UnitPrice: price(t, "7.77")},
		catalog.Item{ID: "b", UnitPrice: price(t, "12.05")},
		catalog.Item{ID: "c", UnitPrice: price(t, "0.99")},
	)

	result := Derive([]cart.Line{
		{ItemID: "a", Quantity: 4},
		{ItemID: "b", Quantity: 1},
		{ItemID: "c", Quantity: 25},
	}, lookup)

	want := result.Subtotal.Sub(result.Discount)
	if !result.Total.Equal(want) {
		t.Fatalf("expected total %s, got %s", want, result.Total)
	}
}

func TestDeriveLine(t *testing.T) {
	item := catalog.Item{ID: "a", Name: "A", UnitPrice: price(t, "5.00")}

	line := DeriveLine(item, 4)
	if line.Quantity != 4 || line.Item.Name != "A" {
		t.Fatalf("unexpected line: %+v", line)
	}
	if got := line.OriginalPrice.StringFixed(2); got != "20.00" {
		t.Fatalf("expected original 20.00, got %s", got)
	}
	if got := line.DiscountAmount.StringFixed(2); got != "2.00" {
		t.Fatalf("expected discount 2.00, got %s", got)
	}
	if got := line.FinalPrice.StringFixed(2); got != "18.00" {
		t.Fatalf("expected final 18.00, got %s", got)
	}
}

func TestLineDiscountThresholdBoundary(t *testing.T) {
	unit := price(t, "10.00")

	if !LineDiscount(unit, 2).IsZero() {
		t.Fatal("expected zero discount below threshold")
	}
	if got := LineDiscount(unit, 3).StringFixed(2); got != "3.00" {
		t.Fatalf("expected 3.00 at threshold, got %s", got)
	}
	if got := LineDiscount(unit, 25).StringFixed(2); got != "25.00" {
		t.Fatalf("expected 25.00, got %s", got)
	}
}
