package cart

import (
	"math/rand"
	"testing"
)

func TestAddCreatesAndIncrementsLines(t *testing.T) {
	c := New()

	result := c.Add("margherita", 2)
	if result.Added != 2 || result.Quantity != 2 || result.Limit != LimitNone {
		t.Fatalf("unexpected result: %+v", result)
	}

	result = c.Add("margherita", 3)
	if result.Added != 3 || result.Quantity != 5 || result.Limit != LimitNone {
		t.Fatalf("unexpected result: %+v", result)
	}
	if c.Len() != 1 {
		t.Fatalf("expected 1 line, got %d", c.Len())
	}
}

func TestAddClampsToPerItemCap(t *testing.T) {
	c := New()

	result := c.Add("margherita", 1000)
	if result.Added != 25 {
		t.Fatalf("expected 25 added, got %d", result.Added)
	}
	if result.Quantity != 25 {
		t.Fatalf("expected quantity 25, got %d", result.Quantity)
	}
	if result.Limit != LimitPerItem {
		t.Fatalf("expected per_item limit, got %s", result.Limit)
	}
}

func TestAddClampsToAggregateCap(t *testing.T) {
	c := New()
	c.Add("a", 25)
	c.Add("b", 23)
	if c.TotalQuantity() != 48 {
		t.Fatalf("expected 48 total, got %d", c.TotalQuantity())
	}

	result := c.Add("c", 10)
	if result.Added != 2 {
		t.Fatalf("expected 2 added, got %d", result.Added)
	}
	if result.Limit != LimitTotal {
		t.Fatalf("expected total limit, got %s", result.Limit)
	}
	if c.TotalQuantity() != 50 {
		t.Fatalf("expected 50 total, got %d", c.TotalQuantity())
	}
}

func TestAddTieBreaksPerItem(t *testing.T) {
	c := New()
	c.Add("a", 25)
	// remainingPerItem = 25, remainingTotal = 25: the tie classifies
	// as per_item.
	result := c.Add("b", 30)
	if result.Added != 25 {
		t.Fatalf("expected 25 added, got %d", result.Added)
	}
	if result.Limit != LimitPerItem {
		t.Fatalf("expected per_item limit on tie, got %s", result.Limit)
	}
}

func TestAddAtCapIsNoOp(t *testing.T) {
	c := New()
	c.Add("a", 25)
	c.Add("b", 25)

	result := c.Add("c", 1)
	if result.Added != 0 {
		t.Fatalf("expected no add, got %d", result.Added)
	}
	if result.Limit != LimitTotal {
		t.Fatalf("expected total limit, got %s", result.Limit)
	}
	if c.Quantity("c") != 0 {
		t.Fatal("expected no line created")
	}
}

func TestAddNonPositiveIsNoOp(t *testing.T) {
	c := New()
	for _, quantity := range []int{0, -1, -100} {
		result := c.Add("a", quantity)
		if result.Added != 0 || result.Limit != LimitNone {
			t.Fatalf("expected silent no-op for %d, got %+v", quantity, result)
		}
	}
	if !c.IsEmpty() {
		t.Fatal("expected empty cart")
	}
}

func TestSetQuantityRemovesAtZero(t *testing.T) {
	c := New()
	c.Add("a", 5)

	c.SetQuantity("a", 0)
	if c.Quantity("a") != 0 || c.Len() != 0 {
		t.Fatal("expected line removed")
	}

	c.Add("a", 5)
	c.SetQuantity("a", -3)
	if c.Len() != 0 {
		t.Fatal("expected line removed on negative quantity")
	}
}

func TestSetQuantityClampsIncrease(t *testing.T) {
	c := New()
	c.Add("a", 24)
	c.Add("b", 24)

	// Increase of b from 24: aggregate leaves room for 2, per-item for 1.
	c.SetQuantity("b", 30)
	if got := c.Quantity("b"); got != 25 {
		t.Fatalf("expected 25, got %d", got)
	}
	if c.TotalQuantity() != 49 {
		t.Fatalf("expected 49 total, got %d", c.TotalQuantity())
	}
}

func TestSetQuantityIncreaseRespectsAggregateCap(t *testing.T) {
	c := New()
	c.Add("a", 25)
	c.Add("b", 23)

	c.SetQuantity("b", 25)
	// Only 2 units of aggregate headroom.
	if got := c.Quantity("b"); got != 25 {
		t.Fatalf("expected 25, got %d", got)
	}

	c.SetQuantity("b", 23)
	c.Add("c", 2)
	c.SetQuantity("b", 25)
	if got := c.Quantity("b"); got != 23 {
		t.Fatalf("expected increase clamped to 23, got %d", got)
	}
}

func TestSetQuantityDecreaseNeverClamped(t *testing.T) {
	c := New()
	c.Add("a", 25)
	c.Add("b", 25)

	c.SetQuantity("a", 3)
	if got := c.Quantity("a"); got != 3 {
		t.Fatalf("expected 3, got %d", got)
	}
}

func TestSetQuantityOnAbsentItem(t *testing.T) {
	c := New()
	c.SetQuantity("a", 10)
	if got := c.Quantity("a"); got != 10 {
		t.Fatalf("expected 10, got %d", got)
	}

	c.SetQuantity("b", 100)
	if got := c.Quantity("b"); got != 25 {
		t.Fatalf("expected clamp to 25, got %d", got)
	}
}

func TestIncrementAndDecrement(t *testing.T) {
	c := New()

	if !c.Increment("a") {
		t.Fatal("expected increment to succeed")
	}
	if got := c.Quantity("a"); got != 1 {
		t.Fatalf("expected 1, got %d", got)
	}

	c.SetQuantity("a", 25)
	if c.Increment("a") {
		t.Fatal("expected increment at per-item cap to be a no-op")
	}

	c.Decrement("a")
	if got := c.Quantity("a"); got != 24 {
		t.Fatalf("expected 24, got %d", got)
	}

	c.SetQuantity("a", 1)
	c.Decrement("a")
	if c.Quantity("a") != 0 || c.Len() != 0 {
		t.Fatal("expected line removed at zero")
	}
}

func TestIncrementBlockedByAggregateCap(t *testing.T) {
	c := New()
	c.Add("a", 25)
	c.Add("b", 25)

	if c.Increment("c") {
		t.Fatal("expected increment at aggregate cap to be a no-op")
	}
}

func TestRemoveIsIdempotent(t *testing.T) {
	c := New()
	c.Add("a", 3)
	c.Add("b", 2)

	c.Remove("a")
	lines := c.Lines()
	c.Remove("a")

	after := c.Lines()
	if len(lines) != len(after) {
		t.Fatalf("expected second remove to change nothing: %v vs %v", lines, after)
	}
	if c.Quantity("b") != 2 {
		t.Fatal("expected unrelated line untouched")
	}
}

func TestClear(t *testing.T) {
	c := New()
	c.Add("a", 3)
	c.Add("b", 2)

	c.Clear()
	if !c.IsEmpty() || c.TotalQuantity() != 0 {
		t.Fatal("expected empty cart after clear")
	}
}

func TestLinesPreserveInsertionOrder(t *testing.T) {
	c := New()
	c.Add("b", 1)
	c.Add("a", 1)
	c.Add("c", 1)
	c.Remove("a")
	c.Add("d", 1)

	lines := c.Lines()
	want := []string{"b", "c", "d"}
	if len(lines) != len(want) {
		t.Fatalf("expected %d lines, got %d", len(want), len(lines))
	}
	for i, id := range want {
		if lines[i].ItemID != id {
			t.Fatalf("expected line %d to be %s, got %s", i, id, lines[i].ItemID)
		}
	}
}

func TestLinesReturnsCopy(t *testing.T) {
	c := New()
	c.Add("a", 2)

	lines := c.Lines()
	lines[0].Quantity = 99
	if c.Quantity("a") != 2 {
		t.Fatal("expected internal state unaffected by mutation of returned lines")
	}
}

func TestPredicates(t *testing.T) {
	c := New()

	if !c.CanAdd("a") || !c.CanIncrement("a") {
		t.Fatal("expected adds allowed on empty cart")
	}
	if c.IsAtPerItemLimit("a") || c.IsAtAggregateLimit() {
		t.Fatal("expected no limits on empty cart")
	}

	c.Add("a", 25)
	if c.CanAdd("a") || !c.IsAtPerItemLimit("a") {
		t.Fatal("expected per-item limit for a")
	}
	if !c.CanAdd("b") {
		t.Fatal("expected adds of another item still allowed")
	}

	c.Add("b", 25)
	if !c.IsAtAggregateLimit() || c.CanAdd("c") || c.CanIncrement("c") {
		t.Fatal("expected aggregate limit to block all adds")
	}
}

func TestRestoreReappliesCaps(t *testing.T) {
	c := New()
	c.Restore([]Line{
		{ItemID: "a", Quantity: 40},
		{ItemID: "b", Quantity: 40},
		{ItemID: "c", Quantity: 0},
	})

	if got := c.Quantity("a"); got != 25 {
		t.Fatalf("expected 25, got %d", got)
	}
	if got := c.TotalQuantity(); got != 50 {
		t.Fatalf("expected 50 total, got %d", got)
	}
	if c.Quantity("c") != 0 {
		t.Fatal("expected zero-quantity line dropped")
	}
}

// TestInvariantsUnderRandomOps drives the cart with arbitrary
// operation sequences and checks the caps after every step.
func TestInvariantsUnderRandomOps(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	items := []string{"a", "b", "c", "d", "e"}
	c := New()

	for i := 0; i < 5000; i++ {
		item := items[rng.Intn(len(items))]
		switch rng.Intn(6) {
		case 0:
			c.Add(item, rng.Intn(60)-5)
		case 1:
			c.SetQuantity(item, rng.Intn(60)-5)
		case 2:
			c.Increment(item)
		case 3:
			c.Decrement(item)
		case 4:
			c.Remove(item)
		case 5:
			if rng.Intn(20) == 0 {
				c.Clear()
			}
		}

		total := 0
		for _, line := range c.Lines() {
			if line.Quantity <= 0 {
				t.Fatalf("op %d: line %s has non-positive quantity %d", i, line.ItemID, line.Quantity)
			}
			if line.Quantity > MaxQuantityPerItem {
				t.Fatalf("op %d: line %s exceeds per-item cap: %d", i, line.ItemID, line.Quantity)
			}
			total += line.Quantity
		}
		if total > MaxTotalItems {
			t.Fatalf("op %d: aggregate %d exceeds cap", i, total)
		}
		if total != c.TotalQuantity() {
			t.Fatalf("op %d: TotalQuantity %d disagrees with sum %d", i, c.TotalQuantity(), total)
		}
	}
}

func TestLimitString(t *testing.T) {
	tests := []struct {
		limit Limit
		want  string
	}{
		{LimitNone, "none"},
		{LimitPerItem, "per_item"},
		{LimitTotal, "total"},
		{Limit(99), "none"},
	}
	for _, tt := range tests {
		if got := tt.limit.String(); got != tt.want {
			t.Fatalf("expected %q, got %q", tt.want, got)
		}
	}
}
