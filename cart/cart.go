// Package cart implements the shopping cart quantity engine: per-item
// and aggregate caps, clamped mutations, and the limit classification
// callers use to drive feedback.
//
// There is no error path here. Over-limit requests degrade to the
// maximal permitted effect and the result reports which cap bound the
// request; read-only predicates answer what a caller may still do.
package cart

// Default quantity caps.
const (
	// MaxQuantityPerItem is the maximum quantity for a single line.
	MaxQuantityPerItem = 25
	// MaxTotalItems is the maximum total quantity across all lines.
	MaxTotalItems = 50
)

// Limit classifies which cap bound a clamped request.
type Limit int

const (
	// LimitNone indicates the full request landed.
	LimitNone Limit = iota
	// LimitPerItem indicates the per-line cap bound the request.
	LimitPerItem
	// LimitTotal indicates the aggregate cap bound the request.
	LimitTotal
)

// String returns the stable label for the limit classification.
func (l Limit) String() string {
	switch l {
	case LimitPerItem:
		return "per_item"
	case LimitTotal:
		return "total"
	default:
		return "none"
	}
}

// Line is a cart entry: an item id and its requested quantity.
// A line present in the cart always has quantity >= 1.
type Line struct {
	ItemID   string
	Quantity int
}

// AddResult reports the actual effect of an add request.
type AddResult struct {
	// Added is the quantity actually added, possibly zero.
	Added int
	// Quantity is the line quantity after the add.
	Quantity int
	// Limit classifies the binding cap when the request was clamped.
	Limit Limit
}

// Cart holds ordered lines and enforces the quantity caps. The zero
// value is not usable; construct with New or NewWithCaps.
type Cart struct {
	lines      []Line
	index      map[string]int
	perItemCap int
	totalCap   int
}

// New creates an empty cart with the default caps.
func New() *Cart {
	return NewWithCaps(MaxQuantityPerItem, MaxTotalItems)
}

// NewWithCaps creates an empty cart with custom caps. Non-positive
// caps fall back to the defaults.
func NewWithCaps(perItem, total int) *Cart {
	if perItem <= 0 {
		perItem = MaxQuantityPerItem
	}
	if total <= 0 {
		total = MaxTotalItems
	}
	return &Cart{
		index:      make(map[string]int),
		perItemCap: perItem,
		totalCap:   total,
	}
}

// Add requests adding quantity to an item line, creating the line on
// first add. The actual added amount is clamped so neither cap is
// violated; a fully clamped request leaves the cart unchanged. Ties
// between the two caps classify as per-item.
func (c *Cart) Add(itemID string, requested int) AddResult {
	current := c.Quantity(itemID)
	if requested <= 0 || itemID == "" {
		return AddResult{Quantity: current, Limit: LimitNone}
	}

	remainingPerItem := c.perItemCap - current
	remainingTotal := c.totalCap - c.TotalQuantity()

	added := requested
	if added > remainingPerItem {
		added = remainingPerItem
	}
	if added > remainingTotal {
		added = remainingTotal
	}
	if added < 0 {
		added = 0
	}

	limit := LimitNone
	if added < requested {
		if remainingPerItem <= remainingTotal {
			limit = LimitPerItem
		} else {
			limit = LimitTotal
		}
	}

	if added == 0 {
		return AddResult{Quantity: current, Limit: limit}
	}

	c.setLine(itemID, current+added)
	return AddResult{Added: added, Quantity: current + added, Limit: limit}
}

// SetQuantity sets a line quantity directly. Zero or negative removes
// the line. Increases are clamped by both caps; decreases are never
// further clamped.
func (c *Cart) SetQuantity(itemID string, quantity int) {
	if itemID == "" {
		return
	}
	if quantity <= 0 {
		c.Remove(itemID)
		return
	}
	if quantity > c.perItemCap {
		quantity = c.perItemCap
	}

	current := c.Quantity(itemID)
	if quantity > current {
		maxIncrease := c.totalCap - c.TotalQuantity()
		if quantity-current > maxIncrease {
			quantity = current + maxIncrease
		}
		if quantity > c.perItemCap {
			quantity = c.perItemCap
		}
	}
	if quantity <= 0 {
		c.Remove(itemID)
		return
	}
	c.setLine(itemID, quantity)
}

// Increment adds exactly one unit when both caps allow it.
func (c *Cart) Increment(itemID string) bool {
	if !c.CanIncrement(itemID) {
		return false
	}
	c.setLine(itemID, c.Quantity(itemID)+1)
	return true
}

// Decrement removes one unit; a line reaching zero is removed.
func (c *Cart) Decrement(itemID string) {
	current := c.Quantity(itemID)
	if current <= 1 {
		c.Remove(itemID)
		return
	}
	c.setLine(itemID, current-1)
}

// Remove deletes a line unconditionally. Removing a missing line is a
// no-op.
func (c *Cart) Remove(itemID string) {
	pos, exists := c.index[itemID]
	if !exists {
		return
	}
	c.lines = append(c.lines[:pos], c.lines[pos+1:]...)
	delete(c.index, itemID)
	for i := pos; i < len(c.lines); i++ {
		c.index[c.lines[i].ItemID] = i
	}
}

// Clear removes all lines.
func (c *Cart) Clear() {
	c.lines = nil
	c.index = make(map[string]int)
}

// Restore replaces the cart contents from persisted lines, re-applying
// the cap rules so a tampered or stale payload cannot violate them.
func (c *Cart) Restore(lines []Line) {
	c.Clear()
	for _, line := range lines {
		c.Add(line.ItemID, line.Quantity)
	}
}

// Quantity returns the line quantity for an item, zero when absent.
func (c *Cart) Quantity(itemID string) int {
	pos, exists := c.index[itemID]
	if !exists {
		return 0
	}
	return c.lines[pos].Quantity
}

// TotalQuantity returns the sum of all line quantities.
func (c *Cart) TotalQuantity() int {
	total := 0
	for _, line := range c.lines {
		total += line.Quantity
	}
	return total
}

// Lines returns a copy of the lines in insertion order.
func (c *Cart) Lines() []Line {
	return append([]Line(nil), c.lines...)
}

// Len returns the number of lines.
func (c *Cart) Len() int {
	return len(c.lines)
}

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.lines) == 0
}

// CanAdd reports whether at least one more unit of the item fits under
// both caps.
func (c *Cart) CanAdd(itemID string) bool {
	return c.Quantity(itemID) < c.perItemCap && c.TotalQuantity() < c.totalCap
}

// CanIncrement reports whether Increment would succeed.
func (c *Cart) CanIncrement(itemID string) bool {
	return itemID != "" && c.CanAdd(itemID)
}

// IsAtPerItemLimit reports whether the item line is at the per-item cap.
func (c *Cart) IsAtPerItemLimit(itemID string) bool {
	return c.Quantity(itemID) >= c.perItemCap
}

// IsAtAggregateLimit reports whether the cart is at the aggregate cap.
func (c *Cart) IsAtAggregateLimit() bool {
	return c.TotalQuantity() >= c.totalCap
}

// setLine writes a line quantity, creating the line when absent.
func (c *Cart) setLine(itemID string, quantity int) {
	if pos, exists := c.index[itemID]; exists {
		c.lines[pos].Quantity = quantity
		return
	}
	c.index[itemID] = len(c.lines)
	c.lines = append(c.lines, Line{ItemID: itemID, Quantity: quantity})
}
