package catalog

import "sort"

// Catalog holds catalog items in insertion order with id lookup.
// The zero value is an empty, usable catalog.
type Catalog struct {
	items []Item
	index map[string]int
}

// New creates a catalog preloaded with the given items. Items failing
// validation or duplicating an earlier id are rejected.
func New(items []Item) (*Catalog, error) {
	c := &Catalog{}
	if err := c.Replace(items); err != nil {
		return nil, err
	}
	return c, nil
}

// Replace swaps the full item list, preserving the given order.
func (c *Catalog) Replace(items []Item) error {
	next := make([]Item, 0, len(items))
	index := make(map[string]int, len(items))
	for _, item := range items {
		normalized, err := NormalizeItem(item)
		if err != nil {
			return err
		}
		if _, exists := index[normalized.ID]; exists {
			return ErrDuplicateItem
		}
		index[normalized.ID] = len(next)
		next = append(next, normalized)
	}
	c.items = next
	c.index = index
	return nil
}

// Add appends a new item. A duplicate id is rejected.
func (c *Catalog) Add(item Item) error {
	normalized, err := NormalizeItem(item)
	if err != nil {
		return err
	}
	if _, exists := c.index[normalized.ID]; exists {
		return ErrDuplicateItem
	}
	if c.index == nil {
		c.index = make(map[string]int)
	}
	c.index[normalized.ID] = len(c.items)
	c.items = append(c.items, normalized)
	return nil
}

// Update replaces an existing item in place, keeping its position.
func (c *Catalog) Update(item Item) error {
	normalized, err := NormalizeItem(item)
	if err != nil {
		return err
	}
	pos, exists := c.index[normalized.ID]
	if !exists {
		return ErrItemNotFound
	}
	c.items[pos] = normalized
	return nil
}

// Remove deletes an item by id. Removing a missing item is an error,
// matching the explicit-edit semantics of catalog maintenance.
func (c *Catalog) Remove(id string) error {
	pos, exists := c.index[id]
	if !exists {
		return ErrItemNotFound
	}
	c.items = append(c.items[:pos], c.items[pos+1:]...)
	delete(c.index, id)
	for i := pos; i < len(c.items); i++ {
		c.index[c.items[i].ID] = i
	}
	return nil
}

// Get returns the item with the given id.
func (c *Catalog) Get(id string) (Item, bool) {
	pos, exists := c.index[id]
	if !exists {
		return Item{}, false
	}
	return c.items[pos].clone(), true
}

// Items returns a copy of all items in insertion order.
func (c *Catalog) Items() []Item {
	out := make([]Item, 0, len(c.items))
	for _, item := range c.items {
		out = append(out, item.clone())
	}
	return out
}

// Len reports the number of items.
func (c *Catalog) Len() int {
	return len(c.items)
}

// Categories returns the sorted set of distinct non-empty categories.
func (c *Catalog) Categories() []string {
	seen := make(map[string]bool, len(c.items))
	out := make([]string, 0, len(c.items))
	for _, item := range c.items {
		if item.Category == "" || seen[item.Category] {
			continue
		}
		seen[item.Category] = true
		out = append(out, item.Category)
	}
	sort.Strings(out)
	return out
}
