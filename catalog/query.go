package catalog

import (
	"sort"
	"strings"
)

// SortKey selects the ordering applied to query results.
type SortKey int

const (
	// SortUnspecified leaves items in catalog order.
	SortUnspecified SortKey = iota
	// SortName orders by display name.
	SortName
	// SortPrice orders by unit price.
	SortPrice
	// SortRating orders by rating.
	SortRating
	// SortPrepTime orders by preparation minutes.
	SortPrepTime
)

// sortKeyLabels maps sort keys to their stable labels.
var sortKeyLabels = map[SortKey]string{
	SortUnspecified: "unspecified",
	SortName:        "name",
	SortPrice:       "price",
	SortRating:      "rating",
	SortPrepTime:    "prep_time",
}

// String returns the stable label for the sort key.
func (k SortKey) String() string {
	if label, ok := sortKeyLabels[k]; ok {
		return label
	}
	return "unspecified"
}

// SortKeyFromLabel parses a sort key label. Unknown labels map to
// SortUnspecified.
func SortKeyFromLabel(label string) SortKey {
	for key, l := range sortKeyLabels {
		if l == label {
			return key
		}
	}
	return SortUnspecified
}

// Query describes active filter, search, and sort criteria.
type Query struct {
	Category       string
	VegetarianOnly bool
	SpicyOnly      bool
	Search         string
	SortBy         SortKey
	Descending     bool
}

// Search applies the query to the catalog and returns a filtered,
// sorted copy of the matching items.
func (c *Catalog) Search(q Query) []Item {
	needle := strings.ToLower(strings.TrimSpace(q.Search))
	out := make([]Item, 0, len(c.items))
	for _, item := range c.items {
		if q.Category != "" && item.Category != q.Category {
			continue
		}
		if q.VegetarianOnly && !item.Vegetarian {
			continue
		}
		if q.SpicyOnly && !item.Spicy {
			continue
		}
		if needle != "" && !matchesSearch(item, needle) {
			continue
		}
		out = append(out, item.clone())
	}
	sortItems(out, q.SortBy, q.Descending)
	return out
}

// matchesSearch reports whether the needle appears in the item name or
// any ingredient. The needle must already be lowercased.
func matchesSearch(item Item, needle string) bool {
	if strings.Contains(strings.ToLower(item.Name), needle) {
		return true
	}
	for _, ingredient := range item.Ingredients {
		if strings.Contains(strings.ToLower(ingredient), needle) {
			return true
		}
	}
	return false
}

func sortItems(items []Item, key SortKey, descending bool) {
	if key == SortUnspecified {
		return
	}
	less := func(a, b Item) bool { return false }
	switch key {
	case SortName:
		less = func(a, b Item) bool { return a.Name < b.Name }
	case SortPrice:
		less = func(a, b Item) bool { return a.UnitPrice.LessThan(b.UnitPrice) }
	case SortRating:
		less = func(a, b Item) bool { return a.Rating < b.Rating }
	case SortPrepTime:
		less = func(a, b Item) bool { return a.PrepMinutes < b.PrepMinutes }
	}
	sort.SliceStable(items, func(i, j int) bool {
		if descending {
			return less(items[j], items[i])
		}
		return less(items[i], items[j])
	})
}
