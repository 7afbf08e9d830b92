// Package catalog holds the storefront item catalog: the item model,
// edit actions, and query/filter support.
package catalog

import (
	"strings"

	"github.com/shopspring/decimal"

	apperrors "github.com/lucafour/pizzeria/errors"
)

var (
	// ErrEmptyID indicates a missing item identifier.
	ErrEmptyID = apperrors.New(apperrors.CodeItemIDEmpty, "item id is required")
	// ErrEmptyName indicates a missing item name.
	ErrEmptyName = apperrors.New(apperrors.CodeItemNameEmpty, "item name is required")
	// ErrNegativePrice indicates a negative unit price.
	ErrNegativePrice = apperrors.New(apperrors.CodeItemPriceNegative, "item unit price cannot be negative")
	// ErrRatingOutOfRange indicates a rating outside [0, 5].
	ErrRatingOutOfRange = apperrors.New(apperrors.CodeItemRatingRange, "item rating must be between 0 and 5")
	// ErrNegativePrepMinutes indicates a negative preparation time.
	ErrNegativePrepMinutes = apperrors.New(apperrors.CodeItemPrepNegative, "item prep minutes cannot be negative")
	// ErrDuplicateItem indicates an item id already present in the catalog.
	ErrDuplicateItem = apperrors.New(apperrors.CodeItemDuplicate, "item id already exists")
	// ErrItemNotFound indicates the catalog holds no item with the given id.
	ErrItemNotFound = apperrors.New(apperrors.CodeItemNotFound, "item not found")
)

// Item represents a single catalog entry. Items are read-only during a
// session except through explicit catalog edit actions.
type Item struct {
	ID          string
	Name        string
	UnitPrice   decimal.Decimal
	Category    string
	Ingredients []string
	Vegetarian  bool
	Spicy       bool
	Rating      float64
	PrepMinutes int
}

// NormalizeItem trims and validates an item.
func NormalizeItem(item Item) (Item, error) {
	item.ID = strings.TrimSpace(item.ID)
	if item.ID == "" {
		return Item{}, ErrEmptyID
	}
	item.Name = strings.TrimSpace(item.Name)
	if item.Name == "" {
		return Item{}, ErrEmptyName
	}
	item.Category = strings.TrimSpace(item.Category)
	if item.UnitPrice.IsNegative() {
		return Item{}, ErrNegativePrice
	}
	if item.Rating < 0 || item.Rating > 5 {
		return Item{}, ErrRatingOutOfRange
	}
	if item.PrepMinutes < 0 {
		return Item{}, ErrNegativePrepMinutes
	}
	item.Ingredients = append([]string(nil), item.Ingredients...)
	return item, nil
}

// clone returns a defensive copy of the item.
func (i Item) clone() Item {
	out := i
	out.Ingredients = append([]string(nil), i.Ingredients...)
	return out
}
