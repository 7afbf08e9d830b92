// Package storage defines the persisted state contract: the five
// named sections of the storefront root, their record shapes, and the
// per-section store interfaces.
package storage

import (
	"context"
	"errors"
)

// ErrNotFound indicates a requested section or record is missing.
var ErrNotFound = errors.New("record not found")

// CatalogStore persists the catalog section.
type CatalogStore interface {
	PutCatalog(ctx context.Context, section CatalogSection) error
	GetCatalog(ctx context.Context) (CatalogSection, error)
}

// CartStore persists the cart section.
type CartStore interface {
	PutCart(ctx context.Context, section CartSection) error
	GetCart(ctx context.Context) (CartSection, error)
}

// OrderStore persists the order log section.
type OrderStore interface {
	PutOrders(ctx context.Context, section OrderSection) error
	GetOrders(ctx context.Context) (OrderSection, error)
}

// PreferenceStore persists the preferences section.
type PreferenceStore interface {
	PutPreferences(ctx context.Context, section PreferenceSection) error
	GetPreferences(ctx context.Context) (PreferenceSection, error)
}

// FavoriteStore persists the favorites section.
type FavoriteStore interface {
	PutFavorites(ctx context.Context, section FavoriteSection) error
	GetFavorites(ctx context.Context) (FavoriteSection, error)
}

// Store is the composite persisted-state store.
type Store interface {
	CatalogStore
	CartStore
	OrderStore
	PreferenceStore
	FavoriteStore
	Close() error
}
