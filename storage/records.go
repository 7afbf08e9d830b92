package storage

import "time"

// SchemaVersion is the current persisted schema version for every
// section.
const SchemaVersion = 1

// Section names used as keys inside the storefront root.
const (
	SectionCatalog     = "catalog"
	SectionCart        = "cart"
	SectionOrders      = "orders"
	SectionPreferences = "preferences"
	SectionFavorites   = "favorites"
)

// ItemRecord is the persisted shape of a catalog item. Monetary
// amounts persist as decimal strings.
type ItemRecord struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	UnitPrice   string   `json:"unit_price"`
	Category    string   `json:"category,omitempty"`
	Ingredients []string `json:"ingredients,omitempty"`
	Vegetarian  bool     `json:"vegetarian,omitempty"`
	Spicy       bool     `json:"spicy,omitempty"`
	Rating      float64  `json:"rating,omitempty"`
	PrepMinutes int      `json:"prep_minutes,omitempty"`
}

// CatalogSection is the persisted catalog section.
type CatalogSection struct {
	SchemaVersion int          `json:"schema_version"`
	Items         []ItemRecord `json:"items"`
}

// LineRecord is the persisted shape of a cart line.
type LineRecord struct {
	ItemID   string `json:"item_id"`
	Quantity int    `json:"quantity"`
}

// CartSection is the persisted cart section.
type CartSection struct {
	SchemaVersion int          `json:"schema_version"`
	Lines         []LineRecord `json:"lines"`
	Open          bool         `json:"open,omitempty"`
}

// OrderLineRecord is the persisted shape of a derived order line.
type OrderLineRecord struct {
	ItemID         string     `json:"item_id"`
	Item           ItemRecord `json:"item"`
	Quantity       int        `json:"quantity"`
	OriginalPrice  string     `json:"original_price"`
	DiscountAmount string     `json:"discount_amount"`
	FinalPrice     string     `json:"final_price"`
}

// OrderRecord is the persisted shape of a confirmed order.
type OrderRecord struct {
	ID        string            `json:"id"`
	Lines     []OrderLineRecord `json:"lines"`
	Subtotal  string            `json:"subtotal"`
	Discount  string            `json:"discount"`
	Total     string            `json:"total"`
	CreatedAt time.Time         `json:"created_at"`
	Status    string            `json:"status"`
}

// OrderSection is the persisted order log section.
type OrderSection struct {
	SchemaVersion int           `json:"schema_version"`
	Orders        []OrderRecord `json:"orders"`
	InProgress    bool          `json:"in_progress,omitempty"`
}

// PreferenceSection is the persisted preferences section. The engine
// treats the values as opaque beyond normalization.
type PreferenceSection struct {
	SchemaVersion int    `json:"schema_version"`
	Theme         string `json:"theme,omitempty"`
	DefaultSort   string `json:"default_sort,omitempty"`
	VeggieOnly    bool   `json:"veggie_only,omitempty"`
}

// MarkRecord is the persisted shape of a favorite mark.
type MarkRecord struct {
	ItemID   string    `json:"item_id"`
	MarkedAt time.Time `json:"marked_at"`
}

// FavoriteSection is the persisted favorites section.
type FavoriteSection struct {
	SchemaVersion int          `json:"schema_version"`
	Marks         []MarkRecord `json:"marks"`
}
