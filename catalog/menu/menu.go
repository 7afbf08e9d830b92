// Package menu supplies the default pizzeria menu embedded in the
// binary.
package menu

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/lucafour/pizzeria/catalog"
	"github.com/lucafour/pizzeria/storage"
)

//go:embed data/menu.v1.json
var menuData []byte

var (
	loadOnce sync.Once
	loaded   []catalog.Item
	loadErr  error
)

// DefaultMenu returns the embedded default menu as fresh item copies.
// The payload is decoded and validated once.
func DefaultMenu() ([]catalog.Item, error) {
	loadOnce.Do(func() {
		loaded, loadErr = decode(menuData)
	})
	if loadErr != nil {
		return nil, loadErr
	}

	out := make([]catalog.Item, 0, len(loaded))
	for _, item := range loaded {
		copied := item
		copied.Ingredients = append([]string(nil), item.Ingredients...)
		out = append(out, copied)
	}
	return out, nil
}

func decode(payload []byte) ([]catalog.Item, error) {
	var section storage.CatalogSection
	if err := json.Unmarshal(payload, &section); err != nil {
		return nil, fmt.Errorf("decode embedded menu: %w", err)
	}
	if section.SchemaVersion != storage.SchemaVersion {
		return nil, fmt.Errorf("embedded menu schema version %d is unsupported", section.SchemaVersion)
	}

	items, err := storage.CatalogFromSection(section)
	if err != nil {
		return nil, fmt.Errorf("decode embedded menu: %w", err)
	}
	for i, item := range items {
		normalized, err := catalog.NormalizeItem(item)
		if err != nil {
			return nil, fmt.Errorf("embedded menu item %d: %w", i, err)
		}
		items[i] = normalized
	}
	return items, nil
}
