// Package menuimport loads menu JSON files into a persisted catalog
// section.
package menuimport

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/lucafour/pizzeria/catalog"
	"github.com/lucafour/pizzeria/storage"
)

// Summary reports the effect of an import run.
type Summary struct {
	Total   int
	Added   int
	Updated int
	DryRun  bool
}

// ImportFile reads a menu JSON file and upserts its items into the
// store's catalog section. In dry-run mode the summary is computed
// without writing.
func ImportFile(ctx context.Context, store storage.CatalogStore, path string, dryRun bool) (Summary, error) {
	payload, err := os.ReadFile(path)
	if err != nil {
		return Summary{}, fmt.Errorf("read menu file: %w", err)
	}
	return Import(ctx, store, payload, dryRun)
}

// Import validates and upserts a menu payload.
func Import(ctx context.Context, store storage.CatalogStore, payload []byte, dryRun bool) (Summary, error) {
	if store == nil {
		return Summary{}, errors.New("catalog store is required")
	}

	var incoming storage.CatalogSection
	if err := json.Unmarshal(payload, &incoming); err != nil {
		return Summary{}, fmt.Errorf("decode menu payload: %w", err)
	}
	if incoming.SchemaVersion != storage.SchemaVersion {
		return Summary{}, fmt.Errorf("menu schema version %d is unsupported", incoming.SchemaVersion)
	}

	items, err := storage.CatalogFromSection(incoming)
	if err != nil {
		return Summary{}, err
	}
	for i, item := range items {
		normalized, err := catalog.NormalizeItem(item)
		if err != nil {
			return Summary{}, fmt.Errorf("menu item %d: %w", i, err)
		}
		items[i] = normalized
	}

	existing, err := store.GetCatalog(ctx)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return Summary{}, fmt.Errorf("read existing catalog: %w", err)
	}
	current, err := storage.CatalogFromSection(existing)
	if err != nil {
		return Summary{}, fmt.Errorf("decode existing catalog: %w", err)
	}

	merged, summary := merge(current, items)
	summary.DryRun = dryRun
	if dryRun {
		return summary, nil
	}

	if err := store.PutCatalog(ctx, storage.CatalogToSection(merged)); err != nil {
		return Summary{}, fmt.Errorf("write catalog: %w", err)
	}
	return summary, nil
}

// merge upserts incoming items into the current list, keeping the
// position of updated items and appending new ones in payload order.
func merge(current, incoming []catalog.Item) ([]catalog.Item, Summary) {
	index := make(map[string]int, len(current))
	merged := append([]catalog.Item(nil), current...)
	for i, item := range merged {
		index[item.ID] = i
	}

	summary := Summary{Total: len(incoming)}
	for _, item := range incoming {
		if pos, exists := index[item.ID]; exists {
			merged[pos] = item
			summary.Updated++
			continue
		}
		index[item.ID] = len(merged)
		merged = append(merged, item)
		summary.Added++
	}
	return merged, summary
}
