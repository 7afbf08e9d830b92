package pizzeria

import (
	"context"
	"strconv"

	"github.com/lucafour/pizzeria/catalog"
	"github.com/lucafour/pizzeria/storage"
	"github.com/lucafour/pizzeria/telemetry"
)

// LoadCatalog replaces the full catalog, e.g. from the menu loader.
func (s *Service) LoadCatalog(ctx context.Context, items []catalog.Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.catalog.Replace(items); err != nil {
		return err
	}
	s.emit(ctx, telemetry.Event{
		Name:   telemetry.EventCatalogReplaced,
		Fields: map[string]string{"items": strconv.Itoa(s.catalog.Len())},
	})
	return s.saveCatalog(ctx)
}

// CatalogItems returns a copy of all catalog items.
func (s *Service) CatalogItems() []catalog.Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.catalog.Items()
}

// CatalogItem returns a single catalog item by id.
func (s *Service) CatalogItem(id string) (catalog.Item, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.catalog.Get(id)
}

// AddItem adds a catalog item.
func (s *Service) AddItem(ctx context.Context, item catalog.Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.catalog.Add(item); err != nil {
		return err
	}
	return s.saveCatalog(ctx)
}

// UpdateItem replaces an existing catalog item.
func (s *Service) UpdateItem(ctx context.Context, item catalog.Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.catalog.Update(item); err != nil {
		return err
	}
	return s.saveCatalog(ctx)
}

// RemoveItem removes a catalog item by id.
func (s *Service) RemoveItem(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.catalog.Remove(id); err != nil {
		return err
	}
	return s.saveCatalog(ctx)
}

// SearchCatalog applies filter/search/sort criteria to the catalog.
func (s *Service) SearchCatalog(q catalog.Query) []catalog.Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.catalog.Search(q)
}

// FilterCatalog applies an AIP-160 filter expression to the catalog.
func (s *Service) FilterCatalog(expr string) ([]catalog.Item, error) {
	predicate, err := catalog.ParseFilter(expr)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.catalog.FilterItems(predicate), nil
}

// Categories returns the sorted distinct catalog categories.
func (s *Service) Categories() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.catalog.Categories()
}

// saveCatalog persists the catalog section. Callers hold the lock.
func (s *Service) saveCatalog(ctx context.Context) error {
	if s.store == nil {
		return nil
	}
	if err := s.store.PutCatalog(ctx, storage.CatalogToSection(s.catalog.Items())); err != nil {
		return wrapStorage("persist catalog", err)
	}
	return nil
}
