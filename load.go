package pizzeria

import (
	"context"
	"errors"

	apperrors "github.com/lucafour/pizzeria/errors"
	"github.com/lucafour/pizzeria/storage"
	"github.com/lucafour/pizzeria/telemetry"
)

// Load hydrates all five persisted sections. A missing section keeps
// its defaults. A section with an unsupported schema version, or one
// that fails to decode, is discarded with a warning and its defaults
// kept; a storage-level failure aborts the load.
func (s *Service) Load(ctx context.Context) error {
	if s.store == nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.loadCatalogSection(ctx); err != nil {
		return err
	}
	if err := s.loadCartSection(ctx); err != nil {
		return err
	}
	if err := s.loadOrderSection(ctx); err != nil {
		return err
	}
	if err := s.loadPreferenceSection(ctx); err != nil {
		return err
	}
	return s.loadFavoriteSection(ctx)
}

func (s *Service) loadCatalogSection(ctx context.Context) error {
	section, err := s.store.GetCatalog(ctx)
	if err != nil {
		return s.classifyLoadError(ctx, storage.SectionCatalog, err)
	}
	items, err := storage.CatalogFromSection(section)
	if err != nil {
		s.discardSection(ctx, storage.SectionCatalog, err)
		return nil
	}
	if err := s.catalog.Replace(items); err != nil {
		s.discardSection(ctx, storage.SectionCatalog, err)
	}
	return nil
}

func (s *Service) loadCartSection(ctx context.Context) error {
	section, err := s.store.GetCart(ctx)
	if err != nil {
		return s.classifyLoadError(ctx, storage.SectionCart, err)
	}
	s.cart.Restore(storage.CartFromSection(section))
	s.cartOpen = section.Open
	return nil
}

func (s *Service) loadOrderSection(ctx context.Context) error {
	section, err := s.store.GetOrders(ctx)
	if err != nil {
		return s.classifyLoadError(ctx, storage.SectionOrders, err)
	}
	orders, err := storage.OrdersFromSection(section)
	if err != nil {
		s.discardSection(ctx, storage.SectionOrders, err)
		return nil
	}
	// A crash mid-confirmation leaves the flag set; a fresh session
	// has nothing in flight.
	s.orders.Restore(orders, false)
	return nil
}

func (s *Service) loadPreferenceSection(ctx context.Context) error {
	section, err := s.store.GetPreferences(ctx)
	if err != nil {
		return s.classifyLoadError(ctx, storage.SectionPreferences, err)
	}
	s.prefs = Preferences{
		Theme:       section.Theme,
		DefaultSort: section.DefaultSort,
		VeggieOnly:  section.VeggieOnly,
	}.normalize()
	return nil
}

func (s *Service) loadFavoriteSection(ctx context.Context) error {
	section, err := s.store.GetFavorites(ctx)
	if err != nil {
		return s.classifyLoadError(ctx, storage.SectionFavorites, err)
	}
	s.favorites.Restore(storage.FavoritesFromSection(section))
	return nil
}

// classifyLoadError decides how a section read failure is handled:
// absent sections keep defaults, unsupported versions and payloads
// that fail to decode are discarded with a warning, anything else
// aborts the load.
func (s *Service) classifyLoadError(ctx context.Context, section string, err error) error {
	if errors.Is(err, storage.ErrNotFound) {
		return nil
	}
	var domainErr *apperrors.Error
	if errors.As(err, &domainErr) {
		switch domainErr.Code {
		case apperrors.CodeStateVersion, apperrors.CodeStateDecode:
			s.discardSection(ctx, section, err)
			return nil
		}
	}
	return wrapStorage("load "+section+" section", err)
}

// discardSection logs and records that a persisted section was
// dropped in favor of defaults.
func (s *Service) discardSection(ctx context.Context, section string, cause error) {
	s.logf("discarding persisted %s section: %v", section, cause)
	s.emit(ctx, telemetry.Event{
		Name:     telemetry.EventStateDiscarded,
		Severity: telemetry.SeverityWarn,
		Fields:   map[string]string{"section": section, "cause": cause.Error()},
	})
}
