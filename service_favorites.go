package pizzeria

import (
	"context"

	"github.com/lucafour/pizzeria/favorites"
	"github.com/lucafour/pizzeria/storage"
)

// ToggleFavorite marks or unmarks an item and reports whether it is a
// favorite afterwards.
func (s *Service) ToggleFavorite(ctx context.Context, itemID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	marked := s.favorites.Toggle(itemID, s.clock().UTC())
	return marked, s.saveFavorites(ctx)
}

// Favorites returns a copy of the favorite marks in marking order.
func (s *Service) Favorites() []favorites.Mark {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.favorites.Marks()
}

// IsFavorite reports whether the item is marked.
func (s *Service) IsFavorite(itemID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.favorites.IsFavorite(itemID)
}

// ClearFavorites removes all marks.
func (s *Service) ClearFavorites(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.favorites.Clear()
	return s.saveFavorites(ctx)
}

// Preferences returns the current preferences.
func (s *Service) Preferences() Preferences {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.prefs
}

// SetPreferences stores preferences after normalization.
func (s *Service) SetPreferences(ctx context.Context, prefs Preferences) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.prefs = prefs.normalize()
	return s.savePreferences(ctx)
}

// saveFavorites persists the favorites section. Callers hold the lock.
func (s *Service) saveFavorites(ctx context.Context) error {
	if s.store == nil {
		return nil
	}
	if err := s.store.PutFavorites(ctx, storage.FavoritesToSection(s.favorites.Marks())); err != nil {
		return wrapStorage("persist favorites", err)
	}
	return nil
}

// savePreferences persists the preferences section. Callers hold the
// lock.
func (s *Service) savePreferences(ctx context.Context) error {
	if s.store == nil {
		return nil
	}
	section := storage.PreferenceSection{
		SchemaVersion: storage.SchemaVersion,
		Theme:         s.prefs.Theme,
		DefaultSort:   s.prefs.DefaultSort,
		VeggieOnly:    s.prefs.VeggieOnly,
	}
	if err := s.store.PutPreferences(ctx, section); err != nil {
		return wrapStorage("persist preferences", err)
	}
	return nil
}
