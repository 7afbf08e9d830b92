// Package boltstore persists the storefront sections in a bbolt
// key-value file.
package boltstore

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"go.etcd.io/bbolt"

	apperrors "github.com/lucafour/pizzeria/errors"
	"github.com/lucafour/pizzeria/storage"
)

const rootBucket = "storefront"

// Store provides a bbolt-backed storefront store.
type Store struct {
	db *bbolt.DB
}

// Open opens a bbolt-backed store at the provided path.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	cleanPath := filepath.Clean(path)
	db, err := bbolt.Open(cleanPath, 0o600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open storage db: %w", err)
	}

	store := &Store{db: db}
	if err := store.ensureBuckets(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

// Close closes the underlying bbolt database.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// PutCatalog persists the catalog section.
func (s *Store) PutCatalog(ctx context.Context, section storage.CatalogSection) error {
	section.SchemaVersion = storage.SchemaVersion
	return s.putSection(ctx, storage.SectionCatalog, section)
}

// GetCatalog fetches the catalog section.
func (s *Store) GetCatalog(ctx context.Context) (storage.CatalogSection, error) {
	var section storage.CatalogSection
	err := s.getSection(ctx, storage.SectionCatalog, &section)
	return section, err
}

// PutCart persists the cart section.
func (s *Store) PutCart(ctx context.Context, section storage.CartSection) error {
	section.SchemaVersion = storage.SchemaVersion
	return s.putSection(ctx, storage.SectionCart, section)
}

// GetCart fetches the cart section.
func (s *Store) GetCart(ctx context.Context) (storage.CartSection, error) {
	var section storage.CartSection
	err := s.getSection(ctx, storage.SectionCart, &section)
	return section, err
}

// PutOrders persists the order log section.
func (s *Store) PutOrders(ctx context.Context, section storage.OrderSection) error {
	section.SchemaVersion = storage.SchemaVersion
	return s.putSection(ctx, storage.SectionOrders, section)
}

// GetOrders fetches the order log section.
func (s *Store) GetOrders(ctx context.Context) (storage.OrderSection, error) {
	var section storage.OrderSection
	err := s.getSection(ctx, storage.SectionOrders, &section)
	return section, err
}

// PutPreferences persists the preferences section.
func (s *Store) PutPreferences(ctx context.Context, section storage.PreferenceSection) error {
	section.SchemaVersion = storage.SchemaVersion
	return s.putSection(ctx, storage.SectionPreferences, section)
}

// GetPreferences fetches the preferences section.
func (s *Store) GetPreferences(ctx context.Context) (storage.PreferenceSection, error) {
	var section storage.PreferenceSection
	err := s.getSection(ctx, storage.SectionPreferences, &section)
	return section, err
}

// PutFavorites persists the favorites section.
func (s *Store) PutFavorites(ctx context.Context, section storage.FavoriteSection) error {
	section.SchemaVersion = storage.SchemaVersion
	return s.putSection(ctx, storage.SectionFavorites, section)
}

// GetFavorites fetches the favorites section.
func (s *Store) GetFavorites(ctx context.Context) (storage.FavoriteSection, error) {
	var section storage.FavoriteSection
	err := s.getSection(ctx, storage.SectionFavorites, &section)
	return section, err
}

func (s *Store) putSection(ctx context.Context, name string, section any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.db == nil {
		return fmt.Errorf("storage is not configured")
	}

	payload, err := json.Marshal(section)
	if err != nil {
		return fmt.Errorf("marshal %s section: %w", name, err)
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(rootBucket))
		if bucket == nil {
			return fmt.Errorf("storefront bucket is missing")
		}
		return bucket.Put([]byte(name), payload)
	})
}

func (s *Store) getSection(ctx context.Context, name string, out any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.db == nil {
		return fmt.Errorf("storage is not configured")
	}

	var payload []byte
	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(rootBucket))
		if bucket == nil {
			return fmt.Errorf("storefront bucket is missing")
		}
		raw := bucket.Get([]byte(name))
		if raw == nil {
			return storage.ErrNotFound
		}
		payload = append([]byte(nil), raw...)
		return nil
	})
	if err != nil {
		return err
	}

	payload, err = migrateSection(name, payload)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return apperrors.Wrap(apperrors.CodeStateDecode,
			fmt.Sprintf("unmarshal %s section", name), err)
	}
	return nil
}

func (s *Store) ensureBuckets() error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(rootBucket))
		if err != nil {
			return fmt.Errorf("create storefront bucket: %w", err)
		}
		return nil
	})
}
