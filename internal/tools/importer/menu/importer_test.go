package menuimport

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/lucafour/pizzeria/storage"
	"github.com/lucafour/pizzeria/storage/boltstore"
)

const menuPayload = `{
  "schema_version": 1,
  "items": [
    {"id": "margherita", "name": "Margherita", "unit_price": "8.50", "category": "classic"},
    {"id": "diavola", "name": "Diavola", "unit_price": "10.00", "category": "classic", "spicy": true}
  ]
}`

func openStore(t *testing.T) *boltstore.Store {
	t.Helper()
	s, err := boltstore.Open(filepath.Join(t.TempDir(), "pizzeria.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestImportIntoEmptyCatalog(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	summary, err := Import(ctx, store, []byte(menuPayload), false)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if summary.Total != 2 || summary.Added != 2 || summary.Updated != 0 {
		t.Fatalf("unexpected summary: %+v", summary)
	}

	section, err := store.GetCatalog(ctx)
	if err != nil {
		t.Fatalf("get catalog: %v", err)
	}
	if len(section.Items) != 2 || section.Items[0].ID != "margherita" {
		t.Fatalf("unexpected catalog: %+v", section.Items)
	}
}

func TestImportUpsertsExisting(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	if _, err := Import(ctx, store, []byte(menuPayload), false); err != nil {
		t.Fatalf("seed import: %v", err)
	}

	update := `{
	  "schema_version": 1,
	  "items": [
	    {"id": "diavola", "name": "Diavola Extra", "unit_price": "11.00"},
	    {"id": "ortolana", "name": "Ortolana", "unit_price": "9.50", "vegetarian": true}
	  ]
	}`
	summary, err := Import(ctx, store, []byte(update), false)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if summary.Added != 1 || summary.Updated != 1 {
		t.Fatalf("unexpected summary: %+v", summary)
	}

	section, err := store.GetCatalog(ctx)
	if err != nil {
		t.Fatalf("get catalog: %v", err)
	}
	if len(section.Items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(section.Items))
	}
	// The updated item keeps its position.
	if section.Items[1].ID != "diavola" || section.Items[1].Name != "Diavola Extra" {
		t.Fatalf("expected in-place update, got %+v", section.Items[1])
	}
	if section.Items[2].ID != "ortolana" {
		t.Fatalf("expected new item appended, got %+v", section.Items[2])
	}
}

func TestImportDryRunWritesNothing(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	summary, err := Import(ctx, store, []byte(menuPayload), true)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if !summary.DryRun || summary.Added != 2 {
		t.Fatalf("unexpected summary: %+v", summary)
	}

	if _, err := store.GetCatalog(ctx); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected no catalog written, got %v", err)
	}
}

func TestImportRejectsBadPayloads(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		payload string
	}{
		{"invalid json", `{not json`},
		{"unsupported version", `{"schema_version":99,"items":[]}`},
		{"invalid item", `{"schema_version":1,"items":[{"id":"","name":"x","unit_price":"1.00"}]}`},
		{"bad price", `{"schema_version":1,"items":[{"id":"x","name":"x","unit_price":"free"}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Import(ctx, store, []byte(tt.payload), false); err == nil {
				t.Fatal("expected error")
			}
		})
	}

	if _, err := Import(ctx, nil, []byte(menuPayload), false); err == nil {
		t.Fatal("expected error for nil store")
	}
}

func TestImportFile(t *testing.T) {
	store := openStore(t)
	path := filepath.Join(t.TempDir(), "menu.json")
	if err := os.WriteFile(path, []byte(menuPayload), 0o600); err != nil {
		t.Fatalf("write menu file: %v", err)
	}

	summary, err := ImportFile(context.Background(), store, path, false)
	if err != nil {
		t.Fatalf("import file: %v", err)
	}
	if summary.Added != 2 {
		t.Fatalf("unexpected summary: %+v", summary)
	}

	if _, err := ImportFile(context.Background(), store, filepath.Join(t.TempDir(), "missing.json"), false); err == nil {
		t.Fatal("expected error for missing file")
	}
}
