// Package menuimporter implements the menu-importer command.
package menuimporter

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/lucafour/pizzeria/internal/platform/config"
	"github.com/lucafour/pizzeria/internal/tools/importer/menu"
	"github.com/lucafour/pizzeria/storage/boltstore"
)

// Config holds menu-importer command configuration.
type Config struct {
	StatePath string `env:"PIZZERIA_STATE_PATH"     envDefault:"pizzeria.db"`
	MenuFile  string `env:"PIZZERIA_MENU_FILE"`
	DryRun    bool   `env:"PIZZERIA_IMPORT_DRY_RUN"`
}

// ParseConfig parses flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := config.ParseEnv(&cfg); err != nil {
		return Config{}, err
	}

	fs.StringVar(&cfg.StatePath, "state", cfg.StatePath, "path to the state file")
	fs.StringVar(&cfg.MenuFile, "menu", cfg.MenuFile, "path to the menu json file")
	fs.BoolVar(&cfg.DryRun, "dry-run", cfg.DryRun, "report the import without writing")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run executes the menu-importer command.
func Run(ctx context.Context, cfg Config, out io.Writer) error {
	if out == nil {
		out = io.Discard
	}
	if cfg.MenuFile == "" {
		return errors.New("menu file is required")
	}

	store, err := boltstore.Open(cfg.StatePath)
	if err != nil {
		return err
	}
	defer store.Close()

	summary, err := menuimport.ImportFile(ctx, store, cfg.MenuFile, cfg.DryRun)
	if err != nil {
		return err
	}

	mode := "imported"
	if summary.DryRun {
		mode = "dry-run"
	}
	fmt.Fprintf(out, "%s: %d item(s), %d added, %d updated\n", mode, summary.Total, summary.Added, summary.Updated)
	return nil
}
