// Package scenario implements the scenario command.
package scenario

import (
	"context"
	"errors"
	"flag"
	"io"
	"log"
	"time"

	"github.com/lucafour/pizzeria/internal/platform/config"
	"github.com/lucafour/pizzeria/internal/platform/otel"
	"github.com/lucafour/pizzeria/internal/tools/scenario"
)

// Config holds scenario command configuration.
type Config struct {
	StatePath  string        `env:"PIZZERIA_STATE_PATH"`
	Scenario   string        `env:"PIZZERIA_SCENARIO_FILE"`
	Assertions bool          `env:"PIZZERIA_SCENARIO_ASSERT"  envDefault:"true"`
	Verbose    bool          `env:"PIZZERIA_SCENARIO_VERBOSE"`
	Timeout    time.Duration `env:"PIZZERIA_SCENARIO_TIMEOUT" envDefault:"10s"`
}

// ParseConfig parses flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := config.ParseEnv(&cfg); err != nil {
		return Config{}, err
	}

	fs.StringVar(&cfg.StatePath, "state", cfg.StatePath, "path to the state file (empty keeps state in memory)")
	fs.StringVar(&cfg.Scenario, "scenario", cfg.Scenario, "path to scenario lua file")
	fs.BoolVar(&cfg.Assertions, "assert", cfg.Assertions, "enable assertions (disable to log expectations)")
	fs.BoolVar(&cfg.Verbose, "verbose", cfg.Verbose, "enable verbose logging")
	fs.DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "timeout per step")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run executes the scenario command.
func Run(ctx context.Context, cfg Config, out io.Writer, errOut io.Writer) error {
	if out == nil {
		out = io.Discard
	}
	if errOut == nil {
		errOut = io.Discard
	}
	if cfg.Scenario == "" {
		return errors.New("scenario path is required")
	}

	shutdown, err := otel.Setup(ctx, "scenario")
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			log.Printf("otel shutdown: %v", err)
		}
	}()

	mode := scenario.AssertionStrict
	if !cfg.Assertions {
		mode = scenario.AssertionLogOnly
	}

	logger := log.New(errOut, "", 0)
	return scenario.RunFile(ctx, scenario.Config{
		StatePath:  cfg.StatePath,
		Timeout:    cfg.Timeout,
		Assertions: mode,
		Verbose:    cfg.Verbose,
		Logger:     logger,
	}, cfg.Scenario)
}
