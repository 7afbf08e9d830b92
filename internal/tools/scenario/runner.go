package scenario

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/lucafour/pizzeria"
	"github.com/lucafour/pizzeria/storage"
	"github.com/lucafour/pizzeria/storage/boltstore"
)

// Config controls scenario execution.
type Config struct {
	// StatePath is the bbolt state file; empty keeps state in memory.
	StatePath  string
	Timeout    time.Duration
	Assertions AssertionMode
	Verbose    bool
	Logger     *log.Logger
}

// DefaultConfig returns default runner configuration.
func DefaultConfig() Config {
	return Config{
		Timeout:    10 * time.Second,
		Assertions: AssertionStrict,
	}
}

// Runner executes Lua scenarios against an in-process storefront
// service.
type Runner struct {
	svc        *pizzeria.Service
	store      storage.Store
	assertions Assertions
	logger     *log.Logger
	verbose    bool
	timeout    time.Duration
}

// NewRunner opens the state store (if configured) and prepares a
// scenario runner.
func NewRunner(ctx context.Context, cfg Config) (*Runner, error) {
	var store storage.Store
	if cfg.StatePath != "" {
		boltStore, err := boltstore.Open(cfg.StatePath)
		if err != nil {
			return nil, fmt.Errorf("open state store: %w", err)
		}
		store = boltStore
	}

	logger := cfg.Logger
	if logger == nil {
		logger = log.New(os.Stderr, "", 0)
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}

	svc := pizzeria.New(store, pizzeria.WithLogger(logger))
	if store != nil {
		if err := svc.Load(ctx); err != nil {
			_ = store.Close()
			return nil, fmt.Errorf("load state: %w", err)
		}
	}

	return &Runner{
		svc:        svc,
		store:      store,
		assertions: Assertions{Mode: cfg.Assertions, Logger: logger},
		logger:     logger,
		verbose:    cfg.Verbose,
		timeout:    timeout,
	}, nil
}

// Close releases resources held by the runner.
func (r *Runner) Close() error {
	return r.svc.Close()
}

// RunFile loads and executes a scenario file.
func RunFile(ctx context.Context, cfg Config, path string) error {
	runner, err := NewRunner(ctx, cfg)
	if err != nil {
		return err
	}
	defer runner.Close()

	scenario, err := LoadScenarioFromFile(path)
	if err != nil {
		return err
	}
	return runner.RunScenario(ctx, scenario)
}

// RunScenario executes the scenario steps in order, each under the
// per-step timeout.
func (r *Runner) RunScenario(ctx context.Context, scenario *Scenario) error {
	if scenario == nil {
		return fmt.Errorf("scenario is required")
	}
	r.logf("scenario %q: %d step(s)", scenario.Name, len(scenario.Steps))

	state := &scenarioState{}
	for i, step := range scenario.Steps {
		stepCtx, cancel := context.WithTimeout(ctx, r.timeout)
		err := r.runStep(stepCtx, state, step)
		cancel()
		if err != nil {
			return fmt.Errorf("step %d (%s): %w", i+1, step.Kind, err)
		}
		if r.verbose {
			r.logf("step %d (%s): ok", i+1, step.Kind)
		}
	}
	r.logf("scenario %q: done", scenario.Name)
	return nil
}

func (r *Runner) logf(format string, args ...any) {
	if r.logger != nil {
		r.logger.Printf(format, args...)
	}
}

func (r *Runner) failf(format string, args ...any) error {
	return r.assertions.Failf(format, args...)
}

func (r *Runner) assertf(format string, args ...any) error {
	return r.assertions.Assertf(format, args...)
}
