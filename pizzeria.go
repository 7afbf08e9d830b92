// Package pizzeria ties the storefront state together: catalog, cart,
// pricing, order log, favorites, and preferences, owned by a single
// Service value and persisted write-through to a local store.
//
// Callers hold a *Service handle; there is no package-level singleton.
// Every operation is a synchronous, atomic state transition guarded by
// the service mutex, and everything returned to callers is a copy.
package pizzeria

import (
	"context"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/lucafour/pizzeria/cart"
	"github.com/lucafour/pizzeria/catalog"
	apperrors "github.com/lucafour/pizzeria/errors"
	"github.com/lucafour/pizzeria/favorites"
	"github.com/lucafour/pizzeria/internal/platform/id"
	"github.com/lucafour/pizzeria/order"
	"github.com/lucafour/pizzeria/storage"
	"github.com/lucafour/pizzeria/telemetry"
)

// Preferences are persisted UI preferences. The engine stores them
// after normalization and otherwise treats them as opaque.
type Preferences struct {
	Theme       string
	DefaultSort string
	VeggieOnly  bool
}

// normalize trims the free-form preference fields.
func (p Preferences) normalize() Preferences {
	p.Theme = strings.TrimSpace(p.Theme)
	p.DefaultSort = strings.TrimSpace(p.DefaultSort)
	return p
}

// Service owns the storefront state. Construct with New; the zero
// value is not usable.
type Service struct {
	mu        sync.Mutex
	catalog   *catalog.Catalog
	cart      *cart.Cart
	orders    *order.Log
	favorites *favorites.Set
	prefs     Preferences
	cartOpen  bool

	store        storage.Store
	clock        func() time.Time
	idGenerator  func() (string, error)
	logger       *log.Logger
	emitter      *telemetry.Emitter
	confirmDelay time.Duration
}

// Option configures a Service.
type Option func(*Service)

// WithClock injects the clock used for timestamps.
func WithClock(clock func() time.Time) Option {
	return func(s *Service) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// WithIDGenerator injects the order id generator.
func WithIDGenerator(generator func() (string, error)) Option {
	return func(s *Service) {
		if generator != nil {
			s.idGenerator = generator
		}
	}
}

// WithLogger injects an optional logger for integrity and state
// warnings.
func WithLogger(logger *log.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

// WithTelemetry injects an optional telemetry emitter.
func WithTelemetry(emitter *telemetry.Emitter) Option {
	return func(s *Service) { s.emitter = emitter }
}

// WithConfirmDelay configures an optional pacing delay before order
// confirmation completes. The delay is cancellable through the call
// context and carries no correctness weight.
func WithConfirmDelay(delay time.Duration) Option {
	return func(s *Service) {
		if delay > 0 {
			s.confirmDelay = delay
		}
	}
}

// WithCaps overrides the cart quantity caps. Non-positive values keep
// the defaults.
func WithCaps(perItem, total int) Option {
	return func(s *Service) { s.cart = cart.NewWithCaps(perItem, total) }
}

// New creates a storefront service. A nil store keeps all state in
// memory and skips persistence.
func New(store storage.Store, opts ...Option) *Service {
	emptyCatalog, _ := catalog.New(nil)
	s := &Service{
		catalog:     emptyCatalog,
		cart:        cart.New(),
		orders:      order.NewLog(),
		favorites:   favorites.NewSet(),
		store:       store,
		clock:       time.Now,
		idGenerator: id.NewID,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Close releases the underlying store, if any.
func (s *Service) Close() error {
	if s.store == nil {
		return nil
	}
	return s.store.Close()
}

// logf writes to the configured logger, if any.
func (s *Service) logf(format string, args ...any) {
	if s.logger != nil {
		s.logger.Printf(format, args...)
	}
}

// emit records a telemetry event through the configured emitter.
func (s *Service) emit(ctx context.Context, event telemetry.Event) {
	s.emitter.Emit(ctx, event)
}

// wrapStorage wraps a persistence failure, keeping the in-memory
// state authoritative.
func wrapStorage(message string, err error) error {
	return apperrors.Wrap(apperrors.CodeStorageFailure, message, err)
}
