package pizzeria

import (
	"context"
	"strconv"
	"strings"

	"github.com/lucafour/pizzeria/cart"
	"github.com/lucafour/pizzeria/pricing"
	"github.com/lucafour/pizzeria/storage"
	"github.com/lucafour/pizzeria/telemetry"
)

// AddToCart requests adding quantity of an item, clamped by the caps.
// The result reports the actual effect and the binding limit, which
// the caller uses to surface feedback.
func (s *Service) AddToCart(ctx context.Context, itemID string, quantity int) (cart.AddResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := s.cart.Add(itemID, quantity)
	if result.Limit != cart.LimitNone {
		s.emit(ctx, telemetry.Event{
			Name:     telemetry.EventCartClamp,
			Severity: telemetry.SeverityInfo,
			Fields: map[string]string{
				"item_id":   itemID,
				"requested": strconv.Itoa(quantity),
				"added":     strconv.Itoa(result.Added),
				"limit":     result.Limit.String(),
			},
		})
	}
	if result.Added == 0 {
		return result, nil
	}
	s.emit(ctx, telemetry.Event{
		Name: telemetry.EventCartAdd,
		Fields: map[string]string{
			"item_id":  itemID,
			"added":    strconv.Itoa(result.Added),
			"quantity": strconv.Itoa(result.Quantity),
		},
	})
	return result, s.saveCart(ctx)
}

// SetQuantity sets a line quantity directly; zero or below removes
// the line.
func (s *Service) SetQuantity(ctx context.Context, itemID string, quantity int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cart.SetQuantity(itemID, quantity)
	return s.saveCart(ctx)
}

// IncrementItem adds one unit when both caps allow it.
func (s *Service) IncrementItem(ctx context.Context, itemID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.cart.Increment(itemID) {
		return false, nil
	}
	return true, s.saveCart(ctx)
}

// DecrementItem removes one unit; a line reaching zero is removed.
func (s *Service) DecrementItem(ctx context.Context, itemID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cart.Decrement(itemID)
	return s.saveCart(ctx)
}

// RemoveFromCart removes a line unconditionally.
func (s *Service) RemoveFromCart(ctx context.Context, itemID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cart.Remove(itemID)
	return s.saveCart(ctx)
}

// ClearCart removes all lines.
func (s *Service) ClearCart(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cart.Clear()
	s.emit(ctx, telemetry.Event{Name: telemetry.EventCartCleared})
	return s.saveCart(ctx)
}

// CartLines returns a copy of the cart lines in insertion order.
func (s *Service) CartLines() []cart.Line {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Lines()
}

// CartQuantity returns the line quantity for an item.
func (s *Service) CartQuantity(itemID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Quantity(itemID)
}

// CartTotalQuantity returns the sum of all line quantities.
func (s *Service) CartTotalQuantity() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.TotalQuantity()
}

// CanAdd reports whether one more unit of the item fits under both
// caps.
func (s *Service) CanAdd(itemID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.CanAdd(itemID)
}

// CanIncrement reports whether IncrementItem would succeed.
func (s *Service) CanIncrement(itemID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.CanIncrement(itemID)
}

// IsAtPerItemLimit reports whether the item line is at the per-item
// cap.
func (s *Service) IsAtPerItemLimit(itemID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.IsAtPerItemLimit(itemID)
}

// IsAtAggregateLimit reports whether the cart is at the aggregate cap.
func (s *Service) IsAtAggregateLimit() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.IsAtAggregateLimit()
}

// SetCartOpen records whether the cart panel is open.
func (s *Service) SetCartOpen(ctx context.Context, open bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cartOpen = open
	return s.saveCart(ctx)
}

// CartOpen reports whether the cart panel is open.
func (s *Service) CartOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cartOpen
}

// PriceCart derives the current cart pricing. Cart lines referencing
// missing catalog items are dropped from the derivation and reported
// as an integrity gap.
func (s *Service) PriceCart() pricing.Result {
	s.mu.Lock()
	result := pricing.Derive(s.cart.Lines(), pricing.Lookup(s.catalog.Get))
	s.mu.Unlock()

	if len(result.MissingItemIDs) > 0 {
		s.reportIntegrityGap(context.Background(), result.MissingItemIDs)
	}
	return result
}

// reportIntegrityGap logs and emits a catalog/cart desync warning.
func (s *Service) reportIntegrityGap(ctx context.Context, missing []string) {
	s.logf("pricing dropped %d cart line(s) referencing missing catalog items: %v", len(missing), missing)
	s.emit(ctx, telemetry.Event{
		Name:     telemetry.EventIntegrityGap,
		Severity: telemetry.SeverityWarn,
		Fields:   map[string]string{"missing_item_ids": strings.Join(missing, ",")},
	})
}

// saveCart persists the cart section. Callers hold the lock.
func (s *Service) saveCart(ctx context.Context) error {
	if s.store == nil {
		return nil
	}
	if err := s.store.PutCart(ctx, storage.CartToSection(s.cart.Lines(), s.cartOpen)); err != nil {
		return wrapStorage("persist cart", err)
	}
	return nil
}
