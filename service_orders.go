package pizzeria

import (
	"context"
	"fmt"
	"time"

	apperrors "github.com/lucafour/pizzeria/errors"
	"github.com/lucafour/pizzeria/order"
	"github.com/lucafour/pizzeria/pricing"
	"github.com/lucafour/pizzeria/storage"
	"github.com/lucafour/pizzeria/telemetry"
)

// ErrCartEmpty indicates an order confirmation on an empty cart.
var ErrCartEmpty = apperrors.New(apperrors.CodeCartEmpty, "cart is empty")

// ConfirmOrder snapshots the current derived cart state into an
// immutable order, appends it to the order log, and clears the cart.
//
// The snapshot copies lines and totals by value: later cart mutations
// never alter a confirmed order. There is no rollback path; both the
// snapshot and the clear are in-memory, and a persistence failure
// surfaces as an error while the in-memory state stays consistent.
func (s *Service) ConfirmOrder(ctx context.Context) (order.Order, error) {
	s.mu.Lock()
	if s.cart.IsEmpty() {
		s.emit(ctx, telemetry.Event{
			Name:     telemetry.EventOrderRejected,
			Severity: telemetry.SeverityWarn,
			Fields:   map[string]string{"reason": "cart_empty"},
		})
		s.mu.Unlock()
		return order.Order{}, ErrCartEmpty
	}

	if s.confirmDelay > 0 {
		if err := s.waitConfirmDelay(ctx); err != nil {
			s.mu.Unlock()
			return order.Order{}, err
		}
		if s.cart.IsEmpty() {
			s.mu.Unlock()
			return order.Order{}, ErrCartEmpty
		}
	}
	defer s.mu.Unlock()

	result := pricing.Derive(s.cart.Lines(), s.catalog.Get)
	if len(result.MissingItemIDs) > 0 {
		s.reportIntegrityGap(ctx, result.MissingItemIDs)
	}
	if len(result.Lines) == 0 {
		// Every line referenced a missing item; nothing to confirm.
		return order.Order{}, ErrCartEmpty
	}

	orderID, err := s.idGenerator()
	if err != nil {
		return order.Order{}, fmt.Errorf("generate order id: %w", err)
	}

	confirmed := order.Order{
		ID:        orderID,
		Lines:     append([]pricing.DerivedOrderLine(nil), result.Lines...),
		Subtotal:  result.Subtotal,
		Discount:  result.Discount,
		Total:     result.Total,
		CreatedAt: s.clock().UTC(),
		Status:    order.StatusConfirmed,
	}

	s.orders.Append(confirmed)
	s.cart.Clear()

	s.emit(ctx, telemetry.Event{
		Name: telemetry.EventOrderConfirmed,
		Fields: map[string]string{
			"order_id": confirmed.ID,
			"lines":    fmt.Sprintf("%d", len(confirmed.Lines)),
			"total":    confirmed.Total.String(),
		},
	})

	if err := s.saveOrders(ctx); err != nil {
		return confirmed, err
	}
	return confirmed, s.saveCart(ctx)
}

// waitConfirmDelay pauses for the configured pacing delay, marking the
// order-in-progress flag while waiting. The caller holds the lock; it
// is released for the duration of the wait. The wait is cancellable
// and carries no correctness weight.
func (s *Service) waitConfirmDelay(ctx context.Context) error {
	s.orders.SetInProgress(true)
	if err := s.saveOrders(ctx); err != nil {
		s.logf("persist order-in-progress flag: %v", err)
	}
	s.mu.Unlock()

	timer := time.NewTimer(s.confirmDelay)
	defer timer.Stop()

	var waitErr error
	select {
	case <-ctx.Done():
		waitErr = ctx.Err()
	case <-timer.C:
	}

	s.mu.Lock()
	s.orders.SetInProgress(false)
	if err := s.saveOrders(ctx); err != nil && waitErr == nil {
		s.logf("persist order-in-progress flag: %v", err)
	}
	return waitErr
}

// Orders returns a copy of the order log, newest first.
func (s *Service) Orders() []order.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.orders.List()
}

// Order returns a single order by id.
func (s *Service) Order(id string) (order.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.orders.Get(id)
}

// OrderInProgress reports whether a confirmation is in flight.
func (s *Service) OrderInProgress() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.orders.InProgress()
}

// DeleteOrder removes an order from history.
func (s *Service) DeleteOrder(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.orders.Delete(id); err != nil {
		return err
	}
	s.emit(ctx, telemetry.Event{
		Name:   telemetry.EventOrderDeleted,
		Fields: map[string]string{"order_id": id},
	})
	return s.saveOrders(ctx)
}

// SetOrderStatus sets an order status directly. The progression
// pending -> confirmed -> preparing -> ready -> delivered is advisory;
// only the status value itself is validated.
func (s *Service) SetOrderStatus(ctx context.Context, id string, status order.Status) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.orders.SetStatus(id, status); err != nil {
		return err
	}
	return s.saveOrders(ctx)
}

// saveOrders persists the order log section. Callers hold the lock.
func (s *Service) saveOrders(ctx context.Context) error {
	if s.store == nil {
		return nil
	}
	orders := s.orders.List()
	// List is newest first; persist oldest first so appends stay stable.
	for i, j := 0, len(orders)-1; i < j; i, j = i+1, j-1 {
		orders[i], orders[j] = orders[j], orders[i]
	}
	if err := s.store.PutOrders(ctx, storage.OrdersToSection(orders, s.orders.InProgress())); err != nil {
		return wrapStorage("persist orders", err)
	}
	return nil
}
