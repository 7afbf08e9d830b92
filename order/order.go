// Package order holds confirmed-order snapshots and the append-only
// order log.
package order

import (
	"time"

	"github.com/shopspring/decimal"

	apperrors "github.com/lucafour/pizzeria/errors"
	"github.com/lucafour/pizzeria/pricing"
)

var (
	// ErrNotFound indicates the log holds no order with the given id.
	ErrNotFound = apperrors.New(apperrors.CodeOrderNotFound, "order not found")
	// ErrInvalidStatus indicates an unknown order status value.
	ErrInvalidStatus = apperrors.New(apperrors.CodeInvalidStatus, "order status is invalid")
)

// Status describes where an order sits in the fulfillment progression
// pending -> confirmed -> preparing -> ready -> delivered. The
// progression is advisory: statuses are set directly, not driven by a
// state machine.
type Status int

const (
	// StatusUnspecified represents an invalid status value.
	StatusUnspecified Status = iota
	// StatusPending indicates an order awaiting confirmation.
	StatusPending
	// StatusConfirmed indicates a confirmed order.
	StatusConfirmed
	// StatusPreparing indicates an order being prepared.
	StatusPreparing
	// StatusReady indicates an order ready for pickup or delivery.
	StatusReady
	// StatusDelivered indicates a delivered order.
	StatusDelivered
)

// statusLabels maps statuses to their stable labels.
var statusLabels = map[Status]string{
	StatusPending:   "pending",
	StatusConfirmed: "confirmed",
	StatusPreparing: "preparing",
	StatusReady:     "ready",
	StatusDelivered: "delivered",
}

// String returns the stable label for the status.
func (s Status) String() string {
	if label, ok := statusLabels[s]; ok {
		return label
	}
	return "unspecified"
}

// Valid reports whether the status is a known, non-zero value.
func (s Status) Valid() bool {
	_, ok := statusLabels[s]
	return ok
}

// StatusFromLabel parses a status label.
func StatusFromLabel(label string) (Status, error) {
	for status, l := range statusLabels {
		if l == label {
			return status, nil
		}
	}
	return StatusUnspecified, ErrInvalidStatus
}

// Order is an immutable snapshot of a confirmed cart: the derived
// lines and aggregate totals copied by value at confirmation time.
// Later cart mutations never alter a stored order.
type Order struct {
	ID        string
	Lines     []pricing.DerivedOrderLine
	Subtotal  decimal.Decimal
	Discount  decimal.Decimal
	Total     decimal.Decimal
	CreatedAt time.Time
	Status    Status
}

// clone returns a defensive copy of the order.
func (o Order) clone() Order {
	out := o
	out.Lines = append([]pricing.DerivedOrderLine(nil), o.Lines...)
	return out
}
