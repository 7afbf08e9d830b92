package order

// Log is the append-only record of confirmed orders. Orders leave the
// log only through explicit deletion.
type Log struct {
	orders     []Order
	index      map[string]int
	inProgress bool
}

// NewLog creates an empty order log.
func NewLog() *Log {
	return &Log{index: make(map[string]int)}
}

// Append adds an order to the log.
func (l *Log) Append(o Order) {
	if o.ID == "" {
		return
	}
	if pos, exists := l.index[o.ID]; exists {
		l.orders[pos] = o.clone()
		return
	}
	l.index[o.ID] = len(l.orders)
	l.orders = append(l.orders, o.clone())
}

// Get returns an order by id.
func (l *Log) Get(id string) (Order, error) {
	pos, exists := l.index[id]
	if !exists {
		return Order{}, ErrNotFound
	}
	return l.orders[pos].clone(), nil
}

// List returns a copy of all orders, newest first.
func (l *Log) List() []Order {
	out := make([]Order, 0, len(l.orders))
	for i := len(l.orders) - 1; i >= 0; i-- {
		out = append(out, l.orders[i].clone())
	}
	return out
}

// Len returns the number of orders in the log.
func (l *Log) Len() int {
	return len(l.orders)
}

// Delete removes an order from history.
func (l *Log) Delete(id string) error {
	pos, exists := l.index[id]
	if !exists {
		return ErrNotFound
	}
	l.orders = append(l.orders[:pos], l.orders[pos+1:]...)
	delete(l.index, id)
	for i := pos; i < len(l.orders); i++ {
		l.index[l.orders[i].ID] = i
	}
	return nil
}

// SetStatus sets an order status directly. The status must be a known
// value.
func (l *Log) SetStatus(id string, status Status) error {
	if !status.Valid() {
		return ErrInvalidStatus
	}
	pos, exists := l.index[id]
	if !exists {
		return ErrNotFound
	}
	l.orders[pos].Status = status
	return nil
}

// InProgress reports whether a confirmation is currently in flight.
func (l *Log) InProgress() bool {
	return l.inProgress
}

// SetInProgress records whether a confirmation is in flight.
func (l *Log) SetInProgress(v bool) {
	l.inProgress = v
}

// Restore replaces the log contents from persisted orders, oldest
// first.
func (l *Log) Restore(orders []Order, inProgress bool) {
	l.orders = nil
	l.index = make(map[string]int)
	for _, o := range orders {
		l.Append(o)
	}
	l.inProgress = inProgress
}
