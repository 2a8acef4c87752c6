package orders

import (
	"context"
	"errors"
	"sync"
)

var (
	ErrNotFound          = errors.New("order not found")
	ErrDuplicateID       = errors.New("duplicate order id")
	ErrInvalidTransition = errors.New("invalid status transition")
)

// Ledger is the append-only, insertion-ordered record of confirmed orders.
// Only Status may change after Append.
type Ledger interface {
	Append(ctx context.Context, o Order) error
	All(ctx context.Context) ([]Order, error)
	Get(ctx context.Context, id string) (Order, error)
	SetStatus(ctx context.Context, id string, to Status) (Order, error)
}

// MemoryLedger hidup selama proses saja.
type MemoryLedger struct {
	mu     sync.RWMutex
	orders []Order
	byID   map[string]int
}

func NewMemoryLedger() *MemoryLedger {
	return &MemoryLedger{byID: map[string]int{}}
}

func (l *MemoryLedger) Append(_ context.Context, o Order) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, dup := l.byID[o.ID]; dup {
		return ErrDuplicateID
	}
	l.byID[o.ID] = len(l.orders)
	l.orders = append(l.orders, o)
	return nil
}

func (l *MemoryLedger) All(_ context.Context) ([]Order, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]Order, len(l.orders))
	copy(out, l.orders)
	return out, nil
}

func (l *MemoryLedger) Get(_ context.Context, id string) (Order, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	i, ok := l.byID[id]
	if !ok {
		return Order{}, ErrNotFound
	}
	return l.orders[i], nil
}

func (l *MemoryLedger) SetStatus(_ context.Context, id string, to Status) (Order, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	i, ok := l.byID[id]
	if !ok {
		return Order{}, ErrNotFound
	}
	if !CanTransition(l.orders[i].Status, to) {
		return Order{}, ErrInvalidTransition
	}
	l.orders[i].Status = to
	return l.orders[i], nil
}
