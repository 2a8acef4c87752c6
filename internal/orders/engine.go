package orders

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/ariefcatur/nirmala-invitations/internal/catalog"
	kafkax "github.com/ariefcatur/nirmala-invitations/internal/kafka"
	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"
)

var ErrPrecondition = errors.New("order precondition failed")

// PreconditionError means the caller submitted something it should not have
// (skipped validation, unknown design). It is a collaborator bug, not user input.
type PreconditionError struct {
	Reason string
	Fields FieldErrors
}

func (e *PreconditionError) Error() string {
	if len(e.Fields) == 0 {
		return "submit: " + e.Reason
	}
	names := make([]string, 0, len(e.Fields))
	for f := range e.Fields {
		names = append(names, f)
	}
	sort.Strings(names)
	return fmt.Sprintf("submit: %s: %s", e.Reason, strings.Join(names, ","))
}

func (e *PreconditionError) Is(target error) bool { return target == ErrPrecondition }

type Engine struct {
	Catalog       *catalog.Catalog
	Ledger        Ledger
	Submitted     Publisher // publish OrderSubmitted
	StatusChanged Publisher // publish OrderStatusChanged
	ServiceName   string
	Now           func() time.Time
}

func (e *Engine) now() time.Time {
	if e.Now != nil {
		return e.Now().UTC()
	}
	return time.Now().UTC()
}

func (e *Engine) lookup(id string) *catalog.Entry {
	if id == "" {
		return nil
	}
	if entry, ok := e.Catalog.FindByID(id); ok {
		return &entry
	}
	return nil
}

// Validate runs the field policy and additionally refuses a print quantity whose
// total cannot be priced.
func (e *Engine) Validate(d Draft) FieldErrors {
	fe := Validate(d)
	if _, has := fe[FieldQuantity]; has {
		return fe
	}
	if entry := e.lookup(d.CatalogID); entry != nil {
		if _, ok := priceOf(entry, d); !ok {
			fe[FieldQuantity] = msgQuantityTooLarge
		}
	}
	return fe
}

// Quote prices the draft against the catalog. ok=false: belum ada desain yang valid,
// atau jumlahnya terlalu besar untuk dihitung.
func (e *Engine) Quote(d Draft) (total int, ok bool) {
	return priceOf(e.lookup(d.CatalogID), d)
}

// Submit confirms a validated draft and appends it to the ledger. Either the order is
// appended and returned, or nothing is recorded.
func (e *Engine) Submit(ctx context.Context, d Draft, traceID string) (Order, error) {
	entry := e.lookup(d.CatalogID)
	if entry == nil {
		return Order{}, &PreconditionError{Reason: fmt.Sprintf("unknown catalog id %q", d.CatalogID)}
	}
	if d.Channel != entry.Channel {
		return Order{}, &PreconditionError{
			Reason: fmt.Sprintf("channel %q does not match design %s (%s)", d.Channel, entry.ID, entry.Channel),
		}
	}
	if fe := e.Validate(d); !fe.Empty() {
		return Order{}, &PreconditionError{Reason: "draft has validation errors", Fields: fe}
	}
	total, _ := priceOf(entry, d)

	now := e.now()
	o := Order{
		ID:        uuid.NewString(),
		Draft:     d,
		Status:    StatusPending,
		OrderDate: now.Format(time.DateOnly),
		CreatedAt: now,
	}
	if err := e.Ledger.Append(ctx, o); err != nil {
		return Order{}, fmt.Errorf("append order: %w", err)
	}

	slog.Info("order submitted", "order_id", o.ID, "catalog_id", d.CatalogID, "channel", d.Channel, "total", total)

	e.publish(e.Submitted, EventOrderSubmitted, o.ID, traceID, OrderSubmittedPayload{
		Order:      o,
		DesignName: entry.Name,
		Total:      total,
	})
	return o, nil
}

// SetStatus is the back-office transition (pending -> completed).
func (e *Engine) SetStatus(ctx context.Context, id string, to Status, traceID string) (Order, error) {
	cur, err := e.Ledger.Get(ctx, id)
	if err != nil {
		return Order{}, err
	}
	if !CanTransition(cur.Status, to) {
		return Order{}, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, cur.Status, to)
	}
	o, err := e.Ledger.SetStatus(ctx, id, to)
	if err != nil {
		return Order{}, err
	}
	slog.Info("order status changed", "order_id", id, "from", cur.Status, "to", to)

	e.publish(e.StatusChanged, EventOrderStatusChanged, id, traceID, OrderStatusChangedPayload{
		OrderID: id, From: cur.Status, To: to,
	})
	return o, nil
}

func (e *Engine) Get(ctx context.Context, id string) (Order, error) {
	return e.Ledger.Get(ctx, id)
}

func (e *Engine) All(ctx context.Context) ([]Order, error) {
	return e.Ledger.All(ctx)
}

func (e *Engine) Stats(ctx context.Context) (Stats, error) {
	all, err := e.Ledger.All(ctx)
	if err != nil {
		return Stats{}, err
	}
	return Aggregate(all, e.Catalog), nil
}

// TotalOf prices a confirmed order with the current catalog.
func (e *Engine) TotalOf(o Order) int {
	return PriceOf(e.lookup(o.CatalogID), o.Draft)
}

func (e *Engine) publish(p Publisher, eventType, orderID, traceID string, payload any) {
	if p == nil {
		return
	}
	ev := Envelope{
		EventID:       uuid.NewString(),
		EventType:     eventType,
		EventVersion:  1,
		OccurredAt:    e.now(),
		Producer:      e.ServiceName,
		TraceID:       traceID,
		CorrelationID: orderID,
		Payload:       kafkax.MustMarshal(payload),
	}
	p.Publish(PartitionKey(orderID), kafkax.MustMarshal(ev),
		kafkago.Header{Key: "x-event-type", Value: []byte(eventType)},
		kafkago.Header{Key: "x-event-version", Value: []byte("1")},
	)
}
