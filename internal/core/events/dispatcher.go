package events

import (
	"context"
	"sync"

	"github.com/hisabat-app/hisabat_backend/internal/core/domain"
)

// Handler consumes a domain event. Handlers must tolerate being called
// concurrently with ledger reads; they run synchronously after the
// publishing mutation has committed.
type Handler func(ctx context.Context, event domain.Event)

// Publisher is the side services use to announce committed mutations.
type Publisher interface {
	Publish(ctx context.Context, event domain.Event)
}

// Dispatcher is a synchronous in-process fan-out from publishers to
// subscribed handlers. Subscribing to domain.EventKind("") receives every event.
type Dispatcher struct {
	mu       sync.RWMutex
	handlers map[domain.EventKind][]Handler
}

// NewDispatcher creates an empty dispatcher.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{handlers: make(map[domain.EventKind][]Handler)}
}

// Subscribe registers a handler for the given event kinds. Passing no kinds
// subscribes the handler to all events.
func (d *Dispatcher) Subscribe(handler Handler, kinds ...domain.EventKind) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(kinds) == 0 {
		d.handlers[domain.EventKind("")] = append(d.handlers[domain.EventKind("")], handler)
		return
	}
	for _, kind := range kinds {
		d.handlers[kind] = append(d.handlers[kind], handler)
	}
}

// Publish delivers the event to every matching handler in subscription order.
func (d *Dispatcher) Publish(ctx context.Context, event domain.Event) {
	d.mu.RLock()
	matched := make([]Handler, 0, len(d.handlers[event.Kind])+len(d.handlers[domain.EventKind("")]))
	matched = append(matched, d.handlers[event.Kind]...)
	matched = append(matched, d.handlers[domain.EventKind("")]...)
	d.mu.RUnlock()

	for _, h := range matched {
		h(ctx, event)
	}
}
