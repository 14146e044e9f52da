package bus

import (
	"sync"

	"github.com/hupe1980/taskmesh/core"
	"github.com/hupe1980/taskmesh/logging"
)

// Handler consumes one published event payload.
type Handler func(name string, payload any)

// InMemory is a process-local EventBus delivering events synchronously to
// subscribers registered per event name (plus wildcard subscribers receiving
// everything). It is safe for concurrent use. A panicking handler is
// recovered and logged so one bad subscriber cannot poison the dispatch of
// the others or the publisher's control flow.
type InMemory struct {
	mu       sync.RWMutex
	handlers map[string][]Handler
	all      []Handler
	logger   logging.Logger
}

// NewInMemory constructs an empty in-memory bus.
func NewInMemory(logger logging.Logger) *InMemory {
	return &InMemory{handlers: make(map[string][]Handler), logger: logging.OrNoOp(logger)}
}

// Subscribe registers a handler for one event name.
func (b *InMemory) Subscribe(name string, h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[name] = append(b.handlers[name], h)
}

// SubscribeAll registers a handler for every event name.
func (b *InMemory) SubscribeAll(h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.all = append(b.all, h)
}

// Publish implements core.EventBus.
func (b *InMemory) Publish(name string, payload any) {
	b.mu.RLock()
	named := append([]Handler(nil), b.handlers[name]...)
	all := append([]Handler(nil), b.all...)
	b.mu.RUnlock()

	for _, h := range named {
		b.dispatch(h, name, payload)
	}
	for _, h := range all {
		b.dispatch(h, name, payload)
	}
}

func (b *InMemory) dispatch(h Handler, name string, payload any) {
	defer func() {
		if rec := recover(); rec != nil {
			b.logger.Warn("event handler panicked", "event", name, "panic", rec)
		}
	}()
	h(name, payload)
}

var _ core.EventBus = (*InMemory)(nil)
