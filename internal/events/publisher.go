package events

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/mirukibs/contradots/internal/domain"
)

// HandleResult reports what a handler did with an event. The source system
// mixed strict throwing and silent ignoring; the typed result makes that
// choice explicit per handler.
type HandleResult int

const (
	// Ignored means the event type is outside the handler's interest.
	Ignored HandleResult = iota
	// Handled means the handler accepted the event, effect or not.
	Handled
	// Unsupported means a strict handler rejected the event type.
	Unsupported
)

func (r HandleResult) String() string {
	switch r {
	case Handled:
		return "handled"
	case Unsupported:
		return "unsupported"
	default:
		return "ignored"
	}
}

// Handler consumes published domain events.
type Handler interface {
	CanHandle(event domain.Event) bool
	Handle(ctx context.Context, event domain.Event) (HandleResult, error)
}

// Publisher distributes domain events to registered handlers.
type Publisher interface {
	Publish(ctx context.Context, event domain.Event)
	Register(eventType string, handler Handler)
}

// Log persists published events for audit and replay.
type Log interface {
	Append(ctx context.Context, event domain.Event) error
}

// InMemoryPublisher dispatches events synchronously, in registration order,
// to handlers registered for the exact event type. A failing handler is
// logged and does not stop its siblings nor surface to the caller.
//
// Construct one during application wiring and inject it; there is no
// process-wide instance.
type InMemoryPublisher struct {
	mu       sync.RWMutex
	handlers map[string][]Handler
	log      Log
}

func NewInMemoryPublisher() *InMemoryPublisher {
	return &InMemoryPublisher{
		handlers: make(map[string][]Handler),
	}
}

// WithLog makes the publisher append every published event to the given log
// before dispatch. Log failures are non-fatal.
func (p *InMemoryPublisher) WithLog(log Log) *InMemoryPublisher {
	p.log = log
	return p
}

func (p *InMemoryPublisher) Register(eventType string, handler Handler) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.handlers[eventType] = append(p.handlers[eventType], handler)
}

// HandlerCount reports how many handlers are registered for an event type.
func (p *InMemoryPublisher) HandlerCount(eventType string) int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.handlers[eventType])
}

func (p *InMemoryPublisher) Publish(ctx context.Context, event domain.Event) {
	p.mu.RLock()
	handlers := p.handlers[event.EventType()]
	p.mu.RUnlock()

	if p.log != nil {
		if err := p.log.Append(ctx, event); err != nil {
			slog.WarnContext(ctx, "failed to append event to log",
				slog.String("eventType", event.EventType()),
				slog.String("eventId", event.EventID().String()),
				slog.String("error", err.Error()),
				slog.String("module", "events"),
			)
		}
	}

	slog.DebugContext(ctx, "publishing event",
		slog.String("eventType", event.EventType()),
		slog.String("aggregateId", event.AggregateID()),
		slog.Int("handlers", len(handlers)),
		slog.String("module", "events"),
	)

	for _, h := range handlers {
		p.dispatch(ctx, h, event)
	}
}

func (p *InMemoryPublisher) dispatch(ctx context.Context, h Handler, event domain.Event) {
	defer func() {
		if r := recover(); r != nil {
			slog.ErrorContext(ctx, "event handler panicked",
				slog.String("eventType", event.EventType()),
				slog.String("error", fmt.Sprint(r)),
				slog.String("module", "events"),
			)
		}
	}()

	result, err := h.Handle(ctx, event)
	if err != nil {
		slog.ErrorContext(ctx, "event handler failed",
			slog.String("eventType", event.EventType()),
			slog.String("eventId", event.EventID().String()),
			slog.String("result", result.String()),
			slog.String("error", err.Error()),
			slog.String("module", "events"),
		)
	}
}
