package events

import (
	"context"
	"errors"
	"testing"

	"github.com/mirukibs/contradots/internal/domain"
)

type recordingHandler struct {
	name  string
	trace *[]string
	err   error
	panic bool
}

func (h *recordingHandler) CanHandle(event domain.Event) bool { return true }

func (h *recordingHandler) Handle(ctx context.Context, event domain.Event) (HandleResult, error) {
	*h.trace = append(*h.trace, h.name)
	if h.panic {
		panic("handler exploded")
	}
	if h.err != nil {
		return Handled, h.err
	}
	return Handled, nil
}

func submittedEvent() domain.Event {
	return domain.NewActionSubmitted(
		domain.NewActionID(), domain.NewPersonID(), domain.NewActivityID(),
		"desc", "abcd",
	)
}

func TestPublishDispatchesInRegistrationOrder(t *testing.T) {
	pub := NewInMemoryPublisher()
	var trace []string

	pub.Register(domain.EventTypeActionSubmitted, &recordingHandler{name: "first", trace: &trace})
	pub.Register(domain.EventTypeActionSubmitted, &recordingHandler{name: "second", trace: &trace})
	pub.Register(domain.EventTypeActionSubmitted, &recordingHandler{name: "third", trace: &trace})

	pub.Publish(context.Background(), submittedEvent())

	if len(trace) != 3 || trace[0] != "first" || trace[1] != "second" || trace[2] != "third" {
		t.Fatalf("expected registration-order dispatch, got %v", trace)
	}
}

func TestPublishMatchesExactEventType(t *testing.T) {
	pub := NewInMemoryPublisher()
	var trace []string

	pub.Register(domain.EventTypeProofValidated, &recordingHandler{name: "validated", trace: &trace})

	pub.Publish(context.Background(), submittedEvent())

	if len(trace) != 0 {
		t.Fatalf("handler for another event type must not run, got %v", trace)
	}
	if pub.HandlerCount(domain.EventTypeProofValidated) != 1 {
		t.Fatalf("expected 1 registered handler")
	}
}

func TestPublishIsolatesFailingHandlers(t *testing.T) {
	pub := NewInMemoryPublisher()
	var trace []string

	pub.Register(domain.EventTypeActionSubmitted, &recordingHandler{name: "failing", trace: &trace, err: errors.New("boom")})
	pub.Register(domain.EventTypeActionSubmitted, &recordingHandler{name: "panicking", trace: &trace, panic: true})
	pub.Register(domain.EventTypeActionSubmitted, &recordingHandler{name: "surviving", trace: &trace})

	pub.Publish(context.Background(), submittedEvent())

	if len(trace) != 3 || trace[2] != "surviving" {
		t.Fatalf("expected all handlers to run despite failures, got %v", trace)
	}
}

type memoryLog struct {
	appended []domain.Event
	err      error
}

func (l *memoryLog) Append(ctx context.Context, event domain.Event) error {
	l.appended = append(l.appended, event)
	return l.err
}

func TestPublishAppendsToLog(t *testing.T) {
	log := &memoryLog{}
	pub := NewInMemoryPublisher().WithLog(log)

	event := submittedEvent()
	pub.Publish(context.Background(), event)

	if len(log.appended) != 1 || log.appended[0].EventID() != event.EventID() {
		t.Fatalf("expected event appended to log")
	}
}

func TestPublishToleratesLogFailure(t *testing.T) {
	log := &memoryLog{err: errors.New("log down")}
	pub := NewInMemoryPublisher().WithLog(log)
	var trace []string
	pub.Register(domain.EventTypeActionSubmitted, &recordingHandler{name: "h", trace: &trace})

	pub.Publish(context.Background(), submittedEvent())

	if len(trace) != 1 {
		t.Fatalf("log failure must not block dispatch, got %v", trace)
	}
}
