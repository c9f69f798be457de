package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel"

	"github.com/mirukibs/contradots/internal/domain"
	"github.com/mirukibs/contradots/internal/events"
	"github.com/mirukibs/contradots/internal/usecase"
)

var reputationTracer = otel.Tracer("reputation")

// Reputation writes race with each other when two validations for the same
// person land concurrently; the repository's version check plus this retry
// budget resolves the read-modify-write without a global lock.
const maxReputationRetries = 3

// ReputationEventHandler is the only writer of Person reputation scores.
// It is strict: event types outside its allowlist are an error, not a
// silent skip.
type ReputationEventHandler struct {
	persons    usecase.PersonRepository
	activities usecase.ActivityRepository
	reputation *domain.ReputationService

	// seen deduplicates event ids so a re-delivered event is applied at
	// most once.
	seen *cache.Cache
}

func NewReputationEventHandler(
	persons usecase.PersonRepository,
	activities usecase.ActivityRepository,
	reputation *domain.ReputationService,
) *ReputationEventHandler {
	return &ReputationEventHandler{
		persons:    persons,
		activities: activities,
		reputation: reputation,
		seen:       cache.New(10*time.Minute, 15*time.Minute),
	}
}

func (h *ReputationEventHandler) CanHandle(event domain.Event) bool {
	switch event.(type) {
	case domain.ActionSubmitted, domain.ProofValidated:
		return true
	}
	return false
}

func (h *ReputationEventHandler) Handle(ctx context.Context, event domain.Event) (events.HandleResult, error) {
	switch e := event.(type) {
	case domain.ActionSubmitted:
		// Reserved for preliminary scoring. No effect, no repository calls.
		return events.Handled, nil
	case domain.ProofValidated:
		return h.handleProofValidated(ctx, e)
	default:
		return events.Unsupported, domain.UnsupportedEventError{EventType: event.EventType()}
	}
}

func (h *ReputationEventHandler) handleProofValidated(ctx context.Context, event domain.ProofValidated) (events.HandleResult, error) {
	ctx, span := reputationTracer.Start(ctx, "Reputation.Handler.ProofValidated")
	defer span.End()

	if !event.IsValid {
		// Invalid proofs never change reputation.
		return events.Handled, nil
	}

	key := event.EventID().String()
	if _, dup := h.seen.Get(key); dup {
		slog.DebugContext(ctx, "skipping already-applied event",
			slog.String("eventId", key),
			slog.String("module", "reputation"),
		)
		return events.Handled, nil
	}

	// A missing person or activity here is a referential-integrity
	// violation upstream. Fatal, not retried.
	if _, err := h.activities.FindByID(ctx, event.ActivityID); err != nil {
		span.RecordError(err)
		return events.Handled, errors.Wrap(err, "ReputationEventHandler: activity lookup failed")
	}

	for attempt := 0; ; attempt++ {
		person, err := h.persons.FindByID(ctx, event.PersonID)
		if err != nil {
			span.RecordError(err)
			return events.Handled, errors.Wrap(err, "ReputationEventHandler: person lookup failed")
		}

		award := h.reputation.ValidationAward(person.Role())
		person.UpdateReputation(award)

		err = h.persons.Save(ctx, person)
		if err == nil {
			h.seen.SetDefault(key, struct{}{})
			slog.InfoContext(ctx, "reputation updated",
				slog.String("personId", person.ID().String()),
				slog.Int("award", award),
				slog.Int("score", person.Reputation()),
				slog.String("module", "reputation"),
			)
			return events.Handled, nil
		}
		if !errors.Is(err, domain.ErrConflict) || attempt >= maxReputationRetries {
			span.RecordError(err)
			return events.Handled, errors.Wrap(err, "ReputationEventHandler: person save failed")
		}
	}
}
