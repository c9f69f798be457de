package projection

import (
	"context"

	"github.com/pkg/errors"

	"github.com/mirukibs/contradots/internal/domain"
	"github.com/mirukibs/contradots/internal/events"
)

// ActivityStatsStore maintains per-activity submission counters.
type ActivityStatsStore interface {
	RecordSubmission(ctx context.Context, activityID domain.ActivityID, personID domain.PersonID) error
}

// ActivityStatsHandler tracks submission volume per activity. It exists to
// count submissions, not validation outcomes, so ProofValidated and
// everything else is ignored.
type ActivityStatsHandler struct {
	store ActivityStatsStore
}

func NewActivityStatsHandler(store ActivityStatsStore) *ActivityStatsHandler {
	return &ActivityStatsHandler{store: store}
}

func (h *ActivityStatsHandler) CanHandle(event domain.Event) bool {
	_, ok := event.(domain.ActionSubmitted)
	return ok
}

func (h *ActivityStatsHandler) Handle(ctx context.Context, event domain.Event) (events.HandleResult, error) {
	submitted, ok := event.(domain.ActionSubmitted)
	if !ok {
		return events.Ignored, nil
	}

	if err := h.store.RecordSubmission(ctx, submitted.ActivityID, submitted.PersonID); err != nil {
		return events.Handled, errors.Wrap(err, "ActivityStatsHandler: record submission failed")
	}
	return events.Handled, nil
}
