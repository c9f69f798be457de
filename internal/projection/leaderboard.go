package projection

import (
	"context"
	"log/slog"

	"github.com/pkg/errors"

	"github.com/mirukibs/contradots/internal/domain"
	"github.com/mirukibs/contradots/internal/events"
	"github.com/mirukibs/contradots/internal/usecase"
)

// LeaderboardStore writes the denormalized reputation ranking.
type LeaderboardStore interface {
	UpdateScore(ctx context.Context, personID domain.PersonID, name string, score int) error
}

// ChangeNotifier broadcasts leaderboard changes to realtime subscribers.
type ChangeNotifier interface {
	NotifyReputationChanged(ctx context.Context, personID domain.PersonID, score int) error
}

// LeaderboardHandler keeps the leaderboard read model in sync with
// validation outcomes. It accepts submissions too, reserved for future
// volume-based rankings, and silently ignores everything else.
type LeaderboardHandler struct {
	persons  usecase.PersonRepository
	store    LeaderboardStore
	notifier ChangeNotifier
}

func NewLeaderboardHandler(persons usecase.PersonRepository, store LeaderboardStore, notifier ChangeNotifier) *LeaderboardHandler {
	return &LeaderboardHandler{
		persons:  persons,
		store:    store,
		notifier: notifier,
	}
}

func (h *LeaderboardHandler) CanHandle(event domain.Event) bool {
	switch event.(type) {
	case domain.ActionSubmitted, domain.ProofValidated:
		return true
	}
	return false
}

func (h *LeaderboardHandler) Handle(ctx context.Context, event domain.Event) (events.HandleResult, error) {
	switch e := event.(type) {
	case domain.ActionSubmitted:
		// Rankings move on validation only.
		return events.Handled, nil
	case domain.ProofValidated:
		if !e.IsValid {
			return events.Handled, nil
		}
		return h.recomputeRank(ctx, e.PersonID)
	default:
		return events.Ignored, nil
	}
}

// recomputeRank re-reads the person's current reputation and writes it to
// the ranking store. Runs after the reputation handler by registration
// order, so the score read here is the post-award one.
func (h *LeaderboardHandler) recomputeRank(ctx context.Context, personID domain.PersonID) (events.HandleResult, error) {
	person, err := h.persons.FindByID(ctx, personID)
	if err != nil {
		return events.Handled, errors.Wrap(err, "LeaderboardHandler: person lookup failed")
	}

	if err := h.store.UpdateScore(ctx, person.ID(), person.Name(), person.Reputation()); err != nil {
		return events.Handled, errors.Wrap(err, "LeaderboardHandler: rank update failed")
	}

	if h.notifier != nil {
		if err := h.notifier.NotifyReputationChanged(ctx, person.ID(), person.Reputation()); err != nil {
			slog.WarnContext(ctx, "leaderboard change notification failed",
				slog.String("personId", person.ID().String()),
				slog.String("error", err.Error()),
				slog.String("module", "projection"),
			)
		}
	}

	return events.Handled, nil
}
