package usecase

import (
	"context"
	"log/slog"

	"github.com/pkg/errors"

	"github.com/mirukibs/contradots/internal/domain"
)

// ActivityDetails joins an activity with its statistics projection and
// engagement score.
type ActivityDetails struct {
	Activity *domain.Activity
	Stats    ActivityStats
	Score    int
}

// ActivityUsecase orchestrates activity lifecycle operations. Creation is
// lead-only; deactivation and reactivation are creator-only.
type ActivityUsecase struct {
	activities ActivityRepository
	actions    ActionRepository
	persons    PersonRepository
	stats      ActivityStatsQuery
	reputation *domain.ReputationService
	mirror     ChainMirror
}

func NewActivityUsecase(
	activities ActivityRepository,
	actions ActionRepository,
	persons PersonRepository,
	stats ActivityStatsQuery,
	reputation *domain.ReputationService,
	mirror ChainMirror,
) *ActivityUsecase {
	return &ActivityUsecase{
		activities: activities,
		actions:    actions,
		persons:    persons,
		stats:      stats,
		reputation: reputation,
		mirror:     mirror,
	}
}

func (uc *ActivityUsecase) Create(ctx context.Context, cmd CreateActivityCommand, actor domain.PersonID) (domain.ActivityID, error) {
	if err := cmd.Validate(); err != nil {
		return domain.ActivityID{}, err
	}

	leadID, _ := domain.ParsePersonID(cmd.LeadID)
	if leadID != actor {
		return domain.ActivityID{}, domain.ValidationError{Field: "leadId", Reason: "must match the authenticated user"}
	}

	creator, err := uc.persons.FindByID(ctx, actor)
	if err != nil {
		return domain.ActivityID{}, err
	}
	if !creator.CanCreateActivities() {
		return domain.ActivityID{}, domain.PermissionError{Msg: "only leads can create activities"}
	}

	activity, err := domain.NewActivity(domain.NewActivityID(), cmd.Name, cmd.Description, leadID, cmd.Points)
	if err != nil {
		return domain.ActivityID{}, err
	}

	if err := uc.activities.Save(ctx, activity); err != nil {
		return domain.ActivityID{}, errors.Wrap(err, "ActivityUsecase.Create: save failed")
	}

	if uc.mirror != nil {
		if _, err := uc.mirror.CreateActivity(ctx, activity); err != nil {
			slog.WarnContext(ctx, "chain mirror create failed",
				slog.String("activityId", activity.ID().String()),
				slog.String("error", err.Error()),
				slog.String("module", "activity"),
			)
		}
	}

	return activity.ID(), nil
}

// Deactivate is idempotent: deactivating an already-inactive activity
// succeeds without effect.
func (uc *ActivityUsecase) Deactivate(ctx context.Context, cmd DeactivateActivityCommand, actor domain.PersonID) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	activity, err := uc.loadOwned(ctx, cmd.ActivityID, actor)
	if err != nil {
		return err
	}
	activity.Deactivate()
	return uc.activities.Save(ctx, activity)
}

func (uc *ActivityUsecase) Reactivate(ctx context.Context, cmd ReactivateActivityCommand, actor domain.PersonID) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	activity, err := uc.loadOwned(ctx, cmd.ActivityID, actor)
	if err != nil {
		return err
	}
	activity.Reactivate()
	return uc.activities.Save(ctx, activity)
}

func (uc *ActivityUsecase) ActiveActivities(ctx context.Context) ([]*domain.Activity, error) {
	return uc.activities.FindAllActive(ctx)
}

func (uc *ActivityUsecase) Details(ctx context.Context, id domain.ActivityID) (ActivityDetails, error) {
	activity, err := uc.activities.FindByID(ctx, id)
	if err != nil {
		return ActivityDetails{}, err
	}

	actions, err := uc.actions.FindByActivityID(ctx, id)
	if err != nil {
		return ActivityDetails{}, err
	}

	details := ActivityDetails{
		Activity: activity,
		Score:    uc.reputation.ActivityScore(activity, actions),
	}

	if uc.stats != nil {
		stats, err := uc.stats.Stats(ctx, id)
		if err != nil {
			slog.WarnContext(ctx, "activity stats unavailable",
				slog.String("activityId", id.String()),
				slog.String("error", err.Error()),
				slog.String("module", "activity"),
			)
		} else {
			details.Stats = stats
		}
	}

	return details, nil
}

func (uc *ActivityUsecase) loadOwned(ctx context.Context, activityID string, actor domain.PersonID) (*domain.Activity, error) {
	id, _ := domain.ParseActivityID(activityID)
	activity, err := uc.activities.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if activity.CreatorID() != actor {
		return nil, domain.PermissionError{Msg: "only the creator can manage this activity"}
	}
	return activity, nil
}
