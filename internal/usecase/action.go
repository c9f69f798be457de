package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pkg/errors"

	"github.com/mirukibs/contradots/internal/domain"
	"github.com/mirukibs/contradots/internal/events"
)

// ActionUsecase orchestrates action submission and proof validation:
// command validation, aggregate mutation, persistence, event publication,
// and the best-effort chain mirror.
type ActionUsecase struct {
	actions    ActionRepository
	activities ActivityRepository
	persons    PersonRepository
	publisher  events.Publisher
	mirror     ChainMirror
}

func NewActionUsecase(
	actions ActionRepository,
	activities ActivityRepository,
	persons PersonRepository,
	publisher events.Publisher,
	mirror ChainMirror,
) *ActionUsecase {
	return &ActionUsecase{
		actions:    actions,
		activities: activities,
		persons:    persons,
		publisher:  publisher,
		mirror:     mirror,
	}
}

// Submit validates the command, creates the action through the aggregate
// factory, persists it and publishes the pending events in order. The event
// queue is cleared only after the publish loop completes.
func (uc *ActionUsecase) Submit(ctx context.Context, cmd SubmitActionCommand, actor domain.PersonID) (domain.ActionID, error) {
	if err := cmd.Validate(); err != nil {
		return domain.ActionID{}, err
	}

	personID, _ := domain.ParsePersonID(cmd.PersonID)
	activityID, _ := domain.ParseActivityID(cmd.ActivityID)

	if personID != actor {
		return domain.ActionID{}, domain.PermissionError{Msg: "actions can only be submitted on your own behalf"}
	}

	activity, err := uc.activities.FindByID(ctx, activityID)
	if err != nil {
		return domain.ActionID{}, err
	}
	if !activity.IsActive() {
		return domain.ActionID{}, domain.StateError{Msg: "activity is not active"}
	}

	proof := fmt.Sprintf("%s [hash:%s]", cmd.Description, cmd.ProofHash)
	action := domain.SubmitAction(domain.NewActionID(), personID, activityID, proof)

	if err := uc.actions.Save(ctx, action); err != nil {
		return domain.ActionID{}, errors.Wrap(err, "ActionUsecase.Submit: save failed")
	}

	for _, event := range action.Events() {
		uc.publisher.Publish(ctx, event)
	}
	action.ClearEvents()

	uc.mirrorSubmit(ctx, action)

	return action.ID(), nil
}

// ValidateProof routes the verdict through the aggregate's own state
// machine so the SUBMITTED-only invariant is enforced before any event is
// raised. Only leads may validate.
func (uc *ActionUsecase) ValidateProof(ctx context.Context, cmd ValidateProofCommand, actor domain.PersonID) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	if err := uc.requireLead(ctx, actor); err != nil {
		return err
	}

	actionID, _ := domain.ParseActionID(cmd.ActionID)
	action, err := uc.actions.FindByID(ctx, actionID)
	if err != nil {
		return err
	}

	if cmd.IsValid {
		err = action.ValidateProof()
	} else {
		err = action.Reject()
	}
	if err != nil {
		return err
	}

	if err := uc.actions.Save(ctx, action); err != nil {
		return errors.Wrap(err, "ActionUsecase.ValidateProof: save failed")
	}

	for _, event := range action.Events() {
		uc.publisher.Publish(ctx, event)
	}
	action.ClearEvents()

	if uc.mirror != nil {
		if err := uc.mirror.ValidateProof(ctx, action.ID(), cmd.IsValid); err != nil {
			slog.WarnContext(ctx, "chain mirror validate failed",
				slog.String("actionId", action.ID().String()),
				slog.String("error", err.Error()),
				slog.String("module", "action"),
			)
		}
	}

	return nil
}

// PendingValidations lists actions awaiting a verdict. Lead only.
func (uc *ActionUsecase) PendingValidations(ctx context.Context, actor domain.PersonID) ([]*domain.Action, error) {
	if err := uc.requireLead(ctx, actor); err != nil {
		return nil, err
	}
	return uc.actions.FindPending(ctx)
}

// PersonActions lists a person's submissions. People see their own; leads
// see anyone's.
func (uc *ActionUsecase) PersonActions(ctx context.Context, personID, actor domain.PersonID) ([]*domain.Action, error) {
	if personID != actor {
		if err := uc.requireLead(ctx, actor); err != nil {
			return nil, err
		}
	}
	return uc.actions.FindByPersonID(ctx, personID)
}

func (uc *ActionUsecase) requireLead(ctx context.Context, actor domain.PersonID) error {
	person, err := uc.persons.FindByID(ctx, actor)
	if err != nil {
		return err
	}
	if person.Role() != domain.RoleLead {
		return domain.PermissionError{Msg: "operation requires the LEAD role"}
	}
	return nil
}

func (uc *ActionUsecase) mirrorSubmit(ctx context.Context, action *domain.Action) {
	if uc.mirror == nil {
		return
	}
	chainID, err := uc.mirror.SubmitAction(ctx, action)
	if err != nil {
		slog.WarnContext(ctx, "chain mirror submit failed",
			slog.String("actionId", action.ID().String()),
			slog.String("error", err.Error()),
			slog.String("module", "action"),
		)
		return
	}
	action.SetChainActionID(chainID)
	if err := uc.actions.Save(ctx, action); err != nil {
		slog.WarnContext(ctx, "failed to persist chain action id",
			slog.String("actionId", action.ID().String()),
			slog.String("error", err.Error()),
			slog.String("module", "action"),
		)
	}
}
