package domain

import (
	"errors"
	"testing"
)

func TestSubmitActionRaisesSubmittedEvent(t *testing.T) {
	actionID := NewActionID()
	personID := NewPersonID()
	activityID := NewActivityID()

	action := SubmitAction(actionID, personID, activityID, "cleaned the park [hash:abc123]")

	if action.Status() != StatusSubmitted {
		t.Fatalf("expected status SUBMITTED, got %s", action.Status())
	}
	if action.VerifiedAt() != nil {
		t.Fatalf("expected no verification timestamp on submit")
	}

	events := action.Events()
	if len(events) != 1 {
		t.Fatalf("expected 1 pending event, got %d", len(events))
	}
	submitted, ok := events[0].(ActionSubmitted)
	if !ok {
		t.Fatalf("expected ActionSubmitted, got %T", events[0])
	}
	if submitted.ActionID != actionID || submitted.PersonID != personID || submitted.ActivityID != activityID {
		t.Fatalf("event carries wrong ids")
	}
	if submitted.AggregateID() != actionID.String() || submitted.AggregateType() != AggregateTypeAction {
		t.Fatalf("event carries wrong aggregate identity")
	}
}

func TestValidateProofEventOrder(t *testing.T) {
	action := SubmitAction(NewActionID(), NewPersonID(), NewActivityID(), "proof")

	if err := action.ValidateProof(); err != nil {
		t.Fatalf("validate failed: %v", err)
	}

	if action.Status() != StatusValidated {
		t.Fatalf("expected status VALIDATED, got %s", action.Status())
	}
	if action.VerifiedAt() == nil {
		t.Fatalf("expected verification timestamp to be set")
	}
	if !action.IsVerified() {
		t.Fatalf("expected IsVerified to be true")
	}

	events := action.Events()
	if len(events) != 2 {
		t.Fatalf("expected 2 pending events, got %d", len(events))
	}
	if _, ok := events[0].(ActionSubmitted); !ok {
		t.Fatalf("expected first event ActionSubmitted, got %T", events[0])
	}
	validated, ok := events[1].(ProofValidated)
	if !ok {
		t.Fatalf("expected second event ProofValidated, got %T", events[1])
	}
	if !validated.IsValid {
		t.Fatalf("expected IsValid true on successful validation")
	}
}

func TestValidateProofTwiceFails(t *testing.T) {
	action := SubmitAction(NewActionID(), NewPersonID(), NewActivityID(), "proof")

	if err := action.ValidateProof(); err != nil {
		t.Fatalf("first validate failed: %v", err)
	}

	err := action.ValidateProof()
	if err == nil {
		t.Fatalf("expected second validate to fail")
	}
	if !errors.Is(err, ErrIllegalState) {
		t.Fatalf("expected StateError, got %v", err)
	}

	// no double-raise
	if got := len(action.Events()); got != 2 {
		t.Fatalf("expected 2 pending events after failed revalidation, got %d", got)
	}
}

func TestRejectRaisesInvalidProofEvent(t *testing.T) {
	action := SubmitAction(NewActionID(), NewPersonID(), NewActivityID(), "proof")

	if err := action.Reject(); err != nil {
		t.Fatalf("reject failed: %v", err)
	}
	if action.Status() != StatusRejected {
		t.Fatalf("expected status REJECTED, got %s", action.Status())
	}
	if action.VerifiedAt() != nil {
		t.Fatalf("rejection must not stamp verifiedAt")
	}

	events := action.Events()
	validated, ok := events[len(events)-1].(ProofValidated)
	if !ok {
		t.Fatalf("expected ProofValidated, got %T", events[len(events)-1])
	}
	if validated.IsValid {
		t.Fatalf("expected IsValid false on rejection")
	}

	if err := action.ValidateProof(); !errors.Is(err, ErrIllegalState) {
		t.Fatalf("expected validate after reject to fail with StateError, got %v", err)
	}
}

func TestEventsReturnsDefensiveCopy(t *testing.T) {
	action := SubmitAction(NewActionID(), NewPersonID(), NewActivityID(), "proof")

	events := action.Events()
	events[0] = nil

	if action.Events()[0] == nil {
		t.Fatalf("mutating the returned slice must not affect the aggregate")
	}

	action.ClearEvents()
	if len(action.Events()) != 0 {
		t.Fatalf("expected empty queue after ClearEvents")
	}
}
