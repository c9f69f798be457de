package domain

import (
	"time"

	"github.com/google/uuid"
)

// Event type names, used for publisher routing and the event log.
const (
	EventTypeActionSubmitted = "action.submitted"
	EventTypeProofValidated  = "action.proof_validated"
)

// Aggregate type names carried on events.
const (
	AggregateTypeAction   = "action"
	AggregateTypeActivity = "activity"
	AggregateTypePerson   = "person"
)

// Event is an immutable record of something that already happened to an
// aggregate. Events carry ids only, never aggregate references.
type Event interface {
	EventID() uuid.UUID
	EventType() string
	OccurredAt() time.Time
	AggregateID() string
	AggregateType() string
}

type baseEvent struct {
	id            uuid.UUID
	occurredAt    time.Time
	aggregateID   string
	aggregateType string
}

func newBaseEvent(aggregateID, aggregateType string) baseEvent {
	return baseEvent{
		id:            uuid.New(),
		occurredAt:    time.Now().UTC(),
		aggregateID:   aggregateID,
		aggregateType: aggregateType,
	}
}

func (e baseEvent) EventID() uuid.UUID    { return e.id }
func (e baseEvent) OccurredAt() time.Time { return e.occurredAt }
func (e baseEvent) AggregateID() string   { return e.aggregateID }
func (e baseEvent) AggregateType() string { return e.aggregateType }

// ActionSubmitted records that a person submitted an action with proof
// for an activity.
type ActionSubmitted struct {
	baseEvent
	ActionID    ActionID
	PersonID    PersonID
	ActivityID  ActivityID
	Description string
	ProofHash   string
}

func NewActionSubmitted(actionID ActionID, personID PersonID, activityID ActivityID, description, proofHash string) ActionSubmitted {
	return ActionSubmitted{
		baseEvent:   newBaseEvent(actionID.String(), AggregateTypeAction),
		ActionID:    actionID,
		PersonID:    personID,
		ActivityID:  activityID,
		Description: description,
		ProofHash:   proofHash,
	}
}

func (e ActionSubmitted) EventType() string { return EventTypeActionSubmitted }

// ProofValidated records the outcome of a lead reviewing an action's proof.
type ProofValidated struct {
	baseEvent
	ActionID   ActionID
	PersonID   PersonID
	ActivityID ActivityID
	IsValid    bool
}

func NewProofValidated(actionID ActionID, personID PersonID, activityID ActivityID, isValid bool) ProofValidated {
	return ProofValidated{
		baseEvent:  newBaseEvent(actionID.String(), AggregateTypeAction),
		ActionID:   actionID,
		PersonID:   personID,
		ActivityID: activityID,
		IsValid:    isValid,
	}
}

func (e ProofValidated) EventType() string { return EventTypeProofValidated }
