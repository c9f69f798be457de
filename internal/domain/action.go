package domain

import (
	"fmt"
	"time"

	"github.com/zeebo/xxh3"
)

// ActionStatus is the lifecycle state of a submitted action.
type ActionStatus string

const (
	StatusSubmitted ActionStatus = "SUBMITTED"
	StatusValidated ActionStatus = "VALIDATED"
	StatusRejected  ActionStatus = "REJECTED"
)

// Action is the aggregate root for a person's submission against an
// activity. Verification happens through ValidateProof only; verifiedAt is
// set iff the status has left SUBMITTED through validation.
type Action struct {
	id            ActionID
	personID      PersonID
	activityID    ActivityID
	proof         string
	status        ActionStatus
	submittedAt   time.Time
	verifiedAt    *time.Time
	chainActionID *uint64

	events []Event
}

// SubmitAction creates a new action in SUBMITTED status and raises a single
// ActionSubmitted event.
func SubmitAction(id ActionID, personID PersonID, activityID ActivityID, proof string) *Action {
	a := &Action{
		id:          id,
		personID:    personID,
		activityID:  activityID,
		proof:       proof,
		status:      StatusSubmitted,
		submittedAt: time.Now().UTC(),
	}
	a.events = append(a.events, NewActionSubmitted(
		id, personID, activityID,
		"Action submitted for activity "+activityID.String(),
		ProofFingerprint(proof),
	))
	return a
}

// ProofFingerprint derives a short stable fingerprint of the proof payload
// for events and logs. Not the submitter-provided proof hash itself.
func ProofFingerprint(proof string) string {
	return fmt.Sprintf("%016x", xxh3.HashString(proof))
}

// RestoreAction rebuilds an action from persisted state without raising
// events.
func RestoreAction(id ActionID, personID PersonID, activityID ActivityID, proof string, status ActionStatus, submittedAt time.Time, verifiedAt *time.Time, chainActionID *uint64) *Action {
	return &Action{
		id:            id,
		personID:      personID,
		activityID:    activityID,
		proof:         proof,
		status:        status,
		submittedAt:   submittedAt,
		verifiedAt:    verifiedAt,
		chainActionID: chainActionID,
	}
}

func (a *Action) ID() ActionID           { return a.id }
func (a *Action) PersonID() PersonID     { return a.personID }
func (a *Action) ActivityID() ActivityID { return a.activityID }
func (a *Action) Proof() string          { return a.proof }
func (a *Action) Status() ActionStatus   { return a.status }
func (a *Action) SubmittedAt() time.Time { return a.submittedAt }
func (a *Action) VerifiedAt() *time.Time { return a.verifiedAt }
func (a *Action) ChainActionID() *uint64 { return a.chainActionID }

// ValidateProof transitions SUBMITTED -> VALIDATED, stamps the verification
// time and raises ProofValidated. Calling it in any other status is a
// domain-rule violation.
func (a *Action) ValidateProof() error {
	if a.status != StatusSubmitted {
		return StateError{Msg: "can only validate proof for actions in SUBMITTED status"}
	}
	a.status = StatusValidated
	now := time.Now().UTC()
	a.verifiedAt = &now
	a.events = append(a.events, NewProofValidated(a.id, a.personID, a.activityID, true))
	return nil
}

// Reject transitions SUBMITTED -> REJECTED and raises ProofValidated with
// IsValid false. Rejected proofs never change reputation.
func (a *Action) Reject() error {
	if a.status != StatusSubmitted {
		return StateError{Msg: "can only reject actions in SUBMITTED status"}
	}
	a.status = StatusRejected
	a.events = append(a.events, NewProofValidated(a.id, a.personID, a.activityID, false))
	return nil
}

func (a *Action) IsVerified() bool {
	return a.status == StatusValidated
}

// SetChainActionID records the mirror id assigned by the on-chain contract.
func (a *Action) SetChainActionID(id uint64) {
	a.chainActionID = &id
}

// Events returns a defensive copy of the pending domain events.
func (a *Action) Events() []Event {
	out := make([]Event, len(a.events))
	copy(out, a.events)
	return out
}

// ClearEvents empties the pending queue. The owning service calls this after
// publishing to avoid re-publication.
func (a *Action) ClearEvents() {
	a.events = nil
}
