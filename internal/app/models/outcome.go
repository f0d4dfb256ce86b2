package models

// OutcomeKind classifies how a submission was handled.
type OutcomeKind string

const (
	OutcomeRejected     OutcomeKind = "REJECTED"
	OutcomeAutoResolved OutcomeKind = "AUTO_RESOLVED"
	OutcomeQueued       OutcomeKind = "QUEUED"
)

// OnlineRejectionReason is sent for every online submission.
const OnlineRejectionReason = "Online courses not accepted."

// Outcome is the result of classifying a submission.
type Outcome struct {
	Kind     OutcomeKind `json:"kind"`
	Approved bool        `json:"approved"`
	Reasons  string      `json:"reasons"`
	// PendingRequestID is set when Kind is OutcomeQueued.
	PendingRequestID int64 `json:"pendingRequestId,omitempty"`
	// PrecedentID is set when Kind is OutcomeAutoResolved.
	PrecedentID int64 `json:"precedentId,omitempty"`
}

// Decision is what the requester is told.
type Decision struct {
	Approved bool
	Reasons  string
}

// Decision returns the requester-facing decision. Queued outcomes have none.
func (o *Outcome) Decision() (Decision, bool) {
	if o.Kind == OutcomeQueued {
		return Decision{}, false
	}
	return Decision{Approved: o.Approved, Reasons: o.Reasons}, true
}
