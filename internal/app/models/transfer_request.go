package models

import "time"

// TransferRequest is a decided precedent. It is consulted for every new
// submission before anything else.
type TransferRequest struct {
	ID               int64     `json:"id" db:"id"`
	TransferSchoolID int64     `json:"transferSchoolId" db:"transfer_school_id"`
	TransferCourseID int64     `json:"transferCourseId" db:"transfer_course_id"`
	TargetCourseID   int64     `json:"targetCourseId" db:"target_course_id"`
	Approved         bool      `json:"approved" db:"approved"`
	Reasons          string    `json:"reasons" db:"reasons"`
	DecidedAt        time.Time `json:"decidedAt" db:"decided_at"`
	CreatedAt        time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt        time.Time `json:"updatedAt" db:"updated_at"`
}

// PrecedentKey is the exact-match lookup key for precedents.
type PrecedentKey struct {
	TransferSchoolID int64
	TransferCourseID int64
	TargetCourseID   int64
}

// Key returns the lookup key of the precedent.
func (t *TransferRequest) Key() PrecedentKey {
	return PrecedentKey{
		TransferSchoolID: t.TransferSchoolID,
		TransferCourseID: t.TransferCourseID,
		TargetCourseID:   t.TargetCourseID,
	}
}

// IsFresh reports whether the decision is at or after cutoff.
func (t *TransferRequest) IsFresh(cutoff time.Time) bool {
	return !t.DecidedAt.Before(cutoff)
}
