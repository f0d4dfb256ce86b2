package dto

import (
	"time"

	"github.com/yigit/creditbridge/internal/app/models"
)

// Messages shown to the requester after a submission
const (
	SubmittedMessage = "Your transfer request was successfully submitted. Please check your email to see if your request was approved."
	PendingMessage   = "Your transfer request is currently pending. An email notification will be sent once your request is approved or not approved."
)

// SubmitTransferRequest is the public transfer credit form. Field rules are
// enforced by the resolution engine so that every channel reports the same
// field errors.
type SubmitTransferRequest struct {
	RequesterName  string `json:"requesterName" example:"Ada Lovelace"`
	RequesterEmail string `json:"requesterEmail" example:"ada@example.com"`

	TransferSchoolID            int64  `json:"transferSchoolId" example:"2"`
	TransferSchoolOther         bool   `json:"transferSchoolOther"`
	TransferSchoolName          string `json:"transferSchoolName,omitempty"`
	TransferSchoolLocation      string `json:"transferSchoolLocation,omitempty"`
	TransferSchoolInternational bool   `json:"transferSchoolInternational"`

	TransferCourseID    int64  `json:"transferCourseId" example:"10"`
	TransferCourseOther bool   `json:"transferCourseOther"`
	TransferCourseName  string `json:"transferCourseName,omitempty"`
	TransferCourseNum   string `json:"transferCourseNum,omitempty"`
	TransferCourseURL   string `json:"transferCourseUrl,omitempty"`

	TargetCourseID int64 `json:"targetCourseId" example:"4"`
	DualEnrollment bool  `json:"dualEnrollment"`
	Online         bool  `json:"online"`
}

// ToSubmission converts the form into the engine input
func (r *SubmitTransferRequest) ToSubmission() *models.Submission {
	return &models.Submission{
		RequesterName:               r.RequesterName,
		RequesterEmail:              r.RequesterEmail,
		TransferSchoolID:            r.TransferSchoolID,
		TransferSchoolOther:         r.TransferSchoolOther,
		TransferSchoolName:          r.TransferSchoolName,
		TransferSchoolLocation:      r.TransferSchoolLocation,
		TransferSchoolInternational: r.TransferSchoolInternational,
		TransferCourseID:            r.TransferCourseID,
		TransferCourseOther:         r.TransferCourseOther,
		TransferCourseName:          r.TransferCourseName,
		TransferCourseNum:           r.TransferCourseNum,
		TransferCourseURL:           r.TransferCourseURL,
		TargetCourseID:              r.TargetCourseID,
		DualEnrollment:              r.DualEnrollment,
		Online:                      r.Online,
	}
}

// SubmitTransferResponse tells the requester what happens next. The decision
// itself is only ever delivered by email.
type SubmitTransferResponse struct {
	Status           models.OutcomeKind `json:"status" example:"QUEUED"`
	Message          string             `json:"message"`
	PendingRequestID int64              `json:"pendingRequestId,omitempty" example:"12"`
}

// NewSubmitTransferResponse picks the requester message for an outcome
func NewSubmitTransferResponse(outcome *models.Outcome) SubmitTransferResponse {
	resp := SubmitTransferResponse{
		Status:  outcome.Kind,
		Message: SubmittedMessage,
	}
	if outcome.Kind == models.OutcomeQueued {
		resp.Message = PendingMessage
		resp.PendingRequestID = outcome.PendingRequestID
	}
	return resp
}

// DisapproveRequest carries the reasons sent to the requester
type DisapproveRequest struct {
	Reasons string `json:"reasons" binding:"required" example:"Course content does not match"`
}

// PrecedentListResponse is one page of decided requests
type PrecedentListResponse struct {
	Precedents []*models.TransferRequest `json:"precedents"`
	Pagination PaginationInfo            `json:"pagination"`
}

// DecisionResponse reports an administrator decision
type DecisionResponse struct {
	PendingRequestID int64     `json:"pendingRequestId" example:"12"`
	Approved         bool      `json:"approved"`
	PrecedentID      int64     `json:"precedentId,omitempty" example:"30"`
	DecidedAt        time.Time `json:"decidedAt"`
}
