package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/yigit/creditbridge/internal/app/models"
)

func TestNewSubmitTransferResponse(t *testing.T) {
	tests := []struct {
		name        string
		outcome     models.Outcome
		wantMessage string
		wantPending int64
	}{
		{"rejected", models.Outcome{Kind: models.OutcomeRejected, Reasons: models.OnlineRejectionReason}, SubmittedMessage, 0},
		{"auto resolved", models.Outcome{Kind: models.OutcomeAutoResolved, Approved: true, PrecedentID: 9}, SubmittedMessage, 0},
		{"queued", models.Outcome{Kind: models.OutcomeQueued, PendingRequestID: 4}, PendingMessage, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := NewSubmitTransferResponse(&tt.outcome)
			assert.Equal(t, tt.outcome.Kind, resp.Status)
			assert.Equal(t, tt.wantMessage, resp.Message)
			assert.Equal(t, tt.wantPending, resp.PendingRequestID)
		})
	}
}

func TestToSubmissionCopiesEveryField(t *testing.T) {
	req := SubmitTransferRequest{
		RequesterName:               "Ada",
		RequesterEmail:              "ada@example.com",
		TransferSchoolOther:         true,
		TransferSchoolName:          "Elsewhere",
		TransferSchoolLocation:      "Nowhere",
		TransferSchoolInternational: true,
		TransferCourseOther:         true,
		TransferCourseName:          "Logic",
		TransferCourseNum:           "PHIL 1",
		TransferCourseURL:           "https://example.com/phil1",
		TargetCourseID:              3,
		DualEnrollment:              true,
		Online:                      true,
	}

	sub := req.ToSubmission()
	assert.Equal(t, models.Submission{
		RequesterName:               "Ada",
		RequesterEmail:              "ada@example.com",
		TransferSchoolOther:         true,
		TransferSchoolName:          "Elsewhere",
		TransferSchoolLocation:      "Nowhere",
		TransferSchoolInternational: true,
		TransferCourseOther:         true,
		TransferCourseName:          "Logic",
		TransferCourseNum:           "PHIL 1",
		TransferCourseURL:           "https://example.com/phil1",
		TargetCourseID:              3,
		DualEnrollment:              true,
		Online:                      true,
	}, *sub)
}
