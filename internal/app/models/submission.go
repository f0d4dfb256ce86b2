package models

import "strings"

// Submission is an incoming transfer request as supplied by a submission
// channel. Online is provided out-of-band by the channel and never stored.
type Submission struct {
	RequesterName  string `json:"requesterName" validate:"required,min=2,max=100"`
	RequesterEmail string `json:"requesterEmail" validate:"required,email,max=255"`

	TransferSchoolID            int64  `json:"transferSchoolId"`
	TransferSchoolOther         bool   `json:"transferSchoolOther"`
	TransferSchoolName          string `json:"transferSchoolName" validate:"required_if=TransferSchoolOther true,max=255"`
	TransferSchoolLocation      string `json:"transferSchoolLocation" validate:"required_if=TransferSchoolOther true,max=255"`
	TransferSchoolInternational bool   `json:"transferSchoolInternational"`

	TransferCourseID    int64  `json:"transferCourseId"`
	TransferCourseOther bool   `json:"transferCourseOther"`
	TransferCourseName  string `json:"transferCourseName" validate:"required_if=TransferCourseOther true,max=255"`
	TransferCourseNum   string `json:"transferCourseNum" validate:"required_if=TransferCourseOther true,max=50"`
	TransferCourseURL   string `json:"transferCourseUrl" validate:"omitempty,url,max=2048"`

	TargetCourseID int64 `json:"targetCourseId" validate:"gt=0"`
	DualEnrollment bool  `json:"dualEnrollment"`
	Online         bool  `json:"online"`
}

// Normalize trims text fields and clears whichever side of each
// id/inline pair the other flag does not select.
func (s *Submission) Normalize() {
	s.RequesterName = strings.TrimSpace(s.RequesterName)
	s.RequesterEmail = strings.TrimSpace(s.RequesterEmail)
	s.TransferSchoolName = strings.TrimSpace(s.TransferSchoolName)
	s.TransferSchoolLocation = strings.TrimSpace(s.TransferSchoolLocation)
	s.TransferCourseName = strings.TrimSpace(s.TransferCourseName)
	s.TransferCourseNum = strings.TrimSpace(s.TransferCourseNum)
	s.TransferCourseURL = strings.TrimSpace(s.TransferCourseURL)

	if s.TransferSchoolOther {
		s.TransferSchoolID = 0
	} else {
		s.TransferSchoolName = ""
		s.TransferSchoolLocation = ""
		s.TransferSchoolInternational = false
	}

	if s.TransferCourseOther {
		s.TransferCourseID = 0
	} else {
		s.TransferCourseName = ""
		s.TransferCourseNum = ""
	}
}

// PrecedentKey returns the id-based lookup key of the submission.
func (s *Submission) PrecedentKey() PrecedentKey {
	return PrecedentKey{
		TransferSchoolID: s.TransferSchoolID,
		TransferCourseID: s.TransferCourseID,
		TargetCourseID:   s.TargetCourseID,
	}
}

// ToPendingRequest builds the record persisted when the submission is queued.
// The submission must already be normalized.
func (s *Submission) ToPendingRequest() *PendingRequest {
	p := &PendingRequest{
		RequesterName:       s.RequesterName,
		RequesterEmail:      s.RequesterEmail,
		TransferSchoolOther: s.TransferSchoolOther,
		TransferCourseOther: s.TransferCourseOther,
		TargetCourseID:      s.TargetCourseID,
		DualEnrollment:      s.DualEnrollment,
	}

	if s.TransferSchoolOther {
		name, location, international := s.TransferSchoolName, s.TransferSchoolLocation, s.TransferSchoolInternational
		p.TransferSchoolName = &name
		p.TransferSchoolLocation = &location
		p.TransferSchoolInternational = &international
	} else {
		id := s.TransferSchoolID
		p.TransferSchoolID = &id
	}

	if s.TransferCourseOther {
		name, num := s.TransferCourseName, s.TransferCourseNum
		p.TransferCourseName = &name
		p.TransferCourseNum = &num
	} else {
		id := s.TransferCourseID
		p.TransferCourseID = &id
	}

	if s.TransferCourseURL != "" {
		url := s.TransferCourseURL
		p.TransferCourseURL = &url
	}

	return p
}

// Snapshot captures the submission for notification payloads.
func (s *Submission) Snapshot() RequestSnapshot {
	return s.ToPendingRequest().Snapshot()
}
