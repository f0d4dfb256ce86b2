package models

import "time"

// PendingRequest is a submission waiting for an administrator decision.
// Inline school fields are set if and only if TransferSchoolOther is true,
// otherwise TransferSchoolID is set; the course fields follow the same rule.
type PendingRequest struct {
	ID             int64  `json:"id" db:"id"`
	RequesterName  string `json:"requesterName" db:"requester_name"`
	RequesterEmail string `json:"requesterEmail" db:"requester_email"`

	TransferSchoolID            *int64  `json:"transferSchoolId,omitempty" db:"transfer_school_id"`
	TransferSchoolOther         bool    `json:"transferSchoolOther" db:"transfer_school_other"`
	TransferSchoolName          *string `json:"transferSchoolName,omitempty" db:"transfer_school_name"`
	TransferSchoolLocation      *string `json:"transferSchoolLocation,omitempty" db:"transfer_school_location"`
	TransferSchoolInternational *bool   `json:"transferSchoolInternational,omitempty" db:"transfer_school_international"`

	TransferCourseID    *int64  `json:"transferCourseId,omitempty" db:"transfer_course_id"`
	TransferCourseOther bool    `json:"transferCourseOther" db:"transfer_course_other"`
	TransferCourseName  *string `json:"transferCourseName,omitempty" db:"transfer_course_name"`
	TransferCourseNum   *string `json:"transferCourseNum,omitempty" db:"transfer_course_num"`
	TransferCourseURL   *string `json:"transferCourseUrl,omitempty" db:"transfer_course_url"`

	TargetCourseID int64 `json:"targetCourseId" db:"target_course_id"`
	DualEnrollment bool  `json:"dualEnrollment" db:"dual_enrollment"`

	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// SchoolIdentity returns the inline school match key. Only meaningful when
// TransferSchoolOther is set.
func (p *PendingRequest) SchoolIdentity() SchoolIdentity {
	return SchoolIdentity{
		Name:          deref(p.TransferSchoolName),
		Location:      deref(p.TransferSchoolLocation),
		International: p.TransferSchoolInternational != nil && *p.TransferSchoolInternational,
	}
}

// CourseIdentity returns the inline course match key. Only meaningful when
// TransferCourseOther is set.
func (p *PendingRequest) CourseIdentity() CourseIdentity {
	return CourseIdentity{
		Name:      deref(p.TransferCourseName),
		CourseNum: deref(p.TransferCourseNum),
	}
}

// Snapshot copies every field into an immutable value.
func (p *PendingRequest) Snapshot() RequestSnapshot {
	return RequestSnapshot{
		ID:                          p.ID,
		RequesterName:               p.RequesterName,
		RequesterEmail:              p.RequesterEmail,
		TransferSchoolID:            derefInt(p.TransferSchoolID),
		TransferSchoolOther:         p.TransferSchoolOther,
		TransferSchoolName:          deref(p.TransferSchoolName),
		TransferSchoolLocation:      deref(p.TransferSchoolLocation),
		TransferSchoolInternational: p.TransferSchoolInternational != nil && *p.TransferSchoolInternational,
		TransferCourseID:            derefInt(p.TransferCourseID),
		TransferCourseOther:         p.TransferCourseOther,
		TransferCourseName:          deref(p.TransferCourseName),
		TransferCourseNum:           deref(p.TransferCourseNum),
		TransferCourseURL:           deref(p.TransferCourseURL),
		TargetCourseID:              p.TargetCourseID,
		DualEnrollment:              p.DualEnrollment,
		CreatedAt:                   p.CreatedAt,
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func derefInt(i *int64) int64 {
	if i == nil {
		return 0
	}
	return *i
}
