package models

import "time"

// RequestSnapshot is an immutable copy of a request taken before the request
// is destroyed. Notifiers only ever see snapshots.
type RequestSnapshot struct {
	ID                          int64
	RequesterName               string
	RequesterEmail              string
	TransferSchoolID            int64
	TransferSchoolOther         bool
	TransferSchoolName          string
	TransferSchoolLocation      string
	TransferSchoolInternational bool
	TransferCourseID            int64
	TransferCourseOther         bool
	TransferCourseName          string
	TransferCourseNum           string
	TransferCourseURL           string
	TargetCourseID              int64
	DualEnrollment              bool
	CreatedAt                   time.Time
}

// Contact returns who should hear about the outcome.
func (s RequestSnapshot) Contact() Contact {
	return Contact{Name: s.RequesterName, Email: s.RequesterEmail}
}

// Fields flattens the snapshot into a plain mapping keyed by column name.
func (s RequestSnapshot) Fields() map[string]interface{} {
	return map[string]interface{}{
		"id":                            s.ID,
		"requester_name":                s.RequesterName,
		"requester_email":               s.RequesterEmail,
		"transfer_school_id":            s.TransferSchoolID,
		"transfer_school_other":         s.TransferSchoolOther,
		"transfer_school_name":          s.TransferSchoolName,
		"transfer_school_location":      s.TransferSchoolLocation,
		"transfer_school_international": s.TransferSchoolInternational,
		"transfer_course_id":            s.TransferCourseID,
		"transfer_course_other":         s.TransferCourseOther,
		"transfer_course_name":          s.TransferCourseName,
		"transfer_course_num":           s.TransferCourseNum,
		"transfer_course_url":           s.TransferCourseURL,
		"target_course_id":              s.TargetCourseID,
		"dual_enrollment":               s.DualEnrollment,
		"created_at":                    s.CreatedAt,
	}
}

// Contact identifies a requester.
type Contact struct {
	Name  string
	Email string
}
