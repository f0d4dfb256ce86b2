package models

import "time"

// Course belongs to exactly one school.
type Course struct {
	ID        int64     `json:"id" db:"id"`
	SchoolID  int64     `json:"schoolId" db:"school_id"`
	Name      string    `json:"name" db:"name"`
	CourseNum string    `json:"courseNum" db:"course_num"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// CourseIdentity is the match key for a course within its owning school.
type CourseIdentity struct {
	Name      string `json:"name"`
	CourseNum string `json:"courseNum"`
}

// Identity returns the fields that identify the course within its school.
func (c *Course) Identity() CourseIdentity {
	return CourseIdentity{Name: c.Name, CourseNum: c.CourseNum}
}
