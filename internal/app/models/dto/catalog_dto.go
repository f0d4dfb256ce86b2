package dto

import "github.com/yigit/creditbridge/internal/app/models"

// CreateSchoolRequest adds a school to the catalog
type CreateSchoolRequest struct {
	Name          string `json:"name" binding:"required" example:"Springfield Community College"`
	Location      string `json:"location" binding:"required" example:"Springfield, IL"`
	International bool   `json:"international"`
}

// Identity returns the catalog match key of the request
func (r *CreateSchoolRequest) Identity() models.SchoolIdentity {
	return models.SchoolIdentity{Name: r.Name, Location: r.Location, International: r.International}
}

// CreateCourseRequest adds a course to a school
type CreateCourseRequest struct {
	Name      string `json:"name" binding:"required" example:"Calculus I"`
	CourseNum string `json:"courseNum" binding:"required" example:"MATH 101"`
}

// Identity returns the catalog match key of the request
func (r *CreateCourseRequest) Identity() models.CourseIdentity {
	return models.CourseIdentity{Name: r.Name, CourseNum: r.CourseNum}
}
