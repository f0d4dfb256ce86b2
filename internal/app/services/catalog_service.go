package services

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
	"github.com/yigit/creditbridge/internal/app/models"
	"github.com/yigit/creditbridge/internal/app/repositories"
	"github.com/yigit/creditbridge/internal/pkg/apperrors"
	"github.com/yigit/creditbridge/internal/pkg/logger"
)

// CatalogService defines the interface for school and course lookups and curation
type CatalogService interface {
	// ListTransferSchools returns every school except the home institution, ordered by name.
	ListTransferSchools(ctx context.Context) ([]*models.School, error)
	// ListHomeCourses returns the courses of the home institution.
	ListHomeCourses(ctx context.Context) ([]*models.Course, error)
	// ListCoursesForSchool returns the courses of one school; the school must exist.
	ListCoursesForSchool(ctx context.Context, schoolID int64) ([]*models.Course, error)
	CreateSchool(ctx context.Context, identity models.SchoolIdentity) (*models.School, error)
	CreateCourse(ctx context.Context, schoolID int64, identity models.CourseIdentity) (*models.Course, error)
}

type catalogServiceImpl struct {
	store        repositories.Store
	homeSchoolID int64
	logger       zerolog.Logger
}

// NewCatalogService creates a new catalog service
func NewCatalogService(store repositories.Store, homeSchoolID int64, logger zerolog.Logger) CatalogService {
	return &catalogServiceImpl{
		store:        store,
		homeSchoolID: homeSchoolID,
		logger:       logger,
	}
}

func (s *catalogServiceImpl) ListTransferSchools(ctx context.Context) ([]*models.School, error) {
	schools, err := s.store.Schools().ListExcluding(ctx, s.homeSchoolID)
	if err != nil {
		return nil, storeError(err)
	}
	return schools, nil
}

func (s *catalogServiceImpl) ListHomeCourses(ctx context.Context) ([]*models.Course, error) {
	courses, err := s.store.Courses().ListBySchool(ctx, s.homeSchoolID)
	if err != nil {
		return nil, storeError(err)
	}
	return courses, nil
}

func (s *catalogServiceImpl) ListCoursesForSchool(ctx context.Context, schoolID int64) ([]*models.Course, error) {
	if _, err := s.store.Schools().GetByID(ctx, schoolID); err != nil {
		return nil, storeError(err)
	}

	courses, err := s.store.Courses().ListBySchool(ctx, schoolID)
	if err != nil {
		return nil, storeError(err)
	}
	return courses, nil
}

// CreateSchool adds a school, or returns the existing one with the same identity
func (s *catalogServiceImpl) CreateSchool(ctx context.Context, identity models.SchoolIdentity) (*models.School, error) {
	identity.Name = strings.TrimSpace(identity.Name)
	identity.Location = strings.TrimSpace(identity.Location)

	fields := map[string]string{}
	if identity.Name == "" {
		fields["name"] = "name is required"
	}
	if identity.Location == "" {
		fields["location"] = "location is required"
	}
	if len(fields) > 0 {
		return nil, apperrors.NewValidationError(fields)
	}

	school, err := s.store.Schools().ResolveOrCreate(ctx, identity)
	if err != nil {
		return nil, storeError(err)
	}

	logger.FromContext(ctx, s.logger).Info().Int64("schoolId", school.ID).Msg("Catalog school resolved")
	return school, nil
}

// CreateCourse adds a course under schoolID, or returns the existing one
func (s *catalogServiceImpl) CreateCourse(ctx context.Context, schoolID int64, identity models.CourseIdentity) (*models.Course, error) {
	identity.Name = strings.TrimSpace(identity.Name)
	identity.CourseNum = strings.TrimSpace(identity.CourseNum)

	fields := map[string]string{}
	if identity.Name == "" {
		fields["name"] = "name is required"
	}
	if identity.CourseNum == "" {
		fields["courseNum"] = "courseNum is required"
	}
	if len(fields) > 0 {
		return nil, apperrors.NewValidationError(fields)
	}

	var course *models.Course
	err := s.store.WithTransaction(ctx, func(ctx context.Context, tx repositories.Store) error {
		if _, err := tx.Schools().GetByID(ctx, schoolID); err != nil {
			return err
		}

		var err error
		course, err = tx.Courses().ResolveOrCreate(ctx, schoolID, identity)
		return err
	})
	if err != nil {
		return nil, storeError(err)
	}

	logger.FromContext(ctx, s.logger).Info().
		Int64("schoolId", schoolID).
		Int64("courseId", course.ID).
		Msg("Catalog course resolved")
	return course, nil
}
