package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/yigit/creditbridge/internal/app/models"
	"github.com/yigit/creditbridge/internal/pkg/apperrors"
	"github.com/yigit/creditbridge/internal/pkg/dberrors"
)

var courseColumns = []string{"id", "school_id", "name", "course_num", "created_at", "updated_at"}

// PostgresCourseRepository handles database operations for courses
type PostgresCourseRepository struct {
	db Querier
}

// NewCourseRepository creates a new course repository
func NewCourseRepository(db Querier) *PostgresCourseRepository {
	return &PostgresCourseRepository{db: db}
}

// GetByID retrieves a course by ID
func (r *PostgresCourseRepository) GetByID(ctx context.Context, id int64) (*models.Course, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id})
}

// GetBySchoolAndID retrieves a course only if it belongs to the school
func (r *PostgresCourseRepository) GetBySchoolAndID(ctx context.Context, schoolID, id int64) (*models.Course, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id, "school_id": schoolID})
}

// ResolveOrCreate inserts the course under schoolID unless it already exists there
func (r *PostgresCourseRepository) ResolveOrCreate(ctx context.Context, schoolID int64, identity models.CourseIdentity) (*models.Course, error) {
	sql, args, err := psql.Insert("courses").
		Columns("school_id", "name", "course_num").
		Values(schoolID, identity.Name, identity.CourseNum).
		Suffix("ON CONFLICT (school_id, name, course_num) DO NOTHING RETURNING id, school_id, name, course_num, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	var course models.Course
	err = scanCourse(r.db.QueryRow(ctx, sql, args...), &course)
	if err == nil {
		return &course, nil
	}
	if dberrors.IsForeignKeyError(err) {
		return nil, apperrors.ErrSchoolNotFound
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("error inserting course: %w", err)
	}

	existing, err := r.getOne(ctx, squirrel.Eq{
		"school_id":  schoolID,
		"name":       identity.Name,
		"course_num": identity.CourseNum,
	})
	if err != nil {
		return nil, err
	}
	return existing, nil
}

// ListBySchool retrieves every course of a school ordered by name
func (r *PostgresCourseRepository) ListBySchool(ctx context.Context, schoolID int64) ([]*models.Course, error) {
	sql, args, err := psql.Select(courseColumns...).
		From("courses").
		Where(squirrel.Eq{"school_id": schoolID}).
		OrderBy("name ASC", "course_num ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	courses := []*models.Course{}
	for rows.Next() {
		var course models.Course
		if err := scanCourse(rows, &course); err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		courses = append(courses, &course)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return courses, nil
}

func (r *PostgresCourseRepository) getOne(ctx context.Context, where squirrel.Eq) (*models.Course, error) {
	sql, args, err := psql.Select(courseColumns...).From("courses").Where(where).ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	var course models.Course
	if err := scanCourse(r.db.QueryRow(ctx, sql, args...), &course); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCourseNotFound
		}
		return nil, fmt.Errorf("error retrieving course: %w", err)
	}
	return &course, nil
}

func scanCourse(row pgx.Row, course *models.Course) error {
	return row.Scan(
		&course.ID,
		&course.SchoolID,
		&course.Name,
		&course.CourseNum,
		&course.CreatedAt,
		&course.UpdatedAt,
	)
}
