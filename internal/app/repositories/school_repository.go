package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/yigit/creditbridge/internal/app/models"
	"github.com/yigit/creditbridge/internal/pkg/apperrors"
)

var schoolColumns = []string{"id", "name", "location", "international", "created_at", "updated_at"}

// PostgresSchoolRepository handles database operations for schools
type PostgresSchoolRepository struct {
	db Querier
}

// NewSchoolRepository creates a new school repository
func NewSchoolRepository(db Querier) *PostgresSchoolRepository {
	return &PostgresSchoolRepository{db: db}
}

// GetByID retrieves a school by ID
func (r *PostgresSchoolRepository) GetByID(ctx context.Context, id int64) (*models.School, error) {
	query := psql.Select(schoolColumns...).From("schools").Where(squirrel.Eq{"id": id})

	school, err := r.getOne(ctx, query)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrSchoolNotFound
		}
		return nil, err
	}
	return school, nil
}

// FindByIdentity retrieves a school by name, location and international flag
func (r *PostgresSchoolRepository) FindByIdentity(ctx context.Context, identity models.SchoolIdentity) (*models.School, error) {
	query := psql.Select(schoolColumns...).From("schools").Where(squirrel.Eq{
		"name":          identity.Name,
		"location":      identity.Location,
		"international": identity.International,
	})

	school, err := r.getOne(ctx, query)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return school, nil
}

// ResolveOrCreate inserts the school unless the identity already exists.
// The unique constraint on the identity makes concurrent calls converge.
func (r *PostgresSchoolRepository) ResolveOrCreate(ctx context.Context, identity models.SchoolIdentity) (*models.School, error) {
	query := psql.Insert("schools").
		Columns("name", "location", "international").
		Values(identity.Name, identity.Location, identity.International).
		Suffix("ON CONFLICT (name, location, international) DO NOTHING RETURNING id, name, location, international, created_at, updated_at")

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	var school models.School
	err = scanSchool(r.db.QueryRow(ctx, sql, args...), &school)
	if err == nil {
		return &school, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("error inserting school: %w", err)
	}

	existing, err := r.FindByIdentity(ctx, identity)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, fmt.Errorf("school %q vanished after conflicting insert", identity.Name)
	}
	return existing, nil
}

// ListExcluding retrieves all schools except excludeID ordered by name
func (r *PostgresSchoolRepository) ListExcluding(ctx context.Context, excludeID int64) ([]*models.School, error) {
	sql, args, err := psql.Select(schoolColumns...).
		From("schools").
		Where(squirrel.NotEq{"id": excludeID}).
		OrderBy("name ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	schools := []*models.School{}
	for rows.Next() {
		var school models.School
		if err := scanSchool(rows, &school); err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		schools = append(schools, &school)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return schools, nil
}

func (r *PostgresSchoolRepository) getOne(ctx context.Context, query squirrel.SelectBuilder) (*models.School, error) {
	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	var school models.School
	if err := scanSchool(r.db.QueryRow(ctx, sql, args...), &school); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("error retrieving school: %w", err)
	}
	return &school, nil
}

func scanSchool(row pgx.Row, school *models.School) error {
	return row.Scan(
		&school.ID,
		&school.Name,
		&school.Location,
		&school.International,
		&school.CreatedAt,
		&school.UpdatedAt,
	)
}
