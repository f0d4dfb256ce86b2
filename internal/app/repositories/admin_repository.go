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

const adminsEmailKey = "admins_email_key"

// PostgresAdminRepository handles database operations for administrators
type PostgresAdminRepository struct {
	db Querier
}

// NewAdminRepository creates a new admin repository
func NewAdminRepository(db Querier) *PostgresAdminRepository {
	return &PostgresAdminRepository{db: db}
}

// GetByEmail retrieves an administrator by email
func (r *PostgresAdminRepository) GetByEmail(ctx context.Context, email string) (*models.Admin, error) {
	sql, args, err := psql.Select("id", "email", "password_hash", "created_at").
		From("admins").
		Where(squirrel.Eq{"email": email}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	var admin models.Admin
	err = r.db.QueryRow(ctx, sql, args...).Scan(&admin.ID, &admin.Email, &admin.PasswordHash, &admin.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrAdminNotFound
		}
		return nil, fmt.Errorf("error retrieving admin: %w", err)
	}
	return &admin, nil
}

// Create inserts an administrator
func (r *PostgresAdminRepository) Create(ctx context.Context, admin *models.Admin) error {
	sql, args, err := psql.Insert("admins").
		Columns("email", "password_hash").
		Values(admin.Email, admin.PasswordHash).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&admin.ID, &admin.CreatedAt); err != nil {
		if dberrors.IsDuplicateConstraintError(err, adminsEmailKey) {
			return apperrors.NewConflictError("admin with this email already exists")
		}
		return fmt.Errorf("error inserting admin: %w", err)
	}
	return nil
}

// EmailExists checks whether an administrator with the email exists
func (r *PostgresAdminRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM admins WHERE email = $1)`, email).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking admin existence: %w", err)
	}
	return exists, nil
}
