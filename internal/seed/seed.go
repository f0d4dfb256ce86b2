package seed

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"
	appModels "github.com/yigit/creditbridge/internal/app/models"
	appRepos "github.com/yigit/creditbridge/internal/app/repositories"
	"github.com/yigit/creditbridge/internal/config"
	"github.com/yigit/creditbridge/internal/pkg/apperrors"
	"github.com/yigit/creditbridge/internal/pkg/auth"
)

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// Execer runs a statement without returning rows
type Execer interface {
	Exec(ctx context.Context, sql string, arguments ...interface{}) (pgconn.CommandTag, error)
}

// CreateDefaultData makes sure the home institution and the default
// administrator exist. Failures are collected so one does not block the other.
func CreateDefaultData(ctx context.Context, db Execer, store appRepos.Store, cfg *config.Config, lgr zerolog.Logger) error {
	lgr.Info().Msg("Checking/Creating default data (home institution/admin)...")
	var finalErr error

	if err := EnsureHomeSchool(ctx, db, cfg.Institution.HomeSchoolID, cfg.Institution.HomeSchoolName, cfg.Institution.HomeSchoolLocation, lgr); err != nil {
		lgr.Error().Err(err).Msg("Error creating home institution")
		finalErr = errors.Join(finalErr, err)
	}

	if err := EnsureDefaultAdmin(ctx, store.Admins(), cfg.Admin.Email, cfg.Admin.Password, lgr); err != nil {
		lgr.Error().Err(err).Msg("Error creating default admin")
		finalErr = errors.Join(finalErr, err)
	}

	return finalErr
}

// EnsureHomeSchool inserts the home institution under its configured id and
// moves the id sequence past it so later catalog inserts cannot collide.
func EnsureHomeSchool(ctx context.Context, db Execer, id int64, name, location string, lgr zerolog.Logger) error {
	insertSQL, args, err := psql.Insert("schools").
		Columns("id", "name", "location", "international").
		Values(id, name, location, false).
		Suffix("ON CONFLICT (id) DO NOTHING").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build home school insert: %w", err)
	}

	tag, err := db.Exec(ctx, insertSQL, args...)
	if err != nil {
		return fmt.Errorf("failed to insert home school: %w", err)
	}
	if tag.RowsAffected() > 0 {
		lgr.Info().Int64("schoolId", id).Str("name", name).Msg("Home institution created")
	}

	const syncSequence = `SELECT setval(pg_get_serial_sequence('schools', 'id'), GREATEST((SELECT MAX(id) FROM schools), 1))`
	if _, err := db.Exec(ctx, syncSequence); err != nil {
		return fmt.Errorf("failed to sync school id sequence: %w", err)
	}
	return nil
}

// EnsureDefaultAdmin creates the configured administrator once. Nothing is
// created when no credentials are configured.
func EnsureDefaultAdmin(ctx context.Context, admins appRepos.AdminRepository, email, password string, lgr zerolog.Logger) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		lgr.Warn().Msg("Default admin credentials not configured, skipping admin seed")
		return nil
	}

	exists, err := admins.EmailExists(ctx, email)
	if err != nil {
		return err
	}
	if exists {
		lgr.Debug().Str("email", email).Msg("Default admin already exists")
		return nil
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	err = admins.Create(ctx, &appModels.Admin{Email: email, PasswordHash: hash})
	if errors.Is(err, apperrors.ErrConflict) {
		return nil
	}
	if err != nil {
		return err
	}

	lgr.Info().Str("email", email).Msg("Default admin created")
	return nil
}
