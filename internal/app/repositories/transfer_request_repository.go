package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/yigit/creditbridge/internal/app/models"
)

var transferRequestColumns = []string{
	"id", "transfer_school_id", "transfer_course_id", "target_course_id",
	"approved", "reasons", "decided_at", "created_at", "updated_at",
}

// PostgresTransferRequestRepository handles database operations for precedents
type PostgresTransferRequestRepository struct {
	db Querier
}

// NewTransferRequestRepository creates a new precedent repository
func NewTransferRequestRepository(db Querier) *PostgresTransferRequestRepository {
	return &PostgresTransferRequestRepository{db: db}
}

// FindLatestMatch retrieves the newest decision for the exact key
func (r *PostgresTransferRequestRepository) FindLatestMatch(ctx context.Context, key models.PrecedentKey) (*models.TransferRequest, error) {
	sql, args, err := psql.Select(transferRequestColumns...).
		From("transfer_requests").
		Where(squirrel.Eq{
			"transfer_school_id": key.TransferSchoolID,
			"transfer_course_id": key.TransferCourseID,
			"target_course_id":   key.TargetCourseID,
		}).
		OrderBy("decided_at DESC", "id DESC").
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	var tr models.TransferRequest
	if err := scanTransferRequest(r.db.QueryRow(ctx, sql, args...), &tr); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error retrieving precedent: %w", err)
	}
	return &tr, nil
}

// Create inserts a precedent and fills in its ID and timestamps
func (r *PostgresTransferRequestRepository) Create(ctx context.Context, tr *models.TransferRequest) error {
	sql, args, err := psql.Insert("transfer_requests").
		Columns("transfer_school_id", "transfer_course_id", "target_course_id", "approved", "reasons", "decided_at").
		Values(tr.TransferSchoolID, tr.TransferCourseID, tr.TargetCourseID, tr.Approved, tr.Reasons, tr.DecidedAt).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&tr.ID, &tr.CreatedAt, &tr.UpdatedAt); err != nil {
		return fmt.Errorf("error inserting precedent: %w", err)
	}
	return nil
}

// List retrieves a page of precedents with the total count
func (r *PostgresTransferRequestRepository) List(ctx context.Context, offset, limit int) ([]*models.TransferRequest, int64, error) {
	query := psql.Select(transferRequestColumns...).
		Column("COUNT(*) OVER()").
		From("transfer_requests").
		OrderBy("decided_at DESC", "id DESC").
		Limit(uint64(limit)).
		Offset(uint64(offset))

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	requests := []*models.TransferRequest{}
	var total int64
	for rows.Next() {
		var tr models.TransferRequest
		if err := rows.Scan(
			&tr.ID,
			&tr.TransferSchoolID,
			&tr.TransferCourseID,
			&tr.TargetCourseID,
			&tr.Approved,
			&tr.Reasons,
			&tr.DecidedAt,
			&tr.CreatedAt,
			&tr.UpdatedAt,
			&total,
		); err != nil {
			return nil, 0, fmt.Errorf("error scanning row: %w", err)
		}
		requests = append(requests, &tr)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	// Past the last page the window function yields nothing to count.
	if len(requests) == 0 && offset > 0 {
		if err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM transfer_requests").Scan(&total); err != nil {
			return nil, 0, fmt.Errorf("error counting precedents: %w", err)
		}
	}

	return requests, total, nil
}

func scanTransferRequest(row pgx.Row, tr *models.TransferRequest) error {
	return row.Scan(
		&tr.ID,
		&tr.TransferSchoolID,
		&tr.TransferCourseID,
		&tr.TargetCourseID,
		&tr.Approved,
		&tr.Reasons,
		&tr.DecidedAt,
		&tr.CreatedAt,
		&tr.UpdatedAt,
	)
}
