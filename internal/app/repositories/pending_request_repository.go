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

var pendingRequestColumns = []string{
	"id", "requester_name", "requester_email",
	"transfer_school_id", "transfer_school_other", "transfer_school_name",
	"transfer_school_location", "transfer_school_international",
	"transfer_course_id", "transfer_course_other", "transfer_course_name",
	"transfer_course_num", "transfer_course_url",
	"target_course_id", "dual_enrollment", "created_at", "updated_at",
}

// PostgresPendingRequestRepository handles database operations for the pending queue
type PostgresPendingRequestRepository struct {
	db Querier
}

// NewPendingRequestRepository creates a new pending request repository
func NewPendingRequestRepository(db Querier) *PostgresPendingRequestRepository {
	return &PostgresPendingRequestRepository{db: db}
}

// Create inserts a pending request and fills in its ID and timestamps
func (r *PostgresPendingRequestRepository) Create(ctx context.Context, req *models.PendingRequest) error {
	sql, args, err := psql.Insert("pending_requests").
		Columns(
			"requester_name", "requester_email",
			"transfer_school_id", "transfer_school_other", "transfer_school_name",
			"transfer_school_location", "transfer_school_international",
			"transfer_course_id", "transfer_course_other", "transfer_course_name",
			"transfer_course_num", "transfer_course_url",
			"target_course_id", "dual_enrollment",
		).
		Values(
			req.RequesterName, req.RequesterEmail,
			req.TransferSchoolID, req.TransferSchoolOther, req.TransferSchoolName,
			req.TransferSchoolLocation, req.TransferSchoolInternational,
			req.TransferCourseID, req.TransferCourseOther, req.TransferCourseName,
			req.TransferCourseNum, req.TransferCourseURL,
			req.TargetCourseID, req.DualEnrollment,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&req.ID, &req.CreatedAt, &req.UpdatedAt); err != nil {
		if dberrors.IsCheckViolation(err) {
			return apperrors.NewValidationError(map[string]string{
				"transferSchoolOther": "inline school and course fields do not match the other flags",
			})
		}
		return fmt.Errorf("error inserting pending request: %w", err)
	}
	return nil
}

// GetByID retrieves a pending request by ID
func (r *PostgresPendingRequestRepository) GetByID(ctx context.Context, id int64) (*models.PendingRequest, error) {
	sql, args, err := psql.Select(pendingRequestColumns...).
		From("pending_requests").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	var req models.PendingRequest
	if err := scanPendingRequest(r.db.QueryRow(ctx, sql, args...), &req); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrPendingRequestNotFound
		}
		return nil, fmt.Errorf("error retrieving pending request: %w", err)
	}
	return &req, nil
}

// List retrieves the whole queue oldest first
func (r *PostgresPendingRequestRepository) List(ctx context.Context) ([]*models.PendingRequest, error) {
	sql, args, err := psql.Select(pendingRequestColumns...).
		From("pending_requests").
		OrderBy("created_at ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	requests := []*models.PendingRequest{}
	for rows.Next() {
		var req models.PendingRequest
		if err := scanPendingRequest(rows, &req); err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		requests = append(requests, &req)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return requests, nil
}

// Delete removes a pending request. Deleting a missing row is ErrPendingRequestNotFound,
// which is what makes a concurrent second decision fail.
func (r *PostgresPendingRequestRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := psql.Delete("pending_requests").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error deleting pending request: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrPendingRequestNotFound
	}

	return nil
}

func scanPendingRequest(row pgx.Row, req *models.PendingRequest) error {
	return row.Scan(
		&req.ID,
		&req.RequesterName,
		&req.RequesterEmail,
		&req.TransferSchoolID,
		&req.TransferSchoolOther,
		&req.TransferSchoolName,
		&req.TransferSchoolLocation,
		&req.TransferSchoolInternational,
		&req.TransferCourseID,
		&req.TransferCourseOther,
		&req.TransferCourseName,
		&req.TransferCourseNum,
		&req.TransferCourseURL,
		&req.TargetCourseID,
		&req.DualEnrollment,
		&req.CreatedAt,
		&req.UpdatedAt,
	)
}
