package repositories

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/yigit/creditbridge/internal/app/models"
)

// psql builds every statement with Postgres placeholders
var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// Querier is satisfied by both *pgxpool.Pool and pgx.Tx, so a repository
// works the same inside and outside a transaction.
type Querier interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// SchoolRepository reads and curates catalog schools
type SchoolRepository interface {
	GetByID(ctx context.Context, id int64) (*models.School, error)
	// FindByIdentity returns nil, nil when no school matches.
	FindByIdentity(ctx context.Context, identity models.SchoolIdentity) (*models.School, error)
	// ResolveOrCreate returns the school with the given identity, creating it
	// if absent. Concurrent callers converge on a single row.
	ResolveOrCreate(ctx context.Context, identity models.SchoolIdentity) (*models.School, error)
	// ListExcluding returns every school except excludeID, ordered by name.
	ListExcluding(ctx context.Context, excludeID int64) ([]*models.School, error)
}

// CourseRepository reads and curates catalog courses
type CourseRepository interface {
	GetByID(ctx context.Context, id int64) (*models.Course, error)
	// GetBySchoolAndID fails with ErrCourseNotFound unless the course belongs to schoolID.
	GetBySchoolAndID(ctx context.Context, schoolID, id int64) (*models.Course, error)
	ResolveOrCreate(ctx context.Context, schoolID int64, identity models.CourseIdentity) (*models.Course, error)
	ListBySchool(ctx context.Context, schoolID int64) ([]*models.Course, error)
}

// PendingRequestRepository manages the administrator queue
type PendingRequestRepository interface {
	Create(ctx context.Context, request *models.PendingRequest) error
	GetByID(ctx context.Context, id int64) (*models.PendingRequest, error)
	// List returns the queue oldest first.
	List(ctx context.Context) ([]*models.PendingRequest, error)
	Delete(ctx context.Context, id int64) error
}

// TransferRequestRepository manages decided precedents
type TransferRequestRepository interface {
	// FindLatestMatch returns the most recently decided precedent for key, or nil, nil.
	FindLatestMatch(ctx context.Context, key models.PrecedentKey) (*models.TransferRequest, error)
	Create(ctx context.Context, request *models.TransferRequest) error
	// List returns a page of precedents newest first along with the total count.
	List(ctx context.Context, offset, limit int) ([]*models.TransferRequest, int64, error)
}

// AdminRepository manages administrator accounts
type AdminRepository interface {
	GetByEmail(ctx context.Context, email string) (*models.Admin, error)
	Create(ctx context.Context, admin *models.Admin) error
	EmailExists(ctx context.Context, email string) (bool, error)
}

// Store groups the repositories behind a single unit of work.
type Store interface {
	Schools() SchoolRepository
	Courses() CourseRepository
	PendingRequests() PendingRequestRepository
	TransferRequests() TransferRequestRepository
	Admins() AdminRepository

	// WithTransaction runs fn against a Store bound to one transaction.
	// Everything fn does commits together or not at all.
	WithTransaction(ctx context.Context, fn func(ctx context.Context, tx Store) error) error
}
