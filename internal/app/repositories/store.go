package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/yigit/creditbridge/internal/db"
)

// PostgresStore is the Store backed by a pgx pool
type PostgresStore struct {
	database *db.PostgresDB
	q        Querier
	inTx     bool
}

// NewPostgresStore creates a store using the pool for non-transactional work
func NewPostgresStore(database *db.PostgresDB) *PostgresStore {
	return &PostgresStore{database: database, q: database.Pool}
}

func (s *PostgresStore) Schools() SchoolRepository {
	return NewSchoolRepository(s.q)
}

func (s *PostgresStore) Courses() CourseRepository {
	return NewCourseRepository(s.q)
}

func (s *PostgresStore) PendingRequests() PendingRequestRepository {
	return NewPendingRequestRepository(s.q)
}

func (s *PostgresStore) TransferRequests() TransferRequestRepository {
	return NewTransferRequestRepository(s.q)
}

func (s *PostgresStore) Admins() AdminRepository {
	return NewAdminRepository(s.q)
}

// WithTransaction starts a transaction, or joins the current one when the
// store is already transactional.
func (s *PostgresStore) WithTransaction(ctx context.Context, fn func(ctx context.Context, tx Store) error) error {
	if s.inTx {
		return fn(ctx, s)
	}

	return s.database.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		return fn(ctx, &PostgresStore{database: s.database, q: tx, inTx: true})
	})
}
