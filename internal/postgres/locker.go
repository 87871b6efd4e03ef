package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/harvestlane/backoffice/internal/config"
	ierr "github.com/harvestlane/backoffice/internal/errors"
	"github.com/harvestlane/backoffice/internal/locker"
	"github.com/harvestlane/backoffice/internal/logger"
	"github.com/lib/pq"
)

const (
	pqLockNotAvailable = "55P03"
	pqUniqueViolation  = "23505"
)

// OrderLocker takes a row lock on the order for the lifetime of the surrounding transaction
type OrderLocker struct {
	db      *DB
	timeout time.Duration
	logger  *logger.Logger
}

var _ locker.Locker = (*OrderLocker)(nil)

func NewOrderLocker(db *DB, cfg *config.Configuration, logger *logger.Logger) *OrderLocker {
	return &OrderLocker{
		db:      db,
		timeout: cfg.Postgres.LockTimeout,
		logger:  logger,
	}
}

// WithOrderLock locks the order row FOR UPDATE. The lock is released when the outermost
// transaction ends, so fn runs inside one.
func (l *OrderLocker) WithOrderLock(ctx context.Context, orderID string, fn func(ctx context.Context) error) error {
	if locker.Holds(ctx, orderID) {
		return fn(ctx)
	}

	return l.db.WithTx(ctx, func(txCtx context.Context) error {
		q := l.db.GetQuerier(txCtx)

		if l.timeout > 0 {
			// SET LOCAL does not accept bind parameters
			stmt := fmt.Sprintf("SET LOCAL lock_timeout = '%dms'", l.timeout.Milliseconds())
			if _, err := q.ExecContext(txCtx, stmt); err != nil {
				return TranslateError(err, "order", orderID)
			}
		}

		var id string
		err := q.GetContext(txCtx, &id, `SELECT id FROM orders WHERE id = $1 FOR UPDATE`, orderID)
		if err != nil {
			return TranslateError(err, "order", orderID)
		}

		l.logger.Debugw("acquired order lock", "order_id", orderID)
		return fn(locker.WithHeld(txCtx, orderID))
	})
}

// TranslateError maps driver errors onto the application's error sentinels
func TranslateError(err error, entity, id string) error {
	if err == nil {
		return nil
	}
	details := map[string]any{entity + "_id": id}

	if errors.Is(err, sql.ErrNoRows) {
		return ierr.WithError(err).
			WithHintf("%s %s was not found", entity, id).
			WithReportableDetails(details).
			Mark(ierr.ErrNotFound)
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case pqLockNotAvailable:
			return ierr.WithError(err).
				WithHintf("%s %s is being updated, try again shortly", entity, id).
				WithReportableDetails(details).
				Mark(ierr.ErrLocked)
		case pqUniqueViolation:
			return ierr.WithError(err).
				WithHintf("%s already exists", entity).
				WithReportableDetails(details).
				Mark(ierr.ErrAlreadyExists)
		}
	}

	return ierr.WithError(err).
		WithHintf("Database error on %s", entity).
		WithReportableDetails(details).
		Mark(ierr.ErrDatabase)
}
