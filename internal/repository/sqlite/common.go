package sqlite

import (
	"context"
	"database/sql"
	"time"

	"time-track-invoice/internal/errors"
)

// Timeouts bounds individual database calls. A zero value leaves calls
// bounded only by the caller's context.
type Timeouts struct {
	Query time.Duration
	Write time.Duration
}

// DB wraps the sql handle with the configured per-call timeout policy.
type DB struct {
	*sql.DB
	timeouts Timeouts
}

func newDB(db *sql.DB, timeouts Timeouts) *DB {
	return &DB{DB: db, timeouts: timeouts}
}

func (d *DB) readCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	return boundCtx(ctx, d.timeouts.Query)
}

func (d *DB) writeCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	return boundCtx(ctx, d.timeouts.Write)
}

func boundCtx(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, timeout)
}

// HandlePersistenceError converts database errors to structured app errors
func HandlePersistenceError(operation string, err error) error {
	return errors.NewPersistenceError(operation, err)
}

// HandleNoRowsError maps sql.ErrNoRows to a not-found error; any other
// error passes through unchanged.
func HandleNoRowsError(err error, entityType string, id string) error {
	if err == sql.ErrNoRows {
		return errors.NewNotFoundError(entityType, id)
	}
	return err
}

// ValidateRowsAffected checks if a database operation affected the expected number of rows
func ValidateRowsAffected(result sql.Result, entityType string, id string) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return HandlePersistenceError("get rows affected", err)
	}
	if rows == 0 {
		return errors.NewNotFoundError(entityType, id)
	}
	return nil
}

// Execute runs a statement and wraps any failure as a persistence error
func Execute(ctx context.Context, db *DB, query string, args ...interface{}) error {
	ctx, cancel := db.writeCtx(ctx)
	defer cancel()

	if _, err := db.ExecContext(ctx, query, args...); err != nil {
		return HandlePersistenceError("execute query", err)
	}
	return nil
}

// ExecuteWithRowsAffected executes a query and validates that rows were affected
func ExecuteWithRowsAffected(ctx context.Context, db *DB, query string, entityType string, id string, args ...interface{}) error {
	ctx, cancel := db.writeCtx(ctx)
	defer cancel()

	result, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		return HandlePersistenceError("execute query", err)
	}

	return ValidateRowsAffected(result, entityType, id)
}

// QuerySingle executes a query that returns a single row and scans it
func QuerySingle[T any](ctx context.Context, db *DB, query string, scanFunc func(Scanner) (*T, error), entityType string, id string, args ...interface{}) (*T, error) {
	ctx, cancel := db.readCtx(ctx)
	defer cancel()

	row := db.QueryRowContext(ctx, query, args...)
	result, err := scanFunc(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, HandleNoRowsError(err, entityType, id)
		}
		return nil, HandlePersistenceError("scan "+entityType, err)
	}
	return result, nil
}

// QueryOptional executes a query that returns at most one row; a missing
// row yields nil, nil instead of a not-found error.
func QueryOptional[T any](ctx context.Context, db *DB, query string, scanFunc func(Scanner) (*T, error), entityType string, args ...interface{}) (*T, error) {
	ctx, cancel := db.readCtx(ctx)
	defer cancel()

	row := db.QueryRowContext(ctx, query, args...)
	result, err := scanFunc(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, HandlePersistenceError("scan "+entityType, err)
	}
	return result, nil
}

// QueryMultiple executes a query that returns multiple rows and scans them
func QueryMultiple[T any](ctx context.Context, db *DB, query string, scanFunc func(Rows) ([]*T, error), entityType string, args ...interface{}) ([]*T, error) {
	ctx, cancel := db.readCtx(ctx)
	defer cancel()

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, HandlePersistenceError("query "+entityType, err)
	}
	defer rows.Close()

	results, err := scanFunc(rows)
	if err != nil {
		return nil, HandlePersistenceError("scan "+entityType, err)
	}

	return results, nil
}
