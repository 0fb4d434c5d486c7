package postgres

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"lumina/internal/domain"
)

// IsPgDuplicateError checks if error is a unique constraint violation
func IsPgDuplicateError(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// 23505 = unique_violation
		return pgErr.Code == "23505"
	}
	return false
}

// IsPgNoRowsError checks if error is a "no rows" error
func IsPgNoRowsError(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

// IsPgForeignKeyError checks if error is a foreign key violation
func IsPgForeignKeyError(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// 23503 = foreign_key_violation
		return pgErr.Code == "23503"
	}
	return false
}

// IsPgUnavailableError checks if the error indicates the backing store
// is transiently unreachable (connection failures, shutdown in progress).
// These are the only failures callers may retry.
func IsPgUnavailableError(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// Class 08 = connection exception, 57P03 = cannot_connect_now
		return strings.HasPrefix(pgErr.Code, "08") || pgErr.Code == "57P03"
	}
	return pgconn.SafeToRetry(err)
}

// WrapQueryError wraps a driver error, translating transient connectivity
// failures into domain.ErrStorageUnavailable so the handlers surface a
// retryable 503 instead of a generic 500.
func WrapQueryError(op string, err error) error {
	if IsPgUnavailableError(err) {
		return fmt.Errorf("%s: %v: %w", op, err, domain.ErrStorageUnavailable)
	}
	return fmt.Errorf("%s: %w", op, err)
}
