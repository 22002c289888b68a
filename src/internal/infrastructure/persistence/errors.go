package persistence

import (
	"context"
	"database/sql/driver"
	"errors"
	"strings"

	"github.com/jackyeh168/giftcard_pos/src/internal/domain/shared"
	"gorm.io/gorm"
)

// mapError translates gorm and driver errors into domain errors so that
// nothing database specific leaks past the repositories.
//
//   - already a *shared.DomainError     → unchanged
//   - gorm.ErrRecordNotFound            → notFound
//   - serialization failure / deadlock  → shared.ErrConcurrentModification
//   - busy / locked / cancelled / conn  → shared.ErrStoreUnavailable
//   - anything else                     → shared.ErrRepositoryError
func mapError(err error, notFound error) error {
	if err == nil {
		return nil
	}

	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		return err
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound
	}

	if isConflictError(err) {
		return shared.ErrConcurrentModification.WithContext("database_error", err.Error())
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, driver.ErrBadConn) || isUnavailableError(err) {
		return shared.ErrStoreUnavailable.WithContext("database_error", err.Error())
	}

	return shared.ErrRepositoryError.WithContext("database_error", err.Error())
}

// isUniqueConstraintError matches unique violations across SQLite,
// PostgreSQL and MySQL.
func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return containsAny(err.Error(),
		"UNIQUE constraint failed",
		"duplicate key value",
		"Duplicate entry",
		"violates unique constraint",
	)
}

func isConflictError(err error) bool {
	return containsAny(err.Error(),
		"could not serialize access", // PostgreSQL 40001
		"deadlock detected",          // PostgreSQL 40P01
	)
}

func isUnavailableError(err error) bool {
	return containsAny(err.Error(),
		"database is locked",
		"database table is locked",
		"SQLITE_BUSY",
		"connection refused",
		"connection reset",
		"the database system is starting up",
		"too many clients",
	)
}

func containsAny(s string, substrs ...string) bool {
	for _, substr := range substrs {
		if strings.Contains(s, substr) {
			return true
		}
	}
	return false
}
