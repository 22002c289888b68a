package persistence

import (
	"context"

	"github.com/jackyeh168/giftcard_pos/src/internal/domain/shared"
	"gorm.io/gorm"
)

// GORMTransactionManager implements shared.TransactionManager on top of
// gorm's Transaction helper: fn's error or a panic rolls back, a nil
// return commits.
type GORMTransactionManager struct {
	db *gorm.DB
}

// NewGORMTransactionManager creates a manager bound to db.
func NewGORMTransactionManager(db *gorm.DB) shared.TransactionManager {
	return &GORMTransactionManager{db: db}
}

// InTransaction runs fn in a single database transaction bound to ctx.
//
// Errors returned by fn are passed through untouched. Failures of the
// transaction itself (begin, commit, cancelled context) are mapped to
// shared.ErrStoreUnavailable or shared.ErrConcurrentModification so the
// caller can decide to retry.
func (m *GORMTransactionManager) InTransaction(ctx context.Context, fn func(tx shared.TransactionContext) error) error {
	var fnErr error
	err := m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		fnErr = fn(NewGORMTransactionContext(tx))
		return fnErr
	})

	if err == nil {
		return nil
	}
	if fnErr != nil && err == fnErr {
		return fnErr
	}
	return mapError(err, shared.ErrRepositoryError)
}
