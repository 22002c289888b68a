package persistence

import (
	"github.com/jackyeh168/giftcard_pos/src/internal/domain/shared"
	"gorm.io/gorm"
)

// ===========================
// GORM TransactionContext
// ===========================

// gormTransactionContext wraps the *gorm.DB of a running transaction. It
// satisfies the shared.TransactionContext marker so the handle never
// leaks into domain or application code.
type gormTransactionContext struct {
	db *gorm.DB
}

// NewGORMTransactionContext wraps db as a shared.TransactionContext.
func NewGORMTransactionContext(db *gorm.DB) shared.TransactionContext {
	return &gormTransactionContext{db: db}
}

// GetDB is only used inside the infrastructure layer.
func (ctx *gormTransactionContext) GetDB() *gorm.DB {
	return ctx.db
}

// dbFrom returns the transaction handle carried by tx, or fallback for
// auto-commit reads. A shared.ReadContext binds the read to its context.
func dbFrom(tx shared.TransactionContext, fallback *gorm.DB) *gorm.DB {
	switch t := tx.(type) {
	case *gormTransactionContext:
		if t != nil {
			return t.GetDB()
		}
	case shared.ReadContext:
		return fallback.WithContext(t.Context())
	}
	return fallback
}
