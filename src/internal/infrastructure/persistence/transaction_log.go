package persistence

import (
	"github.com/jackyeh168/giftcard_pos/src/internal/domain/giftcard"
	"github.com/jackyeh168/giftcard_pos/src/internal/domain/shared"
	"gorm.io/gorm"
)

// GORMTransactionLog implements giftcard.TransactionLog. It only ever
// inserts and selects.
//
// Query rules:
//   - entries of one card are ordered by (occurred_at, sequence)
//   - (card_code, request_id) is unique, so a replayed request finds its
//     original entry instead of writing a second one
type GORMTransactionLog struct {
	db *gorm.DB
}

// NewTransactionLog creates the ledger store.
func NewTransactionLog(db *gorm.DB) giftcard.TransactionLog {
	return &GORMTransactionLog{db: db}
}

func (l *GORMTransactionLog) getDB(tx shared.TransactionContext) *gorm.DB {
	return dbFrom(tx, l.db)
}

// Append inserts entry.
func (l *GORMTransactionLog) Append(tx shared.TransactionContext, entry *giftcard.Transaction) error {
	giftcard.EnsureIdentity(entry)
	model := transactionToModel(entry)

	if err := l.getDB(tx).Create(model).Error; err != nil {
		if isUniqueConstraintError(err) {
			return giftcard.ErrDuplicateRequest.WithContext(
				"card_code", model.CardCode,
				"request_id", derefString(model.RequestID),
			)
		}
		return mapError(err, giftcard.ErrTransactionNotFound)
	}
	return nil
}

// FindByRequestID looks up the entry committed for an idempotency key.
func (l *GORMTransactionLog) FindByRequestID(tx shared.TransactionContext, code giftcard.CardCode, requestID string) (*giftcard.Transaction, error) {
	if requestID == "" {
		return nil, giftcard.ErrTransactionNotFound
	}

	var model TransactionModel
	err := l.getDB(tx).
		Where("card_code = ? AND request_id = ?", code.String(), requestID).
		First(&model).Error
	if err != nil {
		return nil, mapError(err, giftcard.ErrTransactionNotFound.WithContext("request_id", requestID))
	}
	return model.toDomain()
}

// Query streams the selected entries. Rows are scanned one at a time as
// the consumer pulls them, and the cursor is closed when iteration stops.
//
// The cursor holds a connection until then, so consumers must not issue
// other queries on the same pool from inside the loop when the pool is
// limited to a single connection (SQLite).
func (l *GORMTransactionLog) Query(tx shared.TransactionContext, code giftcard.CardCode, q giftcard.HistoryQuery) giftcard.TransactionSeq {
	return func(yield func(*giftcard.Transaction, error) bool) {
		db := l.getDB(tx)

		stmt := db.Model(&TransactionModel{}).Where("card_code = ?", code.String())
		if !q.Since.IsZero() {
			stmt = stmt.Where("occurred_at >= ?", q.Since)
		}
		if q.Ascending {
			stmt = stmt.Order("occurred_at ASC").Order("sequence ASC")
		} else {
			stmt = stmt.Order("occurred_at DESC").Order("sequence DESC")
		}
		if q.Limit > 0 {
			stmt = stmt.Limit(q.Limit)
		}

		rows, err := stmt.Rows()
		if err != nil {
			yield(nil, mapError(err, giftcard.ErrTransactionNotFound))
			return
		}
		defer rows.Close()

		for rows.Next() {
			var model TransactionModel
			if err := db.ScanRows(rows, &model); err != nil {
				yield(nil, mapError(err, giftcard.ErrTransactionNotFound))
				return
			}
			entry, err := model.toDomain()
			if err != nil {
				yield(nil, err)
				return
			}
			if !yield(entry, nil) {
				return
			}
		}
		if err := rows.Err(); err != nil {
			yield(nil, mapError(err, giftcard.ErrTransactionNotFound))
		}
	}
}
