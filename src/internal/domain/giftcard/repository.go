package giftcard

import (
	"time"

	"github.com/jackyeh168/giftcard_pos/src/internal/domain/shared"
)

// ===========================
// CardRepository
// ===========================

// CardRepository persists Card aggregates.
//
// Writes must run inside TransactionManager.InTransaction:
//
//   txManager.InTransaction(ctx, func(tx shared.TransactionContext) error {
//       card, _ := cards.FindByCode(tx, code)
//       entry, _ := card.Apply(giftcard.TransactionTypeCredit, amount, opts)
//       if err := cards.Update(tx, card); err != nil {
//           return err
//       }
//       return log.Append(tx, entry)
//   })
type CardRepository interface {
	// Create inserts a new card.
	// Errors: ErrAlreadyActivated if a card with the same code exists.
	Create(tx shared.TransactionContext, card *Card) error

	// FindByCode returns the card or ErrCardNotFound.
	FindByCode(tx shared.TransactionContext, code CardCode) (*Card, error)

	// Update persists balance changes with an optimistic check: the stored
	// version must equal card.Version()-1 (the version the card was loaded
	// at before its single pending change).
	// Errors: ErrCardNotFound, shared.ErrConcurrentModification.
	Update(tx shared.TransactionContext, card *Card) error

	// Delete removes the card row. Its ledger entries are kept.
	// Errors: ErrCardNotFound.
	Delete(tx shared.TransactionContext, code CardCode) error

	// List returns every card ordered by code.
	List(tx shared.TransactionContext) ([]*Card, error)

	// UnlinkCustomer clears the customer reference on every card linked to
	// customerID and returns how many were unlinked.
	UnlinkCustomer(tx shared.TransactionContext, customerID shared.CustomerID) (int64, error)
}

// ===========================
// TransactionLog
// ===========================

// HistoryQuery selects ledger entries for one card.
type HistoryQuery struct {
	// Limit caps the number of entries; <= 0 means no limit.
	Limit int
	// Since excludes entries older than this instant (zero: no bound).
	Since time.Time
	// Ascending returns oldest first instead of newest first.
	Ascending bool
}

// TransactionLog is the append-only ledger. There is deliberately no
// update or delete.
type TransactionLog interface {
	// Append writes a new entry, assigning id and timestamp when absent.
	// Errors: ErrDuplicateRequest when (card, requestID) already exists.
	Append(tx shared.TransactionContext, entry *Transaction) error

	// FindByRequestID returns the committed entry for an idempotency key,
	// or ErrTransactionNotFound.
	FindByRequestID(tx shared.TransactionContext, code CardCode, requestID string) (*Transaction, error)

	// Query streams entries ordered by timestamp (newest first unless
	// Ascending). Rows are read lazily while the sequence is ranged over.
	Query(tx shared.TransactionContext, code CardCode, q HistoryQuery) TransactionSeq
}
