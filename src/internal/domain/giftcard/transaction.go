package giftcard

import (
	"time"

	"github.com/jackyeh168/giftcard_pos/src/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ===========================
// Transaction (ledger entry)
// ===========================

// Transaction is one immutable entry of a card's ledger. It is created
// only by Card.Apply and never changed afterwards; corrections are new
// entries.
type Transaction struct {
	id           TransactionID
	cardCode     CardCode
	txType       TransactionType
	amount       Money
	balanceAfter Money
	note         string
	timestamp    time.Time
	sequence     int
	requestID    string
	staffID      shared.StaffID
}

// ReconstructTransaction rebuilds an entry loaded from storage.
func ReconstructTransaction(
	id TransactionID,
	cardCode CardCode,
	txType TransactionType,
	amount Money,
	balanceAfter Money,
	note string,
	timestamp time.Time,
	sequence int,
	requestID string,
	staffID shared.StaffID,
) (*Transaction, error) {
	if !txType.IsValid() {
		return nil, ErrInvalidTransactionType.WithContext("value", string(txType), "reason", "invalid type in database")
	}
	if amount.IsZero() {
		return nil, ErrInvalidAmount.WithContext("reason", "zero amount in database", "transaction_id", id.String())
	}

	return &Transaction{
		id:           id,
		cardCode:     cardCode,
		txType:       txType,
		amount:       amount,
		balanceAfter: balanceAfter,
		note:         note,
		timestamp:    timestamp,
		sequence:     sequence,
		requestID:    requestID,
		staffID:      staffID,
	}, nil
}

func (t *Transaction) ID() TransactionID { return t.id }
func (t *Transaction) CardCode() CardCode { return t.cardCode }
func (t *Transaction) Type() TransactionType { return t.txType }
func (t *Transaction) Amount() Money { return t.amount }
func (t *Transaction) BalanceAfter() Money { return t.balanceAfter }
func (t *Transaction) Note() string { return t.note }
func (t *Transaction) Timestamp() time.Time { return t.timestamp }
func (t *Transaction) Sequence() int { return t.sequence }
func (t *Transaction) RequestID() string { return t.requestID }
func (t *Transaction) StaffID() shared.StaffID { return t.staffID }

// Delta is the signed effect on the balance: +amount for CREDIT,
// -amount for SPEND.
func (t *Transaction) Delta() decimal.Decimal {
	if t.txType == TransactionTypeSpend {
		return t.amount.Decimal().Neg()
	}
	return t.amount.Decimal()
}

// assignIdentity fills id and timestamp when absent. Used by the log on
// append for entries built outside Card.Apply (e.g. imports).
func (t *Transaction) assignIdentity(now time.Time) {
	if t.id.IsEmpty() {
		t.id = NewTransactionID()
	}
	if t.timestamp.IsZero() {
		t.timestamp = now
	}
}

// EnsureIdentity is called by TransactionLog implementations before
// writing an entry.
func EnsureIdentity(t *Transaction) {
	t.assignIdentity(time.Now().UTC().Truncate(time.Microsecond))
}
