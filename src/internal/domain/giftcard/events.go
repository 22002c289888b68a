package giftcard

import (
	"time"

	"github.com/google/uuid"
	"github.com/jackyeh168/giftcard_pos/src/internal/domain/shared"
)

// Event types.
const (
	EventTypeCardActivated     = "giftcard.activated"
	EventTypeBalanceCredited   = "giftcard.credited"
	EventTypeBalanceSpent      = "giftcard.spent"
	EventTypeBalanceReconciled = "giftcard.reconciled"
)

// cardEvent holds the fields every card event shares.
type cardEvent struct {
	eventID    string
	cardCode   CardCode
	occurredAt time.Time
}

func newCardEvent(code CardCode, at time.Time) cardEvent {
	return cardEvent{eventID: uuid.New().String(), cardCode: code, occurredAt: at}
}

func (e cardEvent) EventID() string { return e.eventID }
func (e cardEvent) OccurredAt() time.Time { return e.occurredAt }
func (e cardEvent) AggregateID() string { return e.cardCode.String() }

// ===========================
// CardActivated
// ===========================

type CardActivatedEvent struct {
	cardEvent
	customerID shared.CustomerID
}

func NewCardActivatedEvent(code CardCode, customerID shared.CustomerID, at time.Time) *CardActivatedEvent {
	return &CardActivatedEvent{cardEvent: newCardEvent(code, at), customerID: customerID}
}

func (e *CardActivatedEvent) EventType() string { return EventTypeCardActivated }

func (e *CardActivatedEvent) CustomerID() shared.CustomerID { return e.customerID }

// ===========================
// BalanceChanged (credited / spent)
// ===========================

// BalanceChangedEvent is raised for every applied ledger entry.
type BalanceChangedEvent struct {
	cardEvent
	transactionID TransactionID
	txType        TransactionType
	amount        Money
	balanceAfter  Money
	staffID       shared.StaffID
}

func NewBalanceChangedEvent(entry *Transaction) *BalanceChangedEvent {
	return &BalanceChangedEvent{
		cardEvent:     newCardEvent(entry.cardCode, entry.timestamp),
		transactionID: entry.id,
		txType:        entry.txType,
		amount:        entry.amount,
		balanceAfter:  entry.balanceAfter,
		staffID:       entry.staffID,
	}
}

func (e *BalanceChangedEvent) EventType() string {
	if e.txType == TransactionTypeSpend {
		return EventTypeBalanceSpent
	}
	return EventTypeBalanceCredited
}

func (e *BalanceChangedEvent) TransactionID() TransactionID { return e.transactionID }
func (e *BalanceChangedEvent) Amount() Money { return e.amount }
func (e *BalanceChangedEvent) BalanceAfter() Money { return e.balanceAfter }
func (e *BalanceChangedEvent) StaffID() shared.StaffID { return e.staffID }

// ===========================
// BalanceReconciled
// ===========================

type BalanceReconciledEvent struct {
	cardEvent
	previous Money
	replayed Money
	reason   string
}

func NewBalanceReconciledEvent(code CardCode, previous, replayed Money, reason string, at time.Time) *BalanceReconciledEvent {
	return &BalanceReconciledEvent{
		cardEvent: newCardEvent(code, at),
		previous:  previous,
		replayed:  replayed,
		reason:    reason,
	}
}

func (e *BalanceReconciledEvent) EventType() string { return EventTypeBalanceReconciled }
func (e *BalanceReconciledEvent) Previous() Money { return e.previous }
func (e *BalanceReconciledEvent) Replayed() Money { return e.replayed }
func (e *BalanceReconciledEvent) Reason() string { return e.reason }
