package ledger

import (
	"time"

	"github.com/jackyeh168/giftcard_pos/src/internal/domain/giftcard"
)

// CardResult is the public view of a card. The PIN is never included;
// it is only released through the authorization gate.
type CardResult struct {
	Code              string
	Balance           giftcard.Money
	CustomerID        string
	CreatedAt         time.Time
	LastTransactionAt time.Time
}

func newCardResult(card *giftcard.Card) *CardResult {
	result := &CardResult{
		Code:              card.Code().String(),
		Balance:           card.Balance(),
		CreatedAt:         card.CreatedAt(),
		LastTransactionAt: card.LastTransactionAt(),
	}
	if card.IsLinked() {
		result.CustomerID = card.CustomerID().String()
	}
	return result
}

// TransactionResult is the public view of one ledger entry.
type TransactionResult struct {
	ID           string
	CardCode     string
	Type         string
	Amount       giftcard.Money
	BalanceAfter giftcard.Money
	Note         string
	Timestamp    time.Time
	RequestID    string
	StaffID      string
}

// NewTransactionResult converts a ledger entry.
func NewTransactionResult(entry *giftcard.Transaction) TransactionResult {
	result := TransactionResult{
		ID:           entry.ID().String(),
		CardCode:     entry.CardCode().String(),
		Type:         entry.Type().String(),
		Amount:       entry.Amount(),
		BalanceAfter: entry.BalanceAfter(),
		Note:         entry.Note(),
		Timestamp:    entry.Timestamp(),
		RequestID:    entry.RequestID(),
	}
	if !entry.StaffID().IsEmpty() {
		result.StaffID = entry.StaffID().String()
	}
	return result
}
