package giftcard

import "github.com/jackyeh168/giftcard_pos/src/internal/domain/shared"

// TransactionMarker tags ledger transaction identifiers.
type TransactionMarker struct{}

// TransactionID identifies one ledger entry.
type TransactionID = shared.EntityID[TransactionMarker]

// NewTransactionID generates a new TransactionID.
func NewTransactionID() TransactionID {
	return shared.NewEntityID[TransactionMarker]()
}

// TransactionIDFromString parses a TransactionID.
func TransactionIDFromString(value string) (TransactionID, error) {
	return shared.EntityIDFromString[TransactionMarker](value, ErrInvalidTransactionID)
}
