package giftcard

import "github.com/jackyeh168/giftcard_pos/src/internal/domain/shared"

// ===========================
// Error codes
// ===========================

const (
	ErrCodeCardNotFound           shared.ErrorCode = "CARD_NOT_FOUND"
	ErrCodeAlreadyActivated       shared.ErrorCode = "CARD_ALREADY_ACTIVATED"
	ErrCodeInvalidCardCode        shared.ErrorCode = "CARD_CODE_INVALID"
	ErrCodeInvalidPin             shared.ErrorCode = "CARD_PIN_INVALID"
	ErrCodeInvalidAmount          shared.ErrorCode = "AMOUNT_INVALID"
	ErrCodeInvalidTransactionType shared.ErrorCode = "TRANSACTION_TYPE_INVALID"
	ErrCodeInsufficientFunds      shared.ErrorCode = "INSUFFICIENT_FUNDS"
	ErrCodeMissingCustomerData    shared.ErrorCode = "MISSING_CUSTOMER_DATA"
	ErrCodeInvalidNote            shared.ErrorCode = "NOTE_INVALID"
	ErrCodeDuplicateRequest       shared.ErrorCode = "DUPLICATE_REQUEST"
	ErrCodeCorruptedCard          shared.ErrorCode = "CARD_CORRUPTED"
	ErrCodeInvalidTransactionID   shared.ErrorCode = "TRANSACTION_ID_INVALID"
	ErrCodeTransactionNotFound    shared.ErrorCode = "TRANSACTION_NOT_FOUND"
)

// ===========================
// Sentinel errors
// ===========================

var (
	ErrCardNotFound = &shared.DomainError{
		Code:    ErrCodeCardNotFound,
		Message: "card not found",
	}

	ErrAlreadyActivated = &shared.DomainError{
		Code:    ErrCodeAlreadyActivated,
		Message: "card is already activated",
	}

	ErrInvalidCardCode = &shared.DomainError{
		Code:    ErrCodeInvalidCardCode,
		Message: "card code must be 1-64 characters of letters, digits, '.', '_' or '-'",
	}

	ErrInvalidPin = &shared.DomainError{
		Code:    ErrCodeInvalidPin,
		Message: "card PIN must be exactly 4 digits",
	}

	ErrInvalidAmount = &shared.DomainError{
		Code:    ErrCodeInvalidAmount,
		Message: "amount must be a positive number with at most 2 decimal places",
	}

	ErrInvalidTransactionType = &shared.DomainError{
		Code:    ErrCodeInvalidTransactionType,
		Message: "transaction type must be CREDIT or SPEND",
	}

	ErrInsufficientFunds = &shared.DomainError{
		Code:    ErrCodeInsufficientFunds,
		Message: "insufficient funds",
	}

	ErrMissingCustomerData = &shared.DomainError{
		Code:    ErrCodeMissingCustomerData,
		Message: "an existing customer or a new customer's first name is required",
	}

	ErrInvalidNote = &shared.DomainError{
		Code:    ErrCodeInvalidNote,
		Message: "note is too long",
	}

	// ErrDuplicateRequest is raised by the transaction log when a request
	// id was already committed for the card.
	ErrDuplicateRequest = &shared.DomainError{
		Code:    ErrCodeDuplicateRequest,
		Message: "request was already applied",
	}

	// ErrCorruptedCard is returned when stored data violates an invariant.
	ErrCorruptedCard = &shared.DomainError{
		Code:    ErrCodeCorruptedCard,
		Message: "stored card data violates ledger invariants",
	}

	ErrInvalidTransactionID = &shared.DomainError{
		Code:    ErrCodeInvalidTransactionID,
		Message: "invalid transaction id",
	}

	ErrTransactionNotFound = &shared.DomainError{
		Code:    ErrCodeTransactionNotFound,
		Message: "transaction not found",
	}
)
