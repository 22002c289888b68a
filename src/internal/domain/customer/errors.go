package customer

import "github.com/jackyeh168/giftcard_pos/src/internal/domain/shared"

const (
	ErrCodeCustomerNotFound   shared.ErrorCode = "CUSTOMER_NOT_FOUND"
	ErrCodeInvalidCustomerID  shared.ErrorCode = "CUSTOMER_ID_INVALID"
	ErrCodeInvalidFirstName   shared.ErrorCode = "CUSTOMER_FIRST_NAME_REQUIRED"
	ErrCodeInvalidEmail       shared.ErrorCode = "CUSTOMER_EMAIL_INVALID"
	ErrCodeInvalidPhoneNumber shared.ErrorCode = "CUSTOMER_PHONE_INVALID"
	ErrCodeFieldTooLong       shared.ErrorCode = "CUSTOMER_FIELD_TOO_LONG"
	ErrCodeEmptySearch        shared.ErrorCode = "CUSTOMER_SEARCH_EMPTY"
)

var (
	ErrCustomerNotFound = &shared.DomainError{
		Code:    ErrCodeCustomerNotFound,
		Message: "customer not found",
	}

	ErrInvalidCustomerID = &shared.DomainError{
		Code:    ErrCodeInvalidCustomerID,
		Message: "invalid customer id",
	}

	ErrInvalidFirstName = &shared.DomainError{
		Code:    ErrCodeInvalidFirstName,
		Message: "first name is required",
	}

	ErrInvalidEmail = &shared.DomainError{
		Code:    ErrCodeInvalidEmail,
		Message: "email address is invalid",
	}

	ErrInvalidPhoneNumber = &shared.DomainError{
		Code:    ErrCodeInvalidPhoneNumber,
		Message: "phone number must have 10 digits",
	}

	ErrFieldTooLong = &shared.DomainError{
		Code:    ErrCodeFieldTooLong,
		Message: "field is too long",
	}

	ErrEmptySearch = &shared.DomainError{
		Code:    ErrCodeEmptySearch,
		Message: "search needs an email or a phone number",
	}
)
