package staff

import "github.com/jackyeh168/giftcard_pos/src/internal/domain/shared"

const (
	ErrCodeStaffNotFound     shared.ErrorCode = "STAFF_NOT_FOUND"
	ErrCodeInvalidStaffID    shared.ErrorCode = "STAFF_ID_INVALID"
	ErrCodeInvalidStaffName  shared.ErrorCode = "STAFF_NAME_REQUIRED"
	ErrCodeInvalidStaffPin   shared.ErrorCode = "STAFF_PIN_INVALID"
	ErrCodeDuplicateStaffPin shared.ErrorCode = "STAFF_PIN_IN_USE"
	ErrCodeInvalidRole       shared.ErrorCode = "STAFF_ROLE_INVALID"
	ErrCodeAccessDenied      shared.ErrorCode = "ACCESS_DENIED"
	ErrCodeForbidden         shared.ErrorCode = "FORBIDDEN"
	ErrCodeLastAdmin         shared.ErrorCode = "LAST_ADMIN"
)

var (
	ErrStaffNotFound = &shared.DomainError{
		Code:    ErrCodeStaffNotFound,
		Message: "staff member not found",
	}

	ErrInvalidStaffID = &shared.DomainError{
		Code:    ErrCodeInvalidStaffID,
		Message: "invalid staff id",
	}

	ErrInvalidStaffName = &shared.DomainError{
		Code:    ErrCodeInvalidStaffName,
		Message: "staff name is required",
	}

	ErrInvalidStaffPin = &shared.DomainError{
		Code:    ErrCodeInvalidStaffPin,
		Message: "staff PIN must be 4 to 12 digits",
	}

	ErrDuplicateStaffPin = &shared.DomainError{
		Code:    ErrCodeDuplicateStaffPin,
		Message: "staff PIN is already used by another active staff member",
	}

	ErrInvalidRole = &shared.DomainError{
		Code:    ErrCodeInvalidRole,
		Message: "role must be cashier or admin",
	}

	// ErrAccessDenied is deliberately uniform: it never says which of the
	// presented credentials was wrong.
	ErrAccessDenied = &shared.DomainError{
		Code:    ErrCodeAccessDenied,
		Message: "access denied",
	}

	ErrForbidden = &shared.DomainError{
		Code:    ErrCodeForbidden,
		Message: "admin access required",
	}

	ErrLastAdmin = &shared.DomainError{
		Code:    ErrCodeLastAdmin,
		Message: "at least one admin must remain",
	}
)
