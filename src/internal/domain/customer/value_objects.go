package customer

import (
	"fmt"
	"net/mail"
	"strings"
	"unicode"

	"github.com/jackyeh168/giftcard_pos/src/internal/domain/shared"
)

// CustomerID identifies a customer record.
type CustomerID = shared.CustomerID

// NewCustomerID generates a new CustomerID.
func NewCustomerID() CustomerID {
	return shared.NewEntityID[shared.CustomerMarker]()
}

// CustomerIDFromString parses a CustomerID.
func CustomerIDFromString(value string) (CustomerID, error) {
	return shared.EntityIDFromString[shared.CustomerMarker](value, ErrInvalidCustomerID)
}

// ===========================
// PhoneNumber
// ===========================

// PhoneNumber is a 10-digit North American number stored as digits only.
// The till accepts "(555) 123-4567", "555.123.4567" or a leading "+1".
type PhoneNumber struct {
	digits string
}

// NewPhoneNumber strips formatting and validates the digit count.
func NewPhoneNumber(raw string) (PhoneNumber, error) {
	var b strings.Builder
	for _, r := range raw {
		if unicode.IsDigit(r) && r < unicode.MaxASCII {
			b.WriteRune(r)
		}
	}
	digits := b.String()
	if len(digits) == 11 && strings.HasPrefix(strings.TrimSpace(raw), "+1") {
		digits = digits[1:]
	}
	if len(digits) != 10 {
		return PhoneNumber{}, ErrInvalidPhoneNumber.WithContext("input", raw)
	}
	return PhoneNumber{digits: digits}, nil
}

// String returns the stored digits.
func (p PhoneNumber) String() string {
	return p.digits
}

// Formatted renders "(555) 123-4567".
func (p PhoneNumber) Formatted() string {
	if p.IsZero() {
		return ""
	}
	return fmt.Sprintf("(%s) %s-%s", p.digits[:3], p.digits[3:6], p.digits[6:])
}

func (p PhoneNumber) IsZero() bool {
	return p.digits == ""
}

// ===========================
// Email
// ===========================

// Email is a lower-cased address.
type Email struct {
	value string
}

// NewEmail validates with net/mail and rejects display-name forms.
func NewEmail(raw string) (Email, error) {
	s := strings.ToLower(strings.TrimSpace(raw))
	addr, err := mail.ParseAddress(s)
	if err != nil || addr.Address != s {
		return Email{}, ErrInvalidEmail.WithContext("input", raw)
	}
	return Email{value: s}, nil
}

func (e Email) String() string {
	return e.value
}

func (e Email) IsZero() bool {
	return e.value == ""
}
