package giftcard

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// ===========================
// Money
// ===========================

// moneyScale is the number of decimal places kept for currency.
const moneyScale = 2

// MaxTransactionAmount bounds a single credit or spend so balances always
// fit the integer-cents column.
var MaxTransactionAmount = decimal.NewFromInt(10_000_000)

// Money is a non-negative currency amount with two decimal places.
type Money struct {
	value decimal.Decimal
}

// Zero is 0.00.
func Zero() Money {
	return Money{value: decimal.Zero}
}

// NewMoney validates d: it must be >= 0 and have at most 2 decimals.
func NewMoney(d decimal.Decimal) (Money, error) {
	if d.IsNegative() || !d.Equal(d.Round(moneyScale)) {
		return Money{}, ErrInvalidAmount.WithContext("value", d.String())
	}
	return Money{value: d.Round(moneyScale)}, nil
}

// MoneyFromCents is used by persistence; cents may not be negative.
func MoneyFromCents(cents int64) (Money, error) {
	if cents < 0 {
		return Money{}, ErrInvalidAmount.WithContext("cents", cents)
	}
	return Money{value: decimal.New(cents, -moneyScale)}, nil
}

// ParseAmount parses user input for a credit or spend: numeric, > 0,
// at most 2 decimals, at most MaxTransactionAmount.
func ParseAmount(raw string) (Money, error) {
	s := strings.TrimSpace(raw)
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, ErrInvalidAmount.WithContext("input", raw, "reason", "not a number")
	}
	return NewAmount(d)
}

// NewAmount validates an already numeric transaction amount.
func NewAmount(d decimal.Decimal) (Money, error) {
	if !d.IsPositive() {
		return Money{}, ErrInvalidAmount.WithContext("input", d.String(), "reason", "must be greater than zero")
	}
	if d.GreaterThan(MaxTransactionAmount) {
		return Money{}, ErrInvalidAmount.WithContext("input", d.String(), "reason", "exceeds maximum")
	}
	return NewMoney(d)
}

// Decimal exposes the underlying value.
func (m Money) Decimal() decimal.Decimal {
	return m.value
}

// Cents returns the amount in integer cents.
func (m Money) Cents() int64 {
	return m.value.Shift(moneyScale).IntPart()
}

// Add returns m + other.
func (m Money) Add(other Money) Money {
	return Money{value: m.value.Add(other.value)}
}

// Subtract returns m - other, or ErrInsufficientFunds when other > m.
func (m Money) Subtract(other Money) (Money, error) {
	if other.value.GreaterThan(m.value) {
		return Money{}, ErrInsufficientFunds.WithContext(
			"requested", other.String(),
			"available", m.String(),
		)
	}
	return Money{value: m.value.Sub(other.value)}, nil
}

// Equals compares numerically (10.0 equals 10.00).
func (m Money) Equals(other Money) bool {
	return m.value.Equal(other.value)
}

// GreaterThan reports m > other.
func (m Money) GreaterThan(other Money) bool {
	return m.value.GreaterThan(other.value)
}

// IsZero reports m == 0.
func (m Money) IsZero() bool {
	return m.value.IsZero()
}

// String formats with exactly two decimals, e.g. "20.00".
func (m Money) String() string {
	return m.value.StringFixed(moneyScale)
}

// ===========================
// CardCode
// ===========================

var cardCodePattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]{0,63}$`)

// CardCode is the identifier printed on or encoded in the physical card.
// The system never generates one.
type CardCode struct {
	value string
}

// NewCardCode trims scanner whitespace and validates the result.
func NewCardCode(raw string) (CardCode, error) {
	s := strings.TrimSpace(raw)
	if !cardCodePattern.MatchString(s) {
		return CardCode{}, ErrInvalidCardCode.WithContext("input", raw)
	}
	return CardCode{value: s}, nil
}

func (c CardCode) String() string {
	return c.value
}

func (c CardCode) IsZero() bool {
	return c.value == ""
}

// ===========================
// CardPIN
// ===========================

var cardPinPattern = regexp.MustCompile(`^[0-9]{4}$`)

// CardPIN is the customer's 4-digit card PIN. It is stored verbatim
// because staff can reveal it.
type CardPIN struct {
	value string
}

// NewCardPIN accepts exactly four ASCII digits.
func NewCardPIN(raw string) (CardPIN, error) {
	if !cardPinPattern.MatchString(raw) {
		return CardPIN{}, ErrInvalidPin.WithContext("length", len(raw))
	}
	return CardPIN{value: raw}, nil
}

func (p CardPIN) String() string {
	return p.value
}

// Matches compares against a presented PIN.
func (p CardPIN) Matches(presented string) bool {
	return p.value != "" && p.value == presented
}

// ===========================
// TransactionType
// ===========================

// TransactionType is the direction of a balance change.
type TransactionType string

const (
	TransactionTypeCredit TransactionType = "CREDIT"
	TransactionTypeSpend  TransactionType = "SPEND"
)

// ParseTransactionType accepts CREDIT or SPEND, case-insensitively.
func ParseTransactionType(raw string) (TransactionType, error) {
	switch TransactionType(strings.ToUpper(strings.TrimSpace(raw))) {
	case TransactionTypeCredit:
		return TransactionTypeCredit, nil
	case TransactionTypeSpend:
		return TransactionTypeSpend, nil
	}
	return "", ErrInvalidTransactionType.WithContext("input", raw)
}

func (t TransactionType) String() string {
	return string(t)
}

// IsValid reports whether t is one of the known types.
func (t TransactionType) IsValid() bool {
	return t == TransactionTypeCredit || t == TransactionTypeSpend
}

// MaxNoteLength bounds the free-text note on a transaction.
const MaxNoteLength = 500

func validateNote(note string) (string, error) {
	n := strings.TrimSpace(note)
	if len([]rune(n)) > MaxNoteLength {
		return "", ErrInvalidNote.WithContext("length", len([]rune(n)), "max", MaxNoteLength)
	}
	return n, nil
}
