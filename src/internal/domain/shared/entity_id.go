package shared

import (
	"github.com/google/uuid"
)

// ===========================
// EntityID[T] generic entity identifier
// ===========================

// EntityID is a UUID-backed identifier whose type parameter is a marker
// type, so a CustomerID and a StaffID cannot be mixed up at compile time.
//
//   type CustomerMarker struct{}
//   type CustomerID = shared.EntityID[CustomerMarker]
type EntityID[T any] struct {
	value uuid.UUID
}

// NewEntityID generates a new random (v4) identifier.
func NewEntityID[T any]() EntityID[T] {
	return EntityID[T]{value: uuid.New()}
}

// EntityIDFromString parses a UUID string.
//
// errTemplate is returned on failure; when it supports WithContext the
// offending input is attached. The caller owns the error type so this
// package stays free of business errors.
func EntityIDFromString[T any](s string, errTemplate error) (EntityID[T], error) {
	id, err := uuid.Parse(s)
	if err != nil {
		if domainErr, ok := errTemplate.(interface {
			WithContext(keyValues ...interface{}) error
		}); ok {
			return EntityID[T]{}, domainErr.WithContext(
				"input", s,
				"parse_error", err.Error(),
			)
		}
		return EntityID[T]{}, errTemplate
	}
	return EntityID[T]{value: id}, nil
}

// String returns the canonical lower-case form.
func (e EntityID[T]) String() string {
	return e.value.String()
}

// Equals compares two identifiers of the same entity type.
func (e EntityID[T]) Equals(other EntityID[T]) bool {
	return e.value == other.value
}

// IsEmpty reports whether the identifier is the zero value.
func (e EntityID[T]) IsEmpty() bool {
	return e.value == uuid.Nil
}
