package shared_test

import (
	"errors"
	"testing"

	"github.com/jackyeh168/giftcard_pos/src/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testAMarker struct{}
type testBMarker struct{}

var errInvalidTestID = &shared.DomainError{Code: "TEST_ID_INVALID", Message: "invalid test id"}

// ===========================
// EntityID[T]
// ===========================

func TestNewEntityID_GeneratesUniqueIDs(t *testing.T) {
	// Act
	id1 := shared.NewEntityID[testAMarker]()
	id2 := shared.NewEntityID[testAMarker]()

	// Assert
	assert.False(t, id1.IsEmpty())
	assert.False(t, id1.Equals(id2))
}

func TestEntityIDFromString_ValidUUID_RoundTrips(t *testing.T) {
	// Arrange
	raw := "550e8400-e29b-41d4-a716-446655440000"

	// Act
	id, err := shared.EntityIDFromString[testAMarker](raw, errInvalidTestID)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, raw, id.String())
}

func TestEntityIDFromString_InvalidInput_ReturnsTemplateWithContext(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{"empty", ""},
		{"not a uuid", "not-a-uuid"},
		{"truncated", "550e8400-e29b-41d4-a716"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Act
			id, err := shared.EntityIDFromString[testBMarker](tt.value, errInvalidTestID)

			// Assert
			require.Error(t, err)
			assert.True(t, id.IsEmpty())
			assert.ErrorIs(t, err, errInvalidTestID)

			var domainErr *shared.DomainError
			require.True(t, errors.As(err, &domainErr))
			assert.Equal(t, tt.value, domainErr.Context["input"])
		})
	}
}

func TestEntityIDFromString_TemplateWithoutContext_ReturnedAsIs(t *testing.T) {
	// Arrange
	plain := errors.New("plain")

	// Act
	_, err := shared.EntityIDFromString[testAMarker]("bad", plain)

	// Assert
	assert.Same(t, plain, err)
}

// ===========================
// DomainError
// ===========================

func TestDomainError_WithContext_DoesNotMutateOriginal(t *testing.T) {
	// Act
	withCtx := errInvalidTestID.WithContext("key", "value")

	// Assert
	assert.Empty(t, errInvalidTestID.Context)
	assert.ErrorIs(t, withCtx, errInvalidTestID)
	assert.Contains(t, withCtx.Error(), "key:value")
}

func TestDomainError_WithContext_OddArguments_Panics(t *testing.T) {
	assert.Panics(t, func() {
		_ = errInvalidTestID.WithContext("lonely")
	})
}

func TestIsRetryable(t *testing.T) {
	assert.True(t, shared.IsRetryable(shared.ErrConcurrentModification))
	assert.True(t, shared.IsRetryable(shared.ErrStoreUnavailable.WithContext("reason", "locked")))
	assert.False(t, shared.IsRetryable(shared.ErrRepositoryError))
	assert.False(t, shared.IsRetryable(nil))
}
