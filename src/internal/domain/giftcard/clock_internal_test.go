package giftcard

import (
	"testing"
	"time"

	"github.com/jackyeh168/giftcard_pos/src/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCard_Apply_TimestampsStrictlyIncreaseWhenClockStalls(t *testing.T) {
	// Arrange: a clock that never moves
	frozen := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	original := clock
	clock = func() time.Time { return frozen }
	t.Cleanup(func() { clock = original })

	code, _ := NewCardCode("MC-CLOCK")
	pin, _ := NewCardPIN("1234")
	card, err := ActivateCard(code, pin, shared.NewEntityID[shared.CustomerMarker]())
	require.NoError(t, err)
	amount, _ := ParseAmount("1")

	// Act
	first, err := card.Apply(TransactionTypeCredit, amount, ApplyOptions{})
	require.NoError(t, err)
	second, err := card.Apply(TransactionTypeCredit, amount, ApplyOptions{})
	require.NoError(t, err)

	// Assert
	assert.Equal(t, frozen.Add(time.Microsecond), first.Timestamp())
	assert.Equal(t, frozen.Add(2*time.Microsecond), second.Timestamp())
}

func TestCard_Apply_TimestampFollowsActivationWhenClockLags(t *testing.T) {
	// Arrange: the card was activated by a clock running ahead of this one
	createdAt := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	original := clock
	clock = func() time.Time { return createdAt.Add(-2 * time.Second) }
	t.Cleanup(func() { clock = original })

	code, _ := NewCardCode("MC-SKEW")
	pin, _ := NewCardPIN("1234")
	card, err := ReconstructCard(code, pin, Zero(), shared.CustomerID{}, createdAt, createdAt, time.Time{}, 1)
	require.NoError(t, err)
	amount, _ := ParseAmount("20")

	// Act
	first, err := card.Apply(TransactionTypeCredit, amount, ApplyOptions{})
	require.NoError(t, err)
	second, err := card.Apply(TransactionTypeCredit, amount, ApplyOptions{})
	require.NoError(t, err)

	// Assert
	assert.Equal(t, createdAt.Add(time.Microsecond), first.Timestamp())
	assert.Equal(t, createdAt.Add(2*time.Microsecond), second.Timestamp())
}
