package giftcard_test

import (
	"testing"
	"time"

	"github.com/jackyeh168/giftcard_pos/src/internal/domain/giftcard"
	"github.com/jackyeh168/giftcard_pos/src/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var zeroTime time.Time

func entry(t *testing.T, seq int, txType giftcard.TransactionType, amount, after string) *giftcard.Transaction {
	t.Helper()
	code, _ := giftcard.NewCardCode("MC-0001")
	a, err := giftcard.ParseAmount(amount)
	require.NoError(t, err)
	b, err := giftcard.ParseAmount(after)
	if after == "0" {
		b, err = giftcard.Zero(), nil
	}
	require.NoError(t, err)

	tx, err := giftcard.ReconstructTransaction(giftcard.NewTransactionID(), code, txType, a, b, "", zeroTime.Add(time.Duration(seq)*time.Second), seq, "", shared.StaffID{})
	require.NoError(t, err)
	return tx
}

func TestLedgerReplay_ConsistentLedger(t *testing.T) {
	// Arrange
	svc := giftcard.NewLedgerReplayService()
	entries := []*giftcard.Transaction{
		entry(t, 2, giftcard.TransactionTypeCredit, "20", "20"),
		entry(t, 3, giftcard.TransactionTypeSpend, "5", "15"),
		entry(t, 4, giftcard.TransactionTypeSpend, "15", "0"),
	}

	// Act
	result := svc.Replay(entries, giftcard.Zero())

	// Assert
	assert.True(t, result.Consistent())
	assert.Equal(t, 3, result.Entries)
	assert.True(t, result.Replayed.IsZero())
}

func TestLedgerReplay_DetectsLostUpdate(t *testing.T) {
	// Arrange: two entries both computed from a stale 0.00 balance
	svc := giftcard.NewLedgerReplayService()
	entries := []*giftcard.Transaction{
		entry(t, 2, giftcard.TransactionTypeCredit, "10", "10"),
		entry(t, 3, giftcard.TransactionTypeCredit, "5", "5"),
	}
	cached, _ := giftcard.ParseAmount("5")

	// Act
	result := svc.Replay(entries, cached)

	// Assert
	assert.False(t, result.Consistent())
	require.Len(t, result.Mismatches, 1)
	assert.Equal(t, 3, result.Mismatches[0].Sequence)
	assert.Equal(t, "15", result.Mismatches[0].Expected.String())
	assert.Equal(t, "15", result.Replayed.String())
}
