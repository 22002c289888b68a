package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/jackyeh168/giftcard_pos/src/internal/domain/giftcard"
	"github.com/jackyeh168/giftcard_pos/src/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// applyAndStore runs Apply + Update + Append in one transaction, the way
// the ledger use case does.
func applyAndStore(t *testing.T, tm shared.TransactionManager, cards giftcard.CardRepository, log giftcard.TransactionLog, card *giftcard.Card, txType giftcard.TransactionType, amount string, opts giftcard.ApplyOptions) *giftcard.Transaction {
	t.Helper()
	var entry *giftcard.Transaction
	err := tm.InTransaction(context.Background(), func(tx shared.TransactionContext) error {
		var err error
		entry, err = card.Apply(txType, mustAmount(t, amount), opts)
		if err != nil {
			return err
		}
		if err := cards.Update(tx, card); err != nil {
			return err
		}
		return log.Append(tx, entry)
	})
	require.NoError(t, err)
	return entry
}

func TestTransactionLog_Query_NewestFirstWithLimit(t *testing.T) {
	// Arrange
	db, cleanup := setupTestDB(t)
	defer cleanup()
	tm := NewGORMTransactionManager(db)
	cards := NewCardRepository(db)
	log := NewTransactionLog(db)

	card := newActivatedCard(t, "GC-H")
	require.NoError(t, cards.Create(nil, card))
	applyAndStore(t, tm, cards, log, card, giftcard.TransactionTypeCredit, "100", giftcard.ApplyOptions{})
	applyAndStore(t, tm, cards, log, card, giftcard.TransactionTypeSpend, "30", giftcard.ApplyOptions{Note: "coffee"})
	applyAndStore(t, tm, cards, log, card, giftcard.TransactionTypeSpend, "20", giftcard.ApplyOptions{})

	// Act
	var got []*giftcard.Transaction
	for entry, err := range log.Query(nil, card.Code(), giftcard.HistoryQuery{Limit: 2}) {
		require.NoError(t, err)
		got = append(got, entry)
	}

	// Assert
	require.Len(t, got, 2)
	assert.Equal(t, "50.00", got[0].BalanceAfter().String())
	assert.Equal(t, "70.00", got[1].BalanceAfter().String())
	assert.Equal(t, "coffee", got[1].Note())
	assert.True(t, got[0].Timestamp().After(got[1].Timestamp()))
}

func TestTransactionLog_Query_AscendingReplaysToBalance(t *testing.T) {
	// Arrange
	db, cleanup := setupTestDB(t)
	defer cleanup()
	tm := NewGORMTransactionManager(db)
	cards := NewCardRepository(db)
	log := NewTransactionLog(db)

	card := newActivatedCard(t, "GC-R")
	require.NoError(t, cards.Create(nil, card))
	applyAndStore(t, tm, cards, log, card, giftcard.TransactionTypeCredit, "40.25", giftcard.ApplyOptions{})
	applyAndStore(t, tm, cards, log, card, giftcard.TransactionTypeSpend, "0.25", giftcard.ApplyOptions{})

	// Act
	var entries []*giftcard.Transaction
	for entry, err := range log.Query(nil, card.Code(), giftcard.HistoryQuery{Ascending: true}) {
		require.NoError(t, err)
		entries = append(entries, entry)
	}
	stored, err := cards.FindByCode(nil, card.Code())
	require.NoError(t, err)
	result := giftcard.NewLedgerReplayService().Replay(entries, stored.Balance())

	// Assert
	assert.Equal(t, 2, result.Entries)
	assert.True(t, result.Consistent())
	assert.Equal(t, "40.00", stored.Balance().String())
}

func TestTransactionLog_Query_IsRestartable(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	tm := NewGORMTransactionManager(db)
	cards := NewCardRepository(db)
	log := NewTransactionLog(db)

	card := newActivatedCard(t, "GC-S")
	require.NoError(t, cards.Create(nil, card))
	applyAndStore(t, tm, cards, log, card, giftcard.TransactionTypeCredit, "5", giftcard.ApplyOptions{})

	seq := log.Query(nil, card.Code(), giftcard.HistoryQuery{})
	count := func() int {
		n := 0
		for _, err := range seq {
			require.NoError(t, err)
			n++
		}
		return n
	}

	assert.Equal(t, 1, count())
	applyAndStore(t, tm, cards, log, card, giftcard.TransactionTypeCredit, "5", giftcard.ApplyOptions{})
	assert.Equal(t, 2, count(), "a second pass must re-read the store")
}

func TestTransactionLog_Query_EarlyBreakReleasesCursor(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	tm := NewGORMTransactionManager(db)
	cards := NewCardRepository(db)
	log := NewTransactionLog(db)

	card := newActivatedCard(t, "GC-B")
	require.NoError(t, cards.Create(nil, card))
	for i := 0; i < 3; i++ {
		applyAndStore(t, tm, cards, log, card, giftcard.TransactionTypeCredit, "1", giftcard.ApplyOptions{})
	}

	for range log.Query(nil, card.Code(), giftcard.HistoryQuery{}) {
		break
	}

	// The single pooled connection must be free again.
	_, err := cards.FindByCode(nil, card.Code())
	assert.NoError(t, err)
}

func TestTransactionLog_Query_SinceExcludesOlderEntries(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	tm := NewGORMTransactionManager(db)
	cards := NewCardRepository(db)
	log := NewTransactionLog(db)

	card := newActivatedCard(t, "GC-T")
	require.NoError(t, cards.Create(nil, card))
	first := applyAndStore(t, tm, cards, log, card, giftcard.TransactionTypeCredit, "1", giftcard.ApplyOptions{})

	var got int
	for _, err := range log.Query(nil, card.Code(), giftcard.HistoryQuery{Since: first.Timestamp().Add(time.Second)}) {
		require.NoError(t, err)
		got++
	}

	assert.Zero(t, got)
}

func TestTransactionLog_Append_DuplicateRequestID(t *testing.T) {
	// Arrange
	db, cleanup := setupTestDB(t)
	defer cleanup()
	tm := NewGORMTransactionManager(db)
	cards := NewCardRepository(db)
	log := NewTransactionLog(db)

	card := newActivatedCard(t, "GC-D")
	require.NoError(t, cards.Create(nil, card))
	first := applyAndStore(t, tm, cards, log, card, giftcard.TransactionTypeCredit, "10", giftcard.ApplyOptions{RequestID: "req-1"})

	// Act
	again, err := card.Apply(giftcard.TransactionTypeCredit, mustAmount(t, "10"), giftcard.ApplyOptions{RequestID: "req-1"})
	require.NoError(t, err)
	err = log.Append(nil, again)

	// Assert
	assert.ErrorIs(t, err, giftcard.ErrDuplicateRequest)

	found, err := log.FindByRequestID(nil, card.Code(), "req-1")
	require.NoError(t, err)
	assert.True(t, first.ID().Equals(found.ID()))
}

func TestTransactionLog_FindByRequestID_NotFound(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	log := NewTransactionLog(db)

	_, err := log.FindByRequestID(nil, mustCode(t, "GC-none"), "req-x")

	assert.ErrorIs(t, err, giftcard.ErrTransactionNotFound)
}

func TestTransactionLog_EntriesSurviveCardDelete(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	tm := NewGORMTransactionManager(db)
	cards := NewCardRepository(db)
	log := NewTransactionLog(db)

	card := newActivatedCard(t, "GC-O")
	require.NoError(t, cards.Create(nil, card))
	applyAndStore(t, tm, cards, log, card, giftcard.TransactionTypeCredit, "9", giftcard.ApplyOptions{})

	require.NoError(t, cards.Delete(nil, card.Code()))

	var count int64
	require.NoError(t, db.Model(&TransactionModel{}).Where("card_code = ?", "GC-O").Count(&count).Error)
	assert.Equal(t, int64(1), count)
}
