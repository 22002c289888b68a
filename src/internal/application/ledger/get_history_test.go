package ledger

import (
	"context"
	"fmt"
	"testing"

	"github.com/jackyeh168/giftcard_pos/src/internal/domain/giftcard"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetHistoryUseCase_RoundTrip_NewestFirst(t *testing.T) {
	// Arrange
	f := newApplyFixture(t, "GC-1")
	amounts := []string{"1.00", "2.00", "3.00", "4.00"}
	for _, amount := range amounts {
		_, err := f.apply(t, "GC-1", "CREDIT", amount)
		require.NoError(t, err)
	}
	useCase := NewGetHistoryUseCase(f.cards, f.log)

	// Act
	history, err := useCase.Execute(context.Background(), GetHistoryQuery{CardCode: "GC-1", Limit: 10})
	require.NoError(t, err)
	entries, err := history.Collect()

	// Assert
	require.NoError(t, err)
	require.Len(t, entries, len(amounts))
	for i, entry := range entries {
		assert.Equal(t, amounts[len(amounts)-1-i], entry.Amount().String())
		if i > 0 {
			assert.True(t, entries[i-1].Timestamp().After(entry.Timestamp()), "timestamps must strictly descend")
		}
	}
}

func TestGetHistoryUseCase_LimitDefaultsAndCap(t *testing.T) {
	f := newApplyFixture(t, "GC-1")
	for i := 0; i < 12; i++ {
		_, err := f.apply(t, "GC-1", "CREDIT", fmt.Sprintf("%d", i+1))
		require.NoError(t, err)
	}
	useCase := NewGetHistoryUseCase(f.cards, f.log)

	tests := []struct {
		limit     int
		wantLimit int
		wantLen   int
	}{
		{limit: 0, wantLimit: DefaultHistoryLimit, wantLen: 10},
		{limit: -3, wantLimit: DefaultHistoryLimit, wantLen: 10},
		{limit: 5, wantLimit: 5, wantLen: 5},
		{limit: 1000, wantLimit: MaxHistoryLimit, wantLen: 12},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("limit=%d", tt.limit), func(t *testing.T) {
			history, err := useCase.Execute(context.Background(), GetHistoryQuery{CardCode: "GC-1", Limit: tt.limit})
			require.NoError(t, err)
			entries, err := history.Collect()
			require.NoError(t, err)

			assert.Equal(t, tt.wantLimit, history.Limit())
			assert.Len(t, entries, tt.wantLen)
		})
	}
}

func TestGetHistoryUseCase_IsLazyAndRestartable(t *testing.T) {
	f := newApplyFixture(t, "GC-1")
	useCase := NewGetHistoryUseCase(f.cards, f.log)

	history, err := useCase.Execute(context.Background(), GetHistoryQuery{CardCode: "GC-1"})
	require.NoError(t, err)

	first, err := history.Collect()
	require.NoError(t, err)
	assert.Empty(t, first)

	_, err = f.apply(t, "GC-1", "CREDIT", "7")
	require.NoError(t, err)

	second, err := history.Collect()
	require.NoError(t, err)
	assert.Len(t, second, 1)
}

func TestGetHistoryUseCase_CardNotFound(t *testing.T) {
	useCase := NewGetHistoryUseCase(NewMockCardRepository(), NewMockTransactionLog())

	history, err := useCase.Execute(context.Background(), GetHistoryQuery{CardCode: "nope"})

	assert.Nil(t, history)
	assert.ErrorIs(t, err, giftcard.ErrCardNotFound)
}
