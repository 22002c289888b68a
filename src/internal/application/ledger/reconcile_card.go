package ledger

import (
	"context"
	"fmt"

	"github.com/jackyeh168/giftcard_pos/src/internal/domain/giftcard"
	"github.com/jackyeh168/giftcard_pos/src/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ReconcileCardCommand checks a card's cached balance against its log.
// With Repair set, a mismatching balance is overwritten with the replayed
// value. The log itself is never changed.
type ReconcileCardCommand struct {
	CardCode string
	Repair   bool
}

// ReconcileCardResult reports what the replay found.
type ReconcileCardResult struct {
	CardCode   string
	Entries    int
	Cached     decimal.Decimal
	Replayed   decimal.Decimal
	Mismatches []giftcard.Mismatch
	Consistent bool
	Repaired   bool
}

// ReconcileCardUseCase replays a card's ledger from zero.
type ReconcileCardUseCase struct {
	cards     giftcard.CardRepository
	log       giftcard.TransactionLog
	txManager shared.TransactionManager
	events    shared.EventPublisher
	replay    *giftcard.LedgerReplayService
	retry     RetryPolicy
}

func NewReconcileCardUseCase(
	cards giftcard.CardRepository,
	log giftcard.TransactionLog,
	txManager shared.TransactionManager,
	events shared.EventPublisher,
	retry RetryPolicy,
) *ReconcileCardUseCase {
	return &ReconcileCardUseCase{
		cards:     cards,
		log:       log,
		txManager: txManager,
		events:    publisherOrNoop(events),
		replay:    giftcard.NewLedgerReplayService(),
		retry:     retry,
	}
}

// Execute replays inside one transaction so the card and the entries are
// read from the same snapshot, and a repair is committed under the same
// version check as any balance change.
//
// A repair is refused (the result stays unrepaired) when the replay dips
// below zero: that history needs a human, not an overwrite.
func (uc *ReconcileCardUseCase) Execute(ctx context.Context, cmd ReconcileCardCommand) (*ReconcileCardResult, error) {
	code, err := giftcard.NewCardCode(cmd.CardCode)
	if err != nil {
		return nil, fmt.Errorf("failed to parse card code: %w", err)
	}

	var (
		result *ReconcileCardResult
		events []shared.DomainEvent
	)
	err = uc.retry.Run(ctx, func() error {
		result, events = nil, nil
		return uc.txManager.InTransaction(ctx, func(tx shared.TransactionContext) error {
			card, err := uc.cards.FindByCode(tx, code)
			if err != nil {
				return fmt.Errorf("failed to find card: %w", err)
			}

			entries := make([]*giftcard.Transaction, 0)
			for entry, err := range uc.log.Query(tx, code, giftcard.HistoryQuery{Since: card.CreatedAt(), Ascending: true}) {
				if err != nil {
					return fmt.Errorf("failed to read ledger: %w", err)
				}
				entries = append(entries, entry)
			}

			replayed := uc.replay.Replay(entries, card.Balance())
			result = &ReconcileCardResult{
				CardCode:   code.String(),
				Entries:    replayed.Entries,
				Cached:     replayed.Cached,
				Replayed:   replayed.Replayed,
				Mismatches: replayed.Mismatches,
				Consistent: replayed.Consistent(),
			}

			if !cmd.Repair || replayed.Replayed.Equal(replayed.Cached) || replayed.WentNegative {
				return nil
			}

			corrected, err := giftcard.NewMoney(replayed.Replayed)
			if err != nil {
				return err
			}
			card.ResetBalance(corrected, "reconciled from ledger")
			if err := uc.cards.Update(tx, card); err != nil {
				return fmt.Errorf("failed to update card: %w", err)
			}
			result.Repaired = true
			events = card.PullEvents()
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	publishCommitted(uc.events, events)
	return result, nil
}
