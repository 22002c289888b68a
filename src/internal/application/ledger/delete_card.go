package ledger

import (
	"context"
	"fmt"

	"github.com/jackyeh168/giftcard_pos/src/internal/domain/giftcard"
	"github.com/jackyeh168/giftcard_pos/src/internal/domain/shared"
)

// DeleteCardUseCase is the administrative override that removes a card.
// Its ledger entries stay in the log as orphaned history; a later
// activation of the same code starts a fresh history.
type DeleteCardUseCase struct {
	cards     giftcard.CardRepository
	txManager shared.TransactionManager
	retry     RetryPolicy
}

func NewDeleteCardUseCase(cards giftcard.CardRepository, txManager shared.TransactionManager, retry RetryPolicy) *DeleteCardUseCase {
	return &DeleteCardUseCase{cards: cards, txManager: txManager, retry: retry}
}

func (uc *DeleteCardUseCase) Execute(ctx context.Context, cardCode string) error {
	code, err := giftcard.NewCardCode(cardCode)
	if err != nil {
		return fmt.Errorf("failed to parse card code: %w", err)
	}

	return uc.retry.Run(ctx, func() error {
		return uc.txManager.InTransaction(ctx, func(tx shared.TransactionContext) error {
			if err := uc.cards.Delete(tx, code); err != nil {
				return fmt.Errorf("failed to delete card: %w", err)
			}
			return nil
		})
	})
}
