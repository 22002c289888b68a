package ledger

import (
	"context"
	"fmt"

	"github.com/jackyeh168/giftcard_pos/src/internal/domain/giftcard"
	"github.com/jackyeh168/giftcard_pos/src/internal/domain/shared"
)

// GetCardUseCase reads one card.
type GetCardUseCase struct {
	cards giftcard.CardRepository
}

func NewGetCardUseCase(cards giftcard.CardRepository) *GetCardUseCase {
	return &GetCardUseCase{cards: cards}
}

func (uc *GetCardUseCase) Execute(ctx context.Context, cardCode string) (*CardResult, error) {
	code, err := giftcard.NewCardCode(cardCode)
	if err != nil {
		return nil, fmt.Errorf("failed to parse card code: %w", err)
	}
	card, err := uc.cards.FindByCode(shared.ReadOnly(ctx), code)
	if err != nil {
		return nil, fmt.Errorf("failed to find card: %w", err)
	}
	return newCardResult(card), nil
}

// ListCardsUseCase lists every card for the admin overview.
type ListCardsUseCase struct {
	cards giftcard.CardRepository
}

func NewListCardsUseCase(cards giftcard.CardRepository) *ListCardsUseCase {
	return &ListCardsUseCase{cards: cards}
}

func (uc *ListCardsUseCase) Execute(ctx context.Context) ([]*CardResult, error) {
	cards, err := uc.cards.List(shared.ReadOnly(ctx))
	if err != nil {
		return nil, fmt.Errorf("failed to list cards: %w", err)
	}
	results := make([]*CardResult, 0, len(cards))
	for _, card := range cards {
		results = append(results, newCardResult(card))
	}
	return results, nil
}
