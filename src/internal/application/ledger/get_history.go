package ledger

import (
	"context"
	"fmt"

	"github.com/jackyeh168/giftcard_pos/src/internal/domain/giftcard"
	"github.com/jackyeh168/giftcard_pos/src/internal/domain/shared"
)

const (
	DefaultHistoryLimit = 10
	MaxHistoryLimit     = 100
)

// GetHistoryQuery reads the most recent entries of a card.
type GetHistoryQuery struct {
	CardCode string
	Limit    int
}

// GetHistoryUseCase returns a lazy view over a card's ledger.
type GetHistoryUseCase struct {
	cards giftcard.CardRepository
	log   giftcard.TransactionLog
}

func NewGetHistoryUseCase(cards giftcard.CardRepository, log giftcard.TransactionLog) *GetHistoryUseCase {
	return &GetHistoryUseCase{cards: cards, log: log}
}

// Execute checks the card exists and returns its history, newest first.
// Nothing is read from the log until the result is iterated, and every
// iteration reads again. Entries recorded before the card's current
// activation (left over from a deleted card with the same code) are not
// part of it.
//
// Limit <= 0 means DefaultHistoryLimit; larger than MaxHistoryLimit is
// capped. Reads, including later iterations, are bound to ctx.
func (uc *GetHistoryUseCase) Execute(ctx context.Context, query GetHistoryQuery) (*giftcard.History, error) {
	code, err := giftcard.NewCardCode(query.CardCode)
	if err != nil {
		return nil, fmt.Errorf("failed to parse card code: %w", err)
	}

	card, err := uc.cards.FindByCode(shared.ReadOnly(ctx), code)
	if err != nil {
		return nil, fmt.Errorf("failed to find card: %w", err)
	}

	limit := query.Limit
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	if limit > MaxHistoryLimit {
		limit = MaxHistoryLimit
	}

	q := giftcard.HistoryQuery{Limit: limit, Since: card.CreatedAt()}
	return giftcard.NewHistory(code, limit, func() giftcard.TransactionSeq {
		return uc.log.Query(shared.ReadOnly(ctx), code, q)
	}), nil
}
