package ledger

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackyeh168/giftcard_pos/src/internal/domain/giftcard"
	"github.com/jackyeh168/giftcard_pos/src/internal/domain/shared"
	"github.com/jackyeh168/giftcard_pos/src/internal/domain/staff"
)

// ===========================
// ApplyTransaction Use Case
// ===========================

// ApplyTransactionCommand credits or spends an amount on a card.
//
// Amount is the decimal string typed at the terminal ("12.50").
// RequestID is an optional client generated idempotency key: resubmitting
// a committed request returns the recorded outcome instead of applying
// it twice.
type ApplyTransactionCommand struct {
	CardCode  string
	Type      string
	Amount    string
	Note      string
	RequestID string
	StaffID   string
}

// ApplyTransactionResult carries the committed entry.
type ApplyTransactionResult struct {
	NewBalance  giftcard.Money
	Transaction TransactionResult
	// Replayed is true when RequestID matched an earlier commit and
	// nothing new was written.
	Replayed bool
}

// ApplyTransactionUseCase is the only path that changes a balance.
//
// The card update and the ledger append commit together. The card row is
// written with a compare-and-swap on its version, so of two terminals
// racing on the same card one loses, and its whole transaction is re-run
// against the fresh balance.
type ApplyTransactionUseCase struct {
	cards     giftcard.CardRepository
	log       giftcard.TransactionLog
	txManager shared.TransactionManager
	events    shared.EventPublisher
	retry     RetryPolicy
}

func NewApplyTransactionUseCase(
	cards giftcard.CardRepository,
	log giftcard.TransactionLog,
	txManager shared.TransactionManager,
	events shared.EventPublisher,
	retry RetryPolicy,
) *ApplyTransactionUseCase {
	return &ApplyTransactionUseCase{
		cards:     cards,
		log:       log,
		txManager: txManager,
		events:    publisherOrNoop(events),
		retry:     retry,
	}
}

// Execute applies the command.
//
// Errors:
//   - ErrInvalidCardCode, ErrInvalidTransactionType, ErrInvalidAmount,
//     ErrInvalidNote, staff.ErrInvalidStaffID: before any read
//   - ErrCardNotFound
//   - ErrInsufficientFunds: nothing is written
//   - shared.ErrConflictRetryExhausted, shared.ErrStoreUnavailable: the
//     outcome is "not applied"; re-read the card before retrying
func (uc *ApplyTransactionUseCase) Execute(ctx context.Context, cmd ApplyTransactionCommand) (*ApplyTransactionResult, error) {
	code, err := giftcard.NewCardCode(cmd.CardCode)
	if err != nil {
		return nil, fmt.Errorf("failed to parse card code: %w", err)
	}
	txType, err := giftcard.ParseTransactionType(cmd.Type)
	if err != nil {
		return nil, err
	}
	amount, err := giftcard.ParseAmount(cmd.Amount)
	if err != nil {
		return nil, err
	}

	opts := giftcard.ApplyOptions{Note: cmd.Note, RequestID: cmd.RequestID}
	if cmd.StaffID != "" {
		opts.StaffID, err = staff.StaffIDFromString(cmd.StaffID)
		if err != nil {
			return nil, fmt.Errorf("failed to parse staff ID: %w", err)
		}
	}

	var (
		result *ApplyTransactionResult
		events []shared.DomainEvent
	)
	err = uc.retry.Run(ctx, func() error {
		result, events = nil, nil
		return uc.txManager.InTransaction(ctx, func(tx shared.TransactionContext) error {
			card, err := uc.cards.FindByCode(tx, code)
			if err != nil {
				return fmt.Errorf("failed to find card: %w", err)
			}

			if recorded, err := uc.findRecorded(tx, code, cmd.RequestID); err != nil {
				return err
			} else if recorded != nil {
				result = &ApplyTransactionResult{
					NewBalance:  recorded.BalanceAfter(),
					Transaction: NewTransactionResult(recorded),
					Replayed:    true,
				}
				return nil
			}

			entry, err := card.Apply(txType, amount, opts)
			if err != nil {
				return err
			}
			if err := uc.cards.Update(tx, card); err != nil {
				return fmt.Errorf("failed to update card: %w", err)
			}
			if err := uc.log.Append(tx, entry); err != nil {
				if errors.Is(err, giftcard.ErrDuplicateRequest) {
					// Same request committed by a concurrent call; the
					// retry will find it.
					return shared.ErrConcurrentModification.WithContext("request_id", cmd.RequestID)
				}
				return fmt.Errorf("failed to append transaction: %w", err)
			}

			result = &ApplyTransactionResult{
				NewBalance:  card.Balance(),
				Transaction: NewTransactionResult(entry),
			}
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

// findRecorded returns the entry already committed under requestID, or
// nil when there is none.
func (uc *ApplyTransactionUseCase) findRecorded(tx shared.TransactionContext, code giftcard.CardCode, requestID string) (*giftcard.Transaction, error) {
	if requestID == "" {
		return nil, nil
	}
	recorded, err := uc.log.FindByRequestID(tx, code, requestID)
	if errors.Is(err, giftcard.ErrTransactionNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up request: %w", err)
	}
	return recorded, nil
}
