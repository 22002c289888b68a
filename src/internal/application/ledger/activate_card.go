package ledger

import (
	"context"
	"fmt"

	"github.com/jackyeh168/giftcard_pos/src/internal/domain/customer"
	"github.com/jackyeh168/giftcard_pos/src/internal/domain/giftcard"
	"github.com/jackyeh168/giftcard_pos/src/internal/domain/shared"
)

// ===========================
// ActivateCard Use Case
// ===========================

// ActivateCardCommand activates a physical card. Exactly one of
// CustomerID (link an existing customer) or NewCustomer (create one in the
// same transaction) must be given.
type ActivateCardCommand struct {
	CardCode    string
	PIN         string
	CustomerID  string
	NewCustomer *customer.Profile
}

// ActivateCardResult is the activated card plus whether a customer was
// created for it.
type ActivateCardResult struct {
	Card            *CardResult
	CustomerCreated bool
}

// ActivateCardUseCase creates a card with a zero balance.
//
// Uniqueness of the card code is enforced by the primary key, not by a
// read-then-insert check, so two terminals activating the same code
// concurrently cannot both succeed.
type ActivateCardUseCase struct {
	cards     giftcard.CardRepository
	customers customer.CustomerRepository
	txManager shared.TransactionManager
	events    shared.EventPublisher
	retry     RetryPolicy
}

func NewActivateCardUseCase(
	cards giftcard.CardRepository,
	customers customer.CustomerRepository,
	txManager shared.TransactionManager,
	events shared.EventPublisher,
	retry RetryPolicy,
) *ActivateCardUseCase {
	return &ActivateCardUseCase{
		cards:     cards,
		customers: customers,
		txManager: txManager,
		events:    publisherOrNoop(events),
		retry:     retry,
	}
}

// Execute validates the command, then inside one transaction creates or
// checks the customer and inserts the card.
//
// Errors:
//   - ErrInvalidCardCode, ErrInvalidPin, ErrMissingCustomerData, customer
//     validation errors: before any write
//   - customer.ErrCustomerNotFound: CustomerID does not exist
//   - ErrAlreadyActivated: the code is taken; the existing card is untouched
func (uc *ActivateCardUseCase) Execute(ctx context.Context, cmd ActivateCardCommand) (*ActivateCardResult, error) {
	code, err := giftcard.NewCardCode(cmd.CardCode)
	if err != nil {
		return nil, fmt.Errorf("failed to parse card code: %w", err)
	}
	pin, err := giftcard.NewCardPIN(cmd.PIN)
	if err != nil {
		return nil, fmt.Errorf("failed to parse card pin: %w", err)
	}

	var (
		customerID  shared.CustomerID
		newCustomer *customer.Customer
	)
	switch {
	case cmd.NewCustomer != nil && cmd.CustomerID != "":
		return nil, giftcard.ErrMissingCustomerData.WithContext("reason", "give either an existing customer or a new one, not both")
	case cmd.NewCustomer != nil:
		newCustomer, err = customer.NewCustomer(*cmd.NewCustomer)
		if err != nil {
			return nil, fmt.Errorf("invalid customer data: %w", err)
		}
		customerID = newCustomer.ID()
	case cmd.CustomerID != "":
		customerID, err = customer.CustomerIDFromString(cmd.CustomerID)
		if err != nil {
			return nil, fmt.Errorf("failed to parse customer ID: %w", err)
		}
	default:
		return nil, giftcard.ErrMissingCustomerData.WithContext("reason", "a card must be linked to a customer")
	}

	var card *giftcard.Card
	err = uc.retry.Run(ctx, func() error {
		return uc.txManager.InTransaction(ctx, func(tx shared.TransactionContext) error {
			if newCustomer != nil {
				if err := uc.customers.Save(tx, newCustomer); err != nil {
					return fmt.Errorf("failed to save customer: %w", err)
				}
			} else if _, err := uc.customers.FindByID(tx, customerID); err != nil {
				return fmt.Errorf("failed to find customer: %w", err)
			}

			activated, err := giftcard.ActivateCard(code, pin, customerID)
			if err != nil {
				return err
			}
			if err := uc.cards.Create(tx, activated); err != nil {
				return fmt.Errorf("failed to create card: %w", err)
			}
			card = activated
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	publishCommitted(uc.events, card.PullEvents())

	return &ActivateCardResult{
		Card:            newCardResult(card),
		CustomerCreated: newCustomer != nil,
	}, nil
}
