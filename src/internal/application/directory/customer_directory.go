package directory

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackyeh168/giftcard_pos/src/internal/domain/customer"
	"github.com/jackyeh168/giftcard_pos/src/internal/domain/giftcard"
	"github.com/jackyeh168/giftcard_pos/src/internal/domain/shared"
)

// ===========================
// Customer Directory
// ===========================

// CustomerDirectory manages card holders.
type CustomerDirectory struct {
	customers customer.CustomerRepository
	cards     giftcard.CardRepository
	txManager shared.TransactionManager
}

func NewCustomerDirectory(
	customers customer.CustomerRepository,
	cards giftcard.CardRepository,
	txManager shared.TransactionManager,
) *CustomerDirectory {
	return &CustomerDirectory{customers: customers, cards: cards, txManager: txManager}
}

// Find returns one customer.
func (d *CustomerDirectory) Find(ctx context.Context, id string) (*customer.Customer, error) {
	customerID, err := customer.CustomerIDFromString(id)
	if err != nil {
		return nil, err
	}
	return d.customers.FindByID(shared.ReadOnly(ctx), customerID)
}

// Search matches by exact email and/or exact phone number. Both inputs
// are normalised the same way they are on save. A customer matching both
// is returned once.
func (d *CustomerDirectory) Search(ctx context.Context, email, phone string) ([]*customer.Customer, error) {
	var criteria customer.SearchCriteria
	var err error
	if email != "" {
		if criteria.Email, err = customer.NewEmail(email); err != nil {
			return nil, err
		}
	}
	if phone != "" {
		if criteria.Phone, err = customer.NewPhoneNumber(phone); err != nil {
			return nil, err
		}
	}
	if criteria.IsEmpty() {
		return nil, customer.ErrEmptySearch
	}
	return d.customers.Search(shared.ReadOnly(ctx), criteria)
}

// SearchTerm interprets a single search box entry: anything containing
// "@" is an email, everything else a phone number.
func (d *CustomerDirectory) SearchTerm(ctx context.Context, term string) ([]*customer.Customer, error) {
	if strings.Contains(term, "@") {
		return d.Search(ctx, term, "")
	}
	return d.Search(ctx, "", term)
}

// Create validates p and stores a new customer.
func (d *CustomerDirectory) Create(ctx context.Context, p customer.Profile) (*customer.Customer, error) {
	c, err := customer.NewCustomer(p)
	if err != nil {
		return nil, err
	}
	err = d.txManager.InTransaction(ctx, func(tx shared.TransactionContext) error {
		if err := d.customers.Save(tx, c); err != nil {
			return fmt.Errorf("failed to save customer: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}

// Update replaces the profile of an existing customer. Nothing is written
// when p is invalid.
func (d *CustomerDirectory) Update(ctx context.Context, id string, p customer.Profile) (*customer.Customer, error) {
	customerID, err := customer.CustomerIDFromString(id)
	if err != nil {
		return nil, err
	}

	var updated *customer.Customer
	err = d.txManager.InTransaction(ctx, func(tx shared.TransactionContext) error {
		c, err := d.customers.FindByID(tx, customerID)
		if err != nil {
			return err
		}
		if err := c.UpdateProfile(p); err != nil {
			return err
		}
		if err := d.customers.Update(tx, c); err != nil {
			return fmt.Errorf("failed to update customer: %w", err)
		}
		updated = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes a customer and unlinks their cards in the same
// transaction. Cards and balances are kept. Returns the number of cards
// that were unlinked.
func (d *CustomerDirectory) Delete(ctx context.Context, id string) (int64, error) {
	customerID, err := customer.CustomerIDFromString(id)
	if err != nil {
		return 0, err
	}

	var unlinked int64
	err = d.txManager.InTransaction(ctx, func(tx shared.TransactionContext) error {
		if _, err := d.customers.FindByID(tx, customerID); err != nil {
			return err
		}
		n, err := d.cards.UnlinkCustomer(tx, customerID)
		if err != nil {
			return fmt.Errorf("failed to unlink cards: %w", err)
		}
		if err := d.customers.Delete(tx, customerID); err != nil {
			return fmt.Errorf("failed to delete customer: %w", err)
		}
		unlinked = n
		return nil
	})
	if err != nil {
		return 0, err
	}
	return unlinked, nil
}

// List returns every customer ordered by name.
func (d *CustomerDirectory) List(ctx context.Context) ([]*customer.Customer, error) {
	return d.customers.List(shared.ReadOnly(ctx))
}
