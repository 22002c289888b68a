package customer

import "github.com/jackyeh168/giftcard_pos/src/internal/domain/shared"

// SearchCriteria matches customers by exact email or exact phone. A
// customer matching both is returned once.
type SearchCriteria struct {
	Email Email
	Phone PhoneNumber
}

// IsEmpty reports whether no criterion is set.
func (c SearchCriteria) IsEmpty() bool {
	return c.Email.IsZero() && c.Phone.IsZero()
}

// CustomerRepository persists customers.
type CustomerRepository interface {
	Save(tx shared.TransactionContext, c *Customer) error

	// FindByID returns the customer or ErrCustomerNotFound.
	FindByID(tx shared.TransactionContext, id CustomerID) (*Customer, error)

	Search(tx shared.TransactionContext, criteria SearchCriteria) ([]*Customer, error)

	// Update returns ErrCustomerNotFound when the row is missing.
	Update(tx shared.TransactionContext, c *Customer) error

	// Delete returns ErrCustomerNotFound when the row is missing. It never
	// touches cards; callers unlink them first.
	Delete(tx shared.TransactionContext, id CustomerID) error

	// List returns all customers ordered by last name, first name.
	List(tx shared.TransactionContext) ([]*Customer, error)
}
