package customer

import (
	"strings"
	"time"
)

// Field limits enforced before anything is persisted.
const (
	maxNameLength    = 100
	maxAddressLength = 200
	maxNotesLength   = 2000
)

// Profile is the editable part of a customer record. Only FirstName is
// required; empty Email/Phone mean "not given".
type Profile struct {
	FirstName       string
	LastName        string
	Email           string
	Phone           string
	Address         string
	City            string
	State           string
	Zip             string
	Notes           string
	NewsletterOptIn bool
}

// Customer is a gift card holder.
type Customer struct {
	id              CustomerID
	firstName       string
	lastName        string
	email           Email
	phone           PhoneNumber
	address         string
	city            string
	state           string
	zip             string
	notes           string
	newsletterOptIn bool
	createdAt       time.Time
	updatedAt       time.Time
}

// NewCustomer validates p and creates a customer with a fresh id.
func NewCustomer(p Profile) (*Customer, error) {
	c := &Customer{id: NewCustomerID()}
	if err := c.apply(p); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	c.createdAt = now
	c.updatedAt = now
	return c, nil
}

// ReconstructCustomer rebuilds a stored customer.
func ReconstructCustomer(id CustomerID, p Profile, createdAt, updatedAt time.Time) (*Customer, error) {
	if id.IsEmpty() {
		return nil, ErrInvalidCustomerID.WithContext("reason", "empty id in database")
	}
	c := &Customer{id: id, createdAt: createdAt, updatedAt: updatedAt}
	if err := c.apply(p); err != nil {
		return nil, err
	}
	return c, nil
}

// UpdateProfile replaces every editable field.
func (c *Customer) UpdateProfile(p Profile) error {
	next := *c
	if err := next.apply(p); err != nil {
		return err
	}
	next.updatedAt = time.Now().UTC()
	*c = next
	return nil
}

func (c *Customer) apply(p Profile) error {
	first := strings.TrimSpace(p.FirstName)
	if first == "" {
		return ErrInvalidFirstName
	}

	fields := map[string]struct {
		value string
		max   int
	}{
		"firstName": {first, maxNameLength},
		"lastName":  {p.LastName, maxNameLength},
		"address":   {p.Address, maxAddressLength},
		"city":      {p.City, maxNameLength},
		"state":     {p.State, maxNameLength},
		"zip":       {p.Zip, maxNameLength},
		"notes":     {p.Notes, maxNotesLength},
	}
	for name, f := range fields {
		if len([]rune(strings.TrimSpace(f.value))) > f.max {
			return ErrFieldTooLong.WithContext("field", name, "max", f.max)
		}
	}

	var email Email
	if strings.TrimSpace(p.Email) != "" {
		e, err := NewEmail(p.Email)
		if err != nil {
			return err
		}
		email = e
	}

	var phone PhoneNumber
	if strings.TrimSpace(p.Phone) != "" {
		ph, err := NewPhoneNumber(p.Phone)
		if err != nil {
			return err
		}
		phone = ph
	}

	c.firstName = first
	c.lastName = strings.TrimSpace(p.LastName)
	c.email = email
	c.phone = phone
	c.address = strings.TrimSpace(p.Address)
	c.city = strings.TrimSpace(p.City)
	c.state = strings.TrimSpace(p.State)
	c.zip = strings.TrimSpace(p.Zip)
	c.notes = strings.TrimSpace(p.Notes)
	c.newsletterOptIn = p.NewsletterOptIn
	return nil
}

func (c *Customer) ID() CustomerID { return c.id }
func (c *Customer) FirstName() string { return c.firstName }
func (c *Customer) LastName() string { return c.lastName }
func (c *Customer) Email() Email { return c.email }
func (c *Customer) Phone() PhoneNumber { return c.phone }
func (c *Customer) Notes() string { return c.notes }
func (c *Customer) NewsletterOptIn() bool { return c.newsletterOptIn }
func (c *Customer) CreatedAt() time.Time { return c.createdAt }
func (c *Customer) UpdatedAt() time.Time { return c.updatedAt }

// FullName joins first and last name.
func (c *Customer) FullName() string {
	return strings.TrimSpace(c.firstName + " " + c.lastName)
}

// Profile returns the editable fields.
func (c *Customer) Profile() Profile {
	return Profile{
		FirstName:       c.firstName,
		LastName:        c.lastName,
		Email:           c.email.String(),
		Phone:           c.phone.String(),
		Address:         c.address,
		City:            c.city,
		State:           c.state,
		Zip:             c.zip,
		Notes:           c.notes,
		NewsletterOptIn: c.newsletterOptIn,
	}
}
