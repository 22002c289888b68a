package customer_test

import (
	"strings"
	"testing"

	"github.com/jackyeh168/giftcard_pos/src/internal/domain/customer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCustomer_NormalisesContactFields(t *testing.T) {
	// Act
	c, err := customer.NewCustomer(customer.Profile{
		FirstName: " Jane ",
		LastName:  "Doe",
		Email:     "Jane.Doe@Example.com ",
		Phone:     "(555) 123-4567",
	})

	// Assert
	require.NoError(t, err)
	assert.False(t, c.ID().IsEmpty())
	assert.Equal(t, "Jane Doe", c.FullName())
	assert.Equal(t, "jane.doe@example.com", c.Email().String())
	assert.Equal(t, "5551234567", c.Phone().String())
	assert.Equal(t, "(555) 123-4567", c.Phone().Formatted())
}

func TestNewCustomer_MissingFirstName_ReturnsError(t *testing.T) {
	_, err := customer.NewCustomer(customer.Profile{FirstName: "   ", LastName: "Doe"})

	assert.ErrorIs(t, err, customer.ErrInvalidFirstName)
}

func TestNewCustomer_InvalidContact_ReturnsError(t *testing.T) {
	_, err := customer.NewCustomer(customer.Profile{FirstName: "Jane", Email: "not-an-email"})
	assert.ErrorIs(t, err, customer.ErrInvalidEmail)

	_, err = customer.NewCustomer(customer.Profile{FirstName: "Jane", Phone: "12345"})
	assert.ErrorIs(t, err, customer.ErrInvalidPhoneNumber)

	_, err = customer.NewCustomer(customer.Profile{FirstName: "Jane", Notes: strings.Repeat("n", 2001)})
	assert.ErrorIs(t, err, customer.ErrFieldTooLong)
}

func TestNewPhoneNumber_AcceptsCountryCode(t *testing.T) {
	p, err := customer.NewPhoneNumber("+1 555.123.4567")

	require.NoError(t, err)
	assert.Equal(t, "5551234567", p.String())
}

func TestCustomer_UpdateProfile_InvalidLeavesRecordUntouched(t *testing.T) {
	// Arrange
	c, err := customer.NewCustomer(customer.Profile{FirstName: "Jane", Email: "jane@example.com"})
	require.NoError(t, err)

	// Act
	err = c.UpdateProfile(customer.Profile{FirstName: "Janet", Email: "bad"})

	// Assert
	assert.ErrorIs(t, err, customer.ErrInvalidEmail)
	assert.Equal(t, "Jane", c.FirstName())
	assert.Equal(t, "jane@example.com", c.Email().String())
}
