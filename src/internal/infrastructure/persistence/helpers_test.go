package persistence

import (
	"testing"

	"github.com/jackyeh168/giftcard_pos/src/internal/domain/customer"
	"github.com/jackyeh168/giftcard_pos/src/internal/domain/giftcard"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// setupTestDB opens a fresh in-memory SQLite database with every table
// migrated. Each test gets its own database.
func setupTestDB(t *testing.T) (*gorm.DB, func()) {
	t.Helper()

	db, err := Open(Options{Driver: DriverSQLite, DSN: ":memory:"})
	require.NoError(t, err, "failed to open test database")
	require.NoError(t, Migrate(db), "failed to migrate test database")

	cleanup := func() {
		_ = Close(db)
	}
	return db, cleanup
}

func mustCode(t *testing.T, raw string) giftcard.CardCode {
	t.Helper()
	code, err := giftcard.NewCardCode(raw)
	require.NoError(t, err)
	return code
}

func mustAmount(t *testing.T, raw string) giftcard.Money {
	t.Helper()
	amount, err := giftcard.ParseAmount(raw)
	require.NoError(t, err)
	return amount
}

// newActivatedCard builds a zero-balance card linked to a fresh customer id.
func newActivatedCard(t *testing.T, raw string) *giftcard.Card {
	t.Helper()
	pin, err := giftcard.NewCardPIN("1234")
	require.NoError(t, err)
	card, err := giftcard.ActivateCard(mustCode(t, raw), pin, customer.NewCustomerID())
	require.NoError(t, err)
	return card
}
