package giftcard

import (
	"fmt"
	"time"

	"github.com/jackyeh168/giftcard_pos/src/internal/domain/shared"
)

// ===========================
// Card aggregate
// ===========================

// Card is a stored-value account. Its balance only changes through Apply
// (and Reconcile), which also produces the matching ledger entry, so the
// two can be committed together.
//
// Invariants:
//   - balance >= 0
//   - pin is 4 digits
//   - version increases by one on every balance change
//   - ledger timestamps are strictly increasing and after createdAt
type Card struct {
	code       CardCode
	pin        CardPIN
	balance    Money
	customerID shared.CustomerID // empty: unlinked

	createdAt         time.Time
	updatedAt         time.Time
	lastTransactionAt time.Time
	version           int

	events []shared.DomainEvent
}

// ActivateCard creates a new card with a zero balance linked to customerID.
func ActivateCard(code CardCode, pin CardPIN, customerID shared.CustomerID) (*Card, error) {
	if code.IsZero() {
		return nil, ErrInvalidCardCode.WithContext("reason", "card code cannot be empty")
	}
	if pin.String() == "" {
		return nil, ErrInvalidPin.WithContext("reason", "pin cannot be empty")
	}
	if customerID.IsEmpty() {
		return nil, ErrMissingCustomerData.WithContext("reason", "customer id cannot be empty")
	}

	now := clock()
	card := &Card{
		code:       code,
		pin:        pin,
		balance:    Zero(),
		customerID: customerID,
		createdAt:  now,
		updatedAt:  now,
		version:    1,
		events:     make([]shared.DomainEvent, 0),
	}

	card.addEvent(NewCardActivatedEvent(code, customerID, now))
	return card, nil
}

// ReconstructCard rebuilds a card loaded from storage, checking invariants
// so corrupted rows surface as errors instead of wrong balances.
func ReconstructCard(
	code CardCode,
	pin CardPIN,
	balance Money,
	customerID shared.CustomerID,
	createdAt time.Time,
	updatedAt time.Time,
	lastTransactionAt time.Time,
	version int,
) (*Card, error) {
	if code.IsZero() {
		return nil, ErrCorruptedCard.WithContext("reason", "empty card code")
	}
	if pin.String() == "" {
		return nil, ErrCorruptedCard.WithContext("card_code", code.String(), "reason", "missing pin")
	}
	if version < 1 {
		return nil, ErrCorruptedCard.WithContext("card_code", code.String(), "version", version)
	}

	return &Card{
		code:              code,
		pin:               pin,
		balance:           balance,
		customerID:        customerID,
		createdAt:         createdAt,
		updatedAt:         updatedAt,
		lastTransactionAt: lastTransactionAt,
		version:           version,
		events:            make([]shared.DomainEvent, 0),
	}, nil
}

// ===========================
// Queries
// ===========================

func (c *Card) Code() CardCode { return c.code }
func (c *Card) PIN() CardPIN { return c.pin }
func (c *Card) Balance() Money { return c.balance }
func (c *Card) CustomerID() shared.CustomerID { return c.customerID }
func (c *Card) IsLinked() bool { return !c.customerID.IsEmpty() }
func (c *Card) CreatedAt() time.Time { return c.createdAt }
func (c *Card) UpdatedAt() time.Time { return c.updatedAt }
func (c *Card) LastTransactionAt() time.Time { return c.lastTransactionAt }
func (c *Card) Version() int { return c.version }

// ===========================
// Commands
// ===========================

// ApplyOptions carries the optional metadata of a balance change.
type ApplyOptions struct {
	Note      string
	RequestID string
	StaffID   shared.StaffID
}

// Apply credits or debits the card and returns the ledger entry that
// records it. On error the card is unchanged.
func (c *Card) Apply(txType TransactionType, amount Money, opts ApplyOptions) (*Transaction, error) {
	if !txType.IsValid() {
		return nil, ErrInvalidTransactionType.WithContext("input", string(txType))
	}
	if amount.IsZero() {
		return nil, ErrInvalidAmount.WithContext("reason", "must be greater than zero")
	}
	note, err := validateNote(opts.Note)
	if err != nil {
		return nil, err
	}

	var newBalance Money
	switch txType {
	case TransactionTypeCredit:
		newBalance = c.balance.Add(amount)
	case TransactionTypeSpend:
		newBalance, err = c.balance.Subtract(amount)
		if err != nil {
			return nil, ErrInsufficientFunds.WithContext(
				"card_code", c.code.String(),
				"requested", amount.String(),
				"available", c.balance.String(),
			)
		}
	}

	timestamp := c.nextTimestamp()

	c.balance = newBalance
	c.version++
	c.updatedAt = timestamp
	c.lastTransactionAt = timestamp
	c.assertInvariants()

	entry := &Transaction{
		id:           NewTransactionID(),
		cardCode:     c.code,
		txType:       txType,
		amount:       amount,
		balanceAfter: newBalance,
		note:         note,
		timestamp:    timestamp,
		sequence:     c.version,
		requestID:    opts.RequestID,
		staffID:      opts.StaffID,
	}

	c.addEvent(NewBalanceChangedEvent(entry))
	return entry, nil
}

// ResetBalance overwrites the cached balance with a value recomputed from
// the ledger. Only reconciliation calls this.
func (c *Card) ResetBalance(replayed Money, reason string) {
	previous := c.balance
	c.balance = replayed
	c.version++
	c.updatedAt = clock()
	c.assertInvariants()

	c.addEvent(NewBalanceReconciledEvent(c.code, previous, replayed, reason, c.updatedAt))
}

// nextTimestamp keeps ledger timestamps strictly increasing per card and
// strictly after the card's activation, even when the wall clock stalls or
// lags the clock of the instance that activated the card. History and
// reconciliation only read entries at or after createdAt.
func (c *Card) nextTimestamp() time.Time {
	floor := c.createdAt
	if c.lastTransactionAt.After(floor) {
		floor = c.lastTransactionAt
	}
	now := clock()
	if !now.After(floor) {
		now = floor.Add(time.Microsecond)
	}
	return now
}

// ===========================
// Events
// ===========================

func (c *Card) addEvent(event shared.DomainEvent) {
	c.events = append(c.events, event)
}

// PullEvents returns and clears the pending events.
func (c *Card) PullEvents() []shared.DomainEvent {
	events := c.events
	c.events = make([]shared.DomainEvent, 0)
	return events
}

func (c *Card) assertInvariants() {
	if c.balance.Decimal().IsNegative() {
		panic(fmt.Sprintf("INVARIANT VIOLATION: negative balance %s for card %s", c.balance, c.code))
	}
}

// clock is UTC truncated to microseconds, the finest precision every
// supported database keeps.
var clock = func() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}
