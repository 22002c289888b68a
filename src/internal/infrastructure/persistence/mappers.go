package persistence

import (
	"time"

	"github.com/jackyeh168/giftcard_pos/src/internal/domain/customer"
	"github.com/jackyeh168/giftcard_pos/src/internal/domain/giftcard"
	"github.com/jackyeh168/giftcard_pos/src/internal/domain/shared"
	"github.com/jackyeh168/giftcard_pos/src/internal/domain/staff"
)

// ===========================
// Card mapping
// ===========================

func cardToModel(card *giftcard.Card) *CardModel {
	return &CardModel{
		Code:              card.Code().String(),
		Pin:               card.PIN().String(),
		BalanceCents:      card.Balance().Cents(),
		CustomerID:        optionalEntityID(card.CustomerID()),
		LastTransactionAt: optionalTime(card.LastTransactionAt()),
		Version:           card.Version(),
		CreatedAt:         card.CreatedAt(),
		UpdatedAt:         card.UpdatedAt(),
	}
}

func (m *CardModel) toDomain() (*giftcard.Card, error) {
	code, err := giftcard.NewCardCode(m.Code)
	if err != nil {
		return nil, giftcard.ErrCorruptedCard.WithContext("card_code", m.Code, "reason", err.Error())
	}
	pin, err := giftcard.NewCardPIN(m.Pin)
	if err != nil {
		return nil, giftcard.ErrCorruptedCard.WithContext("card_code", m.Code, "reason", "invalid pin")
	}
	balance, err := giftcard.MoneyFromCents(m.BalanceCents)
	if err != nil {
		return nil, giftcard.ErrCorruptedCard.WithContext("card_code", m.Code, "balance_cents", m.BalanceCents)
	}

	var customerID shared.CustomerID
	if m.CustomerID != nil && *m.CustomerID != "" {
		customerID, err = customer.CustomerIDFromString(*m.CustomerID)
		if err != nil {
			return nil, giftcard.ErrCorruptedCard.WithContext("card_code", m.Code, "customer_id", *m.CustomerID)
		}
	}

	return giftcard.ReconstructCard(
		code,
		pin,
		balance,
		customerID,
		m.CreatedAt.UTC(),
		m.UpdatedAt.UTC(),
		derefTime(m.LastTransactionAt),
		m.Version,
	)
}

// ===========================
// Transaction mapping
// ===========================

func transactionToModel(entry *giftcard.Transaction) *TransactionModel {
	return &TransactionModel{
		ID:                entry.ID().String(),
		CardCode:          entry.CardCode().String(),
		Type:              entry.Type().String(),
		AmountCents:       entry.Amount().Cents(),
		BalanceAfterCents: entry.BalanceAfter().Cents(),
		Note:              entry.Note(),
		OccurredAt:        entry.Timestamp(),
		Sequence:          entry.Sequence(),
		RequestID:         optionalID(entry.RequestID()),
		StaffID:           optionalEntityID(entry.StaffID()),
		CreatedAt:         time.Now().UTC(),
	}
}

func (m *TransactionModel) toDomain() (*giftcard.Transaction, error) {
	id, err := giftcard.TransactionIDFromString(m.ID)
	if err != nil {
		return nil, err
	}
	code, err := giftcard.NewCardCode(m.CardCode)
	if err != nil {
		return nil, err
	}
	txType, err := giftcard.ParseTransactionType(m.Type)
	if err != nil {
		return nil, err
	}
	amount, err := giftcard.MoneyFromCents(m.AmountCents)
	if err != nil {
		return nil, err
	}
	balanceAfter, err := giftcard.MoneyFromCents(m.BalanceAfterCents)
	if err != nil {
		return nil, err
	}

	var staffID shared.StaffID
	if m.StaffID != nil && *m.StaffID != "" {
		staffID, err = staff.StaffIDFromString(*m.StaffID)
		if err != nil {
			return nil, err
		}
	}

	requestID := ""
	if m.RequestID != nil {
		requestID = *m.RequestID
	}

	return giftcard.ReconstructTransaction(
		id,
		code,
		txType,
		amount,
		balanceAfter,
		m.Note,
		m.OccurredAt.UTC(),
		m.Sequence,
		requestID,
		staffID,
	)
}

// ===========================
// Customer mapping
// ===========================

func customerToModel(c *customer.Customer) *CustomerModel {
	p := c.Profile()
	return &CustomerModel{
		ID:              c.ID().String(),
		FirstName:       p.FirstName,
		LastName:        p.LastName,
		Email:           optionalID(c.Email().String()),
		Phone:           optionalID(c.Phone().String()),
		Address:         p.Address,
		City:            p.City,
		State:           p.State,
		Zip:             p.Zip,
		Notes:           p.Notes,
		NewsletterOptIn: p.NewsletterOptIn,
		CreatedAt:       c.CreatedAt(),
		UpdatedAt:       c.UpdatedAt(),
	}
}

func (m *CustomerModel) toDomain() (*customer.Customer, error) {
	id, err := customer.CustomerIDFromString(m.ID)
	if err != nil {
		return nil, err
	}
	profile := customer.Profile{
		FirstName:       m.FirstName,
		LastName:        m.LastName,
		Email:           derefString(m.Email),
		Phone:           derefString(m.Phone),
		Address:         m.Address,
		City:            m.City,
		State:           m.State,
		Zip:             m.Zip,
		Notes:           m.Notes,
		NewsletterOptIn: m.NewsletterOptIn,
	}
	return customer.ReconstructCustomer(id, profile, m.CreatedAt.UTC(), m.UpdatedAt.UTC())
}

// ===========================
// Staff mapping
// ===========================

func staffToModel(s *staff.Staff) *StaffModel {
	return &StaffModel{
		ID:        s.ID().String(),
		Name:      s.Name(),
		PinHash:   s.PinHash(),
		Role:      s.Role().String(),
		CreatedAt: s.CreatedAt(),
		UpdatedAt: s.UpdatedAt(),
	}
}

func (m *StaffModel) toDomain() (*staff.Staff, error) {
	id, err := staff.StaffIDFromString(m.ID)
	if err != nil {
		return nil, err
	}
	role, err := staff.ParseRole(m.Role)
	if err != nil {
		return nil, err
	}
	return staff.ReconstructStaff(id, m.Name, m.PinHash, role, m.CreatedAt.UTC(), m.UpdatedAt.UTC())
}

// ===========================
// Nullable column helpers
// ===========================

func optionalID(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func optionalEntityID[T any](id shared.EntityID[T]) *string {
	if id.IsEmpty() {
		return nil
	}
	return optionalID(id.String())
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func optionalTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

func derefTime(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return t.UTC()
}
