package httpapi

import (
	"time"

	"github.com/jackyeh168/giftcard_pos/src/internal/application/auth"
	"github.com/jackyeh168/giftcard_pos/src/internal/application/ledger"
	"github.com/jackyeh168/giftcard_pos/src/internal/domain/customer"
	"github.com/jackyeh168/giftcard_pos/src/internal/domain/giftcard"
	"github.com/jackyeh168/giftcard_pos/src/internal/domain/staff"
)

// ===========================
// Requests
// ===========================

type loginRequest struct {
	PIN string `json:"pin"`
}

type activateRequest struct {
	PIN        string           `json:"pin"`
	CustomerID string           `json:"customer_id,omitempty"`
	Customer   *customerRequest `json:"customer,omitempty"`
}

type transactionRequest struct {
	Type      string      `json:"type"`
	Amount    amountField `json:"amount"`
	Note      string      `json:"note,omitempty"`
	RequestID string      `json:"request_id,omitempty"`
}

type revealPinRequest struct {
	StaffPIN string `json:"staff_pin"`
}

type reconcileRequest struct {
	Repair bool `json:"repair"`
}

type customerRequest struct {
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name,omitempty"`
	Email           string `json:"email,omitempty"`
	Phone           string `json:"phone,omitempty"`
	Address         string `json:"address,omitempty"`
	City            string `json:"city,omitempty"`
	State           string `json:"state,omitempty"`
	Zip             string `json:"zip,omitempty"`
	Notes           string `json:"notes,omitempty"`
	NewsletterOptIn bool   `json:"newsletter_opt_in"`
}

func (c customerRequest) profile() customer.Profile {
	return customer.Profile{
		FirstName:       c.FirstName,
		LastName:        c.LastName,
		Email:           c.Email,
		Phone:           c.Phone,
		Address:         c.Address,
		City:            c.City,
		State:           c.State,
		Zip:             c.Zip,
		Notes:           c.Notes,
		NewsletterOptIn: c.NewsletterOptIn,
	}
}

type staffRequest struct {
	Name string `json:"name"`
	PIN  string `json:"pin,omitempty"`
	Role string `json:"role"`
}

// ===========================
// Responses (money is rendered as a string with two decimal places)
// ===========================

type sessionResponse struct {
	Token     string    `json:"token,omitempty"`
	StaffID   string    `json:"staff_id"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	ExpiresAt time.Time `json:"expires_at"`
}

func newSessionResponse(s *auth.Session, includeToken bool) sessionResponse {
	resp := sessionResponse{
		StaffID:   s.StaffID,
		Name:      s.Name,
		Role:      s.Role.String(),
		ExpiresAt: s.ExpiresAt,
	}
	if includeToken {
		resp.Token = s.Token
	}
	return resp
}

type cardResponse struct {
	Code              string     `json:"code"`
	Balance           string     `json:"balance"`
	CustomerID        string     `json:"customer_id,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
	LastTransactionAt *time.Time `json:"last_transaction_at,omitempty"`
}

func newCardResponse(c *ledger.CardResult) cardResponse {
	resp := cardResponse{
		Code:       c.Code,
		Balance:    c.Balance.String(),
		CustomerID: c.CustomerID,
		CreatedAt:  c.CreatedAt,
	}
	if !c.LastTransactionAt.IsZero() {
		at := c.LastTransactionAt
		resp.LastTransactionAt = &at
	}
	return resp
}

type activateResponse struct {
	Card            cardResponse `json:"card"`
	CustomerCreated bool         `json:"customer_created"`
}

type transactionResponse struct {
	ID           string    `json:"id"`
	CardCode     string    `json:"card_code"`
	Type         string    `json:"type"`
	Amount       string    `json:"amount"`
	BalanceAfter string    `json:"balance_after"`
	Note         string    `json:"note,omitempty"`
	Timestamp    time.Time `json:"timestamp"`
	RequestID    string    `json:"request_id,omitempty"`
	StaffID      string    `json:"staff_id,omitempty"`
}

func newTransactionResponse(t ledger.TransactionResult) transactionResponse {
	return transactionResponse{
		ID:           t.ID,
		CardCode:     t.CardCode,
		Type:         t.Type,
		Amount:       t.Amount.String(),
		BalanceAfter: t.BalanceAfter.String(),
		Note:         t.Note,
		Timestamp:    t.Timestamp,
		RequestID:    t.RequestID,
		StaffID:      t.StaffID,
	}
}

type applyResponse struct {
	NewBalance  string              `json:"new_balance"`
	Transaction transactionResponse `json:"transaction"`
	Replayed    bool                `json:"replayed"`
}

type historyResponse struct {
	CardCode     string                `json:"card_code"`
	Limit        int                   `json:"limit"`
	Transactions []transactionResponse `json:"transactions"`
}

func newHistoryResponse(h *giftcard.History, entries []*giftcard.Transaction) historyResponse {
	resp := historyResponse{
		CardCode:     h.CardCode().String(),
		Limit:        h.Limit(),
		Transactions: make([]transactionResponse, 0, len(entries)),
	}
	for _, entry := range entries {
		resp.Transactions = append(resp.Transactions, newTransactionResponse(ledger.NewTransactionResult(entry)))
	}
	return resp
}

type revealPinResponse struct {
	PIN string `json:"pin"`
}

type mismatchResponse struct {
	TransactionID string `json:"transaction_id"`
	Sequence      int    `json:"sequence"`
	Recorded      string `json:"recorded"`
	Expected      string `json:"expected"`
}

type reconcileResponse struct {
	CardCode   string             `json:"card_code"`
	Entries    int                `json:"entries"`
	Cached     string             `json:"cached"`
	Replayed   string             `json:"replayed"`
	Consistent bool               `json:"consistent"`
	Repaired   bool               `json:"repaired"`
	Mismatches []mismatchResponse `json:"mismatches"`
}

func newReconcileResponse(r *ledger.ReconcileCardResult) reconcileResponse {
	resp := reconcileResponse{
		CardCode:   r.CardCode,
		Entries:    r.Entries,
		Cached:     r.Cached.StringFixed(2),
		Replayed:   r.Replayed.StringFixed(2),
		Consistent: r.Consistent,
		Repaired:   r.Repaired,
		Mismatches: make([]mismatchResponse, 0, len(r.Mismatches)),
	}
	for _, m := range r.Mismatches {
		resp.Mismatches = append(resp.Mismatches, mismatchResponse{
			TransactionID: m.TransactionID.String(),
			Sequence:      m.Sequence,
			Recorded:      m.Recorded.StringFixed(2),
			Expected:      m.Expected.StringFixed(2),
		})
	}
	return resp
}

type customerResponse struct {
	ID              string    `json:"id"`
	FirstName       string    `json:"first_name"`
	LastName        string    `json:"last_name"`
	Email           string    `json:"email"`
	Phone           string    `json:"phone"`
	Address         string    `json:"address"`
	City            string    `json:"city"`
	State           string    `json:"state"`
	Zip             string    `json:"zip"`
	Notes           string    `json:"notes"`
	NewsletterOptIn bool      `json:"newsletter_opt_in"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func newCustomerResponse(c *customer.Customer) customerResponse {
	p := c.Profile()
	return customerResponse{
		ID:              c.ID().String(),
		FirstName:       p.FirstName,
		LastName:        p.LastName,
		Email:           p.Email,
		Phone:           p.Phone,
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

func newCustomerList(customers []*customer.Customer) []customerResponse {
	resp := make([]customerResponse, 0, len(customers))
	for _, c := range customers {
		resp = append(resp, newCustomerResponse(c))
	}
	return resp
}

type customerDeletedResponse struct {
	UnlinkedCards int64 `json:"unlinked_cards"`
}

type staffResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

func newStaffResponse(s *staff.Staff) staffResponse {
	return staffResponse{
		ID:        s.ID().String(),
		Name:      s.Name(),
		Role:      s.Role().String(),
		CreatedAt: s.CreatedAt(),
	}
}
