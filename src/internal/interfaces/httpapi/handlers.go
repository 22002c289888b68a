package httpapi

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/jackyeh168/giftcard_pos/src/internal/application/auth"
	"github.com/jackyeh168/giftcard_pos/src/internal/application/directory"
	"github.com/jackyeh168/giftcard_pos/src/internal/application/ledger"
	"github.com/jackyeh168/giftcard_pos/src/internal/domain/customer"
)

// Services are the application entry points the HTTP layer calls.
type Services struct {
	ActivateCard     *ledger.ActivateCardUseCase
	ApplyTransaction *ledger.ApplyTransactionUseCase
	GetHistory       *ledger.GetHistoryUseCase
	GetCard          *ledger.GetCardUseCase
	ListCards        *ledger.ListCardsUseCase
	DeleteCard       *ledger.DeleteCardUseCase
	ReconcileCard    *ledger.ReconcileCardUseCase
	Gate             *auth.Gate
	Customers        *directory.CustomerDirectory
	Staff            *directory.StaffDirectory
}

// Handler translates HTTP requests into application calls. It holds no
// state of its own.
type Handler struct {
	svc  Services
	gate *auth.Gate
	log  *zap.Logger
}

func NewHandler(svc Services, log *zap.Logger) *Handler {
	return &Handler{svc: svc, gate: svc.Gate, log: log}
}

// ===========================
// Sessions
// ===========================

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	session, err := h.gate.Authenticate(r.Context(), req.PIN)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, newSessionResponse(session, true))
}

func (h *Handler) CurrentSession(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, newSessionResponse(SessionFrom(r.Context()), false))
}

// ===========================
// Cards
// ===========================

func (h *Handler) GetCard(w http.ResponseWriter, r *http.Request) {
	card, err := h.svc.GetCard.Execute(r.Context(), chi.URLParam(r, "code"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newCardResponse(card))
}

func (h *Handler) ListCards(w http.ResponseWriter, r *http.Request) {
	cards, err := h.svc.ListCards.Execute(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	resp := make([]cardResponse, 0, len(cards))
	for _, c := range cards {
		resp = append(resp, newCardResponse(c))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) ActivateCard(w http.ResponseWriter, r *http.Request) {
	var req activateRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	cmd := ledger.ActivateCardCommand{
		CardCode:   chi.URLParam(r, "code"),
		PIN:        req.PIN,
		CustomerID: req.CustomerID,
	}
	if req.Customer != nil {
		profile := req.Customer.profile()
		cmd.NewCustomer = &profile
	}

	result, err := h.svc.ActivateCard.Execute(r.Context(), cmd)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, activateResponse{
		Card:            newCardResponse(result.Card),
		CustomerCreated: result.CustomerCreated,
	})
}

// ApplyTransaction records a credit or spend. The request id may also be
// sent as an Idempotency-Key header.
func (h *Handler) ApplyTransaction(w http.ResponseWriter, r *http.Request) {
	var req transactionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	requestID := req.RequestID
	if requestID == "" {
		requestID = r.Header.Get("Idempotency-Key")
	}

	result, err := h.svc.ApplyTransaction.Execute(r.Context(), ledger.ApplyTransactionCommand{
		CardCode:  chi.URLParam(r, "code"),
		Type:      req.Type,
		Amount:    string(req.Amount),
		Note:      req.Note,
		RequestID: requestID,
		StaffID:   SessionFrom(r.Context()).StaffID,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	status := http.StatusCreated
	if result.Replayed {
		status = http.StatusOK
	}
	writeJSON(w, status, applyResponse{
		NewBalance:  result.NewBalance.String(),
		Transaction: newTransactionResponse(result.Transaction),
		Replayed:    result.Replayed,
	})
}

func (h *Handler) GetHistory(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			h.writeError(w, r, fmt.Errorf("%w: limit must be an integer", errBadRequest))
			return
		}
		limit = n
	}

	history, err := h.svc.GetHistory.Execute(r.Context(), ledger.GetHistoryQuery{
		CardCode: chi.URLParam(r, "code"),
		Limit:    limit,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	entries, err := history.Collect()
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newHistoryResponse(history, entries))
}

func (h *Handler) RevealCardPin(w http.ResponseWriter, r *http.Request) {
	var req revealPinRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	pin, err := h.gate.RevealCardPin(r.Context(), chi.URLParam(r, "code"), req.StaffPIN)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, revealPinResponse{PIN: pin})
}

func (h *Handler) DeleteCard(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteCard.Execute(r.Context(), chi.URLParam(r, "code")); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) ReconcileCard(w http.ResponseWriter, r *http.Request) {
	var req reconcileRequest
	if r.ContentLength != 0 {
		if err := decodeJSON(w, r, &req); err != nil {
			h.writeError(w, r, err)
			return
		}
	}
	result, err := h.svc.ReconcileCard.Execute(r.Context(), ledger.ReconcileCardCommand{
		CardCode: chi.URLParam(r, "code"),
		Repair:   req.Repair,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newReconcileResponse(result))
}

// ===========================
// Customers
// ===========================

// ListCustomers searches by q (email when it contains "@", otherwise
// phone), by explicit email/phone parameters, or lists everyone when no
// criteria are given.
func (h *Handler) ListCustomers(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	var (
		customers []*customer.Customer
		err       error
	)
	switch {
	case query.Get("q") != "":
		customers, err = h.svc.Customers.SearchTerm(r.Context(), query.Get("q"))
	case query.Get("email") != "" || query.Get("phone") != "":
		customers, err = h.svc.Customers.Search(r.Context(), query.Get("email"), query.Get("phone"))
	default:
		customers, err = h.svc.Customers.List(r.Context())
	}
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newCustomerList(customers))
}

func (h *Handler) GetCustomer(w http.ResponseWriter, r *http.Request) {
	c, err := h.svc.Customers.Find(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newCustomerResponse(c))
}

func (h *Handler) CreateCustomer(w http.ResponseWriter, r *http.Request) {
	var req customerRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	c, err := h.svc.Customers.Create(r.Context(), req.profile())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, newCustomerResponse(c))
}

func (h *Handler) UpdateCustomer(w http.ResponseWriter, r *http.Request) {
	var req customerRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	c, err := h.svc.Customers.Update(r.Context(), chi.URLParam(r, "id"), req.profile())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newCustomerResponse(c))
}

func (h *Handler) DeleteCustomer(w http.ResponseWriter, r *http.Request) {
	unlinked, err := h.svc.Customers.Delete(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, customerDeletedResponse{UnlinkedCards: unlinked})
}

// ===========================
// Staff
// ===========================

func (h *Handler) ListStaff(w http.ResponseWriter, r *http.Request) {
	members, err := h.svc.Staff.List(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	resp := make([]staffResponse, 0, len(members))
	for _, s := range members {
		resp = append(resp, newStaffResponse(s))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) CreateStaff(w http.ResponseWriter, r *http.Request) {
	var req staffRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	s, err := h.svc.Staff.Create(r.Context(), directory.CreateStaffCommand{
		Name: req.Name,
		PIN:  req.PIN,
		Role: req.Role,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, newStaffResponse(s))
}

func (h *Handler) UpdateStaff(w http.ResponseWriter, r *http.Request) {
	var req staffRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	s, err := h.svc.Staff.Update(r.Context(), directory.UpdateStaffCommand{
		ID:   chi.URLParam(r, "id"),
		Name: req.Name,
		PIN:  req.PIN,
		Role: req.Role,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newStaffResponse(s))
}

func (h *Handler) DeleteStaff(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Staff.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
