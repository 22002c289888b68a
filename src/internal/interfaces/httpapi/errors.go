package httpapi

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/jackyeh168/giftcard_pos/src/internal/domain/customer"
	"github.com/jackyeh168/giftcard_pos/src/internal/domain/giftcard"
	"github.com/jackyeh168/giftcard_pos/src/internal/domain/shared"
	"github.com/jackyeh168/giftcard_pos/src/internal/domain/staff"
)

// ErrorBody is the JSON shape of every error response.
type ErrorBody struct {
	Error ErrorDetail `json:"error"`
}

type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

const codeBadRequest = "BAD_REQUEST"

var statusByCode = map[shared.ErrorCode]int{
	giftcard.ErrCodeInvalidCardCode:        http.StatusBadRequest,
	giftcard.ErrCodeInvalidPin:             http.StatusBadRequest,
	giftcard.ErrCodeInvalidAmount:          http.StatusBadRequest,
	giftcard.ErrCodeInvalidTransactionType: http.StatusBadRequest,
	giftcard.ErrCodeMissingCustomerData:    http.StatusBadRequest,
	giftcard.ErrCodeInvalidNote:            http.StatusBadRequest,
	giftcard.ErrCodeInvalidTransactionID:   http.StatusBadRequest,
	customer.ErrCodeInvalidCustomerID:      http.StatusBadRequest,
	customer.ErrCodeInvalidFirstName:       http.StatusBadRequest,
	customer.ErrCodeInvalidEmail:           http.StatusBadRequest,
	customer.ErrCodeInvalidPhoneNumber:     http.StatusBadRequest,
	customer.ErrCodeFieldTooLong:           http.StatusBadRequest,
	customer.ErrCodeEmptySearch:            http.StatusBadRequest,
	staff.ErrCodeInvalidStaffID:            http.StatusBadRequest,
	staff.ErrCodeInvalidStaffName:          http.StatusBadRequest,
	staff.ErrCodeInvalidStaffPin:           http.StatusBadRequest,
	staff.ErrCodeInvalidRole:               http.StatusBadRequest,

	staff.ErrCodeAccessDenied: http.StatusUnauthorized,
	staff.ErrCodeForbidden:    http.StatusForbidden,

	giftcard.ErrCodeCardNotFound:        http.StatusNotFound,
	giftcard.ErrCodeTransactionNotFound: http.StatusNotFound,
	customer.ErrCodeCustomerNotFound:    http.StatusNotFound,
	staff.ErrCodeStaffNotFound:          http.StatusNotFound,

	giftcard.ErrCodeAlreadyActivated:     http.StatusConflict,
	giftcard.ErrCodeDuplicateRequest:     http.StatusConflict,
	staff.ErrCodeDuplicateStaffPin:       http.StatusConflict,
	staff.ErrCodeLastAdmin:               http.StatusConflict,
	shared.ErrCodeConcurrentModification: http.StatusConflict,
	shared.ErrCodeConflictRetryExhausted: http.StatusConflict,

	giftcard.ErrCodeInsufficientFunds: http.StatusUnprocessableEntity,

	shared.ErrCodeStoreUnavailable: http.StatusServiceUnavailable,
}

// statusFor maps an error to its HTTP status. Unknown domain codes and
// non-domain errors are internal errors.
func statusFor(err error) (int, *shared.DomainError) {
	if errors.Is(err, errBadRequest) {
		return http.StatusBadRequest, nil
	}
	var de *shared.DomainError
	if !errors.As(err, &de) {
		return http.StatusInternalServerError, nil
	}
	if status, ok := statusByCode[de.Code]; ok {
		return status, de
	}
	return http.StatusInternalServerError, de
}

// writeError renders err. Internal errors are logged with the request id
// and their details are not sent to the client.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, de := statusFor(err)

	body := ErrorBody{}
	switch {
	case status == http.StatusInternalServerError:
		h.log.Error("request failed",
			zap.String("request_id", middleware.GetReqID(r.Context())),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
		body.Error = ErrorDetail{Code: "INTERNAL", Message: "internal error"}
	case de != nil:
		body.Error = ErrorDetail{Code: string(de.Code), Message: de.Message}
	default:
		body.Error = ErrorDetail{Code: codeBadRequest, Message: err.Error()}
	}

	if status == http.StatusServiceUnavailable {
		w.Header().Set("Retry-After", "1")
	}
	writeJSON(w, status, body)
}
