package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	categoriesdomain "budgeteer-go/internal/domain/categories"
	settingsdomain "budgeteer-go/internal/domain/settings"
	transactionsdomain "budgeteer-go/internal/domain/transactions"
	"budgeteer-go/internal/domain/validation"
	"budgeteer-go/internal/transport/httpserver/middleware"
	"github.com/shopspring/decimal"
)

type errorEnvelope struct {
	Error errorBody `json:"error"`
}

type errorBody struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorEnvelope{Error: errorBody{Code: code, Message: message}})
}

func writeValidationError(w http.ResponseWriter, errs validation.Errors) {
	writeJSON(w, http.StatusBadRequest, errorEnvelope{Error: errorBody{
		Code:    "validation_failed",
		Message: "validation failed",
		Fields:  errs,
	}})
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func decodeJSON(r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

// writeServiceError maps domain errors to responses. Expected failures are
// logged as business errors, anything else as internal.
func (h *Handlers) writeServiceError(w http.ResponseWriter, op string, err error, args ...any) {
	var errs validation.Errors
	switch {
	case errors.As(err, &errs):
		h.log.BusinessError(op+": validation failed", err, args...)
		writeValidationError(w, errs)
	case errors.Is(err, transactionsdomain.ErrTransactionNotFound):
		h.log.BusinessError(op+": transaction not found", err, args...)
		writeError(w, http.StatusNotFound, "transaction_not_found", "transaction not found")
	case errors.Is(err, categoriesdomain.ErrCategoryNotFound):
		h.log.BusinessError(op+": category not found", err, args...)
		writeError(w, http.StatusNotFound, "category_not_found", "category not found")
	case errors.Is(err, categoriesdomain.ErrCategoryAlreadyExists):
		h.log.BusinessError(op+": category already exists", err, args...)
		writeError(w, http.StatusConflict, "category_already_exists", "category already exists")
	case errors.Is(err, settingsdomain.ErrSettingsNotFound):
		h.log.BusinessError(op+": settings not found", err, args...)
		writeError(w, http.StatusNotFound, "settings_not_found", "settings not found")
	default:
		h.log.InternalError(op+": failed", err, args...)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
	}
}

func requireUser(w http.ResponseWriter, r *http.Request) (middleware.User, bool) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return middleware.User{}, false
	}
	return user, true
}

// amount renders money as a JSON number.
func amount(value decimal.Decimal) float64 {
	return value.InexactFloat64()
}
