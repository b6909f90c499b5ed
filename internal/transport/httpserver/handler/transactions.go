package handler

import (
	"context"
	"net/http"

	categoriesdomain "budgeteer-go/internal/domain/categories"
	transactionsdomain "budgeteer-go/internal/domain/transactions"
	"budgeteer-go/internal/domain/validation"
	"budgeteer-go/internal/events"
	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
)

type createTransactionRequest struct {
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Date        string          `json:"date"`
	Type        string          `json:"type"`
	Category    string          `json:"category"`
}

type transactionResponse struct {
	ID           string  `json:"id"`
	Amount       float64 `json:"amount"`
	Description  string  `json:"description"`
	Date         string  `json:"date"`
	Type         string  `json:"type"`
	Category     string  `json:"category"`
	CategoryIcon string  `json:"categoryIcon"`
}

type transactionHistoryResponse struct {
	transactionResponse
	FormattedAmount string `json:"formattedAmount"`
}

func toTransactionResponse(t transactionsdomain.Transaction) transactionResponse {
	return transactionResponse{
		ID:           t.ID,
		Amount:       amount(t.Amount),
		Description:  t.Description,
		Date:         t.Date.Format(dateLayout),
		Type:         string(t.Type),
		Category:     t.Category,
		CategoryIcon: t.CategoryIcon,
	}
}

func (h *Handlers) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	var req createTransactionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	user, ok := requireUser(w, r)
	if !ok {
		return
	}

	date, ok := parseDate(req.Date)
	if !ok {
		h.writeServiceError(w, "transactions.create", validation.Errors{"date": "must be a YYYY-MM-DD date"}, "user_id", user.ID)
		return
	}
	categoryType, _ := categoriesdomain.ParseType(req.Type)

	created, err := h.Transactions.Create(r.Context(), transactionsdomain.CreateTransactionInput{
		UserID:      user.ID,
		Amount:      req.Amount,
		Description: req.Description,
		Date:        date,
		Type:        categoryType,
		Category:    req.Category,
	})
	if err != nil {
		h.writeServiceError(w, "transactions.create", err, "user_id", user.ID)
		return
	}

	h.publish(r.Context(), events.TypeTransactionCreated, *created)
	writeJSON(w, http.StatusCreated, toTransactionResponse(*created))
}

func (h *Handlers) DeleteTransaction(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}

	transactionID := chi.URLParam(r, "id")
	deleted, err := h.Transactions.Delete(r.Context(), user.ID, transactionID)
	if err != nil {
		h.writeServiceError(w, "transactions.delete", err, "user_id", user.ID, "transaction_id", transactionID)
		return
	}

	h.publish(r.Context(), events.TypeTransactionDeleted, *deleted)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) TransactionsHistory(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}

	rng, err := parseDateRange(r.URL.Query(), h.maxRangeDays)
	if err != nil {
		h.writeServiceError(w, "transactions.history", err, "user_id", user.ID)
		return
	}

	formatter, ok := h.formatter(w, r, "transactions.history", user.ID)
	if !ok {
		return
	}

	items, err := h.Transactions.List(r.Context(), user.ID, transactionsdomain.ListFilter{From: rng.From, To: rng.To})
	if err != nil {
		h.writeServiceError(w, "transactions.history", err, "user_id", user.ID)
		return
	}

	response := make([]transactionHistoryResponse, 0, len(items))
	for _, item := range items {
		response = append(response, transactionHistoryResponse{
			transactionResponse: toTransactionResponse(item),
			FormattedAmount:     formatter.Format(item.Amount),
		})
	}
	writeJSON(w, http.StatusOK, response)
}

// publish runs after the mutation committed, so a broker failure is logged
// and does not change the response.
func (h *Handlers) publish(ctx context.Context, eventType string, t transactionsdomain.Transaction) {
	event := events.TransactionEvent(eventType, t, h.now())
	if err := h.events.Publish(context.WithoutCancel(ctx), event); err != nil {
		h.log.InternalError("events.publish: failed", err, "type", eventType, "user_id", t.UserID, "transaction_id", t.ID)
	}
}
