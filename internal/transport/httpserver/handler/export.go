package handler

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strings"

	categoriesdomain "budgeteer-go/internal/domain/categories"
	transactionsdomain "budgeteer-go/internal/domain/transactions"
	"budgeteer-go/internal/domain/validation"
)

var exportHeader = []string{"category", "categoryIcon", "description", "type", "amount", "formattedAmount", "date"}

// ExportTransactions streams the filtered transaction table as CSV.
func (h *Handlers) ExportTransactions(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}

	query := r.URL.Query()
	rng, err := parseDateRange(query, h.maxRangeDays)
	if err != nil {
		h.writeServiceError(w, "transactions.export", err, "user_id", user.ID)
		return
	}

	filter := transactionsdomain.ListFilter{
		From:     rng.From,
		To:       rng.To,
		Category: query.Get("category"),
	}
	if raw := strings.TrimSpace(query.Get("type")); raw != "" {
		categoryType, ok := categoriesdomain.ParseType(raw)
		if !ok {
			h.writeServiceError(w, "transactions.export", validation.Errors{"type": "must be income or expense"}, "user_id", user.ID)
			return
		}
		filter.Type = categoryType
	}

	formatter, ok := h.formatter(w, r, "transactions.export", user.ID)
	if !ok {
		return
	}

	items, err := h.Transactions.List(r.Context(), user.ID, filter)
	if err != nil {
		h.writeServiceError(w, "transactions.export", err, "user_id", user.ID)
		return
	}

	filename := fmt.Sprintf("transactions_%s_%s.csv", rng.From.Format(dateLayout), rng.To.Format(dateLayout))
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)

	out := csv.NewWriter(w)
	_ = out.Write(exportHeader)
	for _, item := range items {
		_ = out.Write([]string{
			csvText(item.Category),
			csvText(item.CategoryIcon),
			csvText(item.Description),
			string(item.Type),
			item.Amount.StringFixed(2),
			formatter.Format(item.Amount),
			item.Date.Format(dateLayout),
		})
	}
	out.Flush()
	if err := out.Error(); err != nil {
		h.log.InternalError("transactions.export: write failed", err, "user_id", user.ID)
	}
}

// csvText keeps spreadsheet applications from evaluating user text as a
// formula.
func csvText(value string) string {
	if value != "" && strings.ContainsRune("=+-@\t\r", rune(value[0])) {
		return "'" + value
	}
	return value
}
