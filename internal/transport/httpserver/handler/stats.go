package handler

import (
	"net/http"

	historydomain "budgeteer-go/internal/domain/history"
)

type balanceResponse struct {
	Income  float64 `json:"income"`
	Expense float64 `json:"expense"`
}

type categoryStatResponse struct {
	Type         string  `json:"type"`
	Category     string  `json:"category"`
	CategoryIcon string  `json:"categoryIcon"`
	Total        float64 `json:"total"`
}

type overviewCategoryResponse struct {
	categoryStatResponse
	FormattedTotal string  `json:"formattedTotal"`
	Percentage     float64 `json:"percentage"`
}

type overviewResponse struct {
	From      string  `json:"from"`
	To        string  `json:"to"`
	Currency  string  `json:"currency"`
	Income    float64 `json:"income"`
	Expense   float64 `json:"expense"`
	Balance   float64 `json:"balance"`
	Formatted struct {
		Income  string `json:"income"`
		Expense string `json:"expense"`
		Balance string `json:"balance"`
	} `json:"formatted"`
	Categories struct {
		Income  []overviewCategoryResponse `json:"income"`
		Expense []overviewCategoryResponse `json:"expense"`
	} `json:"categories"`
}

func toCategoryStatResponse(stat historydomain.CategoryStat) categoryStatResponse {
	return categoryStatResponse{
		Type:         string(stat.Type),
		Category:     stat.Category,
		CategoryIcon: stat.CategoryIcon,
		Total:        amount(stat.Total),
	}
}

func (h *Handlers) BalanceStats(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}

	rng, err := parseDateRange(r.URL.Query(), h.maxRangeDays)
	if err != nil {
		h.writeServiceError(w, "stats.balance", err, "user_id", user.ID)
		return
	}

	balance, err := h.History.Balance(r.Context(), user.ID, rng.From, rng.To)
	if err != nil {
		h.writeServiceError(w, "stats.balance", err, "user_id", user.ID)
		return
	}

	writeJSON(w, http.StatusOK, balanceResponse{
		Income:  amount(balance.Income),
		Expense: amount(balance.Expense),
	})
}

func (h *Handlers) CategoriesStats(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}

	rng, err := parseDateRange(r.URL.Query(), h.maxRangeDays)
	if err != nil {
		h.writeServiceError(w, "stats.categories", err, "user_id", user.ID)
		return
	}

	stats, err := h.History.CategoryStats(r.Context(), user.ID, rng.From, rng.To)
	if err != nil {
		h.writeServiceError(w, "stats.categories", err, "user_id", user.ID)
		return
	}

	response := make([]categoryStatResponse, 0, len(stats))
	for _, stat := range stats {
		response = append(response, toCategoryStatResponse(stat))
	}
	writeJSON(w, http.StatusOK, response)
}

// Overview is the dashboard view model: balance cards plus per-type
// category bars, formatted in the user's currency.
func (h *Handlers) Overview(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}

	rng, err := parseDateRange(r.URL.Query(), h.maxRangeDays)
	if err != nil {
		h.writeServiceError(w, "stats.overview", err, "user_id", user.ID)
		return
	}

	formatter, ok := h.formatter(w, r, "stats.overview", user.ID)
	if !ok {
		return
	}

	overview, err := h.History.Overview(r.Context(), user.ID, rng.From, rng.To)
	if err != nil {
		h.writeServiceError(w, "stats.overview", err, "user_id", user.ID)
		return
	}

	net := overview.Balance.Income.Sub(overview.Balance.Expense)

	var response overviewResponse
	response.From = rng.From.Format(dateLayout)
	response.To = rng.To.Format(dateLayout)
	response.Currency = formatter.Currency().Code
	response.Income = amount(overview.Balance.Income)
	response.Expense = amount(overview.Balance.Expense)
	response.Balance = amount(net)
	response.Formatted.Income = formatter.Format(overview.Balance.Income)
	response.Formatted.Expense = formatter.Format(overview.Balance.Expense)
	response.Formatted.Balance = formatter.Format(net)

	toShares := func(shares []historydomain.CategoryShare) []overviewCategoryResponse {
		out := make([]overviewCategoryResponse, 0, len(shares))
		for _, share := range shares {
			out = append(out, overviewCategoryResponse{
				categoryStatResponse: toCategoryStatResponse(share.CategoryStat),
				FormattedTotal:       formatter.Format(share.Total),
				Percentage:           amount(share.Percentage),
			})
		}
		return out
	}
	response.Categories.Income = toShares(overview.Income)
	response.Categories.Expense = toShares(overview.Expense)

	writeJSON(w, http.StatusOK, response)
}
