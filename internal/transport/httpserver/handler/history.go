package handler

import (
	"net/http"
)

type historyPointResponse struct {
	Year    int     `json:"year"`
	Month   int     `json:"month"`
	Day     int     `json:"day,omitempty"`
	Income  float64 `json:"income"`
	Expense float64 `json:"expense"`
}

func (h *Handlers) HistoryData(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}

	query, err := parseHistoryQuery(r.URL.Query())
	if err != nil {
		h.writeServiceError(w, "history.data", err, "user_id", user.ID)
		return
	}

	points, err := h.History.History(r.Context(), user.ID, query)
	if err != nil {
		h.writeServiceError(w, "history.data", err, "user_id", user.ID, "time_frame", query.TimeFrame)
		return
	}

	response := make([]historyPointResponse, 0, len(points))
	for _, point := range points {
		response = append(response, historyPointResponse{
			Year:    point.Year,
			Month:   point.Month,
			Day:     point.Day,
			Income:  amount(point.Income),
			Expense: amount(point.Expense),
		})
	}
	writeJSON(w, http.StatusOK, response)
}

func (h *Handlers) HistoryPeriods(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}

	years, err := h.History.Years(r.Context(), user.ID)
	if err != nil {
		h.writeServiceError(w, "history.periods", err, "user_id", user.ID)
		return
	}
	writeJSON(w, http.StatusOK, years)
}
