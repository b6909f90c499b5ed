package handler

import (
	"errors"
	"net/http"

	"budgeteer-go/internal/domain/currency"
	settingsdomain "budgeteer-go/internal/domain/settings"
)

type updateSettingsRequest struct {
	Currency string `json:"currency"`
}

type settingsResponse struct {
	Currency string `json:"currency"`
}

func (h *Handlers) GetUserSettings(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}

	settings, err := h.Settings.Get(r.Context(), user.ID)
	if err != nil {
		h.writeServiceError(w, "settings.get", err, "user_id", user.ID)
		return
	}

	writeJSON(w, http.StatusOK, settingsResponse{Currency: settings.Currency})
}

func (h *Handlers) UpdateUserSettings(w http.ResponseWriter, r *http.Request) {
	var req updateSettingsRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	user, ok := requireUser(w, r)
	if !ok {
		return
	}

	settings, err := h.Settings.Update(r.Context(), user.ID, req.Currency)
	if err != nil {
		h.writeServiceError(w, "settings.update", err, "user_id", user.ID)
		return
	}

	h.log.Info("settings.update: currency set", "user_id", user.ID, "currency", settings.Currency)
	writeJSON(w, http.StatusOK, settingsResponse{Currency: settings.Currency})
}

// formatter loads the user's money formatter. Users who never finished
// onboarding, or whose stored currency is no longer supported, get 409
// onboarding_required.
func (h *Handlers) formatter(w http.ResponseWriter, r *http.Request, op, userID string) (*currency.Formatter, bool) {
	formatter, err := h.Settings.Formatter(r.Context(), userID)
	if err != nil {
		if errors.Is(err, settingsdomain.ErrSettingsNotFound) || errors.Is(err, settingsdomain.ErrCurrencyNotConfigured) {
			h.log.BusinessError(op+": onboarding required", err, "user_id", userID)
			writeError(w, http.StatusConflict, "onboarding_required", "choose a currency first")
			return nil, false
		}
		h.writeServiceError(w, op, err, "user_id", userID)
		return nil, false
	}
	return formatter, true
}
