package handler

import (
	"net/http"
	"time"

	categoriesdomain "budgeteer-go/internal/domain/categories"
)

type createCategoryRequest struct {
	Name string `json:"name"`
	Icon string `json:"icon"`
	Type string `json:"type"`
}

type deleteCategoryRequest struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

type categoryResponse struct {
	Name      string    `json:"name"`
	Icon      string    `json:"icon"`
	Type      string    `json:"type"`
	CreatedAt time.Time `json:"createdAt"`
}

func toCategoryResponse(c categoriesdomain.Category) categoryResponse {
	return categoryResponse{
		Name:      c.Name,
		Icon:      c.Icon,
		Type:      string(c.Type),
		CreatedAt: c.CreatedAt,
	}
}

func (h *Handlers) ListCategories(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}

	categoryType, _ := categoriesdomain.ParseType(r.URL.Query().Get("type"))
	items, err := h.Categories.List(r.Context(), user.ID, categoryType)
	if err != nil {
		h.writeServiceError(w, "categories.list", err, "user_id", user.ID)
		return
	}

	response := make([]categoryResponse, 0, len(items))
	for _, item := range items {
		response = append(response, toCategoryResponse(item))
	}
	writeJSON(w, http.StatusOK, response)
}

func (h *Handlers) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req createCategoryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	user, ok := requireUser(w, r)
	if !ok {
		return
	}

	categoryType, _ := categoriesdomain.ParseType(req.Type)
	created, err := h.Categories.Create(r.Context(), categoriesdomain.CreateCategoryInput{
		UserID: user.ID,
		Name:   req.Name,
		Icon:   req.Icon,
		Type:   categoryType,
	})
	if err != nil {
		h.writeServiceError(w, "categories.create", err, "user_id", user.ID, "name", req.Name)
		return
	}

	writeJSON(w, http.StatusCreated, toCategoryResponse(*created))
}

func (h *Handlers) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	var req deleteCategoryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	user, ok := requireUser(w, r)
	if !ok {
		return
	}

	categoryType, _ := categoriesdomain.ParseType(req.Type)
	if err := h.Categories.Delete(r.Context(), user.ID, req.Name, categoryType); err != nil {
		h.writeServiceError(w, "categories.delete", err, "user_id", user.ID, "name", req.Name)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
