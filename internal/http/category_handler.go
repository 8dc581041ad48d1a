package http

import (
	"fmt"
	"net/http"

	"github.com/tuanvumaihuynh/inventory-management/internal/service"
)

type categoryHandler struct {
	categorySvc service.CategoryService
}

func newCategoryHandler(categorySvc service.CategoryService) *categoryHandler {
	return &categoryHandler{
		categorySvc: categorySvc,
	}
}

func (h *categoryHandler) ListCategories(w http.ResponseWriter, r *http.Request) error {
	categories, err := h.categorySvc.ListCategories(r.Context())
	if err != nil {
		return fmt.Errorf("category service list categories: %w", err)
	}

	return writeJSON(w, http.StatusOK, categories)
}
