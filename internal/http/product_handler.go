package http

import (
	"fmt"
	"net/http"

	"github.com/tuanvumaihuynh/inventory-management/internal/service"
)

type productHandler struct {
	productSvc service.ProductService
}

func newProductHandler(productSvc service.ProductService) *productHandler {
	return &productHandler{
		productSvc: productSvc,
	}
}

func (h *productHandler) ListProducts(w http.ResponseWriter, r *http.Request) error {
	products, err := h.productSvc.ListProducts(r.Context())
	if err != nil {
		return fmt.Errorf("product service list products: %w", err)
	}

	return writeJSON(w, http.StatusOK, products)
}
