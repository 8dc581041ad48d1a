package http

import (
	"fmt"
	"net/http"

	"github.com/tuanvumaihuynh/inventory-management/internal/model"
	"github.com/tuanvumaihuynh/inventory-management/internal/service"
)

type createPurchaseRequest struct {
	ProductName  string     `json:"productName"`
	SupplierName string     `json:"supplierName"`
	PurchaseDate model.Date `json:"purchaseDate"`
	Quantity     float64    `json:"quantity"`
	UnitPrice    float64    `json:"unitPrice"`
	CategoryID   int64      `json:"categoryId"`
}

type purchaseHandler struct {
	purchaseSvc service.PurchaseService
}

func newPurchaseHandler(purchaseSvc service.PurchaseService) *purchaseHandler {
	return &purchaseHandler{
		purchaseSvc: purchaseSvc,
	}
}

func (h *purchaseHandler) ListPurchases(w http.ResponseWriter, r *http.Request) error {
	purchases, err := h.purchaseSvc.ListPurchases(r.Context())
	if err != nil {
		return fmt.Errorf("purchase service list purchases: %w", err)
	}

	return writeJSON(w, http.StatusOK, purchases)
}

func (h *purchaseHandler) CreatePurchase(w http.ResponseWriter, r *http.Request) error {
	var req createPurchaseRequest
	if err := decodeJSON(r, &req); err != nil {
		return err
	}

	purchase, err := h.purchaseSvc.CreatePurchase(r.Context(), service.CreatePurchaseParams{
		ProductName:  req.ProductName,
		SupplierName: req.SupplierName,
		CategoryID:   req.CategoryID,
		Quantity:     req.Quantity,
		UnitPrice:    req.UnitPrice,
		PurchaseDate: req.PurchaseDate.Time,
	})
	if err != nil {
		return fmt.Errorf("purchase service create purchase: %w", err)
	}

	return writeJSON(w, http.StatusCreated, purchase)
}

func (h *purchaseHandler) UpdatePurchaseStatus(w http.ResponseWriter, r *http.Request) error {
	id, err := pathID(r)
	if err != nil {
		return err
	}

	code, err := decodeStatusCode(r, func(s string) (uint8, error) {
		status, err := model.ParsePurchaseStatus(s)
		return uint8(status), err
	})
	if err != nil {
		return err
	}

	purchase, err := h.purchaseSvc.UpdatePurchaseStatus(r.Context(), service.UpdatePurchaseStatusParams{
		ID:     id,
		Status: model.PurchaseStatus(code),
	})
	if err != nil {
		return fmt.Errorf("purchase service update purchase status: %w", err)
	}

	return writeJSON(w, http.StatusOK, purchase)
}
