package http

import (
	"fmt"
	"net/http"

	"github.com/tuanvumaihuynh/inventory-management/internal/model"
	"github.com/tuanvumaihuynh/inventory-management/internal/service"
)

type createOrderRequest struct {
	ProductID    int64      `json:"productId"`
	CustomerName string     `json:"customerName"`
	OrderDate    model.Date `json:"orderDate"`
	Quantity     float64    `json:"quantity"`
	UnitPrice    float64    `json:"unitPrice"`
}

type orderHandler struct {
	orderSvc service.OrderService
}

func newOrderHandler(orderSvc service.OrderService) *orderHandler {
	return &orderHandler{
		orderSvc: orderSvc,
	}
}

func (h *orderHandler) ListOrders(w http.ResponseWriter, r *http.Request) error {
	orders, err := h.orderSvc.ListOrders(r.Context())
	if err != nil {
		return fmt.Errorf("order service list orders: %w", err)
	}

	return writeJSON(w, http.StatusOK, orders)
}

func (h *orderHandler) CreateOrder(w http.ResponseWriter, r *http.Request) error {
	var req createOrderRequest
	if err := decodeJSON(r, &req); err != nil {
		return err
	}

	order, err := h.orderSvc.CreateOrder(r.Context(), service.CreateOrderParams{
		ProductID:    req.ProductID,
		CustomerName: req.CustomerName,
		Quantity:     req.Quantity,
		UnitPrice:    req.UnitPrice,
		OrderDate:    req.OrderDate.Time,
	})
	if err != nil {
		return fmt.Errorf("order service create order: %w", err)
	}

	return writeJSON(w, http.StatusCreated, order)
}

func (h *orderHandler) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) error {
	id, err := pathID(r)
	if err != nil {
		return err
	}

	code, err := decodeStatusCode(r, func(s string) (uint8, error) {
		status, err := model.ParseOrderStatus(s)
		return uint8(status), err
	})
	if err != nil {
		return err
	}

	order, err := h.orderSvc.UpdateOrderStatus(r.Context(), service.UpdateOrderStatusParams{
		ID:     id,
		Status: model.OrderStatus(code),
	})
	if err != nil {
		return fmt.Errorf("order service update order status: %w", err)
	}

	return writeJSON(w, http.StatusOK, order)
}

// SendOrder ships the stored order. The request body carries the client's
// order snapshot and is not trusted.
func (h *orderHandler) SendOrder(w http.ResponseWriter, r *http.Request) error {
	id, err := pathID(r)
	if err != nil {
		return err
	}

	order, err := h.orderSvc.SendOrder(r.Context(), id)
	if err != nil {
		return fmt.Errorf("order service send order: %w", err)
	}

	return writeJSON(w, http.StatusOK, order)
}
