package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuanvumaihuynh/inventory-management/internal/apperr"
	"github.com/tuanvumaihuynh/inventory-management/internal/config"
	ihttp "github.com/tuanvumaihuynh/inventory-management/internal/http"
	"github.com/tuanvumaihuynh/inventory-management/internal/http/apierr"
	"github.com/tuanvumaihuynh/inventory-management/internal/model"
	"github.com/tuanvumaihuynh/inventory-management/internal/service"
	"github.com/tuanvumaihuynh/inventory-management/pkg/correlationid"
)

type fakeHealth struct{ err error }

func (f fakeHealth) IsHealthy(context.Context) (bool, error) { return f.err == nil, f.err }

type fakeCategorySvc struct{}

func (fakeCategorySvc) ListCategories(context.Context) ([]model.Category, error) {
	return []model.Category{{ID: 1, Name: "Dry Goods"}}, nil
}

type fakeProductSvc struct{ err error }

func (f fakeProductSvc) ListProducts(context.Context) ([]model.Product, error) {
	if f.err != nil {
		return nil, f.err
	}
	return []model.Product{{ID: 3, Name: "Flour", CategoryID: 1, QuantityInStock: 10}}, nil
}

type fakePurchaseSvc struct {
	created  service.CreatePurchaseParams
	updated  service.UpdatePurchaseStatusParams
	err      error
	purchase model.Purchase
}

func (f *fakePurchaseSvc) ListPurchases(context.Context) ([]model.Purchase, error) {
	return []model.Purchase{f.purchase}, nil
}

func (f *fakePurchaseSvc) CreatePurchase(_ context.Context, params service.CreatePurchaseParams) (model.Purchase, error) {
	f.created = params
	return f.purchase, f.err
}

func (f *fakePurchaseSvc) UpdatePurchaseStatus(_ context.Context, params service.UpdatePurchaseStatusParams) (model.Purchase, error) {
	f.updated = params
	return f.purchase, f.err
}

type fakeOrderSvc struct {
	created service.CreateOrderParams
	updated service.UpdateOrderStatusParams
	sentID  int64
	err     error
	order   model.Order
}

func (f *fakeOrderSvc) ListOrders(context.Context) ([]model.Order, error) {
	return []model.Order{f.order}, nil
}

func (f *fakeOrderSvc) CreateOrder(_ context.Context, params service.CreateOrderParams) (model.Order, error) {
	f.created = params
	return f.order, f.err
}

func (f *fakeOrderSvc) UpdateOrderStatus(_ context.Context, params service.UpdateOrderStatusParams) (model.Order, error) {
	f.updated = params
	return f.order, f.err
}

func (f *fakeOrderSvc) SendOrder(_ context.Context, id int64) (model.Order, error) {
	f.sentID = id
	return f.order, f.err
}

type testServer struct {
	handler  http.Handler
	purchase *fakePurchaseSvc
	order    *fakeOrderSvc
}

func newTestServer(t *testing.T, health fakeHealth, products fakeProductSvc) testServer {
	t.Helper()

	purchase := &fakePurchaseSvc{purchase: model.Purchase{ID: 5, ProductName: "Flour", Status: model.PurchaseStatusPending}}
	order := &fakeOrderSvc{order: model.Order{ID: 7, ProductName: "Flour", Status: model.OrderStatusProcessing}}

	svc, err := ihttp.New(
		config.HTTP{Swagger: true},
		slog.New(slog.DiscardHandler),
		health,
		ihttp.Services{
			Category: fakeCategorySvc{},
			Product:  products,
			Purchase: purchase,
			Order:    order,
		},
	)
	require.NoError(t, err)

	return testServer{handler: svc.Handler(), purchase: purchase, order: order}
}

func (s testServer) do(method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	resp := httptest.NewRecorder()
	s.handler.ServeHTTP(resp, req)
	return resp
}

func decodeError(t *testing.T, resp *httptest.ResponseRecorder) apierr.ErrorResponse {
	t.Helper()

	var res apierr.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&res))
	return res
}

func TestListRoutes(t *testing.T) {
	s := newTestServer(t, fakeHealth{}, fakeProductSvc{})

	for _, path := range []string{"/api/v1/categories", "/api/v1/products", "/api/v1/products/purchases", "/api/v1/orders"} {
		t.Run(path, func(t *testing.T) {
			resp := s.do(http.MethodGet, path, "")

			assert.Equal(t, http.StatusOK, resp.Code)
			assert.Contains(t, resp.Header().Get("Content-Type"), "application/json")
			assert.NotEmpty(t, resp.Header().Get(correlationid.Header))

			var items []map[string]any
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&items))
			assert.Len(t, items, 1)
		})
	}
}

func TestListPurchases_StatusName(t *testing.T) {
	s := newTestServer(t, fakeHealth{}, fakeProductSvc{})

	resp := s.do(http.MethodGet, "/api/v1/products/purchases", "")

	assert.JSONEq(t, `"Pending"`, mustField(t, resp, "status"))
}

func mustField(t *testing.T, resp *httptest.ResponseRecorder, field string) string {
	t.Helper()

	var items []map[string]json.RawMessage
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&items))
	require.NotEmpty(t, items)
	return string(items[0][field])
}

func TestCreatePurchase(t *testing.T) {
	t.Run("Should accept pascal case body", func(t *testing.T) {
		s := newTestServer(t, fakeHealth{}, fakeProductSvc{})

		resp := s.do(http.MethodPost, "/api/v1/products/purchase",
			`{"ProductName":"Flour","SupplierName":"Acme","PurchaseDate":"2024-05-01","Quantity":100,"UnitPrice":2.5,"CategoryId":1}`)

		assert.Equal(t, http.StatusCreated, resp.Code)
		assert.Equal(t, service.CreatePurchaseParams{
			ProductName:  "Flour",
			SupplierName: "Acme",
			CategoryID:   1,
			Quantity:     100,
			UnitPrice:    2.5,
			PurchaseDate: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
		}, s.purchase.created)
	})

	t.Run("Should reject malformed body", func(t *testing.T) {
		s := newTestServer(t, fakeHealth{}, fakeProductSvc{})

		resp := s.do(http.MethodPost, "/api/v1/products/purchase", `{"quantity":`)

		assert.Equal(t, http.StatusBadRequest, resp.Code)
		assert.Equal(t, apperr.ValidationErrorCode, decodeError(t, resp).Code)
	})
}

func TestUpdatePurchaseStatus(t *testing.T) {
	t.Run("Should bind id and integer status", func(t *testing.T) {
		s := newTestServer(t, fakeHealth{}, fakeProductSvc{})

		resp := s.do(http.MethodPut, "/api/v1/products/purchase/5", `2`)

		assert.Equal(t, http.StatusOK, resp.Code)
		assert.Equal(t, service.UpdatePurchaseStatusParams{ID: 5, Status: model.PurchaseStatusIncoming}, s.purchase.updated)
	})

	t.Run("Should accept status name", func(t *testing.T) {
		s := newTestServer(t, fakeHealth{}, fakeProductSvc{})

		resp := s.do(http.MethodPut, "/api/v1/products/purchase/5", `"returned"`)

		assert.Equal(t, http.StatusOK, resp.Code)
		assert.Equal(t, model.PurchaseStatusReturned, s.purchase.updated.Status)
	})

	t.Run("Should reject non numeric id", func(t *testing.T) {
		s := newTestServer(t, fakeHealth{}, fakeProductSvc{})

		resp := s.do(http.MethodPut, "/api/v1/products/purchase/abc", `2`)

		assert.Equal(t, http.StatusBadRequest, resp.Code)
		assert.Zero(t, s.purchase.updated.ID)
	})

	t.Run("Should map conflict", func(t *testing.T) {
		s := newTestServer(t, fakeHealth{}, fakeProductSvc{})
		s.purchase.err = apperr.InvalidStatusTransitionErr.WrapParent(model.ErrInvalidTransition)

		resp := s.do(http.MethodPut, "/api/v1/products/purchase/5", `2`)

		assert.Equal(t, http.StatusConflict, resp.Code)
		assert.Equal(t, apperr.InvalidStatusTransitionCode, decodeError(t, resp).Code)
	})
}

func TestOrderRoutes(t *testing.T) {
	t.Run("Should create order", func(t *testing.T) {
		s := newTestServer(t, fakeHealth{}, fakeProductSvc{})

		resp := s.do(http.MethodPost, "/api/v1/orders",
			`{"productId":3,"customerName":"Bakery","orderDate":"2024-05-02T00:00:00Z","quantity":5,"unitPrice":10,"totalPrice":50}`)

		assert.Equal(t, http.StatusCreated, resp.Code)
		assert.Equal(t, int64(3), s.order.created.ProductID)
		assert.Equal(t, 5.0, s.order.created.Quantity)
	})

	t.Run("Should update order status", func(t *testing.T) {
		s := newTestServer(t, fakeHealth{}, fakeProductSvc{})

		resp := s.do(http.MethodPut, "/api/v1/orders/7", `3`)

		assert.Equal(t, http.StatusOK, resp.Code)
		assert.Equal(t, service.UpdateOrderStatusParams{ID: 7, Status: model.OrderStatusCancelled}, s.order.updated)
	})

	t.Run("Should send order ignoring snapshot", func(t *testing.T) {
		s := newTestServer(t, fakeHealth{}, fakeProductSvc{})

		resp := s.do(http.MethodPut, "/api/v1/orders/7/send", `{"id":7,"quantity":999}`)

		assert.Equal(t, http.StatusOK, resp.Code)
		assert.Equal(t, int64(7), s.order.sentID)
	})

	t.Run("Should report insufficient stock on send", func(t *testing.T) {
		s := newTestServer(t, fakeHealth{}, fakeProductSvc{})
		s.order.err = apperr.InsufficientStockErr("Flour", 4, 3)

		resp := s.do(http.MethodPut, "/api/v1/orders/7/send", `{}`)

		assert.Equal(t, http.StatusBadRequest, resp.Code)
		res := decodeError(t, resp)
		assert.Equal(t, apperr.InsufficientStockCode, res.Code)
		assert.Equal(t, "not enough Flour in stock: requested 4, available 3", res.Message)
	})
}

func TestInternalError(t *testing.T) {
	s := newTestServer(t, fakeHealth{}, fakeProductSvc{err: errors.New("connection refused")})

	resp := s.do(http.MethodGet, "/api/v1/products", "")

	assert.Equal(t, http.StatusInternalServerError, resp.Code)
	assert.Equal(t, apierr.InternalServerErr.Code, decodeError(t, resp).Code)
}

func TestHealth(t *testing.T) {
	t.Run("Should report ok", func(t *testing.T) {
		s := newTestServer(t, fakeHealth{}, fakeProductSvc{})

		resp := s.do(http.MethodGet, "/healthz", "")

		assert.Equal(t, http.StatusOK, resp.Code)
	})

	t.Run("Should report unavailable database", func(t *testing.T) {
		s := newTestServer(t, fakeHealth{err: errors.New("ping database: timeout")}, fakeProductSvc{})

		resp := s.do(http.MethodGet, "/healthz", "")

		assert.Equal(t, http.StatusServiceUnavailable, resp.Code)
	})
}

func TestCorrelationIDEcho(t *testing.T) {
	s := newTestServer(t, fakeHealth{}, fakeProductSvc{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/categories", nil)
	req.Header.Set(correlationid.Header, "req-123")
	resp := httptest.NewRecorder()
	s.handler.ServeHTTP(resp, req)

	assert.Equal(t, "req-123", resp.Header().Get(correlationid.Header))
}
