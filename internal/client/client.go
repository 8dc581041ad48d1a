// Package client calls the inventory REST API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/tuanvumaihuynh/inventory-management/internal/config"
	"github.com/tuanvumaihuynh/inventory-management/internal/model"
	"github.com/tuanvumaihuynh/inventory-management/pkg/correlationid"
)

const (
	apiPrefix       = "/api/v1"
	maxErrorBodyLen = 64 << 10
)

type CreatePurchaseRequest struct {
	ProductName  string     `json:"productName"`
	SupplierName string     `json:"supplierName"`
	PurchaseDate model.Date `json:"purchaseDate"`
	Quantity     float64    `json:"quantity"`
	UnitPrice    float64    `json:"unitPrice"`
	CategoryID   int64      `json:"categoryId"`
}

type CreateOrderRequest struct {
	ProductID    int64      `json:"productId"`
	ProductName  string     `json:"productName"`
	CustomerName string     `json:"customerName"`
	OrderDate    model.Date `json:"orderDate"`
	Quantity     float64    `json:"quantity"`
	UnitPrice    float64    `json:"unitPrice"`
	TotalPrice   float64    `json:"totalPrice"`
}

// sendOrderRequest is the order snapshot sent along with a shipment.
type sendOrderRequest struct {
	ProductName  string     `json:"productName"`
	ProductID    int64      `json:"productId"`
	Quantity     float64    `json:"quantity"`
	CustomerName string     `json:"customerName"`
	OrderDate    model.Date `json:"orderDate"`
	UnitPrice    float64    `json:"unitPrice"`
}

// Client is safe for concurrent use. It never retries.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

type Option func(*Client)

func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) { cl.httpClient = c }
}

func New(cfg config.Client, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) ListProducts(ctx context.Context) ([]model.Product, error) {
	var products []model.Product
	if err := c.do(ctx, http.MethodGet, "/products", nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (c *Client) ListCategories(ctx context.Context) ([]model.Category, error) {
	var categories []model.Category
	if err := c.do(ctx, http.MethodGet, "/categories", nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

func (c *Client) ListPurchases(ctx context.Context) ([]model.Purchase, error) {
	var purchases []model.Purchase
	if err := c.do(ctx, http.MethodGet, "/products/purchases", nil, &purchases); err != nil {
		return nil, err
	}
	return purchases, nil
}

func (c *Client) ListOrders(ctx context.Context) ([]model.Order, error) {
	var orders []model.Order
	if err := c.do(ctx, http.MethodGet, "/orders", nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (c *Client) CreatePurchase(ctx context.Context, req CreatePurchaseRequest) (model.Purchase, error) {
	var purchase model.Purchase
	if err := c.do(ctx, http.MethodPost, "/products/purchase", req, &purchase); err != nil {
		return model.Purchase{}, err
	}
	return purchase, nil
}

// UpdatePurchaseStatus sends the bare integer status code.
func (c *Client) UpdatePurchaseStatus(ctx context.Context, id int64, status model.PurchaseStatus) error {
	return c.do(ctx, http.MethodPut, "/products/purchase/"+strconv.FormatInt(id, 10), uint8(status), nil)
}

func (c *Client) CreateOrder(ctx context.Context, req CreateOrderRequest) (model.Order, error) {
	var order model.Order
	if err := c.do(ctx, http.MethodPost, "/orders", req, &order); err != nil {
		return model.Order{}, err
	}
	return order, nil
}

func (c *Client) UpdateOrderStatus(ctx context.Context, id int64, status model.OrderStatus) error {
	return c.do(ctx, http.MethodPut, "/orders/"+strconv.FormatInt(id, 10), uint8(status), nil)
}

// SendOrder asks the server to ship order. The server marks it Sent.
func (c *Client) SendOrder(ctx context.Context, order model.Order) error {
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/orders/%d/send", order.ID), sendOrderRequest{
		ProductName:  order.ProductName,
		ProductID:    order.ProductID,
		Quantity:     order.Quantity,
		CustomerName: order.CustomerName,
		OrderDate:    order.OrderDate,
		UnitPrice:    order.UnitPrice,
	}, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal %s %s body: %w", method, path, err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+apiPrefix+path, reader)
	if err != nil {
		return fmt.Errorf("build %s %s request: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if id, ok := correlationid.FromContext(ctx); ok {
		req.Header.Set(correlationid.Header, id)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w: %w", method, path, ErrNetworkFailure, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%s %s: %w", method, path, readResponseError(resp))
	}

	if out == nil {
		//nolint:errcheck
		io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s %s: %w: decode body: %w", method, path, ErrBadResponse, err)
	}

	return nil
}

func readResponseError(resp *http.Response) *ResponseError {
	respErr := &ResponseError{StatusCode: resp.StatusCode}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyLen))
	if err != nil || len(bytes.TrimSpace(raw)) == 0 {
		return respErr
	}

	var body struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &body); err == nil {
		respErr.Code = body.Code
		respErr.Message = body.Message
		return respErr
	}

	// plain text bodies are shown as is
	respErr.Message = strings.TrimSpace(string(raw))
	return respErr
}
