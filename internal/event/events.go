package event

import "time"

const (
	TopicPurchaseCreated       = "purchase.created"
	TopicPurchaseStatusChanged = "purchase.status_changed"
	TopicOrderCreated          = "order.created"
	TopicOrderStatusChanged    = "order.status_changed"
	TopicOrderSent             = "order.sent"
)

// Topics lists every topic the services publish.
var Topics = []string{
	TopicPurchaseCreated,
	TopicPurchaseStatusChanged,
	TopicOrderCreated,
	TopicOrderStatusChanged,
	TopicOrderSent,
}

type PurchaseCreatedEvent struct {
	PurchaseID   int64     `json:"purchase_id"`
	ProductID    int64     `json:"product_id"`
	ProductName  string    `json:"product_name"`
	SupplierName string    `json:"supplier_name"`
	Quantity     float64   `json:"quantity"`
	UnitPrice    float64   `json:"unit_price"`
	PurchaseDate time.Time `json:"purchase_date"`
}

type PurchaseStatusChangedEvent struct {
	PurchaseID int64  `json:"purchase_id"`
	ProductID  int64  `json:"product_id"`
	From       string `json:"from"`
	To         string `json:"to"`
}

type OrderCreatedEvent struct {
	OrderID      int64     `json:"order_id"`
	ProductID    int64     `json:"product_id"`
	CustomerName string    `json:"customer_name"`
	Quantity     float64   `json:"quantity"`
	UnitPrice    float64   `json:"unit_price"`
	OrderDate    time.Time `json:"order_date"`
}

type OrderStatusChangedEvent struct {
	OrderID   int64  `json:"order_id"`
	ProductID int64  `json:"product_id"`
	From      string `json:"from"`
	To        string `json:"to"`
}

// OrderSentEvent is emitted once stock has been committed to the shipment.
type OrderSentEvent struct {
	OrderID        int64   `json:"order_id"`
	ProductID      int64   `json:"product_id"`
	ProductName    string  `json:"product_name"`
	CustomerName   string  `json:"customer_name"`
	Quantity       float64 `json:"quantity"`
	RemainingStock float64 `json:"remaining_stock"`
}
