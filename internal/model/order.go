package model

import (
	"encoding/json"
	"time"
)

type Order struct {
	ID           int64       `json:"id"`
	ProductID    int64       `json:"productId"`
	ProductName  string      `json:"productName"`
	CategoryName string      `json:"categoryName"`
	CustomerName string      `json:"customerName"`
	Quantity     float64     `json:"quantity"`
	UnitPrice    float64     `json:"unitPrice"`
	TotalPrice   float64     `json:"totalPrice"`
	OrderDate    Date        `json:"orderDate"`
	Status       OrderStatus `json:"orderStatusId"`
	CreatedAt    time.Time   `json:"createdAt"`
	UpdatedAt    time.Time   `json:"updatedAt"`
}

// MarshalJSON adds the human readable status name next to the status code.
func (o Order) MarshalJSON() ([]byte, error) {
	type order Order
	return json.Marshal(struct {
		order
		StatusName string `json:"status"`
	}{order(o), o.Status.String()})
}
