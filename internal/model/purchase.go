package model

import (
	"encoding/json"
	"time"
)

type Purchase struct {
	ID           int64          `json:"id"`
	ProductID    int64          `json:"productId"`
	ProductName  string         `json:"productName"`
	CategoryID   int64          `json:"categoryId"`
	CategoryName string         `json:"categoryName"`
	SupplierName string         `json:"supplierName"`
	Quantity     float64        `json:"quantity"`
	UnitPrice    float64        `json:"unitPrice"`
	PurchaseDate Date           `json:"purchaseDate"`
	Status       PurchaseStatus `json:"purchaseStatusId"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`
}

// TotalCost is quantity times unit price.
func (p Purchase) TotalCost() float64 {
	return p.Quantity * p.UnitPrice
}

// MarshalJSON adds the human readable status name next to the status code.
func (p Purchase) MarshalJSON() ([]byte, error) {
	type purchase Purchase
	return json.Marshal(struct {
		purchase
		StatusName string `json:"status"`
	}{purchase(p), p.Status.String()})
}
