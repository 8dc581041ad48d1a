package model

import "time"

// Product is created implicitly by the first purchase of a name within a
// category. QuantityInStock is derived from received purchases minus sent
// orders and is never written directly.
type Product struct {
	ID              int64     `json:"id"`
	Name            string    `json:"productName"`
	CategoryID      int64     `json:"categoryId"`
	CategoryName    string    `json:"categoryName"`
	UnitPrice       float64   `json:"unitPrice"`
	QuantityInStock float64   `json:"quantityInStock"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}
