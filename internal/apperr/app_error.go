package apperr

import "github.com/tuanvumaihuynh/inventory-management/pkg/zerror"

const (
	ValidationErrorCode         = "VALIDATION_FAILED"
	CategoryNotFoundCode        = "CATEGORY_NOT_FOUND"
	ProductNotFoundCode         = "PRODUCT_NOT_FOUND"
	PurchaseNotFoundCode        = "PURCHASE_NOT_FOUND"
	OrderNotFoundCode           = "ORDER_NOT_FOUND"
	InvalidStatusCode           = "INVALID_STATUS"
	InvalidStatusTransitionCode = "INVALID_STATUS_TRANSITION"
	InsufficientStockCode       = "INSUFFICIENT_STOCK"
)

var (
	ValidationErr              = zerror.NewValidationFailed(ValidationErrorCode, "validation error")
	CategoryNotFoundErr        = zerror.NewNotFound(CategoryNotFoundCode, "category not found")
	ProductNotFoundErr         = zerror.NewNotFound(ProductNotFoundCode, "product not found")
	PurchaseNotFoundErr        = zerror.NewNotFound(PurchaseNotFoundCode, "purchase not found")
	OrderNotFoundErr           = zerror.NewNotFound(OrderNotFoundCode, "order not found")
	InvalidStatusErr           = zerror.NewBadRequest(InvalidStatusCode, "unknown status code")
	InvalidStatusTransitionErr = zerror.NewConflict(InvalidStatusTransitionCode, "invalid status transition")
	InsufficientStockBaseErr   = zerror.NewBadRequest(InsufficientStockCode, "not enough stock")
)

// InsufficientStockErr reports that an order cannot be sent with the stock on hand.
func InsufficientStockErr(productName string, requested, available float64) zerror.ZError {
	return InsufficientStockBaseErr.WithMsg("not enough %s in stock: requested %g, available %g",
		productName, requested, available)
}
