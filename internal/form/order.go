package form

import (
	"context"
	"fmt"

	"github.com/tuanvumaihuynh/inventory-management/internal/client"
	"github.com/tuanvumaihuynh/inventory-management/internal/model"
	"github.com/tuanvumaihuynh/inventory-management/internal/notify"
	"github.com/tuanvumaihuynh/inventory-management/pkg/validator"
)

const orderFailedMessage = "Failed to create order."

type OrderCreator interface {
	CreateOrder(ctx context.Context, req client.CreateOrderRequest) (model.Order, error)
}

type OrderDraft struct {
	ProductID    int64      `validate:"gt=0"`
	ProductName  string     `validate:"-"`
	CustomerName string     `validate:"required,notblank"`
	OrderDate    model.Date `validate:"-"`
	Quantity     float64    `validate:"gt=0"`
	UnitPrice    float64    `validate:"gte=0"`
	TotalPrice   float64    `validate:"gte=0"`
}

// OrderForm is the new order screen.
type OrderForm struct {
	shared
	api      OrderCreator
	draft    OrderDraft
	products []model.Product
}

func NewOrderForm(
	api OrderCreator,
	list Loader,
	banner *notify.Banner,
	v validator.Validator,
	opts ...Option,
) *OrderForm {
	return &OrderForm{
		shared: shared{
			opts:      newOptions(opts),
			list:      list,
			banner:    banner,
			validator: v,
		},
		api: api,
	}
}

func (f *OrderForm) Draft() OrderDraft { return f.draft }

// SetProducts replaces the options SelectProduct picks from.
func (f *OrderForm) SetProducts(products []model.Product) {
	f.products = append([]model.Product(nil), products...)
}

// SelectProduct fills in the product id and name. Price stays as typed.
func (f *OrderForm) SelectProduct(productID int64) error {
	for _, p := range f.products {
		if p.ID == productID {
			f.draft.ProductID = p.ID
			f.draft.ProductName = p.Name
			return nil
		}
	}
	return fmt.Errorf("%w: product %d", ErrUnknownOption, productID)
}

// Set merges one edited field into the draft. Editing quantity or unit
// price recomputes the total.
func (f *OrderForm) Set(field, value string) error {
	var err error
	switch field {
	case FieldProductID:
		var productID int64
		if productID, err = id(field, value); err == nil {
			err = f.SelectProduct(productID)
		}
	case FieldProductName:
		f.draft.ProductName = value
	case FieldCustomerName:
		f.draft.CustomerName = value
	case FieldOrderDate:
		f.draft.OrderDate, err = model.ParseDate(value)
	case FieldQuantity:
		if f.draft.Quantity, err = number(field, value); err == nil {
			f.recomputeTotal()
		}
	case FieldUnitPrice:
		if f.draft.UnitPrice, err = number(field, value); err == nil {
			f.recomputeTotal()
		}
	default:
		return fmt.Errorf("%w: %s", ErrUnknownField, field)
	}
	return err
}

func (f *OrderForm) recomputeTotal() {
	if f.draft.Quantity > 0 && f.draft.UnitPrice > 0 {
		f.draft.TotalPrice = f.draft.Quantity * f.draft.UnitPrice
		return
	}
	f.draft.TotalPrice = 0
}

// Submit creates the order. On success the draft resets and the orders
// route is returned. On failure the draft is kept.
func (f *OrderForm) Submit(ctx context.Context) (Route, error) {
	if err := f.validate(f.draft); err != nil {
		return RouteStay, err
	}

	draft := f.draft
	if draft.OrderDate.IsZero() {
		draft.OrderDate = model.NewDate(f.opts.now())
	}

	created, err := f.api.CreateOrder(ctx, client.CreateOrderRequest{
		ProductID:    draft.ProductID,
		ProductName:  draft.ProductName,
		CustomerName: draft.CustomerName,
		OrderDate:    draft.OrderDate,
		Quantity:     draft.Quantity,
		UnitPrice:    draft.UnitPrice,
		TotalPrice:   draft.TotalPrice,
	})
	if err != nil {
		f.failed(ctx, orderFailedMessage, err)
		return RouteStay, fmt.Errorf("create order: %w", err)
	}

	name := created.ProductName
	if name == "" {
		name = draft.ProductName
	}

	f.reset()
	f.succeeded(ctx, "Order created for "+name)
	return RouteOrders, nil
}

// Cancel drops the draft without saving.
func (f *OrderForm) Cancel() Route {
	f.reset()
	return RouteOrders
}

func (f *OrderForm) reset() {
	f.draft = OrderDraft{}
	f.errMsg = ""
}
