package form

import (
	"context"
	"fmt"

	"github.com/tuanvumaihuynh/inventory-management/internal/model"
	"github.com/tuanvumaihuynh/inventory-management/internal/notify"
	"github.com/tuanvumaihuynh/inventory-management/pkg/validator"
)

const restockFailedMessage = "Failed to create purchase"

// RestockForm buys more of a product that was purchased before. The draft is
// seeded from the product's latest purchase, so the new purchase repeats its
// supplier and unit price. Only the quantity can be edited and the purchase
// is dated at submit time.
type RestockForm struct {
	shared
	api   PurchaseCreator
	seed  PurchaseDraft
	draft PurchaseDraft
}

func NewRestockForm(
	api PurchaseCreator,
	list Loader,
	banner *notify.Banner,
	v validator.Validator,
	latest model.Purchase,
	opts ...Option,
) *RestockForm {
	seed := PurchaseDraft{
		ProductName:  latest.ProductName,
		SupplierName: latest.SupplierName,
		CategoryID:   latest.CategoryID,
		UnitPrice:    latest.UnitPrice,
	}

	return &RestockForm{
		shared: shared{
			opts:      newOptions(opts),
			list:      list,
			banner:    banner,
			validator: v,
		},
		api:   api,
		seed:  seed,
		draft: seed,
	}
}

func (f *RestockForm) Draft() PurchaseDraft { return f.draft }

func (f *RestockForm) Set(field, value string) error {
	switch field {
	case FieldQuantity:
		q, err := number(field, value)
		if err != nil {
			return err
		}
		f.draft.Quantity = q
		return nil
	case FieldProductName, FieldSupplierName, FieldCategoryID, FieldUnitPrice, FieldPurchaseDate:
		return fmt.Errorf("%w: %s", ErrReadOnlyField, field)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownField, field)
	}
}

func (f *RestockForm) Submit(ctx context.Context) (Route, error) {
	draft := f.draft
	draft.PurchaseDate = model.NewDate(f.opts.now())

	route, err := submitPurchase(ctx, &f.shared, f.api, draft, restockFailedMessage, f.reset)
	if err != nil {
		return route, err
	}
	return RouteProducts, nil
}

func (f *RestockForm) Cancel() Route {
	f.reset()
	return RouteProducts
}

func (f *RestockForm) reset() {
	f.draft = f.seed
	f.errMsg = ""
}
