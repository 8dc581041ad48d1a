package form

import (
	"context"
	"fmt"

	"github.com/tuanvumaihuynh/inventory-management/internal/client"
	"github.com/tuanvumaihuynh/inventory-management/internal/model"
	"github.com/tuanvumaihuynh/inventory-management/internal/notify"
	"github.com/tuanvumaihuynh/inventory-management/pkg/validator"
)

const purchaseFailedMessage = "Failed to create purchase."

type PurchaseCreator interface {
	CreatePurchase(ctx context.Context, req client.CreatePurchaseRequest) (model.Purchase, error)
}

type PurchaseDraft struct {
	ProductName  string     `validate:"required,notblank"`
	SupplierName string     `validate:"required,notblank"`
	PurchaseDate model.Date `validate:"-"`
	Quantity     float64    `validate:"gt=0"`
	UnitPrice    float64    `validate:"gte=0"`
	CategoryID   int64      `validate:"gt=0"`
}

// PurchaseForm is the new purchase screen.
type PurchaseForm struct {
	shared
	api        PurchaseCreator
	draft      PurchaseDraft
	categories []model.Category
}

func NewPurchaseForm(
	api PurchaseCreator,
	list Loader,
	banner *notify.Banner,
	v validator.Validator,
	opts ...Option,
) *PurchaseForm {
	return &PurchaseForm{
		shared: shared{
			opts:      newOptions(opts),
			list:      list,
			banner:    banner,
			validator: v,
		},
		api: api,
	}
}

func (f *PurchaseForm) Draft() PurchaseDraft { return f.draft }

// SetCategories replaces the options SelectCategory picks from.
func (f *PurchaseForm) SetCategories(categories []model.Category) {
	f.categories = append([]model.Category(nil), categories...)
}

func (f *PurchaseForm) SelectCategory(categoryID int64) error {
	for _, c := range f.categories {
		if c.ID == categoryID {
			f.draft.CategoryID = c.ID
			return nil
		}
	}
	return fmt.Errorf("%w: category %d", ErrUnknownOption, categoryID)
}

// Set merges one edited field into the draft.
func (f *PurchaseForm) Set(field, value string) error {
	var err error
	switch field {
	case FieldProductName:
		f.draft.ProductName = value
	case FieldSupplierName:
		f.draft.SupplierName = value
	case FieldPurchaseDate:
		f.draft.PurchaseDate, err = model.ParseDate(value)
	case FieldQuantity:
		f.draft.Quantity, err = number(field, value)
	case FieldUnitPrice:
		f.draft.UnitPrice, err = number(field, value)
	case FieldCategoryID:
		f.draft.CategoryID, err = id(field, value)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownField, field)
	}
	return err
}

// Submit creates the purchase. On success the draft resets and the
// purchases route is returned. On failure the draft is kept.
func (f *PurchaseForm) Submit(ctx context.Context) (Route, error) {
	return submitPurchase(ctx, &f.shared, f.api, f.draft, purchaseFailedMessage, f.reset)
}

// Cancel drops the draft without saving.
func (f *PurchaseForm) Cancel() Route {
	f.reset()
	return RoutePurchases
}

func (f *PurchaseForm) reset() {
	f.draft = PurchaseDraft{}
	f.errMsg = ""
}

func submitPurchase(
	ctx context.Context,
	s *shared,
	api PurchaseCreator,
	draft PurchaseDraft,
	failMessage string,
	reset func(),
) (Route, error) {
	if err := s.validate(draft); err != nil {
		return RouteStay, err
	}

	if draft.PurchaseDate.IsZero() {
		draft.PurchaseDate = model.NewDate(s.opts.now())
	}

	created, err := api.CreatePurchase(ctx, client.CreatePurchaseRequest{
		ProductName:  draft.ProductName,
		SupplierName: draft.SupplierName,
		PurchaseDate: draft.PurchaseDate,
		Quantity:     draft.Quantity,
		UnitPrice:    draft.UnitPrice,
		CategoryID:   draft.CategoryID,
	})
	if err != nil {
		s.failed(ctx, failMessage, err)
		return RouteStay, fmt.Errorf("create purchase: %w", err)
	}

	name := created.ProductName
	if name == "" {
		name = draft.ProductName
	}

	reset()
	s.succeeded(ctx, "Purchase created for "+name)
	return RoutePurchases, nil
}
