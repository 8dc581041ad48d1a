// Package form holds the create-entity drafts behind the purchase, order and
// restock screens. A form is driven by one user at a time and is not safe for
// concurrent use.
package form

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	govalidator "github.com/go-playground/validator/v10"
	"github.com/spf13/cast"

	"github.com/tuanvumaihuynh/inventory-management/internal/client"
	"github.com/tuanvumaihuynh/inventory-management/internal/notify"
	"github.com/tuanvumaihuynh/inventory-management/pkg/validator"
)

// Route names the view a form hands control to.
type Route string

const (
	RouteStay      Route = ""
	RouteProducts  Route = "/products"
	RoutePurchases Route = "/purchases"
	RouteOrders    Route = "/orders"
)

// Field names accepted by Set. They match the JSON names of the drafts.
const (
	FieldProductID    = "productId"
	FieldProductName  = "productName"
	FieldSupplierName = "supplierName"
	FieldCustomerName = "customerName"
	FieldCategoryID   = "categoryId"
	FieldPurchaseDate = "purchaseDate"
	FieldOrderDate    = "orderDate"
	FieldQuantity     = "quantity"
	FieldUnitPrice    = "unitPrice"
)

var (
	ErrUnknownField  = errors.New("unknown field")
	ErrReadOnlyField = errors.New("field is read only")
	ErrUnknownOption = errors.New("unknown option")
	ErrInvalidValue  = errors.New("invalid value")
)

// Loader is the list a successful submit refreshes.
type Loader interface {
	Load(ctx context.Context) error
}

type Option func(*options)

type options struct {
	logger *slog.Logger
	now    func() time.Time
}

func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithClock replaces time.Now for default dates.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

func newOptions(opts []Option) options {
	o := options{logger: slog.Default(), now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// shared is the state every form carries besides its draft.
type shared struct {
	opts      options
	list      Loader
	banner    *notify.Banner
	validator validator.Validator
	errMsg    string
}

// ErrorMessage is the inline error of the last submit, empty when none.
func (s *shared) ErrorMessage() string { return s.errMsg }

// Notification is the success banner currently shown.
func (s *shared) Notification() string { return s.banner.Message() }

// Close cancels the pending banner dismissal.
func (s *shared) Close() { s.banner.Close() }

func (s *shared) validate(draft any) error {
	if err := s.validator.Validate(draft); err != nil {
		s.errMsg = validationMessage(err)
		return fmt.Errorf("%w: %w", client.ErrValidationFailure, err)
	}
	return nil
}

// succeeded announces the created entity and refreshes the owning list. A
// failed refresh is logged only; the entity exists either way.
func (s *shared) succeeded(ctx context.Context, message string) {
	s.errMsg = ""
	s.banner.Show(message)

	if s.list == nil {
		return
	}
	if err := s.list.Load(ctx); err != nil {
		s.opts.logger.ErrorContext(ctx, "reload after create failed", slog.Any("error", err))
	}
}

func (s *shared) failed(ctx context.Context, message string, err error) {
	s.opts.logger.ErrorContext(ctx, message, slog.Any("error", err))
	s.errMsg = message
}

func validationMessage(err error) string {
	var verrs govalidator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}

	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		parts = append(parts, fmt.Sprintf("%s %s", fieldName(fe.Field()), validator.ValidationErrorMessage(fe)))
	}
	return strings.Join(parts, "; ")
}

// fieldName turns a draft struct field into its Set name.
func fieldName(structField string) string {
	if structField == "" {
		return structField
	}
	name := strings.ToLower(structField[:1]) + structField[1:]
	if base, ok := strings.CutSuffix(name, "ID"); ok {
		return base + "Id"
	}
	return name
}

// number coerces form input. Blank input is zero.
func number(field, value string) (float64, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, nil
	}
	n, err := cast.ToFloat64E(value)
	if err != nil {
		return 0, fmt.Errorf("%w: %s %q", ErrInvalidValue, field, value)
	}
	return n, nil
}

func id(field, value string) (int64, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, nil
	}
	n, err := cast.ToInt64E(value)
	if err != nil {
		return 0, fmt.Errorf("%w: %s %q", ErrInvalidValue, field, value)
	}
	return n, nil
}
