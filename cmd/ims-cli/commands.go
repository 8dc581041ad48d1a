package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"strconv"

	"github.com/tuanvumaihuynh/inventory-management/internal/form"
	"github.com/tuanvumaihuynh/inventory-management/internal/store"
	"github.com/tuanvumaihuynh/inventory-management/internal/summary"
)

func listProducts(ctx context.Context, a *app, _ []string) error {
	purchases := store.NewPurchaseStore(a.api, a.storeOptions()...)
	defer purchases.Close()

	if err := purchases.Load(ctx); err != nil {
		return err
	}
	return renderSummary(a.out, purchases.Summary(), purchases.Snapshot())
}

func listPurchases(ctx context.Context, a *app, _ []string) error {
	purchases := store.NewPurchaseStore(a.api, a.storeOptions()...)
	defer purchases.Close()

	if err := purchases.Load(ctx); err != nil {
		return err
	}
	return renderPurchases(a.out, purchases.Snapshot())
}

func listOrders(ctx context.Context, a *app, _ []string) error {
	orders := store.NewOrderStore(a.api, a.storeOptions()...)
	defer orders.Close()

	if err := orders.Load(ctx); err != nil {
		return err
	}
	return renderOrders(a.out, orders.Snapshot())
}

func listOutgoing(ctx context.Context, a *app, _ []string) error {
	orders := store.NewOrderStore(a.api, a.storeOptions()...)
	defer orders.Close()

	if err := orders.Load(ctx); err != nil {
		return err
	}
	return renderOrders(a.out, orders.Outgoing())
}

func listIncoming(ctx context.Context, a *app, _ []string) error {
	purchases := store.NewPurchaseStore(a.api, a.storeOptions()...)
	defer purchases.Close()

	if err := purchases.Load(ctx); err != nil {
		return err
	}
	return renderPurchases(a.out, purchases.Incoming())
}

func listInventory(ctx context.Context, a *app, _ []string) error {
	products, err := a.api.ListProducts(ctx)
	if err != nil {
		return fmt.Errorf("list products: %w", err)
	}
	return renderInventory(a.out, products)
}

func newPurchase(ctx context.Context, a *app, args []string) error {
	fs := a.flagSet("new-purchase")
	var (
		product    = fs.String("product", "", "product name")
		supplier   = fs.String("supplier", "", "supplier name")
		categoryID = fs.Int64("category", 0, "category id")
		quantity   = fs.String("quantity", "", "quantity")
		price      = fs.String("price", "0", "unit price")
		date       = fs.String("date", "", "purchase date, defaults to now")
	)
	if err := fs.Parse(args); err != nil {
		return errUsage
	}

	categories, err := a.api.ListCategories(ctx)
	if err != nil {
		return fmt.Errorf("list categories: %w", err)
	}

	purchases := store.NewPurchaseStore(a.api, a.storeOptions()...)
	defer purchases.Close()

	f := form.NewPurchaseForm(a.api, purchases, a.banner(), a.validator, form.WithLogger(a.logger))
	defer f.Close()

	f.SetCategories(categories)
	if err := f.SelectCategory(*categoryID); err != nil {
		return err
	}
	if err := setFields(f.Set, map[string]string{
		form.FieldProductName:  *product,
		form.FieldSupplierName: *supplier,
		form.FieldQuantity:     *quantity,
		form.FieldUnitPrice:    *price,
		form.FieldPurchaseDate: *date,
	}); err != nil {
		return err
	}

	if _, err := f.Submit(ctx); err != nil {
		return formError(f.ErrorMessage(), err)
	}
	return renderPurchases(a.out, purchases.Snapshot())
}

func newOrder(ctx context.Context, a *app, args []string) error {
	fs := a.flagSet("new-order")
	var (
		productID = fs.String("product-id", "", "product id")
		customer  = fs.String("customer", "", "customer name")
		quantity  = fs.String("quantity", "", "quantity")
		price     = fs.String("price", "", "unit price, defaults to the product's")
		date      = fs.String("date", "", "order date, defaults to now")
	)
	if err := fs.Parse(args); err != nil {
		return errUsage
	}

	products, err := a.api.ListProducts(ctx)
	if err != nil {
		return fmt.Errorf("list products: %w", err)
	}

	orders := store.NewOrderStore(a.api, a.storeOptions()...)
	defer orders.Close()

	f := form.NewOrderForm(a.api, orders, a.banner(), a.validator, form.WithLogger(a.logger))
	defer f.Close()

	f.SetProducts(products)
	if err := f.Set(form.FieldProductID, *productID); err != nil {
		return err
	}
	if *price == "" {
		for _, p := range products {
			if p.ID == f.Draft().ProductID {
				*price = strconv.FormatFloat(p.UnitPrice, 'f', -1, 64)
			}
		}
	}
	if err := setFields(f.Set, map[string]string{
		form.FieldCustomerName: *customer,
		form.FieldQuantity:     *quantity,
		form.FieldUnitPrice:    *price,
		form.FieldOrderDate:    *date,
	}); err != nil {
		return err
	}

	if _, err := f.Submit(ctx); err != nil {
		return formError(f.ErrorMessage(), err)
	}
	return renderOrders(a.out, orders.Snapshot())
}

func restock(ctx context.Context, a *app, args []string) error {
	fs := a.flagSet("restock")
	var (
		productID = fs.Int64("product-id", 0, "product id")
		quantity  = fs.String("quantity", "", "quantity")
	)
	if err := fs.Parse(args); err != nil {
		return errUsage
	}

	purchases := store.NewPurchaseStore(a.api, a.storeOptions()...)
	defer purchases.Close()

	if err := purchases.Load(ctx); err != nil {
		return err
	}
	latest, ok := summary.LatestPurchase(purchases.Snapshot(), *productID)
	if !ok {
		return fmt.Errorf("product %d has no purchases", *productID)
	}

	f := form.NewRestockForm(a.api, purchases, a.banner(), a.validator, latest, form.WithLogger(a.logger))
	defer f.Close()

	if err := f.Set(form.FieldQuantity, *quantity); err != nil {
		return err
	}
	if _, err := f.Submit(ctx); err != nil {
		return formError(f.ErrorMessage(), err)
	}
	return renderSummary(a.out, purchases.Summary(), purchases.Snapshot())
}

func receivePurchase(ctx context.Context, a *app, args []string) error {
	return purchaseTransition(ctx, a, args, (*store.PurchaseStore).Receive)
}

func returnPurchase(ctx context.Context, a *app, args []string) error {
	return purchaseTransition(ctx, a, args, (*store.PurchaseStore).Return)
}

func sendOrder(ctx context.Context, a *app, args []string) error {
	return orderTransition(ctx, a, args, (*store.OrderStore).Send)
}

func cancelOrder(ctx context.Context, a *app, args []string) error {
	return orderTransition(ctx, a, args, (*store.OrderStore).Cancel)
}

type transitionFunc[S any] func(s S, ctx context.Context, id int64) store.TransitionResult

func purchaseTransition(ctx context.Context, a *app, args []string, fn transitionFunc[*store.PurchaseStore]) error {
	id, err := parseID(args)
	if err != nil {
		return err
	}

	purchases := store.NewPurchaseStore(a.api, a.storeOptions()...)
	defer purchases.Close()

	if err := purchases.Load(ctx); err != nil {
		return err
	}
	if err := transitionError(fn(purchases, ctx, id), purchases.ErrorMessage()); err != nil {
		return err
	}
	return renderPurchases(a.out, purchases.Snapshot())
}

func orderTransition(ctx context.Context, a *app, args []string, fn transitionFunc[*store.OrderStore]) error {
	id, err := parseID(args)
	if err != nil {
		return err
	}

	orders := store.NewOrderStore(a.api, a.storeOptions()...)
	defer orders.Close()

	if err := orders.Load(ctx); err != nil {
		return err
	}
	if err := transitionError(fn(orders, ctx, id), orders.ErrorMessage()); err != nil {
		return err
	}
	return renderOrders(a.out, orders.Snapshot())
}

func transitionError(res store.TransitionResult, message string) error {
	if res.OK() {
		return nil
	}
	if message == "" {
		message = res.Outcome.String()
	}
	return fmt.Errorf("%s: %w", message, res.Err)
}

func formError(message string, err error) error {
	if message == "" {
		return err
	}
	return fmt.Errorf("%s: %w", message, err)
}

func (a *app) flagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(a.out)
	return fs
}

// setFields applies non-empty values in a fixed order so errors are stable.
func setFields(set func(field, value string) error, values map[string]string) error {
	order := []string{
		form.FieldProductName,
		form.FieldSupplierName,
		form.FieldCustomerName,
		form.FieldQuantity,
		form.FieldUnitPrice,
		form.FieldPurchaseDate,
		form.FieldOrderDate,
	}
	for _, field := range order {
		value, ok := values[field]
		if !ok || value == "" {
			continue
		}
		if err := set(field, value); err != nil {
			return err
		}
	}
	return nil
}

func parseID(args []string) (int64, error) {
	if len(args) != 1 {
		return 0, errors.Join(errUsage, errors.New("expected exactly one id"))
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", args[0])
	}
	return id, nil
}
