// Command ims-cli drives the inventory API from a terminal: list views,
// create forms and status transitions.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"strings"

	"github.com/tuanvumaihuynh/inventory-management/internal/client"
	"github.com/tuanvumaihuynh/inventory-management/internal/config"
	"github.com/tuanvumaihuynh/inventory-management/internal/log"
	"github.com/tuanvumaihuynh/inventory-management/internal/model"
	"github.com/tuanvumaihuynh/inventory-management/internal/notify"
	"github.com/tuanvumaihuynh/inventory-management/internal/store"
	"github.com/tuanvumaihuynh/inventory-management/pkg/validator"
)

var errUsage = errors.New("usage")

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, errUsage) {
			if detail := usageDetail(err); detail != "" {
				fmt.Fprintf(os.Stderr, "error: %s\n", detail)
			}
			os.Exit(2)
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// usageDetail returns what err adds beyond errUsage itself.
func usageDetail(err error) string {
	joined, ok := err.(interface{ Unwrap() []error })
	if !ok {
		return ""
	}
	var parts []string
	for _, e := range joined.Unwrap() {
		if e != errUsage {
			parts = append(parts, e.Error())
		}
	}
	return strings.Join(parts, "; ")
}

// API is everything the commands call on the server.
type API interface {
	store.PurchaseAPI
	store.OrderAPI
	ListProducts(ctx context.Context) ([]model.Product, error)
	ListCategories(ctx context.Context) ([]model.Category, error)
	CreatePurchase(ctx context.Context, req client.CreatePurchaseRequest) (model.Purchase, error)
	CreateOrder(ctx context.Context, req client.CreateOrderRequest) (model.Order, error)
}

type app struct {
	api       API
	out       io.Writer
	logger    *slog.Logger
	validator validator.Validator
	cfg       config.Client
}

type command struct {
	usage string
	run   func(ctx context.Context, a *app, args []string) error
}

var commands = map[string]command{
	"products":     {"products", listProducts},
	"purchases":    {"purchases", listPurchases},
	"orders":       {"orders", listOrders},
	"outgoing":     {"outgoing", listOutgoing},
	"incoming":     {"incoming", listIncoming},
	"inventory":    {"inventory", listInventory},
	"new-purchase": {"new-purchase -product NAME -supplier NAME -category ID -quantity N [-price P] [-date D]", newPurchase},
	"new-order":    {"new-order -product-id ID -customer NAME -quantity N [-price P] [-date D]", newOrder},
	"restock":      {"restock -product-id ID -quantity N", restock},
	"receive":      {"receive ID", receivePurchase},
	"return":       {"return ID", returnPurchase},
	"send":         {"send ID", sendOrder},
	"cancel":       {"cancel ID", cancelOrder},
}

func run(ctx context.Context, args []string, out io.Writer) error {
	type Config struct {
		Log    config.Log
		Client config.Client
	}
	cfg, err := config.New[Config]()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	v, err := validator.NewDefaultValidator()
	if err != nil {
		return fmt.Errorf("error creating validator: %w", err)
	}

	a := &app{
		api:       client.New(cfg.Client),
		out:       out,
		logger:    log.New(os.Stderr, cfg.Log),
		validator: v,
		cfg:       cfg.Client,
	}
	return a.dispatch(ctx, args)
}

func (a *app) dispatch(ctx context.Context, args []string) error {
	if len(args) == 0 {
		a.usage()
		return errUsage
	}

	cmd, ok := commands[args[0]]
	if !ok {
		fmt.Fprintf(a.out, "unknown command %q\n", args[0])
		a.usage()
		return errUsage
	}
	return cmd.run(ctx, a, args[1:])
}

func (a *app) usage() {
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)

	lines := make([]string, 0, len(names))
	for _, name := range names {
		lines = append(lines, "  ims-cli "+commands[name].usage)
	}
	fmt.Fprintf(a.out, "Usage:\n%s\n", strings.Join(lines, "\n"))
}

func (a *app) storeOptions() []store.Option {
	return []store.Option{
		store.WithLogger(a.logger),
		store.WithReloadOnSuccess(a.cfg.ReloadOnCommit),
	}
}

// banner prints every non-empty notification as it is shown.
func (a *app) banner() *notify.Banner {
	return notify.NewBanner(
		notify.WithDismissAfter(a.cfg.DismissAfter),
		notify.WithOnChange(func(message string) {
			if message != "" {
				fmt.Fprintln(a.out, message)
			}
		}),
	)
}
