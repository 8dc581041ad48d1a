package store_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuanvumaihuynh/inventory-management/internal/client"
	"github.com/tuanvumaihuynh/inventory-management/internal/model"
	"github.com/tuanvumaihuynh/inventory-management/internal/store"
)

var quiet = store.WithLogger(slog.New(slog.DiscardHandler))

type fakePurchaseAPI struct {
	server    []model.Purchase
	listErr   error
	putErr    error
	listCalls int
	puts      []model.PurchaseStatus
	duringPut func()
}

func (f *fakePurchaseAPI) ListPurchases(context.Context) ([]model.Purchase, error) {
	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]model.Purchase(nil), f.server...), nil
}

func (f *fakePurchaseAPI) UpdatePurchaseStatus(_ context.Context, id int64, status model.PurchaseStatus) error {
	f.puts = append(f.puts, status)
	if f.duringPut != nil {
		f.duringPut()
	}
	if f.putErr != nil {
		return f.putErr
	}
	for i := range f.server {
		if f.server[i].ID == id {
			f.server[i].Status = status
		}
	}
	return nil
}

func purchases() []model.Purchase {
	return []model.Purchase{
		{ID: 1, ProductID: 10, ProductName: "Flour", SupplierName: "Acme", Quantity: 100, Status: model.PurchaseStatusPending},
		{ID: 2, ProductID: 10, ProductName: "Flour", SupplierName: "Acme", Quantity: 50, Status: model.PurchaseStatusIncoming},
	}
}

func loadedPurchaseStore(t *testing.T, api *fakePurchaseAPI, opts ...store.Option) *store.PurchaseStore {
	t.Helper()

	s := store.NewPurchaseStore(api, append([]store.Option{quiet}, opts...)...)
	require.NoError(t, s.Load(context.Background()))
	return s
}

func statusOf(t *testing.T, s *store.PurchaseStore, id int64) model.PurchaseStatus {
	t.Helper()

	p, ok := s.Find(id)
	require.True(t, ok)
	return p.Status
}

func TestPurchaseStore_Load(t *testing.T) {
	ctx := context.Background()

	t.Run("Should keep list on failure", func(t *testing.T) {
		api := &fakePurchaseAPI{server: purchases()}
		s := loadedPurchaseStore(t, api)

		api.listErr = errors.New("connection refused")
		err := s.Load(ctx)

		assert.Error(t, err)
		assert.Len(t, s.Snapshot(), 2)
		assert.Equal(t, "connection refused", s.ErrorMessage())
	})

	t.Run("Should discard result after close", func(t *testing.T) {
		api := &fakePurchaseAPI{server: purchases()}
		s := store.NewPurchaseStore(api, quiet)
		s.Close()

		err := s.Load(ctx)

		assert.ErrorIs(t, err, store.ErrClosed)
		assert.Empty(t, s.Snapshot())
		assert.Equal(t, 1, api.listCalls)
	})
}

func TestPurchaseStore_Transition(t *testing.T) {
	ctx := context.Background()

	t.Run("Should confirm and reconcile", func(t *testing.T) {
		api := &fakePurchaseAPI{server: purchases()}
		s := loadedPurchaseStore(t, api)

		res := s.Receive(ctx, 1)

		assert.True(t, res.OK())
		assert.True(t, res.Reconciled)
		assert.Equal(t, []model.PurchaseStatus{model.PurchaseStatusIncoming}, api.puts)
		assert.Equal(t, 2, api.listCalls)
		assert.Equal(t, model.PurchaseStatusIncoming, statusOf(t, s, 1))
	})

	t.Run("Should apply speculatively before the call", func(t *testing.T) {
		api := &fakePurchaseAPI{server: purchases()}
		s := loadedPurchaseStore(t, api, store.WithReloadOnSuccess(false))

		var during model.PurchaseStatus
		api.duringPut = func() { during = statusOf(t, s, 1) }

		res := s.Return(ctx, 1)

		assert.Equal(t, store.OutcomeConfirmed, res.Outcome)
		assert.False(t, res.Reconciled)
		assert.Equal(t, model.PurchaseStatusReturned, during)
		assert.Equal(t, 1, api.listCalls)
	})

	t.Run("Should reject from terminal status without calling server", func(t *testing.T) {
		api := &fakePurchaseAPI{server: purchases()}
		s := loadedPurchaseStore(t, api)

		res := s.Return(ctx, 2)

		assert.Equal(t, store.OutcomeRejected, res.Outcome)
		assert.ErrorIs(t, res.Err, model.ErrInvalidTransition)
		assert.Empty(t, api.puts)
		assert.Equal(t, model.PurchaseStatusIncoming, statusOf(t, s, 2))
		assert.NotEmpty(t, s.ErrorMessage())
	})

	t.Run("Should reject unknown status and unknown id", func(t *testing.T) {
		api := &fakePurchaseAPI{server: purchases()}
		s := loadedPurchaseStore(t, api)

		res := s.Transition(ctx, 1, model.PurchaseStatus(9))
		assert.Equal(t, store.OutcomeRejected, res.Outcome)

		res = s.Receive(ctx, 404)
		assert.ErrorIs(t, res.Err, store.ErrUnknownEntity)
		assert.Empty(t, api.puts)
	})

	t.Run("Should reconcile by reload when server refuses", func(t *testing.T) {
		api := &fakePurchaseAPI{
			server: purchases(),
			putErr: &client.ResponseError{StatusCode: 409, Message: "invalid status transition"},
		}
		s := loadedPurchaseStore(t, api)

		res := s.Receive(ctx, 1)

		assert.Equal(t, store.OutcomeReverted, res.Outcome)
		assert.True(t, res.Reconciled)
		assert.Equal(t, model.PurchaseStatusPending, statusOf(t, s, 1))
		assert.Equal(t, "invalid status transition", s.ErrorMessage())
	})

	t.Run("Should revert locally when reload fails too", func(t *testing.T) {
		api := &fakePurchaseAPI{server: purchases(), putErr: client.ErrNetworkFailure}
		s := loadedPurchaseStore(t, api)
		api.listErr = client.ErrNetworkFailure

		res := s.Receive(ctx, 1)

		assert.Equal(t, store.OutcomeReverted, res.Outcome)
		assert.False(t, res.Reconciled)
		assert.Equal(t, model.PurchaseStatusPending, statusOf(t, s, 1))
		assert.Equal(t, "network failure", s.ErrorMessage())
	})

	t.Run("Should send one request per call", func(t *testing.T) {
		api := &fakePurchaseAPI{server: purchases(), putErr: errors.New("timeout")}
		s := loadedPurchaseStore(t, api)

		s.Receive(ctx, 1)
		s.Receive(ctx, 1)

		assert.Len(t, api.puts, 2)
	})
}

func TestPurchaseStore_Summary(t *testing.T) {
	s := loadedPurchaseStore(t, &fakePurchaseAPI{server: purchases()})

	entry, ok := s.Summary().Get(10)
	require.True(t, ok)

	assert.Equal(t, 50.0, entry.TotalQuantity)
	assert.Equal(t, 100.0, entry.TotalQuantityPending)
	assert.Equal(t, "Acme", entry.SuppliersList())
}

func TestPurchaseStore_Incoming(t *testing.T) {
	ctx := context.Background()
	s := loadedPurchaseStore(t, &fakePurchaseAPI{server: purchases()})

	incoming := s.Incoming()

	require.Len(t, incoming, 1)
	assert.Equal(t, int64(1), incoming[0].ID)

	require.True(t, s.Receive(ctx, 1).OK())
	assert.Empty(t, s.Incoming())
}
