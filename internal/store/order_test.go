package store_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuanvumaihuynh/inventory-management/internal/client"
	"github.com/tuanvumaihuynh/inventory-management/internal/model"
	"github.com/tuanvumaihuynh/inventory-management/internal/store"
)

type fakeOrderAPI struct {
	server    []model.Order
	sendErr   error
	listCalls int
	puts      []model.OrderStatus
	sent      []model.Order
}

func (f *fakeOrderAPI) ListOrders(context.Context) ([]model.Order, error) {
	f.listCalls++
	return append([]model.Order(nil), f.server...), nil
}

func (f *fakeOrderAPI) UpdateOrderStatus(_ context.Context, id int64, status model.OrderStatus) error {
	f.puts = append(f.puts, status)
	f.set(id, status)
	return nil
}

func (f *fakeOrderAPI) SendOrder(_ context.Context, order model.Order) error {
	f.sent = append(f.sent, order)
	if f.sendErr != nil {
		return f.sendErr
	}
	f.set(order.ID, model.OrderStatusSent)
	return nil
}

func (f *fakeOrderAPI) set(id int64, status model.OrderStatus) {
	for i := range f.server {
		if f.server[i].ID == id {
			f.server[i].Status = status
		}
	}
}

func orders() []model.Order {
	return []model.Order{
		{ID: 7, ProductID: 10, ProductName: "Flour", Quantity: 4, Status: model.OrderStatusProcessing},
		{ID: 8, ProductID: 10, ProductName: "Flour", Quantity: 1, Status: model.OrderStatusSent},
		{ID: 9, ProductID: 10, ProductName: "Flour", Quantity: 2, Status: model.OrderStatusProcessing},
	}
}

func loadedOrderStore(t *testing.T, api *fakeOrderAPI) *store.OrderStore {
	t.Helper()

	s := store.NewOrderStore(api, quiet)
	require.NoError(t, s.Load(context.Background()))
	return s
}

func orderStatus(t *testing.T, s *store.OrderStore, id int64) model.OrderStatus {
	t.Helper()

	o, ok := s.Find(id)
	require.True(t, ok)
	return o.Status
}

func TestOrderStore_Send(t *testing.T) {
	ctx := context.Background()

	t.Run("Should show server message and keep order processing on 400", func(t *testing.T) {
		api := &fakeOrderAPI{
			server: orders(),
			sendErr: &client.ResponseError{
				StatusCode: 400,
				Code:       "INSUFFICIENT_STOCK",
				Message:    "not enough Flour in stock: requested 4, available 3",
			},
		}
		s := loadedOrderStore(t, api)

		res := s.Send(ctx, 7)

		assert.Equal(t, store.OutcomeReverted, res.Outcome)
		assert.Equal(t, "not enough Flour in stock: requested 4, available 3", s.ErrorMessage())
		assert.Equal(t, model.OrderStatusProcessing, orderStatus(t, s, 7))
		assert.Empty(t, api.puts)
	})

	t.Run("Should fall back to generic message", func(t *testing.T) {
		api := &fakeOrderAPI{server: orders(), sendErr: &client.ResponseError{StatusCode: 500}}
		s := loadedOrderStore(t, api)

		s.Send(ctx, 7)

		assert.Equal(t, "Failed to send order", s.ErrorMessage())
	})

	t.Run("Should mark sent and reload on success", func(t *testing.T) {
		api := &fakeOrderAPI{server: orders()}
		s := loadedOrderStore(t, api)

		res := s.Send(ctx, 7)

		assert.True(t, res.OK())
		assert.True(t, res.Reconciled)
		require.Len(t, api.sent, 1)
		assert.Equal(t, 4.0, api.sent[0].Quantity)
		assert.Empty(t, api.puts)
		assert.Equal(t, model.OrderStatusSent, orderStatus(t, s, 7))
	})

	t.Run("Should reject sending a sent order", func(t *testing.T) {
		api := &fakeOrderAPI{server: orders()}
		s := loadedOrderStore(t, api)

		res := s.Send(ctx, 8)

		assert.Equal(t, store.OutcomeRejected, res.Outcome)
		assert.ErrorIs(t, res.Err, model.ErrInvalidTransition)
		assert.Empty(t, api.sent)
	})
}

func TestOrderStore_Cancel(t *testing.T) {
	ctx := context.Background()
	api := &fakeOrderAPI{server: orders()}
	s := loadedOrderStore(t, api)

	res := s.Cancel(ctx, 9)
	require.True(t, res.OK())
	assert.Equal(t, []model.OrderStatus{model.OrderStatusCancelled}, api.puts)

	res = s.Cancel(ctx, 9)
	assert.Equal(t, store.OutcomeRejected, res.Outcome)
	assert.Len(t, api.puts, 1)
}

func TestOrderStore_Outgoing(t *testing.T) {
	s := loadedOrderStore(t, &fakeOrderAPI{server: orders()})

	outgoing := s.Outgoing()

	require.Len(t, outgoing, 2)
	assert.Equal(t, int64(7), outgoing[0].ID)
	assert.Equal(t, int64(9), outgoing[1].ID)
}

func TestOutcome_String(t *testing.T) {
	assert.Equal(t, "rejected", store.OutcomeRejected.String())
	assert.Equal(t, "reverted", store.OutcomeReverted.String())
	assert.Equal(t, "confirmed", store.OutcomeConfirmed.String())
}
