package store

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/tuanvumaihuynh/inventory-management/internal/client"
	"github.com/tuanvumaihuynh/inventory-management/internal/model"
)

const sendFailedMessage = "Failed to send order"

type OrderAPI interface {
	ListOrders(ctx context.Context) ([]model.Order, error)
	UpdateOrderStatus(ctx context.Context, id int64, status model.OrderStatus) error
	SendOrder(ctx context.Context, order model.Order) error
}

// OrderStore is the client-side order list.
type OrderStore struct {
	*listStore[model.Order, model.OrderStatus]
	api OrderAPI
}

func NewOrderStore(api OrderAPI, opts ...Option) *OrderStore {
	return &OrderStore{
		listStore: &listStore[model.Order, model.OrderStatus]{
			kind:     "order",
			opts:     newOptions(opts),
			fetch:    api.ListOrders,
			put:      api.UpdateOrderStatus,
			idOf:     func(o model.Order) int64 { return o.ID },
			statusOf: func(o model.Order) model.OrderStatus { return o.Status },
			withStatus: func(o model.Order, s model.OrderStatus) model.Order {
				o.Status = s
				return o
			},
		},
		api: api,
	}
}

// Cancel drops a processing order.
func (s *OrderStore) Cancel(ctx context.Context, id int64) TransitionResult {
	return s.Transition(ctx, id, model.OrderStatusCancelled)
}

// Send ships a processing order. Unlike Transition it is not speculative:
// the server checks stock and marks the order Sent, so the local order only
// changes once the server has accepted.
func (s *OrderStore) Send(ctx context.Context, id int64) TransitionResult {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return TransitionResult{ID: id, Outcome: OutcomeRejected, Err: ErrClosed}
	}

	idx := s.indexLocked(id)
	if idx < 0 {
		s.errMsg = fmt.Sprintf("order %d not found", id)
		s.mu.Unlock()
		return TransitionResult{ID: id, Outcome: OutcomeRejected, Err: fmt.Errorf("%w: order %d", ErrUnknownEntity, id)}
	}

	snapshot := s.items[idx]
	if !snapshot.Status.CanTransitionTo(model.OrderStatusSent) {
		s.errMsg = fmt.Sprintf("Cannot send a %s order.", snapshot.Status)
		s.mu.Unlock()
		return TransitionResult{ID: id, Outcome: OutcomeRejected, Err: snapshot.Status.CheckTransition(model.OrderStatusSent)}
	}
	s.errMsg = ""
	s.mu.Unlock()

	if err := s.api.SendOrder(ctx, snapshot); err != nil {
		s.opts.logger.ErrorContext(ctx, "send order failed", slog.Int64("id", id), slog.Any("error", err))
		s.setError(client.Message(err, sendFailedMessage))
		return TransitionResult{ID: id, Outcome: OutcomeReverted, Err: err}
	}

	s.mu.Lock()
	if idx := s.indexLocked(id); idx >= 0 && !s.closed {
		s.items[idx].Status = model.OrderStatusSent
	}
	s.mu.Unlock()

	res := TransitionResult{ID: id, Outcome: OutcomeConfirmed}
	if s.opts.reloadOnSuccess {
		res.Reconciled = s.Load(ctx) == nil
	}
	return res
}

// Outgoing lists orders still waiting to be sent.
func (s *OrderStore) Outgoing() []model.Order {
	var out []model.Order
	for _, o := range s.Snapshot() {
		if o.Status == model.OrderStatusProcessing {
			out = append(out, o)
		}
	}
	return out
}
