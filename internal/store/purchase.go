package store

import (
	"context"

	"github.com/tuanvumaihuynh/inventory-management/internal/model"
	"github.com/tuanvumaihuynh/inventory-management/internal/summary"
)

type PurchaseAPI interface {
	ListPurchases(ctx context.Context) ([]model.Purchase, error)
	UpdatePurchaseStatus(ctx context.Context, id int64, status model.PurchaseStatus) error
}

// PurchaseStore is the client-side purchase list.
type PurchaseStore struct {
	*listStore[model.Purchase, model.PurchaseStatus]
}

func NewPurchaseStore(api PurchaseAPI, opts ...Option) *PurchaseStore {
	return &PurchaseStore{
		listStore: &listStore[model.Purchase, model.PurchaseStatus]{
			kind:     "purchase",
			opts:     newOptions(opts),
			fetch:    api.ListPurchases,
			put:      api.UpdatePurchaseStatus,
			idOf:     func(p model.Purchase) int64 { return p.ID },
			statusOf: func(p model.Purchase) model.PurchaseStatus { return p.Status },
			withStatus: func(p model.Purchase, s model.PurchaseStatus) model.Purchase {
				p.Status = s
				return p
			},
		},
	}
}

// Receive marks a pending purchase as arrived.
func (s *PurchaseStore) Receive(ctx context.Context, id int64) TransitionResult {
	return s.Transition(ctx, id, model.PurchaseStatusIncoming)
}

// Return rejects a pending purchase.
func (s *PurchaseStore) Return(ctx context.Context, id int64) TransitionResult {
	return s.Transition(ctx, id, model.PurchaseStatusReturned)
}

// Incoming lists purchases still waiting to be received or returned.
func (s *PurchaseStore) Incoming() []model.Purchase {
	var out []model.Purchase
	for _, p := range s.Snapshot() {
		if p.Status == model.PurchaseStatusPending {
			out = append(out, p)
		}
	}
	return out
}

// Summary aggregates the current list per product.
func (s *PurchaseStore) Summary() *summary.Summary {
	return summary.Summarize(s.Snapshot())
}
