// Package summary folds flat purchase lists into per-product stock summaries.
package summary

import (
	"strings"

	"github.com/tuanvumaihuynh/inventory-management/internal/model"
)

// NotAvailable replaces missing product and category names.
const NotAvailable = "N/A"

// ProductSummary is the per-product view derived from purchases. It is
// recomputed from the current list and never persisted.
type ProductSummary struct {
	ProductID            int64
	ProductName          string
	CategoryID           int64
	CategoryName         string
	UnitPrice            float64
	TotalQuantity        float64
	TotalQuantityPending float64

	suppliers    []string
	supplierSeen map[string]struct{}
}

// Suppliers returns the distinct supplier names in first-seen order.
func (p *ProductSummary) Suppliers() []string {
	return append([]string(nil), p.suppliers...)
}

// SuppliersList renders the supplier set the way list views show it.
func (p *ProductSummary) SuppliersList() string {
	return strings.Join(p.suppliers, ", ")
}

func (p *ProductSummary) addSupplier(name string) {
	if name == "" {
		return
	}
	if _, ok := p.supplierSeen[name]; ok {
		return
	}
	p.supplierSeen[name] = struct{}{}
	p.suppliers = append(p.suppliers, name)
}

// Summary maps product ids to summaries, remembering insertion order.
type Summary struct {
	order []int64
	byID  map[int64]*ProductSummary
}

// Summarize builds the summary for purchases, in any order.
func Summarize(purchases []model.Purchase) *Summary {
	s := &Summary{byID: make(map[int64]*ProductSummary)}

	for _, p := range purchases {
		entry, ok := s.byID[p.ProductID]
		if !ok {
			entry = &ProductSummary{
				ProductID:    p.ProductID,
				ProductName:  orNotAvailable(p.ProductName),
				CategoryID:   p.CategoryID,
				CategoryName: orNotAvailable(p.CategoryName),
				supplierSeen: make(map[string]struct{}),
			}
			s.byID[p.ProductID] = entry
			s.order = append(s.order, p.ProductID)
		}

		// price is expected invariant per product; last write wins
		entry.UnitPrice = p.UnitPrice

		switch p.Status {
		case model.PurchaseStatusIncoming:
			entry.TotalQuantity += p.Quantity
		case model.PurchaseStatusPending:
			entry.TotalQuantityPending += p.Quantity
		}
		entry.addSupplier(p.SupplierName)
	}

	return s
}

func (s *Summary) Len() int {
	return len(s.order)
}

func (s *Summary) Get(productID int64) (*ProductSummary, bool) {
	p, ok := s.byID[productID]
	return p, ok
}

// Products returns the summaries in the order products were first seen.
func (s *Summary) Products() []*ProductSummary {
	out := make([]*ProductSummary, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.byID[id])
	}
	return out
}

// LatestPurchase returns the most recent purchase of productID by purchase
// date. Ties keep the one listed first.
func LatestPurchase(purchases []model.Purchase, productID int64) (model.Purchase, bool) {
	var (
		latest model.Purchase
		found  bool
	)
	for _, p := range purchases {
		if p.ProductID != productID {
			continue
		}
		if !found || p.PurchaseDate.After(latest.PurchaseDate.Time) {
			latest = p
			found = true
		}
	}
	return latest, found
}

func orNotAvailable(v string) string {
	if v == "" {
		return NotAvailable
	}
	return v
}
