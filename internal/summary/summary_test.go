package summary_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuanvumaihuynh/inventory-management/internal/model"
	"github.com/tuanvumaihuynh/inventory-management/internal/summary"
)

func purchase(id, productID int64, supplier string, qty float64, status model.PurchaseStatus) model.Purchase {
	return model.Purchase{
		ID:           id,
		ProductID:    productID,
		ProductName:  "Flour",
		CategoryID:   1,
		CategoryName: "Dry Goods",
		SupplierName: supplier,
		Quantity:     qty,
		UnitPrice:    2.5,
		Status:       status,
	}
}

func TestSummarize(t *testing.T) {
	t.Run("Should return empty summary for empty input", func(t *testing.T) {
		s := summary.Summarize(nil)

		assert.Equal(t, 0, s.Len())
		assert.Empty(t, s.Products())
	})

	t.Run("Should produce one entry per distinct product", func(t *testing.T) {
		s := summary.Summarize([]model.Purchase{
			purchase(1, 10, "Acme", 5, model.PurchaseStatusPending),
			purchase(2, 20, "Acme", 5, model.PurchaseStatusPending),
			purchase(3, 10, "Acme", 5, model.PurchaseStatusIncoming),
			purchase(4, 30, "Acme", 5, model.PurchaseStatusReturned),
		})

		require.Equal(t, 3, s.Len())
		ids := make([]int64, 0, 3)
		for _, p := range s.Products() {
			ids = append(ids, p.ProductID)
		}
		assert.Equal(t, []int64{10, 20, 30}, ids)
	})

	t.Run("Should bucket quantities by status", func(t *testing.T) {
		s := summary.Summarize([]model.Purchase{
			purchase(1, 10, "Acme", 100, model.PurchaseStatusIncoming),
			purchase(2, 10, "Acme", 40, model.PurchaseStatusIncoming),
			purchase(3, 10, "Bolt", 7, model.PurchaseStatusPending),
			purchase(4, 10, "Crux", 1000, model.PurchaseStatusReturned),
		})

		p, ok := s.Get(10)
		require.True(t, ok)
		assert.Equal(t, 140.0, p.TotalQuantity)
		assert.Equal(t, 7.0, p.TotalQuantityPending)
	})

	t.Run("Should keep zero totals when no status matches", func(t *testing.T) {
		s := summary.Summarize([]model.Purchase{
			purchase(1, 10, "Acme", 100, model.PurchaseStatusReturned),
		})

		p, ok := s.Get(10)
		require.True(t, ok)
		assert.Zero(t, p.TotalQuantity)
		assert.Zero(t, p.TotalQuantityPending)
		assert.Equal(t, "Acme", p.SuppliersList())
	})

	t.Run("Should deduplicate suppliers in insertion order", func(t *testing.T) {
		s := summary.Summarize([]model.Purchase{
			purchase(1, 10, "Bolt", 1, model.PurchaseStatusPending),
			purchase(2, 10, "Acme", 1, model.PurchaseStatusIncoming),
			purchase(3, 10, "Bolt", 1, model.PurchaseStatusIncoming),
			purchase(4, 10, "Acme", 1, model.PurchaseStatusReturned),
		})

		p, _ := s.Get(10)
		assert.Equal(t, []string{"Bolt", "Acme"}, p.Suppliers())
		assert.Equal(t, "Bolt, Acme", p.SuppliersList())
	})

	t.Run("Should substitute N/A for missing names", func(t *testing.T) {
		in := purchase(1, 10, "Acme", 1, model.PurchaseStatusPending)
		in.ProductName = ""
		in.CategoryName = ""

		p, _ := summary.Summarize([]model.Purchase{in}).Get(10)
		assert.Equal(t, summary.NotAvailable, p.ProductName)
		assert.Equal(t, summary.NotAvailable, p.CategoryName)
	})
}

func TestLatestPurchase(t *testing.T) {
	day := func(d int) model.Date {
		return model.NewDate(time.Date(2024, 5, d, 0, 0, 0, 0, time.UTC))
	}
	a := purchase(1, 10, "Acme", 1, model.PurchaseStatusIncoming)
	a.PurchaseDate = day(3)
	b := purchase(2, 10, "Bolt", 1, model.PurchaseStatusIncoming)
	b.PurchaseDate = day(9)
	c := purchase(3, 20, "Crux", 1, model.PurchaseStatusIncoming)
	c.PurchaseDate = day(20)

	got, ok := summary.LatestPurchase([]model.Purchase{a, b, c}, 10)
	require.True(t, ok)
	assert.Equal(t, int64(2), got.ID)

	_, ok = summary.LatestPurchase([]model.Purchase{a, b, c}, 99)
	assert.False(t, ok)
}
