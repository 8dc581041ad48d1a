package main

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/tuanvumaihuynh/inventory-management/internal/model"
	"github.com/tuanvumaihuynh/inventory-management/internal/summary"
)

const dateLayout = time.DateOnly

func newTable(w io.Writer, header string) *tabwriter.Writer {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, header)
	return tw
}

func renderSummary(w io.Writer, s *summary.Summary, purchases []model.Purchase) error {
	tw := newTable(w, "ID\tPRODUCT\tCATEGORY\tSUPPLIERS\tUNIT PRICE\tIN STOCK\tPENDING\tLAST PURCHASE")
	for _, p := range s.Products() {
		last := summary.NotAvailable
		if latest, ok := summary.LatestPurchase(purchases, p.ProductID); ok && !latest.PurchaseDate.IsZero() {
			last = latest.PurchaseDate.Format(dateLayout)
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			p.ProductID, p.ProductName, p.CategoryName, p.SuppliersList(),
			num(p.UnitPrice), num(p.TotalQuantity), num(p.TotalQuantityPending), last)
	}
	return tw.Flush()
}

func renderInventory(w io.Writer, products []model.Product) error {
	tw := newTable(w, "ID\tPRODUCT\tCATEGORY\tUNIT PRICE\tIN STOCK")
	for _, p := range products {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n",
			p.ID, orNotAvailable(p.Name), orNotAvailable(p.CategoryName), num(p.UnitPrice), num(p.QuantityInStock))
	}
	return tw.Flush()
}

func renderPurchases(w io.Writer, purchases []model.Purchase) error {
	tw := newTable(w, "ID\tPRODUCT\tSUPPLIER\tQUANTITY\tUNIT PRICE\tTOTAL\tDATE\tSTATUS")
	for _, p := range purchases {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			p.ID, p.ProductName, p.SupplierName, num(p.Quantity), num(p.UnitPrice),
			num(p.TotalCost()), date(p.PurchaseDate), p.Status)
	}
	return tw.Flush()
}

func renderOrders(w io.Writer, orders []model.Order) error {
	tw := newTable(w, "ID\tPRODUCT\tCUSTOMER\tQUANTITY\tUNIT PRICE\tTOTAL\tDATE\tSTATUS")
	for _, o := range orders {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			o.ID, o.ProductName, o.CustomerName, num(o.Quantity), num(o.UnitPrice),
			num(o.TotalPrice), date(o.OrderDate), o.Status)
	}
	return tw.Flush()
}

func orNotAvailable(v string) string {
	if v == "" {
		return summary.NotAvailable
	}
	return v
}

func num(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func date(d model.Date) string {
	if d.IsZero() {
		return ""
	}
	return d.Format(dateLayout)
}
