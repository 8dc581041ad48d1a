package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/tuanvumaihuynh/inventory-management/internal/model"
	"github.com/tuanvumaihuynh/inventory-management/internal/repository"
	"github.com/tuanvumaihuynh/inventory-management/internal/storage/db"
)

// fakeDB runs transactions inline. Only WithTx is used by the services.
type fakeDB struct {
	db.DB
	txCount int
}

func (f *fakeDB) WithTx(_ context.Context, txFunc func(db.DB) error) error {
	f.txCount++
	return txFunc(f)
}

// memoryRepo backs every repository interface with maps.
type memoryRepo struct {
	categories map[int64]model.Category
	products   map[int64]model.Product
	purchases  map[int64]model.Purchase
	orders     map[int64]model.Order
	outbox     []repository.CreateOutboxMsgParams
	nextID     int64
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{
		categories: map[int64]model.Category{
			1: {ID: 1, Name: "Dry Goods"},
			2: {ID: 2, Name: "Dairy"},
		},
		products:  make(map[int64]model.Product),
		purchases: make(map[int64]model.Purchase),
		orders:    make(map[int64]model.Order),
		nextID:    100,
	}
}

func (r *memoryRepo) id() int64 {
	r.nextID++
	return r.nextID
}

func (r *memoryRepo) topics() []string {
	topics := make([]string, 0, len(r.outbox))
	for _, msg := range r.outbox {
		topics = append(topics, msg.Topic)
	}
	return topics
}

func (r *memoryRepo) stock(productID int64) float64 {
	var stock float64
	for _, p := range r.purchases {
		if p.ProductID == productID && p.Status == model.PurchaseStatusIncoming {
			stock += p.Quantity
		}
	}
	for _, o := range r.orders {
		if o.ProductID == productID && o.Status == model.OrderStatusSent {
			stock -= o.Quantity
		}
	}
	return stock
}

type categoryRepo struct{ *memoryRepo }

func (r categoryRepo) WithDB(db.DB) repository.CategoryRepository { return r }

func (r categoryRepo) ListCategories(context.Context) ([]model.Category, error) {
	out := make([]model.Category, 0, len(r.categories))
	for _, c := range r.categories {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r categoryRepo) GetCategory(_ context.Context, id int64) (model.Category, error) {
	c, ok := r.categories[id]
	if !ok {
		return model.Category{}, repository.ErrNotFound
	}
	return c, nil
}

type productRepo struct{ *memoryRepo }

func (r productRepo) WithDB(db.DB) repository.ProductRepository { return r }

func (r productRepo) ListProducts(ctx context.Context) ([]model.Product, error) {
	out := make([]model.Product, 0, len(r.products))
	for id := range r.products {
		p, _ := r.GetProduct(ctx, id)
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r productRepo) GetProduct(_ context.Context, id int64) (model.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return model.Product{}, repository.ErrNotFound
	}
	p.CategoryName = r.categories[p.CategoryID].Name
	p.QuantityInStock = r.stock(id)
	return p, nil
}

func (r productRepo) FindProductByName(ctx context.Context, name string, categoryID int64) (model.Product, error) {
	for id, p := range r.products {
		if strings.EqualFold(p.Name, name) && p.CategoryID == categoryID {
			return r.GetProduct(ctx, id)
		}
	}
	return model.Product{}, repository.ErrNotFound
}

func (r productRepo) CreateProduct(_ context.Context, params repository.CreateProductParams) (int64, error) {
	id := r.id()
	r.products[id] = model.Product{
		ID:         id,
		Name:       params.Name,
		CategoryID: params.CategoryID,
		UnitPrice:  params.UnitPrice,
		CreatedAt:  params.CreatedAt,
		UpdatedAt:  params.CreatedAt,
	}
	return id, nil
}

func (r productRepo) UpdateProductUnitPrice(_ context.Context, id int64, unitPrice float64, updatedAt time.Time) error {
	p, ok := r.products[id]
	if !ok {
		return repository.ErrNotFound
	}
	p.UnitPrice = unitPrice
	p.UpdatedAt = updatedAt
	r.products[id] = p
	return nil
}

func (r productRepo) LockProduct(_ context.Context, id int64) error {
	if _, ok := r.products[id]; !ok {
		return repository.ErrNotFound
	}
	return nil
}

type purchaseRepo struct{ *memoryRepo }

func (r purchaseRepo) WithDB(db.DB) repository.PurchaseRepository { return r }

func (r purchaseRepo) ListPurchases(context.Context) ([]model.Purchase, error) {
	out := make([]model.Purchase, 0, len(r.purchases))
	for _, p := range r.purchases {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r purchaseRepo) GetPurchase(_ context.Context, id int64) (model.Purchase, error) {
	p, ok := r.purchases[id]
	if !ok {
		return model.Purchase{}, repository.ErrNotFound
	}
	return p, nil
}

func (r purchaseRepo) GetPurchaseForUpdate(ctx context.Context, id int64) (model.Purchase, error) {
	return r.GetPurchase(ctx, id)
}

func (r purchaseRepo) CreatePurchase(_ context.Context, params repository.CreatePurchaseParams) (int64, error) {
	id := r.id()
	product := r.products[params.ProductID]
	r.purchases[id] = model.Purchase{
		ID:           id,
		ProductID:    params.ProductID,
		ProductName:  product.Name,
		CategoryID:   product.CategoryID,
		CategoryName: r.categories[product.CategoryID].Name,
		SupplierName: params.SupplierName,
		Quantity:     params.Quantity,
		UnitPrice:    params.UnitPrice,
		PurchaseDate: model.NewDate(params.PurchaseDate),
		Status:       params.Status,
		CreatedAt:    params.CreatedAt,
		UpdatedAt:    params.CreatedAt,
	}
	return id, nil
}

func (r purchaseRepo) UpdatePurchaseStatus(_ context.Context, id int64, status model.PurchaseStatus, updatedAt time.Time) error {
	p, ok := r.purchases[id]
	if !ok {
		return repository.ErrNotFound
	}
	p.Status = status
	p.UpdatedAt = updatedAt
	r.purchases[id] = p
	return nil
}

type orderRepo struct{ *memoryRepo }

func (r orderRepo) WithDB(db.DB) repository.OrderRepository { return r }

func (r orderRepo) ListOrders(context.Context) ([]model.Order, error) {
	out := make([]model.Order, 0, len(r.orders))
	for _, o := range r.orders {
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r orderRepo) GetOrder(_ context.Context, id int64) (model.Order, error) {
	o, ok := r.orders[id]
	if !ok {
		return model.Order{}, repository.ErrNotFound
	}
	return o, nil
}

func (r orderRepo) GetOrderForUpdate(ctx context.Context, id int64) (model.Order, error) {
	return r.GetOrder(ctx, id)
}

func (r orderRepo) CreateOrder(_ context.Context, params repository.CreateOrderParams) (int64, error) {
	id := r.id()
	product := r.products[params.ProductID]
	r.orders[id] = model.Order{
		ID:           id,
		ProductID:    params.ProductID,
		ProductName:  product.Name,
		CustomerName: params.CustomerName,
		Quantity:     params.Quantity,
		UnitPrice:    params.UnitPrice,
		TotalPrice:   params.Quantity * params.UnitPrice,
		OrderDate:    model.NewDate(params.OrderDate),
		Status:       params.Status,
		CreatedAt:    params.CreatedAt,
		UpdatedAt:    params.CreatedAt,
	}
	return id, nil
}

func (r orderRepo) UpdateOrderStatus(_ context.Context, id int64, status model.OrderStatus, updatedAt time.Time) error {
	o, ok := r.orders[id]
	if !ok {
		return repository.ErrNotFound
	}
	o.Status = status
	o.UpdatedAt = updatedAt
	r.orders[id] = o
	return nil
}

type outboxRepo struct{ *memoryRepo }

func (r outboxRepo) WithDB(db.DB) repository.OutboxMsgRepository { return r }

func (r outboxRepo) CreateOutboxMsg(_ context.Context, params repository.CreateOutboxMsgParams) error {
	r.outbox = append(r.outbox, params)
	return nil
}

func (r outboxRepo) ListUnprocessedOutboxMsgs(context.Context, repository.ListUnprocessedOutboxMsgsParams) ([]repository.ListUnprocessedOutboxMsgsResult, error) {
	return nil, nil
}

func (r outboxRepo) BulkUpdateOutboxMsgs(context.Context, repository.BulkUpdateOutboxMsgsParams) error {
	return nil
}
