package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/tuanvumaihuynh/inventory-management/internal/apperr"
	"github.com/tuanvumaihuynh/inventory-management/internal/event"
	"github.com/tuanvumaihuynh/inventory-management/internal/model"
	"github.com/tuanvumaihuynh/inventory-management/internal/repository"
	"github.com/tuanvumaihuynh/inventory-management/internal/storage/db"
	"github.com/tuanvumaihuynh/inventory-management/pkg/validator"
)

type CreatePurchaseParams struct {
	ProductName  string    `validate:"required,notblank,max=200"`
	SupplierName string    `validate:"required,notblank,max=200"`
	CategoryID   int64     `validate:"gt=0"`
	Quantity     float64   `validate:"gt=0"`
	UnitPrice    float64   `validate:"gte=0"`
	PurchaseDate time.Time `validate:"required"`
}

type UpdatePurchaseStatusParams struct {
	ID     int64                `validate:"gt=0"`
	Status model.PurchaseStatus `validate:"enum"`
}

type PurchaseService interface {
	ListPurchases(ctx context.Context) ([]model.Purchase, error)
	CreatePurchase(ctx context.Context, params CreatePurchaseParams) (model.Purchase, error)
	UpdatePurchaseStatus(ctx context.Context, params UpdatePurchaseStatusParams) (model.Purchase, error)
}

type purchaseService struct {
	db            db.DB
	validator     validator.Validator
	categoryRepo  repository.CategoryRepository
	productRepo   repository.ProductRepository
	purchaseRepo  repository.PurchaseRepository
	outboxMsgRepo repository.OutboxMsgRepository
}

func NewPurchaseService(
	db db.DB,
	validator validator.Validator,
	categoryRepo repository.CategoryRepository,
	productRepo repository.ProductRepository,
	purchaseRepo repository.PurchaseRepository,
	outboxMsgRepo repository.OutboxMsgRepository,
) PurchaseService {
	return &purchaseService{
		db:            db,
		validator:     validator,
		categoryRepo:  categoryRepo,
		productRepo:   productRepo,
		purchaseRepo:  purchaseRepo,
		outboxMsgRepo: outboxMsgRepo,
	}
}

func (s *purchaseService) ListPurchases(ctx context.Context) ([]model.Purchase, error) {
	purchases, err := s.purchaseRepo.ListPurchases(ctx)
	if err != nil {
		return nil, fmt.Errorf("purchase repository list purchases: %w", err)
	}

	return purchases, nil
}

// CreatePurchase records a pending purchase. The product is looked up by name
// within the category and created on first purchase; its unit price follows
// the latest purchase.
func (s *purchaseService) CreatePurchase(ctx context.Context, params CreatePurchaseParams) (model.Purchase, error) {
	params.ProductName = strings.TrimSpace(params.ProductName)
	params.SupplierName = strings.TrimSpace(params.SupplierName)
	if err := s.validator.Validate(params); err != nil {
		return model.Purchase{}, fmt.Errorf("validate create purchase params: %w", err)
	}

	now := time.Now()
	var purchaseID int64

	if err := s.db.WithTx(ctx, func(db db.DB) error {
		if _, err := s.categoryRepo.WithDB(db).GetCategory(ctx, params.CategoryID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return apperr.CategoryNotFoundErr
			}
			return fmt.Errorf("category repository get category: %w", err)
		}

		productID, err := s.upsertProduct(ctx, s.productRepo.WithDB(db), params, now)
		if err != nil {
			return err
		}

		purchaseID, err = s.purchaseRepo.
			WithDB(db).
			CreatePurchase(ctx, repository.CreatePurchaseParams{
				ProductID:    productID,
				SupplierName: params.SupplierName,
				Quantity:     params.Quantity,
				UnitPrice:    params.UnitPrice,
				PurchaseDate: params.PurchaseDate,
				Status:       model.PurchaseStatusPending,
				CreatedAt:    now,
			})
		if err != nil {
			return fmt.Errorf("purchase repository create purchase: %w", err)
		}

		return publish(ctx, s.outboxMsgRepo.WithDB(db), event.TopicPurchaseCreated, productID, event.PurchaseCreatedEvent{
			PurchaseID:   purchaseID,
			ProductID:    productID,
			ProductName:  params.ProductName,
			SupplierName: params.SupplierName,
			Quantity:     params.Quantity,
			UnitPrice:    params.UnitPrice,
			PurchaseDate: params.PurchaseDate,
		})
	}); err != nil {
		return model.Purchase{}, fmt.Errorf("db with tx: %w", err)
	}

	purchase, err := s.purchaseRepo.GetPurchase(ctx, purchaseID)
	if err != nil {
		return model.Purchase{}, fmt.Errorf("purchase repository get purchase: %w", err)
	}

	return purchase, nil
}

func (s *purchaseService) upsertProduct(
	ctx context.Context,
	productRepo repository.ProductRepository,
	params CreatePurchaseParams,
	now time.Time,
) (int64, error) {
	product, err := productRepo.FindProductByName(ctx, params.ProductName, params.CategoryID)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		id, err := productRepo.CreateProduct(ctx, repository.CreateProductParams{
			Name:       params.ProductName,
			CategoryID: params.CategoryID,
			UnitPrice:  params.UnitPrice,
			CreatedAt:  now,
		})
		if err != nil {
			return 0, fmt.Errorf("product repository create product: %w", err)
		}
		return id, nil
	case err != nil:
		return 0, fmt.Errorf("product repository find product by name: %w", err)
	}

	if product.UnitPrice != params.UnitPrice {
		if err := productRepo.UpdateProductUnitPrice(ctx, product.ID, params.UnitPrice, now); err != nil {
			return 0, fmt.Errorf("product repository update product unit price: %w", err)
		}
	}

	return product.ID, nil
}

func (s *purchaseService) UpdatePurchaseStatus(ctx context.Context, params UpdatePurchaseStatusParams) (model.Purchase, error) {
	if !params.Status.Valid() {
		return model.Purchase{}, apperr.InvalidStatusErr
	}
	if err := s.validator.Validate(params); err != nil {
		return model.Purchase{}, fmt.Errorf("validate update purchase status params: %w", err)
	}

	if err := s.db.WithTx(ctx, func(db db.DB) error {
		purchaseRepo := s.purchaseRepo.WithDB(db)

		current, err := purchaseRepo.GetPurchaseForUpdate(ctx, params.ID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return apperr.PurchaseNotFoundErr
			}
			return fmt.Errorf("purchase repository get purchase for update: %w", err)
		}

		if err := current.Status.CheckTransition(params.Status); err != nil {
			return apperr.InvalidStatusTransitionErr.WrapParent(err)
		}

		if err := purchaseRepo.UpdatePurchaseStatus(ctx, params.ID, params.Status, time.Now()); err != nil {
			return fmt.Errorf("purchase repository update purchase status: %w", err)
		}

		return publish(ctx, s.outboxMsgRepo.WithDB(db), event.TopicPurchaseStatusChanged, current.ProductID, event.PurchaseStatusChangedEvent{
			PurchaseID: current.ID,
			ProductID:  current.ProductID,
			From:       current.Status.String(),
			To:         params.Status.String(),
		})
	}); err != nil {
		return model.Purchase{}, fmt.Errorf("db with tx: %w", err)
	}

	purchase, err := s.purchaseRepo.GetPurchase(ctx, params.ID)
	if err != nil {
		return model.Purchase{}, fmt.Errorf("purchase repository get purchase: %w", err)
	}

	return purchase, nil
}
