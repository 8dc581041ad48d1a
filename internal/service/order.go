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

type CreateOrderParams struct {
	ProductID    int64     `validate:"gt=0"`
	CustomerName string    `validate:"required,notblank,max=200"`
	Quantity     float64   `validate:"gt=0"`
	UnitPrice    float64   `validate:"gte=0"`
	OrderDate    time.Time `validate:"required"`
}

type UpdateOrderStatusParams struct {
	ID     int64             `validate:"gt=0"`
	Status model.OrderStatus `validate:"enum"`
}

type OrderService interface {
	ListOrders(ctx context.Context) ([]model.Order, error)
	CreateOrder(ctx context.Context, params CreateOrderParams) (model.Order, error)
	UpdateOrderStatus(ctx context.Context, params UpdateOrderStatusParams) (model.Order, error)
	// SendOrder ships a processing order, provided stock covers its quantity.
	SendOrder(ctx context.Context, id int64) (model.Order, error)
}

type orderService struct {
	db            db.DB
	validator     validator.Validator
	productRepo   repository.ProductRepository
	orderRepo     repository.OrderRepository
	outboxMsgRepo repository.OutboxMsgRepository
}

func NewOrderService(
	db db.DB,
	validator validator.Validator,
	productRepo repository.ProductRepository,
	orderRepo repository.OrderRepository,
	outboxMsgRepo repository.OutboxMsgRepository,
) OrderService {
	return &orderService{
		db:            db,
		validator:     validator,
		productRepo:   productRepo,
		orderRepo:     orderRepo,
		outboxMsgRepo: outboxMsgRepo,
	}
}

func (s *orderService) ListOrders(ctx context.Context) ([]model.Order, error) {
	orders, err := s.orderRepo.ListOrders(ctx)
	if err != nil {
		return nil, fmt.Errorf("order repository list orders: %w", err)
	}

	return orders, nil
}

func (s *orderService) CreateOrder(ctx context.Context, params CreateOrderParams) (model.Order, error) {
	params.CustomerName = strings.TrimSpace(params.CustomerName)
	if err := s.validator.Validate(params); err != nil {
		return model.Order{}, fmt.Errorf("validate create order params: %w", err)
	}

	var orderID int64

	if err := s.db.WithTx(ctx, func(db db.DB) error {
		if _, err := s.productRepo.WithDB(db).GetProduct(ctx, params.ProductID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return apperr.ProductNotFoundErr
			}
			return fmt.Errorf("product repository get product: %w", err)
		}

		var err error
		orderID, err = s.orderRepo.
			WithDB(db).
			CreateOrder(ctx, repository.CreateOrderParams{
				ProductID:    params.ProductID,
				CustomerName: params.CustomerName,
				Quantity:     params.Quantity,
				UnitPrice:    params.UnitPrice,
				OrderDate:    params.OrderDate,
				Status:       model.OrderStatusProcessing,
				CreatedAt:    time.Now(),
			})
		if err != nil {
			return fmt.Errorf("order repository create order: %w", err)
		}

		return publish(ctx, s.outboxMsgRepo.WithDB(db), event.TopicOrderCreated, params.ProductID, event.OrderCreatedEvent{
			OrderID:      orderID,
			ProductID:    params.ProductID,
			CustomerName: params.CustomerName,
			Quantity:     params.Quantity,
			UnitPrice:    params.UnitPrice,
			OrderDate:    params.OrderDate,
		})
	}); err != nil {
		return model.Order{}, fmt.Errorf("db with tx: %w", err)
	}

	return s.getOrder(ctx, orderID)
}

func (s *orderService) UpdateOrderStatus(ctx context.Context, params UpdateOrderStatusParams) (model.Order, error) {
	if !params.Status.Valid() {
		return model.Order{}, apperr.InvalidStatusErr
	}
	if err := s.validator.Validate(params); err != nil {
		return model.Order{}, fmt.Errorf("validate update order status params: %w", err)
	}

	// shipping has stock side effects
	if params.Status == model.OrderStatusSent {
		return s.SendOrder(ctx, params.ID)
	}

	if err := s.db.WithTx(ctx, func(db db.DB) error {
		current, err := s.lockOrder(ctx, s.orderRepo.WithDB(db), params.ID, params.Status)
		if err != nil {
			return err
		}

		if err := s.orderRepo.WithDB(db).UpdateOrderStatus(ctx, params.ID, params.Status, time.Now()); err != nil {
			return fmt.Errorf("order repository update order status: %w", err)
		}

		return publish(ctx, s.outboxMsgRepo.WithDB(db), event.TopicOrderStatusChanged, current.ProductID, event.OrderStatusChangedEvent{
			OrderID:   current.ID,
			ProductID: current.ProductID,
			From:      current.Status.String(),
			To:        params.Status.String(),
		})
	}); err != nil {
		return model.Order{}, fmt.Errorf("db with tx: %w", err)
	}

	return s.getOrder(ctx, params.ID)
}

func (s *orderService) SendOrder(ctx context.Context, id int64) (model.Order, error) {
	if err := s.db.WithTx(ctx, func(db db.DB) error {
		orderRepo := s.orderRepo.WithDB(db)
		productRepo := s.productRepo.WithDB(db)
		outboxMsgRepo := s.outboxMsgRepo.WithDB(db)

		current, err := s.lockOrder(ctx, orderRepo, id, model.OrderStatusSent)
		if err != nil {
			return err
		}

		// serialize concurrent shipments of the same product
		if err := productRepo.LockProduct(ctx, current.ProductID); err != nil {
			return fmt.Errorf("product repository lock product: %w", err)
		}

		product, err := productRepo.GetProduct(ctx, current.ProductID)
		if err != nil {
			return fmt.Errorf("product repository get product: %w", err)
		}

		if product.QuantityInStock < current.Quantity {
			return apperr.InsufficientStockErr(product.Name, current.Quantity, product.QuantityInStock)
		}

		if err := orderRepo.UpdateOrderStatus(ctx, id, model.OrderStatusSent, time.Now()); err != nil {
			return fmt.Errorf("order repository update order status: %w", err)
		}

		if err := publish(ctx, outboxMsgRepo, event.TopicOrderStatusChanged, current.ProductID, event.OrderStatusChangedEvent{
			OrderID:   current.ID,
			ProductID: current.ProductID,
			From:      current.Status.String(),
			To:        model.OrderStatusSent.String(),
		}); err != nil {
			return err
		}

		return publish(ctx, outboxMsgRepo, event.TopicOrderSent, current.ProductID, event.OrderSentEvent{
			OrderID:        current.ID,
			ProductID:      current.ProductID,
			ProductName:    product.Name,
			CustomerName:   current.CustomerName,
			Quantity:       current.Quantity,
			RemainingStock: product.QuantityInStock - current.Quantity,
		})
	}); err != nil {
		return model.Order{}, fmt.Errorf("db with tx: %w", err)
	}

	return s.getOrder(ctx, id)
}

// lockOrder loads the order for update and checks it may move to target.
func (s *orderService) lockOrder(ctx context.Context, orderRepo repository.OrderRepository, id int64, target model.OrderStatus) (model.Order, error) {
	current, err := orderRepo.GetOrderForUpdate(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return model.Order{}, apperr.OrderNotFoundErr
		}
		return model.Order{}, fmt.Errorf("order repository get order for update: %w", err)
	}

	if err := current.Status.CheckTransition(target); err != nil {
		return model.Order{}, apperr.InvalidStatusTransitionErr.WrapParent(err)
	}

	return current, nil
}

func (s *orderService) getOrder(ctx context.Context, id int64) (model.Order, error) {
	order, err := s.orderRepo.GetOrder(ctx, id)
	if err != nil {
		return model.Order{}, fmt.Errorf("order repository get order: %w", err)
	}

	return order, nil
}
