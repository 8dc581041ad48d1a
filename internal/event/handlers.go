package event

import (
	"context"
	"log/slog"
)

func (s *Service) handlePurchaseCreatedEvent(ctx context.Context, ev PurchaseCreatedEvent) error {
	s.logger.InfoContext(ctx, "handling purchase created event", slog.Any("event", ev))
	return nil
}

func (s *Service) handlePurchaseStatusChangedEvent(ctx context.Context, ev PurchaseStatusChangedEvent) error {
	s.logger.InfoContext(ctx, "handling purchase status changed event", slog.Any("event", ev))
	return nil
}

func (s *Service) handleOrderCreatedEvent(ctx context.Context, ev OrderCreatedEvent) error {
	s.logger.InfoContext(ctx, "handling order created event", slog.Any("event", ev))
	return nil
}

func (s *Service) handleOrderStatusChangedEvent(ctx context.Context, ev OrderStatusChangedEvent) error {
	s.logger.InfoContext(ctx, "handling order status changed event", slog.Any("event", ev))
	return nil
}

func (s *Service) handleOrderSentEvent(ctx context.Context, ev OrderSentEvent) error {
	level := slog.LevelInfo
	if ev.RemainingStock <= 0 {
		level = slog.LevelWarn
	}
	s.logger.Log(ctx, level, "handling order sent event",
		slog.Int64("product_id", ev.ProductID),
		slog.Float64("remaining_stock", ev.RemainingStock),
		slog.Any("event", ev))
	return nil
}
