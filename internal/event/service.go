package event

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/tuanvumaihuynh/inventory-management/internal/storage/mq"
)

// Service is the event service.
type Service struct {
	logger     *slog.Logger
	mqConsumer mq.Consumer
}

// New creates a new event service.
func New(
	logger *slog.Logger,
	mqConsumer mq.Consumer,
) *Service {
	return &Service{
		logger:     logger.With(slog.String("service", "event")),
		mqConsumer: mqConsumer,
	}
}

type CleanupFunc func()

func (s *Service) Run(ctx context.Context) (CleanupFunc, error) {
	if err := s.registerHandlers(); err != nil {
		return nil, err
	}

	mqCleanup, err := s.mqConsumer.Run(ctx)
	if err != nil {
		return nil, fmt.Errorf("run mq consumer: %w", err)
	}

	cleanup := func() {
		mqCleanup()
	}

	return cleanup, nil
}

func (s *Service) registerHandlers() error {
	handlers := map[string]mq.HandlerFunc{
		TopicPurchaseCreated:       decodeInto(s.handlePurchaseCreatedEvent),
		TopicPurchaseStatusChanged: decodeInto(s.handlePurchaseStatusChangedEvent),
		TopicOrderCreated:          decodeInto(s.handleOrderCreatedEvent),
		TopicOrderStatusChanged:    decodeInto(s.handleOrderStatusChangedEvent),
		TopicOrderSent:             decodeInto(s.handleOrderSentEvent),
	}

	for _, topic := range Topics {
		if err := s.mqConsumer.RegisterHandler(topic, handlers[topic]); err != nil {
			return fmt.Errorf("register %s event handler: %w", topic, err)
		}
	}

	return nil
}

func decodeInto[T any](handle func(context.Context, T) error) mq.HandlerFunc {
	return func(ctx context.Context, topic string, payload []byte) error {
		var ev T
		if err := json.Unmarshal(payload, &ev); err != nil {
			return fmt.Errorf("unmarshal %s event: %w", topic, err)
		}

		if err := handle(ctx, ev); err != nil {
			return fmt.Errorf("handle %s event: %w", topic, err)
		}

		return nil
	}
}
