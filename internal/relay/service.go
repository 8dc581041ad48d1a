package relay

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/tuanvumaihuynh/inventory-management/internal/config"
	"github.com/tuanvumaihuynh/inventory-management/internal/repository"
	"github.com/tuanvumaihuynh/inventory-management/internal/storage/db"
	"github.com/tuanvumaihuynh/inventory-management/internal/storage/mq"
	"github.com/tuanvumaihuynh/inventory-management/pkg/ptr"
)

// Service moves committed outbox rows to Kafka. Rows are locked with SKIP
// LOCKED, so several relays can share one table.
type Service struct {
	cfg           config.Relay
	logger        *slog.Logger
	db            db.DB
	outboxMsgRepo repository.OutboxMsgRepository
	mqProducer    mq.Producer

	stopChan chan struct{}
}

func NewService(
	cfg config.Relay,
	logger *slog.Logger,
	db db.DB,
	outboxMsgRepo repository.OutboxMsgRepository,
	mqProducer mq.Producer,
) *Service {
	return &Service{
		cfg:           cfg,
		logger:        logger.With(slog.String("service", "relay")),
		db:            db,
		outboxMsgRepo: outboxMsgRepo,
		mqProducer:    mqProducer,
		stopChan:      make(chan struct{}),
	}
}

type CleanupFunc func()

func (s *Service) Run(ctx context.Context) CleanupFunc {
	ctx, cancel := context.WithCancel(ctx)

	stoppedChan := make(chan struct{})
	go func() {
		defer close(stoppedChan)
		s.run(ctx)
	}()

	return func() {
		close(s.stopChan)
		select {
		case <-stoppedChan:
		case <-time.After(s.cfg.ShutdownTimeout):
			cancel()
			<-stoppedChan
		}
		cancel()
	}
}

func (s *Service) run(ctx context.Context) {
	ticker := time.NewTicker(s.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-s.stopChan:
			return
		case <-ticker.C:
			n, err := s.RelayBatch(ctx)
			if err != nil {
				s.logger.ErrorContext(ctx, "error relaying outbox msgs", slog.Any("error", err))
				continue
			}
			if n > 0 {
				s.logger.DebugContext(ctx, "relayed outbox msgs", slog.Int("count", n))
			}
		}
	}
}

// RelayBatch produces one batch of unprocessed messages and records the
// outcome of each. It returns the number of messages attempted.
func (s *Service) RelayBatch(ctx context.Context) (int, error) {
	var count int

	err := s.db.WithTx(ctx, func(db db.DB) error {
		outboxMsgRepo := s.outboxMsgRepo.WithDB(db)

		outboxMsgs, err := outboxMsgRepo.ListUnprocessedOutboxMsgs(ctx, repository.ListUnprocessedOutboxMsgsParams{
			//nolint:gosec
			BatchSize: int32(s.cfg.BatchSize),
		})
		if err != nil {
			return fmt.Errorf("list unprocessed outbox msgs: %w", err)
		}

		count = len(outboxMsgs)
		if count == 0 {
			return nil
		}

		items := s.produceAll(ctx, outboxMsgs)

		if err := outboxMsgRepo.BulkUpdateOutboxMsgs(ctx, repository.BulkUpdateOutboxMsgsParams{
			Items: items,
		}); err != nil {
			return fmt.Errorf("bulk update outbox msgs: %w", err)
		}

		return nil
	})

	return count, err
}

func (s *Service) produceAll(ctx context.Context, outboxMsgs []repository.ListUnprocessedOutboxMsgsResult) []repository.BulkUpdateOutboxMsgsItem {
	items := make([]repository.BulkUpdateOutboxMsgsItem, len(outboxMsgs))

	var wg sync.WaitGroup
	for i, msg := range outboxMsgs {
		wg.Go(func() {
			items[i] = repository.BulkUpdateOutboxMsgsItem{ID: msg.ID}

			err := s.mqProducer.Produce(ctx, mq.ProduceMsg{
				Topic:        msg.Topic,
				Headers:      msg.Headers,
				Payload:      msg.Payload,
				PartitionKey: msg.PartitionKey,
			})
			if err != nil {
				s.logger.ErrorContext(ctx,
					"error producing message",
					slog.String("outbox_msg_id", msg.ID.String()),
					slog.String("topic", msg.Topic),
					slog.Any("error", err),
				)
				items[i].Error = ptr.New(err.Error())
			}
		})
	}
	wg.Wait()

	return items
}
