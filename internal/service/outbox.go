package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/tuanvumaihuynh/inventory-management/internal/repository"
	"github.com/tuanvumaihuynh/inventory-management/pkg/outbox"
	"github.com/tuanvumaihuynh/inventory-management/pkg/ptr"
)

// publish stores ev in the outbox through repo, which must be bound to the
// caller's transaction. Events of the same product share a partition.
func publish(ctx context.Context, repo repository.OutboxMsgRepository, topic string, productID int64, ev any) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal %s event: %w", topic, err)
	}

	if err := repo.CreateOutboxMsg(ctx, repository.CreateOutboxMsgParams{
		Topic:        topic,
		Headers:      outbox.BuildHeaders(ctx),
		Payload:      payload,
		PartitionKey: ptr.New(strconv.FormatInt(productID, 10)),
	}); err != nil {
		return fmt.Errorf("outbox msg repository create outbox msg: %w", err)
	}

	return nil
}
