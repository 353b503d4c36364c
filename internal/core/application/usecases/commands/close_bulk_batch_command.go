package commands

import (
	"errors"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/pkg/guard"
)

var ErrCloseBulkBatchCommandIsNotConstructed = errors.New(
	"CloseBulkBatchCommand must be created via NewCloseBulkBatchCommand constructor",
)

// CloseBulkBatchCommand represents a request to close a consolidated bulk
// batch and fan its prepared quantities back out to the delegated sub-orders.
//
// The items draft is optional: when present it overwrites the batch's
// prepared quantities before distribution, when absent the quantities already
// stored on the batch are distributed as-is.
type CloseBulkBatchCommand struct { //nolint:recvcheck //using for validation
	batchID    kernel.UUID
	itemsDraft []order.Item
	actor      kernel.Actor

	guard guard.ConstructorGuard
}

// NewCloseBulkBatchCommand creates a command to close a bulk batch.
func NewCloseBulkBatchCommand(
	batchID kernel.UUID,
	itemsDraft []order.Item,
	actor kernel.Actor,
) (CloseBulkBatchCommand, error) {
	cmd := CloseBulkBatchCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setBatchID(batchID),
		cmd.setItemsDraft(itemsDraft),
		cmd.setActor(actor),
	); err != nil {
		return CloseBulkBatchCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CloseBulkBatchCommand) Validate() error {
	return c.guard.Validate(ErrCloseBulkBatchCommandIsNotConstructed)
}

// BatchID returns the BULK_BATCH order to close.
func (c CloseBulkBatchCommand) BatchID() kernel.UUID {
	return c.batchID
}

// ItemsDraft returns the optional prepared-quantity overwrite, nil when the
// batch's stored quantities should be used.
func (c CloseBulkBatchCommand) ItemsDraft() []order.Item {
	return c.itemsDraft
}

// Actor returns who requested the close.
func (c CloseBulkBatchCommand) Actor() kernel.Actor {
	return c.actor
}

func (c *CloseBulkBatchCommand) setBatchID(batchID kernel.UUID) error {
	if err := batchID.Validate(); err != nil {
		return err
	}

	c.batchID = batchID
	return nil
}

func (c *CloseBulkBatchCommand) setItemsDraft(itemsDraft []order.Item) error {
	for _, item := range itemsDraft {
		if err := item.Validate(); err != nil {
			return err
		}
	}

	c.itemsDraft = itemsDraft
	return nil
}

func (c *CloseBulkBatchCommand) setActor(actor kernel.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}

	c.actor = actor
	return nil
}
