package commands

import (
	"errors"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/pkg/errs"
	"orderflow/internal/pkg/guard"
)

var ErrCloseWarehouseJobCommandIsNotConstructed = errors.New(
	"CloseWarehouseJobCommand must be created via NewCloseWarehouseJobCommand constructor",
)

// CloseWarehouseJobCommand represents a warehouse operator finishing a
// preparation job: the final item draft is applied and the order leaves PREP
// for FALTAS or A_FATURAR depending on what is still missing.
type CloseWarehouseJobCommand struct { //nolint:recvcheck //using for validation
	orderID    kernel.UUID
	itemsDraft []order.Item
	actor      kernel.Actor

	guard guard.ConstructorGuard
}

// NewCloseWarehouseJobCommand creates a command to close a warehouse job.
// The items draft must carry at least one line.
func NewCloseWarehouseJobCommand(
	orderID kernel.UUID,
	itemsDraft []order.Item,
	actor kernel.Actor,
) (CloseWarehouseJobCommand, error) {
	cmd := CloseWarehouseJobCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setItemsDraft(itemsDraft),
		cmd.setActor(actor),
	); err != nil {
		return CloseWarehouseJobCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CloseWarehouseJobCommand) Validate() error {
	return c.guard.Validate(ErrCloseWarehouseJobCommandIsNotConstructed)
}

// OrderID returns the order whose warehouse job is being closed.
func (c CloseWarehouseJobCommand) OrderID() kernel.UUID {
	return c.orderID
}

// ItemsDraft returns the final prepared/purchased quantities per line.
func (c CloseWarehouseJobCommand) ItemsDraft() []order.Item {
	return c.itemsDraft
}

// Actor returns the warehouse operator closing the job.
func (c CloseWarehouseJobCommand) Actor() kernel.Actor {
	return c.actor
}

func (c *CloseWarehouseJobCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CloseWarehouseJobCommand) setItemsDraft(itemsDraft []order.Item) error {
	if len(itemsDraft) == 0 {
		return errs.NewValueIsRequiredError("itemsDraft")
	}

	for _, item := range itemsDraft {
		if err := item.Validate(); err != nil {
			return err
		}
	}

	c.itemsDraft = itemsDraft
	return nil
}

func (c *CloseWarehouseJobCommand) setActor(actor kernel.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}

	c.actor = actor
	return nil
}
