package commands

import (
	"errors"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/pkg/guard"
)

var ErrUpdateOrderStatusCommandIsNotConstructed = errors.New(
	"UpdateOrderStatusCommand must be created via NewUpdateOrderStatusCommand constructor",
)

// UpdateOrderStatusCommand represents a request to move an order along one
// edge of the status state machine, optionally patching the carrier and the
// warehouse item draft in the same write.
//
// The target status must differ from the current one: callers that only want
// to patch fields use the dedicated warehouse operations instead.
type UpdateOrderStatusCommand struct { //nolint:recvcheck //using for validation
	orderID    kernel.UUID
	newStatus  order.Status
	carrier    *string
	itemsDraft []order.Item
	actor      kernel.Actor

	guard guard.ConstructorGuard
}

// NewUpdateOrderStatusCommand creates a command to update an order's status.
// The carrier pointer and items draft are optional patches; nil leaves the
// corresponding field untouched.
func NewUpdateOrderStatusCommand(
	orderID kernel.UUID,
	newStatus order.Status,
	carrier *string,
	itemsDraft []order.Item,
	actor kernel.Actor,
) (UpdateOrderStatusCommand, error) {
	cmd := UpdateOrderStatusCommand{
		carrier: carrier,
		guard:   guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setNewStatus(newStatus),
		cmd.setItemsDraft(itemsDraft),
		cmd.setActor(actor),
	); err != nil {
		return UpdateOrderStatusCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateOrderStatusCommandIsNotConstructed)
}

// OrderID returns the order to update.
func (c UpdateOrderStatusCommand) OrderID() kernel.UUID {
	return c.orderID
}

// NewStatus returns the target status.
func (c UpdateOrderStatusCommand) NewStatus() order.Status {
	return c.newStatus
}

// Carrier returns the optional carrier patch, nil when untouched.
func (c UpdateOrderStatusCommand) Carrier() *string {
	return c.carrier
}

// ItemsDraft returns the optional warehouse item draft, nil when untouched.
func (c UpdateOrderStatusCommand) ItemsDraft() []order.Item {
	return c.itemsDraft
}

// Actor returns who requested the update.
func (c UpdateOrderStatusCommand) Actor() kernel.Actor {
	return c.actor
}

func (c *UpdateOrderStatusCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *UpdateOrderStatusCommand) setNewStatus(newStatus order.Status) error {
	if err := newStatus.Validate(); err != nil {
		return err
	}

	c.newStatus = newStatus
	return nil
}

func (c *UpdateOrderStatusCommand) setItemsDraft(itemsDraft []order.Item) error {
	for _, item := range itemsDraft {
		if err := item.Validate(); err != nil {
			return err
		}
	}

	c.itemsDraft = itemsDraft
	return nil
}

func (c *UpdateOrderStatusCommand) setActor(actor kernel.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}

	c.actor = actor
	return nil
}
