package commands

import (
	"errors"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/pkg/errs"
	"orderflow/internal/pkg/guard"
)

var ErrCreateBulkOrderCommandIsNotConstructed = errors.New(
	"CreateBulkOrderCommand must be created via NewCreateBulkOrderCommand constructor",
)

// SubOrderSpec describes one customer order delegated to a bulk batch.
type SubOrderSpec struct {
	OrderID    kernel.UUID
	ClientID   string
	ContractID string
	LocationID string
	Carrier    string
	Items      []order.Item
}

func (s SubOrderSpec) validate() error {
	if err := s.OrderID.Validate(); err != nil {
		return err
	}
	if s.ClientID == "" {
		return errs.NewValueIsRequiredError("clientID")
	}
	if len(s.Items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}

	for _, item := range s.Items {
		if err := item.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// CreateBulkOrderCommand represents a request to create a consolidated bulk
// order: one BULK_BATCH warehouse job aggregating the items of several
// customer orders, plus one BULK_SUB order per customer.
type CreateBulkOrderCommand struct { //nolint:recvcheck //using for validation
	batchID   kernel.UUID
	date      time.Time
	subOrders []SubOrderSpec
	actor     kernel.Actor

	guard guard.ConstructorGuard
}

// NewCreateBulkOrderCommand creates a command to register a bulk order.
// Requires a valid batch ID, a delivery date and at least one sub-order spec.
func NewCreateBulkOrderCommand(
	batchID kernel.UUID,
	date time.Time,
	subOrders []SubOrderSpec,
	actor kernel.Actor,
) (CreateBulkOrderCommand, error) {
	cmd := CreateBulkOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setBatchID(batchID),
		cmd.setDate(date),
		cmd.setSubOrders(subOrders),
		cmd.setActor(actor),
	); err != nil {
		return CreateBulkOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateBulkOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateBulkOrderCommandIsNotConstructed)
}

// BatchID returns the identifier for the BULK_BATCH order.
func (c CreateBulkOrderCommand) BatchID() kernel.UUID {
	return c.batchID
}

// Date returns the requested delivery date shared by the batch and its subs.
func (c CreateBulkOrderCommand) Date() time.Time {
	return c.date
}

// SubOrders returns the delegated customer order specs.
func (c CreateBulkOrderCommand) SubOrders() []SubOrderSpec {
	return c.subOrders
}

// Actor returns who requested the creation.
func (c CreateBulkOrderCommand) Actor() kernel.Actor {
	return c.actor
}

func (c *CreateBulkOrderCommand) setBatchID(batchID kernel.UUID) error {
	if err := batchID.Validate(); err != nil {
		return err
	}

	c.batchID = batchID
	return nil
}

func (c *CreateBulkOrderCommand) setDate(date time.Time) error {
	if date.IsZero() {
		return errs.NewValueIsRequiredError("date")
	}

	c.date = date
	return nil
}

func (c *CreateBulkOrderCommand) setSubOrders(subOrders []SubOrderSpec) error {
	if len(subOrders) == 0 {
		return errs.NewValueIsRequiredError("subOrders")
	}

	for _, sub := range subOrders {
		if err := sub.validate(); err != nil {
			return err
		}
	}

	c.subOrders = subOrders
	return nil
}

func (c *CreateBulkOrderCommand) setActor(actor kernel.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}

	c.actor = actor
	return nil
}
