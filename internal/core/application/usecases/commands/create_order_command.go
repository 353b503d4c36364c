package commands

import (
	"errors"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/pkg/errs"
	"orderflow/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand represents a request to register a new customer order.
// The order starts in ESPERA status and carries at least one product line.
//
// Example:
//
//	orderID := kernel.NewUUID()
//	cmd, err := NewCreateOrderCommand(orderID, "CL-77", "CT-1", "LOC-3", date, "", items, actor)
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	handler := NewCreateOrderCommandHandler(uowFactory)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to create order: %w", err)
//	}
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID    kernel.UUID
	clientID   string
	contractID string
	locationID string
	date       time.Time
	carrier    string
	items      []order.Item
	actor      kernel.Actor

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to register a new customer order.
// Validates that the order ID is valid, the client and date are present, and
// at least one valid item is supplied.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	clientID, contractID, locationID string,
	date time.Time,
	carrier string,
	items []order.Item,
	actor kernel.Actor,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		contractID: contractID,
		locationID: locationID,
		carrier:    carrier,
		guard:      guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setClientID(clientID),
		cmd.setDate(date),
		cmd.setItems(items),
		cmd.setActor(actor),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the unique identifier for the order.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// ClientID returns the ordering client reference.
func (c CreateOrderCommand) ClientID() string {
	return c.clientID
}

// ContractID returns the contract reference.
func (c CreateOrderCommand) ContractID() string {
	return c.contractID
}

// LocationID returns the delivery-location reference.
func (c CreateOrderCommand) LocationID() string {
	return c.locationID
}

// Date returns the requested delivery date.
func (c CreateOrderCommand) Date() time.Time {
	return c.date
}

// Carrier returns the carrier reference, possibly empty.
func (c CreateOrderCommand) Carrier() string {
	return c.carrier
}

// Items returns the requested product lines.
func (c CreateOrderCommand) Items() []order.Item {
	return c.items
}

// Actor returns who requested the creation.
func (c CreateOrderCommand) Actor() kernel.Actor {
	return c.actor
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setClientID(clientID string) error {
	if clientID == "" {
		return errs.NewValueIsRequiredError("clientID")
	}

	c.clientID = clientID
	return nil
}

func (c *CreateOrderCommand) setDate(date time.Time) error {
	if date.IsZero() {
		return errs.NewValueIsRequiredError("date")
	}

	c.date = date
	return nil
}

func (c *CreateOrderCommand) setItems(items []order.Item) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}

	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
	}

	c.items = items
	return nil
}

func (c *CreateOrderCommand) setActor(actor kernel.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}

	c.actor = actor
	return nil
}
