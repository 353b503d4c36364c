package commands

import (
	"errors"
	"fmt"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/pkg/errs"
	"orderflow/internal/pkg/guard"
)

var ErrRecordDeliveryCommandIsNotConstructed = errors.New(
	"RecordDeliveryCommand must be created via NewRecordDeliveryCommand constructor",
)

// RecordDeliveryCommand represents the delivery outcome of a dispatched
// order: ENTREGUE when the customer received it, NAOENTREGUE when the
// attempt failed. The note is free text from the driver, optional.
type RecordDeliveryCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	outcome order.Status
	note    string
	actor   kernel.Actor

	guard guard.ConstructorGuard
}

// NewRecordDeliveryCommand creates a command to record a delivery outcome.
// The outcome must be ENTREGUE or NAOENTREGUE.
func NewRecordDeliveryCommand(
	orderID kernel.UUID,
	outcome order.Status,
	note string,
	actor kernel.Actor,
) (RecordDeliveryCommand, error) {
	cmd := RecordDeliveryCommand{
		note:  note,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setOutcome(outcome),
		cmd.setActor(actor),
	); err != nil {
		return RecordDeliveryCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RecordDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrRecordDeliveryCommandIsNotConstructed)
}

// OrderID returns the delivered order.
func (c RecordDeliveryCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Outcome returns the terminal delivery status.
func (c RecordDeliveryCommand) Outcome() order.Status {
	return c.outcome
}

// Note returns the optional driver note.
func (c RecordDeliveryCommand) Note() string {
	return c.note
}

// Actor returns who recorded the outcome.
func (c RecordDeliveryCommand) Actor() kernel.Actor {
	return c.actor
}

func (c *RecordDeliveryCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *RecordDeliveryCommand) setOutcome(outcome order.Status) error {
	if outcome != order.StatusEntregue && outcome != order.StatusNaoEntregue {
		return errs.NewValueIsInvalidErrorWithCause(
			"outcome",
			fmt.Errorf("%s is not a delivery outcome", outcome),
		)
	}

	c.outcome = outcome
	return nil
}

func (c *RecordDeliveryCommand) setActor(actor kernel.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}

	c.actor = actor
	return nil
}
