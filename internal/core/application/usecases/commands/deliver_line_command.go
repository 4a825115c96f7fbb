package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrDeliverLineCommandIsNotConstructed = errors.New(
	"DeliverLineCommand must be created via NewDeliverLineCommand constructor",
)

// DeliverLineCommand represents a delivery confirmation for dispatched stock
// of one order line. Delivery has no ledger effect.
type DeliverLineCommand struct { //nolint:recvcheck //using for validation
	orderID  kernel.UUID
	lineID   kernel.UUID
	quantity kernel.Quantity
	actor    string

	guard guard.ConstructorGuard
}

// NewDeliverLineCommand creates a command to confirm delivery.
func NewDeliverLineCommand(orderID, lineID kernel.UUID, quantity kernel.Quantity, actor string) (DeliverLineCommand, error) {
	command := DeliverLineCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setOrderID(orderID),
		command.setLineID(lineID),
		command.setQuantity(quantity),
		command.setActor(actor),
	); err != nil {
		return DeliverLineCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c DeliverLineCommand) Validate() error {
	return c.guard.Validate(ErrDeliverLineCommandIsNotConstructed)
}

// OrderID returns the order owning the line.
func (c DeliverLineCommand) OrderID() kernel.UUID {
	return c.orderID
}

// LineID returns the delivered line.
func (c DeliverLineCommand) LineID() kernel.UUID {
	return c.lineID
}

// Quantity returns how many units were confirmed.
func (c DeliverLineCommand) Quantity() kernel.Quantity {
	return c.quantity
}

// Actor returns who confirmed the delivery.
func (c DeliverLineCommand) Actor() string {
	return c.actor
}

func (c *DeliverLineCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *DeliverLineCommand) setLineID(lineID kernel.UUID) error {
	if err := lineID.Validate(); err != nil {
		return err
	}

	c.lineID = lineID
	return nil
}

func (c *DeliverLineCommand) setQuantity(quantity kernel.Quantity) error {
	if err := quantity.Validate(); err != nil {
		return err
	}

	c.quantity = quantity
	return nil
}

func (c *DeliverLineCommand) setActor(actor string) error {
	if actor == "" {
		return errs.NewValueIsRequiredError("actor")
	}

	c.actor = actor
	return nil
}
