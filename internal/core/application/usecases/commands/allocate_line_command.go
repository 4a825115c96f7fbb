package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrAllocateLineCommandIsNotConstructed = errors.New(
	"AllocateLineCommand must be created via NewAllocateLineCommand constructor",
)

// AllocateLineCommand represents a request to reserve stock for one order
// line. Partial allocations are legal; the quantity only has to fit under the
// line's ordered quantity and the SKU's available stock.
type AllocateLineCommand struct { //nolint:recvcheck //using for validation
	orderID  kernel.UUID
	lineID   kernel.UUID
	quantity kernel.Quantity
	actor    string

	guard guard.ConstructorGuard
}

// NewAllocateLineCommand creates a command to allocate stock to a line.
func NewAllocateLineCommand(orderID, lineID kernel.UUID, quantity kernel.Quantity, actor string) (AllocateLineCommand, error) {
	command := AllocateLineCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setOrderID(orderID),
		command.setLineID(lineID),
		command.setQuantity(quantity),
		command.setActor(actor),
	); err != nil {
		return AllocateLineCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c AllocateLineCommand) Validate() error {
	return c.guard.Validate(ErrAllocateLineCommandIsNotConstructed)
}

// OrderID returns the order owning the line.
func (c AllocateLineCommand) OrderID() kernel.UUID {
	return c.orderID
}

// LineID returns the line to allocate.
func (c AllocateLineCommand) LineID() kernel.UUID {
	return c.lineID
}

// Quantity returns how many units to reserve.
func (c AllocateLineCommand) Quantity() kernel.Quantity {
	return c.quantity
}

// Actor returns who issued the allocation.
func (c AllocateLineCommand) Actor() string {
	return c.actor
}

func (c *AllocateLineCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *AllocateLineCommand) setLineID(lineID kernel.UUID) error {
	if err := lineID.Validate(); err != nil {
		return err
	}

	c.lineID = lineID
	return nil
}

func (c *AllocateLineCommand) setQuantity(quantity kernel.Quantity) error {
	if err := quantity.Validate(); err != nil {
		return err
	}

	c.quantity = quantity
	return nil
}

func (c *AllocateLineCommand) setActor(actor string) error {
	if actor == "" {
		return errs.NewValueIsRequiredError("actor")
	}

	c.actor = actor
	return nil
}
