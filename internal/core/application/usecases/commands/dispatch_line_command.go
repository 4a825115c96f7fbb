package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrDispatchLineCommandIsNotConstructed = errors.New(
	"DispatchLineCommand must be created via NewDispatchLineCommand constructor",
)

// DispatchLineCommand represents a request to ship allocated stock of one
// order line. The first dispatch of an order stamps the tracking details on
// the header; later dispatches keep the original stamp.
type DispatchLineCommand struct { //nolint:recvcheck //using for validation
	orderID    kernel.UUID
	lineID     kernel.UUID
	quantity   kernel.Quantity
	actor      string
	trackingID string
	carrier    string

	guard guard.ConstructorGuard
}

// NewDispatchLineCommand creates a command to dispatch allocated stock.
func NewDispatchLineCommand(
	orderID, lineID kernel.UUID, quantity kernel.Quantity, actor, trackingID, carrier string,
) (DispatchLineCommand, error) {
	command := DispatchLineCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setOrderID(orderID),
		command.setLineID(lineID),
		command.setQuantity(quantity),
		command.setActor(actor),
		command.setTracking(trackingID, carrier),
	); err != nil {
		return DispatchLineCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c DispatchLineCommand) Validate() error {
	return c.guard.Validate(ErrDispatchLineCommandIsNotConstructed)
}

// OrderID returns the order owning the line.
func (c DispatchLineCommand) OrderID() kernel.UUID {
	return c.orderID
}

// LineID returns the line to dispatch.
func (c DispatchLineCommand) LineID() kernel.UUID {
	return c.lineID
}

// Quantity returns how many units to ship.
func (c DispatchLineCommand) Quantity() kernel.Quantity {
	return c.quantity
}

// Actor returns who issued the dispatch.
func (c DispatchLineCommand) Actor() string {
	return c.actor
}

// TrackingID returns the shipment tracking identifier.
func (c DispatchLineCommand) TrackingID() string {
	return c.trackingID
}

// Carrier returns the shipping carrier.
func (c DispatchLineCommand) Carrier() string {
	return c.carrier
}

func (c *DispatchLineCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *DispatchLineCommand) setLineID(lineID kernel.UUID) error {
	if err := lineID.Validate(); err != nil {
		return err
	}

	c.lineID = lineID
	return nil
}

func (c *DispatchLineCommand) setQuantity(quantity kernel.Quantity) error {
	if err := quantity.Validate(); err != nil {
		return err
	}

	c.quantity = quantity
	return nil
}

func (c *DispatchLineCommand) setActor(actor string) error {
	if actor == "" {
		return errs.NewValueIsRequiredError("actor")
	}

	c.actor = actor
	return nil
}

func (c *DispatchLineCommand) setTracking(trackingID, carrier string) error {
	if trackingID == "" {
		return errs.NewValueIsRequiredError("tracking id")
	}
	if carrier == "" {
		return errs.NewValueIsRequiredError("carrier")
	}

	c.trackingID = trackingID
	c.carrier = carrier
	return nil
}
