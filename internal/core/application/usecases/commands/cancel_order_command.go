package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrCancelOrderCommandIsNotConstructed = errors.New(
	"CancelOrderCommand must be created via NewCancelOrderCommand constructor",
)

// CancelOrderCommand represents a request to cancel an open order, releasing
// every allocated-but-undispatched reservation back to the ledger.
type CancelOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	actor   string

	guard guard.ConstructorGuard
}

// NewCancelOrderCommand creates a command to cancel an open order.
func NewCancelOrderCommand(orderID kernel.UUID, actor string) (CancelOrderCommand, error) {
	command := CancelOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setOrderID(orderID),
		command.setActor(actor),
	); err != nil {
		return CancelOrderCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c CancelOrderCommand) Validate() error {
	return c.guard.Validate(ErrCancelOrderCommandIsNotConstructed)
}

// OrderID returns the order to cancel.
func (c CancelOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Actor returns who issued the cancellation.
func (c CancelOrderCommand) Actor() string {
	return c.actor
}

func (c *CancelOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CancelOrderCommand) setActor(actor string) error {
	if actor == "" {
		return errs.NewValueIsRequiredError("actor")
	}

	c.actor = actor
	return nil
}
