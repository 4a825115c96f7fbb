package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrApproveOrderCommandIsNotConstructed = errors.New(
	"ApproveOrderCommand must be created via NewApproveOrderCommand constructor",
)

// ApproveOrderCommand represents a request to approve a pending order,
// opening it for allocation.
type ApproveOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	actor   string

	guard guard.ConstructorGuard
}

// NewApproveOrderCommand creates a command to approve a pending order.
func NewApproveOrderCommand(orderID kernel.UUID, actor string) (ApproveOrderCommand, error) {
	command := ApproveOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setOrderID(orderID),
		command.setActor(actor),
	); err != nil {
		return ApproveOrderCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c ApproveOrderCommand) Validate() error {
	return c.guard.Validate(ErrApproveOrderCommandIsNotConstructed)
}

// OrderID returns the order to approve.
func (c ApproveOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Actor returns who issued the approval, recorded in the audit trail.
func (c ApproveOrderCommand) Actor() string {
	return c.actor
}

func (c *ApproveOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *ApproveOrderCommand) setActor(actor string) error {
	if actor == "" {
		return errs.NewValueIsRequiredError("actor")
	}

	c.actor = actor
	return nil
}
