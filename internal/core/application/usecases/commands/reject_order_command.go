package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrRejectOrderCommandIsNotConstructed = errors.New(
	"RejectOrderCommand must be created via NewRejectOrderCommand constructor",
)

// RejectOrderCommand represents a request to reject a pending order.
// Rejection is terminal; the optional note is kept in the audit trail.
type RejectOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	actor   string
	note    string

	guard guard.ConstructorGuard
}

// NewRejectOrderCommand creates a command to reject a pending order.
func NewRejectOrderCommand(orderID kernel.UUID, actor, note string) (RejectOrderCommand, error) {
	command := RejectOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setOrderID(orderID),
		command.setActor(actor),
	); err != nil {
		return RejectOrderCommand{}, err
	}

	command.note = note

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c RejectOrderCommand) Validate() error {
	return c.guard.Validate(ErrRejectOrderCommandIsNotConstructed)
}

// OrderID returns the order to reject.
func (c RejectOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Actor returns who issued the rejection.
func (c RejectOrderCommand) Actor() string {
	return c.actor
}

// Note returns the reviewer's explanation, may be empty.
func (c RejectOrderCommand) Note() string {
	return c.note
}

func (c *RejectOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *RejectOrderCommand) setActor(actor string) error {
	if actor == "" {
		return errs.NewValueIsRequiredError("actor")
	}

	c.actor = actor
	return nil
}
