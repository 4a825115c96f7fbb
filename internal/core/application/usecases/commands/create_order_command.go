package commands

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderLine is one requested order position.
type CreateOrderLine struct {
	LineID    kernel.UUID
	SKU       kernel.SKU
	Quantity  int
	UnitPrice int64
}

// CreateOrderCommand represents a request to capture a new sales order in
// PendingApproval status. No stock is touched at this point; allocation only
// begins after approval.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(kernel.NewUUID(), "Acme Retail", "PO-1042",
//	    orderDate, deliveryDate, order.PriorityHigh, "operator", lines)
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	handler := NewCreateOrderCommandHandler(uowFactory)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to create order: %w", err)
//	}
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID      kernel.UUID
	customer     string
	reference    string
	orderDate    time.Time
	deliveryDate time.Time
	priority     order.Priority
	createdBy    string
	lines        []CreateOrderLine

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to capture a new sales order.
// Validates identifiers, required header fields, and that at least one line
// is present; line-level quantity and price rules are enforced by the domain
// constructors in the handler.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	customer, reference string,
	orderDate, deliveryDate time.Time,
	priority order.Priority,
	createdBy string,
	lines []CreateOrderLine,
) (CreateOrderCommand, error) {
	orderCommand := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		orderCommand.setOrderID(orderID),
		orderCommand.setCustomer(customer),
		orderCommand.setPriority(priority),
		orderCommand.setCreatedBy(createdBy),
		orderCommand.setLines(lines),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	orderCommand.reference = reference
	orderCommand.orderDate = orderDate
	orderCommand.deliveryDate = deliveryDate

	return orderCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the unique identifier for the new order.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Customer returns the ordering party.
func (c CreateOrderCommand) Customer() string {
	return c.customer
}

// Reference returns the customer's order reference.
func (c CreateOrderCommand) Reference() string {
	return c.reference
}

// OrderDate returns the commercial order date.
func (c CreateOrderCommand) OrderDate() time.Time {
	return c.orderDate
}

// DeliveryDate returns the requested delivery date.
func (c CreateOrderCommand) DeliveryDate() time.Time {
	return c.deliveryDate
}

// Priority returns the allocation urgency.
func (c CreateOrderCommand) Priority() order.Priority {
	return c.priority
}

// CreatedBy returns the capturing user.
func (c CreateOrderCommand) CreatedBy() string {
	return c.createdBy
}

// Lines returns the requested order positions.
func (c CreateOrderCommand) Lines() []CreateOrderLine {
	return c.lines
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setCustomer(customer string) error {
	if customer == "" {
		return errs.NewValueIsRequiredError("customer")
	}

	c.customer = customer
	return nil
}

func (c *CreateOrderCommand) setPriority(priority order.Priority) error {
	if err := priority.Validate(); err != nil {
		return err
	}

	c.priority = priority
	return nil
}

func (c *CreateOrderCommand) setCreatedBy(createdBy string) error {
	if createdBy == "" {
		return errs.NewValueIsRequiredError("created by")
	}

	c.createdBy = createdBy
	return nil
}

func (c *CreateOrderCommand) setLines(lines []CreateOrderLine) error {
	if len(lines) == 0 {
		return errs.NewValueIsRequiredError("lines")
	}

	c.lines = lines
	return nil
}
