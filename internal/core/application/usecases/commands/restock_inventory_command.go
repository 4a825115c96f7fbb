package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrRestockInventoryCommandIsNotConstructed = errors.New(
	"RestockInventoryCommand must be created via NewRestockInventoryCommand constructor",
)

// RestockInventoryCommand represents a goods receipt: quantity units of a SKU
// are added to the free stock. A first receipt creates the ledger record.
type RestockInventoryCommand struct { //nolint:recvcheck //using for validation
	sku      kernel.SKU
	quantity kernel.Quantity

	guard guard.ConstructorGuard
}

// NewRestockInventoryCommand creates a command to register a goods receipt.
func NewRestockInventoryCommand(sku kernel.SKU, quantity kernel.Quantity) (RestockInventoryCommand, error) {
	command := RestockInventoryCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setSKU(sku),
		command.setQuantity(quantity),
	); err != nil {
		return RestockInventoryCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c RestockInventoryCommand) Validate() error {
	return c.guard.Validate(ErrRestockInventoryCommandIsNotConstructed)
}

// SKU returns the restocked stock-keeping unit.
func (c RestockInventoryCommand) SKU() kernel.SKU {
	return c.sku
}

// Quantity returns the received quantity.
func (c RestockInventoryCommand) Quantity() kernel.Quantity {
	return c.quantity
}

func (c *RestockInventoryCommand) setSKU(sku kernel.SKU) error {
	if err := sku.Validate(); err != nil {
		return err
	}

	c.sku = sku
	return nil
}

func (c *RestockInventoryCommand) setQuantity(quantity kernel.Quantity) error {
	if err := quantity.Validate(); err != nil {
		return err
	}

	c.quantity = quantity
	return nil
}
