package queries

import (
	"errors"

	"fulfillment/internal/pkg/guard"
)

var ErrGetStockLevelsQueryIsNotConstructed = errors.New(
	"GetStockLevelsQuery must be created via NewGetStockLevelsQuery constructor",
)

// GetStockLevelsQuery retrieves the ledger counters of every SKU.
type GetStockLevelsQuery struct {
	guard guard.ConstructorGuard
}

// NewGetStockLevelsQuery creates a query to retrieve all stock levels.
// This is a parameterless query.
func NewGetStockLevelsQuery() GetStockLevelsQuery {
	return GetStockLevelsQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetStockLevelsQuery) Validate() error {
	return q.guard.Validate(ErrGetStockLevelsQueryIsNotConstructed)
}

// GetStockLevelsQueryResponse is the read model of one SKU's ledger counters.
type GetStockLevelsQueryResponse struct {
	SKU          string
	Available    int
	Reserved     int
	InProduction int
}
