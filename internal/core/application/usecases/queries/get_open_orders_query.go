// Package queries contains read-only operations over the persistence model.
// Query handlers bypass the aggregates and read the tables directly, following
// the CQRS split: commands go through the domain, queries go through SQL.
package queries

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/guard"
)

var ErrGetOpenOrdersQueryIsNotConstructed = errors.New(
	"GetOpenOrdersQuery must be created via NewGetOpenOrdersQuery constructor",
)

// GetOpenOrdersQuery retrieves all orders in a non-terminal status for
// monitoring and allocation planning.
//
// Example:
//
//	query := NewGetOpenOrdersQuery()
//	handler := NewGetOpenOrdersQueryHandler(db)
//
//	orders, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to get open orders: %w", err)
//	}
//	fmt.Printf("%d orders in flight\n", len(orders))
type GetOpenOrdersQuery struct {
	guard guard.ConstructorGuard
}

// NewGetOpenOrdersQuery creates a query to retrieve open orders.
// This is a parameterless query.
func NewGetOpenOrdersQuery() GetOpenOrdersQuery {
	return GetOpenOrdersQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetOpenOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetOpenOrdersQueryIsNotConstructed)
}

// GetOpenOrdersQueryResponse is the read model of one open order.
type GetOpenOrdersQueryResponse struct {
	ID           kernel.UUID
	Customer     string
	Reference    string
	Status       order.Status
	Priority     order.Priority
	DeliveryDate time.Time
	LineCount    int
}
