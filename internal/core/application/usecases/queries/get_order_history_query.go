package queries

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/guard"
)

var ErrGetOrderHistoryQueryIsNotConstructed = errors.New(
	"GetOrderHistoryQuery must be created via NewGetOrderHistoryQuery constructor",
)

// GetOrderHistoryQuery retrieves the audit trail of one order, oldest entry
// first.
type GetOrderHistoryQuery struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOrderHistoryQuery creates a query for one order's audit trail.
func NewGetOrderHistoryQuery(orderID kernel.UUID) (GetOrderHistoryQuery, error) {
	query := GetOrderHistoryQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := query.setOrderID(orderID); err != nil {
		return GetOrderHistoryQuery{}, err
	}

	return query, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderHistoryQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderHistoryQueryIsNotConstructed)
}

// OrderID returns the order whose history is requested.
func (q GetOrderHistoryQuery) OrderID() kernel.UUID {
	return q.orderID
}

func (q *GetOrderHistoryQuery) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	q.orderID = orderID
	return nil
}

// GetOrderHistoryQueryResponse is the read model of one audit entry.
type GetOrderHistoryQueryResponse struct {
	Timestamp  time.Time
	Actor      string
	FromStatus order.Status
	ToStatus   order.Status
	Note       string
	LineID     *kernel.UUID
	Quantity   int
}
