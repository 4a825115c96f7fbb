package queries

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOpenOrdersQueryHandler retrieves non-terminal orders from the database.
// Results come back highest priority first, then earliest delivery date, the
// same order the allocation sweep uses.
type GetOpenOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetOpenOrdersQueryHandler creates a handler for open order queries.
// Requires a GORM database connection for query execution.
func NewGetOpenOrdersQueryHandler(db *gorm.DB) GetOpenOrdersQueryHandler {
	return GetOpenOrdersQueryHandler{db: db}
}

// Handle executes the query to retrieve all open orders.
func (h GetOpenOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetOpenOrdersQuery,
) ([]GetOpenOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders := make([]GetOpenOrdersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			o.id,
			o.customer,
			o.reference,
			o.status,
			o.priority,
			o.delivery_date,
			(SELECT COUNT(*) FROM order_lines l WHERE l.order_id = o.id) AS line_count
		FROM orders o
		WHERE o.status NOT IN (?, ?, ?)
		ORDER BY o.priority DESC, o.delivery_date, o.id
	`, order.StatusDelivered, order.StatusRejected, order.StatusCancelled).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var resp GetOpenOrdersQueryResponse
		var id uuid.UUID
		var status, priority int
		var deliveryDate time.Time

		err = rows.Scan(
			&id,
			&resp.Customer,
			&resp.Reference,
			&status,
			&priority,
			&deliveryDate,
			&resp.LineCount,
		)
		if err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		resp.ID = orderID
		resp.Status = order.Status(status)
		resp.Priority = order.Priority(priority)
		resp.DeliveryDate = deliveryDate
		orders = append(orders, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
