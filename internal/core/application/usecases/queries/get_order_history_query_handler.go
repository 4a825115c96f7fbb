package queries

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrderHistoryQueryHandler retrieves the append-only audit trail of one
// order from the database.
type GetOrderHistoryQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderHistoryQueryHandler creates a handler for audit trail queries.
// Requires a GORM database connection for query execution.
func NewGetOrderHistoryQueryHandler(db *gorm.DB) GetOrderHistoryQueryHandler {
	return GetOrderHistoryQueryHandler{db: db}
}

// Handle executes the query to retrieve the order's audit entries,
// oldest first.
func (h GetOrderHistoryQueryHandler) Handle(
	ctx context.Context,
	query GetOrderHistoryQuery,
) ([]GetOrderHistoryQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	entries := make([]GetOrderHistoryQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			occurred_at,
			actor,
			from_status,
			to_status,
			note,
			line_id,
			quantity
		FROM order_audit
		WHERE order_id = ?
		ORDER BY id
	`, query.OrderID().String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var entry GetOrderHistoryQueryResponse
		var occurredAt time.Time
		var fromStatus, toStatus int
		var lineID *uuid.UUID

		err = rows.Scan(
			&occurredAt,
			&entry.Actor,
			&fromStatus,
			&toStatus,
			&entry.Note,
			&lineID,
			&entry.Quantity,
		)
		if err != nil {
			return nil, err
		}

		entry.Timestamp = occurredAt.UTC()
		entry.FromStatus = order.Status(fromStatus)
		entry.ToStatus = order.Status(toStatus)

		if lineID != nil {
			id, idErr := kernel.UUIDFromBytes(lineID[:])
			if idErr != nil {
				return nil, idErr
			}
			entry.LineID = &id
		}

		entries = append(entries, entry)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}
