package queries

import (
	"context"

	"gorm.io/gorm"
)

// GetStockLevelsQueryHandler retrieves the inventory ledger counters from the
// database, sorted by SKU.
type GetStockLevelsQueryHandler struct {
	db *gorm.DB
}

// NewGetStockLevelsQueryHandler creates a handler for stock level queries.
// Requires a GORM database connection for query execution.
func NewGetStockLevelsQueryHandler(db *gorm.DB) GetStockLevelsQueryHandler {
	return GetStockLevelsQueryHandler{db: db}
}

// Handle executes the query to retrieve every SKU's counters.
func (h GetStockLevelsQueryHandler) Handle(
	ctx context.Context,
	query GetStockLevelsQuery,
) ([]GetStockLevelsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	levels := make([]GetStockLevelsQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			sku,
			available,
			reserved,
			in_production
		FROM inventory_records
		ORDER BY sku
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var level GetStockLevelsQueryResponse

		err = rows.Scan(
			&level.SKU,
			&level.Available,
			&level.Reserved,
			&level.InProduction,
		)
		if err != nil {
			return nil, err
		}

		levels = append(levels, level)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return levels, nil
}
