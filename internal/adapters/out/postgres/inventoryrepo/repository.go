package inventoryrepo

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/inventory"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormInventoryRepository implements InventoryRepository using GORM.
type GormInventoryRepository struct {
	db      *gorm.DB
	tracker skuTracker
}

// skuTracker defines the interface for tracking modified ledger records.
type skuTracker interface {
	TrackSKU(sku kernel.SKU, aggregate any)
}

// NewGormInventoryRepository creates a new GORM inventory repository.
func NewGormInventoryRepository(db *gorm.DB, tracker skuTracker) *GormInventoryRepository {
	return &GormInventoryRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new ledger record to the database.
func (r *GormInventoryRepository) Add(ctx context.Context, record *inventory.Record) error {
	if err := record.Validate(); err != nil {
		return err
	}

	dto := fromDomain(record)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackSKU(record.SKU(), record)
	return nil
}

// Update saves an existing ledger record using the optimistic concurrency
// version. Returns ConcurrencyConflictError when another writer got there
// first; callers decide whether to reload and retry.
func (r *GormInventoryRepository) Update(ctx context.Context, record *inventory.Record) error {
	if err := record.Validate(); err != nil {
		return err
	}

	dto := fromDomain(record)
	result := r.db.WithContext(ctx).Model(&RecordDTO{}).
		Where("sku = ? AND version = ?", dto.SKU, dto.Version).
		Updates(map[string]any{
			"available":     dto.Available,
			"reserved":      dto.Reserved,
			"in_production": dto.InProduction,
			"version":       dto.Version + 1,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewConcurrencyConflictError("inventory record", record.SKU().String())
	}

	r.tracker.TrackSKU(record.SKU(), record)
	return nil
}

// Get retrieves the ledger record for a SKU.
func (r *GormInventoryRepository) Get(ctx context.Context, sku kernel.SKU) (*inventory.Record, error) {
	if err := sku.Validate(); err != nil {
		return nil, err
	}

	var dto RecordDTO
	if err := r.db.WithContext(ctx).First(&dto, "sku = ?", sku.String()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("inventory record", sku.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAll retrieves every ledger record, ordered by SKU.
func (r *GormInventoryRepository) GetAll(ctx context.Context) ([]*inventory.Record, error) {
	var dtos []RecordDTO
	if err := r.db.WithContext(ctx).Order("sku").Find(&dtos).Error; err != nil {
		return nil, err
	}

	records := make([]*inventory.Record, 0, len(dtos))
	for _, dto := range dtos {
		record, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	return records, nil
}
