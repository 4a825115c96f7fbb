package orderrepo

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormOrderRepository implements OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order with its lines and creation audit entry.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing order using the optimistic concurrency version.
// The header row is only written when the stored version still matches the
// aggregate's; otherwise ConcurrencyConflictError is returned and nothing is
// persisted. Line counters are rewritten and new audit entries appended.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)

	result := r.db.WithContext(ctx).Model(&OrderDTO{}).
		Where("id = ? AND version = ?", dto.ID, dto.Version).
		Updates(map[string]any{
			"status":      dto.Status,
			"tracking_id": dto.TrackingID,
			"carrier":     dto.Carrier,
			"version":     dto.Version + 1,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewConcurrencyConflictError("order", aggregate.ID().String())
	}

	for _, lineDTO := range dto.Lines {
		err := r.db.WithContext(ctx).Model(&LineDTO{}).
			Where("id = ?", lineDTO.ID).
			Select("allocated_quantity", "dispatched_quantity", "delivered_quantity", "cancelled").
			Updates(lineDTO).Error
		if err != nil {
			return err
		}
	}

	if err := r.appendNewAuditEntries(ctx, dto); err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// appendNewAuditEntries inserts the history entries not yet persisted.
// The trail is append-only, so everything past the stored row count is new.
func (r *GormOrderRepository) appendNewAuditEntries(ctx context.Context, dto OrderDTO) error {
	var persisted int64
	err := r.db.WithContext(ctx).Model(&AuditDTO{}).
		Where("order_id = ?", dto.ID).
		Count(&persisted).Error
	if err != nil {
		return err
	}

	if int(persisted) >= len(dto.Audit) {
		return nil
	}

	fresh := dto.Audit[persisted:]
	return r.db.WithContext(ctx).Create(&fresh).Error
}

// Get retrieves an order by ID with its lines and audit history.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	err := r.db.WithContext(ctx).
		Preload("Lines").
		Preload("Audit", func(db *gorm.DB) *gorm.DB { return db.Order("order_audit.id") }).
		First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllOpen retrieves all orders in a non-terminal status, highest priority
// first, earliest delivery date first within a priority.
func (r *GormOrderRepository) GetAllOpen(ctx context.Context) ([]*order.Order, error) {
	return r.findAll(ctx, "status NOT IN ?", []int{
		int(order.StatusDelivered), int(order.StatusRejected), int(order.StatusCancelled),
	})
}

// GetAllAllocatable retrieves open orders whose status permits allocation,
// in the same priority order as GetAllOpen.
func (r *GormOrderRepository) GetAllAllocatable(ctx context.Context) ([]*order.Order, error) {
	return r.findAll(ctx, "status IN ?", []int{
		int(order.StatusApproved), int(order.StatusPartialFulfillment),
	})
}

func (r *GormOrderRepository) findAll(ctx context.Context, condition string, statuses []int) ([]*order.Order, error) {
	var dtos []OrderDTO
	err := r.db.WithContext(ctx).
		Preload("Lines").
		Preload("Audit", func(db *gorm.DB) *gorm.DB { return db.Order("order_audit.id") }).
		Where(condition, statuses).
		Order("priority DESC, delivery_date, id").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		aggregate, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, aggregate)
	}

	return orders, nil
}
