// Package postgres provides GORM-based implementation of the Unit of Work pattern.
// The Unit of Work pattern maintains a list of objects affected by a business
// transaction and coordinates writing out changes and resolving concurrency problems.
//
// Key Features:
//   - Transaction management across the order and inventory repositories
//   - Aggregate tracking for post-commit processing
//   - Proper isolation between concurrent operations
//   - Repository factory pattern for consistent database connections
//
// Usage Pattern:
//
//	factory := NewGormUnitOfWorkFactory(db)
//	uow := factory.Create()
//
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() {
//	    _ = uow.Rollback(ctx)
//	}()
//
//	if err := uow.OrderRepository().Update(ctx, order); err != nil {
//	    return err
//	}
//	if err := uow.InventoryRepository().Update(ctx, record); err != nil {
//	    return err
//	}
//
//	return uow.Commit(ctx)
//
// Concurrency Considerations:
//   - Each UnitOfWork instance provides an isolated transaction
//   - Multiple goroutines should use separate UnitOfWork instances
//   - Write conflicts surface as ConcurrencyConflictError from the
//     repositories' version-checked updates, not as database locks
package postgres

import (
	"context"

	"fulfillment/internal/adapters/out/postgres/inventoryrepo"
	"fulfillment/internal/adapters/out/postgres/orderrepo"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/ports"

	"gorm.io/gorm"
)

// trackedAggregate represents an aggregate modified during the unit of work.
// This is useful for implementing patterns like event sourcing or outbox pattern.
type trackedAggregate struct {
	ID        string
	Aggregate interface{}
}

// GormUnitOfWorkFactory creates UnitOfWork instances using GORM database connections.
// Factory ensures each business operation gets a fresh unit of work instance
// with proper isolation from other concurrent operations.
type GormUnitOfWorkFactory struct {
	db *gorm.DB
}

// NewGormUnitOfWorkFactory creates a factory for GORM-based unit of work instances.
// The provided database connection will be used for all created unit of work instances.
func NewGormUnitOfWorkFactory(db *gorm.DB) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db}
}

// Create produces a new UnitOfWork instance ready for business transaction
// management. Each instance maintains its own transaction state and aggregate
// tracking, ensuring proper isolation between concurrent operations.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:                f.db,
		trackedAggregates: make([]trackedAggregate, 0),
	}
}

// GormUnitOfWork coordinates database transactions and tracks aggregate
// changes for business operations. Implements the Unit of Work pattern using
// GORM's transaction capabilities.
type GormUnitOfWork struct {
	db                *gorm.DB
	tx                *gorm.DB
	trackedAggregates []trackedAggregate
}

// Begin initiates a new database transaction for the unit of work.
// Subsequent repository operations will execute within this transaction
// context. Multiple calls to Begin on the same instance are safe and will not
// create nested transactions.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	uow.tx = uow.db.WithContext(ctx).Begin()
	if uow.tx.Error != nil {
		return uow.tx.Error
	}

	return nil
}

// Commit finalizes all changes made within the current transaction.
// After commit, the transaction is closed and cannot be reused.
//
// Returns error if no active transaction exists or if the commit fails.
func (uow *GormUnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	return err
}

// Rollback discards all changes made within the current transaction.
// After rollback, the transaction is closed and cannot be reused.
//
// Returns error if no active transaction exists or if the rollback fails.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	return err
}

// OrderRepository provides access to order persistence operations within the
// unit of work. Repository operations will execute within the current
// transaction if one is active, otherwise they use the main database
// connection for immediate execution.
func (uow *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	db := uow.db
	if uow.tx != nil {
		db = uow.tx
	}
	return orderrepo.NewGormOrderRepository(db, uow)
}

// InventoryRepository provides access to inventory ledger persistence within
// the unit of work, following the same transaction binding rules as
// OrderRepository.
func (uow *GormUnitOfWork) InventoryRepository() ports.InventoryRepository {
	db := uow.db
	if uow.tx != nil {
		db = uow.tx
	}
	return inventoryrepo.NewGormInventoryRepository(db, uow)
}

// TrackAggregate registers a domain aggregate as modified within this unit of
// work. Called by the repository implementations when aggregates are added or
// updated; the tracked list enables post-transaction processing such as
// notifying allocation hooks.
func (uow *GormUnitOfWork) TrackAggregate(id kernel.UUID, aggregate interface{}) {
	uow.trackedAggregates = append(uow.trackedAggregates, trackedAggregate{
		ID:        id.String(),
		Aggregate: aggregate,
	})
}

// TrackSKU registers an inventory record as modified within this unit of
// work, keyed by its SKU rather than a UUID.
func (uow *GormUnitOfWork) TrackSKU(sku kernel.SKU, aggregate interface{}) {
	uow.trackedAggregates = append(uow.trackedAggregates, trackedAggregate{
		ID:        sku.String(),
		Aggregate: aggregate,
	})
}
