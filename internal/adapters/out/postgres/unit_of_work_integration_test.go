package postgres_test

import (
	"context"
	"testing"
	"time"

	postgres_adapter "fulfillment/internal/adapters/out/postgres"
	"fulfillment/internal/adapters/out/postgres/inventoryrepo"
	"fulfillment/internal/adapters/out/postgres/orderrepo"
	"fulfillment/internal/core/domain/model/inventory"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// UnitOfWorkIntegrationTestSuite provides integration testing for the
// GORM-based Unit of Work implementation with a real PostgreSQL database.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	factory   ports.UnitOfWorkFactory
}

// SetupSuite initializes the PostgreSQL container and database connection and
// runs migrations to prepare the schema for unit of work operations.
func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	// Start PostgreSQL container
	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2)),
	)
	suite.Require().NoError(err)
	suite.container = container

	// Connect to database
	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	// Run migrations
	err = db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.LineDTO{},
		&orderrepo.AuditDTO{},
		&inventoryrepo.RecordDTO{},
	)
	suite.Require().NoError(err)

	// Create factory
	suite.factory = postgres_adapter.NewGormUnitOfWorkFactory(db)
}

// SetupTest ensures clean database state before each test.
func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE orders, order_lines, order_audit, inventory_records").Error
	suite.Require().NoError(err)
}

// TearDownSuite cleans up the PostgreSQL container after all tests complete.
func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

// TestUnitOfWorkFactory_Create verifies the factory creates isolated unit of
// work instances that each expose the repositories.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWorkFactory_Create() {
	uow1 := suite.factory.Create()
	uow2 := suite.factory.Create()

	suite.NotSame(uow1, uow2, "Factory should create separate instances")

	suite.NotNil(uow1.OrderRepository(), "First instance should provide order repository")
	suite.NotNil(uow1.InventoryRepository(), "First instance should provide inventory repository")
	suite.NotNil(uow2.OrderRepository(), "Second instance should provide order repository")
	suite.NotNil(uow2.InventoryRepository(), "Second instance should provide inventory repository")
}

// TestUnitOfWork_TransactionLifecycle verifies begin, commit, and rollback.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionLifecycle() {
	ctx := context.Background()
	uow := suite.factory.Create()

	err := uow.Begin(ctx)
	suite.Require().NoError(err, "Should begin transaction successfully")

	// Multiple begin calls are safe
	err = uow.Begin(ctx)
	suite.Require().NoError(err, "Multiple begin calls should be safe")

	err = uow.Commit(ctx)
	suite.Require().NoError(err, "Should commit transaction successfully")

	err = uow.Begin(ctx)
	suite.Require().NoError(err)

	err = uow.Rollback(ctx)
	suite.Require().NoError(err, "Should rollback transaction successfully")
}

// TestUnitOfWork_TransactionErrors verifies error handling for invalid transaction operations.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionErrors() {
	ctx := context.Background()
	uow := suite.factory.Create()

	err := uow.Commit(ctx)
	suite.Require().Error(err, "Should error when committing without active transaction")

	err = uow.Rollback(ctx)
	suite.Require().Error(err, "Should error when rolling back without active transaction")
}

// TestUnitOfWork_CommitPersistsBothAggregates verifies that an order and a
// ledger record written in the same transaction land together.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_CommitPersistsBothAggregates() {
	ctx := context.Background()
	uow := suite.factory.Create()

	aggregate := suite.createTestOrder()
	record := suite.createTestRecord()

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, aggregate))
	suite.Require().NoError(uow.InventoryRepository().Add(ctx, record))
	suite.Require().NoError(uow.Commit(ctx))

	suite.assertCount(&orderrepo.OrderDTO{}, 1)
	suite.assertCount(&inventoryrepo.RecordDTO{}, 1)
}

// TestUnitOfWork_RollbackDiscardsBothAggregates verifies that rollback undoes
// every write made in the transaction.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_RollbackDiscardsBothAggregates() {
	ctx := context.Background()
	uow := suite.factory.Create()

	aggregate := suite.createTestOrder()
	record := suite.createTestRecord()

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, aggregate))
	suite.Require().NoError(uow.InventoryRepository().Add(ctx, record))
	suite.Require().NoError(uow.Rollback(ctx))

	suite.assertCount(&orderrepo.OrderDTO{}, 0)
	suite.assertCount(&orderrepo.LineDTO{}, 0)
	suite.assertCount(&orderrepo.AuditDTO{}, 0)
	suite.assertCount(&inventoryrepo.RecordDTO{}, 0)
}

func (suite *UnitOfWorkIntegrationTestSuite) createTestOrder() *order.Order {
	sku, err := kernel.NewSKU("500ml")
	suite.Require().NoError(err)
	qty, err := kernel.NewQuantity(300)
	suite.Require().NoError(err)
	line, err := order.NewLine(kernel.NewUUID(), sku, qty, 990)
	suite.Require().NoError(err)

	aggregate, err := order.NewOrder(kernel.NewUUID(), "Acme Retail", "PO-1042",
		time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 3, 17, 0, 0, 0, 0, time.UTC),
		order.PriorityMedium, "operator", []*order.Line{line})
	suite.Require().NoError(err)
	return aggregate
}

func (suite *UnitOfWorkIntegrationTestSuite) createTestRecord() *inventory.Record {
	sku, err := kernel.NewSKU("500ml")
	suite.Require().NoError(err)
	record, err := inventory.NewRecord(sku, 1000, 0)
	suite.Require().NoError(err)
	return record
}

func (suite *UnitOfWorkIntegrationTestSuite) assertCount(model any, expected int) {
	var count int64
	err := suite.db.Model(model).Count(&count).Error
	suite.Require().NoError(err)
	suite.Equal(int64(expected), count)
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
