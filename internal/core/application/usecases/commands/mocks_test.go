package commands_test

import (
	"context"
	"testing"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/inventory"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetAllOpen(ctx context.Context) ([]*order.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetAllAllocatable(ctx context.Context) ([]*order.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

type MockInventoryRepository struct{ mock.Mock }

func (m *MockInventoryRepository) Add(ctx context.Context, record *inventory.Record) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockInventoryRepository) Update(ctx context.Context, record *inventory.Record) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockInventoryRepository) Get(ctx context.Context, sku kernel.SKU) (*inventory.Record, error) {
	args := m.Called(ctx, sku)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.Record), args.Error(1)
}

func (m *MockInventoryRepository) GetAll(ctx context.Context) ([]*inventory.Record, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*inventory.Record), args.Error(1)
}

// MockUoW satisfies every unit of work flavour the handlers use.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) InventoryRepository() ports.InventoryRepository {
	args := m.Called()
	return args.Get(0).(ports.InventoryRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockInventoryUoWFactory struct{ mock.Mock }

func (m *MockInventoryUoWFactory) Create() commands.InventoryUoW {
	args := m.Called()
	return args.Get(0).(commands.InventoryUoW)
}

type MockAllocationHook struct{ mock.Mock }

func (m *MockAllocationHook) ReservationsChanged(ctx context.Context, changes []ports.ReservationChange) error {
	args := m.Called(ctx, changes)
	return args.Error(0)
}

// Test data helpers shared by the handler tests.

func mustSKU(t *testing.T, code string) kernel.SKU {
	t.Helper()
	sku, err := kernel.NewSKU(code)
	require.NoError(t, err)
	return sku
}

func mustQty(t *testing.T, value int) kernel.Quantity {
	t.Helper()
	qty, err := kernel.NewQuantity(value)
	require.NoError(t, err)
	return qty
}

func newTestLine(t *testing.T, sku string, ordered int) *order.Line {
	t.Helper()
	l, err := order.NewLine(kernel.NewUUID(), mustSKU(t, sku), mustQty(t, ordered), 990)
	require.NoError(t, err)
	return l
}

func newPendingOrder(t *testing.T, lines ...*order.Line) *order.Order {
	t.Helper()
	o, err := order.NewOrder(kernel.NewUUID(), "Acme Retail", "PO-1042",
		time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 3, 17, 0, 0, 0, 0, time.UTC),
		order.PriorityMedium, "operator", lines)
	require.NoError(t, err)
	return o
}

func newApprovedOrder(t *testing.T, lines ...*order.Line) *order.Order {
	t.Helper()
	o, err := order.NewOrder(kernel.NewUUID(), "Acme Retail", "PO-1042",
		time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 3, 17, 0, 0, 0, 0, time.UTC),
		order.PriorityMedium, "operator", lines)
	require.NoError(t, err)
	require.NoError(t, o.Approve("supervisor"))
	return o
}

func newTestRecord(t *testing.T, sku string, available int) *inventory.Record {
	t.Helper()
	rec, err := inventory.NewRecord(mustSKU(t, sku), available, 0)
	require.NoError(t, err)
	return rec
}
