package order_test

import (
	"testing"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	orderDate    = time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	deliveryDate = time.Date(2025, 3, 17, 0, 0, 0, 0, time.UTC)
)

func newTestLine(t *testing.T, sku string, ordered int) *order.Line {
	t.Helper()
	l, err := order.NewLine(kernel.NewUUID(), mustSKU(t, sku), mustQty(t, ordered), 990)
	require.NoError(t, err)
	return l
}

func newTestOrder(t *testing.T, lines ...*order.Line) *order.Order {
	t.Helper()
	if len(lines) == 0 {
		lines = []*order.Line{newTestLine(t, "500ml", 300)}
	}
	o, err := order.NewOrder(kernel.NewUUID(), "Acme Retail", "PO-1042",
		orderDate, deliveryDate, order.PriorityMedium, "operator", lines)
	require.NoError(t, err)
	return o
}

func newApprovedOrder(t *testing.T, lines ...*order.Line) *order.Order {
	t.Helper()
	o := newTestOrder(t, lines...)
	require.NoError(t, o.Approve("supervisor"))
	return o
}

func TestNewOrder(t *testing.T) {
	t.Run("should create order pending approval with creation audit entry", func(t *testing.T) {
		o := newTestOrder(t)

		require.NoError(t, o.Validate())
		assert.Equal(t, order.StatusPendingApproval, o.Status())
		assert.Equal(t, "Acme Retail", o.Customer())
		assert.Equal(t, "PO-1042", o.Reference())
		assert.Empty(t, o.TrackingID())
		assert.Empty(t, o.Carrier())

		history := o.History()
		require.Len(t, history, 1)
		assert.Equal(t, "operator", history[0].Actor())
		assert.Equal(t, order.StatusUnknown, history[0].FromStatus())
		assert.Equal(t, order.StatusPendingApproval, history[0].ToStatus())
	})

	t.Run("should fail without lines", func(t *testing.T) {
		_, err := order.NewOrder(kernel.NewUUID(), "Acme Retail", "",
			orderDate, deliveryDate, order.PriorityMedium, "operator", nil)

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should fail with duplicate line ids", func(t *testing.T) {
		l := newTestLine(t, "500ml", 300)

		_, err := order.NewOrder(kernel.NewUUID(), "Acme Retail", "",
			orderDate, deliveryDate, order.PriorityMedium, "operator", []*order.Line{l, l})

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should fail when delivery date precedes order date", func(t *testing.T) {
		_, err := order.NewOrder(kernel.NewUUID(), "Acme Retail", "",
			deliveryDate, orderDate, order.PriorityMedium, "operator",
			[]*order.Line{newTestLine(t, "500ml", 300)})

		require.Error(t, err)
	})

	t.Run("should collect all validation errors", func(t *testing.T) {
		var id kernel.UUID

		_, err := order.NewOrder(id, "", "",
			time.Time{}, time.Time{}, order.PriorityUnknown, "", nil)

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}

func TestOrder_Approve(t *testing.T) {
	t.Run("should approve pending order and record the decision", func(t *testing.T) {
		o := newTestOrder(t)

		err := o.Approve("supervisor")

		require.NoError(t, err)
		assert.Equal(t, order.StatusApproved, o.Status())

		history := o.History()
		require.Len(t, history, 2)
		assert.Equal(t, "supervisor", history[1].Actor())
		assert.Equal(t, order.StatusPendingApproval, history[1].FromStatus())
		assert.Equal(t, order.StatusApproved, history[1].ToStatus())
	})

	t.Run("should fail on already approved order and append no audit entry", func(t *testing.T) {
		o := newApprovedOrder(t)
		before := len(o.History())

		err := o.Approve("supervisor")

		require.ErrorIs(t, err, errs.ErrInvalidTransition)
		assert.Equal(t, order.StatusApproved, o.Status())
		assert.Len(t, o.History(), before)
	})

	t.Run("should fail without actor", func(t *testing.T) {
		o := newTestOrder(t)

		err := o.Approve("")

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Equal(t, order.StatusPendingApproval, o.Status())
	})
}

func TestOrder_Reject(t *testing.T) {
	t.Run("should reject pending order with the reviewer note", func(t *testing.T) {
		o := newTestOrder(t)

		err := o.Reject("supervisor", "credit limit exceeded")

		require.NoError(t, err)
		assert.Equal(t, order.StatusRejected, o.Status())

		history := o.History()
		require.Len(t, history, 2)
		assert.Equal(t, "credit limit exceeded", history[1].Note())
		assert.Equal(t, order.StatusRejected, history[1].ToStatus())
	})

	t.Run("should fail on approved order", func(t *testing.T) {
		o := newApprovedOrder(t)

		err := o.Reject("supervisor", "")

		require.ErrorIs(t, err, errs.ErrInvalidTransition)
		assert.Equal(t, order.StatusApproved, o.Status())
	})
}

func TestOrder_ApplyAllocation(t *testing.T) {
	t.Run("should allocate within the ordered quantity", func(t *testing.T) {
		line := newTestLine(t, "500ml", 300)
		o := newApprovedOrder(t, line)

		err := o.ApplyAllocation(line.ID(), mustQty(t, 100), "allocator")

		require.NoError(t, err)
		assert.Equal(t, 100, line.AllocatedQuantity())
		assert.Equal(t, order.LineStatusPending, line.Status())
		assert.Equal(t, order.StatusApproved, o.Status())

		history := o.History()
		last := history[len(history)-1]
		assert.Equal(t, "allocated 100 of 500ml", last.Note())
		require.NotNil(t, last.LineID())
		assert.True(t, last.LineID().IsEqual(line.ID()))
		assert.Equal(t, 100, last.Quantity())
	})

	t.Run("should move the order to ready when every line is fully allocated", func(t *testing.T) {
		l1 := newTestLine(t, "500ml", 300)
		l2 := newTestLine(t, "1000ml", 200)
		o := newApprovedOrder(t, l1, l2)

		require.NoError(t, o.ApplyAllocation(l1.ID(), mustQty(t, 300), "allocator"))
		assert.Equal(t, order.LineStatusReady, l1.Status())
		assert.Equal(t, order.StatusApproved, o.Status(), "one ready line must not promote the order")

		require.NoError(t, o.ApplyAllocation(l2.ID(), mustQty(t, 200), "allocator"))
		assert.Equal(t, order.StatusReady, o.Status())
	})

	t.Run("should fail when allocation exceeds the ordered quantity", func(t *testing.T) {
		line := newTestLine(t, "500ml", 300)
		o := newApprovedOrder(t, line)
		require.NoError(t, o.ApplyAllocation(line.ID(), mustQty(t, 250), "allocator"))
		before := len(o.History())

		err := o.ApplyAllocation(line.ID(), mustQty(t, 100), "allocator")

		require.ErrorIs(t, err, errs.ErrQuantityBounds)
		assert.Equal(t, 250, line.AllocatedQuantity())
		assert.Len(t, o.History(), before)
	})

	t.Run("should fail on pending approval order", func(t *testing.T) {
		line := newTestLine(t, "500ml", 300)
		o := newTestOrder(t, line)

		err := o.ApplyAllocation(line.ID(), mustQty(t, 100), "allocator")

		require.ErrorIs(t, err, errs.ErrInvalidTransition)
		assert.Equal(t, 0, line.AllocatedQuantity())
	})

	t.Run("should fail for unknown line", func(t *testing.T) {
		o := newApprovedOrder(t)

		err := o.ApplyAllocation(kernel.NewUUID(), mustQty(t, 100), "allocator")

		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})
}

func TestOrder_ApplyDispatch(t *testing.T) {
	t.Run("should dispatch allocated stock and stamp tracking details once", func(t *testing.T) {
		line := newTestLine(t, "500ml", 300)
		o := newApprovedOrder(t, line)
		require.NoError(t, o.ApplyAllocation(line.ID(), mustQty(t, 300), "allocator"))

		err := o.ApplyDispatch(line.ID(), mustQty(t, 100), "warehouse", "TRK-1", "DHL")

		require.NoError(t, err)
		assert.Equal(t, 100, line.DispatchedQuantity())
		assert.Equal(t, "TRK-1", o.TrackingID())
		assert.Equal(t, "DHL", o.Carrier())
		assert.Equal(t, order.StatusPartialFulfillment, o.Status())

		require.NoError(t, o.ApplyDispatch(line.ID(), mustQty(t, 200), "warehouse", "TRK-2", "UPS"))
		assert.Equal(t, "TRK-1", o.TrackingID(), "tracking details are stamped on the first dispatch only")
		assert.Equal(t, order.StatusDispatched, o.Status())
		assert.Equal(t, order.LineStatusDispatched, line.Status())
	})

	t.Run("should fail when dispatch exceeds the allocated quantity", func(t *testing.T) {
		line := newTestLine(t, "500ml", 300)
		o := newApprovedOrder(t, line)
		require.NoError(t, o.ApplyAllocation(line.ID(), mustQty(t, 300), "allocator"))
		require.NoError(t, o.ApplyDispatch(line.ID(), mustQty(t, 300), "warehouse", "TRK-1", "DHL"))
		before := len(o.History())

		err := o.ApplyDispatch(line.ID(), mustQty(t, 100), "warehouse", "TRK-1", "DHL")

		require.Error(t, err)
		assert.Equal(t, 300, line.DispatchedQuantity())
		assert.Len(t, o.History(), before)
	})

	t.Run("should fail with nothing allocated", func(t *testing.T) {
		line := newTestLine(t, "500ml", 300)
		o := newApprovedOrder(t, line)

		err := o.ApplyDispatch(line.ID(), mustQty(t, 100), "warehouse", "TRK-1", "DHL")

		require.ErrorIs(t, err, errs.ErrQuantityBounds)
		assert.Equal(t, 0, line.DispatchedQuantity())
	})
}

func TestOrder_ApplyDelivery(t *testing.T) {
	t.Run("should complete the order when every line is fully delivered", func(t *testing.T) {
		line := newTestLine(t, "500ml", 300)
		o := newApprovedOrder(t, line)
		require.NoError(t, o.ApplyAllocation(line.ID(), mustQty(t, 300), "allocator"))
		require.NoError(t, o.ApplyDispatch(line.ID(), mustQty(t, 300), "warehouse", "TRK-1", "DHL"))

		err := o.ApplyDelivery(line.ID(), mustQty(t, 300), "driver")

		require.NoError(t, err)
		assert.Equal(t, order.StatusDelivered, o.Status())
		assert.Equal(t, order.LineStatusDelivered, line.Status())
		assert.True(t, o.Status().IsTerminal())
	})

	t.Run("should fail when delivery exceeds the dispatched quantity", func(t *testing.T) {
		line := newTestLine(t, "500ml", 300)
		o := newApprovedOrder(t, line)
		require.NoError(t, o.ApplyAllocation(line.ID(), mustQty(t, 300), "allocator"))
		require.NoError(t, o.ApplyDispatch(line.ID(), mustQty(t, 100), "warehouse", "TRK-1", "DHL"))

		err := o.ApplyDelivery(line.ID(), mustQty(t, 200), "driver")

		require.ErrorIs(t, err, errs.ErrQuantityBounds)
		assert.Equal(t, 0, line.DeliveredQuantity())
	})

	t.Run("should fail before any dispatch", func(t *testing.T) {
		line := newTestLine(t, "500ml", 300)
		o := newApprovedOrder(t, line)
		require.NoError(t, o.ApplyAllocation(line.ID(), mustQty(t, 300), "allocator"))

		err := o.ApplyDelivery(line.ID(), mustQty(t, 100), "driver")

		require.ErrorIs(t, err, errs.ErrInvalidTransition)
	})
}

func TestOrder_Cancel(t *testing.T) {
	t.Run("should cancel an approved order and release all reservations", func(t *testing.T) {
		l1 := newTestLine(t, "500ml", 300)
		l2 := newTestLine(t, "1000ml", 200)
		o := newApprovedOrder(t, l1, l2)
		require.NoError(t, o.ApplyAllocation(l1.ID(), mustQty(t, 300), "allocator"))
		require.NoError(t, o.ApplyAllocation(l2.ID(), mustQty(t, 150), "allocator"))

		releases, err := o.Cancel("supervisor")

		require.NoError(t, err)
		assert.Equal(t, order.StatusCancelled, o.Status())
		require.Len(t, releases, 2)
		assert.Equal(t, "500ml", releases[0].SKU.String())
		assert.Equal(t, 300, releases[0].Quantity)
		assert.Equal(t, "1000ml", releases[1].SKU.String())
		assert.Equal(t, 150, releases[1].Quantity)
		assert.Equal(t, order.LineStatusCancelled, l1.Status())
		assert.Equal(t, order.LineStatusCancelled, l2.Status())
	})

	t.Run("should keep dispatched lines and release only their remaining reservation", func(t *testing.T) {
		l1 := newTestLine(t, "500ml", 300)
		l2 := newTestLine(t, "1000ml", 200)
		o := newApprovedOrder(t, l1, l2)
		require.NoError(t, o.ApplyAllocation(l1.ID(), mustQty(t, 300), "allocator"))
		require.NoError(t, o.ApplyDispatch(l1.ID(), mustQty(t, 100), "warehouse", "TRK-1", "DHL"))
		require.NoError(t, o.ApplyAllocation(l2.ID(), mustQty(t, 200), "allocator"))

		releases, err := o.Cancel("supervisor")

		require.NoError(t, err)
		assert.Equal(t, order.StatusCancelled, o.Status())
		require.Len(t, releases, 2)
		assert.Equal(t, 200, releases[0].Quantity, "allocated minus dispatched of the shipped line")
		assert.Equal(t, 200, releases[1].Quantity)
		assert.False(t, l1.IsCancelled(), "lines with dispatched stock cannot be un-shipped")
		assert.True(t, l2.IsCancelled())
		assert.Equal(t, 100, l1.DispatchedQuantity())
	})

	t.Run("should fail on pending approval order", func(t *testing.T) {
		o := newTestOrder(t)

		_, err := o.Cancel("supervisor")

		require.ErrorIs(t, err, errs.ErrInvalidTransition)
		assert.Equal(t, order.StatusPendingApproval, o.Status())
	})

	t.Run("should fail on fully dispatched order", func(t *testing.T) {
		line := newTestLine(t, "500ml", 300)
		o := newApprovedOrder(t, line)
		require.NoError(t, o.ApplyAllocation(line.ID(), mustQty(t, 300), "allocator"))
		require.NoError(t, o.ApplyDispatch(line.ID(), mustQty(t, 300), "warehouse", "TRK-1", "DHL"))

		_, err := o.Cancel("supervisor")

		require.ErrorIs(t, err, errs.ErrInvalidTransition)
		assert.Equal(t, order.StatusDispatched, o.Status())
	})
}

func TestRestoreOrder(t *testing.T) {
	t.Run("should restore an order with lines, history, and version", func(t *testing.T) {
		id := kernel.NewUUID()
		lineID := kernel.NewUUID()
		line, err := order.RestoreLine(lineID, mustSKU(t, "500ml"), 300, 990, 300, 100, 0, false)
		require.NoError(t, err)

		createdAt := time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC)
		created, err := order.RestoreAuditEntry(createdAt, "operator",
			order.StatusUnknown, order.StatusPendingApproval, "order created", nil, 0)
		require.NoError(t, err)
		approved, err := order.RestoreAuditEntry(createdAt.Add(time.Hour), "supervisor",
			order.StatusPendingApproval, order.StatusApproved, "order approved", nil, 0)
		require.NoError(t, err)
		history := []order.AuditEntry{created, approved}

		o, err := order.RestoreOrder(id, "Acme Retail", "PO-1042",
			orderDate, deliveryDate, order.PriorityHigh, "operator", createdAt,
			"TRK-1", "DHL", order.StatusPartialFulfillment, []*order.Line{line}, history, 7)

		require.NoError(t, err)
		assert.Equal(t, order.StatusPartialFulfillment, o.Status())
		assert.Equal(t, 7, o.Version())
		assert.Equal(t, "TRK-1", o.TrackingID())
		assert.Len(t, o.History(), 2)

		restored, err := o.Line(lineID)
		require.NoError(t, err)
		assert.Equal(t, 100, restored.DispatchedQuantity())
	})

	t.Run("should fail with unknown status", func(t *testing.T) {
		line := newTestLine(t, "500ml", 300)

		_, err := order.RestoreOrder(kernel.NewUUID(), "Acme Retail", "",
			orderDate, deliveryDate, order.PriorityLow, "operator", time.Now().UTC(),
			"", "", order.StatusUnknown, []*order.Line{line}, nil, 0)

		require.Error(t, err)
	})
}

func TestOrder_Validate(t *testing.T) {
	t.Run("zero value is invalid", func(t *testing.T) {
		var o order.Order

		require.Error(t, o.Validate())
	})

	t.Run("nil pointer is invalid", func(t *testing.T) {
		var o *order.Order

		require.Error(t, o.Validate())
	})
}
