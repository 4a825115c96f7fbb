package order

import (
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

// ErrOrderIsNotConstructed is returned when an Order instance was not created
// through NewOrder or RestoreOrder.
var ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder constructor")

// Release describes a reservation returned to the inventory ledger when an
// order is cancelled: the allocated-but-undispatched quantity of one line.
type Release struct {
	SKU      kernel.SKU
	Quantity int
}

// Order is the aggregate root for a sales order. It owns the header fields,
// the append-only list of lines, and the append-only audit history.
//
// Order follows these invariants:
//   - status is derived: header commands (approve, reject, cancel) move it
//     directly, line progress moves it only through recomputeStatus
//   - lines are fixed at creation; they are mutated, never added or removed
//   - every successful mutation appends exactly one audit entry; a failed
//     command appends none and leaves all state unchanged
//   - trackingID and carrier are stamped once, when the first dispatch occurs
//
// Line counters and the inventory ledger must move together; Order therefore
// exposes CanX/ApplyX pairs so the allocation coordinator can check
// preconditions, commit the ledger side, and only then apply the line side.
type Order struct {
	// id is the unique identifier for the order
	id kernel.UUID

	// customer names the ordering party
	customer string

	// reference is the customer's order reference, optional
	reference string

	// orderDate is the commercial date of the order
	orderDate time.Time

	// deliveryDate is the requested delivery date
	deliveryDate time.Time

	// priority drives allocation ordering between competing orders
	priority Priority

	// createdBy is the user that captured the order
	createdBy string

	// createdAt is when the aggregate was created
	createdAt time.Time

	// trackingID and carrier are set once dispatch begins
	trackingID string
	carrier    string

	// status is the current state in the order lifecycle
	status Status

	// lines is the ordered, append-only sequence of order lines
	lines []*Line

	// history is the ordered, append-only audit trail
	history []AuditEntry

	// version is the optimistic concurrency token managed by persistence
	version int

	// guard ensures the order was created via a constructor
	guard guard.ConstructorGuard
}

// NewOrder creates a new Order in PendingApproval status with all line
// counters at zero and the inventory ledger untouched. The creation is
// recorded as the first audit entry.
//
// Parameters:
//   - id: unique identifier (must be a valid UUID)
//   - customer: ordering party (required)
//   - reference: customer order reference (optional)
//   - orderDate: commercial order date
//   - deliveryDate: requested delivery date (not before orderDate)
//   - priority: allocation urgency
//   - createdBy: capturing user (required), recorded as the audit actor
//   - lines: at least one line with unique line IDs
func NewOrder(
	id kernel.UUID,
	customer, reference string,
	orderDate, deliveryDate time.Time,
	priority Priority,
	createdBy string,
	lines []*Line,
) (*Order, error) {
	o := &Order{
		status: StatusPendingApproval,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomer(customer),
		o.setDates(orderDate, deliveryDate),
		o.setPriority(priority),
		o.setCreatedBy(createdBy),
		o.setLines(lines),
	); err != nil {
		return nil, err
	}

	o.reference = reference
	o.createdAt = time.Now().UTC()
	o.history = append(o.history, newAuditEntry(
		o.createdAt, createdBy, StatusUnknown, StatusPendingApproval, "order created", nil, 0))

	return o, nil
}

// RestoreOrder reconstructs an Order from persistent storage, including its
// lines, audit history, and optimistic concurrency version.
func RestoreOrder(
	id kernel.UUID,
	customer, reference string,
	orderDate, deliveryDate time.Time,
	priority Priority,
	createdBy string,
	createdAt time.Time,
	trackingID, carrier string,
	status Status,
	lines []*Line,
	history []AuditEntry,
	version int,
) (*Order, error) {
	o := &Order{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomer(customer),
		o.setDates(orderDate, deliveryDate),
		o.setPriority(priority),
		o.setCreatedBy(createdBy),
		o.setLines(lines),
		status.Validate(),
	); err != nil {
		return nil, err
	}

	for _, entry := range history {
		if err := entry.Validate(); err != nil {
			return nil, err
		}
	}

	o.reference = reference
	o.createdAt = createdAt
	o.trackingID = trackingID
	o.carrier = carrier
	o.status = status
	o.history = history
	o.version = version

	return o, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// Customer returns the ordering party.
func (o *Order) Customer() string {
	return o.customer
}

// Reference returns the customer's order reference.
func (o *Order) Reference() string {
	return o.reference
}

// OrderDate returns the commercial order date.
func (o *Order) OrderDate() time.Time {
	return o.orderDate
}

// DeliveryDate returns the requested delivery date.
func (o *Order) DeliveryDate() time.Time {
	return o.deliveryDate
}

// Priority returns the allocation urgency of the order.
func (o *Order) Priority() Priority {
	return o.priority
}

// CreatedBy returns the user that captured the order.
func (o *Order) CreatedBy() string {
	return o.createdBy
}

// CreatedAt returns when the aggregate was created.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// TrackingID returns the shipment tracking identifier, empty until the first
// dispatch.
func (o *Order) TrackingID() string {
	return o.trackingID
}

// Carrier returns the shipping carrier, empty until the first dispatch.
func (o *Order) Carrier() string {
	return o.carrier
}

// Status returns the current status of the order.
func (o *Order) Status() Status {
	return o.status
}

// Version returns the optimistic concurrency token.
func (o *Order) Version() int {
	return o.version
}

// Lines returns the order lines. The slice is a copy; the lines themselves
// are the aggregate's entities and must not be mutated by callers.
func (o *Order) Lines() []*Line {
	return append([]*Line(nil), o.lines...)
}

// History returns a copy of the append-only audit trail, oldest first.
func (o *Order) History() []AuditEntry {
	return append([]AuditEntry(nil), o.history...)
}

// Line returns the line with the given ID, or ObjectNotFoundError.
func (o *Order) Line(lineID kernel.UUID) (*Line, error) {
	if err := lineID.Validate(); err != nil {
		return nil, err
	}
	for _, l := range o.lines {
		if l.ID().IsEqual(lineID) {
			return l, nil
		}
	}
	return nil, errs.NewObjectNotFoundError("line", lineID.String())
}

// Approve moves the order from PendingApproval to Approved and records the
// decision. Illegal from any other status; the state is left unchanged and
// no audit entry is written on a rejected command.
func (o *Order) Approve(actor string) error {
	if err := requireActor(actor); err != nil {
		return err
	}

	newStatus, err := o.status.Approve()
	if err != nil {
		return err
	}

	o.appendAudit(actor, o.status, newStatus, "order approved", nil, 0)
	o.status = newStatus
	return nil
}

// Reject moves the order from PendingApproval to Rejected (terminal) and
// records the decision together with the reviewer's note.
func (o *Order) Reject(actor, note string) error {
	if err := requireActor(actor); err != nil {
		return err
	}

	newStatus, err := o.status.Reject()
	if err != nil {
		return err
	}

	if note == "" {
		note = "order rejected"
	}
	o.appendAudit(actor, o.status, newStatus, note, nil, 0)
	o.status = newStatus
	return nil
}

// CanAllocateLine checks the allocation preconditions without side effects:
// the order status permits allocation, the line exists and is not cancelled,
// and the new allocated quantity stays within the ordered quantity.
func (o *Order) CanAllocateLine(lineID kernel.UUID, qty kernel.Quantity) error {
	if err := qty.Validate(); err != nil {
		return err
	}
	if err := o.status.ValidateAllocate(); err != nil {
		return err
	}

	line, err := o.Line(lineID)
	if err != nil {
		return err
	}

	return line.canAllocate(qty.Value())
}

// ApplyAllocation moves qty units of the line from ordered to allocated,
// appends the audit entry, and recomputes the order status. Callers must
// have checked CanAllocateLine and reserved the same quantity in the
// inventory ledger first.
func (o *Order) ApplyAllocation(lineID kernel.UUID, qty kernel.Quantity, actor string) error {
	if err := requireActor(actor); err != nil {
		return err
	}
	if err := o.CanAllocateLine(lineID, qty); err != nil {
		return err
	}

	line, err := o.Line(lineID)
	if err != nil {
		return err
	}

	from := o.status
	line.allocate(qty.Value())
	o.recomputeStatus()
	o.appendAudit(actor, from, o.status,
		fmt.Sprintf("allocated %d of %s", qty.Value(), line.SKU()), &lineID, qty.Value())
	return nil
}

// CanDispatchLine checks the dispatch preconditions without side effects:
// the order status permits dispatch and the new dispatched quantity stays
// within the allocated quantity.
func (o *Order) CanDispatchLine(lineID kernel.UUID, qty kernel.Quantity) error {
	if err := qty.Validate(); err != nil {
		return err
	}
	if err := o.status.ValidateDispatch(); err != nil {
		return err
	}

	line, err := o.Line(lineID)
	if err != nil {
		return err
	}

	return line.canDispatch(qty.Value())
}

// ApplyDispatch moves qty units of the line from allocated to dispatched,
// stamps the tracking details on the first dispatch, appends the audit
// entry, and recomputes the order status. Callers must have checked
// CanDispatchLine and consumed the same quantity in the inventory ledger.
func (o *Order) ApplyDispatch(lineID kernel.UUID, qty kernel.Quantity, actor, trackingID, carrier string) error {
	if err := requireActor(actor); err != nil {
		return err
	}
	if err := o.CanDispatchLine(lineID, qty); err != nil {
		return err
	}

	line, err := o.Line(lineID)
	if err != nil {
		return err
	}

	if o.trackingID == "" {
		o.trackingID = trackingID
		o.carrier = carrier
	}

	from := o.status
	line.dispatch(qty.Value())
	o.recomputeStatus()
	o.appendAudit(actor, from, o.status,
		fmt.Sprintf("dispatched %d of %s", qty.Value(), line.SKU()), &lineID, qty.Value())
	return nil
}

// CanDeliverLine checks the delivery preconditions without side effects:
// the order status permits delivery and the new delivered quantity stays
// within the dispatched quantity.
func (o *Order) CanDeliverLine(lineID kernel.UUID, qty kernel.Quantity) error {
	if err := qty.Validate(); err != nil {
		return err
	}
	if err := o.status.ValidateDeliver(); err != nil {
		return err
	}

	line, err := o.Line(lineID)
	if err != nil {
		return err
	}

	return line.canDeliver(qty.Value())
}

// ApplyDelivery moves qty units of the line from dispatched to delivered,
// appends the audit entry, and recomputes the order status. Delivery has no
// ledger effect; the stock physically left at dispatch time.
func (o *Order) ApplyDelivery(lineID kernel.UUID, qty kernel.Quantity, actor string) error {
	if err := requireActor(actor); err != nil {
		return err
	}
	if err := o.CanDeliverLine(lineID, qty); err != nil {
		return err
	}

	line, err := o.Line(lineID)
	if err != nil {
		return err
	}

	from := o.status
	line.deliver(qty.Value())
	o.recomputeStatus()
	o.appendAudit(actor, from, o.status,
		fmt.Sprintf("delivered %d of %s", qty.Value(), line.SKU()), &lineID, qty.Value())
	return nil
}

// Cancel moves the order to Cancelled (terminal) and reports, per SKU, the
// allocated-but-undispatched quantities the caller must release back to the
// inventory ledger.
//
// Lines without dispatched stock are marked cancelled. Lines that already
// dispatched or delivered stock cannot be un-shipped and keep their state;
// only their remaining reservation is released. Legal from Approved, Ready,
// and PartialFulfillment; pending orders are rejected instead, and fully
// dispatched orders can only complete.
func (o *Order) Cancel(actor string) ([]Release, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}

	newStatus, err := o.status.Cancel()
	if err != nil {
		return nil, err
	}

	var releases []Release
	for _, l := range o.lines {
		if l.IsCancelled() {
			continue
		}
		if releasable := l.ReservedQuantity(); releasable > 0 {
			releases = append(releases, Release{SKU: l.SKU(), Quantity: releasable})
		}
		if l.DispatchedQuantity() == 0 {
			l.markCancelled()
		}
	}

	o.appendAudit(actor, o.status, newStatus, "order cancelled", nil, 0)
	o.status = newStatus
	return releases, nil
}

// recomputeStatus derives the order status from line progress. It is invoked
// after every line mutation and never stored independently of one, which
// keeps header state and line state from drifting apart.
//
// Derivation precedence (highest wins):
//   - all lines cancelled -> Cancelled
//   - all active lines fully delivered -> Delivered
//   - all active lines fully dispatched -> Dispatched
//   - any active line has dispatched stock -> PartialFulfillment
//   - all active lines fully allocated (post-approval) -> Ready
//   - otherwise the current header status is retained
//
// A partially allocated order is deliberately NOT partial fulfillment;
// that state requires dispatch progress on at least one line.
func (o *Order) recomputeStatus() {
	if o.status.IsTerminal() {
		return
	}

	var (
		active             int
		allDelivered       = true
		allDispatched      = true
		allAllocated       = true
		anyDispatchedStock bool
	)

	for _, l := range o.lines {
		if l.IsCancelled() {
			continue
		}
		active++
		if l.DeliveredQuantity() != l.OrderedQuantity() {
			allDelivered = false
		}
		if l.DispatchedQuantity() != l.OrderedQuantity() {
			allDispatched = false
		}
		if l.AllocatedQuantity() != l.OrderedQuantity() {
			allAllocated = false
		}
		if l.DispatchedQuantity() > 0 {
			anyDispatchedStock = true
		}
	}

	switch {
	case active == 0:
		o.status = StatusCancelled
	case allDelivered:
		o.status = StatusDelivered
	case allDispatched:
		o.status = StatusDispatched
	case anyDispatchedStock:
		o.status = StatusPartialFulfillment
	case allAllocated && o.status != StatusPendingApproval:
		o.status = StatusReady
	}
}

// appendAudit records a successful mutation in the append-only history.
func (o *Order) appendAudit(actor string, from, to Status, note string, lineID *kernel.UUID, quantity int) {
	o.history = append(o.history, newAuditEntry(
		time.Now().UTC(), actor, from, to, note, lineID, quantity))
}

func requireActor(actor string) error {
	if actor == "" {
		return errs.NewValueIsRequiredError("actor")
	}
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setCustomer(customer string) error {
	if customer == "" {
		return errs.NewValueIsRequiredError("customer")
	}
	o.customer = customer
	return nil
}

func (o *Order) setDates(orderDate, deliveryDate time.Time) error {
	if orderDate.IsZero() {
		return errs.NewValueIsRequiredError("order date")
	}
	if deliveryDate.IsZero() {
		return errs.NewValueIsRequiredError("delivery date")
	}
	if deliveryDate.Before(orderDate) {
		return errs.NewValueIsInvalidErrorWithCause("delivery date",
			fmt.Errorf("%s is before order date %s",
				deliveryDate.Format(time.DateOnly), orderDate.Format(time.DateOnly)))
	}
	o.orderDate = orderDate
	o.deliveryDate = deliveryDate
	return nil
}

func (o *Order) setPriority(priority Priority) error {
	if err := priority.Validate(); err != nil {
		return err
	}
	o.priority = priority
	return nil
}

func (o *Order) setCreatedBy(createdBy string) error {
	if createdBy == "" {
		return errs.NewValueIsRequiredError("created by")
	}
	o.createdBy = createdBy
	return nil
}

func (o *Order) setLines(lines []*Line) error {
	if len(lines) == 0 {
		return errs.NewValueIsRequiredError("lines")
	}

	seen := make(map[kernel.UUID]struct{}, len(lines))
	for _, l := range lines {
		if err := l.Validate(); err != nil {
			return err
		}
		if _, ok := seen[l.ID()]; ok {
			return errs.NewValueIsInvalidErrorWithCause("lines",
				fmt.Errorf("duplicate line id %s", l.ID()))
		}
		seen[l.ID()] = struct{}{}
	}

	o.lines = lines
	return nil
}
