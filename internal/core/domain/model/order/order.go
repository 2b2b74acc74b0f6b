package order

import (
	"errors"
	"fmt"

	"afrimercato/internal/core/domain/model/kernel"
	"afrimercato/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not
	// created through NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	// ErrOrderHasNoItems is returned when attempting to place an order with
	// an empty line-item snapshot.
	ErrOrderHasNoItems = errors.New("order must contain at least one line item")

	// ErrPickerAlreadyAssigned signals that the order already has an active
	// picker. Callers treat it as a benign idempotency collision and return
	// the existing assignment.
	ErrPickerAlreadyAssigned = errors.New("order already has an assigned picker")

	// ErrRiderAlreadyAssigned signals that the order already has an active
	// rider. Benign, like ErrPickerAlreadyAssigned.
	ErrRiderAlreadyAssigned = errors.New("order already has an assigned rider")

	// ErrItemNotFound is returned when a command references a line item
	// that does not belong to the order.
	ErrItemNotFound = errors.New("line item not found on order")

	// ErrItemStateConflict is returned when an item action does not match
	// the item's current sub-state (e.g. picking an already-picked item).
	ErrItemStateConflict = errors.New("line item is not in the required state")

	// ErrActorMismatch is returned when a picker or rider command arrives
	// from a worker other than the one currently assigned.
	ErrActorMismatch = errors.New("order is assigned to a different worker")

	// ErrOverrideReasonRequired is returned when a late-stage cancellation
	// (rider assigned or in transit) arrives without an override reason.
	ErrOverrideReasonRequired = errors.New("cancellation at this stage requires an override reason")
)

// Order is the central aggregate of the fulfillment core. It owns the order's
// status, line items, worker assignments and event log, and it is the sole
// writer of all of them: external actors issue commands, never field writes.
//
// Invariants maintained:
//   - Status changes only through the guarded transition table in status.go.
//   - At most one active picker and at most one active rider at any time.
//   - PickedComplete is reachable only when every line item's sub-state is
//     resolved (picked, substitution-resolved, or out-of-stock).
//   - Once a terminal status is reached the order is immutable.
//   - The event log is append-only; prior entries are never mutated.
//
// The version field supports optimistic concurrency: repositories persist
// updates conditionally on the version being unchanged since the read.
type Order struct {
	id         kernel.UUID
	customerID kernel.UUID
	vendorID   kernel.UUID
	items      []*LineItem
	status     Status
	pickerID   *kernel.UUID
	riderID    *kernel.UUID
	version    int
	events     []Event

	isConstructed bool
}

// NewOrder creates an order in the Placed status from a catalog snapshot.
// The items slice must be non-empty; each item is validated. The opening
// event-log entry records the placement by the customer.
func NewOrder(id, customerID, vendorID kernel.UUID, items []*LineItem) (*Order, error) {
	o := &Order{
		status:        StatusPlaced,
		version:       1,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomerID(customerID),
		o.setVendorID(vendorID),
		o.setItems(items),
	); err != nil {
		return nil, err
	}

	o.events = append(o.events, newEvent(kernel.RoleCustomer, StatusUnknown, StatusPlaced, "order placed"))
	return o, nil
}

// RestoreOrder reconstructs an order aggregate from persistence, including
// its event log, assignments and version.
func RestoreOrder(
	id, customerID, vendorID kernel.UUID,
	items []*LineItem,
	status Status,
	pickerID, riderID *kernel.UUID,
	version int,
	events []Event,
) (*Order, error) {
	o := &Order{
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomerID(customerID),
		o.setVendorID(vendorID),
		o.setItems(items),
		status.Validate(),
	); err != nil {
		return nil, err
	}

	if pickerID != nil {
		if err := pickerID.Validate(); err != nil {
			return nil, err
		}
	}
	if riderID != nil {
		if err := riderID.Validate(); err != nil {
			return nil, err
		}
	}
	if version < 1 {
		return nil, errs.NewValueIsInvalidErrorWithCause("version",
			fmt.Errorf("%d is not a valid aggregate version", version))
	}

	o.status = status
	o.pickerID = pickerID
	o.riderID = riderID
	o.version = version
	o.events = events
	return o, nil
}

// Validate ensures the order was created through a constructor.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// CustomerID returns the customer reference.
func (o *Order) CustomerID() kernel.UUID {
	return o.customerID
}

// VendorID returns the vendor reference.
func (o *Order) VendorID() kernel.UUID {
	return o.vendorID
}

// Status returns the current overall status.
func (o *Order) Status() Status {
	return o.status
}

// Items returns the order's line items. The slice must not be mutated.
func (o *Order) Items() []*LineItem {
	return o.items
}

// PickerID returns the assigned picker, or nil if unassigned.
func (o *Order) PickerID() *kernel.UUID {
	return o.pickerID
}

// RiderID returns the assigned rider, or nil if unassigned.
func (o *Order) RiderID() *kernel.UUID {
	return o.riderID
}

// Version returns the optimistic-concurrency version read from persistence.
func (o *Order) Version() int {
	return o.version
}

// Events returns the append-only event log in chronological order.
func (o *Order) Events() []Event {
	return o.events
}

// LatestEvent returns the most recent event-log entry.
func (o *Order) LatestEvent() Event {
	return o.events[len(o.events)-1]
}

// Total returns the sum of line totals for all items that still count toward
// the order: out-of-stock items are excluded, substituted items contribute
// their replacement price.
func (o *Order) Total() kernel.Money {
	total := kernel.NewMoney(0)
	for _, item := range o.items {
		if item.State().CountsTowardTotal() {
			total = total.Add(item.LineTotal())
		}
	}
	return total
}

// Item returns the line item with the given ID, or ErrItemNotFound.
func (o *Order) Item(itemID kernel.UUID) (*LineItem, error) {
	for _, item := range o.items {
		if item.ID().IsEqual(itemID) {
			return item, nil
		}
	}
	return nil, ErrItemNotFound
}

// AcceptByVendor transitions Placed -> VendorAccepted on behalf of the vendor.
func (o *Order) AcceptByVendor(note string) error {
	return o.transition(StatusVendorAccepted, kernel.RoleVendor, note)
}

// RejectByVendor transitions Placed -> VendorRejected. Terminal.
func (o *Order) RejectByVendor(note string) error {
	return o.transition(StatusVendorRejected, kernel.RoleVendor, note)
}

// AssignPicker reserves a picker for a vendor-accepted order. If the order
// already has an active picker the call fails with ErrPickerAlreadyAssigned
// and changes nothing; callers may surface the existing assignment instead.
func (o *Order) AssignPicker(pickerID kernel.UUID) error {
	if err := pickerID.Validate(); err != nil {
		return err
	}
	if o.pickerID != nil {
		return ErrPickerAlreadyAssigned
	}
	if err := o.transition(StatusPickerAssigned, kernel.RoleSystem, "picker assigned"); err != nil {
		return err
	}

	o.pickerID = &pickerID
	return nil
}

// ReassignPicker swaps the active picker after the previous one became
// unavailable. Legal while the order is picker-assigned or picking; the
// status is preserved so fulfillment progress is not lost, and the event log
// records the reassignment with the WORKER_UNAVAILABLE note.
func (o *Order) ReassignPicker(pickerID kernel.UUID) error {
	if err := pickerID.Validate(); err != nil {
		return err
	}
	if o.status != StatusPickerAssigned && o.status != StatusPicking {
		return fmt.Errorf("%w: cannot reassign picker at %s", ErrIllegalTransition, o.status)
	}

	o.appendEvent(kernel.RoleSystem, o.status, o.status, NoteWorkerUnavailable)
	o.pickerID = &pickerID
	return nil
}

// StartPicking transitions PickerAssigned -> Picking. Only the assigned
// picker may start.
func (o *Order) StartPicking(pickerID kernel.UUID) error {
	if err := o.requireAssignedPicker(pickerID); err != nil {
		return err
	}
	return o.transition(StatusPicking, kernel.RolePicker, "picking started")
}

// PickItem records that the assigned picker collected an unpicked item as
// ordered. Legal only while the order is picking.
func (o *Order) PickItem(pickerID, itemID kernel.UUID) error {
	if err := o.requirePickingBy(pickerID); err != nil {
		return err
	}

	item, err := o.Item(itemID)
	if err != nil {
		return err
	}
	if item.State() != ItemStateUnpicked {
		return fmt.Errorf("%w: %s is %s", ErrItemStateConflict, itemID, item.State())
	}

	item.state = ItemStatePicked
	o.appendEvent(kernel.RolePicker, o.status, o.status, "item picked: "+item.Name())
	return nil
}

// MarkItemSubstitutionPending blocks an unpicked item on an open substitution
// proposal. The item leaves this sub-state only when the proposal resolves.
func (o *Order) MarkItemSubstitutionPending(pickerID, itemID kernel.UUID) error {
	if err := o.requirePickingBy(pickerID); err != nil {
		return err
	}

	item, err := o.Item(itemID)
	if err != nil {
		return err
	}
	if item.State() != ItemStateUnpicked {
		return fmt.Errorf("%w: %s is %s", ErrItemStateConflict, itemID, item.State())
	}

	item.state = ItemStateSubstitutionPending
	o.appendEvent(kernel.RolePicker, o.status, o.status, "substitution proposed: "+item.Name())
	return nil
}

// ApplySubstitutionApproval resolves a pending substitution with the approved
// replacement product. The item's snapshot is rewritten to the substitute and
// the order total changes accordingly.
func (o *Order) ApplySubstitutionApproval(itemID, productID kernel.UUID, name string, unitPrice kernel.Money) error {
	item, err := o.substitutionPendingItem(itemID)
	if err != nil {
		return err
	}

	if err = errors.Join(productID.Validate(), unitPrice.Validate()); err != nil {
		return err
	}
	if name == "" {
		return ErrItemNameIsRequired
	}

	substituted := productID
	item.substitutedProductID = &substituted
	item.name = name
	item.unitPrice = unitPrice
	item.state = ItemStateSubstitutionResolved
	o.appendEvent(kernel.RoleCustomer, o.status, o.status, "substitution approved: "+name)
	return nil
}

// ApplySubstitutionRejection resolves a pending substitution by acknowledging
// the item as out of stock, excluding it from the order total. The note
// distinguishes a customer rejection from a deadline auto-reject
// (NoteAutoRejectedTimeout).
func (o *Order) ApplySubstitutionRejection(itemID kernel.UUID, role kernel.Role, note string) error {
	item, err := o.substitutionPendingItem(itemID)
	if err != nil {
		return err
	}

	item.state = ItemStateOutOfStock
	o.appendEvent(role, o.status, o.status, note)
	return nil
}

// AllItemsResolved reports whether no line item remains unpicked or blocked
// on a substitution.
func (o *Order) AllItemsResolved() bool {
	for _, item := range o.items {
		if !item.State().IsResolved() {
			return false
		}
	}
	return true
}

// TryCompletePicking transitions Picking -> PickedComplete once every line
// item is resolved. It reports whether the transition happened; a false
// return with nil error means items are still outstanding. The role is the
// actor whose action completed the last item (picker or system).
func (o *Order) TryCompletePicking(role kernel.Role) (bool, error) {
	if o.status != StatusPicking || !o.AllItemsResolved() {
		return false, nil
	}
	if err := o.transition(StatusPickedComplete, role, "all items resolved"); err != nil {
		return false, err
	}
	return true, nil
}

// AssignRider reserves a rider for a picked-complete order. Mirrors
// AssignPicker's idempotency: an active rider yields ErrRiderAlreadyAssigned.
func (o *Order) AssignRider(riderID kernel.UUID) error {
	if err := riderID.Validate(); err != nil {
		return err
	}
	if o.riderID != nil {
		return ErrRiderAlreadyAssigned
	}
	if err := o.transition(StatusRiderAssigned, kernel.RoleSystem, "rider assigned"); err != nil {
		return err
	}

	o.riderID = &riderID
	return nil
}

// ReassignRider swaps the active rider before pickup confirmation. Once the
// order is in transit the rider cannot be swapped; that failure case is a
// late-stage cancellation instead.
func (o *Order) ReassignRider(riderID kernel.UUID) error {
	if err := riderID.Validate(); err != nil {
		return err
	}
	if o.status != StatusRiderAssigned {
		return fmt.Errorf("%w: cannot reassign rider at %s", ErrIllegalTransition, o.status)
	}

	o.appendEvent(kernel.RoleSystem, o.status, o.status, NoteWorkerUnavailable)
	o.riderID = &riderID
	return nil
}

// ConfirmPickup transitions RiderAssigned -> InTransit. Only the assigned
// rider may confirm.
func (o *Order) ConfirmPickup(riderID kernel.UUID) error {
	if err := o.requireAssignedRider(riderID); err != nil {
		return err
	}
	return o.transition(StatusInTransit, kernel.RoleRider, "pickup confirmed")
}

// ConfirmDelivery transitions InTransit -> Delivered. Terminal.
func (o *Order) ConfirmDelivery(riderID kernel.UUID) error {
	if err := o.requireAssignedRider(riderID); err != nil {
		return err
	}
	return o.transition(StatusDelivered, kernel.RoleRider, "delivery confirmed")
}

// Cancel short-circuits the order to Cancelled. Cancelling an already
// cancelled order is an idempotent no-op. From RiderAssigned or InTransit a
// non-empty override reason is required and the event is logged distinctly;
// the compensating refund is the caller's concern.
func (o *Order) Cancel(role kernel.Role, reason string) error {
	if o.status == StatusCancelled {
		return nil
	}

	note := "cancelled"
	if o.status.CancelRequiresOverride() {
		if reason == "" {
			return ErrOverrideReasonRequired
		}
		note = "override cancellation: " + reason
	} else if reason != "" {
		note = "cancelled: " + reason
	}

	return o.transition(StatusCancelled, role, note)
}

// transition performs a guarded status change and appends the event-log entry.
func (o *Order) transition(to Status, role kernel.Role, note string) error {
	if err := o.status.CanTransition(to, role); err != nil {
		return err
	}

	o.appendEvent(role, o.status, to, note)
	o.status = to
	return nil
}

func (o *Order) appendEvent(role kernel.Role, from, to Status, note string) {
	o.events = append(o.events, newEvent(role, from, to, note))
}

func (o *Order) substitutionPendingItem(itemID kernel.UUID) (*LineItem, error) {
	if o.status != StatusPicking {
		return nil, fmt.Errorf("%w: order is %s, substitutions resolve only while picking",
			ErrIllegalTransition, o.status)
	}

	item, err := o.Item(itemID)
	if err != nil {
		return nil, err
	}
	if item.State() != ItemStateSubstitutionPending {
		return nil, fmt.Errorf("%w: %s is %s", ErrItemStateConflict, itemID, item.State())
	}
	return item, nil
}

func (o *Order) requireAssignedPicker(pickerID kernel.UUID) error {
	if err := pickerID.Validate(); err != nil {
		return err
	}
	if o.pickerID == nil || !o.pickerID.IsEqual(pickerID) {
		return ErrActorMismatch
	}
	return nil
}

func (o *Order) requirePickingBy(pickerID kernel.UUID) error {
	if err := o.requireAssignedPicker(pickerID); err != nil {
		return err
	}
	if o.status != StatusPicking {
		return fmt.Errorf("%w: items change only while picking, order is %s",
			ErrIllegalTransition, o.status)
	}
	return nil
}

func (o *Order) requireAssignedRider(riderID kernel.UUID) error {
	if err := riderID.Validate(); err != nil {
		return err
	}
	if o.riderID == nil || !o.riderID.IsEqual(riderID) {
		return ErrActorMismatch
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

func (o *Order) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}
	o.customerID = customerID
	return nil
}

func (o *Order) setVendorID(vendorID kernel.UUID) error {
	if err := vendorID.Validate(); err != nil {
		return err
	}
	o.vendorID = vendorID
	return nil
}

func (o *Order) setItems(items []*LineItem) error {
	if len(items) == 0 {
		return ErrOrderHasNoItems
	}
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
	}
	o.items = items
	return nil
}
