package worker

import (
	"errors"
	"fmt"
	"time"

	"afrimercato/internal/core/domain/model/kernel"
	"afrimercato/internal/pkg/errs"
	"afrimercato/internal/pkg/guard"
)

var (
	// ErrWorkerIsNotConstructed is returned when using an improperly
	// initialized Worker.
	ErrWorkerIsNotConstructed = errors.New("Worker must be created via NewWorker constructor")

	// ErrNameIsRequired is returned when creating a worker without a name.
	ErrNameIsRequired = errs.NewValueIsRequiredError("name")

	// ErrVendorAffiliationRequired is returned when creating a picker
	// without a store affiliation.
	ErrVendorAffiliationRequired = errs.NewValueIsRequiredError("picker vendor affiliation")

	// ErrZoneIsRequired is returned when creating a rider without a
	// delivery zone.
	ErrZoneIsRequired = errs.NewValueIsRequiredError("rider zone")

	// ErrWorkerNotIdle is returned when booking a worker that is busy or
	// offline. Dispatch treats it as "candidate unavailable", not fatal.
	ErrWorkerNotIdle = errors.New("worker is not idle")

	// ErrWorkerNotBusy is returned when releasing a worker that holds no
	// active order.
	ErrWorkerNotBusy = errors.New("worker has no active order")
)

// Worker is the aggregate for a picker or rider. Availability transitions:
//
//	Idle ──book──> Busy ──release──> Idle
//	Idle/Busy ──go offline──> Offline ──go online──> Idle
//
// A busy worker records the order it is booked on, so releasing checks the
// caller is releasing the right booking. lastAssignedAt feeds the
// least-recently-assigned selection policy in dispatch.
type Worker struct {
	id             kernel.UUID
	name           string
	kind           Kind
	vendorID       *kernel.UUID // pickers: affiliated store
	zone           string       // riders: delivery area
	availability   Availability
	activeOrderID  *kernel.UUID
	lastAssignedAt time.Time

	guard guard.ConstructorGuard
}

// NewPicker creates an idle picker affiliated with a vendor's store.
func NewPicker(id kernel.UUID, name string, vendorID kernel.UUID) (*Worker, error) {
	w := &Worker{
		kind:         KindPicker,
		availability: AvailabilityIdle,
		guard:        guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		w.setID(id),
		w.setName(name),
		vendorID.Validate(),
	); err != nil {
		return nil, err
	}

	w.vendorID = &vendorID
	return w, nil
}

// NewRider creates an idle rider covering a delivery zone.
func NewRider(id kernel.UUID, name, zone string) (*Worker, error) {
	w := &Worker{
		kind:         KindRider,
		availability: AvailabilityIdle,
		guard:        guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		w.setID(id),
		w.setName(name),
	); err != nil {
		return nil, err
	}
	if zone == "" {
		return nil, ErrZoneIsRequired
	}

	w.zone = zone
	return w, nil
}

// RestoreWorker reconstructs a worker aggregate from persistence.
func RestoreWorker(
	id kernel.UUID,
	name string,
	kind Kind,
	vendorID *kernel.UUID,
	zone string,
	availability Availability,
	activeOrderID *kernel.UUID,
	lastAssignedAt time.Time,
) (*Worker, error) {
	w := &Worker{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		w.setID(id),
		w.setName(name),
		kind.Validate(),
		availability.Validate(),
	); err != nil {
		return nil, err
	}

	switch kind {
	case KindPicker:
		if vendorID == nil {
			return nil, ErrVendorAffiliationRequired
		}
		if err := vendorID.Validate(); err != nil {
			return nil, err
		}
	case KindRider:
		if zone == "" {
			return nil, ErrZoneIsRequired
		}
	}

	if activeOrderID != nil {
		if err := activeOrderID.Validate(); err != nil {
			return nil, err
		}
	}

	w.kind = kind
	w.vendorID = vendorID
	w.zone = zone
	w.availability = availability
	w.activeOrderID = activeOrderID
	w.lastAssignedAt = lastAssignedAt
	return w, nil
}

// Validate ensures the worker was created through a constructor.
func (w *Worker) Validate() error {
	if w == nil {
		return ErrWorkerIsNotConstructed
	}
	return w.guard.Validate(ErrWorkerIsNotConstructed)
}

// IsEqual compares two workers by their unique identifiers.
func (w *Worker) IsEqual(other *Worker) bool {
	return other != nil && w.id.IsEqual(other.id)
}

// ID returns the worker's unique identifier.
func (w *Worker) ID() kernel.UUID {
	return w.id
}

// Name returns the worker's name.
func (w *Worker) Name() string {
	return w.name
}

// Kind reports whether the worker is a picker or a rider.
func (w *Worker) Kind() Kind {
	return w.kind
}

// VendorID returns the affiliated store for pickers, nil for riders.
func (w *Worker) VendorID() *kernel.UUID {
	return w.vendorID
}

// Zone returns the delivery zone for riders, empty for pickers.
func (w *Worker) Zone() string {
	return w.zone
}

// Availability returns the worker's current availability.
func (w *Worker) Availability() Availability {
	return w.availability
}

// ActiveOrderID returns the order the worker is booked on, or nil when idle.
func (w *Worker) ActiveOrderID() *kernel.UUID {
	return w.activeOrderID
}

// LastAssignedAt returns when the worker was last booked. The zero time means
// never, which sorts the worker to the front of least-recently-assigned.
func (w *Worker) LastAssignedAt() time.Time {
	return w.lastAssignedAt
}

// IsIdle reports whether the worker can be booked.
func (w *Worker) IsIdle() bool {
	return w.availability == AvailabilityIdle
}

// Book marks an idle worker busy on the given order. The check and the state
// change happen on the aggregate loaded in the caller's transaction, so the
// conditional persistence write keeps double-booking out.
func (w *Worker) Book(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	if w.availability != AvailabilityIdle {
		return fmt.Errorf("%w: %s is %s", ErrWorkerNotIdle, w.name, w.availability)
	}

	w.availability = AvailabilityBusy
	w.activeOrderID = &orderID
	w.lastAssignedAt = time.Now().UTC()
	return nil
}

// Release frees the worker after their stage completes or after the booked
// order leaves their hands (reassignment, cancellation).
func (w *Worker) Release(orderID kernel.UUID) error {
	if w.activeOrderID == nil {
		return ErrWorkerNotBusy
	}
	if !w.activeOrderID.IsEqual(orderID) {
		return fmt.Errorf("%w: booked on a different order", ErrWorkerNotBusy)
	}

	w.availability = AvailabilityIdle
	w.activeOrderID = nil
	return nil
}

// GoOffline withdraws the worker from dispatch. A busy worker going offline
// keeps its booking recorded; dispatch notices and reassigns the order with a
// worker-unavailable event.
func (w *Worker) GoOffline() {
	w.availability = AvailabilityOffline
}

// GoOnline returns an offline worker to the idle pool, dropping any stale
// booking left from before they went offline.
func (w *Worker) GoOnline() {
	w.availability = AvailabilityIdle
	w.activeOrderID = nil
}

func (w *Worker) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	w.id = id
	return nil
}

func (w *Worker) setName(name string) error {
	if name == "" {
		return ErrNameIsRequired
	}
	w.name = name
	return nil
}
