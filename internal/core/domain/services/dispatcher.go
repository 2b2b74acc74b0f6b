package services

import (
	"errors"
	"fmt"

	"afrimercato/internal/core/domain/model/order"
	"afrimercato/internal/core/domain/model/worker"
)

// ErrNoPickerAvailable is returned when no idle picker affiliated with the
// order's store can take the order. Transient: the caller or the dispatch
// sweep retries later.
var ErrNoPickerAvailable = errors.New("no picker available")

// ErrNoRiderAvailable is returned when no idle rider in the delivery area can
// take the order. Transient, same retry semantics as ErrNoPickerAvailable.
var ErrNoRiderAvailable = errors.New("no rider available")

// SelectionPolicy picks one worker from a non-empty idle candidate set.
// Policies are pluggable; the Dispatcher ships with LeastRecentlyAssigned
// as the baseline.
type SelectionPolicy func(candidates []*worker.Worker) *worker.Worker

// LeastRecentlyAssigned selects the candidate with the oldest lastAssignedAt.
// A worker never booked before sorts first. Ties keep the earlier candidate.
func LeastRecentlyAssigned(candidates []*worker.Worker) *worker.Worker {
	var best *worker.Worker
	for _, c := range candidates {
		if best == nil || c.LastAssignedAt().Before(best.LastAssignedAt()) {
			best = c
		}
	}
	return best
}

// Dispatcher is the domain service that books a worker onto an order. It
// owns the candidate filtering and selection; the exclusive-assignment
// guarantee comes from the Order and Worker aggregates, which both reject a
// second booking, combined with the conditional persistence writes.
type Dispatcher struct {
	policy SelectionPolicy
}

// NewDispatcher creates a Dispatcher with the given selection policy.
// A nil policy falls back to LeastRecentlyAssigned.
func NewDispatcher(policy SelectionPolicy) Dispatcher {
	if policy == nil {
		policy = LeastRecentlyAssigned
	}
	return Dispatcher{policy: policy}
}

// DispatchPicker books an idle picker from the order's store onto the order.
// Returns ErrNoPickerAvailable when no candidate is eligible, and
// order.ErrPickerAlreadyAssigned when the order already holds a picker; the
// caller treats the latter as a benign collision and reports the existing
// assignment.
func (d Dispatcher) DispatchPicker(o *order.Order, candidates []*worker.Worker) (*worker.Worker, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}
	if o.PickerID() != nil {
		return nil, order.ErrPickerAlreadyAssigned
	}

	picked, err := d.selectAndBook(o, worker.KindPicker, candidates)
	if err != nil {
		return nil, err
	}

	if err := o.AssignPicker(picked.ID()); err != nil {
		return nil, err
	}
	return picked, nil
}

// RedispatchPicker clears an unavailable picker's assignment and books a
// replacement, keeping the order's progress. The outgoing picker is released
// from the booking; the order logs the reassignment.
func (d Dispatcher) RedispatchPicker(o *order.Order, unavailable *worker.Worker, candidates []*worker.Worker) (*worker.Worker, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}

	replacement, err := d.selectAndBook(o, worker.KindPicker, candidates)
	if err != nil {
		return nil, err
	}

	if err := o.ReassignPicker(replacement.ID()); err != nil {
		return nil, err
	}

	// The outgoing worker may already have dropped the booking
	// (went offline and back online), which is fine.
	if unavailable != nil && unavailable.ActiveOrderID() != nil {
		if err := unavailable.Release(o.ID()); err != nil {
			return nil, err
		}
	}
	return replacement, nil
}

// DispatchRider books an idle rider onto a picked-and-packed order. The
// candidate set is already narrowed to the delivery area by the geolocation
// collaborator.
func (d Dispatcher) DispatchRider(o *order.Order, candidates []*worker.Worker) (*worker.Worker, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}
	if o.RiderID() != nil {
		return nil, order.ErrRiderAlreadyAssigned
	}

	picked, err := d.selectAndBook(o, worker.KindRider, candidates)
	if err != nil {
		return nil, err
	}

	if err := o.AssignRider(picked.ID()); err != nil {
		return nil, err
	}
	return picked, nil
}

// RedispatchRider replaces an unavailable rider before pickup.
func (d Dispatcher) RedispatchRider(o *order.Order, unavailable *worker.Worker, candidates []*worker.Worker) (*worker.Worker, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}

	replacement, err := d.selectAndBook(o, worker.KindRider, candidates)
	if err != nil {
		return nil, err
	}

	if err := o.ReassignRider(replacement.ID()); err != nil {
		return nil, err
	}

	if unavailable != nil && unavailable.ActiveOrderID() != nil {
		if err := unavailable.Release(o.ID()); err != nil {
			return nil, err
		}
	}
	return replacement, nil
}

func (d Dispatcher) selectAndBook(o *order.Order, kind worker.Kind, candidates []*worker.Worker) (*worker.Worker, error) {
	eligible := make([]*worker.Worker, 0, len(candidates))
	for _, c := range candidates {
		if err := c.Validate(); err != nil {
			return nil, err
		}
		if c.Kind() != kind || !c.IsIdle() {
			continue
		}
		if kind == worker.KindPicker {
			if c.VendorID() == nil || !c.VendorID().IsEqual(o.VendorID()) {
				continue
			}
		}
		eligible = append(eligible, c)
	}

	if len(eligible) == 0 {
		if kind == worker.KindPicker {
			return nil, ErrNoPickerAvailable
		}
		return nil, ErrNoRiderAvailable
	}

	picked := d.policy(eligible)
	if picked == nil {
		return nil, fmt.Errorf("selection policy returned no worker from %d candidates", len(eligible))
	}

	if err := picked.Book(o.ID()); err != nil {
		return nil, err
	}
	return picked, nil
}
