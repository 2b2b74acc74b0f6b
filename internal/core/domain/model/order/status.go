package order

import (
	"errors"
	"fmt"

	"afrimercato/internal/core/domain/model/kernel"
	"afrimercato/internal/pkg/errs"
)

// ErrIllegalTransition is returned when a requested status change has no
// matching edge in the transition table, or when the triggering actor's role
// is not authorized for that edge. Callers should treat it as a user-facing,
// recoverable error: pick a valid action for the current status.
var ErrIllegalTransition = errors.New("illegal transition")

// Status represents the overall lifecycle state of an order.
// It implements the fulfillment state machine shared by vendor, picker,
// rider and customer actions:
//
//	Placed ──vendor──> VendorAccepted ──system──> PickerAssigned ──picker──> Picking
//	  │                                                                        │
//	  └──vendor──> VendorRejected [terminal]                            (all items resolved)
//	                                                                           │
//	Delivered [terminal] <──rider── InTransit <──rider── RiderAssigned <──system── PickedComplete
//
// Cancellation short-circuits to Cancelled from any non-terminal status;
// cancelling at RiderAssigned or later requires an explicit override reason.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	StatusUnknown Status = iota

	// StatusPlaced is the initial status after checkout confirmation.
	StatusPlaced

	// StatusVendorAccepted means the vendor has agreed to fulfill the order.
	StatusVendorAccepted

	// StatusVendorRejected means the vendor declined the order. Terminal.
	StatusVendorRejected

	// StatusPickerAssigned means dispatch has reserved a picker for the order.
	StatusPickerAssigned

	// StatusPicking means the assigned picker is collecting items.
	StatusPicking

	// StatusPickedComplete means every line item has been resolved
	// (picked, substitution-resolved, or acknowledged out-of-stock).
	StatusPickedComplete

	// StatusRiderAssigned means dispatch has reserved a rider for delivery.
	StatusRiderAssigned

	// StatusInTransit means the rider has confirmed pickup and is en route.
	StatusInTransit

	// StatusDelivered means the rider confirmed delivery. Terminal.
	StatusDelivered

	// StatusCancelled is the terminal status for any cancelled order.
	StatusCancelled
)

// edge is one outbound transition from a status, with the roles allowed
// to trigger it.
type edge struct {
	to    Status
	roles []kernel.Role
}

// cancelRoles are the actors allowed to trigger the cancellation edge.
var cancelRoles = []kernel.Role{kernel.RoleCustomer, kernel.RoleVendor, kernel.RoleAdmin}

// transitions is the authoritative transition table. A status change is legal
// only if an edge exists from the current status to the target and the acting
// role is listed on that edge. No other code path may write a status.
func transitions() map[Status][]edge {
	return map[Status][]edge{
		StatusPlaced: {
			{to: StatusVendorAccepted, roles: []kernel.Role{kernel.RoleVendor}},
			{to: StatusVendorRejected, roles: []kernel.Role{kernel.RoleVendor}},
			{to: StatusCancelled, roles: cancelRoles},
		},
		StatusVendorAccepted: {
			{to: StatusPickerAssigned, roles: []kernel.Role{kernel.RoleSystem}},
			{to: StatusCancelled, roles: cancelRoles},
		},
		StatusPickerAssigned: {
			{to: StatusPicking, roles: []kernel.Role{kernel.RolePicker}},
			{to: StatusCancelled, roles: cancelRoles},
		},
		StatusPicking: {
			{to: StatusPickedComplete, roles: []kernel.Role{kernel.RolePicker, kernel.RoleSystem}},
			{to: StatusCancelled, roles: cancelRoles},
		},
		StatusPickedComplete: {
			{to: StatusRiderAssigned, roles: []kernel.Role{kernel.RoleSystem}},
			{to: StatusCancelled, roles: cancelRoles},
		},
		StatusRiderAssigned: {
			{to: StatusInTransit, roles: []kernel.Role{kernel.RoleRider}},
			{to: StatusCancelled, roles: cancelRoles},
		},
		StatusInTransit: {
			{to: StatusDelivered, roles: []kernel.Role{kernel.RoleRider}},
			{to: StatusCancelled, roles: cancelRoles},
		},
	}
}

func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:        "Unknown",
		StatusPlaced:         "Placed",
		StatusVendorAccepted: "VendorAccepted",
		StatusVendorRejected: "VendorRejected",
		StatusPickerAssigned: "PickerAssigned",
		StatusPicking:        "Picking",
		StatusPickedComplete: "PickedComplete",
		StatusRiderAssigned:  "RiderAssigned",
		StatusInTransit:      "InTransit",
		StatusDelivered:      "Delivered",
		StatusCancelled:      "Cancelled",
	}
}

// String returns the canonical status name, or "Unknown" for invalid values.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// Validate rejects StatusUnknown and out-of-range values. Used when
// reconstructing orders from persistence.
func (s Status) Validate() error {
	if _, ok := getStatusStrings()[s]; !ok || s == StatusUnknown {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// IsTerminal reports whether no further transition is permitted from s.
func (s Status) IsTerminal() bool {
	return s == StatusVendorRejected || s == StatusDelivered || s == StatusCancelled
}

// CancelRequiresOverride reports whether cancelling from s represents a
// failed-delivery case that must carry an explicit override reason.
func (s Status) CancelRequiresOverride() bool {
	return s == StatusRiderAssigned || s == StatusInTransit
}

// CanTransition is the authoritative answer to "is transition s -> to legal
// when performed by role". It returns ErrIllegalTransition (wrapped with
// detail) when the edge does not exist or the role is not authorized.
func (s Status) CanTransition(to Status, role kernel.Role) error {
	for _, e := range transitions()[s] {
		if e.to != to {
			continue
		}
		for _, r := range e.roles {
			if r == role {
				return nil
			}
		}
		return fmt.Errorf("%w: %s is not authorized for %s -> %s",
			ErrIllegalTransition, role, s, to)
	}
	return fmt.Errorf("%w: no edge from %s to %s", ErrIllegalTransition, s, to)
}

// CustomerLabel maps the status onto the customer-facing vocabulary used by
// storefront clients. Presentation only; the unified machine stays authoritative.
func (s Status) CustomerLabel() string {
	switch s {
	case StatusPlaced:
		return "pending"
	case StatusVendorAccepted:
		return "confirmed"
	case StatusPickerAssigned, StatusPicking:
		return "preparing"
	case StatusPickedComplete:
		return "ready"
	case StatusRiderAssigned, StatusInTransit:
		return "picked"
	case StatusDelivered:
		return "delivered"
	case StatusVendorRejected, StatusCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// RiderLabel maps the status onto the rider-facing delivery vocabulary.
// Statuses before a rider is relevant map to "pending-pickup".
func (s Status) RiderLabel() string {
	switch s {
	case StatusPickedComplete:
		return "pending-pickup"
	case StatusRiderAssigned:
		return "picking-up"
	case StatusInTransit:
		return "in-transit"
	case StatusDelivered:
		return "delivered"
	default:
		return "pending-pickup"
	}
}
