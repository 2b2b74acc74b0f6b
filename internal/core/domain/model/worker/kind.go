package worker

import (
	"fmt"

	"afrimercato/internal/pkg/errs"
)

// Kind distinguishes the two worker roles in fulfillment.
type Kind int

const (
	// KindUnknown represents an invalid or undefined kind.
	KindUnknown Kind = iota

	// KindPicker collects items inside a vendor's store.
	KindPicker

	// KindRider delivers a picked order to the customer.
	KindRider
)

func getKindStrings() map[Kind]string {
	return map[Kind]string{
		KindUnknown: "Unknown",
		KindPicker:  "Picker",
		KindRider:   "Rider",
	}
}

// String returns the canonical kind name, or "Unknown" for invalid values.
func (k Kind) String() string {
	if s, ok := getKindStrings()[k]; ok {
		return s
	}
	return "Unknown"
}

// Validate rejects KindUnknown and out-of-range values.
func (k Kind) Validate() error {
	if _, ok := getKindStrings()[k]; !ok || k == KindUnknown {
		return errs.NewValueIsInvalidErrorWithCause("worker kind",
			fmt.Errorf("%d is not a valid worker kind", k))
	}
	return nil
}

// Availability is a worker's dispatch eligibility.
type Availability int

const (
	// AvailabilityUnknown represents an invalid or undefined availability.
	AvailabilityUnknown Availability = iota

	// AvailabilityIdle means the worker can be booked.
	AvailabilityIdle

	// AvailabilityBusy means the worker holds an active order.
	AvailabilityBusy

	// AvailabilityOffline means the worker withdrew from dispatch.
	AvailabilityOffline
)

func getAvailabilityStrings() map[Availability]string {
	return map[Availability]string{
		AvailabilityUnknown: "Unknown",
		AvailabilityIdle:    "Idle",
		AvailabilityBusy:    "Busy",
		AvailabilityOffline: "Offline",
	}
}

// String returns the canonical availability name, or "Unknown" for invalid values.
func (a Availability) String() string {
	if s, ok := getAvailabilityStrings()[a]; ok {
		return s
	}
	return "Unknown"
}

// Validate rejects AvailabilityUnknown and out-of-range values.
func (a Availability) Validate() error {
	if _, ok := getAvailabilityStrings()[a]; !ok || a == AvailabilityUnknown {
		return errs.NewValueIsInvalidErrorWithCause("worker availability",
			fmt.Errorf("%d is not a valid availability", a))
	}
	return nil
}
