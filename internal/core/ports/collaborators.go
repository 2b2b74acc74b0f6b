package ports

import (
	"context"

	"afrimercato/internal/core/domain/model/kernel"
)

// Notifier is the fire-and-forget notification collaborator. It is invoked
// after every committed transition and on substitution creation/resolution.
// Failures are logged, never propagated: a notification must not block or
// roll back a state change that is already durable.
type Notifier interface {
	Notify(ctx context.Context, recipient kernel.Role, orderID kernel.UUID, eventType string)
}

// PaymentGateway is the payment collaborator. The core authorizes before an
// order is created and emits the cancellation event for late cancellations;
// capture and refund orchestration live outside.
type PaymentGateway interface {
	// Authorize reserves the order total against the customer's payment
	// method and returns an opaque payment reference.
	Authorize(ctx context.Context, customerID kernel.UUID, total kernel.Money) (string, error)

	// Refund releases a previously authorized amount after a late-stage
	// cancellation.
	Refund(ctx context.Context, orderID kernel.UUID, amount kernel.Money) error
}

// GeoService is the geolocation collaborator. It narrows rider dispatch to
// the order's delivery area; the core treats the result as an opaque
// candidate list.
type GeoService interface {
	EligibleRiderIDs(ctx context.Context, orderID kernel.UUID) ([]kernel.UUID, error)
}
