// Package payment provides the outbound payment adapter. It implements the
// authorize and refund calls the fulfillment core makes; capture and payout
// orchestration live in a separate system.
package payment

import (
	"context"
	"fmt"
	"log/slog"

	"afrimercato/internal/core/domain/model/kernel"
	"afrimercato/internal/pkg/errs"
)

// SandboxGateway is an in-process gateway for environments without a real
// payment provider. It authorizes every non-zero total and hands out
// deterministic references.
type SandboxGateway struct {
	logger *slog.Logger
}

// NewSandboxGateway creates a sandbox payment gateway.
func NewSandboxGateway(logger *slog.Logger) *SandboxGateway {
	return &SandboxGateway{
		logger: logger.With("component", "payment_gateway"),
	}
}

// Authorize reserves the order total against the customer's payment method.
// A zero total is rejected; there is nothing to authorize.
func (g *SandboxGateway) Authorize(ctx context.Context, customerID kernel.UUID, total kernel.Money) (string, error) {
	if err := customerID.Validate(); err != nil {
		return "", err
	}
	if total.IsZero() {
		return "", errs.NewValueIsInvalidError("total")
	}

	ref := fmt.Sprintf("auth-%s", kernel.NewUUID().String())
	g.logger.InfoContext(ctx, "Payment authorized",
		"customer_id", customerID.String(),
		"amount_minor", total.Amount(),
		"payment_ref", ref,
	)
	return ref, nil
}

// Refund releases a previously authorized amount.
func (g *SandboxGateway) Refund(ctx context.Context, orderID kernel.UUID, amount kernel.Money) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	g.logger.InfoContext(ctx, "Payment refunded",
		"order_id", orderID.String(),
		"amount_minor", amount.Amount(),
	)
	return nil
}
