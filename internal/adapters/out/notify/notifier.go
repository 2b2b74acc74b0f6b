// Package notify provides the outbound notification adapter. Notifications
// are fire-and-forget: fulfillment never waits on them and never fails
// because one was lost.
package notify

import (
	"context"
	"log/slog"

	"afrimercato/internal/core/domain/model/kernel"
)

// SlogNotifier logs notifications through the application's structured
// logger. It stands in for a push-gateway client; delivery failures there
// would be logged and dropped the same way.
type SlogNotifier struct {
	logger *slog.Logger
}

// NewSlogNotifier creates a notifier backed by the given logger.
func NewSlogNotifier(logger *slog.Logger) *SlogNotifier {
	return &SlogNotifier{
		logger: logger.With("component", "notifier"),
	}
}

// Notify records a fulfillment notification for the given recipient role.
func (n *SlogNotifier) Notify(ctx context.Context, recipient kernel.Role, orderID kernel.UUID, eventType string) {
	n.logger.InfoContext(ctx, "Notification dispatched",
		"recipient", recipient.String(),
		"order_id", orderID.String(),
		"event_type", eventType,
	)
}
