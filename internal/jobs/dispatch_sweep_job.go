package jobs

import (
	"context"
	"errors"
	"log/slog"

	"afrimercato/internal/core/application/usecases/commands"
	"afrimercato/internal/core/domain/model/kernel"
	"afrimercato/internal/core/domain/model/order"
	"afrimercato/internal/core/domain/services"

	"github.com/robfig/cron/v3"
)

// DispatchSweepJob periodically matches waiting orders with idle workers.
// Vendor-accepted orders get a picker, picked-complete orders get a rider.
// The sweep also picks up orders whose earlier dispatch found nobody idle.
type DispatchSweepJob struct {
	uowFactory   commands.OrderUoWFactory
	assignPicker commands.AssignPickerCommandHandler
	assignRider  commands.AssignRiderCommandHandler
	cron         *cron.Cron
	logger       *slog.Logger
}

// NewDispatchSweepJob creates the dispatch sweep running every five seconds.
func NewDispatchSweepJob(
	uowFactory commands.OrderUoWFactory,
	assignPicker commands.AssignPickerCommandHandler,
	assignRider commands.AssignRiderCommandHandler,
	logger *slog.Logger,
) *DispatchSweepJob {
	return &DispatchSweepJob{
		uowFactory:   uowFactory,
		assignPicker: assignPicker,
		assignRider:  assignRider,
		cron:         cron.New(cron.WithSeconds()),
		logger:       logger.With("component", "dispatch_sweep_job"),
	}
}

// Start schedules the sweep.
func (j *DispatchSweepJob) Start() error {
	_, err := j.cron.AddFunc("*/5 * * * * *", func() {
		ctx := context.Background()
		j.sweep(ctx, order.StatusVendorAccepted, j.dispatchPicker)
		j.sweep(ctx, order.StatusPickedComplete, j.dispatchRider)
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Dispatch sweep job started (running every five seconds)")
	return nil
}

// Stop stops the sweep.
func (j *DispatchSweepJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Dispatch sweep job stopped")
}

// sweep lists orders waiting in the given status and runs the dispatch for
// each. One failed order must not stall the rest of the sweep.
func (j *DispatchSweepJob) sweep(
	ctx context.Context,
	status order.Status,
	dispatch func(ctx context.Context, orderID kernel.UUID) error,
) {
	orderIDs, err := j.listOrderIDs(ctx, status)
	if err != nil {
		j.logger.ErrorContext(ctx, "Dispatch sweep listing failed",
			"status", status.String(), "error", err)
		return
	}

	for _, orderID := range orderIDs {
		if err := dispatch(ctx, orderID); err != nil {
			// Nobody idle right now: the next sweep retries.
			if errors.Is(err, services.ErrNoPickerAvailable) || errors.Is(err, services.ErrNoRiderAvailable) {
				continue
			}
			j.logger.ErrorContext(ctx, "Dispatch sweep failed for order",
				"order_id", orderID.String(), "error", err)
		}
	}
}

func (j *DispatchSweepJob) dispatchPicker(ctx context.Context, orderID kernel.UUID) error {
	cmd, err := commands.NewAssignPickerCommand(orderID)
	if err != nil {
		return err
	}

	_, err = j.assignPicker.Handle(ctx, cmd)
	return err
}

func (j *DispatchSweepJob) dispatchRider(ctx context.Context, orderID kernel.UUID) error {
	cmd, err := commands.NewAssignRiderCommand(orderID)
	if err != nil {
		return err
	}

	_, err = j.assignRider.Handle(ctx, cmd)
	return err
}

func (j *DispatchSweepJob) listOrderIDs(ctx context.Context, status order.Status) ([]kernel.UUID, error) {
	uow := j.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orders, err := uow.OrderRepository().GetAllInStatus(ctx, status)
	if err != nil {
		return nil, err
	}

	orderIDs := make([]kernel.UUID, 0, len(orders))
	for _, o := range orders {
		orderIDs = append(orderIDs, o.ID())
	}
	return orderIDs, nil
}
