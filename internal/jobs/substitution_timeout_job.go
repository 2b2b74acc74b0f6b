package jobs

import (
	"context"
	"log/slog"

	"afrimercato/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// SubstitutionTimeoutJob auto-rejects substitution proposals whose customer
// response deadline has passed, so picking never waits forever on a silent
// customer.
type SubstitutionTimeoutJob struct {
	handler commands.ExpireSubstitutionsCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewSubstitutionTimeoutJob creates the timeout sweep running every ten
// seconds.
func NewSubstitutionTimeoutJob(
	handler commands.ExpireSubstitutionsCommandHandler,
	logger *slog.Logger,
) *SubstitutionTimeoutJob {
	return &SubstitutionTimeoutJob{
		handler: handler,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "substitution_timeout_job"),
	}
}

// Start schedules the sweep.
func (j *SubstitutionTimeoutJob) Start() error {
	_, err := j.cron.AddFunc("*/10 * * * * *", func() {
		ctx := context.Background()

		expired, err := j.handler.Handle(ctx, commands.NewExpireSubstitutionsCommand())
		if err != nil {
			j.logger.ErrorContext(ctx, "Substitution timeout sweep failed", "error", err)
		}
		if expired > 0 {
			j.logger.InfoContext(ctx, "Substitution proposals auto-rejected", "count", expired)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Substitution timeout job started (running every ten seconds)")
	return nil
}

// Stop stops the sweep.
func (j *SubstitutionTimeoutJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Substitution timeout job stopped")
}
