package jobs

import (
	"fmt"
	"log/slog"

	"afrimercato/internal/core/application/usecases/commands"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	dispatchSweepJob       *DispatchSweepJob
	substitutionTimeoutJob *SubstitutionTimeoutJob
}

// NewJobManager creates a new job manager with all required jobs.
// Takes command handlers as dependencies to wire up the job execution.
func NewJobManager(
	orderUoWFactory commands.OrderUoWFactory,
	assignPickerHandler commands.AssignPickerCommandHandler,
	assignRiderHandler commands.AssignRiderCommandHandler,
	expireSubstitutionsHandler commands.ExpireSubstitutionsCommandHandler,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		dispatchSweepJob: NewDispatchSweepJob(
			orderUoWFactory, assignPickerHandler, assignRiderHandler, logger),
		substitutionTimeoutJob: NewSubstitutionTimeoutJob(
			expireSubstitutionsHandler, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.dispatchSweepJob.Start(); err != nil {
		return fmt.Errorf("failed to start dispatch sweep job: %w", err)
	}

	if err := jm.substitutionTimeoutJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.dispatchSweepJob.Stop()
		return fmt.Errorf("failed to start substitution timeout job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.dispatchSweepJob.Stop()
	jm.substitutionTimeoutJob.Stop()
}
