package jobs

import (
	"fmt"
	"log/slog"
	"time"

	"parceltrack/internal/pkg/locker"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	lockSweeperJob *LockSweeperJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(locks *locker.KeyedLocker, logger *slog.Logger) *JobManager {
	return &JobManager{
		lockSweeperJob: NewLockSweeperJob(locks, 10*time.Minute, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.lockSweeperJob.Start(); err != nil {
		return fmt.Errorf("failed to start lock sweeper job: %w", err)
	}
	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.lockSweeperJob.Stop()
}
