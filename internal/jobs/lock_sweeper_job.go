package jobs

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// lockRegistry is the part of the keyed locker the sweeper needs.
type lockRegistry interface {
	Sweep(idleFor time.Duration) int
	Len() int
}

// LockSweeperJob reclaims idle per-parcel lock entries. The locker creates
// entries lazily on first contention; without sweeping, the registry would
// grow with every parcel ever transitioned.
type LockSweeperJob struct {
	locks   lockRegistry
	idleFor time.Duration
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewLockSweeperJob creates a job that drops lock entries idle for at least
// idleFor.
func NewLockSweeperJob(locks lockRegistry, idleFor time.Duration, logger *slog.Logger) *LockSweeperJob {
	return &LockSweeperJob{
		locks:   locks,
		idleFor: idleFor,
		cron:    cron.New(),
		logger:  logger.With("component", "lock_sweeper_job"),
	}
}

// Start begins the sweeper to run every minute.
func (j *LockSweeperJob) Start() error {
	_, err := j.cron.AddFunc("* * * * *", func() {
		removed := j.locks.Sweep(j.idleFor)
		if removed > 0 {
			j.logger.DebugContext(context.Background(), "Swept idle lock entries",
				"removed", removed, "remaining", j.locks.Len())
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Lock sweeper job started (running every minute)")
	return nil
}

// Stop stops the sweeper job.
func (j *LockSweeperJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Lock sweeper job stopped")
}
