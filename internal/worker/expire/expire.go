// Package expire provides the periodic expiry job for in-memory
// sessions. Game and chat sessions have no persistence, so anything a
// visitor abandons is reclaimed here instead of leaking until restart.
package expire

import (
	"context"
	"log/slog"
	"time"
)

// Sweeper drops entries idle longer than olderThan and reports how
// many were removed. Implemented by the game and chat session stores.
type Sweeper interface {
	SweepExpired(olderThan time.Duration) int
}

// target pairs a sweeper with a name for logging.
type target struct {
	name    string
	sweeper Sweeper
}

// Job sweeps a set of session stores on a fixed interval.
type Job struct {
	targets []target
	logger  *slog.Logger
	TTL     time.Duration // session idle time before expiry
}

// NewJob builds a Job with a 30 minute default TTL.
func NewJob(logger *slog.Logger) *Job {
	return &Job{
		logger: logger,
		TTL:    30 * time.Minute,
	}
}

// Register adds a named store to the sweep cycle.
func (j *Job) Register(name string, s Sweeper) {
	j.targets = append(j.targets, target{name: name, sweeper: s})
}

// Start runs the sweep loop until the context is cancelled.
func (j *Job) Start(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	j.logger.Info("session expiry job started",
		slog.Duration("interval", interval),
		slog.Duration("ttl", j.TTL),
	)

	for {
		select {
		case <-ctx.Done():
			j.logger.Info("session expiry job stopped")
			return
		case <-ticker.C:
			j.RunOnce()
		}
	}
}

// RunOnce sweeps every registered store once. Idempotent: a cycle with
// nothing to expire is not an error.
func (j *Job) RunOnce() int {
	start := time.Now()

	total := 0
	for _, t := range j.targets {
		removed := t.sweeper.SweepExpired(j.TTL)
		total += removed
		if removed > 0 {
			j.logger.Info("expired sessions removed",
				slog.String("store", t.name),
				slog.Int("removed", removed),
			)
		}
	}

	duration := time.Since(start)
	j.logger.Info("expiry cycle finished",
		slog.Int("removed_total", total),
		slog.Float64("duration_ms", float64(duration.Milliseconds())),
	)

	return total
}
