package giveaway

import (
	"context"
	"log/slog"
	"time"

	"github.com/disgoorg/giveaway-bot/giveawaybot/config"
)

// Scheduler polls the store and drives due giveaways to completion. Ticks
// are processed inline on a single goroutine, so one tick's finalize work
// always finishes before the next begins; a tick that overruns the cadence
// simply delays the next one. The polling interval bounds how late a
// giveaway can close — sub-second precision is explicitly not a goal.
type Scheduler struct {
	engine   *Engine
	interval time.Duration
}

// NewScheduler builds a scheduler polling at the given interval, falling
// back to the default cadence when interval is not positive.
func NewScheduler(engine *Engine, interval time.Duration) *Scheduler {
	if interval <= 0 {
		interval = config.PollInterval
	}
	return &Scheduler{engine: engine, interval: interval}
}

// Run polls until ctx is cancelled. It never returns a giveaway error; no
// condition inside a tick is allowed to stop the loop.
func (s *Scheduler) Run(ctx context.Context) error {
	slog.Info("Giveaway scheduler started",
		slog.Duration("interval", s.interval))

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("Giveaway scheduler stopped")
			return nil
		case <-ticker.C:
			s.tick(ctx, time.Now())
		}
	}
}

// tick snapshots the store and finalizes every record whose end time has
// passed. Each finalize gets its own bounded context so one slow giveaway
// cannot wedge the loop.
func (s *Scheduler) tick(ctx context.Context, now time.Time) {
	for _, rec := range s.engine.Active() {
		if !rec.Due(now) {
			continue
		}
		fctx, cancel := context.WithTimeout(ctx, config.FinalizeTimeout)
		s.engine.Finalize(fctx, rec)
		cancel()
	}
}
