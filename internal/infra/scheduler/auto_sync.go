package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	syncuc "github.com/Bakuzaci/payattention-sol/internal/usecase/sync"
)

// AutoSync drives the reconciler: once shortly after startup and then on a
// fixed interval. It does not guard against overlap itself; the reconciler's
// mutex serializes runs, so a slow run simply delays the next one.
type AutoSync struct {
	Sync *syncuc.Reconciler

	Interval     time.Duration // 0 => 15m
	InitialDelay time.Duration // 0 => 3s
	Timeout      time.Duration // 0 => 10m
	Logger       *slog.Logger

	cron  *cron.Cron
	timer *time.Timer
}

func (a *AutoSync) log() *slog.Logger {
	if a.Logger != nil {
		return a.Logger
	}
	return slog.Default()
}

func (a *AutoSync) Start(ctx context.Context) error {
	interval := a.Interval
	if interval <= 0 {
		interval = 15 * time.Minute
	}
	delay := a.InitialDelay
	if delay <= 0 {
		delay = 3 * time.Second
	}
	timeout := a.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Minute
	}

	run := func() {
		cctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()
		sum := a.Sync.Run(cctx)
		a.log().Info("scheduled sync finished",
			"added", sum.Added, "updated", sum.Updated, "backfilled", sum.Backfilled)
	}

	a.cron = cron.New()
	if _, err := a.cron.AddFunc(fmt.Sprintf("@every %s", interval), run); err != nil {
		return fmt.Errorf("scheduler: %w", err)
	}
	a.cron.Start()

	// initial sync shortly after startup, so a fresh deploy is not empty
	// for a whole interval
	a.timer = time.AfterFunc(delay, run)

	a.log().Info("scheduler started", "interval", interval, "initial_delay", delay)
	return nil
}

func (a *AutoSync) Stop() {
	if a.timer != nil {
		a.timer.Stop()
	}
	if a.cron != nil {
		a.cron.Stop()
	}
}
