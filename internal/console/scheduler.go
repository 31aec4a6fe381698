package console

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// PanelRefresher re-fetches the dashboard side panels alongside the snapshot.
type PanelRefresher interface {
	Refresh(ctx context.Context)
}

// Scheduler drives periodic refresh cycles: each cycle re-fetches the report
// snapshot and the dependent side panels. A manual RefreshNow shares the same
// cycle and may overlap an in-flight scheduled refresh; the store's sequence
// guard decides which response wins.
type Scheduler struct {
	refresher *Refresher
	panels    PanelRefresher // optional, nil skips panel re-fetch
	interval  time.Duration
	clock     clockwork.Clock
	logger    *slog.Logger

	mu      sync.Mutex
	cancel  context.CancelFunc
	done    chan struct{}
	started bool
}

// NewScheduler creates a stopped scheduler.
func NewScheduler(refresher *Refresher, panels PanelRefresher, interval time.Duration, clock clockwork.Clock, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		refresher: refresher,
		panels:    panels,
		interval:  interval,
		clock:     clock,
		logger:    logger,
	}
}

// Start launches the refresh loop: one immediate cycle, then one per tick.
// Calling Start on a running scheduler is a no-op.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return
	}
	s.started = true

	loopCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.done = make(chan struct{})

	go s.run(loopCtx, s.done)
	s.logger.Info("refresh scheduler started", "interval", s.interval)
}

// Stop cancels the loop and waits for the current cycle to finish. Safe to
// call multiple times and before Start.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if !s.started {
		s.mu.Unlock()
		return
	}
	s.started = false
	cancel, done := s.cancel, s.done
	s.mu.Unlock()

	cancel()
	<-done
	s.logger.Info("refresh scheduler stopped")
}

// RefreshNow runs one out-of-band refresh cycle, panels included, regardless
// of whether the scheduler is running. In-flight scheduled refreshes are not
// cancelled.
func (s *Scheduler) RefreshNow(ctx context.Context) (Snapshot, error) {
	snap, err := s.refresher.Refresh(ctx, "manual")
	s.refreshPanels(ctx)
	return snap, err
}

func (s *Scheduler) run(ctx context.Context, done chan struct{}) {
	defer close(done)

	s.runCycle(ctx)

	ticker := s.clock.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.Chan():
			s.runCycle(ctx)
		}
	}
}

func (s *Scheduler) runCycle(ctx context.Context) {
	if _, err := s.refresher.Refresh(ctx, "scheduled"); err != nil {
		s.logger.Warn("scheduled refresh degraded", "error", err)
	}
	s.refreshPanels(ctx)
}

func (s *Scheduler) refreshPanels(ctx context.Context) {
	if s.panels == nil || ctx.Err() != nil {
		return
	}
	s.panels.Refresh(ctx)
}
