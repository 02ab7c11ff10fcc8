package scheduler

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/influence-iq/influenceiq/internal/store"
	"github.com/influence-iq/influenceiq/pkg/alert"
	"github.com/influence-iq/influenceiq/pkg/analyze"
)

// Scheduler periodically re-analyzes every watchlist entry and alerts on
// significant score movement.
type Scheduler struct {
	store      store.Store
	analyzer   *analyze.Analyzer
	alertMgr   *alert.Manager
	interval   time.Duration
	alertDelta float64
}

// New creates a new scheduler.
func New(s store.Store, analyzer *analyze.Analyzer, alertMgr *alert.Manager,
	interval time.Duration, alertDelta float64) *Scheduler {
	if interval == 0 {
		interval = 6 * time.Hour
	}
	if alertDelta == 0 {
		alertDelta = 10
	}
	return &Scheduler{
		store:      s,
		analyzer:   analyzer,
		alertMgr:   alertMgr,
		interval:   interval,
		alertDelta: alertDelta,
	}
}

// Run starts the refresh loop. Blocks until ctx is cancelled.
func (s *Scheduler) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	// Run immediately on start.
	fmt.Fprintln(os.Stderr, "scheduler: initial watchlist refresh...")
	s.refreshAll(ctx)

	fmt.Fprintf(os.Stderr, "scheduler: running (refresh every %s)\n", s.interval)

	for {
		select {
		case <-ctx.Done():
			fmt.Fprintln(os.Stderr, "scheduler: stopped")
			return ctx.Err()
		case <-ticker.C:
			fmt.Fprintln(os.Stderr, "scheduler: refreshing watchlist...")
			s.refreshAll(ctx)
		}
	}
}

func (s *Scheduler) refreshAll(ctx context.Context) {
	watches, err := s.store.ListWatches(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "  watchlist error: %v\n", err)
		return
	}

	for _, w := range watches {
		if err := s.refreshOne(ctx, w); err != nil {
			fmt.Fprintf(os.Stderr, "  %s error: %v\n", w.Person, err)
		}
	}
	fmt.Fprintf(os.Stderr, "  refreshed %d entries\n", len(watches))
}

func (s *Scheduler) refreshOne(ctx context.Context, w store.Watch) error {
	result, err := s.analyzer.Analyze(ctx, w.Person)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	if err := s.store.SaveAnalysis(ctx, result.Record(now)); err != nil {
		return err
	}

	overall := result.Breakdown.Overall
	if w.LastScore.Valid && s.alertMgr.HasNotifiers() {
		delta := overall - int(w.LastScore.Int64)
		if abs(delta) >= int(s.alertDelta) {
			n := &alert.Notification{
				Person:    w.Person,
				Score:     overall,
				PrevScore: int(w.LastScore.Int64),
				Delta:     delta,
				Grade:     result.Breakdown.Grade,
				NewsLabel: result.NewsBand.Credibility,
				Body:      fmt.Sprintf("Influence score moved from %d to %d", w.LastScore.Int64, overall),
			}
			if err := s.alertMgr.Broadcast(ctx, n); err != nil {
				fmt.Fprintf(os.Stderr, "  alert error for %q: %v\n", w.Person, err)
			} else {
				fmt.Fprintf(os.Stderr, "  alerted: %s (%+d)\n", w.Person, delta)
			}
		}
	}

	return s.store.TouchWatch(ctx, w.Person, overall, now)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
