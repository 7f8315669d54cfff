// Package jobs runs scheduled maintenance against the store.
package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// Expirer marks lapsed contracts as expired.
type Expirer interface {
	ExpireLapsed(ctx context.Context, now time.Time) (int64, error)
}

// ExpirySweeper periodically moves active contracts whose validity period
// has passed to the expired status.
type ExpirySweeper struct {
	contracts Expirer
	cron      *cron.Cron
	now       func() time.Time
}

// NewExpirySweeper schedules a sweep on spec, a standard five-field cron
// expression or a descriptor such as "@hourly". The sweeper does nothing
// until Start is called.
func NewExpirySweeper(ctx context.Context, contracts Expirer, spec string) (*ExpirySweeper, error) {
	s := &ExpirySweeper{
		contracts: contracts,
		cron:      cron.New(),
		now:       time.Now,
	}
	_, err := s.cron.AddFunc(spec, func() {
		if _, err := s.RunOnce(ctx); err != nil {
			slog.ErrorContext(ctx, "contract expiry sweep failed", "error", err)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("invalid cron expression %q: %w", spec, err)
	}
	return s, nil
}

// RunOnce performs a single sweep and returns how many contracts expired.
func (s *ExpirySweeper) RunOnce(ctx context.Context) (int64, error) {
	n, err := s.contracts.ExpireLapsed(ctx, s.now())
	if err != nil {
		return 0, err
	}
	if n > 0 {
		slog.InfoContext(ctx, "expired lapsed contracts", "count", n)
	}
	return n, nil
}

// Start begins running the schedule in the background.
func (s *ExpirySweeper) Start() {
	s.cron.Start()
}

// Stop halts the schedule and waits for a running sweep to finish.
func (s *ExpirySweeper) Stop() {
	<-s.cron.Stop().Done()
}
