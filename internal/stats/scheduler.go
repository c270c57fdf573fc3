package stats

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const collectTimeout = 30 * time.Second

// Accepts 5-field, 6-field (leading seconds) and @descriptor schedules.
var parser = cron.NewParser(
	cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

// Scheduler refreshes the statistics snapshot on a cron schedule and keeps
// the latest result.
type Scheduler struct {
	collector *Collector
	logger    *zap.Logger
	cron      *cron.Cron

	mu        sync.RWMutex
	latest    *Snapshot
	scheduled bool
}

func NewScheduler(collector *Collector, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		collector: collector,
		logger:    logger,
		cron:      cron.New(cron.WithParser(parser)),
	}
}

// Start registers the refresh job and starts the cron loop. An empty
// schedule leaves the scheduler idle; every /stats request then collects a
// fresh snapshot.
func (s *Scheduler) Start(schedule string) error {
	if schedule == "" {
		s.logger.Info("stats scheduler disabled")
		return nil
	}

	_, err := s.cron.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), collectTimeout)
		defer cancel()
		if _, err := s.Refresh(ctx); err != nil {
			s.logger.Warn("stats refresh failed", zap.Error(err))
		}
	})
	if err != nil {
		return fmt.Errorf("invalid STATS_SCHEDULE %q: %w", schedule, err)
	}

	s.mu.Lock()
	s.scheduled = true
	s.mu.Unlock()

	s.cron.Start()
	s.logger.Info("stats scheduler started", zap.String("schedule", schedule))
	return nil
}

// Stop halts the cron loop and waits for a running refresh to finish.
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
	}
}

// Refresh collects a new snapshot and stores it as the latest.
func (s *Scheduler) Refresh(ctx context.Context) (*Snapshot, error) {
	snap, err := s.collector.Collect(ctx)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.latest = snap
	s.mu.Unlock()

	s.logger.Debug("stats refreshed",
		zap.Any("nodes", snap.Nodes),
		zap.Int64("friendships", snap.Friendships),
	)
	return snap, nil
}

// Scheduled reports whether a refresh job is running.
func (s *Scheduler) Scheduled() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.scheduled
}

func (s *Scheduler) Latest() (*Snapshot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.latest, s.latest != nil
}
