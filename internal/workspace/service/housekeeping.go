package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/SadidSD/Productive-Workspace/internal/workspace/store"
	"github.com/SadidSD/Productive-Workspace/pkg/clockx"
)

// HousekeepingService periodically deletes expired, never-used invites
// so the invites table does not grow without bound. Used invites are
// kept as an audit trail of how each membership came to exist.
type HousekeepingService struct {
	Store    store.Store
	Logger   *slog.Logger
	Clock    clockx.Clock
	Interval time.Duration

	stopCh chan struct{}
	doneCh chan struct{}
}

// NewHousekeepingService creates the service. A non-positive interval
// defaults to 1 hour.
func NewHousekeepingService(st store.Store, logger *slog.Logger, clock clockx.Clock, interval time.Duration) *HousekeepingService {
	if interval <= 0 {
		interval = 1 * time.Hour
	}
	if clock == nil {
		clock = clockx.Real()
	}

	return &HousekeepingService{
		Store:    st,
		Logger:   logger,
		Clock:    clock,
		Interval: interval,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start begins the background worker. Non-blocking; call Stop to shut
// it down.
func (s *HousekeepingService) Start() {
	go s.run()
	s.Logger.Info("housekeeping service started", "interval", s.Interval)
}

// Stop shuts down the worker and blocks until any in-progress cleanup
// has finished.
func (s *HousekeepingService) Stop() {
	close(s.stopCh)
	<-s.doneCh
	s.Logger.Info("housekeeping service stopped")
}

func (s *HousekeepingService) run() {
	defer close(s.doneCh)

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	// Run once immediately on startup.
	s.Cleanup(context.Background())

	for {
		select {
		case <-ticker.C:
			s.Cleanup(context.Background())
		case <-s.stopCh:
			return
		}
	}
}

// Cleanup performs one deletion pass. Exported so tests and operators
// can trigger it directly.
func (s *HousekeepingService) Cleanup(ctx context.Context) {
	deleted, err := s.Store.Invites().DeleteExpiredInvites(ctx, s.Clock.Now())
	if err != nil {
		s.Logger.Error("failed to delete expired invites", "error", err)
		return
	}
	s.Logger.Debug("housekeeping cleanup completed", "expired_invites_deleted", deleted)
}
