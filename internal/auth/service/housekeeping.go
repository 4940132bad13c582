package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/aussiebroadwan/gatekeep/internal/auth/store"
)

// HousekeepingService periodically deletes refresh tokens that have expired
// or been consumed, so the refresh_tokens table does not grow unbounded.
type HousekeepingService struct {
	Store    store.Store
	Logger   *slog.Logger
	Interval time.Duration

	// Internal channels for lifecycle management
	stopCh   chan struct{}
	doneCh   chan struct{}
	stopOnce sync.Once
}

// NewHousekeepingService creates a new housekeeping service with the given interval.
// If interval is 0 or negative, defaults to 1 hour.
func NewHousekeepingService(store store.Store, logger *slog.Logger, interval time.Duration) *HousekeepingService {
	if interval <= 0 {
		interval = 1 * time.Hour
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &HousekeepingService{
		Store:    store,
		Logger:   logger,
		Interval: interval,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start begins the background worker that periodically runs cleanup.
// This is non-blocking and should be called after the database is ready.
// Call Stop() to gracefully shutdown the worker.
func (s *HousekeepingService) Start() {
	go s.run()
	s.Logger.Info("housekeeping service started", "interval", s.Interval)
}

// Stop gracefully shuts down the background worker. Blocks until the worker
// has finished any in-progress cleanup. Calling Stop more than once is safe.
func (s *HousekeepingService) Stop() {
	s.stopOnce.Do(func() {
		close(s.stopCh)
		<-s.doneCh
		s.Logger.Info("housekeeping service stopped")
	})
}

// run is the main background worker loop.
func (s *HousekeepingService) run() {
	defer close(s.doneCh)

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	// Run cleanup immediately on startup
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

// Cleanup performs one deletion pass and returns the number of tokens removed.
func (s *HousekeepingService) Cleanup(ctx context.Context) int64 {
	s.Logger.Debug("starting housekeeping cleanup")

	n, err := s.Store.RefreshTokens().DeleteExpiredRefreshTokens(ctx, time.Now().UTC())
	if err != nil {
		s.Logger.Error("failed to delete expired refresh tokens", "error", err)
		return 0
	}

	s.Logger.Info("housekeeping cleanup completed", "refresh_tokens_deleted", n)
	return n
}
