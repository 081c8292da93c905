// internal/app/system/workers/snapshotrefresh.go
package workers

import (
	"context"
	"sync"
	"time"

	"github.com/dalemusser/carpoolhub/internal/app/analytics"
	"github.com/dalemusser/carpoolhub/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// SnapshotRefresher is a background worker that periodically re-reads the
// analytics snapshot. Each refresh replaces the cached value whole.
//
// It also implements analytics.Provider: callers get the cached snapshot
// while it is younger than two intervals, and a direct read otherwise.
type SnapshotRefresher struct {
	provider analytics.Provider
	log      *zap.Logger
	interval time.Duration
	now      func() time.Time

	mu        sync.RWMutex
	snap      analytics.Snapshot
	fetchedAt time.Time

	stopCh   chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// NewSnapshotRefresher creates a refresher over provider.
//
// Parameters:
//   - provider: the uncached snapshot source (usually the Mongo-backed queries)
//   - logger: zap logger for logging
//   - interval: how often to refresh (e.g., 1 minute); must be > 0
func NewSnapshotRefresher(provider analytics.Provider, logger *zap.Logger, interval time.Duration) *SnapshotRefresher {
	return &SnapshotRefresher{
		provider: provider,
		log:      logger,
		interval: interval,
		now:      time.Now,
		stopCh:   make(chan struct{}),
	}
}

// Start loads the first snapshot in the background and begins the refresh loop.
func (w *SnapshotRefresher) Start() {
	w.wg.Add(1)
	go w.run()
	w.log.Info("snapshot refresher started", zap.Duration("interval", w.interval))
}

// Stop signals the worker to stop and waits for it to finish.
func (w *SnapshotRefresher) Stop() {
	w.stopOnce.Do(func() {
		close(w.stopCh)
		w.wg.Wait()
		w.log.Info("snapshot refresher stopped")
	})
}

// Refresh reads a new snapshot and caches it.
func (w *SnapshotRefresher) Refresh(ctx context.Context) (analytics.Snapshot, error) {
	ctx, cancel := timeouts.WithTimeout(ctx, timeouts.Long(), w.log, "analytics snapshot refresh")
	defer cancel()

	snap, err := w.provider.Snapshot(ctx)
	if err != nil {
		return analytics.Snapshot{}, err
	}

	at := w.now()
	if snap.FetchedAt.IsZero() {
		snap.FetchedAt = at
	}
	w.mu.Lock()
	w.snap = snap
	w.fetchedAt = at
	w.mu.Unlock()
	return snap, nil
}

// LastRefresh reports whether a snapshot is cached and how old it is in seconds.
func (w *SnapshotRefresher) LastRefresh() (bool, float64) {
	w.mu.RLock()
	at := w.fetchedAt
	w.mu.RUnlock()
	if at.IsZero() {
		return false, 0
	}
	return true, w.now().Sub(at).Seconds()
}

// Snapshot implements analytics.Provider.
func (w *SnapshotRefresher) Snapshot(ctx context.Context) (analytics.Snapshot, error) {
	w.mu.RLock()
	snap, at := w.snap, w.fetchedAt
	w.mu.RUnlock()

	if !at.IsZero() && w.now().Sub(at) < 2*w.interval {
		return snap, nil
	}
	return w.Refresh(ctx)
}

func (w *SnapshotRefresher) run() {
	defer w.wg.Done()

	w.refresh()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.stopCh:
			return
		case <-ticker.C:
			w.refresh()
		}
	}
}

func (w *SnapshotRefresher) refresh() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		select {
		case <-w.stopCh:
			cancel()
		case <-ctx.Done():
		}
	}()

	snap, err := w.Refresh(ctx)
	if err != nil {
		w.log.Error("failed to refresh analytics snapshot", zap.Error(err))
		return
	}
	w.log.Debug("analytics snapshot refreshed",
		zap.Int("users", len(snap.Users)),
		zap.Int("groups", len(snap.Groups)),
		zap.Int("requests", len(snap.Requests)),
		zap.Int("conversations", len(snap.Conversations)))
}
