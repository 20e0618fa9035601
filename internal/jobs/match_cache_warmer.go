package jobs

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/snuhangout/api/internal/metrics"
	"github.com/snuhangout/api/internal/model"
	"github.com/snuhangout/api/internal/service"
)

const matchRefresherJob = "match_refresher"

// MatchRefresher is the slice of the match service the refresher drives
type MatchRefresher interface {
	RecentlyUpdated(ctx context.Context, after model.ProfileChange, limit int) ([]model.ProfileChange, error)
	RefreshMatches(ctx context.Context, userID string) error
}

// MatchCacheWarmer periodically recomputes cached match lists for users
// whose profiles changed since the previous sweep. It walks changes oldest
// first and remembers the last one it handled.
type MatchCacheWarmer struct {
	matches  MatchRefresher
	interval time.Duration
	batch    int
	cursor   model.ProfileChange
	stopCh   chan struct{}
	wg       sync.WaitGroup
	running  bool
	mu       sync.Mutex
}

// NewMatchCacheWarmer creates a new cache warmer job
func NewMatchCacheWarmer(matches MatchRefresher, interval time.Duration, batch int) *MatchCacheWarmer {
	if interval == 0 {
		interval = 5 * time.Minute
	}
	if batch <= 0 {
		batch = 200
	}
	return &MatchCacheWarmer{
		matches:  matches,
		interval: interval,
		batch:    batch,
		stopCh:   make(chan struct{}),
	}
}

// Start begins the warmer loop
func (m *MatchCacheWarmer) Start() {
	m.mu.Lock()
	if m.running {
		m.mu.Unlock()
		return
	}
	m.running = true
	m.mu.Unlock()

	m.wg.Add(1)
	go m.run()
	slog.Info("match cache warmer started", slog.Duration("interval", m.interval), slog.Int("batch", m.batch))
}

// Stop gracefully stops the warmer and waits for an in-flight sweep
func (m *MatchCacheWarmer) Stop() {
	m.mu.Lock()
	if !m.running {
		m.mu.Unlock()
		return
	}
	m.running = false
	m.mu.Unlock()

	close(m.stopCh)
	m.wg.Wait()
	slog.Info("match cache warmer stopped")
}

func (m *MatchCacheWarmer) run() {
	defer m.wg.Done()

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), m.interval)
			m.drain(ctx)
			cancel()
		case <-m.stopCh:
			return
		}
	}
}

// drain sweeps batch after batch until a short page shows the backlog is empty
func (m *MatchCacheWarmer) drain(ctx context.Context) {
	for {
		_, listed, err := m.sweep(ctx)
		if err != nil {
			slog.Error("match cache sweep failed", slog.String("error", err.Error()))
			return
		}
		if listed < m.batch || ctx.Err() != nil {
			return
		}
	}
}

// RunOnce refreshes one batch of users changed after the cursor and returns
// how many lists were rebuilt. Per-user failures are logged and skipped;
// only a failure to list candidates is returned.
func (m *MatchCacheWarmer) RunOnce(ctx context.Context) (int, error) {
	refreshed, _, err := m.sweep(ctx)
	return refreshed, err
}

func (m *MatchCacheWarmer) sweep(ctx context.Context) (refreshed, listed int, err error) {
	m.mu.Lock()
	cursor := m.cursor
	m.mu.Unlock()

	changes, err := m.matches.RecentlyUpdated(ctx, cursor, m.batch)
	if err != nil {
		metrics.JobRuns.WithLabelValues(matchRefresherJob, "error").Inc()
		return 0, 0, err
	}

	for _, change := range changes {
		if ctx.Err() != nil {
			break
		}
		if err := m.matches.RefreshMatches(ctx, change.UserID); err != nil {
			// A profile can lose completion between listing and refresh
			if !errors.Is(err, service.ErrProfileIncomplete) && !errors.Is(err, service.ErrProfileNotFound) {
				slog.Warn("match refresh failed",
					slog.String("user_id", change.UserID),
					slog.String("error", err.Error()),
				)
			}
		} else {
			refreshed++
		}
		cursor = change
	}

	m.mu.Lock()
	m.cursor = cursor
	m.mu.Unlock()

	metrics.JobRuns.WithLabelValues(matchRefresherJob, "ok").Inc()
	if len(changes) > 0 {
		slog.Info("match cache sweep complete",
			slog.Int("candidates", len(changes)),
			slog.Int("refreshed", refreshed),
		)
	}
	return refreshed, len(changes), nil
}

// IsRunning returns whether the warmer loop is active
func (m *MatchCacheWarmer) IsRunning() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.running
}
