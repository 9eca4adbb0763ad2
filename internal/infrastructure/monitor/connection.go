package monitor

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Pinger reports upstream reachability. Any HTTP answer counts.
type Pinger interface {
	Ping(ctx context.Context) error
}

// CacheState exposes the cache facts the monitor snapshots.
type CacheState interface {
	FetchedAt() (time.Time, bool)
}

// Monitor periodically probes the upstream service and snapshots cache state
// for the health endpoint and the background refresher.
type Monitor struct {
	upstream Pinger
	cache    CacheState

	status   Status
	mu       sync.RWMutex
	interval time.Duration
	stopCh   chan struct{}
	logger   *zap.Logger
}

func New(upstream Pinger, cache CacheState, interval time.Duration, logger *zap.Logger) *Monitor {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Monitor{
		upstream: upstream,
		cache:    cache,
		interval: interval,
		stopCh:   make(chan struct{}),
		logger:   logger,
	}
}

func (m *Monitor) Start() {
	go m.loop()
}

func (m *Monitor) Stop() {
	close(m.stopCh)
}

func (m *Monitor) IsOnline() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.status.Upstream
}

func (m *Monitor) GetStatus() Status {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.status
}

func (m *Monitor) loop() {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	m.refresh()
	for {
		select {
		case <-ticker.C:
			m.refresh()
		case <-m.stopCh:
			return
		}
	}
}

func (m *Monitor) refresh() {
	status := Status{
		Upstream:  m.checkUpstream(),
		LastCheck: time.Now(),
	}
	if m.cache != nil {
		if fetchedAt, ok := m.cache.FetchedAt(); ok {
			status.CachePopulated = true
			status.CachedAt = fetchedAt
		}
	}

	m.mu.Lock()
	m.status = status
	m.mu.Unlock()
}

func (m *Monitor) checkUpstream() bool {
	if m.upstream == nil {
		return false
	}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := m.upstream.Ping(ctx); err != nil {
		m.logger.Debug("upstream probe failed", zap.Error(err))
		return false
	}
	return true
}
