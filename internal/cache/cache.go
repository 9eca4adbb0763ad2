// Package cache holds the shared read-side store over the upstream program
// backend. One entry carries the latest normalized tasks, completions, and
// derived stats under a single fetch timestamp: a refresh either replaces all
// three or leaves the previous entry untouched.
package cache

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/campuskit/analytics/domain"
	"github.com/campuskit/analytics/internal/normalize"
	"github.com/campuskit/analytics/internal/stats"
	"github.com/campuskit/analytics/upstream"
)

// DefaultTTL is how long a fetched entry stays valid.
const DefaultTTL = 5 * time.Minute

type entry struct {
	tasks       []domain.Task
	completions []domain.Completion
	stats       domain.Stats
	fetchedAt   time.Time
}

// Service is the aggregate cache. Construct one and hand it to consumers;
// there is no package-level instance.
//
// The mutex guards only the entry swap and is never held across network I/O.
// Concurrent readers that miss each run their own fetch cycle and overwrite
// the entry with equivalent data; requests are deliberately not coalesced.
// Invalidate and refresh are last-writer-wins against in-flight refreshes.
type Service struct {
	fetcher upstream.Fetcher
	ttl     time.Duration
	now     func() time.Time
	logger  *zap.Logger

	mu      sync.RWMutex
	entry   *entry
	lastErr error
}

// New builds a cache service over the given fetcher. A non-positive ttl
// falls back to DefaultTTL.
func New(fetcher upstream.Fetcher, ttl time.Duration, logger *zap.Logger) *Service {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		fetcher: fetcher,
		ttl:     ttl,
		now:     time.Now,
		logger:  logger,
	}
}

// Tasks returns the cached task list, refreshing first when the entry is
// stale. A failed refresh degrades to an empty list; it never errors.
func (s *Service) Tasks(ctx context.Context) []domain.Task {
	if e := s.valid(); e != nil {
		return e.tasks
	}
	e, err := s.refresh(ctx)
	if err != nil {
		return []domain.Task{}
	}
	return e.tasks
}

// Completions returns the cached completion list with the same validity and
// degrade semantics as Tasks.
func (s *Service) Completions(ctx context.Context) []domain.Completion {
	if e := s.valid(); e != nil {
		return e.completions
	}
	e, err := s.refresh(ctx)
	if err != nil {
		return []domain.Completion{}
	}
	return e.completions
}

// Stats returns the cached aggregate, or a zeroed Stats when a needed
// refresh fails.
func (s *Service) Stats(ctx context.Context) domain.Stats {
	if e := s.valid(); e != nil {
		return e.stats
	}
	e, err := s.refresh(ctx)
	if err != nil {
		return domain.EmptyStats()
	}
	return e.stats
}

// Snapshot returns tasks, completions, and stats from one cache entry so
// downstream consumers observe a consistent triple.
func (s *Service) Snapshot(ctx context.Context) ([]domain.Task, []domain.Completion, domain.Stats) {
	if e := s.valid(); e != nil {
		return e.tasks, e.completions, e.stats
	}
	e, err := s.refresh(ctx)
	if err != nil {
		return []domain.Task{}, []domain.Completion{}, domain.EmptyStats()
	}
	return e.tasks, e.completions, e.stats
}

// Invalidate clears the cached entry unconditionally. An in-flight refresh
// will still install its result when it completes.
func (s *Service) Invalidate() {
	s.mu.Lock()
	s.entry = nil
	s.mu.Unlock()
}

// Refresh forces invalidation followed by an eager refetch. Unlike the read
// methods it reports the failure, for cache-control callers that want to
// surface it.
func (s *Service) Refresh(ctx context.Context) error {
	s.Invalidate()
	_, err := s.refresh(ctx)
	return err
}

// LastError reports the most recent refresh failure, or nil after a
// successful refresh. It lets consumers distinguish "empty because there is
// no data" from "empty because the upstream is failing" without the read
// methods ever erroring.
func (s *Service) LastError() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

// FetchedAt reports when the current entry was populated, if one exists.
func (s *Service) FetchedAt() (time.Time, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.entry == nil {
		return time.Time{}, false
	}
	return s.entry.fetchedAt, true
}

func (s *Service) valid() *entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.entry == nil {
		return nil
	}
	if s.now().Sub(s.entry.fetchedAt) >= s.ttl {
		return nil
	}
	return s.entry
}

// refresh runs a full fetch+normalize+aggregate cycle and installs the
// result. On failure the previous entry, valid or expired, stays in place.
func (s *Service) refresh(ctx context.Context) (*entry, error) {
	rawTasks, err := s.fetcher.FetchTasks(ctx)
	if err != nil {
		return nil, s.fail("fetching task catalog", err)
	}
	rawSubs, err := s.fetcher.FetchSubmissions(ctx)
	if err != nil {
		return nil, s.fail("fetching submissions", err)
	}

	tasks := normalize.Tasks(rawTasks, rawSubs)
	completions := normalize.Completions(rawTasks, rawSubs)

	e := &entry{
		tasks:       tasks,
		completions: completions,
		stats:       stats.Compute(tasks, completions),
		fetchedAt:   s.now(),
	}

	s.mu.Lock()
	s.entry = e
	s.lastErr = nil
	s.mu.Unlock()

	s.logger.Debug("cache refreshed",
		zap.Int("tasks", len(tasks)),
		zap.Int("completions", len(completions)))
	return e, nil
}

func (s *Service) fail(msg string, err error) error {
	s.mu.Lock()
	s.lastErr = err
	s.mu.Unlock()
	s.logger.Warn(msg, zap.Error(err))
	return err
}
