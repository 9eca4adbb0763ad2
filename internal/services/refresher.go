package services

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/campuskit/analytics/internal/cache"
)

// ConnectionHealth abstracts the connection monitor functionality.
type ConnectionHealth interface {
	IsOnline() bool
}

// Refresher keeps the aggregate cache warm on a schedule so dashboard
// consumers mostly hit fresh entries instead of paying the refetch on read.
// A failed warm refresh is logged and left to the cache's degrade semantics.
type Refresher struct {
	cache    *cache.Service
	monitor  ConnectionHealth
	logger   *zap.Logger
	cron     *cron.Cron
	interval time.Duration
}

func NewRefresher(cacheSvc *cache.Service, monitor ConnectionHealth, interval time.Duration, logger *zap.Logger) *Refresher {
	if interval <= 0 {
		interval = cache.DefaultTTL
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	r := &Refresher{
		cache:    cacheSvc,
		monitor:  monitor,
		logger:   logger,
		interval: interval,
		cron:     cron.New(cron.WithSeconds()),
	}

	schedule := fmt.Sprintf("@every %ds", int(interval.Seconds()))
	_, _ = r.cron.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), interval)
		defer cancel()
		r.Run(ctx)
	})

	return r
}

// Start launches the cron scheduler.
func (r *Refresher) Start() {
	if r == nil || r.cron == nil {
		return
	}
	r.cron.Start()
	r.logger.Info("cache refresher started", zap.Duration("interval", r.interval))
}

// Stop gracefully stops the scheduler.
func (r *Refresher) Stop(ctx context.Context) {
	if r == nil || r.cron == nil {
		return
	}
	stopCtx := r.cron.Stop()
	select {
	case <-stopCtx.Done():
	case <-ctx.Done():
	}
	r.logger.Info("cache refresher stopped")
}

// Run performs one warm refresh, skipping while the upstream is offline.
func (r *Refresher) Run(ctx context.Context) {
	if r == nil || r.cache == nil {
		return
	}
	if r.monitor != nil && !r.monitor.IsOnline() {
		r.logger.Debug("skipping warm refresh (upstream offline)")
		return
	}
	if err := r.cache.Refresh(ctx); err != nil {
		r.logger.Warn("warm refresh failed", zap.Error(err))
	}
}
