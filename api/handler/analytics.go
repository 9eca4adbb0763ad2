package handler

import (
	"net/http"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/campuskit/analytics/api/transport"
	"github.com/campuskit/analytics/internal/cache"
	"github.com/campuskit/analytics/internal/view"
	"github.com/campuskit/analytics/pkg/httpcontext"
)

// dateLayouts accepted for overview range bounds.
var dateLayouts = []string{time.RFC3339, "2006-01-02"}

// AnalyticsHandler serves the cache-backed read operations. These endpoints
// never fail on upstream trouble: they return whatever the cache can provide,
// with a stale hint in the response meta.
type AnalyticsHandler struct {
	baseHandler
	cache *cache.Service
}

func NewAnalyticsHandler(cacheSvc *cache.Service, adapter *httpcontext.Adapter, logger *zap.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{
		baseHandler: newBaseHandler(adapter, logger),
		cache:       cacheSvc,
	}
}

// @Summary List tasks with derived status and category
// @Tags analytics
// @Router /api/v1/tasks [get]
func (h *AnalyticsHandler) GetTasks(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	tasks := h.cache.Tasks(stdCtx)
	h.respondJSON(ctx, http.StatusOK, transport.NewSuccess(tasks, h.cacheMeta()))
}

// @Summary List completions
// @Tags analytics
// @Router /api/v1/completions [get]
func (h *AnalyticsHandler) GetCompletions(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	completions := h.cache.Completions(stdCtx)
	h.respondJSON(ctx, http.StatusOK, transport.NewSuccess(completions, h.cacheMeta()))
}

// @Summary Aggregate statistics
// @Tags analytics
// @Router /api/v1/stats [get]
func (h *AnalyticsHandler) GetStats(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	stats := h.cache.Stats(stdCtx)
	h.respondJSON(ctx, http.StatusOK, transport.NewSuccess(stats, h.cacheMeta()))
}

// @Summary Filtered view of tasks, completions, and stats
// @Tags analytics
// @Router /api/v1/overview [get]
func (h *AnalyticsHandler) GetOverview(ctx *fasthttp.RequestCtx) {
	filter := parseFilter(ctx)

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	tasks, completions, stats := h.cache.Snapshot(stdCtx)
	derived := view.Apply(filter, tasks, completions, stats)
	h.respondJSON(ctx, http.StatusOK, transport.NewSuccess(derived, h.cacheMeta()))
}

func (h *AnalyticsHandler) cacheMeta() *transport.CacheMeta {
	meta := &transport.CacheMeta{
		Stale: h.cache.LastError() != nil,
	}
	if fetchedAt, ok := h.cache.FetchedAt(); ok {
		meta.FetchedAt = &fetchedAt
	}
	return meta
}

// parseFilter reads status/start/end query parameters. The date range only
// applies when both bounds parse; a lone bound is ignored, matching the
// filter contract.
func parseFilter(ctx *fasthttp.RequestCtx) view.Filter {
	filter := view.Filter{
		Status: string(ctx.QueryArgs().Peek("status")),
	}

	start, okStart := parseDate(string(ctx.QueryArgs().Peek("start")))
	end, okEnd := parseDate(string(ctx.QueryArgs().Peek("end")))
	if okStart && okEnd {
		filter.DateRange = &view.DateRange{Start: start, End: end}
	}
	return filter
}

func parseDate(value string) (time.Time, bool) {
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed, true
		}
	}
	return time.Time{}, false
}
