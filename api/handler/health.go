package handler

import (
	"net/http"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/campuskit/analytics/api/transport"
	"github.com/campuskit/analytics/internal/infrastructure/monitor"
	"github.com/campuskit/analytics/pkg/httpcontext"
)

type HealthHandler struct {
	baseHandler
	monitor *monitor.Monitor
}

func NewHealthHandler(mon *monitor.Monitor, adapter *httpcontext.Adapter, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{
		baseHandler: newBaseHandler(adapter, logger),
		monitor:     mon,
	}
}

// @Summary Health check
// @Tags health
// @Router /health [get]
func (h *HealthHandler) Check(ctx *fasthttp.RequestCtx) {
	status := h.monitor.GetStatus()
	payload := map[string]interface{}{
		"timestamp": time.Now().UTC(),
		"upstream":  status.Upstream,
		"cache": map[string]interface{}{
			"populated": status.CachePopulated,
			"cached_at": status.CachedAt,
		},
	}

	if status.Upstream {
		h.respondSuccess(ctx, http.StatusOK, payload)
		return
	}
	// a populated cache still serves consumers while the upstream is down
	h.respondJSON(ctx, http.StatusServiceUnavailable, transport.NewError("DEGRADED", "upstream unreachable", payload))
}
