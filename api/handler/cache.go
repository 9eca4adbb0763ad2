package handler

import (
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/campuskit/analytics/internal/cache"
	"github.com/campuskit/analytics/pkg/httpcontext"
)

// CacheHandler exposes the cache-control operations. Unlike the read
// endpoints these do surface upstream failures, since a caller forcing a
// refresh wants to know it failed.
type CacheHandler struct {
	baseHandler
	cache *cache.Service
}

func NewCacheHandler(cacheSvc *cache.Service, adapter *httpcontext.Adapter, logger *zap.Logger) *CacheHandler {
	return &CacheHandler{
		baseHandler: newBaseHandler(adapter, logger),
		cache:       cacheSvc,
	}
}

// @Summary Force a cache refresh
// @Tags cache
// @Router /api/v1/cache/refresh [post]
func (h *CacheHandler) Refresh(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.cache.Refresh(stdCtx); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusNoContent, nil)
}

// @Summary Clear the cache
// @Tags cache
// @Router /api/v1/cache [delete]
func (h *CacheHandler) Invalidate(ctx *fasthttp.RequestCtx) {
	h.cache.Invalidate()
	h.respondSuccess(ctx, http.StatusNoContent, nil)
}
