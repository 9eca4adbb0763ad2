package handler

import (
	"net/http"
	"strconv"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/campuskit/analytics/pkg/httpcontext"
	"github.com/campuskit/analytics/upstream"
)

// LeaderboardHandler proxies the upstream ranking endpoint without caching;
// the leaderboard covers all participants and is not part of the per-user
// aggregate the cache holds.
type LeaderboardHandler struct {
	baseHandler
	client *upstream.Client
}

func NewLeaderboardHandler(client *upstream.Client, adapter *httpcontext.Adapter, logger *zap.Logger) *LeaderboardHandler {
	return &LeaderboardHandler{
		baseHandler: newBaseHandler(adapter, logger),
		client:      client,
	}
}

// @Summary Top participants by points
// @Tags leaderboard
// @Router /api/v1/leaderboard [get]
func (h *LeaderboardHandler) Get(ctx *fasthttp.RequestCtx) {
	limit := parseInt(string(ctx.QueryArgs().Peek("limit")), 10)

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	entries, err := h.client.FetchLeaderboard(stdCtx, limit)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, entries)
}

func parseInt(value string, fallback int) int {
	if v, err := strconv.Atoi(value); err == nil {
		return v
	}
	return fallback
}
