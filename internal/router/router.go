package router

import (
	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"

	apiHandler "github.com/campuskit/analytics/api/handler"
)

type Handlers struct {
	Analytics   *apiHandler.AnalyticsHandler
	Cache       *apiHandler.CacheHandler
	Leaderboard *apiHandler.LeaderboardHandler
	Health      *apiHandler.HealthHandler
}

func New(handlers Handlers, authMiddleware func(fasthttp.RequestHandler) fasthttp.RequestHandler) *router.Router {
	r := router.New()

	r.GET("/health", handlers.Health.Check)

	// Cache-backed reads
	r.GET("/api/v1/tasks", authMiddleware(handlers.Analytics.GetTasks))
	r.GET("/api/v1/completions", authMiddleware(handlers.Analytics.GetCompletions))
	r.GET("/api/v1/stats", authMiddleware(handlers.Analytics.GetStats))
	r.GET("/api/v1/overview", authMiddleware(handlers.Analytics.GetOverview))

	// Upstream passthrough
	r.GET("/api/v1/leaderboard", authMiddleware(handlers.Leaderboard.Get))

	// Cache controls
	r.POST("/api/v1/cache/refresh", authMiddleware(handlers.Cache.Refresh))
	r.DELETE("/api/v1/cache", authMiddleware(handlers.Cache.Invalidate))

	return r
}
