package main

import (
	"context"
	"log"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	apiHandler "github.com/campuskit/analytics/api/handler"
	"github.com/campuskit/analytics/internal/cache"
	"github.com/campuskit/analytics/internal/config"
	"github.com/campuskit/analytics/internal/infrastructure/monitor"
	"github.com/campuskit/analytics/internal/middleware"
	"github.com/campuskit/analytics/internal/router"
	"github.com/campuskit/analytics/internal/services"
	"github.com/campuskit/analytics/internal/services/lifecycle"
	"github.com/campuskit/analytics/pkg/httpcontext"
	"github.com/campuskit/analytics/pkg/logger"
	"github.com/campuskit/analytics/upstream"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	zapLogger, err := logger.New(logger.Config{
		Level:    cfg.Logger.Level,
		Encoding: cfg.Logger.Encoding,
	})
	if err != nil {
		log.Fatalf("logger error: %v", err)
	}
	defer zapLogger.Sync()

	appCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	manager := lifecycle.New(cfg.Context.ShutdownTimeout, zapLogger)
	manager.Listen(cancel)

	client := upstream.NewClient(cfg.Upstream.BaseURL, upstream.StaticToken(cfg.Upstream.Token), zapLogger)
	cacheSvc := cache.New(client, cfg.Cache.TTL, zapLogger)

	mon := monitor.New(client, cacheSvc, cfg.Monitor.Interval, zapLogger)
	mon.Start()
	manager.Register("monitor", func(ctx context.Context) error {
		mon.Stop()
		return nil
	})

	if cfg.Refresher.Enabled {
		refresher := services.NewRefresher(cacheSvc, mon, cfg.Refresher.Interval, zapLogger)
		refresher.Start()
		manager.Register("refresher", func(ctx context.Context) error {
			refresher.Stop(ctx)
			return nil
		})
	}

	ctxAdapter := httpcontext.NewAdapter(cfg.Context.RequestTimeout)

	handlers := router.Handlers{
		Analytics:   apiHandler.NewAnalyticsHandler(cacheSvc, ctxAdapter, zapLogger),
		Cache:       apiHandler.NewCacheHandler(cacheSvc, ctxAdapter, zapLogger),
		Leaderboard: apiHandler.NewLeaderboardHandler(client, ctxAdapter, zapLogger),
		Health:      apiHandler.NewHealthHandler(mon, ctxAdapter, zapLogger),
	}

	authMiddleware := middleware.JWTAuth(cfg.JWT.Secret, zapLogger)
	r := router.New(handlers, authMiddleware)

	server := &fasthttp.Server{
		Handler:      r.Handler,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
		Name:         cfg.AppName,
	}

	go func() {
		zapLogger.Info("server started", zap.String("address", cfg.Address()))
		if err := server.ListenAndServe(cfg.Address()); err != nil {
			zapLogger.Fatal("server crashed", zap.Error(err))
		}
	}()

	manager.Register("http_server", func(ctx context.Context) error {
		return server.Shutdown()
	})

	<-appCtx.Done()

	if err := manager.Shutdown(context.Background()); err != nil {
		zapLogger.Error("graceful shutdown error", zap.Error(err))
	}
}
