// Package server wires the shortener into an HTTP server and runs it until shutdown.
package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"rev-shortener/config"
	"rev-shortener/handlers"
	"rev-shortener/services"
	"rev-shortener/storage"
	"rev-shortener/urlgen"
)

// Run serves the shortener until ctx is cancelled or the process receives SIGINT/SIGTERM.
func Run(ctx context.Context, logger *zap.Logger, cfg *config.Config) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	shortener, err := setupShortener(cfg, logger, reg)
	if err != nil {
		return err
	}

	urlHandler, err := setupURLHandler(ctx, cfg, shortener, logger)
	if err != nil {
		return err
	}

	httpMetrics, err := handlers.NewHTTPMetrics(reg)
	if err != nil {
		return err
	}

	router := setupRouter(urlHandler, cfg, logger, httpMetrics, reg)
	server := setupServer(cfg, router)

	errCh := make(chan error, 1)
	go func() {
		errCh <- startServer(server, logger)
	}()

	return waitForShutdown(ctx, server, cfg, logger, errCh)
}

// setupShortener builds the store, the identifier strategy and the Shortener over them.
func setupShortener(cfg *config.Config, logger *zap.Logger, reg prometheus.Registerer) (*services.Shortener, error) {
	store := storage.NewInMemoryStorage(cfg.Limit, logger)

	pool := cfg.Pool
	if cfg.Strategy == config.StrategyPool && len(pool) == 0 {
		pool = urlgen.DefaultPool(cfg.PoolSize)
	}
	strategy, err := urlgen.New(urlgen.Options{
		Kind:           urlgen.Kind(cfg.Strategy),
		Pool:           pool,
		SqidsMinLength: cfg.SqidsMinLength,
		SqidsAlphabet:  cfg.SqidsAlphabet,
	})
	if err != nil {
		logger.Error("Failed to create identifier strategy", zap.String("strategy", cfg.Strategy), zap.Error(err))
		return nil, err
	}

	metrics, err := services.NewMetrics(reg)
	if err != nil {
		return nil, err
	}

	shortener, err := services.NewShortener(store, strategy, services.Options{
		Domain:  cfg.Domain,
		Limit:   cfg.Limit,
		Logger:  logger,
		Metrics: metrics,
	})
	if err != nil {
		logger.Error("Failed to create shortener", zap.Error(err))
		return nil, err
	}

	logger.Info("Shortener ready",
		zap.String("domain", cfg.Domain),
		zap.Int("limit", cfg.Limit),
		zap.String("strategy", cfg.Strategy))
	return shortener, nil
}

func setupURLHandler(ctx context.Context, cfg *config.Config, service services.URLService, logger *zap.Logger) (handlers.URLHandlerInterface, error) {
	handlerCtx, cancel := context.WithTimeout(ctx, cfg.RequestTimeout)
	defer cancel()

	handler, err := handlers.NewURLHandler(handlerCtx, service, cfg, logger)
	if err != nil {
		logger.Error("Failed to create URL handler", zap.Error(err))
		return nil, err
	}

	logger.Debug("URL handler created successfully")
	return handler, nil
}

func setupRouter(urlHandler handlers.URLHandlerInterface, cfg *config.Config, logger *zap.Logger, m *handlers.HTTPMetrics, gatherer prometheus.Gatherer) *gin.Engine {
	router := gin.New()
	router.Use(
		handlers.RequestIDMiddleware(),
		handlers.AccessLogMiddleware(logger),
		handlers.MetricsMiddleware(m),
		gin.Recovery(),
	)
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	handlers.RegisterRoutes(router, urlHandler, cfg)
	return router
}

func setupServer(cfg *config.Config, router *gin.Engine) *http.Server {
	return &http.Server{
		Addr:    cfg.ServerPort,
		Handler: router,
	}
}

func startServer(srv *http.Server, logger *zap.Logger) error {
	logger.Info("Starting server", zap.String("address", srv.Addr))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("Server error", zap.Error(err))
		return err
	}
	logger.Debug("Server stopped")
	return nil
}

func waitForShutdown(ctx context.Context, srv *http.Server, cfg *config.Config, logger *zap.Logger, errCh <-chan error) error {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		logger.Info("Received signal. Initiating server shutdown...", zap.String("signal", sig.String()))
	case <-ctx.Done():
		logger.Info("Context cancelled. Initiating server shutdown...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
		return err
	}

	logger.Info("Server gracefully stopped")
	return nil
}
