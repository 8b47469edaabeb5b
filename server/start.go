package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"kalma/auth"
	cachepackage "kalma/cache"
	"kalma/config"
	"kalma/database"
	"kalma/store"

	"github.com/umakantv/go-utils/logger"
	"go.uber.org/zap"
)

// InitLogger sets up the shared go-utils logger
func InitLogger() {
	logger.Init(logger.LoggerConfig{
		CallerKey:  "file",
		TimeKey:    "timestamp",
		CallerSkip: 1,
	})
}

// StartServer wires storage, sessions and routes, then serves until
// SIGINT/SIGTERM.
func StartServer(cfg config.Config) {
	logger.Info("Starting Kalma...")

	if cfg.Session.Secret == config.DevSessionSecret {
		logger.Info("SESSION_SECRET not set, using the development secret")
	}

	// Initialize database
	dbConn := database.InitializeDatabase(cfg.Database)
	defer dbConn.Close()

	// Initialize cache
	cache := cachepackage.InitializeCache(cfg.Cache)
	defer cache.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	limiter := NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	go limiter.Cleanup(ctx, time.Minute, 3*time.Minute)

	router := NewRouter(Deps{
		Store:    store.New(dbConn),
		Events:   store.NewEventFile(cfg.EventsFile),
		Sessions: auth.NewSessions(cfg.Session.Secret, cfg.Session.TTL, cfg.Session.SecureCookies, cache),
		Limiter:  limiter,
	})

	httpSrv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       2 * time.Minute,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("Kalma started", zap.String("port", cfg.Port), zap.String("events_file", cfg.EventsFile))
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			logger.Error("Server failed to start", zap.Error(err))
			dbConn.Close()
			os.Exit(1)
		}
	case <-ctx.Done():
		logger.Info("Shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Graceful shutdown failed", zap.Error(err))
	}
}
