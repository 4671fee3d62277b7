package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fintrack/internal/auth"
	"fintrack/internal/cache"
	"fintrack/internal/config"
	apphttp "fintrack/internal/http"
	"fintrack/internal/log"
	"fintrack/internal/service"
	"fintrack/internal/storage"

	"github.com/joho/godotenv"
)

func main() {
	// .env is optional; the environment wins over it either way.
	_ = godotenv.Load()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}

	logger := log.New(log.Config{Level: cfg.LogLevel, Component: log.ComponentApp})
	log.SetDefault(logger)

	store, err := storage.Open(cfg.SQLiteDBPath)
	if err != nil {
		logger.Error("failed to open storage", log.FieldError, err)
		os.Exit(1)
	}
	defer store.Close()

	dash := service.NewDashboardCache(cfg.CacheSize, cfg.CacheTTL)
	authSvc := auth.NewService(store, logger, cfg.SessionDuration)
	reports := service.NewReportService(store, logger)
	categories := service.NewCategoryService(store, logger, dash)
	transactions := service.NewTransactionService(store, categories, logger, dash)
	budgets := service.NewBudgetService(store, reports, logger, dash)
	dashboard := service.NewDashboardService(reports, budgets, dash, logger)

	// Periodic upkeep: expired cache entries and expired sessions.
	cacheManager := cache.NewManager()
	cacheManager.Register(dash)
	cacheManager.StartCleanup(cfg.CacheCleanupInterval)
	defer cacheManager.Stop()

	sweepCtx, sweepCancel := context.WithCancel(context.Background())
	defer sweepCancel()
	go sweepSessions(sweepCtx, authSvc, logger)

	srv := apphttp.NewServer(apphttp.Options{
		Addr:           ":" + cfg.Port,
		Auth:           authSvc,
		Categories:     categories,
		Transactions:   transactions,
		Budgets:        budgets,
		Dashboard:      dashboard,
		Logger:         logger,
		ReadTimeout:    cfg.ReadTimeout,
		WriteTimeout:   cfg.WriteTimeout,
		RateLimitRPS:   cfg.RateLimitRPS,
		RateLimitBurst: cfg.RateLimitBurst,
		SecureCookies:  cfg.SecureCookies,
	})
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		logger.Info("shutdown signal received",
			log.FieldOperation, log.OpShutdown,
			"signal", sig.String(),
		)

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("server shutdown error", log.FieldError, err)
		}
		cancel()
	}()

	logger.Info("starting server",
		log.FieldOperation, log.OpStartup,
		"port", cfg.Port,
		"db_path", cfg.SQLiteDBPath,
	)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("server error", log.FieldError, err, "port", cfg.Port)
		os.Exit(1)
	}

	<-ctx.Done()
	logger.Info("server stopped gracefully")
}

// sweepSessions removes expired sessions hourly.
func sweepSessions(ctx context.Context, authSvc *auth.Service, logger *log.Logger) {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := authSvc.SweepExpired(ctx); err != nil {
				logger.Warn("session sweep failed", log.FieldError, err)
			}
		case <-ctx.Done():
			return
		}
	}
}
