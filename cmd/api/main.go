package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SagarikaVandana/janu-collections-sub000/internal/config"
	"github.com/SagarikaVandana/janu-collections-sub000/internal/database"
	"github.com/SagarikaVandana/janu-collections-sub000/internal/handler"
	"github.com/SagarikaVandana/janu-collections-sub000/internal/notification"
	"github.com/SagarikaVandana/janu-collections-sub000/internal/repository"
	"github.com/SagarikaVandana/janu-collections-sub000/internal/router"
	"github.com/SagarikaVandana/janu-collections-sub000/internal/service"
	"github.com/SagarikaVandana/janu-collections-sub000/internal/storage"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize logger
	logger := config.NewLogger(cfg.Logger)
	logger.Info().Msg("starting janu-collections API server")

	// Create context for application lifecycle
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize database connection pool
	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer pool.Close()

	// Apply pending schema migrations
	if err := database.Migrate(ctx, pool, logger); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	// Initialize repositories
	productRepo := repository.NewProductRepository(pool, logger)
	couponRepo := repository.NewCouponRepository(pool, logger)
	orderRepo := repository.NewOrderRepository(pool, logger)
	userRepo := repository.NewUserRepository(pool, logger)
	newsletterRepo := repository.NewNewsletterRepository(pool, logger)
	settingsRepo := repository.NewPaymentSettingsRepository(pool, logger)

	// Initialize image storage (S3 when enabled, local directory otherwise)
	imageStore, err := storage.New(ctx, cfg.S3, logger)
	if err != nil {
		logger.Warn().Err(err).Msg("failed to initialise S3 image store, falling back to local storage")
		imageStore = storage.NewLocalStore("uploads", logger)
	}

	// Initialize notification dispatcher
	dispatcher := notification.NewDispatcher(cfg.Notification, logger)

	// Initialize services
	productService := service.NewProductService(productRepo, imageStore, logger)
	couponService := service.NewCouponService(couponRepo, logger)
	orderService := service.NewOrderService(orderRepo, productRepo, couponService, dispatcher, logger)
	userService := service.NewUserService(userRepo, orderRepo, logger)
	newsletterService := service.NewNewsletterService(newsletterRepo, logger)
	settingsService := service.NewPaymentSettingsService(settingsRepo, logger)
	reportService := service.NewReportService(orderRepo, newsletterRepo, logger)

	// Initialize HTTP handlers and router
	mux := router.New(router.Handlers{
		Product:         handler.NewProductHandler(productService, logger),
		Coupon:          handler.NewCouponHandler(couponService, logger),
		Order:           handler.NewOrderHandler(orderService, logger),
		User:            handler.NewUserHandler(userService, logger),
		Newsletter:      handler.NewNewsletterHandler(newsletterService, logger),
		PaymentSettings: handler.NewPaymentSettingsHandler(settingsService, logger),
		Report:          handler.NewReportHandler(reportService, logger),
	}, cfg.Auth.JWTSecret, logger)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Channel to listen for errors from the server
	serverErrors := make(chan error, 1)

	// Start HTTP server in a goroutine
	go func() {
		logger.Info().
			Str("address", cfg.Server.Address()).
			Msg("HTTP server started")
		serverErrors <- server.ListenAndServe()
	}()

	// Channel to listen for interrupt signals
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a signal or an error
	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Info().
			Str("signal", sig.String()).
			Msg("shutdown signal received, starting graceful shutdown")

		// Create a context with timeout for shutdown
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		// Attempt graceful shutdown
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("failed to shutdown server gracefully")
			// Force close
			if closeErr := server.Close(); closeErr != nil {
				logger.Error().Err(closeErr).Msg("failed to close server")
			}
			return fmt.Errorf("server shutdown failed: %w", err)
		}

		logger.Info().Msg("server shutdown completed")
	}

	return nil
}
