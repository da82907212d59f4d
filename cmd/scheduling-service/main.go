package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang-stock-sentiment/internal/scheduler/config"
	delivery "golang-stock-sentiment/internal/scheduler/delivery/http"
	_ "golang-stock-sentiment/internal/scheduler/docs"
	"golang-stock-sentiment/internal/scheduler/service"
	"golang-stock-sentiment/pkg/logger"
	"golang-stock-sentiment/pkg/redis"
	"golang-stock-sentiment/pkg/utils"

	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra"
	swagger "github.com/swaggo/echo-swagger"
)

var configPath string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Starts the scheduling service",
	Run:   runServe,
}

func runServe(cmd *cobra.Command, args []string) {
	// Create a context that is canceled on interrupt signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load configuration
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	appLogger, err := logger.New(cfg.Logger.Level, cfg.Logger.Encoding)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = appLogger.Sync() }()
	utils.SetPanicLogger(appLogger)

	appLogger.Info("Starting Scheduling Service", logger.Field("name", cfg.App.Name))

	// Initialize Redis
	redisClient, err := redis.NewClient(redis.Config{
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		PoolSize: cfg.Redis.PoolSize,
	})
	if err != nil {
		appLogger.Fatal("Failed to initialize Redis", logger.ErrorField(err))
	}
	defer redisClient.Close()

	// Initialize services
	watchlistSvc, err := service.NewWatchlistService(redisClient.Client, appLogger,
		cfg.Scheduler.Cron, cfg.Scheduler.Tickers, cfg.Scheduler.Cooldown, cfg.Redis.StreamMaxLen)
	if err != nil {
		appLogger.Fatal("Invalid scheduler configuration", logger.ErrorField(err))
	}
	if err := watchlistSvc.Start(ctx); err != nil {
		appLogger.Fatal("Failed to start watchlist scheduler", logger.ErrorField(err))
	}
	defer watchlistSvc.Stop()

	// Initialize Echo server
	e := echo.New()
	e.HideBanner = true

	watchlistHandler := delivery.NewWatchlistHandler(watchlistSvc, appLogger)
	apiV1 := e.Group("/api/v1")
	watchlistHandler.RegisterRoutes(apiV1.Group("/watchlist"))

	e.GET("/swagger/*", swagger.WrapHandler)

	// Start server
	go func() {
		addr := fmt.Sprintf("%s:%d", cfg.API.Host, cfg.API.Port)
		appLogger.Info("HTTP server starting", logger.Field("address", addr))
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			appLogger.Error("HTTP server failed to start", logger.ErrorField(err))
			stop() // trigger shutdown
		}
	}()

	// Wait for shutdown signal
	<-ctx.Done()

	appLogger.Info("Shutting down server...")

	// Gracefully shutdown the server
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("Server forced to shutdown", logger.ErrorField(err))
	}

	appLogger.Info("Server exiting")
}

// @title Sentiment Watchlist Scheduler API
// @version 1.0
// @description Publishes scheduled sentiment analysis requests for a ticker watchlist.
// @BasePath /api/v1
func main() {
	rootCmd := &cobra.Command{Use: "scheduling-service"}

	serveCmd.Flags().StringVarP(&configPath, "config", "c", "configs/config-scheduler.yaml", "Path to the configuration file")

	rootCmd.AddCommand(serveCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing scheduling-service CLI: %s\n", err)
		os.Exit(1)
	}
}
