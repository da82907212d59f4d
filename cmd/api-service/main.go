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

	"golang-stock-sentiment/internal/sentiment/classifier"
	"golang-stock-sentiment/internal/sentiment/config"
	"golang-stock-sentiment/internal/sentiment/delivery/consumer"
	delivery "golang-stock-sentiment/internal/sentiment/delivery/http"
	_ "golang-stock-sentiment/internal/sentiment/docs"
	"golang-stock-sentiment/internal/sentiment/lifecycle"
	"golang-stock-sentiment/internal/sentiment/metrics"
	"golang-stock-sentiment/internal/sentiment/news"
	"golang-stock-sentiment/internal/sentiment/repository"
	"golang-stock-sentiment/internal/sentiment/service"
	"golang-stock-sentiment/pkg/logger"
	"golang-stock-sentiment/pkg/postgres"
	"golang-stock-sentiment/pkg/redis"
	"golang-stock-sentiment/pkg/telegram"
	"golang-stock-sentiment/pkg/utils"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	swagger "github.com/swaggo/echo-swagger"
)

var configPath string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Starts the sentiment api service",
	Run:   runServe,
}

func runServe(cmd *cobra.Command, args []string) {
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

	appLogger.Info("Starting Sentiment API Service", logger.Field("name", cfg.App.Name))

	// Initialize database
	db, err := postgres.NewDB(postgres.Config{
		URL:             cfg.Database.URL,
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		User:            cfg.Database.User,
		Password:        cfg.Database.Password,
		DBName:          cfg.Database.DBName,
		SSLMode:         cfg.Database.SSLMode,
		TimeZone:        cfg.Database.TimeZone,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		LogLevel:        cfg.Database.LogLevel,
	})
	if err != nil {
		appLogger.Fatal("Failed to initialize database", logger.ErrorField(err))
	}
	if sqlDB, err := db.DB.DB(); err == nil {
		defer sqlDB.Close()
	}

	// Metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	appMetrics := metrics.New(registry)

	// News sources
	var sources []news.Source
	if cfg.News.FMP.Enabled {
		if cfg.News.FMP.APIKey == "" {
			appLogger.Warn("FMP API key is not set, the FMP source will report no news")
		}
		sources = append(sources, news.NewFMPSource(news.FMPConfig{
			BaseURL:             cfg.News.FMP.BaseURL,
			APIKey:              cfg.News.FMP.APIKey,
			UserAgent:           cfg.News.FMP.UserAgent,
			Timeout:             cfg.News.FMP.Timeout,
			MaxRequestPerMinute: cfg.News.FMP.MaxRequestPerMinute,
		}, appLogger))
	}
	if cfg.News.RSS.Enabled {
		sources = append(sources, news.NewRSSSource(news.RSSConfig{
			URLTemplate: cfg.News.RSS.URLTemplate,
			Timeout:     cfg.News.RSS.Timeout,
		}, appLogger))
	}
	fetcher := news.NewAggregator(appLogger, appMetrics, sources...)

	// Classifier and lifecycle
	loader, err := classifier.NewLoader(cfg.Classifier.Backend, classifier.FinBERTConfig{
		ModelName: cfg.Classifier.ModelName,
		ModelPath: cfg.Classifier.ModelPath,
		ModelDir:  cfg.Classifier.ModelDir,
	}, appLogger)
	if err != nil {
		appLogger.Fatal("Invalid classifier configuration", logger.ErrorField(err))
	}
	adapter := classifier.NewAdapter(cfg.Classifier.Backend, appLogger, appMetrics)

	recordRepo := repository.NewSentimentRecordRepository(db.DB, cfg.Storage.InsertBatchSize)
	manager := lifecycle.NewManager(recordRepo, adapter, loader, lifecycle.Options{AsyncLoad: cfg.Classifier.AsyncLoad}, appLogger)
	manager.Start(ctx)
	defer manager.Stop()

	// Initialize services
	analysisSvc := service.NewAnalysisService(service.AnalysisConfig{
		NewsLimit: cfg.News.Limit,
		NewsPage:  cfg.News.Page,
	}, fetcher, manager.Classifier(), recordRepo, appMetrics, appLogger)
	historySvc := service.NewHistoryService(recordRepo, appLogger)

	// Stream consumer
	if cfg.Stream.Enabled {
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

		var notifier telegram.Notifier
		if cfg.Telegram.BotToken != "" {
			notifier, err = telegram.NewClient(cfg.Telegram.BotToken, cfg.Telegram.ChatID)
			if err != nil {
				appLogger.Error("Failed to initialize Telegram, notifications disabled", logger.ErrorField(err))
				notifier = nil
			}
		}

		streamConsumer := consumer.NewRedisConsumer(consumer.Config{
			Consumer:       cfg.Stream.Consumer,
			BlockTimeout:   cfg.Stream.BlockTimeout,
			ProcessTimeout: cfg.Stream.ProcessTimeout,
		}, redisClient.Client, analysisSvc, notifier, appLogger)
		if err := streamConsumer.Start(ctx); err != nil {
			appLogger.Fatal("Failed to start stream consumer", logger.ErrorField(err))
		}
		defer streamConsumer.Stop()
	}

	// Initialize Echo server
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(delivery.RequestContext(appLogger))
	e.Use(delivery.Metrics(appMetrics))

	delivery.RegisterAll(e, analysisSvc, historySvc, manager, appLogger)
	e.GET("/metrics", echo.WrapHandler(appMetrics.Handler()))
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

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("Server forced to shutdown", logger.ErrorField(err))
	}

	appLogger.Info("Server exiting")
}

// @title Financial News Sentiment API
// @version 1.0
// @description Scores financial news headlines for a ticker and keeps the history.
// @BasePath /api/v1
func main() {
	rootCmd := &cobra.Command{Use: "api-service"}

	serveCmd.Flags().StringVarP(&configPath, "config", "c", "configs/config-api.yaml", "Path to the configuration file")

	rootCmd.AddCommand(serveCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing api-service CLI: %s\n", err)
		os.Exit(1)
	}
}
