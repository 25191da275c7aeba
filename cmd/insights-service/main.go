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

	"go-social-insights/internal/insights/config"
	delivery "go-social-insights/internal/insights/delivery/http"
	"go-social-insights/internal/insights/repository"
	"go-social-insights/internal/insights/service"
	"go-social-insights/pkg/logger"
	"go-social-insights/pkg/postgres"
	"go-social-insights/pkg/redis"
	"go-social-insights/pkg/telegram"
	"go-social-insights/pkg/utils"

	"github.com/labstack/echo/v4"
	"github.com/patrickmn/go-cache"
	"github.com/spf13/cobra"
)

var configPath string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Starts the insights service",
	Run:   runServe,
}

func runServe(cmd *cobra.Command, args []string) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLogger, err := logger.New(cfg.Logger.Level, cfg.Logger.Encoding)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = appLogger.Sync() }()

	appLogger.Info("Starting Insights Service", logger.Field("name", cfg.App.Name))

	postgresCfg := postgres.Config{
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		User:            cfg.Database.User,
		Password:        cfg.Database.Password,
		DBName:          cfg.Database.DBName,
		SSLMode:         cfg.Database.SSLMode,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		LogLevel:        cfg.Database.LogLevel,
	}
	db, err := postgres.NewDB(postgresCfg)
	if err != nil {
		appLogger.Fatal("Failed to initialize database", logger.ErrorField(err))
	}
	if sqlDB, err := db.DB.DB(); err == nil {
		defer sqlDB.Close()
	}

	redisCfg := redis.Config{
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		PoolSize: cfg.Redis.PoolSize,
	}
	redisClient, err := redis.NewClient(redisCfg)
	if err != nil {
		appLogger.Fatal("Failed to initialize Redis", logger.ErrorField(err))
	}
	defer redisClient.Close()

	var notifier telegram.Notifier = telegram.NoopNotifier{}
	if cfg.Telegram.BotToken != "" {
		notifier, err = telegram.NewClient(cfg.Telegram.BotToken, cfg.Telegram.ChatID)
		if err != nil {
			appLogger.Fatal("Failed to initialize Telegram notifier", logger.ErrorField(err))
		}
	}

	cacheTTL, err := time.ParseDuration(cfg.Orchestrator.ClusterCacheTTL)
	if err != nil {
		appLogger.Fatal("Invalid cluster cache TTL", logger.ErrorField(err))
	}
	clusterCache := cache.New(cacheTTL, 2*cacheTTL)

	// Initialize repositories
	postRepo := repository.NewPostRepository(db.DB)
	clusterRepo := repository.NewClusterRepository(db.DB)
	runRepo := repository.NewAnalysisRunRepository(db.DB)
	lockRepo := repository.NewRunLockRepository(redisClient.Client)
	analyzerRepo, err := repository.NewAnalyzerRepository(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize analyzer client", logger.ErrorField(err))
	}

	// Initialize services
	runSvc := service.NewRunService(cfg, postRepo, clusterRepo, runRepo, analyzerRepo, lockRepo, notifier, clusterCache, appLogger)
	postSvc := service.NewPostService(postRepo, appLogger)
	clusterSvc := service.NewClusterService(clusterRepo, clusterCache, cacheTTL, appLogger)

	scheduler, err := service.NewRunScheduler(cfg, runSvc, appLogger)
	if err != nil {
		appLogger.Fatal("Invalid run scheduler configuration", logger.ErrorField(err))
	}
	utils.GoSafe(func() { scheduler.Start(ctx) })

	e := echo.New()
	e.HideBanner = true

	apiV1 := e.Group("/api/v1")

	runHandler := delivery.NewRunHandler(runSvc, appLogger)
	runHandler.RegisterRoutes(apiV1.Group("/runs"))

	postHandler := delivery.NewPostHandler(postSvc, appLogger)
	postHandler.RegisterRoutes(apiV1.Group("/posts"))

	clusterHandler := delivery.NewClusterHandler(clusterSvc, appLogger)
	clusterHandler.RegisterRoutes(apiV1.Group("/clusters"))

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "healthy", "service": "insights-service"})
	})

	go func() {
		addr := fmt.Sprintf(":%d", cfg.API.Port)
		appLogger.Info("HTTP server starting", logger.Field("address", addr))
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			appLogger.Error("HTTP server failed to start", logger.ErrorField(err))
			stop()
		}
	}()

	<-ctx.Done()

	appLogger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		appLogger.Fatal("Server forced to shutdown", logger.ErrorField(err))
	}

	appLogger.Info("Server exiting")
}

func main() {
	rootCmd := &cobra.Command{Use: "insights-service"}

	serveCmd.Flags().StringVarP(&configPath, "config", "c", "configs/config-insights.yaml", "Path to the configuration file")

	rootCmd.AddCommand(serveCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing insights-service CLI: %s\n", err)
		os.Exit(1)
	}
}
