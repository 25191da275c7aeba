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

	"go-social-insights/internal/analysis/config"
	delivery "go-social-insights/internal/analysis/delivery/http"
	"go-social-insights/internal/analysis/service"
	"go-social-insights/pkg/logger"

	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra"
)

var configPath string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Starts the analysis service",
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

	appLogger.Info("Starting Analysis Service",
		logger.Field("name", cfg.App.Name),
		logger.IntField("taxonomy_categories", len(cfg.Taxonomy)),
	)

	analyzerSvc := service.NewAnalyzerService(cfg, appLogger)

	e := echo.New()
	e.HideBanner = true

	analyzeHandler := delivery.NewAnalyzeHandler(analyzerSvc, cfg, appLogger)
	apiV1 := e.Group("/api/v1")
	analysisGroup := apiV1.Group("/analysis")
	analyzeHandler.RegisterRoutes(analysisGroup)

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "healthy", "service": "analysis-service"})
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
	rootCmd := &cobra.Command{Use: "analysis-service"}

	serveCmd.Flags().StringVarP(&configPath, "config", "c", "configs/config-analysis.yaml", "Path to the configuration file")

	rootCmd.AddCommand(serveCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing analysis-service CLI: %s\n", err)
		os.Exit(1)
	}
}
