package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/yourorg/crypto-tracker/internal/cache"
	"github.com/yourorg/crypto-tracker/internal/client"
	"github.com/yourorg/crypto-tracker/internal/config"
	"github.com/yourorg/crypto-tracker/internal/handler"
	"github.com/yourorg/crypto-tracker/internal/middleware"
	"github.com/yourorg/crypto-tracker/internal/notifier"
	"github.com/yourorg/crypto-tracker/internal/repository"
	"github.com/yourorg/crypto-tracker/internal/scheduler"
	"github.com/yourorg/crypto-tracker/internal/service"
	"github.com/yourorg/crypto-tracker/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

func main() {
	// .env is optional; real environments set the variables directly
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.LoadConfig("config/config.yaml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Set up logger
	logger := createLogger(cfg.Logging)
	defer logger.Sync()

	if !cfg.SMTP.Complete() {
		logger.Warn("Email configuration incomplete; alerts will be logged but not delivered")
	}

	// Optional coin list cache
	var listCache *cache.CoinListCache
	if cfg.Redis.Enabled {
		listCache, err = cache.NewCoinListCache(cfg.Redis, logger)
		if err != nil {
			logger.Warn("Coin list cache disabled", zap.Error(err))
		} else {
			defer listCache.Close()
		}
	}

	// Initialize repositories
	ruleRepo := repository.NewAlertRuleRepository(logger)
	eventRepo := repository.NewAlertEventRepository(cfg.Alerts.LogFile, logger)

	// Initialize clients and services
	apiClient := client.NewCoinGeckoClient(cfg.CoinGecko, logger)
	emailNotifier := notifier.NewEmailNotifier(cfg.SMTP, logger)
	priceService := service.NewPriceService(apiClient, listCache, logger)
	alertService := service.NewAlertService(ruleRepo, eventRepo, emailNotifier, logger)
	trackerService := service.NewTrackerService(priceService, alertService, cfg.Refresh.Interval, logger)

	// Websocket hub and refresh scheduler
	hub := ws.NewHub(logger)
	refreshScheduler := scheduler.NewScheduler(trackerService, hub, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)
	go refreshScheduler.Start(ctx)

	// Initialize handlers
	coinHandler := handler.NewCoinHandler(priceService, logger)
	alertHandler := handler.NewAlertHandler(alertService, logger)
	trackerHandler := handler.NewTrackerHandler(trackerService, refreshScheduler, logger)

	// Set up HTTP server with Gin
	router := setupRouter(coinHandler, alertHandler, trackerHandler, hub, logger)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Start the server in a goroutine
	go func() {
		logger.Info("Starting server", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")
	cancel()

	// Create a deadline for server shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited properly")
}

func createLogger(cfg config.LoggingConfig) *zap.Logger {
	// Parse log level
	var zapLevel zapcore.Level
	switch cfg.Level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info":
		zapLevel = zapcore.InfoLevel
	case "warn":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		zapLevel = zapcore.InfoLevel
	}

	sinks := []zapcore.WriteSyncer{zapcore.AddSync(os.Stdout)}
	if cfg.File != "" {
		// rotate the application log so a long-running tracker does not
		// fill the disk
		sinks = append(sinks, zapcore.AddSync(&lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
		}))
	}

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
		zapcore.NewMultiWriteSyncer(sinks...),
		zapLevel,
	)
	return zap.New(core)
}

func setupRouter(
	coinHandler *handler.CoinHandler,
	alertHandler *handler.AlertHandler,
	trackerHandler *handler.TrackerHandler,
	hub *ws.Hub,
	logger *zap.Logger,
) *gin.Engine {
	handler.RegisterValidators()

	router := gin.New()

	// Use middlewares
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(logger))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	// Websocket push of refresh cycle results
	router.GET("/ws", func(c *gin.Context) {
		hub.ServeWS(c.Writer, c.Request)
	})

	// API routes
	v1 := router.Group("/api/v1")
	{
		// Price data routes
		v1.GET("/coins", coinHandler.GetCoinList)
		v1.GET("/coins/:id/history", coinHandler.GetHistory)
		v1.GET("/prices", coinHandler.GetPrices)

		// Alert rule and alert log routes
		alerts := v1.Group("/alerts")
		{
			alerts.GET("", alertHandler.ListAlerts)
			alerts.POST("", alertHandler.CreateAlert)
			alerts.GET("/log", alertHandler.GetAlertLog)
			alerts.DELETE("/:index", alertHandler.DeleteAlert)
		}

		// Session state routes
		v1.GET("/tracked", trackerHandler.GetTracked)
		v1.PUT("/tracked", trackerHandler.PutTracked)
		v1.GET("/refresh", trackerHandler.GetRefreshStatus)
		v1.POST("/refresh", trackerHandler.TriggerRefresh)
		v1.PUT("/refresh/interval", trackerHandler.PutInterval)
	}

	return router
}
