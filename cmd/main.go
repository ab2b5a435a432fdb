package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"socially/internal/config"
	"socially/internal/logger"
	"socially/internal/relay"
	"socially/internal/telemetry"
	"socially/middleware"
	"socially/routes"
	"socially/services"
	"socially/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	logger.InitLogger(cfg.GinMode)

	if cfg.OTelEnabled {
		otelOpts := telemetry.Options{
			ServiceName: cfg.ServiceName,
			Endpoint:    cfg.OTelEndpoint,
			Environment: cfg.GinMode,
			SampleRatio: cfg.OTelSampleRatio,
		}
		shutdownTracer, err := telemetry.InitTracer(otelOpts)
		if err != nil {
			log.Fatal("Failed to initialize tracer:", err)
		}
		defer shutdownTracer()

		shutdownMeter, err := telemetry.InitMeterProvider(otelOpts)
		if err != nil {
			log.Fatal("Failed to initialize meter provider:", err)
		}
		defer shutdownMeter()
	}

	metrics, err := telemetry.InitMetrics()
	if err != nil {
		log.Fatal("Failed to initialize metrics:", err)
	}

	// Relay configuration is fixed at startup
	relayOpts := []relay.Option{relay.WithMetrics(metrics)}
	if cfg.BreakerEnabled {
		relayOpts = append(relayOpts, relay.WithBreaker())
	}
	relayClient, err := relay.New(relay.Config{
		BaseURL:    cfg.LangflowBaseURL,
		LangflowID: cfg.LangflowID,
		FlowID:     cfg.FlowID,
		Token:      cfg.ApplicationToken,
		Timeout:    time.Duration(cfg.UpstreamTimeoutSeconds) * time.Second,
	}, relayOpts...)
	if err != nil {
		log.Fatal("Failed to create relay client:", err)
	}

	// Initialize Gin router
	if cfg.GinMode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.TracingMiddleware(cfg.ServiceName))
	router.Use(middleware.EnrichTrace())
	router.Use(middleware.MetricsMiddleware(metrics))
	router.Use(middleware.CORSMiddlewareWithOrigins(cfg.CORSOrigins))
	router.Use(middleware.RequestSizeLimit(cfg.MaxRequestSize))

	if cfg.RateLimitReqs > 0 {
		window := time.Duration(cfg.RateLimitWindow) * time.Second
		var limiter middleware.RateLimiter = middleware.NewLocalLimiter(cfg.RateLimitReqs, window)
		if cfg.RedisURL != "" {
			rdb, err := config.NewRedisClient(context.Background(), cfg)
			if err != nil {
				log.Fatal("Failed to connect to Redis:", err)
			}
			defer rdb.Close()
			limiter = middleware.NewRedisLimiter(rdb, cfg.RateLimitReqs, window)
		}
		router.Use(middleware.RateLimitMiddleware(limiter, cfg.RateLimitReqs, window))
	}

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy", "timestamp": time.Now()})
	})

	// Setup routes
	routes.SetupChatRoutes(router, relayClient)
	routes.SetupAnalyticsRoutes(router, cfg.MockDataPath)

	if cfg.MockDataCron != "" {
		cron := services.NewCronService(services.NewExportService(metrics), cfg.MockDataPath, cfg.MockDataCount)
		if err := cron.Schedule(cfg.MockDataCron); err != nil {
			log.Fatal("Failed to schedule mock data refresh:", err)
		}
		cron.Start()
		defer cron.Stop()
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("Server starting", "port", cfg.Port, "upstream", cfg.LangflowBaseURL)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	ctx, cancel := utils.WithShutdownTimeout(context.Background())
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}

	logger.Info("Server exited")
}
