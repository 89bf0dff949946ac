package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/taycraft/joinery-api/config"
	"github.com/taycraft/joinery-api/internal/cache"
	"github.com/taycraft/joinery-api/internal/handlers"
	"github.com/taycraft/joinery-api/internal/middleware"
	"github.com/taycraft/joinery-api/internal/services"
	"github.com/taycraft/joinery-api/pkg/httpclient"
	"github.com/taycraft/joinery-api/pkg/logger"
	"github.com/taycraft/joinery-api/pkg/metrics"
	"github.com/taycraft/joinery-api/pkg/profiling"
	"github.com/taycraft/joinery-api/pkg/sanity"
	"github.com/taycraft/joinery-api/pkg/storage"
	"github.com/taycraft/joinery-api/pkg/tracing"
	"github.com/taycraft/joinery-api/pkg/trustpilot"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"
)

// registerAPIRoutes registers the public API routes for a given router group
func registerAPIRoutes(
	group *gin.RouterGroup,
	generalRateLimiter, enquiryRateLimiter, revalidateRateLimiter *middleware.RateLimiter,
	enquiryHandler *handlers.EnquiryHandler,
	revalidateHandler *handlers.RevalidateHandler,
	reviewsHandler *handlers.ReviewsHandler,
	contentHandler *handlers.ContentHandler,
) {
	// Enquiry submissions carry file attachments; everything else is small
	group.POST("/enquiry", enquiryRateLimiter.Middleware(), middleware.BodySizeLimitMiddleware(10*1024*1024), enquiryHandler.SubmitEnquiry)
	group.POST("/revalidate", revalidateRateLimiter.Middleware(), middleware.BodySizeLimitMiddleware(100*1024), revalidateHandler.HandleContentWebhook)
	group.GET("/reviews", generalRateLimiter.Middleware(), reviewsHandler.GetReviews)
	group.GET("/content/:type", generalRateLimiter.Middleware(), contentHandler.GetDocuments)
}

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	err = logger.Initialize(logger.Config{
		Level:       cfg.Logging.Level,
		LogDir:      cfg.Logging.Dir,
		Environment: cfg.Server.AppEnv,
		ServiceName: cfg.Observability.ServiceName,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting joinery API",
		zap.String("version", cfg.Observability.ServiceVersion),
		zap.String("environment", cfg.Server.AppEnv),
	)

	// Initialize distributed tracing
	tracerShutdown, err := tracing.InitTracer(
		cfg.Observability.ServiceName,
		cfg.Observability.ServiceNamespace,
		cfg.Observability.ServiceVersion,
		cfg.Observability.ServiceInstanceID,
		cfg.Server.AppEnv,
		cfg.Observability.ExporterEndpoint,
	)
	if err != nil {
		logger.Fatal("Failed to initialize tracer", zap.Error(err))
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if shutdownErr := tracerShutdown(ctx); shutdownErr != nil {
			logger.Error("Failed to shutdown tracer", zap.Error(shutdownErr))
		}
	}()

	// Initialize metrics and start infrastructure metrics collection
	metrics.Init()
	metrics.RecordInfrastructureMetrics()

	// Initialize continuous profiling
	profilerStop, err := profiling.InitProfiler(
		cfg.Profiling,
		cfg.Observability.ServiceName,
		cfg.Observability.ServiceNamespace,
		cfg.Observability.ServiceVersion,
		cfg.Observability.ServiceInstanceID,
		cfg.Server.AppEnv,
	)
	if err != nil {
		logger.Fatal("Failed to initialize profiler", zap.Error(err))
	}
	defer profilerStop()

	// Initialize HTTP client for external API calls
	httpClient := httpclient.NewStandardClient()

	// Initialize the content store client and the tag-indexed content cache.
	// The cache is populated synchronously before the container is marked
	// as healthy.
	sanityClient := sanity.NewClient(
		cfg.Sanity.ProjectID,
		cfg.Sanity.Dataset,
		cfg.Sanity.APIVersion,
		cfg.Sanity.Token,
		httpClient,
	)
	contentCache := cache.NewContentCache(sanityClient.DocumentsByType, cfg.Cache.ContentTTLSeconds)
	if err := contentCache.Initialize(context.Background()); err != nil {
		logger.Fatal("Failed to initialize content cache", zap.Error(err))
	}

	// Initialize the attachment object store when configured; without it,
	// enquiries log attachment metadata only
	var attachmentStore services.AttachmentStore
	if cfg.StorageEnabled() {
		storageClient, err := storage.NewClient(
			cfg.Storage.AccessKeyID,
			cfg.Storage.SecretAccessKey,
			cfg.Storage.BucketName,
			cfg.Storage.Endpoint,
			cfg.Storage.Region,
		)
		if err != nil {
			logger.Fatal("Failed to initialize storage client", zap.Error(err))
		}
		attachmentStore = storageClient
	} else {
		logger.Warn("Attachment storage not configured - enquiry files are logged by metadata only")
	}

	trustpilotClient := trustpilot.NewClient(cfg.Trustpilot.BusinessID, cfg.Trustpilot.APIKey, httpClient)

	// Initialize services
	enquiryService := services.NewEnquiryService(cfg, attachmentStore)
	revalidateService := services.NewRevalidateService(cfg, contentCache)
	reviewsService := services.NewReviewsService(trustpilotClient, cfg.Cache.ReviewsTTLSeconds)
	contentService := services.NewContentService(contentCache)

	// Initialize handlers
	enquiryHandler := handlers.NewEnquiryHandler(enquiryService)
	revalidateHandler := handlers.NewRevalidateHandler(revalidateService)
	reviewsHandler := handlers.NewReviewsHandler(reviewsService)
	contentHandler := handlers.NewContentHandler(contentService)
	healthHandler := handlers.NewHealthHandler(contentCache.IsReady)

	// Set up Gin router
	gin.SetMode(cfg.Server.GinMode)
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(otelgin.Middleware(cfg.Observability.ServiceName))
	router.Use(middleware.ObservabilityMiddleware())
	router.Use(middleware.SecurityHeadersMiddleware())

	// CORS configuration - only allow the site's own origins
	allowedOrigins := cfg.Server.AllowedOrigins
	if cfg.IsDevelopment() {
		allowedOrigins = append(allowedOrigins, "http://localhost:3000", "http://127.0.0.1:3000")
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "traceparent", "tracestate"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	// Rate limiters: the enquiry form gets a tight limit to slow spam bots
	// that slip past the honeypot
	generalRateLimiter := middleware.NewRateLimiter(100, 200)  // 100 req/sec, burst of 200
	enquiryRateLimiter := middleware.NewRateLimiter(5, 10)     // 5 req/sec, burst of 10
	revalidateRateLimiter := middleware.NewRateLimiter(20, 40) // webhook bursts on bulk publishes

	// Utility endpoints (not versioned - operational endpoints)
	api := router.Group("/api")
	api.GET("/healthcheck", generalRateLimiter.Middleware(), healthHandler.Healthcheck)
	api.GET("/metrics", generalRateLimiter.Middleware(), gin.WrapH(promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{})))

	// API v1 routes
	v1 := router.Group("/api/v1")
	registerAPIRoutes(v1, generalRateLimiter, enquiryRateLimiter, revalidateRateLimiter,
		enquiryHandler, revalidateHandler, reviewsHandler, contentHandler)

	// Create HTTP server. Network isolation is enforced by the deployment;
	// the frontend container reaches this service by name.
	srv := &http.Server{
		Addr:              "0.0.0.0:" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 15 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("Server started", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}
