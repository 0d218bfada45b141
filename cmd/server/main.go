package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	listingapp "github.com/marketplace/backend/internal/application/listing"
	messagingapp "github.com/marketplace/backend/internal/application/messaging"
	reviewapp "github.com/marketplace/backend/internal/application/review"
	sellerapp "github.com/marketplace/backend/internal/application/seller"
	"github.com/marketplace/backend/internal/infrastructure/cache"
	"github.com/marketplace/backend/internal/infrastructure/config"
	"github.com/marketplace/backend/internal/infrastructure/event"
	"github.com/marketplace/backend/internal/infrastructure/logger"
	"github.com/marketplace/backend/internal/infrastructure/notification"
	"github.com/marketplace/backend/internal/infrastructure/persistence"
	"github.com/marketplace/backend/internal/interfaces/http/handler"
	"github.com/marketplace/backend/internal/interfaces/http/middleware"
	"github.com/marketplace/backend/internal/interfaces/http/router"
	"go.uber.org/zap"
)

//	@title			Marketplace Backend API
//	@version		1.0
//	@description	Multi-seller marketplace backend: seller onboarding, listings, reviews and buyer-seller messaging

//	@contact.name	API Support
//	@contact.url	https://github.com/marketplace/backend

//	@host		localhost:8080
//	@BasePath	/api/v1

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting Marketplace Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Create GORM logger backed by zap
	gormLogLevel := logger.MapGormLogLevel(cfg.Log.Level)
	gormLog := logger.NewGormLogger(log, gormLogLevel)

	// Initialize database connection with custom logger
	db, err := persistence.NewDatabaseWithCustomLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Initialize repositories
	sellerRepo := persistence.NewGormSellerRepository(db.DB)
	listingRepo := persistence.NewGormListingRepository(db.DB)
	reviewRepo := persistence.NewGormReviewRepository(db.DB)
	messageRepo := persistence.NewGormMessageRepository(db.DB)

	// Initialize event bus and register the notification subscriber
	eventBus := event.NewInMemoryEventBus(log)
	notifier := notification.NewNotifier(log)
	notifier.Register(eventBus)
	log.Info("Event handlers registered",
		zap.Strings("notification_events", notifier.EventTypes()),
	)

	if err := eventBus.Start(context.Background()); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}
	defer func() {
		if err := eventBus.Stop(context.Background()); err != nil {
			log.Error("Error stopping event bus", zap.Error(err))
		}
	}()

	// Marketplace stats cache: Redis when reachable, in-memory otherwise
	var statsCache sellerapp.StatsCache
	if !cfg.Marketplace.StatsCacheDisabled {
		client, err := cache.NewRedisClient(cache.RedisConfig{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			log.Warn("Redis unavailable, falling back to in-memory stats cache", zap.Error(err))
			statsCache = cache.NewInMemoryStatsCache(cfg.Marketplace.StatsCacheTTL)
		} else {
			redisCache := cache.NewRedisStatsCache(client, cfg.Marketplace.StatsCacheTTL, log)
			defer func() {
				if err := redisCache.Close(); err != nil {
					log.Error("Error closing Redis stats cache", zap.Error(err))
				}
			}()
			statsCache = redisCache
			log.Info("Redis stats cache connected",
				zap.String("host", cfg.Redis.Host),
				zap.Duration("ttl", cfg.Marketplace.StatsCacheTTL),
			)
		}
	}

	// Initialize application services
	policies := &cfg.Marketplace
	statsService := sellerapp.NewStatsService(sellerRepo, reviewRepo, listingRepo)
	sellerService := sellerapp.NewSellerService(sellerRepo, policies, eventBus, statsService)
	adminService := sellerapp.NewAdminService(sellerRepo, listingRepo, reviewRepo, messageRepo, policies, eventBus, statsCache)
	listingService := listingapp.NewListingService(listingRepo, sellerRepo, policies, eventBus, statsService)
	reviewService := reviewapp.NewReviewService(reviewRepo, sellerRepo, policies, eventBus, statsService)
	messageService := messagingapp.NewMessageService(messageRepo, sellerRepo, policies, eventBus)

	// Initialize HTTP handlers
	sellerHandler := handler.NewSellerHandler(sellerService)
	adminHandler := handler.NewAdminHandler(adminService)
	listingHandler := handler.NewListingHandler(listingService)
	reviewHandler := handler.NewReviewHandler(reviewService)
	messageHandler := handler.NewMessageHandler(messageService)

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup validation
	middleware.SetupValidator()

	// Initialize router with custom middleware
	engine := gin.New()

	// Configure trusted proxies
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Apply middleware stack in order:
	// 1. RequestID - Generate/propagate request ID
	// 2. Recovery - Catch panics
	// 3. Logger - Log requests
	// 4. Security - Add security headers
	// 5. CORS - Handle cross-origin requests
	// 6. BodyLimit - Limit request body size
	// 7. RateLimit - Apply rate limiting (if enabled)
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())

	// Configure CORS from config
	corsConfig := middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))

	// Body size limit
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	// Rate limiting (if enabled)
	if cfg.HTTP.RateLimitEnabled {
		rateLimiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		engine.Use(middleware.RateLimit(rateLimiter))
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}

	// Health check endpoint (outside API versioning)
	engine.GET("/health", healthHandler(db, log))

	// Setup API routes using router
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))

	// Marketplace domain
	marketplaceRoutes := router.NewDomainGroup("marketplace", "/marketplace")
	marketplaceRoutes.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "marketplace service ready"})
	})

	// Seller routes
	marketplaceRoutes.POST("/sellers", sellerHandler.Register)
	marketplaceRoutes.GET("/sellers", sellerHandler.List)
	marketplaceRoutes.GET("/sellers/subdomain/:subdomain", sellerHandler.GetBySubdomain)
	marketplaceRoutes.GET("/sellers/:id", sellerHandler.GetByID)
	marketplaceRoutes.PUT("/sellers/:id", sellerHandler.Update)
	marketplaceRoutes.DELETE("/sellers/:id", sellerHandler.Delete)
	marketplaceRoutes.POST("/sellers/:id/activate", sellerHandler.Activate)
	marketplaceRoutes.POST("/sellers/:id/deactivate", sellerHandler.Deactivate)
	marketplaceRoutes.POST("/sellers/:id/suspend", sellerHandler.Suspend)
	marketplaceRoutes.POST("/sellers/:id/sales", sellerHandler.RecordSale)
	marketplaceRoutes.POST("/sellers/:id/refresh-statistics", sellerHandler.RefreshStatistics)

	// Seller-scoped sub-resources
	marketplaceRoutes.GET("/sellers/:id/listings", listingHandler.ListBySeller)
	marketplaceRoutes.GET("/sellers/:id/listings/quota", listingHandler.GetQuota)
	marketplaceRoutes.GET("/sellers/:id/listings/stats", listingHandler.GetSellerStats)
	marketplaceRoutes.DELETE("/sellers/:id/products/:product_id", listingHandler.DeleteByProduct)
	marketplaceRoutes.GET("/sellers/:id/reviews", reviewHandler.ListBySeller)
	marketplaceRoutes.GET("/sellers/:id/rating-summary", reviewHandler.GetRatingSummary)
	marketplaceRoutes.GET("/sellers/:id/messages", messageHandler.ListBySeller)
	marketplaceRoutes.GET("/sellers/:id/messages/unread-count", messageHandler.UnreadCountForSeller)
	marketplaceRoutes.POST("/sellers/:id/messages/read-all", messageHandler.MarkAllReadForSeller)

	// Customer-scoped lookups
	marketplaceRoutes.GET("/customers/:customer_id/seller", sellerHandler.GetByCustomer)
	marketplaceRoutes.GET("/customers/:customer_id/messages", messageHandler.ListByCustomer)
	marketplaceRoutes.GET("/customers/:customer_id/messages/unread-count", messageHandler.UnreadCountForCustomer)
	marketplaceRoutes.POST("/customers/:customer_id/messages/read-all", messageHandler.MarkAllReadForCustomer)

	// Listing routes
	marketplaceRoutes.POST("/listings", listingHandler.Create)
	marketplaceRoutes.GET("/listings/:id", listingHandler.GetByID)
	marketplaceRoutes.PUT("/listings/:id/condition", listingHandler.UpdateCondition)
	marketplaceRoutes.DELETE("/listings/:id", listingHandler.Delete)

	// Review routes
	marketplaceRoutes.POST("/reviews", reviewHandler.Submit)
	marketplaceRoutes.GET("/reviews/:id", reviewHandler.GetByID)
	marketplaceRoutes.PUT("/reviews/:id", reviewHandler.Update)
	marketplaceRoutes.DELETE("/reviews/:id", reviewHandler.Delete)

	// Messaging routes
	marketplaceRoutes.POST("/messages", messageHandler.Send)
	marketplaceRoutes.GET("/messages/:id", messageHandler.GetByID)
	marketplaceRoutes.POST("/messages/:id/reply", messageHandler.Reply)
	marketplaceRoutes.POST("/messages/:id/read", messageHandler.MarkRead)
	marketplaceRoutes.POST("/messages/:id/unread", messageHandler.MarkUnread)
	marketplaceRoutes.DELETE("/messages/:id", messageHandler.Delete)
	marketplaceRoutes.GET("/conversations/:seller_id/:customer_id", messageHandler.GetConversation)
	marketplaceRoutes.POST("/conversations/:seller_id/:customer_id/read", messageHandler.MarkConversationRead)

	// Admin moderation routes
	adminRoutes := marketplaceRoutes.Group("admin", "/admin")
	adminRoutes.GET("/stats", adminHandler.GetStats)
	adminRoutes.GET("/configuration", adminHandler.GetConfiguration)
	adminRoutes.GET("/dashboard", adminHandler.GetDashboard)
	adminRoutes.GET("/sellers/pending", adminHandler.GetPendingSellers)
	adminRoutes.POST("/sellers/bulk-approve", adminHandler.BulkApprove)
	adminRoutes.POST("/sellers/bulk-reject", adminHandler.BulkReject)
	adminRoutes.POST("/sellers/:id/approve", adminHandler.ApproveSeller)
	adminRoutes.GET("/sellers/:id/dashboard", adminHandler.GetSellerDashboard)
	adminRoutes.GET("/sellers/:id/activity", adminHandler.GetSellerActivity)
	adminRoutes.POST("/sellers/:id/reject", adminHandler.RejectSeller)
	adminRoutes.POST("/sellers/:id/status", adminHandler.UpdateSellerStatus)
	adminRoutes.GET("/listings/pending", listingHandler.ListPending)
	adminRoutes.POST("/listings/bulk-approve", listingHandler.BulkApprove)
	adminRoutes.POST("/listings/bulk-reject", listingHandler.BulkReject)
	adminRoutes.POST("/listings/:id/approve", listingHandler.Approve)
	adminRoutes.POST("/listings/:id/reject", listingHandler.Reject)
	adminRoutes.GET("/reviews/pending", reviewHandler.ListPending)
	adminRoutes.POST("/reviews/bulk-approve", reviewHandler.BulkApprove)
	adminRoutes.POST("/reviews/bulk-unapprove", reviewHandler.BulkUnapprove)
	adminRoutes.POST("/reviews/:id/approve", reviewHandler.Approve)
	adminRoutes.POST("/reviews/:id/unapprove", reviewHandler.Unapprove)

	r.Register(marketplaceRoutes)

	// Register system routes
	systemHandler := handler.NewSystemHandler()
	systemRoutes := router.NewDomainGroup("system", "/system")
	systemRoutes.GET("/info", systemHandler.GetSystemInfo)
	systemRoutes.GET("/ping", systemHandler.Ping)
	r.Register(systemRoutes)

	// Setup routes
	r.Setup()

	// Also keep a simple ping at root API level for basic health checks
	engine.GET("/api/v1/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	// Create HTTP server with config
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// healthHandler returns a handler for health check endpoints
func healthHandler(db *persistence.Database, _ *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		reqLog := logger.GetGinLogger(c)
		if err := db.Ping(); err != nil {
			reqLog.Warn("Health check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"time":     time.Now().Format(time.RFC3339),
				"database": "error",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"database": "ok",
		})
	}
}
