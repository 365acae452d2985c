package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	billingapp "github.com/facturio/backend/internal/application/billing"
	directoryapp "github.com/facturio/backend/internal/application/directory"
	printingapp "github.com/facturio/backend/internal/application/printing"
	"github.com/facturio/backend/internal/infrastructure/auth"
	"github.com/facturio/backend/internal/infrastructure/cache"
	"github.com/facturio/backend/internal/infrastructure/config"
	"github.com/facturio/backend/internal/infrastructure/logger"
	"github.com/facturio/backend/internal/infrastructure/persistence"
	infraprinting "github.com/facturio/backend/internal/infrastructure/printing"
	"github.com/facturio/backend/internal/infrastructure/printing/providers"
	"github.com/facturio/backend/internal/infrastructure/scheduler"
	"github.com/facturio/backend/internal/infrastructure/storage"
	"github.com/facturio/backend/internal/interfaces/http/handler"
	"github.com/facturio/backend/internal/interfaces/http/middleware"
	"github.com/facturio/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

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

	log.Info("Starting Facturio Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Initialize database connection with a GORM logger backed by zap
	gormLogLevel := logger.MapGormLogLevel(cfg.Log.Level)
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLogLevel)
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
	clientRepo := persistence.NewGormClientRepository(db.DB)
	companyRepo := persistence.NewGormCompanyRepository(db.DB)
	quotationRepo := persistence.NewGormQuotationRepository(db.DB)
	invoiceRepo := persistence.NewGormInvoiceRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)

	// Initialize application services
	clientService := directoryapp.NewClientService(clientRepo, log)
	companyService := directoryapp.NewCompanyService(companyRepo, log)
	userService := directoryapp.NewUserService(userRepo, log)
	quotationService := billingapp.NewQuotationService(quotationRepo, clientRepo, companyRepo, log)
	invoiceService := billingapp.NewInvoiceService(invoiceRepo, quotationRepo, clientRepo, companyRepo, log)

	// Token validation. Account lifecycle lives in the identity service;
	// this backend only verifies the tokens it issues.
	jwtService := auth.NewJWTService(cfg.JWT)

	// Token blacklist backed by Redis, with an in-memory fallback so a
	// Redis outage does not take the API down with it
	var tokenBlacklist auth.TokenBlacklist
	redisBlacklist, err := auth.NewRedisTokenBlacklist(auth.RedisTokenBlacklistConfig{
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Warn("Redis token blacklist unavailable, falling back to in-memory", zap.Error(err))
		tokenBlacklist = auth.NewInMemoryTokenBlacklist()
	} else {
		tokenBlacklist = redisBlacklist
		defer func() {
			if err := redisBlacklist.Close(); err != nil {
				log.Error("Error closing token blacklist", zap.Error(err))
			}
		}()
	}

	// Document rendering pipeline: templates -> HTML -> PDF
	templateStore, err := infraprinting.NewTemplateStore(&infraprinting.TemplateStoreConfig{})
	if err != nil {
		log.Fatal("Failed to load document templates", zap.Error(err))
	}
	templateEngine := infraprinting.NewTemplateEngine()

	pdfRenderer, err := newPDFRenderer(cfg, log)
	if err != nil {
		log.Fatal("Failed to initialize PDF renderer", zap.Error(err))
	}
	defer func() {
		if err := pdfRenderer.Close(); err != nil {
			log.Error("Error closing PDF renderer", zap.Error(err))
		}
	}()
	log.Info("PDF renderer initialized", zap.String("engine", cfg.Printing.Engine))

	registry := providers.NewDataProviderRegistry()
	registry.Register(providers.NewQuotationProvider(quotationRepo, clientRepo, companyRepo))
	registry.Register(providers.NewInvoiceProvider(invoiceRepo, clientRepo, companyRepo))

	renderOpts := []printingapp.RenderServiceOption{}

	// PDF cache: Redis when reachable, in-memory otherwise
	cacheFactory := cache.NewPDFCacheFactory(cfg.Redis, cache.WithLogger(log))
	pdfCache, err := cacheFactory.CreateCache()
	if err != nil {
		log.Warn("PDF cache unavailable, rendering uncached", zap.Error(err))
	} else {
		renderOpts = append(renderOpts, printingapp.WithPDFCache(pdfCache, cfg.Redis.PDFCacheTTL))
	}

	// Archive rendered documents to object storage when a bucket is configured
	if cfg.Storage.Bucket != "" {
		archive, err := storage.NewS3ObjectStorage(&cfg.Storage,
			storage.WithLogger(log),
			storage.WithPresignExpiration(cfg.Storage.PresignExpiration),
		)
		if err != nil {
			log.Fatal("Failed to initialize object storage", zap.Error(err))
		}
		ensureCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		if err := archive.EnsureBucket(ensureCtx); err != nil {
			cancel()
			log.Fatal("Failed to ensure archive bucket", zap.Error(err))
		}
		cancel()
		renderOpts = append(renderOpts, printingapp.WithArchive(archive))
		log.Info("Document archive enabled", zap.String("bucket", cfg.Storage.Bucket))
	}

	renderService := printingapp.NewRenderService(
		templateStore,
		templateEngine,
		pdfRenderer,
		registry,
		log,
		renderOpts...,
	)

	// Periodic sweep flagging unpaid invoices past their due date
	if cfg.Overdue.SweepEnabled {
		sweeper := scheduler.NewOverdueSweeper(scheduler.OverdueSweeperConfig{
			Interval:   cfg.Overdue.SweepInterval,
			RunOnStart: true,
		}, invoiceService.MarkOverdueInvoices, log)
		if err := sweeper.Start(context.Background()); err != nil {
			log.Fatal("Failed to start overdue sweeper", zap.Error(err))
		}
		defer func() {
			stopCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := sweeper.Stop(stopCtx); err != nil {
				log.Error("Error stopping overdue sweeper", zap.Error(err))
			}
		}()
	}

	// Initialize HTTP handlers
	clientHandler := handler.NewClientHandler(clientService)
	companyHandler := handler.NewCompanyHandler(companyService)
	userHandler := handler.NewUserHandler(userService)
	quotationHandler := handler.NewQuotationHandler(quotationService, invoiceService)
	invoiceHandler := handler.NewInvoiceHandler(invoiceService)
	renderHandler := handler.NewRenderHandler(renderService)
	systemHandler := handler.NewSystemHandler()

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

	corsConfig := middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))

	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	if cfg.HTTP.RateLimitEnabled {
		rateLimiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		engine.Use(middleware.RateLimit(rateLimiter))
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}

	// Health check endpoint (outside API versioning)
	engine.GET("/health", healthHandler(db))

	// JWT authentication middleware shared by all protected route groups
	authMiddleware := middleware.JWTAuthMiddlewareWithConfig(middleware.JWTMiddlewareConfig{
		JWTService:     jwtService,
		TokenBlacklist: tokenBlacklist,
		Logger:         log,
	})

	// Setup API routes
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))

	r.Register(handler.ClientRoutes(clientHandler, authMiddleware)).
		Register(handler.CompanyRoutes(companyHandler, authMiddleware)).
		Register(handler.UserRoutes(userHandler, authMiddleware)).
		Register(handler.QuotationRoutes(quotationHandler, authMiddleware)).
		Register(handler.InvoiceRoutes(invoiceHandler, authMiddleware)).
		Register(handler.RenderRoutes(renderHandler, authMiddleware))

	systemRoutes := router.NewDomainGroup("system", "/system")
	systemRoutes.GET("/info", systemHandler.GetSystemInfo)
	systemRoutes.GET("/ping", systemHandler.Ping)
	r.Register(systemRoutes)

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

// newPDFRenderer builds the renderer selected by configuration. Both engines
// satisfy the PDFRenderer interface used by the render service.
func newPDFRenderer(cfg *config.Config, log *zap.Logger) (infraprinting.PDFRenderer, error) {
	switch cfg.Printing.Engine {
	case "wkhtmltopdf":
		return infraprinting.NewWkhtmltopdfRenderer(&infraprinting.WkhtmltopdfConfig{
			BinaryPath:     cfg.Printing.BinaryPath,
			DefaultTimeout: cfg.Printing.RenderTimeout,
			Logger:         log,
		})
	default:
		return infraprinting.NewChromedpRenderer(&infraprinting.ChromedpConfig{
			DefaultTimeout: cfg.Printing.RenderTimeout,
			Headless:       true,
			DisableGPU:     true,
			NoSandbox:      true,
			Logger:         log,
		})
	}
}

// healthHandler returns a handler for health check endpoints
func healthHandler(db *persistence.Database) gin.HandlerFunc {
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
