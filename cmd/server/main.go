package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	catalogapp "github.com/procurehub/backend/internal/application/catalog"
	identityapp "github.com/procurehub/backend/internal/application/identity"
	orderapp "github.com/procurehub/backend/internal/application/order"
	"github.com/procurehub/backend/internal/domain/identity"
	"github.com/procurehub/backend/internal/infrastructure/auth"
	"github.com/procurehub/backend/internal/infrastructure/cache"
	"github.com/procurehub/backend/internal/infrastructure/config"
	"github.com/procurehub/backend/internal/infrastructure/event"
	"github.com/procurehub/backend/internal/infrastructure/logger"
	"github.com/procurehub/backend/internal/infrastructure/notify"
	"github.com/procurehub/backend/internal/infrastructure/persistence"
	"github.com/procurehub/backend/internal/interfaces/http/handler"
	"github.com/procurehub/backend/internal/interfaces/http/middleware"
	"github.com/procurehub/backend/internal/interfaces/http/router"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting ProcureHub Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Database
	gormLog := logger.NewGormLogger(log)
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Throttle counter store; falls back to process-local counters when
	// redis is unreachable
	var counterStore cache.CounterStore
	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		log.Warn("Redis unavailable, using in-memory throttle counters", zap.Error(err))
		counterStore = cache.NewInMemoryCounterStore()
	} else {
		defer func() {
			_ = redisClient.Close()
		}()
		counterStore = cache.NewRedisCounterStore(redisClient, "throttle:")
		log.Info("Redis connected successfully")
	}

	// Event pipeline: bus + serializer + transactional outbox
	serializer := event.NewEventSerializer()
	event.RegisterAllEvents(serializer)

	eventBus := event.NewInMemoryEventBus(log)
	outboxPublisher := event.NewOutboxPublisher(serializer)
	outboxRepo := event.NewGormOutboxRepository(db.DB)

	processorCfg := event.DefaultOutboxProcessorConfig()
	processorCfg.BatchSize = cfg.Event.BatchSize
	processorCfg.PollInterval = cfg.Event.PollInterval
	processorCfg.CleanupEnabled = cfg.Event.CleanupEnabled
	processorCfg.CleanupRetention = cfg.Event.CleanupRetention
	outboxProcessor := event.NewOutboxProcessor(outboxRepo, eventBus, serializer, processorCfg, log)

	// Repositories
	shopRepo := persistence.NewGormShopRepository(db.DB)
	categoryRepo := persistence.NewGormCategoryRepository(db.DB)
	listingRepo := persistence.NewGormListingRepository(db.DB)
	cartRepo := persistence.NewGormCartRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB, outboxPublisher)
	contactRepo := persistence.NewGormContactRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)

	catalogScope := persistence.NewGormCatalogTransactionScope(db.DB, outboxPublisher)
	orderScope := persistence.NewGormOrderTransactionScope(db.DB, outboxPublisher)

	// Application services
	importService := catalogapp.NewImportService(catalogScope, log)
	exportService := catalogapp.NewExportService(shopRepo, categoryRepo, listingRepo)
	queryService := catalogapp.NewQueryService(shopRepo, categoryRepo, listingRepo)
	shopService := catalogapp.NewShopService(shopRepo)
	shopService.SetEventPublisher(eventBus)
	cartService := orderapp.NewCartService(cartRepo, listingRepo)
	orderService := orderapp.NewOrderService(orderScope, orderRepo, shopRepo, contactRepo, log)
	contactService := identityapp.NewContactService(contactRepo)

	// Event subscribers
	notifier := notify.NewLogNotifier(log)
	notificationHandler := orderapp.NewOrderNotificationHandler(notifier, userRepo, log)
	eventBus.Subscribe(notificationHandler, notificationHandler.EventTypes()...)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := eventBus.Start(ctx); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}
	if cfg.Event.ProcessorEnabled {
		if err := outboxProcessor.Start(ctx); err != nil {
			log.Fatal("Failed to start outbox processor", zap.Error(err))
		}
		log.Info("Outbox processor started",
			zap.Int("batch_size", processorCfg.BatchSize),
			zap.Duration("poll_interval", processorCfg.PollInterval),
		)
	}

	// HTTP
	jwtService := auth.NewJWTService(cfg.JWT)
	throttle := middleware.NewThrottleGate(counterStore, cfg.Throttle, log)

	catalogHandler := handler.NewCatalogHandler(queryService)
	partnerHandler := handler.NewPartnerHandler(importService, exportService, shopService, orderService)
	cartHandler := handler.NewCartHandler(cartService)
	orderHandler := handler.NewOrderHandler(orderService)
	contactHandler := handler.NewContactHandler(contactService)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.Use(logger.GinMiddleware(log))
	engine.Use(logger.Recovery(log))

	corsConfig := middleware.DefaultCORSConfig()
	corsConfig.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	corsConfig.AllowMethods = cfg.HTTP.CORSAllowMethods
	corsConfig.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	engine.Use(middleware.CORSWithConfig(corsConfig))

	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	engine.GET("/health", healthHandler(db))

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))

	// Public catalog reads: no authentication, anonymous throttle scope
	catalogRoutes := router.NewDomainGroup("/catalog")
	catalogRoutes.Use(throttle.Middleware(middleware.ScopeAnonymous))
	catalogRoutes.GET("/shops", catalogHandler.ListShops)
	catalogRoutes.GET("/categories", catalogHandler.ListCategories)
	catalogRoutes.GET("/listings", catalogHandler.SearchListings)
	catalogRoutes.GET("/listings/:id", catalogHandler.GetListing)

	authn := []gin.HandlerFunc{
		middleware.JWTAuth(jwtService, log),
		throttle.Middleware(middleware.ScopeAuthenticated),
	}

	// Supplier surface
	partnerRoutes := router.NewDomainGroup("/partner")
	partnerRoutes.Use(authn...)
	partnerRoutes.Use(middleware.RequireRole(identity.RoleSupplier))
	partnerRoutes.POST("/update", partnerHandler.ImportFeed)
	partnerRoutes.GET("/export", partnerHandler.ExportFeed)
	partnerRoutes.GET("/state", partnerHandler.GetShopState)
	partnerRoutes.POST("/state", partnerHandler.SetShopState)
	partnerRoutes.GET("/orders", partnerHandler.ListOrders)
	partnerRoutes.POST("/orders/:id/status", partnerHandler.AdvanceOrderStatus)

	// Customer surface
	cartRoutes := router.NewDomainGroup("/cart")
	cartRoutes.Use(authn...)
	cartRoutes.GET("", cartHandler.Get)
	cartRoutes.POST("/items", cartHandler.UpsertItems)
	cartRoutes.DELETE("/items", cartHandler.RemoveItems)

	orderRoutes := router.NewDomainGroup("/orders")
	orderRoutes.Use(authn...)
	orderRoutes.POST("", orderHandler.Confirm)
	orderRoutes.GET("", orderHandler.List)
	orderRoutes.GET("/:id", orderHandler.Get)

	contactRoutes := router.NewDomainGroup("/contacts")
	contactRoutes.Use(authn...)
	contactRoutes.GET("", contactHandler.List)
	contactRoutes.POST("", contactHandler.Create)
	contactRoutes.PUT("/:id", contactHandler.Update)
	contactRoutes.DELETE("", contactHandler.Delete)

	r.Register(catalogRoutes).
		Register(partnerRoutes).
		Register(cartRoutes).
		Register(orderRoutes).
		Register(contactRoutes)
	r.Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	if cfg.Event.ProcessorEnabled {
		if err := outboxProcessor.Stop(shutdownCtx); err != nil {
			log.Error("Outbox processor shutdown failed", zap.Error(err))
		}
	}
	if err := eventBus.Stop(shutdownCtx); err != nil {
		log.Error("Event bus shutdown failed", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// healthHandler reports process and database health
func healthHandler(db *persistence.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			reqLog := logger.GetGinLogger(c)
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
