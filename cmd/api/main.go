package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "mro-inventory/api/swagger" // swagger docs
	"mro-inventory/internal/config"
	"mro-inventory/internal/database"
	"mro-inventory/internal/handler"
	"mro-inventory/internal/lock"
	"mro-inventory/internal/logger"
	"mro-inventory/internal/metrics"
	"mro-inventory/internal/middleware"
	"mro-inventory/internal/repository"
	"mro-inventory/internal/service"
	"mro-inventory/internal/websocket"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const permCacheTTL = 5 * time.Minute

// @title           MRO Inventory API
// @version         1.0
// @description     Inventory documents, movement ledger and stock positions for maintenance spare parts.
// @host            localhost:8080
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	zlog, err := logger.New(cfg.Log)
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	db, err := database.NewConnection(cfg.Database, zlog)
	if err != nil {
		zlog.Fatal("Database connection failed", zap.Error(err))
	}
	zlog.Info("Connected to PostgreSQL successfully")

	if err := database.Migrate(db); err != nil {
		zlog.Fatal("Database migration failed", zap.Error(err))
	}

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	// Set up WebSocket Hub
	wsHub := websocket.NewHub(zlog.Named("ws"))
	go wsHub.Run(ctx)

	locker, closeLocker := newDocumentLocker(ctx, cfg, zlog)
	defer closeLocker()

	recorder := metrics.NewRecorder()

	// Set up dependencies (Repository -> Service -> Handler)
	auditRepo := repository.NewAuditRepository(db)
	catalogRepo := repository.NewCatalogRepository(db)
	permRepo := repository.NewPermissionRepository(db)
	ledgerRepo := repository.NewLedgerRepository(db)
	stockRepo := repository.NewStockRepository(db)
	txManager := repository.NewTransactionManager(db)

	engine := service.Engine{
		Documents: repository.NewDocumentRepository(db),
		Ledger:    ledgerRepo,
		Stock:     stockRepo,
		Catalog:   catalogRepo,
		Audit:     auditRepo,
		TxManager: txManager,
		Locker:    locker,
		Events:    wsHub,
		Metrics:   recorder,
		Logger:    zlog.Named("inventory"),
	}

	roleService := service.NewRoleService(permRepo, txManager)
	if err := roleService.SeedDefaultRolesAndPermissions(ctx); err != nil {
		zlog.Fatal("Failed to seed roles and permissions", zap.Error(err))
	}

	auditService := service.NewAuditService(auditRepo)
	postingService := service.NewPostingService(engine)
	reversalService := service.NewReversalService(engine, postingService)
	documentService := service.NewDocumentService(engine, auditService)
	catalogService := service.NewCatalogService(catalogRepo, auditRepo, txManager)
	projector := service.NewStockProjector(ledgerRepo, stockRepo, catalogRepo, repository.NewReservationRepository(db))

	auth := middleware.NewAuthorizer([]byte(cfg.JWT.Secret), permRepo, permCacheTTL)

	// Initialize Handlers
	documentHandler := handler.NewDocumentHandler(documentService, postingService, reversalService)
	stockHandler := handler.NewStockHandler(projector)
	catalogHandler := handler.NewCatalogHandler(catalogService)
	auditHandler := handler.NewAuditHandler(auditService)
	roleHandler := handler.NewRoleHandler(roleService)

	// Set up Gin Router
	gin.SetMode(cfg.App.GinMode)
	router := gin.New()
	router.Use(logger.RequestID(), logger.GinMiddleware(zlog), logger.Recovery(zlog), recorder.GinMiddleware())

	// CORS configuration
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.CORS.AllowOrigins
	corsConfig.AllowCredentials = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", "X-Request-ID"}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	router.Use(cors.New(corsConfig))

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/health", healthHandler(db))
	router.GET("/metrics", gin.WrapH(recorder.Handler()))

	// WebSocket endpoint
	router.GET("/ws", func(c *gin.Context) {
		websocket.ServeWs(ctx, wsHub, auth, c)
	})

	// API Routing
	api := router.Group("")
	documentHandler.RegisterRoutes(api, auth)
	stockHandler.RegisterRoutes(api, auth)
	catalogHandler.RegisterRoutes(api, auth)
	auditHandler.RegisterRoutes(api, auth)
	roleHandler.RegisterRoutes(api, auth)

	srv := &http.Server{
		Addr:              ":" + cfg.App.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		zlog.Info("Server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatal("Server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zlog.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zlog.Error("Server forced to shutdown", zap.Error(err))
	}
	stop()
	zlog.Info("Server exited")
}

// newDocumentLocker uses Redis when enabled so that several API instances
// exclude each other; a single instance falls back to an in-process lock.
func newDocumentLocker(ctx context.Context, cfg *config.Config, zlog *zap.Logger) (lock.DocumentLocker, func()) {
	if !cfg.Redis.Enabled {
		zlog.Info("Redis disabled, using in-process document locks")
		return lock.NewLocalLocker(), func() {}
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		zlog.Fatal("Redis connection failed", zap.String("addr", cfg.Redis.Addr), zap.Error(err))
	}
	zlog.Info("Connected to Redis", zap.String("addr", cfg.Redis.Addr))

	return lock.NewRedisLocker(rdb, cfg.Inventory.DocLockTTL), func() { _ = rdb.Close() }
}

func healthHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(c.Request.Context())
		}
		if err != nil {
			logger.FromGin(c).Warn("Health check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "DOWN"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "OK"})
	}
}
