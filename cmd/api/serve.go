package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	_ "warehouse/api/swagger" // swagger docs
	"warehouse/internal/cache"
	"warehouse/internal/config"
	"warehouse/internal/database"
	"warehouse/internal/handler"
	"warehouse/internal/metrics"
	"warehouse/internal/middleware"
	"warehouse/internal/repository"
	"warehouse/internal/service"
	"warehouse/internal/websocket"
	"warehouse/pkg/response"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

var autoMigrate bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, db, err := bootstrap()
		if err != nil {
			return err
		}
		defer closeDB(db, log)

		if autoMigrate {
			if err := database.Migrate(db); err != nil {
				return err
			}
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		permCache, closeCache := newPermissionCache(ctx, cfg, log)
		defer closeCache()

		hub := websocket.NewHub(log)
		go hub.Run()
		defer hub.Stop()

		srv := &http.Server{
			Addr:         cfg.Server.Addr(),
			Handler:      newRouter(cfg, log, db, permCache, hub),
			ReadTimeout:  cfg.Server.ReadTimeout,
			WriteTimeout: cfg.Server.WriteTimeout,
		}

		errCh := make(chan error, 1)
		go func() {
			log.WithField("addr", srv.Addr).Info("server listening")
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
			close(errCh)
		}()

		select {
		case err := <-errCh:
			return err
		case <-ctx.Done():
		}

		log.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		log.Info("server exited")
		return nil
	},
}

func init() {
	serveCmd.Flags().BoolVar(&autoMigrate, "migrate", false, "run database migrations before serving")
}

// newPermissionCache uses redis when configured and reachable, otherwise an in-process cache.
func newPermissionCache(ctx context.Context, cfg *config.Config, log *logrus.Logger) (cache.PermissionCache, func()) {
	ttl := cfg.Auth.PermissionCacheTTL
	if cfg.Redis.Addr == "" {
		return cache.NewMemoryPermissionCache(ttl), func() {}
	}

	client, err := cache.NewRedis(ctx, cfg.Redis)
	if err != nil {
		log.WithError(err).Warn("redis unavailable, caching permissions in process")
		return cache.NewMemoryPermissionCache(ttl), func() {}
	}
	log.WithField("addr", cfg.Redis.Addr).Info("permission cache using redis")
	return cache.NewRedisPermissionCache(client, ttl), func() {
		if err := client.Close(); err != nil {
			log.WithError(err).Warn("failed to close redis client")
		}
	}
}

// newRouter wires repositories, services and handlers (Repository -> Service -> Handler).
func newRouter(cfg *config.Config, log *logrus.Logger, db *gorm.DB, permCache cache.PermissionCache, hub *websocket.Hub) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	txManager := repository.NewTransactionManager(db)
	roleRepo := repository.NewRoleRepository(db)
	userRepo := repository.NewUserRepository(db)
	productRepo := repository.NewProductRepository(db)
	warehouseRepo := repository.NewWarehouseRepository(db)
	supplierRepo := repository.NewSupplierRepository(db)
	invoiceRepo := repository.NewInvoiceReceivingRepository(db)
	qcRepo := repository.NewQualityControlRepository(db)

	auditService := service.NewAuditService(repository.NewAuditRepository(db), log)
	notificationService := service.NewNotificationService(repository.NewNotificationRepository(db), hub, log)
	inventoryService := service.NewInventoryService(repository.NewInventoryRepository(db), productRepo, warehouseRepo, txManager, auditService, log)
	qcService := service.NewQualityControlService(
		qcRepo, repository.NewQualityControlStatsRepository(db), invoiceRepo, productRepo, userRepo,
		txManager, auditService, notificationService, log,
	)
	waService := service.NewWarehouseApprovalService(
		repository.NewWarehouseApprovalRepository(db), repository.NewWarehouseApprovalStatsRepository(db),
		qcRepo, userRepo, inventoryService, txManager, auditService, notificationService, log,
	)

	auth := middleware.NewAuthenticator(cfg.Auth.JWTSecret, roleRepo, permCache, log)

	router := gin.New()
	router.Use(
		middleware.RequestID(),
		middleware.RequestLog(log),
		gin.Recovery(),
		middleware.SecureHeaders(cfg.IsProduction()),
	)

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.CORS.AllowedOrigins
	corsConfig.AllowCredentials = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", middleware.RequestIDHeader}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.ExposeHeaders = []string{middleware.RequestIDHeader, "Content-Disposition"}
	router.Use(cors.New(corsConfig))
	router.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/ws", "/metrics"})))

	router.GET("/health", func(c *gin.Context) {
		if err := database.Ping(db); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "DOWN", "database": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "OK"})
	})
	router.GET("/metrics", gin.WrapH(metrics.Handler()))
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/ws", func(c *gin.Context) {
		websocket.ServeWs(hub, auth, c)
	})

	api := router.Group("")
	api.Use(middleware.NewRateLimiter(cfg.RateLimit).Middleware())
	handler.Register(api, auth,
		handler.NewUserHandler(service.NewUserService(userRepo, roleRepo, auditService, cfg.Auth.JWTSecret, cfg.Auth.TokenTTL), cfg.IsProduction()),
		handler.NewRoleHandler(service.NewRoleService(roleRepo, txManager, permCache)),
		handler.NewCatalogHandler(service.NewCatalogService(productRepo, warehouseRepo, supplierRepo)),
		handler.NewInvoiceReceivingHandler(service.NewInvoiceReceivingService(invoiceRepo, productRepo, supplierRepo, warehouseRepo, txManager, auditService)),
		handler.NewQualityControlHandler(qcService),
		handler.NewWarehouseApprovalHandler(waService),
		handler.NewInventoryHandler(inventoryService),
		handler.NewNotificationHandler(notificationService),
		handler.NewAuditHandler(auditService),
	)

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, "Route not found"))
	})
	return router
}
