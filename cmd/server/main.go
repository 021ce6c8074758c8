package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	catalogapp "github.com/tradegate/backend/internal/application/catalog"
	identityapp "github.com/tradegate/backend/internal/application/identity"
	"github.com/tradegate/backend/internal/application/importer"
	tradeapp "github.com/tradegate/backend/internal/application/trade"
	"github.com/tradegate/backend/internal/infrastructure/auth"
	"github.com/tradegate/backend/internal/infrastructure/config"
	"github.com/tradegate/backend/internal/infrastructure/logger"
	"github.com/tradegate/backend/internal/infrastructure/persistence"
	"github.com/tradegate/backend/internal/interfaces/http/handler"
	"github.com/tradegate/backend/internal/interfaces/http/middleware"
	"github.com/tradegate/backend/internal/interfaces/http/router"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
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

	log.Info("Starting TradeGate Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Initialize database connection
	db, err := persistence.NewDatabase(&cfg.Database)
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
	seasonRepo := persistence.NewGormSeasonRepository(db.DB)
	headingRepo := persistence.NewGormHeadingRepository(db.DB)
	hsCodeRepo := persistence.NewGormHSCodeRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)
	orderRepo := persistence.NewGormRegisteredOrderRepository(db.DB)
	txScope := persistence.NewGormTransactionScope(db.DB)

	// Initialize application services
	jwtService := auth.NewJWTService(cfg.JWT)
	authService := identityapp.NewAuthService(userRepo, jwtService, log)
	seasonService := catalogapp.NewSeasonService(seasonRepo)
	headingService := catalogapp.NewHeadingService(headingRepo, seasonRepo)
	hsCodeService := catalogapp.NewHSCodeService(hsCodeRepo, seasonRepo, headingRepo)
	importService := importer.NewService(txScope, log)
	orderService := tradeapp.NewOrderService(orderRepo, hsCodeRepo, userRepo)

	// Initialize HTTP handlers
	healthHandler := handler.NewHealthHandler(db)
	authHandler := handler.NewAuthHandler(authService)
	seasonHandler := handler.NewSeasonHandler(seasonService)
	headingHandler := handler.NewHeadingHandler(headingService)
	hsCodeHandler := handler.NewHSCodeHandler(hsCodeService)
	importHandler := handler.NewImportHandler(importService, cfg.Import.MaxUploadSize)
	orderHandler := handler.NewOrderHandler(orderService)
	marketplaceHandler := handler.NewMarketplaceHandler(orderService)

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()

	// Configure trusted proxies
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())
	if cfg.HTTP.MaxBodySize > 0 {
		engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))
	}

	// Configure CORS from config
	corsConfig := middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))

	// Health check endpoint (outside API versioning)
	engine.GET("/health", healthHandler.Check)

	// Setup API routes using router
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))

	// Apply JWT authentication to API routes. Marketplace and the
	// public auth endpoints stay open; everything else needs a token.
	jwtConfig := middleware.JWTMiddlewareConfig{
		JWTService: jwtService,
		SkipPaths: []string{
			"/api/v1/auth/register",
			"/api/v1/auth/login",
			"/api/v1/auth/refresh",
		},
		SkipPathPrefixes: []string{
			"/api/v1/marketplace",
		},
		Logger: log,
	}
	r.Use(middleware.JWTAuthMiddlewareWithConfig(jwtConfig))

	loadUser := middleware.UserLoader(userRepo)
	adminOnly := middleware.AdminRequired()

	// Identity routes
	authRoutes := router.NewDomainGroup("auth", "/auth")
	authRoutes.POST("/register", authHandler.Register)
	authRoutes.POST("/login", authHandler.Login)
	authRoutes.POST("/refresh", authHandler.Refresh)
	authRoutes.GET("/me", loadUser, authHandler.Me)
	authRoutes.PATCH("/me", loadUser, authHandler.UpdateMe)

	// Classification catalog (seasons, headings, HS codes) mounted
	// directly under the API root.
	// Reads need a valid token, writes need an administrator.
	catalogRoutes := router.NewDomainGroup("catalog", "")
	catalogRoutes.Use(loadUser)

	catalogRoutes.GET("/seasons", seasonHandler.List)
	catalogRoutes.GET("/seasons/:id", seasonHandler.GetByID)
	catalogRoutes.POST("/seasons", adminOnly, seasonHandler.Create)
	catalogRoutes.PUT("/seasons/:id", adminOnly, seasonHandler.Update)
	catalogRoutes.DELETE("/seasons/:id", adminOnly, seasonHandler.Delete)

	catalogRoutes.GET("/headings", headingHandler.List)
	catalogRoutes.GET("/headings/:id", headingHandler.GetByID)
	catalogRoutes.POST("/headings", adminOnly, headingHandler.Create)
	catalogRoutes.PUT("/headings/:id", adminOnly, headingHandler.Update)
	catalogRoutes.DELETE("/headings/:id", adminOnly, headingHandler.Delete)

	catalogRoutes.GET("/hs-codes", hsCodeHandler.List)
	catalogRoutes.GET("/hs-codes/code/:code", hsCodeHandler.GetByCode)
	catalogRoutes.GET("/hs-codes/:id", hsCodeHandler.GetByID)
	catalogRoutes.POST("/hs-codes", adminOnly, hsCodeHandler.Create)
	catalogRoutes.PUT("/hs-codes/:id", adminOnly, hsCodeHandler.Update)
	catalogRoutes.DELETE("/hs-codes/:id", adminOnly, hsCodeHandler.Delete)

	// Spreadsheet imports are administrator-only
	importRoutes := router.NewDomainGroup("import", "/import")
	importRoutes.Use(loadUser, adminOnly)
	importRoutes.POST("/seasons", importHandler.ImportSeasons)
	importRoutes.POST("/headings", importHandler.ImportHeadings)
	importRoutes.POST("/hscodes", importHandler.ImportHSCodes)

	// Registered orders, scoped to the authenticated user
	orderRoutes := router.NewDomainGroup("orders", "/registered-orders")
	orderRoutes.Use(loadUser)
	orderRoutes.POST("", orderHandler.Create)
	orderRoutes.GET("", orderHandler.List)
	orderRoutes.GET("/:token", orderHandler.GetByToken)
	orderRoutes.PUT("/:token", orderHandler.Update)
	orderRoutes.PATCH("/:token", orderHandler.Update)
	orderRoutes.DELETE("/:token", orderHandler.Delete)
	orderRoutes.PATCH("/:token/verify", adminOnly, orderHandler.Verify)

	// Public marketplace of verified orders
	marketplaceRoutes := router.NewDomainGroup("marketplace", "/marketplace")
	marketplaceRoutes.GET("/orders", marketplaceHandler.List)
	marketplaceRoutes.GET("/orders/:token", marketplaceHandler.Detail)

	r.Register(authRoutes).
		Register(catalogRoutes).
		Register(importRoutes).
		Register(orderRoutes).
		Register(marketplaceRoutes)

	r.Setup()

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
