package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	cartapp "github.com/verdantia/storefront/internal/application/cart"
	catalogapp "github.com/verdantia/storefront/internal/application/catalog"
	couponapp "github.com/verdantia/storefront/internal/application/coupon"
	customerapp "github.com/verdantia/storefront/internal/application/customer"
	identityapp "github.com/verdantia/storefront/internal/application/identity"
	orderapp "github.com/verdantia/storefront/internal/application/order"
	promoapp "github.com/verdantia/storefront/internal/application/promotion"
	"github.com/verdantia/storefront/internal/infrastructure/auth"
	"github.com/verdantia/storefront/internal/infrastructure/cache"
	"github.com/verdantia/storefront/internal/infrastructure/config"
	"github.com/verdantia/storefront/internal/infrastructure/logger"
	"github.com/verdantia/storefront/internal/infrastructure/persistence"
	"github.com/verdantia/storefront/internal/infrastructure/telemetry"
	"github.com/verdantia/storefront/internal/interfaces/http/handler"
	"github.com/verdantia/storefront/internal/interfaces/http/middleware"
	"github.com/verdantia/storefront/internal/interfaces/http/router"
)

//	@title			Verdantia Storefront API
//	@version		1.0
//	@description	Sustainable fashion storefront API: catalog, carts, checkout, coupons, wishlists, and promotional display management.

//	@contact.name	API Support
//	@contact.email	support@verdantia.example.com

//	@host		localhost:8080
//	@BasePath	/api/v1

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Bearer token authentication. Format: "Bearer {token}"

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
		_ = logger.Sync(log)
	}()

	log.Info("Starting Verdantia Storefront",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	ctx := context.Background()

	// Telemetry providers: traces, metrics, logs, continuous profiling.
	// Each provider degrades to a no-op when disabled.
	tracerProvider, err := telemetry.NewTracerProvider(ctx, telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize tracer provider", zap.Error(err))
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tracerProvider.Shutdown(shutdownCtx); err != nil {
			log.Error("Error shutting down tracer provider", zap.Error(err))
		}
	}()

	meterProvider, err := telemetry.NewMeterProvider(ctx, telemetry.MetricsConfig{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize meter provider", zap.Error(err))
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := meterProvider.Shutdown(shutdownCtx); err != nil {
			log.Error("Error shutting down meter provider", zap.Error(err))
		}
	}()

	loggerProvider, err := telemetry.NewLoggerProvider(ctx, telemetry.LogsConfig{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize logger provider", zap.Error(err))
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := loggerProvider.Shutdown(shutdownCtx); err != nil {
			log.Error("Error shutting down logger provider", zap.Error(err))
		}
	}()

	// Bridge application logs into OTLP alongside stdout
	if loggerProvider.IsEnabled() {
		otelCore := telemetry.NewZapOTELCore(telemetry.ZapBridgeConfig{
			ServiceName:    cfg.Telemetry.ServiceName,
			LoggerProvider: loggerProvider,
			Level:          zapcore.InfoLevel,
		})
		log = telemetry.NewBridgedLogger(log.Core(), otelCore, zap.AddCaller())
	}

	profiler, err := telemetry.NewProfiler(telemetry.ProfilerConfig{
		Enabled:           cfg.Telemetry.ProfilerEnabled,
		ServerAddress:     cfg.Telemetry.ProfilerAddress,
		ApplicationName:   cfg.Telemetry.ServiceName,
		ProfileCPU:        true,
		ProfileAllocSpace: true,
		ProfileInuseSpace: true,
	}, log)
	if err != nil {
		log.Warn("Continuous profiling unavailable", zap.Error(err))
	} else {
		defer func() {
			if err := profiler.Stop(); err != nil {
				log.Error("Error stopping profiler", zap.Error(err))
			}
		}()
	}

	// Database with zap-backed GORM logging
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
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

	// Query tracing and pool/query metrics on the GORM connection
	dbTracingCfg := telemetry.DefaultDBTracingConfig()
	dbTracingCfg.Enabled = cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled
	if err := telemetry.NewDBTracingPlugin(dbTracingCfg, log).RegisterOtelGorm(db.DB); err != nil {
		log.Warn("Failed to register database tracing", zap.Error(err))
	}

	dbMetrics, err := telemetry.RegisterDBMetrics(db.DB, meterProvider, telemetry.DefaultDBMetricsConfig(), log)
	if err != nil {
		log.Warn("Failed to register database metrics", zap.Error(err))
	}
	if dbMetrics != nil {
		dbMetrics.StartPoolStatsCollection(ctx)
		defer dbMetrics.Stop()
	}

	// Repositories
	categoryRepo := persistence.NewGormCategoryRepository(db.DB)
	brandRepo := persistence.NewGormBrandRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	cartRepo := persistence.NewGormCartRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	couponRepo := persistence.NewGormCouponRepository(db.DB)
	customerRepo := persistence.NewGormCustomerRepository(db.DB)
	wishlistRepo := persistence.NewGormWishlistRepository(db.DB)
	promotionRepo := persistence.NewGormPromotionRepository(db.DB)
	adminUserRepo := persistence.NewGormAdminUserRepository(db.DB)

	// Promotion throttle stores: Redis-backed, in-memory fallback
	storeFactory := cache.NewPromotionStoreFactory(
		cache.RedisConfig{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		},
		cfg.Promotion.ImpressionTTL,
		cfg.Promotion.SessionTTL,
		cache.WithLogger(log),
	)
	impressionStore, sessionStore, err := storeFactory.CreateStores()
	if err != nil {
		log.Fatal("Failed to create promotion stores", zap.Error(err))
	}

	// Token blacklist shares the Redis instance; degrade to process-local
	// revocation when Redis is down
	var blacklist auth.TokenBlacklist
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Warn("Redis unavailable, using in-memory token blacklist", zap.Error(err))
		blacklist = auth.NewInMemoryTokenBlacklist()
	} else {
		blacklist = auth.NewRedisTokenBlacklist(redisClient)
	}

	// Application services
	jwtService := auth.NewJWTService(cfg.JWT)
	authService := identityapp.NewAuthService(adminUserRepo, jwtService)
	userService := identityapp.NewUserService(adminUserRepo)
	categoryService := catalogapp.NewCategoryService(categoryRepo, productRepo)
	brandService := catalogapp.NewBrandService(brandRepo, productRepo)
	productService := catalogapp.NewProductService(productRepo, categoryRepo, brandRepo)
	cartService := cartapp.NewCartService(cartRepo, productRepo)
	couponService := couponapp.NewCouponService(couponRepo)
	orderService := orderapp.NewOrderService(orderRepo, cartRepo, productRepo, couponRepo, persistence.NewCheckoutTransactor(db), orderapp.ShippingPolicy{
		FlatFee:       decimal.NewFromFloat(cfg.Shipping.FlatFee),
		FreeThreshold: decimal.NewFromFloat(cfg.Shipping.FreeThreshold),
	})
	customerService := customerapp.NewCustomerService(customerRepo, wishlistRepo, productRepo)
	promotionService := promoapp.NewPromotionService(promotionRepo)
	evaluator := promoapp.NewEvaluator(promotionRepo, impressionStore, sessionStore)

	// Business-level metrics (orders, carts, promotion impressions)
	var businessMetrics *telemetry.BusinessMetrics
	if meterProvider.IsEnabled() {
		businessMetrics, err = telemetry.NewBusinessMetrics(telemetry.BusinessMetricsConfig{
			Meter:         meterProvider.Meter("storefront.business"),
			Logger:        log,
			StoreProvider: telemetry.NewGormStoreMetricsProvider(db.DB),
		})
		if err != nil {
			log.Warn("Business metrics unavailable", zap.Error(err))
		} else {
			businessMetrics.StartPeriodicCollection(ctx, 5*time.Minute)
			defer businessMetrics.Stop()
		}
	}

	handlers := &router.Handlers{
		System:    handler.NewSystemHandler(db),
		Auth:      handler.NewAuthHandler(authService, blacklist),
		User:      handler.NewUserHandler(userService),
		Category:  handler.NewCategoryHandler(categoryService),
		Brand:     handler.NewBrandHandler(brandService),
		Product:   handler.NewProductHandler(productService),
		Cart:      handler.NewCartHandler(cartService),
		Order:     handler.NewOrderHandler(orderService),
		Coupon:    handler.NewCouponHandler(couponService),
		Customer:  handler.NewCustomerHandler(customerService, orderService),
		Promotion: handler.NewPromotionHandler(promotionService, evaluator),
	}

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	middleware.SetupValidator()

	engine := gin.New()

	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Middleware stack, outermost first:
	// request id -> recovery -> access log -> tracing/metrics/profiling ->
	// security headers -> CORS -> body limit -> client token -> rate limit
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))

	if cfg.Telemetry.Enabled {
		engine.Use(middleware.TracingWithConfig(middleware.TracingConfig{
			ServiceName: cfg.Telemetry.ServiceName,
			Enabled:     true,
		}))
		engine.Use(middleware.HTTPMetrics(middleware.HTTPMetricsConfig{
			MeterProvider: meterProvider,
			ServiceName:   cfg.Telemetry.ServiceName,
			Enabled:       true,
		}))
	}
	if cfg.Telemetry.ProfilerEnabled {
		engine.Use(middleware.Profiling())
	}

	engine.Use(middleware.Secure())
	engine.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))
	engine.Use(middleware.ClientToken())

	if cfg.HTTP.RateLimitEnabled {
		rateLimiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		engine.Use(middleware.RateLimit(rateLimiter))
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}

	router.RegisterHealthRoutes(engine, handlers.System)

	engine.GET("/swagger/*any",
		middleware.SwaggerProtection(middleware.SwaggerConfig{
			Enabled:    cfg.Swagger.Enabled,
			AllowedIPs: cfg.Swagger.AllowedIPs,
		}),
		ginSwagger.WrapHandler(swaggerFiles.Handler),
	)

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Register(router.StorefrontRoutes(handlers))
	r.Register(router.AdminRoutes(handlers, router.AuthDeps{
		JWTService: jwtService,
		Blacklist:  blacklist,
	}))
	r.Setup()

	// Periodic cart abandonment sweep
	sweepCtx, cancelSweep := context.WithCancel(ctx)
	defer cancelSweep()
	go runCartSweep(sweepCtx, cartService, businessMetrics, cfg.Cart, log)

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

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// runCartSweep marks carts abandoned after cfg.StaleAfter of inactivity so
// they stop counting as open and show up in abandonment metrics.
func runCartSweep(
	ctx context.Context,
	carts *cartapp.CartService,
	metrics *telemetry.BusinessMetrics,
	cfg config.CartConfig,
	log *zap.Logger,
) {
	ticker := time.NewTicker(cfg.SweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			cutoff := time.Now().Add(-cfg.StaleAfter)
			swept, err := carts.SweepStale(ctx, cutoff, cfg.SweepLimit)
			if err != nil {
				log.Error("Cart abandonment sweep failed", zap.Error(err))
				continue
			}
			if swept > 0 {
				log.Info("Swept abandoned carts", zap.Int("count", swept))
				if metrics != nil {
					metrics.RecordCartsAbandoned(ctx, int64(swept))
				}
			}
		}
	}
}
