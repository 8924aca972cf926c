package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"storefront-bff/config"
	"storefront-bff/internal/delivery/http/middleware"
	v1 "storefront-bff/internal/delivery/http/v1"
	"storefront-bff/internal/domain"
	"storefront-bff/internal/infrastructure/cache"
	"storefront-bff/internal/infrastructure/payments"
	"storefront-bff/internal/infrastructure/pusher"
	memoryrepo "storefront-bff/internal/repository/memory"
	postgresrepo "storefront-bff/internal/repository/postgres"
	redisrepo "storefront-bff/internal/repository/redis"
	"storefront-bff/internal/repository/rest"
	"storefront-bff/internal/usecase"
	pkgcache "storefront-bff/pkg/cache"
	"storefront-bff/pkg/logger"
	"storefront-bff/pkg/storage"
	"storefront-bff/pkg/utils"

	"github.com/NYTimes/gziphandler"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

const serviceName = "storefront-bff"

// Set at build time with -ldflags "-X main.version=..."
var version = "dev"

func main() {
	cfg := config.LoadConfig()
	utils.SetSecret(cfg.JWTSecret)

	// Initialize Logger
	logger.Init(cfg.Env, cfg.LogLevel)
	log := logger.Get()

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	// Initialize Cache (In-Memory)
	// Default expiration 30m, cleanup every 60m
	memCache := cache.NewMemoryCache(30*time.Minute, 60*time.Minute)

	// --- Client State Store ---
	stateRepo, healthChecks, closeState := newStateStore(ctx, cfg, memCache)
	defer closeState()

	// --- Commerce Backend (REST) ---
	backend := rest.NewClient(cfg.BackendURL, cfg.BackendTimeout)
	settingsRepo := rest.NewSettingsRepository(backend)
	shippingRepo := rest.NewShippingRepository(backend)
	couponRepo := rest.NewCouponRepository(backend)
	orderRepo := rest.NewOrderRepository(backend)
	paymentRepo := rest.NewPaymentRepository(backend)
	dashboardRepo := rest.NewDashboardRepository(backend)
	contactRepo := rest.NewContactRepository(backend)

	// --- Modules Initialization ---
	clientState := usecase.NewClientState(stateRepo)
	settingsUC := usecase.NewSettingsUsecase(settingsRepo, memCache, cfg.CacheSettingsTTL)

	cartUC := usecase.NewCartUsecase(clientState, cfg.MaxCartQuantity)
	couponUC := usecase.NewCouponUsecase(couponRepo, clientState)
	shippingUC := usecase.NewShippingUsecase(shippingRepo, clientState)
	orderUC := usecase.NewOrderUsecase(clientState)
	statsUC := usecase.NewStatsUsecase(dashboardRepo, memCache, cfg.CacheDashboardTTL)
	storefrontUC := usecase.NewStorefrontUsecase(settingsUC, contactRepo)

	strategies := map[string]usecase.PaymentStrategy{
		domain.PaymentMethodCard:   usecase.NewCardStrategy(clientState, paymentRepo, orderRepo, settingsUC, payments.Factory(nil)),
		domain.PaymentMethodPayPal: usecase.NewWalletStrategy(orderRepo),
		domain.PaymentMethodCOD:    usecase.NewDeferredStrategy(orderRepo),
	}
	notifier := pusher.NewNotifier(settingsUC)
	checkoutUC := usecase.NewCheckoutUsecase(clientState, couponUC, shippingUC, settingsUC, strategies, notifier)

	// --- Storage Module (R2) ---
	var brandingUC *usecase.BrandingUsecase
	if cfg.R2Enabled() {
		r2Storage, err := storage.NewR2Storage(
			ctx,
			cfg.R2AccountID,
			cfg.R2AccessKeyID,
			cfg.R2AccessKeySecret,
			cfg.R2BucketName,
			cfg.R2PublicURL,
			cfg.R2UploadTimeout,
		)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize R2 Storage")
		}
		brandingUC = usecase.NewBrandingUsecase(settingsUC, r2Storage, utils.ProcessImage)
	} else {
		log.Warn().Msg("R2 storage not configured, logo uploads disabled")
	}

	// --- Handlers ---
	cartHandler := v1.NewCartHandler(cartUC)
	checkoutHandler := v1.NewCheckoutHandler(checkoutUC, couponUC, shippingUC, settingsUC)
	orderHandler := v1.NewOrderHandler(orderUC)
	storefrontHandler := v1.NewStorefrontHandler(storefrontUC)
	adminSettingsHandler := v1.NewAdminSettingsHandler(settingsUC)
	adminDashboardHandler := v1.NewAdminDashboardHandler(statsUC)
	uploadHandler := v1.NewUploadHandler(brandingUC, cfg.MaxUploadSizeMB)
	healthHandler := v1.NewHealthHandler(healthChecks)

	// Set up Router
	mux := http.NewServeMux()

	protected := func(h http.HandlerFunc) http.Handler {
		return middleware.AuthMiddleware(h)
	}
	// Must chain: AuthMiddleware -> AdminMiddleware -> Handler
	admin := func(h http.HandlerFunc) http.Handler {
		return middleware.AuthMiddleware(middleware.AdminMiddleware(h))
	}

	// Storefront (Public)
	mux.HandleFunc("GET /api/v1/footer", storefrontHandler.Footer)
	mux.HandleFunc("GET /api/v1/contact-info", storefrontHandler.ContactInfo)
	mux.HandleFunc("POST /api/v1/contact", storefrontHandler.SendContactMessage)
	mux.HandleFunc("GET /api/v1/payment-options", checkoutHandler.PaymentOptions)

	// Cart & Checkout (Protected)
	mux.Handle("GET /api/v1/cart", protected(cartHandler.GetCart))
	mux.Handle("PUT /api/v1/cart", protected(cartHandler.ReplaceCart))
	mux.Handle("GET /api/v1/shipping-areas", protected(checkoutHandler.ListShippingAreas))
	mux.Handle("GET /api/v1/checkout", protected(checkoutHandler.Summary))
	mux.Handle("PUT /api/v1/checkout/shipping-area", protected(checkoutHandler.SelectShippingArea))
	mux.Handle("POST /api/v1/checkout/coupon", protected(checkoutHandler.ApplyCoupon))
	mux.Handle("POST /api/v1/checkout", protected(checkoutHandler.PlaceOrder))
	mux.Handle("POST /api/v1/checkout/paypal/approve", protected(checkoutHandler.ApprovePayPal))

	// Orders (Protected)
	mux.Handle("GET /api/v1/orders", protected(orderHandler.ListOrders))
	mux.Handle("GET /api/v1/orders/recent", protected(orderHandler.RecentOrder))

	// Admin
	mux.Handle("GET /api/v1/admin/dashboard", admin(adminDashboardHandler.GetDashboard))
	mux.Handle("GET /api/v1/admin/settings", admin(adminSettingsHandler.ListSchemas))
	mux.Handle("POST /api/v1/admin/settings/refresh", admin(adminSettingsHandler.Refresh))
	mux.Handle("GET /api/v1/admin/settings/{resource}", admin(adminSettingsHandler.GetSettings))
	mux.Handle("POST /api/v1/admin/settings/{resource}", admin(adminSettingsHandler.UpdateSettings))
	mux.Handle("POST /api/v1/admin/settings/general/logo", admin(uploadHandler.UploadLogo))

	// Health Check
	mux.HandleFunc("GET /api/v1/health", healthHandler.Health)
	mux.HandleFunc("GET /health", healthHandler.Health) // Support root health check for Load Balancers

	addr := fmt.Sprintf(":%s", cfg.Port)

	// Initialize Rate Limiter with lifecycle management
	// cleanup every minute, TTL 3 minutes
	rateLimiter := middleware.NewRateLimiter(
		ctx,
		rate.Limit(cfg.RateLimitRPS),
		cfg.RateLimitBurst,
		time.Minute,
		3*time.Minute,
	)

	// Apply CORS (with config injection), Request Logger, Rate Limit, and Gzip
	handler := middleware.NewCORSMiddleware(cfg)(mux)
	handler = middleware.RequestLogger(handler)
	handler = rateLimiter.Middleware()(handler)
	handler = gziphandler.GzipHandler(handler)

	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful Shutdown
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	logger.ServiceStart(serviceName, version, cfg.Port)

	// Wait for interrupt signal via channel
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Server shutting down...")

	rateLimiter.Shutdown()
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	logger.ServiceStop(serviceName)
}

// newStateStore opens the configured client state backend. It returns the store, health checks for
// its connection and a close func.
func newStateStore(ctx context.Context, cfg *config.Config, memCache pkgcache.CacheService) (domain.ClientStateRepository, map[string]v1.Pinger, func()) {
	log := logger.Get()
	checks := map[string]v1.Pinger{}

	switch cfg.StateBackend {
	case "postgres":
		pool, err := postgresrepo.NewPgxPool(ctx, cfg)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to database")
		}
		if err := postgresrepo.Migrate(ctx, pool); err != nil {
			log.Fatal().Err(err).Msg("Failed to migrate database")
		}
		log.Info().Msg("Successfully connected to PostgreSQL via pgx")

		repo := postgresrepo.NewStateRepository(pool, postgresrepo.NewTransactionManager(pool), cfg.StateTTL)
		go purgeExpiredState(ctx, repo, time.Hour)

		checks["db"] = pool.Ping
		return repo, checks, pool.Close

	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to Redis")
		}
		log.Info().Str("addr", cfg.RedisAddr).Msg("Successfully connected to Redis")

		checks["redis"] = func(ctx context.Context) error { return client.Ping(ctx).Err() }
		return redisrepo.NewStateRepository(client, cfg.StateTTL), checks, func() { _ = client.Close() }
	}

	log.Info().Msg("Using in-memory client state")
	return memoryrepo.NewStateRepository(memCache, cfg.StateTTL), checks, func() {}
}

func purgeExpiredState(ctx context.Context, repo *postgresrepo.StateRepository, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := repo.Purge(ctx)
			if err != nil {
				logger.Get().Warn().Err(err).Msg("Client state purge failed")
				continue
			}
			if n > 0 {
				logger.Get().Info().Int64("rows", n).Msg("Expired client state purged")
			}
		}
	}
}
