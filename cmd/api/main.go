package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/dev-arham/ecommerce-server/api/routes"
	"github.com/dev-arham/ecommerce-server/internal/brands"
	"github.com/dev-arham/ecommerce-server/internal/categories"
	"github.com/dev-arham/ecommerce-server/internal/coupons"
	"github.com/dev-arham/ecommerce-server/internal/media"
	"github.com/dev-arham/ecommerce-server/internal/notifications"
	"github.com/dev-arham/ecommerce-server/internal/orders"
	"github.com/dev-arham/ecommerce-server/internal/posters"
	"github.com/dev-arham/ecommerce-server/internal/products"
	"github.com/dev-arham/ecommerce-server/internal/settings"
	"github.com/dev-arham/ecommerce-server/internal/users"
	"github.com/dev-arham/ecommerce-server/pkg/auth/session"
	"github.com/dev-arham/ecommerce-server/pkg/config"
	"github.com/dev-arham/ecommerce-server/pkg/db"
	"github.com/dev-arham/ecommerce-server/pkg/logger"
	"github.com/dev-arham/ecommerce-server/pkg/metrics"
	"github.com/dev-arham/ecommerce-server/pkg/migrate"
	"github.com/dev-arham/ecommerce-server/pkg/onesignal"
	redisclient "github.com/dev-arham/ecommerce-server/pkg/redis"
	stripeclient "github.com/dev-arham/ecommerce-server/pkg/stripe"
)

const shutdownTimeout = 15 * time.Second

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
	})

	dbClient, err := db.New(context.Background(), cfg.DB, cfg.FeatureFlags.UseSQLite, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redisclient.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}

	var stripeClient *stripeclient.Client
	if cfg.Stripe.SecretKey != "" {
		stripeClient, err = stripeclient.NewClient(context.Background(), cfg.Stripe, logg)
		if err != nil {
			logg.Error(context.Background(), "failed to initialize stripe", err)
			os.Exit(1)
		}
	} else {
		logg.Warn(context.Background(), "stripe keys absent, payment routes disabled")
	}

	var pushClient *onesignal.Client
	if cfg.OneSignal.AppID != "" && cfg.OneSignal.APIKey != "" {
		pushClient, err = onesignal.NewClient(cfg.OneSignal)
		if err != nil {
			logg.Error(context.Background(), "failed to initialize onesignal", err)
			os.Exit(1)
		}
	} else {
		logg.Warn(context.Background(), "onesignal credentials absent, push delivery disabled")
	}

	gormDB := dbClient.DB()
	categoriesRepo := categories.NewRepository(gormDB)
	brandsRepo := brands.NewRepository(gormDB)
	productsRepo := products.NewRepository(gormDB)
	postersRepo := posters.NewRepository(gormDB)
	couponsRepo := coupons.NewRepository(gormDB)
	ordersRepo := orders.NewRepository(gormDB)
	usersRepo := users.NewRepository(gormDB)
	notificationsRepo := notifications.NewRepository(gormDB)
	settingsRepo := settings.NewRepository(gormDB)

	categoriesService, err := categories.NewService(categoriesRepo)
	exitOnWireError(logg, "categories service", err)
	brandsService, err := brands.NewService(brandsRepo)
	exitOnWireError(logg, "brands service", err)
	productsService, err := products.NewService(productsRepo)
	exitOnWireError(logg, "products service", err)
	postersService, err := posters.NewService(postersRepo)
	exitOnWireError(logg, "posters service", err)
	couponsService, err := coupons.NewService(couponsRepo, productsRepo)
	exitOnWireError(logg, "coupons service", err)
	ordersService, err := orders.NewService(ordersRepo, usersRepo, couponsService)
	exitOnWireError(logg, "orders service", err)
	usersService, err := users.NewService(usersRepo, sessionManager, cfg.JWT, cfg.Password)
	exitOnWireError(logg, "users service", err)
	notificationsService, err := notifications.NewService(notificationsRepo, pushClient)
	exitOnWireError(logg, "notifications service", err)
	settingsService, err := settings.NewService(settingsRepo)
	exitOnWireError(logg, "settings service", err)
	mediaService, err := media.NewService(cfg.Media)
	exitOnWireError(logg, "media service", err)

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	httpMetrics := metrics.NewHTTPMetrics(registry)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.Deps{
			Config:        cfg,
			Logger:        logg,
			DB:            dbClient,
			Redis:         redisClient,
			Sessions:      sessionManager,
			Resolver:      usersService,
			Metrics:       httpMetrics,
			Registry:      registry,
			Categories:    categoriesService,
			Brands:        brandsService,
			Products:      productsService,
			Posters:       postersService,
			Coupons:       couponsService,
			Orders:        ordersService,
			Users:         usersService,
			Notifications: notificationsService,
			Settings:      settingsService,
			Media:         mediaService,
			Stripe:        stripeClient,
		}),
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case sig := <-stop:
		logg.Info(ctx, "shutdown signal received: "+sig.String())
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(ctx, "graceful shutdown failed", err)
			os.Exit(1)
		}
	}
}

func exitOnWireError(logg *logger.Logger, component string, err error) {
	if err == nil {
		return
	}
	logg.Error(context.Background(), "failed to create "+component, err)
	os.Exit(1)
}
