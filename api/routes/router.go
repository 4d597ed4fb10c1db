package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/dev-arham/ecommerce-server/api/controllers"
	"github.com/dev-arham/ecommerce-server/api/middleware"
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
	redisclient "github.com/dev-arham/ecommerce-server/pkg/redis"
	stripeclient "github.com/dev-arham/ecommerce-server/pkg/stripe"
)

// Deps carries everything the router wires into handlers. Optional clients
// (Stripe, metrics) may be nil; the affected routes degrade gracefully.
type Deps struct {
	Config   *config.Config
	Logger   *logger.Logger
	DB       *db.Client
	Redis    *redisclient.Client
	Sessions session.AccessSessionChecker
	Resolver middleware.AccountResolver

	Metrics  *metrics.HTTPMetrics
	Registry *prometheus.Registry

	Categories    categories.Service
	Brands        brands.Service
	Products      products.Service
	Posters       posters.Service
	Coupons       coupons.Service
	Orders        orders.Service
	Users         users.Service
	Notifications notifications.Service
	Settings      settings.Service
	Media         media.Service
	Stripe        *stripeclient.Client
}

// NewRouter assembles the full HTTP surface under /api/v1, plus the health,
// metrics, and static image endpoints.
func NewRouter(d Deps) http.Handler {
	cfg := d.Config
	logg := d.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(d.Metrics),
	)

	auth := middleware.Auth(cfg.JWT, d.Sessions, d.Resolver, logg)
	admin := middleware.RequireAdmin(logg)
	loginThrottle := middleware.LoginThrottle(cfg.LoginLimit, d.Redis, logg)

	r.Get("/health", controllers.Health(d.DB, d.Redis, logg))
	if d.Registry != nil {
		r.Method(http.MethodGet, "/metrics", metrics.ScrapeHandler(d.Registry))
	}
	if d.Media != nil {
		fs := http.FileServer(http.Dir(d.Media.RootDir()))
		r.Handle(media.PublicPathPrefix+"/*", http.StripPrefix(media.PublicPathPrefix+"/", fs))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/categories", func(r chi.Router) {
			r.Get("/", controllers.CategoryList(d.Categories, logg))
			r.Get("/{id}", controllers.CategoryGet(d.Categories, logg))
			r.Group(func(r chi.Router) {
				r.Use(auth)
				r.Post("/", controllers.CategoryCreate(d.Categories, logg))
				r.Put("/{id}", controllers.CategoryUpdate(d.Categories, logg))
				r.Delete("/{id}", controllers.CategoryDelete(d.Categories, logg))
			})
		})

		r.Route("/brands", func(r chi.Router) {
			r.Get("/", controllers.BrandList(d.Brands, logg))
			r.Get("/{id}", controllers.BrandGet(d.Brands, logg))
			r.Group(func(r chi.Router) {
				r.Use(auth)
				r.Post("/", controllers.BrandCreate(d.Brands, logg))
				r.Put("/{id}", controllers.BrandUpdate(d.Brands, logg))
				r.Delete("/{id}", controllers.BrandDelete(d.Brands, logg))
			})
		})

		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ProductList(d.Products, logg))
			r.Get("/{id}", controllers.ProductGet(d.Products, logg))
			r.Group(func(r chi.Router) {
				r.Use(auth)
				r.Post("/", controllers.ProductCreate(d.Products, logg))
				r.Put("/{id}", controllers.ProductUpdate(d.Products, logg))
				r.Delete("/{id}", controllers.ProductDelete(d.Products, logg))
			})
		})

		r.Route("/posters", func(r chi.Router) {
			r.Get("/", controllers.PosterList(d.Posters, logg))
			r.Get("/{id}", controllers.PosterGet(d.Posters, logg))
			r.Group(func(r chi.Router) {
				r.Use(auth)
				r.Post("/", controllers.PosterCreate(d.Posters, logg))
				r.Put("/{id}", controllers.PosterUpdate(d.Posters, logg))
				r.Delete("/{id}", controllers.PosterDelete(d.Posters, logg))
			})
		})

		r.Route("/couponCodes", func(r chi.Router) {
			r.Get("/", controllers.CouponList(d.Coupons, logg))
			r.Get("/{id}", controllers.CouponGet(d.Coupons, logg))
			r.Post("/check-coupon", controllers.CouponCheck(d.Coupons, logg))
			r.Group(func(r chi.Router) {
				r.Use(auth)
				r.Post("/", controllers.CouponCreate(d.Coupons, logg))
				r.Put("/{id}", controllers.CouponUpdate(d.Coupons, logg))
				r.Delete("/{id}", controllers.CouponDelete(d.Coupons, logg))
			})
		})

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", controllers.OrderList(d.Orders, logg))
			r.Get("/{id}", controllers.OrderGet(d.Orders, logg))
			r.Group(func(r chi.Router) {
				r.Use(auth)
				r.Post("/", controllers.OrderCreate(d.Orders, logg))
				r.Put("/{id}/status", controllers.OrderUpdateStatus(d.Orders, logg))
				r.Delete("/{id}", controllers.OrderDelete(d.Orders, logg))
			})
		})

		r.Route("/users", func(r chi.Router) {
			r.With(loginThrottle).
				Post("/login", controllers.Login(d.Users, cfg.JWT, logg))
			r.Post("/register", controllers.Register(d.Users, logg))
			r.Post("/refresh", controllers.RefreshToken(d.Users, cfg.JWT, logg))
			r.Group(func(r chi.Router) {
				r.Use(auth)
				r.Post("/logout", controllers.Logout(d.Users, logg))
				r.Get("/current-user", controllers.Me(logg))
				r.With(admin).Get("/", controllers.UserList(d.Users, logg))
				r.Get("/{id}", controllers.UserGet(d.Users, logg))
				r.With(admin).Post("/", controllers.UserCreate(d.Users, logg))
				r.Put("/{id}", controllers.UserUpdate(d.Users, logg))
				r.Delete("/{id}", controllers.UserDelete(d.Users, logg))
			})
		})

		r.Route("/notification", func(r chi.Router) {
			r.Use(auth)
			r.Post("/send-notification", controllers.NotificationSend(d.Notifications, logg))
			r.Get("/track-notification/{id}", controllers.NotificationTrack(d.Notifications, logg))
			r.Get("/all-notification", controllers.NotificationList(d.Notifications, logg))
			r.Delete("/delete-notification/{id}", controllers.NotificationDelete(d.Notifications, logg))
		})

		r.Route("/media", func(r chi.Router) {
			r.Use(auth)
			r.Post("/upload", controllers.MediaUpload(d.Media, cfg.Media.MaxUploadMB, logg))
			r.Get("/", controllers.MediaList(d.Media, logg))
			r.Delete("/{filename}", controllers.MediaDelete(d.Media, logg))
		})

		r.Route("/settings", func(r chi.Router) {
			r.Get("/public", controllers.SettingsPublic(d.Settings, logg))
			r.Get("/currency", controllers.SettingsCurrency(d.Settings, logg))
			r.Get("/branding", controllers.SettingsBranding(d.Settings, logg))
			r.With(auth).Get("/", controllers.SettingsGet(d.Settings, logg))
			r.Group(func(r chi.Router) {
				r.Use(auth, admin)
				r.Post("/", controllers.SettingsUpdate(d.Settings, logg))
				r.Put("/", controllers.SettingsUpdate(d.Settings, logg))
				r.Post("/reset", controllers.SettingsReset(d.Settings, logg))
			})
		})

		r.Post("/payment/stripe", controllers.PaymentSheet(d.Stripe, logg))
	})

	return r
}
