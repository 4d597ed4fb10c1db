package routes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

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
	"github.com/dev-arham/ecommerce-server/pkg/config"
	"github.com/dev-arham/ecommerce-server/pkg/db/models"
	"github.com/dev-arham/ecommerce-server/pkg/logger"
	"github.com/dev-arham/ecommerce-server/pkg/pagination"
	"github.com/rs/zerolog"
)

type stubCategories struct {
	categories.Service
}

func (stubCategories) List(ctx context.Context, query categories.ListQuery) ([]models.Category, pagination.Envelope, error) {
	return []models.Category{{ID: uuid.New(), Name: "Snacks"}}, pagination.NewEnvelope(1, 1, 10), nil
}

type stubCoupons struct {
	coupons.Service
}

func (stubCoupons) Check(ctx context.Context, input coupons.CheckInput) (*coupons.CheckResult, error) {
	return &coupons.CheckResult{
		Applicable: true,
		Message:    coupons.MsgAllOrders,
		Coupon:     &models.Coupon{Code: input.Code, DiscountAmount: decimal.NewFromInt(10)},
	}, nil
}

type stubMedia struct {
	media.Service
}

func (stubMedia) RootDir() string {
	return "public"
}

type stubSettings struct {
	settings.Service
}

func (stubSettings) Public(ctx context.Context) (*settings.PublicView, error) {
	return &settings.PublicView{AppName: "EWA Dash", Currency: "USD"}, nil
}

func testRouter(t *testing.T) http.Handler {
	t.Helper()
	cfg := &config.Config{}
	cfg.JWT = config.JWTConfig{
		Secret:            "router-test-secret",
		Issuer:            "ecommerce-server-test",
		ExpirationMinutes: 15,
	}
	cfg.Media.MaxUploadMB = 5

	return NewRouter(Deps{
		Config:        cfg,
		Logger:        logger.New(logger.Options{ServiceName: "routes-test", Level: zerolog.ErrorLevel}),
		Categories:    stubCategories{},
		Brands:        struct{ brands.Service }{},
		Products:      struct{ products.Service }{},
		Posters:       struct{ posters.Service }{},
		Coupons:       stubCoupons{},
		Orders:        struct{ orders.Service }{},
		Users:         struct{ users.Service }{},
		Notifications: struct{ notifications.Service }{},
		Settings:      stubSettings{},
		Media:         stubMedia{},
	})
}

func TestRouterServesPublicCategoryList(t *testing.T) {
	router := testRouter(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/categories", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "Snacks") {
		t.Fatalf("expected category payload, got %s", w.Body.String())
	}
}

func TestRouterRejectsUnauthenticatedMutation(t *testing.T) {
	router := testRouter(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/categories", strings.NewReader(`{"name":"Snacks"}`)))

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d: %s", w.Code, w.Body.String())
	}
}

func TestRouterServesPublicCouponCheck(t *testing.T) {
	router := testRouter(t)

	body := strings.NewReader(`{"couponCode":"SAVE10","purchaseAmount":"100"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/couponCodes/check-coupon", body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), coupons.MsgAllOrders) {
		t.Fatalf("expected applicable message, got %s", w.Body.String())
	}
}

func TestRouterServesPublicSettingsSubset(t *testing.T) {
	router := testRouter(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/settings/public", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "EWA Dash") {
		t.Fatalf("expected public settings, got %s", w.Body.String())
	}
}

func TestRouterGuardsAdminSettingsMutation(t *testing.T) {
	router := testRouter(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/settings/reset", nil))

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d: %s", w.Code, w.Body.String())
	}
}
