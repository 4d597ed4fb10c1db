package settings

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dev-arham/ecommerce-server/pkg/db/models"
	"github.com/dev-arham/ecommerce-server/pkg/enums"
	pkgerrors "github.com/dev-arham/ecommerce-server/pkg/errors"
)

type fakeRepository struct {
	firstFn  func(ctx context.Context) (*models.Settings, error)
	createFn func(ctx context.Context, settings *models.Settings) error
	updateFn func(ctx context.Context, settings *models.Settings) error
}

func (f *fakeRepository) First(ctx context.Context) (*models.Settings, error) {
	if f.firstFn != nil {
		return f.firstFn(ctx)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepository) Create(ctx context.Context, settings *models.Settings) error {
	if f.createFn != nil {
		return f.createFn(ctx, settings)
	}
	return nil
}

func (f *fakeRepository) Update(ctx context.Context, settings *models.Settings) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, settings)
	}
	return nil
}

func newTestService(repo Repository) Service {
	svc, _ := NewService(repo)
	return svc
}

func TestService_GetSeedsDefaultsOnFirstUse(t *testing.T) {
	var seeded *models.Settings
	repo := &fakeRepository{
		createFn: func(ctx context.Context, settings *models.Settings) error {
			seeded = settings
			return nil
		},
	}

	svc := newTestService(repo)
	settings, err := svc.Get(context.Background())
	if err != nil {
		t.Fatalf("unexpected get error: %v", err)
	}
	if seeded == nil {
		t.Fatal("expected defaults seeded")
	}
	if settings.AppName != "EWA Dash" || settings.Currency != "USD" {
		t.Fatalf("unexpected defaults %+v", settings)
	}
	if !settings.IsActive {
		t.Fatal("expected defaults active")
	}
}

func TestService_GetReturnsExistingRow(t *testing.T) {
	existing := &models.Settings{AppName: "Shop Admin"}
	created := false
	repo := &fakeRepository{
		firstFn: func(ctx context.Context) (*models.Settings, error) {
			return existing, nil
		},
		createFn: func(ctx context.Context, settings *models.Settings) error {
			created = true
			return nil
		},
	}

	svc := newTestService(repo)
	settings, err := svc.Get(context.Background())
	if err != nil {
		t.Fatalf("unexpected get error: %v", err)
	}
	if settings.AppName != "Shop Admin" {
		t.Fatalf("expected existing row, got %+v", settings)
	}
	if created {
		t.Fatal("existing row must not trigger seeding")
	}
}

func TestService_PublicExcludesServerURL(t *testing.T) {
	repo := &fakeRepository{
		firstFn: func(ctx context.Context) (*models.Settings, error) {
			return &models.Settings{
				AppName:        "Shop Admin",
				ServerURL:      "https://internal.example.com",
				Currency:       "USD",
				CurrencySymbol: "$",
				SupportEmail:   "help@example.com",
				IsActive:       true,
			}, nil
		},
	}

	svc := newTestService(repo)
	view, err := svc.Public(context.Background())
	if err != nil {
		t.Fatalf("unexpected public error: %v", err)
	}
	if view.AppName != "Shop Admin" || view.SupportEmail != "help@example.com" {
		t.Fatalf("unexpected public view %+v", view)
	}
	if !view.IsActive {
		t.Fatal("expected active flag carried over")
	}
}

func TestService_CurrencyReturnsDisplayConfig(t *testing.T) {
	repo := &fakeRepository{
		firstFn: func(ctx context.Context) (*models.Settings, error) {
			return &models.Settings{
				Currency:         "PKR",
				CurrencySymbol:   "Rs",
				CurrencyPosition: enums.CurrencyPositionAfter,
			}, nil
		},
	}

	svc := newTestService(repo)
	view, err := svc.Currency(context.Background())
	if err != nil {
		t.Fatalf("unexpected currency error: %v", err)
	}
	if view.Currency != "PKR" || view.CurrencySymbol != "Rs" || view.CurrencyPosition != enums.CurrencyPositionAfter {
		t.Fatalf("unexpected currency view %+v", view)
	}
}

func TestService_ResetRestoresDefaultsKeepingID(t *testing.T) {
	existingID := uuid.New()
	var updated *models.Settings
	repo := &fakeRepository{
		firstFn: func(ctx context.Context) (*models.Settings, error) {
			return &models.Settings{
				ID:       existingID,
				AppName:  "Customized",
				Currency: "PKR",
			}, nil
		},
		updateFn: func(ctx context.Context, settings *models.Settings) error {
			updated = settings
			return nil
		},
	}

	svc := newTestService(repo)
	row, err := svc.Reset(context.Background())
	if err != nil {
		t.Fatalf("unexpected reset error: %v", err)
	}
	if updated == nil {
		t.Fatal("expected update persisted")
	}
	if row.ID != existingID {
		t.Fatal("expected reset to keep the row id")
	}
	if row.AppName != "EWA Dash" || row.Currency != "USD" {
		t.Fatalf("expected defaults restored, got %+v", row)
	}
}

func TestService_UpdateAppliesPartialFields(t *testing.T) {
	existing := &models.Settings{
		AppName:          "EWA Dash",
		Currency:         "USD",
		CurrencySymbol:   "$",
		CurrencyPosition: enums.CurrencyPositionBefore,
	}
	repo := &fakeRepository{
		firstFn: func(ctx context.Context) (*models.Settings, error) {
			return existing, nil
		},
	}

	svc := newTestService(repo)
	currency := "pkr"
	symbol := "Rs"
	position := enums.CurrencyPositionAfter
	updated, err := svc.Update(context.Background(), UpdateInput{
		Currency:         &currency,
		CurrencySymbol:   &symbol,
		CurrencyPosition: &position,
	})
	if err != nil {
		t.Fatalf("unexpected update error: %v", err)
	}
	if updated.Currency != "PKR" {
		t.Fatalf("expected uppercased currency, got %q", updated.Currency)
	}
	if updated.AppName != "EWA Dash" {
		t.Fatal("expected untouched fields preserved")
	}
	if updated.CurrencyPosition != enums.CurrencyPositionAfter {
		t.Fatal("expected currency position applied")
	}
}

func TestService_UpdateRejectsBadCurrency(t *testing.T) {
	repo := &fakeRepository{
		firstFn: func(ctx context.Context) (*models.Settings, error) {
			return &models.Settings{}, nil
		},
	}

	svc := newTestService(repo)
	currency := "DOLLARS"
	_, err := svc.Update(context.Background(), UpdateInput{Currency: &currency})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestService_UpdateRequiresAppName(t *testing.T) {
	repo := &fakeRepository{
		firstFn: func(ctx context.Context) (*models.Settings, error) {
			return &models.Settings{AppName: "EWA Dash"}, nil
		},
	}

	svc := newTestService(repo)
	empty := "  "
	_, err := svc.Update(context.Background(), UpdateInput{AppName: &empty})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}
