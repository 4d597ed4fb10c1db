package settings

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/dev-arham/ecommerce-server/pkg/db"
	"github.com/dev-arham/ecommerce-server/pkg/db/models"
	"github.com/dev-arham/ecommerce-server/pkg/enums"
	pkgerrors "github.com/dev-arham/ecommerce-server/pkg/errors"
)

// Service defines operations on the single application settings row.
type Service interface {
	Get(ctx context.Context) (*models.Settings, error)
	Public(ctx context.Context) (*PublicView, error)
	Currency(ctx context.Context) (*CurrencyView, error)
	Update(ctx context.Context, input UpdateInput) (*models.Settings, error)
	Reset(ctx context.Context) (*models.Settings, error)
}

// PublicView is the client-safe subset of settings exposed without auth.
type PublicView struct {
	AppName          string                 `json:"appName"`
	AppDescription   string                 `json:"appDescription"`
	AppLogo          string                 `json:"appLogo"`
	Favicon          string                 `json:"favicon"`
	Currency         string                 `json:"currency"`
	CurrencySymbol   string                 `json:"currencySymbol"`
	CurrencyPosition enums.CurrencyPosition `json:"currencyPosition"`
	DateFormat       string                 `json:"dateFormat"`
	TimeFormat       string                 `json:"timeFormat"`
	Timezone         string                 `json:"timezone"`
	Language         string                 `json:"language"`
	SupportEmail     string                 `json:"supportEmail"`
	CompanyName      string                 `json:"companyName"`
	IsActive         bool                   `json:"isActive"`
}

// CurrencyView carries just the currency display configuration.
type CurrencyView struct {
	Currency         string                 `json:"currency"`
	CurrencySymbol   string                 `json:"currencySymbol"`
	CurrencyPosition enums.CurrencyPosition `json:"currencyPosition"`
}

// UpdateInput carries the fields accepted when updating settings.
// Nil pointers leave the stored value untouched.
type UpdateInput struct {
	AppName          *string
	AppDescription   *string
	AppLogo          *string
	Favicon          *string
	ServerURL        *string
	Currency         *string
	CurrencySymbol   *string
	CurrencyPosition *enums.CurrencyPosition
	DateFormat       *string
	TimeFormat       *string
	Timezone         *string
	Language         *string
	SupportEmail     *string
	CompanyName      *string
	CompanyAddress   *string
	CompanyPhone     *string
	CompanyWebsite   *string
	IsActive         *bool
}

type service struct {
	repo Repository
}

// NewService wires settings dependencies.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "settings repository required")
	}
	return &service{repo: repo}, nil
}

// Get returns the settings row, creating it with defaults on first use.
func (s *service) Get(ctx context.Context) (*models.Settings, error) {
	settings, err := s.repo.First(ctx)
	if err == nil {
		return settings, nil
	}
	if !db.IsNotFound(err) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load settings")
	}

	defaults := defaultSettings()
	if err := s.repo.Create(ctx, defaults); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "seed settings")
	}
	return defaults, nil
}

// Public returns the subset of settings safe to expose to storefront clients.
func (s *service) Public(ctx context.Context) (*PublicView, error) {
	settings, err := s.Get(ctx)
	if err != nil {
		return nil, err
	}
	return &PublicView{
		AppName:          settings.AppName,
		AppDescription:   settings.AppDescription,
		AppLogo:          settings.AppLogo,
		Favicon:          settings.Favicon,
		Currency:         settings.Currency,
		CurrencySymbol:   settings.CurrencySymbol,
		CurrencyPosition: settings.CurrencyPosition,
		DateFormat:       settings.DateFormat,
		TimeFormat:       settings.TimeFormat,
		Timezone:         settings.Timezone,
		Language:         settings.Language,
		SupportEmail:     settings.SupportEmail,
		CompanyName:      settings.CompanyName,
		IsActive:         settings.IsActive,
	}, nil
}

// Currency returns the currency display configuration.
func (s *service) Currency(ctx context.Context) (*CurrencyView, error) {
	settings, err := s.Get(ctx)
	if err != nil {
		return nil, err
	}
	return &CurrencyView{
		Currency:         settings.Currency,
		CurrencySymbol:   settings.CurrencySymbol,
		CurrencyPosition: settings.CurrencyPosition,
	}, nil
}

func (s *service) Update(ctx context.Context, input UpdateInput) (*models.Settings, error) {
	settings, err := s.Get(ctx)
	if err != nil {
		return nil, err
	}

	if input.AppName != nil {
		name := strings.TrimSpace(*input.AppName)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "App name is required.")
		}
		settings.AppName = name
	}
	if input.AppDescription != nil {
		settings.AppDescription = *input.AppDescription
	}
	if input.AppLogo != nil {
		settings.AppLogo = *input.AppLogo
	}
	if input.Favicon != nil {
		settings.Favicon = *input.Favicon
	}
	if input.ServerURL != nil {
		settings.ServerURL = *input.ServerURL
	}
	if input.Currency != nil {
		currency := strings.ToUpper(strings.TrimSpace(*input.Currency))
		if len(currency) != 3 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "Currency must be a 3-letter code.")
		}
		settings.Currency = currency
	}
	if input.CurrencySymbol != nil {
		settings.CurrencySymbol = *input.CurrencySymbol
	}
	if input.CurrencyPosition != nil {
		if !input.CurrencyPosition.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "Invalid currency position.")
		}
		settings.CurrencyPosition = *input.CurrencyPosition
	}
	if input.DateFormat != nil {
		settings.DateFormat = *input.DateFormat
	}
	if input.TimeFormat != nil {
		settings.TimeFormat = *input.TimeFormat
	}
	if input.Timezone != nil {
		settings.Timezone = *input.Timezone
	}
	if input.Language != nil {
		settings.Language = *input.Language
	}
	if input.SupportEmail != nil {
		settings.SupportEmail = *input.SupportEmail
	}
	if input.CompanyName != nil {
		settings.CompanyName = *input.CompanyName
	}
	if input.CompanyAddress != nil {
		settings.CompanyAddress = *input.CompanyAddress
	}
	if input.CompanyPhone != nil {
		settings.CompanyPhone = *input.CompanyPhone
	}
	if input.CompanyWebsite != nil {
		settings.CompanyWebsite = *input.CompanyWebsite
	}
	if input.IsActive != nil {
		settings.IsActive = *input.IsActive
	}

	if err := s.repo.Update(ctx, settings); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update settings")
	}
	return settings, nil
}

// Reset restores the stored row to the defaults, keeping its id.
func (s *service) Reset(ctx context.Context) (*models.Settings, error) {
	settings, err := s.Get(ctx)
	if err != nil {
		return nil, err
	}

	defaults := defaultSettings()
	defaults.ID = settings.ID
	defaults.CreatedAt = settings.CreatedAt
	if err := s.repo.Update(ctx, defaults); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reset settings")
	}
	return defaults, nil
}

func defaultSettings() *models.Settings {
	return &models.Settings{
		ID:               uuid.New(),
		AppName:          "EWA Dash",
		Currency:         "USD",
		CurrencySymbol:   "$",
		CurrencyPosition: enums.CurrencyPositionBefore,
		DateFormat:       "MM/DD/YYYY",
		TimeFormat:       "12h",
		Timezone:         "UTC",
		Language:         "en",
		IsActive:         true,
	}
}
