package controllers

import (
	"net/http"

	"github.com/dev-arham/ecommerce-server/api/responses"
	"github.com/dev-arham/ecommerce-server/api/validators"
	"github.com/dev-arham/ecommerce-server/internal/settings"
	"github.com/dev-arham/ecommerce-server/pkg/enums"
	"github.com/dev-arham/ecommerce-server/pkg/logger"
)

type settingsPayload struct {
	AppName          *string `json:"appName"`
	AppDescription   *string `json:"appDescription"`
	AppLogo          *string `json:"appLogo"`
	Favicon          *string `json:"favicon"`
	ServerURL        *string `json:"serverUrl"`
	Currency         *string `json:"currency"`
	CurrencySymbol   *string `json:"currencySymbol"`
	CurrencyPosition *string `json:"currencyPosition"`
	DateFormat       *string `json:"dateFormat"`
	TimeFormat       *string `json:"timeFormat"`
	Timezone         *string `json:"timezone"`
	Language         *string `json:"language"`
	SupportEmail     *string `json:"supportEmail"`
	CompanyName      *string `json:"companyName"`
	CompanyAddress   *string `json:"companyAddress"`
	CompanyPhone     *string `json:"companyPhone"`
	CompanyWebsite   *string `json:"companyWebsite"`
	IsActive         *bool   `json:"isActive"`
}

// SettingsGet returns the settings singleton, seeding defaults on first use.
func SettingsGet(svc settings.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		row, err := svc.Get(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, "Settings retrieved successfully.", row)
	}
}

// SettingsPublic returns the client-safe settings subset.
func SettingsPublic(svc settings.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		view, err := svc.Public(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, "Settings retrieved successfully.", view)
	}
}

type brandingView struct {
	AppName string `json:"appName"`
	AppLogo string `json:"appLogo"`
	Favicon string `json:"favicon"`
}

// SettingsBranding returns just the branding assets for storefront chrome.
func SettingsBranding(svc settings.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		view, err := svc.Public(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, "Branding retrieved successfully.", brandingView{
			AppName: view.AppName,
			AppLogo: view.AppLogo,
			Favicon: view.Favicon,
		})
	}
}

// SettingsCurrency returns the currency display configuration.
func SettingsCurrency(svc settings.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		view, err := svc.Currency(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, "Currency settings retrieved successfully.", view)
	}
}

// SettingsReset restores the settings singleton to its defaults.
func SettingsReset(svc settings.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		row, err := svc.Reset(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, "Settings reset successfully.", row)
	}
}

// SettingsUpdate applies a partial settings update.
func SettingsUpdate(svc settings.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		var payload settingsPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		input := settings.UpdateInput{
			AppName:        payload.AppName,
			AppDescription: payload.AppDescription,
			AppLogo:        payload.AppLogo,
			Favicon:        payload.Favicon,
			ServerURL:      payload.ServerURL,
			Currency:       payload.Currency,
			CurrencySymbol: payload.CurrencySymbol,
			DateFormat:     payload.DateFormat,
			TimeFormat:     payload.TimeFormat,
			Timezone:       payload.Timezone,
			Language:       payload.Language,
			SupportEmail:   payload.SupportEmail,
			CompanyName:    payload.CompanyName,
			CompanyAddress: payload.CompanyAddress,
			CompanyPhone:   payload.CompanyPhone,
			CompanyWebsite: payload.CompanyWebsite,
			IsActive:       payload.IsActive,
		}
		if payload.CurrencyPosition != nil {
			position := enums.CurrencyPosition(*payload.CurrencyPosition)
			input.CurrencyPosition = &position
		}

		row, err := svc.Update(ctx, input)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, "Settings updated successfully.", row)
	}
}
