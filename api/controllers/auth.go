package controllers

import (
	"net/http"
	"strings"

	"github.com/dev-arham/ecommerce-server/api/middleware"
	"github.com/dev-arham/ecommerce-server/api/responses"
	"github.com/dev-arham/ecommerce-server/api/validators"
	"github.com/dev-arham/ecommerce-server/internal/users"
	"github.com/dev-arham/ecommerce-server/pkg/config"
	pkgerrors "github.com/dev-arham/ecommerce-server/pkg/errors"
	"github.com/dev-arham/ecommerce-server/pkg/logger"
)

type registerPayload struct {
	Name     string  `json:"name" validate:"required,max=120"`
	Email    string  `json:"email" validate:"required,email"`
	Phone    *string `json:"phone"`
	Password string  `json:"password" validate:"required,min=8"`
}

type loginPayload struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type refreshPayload struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type authTokens struct {
	User         any    `json:"user"`
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// Register creates a non-admin account.
func Register(svc users.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		var payload registerPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		user, err := svc.Register(ctx, users.RegisterInput{
			Name:     payload.Name,
			Email:    payload.Email,
			Phone:    payload.Phone,
			Password: payload.Password,
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, "User registered successfully.", user)
	}
}

// Login verifies credentials and issues an access/refresh token pair. Both
// tokens are also set as httpOnly cookies for browser clients.
func Login(svc users.Service, cfg config.JWTConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		var payload loginPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		result, err := svc.Login(ctx, users.LoginInput{
			Email:    payload.Email,
			Password: payload.Password,
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		setAuthCookies(w, cfg, result.AccessToken, result.RefreshToken)
		responses.WriteSuccess(w, "Login successful.", authTokens{
			User:         result.User,
			AccessToken:  result.AccessToken,
			RefreshToken: result.RefreshToken,
		})
	}
}

// RefreshToken rotates the refresh session and mints a new access token.
// Tokens come from the request body or fall back to the auth cookies.
func RefreshToken(svc users.Service, cfg config.JWTConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		var payload refreshPayload
		if r.ContentLength != 0 {
			if err := validators.DecodeJSONBody(r, &payload); err != nil {
				responses.WriteError(ctx, logg, w, err)
				return
			}
		}

		accessToken := strings.TrimSpace(payload.AccessToken)
		if accessToken == "" {
			accessToken = cookieValue(r, middleware.AccessTokenCookie)
		}
		refreshToken := strings.TrimSpace(payload.RefreshToken)
		if refreshToken == "" {
			refreshToken = cookieValue(r, middleware.RefreshTokenCookie)
		}
		if accessToken == "" || refreshToken == "" {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing refresh credentials"))
			return
		}

		result, err := svc.Refresh(ctx, users.RefreshInput{
			AccessToken:  accessToken,
			RefreshToken: refreshToken,
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		setAuthCookies(w, cfg, result.AccessToken, result.RefreshToken)
		responses.WriteSuccess(w, "Token refreshed successfully.", authTokens{
			User:         result.User,
			AccessToken:  result.AccessToken,
			RefreshToken: result.RefreshToken,
		})
	}
}

// Logout revokes the current session and clears the auth cookies.
func Logout(svc users.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if err := svc.Logout(ctx, middleware.SessionIDFromContext(ctx)); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		clearCookie(w, middleware.AccessTokenCookie)
		clearCookie(w, middleware.RefreshTokenCookie)
		responses.WriteSuccess(w, "Logged out successfully.", nil)
	}
}

// Me returns the account resolved from the access token.
func Me(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := middleware.UserFromContext(r.Context())
		responses.WriteSuccess(w, "User retrieved successfully.", user)
	}
}

func setAuthCookies(w http.ResponseWriter, cfg config.JWTConfig, accessToken, refreshToken string) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.AccessTokenCookie,
		Value:    accessToken,
		Path:     "/",
		MaxAge:   cfg.ExpirationMinutes * 60,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.RefreshTokenCookie,
		Value:    refreshToken,
		Path:     "/",
		MaxAge:   cfg.RefreshTokenTTLMinutes * 60,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func clearCookie(w http.ResponseWriter, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func cookieValue(r *http.Request, name string) string {
	cookie, err := r.Cookie(name)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(cookie.Value)
}
