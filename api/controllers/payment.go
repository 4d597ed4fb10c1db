package controllers

import (
	"net/http"
	"strings"

	"github.com/dev-arham/ecommerce-server/api/middleware"
	"github.com/dev-arham/ecommerce-server/api/responses"
	"github.com/dev-arham/ecommerce-server/api/validators"
	pkgerrors "github.com/dev-arham/ecommerce-server/pkg/errors"
	"github.com/dev-arham/ecommerce-server/pkg/logger"
	stripeclient "github.com/dev-arham/ecommerce-server/pkg/stripe"
)

type paymentSheetPayload struct {
	Email       string `json:"email" validate:"omitempty,email"`
	Name        string `json:"name"`
	Amount      int64  `json:"amount" validate:"required,gt=0"`
	Currency    string `json:"currency" validate:"required,len=3"`
	Description string `json:"description"`
}

// PaymentSheet provisions a Stripe customer, ephemeral key, and payment
// intent for the mobile payment sheet flow.
func PaymentSheet(client *stripeclient.Client, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if client == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeDependency, "payments are not configured"))
			return
		}

		var payload paymentSheetPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		email := strings.TrimSpace(payload.Email)
		name := strings.TrimSpace(payload.Name)
		if user := middleware.UserFromContext(ctx); user != nil {
			if email == "" {
				email = user.Email
			}
			if name == "" {
				name = user.Name
			}
		}
		if email == "" {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeValidation, "Email is required."))
			return
		}

		sheet, err := client.CreatePaymentSheet(ctx, stripeclient.PaymentSheetParams{
			Email:       email,
			Name:        name,
			Amount:      payload.Amount,
			Currency:    strings.ToLower(payload.Currency),
			Description: payload.Description,
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, "Payment sheet created successfully.", sheet)
	}
}
