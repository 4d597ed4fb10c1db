package stripe

import (
	"context"
	"fmt"

	"github.com/stripe/stripe-go/v84"
	"github.com/stripe/stripe-go/v84/customer"
	"github.com/stripe/stripe-go/v84/ephemeralkey"
	"github.com/stripe/stripe-go/v84/paymentintent"
)

// Mobile SDKs pin the ephemeral key API version; keep in sync with the app.
const ephemeralKeyAPIVersion = "2023-10-16"

// PaymentSheetParams carries the caller details needed to set up a payment.
type PaymentSheetParams struct {
	Email       string
	Name        string
	Address     *stripe.AddressParams
	Amount      int64
	Currency    string
	Description string
}

// PaymentSheet bundles the secrets a mobile client needs to confirm a payment.
type PaymentSheet struct {
	PaymentIntent  string `json:"paymentIntent"`
	EphemeralKey   string `json:"ephemeralKey"`
	Customer       string `json:"customer"`
	PublishableKey string `json:"publishableKey"`
}

// CreatePaymentSheet provisions a customer, ephemeral key, and payment intent
// in one call, matching the sequence the mobile payment sheet expects.
func (c *Client) CreatePaymentSheet(ctx context.Context, params PaymentSheetParams) (*PaymentSheet, error) {
	customerParams := &stripe.CustomerParams{
		Email:   stripe.String(params.Email),
		Name:    stripe.String(params.Name),
		Address: params.Address,
	}
	customerParams.Context = ctx

	cust, err := customer.New(customerParams)
	if err != nil {
		return nil, fmt.Errorf("creating stripe customer: %w", err)
	}

	keyParams := &stripe.EphemeralKeyParams{
		Customer:      stripe.String(cust.ID),
		StripeVersion: stripe.String(ephemeralKeyAPIVersion),
	}
	keyParams.Context = ctx

	key, err := ephemeralkey.New(keyParams)
	if err != nil {
		return nil, fmt.Errorf("creating stripe ephemeral key: %w", err)
	}

	intentParams := &stripe.PaymentIntentParams{
		Amount:      stripe.Int64(params.Amount),
		Currency:    stripe.String(params.Currency),
		Customer:    stripe.String(cust.ID),
		Description: stripe.String(params.Description),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	intentParams.Context = ctx

	intent, err := paymentintent.New(intentParams)
	if err != nil {
		return nil, fmt.Errorf("creating stripe payment intent: %w", err)
	}

	return &PaymentSheet{
		PaymentIntent:  intent.ClientSecret,
		EphemeralKey:   key.Secret,
		Customer:       cust.ID,
		PublishableKey: c.PublishableKey(),
	}, nil
}
