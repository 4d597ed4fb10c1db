package controllers

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dev-arham/ecommerce-server/api/responses"
	"github.com/dev-arham/ecommerce-server/api/validators"
	"github.com/dev-arham/ecommerce-server/internal/orders"
	"github.com/dev-arham/ecommerce-server/pkg/enums"
	pkgerrors "github.com/dev-arham/ecommerce-server/pkg/errors"
	"github.com/dev-arham/ecommerce-server/pkg/logger"
	"github.com/dev-arham/ecommerce-server/pkg/types"
)

type orderCreatePayload struct {
	UserID          uuid.UUID         `json:"userID"`
	Items           []types.OrderItem `json:"items" validate:"required,min=1"`
	ShippingAddress types.Address     `json:"shippingAddress"`
	PaymentMethod   string            `json:"paymentMethod" validate:"required,oneof=cod prepaid"`
	CouponCode      string            `json:"couponCode"`
	ShippingCharge  decimal.Decimal   `json:"shippingCharge"`
	TrackingURL     *string           `json:"trackingUrl"`
}

type orderStatusPayload struct {
	OrderStatus string  `json:"orderStatus" validate:"required"`
	TrackingURL *string `json:"trackingUrl"`
}

// OrderList returns a paginated order listing with optional status and user
// filters.
func OrderList(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		params, sort, search := listInputs(r, "created_at", "order_number", "order_total", "created_at")

		var status *enums.OrderStatus
		if raw := r.URL.Query().Get("status"); raw != "" {
			parsed, err := enums.ParseOrderStatus(raw)
			if err != nil {
				responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status"))
				return
			}
			status = &parsed
		}
		userID, err := parseOptionalUUID(r.URL.Query().Get("userID"))
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		rows, meta, err := svc.List(ctx, orders.ListQuery{
			Params: params,
			Sort:   sort,
			Search: search,
			Status: status,
			UserID: userID,
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteList(w, "Orders retrieved successfully.", rows, meta)
	}
}

// OrderGet returns one order by id.
func OrderGet(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		id, err := validators.ParseUUIDParam(r, "id")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		order, err := svc.Get(ctx, id)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, "Order retrieved successfully.", order)
	}
}

// OrderCreate places an order.
func OrderCreate(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		var payload orderCreatePayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		order, err := svc.Create(ctx, orders.CreateInput{
			UserID:          payload.UserID,
			Items:           payload.Items,
			ShippingAddress: payload.ShippingAddress,
			PaymentMethod:   enums.PaymentMethod(payload.PaymentMethod),
			CouponCode:      payload.CouponCode,
			ShippingCharge:  payload.ShippingCharge,
			TrackingURL:     payload.TrackingURL,
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, "Order created successfully.", order)
	}
}

// OrderUpdateStatus advances an order and optionally records a tracking link.
func OrderUpdateStatus(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		id, err := validators.ParseUUIDParam(r, "id")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var payload orderStatusPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		order, err := svc.UpdateStatus(ctx, id, orders.StatusInput{
			Status:      enums.OrderStatus(payload.OrderStatus),
			TrackingURL: payload.TrackingURL,
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, "Order updated successfully.", order)
	}
}

// OrderDelete removes an order.
func OrderDelete(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		id, err := validators.ParseUUIDParam(r, "id")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		if err := svc.Delete(ctx, id); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, "Order deleted successfully.", nil)
	}
}
