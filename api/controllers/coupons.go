package controllers

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dev-arham/ecommerce-server/api/responses"
	"github.com/dev-arham/ecommerce-server/api/validators"
	"github.com/dev-arham/ecommerce-server/internal/coupons"
	"github.com/dev-arham/ecommerce-server/pkg/enums"
	pkgerrors "github.com/dev-arham/ecommerce-server/pkg/errors"
	"github.com/dev-arham/ecommerce-server/pkg/logger"
)

type couponCreatePayload struct {
	Code                  string           `json:"code" validate:"required,max=60"`
	Title                 string           `json:"title" validate:"max=160"`
	DiscountType          string           `json:"discountType" validate:"required,oneof=percentage fixed"`
	DiscountAmount        decimal.Decimal  `json:"discountAmount"`
	MinimumPurchaseAmount *decimal.Decimal `json:"minimumPurchaseAmount"`
	EndDate               time.Time        `json:"endDate"`
	Status                string           `json:"status" validate:"omitempty,oneof=active inactive"`
	ApplicableCategoryID  *uuid.UUID       `json:"applicableCategoryID"`
	ApplicableBrandID     *uuid.UUID       `json:"applicableBrandID"`
	ApplicableProductID   *uuid.UUID       `json:"applicableProductID"`
}

type couponUpdatePayload struct {
	Code                  *string          `json:"code"`
	Title                 *string          `json:"title"`
	DiscountType          *string          `json:"discountType"`
	DiscountAmount        *decimal.Decimal `json:"discountAmount"`
	MinimumPurchaseAmount *decimal.Decimal `json:"minimumPurchaseAmount"`
	ClearMinimum          bool             `json:"clearMinimum"`
	EndDate               *time.Time       `json:"endDate"`
	Status                *string          `json:"status"`
	ApplicableCategoryID  *uuid.UUID       `json:"applicableCategoryID"`
	ApplicableBrandID     *uuid.UUID       `json:"applicableBrandID"`
	ApplicableProductID   *uuid.UUID       `json:"applicableProductID"`
	ClearScope            bool             `json:"clearScope"`
}

type couponCheckPayload struct {
	CouponCode     string          `json:"couponCode" validate:"required"`
	ProductIDs     []uuid.UUID     `json:"productIds"`
	PurchaseAmount decimal.Decimal `json:"purchaseAmount"`
}

// CouponList returns a paginated coupon listing with an optional status filter.
func CouponList(svc coupons.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		params, sort, search := listInputs(r, "created_at", "code", "end_date", "created_at")

		var status *enums.CouponStatus
		if raw := r.URL.Query().Get("status"); raw != "" {
			parsed, err := enums.ParseCouponStatus(raw)
			if err != nil {
				responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status"))
				return
			}
			status = &parsed
		}

		rows, meta, err := svc.List(ctx, coupons.ListQuery{Params: params, Sort: sort, Search: search, Status: status})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteList(w, "Coupons retrieved successfully.", rows, meta)
	}
}

// CouponGet returns one coupon by id.
func CouponGet(svc coupons.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		id, err := validators.ParseUUIDParam(r, "id")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		coupon, err := svc.Get(ctx, id)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, "Coupon retrieved successfully.", coupon)
	}
}

// CouponCreate creates a coupon.
func CouponCreate(svc coupons.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		var payload couponCreatePayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		coupon, err := svc.Create(ctx, coupons.CreateInput{
			Code:                  payload.Code,
			Title:                 payload.Title,
			DiscountType:          enums.DiscountType(payload.DiscountType),
			DiscountAmount:        payload.DiscountAmount,
			MinimumPurchaseAmount: payload.MinimumPurchaseAmount,
			EndDate:               payload.EndDate,
			Status:                enums.CouponStatus(payload.Status),
			ApplicableCategoryID:  payload.ApplicableCategoryID,
			ApplicableBrandID:     payload.ApplicableBrandID,
			ApplicableProductID:   payload.ApplicableProductID,
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, "Coupon created successfully.", coupon)
	}
}

// CouponUpdate applies a partial coupon update.
func CouponUpdate(svc coupons.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		id, err := validators.ParseUUIDParam(r, "id")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var payload couponUpdatePayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		input := coupons.UpdateInput{
			Code:                  payload.Code,
			Title:                 payload.Title,
			DiscountAmount:        payload.DiscountAmount,
			MinimumPurchaseAmount: payload.MinimumPurchaseAmount,
			ClearMinimum:          payload.ClearMinimum,
			EndDate:               payload.EndDate,
			ApplicableCategoryID:  payload.ApplicableCategoryID,
			ApplicableBrandID:     payload.ApplicableBrandID,
			ApplicableProductID:   payload.ApplicableProductID,
			ClearScope:            payload.ClearScope,
		}
		if payload.DiscountType != nil {
			discountType := enums.DiscountType(*payload.DiscountType)
			input.DiscountType = &discountType
		}
		if payload.Status != nil {
			status := enums.CouponStatus(*payload.Status)
			input.Status = &status
		}

		coupon, err := svc.Update(ctx, id, input)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, "Coupon updated successfully.", coupon)
	}
}

// CouponDelete removes a coupon.
func CouponDelete(svc coupons.Service, logg *logger.Logger) http.HandlerFunc {
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
		responses.WriteSuccess(w, "Coupon deleted successfully.", nil)
	}
}

// CouponCheck evaluates whether a coupon applies to the provided cart.
func CouponCheck(svc coupons.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		var payload couponCheckPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		result, err := svc.Check(ctx, coupons.CheckInput{
			Code:           payload.CouponCode,
			ProductIDs:     payload.ProductIDs,
			PurchaseAmount: payload.PurchaseAmount,
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		if !result.Applicable {
			responses.WriteRejected(w, result.Message)
			return
		}
		responses.WriteSuccess(w, result.Message, result.Coupon)
	}
}
