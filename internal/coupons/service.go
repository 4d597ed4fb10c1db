package coupons

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dev-arham/ecommerce-server/pkg/db"
	"github.com/dev-arham/ecommerce-server/pkg/db/models"
	"github.com/dev-arham/ecommerce-server/pkg/enums"
	pkgerrors "github.com/dev-arham/ecommerce-server/pkg/errors"
	"github.com/dev-arham/ecommerce-server/pkg/pagination"
)

// ProductFinder loads cart products for scope evaluation.
type ProductFinder interface {
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Product, error)
}

// Service defines coupon operations, including cart applicability checks.
type Service interface {
	Create(ctx context.Context, input CreateInput) (*models.Coupon, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateInput) (*models.Coupon, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Get(ctx context.Context, id uuid.UUID) (*models.Coupon, error)
	List(ctx context.Context, query ListQuery) ([]models.Coupon, pagination.Envelope, error)
	Check(ctx context.Context, input CheckInput) (*CheckResult, error)
}

// CreateInput carries the fields accepted when creating a coupon.
type CreateInput struct {
	Code                  string
	Title                 string
	DiscountType          enums.DiscountType
	DiscountAmount        decimal.Decimal
	MinimumPurchaseAmount *decimal.Decimal
	EndDate               time.Time
	Status                enums.CouponStatus
	ApplicableCategoryID  *uuid.UUID
	ApplicableBrandID     *uuid.UUID
	ApplicableProductID   *uuid.UUID
}

// UpdateInput carries the fields accepted when updating a coupon.
// Nil pointers leave the stored value untouched.
type UpdateInput struct {
	Code                  *string
	Title                 *string
	DiscountType          *enums.DiscountType
	DiscountAmount        *decimal.Decimal
	MinimumPurchaseAmount *decimal.Decimal
	ClearMinimum          bool
	EndDate               *time.Time
	Status                *enums.CouponStatus
	ApplicableCategoryID  *uuid.UUID
	ApplicableBrandID     *uuid.UUID
	ApplicableProductID   *uuid.UUID
	ClearScope            bool
}

// CheckInput carries a cart applicability check request.
type CheckInput struct {
	Code           string
	ProductIDs     []uuid.UUID
	PurchaseAmount decimal.Decimal
}

// CheckResult reports the outcome of a cart applicability check. Coupon is
// set only when the coupon applies.
type CheckResult struct {
	Applicable bool
	Message    string
	Coupon     *models.Coupon
}

type service struct {
	repo     Repository
	products ProductFinder
	now      func() time.Time
}

// NewService wires coupon dependencies.
func NewService(repo Repository, products ProductFinder) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "coupons repository required")
	}
	if products == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "product finder required")
	}
	return &service{repo: repo, products: products, now: time.Now}, nil
}

func (s *service) Create(ctx context.Context, input CreateInput) (*models.Coupon, error) {
	code := normalizeCode(input.Code)
	if code == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "Coupon code is required.")
	}
	if !input.DiscountType.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "Invalid discount type.")
	}
	if err := validateDiscount(input.DiscountType, input.DiscountAmount); err != nil {
		return nil, err
	}
	if input.EndDate.IsZero() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "End date is required.")
	}
	status := input.Status
	if status == "" {
		status = enums.CouponStatusActive
	}
	if !status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "Invalid coupon status.")
	}

	coupon := &models.Coupon{
		ID:                    uuid.New(),
		Code:                  code,
		Title:                 strings.TrimSpace(input.Title),
		DiscountType:          input.DiscountType,
		DiscountAmount:        input.DiscountAmount,
		MinimumPurchaseAmount: input.MinimumPurchaseAmount,
		EndDate:               input.EndDate,
		Status:                status,
		ApplicableCategoryID:  input.ApplicableCategoryID,
		ApplicableBrandID:     input.ApplicableBrandID,
		ApplicableProductID:   input.ApplicableProductID,
	}
	if err := s.repo.Create(ctx, coupon); err != nil {
		if db.IsUniqueViolation(err) {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "Coupon with this code already exists.")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create coupon")
	}
	return coupon, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdateInput) (*models.Coupon, error) {
	coupon, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Code != nil {
		code := normalizeCode(*input.Code)
		if code == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "Coupon code is required.")
		}
		coupon.Code = code
	}
	if input.Title != nil {
		coupon.Title = strings.TrimSpace(*input.Title)
	}
	if input.DiscountType != nil {
		if !input.DiscountType.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "Invalid discount type.")
		}
		coupon.DiscountType = *input.DiscountType
	}
	if input.DiscountAmount != nil {
		coupon.DiscountAmount = *input.DiscountAmount
	}
	if err := validateDiscount(coupon.DiscountType, coupon.DiscountAmount); err != nil {
		return nil, err
	}
	switch {
	case input.ClearMinimum:
		coupon.MinimumPurchaseAmount = nil
	case input.MinimumPurchaseAmount != nil:
		coupon.MinimumPurchaseAmount = input.MinimumPurchaseAmount
	}
	if input.EndDate != nil {
		coupon.EndDate = *input.EndDate
	}
	if input.Status != nil {
		if !input.Status.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "Invalid coupon status.")
		}
		coupon.Status = *input.Status
	}
	if input.ClearScope {
		coupon.ApplicableCategoryID = nil
		coupon.ApplicableBrandID = nil
		coupon.ApplicableProductID = nil
	}
	if input.ApplicableCategoryID != nil {
		coupon.ApplicableCategoryID = input.ApplicableCategoryID
	}
	if input.ApplicableBrandID != nil {
		coupon.ApplicableBrandID = input.ApplicableBrandID
	}
	if input.ApplicableProductID != nil {
		coupon.ApplicableProductID = input.ApplicableProductID
	}

	if err := s.repo.Update(ctx, coupon); err != nil {
		if db.IsUniqueViolation(err) {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "Coupon with this code already exists.")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update coupon")
	}
	return coupon, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	orders, err := s.repo.CountOrderReferences(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count coupon orders")
	}
	if orders > 0 {
		return pkgerrors.New(pkgerrors.CodeReference, "Cannot delete coupon. Orders are referencing it.").
			WithDetails(map[string]any{"orders": orders})
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete coupon")
	}
	return nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.Coupon, error) {
	coupon, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "Coupon not found.")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find coupon")
	}
	return coupon, nil
}

func (s *service) List(ctx context.Context, query ListQuery) ([]models.Coupon, pagination.Envelope, error) {
	rows, meta, err := s.repo.List(ctx, query)
	if err != nil {
		return nil, pagination.Envelope{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list coupons")
	}
	return rows, meta, nil
}

// Check looks up a coupon by code and evaluates it against the cart.
func (s *service) Check(ctx context.Context, input CheckInput) (*CheckResult, error) {
	code := normalizeCode(input.Code)
	if code == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "Coupon code is required.")
	}

	coupon, err := s.repo.FindByCode(ctx, code)
	if err != nil {
		// An unknown code is an answer, not a failure.
		if db.IsNotFound(err) {
			return &CheckResult{Applicable: false, Message: MsgNotFound}, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find coupon by code")
	}

	var cartProducts []models.Product
	if coupon.IsScoped() && len(input.ProductIDs) > 0 {
		cartProducts, err = s.products.FindByIDs(ctx, input.ProductIDs)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart products")
		}
	}

	outcome := Evaluate(*coupon, cartProducts, input.PurchaseAmount, s.now())
	result := &CheckResult{Applicable: outcome.Applicable, Message: outcome.Message}
	if outcome.Applicable {
		result.Coupon = coupon
	}
	return result, nil
}

func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func validateDiscount(discountType enums.DiscountType, amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return pkgerrors.New(pkgerrors.CodeValidation, "Discount amount must be greater than zero.")
	}
	if discountType == enums.DiscountTypePercentage && amount.GreaterThan(decimal.NewFromInt(100)) {
		return pkgerrors.New(pkgerrors.CodeValidation, "Percentage discount cannot exceed 100.")
	}
	return nil
}
