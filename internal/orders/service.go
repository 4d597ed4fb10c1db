package orders

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dev-arham/ecommerce-server/internal/coupons"
	"github.com/dev-arham/ecommerce-server/pkg/db"
	"github.com/dev-arham/ecommerce-server/pkg/db/models"
	"github.com/dev-arham/ecommerce-server/pkg/enums"
	pkgerrors "github.com/dev-arham/ecommerce-server/pkg/errors"
	"github.com/dev-arham/ecommerce-server/pkg/pagination"
	"github.com/dev-arham/ecommerce-server/pkg/types"
)

// UserFinder verifies that the buyer referenced by an order exists.
type UserFinder interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// CouponChecker evaluates a coupon code against the cart at order time.
type CouponChecker interface {
	Check(ctx context.Context, input coupons.CheckInput) (*coupons.CheckResult, error)
}

// Service defines order operations.
type Service interface {
	Create(ctx context.Context, input CreateInput) (*models.Order, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, input StatusInput) (*models.Order, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Get(ctx context.Context, id uuid.UUID) (*models.Order, error)
	List(ctx context.Context, query ListQuery) ([]models.Order, pagination.Envelope, error)
}

// CreateInput carries the fields accepted when placing an order.
type CreateInput struct {
	UserID          uuid.UUID
	Items           []types.OrderItem
	ShippingAddress types.Address
	PaymentMethod   enums.PaymentMethod
	CouponCode      string
	ShippingCharge  decimal.Decimal
	TrackingURL     *string
}

// StatusInput carries the fields accepted when advancing an order.
type StatusInput struct {
	Status      enums.OrderStatus
	TrackingURL *string
}

type service struct {
	repo    Repository
	users   UserFinder
	coupons CouponChecker
	now     func() time.Time
}

// NewService wires order dependencies.
func NewService(repo Repository, users UserFinder, checker CouponChecker) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "orders repository required")
	}
	if users == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "user finder required")
	}
	if checker == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "coupon checker required")
	}
	return &service{repo: repo, users: users, coupons: checker, now: time.Now}, nil
}

func (s *service) Create(ctx context.Context, input CreateInput) (*models.Order, error) {
	if input.UserID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "User is required.")
	}
	if len(input.Items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "Order must contain at least one item.")
	}
	if !input.PaymentMethod.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "Invalid payment method.")
	}
	if input.ShippingAddress.Street == "" || input.ShippingAddress.City == "" ||
		input.ShippingAddress.PostalCode == "" || input.ShippingAddress.Country == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "Shipping address is incomplete.")
	}
	if input.ShippingCharge.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "Shipping charge cannot be negative.")
	}
	for _, item := range input.Items {
		if item.Quantity <= 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "Item quantity must be greater than zero.")
		}
		if item.Price.IsNegative() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "Item price cannot be negative.")
		}
	}

	if _, err := s.users.FindByID(ctx, input.UserID); err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "User not found.")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find order user")
	}

	totalPrice := decimal.Zero
	for _, item := range input.Items {
		totalPrice = totalPrice.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}

	discount := decimal.Zero
	var couponID *uuid.UUID
	if code := strings.TrimSpace(input.CouponCode); code != "" {
		result, err := s.coupons.Check(ctx, coupons.CheckInput{
			Code:           code,
			ProductIDs:     productIDs(input.Items),
			PurchaseAmount: totalPrice,
		})
		if err != nil {
			return nil, err
		}
		if !result.Applicable {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, result.Message)
		}
		discount = couponDiscount(*result.Coupon, totalPrice)
		couponID = &result.Coupon.ID
	}

	order := &models.Order{
		ID:              uuid.New(),
		OrderNumber:     s.newOrderNumber(),
		UserID:          input.UserID,
		Status:          enums.OrderStatusPending,
		Items:           input.Items,
		ShippingAddress: input.ShippingAddress,
		TotalPrice:      totalPrice,
		Discount:        discount,
		ShippingCharge:  input.ShippingCharge,
		OrderTotal:      totalPrice.Sub(discount).Add(input.ShippingCharge),
		PaymentMethod:   input.PaymentMethod,
		CouponID:        couponID,
		TrackingURL:     input.TrackingURL,
	}
	if err := s.repo.Create(ctx, order); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create order")
	}
	return order, nil
}

func (s *service) UpdateStatus(ctx context.Context, id uuid.UUID, input StatusInput) (*models.Order, error) {
	if !input.Status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "Invalid order status.")
	}

	order, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if order.Status == enums.OrderStatusCancelled || order.Status == enums.OrderStatusDelivered {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "Order is already finalized.")
	}

	order.Status = input.Status
	if input.TrackingURL != nil {
		order.TrackingURL = input.TrackingURL
	}
	if err := s.repo.Update(ctx, order); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update order")
	}
	return order, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete order")
	}
	return nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "Order not found.")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find order")
	}
	return order, nil
}

func (s *service) List(ctx context.Context, query ListQuery) ([]models.Order, pagination.Envelope, error) {
	rows, meta, err := s.repo.List(ctx, query)
	if err != nil {
		return nil, pagination.Envelope{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders")
	}
	return rows, meta, nil
}

// newOrderNumber builds a day-prefixed human readable order reference.
// Uniqueness is enforced by the order_number column index.
func (s *service) newOrderNumber() string {
	suffix := make([]byte, 4)
	_, _ = rand.Read(suffix)
	return fmt.Sprintf("ORD-%s-%s", s.now().UTC().Format("20060102"), strings.ToUpper(hex.EncodeToString(suffix)))
}

func productIDs(items []types.OrderItem) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ProductID)
	}
	return ids
}

func couponDiscount(coupon models.Coupon, totalPrice decimal.Decimal) decimal.Decimal {
	var discount decimal.Decimal
	if coupon.DiscountType == enums.DiscountTypePercentage {
		discount = totalPrice.Mul(coupon.DiscountAmount).Div(decimal.NewFromInt(100)).Round(2)
	} else {
		discount = coupon.DiscountAmount
	}
	if discount.GreaterThan(totalPrice) {
		return totalPrice
	}
	return discount
}
