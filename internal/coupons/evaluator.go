package coupons

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/dev-arham/ecommerce-server/pkg/db/models"
	"github.com/dev-arham/ecommerce-server/pkg/enums"
)

// Applicability messages returned to clients verbatim.
const (
	MsgNotFound         = "Coupon not found."
	MsgExpired          = "Coupon is expired."
	MsgInactive         = "Coupon is inactive."
	MsgMinimumNotMet    = "Minimum purchase amount not met."
	MsgAllOrders        = "Coupon is applicable for all orders."
	MsgProductsMatch    = "Coupon is applicable for the provided products."
	MsgProductsMismatch = "Coupon is not applicable for the provided products."
)

// Result is the outcome of an applicability evaluation.
type Result struct {
	Applicable bool
	Message    string
}

// Evaluate decides whether a coupon can be applied to a cart. Checks run in a
// fixed order: expiry, status, minimum purchase, then scope. An unscoped
// coupon that passes the first three checks applies to any order. A scoped
// coupon applies only when every provided product satisfies every scope
// restriction the coupon sets.
func Evaluate(coupon models.Coupon, cartProducts []models.Product, purchaseAmount decimal.Decimal, now time.Time) Result {
	if now.After(coupon.EndDate) {
		return Result{Applicable: false, Message: MsgExpired}
	}
	if coupon.Status != enums.CouponStatusActive {
		return Result{Applicable: false, Message: MsgInactive}
	}
	if coupon.MinimumPurchaseAmount != nil && purchaseAmount.LessThan(*coupon.MinimumPurchaseAmount) {
		return Result{Applicable: false, Message: MsgMinimumNotMet}
	}
	if !coupon.IsScoped() {
		return Result{Applicable: true, Message: MsgAllOrders}
	}

	for _, product := range cartProducts {
		if !matchesScope(coupon, product) {
			return Result{Applicable: false, Message: MsgProductsMismatch}
		}
	}
	return Result{Applicable: true, Message: MsgProductsMatch}
}

func matchesScope(coupon models.Coupon, product models.Product) bool {
	if coupon.ApplicableCategoryID != nil && !product.InCategory(*coupon.ApplicableCategoryID) {
		return false
	}
	// Brand scope only constrains products that carry a brand.
	if coupon.ApplicableBrandID != nil && product.BrandID != nil && *product.BrandID != *coupon.ApplicableBrandID {
		return false
	}
	if coupon.ApplicableProductID != nil && product.ID != *coupon.ApplicableProductID {
		return false
	}
	return true
}
