package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dev-arham/ecommerce-server/pkg/enums"
)

// Coupon is a discount code. The three applicable-* columns narrow the scope;
// a coupon with none of them set applies to every order.
type Coupon struct {
	ID                    uuid.UUID          `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Code                  string             `gorm:"column:code;not null;uniqueIndex"`
	Title                 string             `gorm:"column:title;not null"`
	DiscountType          enums.DiscountType `gorm:"column:discount_type;not null"`
	DiscountAmount        decimal.Decimal    `gorm:"column:discount_amount;type:numeric(12,2);not null"`
	MinimumPurchaseAmount *decimal.Decimal   `gorm:"column:minimum_purchase_amount;type:numeric(12,2)"`
	EndDate               time.Time          `gorm:"column:end_date;not null"`
	Status                enums.CouponStatus `gorm:"column:status;not null;default:active"`
	ApplicableCategoryID  *uuid.UUID         `gorm:"column:applicable_category_id;type:uuid"`
	ApplicableBrandID     *uuid.UUID         `gorm:"column:applicable_brand_id;type:uuid"`
	ApplicableProductID   *uuid.UUID         `gorm:"column:applicable_product_id;type:uuid"`
	CreatedAt             time.Time          `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt             time.Time          `gorm:"column:updated_at;autoUpdateTime"`
}

// IsScoped reports whether any scope restriction is set.
func (c Coupon) IsScoped() bool {
	return c.ApplicableCategoryID != nil || c.ApplicableBrandID != nil || c.ApplicableProductID != nil
}
