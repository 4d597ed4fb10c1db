package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dev-arham/ecommerce-server/pkg/enums"
	"github.com/dev-arham/ecommerce-server/pkg/types"
)

// Order is a placed purchase. Items and the shipping address are stored as
// JSON snapshots so later catalog edits never rewrite order history.
type Order struct {
	ID              uuid.UUID           `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderNumber     string              `gorm:"column:order_number;not null;uniqueIndex"`
	UserID          uuid.UUID           `gorm:"column:user_id;type:uuid;not null;index"`
	Status          enums.OrderStatus   `gorm:"column:status;not null;default:pending"`
	Items           []types.OrderItem   `gorm:"column:items;serializer:json;not null"`
	ShippingAddress types.Address       `gorm:"column:shipping_address;serializer:json;not null"`
	TotalPrice      decimal.Decimal     `gorm:"column:total_price;type:numeric(12,2);not null"`
	Discount        decimal.Decimal     `gorm:"column:discount;type:numeric(12,2);not null;default:0"`
	ShippingCharge  decimal.Decimal     `gorm:"column:shipping_charge;type:numeric(12,2);not null;default:0"`
	OrderTotal      decimal.Decimal     `gorm:"column:order_total;type:numeric(12,2);not null"`
	PaymentMethod   enums.PaymentMethod `gorm:"column:payment_method;not null"`
	CouponID        *uuid.UUID          `gorm:"column:coupon_id;type:uuid"`
	TrackingURL     *string             `gorm:"column:tracking_url"`
	User            *User               `gorm:"foreignKey:UserID"`
	Coupon          *Coupon             `gorm:"foreignKey:CouponID"`
	CreatedAt       time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}
