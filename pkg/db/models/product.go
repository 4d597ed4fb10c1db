package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	dbtypes "github.com/dev-arham/ecommerce-server/pkg/db/types"
	"github.com/dev-arham/ecommerce-server/pkg/types"
)

// Product is the canonical catalog listing. A product may belong to several
// categories and at most one brand; coupon scope checks rely on both.
type Product struct {
	ID          uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name        string            `gorm:"column:name;not null"`
	Description string            `gorm:"column:description;not null"`
	Quantity    int               `gorm:"column:quantity;not null;default:0"`
	Price       decimal.Decimal   `gorm:"column:price;type:numeric(12,2);not null"`
	OfferPrice  *decimal.Decimal  `gorm:"column:offer_price;type:numeric(12,2)"`
	CategoryIDs dbtypes.UUIDArray `gorm:"column:category_ids;type:uuid[];not null;default:ARRAY[]::uuid[]"`
	BrandID     *uuid.UUID        `gorm:"column:brand_id;type:uuid"`
	Images      []types.Image     `gorm:"column:images;serializer:json"`
	CreatedAt   time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}

// InCategory reports whether the product belongs to the given category.
func (p Product) InCategory(id uuid.UUID) bool {
	return p.CategoryIDs.Contains(id)
}
