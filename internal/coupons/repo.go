package coupons

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dev-arham/ecommerce-server/pkg/db/models"
	"github.com/dev-arham/ecommerce-server/pkg/enums"
	"github.com/dev-arham/ecommerce-server/pkg/pagination"
)

// ListQuery carries the normalized list inputs for coupons.
type ListQuery struct {
	Params pagination.Params
	Sort   pagination.Sort
	Search string
	Status *enums.CouponStatus
}

// Repository exposes persistence helpers for coupons.
type Repository interface {
	Create(ctx context.Context, coupon *models.Coupon) error
	Update(ctx context.Context, coupon *models.Coupon) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Coupon, error)
	FindByCode(ctx context.Context, code string) (*models.Coupon, error)
	List(ctx context.Context, query ListQuery) ([]models.Coupon, pagination.Envelope, error)
	CountOrderReferences(ctx context.Context, id uuid.UUID) (int64, error)
}

type repositoryImpl struct {
	db *gorm.DB
}

// NewRepository returns a coupons repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{db: db}
}

func (r *repositoryImpl) Create(ctx context.Context, coupon *models.Coupon) error {
	return r.db.WithContext(ctx).Create(coupon).Error
}

func (r *repositoryImpl) Update(ctx context.Context, coupon *models.Coupon) error {
	return r.db.WithContext(ctx).Save(coupon).Error
}

func (r *repositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Coupon{}, "id = ?", id).Error
}

func (r *repositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*models.Coupon, error) {
	var coupon models.Coupon
	if err := r.db.WithContext(ctx).First(&coupon, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &coupon, nil
}

func (r *repositoryImpl) FindByCode(ctx context.Context, code string) (*models.Coupon, error) {
	var coupon models.Coupon
	if err := r.db.WithContext(ctx).First(&coupon, "code = ?", code).Error; err != nil {
		return nil, err
	}
	return &coupon, nil
}

func (r *repositoryImpl) CountOrderReferences(ctx context.Context, id uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Order{}).Where("coupon_id = ?", id).Count(&count).Error
	return count, err
}

func (r *repositoryImpl) List(ctx context.Context, query ListQuery) ([]models.Coupon, pagination.Envelope, error) {
	tx := r.db.Model(&models.Coupon{}).Scopes(pagination.Search(query.Search, "code", "title"))
	if query.Status != nil {
		tx = tx.Where("status = ?", *query.Status)
	}
	return pagination.Run[models.Coupon](ctx, tx, query.Params, query.Sort)
}
