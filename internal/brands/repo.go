package brands

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dev-arham/ecommerce-server/pkg/db/models"
	"github.com/dev-arham/ecommerce-server/pkg/pagination"
)

// ListQuery carries the normalized list inputs for brands.
type ListQuery struct {
	Params pagination.Params
	Sort   pagination.Sort
	Search string
}

// Repository exposes persistence helpers for brands.
type Repository interface {
	Create(ctx context.Context, brand *models.Brand) error
	Update(ctx context.Context, brand *models.Brand) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Brand, error)
	List(ctx context.Context, query ListQuery) ([]models.Brand, pagination.Envelope, error)
	CountProductReferences(ctx context.Context, id uuid.UUID) (int64, error)
	CountCouponReferences(ctx context.Context, id uuid.UUID) (int64, error)
}

type repositoryImpl struct {
	db *gorm.DB
}

// NewRepository returns a brands repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{db: db}
}

func (r *repositoryImpl) Create(ctx context.Context, brand *models.Brand) error {
	return r.db.WithContext(ctx).Create(brand).Error
}

func (r *repositoryImpl) Update(ctx context.Context, brand *models.Brand) error {
	return r.db.WithContext(ctx).Save(brand).Error
}

func (r *repositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Brand{}, "id = ?", id).Error
}

func (r *repositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*models.Brand, error) {
	var brand models.Brand
	if err := r.db.WithContext(ctx).First(&brand, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &brand, nil
}

func (r *repositoryImpl) List(ctx context.Context, query ListQuery) ([]models.Brand, pagination.Envelope, error) {
	tx := r.db.Model(&models.Brand{}).Scopes(pagination.Search(query.Search, "name"))
	return pagination.Run[models.Brand](ctx, tx, query.Params, query.Sort)
}

func (r *repositoryImpl) CountProductReferences(ctx context.Context, id uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("brand_id = ?", id).
		Count(&count).Error
	return count, err
}

// CountCouponReferences counts coupons scoped to the brand.
func (r *repositoryImpl) CountCouponReferences(ctx context.Context, id uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Coupon{}).
		Where("applicable_brand_id = ?", id).
		Count(&count).Error
	return count, err
}
