package categories

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dev-arham/ecommerce-server/pkg/db/models"
	"github.com/dev-arham/ecommerce-server/pkg/pagination"
)

// ListQuery carries the normalized list inputs for categories.
type ListQuery struct {
	Params pagination.Params
	Sort   pagination.Sort
	Search string
}

// Repository exposes persistence helpers for categories.
type Repository interface {
	Create(ctx context.Context, category *models.Category) error
	Update(ctx context.Context, category *models.Category) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Category, error)
	List(ctx context.Context, query ListQuery) ([]models.Category, pagination.Envelope, error)
	CountProductReferences(ctx context.Context, id uuid.UUID) (int64, error)
	CountCouponReferences(ctx context.Context, id uuid.UUID) (int64, error)
}

type repositoryImpl struct {
	db *gorm.DB
}

// NewRepository returns a categories repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{db: db}
}

func (r *repositoryImpl) Create(ctx context.Context, category *models.Category) error {
	return r.db.WithContext(ctx).Create(category).Error
}

func (r *repositoryImpl) Update(ctx context.Context, category *models.Category) error {
	return r.db.WithContext(ctx).Save(category).Error
}

func (r *repositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Category{}, "id = ?", id).Error
}

func (r *repositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	var category models.Category
	if err := r.db.WithContext(ctx).First(&category, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *repositoryImpl) List(ctx context.Context, query ListQuery) ([]models.Category, pagination.Envelope, error) {
	tx := r.db.Model(&models.Category{}).Scopes(pagination.Search(query.Search, "name"))
	return pagination.Run[models.Category](ctx, tx, query.Params, query.Sort)
}

// CountProductReferences counts products that still list the category. The
// store has no FK between the two, so deletes check this first.
func (r *repositoryImpl) CountProductReferences(ctx context.Context, id uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("? = ANY(category_ids)", id).
		Count(&count).Error
	return count, err
}

// CountCouponReferences counts coupons scoped to the category.
func (r *repositoryImpl) CountCouponReferences(ctx context.Context, id uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Coupon{}).
		Where("applicable_category_id = ?", id).
		Count(&count).Error
	return count, err
}
