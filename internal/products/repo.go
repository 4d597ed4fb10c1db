package products

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dev-arham/ecommerce-server/pkg/db/models"
	"github.com/dev-arham/ecommerce-server/pkg/pagination"
)

// ListQuery carries the normalized list inputs for products.
type ListQuery struct {
	Params     pagination.Params
	Sort       pagination.Sort
	Search     string
	CategoryID *uuid.UUID
	BrandID    *uuid.UUID
}

// Repository exposes persistence helpers for products.
type Repository interface {
	Create(ctx context.Context, product *models.Product) error
	Update(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Product, error)
	List(ctx context.Context, query ListQuery) ([]models.Product, pagination.Envelope, error)
	CountCouponReferences(ctx context.Context, id uuid.UUID) (int64, error)
}

type repositoryImpl struct {
	db *gorm.DB
}

// NewRepository returns a products repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{db: db}
}

func (r *repositoryImpl) Create(ctx context.Context, product *models.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

func (r *repositoryImpl) Update(ctx context.Context, product *models.Product) error {
	return r.db.WithContext(ctx).Save(product).Error
}

func (r *repositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Product{}, "id = ?", id).Error
}

func (r *repositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *repositoryImpl) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var rows []models.Product
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repositoryImpl) CountCouponReferences(ctx context.Context, id uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Coupon{}).
		Where("applicable_product_id = ?", id).
		Count(&count).Error
	return count, err
}

func (r *repositoryImpl) List(ctx context.Context, query ListQuery) ([]models.Product, pagination.Envelope, error) {
	tx := r.db.Model(&models.Product{}).
		Scopes(pagination.Search(query.Search, "name", "description"))
	if query.CategoryID != nil {
		tx = tx.Where("? = ANY(category_ids)", *query.CategoryID)
	}
	if query.BrandID != nil {
		tx = tx.Where("brand_id = ?", *query.BrandID)
	}
	return pagination.Run[models.Product](ctx, tx, query.Params, query.Sort)
}
