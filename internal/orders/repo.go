package orders

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dev-arham/ecommerce-server/pkg/db/models"
	"github.com/dev-arham/ecommerce-server/pkg/enums"
	"github.com/dev-arham/ecommerce-server/pkg/pagination"
)

// ListQuery carries the normalized list inputs for orders.
type ListQuery struct {
	Params pagination.Params
	Sort   pagination.Sort
	Search string
	Status *enums.OrderStatus
	UserID *uuid.UUID
}

// Repository exposes persistence helpers for orders.
type Repository interface {
	Create(ctx context.Context, order *models.Order) error
	Update(ctx context.Context, order *models.Order) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	List(ctx context.Context, query ListQuery) ([]models.Order, pagination.Envelope, error)
}

type repositoryImpl struct {
	db *gorm.DB
}

// NewRepository returns an orders repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{db: db}
}

func (r *repositoryImpl) Create(ctx context.Context, order *models.Order) error {
	return r.db.WithContext(ctx).Create(order).Error
}

func (r *repositoryImpl) Update(ctx context.Context, order *models.Order) error {
	return r.db.WithContext(ctx).Save(order).Error
}

func (r *repositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Order{}, "id = ?", id).Error
}

func (r *repositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Coupon").
		First(&order, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *repositoryImpl) List(ctx context.Context, query ListQuery) ([]models.Order, pagination.Envelope, error) {
	tx := r.db.Model(&models.Order{}).
		Preload("User").
		Scopes(pagination.Search(query.Search, "order_number"))
	if query.Status != nil {
		tx = tx.Where("status = ?", *query.Status)
	}
	if query.UserID != nil {
		tx = tx.Where("user_id = ?", *query.UserID)
	}
	return pagination.Run[models.Order](ctx, tx, query.Params, query.Sort)
}
