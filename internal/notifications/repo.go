package notifications

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dev-arham/ecommerce-server/pkg/db/models"
	"github.com/dev-arham/ecommerce-server/pkg/pagination"
)

// ListQuery carries the normalized list inputs for notifications.
type ListQuery struct {
	Params pagination.Params
	Sort   pagination.Sort
	Search string
}

// Repository exposes persistence helpers for notification campaigns.
type Repository interface {
	Create(ctx context.Context, notification *models.Notification) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Notification, error)
	List(ctx context.Context, query ListQuery) ([]models.Notification, pagination.Envelope, error)
}

type repositoryImpl struct {
	db *gorm.DB
}

// NewRepository returns a notifications repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{db: db}
}

func (r *repositoryImpl) Create(ctx context.Context, notification *models.Notification) error {
	return r.db.WithContext(ctx).Create(notification).Error
}

func (r *repositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Notification{}, "id = ?", id).Error
}

func (r *repositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*models.Notification, error) {
	var notification models.Notification
	if err := r.db.WithContext(ctx).First(&notification, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &notification, nil
}

func (r *repositoryImpl) List(ctx context.Context, query ListQuery) ([]models.Notification, pagination.Envelope, error) {
	tx := r.db.Model(&models.Notification{}).Scopes(pagination.Search(query.Search, "title", "description"))
	return pagination.Run[models.Notification](ctx, tx, query.Params, query.Sort)
}
