package settings

import (
	"context"

	"gorm.io/gorm"

	"github.com/dev-arham/ecommerce-server/pkg/db/models"
)

// Repository exposes persistence helpers for the settings singleton.
type Repository interface {
	First(ctx context.Context) (*models.Settings, error)
	Create(ctx context.Context, settings *models.Settings) error
	Update(ctx context.Context, settings *models.Settings) error
}

type repositoryImpl struct {
	db *gorm.DB
}

// NewRepository returns a settings repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{db: db}
}

func (r *repositoryImpl) First(ctx context.Context) (*models.Settings, error) {
	var settings models.Settings
	if err := r.db.WithContext(ctx).Order("created_at asc").First(&settings).Error; err != nil {
		return nil, err
	}
	return &settings, nil
}

func (r *repositoryImpl) Create(ctx context.Context, settings *models.Settings) error {
	return r.db.WithContext(ctx).Create(settings).Error
}

func (r *repositoryImpl) Update(ctx context.Context, settings *models.Settings) error {
	return r.db.WithContext(ctx).Save(settings).Error
}
