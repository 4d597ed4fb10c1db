package posters

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dev-arham/ecommerce-server/pkg/db/models"
	"github.com/dev-arham/ecommerce-server/pkg/pagination"
)

// ListQuery carries the normalized list inputs for posters.
type ListQuery struct {
	Params pagination.Params
	Sort   pagination.Sort
	Search string
}

// Repository exposes persistence helpers for posters.
type Repository interface {
	Create(ctx context.Context, poster *models.Poster) error
	Update(ctx context.Context, poster *models.Poster) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Poster, error)
	List(ctx context.Context, query ListQuery) ([]models.Poster, pagination.Envelope, error)
}

type repositoryImpl struct {
	db *gorm.DB
}

// NewRepository returns a posters repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{db: db}
}

func (r *repositoryImpl) Create(ctx context.Context, poster *models.Poster) error {
	return r.db.WithContext(ctx).Create(poster).Error
}

func (r *repositoryImpl) Update(ctx context.Context, poster *models.Poster) error {
	return r.db.WithContext(ctx).Save(poster).Error
}

func (r *repositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Poster{}, "id = ?", id).Error
}

func (r *repositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*models.Poster, error) {
	var poster models.Poster
	if err := r.db.WithContext(ctx).First(&poster, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &poster, nil
}

func (r *repositoryImpl) List(ctx context.Context, query ListQuery) ([]models.Poster, pagination.Envelope, error) {
	tx := r.db.Model(&models.Poster{}).Scopes(pagination.Search(query.Search, "name"))
	return pagination.Run[models.Poster](ctx, tx, query.Params, query.Sort)
}
