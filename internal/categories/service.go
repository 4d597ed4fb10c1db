package categories

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/dev-arham/ecommerce-server/pkg/db"
	"github.com/dev-arham/ecommerce-server/pkg/db/models"
	pkgerrors "github.com/dev-arham/ecommerce-server/pkg/errors"
	"github.com/dev-arham/ecommerce-server/pkg/pagination"
)

// Service defines category catalog operations.
type Service interface {
	Create(ctx context.Context, input CreateInput) (*models.Category, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateInput) (*models.Category, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Get(ctx context.Context, id uuid.UUID) (*models.Category, error)
	List(ctx context.Context, query ListQuery) ([]models.Category, pagination.Envelope, error)
}

// CreateInput carries the fields accepted when creating a category.
type CreateInput struct {
	Name  string
	Image *string
}

// UpdateInput carries the fields accepted when updating a category.
type UpdateInput struct {
	Name  string
	Image *string
}

type service struct {
	repo Repository
}

// NewService wires category dependencies.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "categories repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Create(ctx context.Context, input CreateInput) (*models.Category, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "Name is required.")
	}

	category := &models.Category{
		ID:    uuid.New(),
		Name:  name,
		Image: input.Image,
	}
	if err := s.repo.Create(ctx, category); err != nil {
		if db.IsUniqueViolation(err) {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "Category with this name already exists.")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create category")
	}
	return category, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdateInput) (*models.Category, error) {
	category, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if name := strings.TrimSpace(input.Name); name != "" {
		category.Name = name
	}
	if input.Image != nil {
		category.Image = input.Image
	}

	if err := s.repo.Update(ctx, category); err != nil {
		if db.IsUniqueViolation(err) {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "Category with this name already exists.")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update category")
	}
	return category, nil
}

// Delete refuses to remove a category that products or coupons still reference.
func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}

	count, err := s.repo.CountProductReferences(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count category references")
	}
	if count > 0 {
		return pkgerrors.New(pkgerrors.CodeReference, "Cannot delete category. Products are referencing it.").
			WithDetails(map[string]any{"products": count})
	}

	coupons, err := s.repo.CountCouponReferences(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count category references")
	}
	if coupons > 0 {
		return pkgerrors.New(pkgerrors.CodeReference, "Cannot delete category. Coupons are referencing it.").
			WithDetails(map[string]any{"coupons": coupons})
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete category")
	}
	return nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	category, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "Category not found.")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find category")
	}
	return category, nil
}

func (s *service) List(ctx context.Context, query ListQuery) ([]models.Category, pagination.Envelope, error) {
	rows, meta, err := s.repo.List(ctx, query)
	if err != nil {
		return nil, pagination.Envelope{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list categories")
	}
	return rows, meta, nil
}
