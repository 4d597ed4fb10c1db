package brands

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/dev-arham/ecommerce-server/pkg/db"
	"github.com/dev-arham/ecommerce-server/pkg/db/models"
	pkgerrors "github.com/dev-arham/ecommerce-server/pkg/errors"
	"github.com/dev-arham/ecommerce-server/pkg/pagination"
)

// Service defines brand catalog operations.
type Service interface {
	Create(ctx context.Context, input CreateInput) (*models.Brand, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateInput) (*models.Brand, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Get(ctx context.Context, id uuid.UUID) (*models.Brand, error)
	List(ctx context.Context, query ListQuery) ([]models.Brand, pagination.Envelope, error)
}

// CreateInput carries the fields accepted when creating a brand.
type CreateInput struct {
	Name  string
	Image *string
}

// UpdateInput carries the fields accepted when updating a brand.
type UpdateInput struct {
	Name  string
	Image *string
}

type service struct {
	repo Repository
}

// NewService wires brand dependencies.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "brands repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Create(ctx context.Context, input CreateInput) (*models.Brand, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "Name is required.")
	}

	brand := &models.Brand{
		ID:    uuid.New(),
		Name:  name,
		Image: input.Image,
	}
	if err := s.repo.Create(ctx, brand); err != nil {
		if db.IsUniqueViolation(err) {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "Brand with this name already exists.")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create brand")
	}
	return brand, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdateInput) (*models.Brand, error) {
	brand, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if name := strings.TrimSpace(input.Name); name != "" {
		brand.Name = name
	}
	if input.Image != nil {
		brand.Image = input.Image
	}

	if err := s.repo.Update(ctx, brand); err != nil {
		if db.IsUniqueViolation(err) {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "Brand with this name already exists.")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update brand")
	}
	return brand, nil
}

// Delete refuses to remove a brand that products or coupons still reference.
func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}

	count, err := s.repo.CountProductReferences(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count brand references")
	}
	if count > 0 {
		return pkgerrors.New(pkgerrors.CodeReference, "Cannot delete brand. Products are referencing it.").
			WithDetails(map[string]any{"products": count})
	}

	coupons, err := s.repo.CountCouponReferences(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count brand references")
	}
	if coupons > 0 {
		return pkgerrors.New(pkgerrors.CodeReference, "Cannot delete brand. Coupons are referencing it.").
			WithDetails(map[string]any{"coupons": coupons})
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete brand")
	}
	return nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.Brand, error) {
	brand, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "Brand not found.")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find brand")
	}
	return brand, nil
}

func (s *service) List(ctx context.Context, query ListQuery) ([]models.Brand, pagination.Envelope, error) {
	rows, meta, err := s.repo.List(ctx, query)
	if err != nil {
		return nil, pagination.Envelope{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list brands")
	}
	return rows, meta, nil
}
