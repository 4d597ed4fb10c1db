package posters

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/dev-arham/ecommerce-server/pkg/db"
	"github.com/dev-arham/ecommerce-server/pkg/db/models"
	pkgerrors "github.com/dev-arham/ecommerce-server/pkg/errors"
	"github.com/dev-arham/ecommerce-server/pkg/pagination"
)

// Service defines poster banner operations.
type Service interface {
	Create(ctx context.Context, input CreateInput) (*models.Poster, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateInput) (*models.Poster, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Get(ctx context.Context, id uuid.UUID) (*models.Poster, error)
	List(ctx context.Context, query ListQuery) ([]models.Poster, pagination.Envelope, error)
}

// CreateInput carries the fields accepted when creating a poster.
type CreateInput struct {
	Name     string
	ImageURL string
}

// UpdateInput carries the fields accepted when updating a poster.
type UpdateInput struct {
	Name     string
	ImageURL string
}

type service struct {
	repo Repository
}

// NewService wires poster dependencies.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "posters repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Create(ctx context.Context, input CreateInput) (*models.Poster, error) {
	name := strings.TrimSpace(input.Name)
	imageURL := strings.TrimSpace(input.ImageURL)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "Name is required.")
	}
	if imageURL == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "Image is required.")
	}

	poster := &models.Poster{
		ID:       uuid.New(),
		Name:     name,
		ImageURL: imageURL,
	}
	if err := s.repo.Create(ctx, poster); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create poster")
	}
	return poster, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdateInput) (*models.Poster, error) {
	poster, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if name := strings.TrimSpace(input.Name); name != "" {
		poster.Name = name
	}
	if imageURL := strings.TrimSpace(input.ImageURL); imageURL != "" {
		poster.ImageURL = imageURL
	}

	if err := s.repo.Update(ctx, poster); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update poster")
	}
	return poster, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete poster")
	}
	return nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.Poster, error) {
	poster, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "Poster not found.")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find poster")
	}
	return poster, nil
}

func (s *service) List(ctx context.Context, query ListQuery) ([]models.Poster, pagination.Envelope, error) {
	rows, meta, err := s.repo.List(ctx, query)
	if err != nil {
		return nil, pagination.Envelope{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list posters")
	}
	return rows, meta, nil
}
