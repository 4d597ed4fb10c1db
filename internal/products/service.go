package products

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dev-arham/ecommerce-server/pkg/db"
	"github.com/dev-arham/ecommerce-server/pkg/db/models"
	pkgerrors "github.com/dev-arham/ecommerce-server/pkg/errors"
	"github.com/dev-arham/ecommerce-server/pkg/pagination"
	"github.com/dev-arham/ecommerce-server/pkg/types"
)

// Service defines product catalog operations.
type Service interface {
	Create(ctx context.Context, input CreateInput) (*models.Product, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateInput) (*models.Product, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Get(ctx context.Context, id uuid.UUID) (*models.Product, error)
	GetMany(ctx context.Context, ids []uuid.UUID) ([]models.Product, error)
	List(ctx context.Context, query ListQuery) ([]models.Product, pagination.Envelope, error)
}

// CreateInput carries the fields accepted when creating a product.
type CreateInput struct {
	Name        string
	Description string
	Quantity    int
	Price       decimal.Decimal
	OfferPrice  *decimal.Decimal
	CategoryIDs []uuid.UUID
	BrandID     *uuid.UUID
	Images      []types.Image
}

// UpdateInput carries the fields accepted when updating a product.
// Nil pointers leave the stored value untouched.
type UpdateInput struct {
	Name        *string
	Description *string
	Quantity    *int
	Price       *decimal.Decimal
	OfferPrice  *decimal.Decimal
	ClearOffer  bool
	CategoryIDs []uuid.UUID
	BrandID     *uuid.UUID
	ClearBrand  bool
	Images      []types.Image
}

type service struct {
	repo Repository
}

// NewService wires product dependencies.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "products repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Create(ctx context.Context, input CreateInput) (*models.Product, error) {
	name := strings.TrimSpace(input.Name)
	description := strings.TrimSpace(input.Description)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "Name is required.")
	}
	if description == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "Description is required.")
	}
	if input.Quantity < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "Quantity cannot be negative.")
	}
	if input.Price.LessThanOrEqual(decimal.Zero) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "Price must be greater than zero.")
	}
	if err := validateOfferPrice(input.Price, input.OfferPrice); err != nil {
		return nil, err
	}

	product := &models.Product{
		ID:          uuid.New(),
		Name:        name,
		Description: description,
		Quantity:    input.Quantity,
		Price:       input.Price,
		OfferPrice:  input.OfferPrice,
		CategoryIDs: input.CategoryIDs,
		BrandID:     input.BrandID,
		Images:      input.Images,
	}
	if err := s.repo.Create(ctx, product); err != nil {
		if db.IsForeignKeyViolation(err) {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "Referenced brand does not exist.")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create product")
	}
	return product, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdateInput) (*models.Product, error) {
	product, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "Name is required.")
		}
		product.Name = name
	}
	if input.Description != nil {
		description := strings.TrimSpace(*input.Description)
		if description == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "Description is required.")
		}
		product.Description = description
	}
	if input.Quantity != nil {
		if *input.Quantity < 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "Quantity cannot be negative.")
		}
		product.Quantity = *input.Quantity
	}
	if input.Price != nil {
		if input.Price.LessThanOrEqual(decimal.Zero) {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "Price must be greater than zero.")
		}
		product.Price = *input.Price
	}
	switch {
	case input.ClearOffer:
		product.OfferPrice = nil
	case input.OfferPrice != nil:
		product.OfferPrice = input.OfferPrice
	}
	if err := validateOfferPrice(product.Price, product.OfferPrice); err != nil {
		return nil, err
	}
	if input.CategoryIDs != nil {
		product.CategoryIDs = input.CategoryIDs
	}
	switch {
	case input.ClearBrand:
		product.BrandID = nil
	case input.BrandID != nil:
		product.BrandID = input.BrandID
	}
	if input.Images != nil {
		product.Images = input.Images
	}

	if err := s.repo.Update(ctx, product); err != nil {
		if db.IsForeignKeyViolation(err) {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "Referenced brand does not exist.")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update product")
	}
	return product, nil
}

// Delete refuses to remove a product that a coupon still scopes to.
func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}

	count, err := s.repo.CountCouponReferences(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count product references")
	}
	if count > 0 {
		return pkgerrors.New(pkgerrors.CodeReference, "Cannot delete product. Coupons are referencing it.").
			WithDetails(map[string]any{"coupons": count})
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete product")
	}
	return nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "Product not found.")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find product")
	}
	return product, nil
}

func (s *service) GetMany(ctx context.Context, ids []uuid.UUID) ([]models.Product, error) {
	rows, err := s.repo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find products")
	}
	return rows, nil
}

func (s *service) List(ctx context.Context, query ListQuery) ([]models.Product, pagination.Envelope, error) {
	rows, meta, err := s.repo.List(ctx, query)
	if err != nil {
		return nil, pagination.Envelope{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list products")
	}
	return rows, meta, nil
}

func validateOfferPrice(price decimal.Decimal, offer *decimal.Decimal) error {
	if offer == nil {
		return nil
	}
	if offer.LessThanOrEqual(decimal.Zero) {
		return pkgerrors.New(pkgerrors.CodeValidation, "Offer price must be greater than zero.")
	}
	if offer.GreaterThan(price) {
		return pkgerrors.New(pkgerrors.CodeValidation, "Offer price cannot exceed the regular price.")
	}
	return nil
}
