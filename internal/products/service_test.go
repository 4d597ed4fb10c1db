package products

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/dev-arham/ecommerce-server/pkg/db/models"
	pkgerrors "github.com/dev-arham/ecommerce-server/pkg/errors"
	"github.com/dev-arham/ecommerce-server/pkg/pagination"
)

type fakeRepository struct {
	createFn  func(ctx context.Context, product *models.Product) error
	updateFn  func(ctx context.Context, product *models.Product) error
	deleteFn  func(ctx context.Context, id uuid.UUID) error
	findFn    func(ctx context.Context, id uuid.UUID) (*models.Product, error)
	findIDsFn func(ctx context.Context, ids []uuid.UUID) ([]models.Product, error)
	listFn    func(ctx context.Context, query ListQuery) ([]models.Product, pagination.Envelope, error)
	countFn   func(ctx context.Context, id uuid.UUID) (int64, error)
}

func (f *fakeRepository) Create(ctx context.Context, product *models.Product) error {
	if f.createFn != nil {
		return f.createFn(ctx, product)
	}
	return nil
}

func (f *fakeRepository) Update(ctx context.Context, product *models.Product) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, product)
	}
	return nil
}

func (f *fakeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, id)
	}
	return nil
}

func (f *fakeRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	if f.findFn != nil {
		return f.findFn(ctx, id)
	}
	return &models.Product{
		ID:          id,
		Name:        "Headphones",
		Description: "Wireless over-ear headphones",
		Quantity:    10,
		Price:       decimal.NewFromInt(120),
	}, nil
}

func (f *fakeRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Product, error) {
	if f.findIDsFn != nil {
		return f.findIDsFn(ctx, ids)
	}
	return nil, nil
}

func (f *fakeRepository) List(ctx context.Context, query ListQuery) ([]models.Product, pagination.Envelope, error) {
	if f.listFn != nil {
		return f.listFn(ctx, query)
	}
	return nil, pagination.Envelope{}, nil
}

func (f *fakeRepository) CountCouponReferences(ctx context.Context, id uuid.UUID) (int64, error) {
	if f.countFn != nil {
		return f.countFn(ctx, id)
	}
	return 0, nil
}

func newServiceWithRepo(repo Repository) Service {
	svc, _ := NewService(repo)
	return svc
}

func validCreateInput() CreateInput {
	return CreateInput{
		Name:        "Headphones",
		Description: "Wireless over-ear headphones",
		Quantity:    10,
		Price:       decimal.NewFromInt(120),
	}
}

func TestService_CreatePersistsProduct(t *testing.T) {
	var saved *models.Product
	repo := &fakeRepository{
		createFn: func(ctx context.Context, product *models.Product) error {
			saved = product
			return nil
		},
	}

	svc := newServiceWithRepo(repo)
	product, err := svc.Create(context.Background(), validCreateInput())
	if err != nil {
		t.Fatalf("unexpected create error: %v", err)
	}
	if saved == nil || saved.ID == uuid.Nil {
		t.Fatal("expected product persisted with generated id")
	}
	if !product.Price.Equal(decimal.NewFromInt(120)) {
		t.Fatalf("unexpected price %s", product.Price)
	}
}

func TestService_CreateValidation(t *testing.T) {
	svc := newServiceWithRepo(&fakeRepository{})

	cases := map[string]CreateInput{
		"missing name":        func() CreateInput { in := validCreateInput(); in.Name = "  "; return in }(),
		"missing description": func() CreateInput { in := validCreateInput(); in.Description = ""; return in }(),
		"negative quantity":   func() CreateInput { in := validCreateInput(); in.Quantity = -1; return in }(),
		"zero price":          func() CreateInput { in := validCreateInput(); in.Price = decimal.Zero; return in }(),
		"offer above price": func() CreateInput {
			in := validCreateInput()
			offer := decimal.NewFromInt(200)
			in.OfferPrice = &offer
			return in
		}(),
	}

	for name, input := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), input)
			typed := pkgerrors.As(err)
			if typed == nil || typed.Code() != pkgerrors.CodeValidation {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}

func TestService_GetNotFound(t *testing.T) {
	repo := &fakeRepository{
		findFn: func(ctx context.Context, id uuid.UUID) (*models.Product, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}

	svc := newServiceWithRepo(repo)
	_, err := svc.Get(context.Background(), uuid.New())
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found error, got %v", err)
	}
}

func TestService_UpdateAppliesPartialFields(t *testing.T) {
	repo := &fakeRepository{}
	svc := newServiceWithRepo(repo)

	quantity := 5
	offer := decimal.NewFromInt(90)
	updated, err := svc.Update(context.Background(), uuid.New(), UpdateInput{
		Quantity:   &quantity,
		OfferPrice: &offer,
	})
	if err != nil {
		t.Fatalf("unexpected update error: %v", err)
	}
	if updated.Name != "Headphones" {
		t.Fatalf("expected name preserved, got %q", updated.Name)
	}
	if updated.Quantity != 5 {
		t.Fatalf("expected quantity updated, got %d", updated.Quantity)
	}
	if updated.OfferPrice == nil || !updated.OfferPrice.Equal(offer) {
		t.Fatal("expected offer price applied")
	}
}

func TestService_UpdateClearsOfferAndBrand(t *testing.T) {
	brandID := uuid.New()
	offer := decimal.NewFromInt(90)
	repo := &fakeRepository{
		findFn: func(ctx context.Context, id uuid.UUID) (*models.Product, error) {
			return &models.Product{
				ID:          id,
				Name:        "Headphones",
				Description: "Wireless over-ear headphones",
				Price:       decimal.NewFromInt(120),
				OfferPrice:  &offer,
				BrandID:     &brandID,
			}, nil
		},
	}

	svc := newServiceWithRepo(repo)
	updated, err := svc.Update(context.Background(), uuid.New(), UpdateInput{ClearOffer: true, ClearBrand: true})
	if err != nil {
		t.Fatalf("unexpected update error: %v", err)
	}
	if updated.OfferPrice != nil {
		t.Fatal("expected offer price cleared")
	}
	if updated.BrandID != nil {
		t.Fatal("expected brand cleared")
	}
}

func TestService_DeleteBlockedByCouponReferences(t *testing.T) {
	deleted := false
	repo := &fakeRepository{
		countFn: func(ctx context.Context, id uuid.UUID) (int64, error) {
			return 1, nil
		},
		deleteFn: func(ctx context.Context, id uuid.UUID) error {
			deleted = true
			return nil
		},
	}

	svc := newServiceWithRepo(repo)
	err := svc.Delete(context.Background(), uuid.New())
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeReference {
		t.Fatalf("expected reference error, got %v", err)
	}
	if deleted {
		t.Fatal("delete must not run when a coupon scopes to the product")
	}
}

func TestService_GetManySkipsLookupForEmptyInput(t *testing.T) {
	repo := &fakeRepository{
		findIDsFn: func(ctx context.Context, ids []uuid.UUID) ([]models.Product, error) {
			if len(ids) == 0 {
				return nil, nil
			}
			return []models.Product{{ID: ids[0]}}, nil
		},
	}

	svc := newServiceWithRepo(repo)
	rows, err := svc.GetMany(context.Background(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("expected no rows, got %d", len(rows))
	}
}
