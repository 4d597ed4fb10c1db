package categories

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dev-arham/ecommerce-server/pkg/db/models"
	pkgerrors "github.com/dev-arham/ecommerce-server/pkg/errors"
	"github.com/dev-arham/ecommerce-server/pkg/pagination"
)

type fakeRepository struct {
	createFn func(ctx context.Context, category *models.Category) error
	updateFn func(ctx context.Context, category *models.Category) error
	deleteFn func(ctx context.Context, id uuid.UUID) error
	findFn   func(ctx context.Context, id uuid.UUID) (*models.Category, error)
	listFn   func(ctx context.Context, query ListQuery) ([]models.Category, pagination.Envelope, error)
	countFn       func(ctx context.Context, id uuid.UUID) (int64, error)
	couponCountFn func(ctx context.Context, id uuid.UUID) (int64, error)
}

func (f *fakeRepository) Create(ctx context.Context, category *models.Category) error {
	if f.createFn != nil {
		return f.createFn(ctx, category)
	}
	return nil
}

func (f *fakeRepository) Update(ctx context.Context, category *models.Category) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, category)
	}
	return nil
}

func (f *fakeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, id)
	}
	return nil
}

func (f *fakeRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	if f.findFn != nil {
		return f.findFn(ctx, id)
	}
	return &models.Category{ID: id, Name: "Electronics"}, nil
}

func (f *fakeRepository) List(ctx context.Context, query ListQuery) ([]models.Category, pagination.Envelope, error) {
	if f.listFn != nil {
		return f.listFn(ctx, query)
	}
	return nil, pagination.Envelope{}, nil
}

func (f *fakeRepository) CountProductReferences(ctx context.Context, id uuid.UUID) (int64, error) {
	if f.countFn != nil {
		return f.countFn(ctx, id)
	}
	return 0, nil
}

func (f *fakeRepository) CountCouponReferences(ctx context.Context, id uuid.UUID) (int64, error) {
	if f.couponCountFn != nil {
		return f.couponCountFn(ctx, id)
	}
	return 0, nil
}

func newServiceWithRepo(repo Repository) Service {
	svc, _ := NewService(repo)
	return svc
}

func TestService_CreateTrimsAndPersists(t *testing.T) {
	var saved *models.Category
	repo := &fakeRepository{
		createFn: func(ctx context.Context, category *models.Category) error {
			saved = category
			return nil
		},
	}

	svc := newServiceWithRepo(repo)
	category, err := svc.Create(context.Background(), CreateInput{Name: "  Apparel  "})
	if err != nil {
		t.Fatalf("unexpected create error: %v", err)
	}
	if category.Name != "Apparel" {
		t.Fatalf("expected trimmed name, got %q", category.Name)
	}
	if saved == nil || saved.ID == uuid.Nil {
		t.Fatal("expected category persisted with generated id")
	}
}

func TestService_CreateRequiresName(t *testing.T) {
	svc := newServiceWithRepo(&fakeRepository{})

	_, err := svc.Create(context.Background(), CreateInput{Name: "   "})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestService_GetNotFound(t *testing.T) {
	repo := &fakeRepository{
		findFn: func(ctx context.Context, id uuid.UUID) (*models.Category, error) {
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

func TestService_DeleteBlockedByProductReferences(t *testing.T) {
	deleted := false
	repo := &fakeRepository{
		countFn: func(ctx context.Context, id uuid.UUID) (int64, error) {
			return 3, nil
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
		t.Fatal("delete must not run when products reference the category")
	}
}

func TestService_DeleteBlockedByCouponReferences(t *testing.T) {
	deleted := false
	repo := &fakeRepository{
		couponCountFn: func(ctx context.Context, id uuid.UUID) (int64, error) {
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
		t.Fatal("delete must not run when coupons are scoped to the category")
	}
}

func TestService_DeleteSucceedsWithoutReferences(t *testing.T) {
	deleted := false
	repo := &fakeRepository{
		deleteFn: func(ctx context.Context, id uuid.UUID) error {
			deleted = true
			return nil
		},
	}

	svc := newServiceWithRepo(repo)
	if err := svc.Delete(context.Background(), uuid.New()); err != nil {
		t.Fatalf("unexpected delete error: %v", err)
	}
	if !deleted {
		t.Fatal("expected delete to run")
	}
}

func TestService_ListWrapsRepoErrors(t *testing.T) {
	repo := &fakeRepository{
		listFn: func(ctx context.Context, query ListQuery) ([]models.Category, pagination.Envelope, error) {
			return nil, pagination.Envelope{}, errors.New("connection reset")
		},
	}

	svc := newServiceWithRepo(repo)
	_, _, err := svc.List(context.Background(), ListQuery{})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeDependency {
		t.Fatalf("expected dependency error, got %v", err)
	}
}
