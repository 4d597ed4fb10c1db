package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/dev-arham/ecommerce-server/api/middleware"
	"github.com/dev-arham/ecommerce-server/internal/users"
	"github.com/dev-arham/ecommerce-server/pkg/db/models"
	pkgerrors "github.com/dev-arham/ecommerce-server/pkg/errors"
	"github.com/dev-arham/ecommerce-server/pkg/pagination"
)

type fakeUserService struct {
	updateFn func(ctx context.Context, id uuid.UUID, input users.UpdateInput) (*models.User, error)
	deleteFn func(ctx context.Context, id uuid.UUID) error
}

func (f *fakeUserService) Register(ctx context.Context, input users.RegisterInput) (*models.User, error) {
	return nil, pkgerrors.New(pkgerrors.CodeInternal, "not implemented")
}

func (f *fakeUserService) Login(ctx context.Context, input users.LoginInput) (*users.AuthResult, error) {
	return nil, pkgerrors.New(pkgerrors.CodeInternal, "not implemented")
}

func (f *fakeUserService) Refresh(ctx context.Context, input users.RefreshInput) (*users.AuthResult, error) {
	return nil, pkgerrors.New(pkgerrors.CodeInternal, "not implemented")
}

func (f *fakeUserService) Logout(ctx context.Context, accessID string) error {
	return nil
}

func (f *fakeUserService) ResolveAccount(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return nil, pkgerrors.New(pkgerrors.CodeInternal, "not implemented")
}

func (f *fakeUserService) Update(ctx context.Context, id uuid.UUID, input users.UpdateInput) (*models.User, error) {
	if f.updateFn != nil {
		return f.updateFn(ctx, id, input)
	}
	return &models.User{ID: id}, nil
}

func (f *fakeUserService) Delete(ctx context.Context, id uuid.UUID) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, id)
	}
	return nil
}

func (f *fakeUserService) Get(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return &models.User{ID: id}, nil
}

func (f *fakeUserService) List(ctx context.Context, query users.ListQuery) ([]models.User, pagination.Envelope, error) {
	return nil, pagination.Envelope{}, nil
}

func userRequest(method, target, body string, caller *models.User, targetID uuid.UUID) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", targetID.String())
	ctx := context.WithValue(req.Context(), chi.RouteCtxKey, rctx)
	if caller != nil {
		ctx = middleware.WithUser(ctx, caller)
	}
	return req.WithContext(ctx)
}

func TestUserUpdateRejectsSelfPromotion(t *testing.T) {
	caller := &models.User{ID: uuid.New(), Email: "shopper@example.com"}
	updated := false
	svc := &fakeUserService{
		updateFn: func(ctx context.Context, id uuid.UUID, input users.UpdateInput) (*models.User, error) {
			updated = true
			return &models.User{ID: id}, nil
		},
	}

	req := userRequest(http.MethodPut, "/users/"+caller.ID.String(), `{"isAdmin":true}`, caller, caller.ID)
	rec := httptest.NewRecorder()

	UserUpdate(svc, testLogger())(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d: %s", rec.Code, rec.Body.String())
	}
	if updated {
		t.Fatal("update must not run when a non-admin sets isAdmin")
	}
}

func TestUserUpdateRejectsOtherAccountForNonAdmin(t *testing.T) {
	caller := &models.User{ID: uuid.New(), Email: "shopper@example.com"}

	req := userRequest(http.MethodPut, "/users/"+uuid.NewString(), `{"name":"New Name"}`, caller, uuid.New())
	rec := httptest.NewRecorder()

	UserUpdate(&fakeUserService{}, testLogger())(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

func TestUserUpdateAllowsOwnProfileFields(t *testing.T) {
	caller := &models.User{ID: uuid.New(), Email: "shopper@example.com"}
	var got users.UpdateInput
	svc := &fakeUserService{
		updateFn: func(ctx context.Context, id uuid.UUID, input users.UpdateInput) (*models.User, error) {
			got = input
			return &models.User{ID: id}, nil
		},
	}

	req := userRequest(http.MethodPut, "/users/"+caller.ID.String(), `{"name":"New Name"}`, caller, caller.ID)
	rec := httptest.NewRecorder()

	UserUpdate(svc, testLogger())(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if got.Name == nil || *got.Name != "New Name" {
		t.Fatalf("expected name forwarded, got %+v", got)
	}
}

func TestUserUpdateAdminCanPromote(t *testing.T) {
	caller := &models.User{ID: uuid.New(), Email: "admin@example.com", IsAdmin: true}
	var got users.UpdateInput
	svc := &fakeUserService{
		updateFn: func(ctx context.Context, id uuid.UUID, input users.UpdateInput) (*models.User, error) {
			got = input
			return &models.User{ID: id}, nil
		},
	}

	req := userRequest(http.MethodPut, "/users/"+uuid.NewString(), `{"isAdmin":true}`, caller, uuid.New())
	rec := httptest.NewRecorder()

	UserUpdate(svc, testLogger())(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if got.IsAdmin == nil || !*got.IsAdmin {
		t.Fatalf("expected isAdmin forwarded for admin caller, got %+v", got)
	}
}

func TestUserDeleteRejectsOtherAccountForNonAdmin(t *testing.T) {
	caller := &models.User{ID: uuid.New(), Email: "shopper@example.com"}
	deleted := false
	svc := &fakeUserService{
		deleteFn: func(ctx context.Context, id uuid.UUID) error {
			deleted = true
			return nil
		},
	}

	req := userRequest(http.MethodDelete, "/users/"+uuid.NewString(), "", caller, uuid.New())
	rec := httptest.NewRecorder()

	UserDelete(svc, testLogger())(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
	if deleted {
		t.Fatal("delete must not run for another account")
	}
}
