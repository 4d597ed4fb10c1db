package users

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dev-arham/ecommerce-server/pkg/auth"
	"github.com/dev-arham/ecommerce-server/pkg/auth/session"
	"github.com/dev-arham/ecommerce-server/pkg/config"
	"github.com/dev-arham/ecommerce-server/pkg/db/models"
	pkgerrors "github.com/dev-arham/ecommerce-server/pkg/errors"
	"github.com/dev-arham/ecommerce-server/pkg/pagination"
	"github.com/dev-arham/ecommerce-server/pkg/security"
)

var (
	testJWTConfig = config.JWTConfig{
		Secret:                 "unit-test-secret",
		Issuer:                 "ecommerce-server-test",
		ExpirationMinutes:      15,
		RefreshTokenTTLMinutes: 60,
	}
	testPasswordConfig = config.PasswordConfig{
		ArgonMemoryKB:    8192,
		ArgonTime:        1,
		ArgonParallelism: 1,
		ArgonSaltLen:     16,
		ArgonKeyLen:      32,
	}
)

type fakeRepository struct {
	createFn      func(ctx context.Context, user *models.User) error
	updateFn      func(ctx context.Context, user *models.User) error
	deleteFn      func(ctx context.Context, id uuid.UUID) error
	findFn        func(ctx context.Context, id uuid.UUID) (*models.User, error)
	findByEmailFn func(ctx context.Context, email string) (*models.User, error)
	listFn        func(ctx context.Context, query ListQuery) ([]models.User, pagination.Envelope, error)
	orderCountFn  func(ctx context.Context, id uuid.UUID) (int64, error)
}

func (f *fakeRepository) Create(ctx context.Context, user *models.User) error {
	if f.createFn != nil {
		return f.createFn(ctx, user)
	}
	return nil
}

func (f *fakeRepository) Update(ctx context.Context, user *models.User) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, user)
	}
	return nil
}

func (f *fakeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, id)
	}
	return nil
}

func (f *fakeRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	if f.findFn != nil {
		return f.findFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	if f.findByEmailFn != nil {
		return f.findByEmailFn(ctx, email)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepository) List(ctx context.Context, query ListQuery) ([]models.User, pagination.Envelope, error) {
	if f.listFn != nil {
		return f.listFn(ctx, query)
	}
	return nil, pagination.Envelope{}, nil
}

func (f *fakeRepository) CountOrderReferences(ctx context.Context, id uuid.UUID) (int64, error) {
	if f.orderCountFn != nil {
		return f.orderCountFn(ctx, id)
	}
	return 0, nil
}

type fakeSessionManager struct {
	generateFn func(ctx context.Context, accessID string) (string, error)
	rotateFn   func(ctx context.Context, oldAccessID, provided string) (string, string, error)
	revokeFn   func(ctx context.Context, accessID string) error
}

func (f *fakeSessionManager) Generate(ctx context.Context, accessID string) (string, error) {
	if f.generateFn != nil {
		return f.generateFn(ctx, accessID)
	}
	return "refresh-token", nil
}

func (f *fakeSessionManager) Rotate(ctx context.Context, oldAccessID, provided string) (string, string, error) {
	if f.rotateFn != nil {
		return f.rotateFn(ctx, oldAccessID, provided)
	}
	return session.NewAccessID(), "rotated-refresh-token", nil
}

func (f *fakeSessionManager) Revoke(ctx context.Context, accessID string) error {
	if f.revokeFn != nil {
		return f.revokeFn(ctx, accessID)
	}
	return nil
}

func newTestService(repo Repository, sessions SessionManager) Service {
	svc, _ := NewService(repo, sessions, testJWTConfig, testPasswordConfig)
	return svc
}

func hashedUser(t *testing.T, email, password string) *models.User {
	t.Helper()
	hash, err := security.HashPassword(password, testPasswordConfig)
	if err != nil {
		t.Fatalf("hashing password: %v", err)
	}
	return &models.User{
		ID:           uuid.New(),
		Name:         "Admin",
		Email:        email,
		PasswordHash: hash,
		IsAdmin:      true,
	}
}

func TestService_RegisterHashesPasswordAndRedacts(t *testing.T) {
	var saved *models.User
	repo := &fakeRepository{
		createFn: func(ctx context.Context, user *models.User) error {
			saved = user
			return nil
		},
	}

	svc := newTestService(repo, &fakeSessionManager{})
	user, err := svc.Register(context.Background(), RegisterInput{
		Name:     "Admin",
		Email:    " Admin@Example.com ",
		Password: "correct-horse",
	})
	if err != nil {
		t.Fatalf("unexpected register error: %v", err)
	}
	if saved == nil || saved.PasswordHash == "" || saved.PasswordHash == "correct-horse" {
		t.Fatal("expected password stored hashed")
	}
	if user.Email != "admin@example.com" {
		t.Fatalf("expected normalized email, got %q", user.Email)
	}
	if user.PasswordHash != "" {
		t.Fatal("expected hash stripped from response")
	}
}

func TestService_RegisterShortPassword(t *testing.T) {
	svc := newTestService(&fakeRepository{}, &fakeSessionManager{})

	_, err := svc.Register(context.Background(), RegisterInput{
		Name:     "Admin",
		Email:    "admin@example.com",
		Password: "short",
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestService_LoginIssuesTokenPair(t *testing.T) {
	stored := hashedUser(t, "admin@example.com", "correct-horse")
	var updated *models.User
	repo := &fakeRepository{
		findByEmailFn: func(ctx context.Context, email string) (*models.User, error) {
			if email != "admin@example.com" {
				t.Fatalf("expected normalized lookup, got %q", email)
			}
			return stored, nil
		},
		updateFn: func(ctx context.Context, user *models.User) error {
			updated = user
			return nil
		},
	}
	var storedAccessID string
	sessions := &fakeSessionManager{
		generateFn: func(ctx context.Context, accessID string) (string, error) {
			storedAccessID = accessID
			return "refresh-token", nil
		},
	}

	svc := newTestService(repo, sessions)
	result, err := svc.Login(context.Background(), LoginInput{
		Email:    "Admin@Example.com",
		Password: "correct-horse",
	})
	if err != nil {
		t.Fatalf("unexpected login error: %v", err)
	}
	if result.AccessToken == "" || result.RefreshToken != "refresh-token" {
		t.Fatal("expected token pair issued")
	}
	if result.User.PasswordHash != "" {
		t.Fatal("expected hash stripped from login response")
	}
	if updated == nil || updated.LastLoginAt == nil {
		t.Fatal("expected last login recorded")
	}

	claims, err := auth.ParseAccessToken(testJWTConfig, result.AccessToken)
	if err != nil {
		t.Fatalf("parsing issued token: %v", err)
	}
	if claims.UserID != stored.ID || !claims.IsAdmin {
		t.Fatalf("unexpected claims %+v", claims)
	}
	if claims.ID != storedAccessID {
		t.Fatal("expected jti to match the stored session key")
	}
}

func TestService_LoginWrongPassword(t *testing.T) {
	stored := hashedUser(t, "admin@example.com", "correct-horse")
	repo := &fakeRepository{
		findByEmailFn: func(ctx context.Context, email string) (*models.User, error) {
			return stored, nil
		},
	}

	svc := newTestService(repo, &fakeSessionManager{})
	_, err := svc.Login(context.Background(), LoginInput{
		Email:    "admin@example.com",
		Password: "wrong",
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized error, got %v", err)
	}
}

func TestService_LoginUnknownEmailMatchesWrongPassword(t *testing.T) {
	svc := newTestService(&fakeRepository{}, &fakeSessionManager{})

	_, err := svc.Login(context.Background(), LoginInput{
		Email:    "ghost@example.com",
		Password: "whatever1",
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized error, got %v", err)
	}
	if typed.Error() != "Invalid email or password." {
		t.Fatalf("unexpected message %q", typed.Error())
	}
}

func TestService_RefreshRotatesSession(t *testing.T) {
	stored := hashedUser(t, "admin@example.com", "correct-horse")
	oldAccessID := session.NewAccessID()
	accessToken, err := auth.MintAccessToken(testJWTConfig, time.Now(), auth.AccessTokenPayload{
		UserID:  stored.ID,
		Email:   stored.Email,
		IsAdmin: stored.IsAdmin,
		JTI:     oldAccessID,
	})
	if err != nil {
		t.Fatalf("minting token: %v", err)
	}

	newAccessID := session.NewAccessID()
	sessions := &fakeSessionManager{
		rotateFn: func(ctx context.Context, gotAccessID, provided string) (string, string, error) {
			if gotAccessID != oldAccessID {
				t.Fatalf("expected rotation keyed by jti, got %q", gotAccessID)
			}
			if provided != "refresh-token" {
				t.Fatalf("unexpected refresh token %q", provided)
			}
			return newAccessID, "rotated-refresh-token", nil
		},
	}
	repo := &fakeRepository{
		findFn: func(ctx context.Context, id uuid.UUID) (*models.User, error) {
			return stored, nil
		},
	}

	svc := newTestService(repo, sessions)
	result, err := svc.Refresh(context.Background(), RefreshInput{
		AccessToken:  accessToken,
		RefreshToken: "refresh-token",
	})
	if err != nil {
		t.Fatalf("unexpected refresh error: %v", err)
	}
	if result.RefreshToken != "rotated-refresh-token" {
		t.Fatal("expected rotated refresh token returned")
	}

	claims, err := auth.ParseAccessToken(testJWTConfig, result.AccessToken)
	if err != nil {
		t.Fatalf("parsing refreshed token: %v", err)
	}
	if claims.ID != newAccessID {
		t.Fatal("expected new jti on refreshed token")
	}
}

func TestService_RefreshInvalidToken(t *testing.T) {
	stored := hashedUser(t, "admin@example.com", "correct-horse")
	accessToken, err := auth.MintAccessToken(testJWTConfig, time.Now(), auth.AccessTokenPayload{
		UserID: stored.ID,
		Email:  stored.Email,
		JTI:    session.NewAccessID(),
	})
	if err != nil {
		t.Fatalf("minting token: %v", err)
	}

	sessions := &fakeSessionManager{
		rotateFn: func(ctx context.Context, oldAccessID, provided string) (string, string, error) {
			return "", "", session.ErrInvalidRefreshToken
		},
	}

	svc := newTestService(&fakeRepository{}, sessions)
	_, err = svc.Refresh(context.Background(), RefreshInput{
		AccessToken:  accessToken,
		RefreshToken: "stale",
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized error, got %v", err)
	}
}

func TestService_LogoutRevokesSession(t *testing.T) {
	var revoked string
	sessions := &fakeSessionManager{
		revokeFn: func(ctx context.Context, accessID string) error {
			revoked = accessID
			return nil
		},
	}

	svc := newTestService(&fakeRepository{}, sessions)
	if err := svc.Logout(context.Background(), "session-1"); err != nil {
		t.Fatalf("unexpected logout error: %v", err)
	}
	if revoked != "session-1" {
		t.Fatalf("expected session revoked, got %q", revoked)
	}
}

func TestService_DeleteBlockedByOrderReferences(t *testing.T) {
	deleted := false
	repo := &fakeRepository{
		findFn: func(ctx context.Context, id uuid.UUID) (*models.User, error) {
			return &models.User{ID: id, Email: "admin@example.com"}, nil
		},
		orderCountFn: func(ctx context.Context, id uuid.UUID) (int64, error) {
			return 2, nil
		},
		deleteFn: func(ctx context.Context, id uuid.UUID) error {
			deleted = true
			return nil
		},
	}

	svc := newTestService(repo, &fakeSessionManager{})
	err := svc.Delete(context.Background(), uuid.New())
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeReference {
		t.Fatalf("expected reference error, got %v", err)
	}
	if deleted {
		t.Fatal("delete must not run when orders reference the user")
	}
}

func TestService_ListStripsPasswordHashes(t *testing.T) {
	repo := &fakeRepository{
		listFn: func(ctx context.Context, query ListQuery) ([]models.User, pagination.Envelope, error) {
			return []models.User{{ID: uuid.New(), PasswordHash: "secret"}},
				pagination.Envelope{TotalItems: 1, TotalPages: 1, CurrentPage: 1}, nil
		},
	}

	svc := newTestService(repo, &fakeSessionManager{})
	rows, _, err := svc.List(context.Background(), ListQuery{})
	if err != nil {
		t.Fatalf("unexpected list error: %v", err)
	}
	if rows[0].PasswordHash != "" {
		t.Fatal("expected hash stripped from listing")
	}
}
