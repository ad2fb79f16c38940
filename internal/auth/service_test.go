package auth

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	pkgauth "github.com/shopmallhq/shopmall-backend/pkg/auth"
	"github.com/shopmallhq/shopmall-backend/pkg/auth/session"
	"github.com/shopmallhq/shopmall-backend/pkg/config"
	"github.com/shopmallhq/shopmall-backend/pkg/db/models"
	pkgerrors "github.com/shopmallhq/shopmall-backend/pkg/errors"
	"github.com/shopmallhq/shopmall-backend/pkg/security"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:                 "secret",
		Issuer:                 "shopmall",
		ExpirationMinutes:      30,
		RefreshTokenTTLMinutes: 10080,
	}
}

func testPasswordConfig() config.PasswordConfig {
	return config.PasswordConfig{
		ArgonMemoryKB:    8,
		ArgonTime:        1,
		ArgonParallelism: 1,
		ArgonSaltLen:     16,
		ArgonKeyLen:      32,
	}
}

func mustHashPassword(t *testing.T, password string) string {
	t.Helper()
	hash, err := security.HashPassword(password, testPasswordConfig())
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	return hash
}

func strPtr(s string) *string { return &s }

type stubUserRepo struct {
	user      *models.User
	findErr   error
	lastLogin *time.Time
}

func (s *stubUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	if s.findErr != nil {
		return nil, s.findErr
	}
	if s.user == nil || s.user.Email != email {
		return nil, gorm.ErrRecordNotFound
	}
	return s.user, nil
}

func (s *stubUserRepo) UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	s.lastLogin = &at
	return nil
}

type stubSessionManager struct {
	generated   []string
	revoked     []string
	rotateErr   error
	newAccessID string
}

func (s *stubSessionManager) Generate(ctx context.Context, accessID string) (string, error) {
	s.generated = append(s.generated, accessID)
	return "refresh-" + accessID, nil
}

func (s *stubSessionManager) Rotate(ctx context.Context, oldAccessID, provided string) (string, string, error) {
	if s.rotateErr != nil {
		return "", "", s.rotateErr
	}
	id := s.newAccessID
	if id == "" {
		id = session.NewAccessID()
	}
	return id, "refresh-" + id, nil
}

func (s *stubSessionManager) Revoke(ctx context.Context, accessID string) error {
	s.revoked = append(s.revoked, accessID)
	return nil
}

func buildTestService(t *testing.T, user *models.User) (Service, *stubSessionManager, *stubUserRepo) {
	t.Helper()
	repo := &stubUserRepo{user: user}
	sessions := &stubSessionManager{}
	svc, err := NewService(ServiceParams{
		UserRepo:       repo,
		SessionManager: sessions,
		JWTConfig:      testJWTConfig(),
	})
	if err != nil {
		t.Fatalf("build service: %v", err)
	}
	return svc, sessions, repo
}

func activeUser(t *testing.T, password string) *models.User {
	t.Helper()
	return &models.User{
		ID:           uuid.New(),
		Email:        "shopper@example.com",
		PasswordHash: mustHashPassword(t, password),
		Username:     "shopper",
		Status:       models.UserStatusActive,
	}
}

func TestServiceLoginSuccess(t *testing.T) {
	password := "shopper-secret"
	user := activeUser(t, password)
	svc, sessions, repo := buildTestService(t, user)

	resp, err := svc.Login(context.Background(), LoginRequest{Email: "  Shopper@Example.com ", Password: password})
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	claims, err := pkgauth.ParseAccessToken(testJWTConfig(), resp.AccessToken)
	if err != nil {
		t.Fatalf("parse access token: %v", err)
	}
	if claims.Role != pkgauth.RoleCustomer {
		t.Fatalf("expected customer role claim, got %s", claims.Role)
	}
	if claims.UserID != user.ID {
		t.Fatalf("expected user id claim")
	}
	if resp.RefreshToken == "" {
		t.Fatal("expected refresh token to be set")
	}
	if len(sessions.generated) != 1 || sessions.generated[0] != claims.ID {
		t.Fatalf("expected session keyed by jti, got %v", sessions.generated)
	}
	if repo.lastLogin == nil {
		t.Fatal("expected last login to be recorded")
	}
	if resp.User == nil || resp.User.Email != user.Email {
		t.Fatalf("expected user dto, got %+v", resp.User)
	}
}

func TestServiceLoginWrongPassword(t *testing.T) {
	user := activeUser(t, "right-password")
	svc, _, _ := buildTestService(t, user)

	_, err := svc.Login(context.Background(), LoginRequest{Email: user.Email, Password: "wrong-password"})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestServiceLoginUnknownEmail(t *testing.T) {
	svc, _, _ := buildTestService(t, nil)

	_, err := svc.Login(context.Background(), LoginRequest{Email: "nobody@example.com", Password: "whatever"})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestServiceLoginDisabledAccount(t *testing.T) {
	password := "disabled-secret"
	user := activeUser(t, password)
	user.Status = models.UserStatusDisabled
	svc, _, _ := buildTestService(t, user)

	_, err := svc.Login(context.Background(), LoginRequest{Email: user.Email, Password: password})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized for disabled account, got %v", err)
	}
}

func TestServiceAdminLoginRequiresAdminRole(t *testing.T) {
	password := "admin-secret"
	user := activeUser(t, password)
	svc, _, _ := buildTestService(t, user)

	_, err := svc.AdminLogin(context.Background(), LoginRequest{Email: user.Email, Password: password})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized for non-admin, got %v", err)
	}
}

func TestServiceAdminLoginSuccess(t *testing.T) {
	password := "admin-secret"
	user := activeUser(t, password)
	user.SystemRole = strPtr(models.SystemRoleAdmin)
	svc, _, _ := buildTestService(t, user)

	resp, err := svc.AdminLogin(context.Background(), LoginRequest{Email: user.Email, Password: password})
	if err != nil {
		t.Fatalf("admin login: %v", err)
	}

	claims, err := pkgauth.ParseAccessToken(testJWTConfig(), resp.AccessToken)
	if err != nil {
		t.Fatalf("parse access token: %v", err)
	}
	if claims.Role != pkgauth.RoleAdmin {
		t.Fatalf("expected admin role claim, got %s", claims.Role)
	}
}

func TestServiceRefreshRotatesPair(t *testing.T) {
	cfg := testJWTConfig()
	user := activeUser(t, "x")
	svc, sessions, _ := buildTestService(t, user)
	sessions.newAccessID = session.NewAccessID()

	oldJTI := session.NewAccessID()
	oldToken, err := pkgauth.MintAccessToken(cfg, time.Now().UTC().Add(-time.Hour), pkgauth.AccessTokenPayload{
		UserID: user.ID,
		Role:   pkgauth.RoleCustomer,
		JTI:    oldJTI,
	})
	if err != nil {
		t.Fatalf("mint: %v", err)
	}

	pair, err := svc.Refresh(context.Background(), RefreshRequest{AccessToken: oldToken, RefreshToken: "refresh-" + oldJTI})
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}

	claims, err := pkgauth.ParseAccessToken(cfg, pair.AccessToken)
	if err != nil {
		t.Fatalf("parse rotated token: %v", err)
	}
	if claims.ID != sessions.newAccessID {
		t.Fatalf("expected new jti %s, got %s", sessions.newAccessID, claims.ID)
	}
	if claims.UserID != user.ID || claims.Role != pkgauth.RoleCustomer {
		t.Fatal("expected identity claims to carry over")
	}
	if pair.RefreshToken != "refresh-"+sessions.newAccessID {
		t.Fatalf("unexpected refresh token %s", pair.RefreshToken)
	}
}

func TestServiceRefreshInvalidToken(t *testing.T) {
	svc, sessions, _ := buildTestService(t, activeUser(t, "x"))
	sessions.rotateErr = session.ErrInvalidRefreshToken

	_, err := svc.Refresh(context.Background(), RefreshRequest{AccessToken: "garbage", RefreshToken: "nope"})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized for bad access token, got %v", err)
	}

	user := activeUser(t, "x")
	valid, err := pkgauth.MintAccessToken(testJWTConfig(), time.Now().UTC(), pkgauth.AccessTokenPayload{
		UserID: user.ID,
		Role:   pkgauth.RoleCustomer,
	})
	if err != nil {
		t.Fatalf("mint: %v", err)
	}

	_, err = svc.Refresh(context.Background(), RefreshRequest{AccessToken: valid, RefreshToken: "nope"})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized for bad refresh token, got %v", err)
	}
}

func TestServiceLogout(t *testing.T) {
	svc, sessions, _ := buildTestService(t, nil)

	if err := svc.Logout(context.Background(), "access-id"); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if len(sessions.revoked) != 1 || sessions.revoked[0] != "access-id" {
		t.Fatalf("expected revoke call, got %v", sessions.revoked)
	}

	err := svc.Logout(context.Background(), "  ")
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized for empty access id, got %v", err)
	}
}

func TestServiceLoginLookupFailure(t *testing.T) {
	repo := &stubUserRepo{findErr: fmt.Errorf("connection refused")}
	svc, err := NewService(ServiceParams{
		UserRepo:       repo,
		SessionManager: &stubSessionManager{},
		JWTConfig:      testJWTConfig(),
	})
	if err != nil {
		t.Fatalf("build service: %v", err)
	}

	_, err = svc.Login(context.Background(), LoginRequest{Email: "a@b.com", Password: "x"})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeInternal {
		t.Fatalf("expected internal error, got %v", err)
	}
}
