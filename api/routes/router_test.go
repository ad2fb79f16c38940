package routes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/shopmallhq/shopmall-backend/internal/products"
	pkgauth "github.com/shopmallhq/shopmall-backend/pkg/auth"
	"github.com/shopmallhq/shopmall-backend/pkg/config"
)

type stubSessionChecker struct {
	ok bool
}

func (s *stubSessionChecker) HasSession(ctx context.Context, accessID string) (bool, error) {
	return s.ok, nil
}

type stubCatalog struct{}

func (stubCatalog) Hot(ctx context.Context) ([]products.SummaryDTO, error)         { return nil, nil }
func (stubCatalog) Discounted(ctx context.Context) ([]products.SummaryDTO, error)  { return nil, nil }
func (stubCatalog) BestSelling(ctx context.Context) ([]products.SummaryDTO, error) { return nil, nil }
func (stubCatalog) Upcoming(ctx context.Context) ([]products.SummaryDTO, error)    { return nil, nil }
func (stubCatalog) Detail(ctx context.Context, guid string) (*products.DetailDTO, error) {
	return &products.DetailDTO{}, nil
}

func testRouterConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Env: "dev", Port: "0"},
		JWT: config.JWTConfig{
			Secret:            "router-test-secret",
			Issuer:            "shopmall-test",
			ExpirationMinutes: 30,
		},
	}
}

func newTestRouter(t *testing.T, checker *stubSessionChecker) http.Handler {
	t.Helper()
	return NewRouter(testRouterConfig(), nil, nil, nil, checker, Services{
		Catalog: stubCatalog{},
	})
}

func mintRouterToken(t *testing.T, cfg *config.Config, role string) string {
	t.Helper()
	token, err := pkgauth.MintAccessToken(cfg.JWT, time.Now().UTC(), pkgauth.AccessTokenPayload{
		UserID: uuid.New(),
		Role:   role,
		JTI:    uuid.NewString(),
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return token
}

func TestRouterHealthLive(t *testing.T) {
	router := newTestRouter(t, &stubSessionChecker{ok: true})

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/health/live", nil))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
}

func TestRouterExposesMetrics(t *testing.T) {
	router := newTestRouter(t, &stubSessionChecker{ok: true})

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
}

func TestRouterPublicCatalog(t *testing.T) {
	router := newTestRouter(t, &stubSessionChecker{ok: true})

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/products/hot", nil))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
}

func TestRouterProtectsProfile(t *testing.T) {
	router := newTestRouter(t, &stubSessionChecker{ok: true})

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/users/me", nil))

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}

func TestRouterRejectsRevokedSession(t *testing.T) {
	cfg := testRouterConfig()
	router := NewRouter(cfg, nil, nil, nil, &stubSessionChecker{ok: false}, Services{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/me", nil)
	req.Header.Set("Authorization", "Bearer "+mintRouterToken(t, cfg, pkgauth.RoleCustomer))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}

func TestRouterAdminRequiresRole(t *testing.T) {
	cfg := testRouterConfig()
	router := NewRouter(cfg, nil, nil, nil, &stubSessionChecker{ok: true}, Services{})

	req := httptest.NewRequest(http.MethodGet, "/api/admin/v1/products", nil)
	req.Header.Set("Authorization", "Bearer "+mintRouterToken(t, cfg, pkgauth.RoleCustomer))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 got %d", resp.Code)
	}
}
