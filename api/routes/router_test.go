package routes

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/unideals/unideals-backend/internal/auth"
	pkgauth "github.com/unideals/unideals-backend/pkg/auth"
	"github.com/unideals/unideals-backend/pkg/config"
	"github.com/unideals/unideals-backend/pkg/enums"
	"github.com/unideals/unideals-backend/pkg/logger"
)

type stubAuthService struct {
	registered []string
}

func (s *stubAuthService) RegisterClient(_ context.Context, email string) error {
	s.registered = append(s.registered, email)
	return nil
}

func (s *stubAuthService) VerifyClient(context.Context, string, string) error { return nil }

func (s *stubAuthService) SetClientPassword(context.Context, string, string) (*auth.ClientSession, error) {
	return &auth.ClientSession{}, nil
}

func (s *stubAuthService) LoginClient(context.Context, string, string) (*auth.ClientSession, error) {
	return &auth.ClientSession{}, nil
}

func (s *stubAuthService) RegisterSupplier(context.Context, auth.RegisterSupplierInput) (*auth.SupplierSession, error) {
	return &auth.SupplierSession{}, nil
}

func (s *stubAuthService) LoginSupplier(context.Context, string, string) (*auth.SupplierSession, error) {
	return &auth.SupplierSession{}, nil
}

func testRouterConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Env: "test", Port: "0"},
		JWT: config.JWTConfig{Secret: "test-secret", Issuer: "unideals-test", ExpirationMinutes: 30},
	}
}

func newTestRouter(t *testing.T, authSvc auth.Service) http.Handler {
	t.Helper()
	return NewRouter(Deps{
		Config:      testRouterConfig(),
		Logger:      logger.New(logger.Options{ServiceName: "router-test", Output: io.Discard}),
		AuthService: authSvc,
	})
}

func TestHealthLive(t *testing.T) {
	router := newTestRouter(t, &stubAuthService{})

	req := httptest.NewRequest("GET", "/health/live", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "test", rec.Header().Get("X-UniDeals-Env"))
}

func TestClientRegisterReachesAuthService(t *testing.T) {
	svc := &stubAuthService{}
	router := newTestRouter(t, svc)

	req := httptest.NewRequest("POST", "/api/client/register", strings.NewReader(`{"email":"amine@emsi.ma"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, []string{"amine@emsi.ma"}, svc.registered)
}

func TestClientRoutesRequireAuth(t *testing.T) {
	router := newTestRouter(t, &stubAuthService{})

	for _, route := range []string{"/api/client/panier", "/api/client/orders", "/api/client/profile", "/api/client/products"} {
		req := httptest.NewRequest("GET", route, nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		require.Equal(t, http.StatusUnauthorized, rec.Code, route)
	}
}

func TestSupplierRoutesRejectClientTokens(t *testing.T) {
	router := newTestRouter(t, &stubAuthService{})

	token, err := pkgauth.MintAccessToken(testRouterConfig().JWT, time.Now(), pkgauth.AccessTokenPayload{
		ActorID: uuid.New(),
		Role:    enums.RoleClient,
		Email:   "amine@emsi.ma",
	})
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/api/supplier/orders", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusForbidden, rec.Code)
}

func TestMetricsEndpointExposed(t *testing.T) {
	router := newTestRouter(t, &stubAuthService{})

	req := httptest.NewRequest("GET", "/metrics", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
}
