package routes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/creditbridge/internal/app/controllers"
	"github.com/yigit/creditbridge/internal/app/models"
	"github.com/yigit/creditbridge/internal/app/services"
	"github.com/yigit/creditbridge/internal/middleware"
	"github.com/yigit/creditbridge/internal/pkg/auth"
	"github.com/yigit/creditbridge/internal/pkg/websocket"
)

type stubResolution struct{ services.ResolutionService }

func (stubResolution) ListPending(context.Context) ([]*models.PendingRequest, error) {
	return []*models.PendingRequest{}, nil
}

type stubCatalog struct{ services.CatalogService }

func (stubCatalog) ListTransferSchools(context.Context) ([]*models.School, error) {
	return []*models.School{}, nil
}

type stubAuth struct{ services.AuthService }

func newTestRouter(t *testing.T) (*gin.Engine, *auth.JWTService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:      "routes-secret",
		AccessTokenExp: time.Hour,
		TokenIssuer:    "creditbridge-test",
	})
	logger := zerolog.Nop()
	hub := websocket.NewHub(0, logger)

	router := gin.New()
	SetupRouter(
		router,
		controllers.NewAuthController(stubAuth{}, logger),
		controllers.NewTransferRequestController(stubResolution{}, logger),
		controllers.NewPendingRequestController(stubResolution{}, logger),
		controllers.NewCatalogController(stubCatalog{}),
		websocket.NewHandler(hub, logger),
		middleware.NewAuthMiddleware(jwtService),
	)
	return router, jwtService
}

func TestPublicRoutesNeedNoToken(t *testing.T) {
	router, _ := newTestRouter(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/schools", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAdminRoutesRequireToken(t *testing.T) {
	router, jwtService := newTestRouter(t)

	protected := []struct{ method, path string }{
		{http.MethodGet, "/api/v1/pending-requests"},
		{http.MethodGet, "/api/v1/pending-requests/1"},
		{http.MethodPost, "/api/v1/pending-requests/1/approve"},
		{http.MethodPost, "/api/v1/pending-requests/1/disapprove"},
		{http.MethodGet, "/api/v1/pending-requests/feed"},
		{http.MethodGet, "/api/v1/precedents"},
		{http.MethodPost, "/api/v1/schools"},
		{http.MethodPost, "/api/v1/schools/2/courses"},
	}
	for _, r := range protected {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(r.method, r.path, nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code, "%s %s", r.method, r.path)
	}

	token, _, err := jwtService.GenerateAccessToken(&models.Admin{ID: 1, Email: "admin@example.edu"})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/pending-requests", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}
