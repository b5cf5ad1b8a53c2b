package dentists_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/clinova/odonto-api/internal/auth"
	"github.com/clinova/odonto-api/internal/dentists"
	"github.com/clinova/odonto-api/internal/events"
	"github.com/clinova/odonto-api/pkg/models"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type fixture struct {
	router       *gin.Engine
	creatorToken string
	adminToken   string
}

func setup(t *testing.T) *fixture {
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Dentist{}))

	logger := zap.NewNop()
	authSvc, err := auth.NewService(logger, db, nil, "test-secret", 1)
	require.NoError(t, err)
	svc := dentists.NewService(logger, db, events.NewNopPublisher())

	mw := auth.NewMiddleware(authSvc)
	router := gin.New()
	api := router.Group("/api/v1")
	api.Use(mw.Authenticate())
	dentists.RegisterRoutes(api, svc, mw)

	ctx := context.Background()
	token := func(username, role string) string {
		_, err := authSvc.Register(ctx, &models.RegisterRequest{
			Email:    username + "@clinica.test",
			Username: username,
			Password: "password123",
			Role:     role,
		})
		require.NoError(t, err)
		resp, err := authSvc.Login(ctx, &models.LoginRequest{Login: username, Password: "password123"})
		require.NoError(t, err)
		return resp.Token
	}

	return &fixture{
		router:       router,
		creatorToken: token("creator1", models.RoleCreator),
		adminToken:   token("admin1", models.RoleAdmin),
	}
}

func (f *fixture) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func decodeDentist(t *testing.T, w *httptest.ResponseRecorder) models.Dentist {
	var d models.Dentist
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &d))
	return d
}

func TestCreateRequiresAuth(t *testing.T) {
	f := setup(t)

	w := f.do(t, http.MethodPost, "/api/v1/dentistas", "", gin.H{"first_name": "Ana"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCreateAndGet(t *testing.T) {
	f := setup(t)

	w := f.do(t, http.MethodPost, "/api/v1/dentistas", f.creatorToken, gin.H{
		"first_name": "Ana",
		"last_name":  "Gómez",
		"license":    "LIC-001",
		"specialty":  "ortodoncia",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	created := decodeDentist(t, w)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "Ana", created.FirstName)

	w = f.do(t, http.MethodGet, "/api/v1/dentistas/"+created.ID.String(), f.creatorToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	got := decodeDentist(t, w)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, "ortodoncia", got.Specialty)
}

func TestCreateValidation(t *testing.T) {
	f := setup(t)

	// missing required last_name and license
	w := f.do(t, http.MethodPost, "/api/v1/dentistas", f.creatorToken, gin.H{"first_name": "Ana"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateDuplicateLicenseIsConflict(t *testing.T) {
	f := setup(t)

	body := gin.H{"first_name": "Ana", "last_name": "Gómez", "license": "LIC-001"}
	w := f.do(t, http.MethodPost, "/api/v1/dentistas", f.creatorToken, body)
	require.Equal(t, http.StatusCreated, w.Code)

	w = f.do(t, http.MethodPost, "/api/v1/dentistas", f.creatorToken, body)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestGetUnknownIsNotFound(t *testing.T) {
	f := setup(t)

	w := f.do(t, http.MethodGet, "/api/v1/dentistas/6a6e5ff6-52d7-4be4-a3f2-df24ec1ec352", f.creatorToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateMergesPartialInput(t *testing.T) {
	f := setup(t)

	w := f.do(t, http.MethodPost, "/api/v1/dentistas", f.creatorToken, gin.H{
		"first_name": "Ana", "last_name": "Gómez", "license": "LIC-001", "specialty": "ortodoncia",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	created := decodeDentist(t, w)

	w = f.do(t, http.MethodPatch, "/api/v1/dentistas/"+created.ID.String(), f.creatorToken, gin.H{"first_name": "Beatriz"})
	require.Equal(t, http.StatusOK, w.Code)
	updated := decodeDentist(t, w)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "Beatriz", updated.FirstName)
	assert.Equal(t, "Gómez", updated.LastName)
	assert.Equal(t, "ortodoncia", updated.Specialty)
}

func TestRemoveThenListHidesDentist(t *testing.T) {
	f := setup(t)

	w := f.do(t, http.MethodPost, "/api/v1/dentistas", f.creatorToken, gin.H{
		"first_name": "Ana", "last_name": "Gómez", "license": "LIC-001",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	created := decodeDentist(t, w)

	w = f.do(t, http.MethodDelete, "/api/v1/dentistas/"+created.ID.String(), f.creatorToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "eliminado")

	w = f.do(t, http.MethodGet, "/api/v1/dentistas", f.creatorToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var listed []models.Dentist
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listed))
	assert.Empty(t, listed)

	// still resolvable by id, flagged removed
	w = f.do(t, http.MethodGet, "/api/v1/dentistas/"+created.ID.String(), f.creatorToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, decodeDentist(t, w).Removed)

	// and visible with include_removed
	w = f.do(t, http.MethodGet, "/api/v1/dentistas?include_removed=true", f.creatorToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listed))
	assert.Len(t, listed, 1)
}

func TestPurgeRequiresAdmin(t *testing.T) {
	f := setup(t)

	w := f.do(t, http.MethodDelete, "/api/v1/dentistas", f.creatorToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = f.do(t, http.MethodDelete, "/api/v1/dentistas", f.adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "eliminados")
}
