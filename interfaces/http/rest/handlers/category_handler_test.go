package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"textgraph/domain/core/entities"
	"textgraph/interfaces/http/rest/middleware"
)

type stubCategoryStore struct {
	lastInput       *entities.CreateCategoryInput
	lastApplication string
	lastParentID    string
}

func (s *stubCategoryStore) Create(ctx context.Context, input *entities.CreateCategoryInput) (string, error) {
	s.lastInput = input
	return "C1", nil
}

func (s *stubCategoryStore) List(ctx context.Context, application, parentID string) ([]entities.Category, error) {
	s.lastApplication = application
	s.lastParentID = parentID
	return nil, nil
}

func categoryRouter(store *stubCategoryStore) http.Handler {
	h := NewCategoryHandler(store, zap.NewNop())
	r := chi.NewRouter()
	r.Get("/categories", h.ListCategories)
	r.Post("/categories", h.CreateCategory)
	return r
}

func TestCreateCategoryUsesApplicationHeader(t *testing.T) {
	store := &stubCategoryStore{}
	rec := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/categories", strings.NewReader(`{"title": {"en": "Sutras"}}`))
	req.Header.Set(middleware.HeaderApplication, "tenantA")

	categoryRouter(store).ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "tenantA", store.lastInput.Application)
}

func TestCategoryWithoutApplicationScopeResponds400(t *testing.T) {
	store := &stubCategoryStore{}
	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/categories", nil)

	categoryRouter(store).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListCategoriesPassesParentAndScope(t *testing.T) {
	store := &stubCategoryStore{}
	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/categories?parent_id=C0", nil)
	req.Header.Set(middleware.HeaderApplication, "tenantA")

	categoryRouter(store).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "tenantA", store.lastApplication)
	assert.Equal(t, "C0", store.lastParentID)
}
