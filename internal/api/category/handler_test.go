package category_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"gocatalog/internal/api/category"
	"gocatalog/internal/domain"
	apperror "gocatalog/internal/errors"
	"gocatalog/internal/pkg/logger"
)

type MockCategoryService struct {
	mock.Mock
}

func (m *MockCategoryService) CreateCategory(ctx context.Context, c domain.Category) (domain.Category, error) {
	args := m.Called(ctx, c)
	return args.Get(0).(domain.Category), args.Error(1)
}

func (m *MockCategoryService) GetCategory(ctx context.Context, id int64) (domain.Category, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Category), args.Error(1)
}

func (m *MockCategoryService) ListCategories(ctx context.Context) ([]domain.Category, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Category), args.Error(1)
}

func (m *MockCategoryService) UpdateCategory(ctx context.Context, id int64, c domain.Category) (domain.Category, error) {
	args := m.Called(ctx, id, c)
	return args.Get(0).(domain.Category), args.Error(1)
}

func (m *MockCategoryService) DeleteCategory(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// newMux registra as rotas com padrões para que PathValue funcione.
func newMux(h *category.Handler) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/categories", h.ListCategoriesHandler)
	mux.HandleFunc("GET /api/categories/{id}", h.GetCategoryHandler)
	mux.HandleFunc("POST /api/categories", h.CreateCategoryHandler)
	mux.HandleFunc("PUT /api/categories/{id}", h.UpdateCategoryHandler)
	mux.HandleFunc("DELETE /api/categories/{id}", h.DeleteCategoryHandler)
	return mux
}

func TestListCategoriesHandler(t *testing.T) {
	svc := new(MockCategoryService)
	mux := newMux(category.NewHandler(svc, logger.Nop()))

	svc.On("ListCategories", mock.Anything).Return([]domain.Category{{ID: 1, Name: "T-shirts Homme"}}, nil)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/categories", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	var got []domain.Category
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.Equal(t, "T-shirts Homme", got[0].Name)
}

func TestGetCategoryHandler_NotFound(t *testing.T) {
	svc := new(MockCategoryService)
	mux := newMux(category.NewHandler(svc, logger.Nop()))

	svc.On("GetCategory", mock.Anything, int64(42)).Return(domain.Category{}, apperror.NewNotFoundError("Categoria com ID 42 não encontrada."))

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/categories/42", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetCategoryHandler_BadID(t *testing.T) {
	svc := new(MockCategoryService)
	mux := newMux(category.NewHandler(svc, logger.Nop()))

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/categories/abc", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	svc.AssertNotCalled(t, "GetCategory", mock.Anything, mock.Anything)
}

func TestCreateCategoryHandler_Created(t *testing.T) {
	svc := new(MockCategoryService)
	mux := newMux(category.NewHandler(svc, logger.Nop()))

	svc.On("CreateCategory", mock.Anything, domain.Category{Name: "Sweats"}).Return(domain.Category{ID: 4, Name: "Sweats"}, nil)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/categories", strings.NewReader(`{"name":"Sweats"}`)))

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"id":4,"name":"Sweats"}`, rec.Body.String())
}

func TestUpdateCategoryHandler_Conflict(t *testing.T) {
	svc := new(MockCategoryService)
	mux := newMux(category.NewHandler(svc, logger.Nop()))

	svc.On("UpdateCategory", mock.Anything, int64(2), domain.Category{Name: "T-shirts Homme"}).
		Return(domain.Category{}, apperror.NewConflictError("A categoria 'T-shirts Homme' já existe."))

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/api/categories/2", strings.NewReader(`{"name":"T-shirts Homme"}`)))

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestDeleteCategoryHandler_NoContent(t *testing.T) {
	svc := new(MockCategoryService)
	mux := newMux(category.NewHandler(svc, logger.Nop()))

	svc.On("DeleteCategory", mock.Anything, int64(3)).Return(nil)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/categories/3", nil))

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())
}
