package category

import (
	"context"
	"fmt"
	"net/http"

	"gocatalog/internal/api/httputil"
	"gocatalog/internal/domain"
	"gocatalog/internal/pkg/logger"
	"gocatalog/internal/pkg/respond"
)

// CategoryService define o contrato que o Handler espera da camada de Serviço.
type CategoryService interface {
	CreateCategory(ctx context.Context, category domain.Category) (domain.Category, error)
	GetCategory(ctx context.Context, id int64) (domain.Category, error)
	ListCategories(ctx context.Context) ([]domain.Category, error)
	UpdateCategory(ctx context.Context, id int64, category domain.Category) (domain.Category, error)
	DeleteCategory(ctx context.Context, id int64) error
}

// Handler agrupa os endpoints de categorias.
type Handler struct {
	Service CategoryService
	Logger  logger.Logger
}

// NewHandler cria uma nova instância do Handler, injetando o Service e o Logger.
func NewHandler(svc CategoryService, log logger.Logger) *Handler {
	return &Handler{
		Service: svc,
		Logger:  log,
	}
}

// handleServiceResponse processa erros de serviço e envia respostas padronizadas ao cliente.
func (h *Handler) handleServiceResponse(w http.ResponseWriter, r *http.Request, data interface{}, err error, successStatus int) {
	if err == nil {
		if jsonErr := respond.JSON(w, successStatus, data); jsonErr != nil {
			h.Logger.Error("Falha ao codificar JSON de resposta", jsonErr)
		}
		return
	}

	status := respond.Error(w, err)
	if status >= http.StatusInternalServerError {
		h.Logger.Error("Erro interno no serviço de categoria:", err)
		return
	}
	h.Logger.Debug(fmt.Sprintf("Requisição rejeitada com status %d.", status), map[string]interface{}{"path": r.URL.Path})
}

// ListCategoriesHandler lida com a requisição GET /api/categories.
// @Summary Lista as categorias
// @Tags categories
// @Produce json
// @Success 200 {array} domain.Category
// @Failure 500 {object} domain.ErrorResponse
// @Router /api/categories [get]
func (h *Handler) ListCategoriesHandler(w http.ResponseWriter, r *http.Request) {
	categories, err := h.Service.ListCategories(r.Context())
	h.handleServiceResponse(w, r, categories, err, http.StatusOK)
}

// GetCategoryHandler lida com a requisição GET /api/categories/{id}.
// @Summary Busca uma categoria pelo ID
// @Tags categories
// @Produce json
// @Param id path int true "ID da categoria"
// @Success 200 {object} domain.Category
// @Failure 400 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse
// @Router /api/categories/{id} [get]
func (h *Handler) GetCategoryHandler(w http.ResponseWriter, r *http.Request) {
	id, err := httputil.PathID(r)
	if err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}

	category, err := h.Service.GetCategory(r.Context(), id)
	h.handleServiceResponse(w, r, category, err, http.StatusOK)
}

// CreateCategoryHandler lida com a requisição POST /api/categories.
// @Summary Cria uma categoria
// @Tags categories
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param category body domain.Category true "Categoria"
// @Success 201 {object} domain.Category
// @Failure 400 {object} domain.ErrorResponse
// @Failure 401 {object} domain.ErrorResponse
// @Failure 403 {object} domain.ErrorResponse
// @Failure 409 {object} domain.ErrorResponse "Nome já existente"
// @Router /api/categories [post]
func (h *Handler) CreateCategoryHandler(w http.ResponseWriter, r *http.Request) {
	var category domain.Category
	if err := httputil.DecodeJSON(w, r, &category); err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusCreated)
		return
	}

	created, err := h.Service.CreateCategory(r.Context(), category)
	h.handleServiceResponse(w, r, created, err, http.StatusCreated)
}

// UpdateCategoryHandler lida com a requisição PUT /api/categories/{id}.
// @Summary Renomeia uma categoria
// @Tags categories
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID da categoria"
// @Param category body domain.Category true "Categoria"
// @Success 200 {object} domain.Category
// @Failure 400 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse
// @Failure 409 {object} domain.ErrorResponse
// @Router /api/categories/{id} [put]
func (h *Handler) UpdateCategoryHandler(w http.ResponseWriter, r *http.Request) {
	id, err := httputil.PathID(r)
	if err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}

	var category domain.Category
	if err := httputil.DecodeJSON(w, r, &category); err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}

	updated, err := h.Service.UpdateCategory(r.Context(), id, category)
	h.handleServiceResponse(w, r, updated, err, http.StatusOK)
}

// DeleteCategoryHandler lida com a requisição DELETE /api/categories/{id}.
// @Summary Remove uma categoria e os seus produtos
// @Tags categories
// @Security BearerAuth
// @Param id path int true "ID da categoria"
// @Success 204
// @Failure 404 {object} domain.ErrorResponse
// @Router /api/categories/{id} [delete]
func (h *Handler) DeleteCategoryHandler(w http.ResponseWriter, r *http.Request) {
	id, err := httputil.PathID(r)
	if err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusNoContent)
		return
	}

	err = h.Service.DeleteCategory(r.Context(), id)
	h.handleServiceResponse(w, r, nil, err, http.StatusNoContent)
}
