package product

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"gocatalog/internal/api/httputil"
	"gocatalog/internal/domain"
	apperror "gocatalog/internal/errors"
	"gocatalog/internal/pkg/logger"
	"gocatalog/internal/pkg/middleware"
	"gocatalog/internal/pkg/respond"
)

// ProductService define o contrato que o Handler espera da camada de Serviço.
type ProductService interface {
	CreateProduct(ctx context.Context, p domain.Product) (domain.Product, error)
	GetProductByID(ctx context.Context, id int64) (domain.Product, error)
	GetProducts(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error)
	UpdateProduct(ctx context.Context, id int64, p domain.Product) (domain.Product, error)
	DeleteProduct(ctx context.Context, id int64) error
}

// Handler agrupa todos os métodos de Handler do produto.
type Handler struct {
	Service ProductService
	Logger  logger.Logger
}

// NewHandler cria uma nova instância do Handler, injetando o Service e o Logger.
func NewHandler(svc ProductService, log logger.Logger) *Handler {
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
		h.Logger.Error("Erro de Servidor no catálogo de produtos:", err)
		return
	}
	h.Logger.Debug(fmt.Sprintf("Requisição rejeitada com status %d.", status), map[string]interface{}{"path": r.URL.Path})
}

// logActor registra qual administrador executou a escrita.
func (h *Handler) logActor(r *http.Request, action string) {
	if claims, ok := middleware.GetUserClaimsFromContext(r.Context()); ok {
		h.Logger.Info(action, map[string]interface{}{
			"user_id": claims.UserID,
			"role":    claims.Role,
		})
	}
}

// parseFilter lê ?categoryId= e ?search= da query string.
func parseFilter(r *http.Request) (domain.ProductFilter, error) {
	q := r.URL.Query()
	filter := domain.ProductFilter{Search: strings.TrimSpace(q.Get("search"))}

	if raw := strings.TrimSpace(q.Get("categoryId")); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return domain.ProductFilter{}, apperror.NewValidationError(fmt.Sprintf("categoryId inválido: '%s'.", raw))
		}
		filter.CategoryID = id
	}
	return filter, nil
}

// ListProductsHandler lida com a requisição GET /api/products.
// @Summary Lista o catálogo de produtos
// @Description search (nome ou marca, sem diferenciar maiúsculas) tem precedência sobre categoryId.
// @Tags products
// @Produce json
// @Param categoryId query int false "Filtra pela categoria"
// @Param search query string false "Busca por nome ou marca"
// @Success 200 {array} domain.Product
// @Failure 400 {object} domain.ErrorResponse
// @Router /api/products [get]
func (h *Handler) ListProductsHandler(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilter(r)
	if err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}

	products, err := h.Service.GetProducts(r.Context(), filter)
	h.handleServiceResponse(w, r, products, err, http.StatusOK)
}

// GetProductByIDHandler lida com a requisição GET /api/products/{id}.
// @Summary Busca um produto pelo ID
// @Tags products
// @Produce json
// @Param id path int true "ID do produto"
// @Success 200 {object} domain.Product
// @Failure 400 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse
// @Router /api/products/{id} [get]
func (h *Handler) GetProductByIDHandler(w http.ResponseWriter, r *http.Request) {
	id, err := httputil.PathID(r)
	if err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}

	product, err := h.Service.GetProductByID(r.Context(), id)
	h.handleServiceResponse(w, r, product, err, http.StatusOK)
}

// CreateProductHandler lida com a requisição POST /api/products.
// @Summary Cria um produto
// @Tags products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param product body domain.Product true "Produto (category.id obrigatório)"
// @Success 201 {object} domain.Product
// @Failure 400 {object} domain.ErrorResponse "Campos inválidos ou categoria inexistente"
// @Failure 401 {object} domain.ErrorResponse
// @Failure 403 {object} domain.ErrorResponse
// @Router /api/products [post]
func (h *Handler) CreateProductHandler(w http.ResponseWriter, r *http.Request) {
	h.logActor(r, "Criação de produto solicitada.")

	var product domain.Product
	if err := httputil.DecodeJSON(w, r, &product); err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusCreated)
		return
	}

	created, err := h.Service.CreateProduct(r.Context(), product)
	h.handleServiceResponse(w, r, created, err, http.StatusCreated)
}

// UpdateProductHandler lida com a requisição PUT /api/products/{id}.
// @Summary Atualiza um produto
// @Tags products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID do produto"
// @Param product body domain.Product true "Produto"
// @Success 200 {object} domain.Product
// @Failure 400 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse
// @Router /api/products/{id} [put]
func (h *Handler) UpdateProductHandler(w http.ResponseWriter, r *http.Request) {
	id, err := httputil.PathID(r)
	if err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}
	h.logActor(r, "Atualização de produto solicitada.")

	var product domain.Product
	if err := httputil.DecodeJSON(w, r, &product); err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}

	updated, err := h.Service.UpdateProduct(r.Context(), id, product)
	h.handleServiceResponse(w, r, updated, err, http.StatusOK)
}

// DeleteProductHandler lida com a requisição DELETE /api/products/{id}.
// @Summary Remove um produto
// @Tags products
// @Security BearerAuth
// @Param id path int true "ID do produto"
// @Success 204
// @Failure 404 {object} domain.ErrorResponse
// @Router /api/products/{id} [delete]
func (h *Handler) DeleteProductHandler(w http.ResponseWriter, r *http.Request) {
	id, err := httputil.PathID(r)
	if err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusNoContent)
		return
	}
	h.logActor(r, "Remoção de produto solicitada.")

	err = h.Service.DeleteProduct(r.Context(), id)
	h.handleServiceResponse(w, r, nil, err, http.StatusNoContent)
}
