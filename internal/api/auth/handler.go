package auth

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"gocatalog/internal/api/httputil"
	"gocatalog/internal/domain"
	apperror "gocatalog/internal/errors"
	"gocatalog/internal/pkg/logger"
	"gocatalog/internal/pkg/middleware"
	"gocatalog/internal/pkg/respond"
)

// UserService define o contrato que o Handler espera da camada de Serviço.
type UserService interface {
	Register(ctx context.Context, registration domain.UserRegistration) (domain.AuthResponse, error)
	Login(ctx context.Context, req domain.LoginRequest) (domain.AuthResponse, error)
	Me(ctx context.Context, userID int64) (domain.User, error)
	UpdateProfile(ctx context.Context, userID int64, req domain.UpdateProfileRequest) (domain.AuthResponse, error)
	Logout(ctx context.Context, tokenID string, expiresAt time.Time) error
}

// Handler agrupa os endpoints de autenticação e perfil.
type Handler struct {
	Service UserService
	Logger  logger.Logger
}

// NewHandler cria uma nova instância do Handler, injetando o Service e o Logger.
func NewHandler(svc UserService, log logger.Logger) *Handler {
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
		h.Logger.Error("Erro interno no serviço de usuário:", err)
		return
	}
	h.Logger.Debug(fmt.Sprintf("Requisição rejeitada com status %d.", status), map[string]interface{}{"path": r.URL.Path})
}

func (h *Handler) claims(r *http.Request) (middleware.UserClaims, error) {
	claims, ok := middleware.GetUserClaimsFromContext(r.Context())
	if !ok {
		return middleware.UserClaims{}, apperror.NewUnauthorizedError("Autenticação necessária.")
	}
	return claims, nil
}

// RegisterHandler lida com a requisição POST /api/auth/register.
// @Summary Registra um novo usuário
// @Description Cria um usuário com papel USER e devolve o token de acesso.
// @Tags auth
// @Accept json
// @Produce json
// @Param registration body domain.UserRegistration true "Dados de registro"
// @Success 201 {object} domain.AuthResponse "Usuário criado"
// @Failure 400 {object} domain.ErrorResponse "Payload inválido"
// @Failure 409 {object} domain.ErrorResponse "Username ou email já cadastrado"
// @Failure 500 {object} domain.ErrorResponse "Erro interno do servidor"
// @Router /api/auth/register [post]
func (h *Handler) RegisterHandler(w http.ResponseWriter, r *http.Request) {
	var reg domain.UserRegistration
	if err := httputil.DecodeJSON(w, r, &reg); err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusCreated)
		return
	}

	resp, err := h.Service.Register(r.Context(), reg)
	h.handleServiceResponse(w, r, resp, err, http.StatusCreated)
}

// LoginHandler lida com a requisição POST /api/auth/login.
// @Summary Autentica um usuário e retorna um JWT
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body domain.LoginRequest true "Username e senha"
// @Success 200 {object} domain.AuthResponse
// @Failure 400 {object} domain.ErrorResponse "Payload inválido"
// @Failure 401 {object} domain.ErrorResponse "Credenciais inválidas"
// @Router /api/auth/login [post]
func (h *Handler) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var req domain.LoginRequest
	if err := httputil.DecodeJSON(w, r, &req); err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}

	resp, err := h.Service.Login(r.Context(), req)
	h.handleServiceResponse(w, r, resp, err, http.StatusOK)
}

// MeHandler lida com a requisição GET /api/auth/me.
// @Summary Devolve o usuário autenticado
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} domain.User
// @Failure 401 {object} domain.ErrorResponse
// @Router /api/auth/me [get]
func (h *Handler) MeHandler(w http.ResponseWriter, r *http.Request) {
	claims, err := h.claims(r)
	if err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}

	user, err := h.Service.Me(r.Context(), claims.UserID)
	h.handleServiceResponse(w, r, user, err, http.StatusOK)
}

// UpdateMeHandler lida com a requisição PUT /api/auth/me.
// @Summary Atualiza o perfil do usuário autenticado
// @Description Apenas os campos informados são alterados.
// @Tags auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param profile body domain.UpdateProfileRequest true "Campos do perfil"
// @Success 200 {object} domain.AuthResponse
// @Failure 400 {object} domain.ErrorResponse
// @Failure 401 {object} domain.ErrorResponse
// @Failure 409 {object} domain.ErrorResponse "Email já em uso"
// @Router /api/auth/me [put]
func (h *Handler) UpdateMeHandler(w http.ResponseWriter, r *http.Request) {
	claims, err := h.claims(r)
	if err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}

	var req domain.UpdateProfileRequest
	if err := httputil.DecodeJSON(w, r, &req); err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}

	resp, err := h.Service.UpdateProfile(r.Context(), claims.UserID, req)
	h.handleServiceResponse(w, r, resp, err, http.StatusOK)
}

// LogoutHandler lida com a requisição POST /api/auth/logout.
// @Summary Encerra a sessão revogando o token atual
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} domain.MessageResponse
// @Failure 401 {object} domain.ErrorResponse
// @Router /api/auth/logout [post]
func (h *Handler) LogoutHandler(w http.ResponseWriter, r *http.Request) {
	claims, err := h.claims(r)
	if err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}

	if err := h.Service.Logout(r.Context(), claims.TokenID, claims.ExpiresAt); err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}

	h.Logger.Info("Logout realizado.", map[string]interface{}{"user_id": claims.UserID})
	h.handleServiceResponse(w, r, domain.MessageResponse{Message: "Logout realizado com sucesso."}, nil, http.StatusOK)
}
