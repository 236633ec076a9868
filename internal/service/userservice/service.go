package userservice

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"gocatalog/internal/domain"
	apperror "gocatalog/internal/errors"
	"gocatalog/internal/pkg/cache"
	"gocatalog/internal/pkg/logger"
	"gocatalog/internal/pkg/token"
)

// UserRepository é o contrato de persistência que o serviço espera.
type UserRepository interface {
	Save(ctx context.Context, user domain.User) (domain.User, error)
	FindByUsername(ctx context.Context, username string) (domain.User, error)
	FindByID(ctx context.Context, id int64) (domain.User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Update(ctx context.Context, user domain.User) (domain.User, error)
}

// Validator valida structs de entrada.
type Validator interface {
	Struct(i interface{}) error
}

// UserService define o serviço de lógica de negócio para a entidade User.
type UserService struct {
	UserRepo  UserRepository
	TokenSvc  token.TokenService
	Cache     cache.Client
	validator Validator
	logger    logger.Logger
	now       func() time.Time
}

// NewService cria uma nova instância do UserService, injetando o Repositório.
func NewService(repo UserRepository, tokenSvc token.TokenService, cacheClient cache.Client, v Validator, log logger.Logger) *UserService {
	return &UserService{
		UserRepo:  repo,
		TokenSvc:  tokenSvc,
		Cache:     cacheClient,
		validator: v,
		logger:    log,
		now:       time.Now,
	}
}

func (s *UserService) issueToken(user domain.User) (string, error) {
	tokenString, err := s.TokenSvc.GenerateToken(user.ID, user.Username, string(user.Role))
	if err != nil {
		s.logger.Error("Falha ao gerar token.", err)
		return "", apperror.NewInternalError("Falha ao gerar token de autenticação.", err)
	}
	return tokenString, nil
}

// CreateUser valida, verifica unicidade e persiste um usuário com o papel informado.
func (s *UserService) CreateUser(ctx context.Context, registration domain.UserRegistration, role domain.UserRole) (domain.User, error) {
	registration.Username = strings.TrimSpace(registration.Username)
	registration.Email = strings.TrimSpace(registration.Email)

	if err := s.validator.Struct(registration); err != nil {
		return domain.User{}, err
	}
	if !role.Valid() {
		return domain.User{}, apperror.NewValidationError(fmt.Sprintf("Papel desconhecido: %s", role))
	}

	exists, err := s.UserRepo.ExistsByUsername(ctx, registration.Username)
	if err != nil {
		return domain.User{}, err
	}
	if exists {
		return domain.User{}, apperror.NewConflictError("O nome de usuário já existe.")
	}

	exists, err = s.UserRepo.ExistsByEmail(ctx, registration.Email)
	if err != nil {
		return domain.User{}, err
	}
	if exists {
		return domain.User{}, apperror.NewConflictError("O email já está em uso.")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(registration.Password), bcrypt.DefaultCost)
	if err != nil {
		return domain.User{}, apperror.NewInternalError("Falha ao gerar hash da senha.", err)
	}

	user, err := s.UserRepo.Save(ctx, domain.User{
		Username:     registration.Username,
		Email:        registration.Email,
		PasswordHash: string(hashedPassword),
		FirstName:    registration.FirstName,
		LastName:     registration.LastName,
		Role:         role,
		Enabled:      true,
	})
	if err != nil {
		return domain.User{}, err
	}

	s.logger.Info("Usuário criado.", map[string]interface{}{"user_id": user.ID, "username": user.Username, "role": user.Role})
	return user, nil
}

// Register registra um novo usuário (sempre USER) e já devolve um token.
func (s *UserService) Register(ctx context.Context, registration domain.UserRegistration) (domain.AuthResponse, error) {
	user, err := s.CreateUser(ctx, registration, domain.RoleUser)
	if err != nil {
		return domain.AuthResponse{}, err
	}

	tokenString, err := s.issueToken(user)
	if err != nil {
		return domain.AuthResponse{}, err
	}
	return domain.NewAuthResponse(user, tokenString, "Usuário registrado com sucesso."), nil
}

// Login autentica um usuário, verifica a senha e gera um JWT.
// Usuário inexistente e senha errada produzem a mesma resposta.
func (s *UserService) Login(ctx context.Context, req domain.LoginRequest) (domain.AuthResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return domain.AuthResponse{}, err
	}

	invalid := apperror.NewUnauthorizedError("Credenciais inválidas.")

	user, err := s.UserRepo.FindByUsername(ctx, strings.TrimSpace(req.Username))
	if err != nil {
		if apperror.IsNotFound(err) {
			return domain.AuthResponse{}, invalid
		}
		return domain.AuthResponse{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		s.logger.Warn("Tentativa de login com senha inválida.", map[string]interface{}{"username": user.Username})
		return domain.AuthResponse{}, invalid
	}
	if !user.Enabled {
		return domain.AuthResponse{}, apperror.NewUnauthorizedError("Conta desativada.")
	}

	tokenString, err := s.issueToken(user)
	if err != nil {
		return domain.AuthResponse{}, err
	}

	s.logger.Info("Login realizado.", map[string]interface{}{"user_id": user.ID})
	return domain.NewAuthResponse(user, tokenString, "Login realizado com sucesso."), nil
}

// Me devolve o usuário autenticado.
func (s *UserService) Me(ctx context.Context, userID int64) (domain.User, error) {
	return s.UserRepo.FindByID(ctx, userID)
}

// UpdateProfile aplica apenas os campos informados (não-nil) ao perfil.
func (s *UserService) UpdateProfile(ctx context.Context, userID int64, req domain.UpdateProfileRequest) (domain.AuthResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return domain.AuthResponse{}, err
	}

	user, err := s.UserRepo.FindByID(ctx, userID)
	if err != nil {
		return domain.AuthResponse{}, err
	}

	if req.Email != nil {
		email := strings.TrimSpace(*req.Email)
		if email != user.Email {
			exists, err := s.UserRepo.ExistsByEmail(ctx, email)
			if err != nil {
				return domain.AuthResponse{}, err
			}
			if exists {
				return domain.AuthResponse{}, apperror.NewConflictError("O email já está em uso.")
			}
			user.Email = email
		}
	}
	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}

	updated, err := s.UserRepo.Update(ctx, user)
	if err != nil {
		return domain.AuthResponse{}, err
	}
	return domain.NewAuthResponse(updated, "", "Perfil atualizado com sucesso."), nil
}

// Logout revoga o token (pelo jti) até o seu vencimento.
func (s *UserService) Logout(ctx context.Context, tokenID string, expiresAt time.Time) error {
	if tokenID == "" {
		return nil
	}

	ttl := expiresAt.Sub(s.now())
	if ttl <= 0 {
		return nil
	}

	if err := s.Cache.Set(ctx, token.RevocationKey(tokenID), "1", ttl); err != nil {
		s.logger.Error("Falha ao revogar token no cache.", err)
		return apperror.NewInternalError("Falha ao encerrar a sessão.", err)
	}

	s.logger.Info("Token revogado.", map[string]interface{}{"jti": tokenID})
	return nil
}

// ExistsByUsername informa se o username já está cadastrado.
func (s *UserService) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	return s.UserRepo.ExistsByUsername(ctx, username)
}
