package categoryservice

import (
	"context"
	"strings"
	"unicode/utf8"

	"gocatalog/internal/domain"
	apperror "gocatalog/internal/errors"
	"gocatalog/internal/pkg/logger"
)

// Tamanho máximo do nome de uma categoria.
const maxNameLength = 100

// CategoryRepository define o contrato de persistência de categorias.
type CategoryRepository interface {
	Save(ctx context.Context, category domain.Category) (domain.Category, error)
	FindByID(ctx context.Context, id int64) (domain.Category, error)
	FindAll(ctx context.Context) ([]domain.Category, error)
	Update(ctx context.Context, category domain.Category) (domain.Category, error)
	Delete(ctx context.Context, id int64) error
}

// Service implementa as regras de negócio de categorias.
type Service struct {
	repo   CategoryRepository
	logger logger.Logger
}

// NewService cria e retorna uma nova instância do Serviço de Categoria.
func NewService(repo CategoryRepository, log logger.Logger) *Service {
	return &Service{repo: repo, logger: log}
}

func normalizeName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", apperror.NewValidationError("O nome da categoria não pode ser vazio.")
	}
	if utf8.RuneCountInString(name) > maxNameLength {
		return "", apperror.NewValidationError("O nome da categoria deve ter no máximo 100 caracteres.")
	}
	return name, nil
}

func validateID(id int64) error {
	if id <= 0 {
		return apperror.NewValidationError("O ID da categoria deve ser um inteiro positivo.")
	}
	return nil
}

// CreateCategory valida o nome e persiste a categoria.
func (s *Service) CreateCategory(ctx context.Context, category domain.Category) (domain.Category, error) {
	name, err := normalizeName(category.Name)
	if err != nil {
		return domain.Category{}, err
	}
	return s.repo.Save(ctx, domain.Category{Name: name})
}

// GetCategory busca uma categoria pelo ID.
func (s *Service) GetCategory(ctx context.Context, id int64) (domain.Category, error) {
	if err := validateID(id); err != nil {
		return domain.Category{}, err
	}
	return s.repo.FindByID(ctx, id)
}

// ListCategories devolve todas as categorias ordenadas por nome.
func (s *Service) ListCategories(ctx context.Context) ([]domain.Category, error) {
	categories, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("Categorias listadas.", map[string]interface{}{"total": len(categories)})
	return categories, nil
}

// UpdateCategory renomeia a categoria.
func (s *Service) UpdateCategory(ctx context.Context, id int64, category domain.Category) (domain.Category, error) {
	if err := validateID(id); err != nil {
		return domain.Category{}, err
	}
	name, err := normalizeName(category.Name)
	if err != nil {
		return domain.Category{}, err
	}
	return s.repo.Update(ctx, domain.Category{ID: id, Name: name})
}

// DeleteCategory remove a categoria e, em cascata, os seus produtos.
func (s *Service) DeleteCategory(ctx context.Context, id int64) error {
	if err := validateID(id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
