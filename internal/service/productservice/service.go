package productservice

import (
	"context"
	"errors"
	"strings"

	"gocatalog/internal/domain"
	apperror "gocatalog/internal/errors"
	"gocatalog/internal/pkg/logger"
)

// ProductRepository define o contrato (interface) que este Serviço espera
// da camada de Persistência (DB, Cache).
type ProductRepository interface {
	Save(ctx context.Context, product domain.Product) (domain.Product, error)
	FindByID(ctx context.Context, id int64) (domain.Product, error)
	FindAll(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error)
	Update(ctx context.Context, product domain.Product) (domain.Product, error)
	Delete(ctx context.Context, id int64) error
}

// Validator valida structs de entrada.
type Validator interface {
	Struct(i interface{}) error
}

// Service é a estrutura que implementa as regras de negócio de produtos.
type Service struct {
	repo      ProductRepository
	validator Validator
	logger    logger.Logger
}

// NewService cria e retorna uma nova instância do Serviço de Produto.
func NewService(repo ProductRepository, v Validator, log logger.Logger) *Service {
	return &Service{repo: repo, validator: v, logger: log}
}

// wrap mantém erros do domínio e embrulha falhas inesperadas como erro interno.
func wrap(msg string, err error) error {
	var appErr apperror.AppError
	if errors.As(err, &appErr) {
		return err
	}
	return apperror.NewInternalError(msg, err)
}

func (s *Service) validate(product *domain.Product) error {
	product.Name = strings.TrimSpace(product.Name)
	product.BrandName = strings.TrimSpace(product.BrandName)
	product.ImageURL = strings.TrimSpace(product.ImageURL)

	if err := s.validator.Struct(product); err != nil {
		return err
	}
	if product.Category.ID <= 0 {
		return apperror.NewValidationError("Selecione uma categoria para o produto.")
	}
	return nil
}

func validateID(id int64) error {
	if id <= 0 {
		return apperror.NewValidationError("O ID do produto deve ser um inteiro positivo.")
	}
	return nil
}

// --- Implementação: CreateProduct ---
func (s *Service) CreateProduct(ctx context.Context, product domain.Product) (domain.Product, error) {
	if err := s.validate(&product); err != nil {
		return domain.Product{}, err
	}
	product.ID = 0

	created, err := s.repo.Save(ctx, product)
	if err != nil {
		return domain.Product{}, wrap("Falha interna ao salvar produto.", err)
	}
	return created, nil
}

// --- Implementação: GetProductByID ---
func (s *Service) GetProductByID(ctx context.Context, id int64) (domain.Product, error) {
	if err := validateID(id); err != nil {
		return domain.Product{}, err
	}

	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Product{}, wrap("Falha interna ao buscar produto.", err)
	}
	return product, nil
}

// GetProducts lista o catálogo. Um termo de busca não vazio tem precedência
// sobre a categoria; sem nenhum dos dois, lista tudo.
func (s *Service) GetProducts(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error) {
	filter.Search = strings.TrimSpace(filter.Search)
	if filter.Search != "" || filter.CategoryID < 0 {
		filter.CategoryID = 0
	}

	products, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		s.logger.Error("Falha ao listar produtos.", err)
		return nil, wrap("Falha interna ao buscar produtos.", err)
	}
	return products, nil
}

// UpdateProduct substitui os campos do produto identificado por id.
func (s *Service) UpdateProduct(ctx context.Context, id int64, product domain.Product) (domain.Product, error) {
	if err := validateID(id); err != nil {
		return domain.Product{}, err
	}
	if err := s.validate(&product); err != nil {
		return domain.Product{}, err
	}
	product.ID = id

	updated, err := s.repo.Update(ctx, product)
	if err != nil {
		return domain.Product{}, wrap("Falha interna ao atualizar produto.", err)
	}
	return updated, nil
}

// DeleteProduct remove o produto.
func (s *Service) DeleteProduct(ctx context.Context, id int64) error {
	if err := validateID(id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return wrap("Falha interna ao remover produto.", err)
	}
	return nil
}
