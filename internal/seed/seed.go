// Package seed carrega os dados iniciais do catálogo na subida do serviço.
package seed

import (
	"context"
	"fmt"

	"gocatalog/internal/domain"
	"gocatalog/internal/pkg/logger"
)

// UserStore cria usuários e verifica se um username já existe.
type UserStore interface {
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	CreateUser(ctx context.Context, registration domain.UserRegistration, role domain.UserRole) (domain.User, error)
}

// CategoryStore é o subconjunto do repositório de categorias usado na carga.
type CategoryStore interface {
	Count(ctx context.Context) (int64, error)
	Save(ctx context.Context, category domain.Category) (domain.Category, error)
	FindByName(ctx context.Context, name string) (domain.Category, error)
}

// ProductStore é o subconjunto do repositório de produtos usado na carga.
type ProductStore interface {
	Count(ctx context.Context) (int64, error)
	Save(ctx context.Context, product domain.Product) (domain.Product, error)
}

type defaultUser struct {
	registration domain.UserRegistration
	role         domain.UserRole
}

var defaultUsers = []defaultUser{
	{
		registration: domain.UserRegistration{
			Username: "admin", Email: "admin@ecommerce.com", Password: "admin123",
			FirstName: "Admin", LastName: "System",
		},
		role: domain.RoleAdmin,
	},
	{
		registration: domain.UserRegistration{
			Username: "user", Email: "user@ecommerce.com", Password: "user123",
			FirstName: "Test", LastName: "User",
		},
		role: domain.RoleUser,
	},
}

var defaultCategories = []string{"T-shirts Homme", "T-shirts Femme", "T-shirts Enfant"}

type defaultProduct struct {
	name, brand, imageURL, category string
	price                           float64
}

var defaultProducts = []defaultProduct{
	{"T-shirt Homme Basique", "Nike", "https://picsum.photos/id/91/600/400", "T-shirts Homme", 19.99},
	{"T-shirt Homme Manche Longue", "Adidas", "https://picsum.photos/id/342/600/400", "T-shirts Homme", 29.99},
	{"T-shirt Homme Sport", "Puma", "https://picsum.photos/id/431/600/400", "T-shirts Homme", 24.99},
	{"T-shirt Femme Basique", "H&M", "https://picsum.photos/id/64/600/400", "T-shirts Femme", 15.99},
	{"T-shirt Femme Oversize", "Zara", "https://picsum.photos/id/177/600/400", "T-shirts Femme", 22.99},
	{"T-shirt Femme Crop Top", "Pull&Bear", "https://picsum.photos/id/203/600/400", "T-shirts Femme", 18.99},
	{"T-shirt Enfant Basique", "Kiabi", "https://picsum.photos/id/433/600/400", "T-shirts Enfant", 9.99},
	{"T-shirt Enfant Imprimé", "Disney", "https://picsum.photos/id/453/600/400", "T-shirts Enfant", 14.99},
}

// Seeder carrega usuários, categorias e produtos padrão.
type Seeder struct {
	users      UserStore
	categories CategoryStore
	products   ProductStore
	logger     logger.Logger
}

// NewSeeder cria um Seeder com as dependências informadas.
func NewSeeder(users UserStore, categories CategoryStore, products ProductStore, log logger.Logger) *Seeder {
	return &Seeder{users: users, categories: categories, products: products, logger: log}
}

// Run garante os usuários padrão e, com as tabelas vazias, cria categorias e produtos.
// Falhas ao criar um usuário são registradas sem interromper a carga.
func (s *Seeder) Run(ctx context.Context) error {
	s.seedUsers(ctx)

	if err := s.seedCategories(ctx); err != nil {
		return err
	}
	return s.seedProducts(ctx)
}

func (s *Seeder) seedUsers(ctx context.Context) {
	for _, du := range defaultUsers {
		username := du.registration.Username

		exists, err := s.users.ExistsByUsername(ctx, username)
		if err != nil {
			s.logger.Error(fmt.Sprintf("Falha ao verificar o usuário %s.", username), err)
			continue
		}
		if exists {
			s.logger.Info("Usuário padrão já existe.", map[string]interface{}{"username": username})
			continue
		}

		if _, err := s.users.CreateUser(ctx, du.registration, du.role); err != nil {
			s.logger.Error(fmt.Sprintf("Falha ao criar o usuário %s.", username), err)
			continue
		}
		s.logger.Info("Usuário padrão criado.", map[string]interface{}{"username": username, "role": du.role})
		if du.role == domain.RoleAdmin {
			s.logger.Warn("Altere a senha do admin padrão em produção.", nil)
		}
	}
}

func (s *Seeder) seedCategories(ctx context.Context) error {
	n, err := s.categories.Count(ctx)
	if err != nil {
		return fmt.Errorf("falha ao contar categorias: %w", err)
	}
	if n > 0 {
		return nil
	}

	for _, name := range defaultCategories {
		if _, err := s.categories.Save(ctx, domain.Category{Name: name}); err != nil {
			return fmt.Errorf("falha ao criar a categoria %s: %w", name, err)
		}
	}
	s.logger.Info("Categorias padrão criadas.", map[string]interface{}{"total": len(defaultCategories)})
	return nil
}

func (s *Seeder) seedProducts(ctx context.Context) error {
	n, err := s.products.Count(ctx)
	if err != nil {
		return fmt.Errorf("falha ao contar produtos: %w", err)
	}
	if n > 0 {
		return nil
	}

	byName := make(map[string]domain.Category, len(defaultCategories))
	for _, name := range defaultCategories {
		c, err := s.categories.FindByName(ctx, name)
		if err != nil {
			return fmt.Errorf("categoria padrão %s ausente: %w", name, err)
		}
		byName[name] = c
	}

	for _, dp := range defaultProducts {
		_, err := s.products.Save(ctx, domain.Product{
			Name:      dp.name,
			BrandName: dp.brand,
			Price:     dp.price,
			ImageURL:  dp.imageURL,
			Category:  byName[dp.category],
		})
		if err != nil {
			return fmt.Errorf("falha ao criar o produto %s: %w", dp.name, err)
		}
	}
	s.logger.Info("Produtos padrão criados.", map[string]interface{}{"total": len(defaultProducts)})
	return nil
}
