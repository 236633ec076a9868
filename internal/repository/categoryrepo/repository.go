package categoryrepo

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gocatalog/internal/domain"
	apperror "gocatalog/internal/errors"
	"gocatalog/internal/pkg/cache"
	"gocatalog/internal/pkg/database"
	"gocatalog/internal/pkg/logger"
	"gocatalog/internal/pkg/metrics"
)

// Chaves de cache. Produtos embutem a categoria, por isso escritas aqui
// também invalidam o prefixo de produtos.
const (
	categoryListCacheKey = "categories:all"
	productCachePrefix   = "product:"
)

// CategoryRepository implementa as operações CRUD de categorias.
type CategoryRepository struct {
	DB        *sql.DB
	Cache     cache.Client
	DBTimeout time.Duration
	CacheTTL  time.Duration
	logger    logger.Logger
}

// NewCategoryRepository cria e retorna uma nova instância do Repositório de Categorias.
func NewCategoryRepository(db *sql.DB, cacheClient cache.Client, dbTimeout, cacheTTL time.Duration, logger logger.Logger) *CategoryRepository {
	return &CategoryRepository{
		DB:        db,
		Cache:     cacheClient,
		DBTimeout: dbTimeout,
		CacheTTL:  cacheTTL,
		logger:    logger,
	}
}

func (r *CategoryRepository) translateWriteError(msg string, category domain.Category, err error) error {
	if database.PQErrorCode(err) == database.UniqueViolation {
		return apperror.NewConflictError(fmt.Sprintf("A categoria '%s' já existe.", category.Name))
	}
	r.logger.Error(msg, err)
	return apperror.NewDBError(msg, err)
}

// invalidate remove a lista de categorias e os produtos em cache.
func (r *CategoryRepository) invalidate(ctx context.Context) {
	if err := r.Cache.Delete(ctx, categoryListCacheKey); err != nil {
		r.logger.Warn("Falha ao invalidar cache de categorias.", map[string]interface{}{"error": err.Error()})
	}
	if err := r.Cache.DeleteByPrefix(ctx, productCachePrefix); err != nil {
		r.logger.Warn("Falha ao invalidar cache de produtos.", map[string]interface{}{"error": err.Error()})
	}
}

// Save insere uma nova categoria.
func (r *CategoryRepository) Save(ctx context.Context, category domain.Category) (domain.Category, error) {
	r.logger.Debug("Iniciando Save de categoria no repositório.", map[string]interface{}{"name": category.Name})

	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	err := r.DB.QueryRowContext(ctxTimeout,
		`INSERT INTO categories (name) VALUES ($1) RETURNING id, name`,
		category.Name,
	).Scan(&category.ID, &category.Name)
	if err != nil {
		return domain.Category{}, r.translateWriteError("Falha ao criar categoria", category, err)
	}

	r.invalidate(ctx)
	r.logger.Info("Categoria criada com sucesso.", map[string]interface{}{"id": category.ID, "name": category.Name})
	return category, nil
}

// FindByID busca uma categoria pelo ID.
func (r *CategoryRepository) FindByID(ctx context.Context, id int64) (domain.Category, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	var category domain.Category
	err := r.DB.QueryRowContext(ctxTimeout,
		`SELECT id, name FROM categories WHERE id = $1`, id,
	).Scan(&category.ID, &category.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Category{}, apperror.NewNotFoundError(fmt.Sprintf("Categoria com ID %d não encontrada.", id))
	}
	if err != nil {
		r.logger.Error("Falha ao buscar categoria no DB.", err)
		return domain.Category{}, apperror.NewDBError("Falha ao buscar categoria", err)
	}
	return category, nil
}

// FindByName busca uma categoria pelo nome exato.
func (r *CategoryRepository) FindByName(ctx context.Context, name string) (domain.Category, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	var category domain.Category
	err := r.DB.QueryRowContext(ctxTimeout,
		`SELECT id, name FROM categories WHERE name = $1`, name,
	).Scan(&category.ID, &category.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Category{}, apperror.NewNotFoundError(fmt.Sprintf("Categoria '%s' não encontrada.", name))
	}
	if err != nil {
		r.logger.Error("Falha ao buscar categoria por nome no DB.", err)
		return domain.Category{}, apperror.NewDBError("Falha ao buscar categoria", err)
	}
	return category, nil
}

// FindAll lista as categorias ordenadas por nome, usando Cache-Aside.
func (r *CategoryRepository) FindAll(ctx context.Context) ([]domain.Category, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	if cached, err := r.Cache.Get(ctxTimeout, categoryListCacheKey); err == nil {
		var categories []domain.Category
		if json.Unmarshal([]byte(cached), &categories) == nil {
			metrics.CacheRequestsTotal.WithLabelValues("hit").Inc()
			return categories, nil
		}
	} else if err != cache.ErrCacheMiss {
		r.logger.Warn("Falha ao ler categorias do cache.", map[string]interface{}{"error": err.Error()})
	}

	metrics.CacheRequestsTotal.WithLabelValues("miss").Inc()

	rows, err := r.DB.QueryContext(ctxTimeout, `SELECT id, name FROM categories ORDER BY name`)
	if err != nil {
		r.logger.Error("Falha ao listar categorias no DB.", err)
		return nil, apperror.NewDBError("Falha ao listar categorias", err)
	}
	defer rows.Close()

	categories := make([]domain.Category, 0)
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, apperror.NewDBError("Falha ao mapear categorias do DB", err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewDBError("Erro após iteração de categorias", err)
	}

	if data, err := json.Marshal(categories); err == nil {
		if err := r.Cache.Set(ctxTimeout, categoryListCacheKey, data, r.CacheTTL); err != nil {
			r.logger.Warn("Falha ao gravar categorias no cache.", map[string]interface{}{"error": err.Error()})
		}
	}

	return categories, nil
}

// Update renomeia uma categoria existente.
func (r *CategoryRepository) Update(ctx context.Context, category domain.Category) (domain.Category, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	err := r.DB.QueryRowContext(ctxTimeout,
		`UPDATE categories SET name = $1 WHERE id = $2 RETURNING id, name`,
		category.Name, category.ID,
	).Scan(&category.ID, &category.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Category{}, apperror.NewNotFoundError(fmt.Sprintf("Categoria com ID %d não encontrada para atualização.", category.ID))
	}
	if err != nil {
		return domain.Category{}, r.translateWriteError("Falha ao atualizar categoria", category, err)
	}

	r.invalidate(ctx)
	r.logger.Info("Categoria atualizada com sucesso.", map[string]interface{}{"id": category.ID, "name": category.Name})
	return category, nil
}

// Delete remove uma categoria (e, por cascata, os seus produtos).
func (r *CategoryRepository) Delete(ctx context.Context, id int64) error {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	result, err := r.DB.ExecContext(ctxTimeout, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		r.logger.Error("Falha ao deletar categoria do DB.", err)
		return apperror.NewDBError("Falha ao deletar categoria", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperror.NewDBError("Falha ao verificar linhas afetadas", err)
	}
	if rowsAffected == 0 {
		return apperror.NewNotFoundError(fmt.Sprintf("Categoria com ID %d não encontrada para exclusão.", id))
	}

	r.invalidate(ctx)
	r.logger.Info("Categoria deletada com sucesso.", map[string]interface{}{"id": id})
	return nil
}

// Count devolve o número de categorias cadastradas.
func (r *CategoryRepository) Count(ctx context.Context) (int64, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	var n int64
	if err := r.DB.QueryRowContext(ctxTimeout, `SELECT COUNT(*) FROM categories`).Scan(&n); err != nil {
		return 0, apperror.NewDBError("Falha ao contar categorias", err)
	}
	return n, nil
}
