package productrepo

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"gocatalog/internal/domain"
	apperror "gocatalog/internal/errors"
	"gocatalog/internal/pkg/cache"
	"gocatalog/internal/pkg/database"
	"gocatalog/internal/pkg/logger"
	"gocatalog/internal/pkg/metrics"
)

// Define a chave de cache para produtos.
const productCacheKey = "product:%d"

const selectProduct = `SELECT p.id, p.name, p.brand_name, p.price, p.image_url, c.id, c.name FROM products p JOIN categories c ON c.id = p.category_id`

// ProductRepository implementa o acesso a dados de produtos.
// Ela contém as conexões necessárias para acessar dados.
type ProductRepository struct {
	DB        *sql.DB      // Conexão principal com o banco de dados (PostgreSQL)
	Cache     cache.Client // Cliente para operações de cache (Redis)
	DBTimeout time.Duration
	CacheTTL  time.Duration
	logger    logger.Logger
}

// NewProductRepository cria e retorna uma nova instância do Repositório.
// Aqui injetamos as dependências de Infraestrutura (DB e Cache).
func NewProductRepository(db *sql.DB, cacheClient cache.Client, dbTimeout, cacheTTL time.Duration, logger logger.Logger) *ProductRepository {
	return &ProductRepository{
		DB:        db,
		Cache:     cacheClient,
		DBTimeout: dbTimeout,
		CacheTTL:  cacheTTL,
		logger:    logger,
	}
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanProduct(row rowScanner) (domain.Product, error) {
	var p domain.Product
	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.BrandName,
		&p.Price,
		&p.ImageURL,
		&p.Category.ID,
		&p.Category.Name,
	)
	return p, err
}

// translateWriteError converte a violação de chave estrangeira (categoria inexistente) em erro de validação.
func (r *ProductRepository) translateWriteError(msg string, product domain.Product, err error) error {
	if database.PQErrorCode(err) == database.ForeignKeyViolation {
		return apperror.NewValidationError(fmt.Sprintf("A categoria %d não existe.", product.Category.ID))
	}
	r.logger.Error(msg, err)
	return apperror.NewDBError(msg, err)
}

func (r *ProductRepository) evict(ctx context.Context, id int64) {
	if err := r.Cache.Delete(ctx, fmt.Sprintf(productCacheKey, id)); err != nil {
		r.logger.Warn("Falha ao invalidar produto no cache.", map[string]interface{}{"id": id, "error": err.Error()})
	}
}

// Save persiste um novo Produto e devolve-o com o ID gerado e a categoria resolvida.
func (r *ProductRepository) Save(ctx context.Context, product domain.Product) (domain.Product, error) {
	r.logger.Debug("Iniciando Save de produto no repositório.", map[string]interface{}{"name": product.Name})

	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	const productSQL = `WITH inserted AS (
		INSERT INTO products (name, brand_name, price, image_url, category_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, name, brand_name, price, image_url, category_id)
	SELECT i.id, i.name, i.brand_name, i.price, i.image_url, c.id, c.name
	FROM inserted i JOIN categories c ON c.id = i.category_id`

	saved, err := scanProduct(r.DB.QueryRowContext(ctxTimeout, productSQL,
		product.Name,
		product.BrandName,
		product.Price,
		product.ImageURL,
		product.Category.ID,
	))
	if err != nil {
		return domain.Product{}, r.translateWriteError("Falha ao inserir produto", product, err)
	}

	r.logger.Info("Produto salvo com sucesso.", map[string]interface{}{"id": saved.ID, "name": saved.Name})
	return saved, nil
}

// FindByID busca um produto pelo ID, utilizando a estratégia Cache-Aside.
func (r *ProductRepository) FindByID(ctx context.Context, id int64) (domain.Product, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	key := fmt.Sprintf(productCacheKey, id)

	// --- 1. Estratégia Cache-Aside (READ) ---
	cachedData, err := r.Cache.Get(ctxTimeout, key)
	if err == nil {
		var product domain.Product
		if json.Unmarshal([]byte(cachedData), &product) == nil {
			metrics.CacheRequestsTotal.WithLabelValues("hit").Inc()
			return product, nil
		}
		r.logger.Warn("Produto corrompido no cache, buscando no DB.", map[string]interface{}{"id": id})
	} else if err != cache.ErrCacheMiss {
		// Falha real de cache (ex: conexão perdida): logamos, mas seguimos para o DB.
		r.logger.Warn("Falha ao ler produto do cache.", map[string]interface{}{"id": id, "error": err.Error()})
	}

	metrics.CacheRequestsTotal.WithLabelValues("miss").Inc()

	// --- 2. Busca no Banco de Dados (PostgreSQL) ---
	product, err := scanProduct(r.DB.QueryRowContext(ctxTimeout, selectProduct+` WHERE p.id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Product{}, apperror.NewNotFoundError(fmt.Sprintf("Produto com ID %d não existe na base de dados.", id))
	}
	if err != nil {
		r.logger.Error("Falha ao buscar produto no DB.", err)
		return domain.Product{}, apperror.NewDBError("Falha ao buscar produto no DB", err)
	}

	// --- 3. Estratégia Cache-Aside (WRITE) ---
	if productJSON, marshalErr := json.Marshal(product); marshalErr == nil {
		if err := r.Cache.Set(ctxTimeout, key, productJSON, r.CacheTTL); err != nil {
			r.logger.Warn("Falha ao gravar produto no cache.", map[string]interface{}{"id": id, "error": err.Error()})
		}
	}

	return product, nil
}

// escapeLike protege os curingas do LIKE presentes no termo de busca.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

// FindAll lista produtos aplicando o filtro: busca por nome/marca, categoria, ou tudo.
func (r *ProductRepository) FindAll(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := selectProduct
	var args []interface{}

	switch {
	case filter.Search != "":
		query += ` WHERE LOWER(p.name) LIKE $1 OR LOWER(p.brand_name) LIKE $1`
		args = append(args, "%"+escapeLike(strings.ToLower(filter.Search))+"%")
	case filter.CategoryID > 0:
		query += ` WHERE p.category_id = $1`
		args = append(args, filter.CategoryID)
	}
	query += ` ORDER BY p.id`

	rows, err := r.DB.QueryContext(ctxTimeout, query, args...)
	if err != nil {
		r.logger.Error("Falha ao listar produtos no DB.", err)
		return nil, apperror.NewDBError("Falha ao listar produtos", err)
	}
	defer rows.Close()

	products := make([]domain.Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, apperror.NewDBError("Falha ao mapear produtos do DB", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewDBError("Erro após iteração de produtos", err)
	}

	r.logger.Debug("Produtos listados.", map[string]interface{}{"total": len(products), "search": filter.Search, "category_id": filter.CategoryID})
	return products, nil
}

// Update substitui todos os campos editáveis do produto.
func (r *ProductRepository) Update(ctx context.Context, product domain.Product) (domain.Product, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	const updateSQL = `WITH updated AS (
		UPDATE products SET name = $1, brand_name = $2, price = $3, image_url = $4, category_id = $5
		WHERE id = $6
		RETURNING id, name, brand_name, price, image_url, category_id)
	SELECT u.id, u.name, u.brand_name, u.price, u.image_url, c.id, c.name
	FROM updated u JOIN categories c ON c.id = u.category_id`

	updated, err := scanProduct(r.DB.QueryRowContext(ctxTimeout, updateSQL,
		product.Name,
		product.BrandName,
		product.Price,
		product.ImageURL,
		product.Category.ID,
		product.ID,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Product{}, apperror.NewNotFoundError(fmt.Sprintf("Produto com ID %d não encontrado para atualização.", product.ID))
	}
	if err != nil {
		return domain.Product{}, r.translateWriteError("Falha ao atualizar produto", product, err)
	}

	r.evict(ctx, product.ID)
	r.logger.Info("Produto atualizado com sucesso.", map[string]interface{}{"id": updated.ID})
	return updated, nil
}

// Delete remove um produto pelo ID.
func (r *ProductRepository) Delete(ctx context.Context, id int64) error {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	result, err := r.DB.ExecContext(ctxTimeout, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		r.logger.Error("Falha ao deletar produto do DB.", err)
		return apperror.NewDBError("Falha ao deletar produto", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperror.NewDBError("Falha ao verificar linhas afetadas", err)
	}
	if rowsAffected == 0 {
		return apperror.NewNotFoundError(fmt.Sprintf("Produto com ID %d não encontrado para exclusão.", id))
	}

	r.evict(ctx, id)
	r.logger.Info("Produto deletado com sucesso.", map[string]interface{}{"id": id})
	return nil
}

// Count devolve o número de produtos cadastrados.
func (r *ProductRepository) Count(ctx context.Context) (int64, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	var n int64
	if err := r.DB.QueryRowContext(ctxTimeout, `SELECT COUNT(*) FROM products`).Scan(&n); err != nil {
		return 0, apperror.NewDBError("Falha ao contar produtos", err)
	}
	return n, nil
}
