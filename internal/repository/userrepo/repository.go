package userrepo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"gocatalog/internal/domain"
	apperror "gocatalog/internal/errors"
	"gocatalog/internal/pkg/database"
	"gocatalog/internal/pkg/logger"
)

const userColumns = `id, username, email, password_hash, first_name, last_name, role, enabled, created_at, updated_at`

// UserRepository implementa o contrato de persistência de usuários no PostgreSQL.
type UserRepository struct {
	DB        *sql.DB
	DBTimeout time.Duration
	logger    logger.Logger
}

// NewUserRepository cria uma nova instância do UserRepository, injetando o DB.
func NewUserRepository(db *sql.DB, dbTimeout time.Duration, logger logger.Logger) *UserRepository {
	return &UserRepository{
		DB:        db,
		DBTimeout: dbTimeout,
		logger:    logger,
	}
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanUser(row rowScanner) (domain.User, error) {
	var user domain.User
	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&user.FirstName,
		&user.LastName,
		&user.Role,
		&user.Enabled,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	return user, err
}

// translateWriteError converte violações de unicidade em ConflictError.
func (r *UserRepository) translateWriteError(msg string, err error) error {
	if database.PQErrorCode(err) == database.UniqueViolation {
		switch database.PQConstraint(err) {
		case "users_username_key":
			return apperror.NewConflictError("O nome de usuário já existe.")
		case "users_email_key":
			return apperror.NewConflictError("O email já está em uso.")
		default:
			return apperror.NewConflictError("Usuário já cadastrado.")
		}
	}
	r.logger.Error(msg, err)
	return apperror.NewDBError(msg, err)
}

// Save insere um novo usuário no banco de dados e devolve-o com ID e timestamps.
func (r *UserRepository) Save(ctx context.Context, user domain.User) (domain.User, error) {
	r.logger.Debug("Iniciando Save de usuário no repositório.", map[string]interface{}{"username": user.Username})

	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := `INSERT INTO users (username, email, password_hash, first_name, last_name, role, enabled) VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING ` + userColumns

	saved, err := scanUser(r.DB.QueryRowContext(ctxTimeout, query,
		user.Username,
		user.Email,
		user.PasswordHash,
		user.FirstName,
		user.LastName,
		user.Role,
		user.Enabled,
	))
	if err != nil {
		return domain.User{}, r.translateWriteError("Falha ao inserir usuário", err)
	}

	r.logger.Info("Usuário salvo com sucesso no repositório.", map[string]interface{}{"user_id": saved.ID, "username": saved.Username})
	return saved, nil
}

// FindByUsername busca um usuário pelo nome de usuário.
func (r *UserRepository) FindByUsername(ctx context.Context, username string) (domain.User, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1`
	user, err := scanUser(r.DB.QueryRowContext(ctxTimeout, query, username))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.User{}, apperror.NewNotFoundError(fmt.Sprintf("Usuário '%s' não encontrado.", username))
	}
	if err != nil {
		r.logger.Error("Falha ao buscar usuário por username no DB.", err)
		return domain.User{}, apperror.NewDBError("Falha ao buscar usuário", err)
	}
	return user, nil
}

// FindByID busca um usuário pelo ID.
func (r *UserRepository) FindByID(ctx context.Context, id int64) (domain.User, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	user, err := scanUser(r.DB.QueryRowContext(ctxTimeout, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.User{}, apperror.NewNotFoundError(fmt.Sprintf("Usuário com ID %d não encontrado.", id))
	}
	if err != nil {
		r.logger.Error("Falha ao buscar usuário por ID no DB.", err)
		return domain.User{}, apperror.NewDBError("Falha ao buscar usuário", err)
	}
	return user, nil
}

// ExistsByUsername informa se já existe um usuário com o username.
func (r *UserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE username = $1)`, username)
}

// ExistsByEmail informa se já existe um usuário com o email.
func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`, email)
}

func (r *UserRepository) exists(ctx context.Context, query string, arg interface{}) (bool, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	var exists bool
	if err := r.DB.QueryRowContext(ctxTimeout, query, arg).Scan(&exists); err != nil {
		r.logger.Error("Falha ao verificar existência de usuário no DB.", err)
		return false, apperror.NewDBError("Falha ao verificar usuário", err)
	}
	return exists, nil
}

// Update grava email, nome e sobrenome do usuário.
func (r *UserRepository) Update(ctx context.Context, user domain.User) (domain.User, error) {
	r.logger.Debug("Iniciando Update de usuário no repositório.", map[string]interface{}{"user_id": user.ID})

	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := `UPDATE users SET email = $1, first_name = $2, last_name = $3, updated_at = NOW() WHERE id = $4 RETURNING ` + userColumns

	updated, err := scanUser(r.DB.QueryRowContext(ctxTimeout, query,
		user.Email,
		user.FirstName,
		user.LastName,
		user.ID,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.User{}, apperror.NewNotFoundError(fmt.Sprintf("Usuário com ID %d não encontrado.", user.ID))
	}
	if err != nil {
		return domain.User{}, r.translateWriteError("Falha ao atualizar usuário", err)
	}

	r.logger.Info("Usuário atualizado com sucesso.", map[string]interface{}{"user_id": updated.ID})
	return updated, nil
}
