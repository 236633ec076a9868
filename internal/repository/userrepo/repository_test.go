package userrepo_test

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gocatalog/internal/domain"
	apperror "gocatalog/internal/errors"
	"gocatalog/internal/pkg/logger"
	"gocatalog/internal/repository/userrepo"
)

var userCols = []string{"id", "username", "email", "password_hash", "first_name", "last_name", "role", "enabled", "created_at", "updated_at"}

func newRepo(t *testing.T) (*userrepo.UserRepository, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return userrepo.NewUserRepository(db, time.Second, logger.Nop()), mock
}

func TestSave_Success(t *testing.T) {
	repo, mock := newRepo(t)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO users (username, email, password_hash")).
		WithArgs("alice", "alice@example.com", "hash", "Alice", "", domain.RoleUser, true).
		WillReturnRows(sqlmock.NewRows(userCols).
			AddRow(int64(3), "alice", "alice@example.com", "hash", "Alice", "", "USER", true, now, now))

	user, err := repo.Save(context.Background(), domain.User{
		Username:     "alice",
		Email:        "alice@example.com",
		PasswordHash: "hash",
		FirstName:    "Alice",
		Role:         domain.RoleUser,
		Enabled:      true,
	})

	require.NoError(t, err)
	assert.Equal(t, int64(3), user.ID)
	assert.Equal(t, domain.RoleUser, user.Role)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSave_DuplicateEmail(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO users")).
		WillReturnError(&pq.Error{Code: "23505", Constraint: "users_email_key"})

	_, err := repo.Save(context.Background(), domain.User{Username: "bob", Email: "dup@example.com"})

	require.Error(t, err)
	assert.IsType(t, &apperror.ConflictError{}, err)
	assert.Contains(t, err.Error(), "email")
}

func TestFindByUsername_NotFound(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE username = $1")).
		WithArgs("ghost").
		WillReturnRows(sqlmock.NewRows(userCols))

	_, err := repo.FindByUsername(context.Background(), "ghost")

	assert.True(t, apperror.IsNotFound(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExistsByEmail(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)")).
		WithArgs("admin@ecommerce.com").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := repo.ExistsByEmail(context.Background(), "admin@ecommerce.com")

	require.NoError(t, err)
	assert.True(t, exists)
}

func TestUpdate_NotFound(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("UPDATE users SET email = $1")).
		WithArgs("x@example.com", "", "", int64(99)).
		WillReturnRows(sqlmock.NewRows(userCols))

	_, err := repo.Update(context.Background(), domain.User{ID: 99, Email: "x@example.com"})

	assert.True(t, apperror.IsNotFound(err))
}
