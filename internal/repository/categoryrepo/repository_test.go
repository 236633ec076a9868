package categoryrepo_test

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
	"gocatalog/internal/pkg/cache"
	"gocatalog/internal/pkg/logger"
	"gocatalog/internal/repository/categoryrepo"
)

func newRepo(t *testing.T) (*categoryrepo.CategoryRepository, sqlmock.Sqlmock, *cache.MemoryClient) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	c := cache.NewMemoryClient()
	return categoryrepo.NewCategoryRepository(db, c, time.Second, time.Minute, logger.Nop()), mock, c
}

func TestFindAll_CachesResult(t *testing.T) {
	repo, mock, _ := newRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name FROM categories ORDER BY name")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).
			AddRow(int64(2), "T-shirts Enfant").
			AddRow(int64(1), "T-shirts Homme"))

	first, err := repo.FindAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, first, 2)

	// Segunda chamada vem do cache: nenhuma query nova é esperada.
	second, err := repo.FindAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSave_InvalidatesCaches(t *testing.T) {
	repo, mock, c := newRepo(t)
	ctx := context.Background()
	_ = c.Set(ctx, "categories:all", "[]", time.Minute)
	_ = c.Set(ctx, "product:1", "{}", time.Minute)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO categories (name) VALUES ($1)")).
		WithArgs("Sweats").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(int64(4), "Sweats"))

	saved, err := repo.Save(ctx, domain.Category{Name: "Sweats"})
	require.NoError(t, err)
	assert.Equal(t, int64(4), saved.ID)

	_, err = c.Get(ctx, "categories:all")
	assert.ErrorIs(t, err, cache.ErrCacheMiss)
	_, err = c.Get(ctx, "product:1")
	assert.ErrorIs(t, err, cache.ErrCacheMiss)
}

func TestSave_DuplicateName(t *testing.T) {
	repo, mock, _ := newRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO categories")).
		WillReturnError(&pq.Error{Code: "23505", Constraint: "categories_name_key"})

	_, err := repo.Save(context.Background(), domain.Category{Name: "T-shirts Homme"})

	assert.True(t, apperror.IsConflict(err))
}

func TestDelete_NotFound(t *testing.T) {
	repo, mock, _ := newRepo(t)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM categories WHERE id = $1")).
		WithArgs(int64(9)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), 9)

	assert.True(t, apperror.IsNotFound(err))
}

func TestFindByID_Found(t *testing.T) {
	repo, mock, _ := newRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name FROM categories WHERE id = $1")).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(int64(1), "T-shirts Homme"))

	category, err := repo.FindByID(context.Background(), 1)

	require.NoError(t, err)
	assert.Equal(t, "T-shirts Homme", category.Name)
}
