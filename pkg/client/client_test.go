package client_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gocatalog/pkg/client"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func newClient(t *testing.T, handler http.HandlerFunc, opts ...client.Option) *client.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c, err := client.New(srv.URL, opts...)
	require.NoError(t, err)
	return c
}

func TestNew_InvalidURL(t *testing.T) {
	_, err := client.New("localhost")
	assert.Error(t, err)
}

func TestLogin_SavesSessionAndPublishes(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/auth/login", r.URL.Path)
		assert.Empty(t, r.Header.Get("Authorization"))
		writeJSON(w, http.StatusOK, client.AuthResponse{Token: "tok-1", ID: 1, Username: "admin", Email: "admin@ecommerce.com", Role: client.RoleAdmin})
	})

	updates, cancel := c.Watch()
	defer cancel()
	assert.Nil(t, <-updates)

	_, err := c.Auth.Login(context.Background(), client.LoginRequest{Username: "admin", Password: "admin123"})
	require.NoError(t, err)

	assert.True(t, c.Auth.IsLoggedIn())
	assert.True(t, c.Auth.IsAdmin())
	assert.Equal(t, "tok-1", c.Store().Token())
	u := <-updates
	require.NotNil(t, u)
	assert.Equal(t, "admin", u.Username)
	assert.Equal(t, "admin", c.CurrentUser().Username)
}

func TestLogin_RequiredFieldsBlockRequest(t *testing.T) {
	var calls int32
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
	})

	_, err := c.Auth.Login(context.Background(), client.LoginRequest{Username: "admin"})

	var verr *client.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{"password"}, verr.Fields)
	assert.Zero(t, atomic.LoadInt32(&calls))
}

func TestInterceptor_AttachesBearer(t *testing.T) {
	store := client.NewMemoryStore()
	require.NoError(t, store.SaveAuthData("tok-2", &client.User{Username: "user", Role: client.RoleUser}))

	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok-2", r.Header.Get("Authorization"))
		writeJSON(w, http.StatusOK, client.User{ID: 2, Username: "user", Role: client.RoleUser})
	}, client.WithStore(store))

	u, err := c.Auth.Me(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), u.ID)
	assert.False(t, c.Auth.IsAdmin())
}

func TestInterceptor_UnauthorizedClearsSession(t *testing.T) {
	store := client.NewMemoryStore()
	require.NoError(t, store.SaveAuthData("expired", &client.User{Username: "user", Role: client.RoleUser}))

	var redirected bool
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnauthorized, map[string]interface{}{"code": 401, "category": "UNAUTHORIZED", "message": "Token inválido."})
	}, client.WithStore(store), client.WithOnUnauthorized(func() { redirected = true }))

	updates, cancel := c.Watch()
	defer cancel()
	require.NotNil(t, <-updates)

	_, err := c.Products.List(context.Background(), client.ProductFilter{})

	assert.True(t, errors.Is(err, client.ErrUnauthorized))
	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "UNAUTHORIZED", apiErr.Category)
	assert.Equal(t, "Token inválido.", apiErr.Message)

	assert.True(t, redirected)
	assert.False(t, store.HasToken())
	assert.Nil(t, store.User())
	assert.Nil(t, <-updates)
}

func TestProducts_ListQuery(t *testing.T) {
	tests := []struct {
		name   string
		filter client.ProductFilter
		want   string
	}{
		{"sem filtros", client.ProductFilter{}, ""},
		{"busca em branco", client.ProductFilter{Search: "   "}, ""},
		{"busca aparada", client.ProductFilter{Search: "  nike "}, "search=nike"},
		{"categoria", client.ProductFilter{CategoryID: 3}, "categoryId=3"},
		{"ambos", client.ProductFilter{CategoryID: 3, Search: "puma"}, "categoryId=3&search=puma"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, tt.want, r.URL.RawQuery)
				writeJSON(w, http.StatusOK, []client.Product{})
			})
			products, err := c.Products.List(context.Background(), tt.filter)
			require.NoError(t, err)
			assert.Empty(t, products)
		})
	}
}

func TestProducts_CreateRequiresCategory(t *testing.T) {
	var calls int32
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
	})

	_, err := c.Products.Create(context.Background(), client.Product{
		Name: "T-shirt", BrandName: "Nike", Price: 19.99, ImageURL: "https://img",
	})

	var verr *client.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "category")
	assert.Zero(t, atomic.LoadInt32(&calls))
}

func TestCategories_CRUD(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.Method + " " + r.URL.Path {
		case "POST /api/categories":
			var in client.Category
			require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
			assert.Equal(t, "Casquettes", in.Name)
			writeJSON(w, http.StatusCreated, client.Category{ID: 4, Name: in.Name})
		case "DELETE /api/categories/4":
			w.WriteHeader(http.StatusNoContent)
		case "GET /api/categories/9":
			writeJSON(w, http.StatusNotFound, map[string]interface{}{"code": 404, "category": "NOT_FOUND", "message": "Categoria não encontrada."})
		default:
			t.Fatalf("rota inesperada %s %s", r.Method, r.URL.Path)
		}
	})
	ctx := context.Background()

	created, err := c.Categories.Create(ctx, client.Category{Name: "  Casquettes "})
	require.NoError(t, err)
	assert.Equal(t, int64(4), created.ID)

	require.NoError(t, c.Categories.Delete(ctx, 4))

	_, err = c.Categories.Get(ctx, 9)
	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.False(t, errors.Is(err, client.ErrUnauthorized))

	_, err = c.Categories.Create(ctx, client.Category{Name: "  "})
	var verr *client.ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestLogout_ClearsEvenWhenServerFails(t *testing.T) {
	store := client.NewMemoryStore()
	require.NoError(t, store.SaveAuthData("tok", &client.User{Username: "user", Role: client.RoleUser}))

	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/auth/logout", r.URL.Path)
		w.WriteHeader(http.StatusInternalServerError)
	}, client.WithStore(store))

	require.NoError(t, c.Auth.Logout(context.Background()))
	assert.False(t, c.Auth.IsLoggedIn())
	assert.Nil(t, c.CurrentUser())
}

func TestUpdateProfile_RefreshesUser(t *testing.T) {
	store := client.NewMemoryStore()
	require.NoError(t, store.SaveAuthData("tok", &client.User{ID: 2, Username: "user", Email: "old@x.com", Role: client.RoleUser}))

	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, client.AuthResponse{ID: 2, Username: "user", Email: "new@x.com", Role: client.RoleUser, Message: "Perfil atualizado com sucesso."})
	}, client.WithStore(store))

	email := "new@x.com"
	resp, err := c.Auth.UpdateProfile(context.Background(), client.UpdateProfileRequest{Email: &email})
	require.NoError(t, err)
	assert.Equal(t, "Perfil atualizado com sucesso.", resp.Message)
	assert.Equal(t, "new@x.com", store.User().Email)
	assert.Equal(t, "tok", store.Token())
	assert.Equal(t, "new@x.com", c.CurrentUser().Email)
}

func TestFileStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gocatalog", "session.json")
	s := client.NewFileStore(path)

	assert.False(t, s.IsLoggedIn())
	require.NoError(t, s.SaveAuthData("tok", &client.User{Username: "admin", Role: client.RoleAdmin}))

	reopened := client.NewFileStore(path)
	assert.True(t, reopened.IsLoggedIn())
	assert.Equal(t, "admin", reopened.User().Username)

	require.NoError(t, reopened.RemoveUser())
	assert.True(t, reopened.HasToken())
	assert.False(t, reopened.IsLoggedIn())

	require.NoError(t, reopened.Clear())
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestFileStore_CorruptUserReadsAsNone(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"auth_token":"tok","auth_user":"{not json"}`), 0o600))

	s := client.NewFileStore(path)
	assert.Equal(t, "tok", s.Token())
	assert.Nil(t, s.User())
	assert.False(t, s.IsLoggedIn())

	require.NoError(t, os.WriteFile(path, []byte(`garbage`), 0o600))
	assert.False(t, s.HasToken())
}
