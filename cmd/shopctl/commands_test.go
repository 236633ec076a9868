package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"gocatalog/pkg/client"
)

func newApp(t *testing.T, store client.Store, handler http.HandlerFunc) (*app, *bytes.Buffer) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	api, err := client.New(srv.URL, client.WithStore(store))
	require.NoError(t, err)

	var out bytes.Buffer
	return &app{api: api, out: &out, errOut: &bytes.Buffer{}}, &out
}

func TestRun_UnknownCommand(t *testing.T) {
	a, _ := newApp(t, client.NewMemoryStore(), func(w http.ResponseWriter, r *http.Request) {})
	assert.ErrorIs(t, a.run(context.Background(), []string{"shipments"}), errUsage)
}

func TestRun_LoginThenList(t *testing.T) {
	store := client.NewMemoryStore()
	a, out := newApp(t, store, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/api/auth/login":
			_ = json.NewEncoder(w).Encode(client.AuthResponse{Token: "tok", ID: 1, Username: "admin", Role: client.RoleAdmin, Message: "Login realizado com sucesso."})
		case "/api/products":
			assert.Equal(t, "search=nike", r.URL.RawQuery)
			_ = json.NewEncoder(w).Encode([]client.Product{{ID: 1, Name: "T-shirt Homme Basique", BrandName: "Nike", Price: 19.99, Category: client.Category{ID: 1, Name: "T-shirts Homme"}}})
		}
	})
	ctx := context.Background()

	require.NoError(t, a.run(ctx, []string{"login", "-u", "admin", "-p", "admin123"}))
	assert.True(t, store.IsLoggedIn())

	require.NoError(t, a.run(ctx, []string{"products", "list", "-search", " nike "}))
	assert.Contains(t, out.String(), "T-shirt Homme Basique")
	assert.Contains(t, out.String(), "19.99")
}

func TestRun_AdminOnlyWrites(t *testing.T) {
	store := client.NewMemoryStore()
	require.NoError(t, store.SaveAuthData("tok", &client.User{Username: "user", Role: client.RoleUser}))

	a, _ := newApp(t, store, func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("nenhuma requisição esperada, recebida %s %s", r.Method, r.URL.Path)
	})

	err := a.run(context.Background(), []string{"categories", "create", "-name", "Casquettes"})
	assert.ErrorIs(t, err, errAdminOnly)
}

func TestRun_ExportWritesWorkbook(t *testing.T) {
	a, out := newApp(t, client.NewMemoryStore(), func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "categoryId=2", r.URL.RawQuery)
		_ = json.NewEncoder(w).Encode([]client.Product{{ID: 4, Name: "T-shirt Femme Basique", BrandName: "H&M", Price: 15.99}})
	})

	path := filepath.Join(t.TempDir(), "catalogue.xlsx")
	require.NoError(t, a.run(context.Background(), []string{"products", "export", "-category", "2", "-out", path}))
	assert.Contains(t, out.String(), "1 produtos exportados")

	xlsx, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer xlsx.Close()
	rows, err := xlsx.GetRows("Produtos")
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}
