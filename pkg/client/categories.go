package client

import (
	"context"
	"fmt"
	"net/http"
	"strings"
)

// CategoryAPI é o CRUD de categorias. Escritas exigem ADMIN na API.
type CategoryAPI struct {
	c *Client
}

func categoryPath(id int64) string {
	return fmt.Sprintf("/api/categories/%d", id)
}

func (a *CategoryAPI) List(ctx context.Context) ([]Category, error) {
	var out []Category
	if err := a.c.do(ctx, http.MethodGet, "/api/categories", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (a *CategoryAPI) Get(ctx context.Context, id int64) (Category, error) {
	var out Category
	err := a.c.do(ctx, http.MethodGet, categoryPath(id), nil, nil, &out)
	return out, err
}

func (a *CategoryAPI) Create(ctx context.Context, cat Category) (Category, error) {
	cat.Name = strings.TrimSpace(cat.Name)
	if err := a.c.check(cat); err != nil {
		return Category{}, err
	}
	var out Category
	err := a.c.do(ctx, http.MethodPost, "/api/categories", nil, cat, &out)
	return out, err
}

func (a *CategoryAPI) Update(ctx context.Context, id int64, cat Category) (Category, error) {
	cat.Name = strings.TrimSpace(cat.Name)
	if err := a.c.check(cat); err != nil {
		return Category{}, err
	}
	var out Category
	err := a.c.do(ctx, http.MethodPut, categoryPath(id), nil, cat, &out)
	return out, err
}

func (a *CategoryAPI) Delete(ctx context.Context, id int64) error {
	return a.c.do(ctx, http.MethodDelete, categoryPath(id), nil, nil, nil)
}
