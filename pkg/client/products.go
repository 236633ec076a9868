package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// ProductAPI é o catálogo público e o CRUD de produtos.
type ProductAPI struct {
	c *Client
}

func productPath(id int64) string {
	return fmt.Sprintf("/api/products/%d", id)
}

// List lista os produtos. Busca em branco e categoria zero não são enviadas.
func (a *ProductAPI) List(ctx context.Context, filter ProductFilter) ([]Product, error) {
	q := url.Values{}
	if filter.CategoryID != 0 {
		q.Set("categoryId", strconv.FormatInt(filter.CategoryID, 10))
	}
	if s := strings.TrimSpace(filter.Search); s != "" {
		q.Set("search", s)
	}

	var out []Product
	if err := a.c.do(ctx, http.MethodGet, "/api/products", q, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (a *ProductAPI) Get(ctx context.Context, id int64) (Product, error) {
	var out Product
	err := a.c.do(ctx, http.MethodGet, productPath(id), nil, nil, &out)
	return out, err
}

func (a *ProductAPI) checkProduct(p Product) error {
	var extra []string
	if p.Category.ID == 0 {
		extra = append(extra, "category")
	}
	return a.c.check(p, extra...)
}

func (a *ProductAPI) Create(ctx context.Context, p Product) (Product, error) {
	if err := a.checkProduct(p); err != nil {
		return Product{}, err
	}
	var out Product
	err := a.c.do(ctx, http.MethodPost, "/api/products", nil, p, &out)
	return out, err
}

func (a *ProductAPI) Update(ctx context.Context, id int64, p Product) (Product, error) {
	if err := a.checkProduct(p); err != nil {
		return Product{}, err
	}
	var out Product
	err := a.c.do(ctx, http.MethodPut, productPath(id), nil, p, &out)
	return out, err
}

func (a *ProductAPI) Delete(ctx context.Context, id int64) error {
	return a.c.do(ctx, http.MethodDelete, productPath(id), nil, nil, nil)
}
