// Package client é o cliente Go da API do GoCatalog: sessão, autenticação,
// categorias e catálogo de produtos.
//
// Cada chamada é única (sem retentativa) e cancelável pelo context.Context.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

// Client fala com a API REST. É seguro para uso concorrente.
type Client struct {
	baseURL  *url.URL
	http     *http.Client
	store    Store
	session  *session
	validate *validator.Validate
	log      zerolog.Logger

	transport      http.RoundTripper
	timeout        time.Duration
	onUnauthorized func()

	Auth       *AuthAPI
	Categories *CategoryAPI
	Products   *ProductAPI
}

// Option configura o Client.
type Option func(*Client)

// WithStore troca o armazenamento da sessão (padrão: MemoryStore).
func WithStore(s Store) Option {
	return func(c *Client) { c.store = s }
}

// WithTransport define o RoundTripper abaixo do interceptor.
func WithTransport(rt http.RoundTripper) Option {
	return func(c *Client) { c.transport = rt }
}

func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) { c.log = l }
}

// WithOnUnauthorized registra o que fazer quando a sessão é encerrada por um 401
// (ex.: levar o usuário de volta ao login).
func WithOnUnauthorized(fn func()) Option {
	return func(c *Client) { c.onUnauthorized = fn }
}

// New cria um Client para a API em baseURL (ex.: http://localhost:8080).
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("URL base inválida: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("URL base inválida: %q", baseURL)
	}

	c := &Client{
		baseURL: u,
		timeout: 15 * time.Second,
		log:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.store == nil {
		c.store = NewMemoryStore()
	}

	c.session = newSession(c.store.User())
	c.validate = newValidator()
	c.http = &http.Client{
		Timeout: c.timeout,
		Transport: &Interceptor{
			Next:           c.transport,
			Store:          c.store,
			OnUnauthorized: c.onUnauthorized,
			publish:        c.session.publish,
			log:            c.log,
		},
	}

	c.Auth = &AuthAPI{c: c}
	c.Categories = &CategoryAPI{c: c}
	c.Products = &ProductAPI{c: c}
	return c, nil
}

// Store devolve o armazenamento de sessão em uso.
func (c *Client) Store() Store {
	return c.store
}

// CurrentUser devolve o último usuário publicado (nil sem sessão).
func (c *Client) CurrentUser() *User {
	return c.session.get()
}

// Watch devolve um canal que recebe o usuário atual e depois cada mudança
// (login, registro, perfil, logout). A função devolvida encerra a inscrição.
func (c *Client) Watch() (<-chan *User, func()) {
	return c.session.watch()
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// check roda as validações de campos antes de qualquer requisição.
func (c *Client) check(v interface{}, extra ...string) error {
	fields := append([]string(nil), extra...)
	if err := c.validate.Struct(v); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return err
		}
		for _, fe := range verrs {
			fields = append(fields, fe.Field())
		}
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, in, out interface{}) error {
	u := c.baseURL.JoinPath(path)
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}

	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	c.log.Debug().Str("method", method).Str("path", u.Path).Int("status", resp.StatusCode).Msg("api")

	if resp.StatusCode >= http.StatusBadRequest {
		return decodeAPIError(resp)
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("resposta inválida de %s %s: %w", method, u.Path, err)
	}
	return nil
}

func decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{}
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if len(data) > 0 {
		_ = json.Unmarshal(data, apiErr)
	}
	apiErr.StatusCode = resp.StatusCode
	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(resp.StatusCode)
	}
	return apiErr
}
