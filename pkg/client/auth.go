package client

import (
	"context"
	"net/http"
)

// AuthAPI cobre registro, login, logout e perfil.
type AuthAPI struct {
	c *Client
}

func (a *AuthAPI) establish(resp AuthResponse) error {
	user := resp.user()
	if err := a.c.store.SaveAuthData(resp.Token, user); err != nil {
		return err
	}
	a.c.session.publish(user)
	return nil
}

// Register cria a conta (sempre USER) e abre a sessão.
func (a *AuthAPI) Register(ctx context.Context, req RegisterRequest) (AuthResponse, error) {
	if err := a.c.check(req); err != nil {
		return AuthResponse{}, err
	}
	var resp AuthResponse
	if err := a.c.do(ctx, http.MethodPost, "/api/auth/register", nil, req, &resp); err != nil {
		return AuthResponse{}, err
	}
	return resp, a.establish(resp)
}

// Login autentica e abre a sessão.
func (a *AuthAPI) Login(ctx context.Context, req LoginRequest) (AuthResponse, error) {
	if err := a.c.check(req); err != nil {
		return AuthResponse{}, err
	}
	var resp AuthResponse
	if err := a.c.do(ctx, http.MethodPost, "/api/auth/login", nil, req, &resp); err != nil {
		return AuthResponse{}, err
	}
	return resp, a.establish(resp)
}

// Logout pede à API que revogue o token e sempre limpa a sessão local,
// mesmo que a API esteja fora do ar.
func (a *AuthAPI) Logout(ctx context.Context) error {
	if a.c.store.HasToken() {
		if err := a.c.do(ctx, http.MethodPost, "/api/auth/logout", nil, nil, nil); err != nil {
			a.c.log.Warn().Err(err).Msg("falha ao revogar o token na API")
		}
	}
	err := a.c.store.Clear()
	a.c.session.publish(nil)
	return err
}

// Me busca o usuário autenticado na API.
func (a *AuthAPI) Me(ctx context.Context) (*User, error) {
	var u User
	if err := a.c.do(ctx, http.MethodGet, "/api/auth/me", nil, nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// UpdateProfile altera o perfil e atualiza o usuário da sessão.
func (a *AuthAPI) UpdateProfile(ctx context.Context, req UpdateProfileRequest) (AuthResponse, error) {
	if err := a.c.check(req); err != nil {
		return AuthResponse{}, err
	}
	var resp AuthResponse
	if err := a.c.do(ctx, http.MethodPut, "/api/auth/me", nil, req, &resp); err != nil {
		return AuthResponse{}, err
	}

	user := resp.user()
	if err := a.c.store.SaveUser(user); err != nil {
		return resp, err
	}
	a.c.session.publish(user)
	return resp, nil
}

// IsLoggedIn exige token e usuário na sessão.
func (a *AuthAPI) IsLoggedIn() bool {
	return a.c.store.IsLoggedIn()
}

func (a *AuthAPI) IsAdmin() bool {
	return a.c.store.User().IsAdmin()
}
