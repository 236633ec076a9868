package client

import (
	"net/http"

	"github.com/rs/zerolog"
)

// Interceptor anexa o token da sessão a cada requisição e encerra a sessão
// localmente quando a API responde 401. A resposta segue para o chamador.
type Interceptor struct {
	Next           http.RoundTripper
	Store          Store
	OnUnauthorized func()

	publish func(*User)
	log     zerolog.Logger
}

func (i *Interceptor) next() http.RoundTripper {
	if i.Next != nil {
		return i.Next
	}
	return http.DefaultTransport
}

func (i *Interceptor) RoundTrip(req *http.Request) (*http.Response, error) {
	if token := i.Store.Token(); token != "" {
		req = req.Clone(req.Context())
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := i.next().RoundTrip(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusUnauthorized {
		i.log.Warn().Str("url", req.URL.Path).Msg("401 recebido; sessão encerrada")
		if err := i.Store.Clear(); err != nil {
			i.log.Error().Err(err).Msg("falha ao limpar a sessão")
		}
		if i.publish != nil {
			i.publish(nil)
		}
		if i.OnUnauthorized != nil {
			i.OnUnauthorized()
		}
	}
	return resp, nil
}
