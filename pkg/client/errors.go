package client

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrUnauthorized casa, via errors.Is, com qualquer resposta 401 da API.
var ErrUnauthorized = errors.New("sessão expirada ou inválida")

// APIError é uma resposta de erro da API (envelope code/category/message).
type APIError struct {
	StatusCode int    `json:"code"`
	Category   string `json:"category"`
	Message    string `json:"message"`
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("erro HTTP %d", e.StatusCode)
	}
	return fmt.Sprintf("erro HTTP %d: %s", e.StatusCode, e.Message)
}

func (e *APIError) Is(target error) bool {
	return target == ErrUnauthorized && e.StatusCode == http.StatusUnauthorized
}

// ValidationError é devolvido antes de qualquer requisição quando faltam campos obrigatórios.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "campos obrigatórios ausentes ou inválidos: " + strings.Join(e.Fields, ", ")
}
