// Package httputil reúne a leitura de parâmetros e corpos das requisições da API.
package httputil

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	apperror "gocatalog/internal/errors"
)

// maxBodyBytes limita o tamanho do corpo JSON aceito.
const maxBodyBytes = 1 << 20

// PathID lê o segmento {id} da rota como inteiro positivo.
func PathID(r *http.Request) (int64, error) {
	raw := r.PathValue("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, apperror.NewValidationError(fmt.Sprintf("ID inválido: '%s'.", raw))
	}
	return id, nil
}

// DecodeJSON decodifica o corpo em dst. Corpo vazio, malformado ou grande demais é erro de validação.
func DecodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		switch {
		case errors.Is(err, io.EOF):
			return apperror.NewValidationError("O corpo da requisição está vazio.")
		case errors.As(err, &maxErr):
			return apperror.NewValidationError("O corpo da requisição é grande demais.")
		default:
			return apperror.NewValidationError("Payload JSON inválido. Verifique o formato.")
		}
	}
	return nil
}
