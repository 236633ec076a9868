// Package respond escreve as respostas JSON da API, incluindo o envelope de erro.
package respond

import (
	"encoding/json"
	"net/http"

	"gocatalog/internal/domain"
	apperror "gocatalog/internal/errors"
)

// JSON escreve data como JSON com o status informado. data nil produz corpo vazio.
func JSON(w http.ResponseWriter, status int, data interface{}) error {
	if data == nil {
		w.WriteHeader(status)
		return nil
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(data)
}

// Error traduz o erro para {code, category, message} e devolve o status usado.
func Error(w http.ResponseWriter, err error) int {
	status, category, message := apperror.MapToHTTPStatus(err)
	_ = JSON(w, status, domain.ErrorResponse{
		Code:     status,
		Category: category,
		Message:  message,
	})
	return status
}
