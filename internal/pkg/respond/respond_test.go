package respond_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gocatalog/internal/domain"
	apperror "gocatalog/internal/errors"
	"gocatalog/internal/pkg/respond"
)

func TestError_Envelope(t *testing.T) {
	rec := httptest.NewRecorder()

	status := respond.Error(rec, apperror.NewNotFoundError("Produto com ID 9 não existe."))

	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body domain.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, 404, body.Code)
	assert.Equal(t, "NOT_FOUND", body.Category)
	assert.Contains(t, body.Message, "Produto com ID 9")
}

func TestJSON_NilBody(t *testing.T) {
	rec := httptest.NewRecorder()

	require.NoError(t, respond.JSON(rec, http.StatusNoContent, nil))

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())
}
