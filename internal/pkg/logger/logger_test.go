package logger_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gocatalog/internal/pkg/logger"
)

func TestLogger_WritesJSONWithFields(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Options{Level: "debug", Output: &buf})

	log.Info("Produto criado.", map[string]interface{}{"id": 7, "name": "T-shirt"})

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "Produto criado.", entry["message"])
	assert.Equal(t, float64(7), entry["id"])
	assert.Equal(t, "T-shirt", entry["name"])
	assert.Contains(t, entry, "time")
}

func TestLogger_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Options{Level: "error", Output: &buf})

	log.Debug("debug oculto", nil)
	log.Info("info oculto", nil)
	log.Warn("warn oculto", nil)
	assert.Empty(t, buf.String())

	log.Error("falha no DB", errors.New("timeout"))
	assert.Equal(t, 1, strings.Count(buf.String(), "\n"))
	assert.Contains(t, buf.String(), `"error":"timeout"`)
}

func TestLogger_UnknownLevelDefaultsToInfo(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Options{Level: "verbose", Output: &buf})

	log.Debug("oculto", nil)
	log.Info("visível", nil)

	assert.NotContains(t, buf.String(), "oculto")
	assert.Contains(t, buf.String(), "visível")
}
