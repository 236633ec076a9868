package export_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"gocatalog/internal/export"
	"gocatalog/pkg/client"
)

func TestWriteProducts(t *testing.T) {
	var buf bytes.Buffer
	err := export.WriteProducts(&buf, []client.Product{
		{ID: 1, Name: "T-shirt Homme Basique", BrandName: "Nike", Price: 19.99, ImageURL: "https://img/1", Category: client.Category{ID: 1, Name: "T-shirts Homme"}},
		{ID: 7, Name: "T-shirt Enfant Basique", BrandName: "Kiabi", Price: 9.99, ImageURL: "https://img/7", Category: client.Category{ID: 3, Name: "T-shirts Enfant"}},
	})
	require.NoError(t, err)

	xlsx, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer xlsx.Close()

	rows, err := xlsx.GetRows(export.SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"ID", "Nome", "Marca", "Preço", "Categoria", "Imagem"}, rows[0])
	assert.Equal(t, "Nike", rows[1][2])
	assert.Equal(t, "T-shirts Enfant", rows[2][4])
}
