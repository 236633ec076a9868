// Package export gera planilhas do catálogo.
package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"gocatalog/pkg/client"
)

// SheetName é a aba gerada.
const SheetName = "Produtos"

var header = []interface{}{"ID", "Nome", "Marca", "Preço", "Categoria", "Imagem"}

// WriteProducts escreve os produtos em um workbook XLSX.
func WriteProducts(w io.Writer, products []client.Product) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return err
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return err
	}

	for i, p := range products {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []interface{}{p.ID, p.Name, p.BrandName, p.Price, p.Category.Name, p.ImageURL}
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return fmt.Errorf("falha na linha %d: %w", i+2, err)
		}
	}

	_, err := f.WriteTo(w)
	return err
}
