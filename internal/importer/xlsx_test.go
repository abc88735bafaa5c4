package importer

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"gestorpro/internal/models"
)

// workbook builds an in-memory xlsx with the given header and rows.
func workbook(t *testing.T, header []string, rows ...[]string) *bytes.Reader {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &header))
	for i, row := range rows {
		cell := fmt.Sprintf("A%d", i+2)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	return bytes.NewReader(buf.Bytes())
}

func TestReadProducts(t *testing.T) {
	r := workbook(t,
		[]string{"Name", "Price", "Cost", "Stock", "MinStock", "Category", "Unit", "Description"},
		[]string{"Beans", "3.50", "2.10", "12", "4", "Groceries", "kg", "1kg bag"},
		[]string{"Display Rack", "40", "", "", "", "", "", ""},
	)

	rows, err := ReadProducts(r)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, ProductRow{
		Name:        "Beans",
		Description: "1kg bag",
		Price:       3.5,
		Cost:        2.1,
		Stock:       12,
		MinStock:    4,
		Category:    "Groceries",
		Unit:        "KG",
	}, rows[0])

	// Optional columns left blank fall back to their defaults.
	assert.Equal(t, ProductRow{
		Name:     "Display Rack",
		Price:    40,
		Category: DefaultCategory,
		Unit:     DefaultUnit,
		MinStock: DefaultMinStock,
	}, rows[1])
}

func TestReadProductsHeaderAliases(t *testing.T) {
	r := workbook(t,
		[]string{"Product", "price", "QUANTITY", "supplier_id"},
		[]string{"Rice", "2.20", "100", "s2"},
	)

	rows, err := ReadProducts(r)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Rice", rows[0].Name)
	assert.Equal(t, 100.0, rows[0].Stock)
	assert.Equal(t, "s2", rows[0].SupplierID)
}

func TestReadProductsCommaDecimals(t *testing.T) {
	r := workbook(t,
		[]string{"name", "price"},
		[]string{"Cola", "1,50"},
	)

	rows, err := ReadProducts(r)
	require.NoError(t, err)
	assert.Equal(t, 1.5, rows[0].Price)
}

func TestReadProductsRejectsBrokenSheets(t *testing.T) {
	var vErr *models.ValidationError

	// Missing required columns.
	_, err := ReadProducts(workbook(t, []string{"price"}, []string{"5"}))
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Reason, "name")

	_, err = ReadProducts(workbook(t, []string{"name"}, []string{"Rice"}))
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Reason, "price")

	// Header only, no data rows.
	_, err = ReadProducts(workbook(t, []string{"name", "price"}))
	assert.ErrorAs(t, err, &vErr)

	// A single bad row fails the whole import and names the row.
	_, err = ReadProducts(workbook(t,
		[]string{"name", "price"},
		[]string{"Rice", "2.20"},
		[]string{"", "1.00"},
	))
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Reason, "row 3")

	_, err = ReadProducts(workbook(t,
		[]string{"name", "price", "stock"},
		[]string{"Rice", "2.20", "plenty"},
	))
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "stock", vErr.Field)

	// Not a workbook at all.
	_, err = ReadProducts(bytes.NewReader([]byte("definitely not xlsx")))
	assert.Error(t, err)
}
