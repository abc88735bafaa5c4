// Package importer reads product rows out of a spreadsheet for bulk
// catalog ingestion.
package importer

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"gestorpro/internal/models"
)

// Row defaults for optional columns.
const (
	DefaultUnit     = "UNIT"
	DefaultMinStock = 5
	DefaultCategory = "General"
)

// ProductRow is one spreadsheet line, normalized. Name and Price are
// mandatory; everything else has a documented default.
type ProductRow struct {
	Name        string
	Description string
	Price       float64
	Cost        float64
	Stock       float64
	MinStock    float64
	Category    string
	Unit        string
	SupplierID  string
}

// recognized header names (lowercased) -> canonical column.
var headerAliases = map[string]string{
	"name":        "name",
	"product":     "name",
	"description": "description",
	"price":       "price",
	"cost":        "cost",
	"stock":       "stock",
	"quantity":    "stock",
	"minstock":    "minstock",
	"min_stock":   "minstock",
	"category":    "category",
	"unit":        "unit",
	"supplier":    "supplier",
	"supplier_id": "supplier",
}

// ReadProducts parses the first sheet of an xlsx workbook. The first row is
// the header; column order is free. A row missing its name or price fails
// the whole import with a ValidationError naming the row, so a half-broken
// spreadsheet never half-imports.
func ReadProducts(r io.Reader) ([]ProductRow, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("importer: open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, &models.ValidationError{Field: "file", Reason: "workbook has no sheets"}
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("importer: read sheet %q: %w", sheets[0], err)
	}
	if len(rows) < 2 {
		return nil, &models.ValidationError{Field: "file", Reason: "no data rows below the header"}
	}

	// Map header cells to canonical columns.
	cols := map[string]int{}
	for i, cell := range rows[0] {
		if canon, ok := headerAliases[strings.ToLower(strings.TrimSpace(cell))]; ok {
			cols[canon] = i
		}
	}
	if _, ok := cols["name"]; !ok {
		return nil, &models.ValidationError{Field: "file", Reason: "missing required column: name"}
	}
	if _, ok := cols["price"]; !ok {
		return nil, &models.ValidationError{Field: "file", Reason: "missing required column: price"}
	}

	var out []ProductRow
	for n, cells := range rows[1:] {
		rowNum := n + 2 // 1-based, after the header

		get := func(col string) string {
			i, ok := cols[col]
			if !ok || i >= len(cells) {
				return ""
			}
			return strings.TrimSpace(cells[i])
		}

		name := get("name")
		if name == "" {
			return nil, &models.ValidationError{Field: "name", Reason: fmt.Sprintf("row %d: name is required", rowNum)}
		}
		price, err := parseNumber(get("price"))
		if err != nil {
			return nil, &models.ValidationError{Field: "price", Reason: fmt.Sprintf("row %d: price is required and must be a number", rowNum)}
		}

		row := ProductRow{
			Name:        name,
			Description: get("description"),
			Price:       price,
			Category:    DefaultCategory,
			Unit:        DefaultUnit,
			MinStock:    DefaultMinStock,
			SupplierID:  get("supplier"),
		}
		if v := get("category"); v != "" {
			row.Category = v
		}
		if v := get("unit"); v != "" {
			row.Unit = strings.ToUpper(v)
		}
		if v := get("cost"); v != "" {
			if row.Cost, err = parseNumber(v); err != nil {
				return nil, &models.ValidationError{Field: "cost", Reason: fmt.Sprintf("row %d: cost must be a number", rowNum)}
			}
		}
		if v := get("stock"); v != "" {
			if row.Stock, err = parseNumber(v); err != nil {
				return nil, &models.ValidationError{Field: "stock", Reason: fmt.Sprintf("row %d: stock must be a number", rowNum)}
			}
		}
		if v := get("minstock"); v != "" {
			if row.MinStock, err = parseNumber(v); err != nil {
				return nil, &models.ValidationError{Field: "minStock", Reason: fmt.Sprintf("row %d: minStock must be a number", rowNum)}
			}
		}

		out = append(out, row)
	}

	return out, nil
}

func parseNumber(s string) (float64, error) {
	if s == "" {
		return 0, strconv.ErrSyntax
	}
	// Tolerate spreadsheets exported with comma decimals.
	s = strings.ReplaceAll(s, ",", ".")
	return strconv.ParseFloat(s, 64)
}
