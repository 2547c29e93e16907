package catalog

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// SheetName is the worksheet used for catalog export and import.
const SheetName = "catalog"

var xlsxHeader = []interface{}{"domain", "category", "name", "price"}

// WriteXLSX writes the catalog as one worksheet, one row per item, in section
// order so that a round trip keeps item order.
func WriteXLSX(w io.Writer, c Catalog) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(f.GetActiveSheetIndex()), SheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	if err := f.SetSheetRow(SheetName, "A1", &xlsxHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	row := 2
	for _, sec := range Sections {
		for _, it := range c.Items(sec.Category) {
			cell, err := excelize.CoordinatesToCellName(1, row)
			if err != nil {
				return fmt.Errorf("cell name for row %d: %w", row, err)
			}
			values := []interface{}{string(sec.Domain), string(sec.Category), it.Name, it.Price}
			if err := f.SetSheetRow(SheetName, cell, &values); err != nil {
				return fmt.Errorf("write row %d: %w", row, err)
			}
			row++
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

// ReadXLSX parses a workbook written by WriteXLSX. The active sheet is read;
// blank rows are skipped and any row naming an unknown pair or carrying a
// non-numeric price fails the whole import.
func ReadXLSX(r io.Reader) (Catalog, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return Catalog{}, fmt.Errorf("open workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows(f.GetSheetName(f.GetActiveSheetIndex()))
	if err != nil {
		return Catalog{}, fmt.Errorf("read rows: %w", err)
	}
	if len(rows) == 0 {
		return Catalog{}, fmt.Errorf("workbook has no header row")
	}

	c := Catalog{}.Clone()
	for i, row := range rows[1:] {
		line := i + 2
		if isBlankRow(row) {
			continue
		}
		if len(row) < 4 {
			return Catalog{}, fmt.Errorf("row %d: expected 4 columns, got %d", line, len(row))
		}

		d := Domain(strings.TrimSpace(row[0]))
		cat := Category(strings.TrimSpace(row[1]))
		items, ok := c.list(d, cat)
		if !ok {
			return Catalog{}, fmt.Errorf("row %d: %s: %w", line, Section{d, cat}, ErrUnknownCategory)
		}

		price, err := strconv.ParseFloat(strings.TrimSpace(row[3]), 64)
		if err != nil {
			return Catalog{}, fmt.Errorf("row %d: price %q is not a number", line, row[3])
		}

		*items = append(*items, MaterialItem{Name: row[2], Price: price})
	}

	return c, nil
}

func isBlankRow(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
