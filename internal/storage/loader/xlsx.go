package loader

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/leengari/tabsynth/internal/domain/schema"
)

// SheetName is the worksheet read from .xlsx workbooks
const SheetName = "Sheet1"

// ReadXLSX reads the Sheet1 worksheet of a workbook. Its first row is the header.
func ReadXLSX(path, name string) (*schema.Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rows, err := f.GetRows(SheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", SheetName, err)
	}
	if len(rows) == 0 {
		return schema.NewTable(name, nil), nil
	}

	return buildTable(name, rows[0], rows[1:]), nil
}
