// Package loader reads existing tabular files into tables.
package loader

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/leengari/tabsynth/internal/domain/data"
	"github.com/leengari/tabsynth/internal/domain/errors"
	"github.com/leengari/tabsynth/internal/domain/schema"
)

// ReadFunc reads the file at path into a table named name
type ReadFunc func(path, name string) (*schema.Table, error)

// readers maps a lower-cased file extension (dot included) to its reader
var readers = map[string]ReadFunc{
	".csv":  ReadCSV,
	".htm":  ReadHTML,
	".html": ReadHTML,
	".json": ReadJSON,
	".xlsx": ReadXLSX,
}

// Supported lists the extensions Load understands, sorted
func Supported() []string {
	exts := make([]string, 0, len(readers))
	for ext := range readers {
		exts = append(exts, ext)
	}
	slices.Sort(exts)
	return exts
}

// Load reads the table stored at path, choosing the reader by file extension.
// The table is named after the file's base name without extension.
func Load(path string, logger *slog.Logger) (*schema.Table, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s does not exist", errors.ErrMissingSource, path)
		}
		return nil, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", errors.ErrMissingSource, path)
	}

	ext := strings.ToLower(filepath.Ext(path))
	read, ok := readers[ext]
	if !ok {
		return nil, fmt.Errorf("%w: %q (supported: %s)", errors.ErrUnsupportedFormat, ext, strings.Join(Supported(), ", "))
	}

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	table, err := read(path, name)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	logger.Info("table loaded",
		slog.String("table", table.Name),
		slog.String("path", path),
		slog.String("format", strings.TrimPrefix(ext, ".")),
		slog.Int("rows", len(table.Rows)),
		slog.Int("columns", len(table.Columns)),
	)

	return table, nil
}

// InferValue converts a text cell: empty → nil, integer text → int64,
// float text → float64, anything else stays a string
func InferValue(s string) interface{} {
	if s == "" {
		return nil
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return s
}

// headerNames fills blank header cells and disambiguates repeats the way
// spreadsheet exports usually do ("x", "x.1", "x.2")
func headerNames(raw []string) []string {
	names := make([]string, len(raw))
	used := make(map[string]bool, len(raw))
	for i, h := range raw {
		h = strings.TrimSpace(h)
		if h == "" {
			h = fmt.Sprintf("Unnamed: %d", i)
		}
		name := h
		for n := 1; used[name]; n++ {
			name = fmt.Sprintf("%s.%d", h, n)
		}
		used[name] = true
		names[i] = name
	}
	return names
}

// buildTable turns a header and text records into a table. Short records are
// padded with missing values; cells beyond the header are dropped.
func buildTable(name string, header []string, records [][]string) *schema.Table {
	columns := headerNames(header)
	table := schema.NewTable(name, columns)
	table.Rows = make([]data.Row, 0, len(records))

	for _, rec := range records {
		row := data.NewRow(make(map[string]interface{}, len(columns)))
		for i, col := range columns {
			var cell string
			if i < len(rec) {
				cell = rec[i]
			}
			row.Set(col, InferValue(cell))
		}
		table.Rows = append(table.Rows, row)
	}
	return table
}
