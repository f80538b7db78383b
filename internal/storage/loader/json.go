package loader

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/leengari/tabsynth/internal/domain/data"
	"github.com/leengari/tabsynth/internal/domain/schema"
)

// ReadJSON reads a JSON array of objects, one object per row. Columns follow
// the order keys are first seen in.
func ReadJSON(path, name string) (*schema.Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return readJSON(file, name)
}

func readJSON(r io.Reader, name string) (*schema.Table, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	if err := expectDelim(dec, '['); err != nil {
		return nil, err
	}

	var columns []string
	known := make(map[string]bool)
	var rows []data.Row

	for dec.More() {
		if err := expectDelim(dec, '{'); err != nil {
			return nil, fmt.Errorf("row %d: %w", len(rows), err)
		}
		row := data.NewRow(nil)
		for dec.More() {
			tok, err := dec.Token()
			if err != nil {
				return nil, fmt.Errorf("row %d: %w", len(rows), err)
			}
			key, ok := tok.(string)
			if !ok {
				return nil, fmt.Errorf("row %d: expected object key, got %v", len(rows), tok)
			}
			var v interface{}
			if err := dec.Decode(&v); err != nil {
				return nil, fmt.Errorf("row %d, column %s: %w", len(rows), key, err)
			}
			if !known[key] {
				known[key] = true
				columns = append(columns, key)
			}
			row.Set(key, jsonValue(v))
		}
		if err := expectDelim(dec, '}'); err != nil {
			return nil, fmt.Errorf("row %d: %w", len(rows), err)
		}
		rows = append(rows, row)
	}
	if err := expectDelim(dec, ']'); err != nil {
		return nil, err
	}

	// Rows lacking a later-seen key hold it as missing
	for _, row := range rows {
		for _, col := range columns {
			if _, ok := row.Get(col); !ok {
				row.Set(col, nil)
			}
		}
	}

	table := schema.NewTable(name, columns)
	if rows != nil {
		table.Rows = rows
	}
	return table, nil
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("failed to read JSON: %w", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != want {
		return fmt.Errorf("expected %q, got %v", want, tok)
	}
	return nil
}

func jsonValue(v interface{}) interface{} {
	n, ok := v.(json.Number)
	if !ok {
		return v
	}
	if i, err := n.Int64(); err == nil {
		return i
	}
	if f, err := n.Float64(); err == nil {
		return f
	}
	return n.String()
}
