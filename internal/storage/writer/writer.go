package writer

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/leengari/tabsynth/internal/domain/data"
	"github.com/leengari/tabsynth/internal/domain/schema"
)

// Save persists the table at path. A .json extension writes a JSON array of
// objects; anything else writes a comma-delimited file with a header row.
func Save(t *schema.Table, path string) error {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return SaveJSON(t, path)
	}
	return SaveCSV(t, path)
}

// SaveCSV writes the header row followed by one line per row, columns in table order
func SaveCSV(t *schema.Table, path string) error {
	if t == nil || path == "" {
		return fmt.Errorf("cannot save table: nil or missing path")
	}

	t.RLock()
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(t.Columns); err != nil {
		t.RUnlock()
		return fmt.Errorf("failed to write header for %s: %w", t.Name, err)
	}
	record := make([]string, len(t.Columns))
	for i, row := range t.Rows {
		for j, col := range t.Columns {
			record[j] = FormatValue(row.Data[col])
		}
		if err := w.Write(record); err != nil {
			t.RUnlock()
			return fmt.Errorf("failed to write row %d for %s: %w", i, t.Name, err)
		}
	}
	w.Flush()
	t.RUnlock()

	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to encode CSV for %s: %w", t.Name, err)
	}

	if err := writeAtomic(path, buf.Bytes()); err != nil {
		return fmt.Errorf("failed to save table %s: %w", t.Name, err)
	}

	return nil
}

// SaveJSON writes the rows as an array of objects whose keys follow the column order
func SaveJSON(t *schema.Table, path string) error {
	if t == nil || path == "" {
		return fmt.Errorf("cannot save table: nil or missing path")
	}

	t.RLock()
	var buf bytes.Buffer
	buf.WriteString("[")
	for i, row := range t.Rows {
		if i > 0 {
			buf.WriteString(",")
		}
		buf.WriteString("\n  {")
		if err := writeObject(&buf, t.Columns, row); err != nil {
			t.RUnlock()
			return fmt.Errorf("failed to marshal row %d for %s: %w", i, t.Name, err)
		}
		buf.WriteString("}")
	}
	buf.WriteString("\n]\n")
	t.RUnlock()

	if err := writeAtomic(path, buf.Bytes()); err != nil {
		return fmt.Errorf("failed to save table %s: %w", t.Name, err)
	}

	return nil
}

func writeObject(buf *bytes.Buffer, columns []string, row data.Row) error {
	for j, col := range columns {
		if j > 0 {
			buf.WriteString(", ")
		}
		key, err := json.Marshal(col)
		if err != nil {
			return err
		}
		v := row.Data[col]
		if data.IsMissing(v) {
			v = nil
		}
		val, err := json.Marshal(v)
		if err != nil {
			return err
		}
		buf.Write(key)
		buf.WriteString(": ")
		buf.Write(val)
	}
	return nil
}

// FormatValue renders one cell as text; missing values become empty cells
func FormatValue(v interface{}) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		if math.IsNaN(x) {
			return ""
		}
		return strconv.FormatFloat(x, 'f', -1, 64)
	case float32:
		if math.IsNaN(float64(x)) {
			return ""
		}
		return strconv.FormatFloat(float64(x), 'f', -1, 32)
	case int64:
		return strconv.FormatInt(x, 10)
	case int:
		return strconv.Itoa(x)
	case bool:
		return strconv.FormatBool(x)
	}
	return fmt.Sprint(v)
}

// writeAtomic writes to a temp file next to path, then renames it into place
func writeAtomic(path string, content []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, content, 0644); err != nil {
		return fmt.Errorf("failed to write temp file %s: %w", tmpPath, err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to rename temp → %s: %w", path, err)
	}
	return nil
}
