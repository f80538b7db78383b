package data

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
)

// Row represents a single table record
// Key = column name, Value = cell value (nil marks a missing value)
type Row struct {
	Data map[string]interface{}
}

// NewRow creates a new Row with the given data
func NewRow(data map[string]interface{}) Row {
	if data == nil {
		data = make(map[string]interface{})
	}
	return Row{Data: data}
}

// Get returns the value stored under column and whether the column is present
func (r Row) Get(column string) (interface{}, bool) {
	v, ok := r.Data[column]
	return v, ok
}

// Set stores value under column
func (r Row) Set(column string, value interface{}) {
	r.Data[column] = value
}

// Copy creates a shallow copy of the row map to prevent mutation
func (r Row) Copy() Row {
	copy := make(map[string]interface{}, len(r.Data))
	for k, v := range r.Data {
		copy[k] = v
	}
	return Row{Data: copy}
}

// IsMissing reports whether v counts as a missing cell
func IsMissing(v interface{}) bool {
	switch x := v.(type) {
	case nil:
		return true
	case float64:
		return math.IsNaN(x)
	case float32:
		return math.IsNaN(float64(x))
	}
	return false
}

// IsComplete reports whether every listed column holds a non-missing value
func (r Row) IsComplete(columns []string) bool {
	for _, col := range columns {
		v, ok := r.Data[col]
		if !ok || IsMissing(v) {
			return false
		}
	}
	return true
}

// Key builds a content key over the listed columns.
// Two rows with equal keys hold equal values (type included) in those columns.
func (r Row) Key(columns []string) string {
	var b strings.Builder
	for i, col := range columns {
		if i > 0 {
			b.WriteByte(0x1f)
		}
		v, ok := r.Data[col]
		if !ok {
			b.WriteString("<absent>")
			continue
		}
		fmt.Fprintf(&b, "%T:%v", v, v)
	}
	return b.String()
}

// UnmarshalJSON implements json.Unmarshaler interface
// This allows Row to be unmarshaled from JSON as a map
func (r *Row) UnmarshalJSON(data []byte) error {
	var m map[string]interface{}
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	r.Data = m
	return nil
}

// MarshalJSON implements json.Marshaler interface
// This allows Row to be marshaled to JSON as a map
func (r Row) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.Data)
}
