package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidSpecification marks malformed construction arguments: wrong arity,
	// wrong element types, length mismatches or unusable column domains.
	ErrInvalidSpecification = stderrors.New("invalid specification")

	// ErrMissingSource marks a load from a path that does not exist.
	ErrMissingSource = stderrors.New("missing source")

	// ErrUnsupportedFormat marks a load from a file whose extension has no reader.
	ErrUnsupportedFormat = stderrors.New("unsupported format")

	// ErrEmptySplit marks a split that would produce a train set with zero rows.
	ErrEmptySplit = stderrors.New("empty split")

	// ErrInvalidFraction marks a split fraction that is not positive or exceeds the table.
	ErrInvalidFraction = stderrors.New("invalid split fraction")

	// ErrNotSplit marks an access to train/test views before a split was requested.
	ErrNotSplit = stderrors.New("dataset has not been split")
)

// SpecError describes why one entry of a column specification was rejected
type SpecError struct {
	Column string      // column name (empty if not yet known)
	Index  int         // zero-based column position (-1 if not column-level)
	Field  string      // "name", "domain", "dependency", "weights", "records", "params", ...
	Value  interface{} // offending value (may be nil)
	Reason string      // human-readable explanation
}

func (e *SpecError) Error() string {
	var parts []string

	if e.Index >= 0 {
		parts = append(parts, fmt.Sprintf("invalid specification for column %d (%s)", e.Index, e.Column))
	} else {
		parts = append(parts, "invalid specification")
	}

	if e.Field != "" {
		parts = append(parts, fmt.Sprintf("field=%s", e.Field))
	}

	if e.Value != nil {
		parts = append(parts, fmt.Sprintf("value=%v", e.Value))
	}

	if e.Reason != "" {
		parts = append(parts, e.Reason)
	}

	return strings.Join(parts, " - ")
}

// Unwrap lets errors.Is(err, ErrInvalidSpecification) match any SpecError
func (e *SpecError) Unwrap() error {
	return ErrInvalidSpecification
}

// NewColumnError builds a SpecError for one column
func NewColumnError(index int, column, field string, value interface{}, reason string) *SpecError {
	return &SpecError{
		Column: column,
		Index:  index,
		Field:  field,
		Value:  value,
		Reason: reason,
	}
}

// NewParamsError builds a SpecError for the construction arguments as a whole
func NewParamsError(field string, value interface{}, reason string) *SpecError {
	return &SpecError{
		Index:  -1,
		Field:  field,
		Value:  value,
		Reason: reason,
	}
}
