package synth

import (
	"fmt"
	"reflect"

	"github.com/leengari/tabsynth/internal/domain/errors"
)

// FromParams turns the loose parallel sequences (column names, case sets,
// dependencies, weights) into column specs. Entry i of every sequence
// describes column i. dependance and probability may be nil, in which case
// every column is independent.
//
// A case set is classified by its dynamic type: any integer kind is an
// integer bound, any float kind a float bound, and a slice or array a
// categorical value set.
func FromParams(columns []string, caseSet []interface{}, dependance []int, probability [][]float64) ([]ColumnSpec, error) {
	if len(caseSet) != len(columns) {
		return nil, errors.NewParamsError("caseSet", len(caseSet),
			fmt.Sprintf("expected %d case sets, one per column", len(columns)))
	}
	if dependance != nil && len(dependance) != len(columns) {
		return nil, errors.NewParamsError("dependance", len(dependance),
			fmt.Sprintf("expected %d dependency indexes, one per column", len(columns)))
	}
	if probability != nil && len(probability) != len(columns) {
		return nil, errors.NewParamsError("probability", len(probability),
			fmt.Sprintf("expected %d weight entries, one per column", len(columns)))
	}

	specs := make([]ColumnSpec, len(columns))
	for i, name := range columns {
		domain, err := DomainOf(caseSet[i])
		if err != nil {
			return nil, errors.NewColumnError(i, name, "domain", caseSet[i], err.Error())
		}

		spec := Column(name, domain)
		if dependance != nil {
			spec.DependencyIndex = dependance[i]
		}
		if probability != nil && probability[i] != nil {
			spec.Weights = append([]float64(nil), probability[i]...)
		}
		specs[i] = spec
	}

	if err := Validate(specs); err != nil {
		return nil, err
	}
	return specs, nil
}

// DomainOf classifies a single case-set entry
func DomainOf(v interface{}) (Domain, error) {
	if v == nil {
		return Domain{}, fmt.Errorf("case set is nil")
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return IntBound(rv.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return IntBound(int64(rv.Uint())), nil
	case reflect.Float32, reflect.Float64:
		return FloatBound(rv.Float()), nil
	case reflect.Slice, reflect.Array:
		values := make([]interface{}, rv.Len())
		for i := range values {
			values[i] = rv.Index(i).Interface()
		}
		return Values(values...), nil
	}

	return Domain{}, fmt.Errorf("unsupported case set type %T", v)
}

// Ints coerces a slice of any integer kind (or []interface{} of integers) to []int
func Ints(v interface{}) ([]int, error) {
	if v == nil {
		return nil, nil
	}
	if ints, ok := v.([]int); ok {
		return ints, nil
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, fmt.Errorf("expected a sequence of integers, got %T", v)
	}

	out := make([]int, rv.Len())
	for i := range out {
		el := reflect.ValueOf(rv.Index(i).Interface())
		switch el.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			out[i] = int(el.Int())
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			out[i] = int(el.Uint())
		default:
			return nil, fmt.Errorf("element %d: expected an integer, got %T", i, rv.Index(i).Interface())
		}
	}
	return out, nil
}

// Weights coerces a per-column weight sequence. Each entry may be nil or a
// sequence of numbers of any kind.
func Weights(v interface{}) ([][]float64, error) {
	if v == nil {
		return nil, nil
	}
	if w, ok := v.([][]float64); ok {
		return w, nil
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, fmt.Errorf("expected a sequence of weight lists, got %T", v)
	}

	out := make([][]float64, rv.Len())
	for i := range out {
		entry := rv.Index(i).Interface()
		if entry == nil {
			continue
		}
		ev := reflect.ValueOf(entry)
		if ev.Kind() != reflect.Slice && ev.Kind() != reflect.Array {
			return nil, fmt.Errorf("entry %d: expected a sequence of numbers, got %T", i, entry)
		}
		if ev.Kind() == reflect.Slice && ev.IsNil() {
			continue
		}
		weights := make([]float64, ev.Len())
		for j := range weights {
			f, ok := toFloat(ev.Index(j).Interface())
			if !ok {
				return nil, fmt.Errorf("entry %d, weight %d: expected a number, got %T", i, j, ev.Index(j).Interface())
			}
			weights[j] = f
		}
		out[i] = weights
	}
	return out, nil
}

func toFloat(v interface{}) (float64, bool) {
	if v == nil {
		return 0, false
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	}
	return 0, false
}
