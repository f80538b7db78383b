package synth

import (
	"fmt"
	"math"
	"math/rand"
	"slices"
	"sort"

	"github.com/leengari/tabsynth/internal/domain/errors"
	"github.com/leengari/tabsynth/internal/domain/schema"
)

// Independent marks a column whose values do not depend on another column
const Independent = -1

// DomainKind identifies which family of values a column draws from
type DomainKind string

const (
	DomainInteger     DomainKind = "integer"
	DomainFloat       DomainKind = "float"
	DomainCategorical DomainKind = "categorical"
)

// Domain is the value space of one column: an integer bound, a float bound,
// or a finite set of categorical values
type Domain struct {
	kind   DomainKind
	bound  float64
	values []interface{}
}

// IntBound draws integer-valued floats in [0, n]
func IntBound(n int64) Domain {
	return Domain{kind: DomainInteger, bound: float64(n)}
}

// FloatBound draws floats in [0, f] rounded to 2 decimals
func FloatBound(f float64) Domain {
	return Domain{kind: DomainFloat, bound: f}
}

// Values draws one of the given categorical values
func Values(values ...interface{}) Domain {
	return Domain{kind: DomainCategorical, values: slices.Clone(values)}
}

// Kind returns the domain family; the zero Domain has an empty kind
func (d Domain) Kind() DomainKind {
	return d.kind
}

// Bound returns the numeric bound of an integer or float domain
func (d Domain) Bound() float64 {
	return d.bound
}

// Members returns the categorical values in declaration order
func (d Domain) Members() []interface{} {
	return slices.Clone(d.values)
}

func (d Domain) String() string {
	switch d.kind {
	case DomainInteger:
		return fmt.Sprintf("int[0,%v]", d.bound)
	case DomainFloat:
		return fmt.Sprintf("float[0,%v]", d.bound)
	case DomainCategorical:
		return fmt.Sprintf("values%v", d.values)
	}
	return "<none>"
}

// ColumnSpec declares how to synthesize one column.
//
// DependencyIndex is Independent (-1) or the position of another column. A
// dependency only switches a categorical column to weighted picking with
// Weights; the referenced column's values are never read. Numeric domains
// ignore DependencyIndex and Weights.
type ColumnSpec struct {
	Name            string
	Domain          Domain
	DependencyIndex int
	Weights         []float64
}

// Column declares an independent column
func Column(name string, domain Domain) ColumnSpec {
	return ColumnSpec{Name: name, Domain: domain, DependencyIndex: Independent}
}

// DependentColumn declares a categorical column picked with weights, marked as
// depending on the column at position dependsOn
func DependentColumn(name string, domain Domain, dependsOn int, weights ...float64) ColumnSpec {
	return ColumnSpec{
		Name:            name,
		Domain:          domain,
		DependencyIndex: dependsOn,
		Weights:         slices.Clone(weights),
	}
}

// Rule produces one cell value per call
type Rule interface {
	Generate(rng *rand.Rand) interface{}
}

type integerRule struct {
	bound float64
}

func (r integerRule) Generate(rng *rand.Rand) interface{} {
	return math.RoundToEven(rng.Float64() * r.bound)
}

type floatRule struct {
	bound float64
}

func (r floatRule) Generate(rng *rand.Rand) interface{} {
	return math.Round(rng.Float64()*r.bound*100) / 100
}

type uniformRule struct {
	values []string
}

func (r uniformRule) Generate(rng *rand.Rand) interface{} {
	return r.values[rng.Intn(len(r.values))]
}

type weightedRule struct {
	values     []string
	cumulative []float64
}

func (r weightedRule) Generate(rng *rand.Rand) interface{} {
	total := r.cumulative[len(r.cumulative)-1]
	x := rng.Float64() * total
	i := sort.Search(len(r.cumulative), func(i int) bool { return r.cumulative[i] > x })
	if i == len(r.cumulative) {
		i--
	}
	return r.values[i]
}

// compile validates the spec at position index of a width-column table and
// returns the rule that generates its values
func (c ColumnSpec) compile(index, width int) (Rule, error) {
	if c.Name == "" {
		return nil, errors.NewColumnError(index, c.Name, "name", nil, "column name is empty")
	}
	if c.Name == schema.RecordColumn {
		return nil, errors.NewColumnError(index, c.Name, "name", c.Name, "name is reserved for the record index")
	}
	if c.DependencyIndex != Independent {
		if c.DependencyIndex < 0 || c.DependencyIndex >= width {
			return nil, errors.NewColumnError(index, c.Name, "dependency", c.DependencyIndex, "dependency index out of range")
		}
		if c.DependencyIndex == index {
			return nil, errors.NewColumnError(index, c.Name, "dependency", c.DependencyIndex, "column cannot depend on itself")
		}
	}

	switch c.Domain.kind {
	case DomainInteger:
		if c.Domain.bound < 0 || math.IsNaN(c.Domain.bound) {
			return nil, errors.NewColumnError(index, c.Name, "domain", c.Domain.bound, "integer bound must be >= 0")
		}
		return integerRule{bound: c.Domain.bound}, nil

	case DomainFloat:
		if c.Domain.bound < 0 || math.IsNaN(c.Domain.bound) || math.IsInf(c.Domain.bound, 0) {
			return nil, errors.NewColumnError(index, c.Name, "domain", c.Domain.bound, "float bound must be finite and >= 0")
		}
		return floatRule{bound: c.Domain.bound}, nil

	case DomainCategorical:
		if len(c.Domain.values) == 0 {
			return nil, errors.NewColumnError(index, c.Name, "domain", nil, "categorical value set is empty")
		}
		values := make([]string, len(c.Domain.values))
		for i, v := range c.Domain.values {
			values[i] = fmt.Sprint(v)
		}
		if c.DependencyIndex == Independent {
			return uniformRule{values: values}, nil
		}
		return newWeightedRule(index, c, values)
	}

	return nil, errors.NewColumnError(index, c.Name, "domain", nil, "column has no domain")
}

func newWeightedRule(index int, c ColumnSpec, values []string) (Rule, error) {
	weights := c.Weights
	if weights == nil {
		weights = make([]float64, len(values))
		for i := range weights {
			weights[i] = 1
		}
	}
	if len(weights) != len(values) {
		return nil, errors.NewColumnError(index, c.Name, "weights", len(weights),
			fmt.Sprintf("expected %d weights, one per value", len(values)))
	}

	cumulative := make([]float64, len(weights))
	var total float64
	for i, w := range weights {
		if w < 0 || math.IsNaN(w) || math.IsInf(w, 0) {
			return nil, errors.NewColumnError(index, c.Name, "weights", w, "weights must be finite and >= 0")
		}
		total += w
		cumulative[i] = total
	}
	if total <= 0 {
		return nil, errors.NewColumnError(index, c.Name, "weights", weights, "weights must not all be zero")
	}

	return weightedRule{values: values, cumulative: cumulative}, nil
}
