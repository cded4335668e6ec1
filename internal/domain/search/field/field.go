package field

import (
	"fmt"
	"strings"
)

// Name is a searchable prompt field.
type Name string

// Searchable fields in canonical order.
const (
	Title       Name = "title"
	Description Name = "description"
	Body        Name = "body"
	Category    Name = "category"
	Tags        Name = "tags"
)

// All lists the searchable fields in canonical order.
var All = []Name{Title, Description, Body, Category, Tags}

// IsValid checks whether n is a known field.
func (n Name) IsValid() bool {
	switch n {
	case Title, Description, Body, Category, Tags:
		return true
	}
	return false
}

// IsArray reports whether the field holds a list of strings.
func (n Name) IsArray() bool { return n == Tags }

// Weight pairs a field with its relative contribution.
type Weight struct {
	Field  Name
	Weight float64
}

// Weights is an ordered field weight table. The same table is applied to
// every candidate of a request.
type Weights []Weight

// DefaultWeights returns the default table: title 0.4, description 0.2,
// body 0.2, category 0.1, tags 0.1.
func DefaultWeights() Weights {
	return Weights{
		{Field: Title, Weight: 0.4},
		{Field: Description, Weight: 0.2},
		{Field: Body, Weight: 0.2},
		{Field: Category, Weight: 0.1},
		{Field: Tags, Weight: 0.1},
	}
}

// FromMap builds a table in canonical field order. Missing fields are omitted.
func FromMap(m map[string]float64) (Weights, error) {
	for k := range m {
		if !Name(k).IsValid() {
			return nil, fmt.Errorf("unknown field %q", k)
		}
	}
	w := make(Weights, 0, len(m))
	for _, n := range All {
		if v, ok := m[string(n)]; ok {
			w = append(w, Weight{Field: n, Weight: v})
		}
	}
	return w, w.Validate()
}

// Validate checks that every weight lies in (0,1] and fields are unique.
func (w Weights) Validate() error {
	if len(w) == 0 {
		return fmt.Errorf("at least one field weight is required")
	}
	seen := make(map[Name]bool, len(w))
	for _, fw := range w {
		if !fw.Field.IsValid() {
			return fmt.Errorf("unknown field %q", fw.Field)
		}
		if seen[fw.Field] {
			return fmt.Errorf("duplicate field %q", fw.Field)
		}
		seen[fw.Field] = true
		if fw.Weight <= 0 || fw.Weight > 1 {
			return fmt.Errorf("weight for %q must be in (0,1], got %g", fw.Field, fw.Weight)
		}
	}
	return nil
}

// Total returns the sum of all weights.
func (w Weights) Total() float64 {
	var sum float64
	for _, fw := range w {
		sum += fw.Weight
	}
	return sum
}

// Set is a set of matched fields kept in weight-table order.
type Set []Name

// Contains reports whether n is in the set.
func (s Set) Contains(n Name) bool {
	for _, f := range s {
		if f == n {
			return true
		}
	}
	return false
}

// Strings converts the set to plain strings.
func (s Set) Strings() []string {
	out := make([]string, len(s))
	for i, f := range s {
		out[i] = string(f)
	}
	return out
}

func (s Set) String() string { return strings.Join(s.Strings(), ",") }
