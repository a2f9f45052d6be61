package dataset

import (
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/floats"
)

// Attribute names a numeric movie column used for filtering or modeling.
type Attribute string

const (
	Budget      Attribute = "budget"
	Revenue     Attribute = "revenue"
	Popularity  Attribute = "popularity"
	VoteCount   Attribute = "vote_count"
	VoteAverage Attribute = "vote_average"
)

// Attributes lists the numeric attributes in dashboard order.
func Attributes() []Attribute {
	return []Attribute{Budget, Revenue, Popularity, VoteCount, VoteAverage}
}

// ParseAttribute resolves a column name (case-insensitive) to an Attribute.
func ParseAttribute(s string) (Attribute, error) {
	name := Attribute(strings.ToLower(strings.TrimSpace(s)))
	for _, a := range Attributes() {
		if a == name {
			return a, nil
		}
	}
	return "", fmt.Errorf("unknown attribute: %q", s)
}

// Movie is one row of the dataset. Missing numeric cells are stored as NaN.
type Movie struct {
	ID          string
	Title       string
	Budget      float64
	Revenue     float64
	Popularity  float64
	VoteCount   float64
	VoteAverage float64
}

// Raw returns the stored value for attr, NaN when the cell was missing.
func (m Movie) Raw(attr Attribute) float64 {
	switch attr {
	case Budget:
		return m.Budget
	case Revenue:
		return m.Revenue
	case Popularity:
		return m.Popularity
	case VoteCount:
		return m.VoteCount
	case VoteAverage:
		return m.VoteAverage
	}
	return math.NaN()
}

// Value returns the value for attr with missing cells treated as zero.
func (m Movie) Value(attr Attribute) float64 {
	v := m.Raw(attr)
	if math.IsNaN(v) {
		return 0
	}
	return v
}

func (m *Movie) set(attr Attribute, v float64) {
	switch attr {
	case Budget:
		m.Budget = v
	case Revenue:
		m.Revenue = v
	case Popularity:
		m.Popularity = v
	case VoteCount:
		m.VoteCount = v
	case VoteAverage:
		m.VoteAverage = v
	}
}

// Dataset is the read-only table loaded once per session.
type Dataset struct {
	Path    string
	Columns []string
	Movies  []Movie
	// Missing counts empty cells per attribute.
	Missing map[Attribute]int
}

// Len returns the number of records.
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Movies)
}

// Column returns the zero-filled values of attr in row order.
func (d *Dataset) Column(attr Attribute) []float64 {
	out := make([]float64, len(d.Movies))
	for i, m := range d.Movies {
		out[i] = m.Value(attr)
	}
	return out
}

// Bounds returns the observed minimum and maximum of attr after zero-filling.
// An empty dataset yields (0, 0).
func (d *Dataset) Bounds(attr Attribute) (lo, hi float64) {
	if d.Len() == 0 {
		return 0, 0
	}
	col := d.Column(attr)
	return floats.Min(col), floats.Max(col)
}
