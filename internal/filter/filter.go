package filter

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/KaramelBytes/moviescope-cli/internal/dataset"
)

// Range is an inclusive [Min, Max] constraint on one attribute.
// Min > Max is accepted and matches nothing.
type Range struct {
	Min float64
	Max float64
}

// Contains reports whether v lies within the range, both ends inclusive.
func (r Range) Contains(v float64) bool { return r.Min <= v && v <= r.Max }

func (r Range) String() string { return fmt.Sprintf("[%g, %g]", r.Min, r.Max) }

// Ranges maps attributes to their active range. Attributes without an entry are unconstrained.
type Ranges map[dataset.Attribute]Range

// Clone returns an independent copy.
func (rs Ranges) Clone() Ranges {
	out := make(Ranges, len(rs))
	for k, v := range rs {
		out[k] = v
	}
	return out
}

// Defaults returns the observed [min, max] of every attribute in ds.
func Defaults(ds *dataset.Dataset) Ranges {
	out := make(Ranges, len(dataset.Attributes()))
	for _, a := range dataset.Attributes() {
		lo, hi := ds.Bounds(a)
		out[a] = Range{Min: lo, Max: hi}
	}
	return out
}

// View is a non-owning subset of a dataset, kept as row indices in dataset order.
type View struct {
	Dataset *dataset.Dataset
	Rows    []int
}

// Count returns the number of selected records.
func (v View) Count() int { return len(v.Rows) }

// Column returns the zero-filled values of attr for the selected rows.
func (v View) Column(attr dataset.Attribute) []float64 {
	out := make([]float64, len(v.Rows))
	for i, r := range v.Rows {
		out[i] = v.Dataset.Movies[r].Value(attr)
	}
	return out
}

// Apply selects the records of ds satisfying every range in rs.
// Missing values compare as zero.
func Apply(ds *dataset.Dataset, rs Ranges) View {
	view := View{Dataset: ds, Rows: []int{}}
	if ds == nil {
		return view
	}
	attrs := make([]dataset.Attribute, 0, len(rs))
	for a := range rs {
		attrs = append(attrs, a)
	}
	sort.Slice(attrs, func(i, j int) bool { return attrs[i] < attrs[j] })

	for i, m := range ds.Movies {
		keep := true
		for _, a := range attrs {
			if !rs[a].Contains(m.Value(a)) {
				keep = false
				break
			}
		}
		if keep {
			view.Rows = append(view.Rows, i)
		}
	}
	return view
}

// ParseRange parses "attr=min:max". Either bound may be left empty, in which
// case it is taken from base (typically the dataset defaults).
func ParseRange(spec string, base Ranges) (dataset.Attribute, Range, error) {
	name, bounds, ok := strings.Cut(spec, "=")
	if !ok {
		return "", Range{}, fmt.Errorf("invalid range %q (want attr=min:max)", spec)
	}
	attr, err := dataset.ParseAttribute(name)
	if err != nil {
		return "", Range{}, err
	}
	lo, hi, ok := strings.Cut(bounds, ":")
	if !ok {
		return "", Range{}, fmt.Errorf("invalid range %q (want attr=min:max)", spec)
	}
	r := base[attr]
	if s := strings.TrimSpace(lo); s != "" {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return "", Range{}, fmt.Errorf("invalid min for %s: %q", attr, s)
		}
		r.Min = f
	}
	if s := strings.TrimSpace(hi); s != "" {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return "", Range{}, fmt.Errorf("invalid max for %s: %q", attr, s)
		}
		r.Max = f
	}
	return attr, r, nil
}

// WithSpecs applies each "attr=min:max" spec on top of a copy of base.
func WithSpecs(base Ranges, specs []string) (Ranges, error) {
	out := base.Clone()
	for _, s := range specs {
		attr, r, err := ParseRange(s, out)
		if err != nil {
			return nil, err
		}
		out[attr] = r
	}
	return out, nil
}
