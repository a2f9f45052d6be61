package analysis

import (
	"fmt"
	"math"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/KaramelBytes/moviescope-cli/internal/dataset"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Options controls the dataset summary.
type Options struct {
	// SampleRows determines how many head rows to include in the report.
	SampleRows int
	// Outlier detection via robust Z-score (MAD). Counts |z| > OutlierThreshold.
	Outliers         bool
	OutlierThreshold float64
}

// DefaultOptions returns reasonable defaults for the dataset preview.
func DefaultOptions() Options {
	return Options{SampleRows: 5, Outliers: true, OutlierThreshold: 3.5}
}

// Report summarizes the numeric attributes of a dataset.
type Report struct {
	Name     string
	Rows     int
	Columns  int
	Cols     []ColumnSummary
	Samples  []dataset.Movie
	Warnings []string
}

// ColumnSummary captures statistics per numeric attribute. Missing cells
// are counted but excluded from the statistics.
type ColumnSummary struct {
	Name    dataset.Attribute
	NonNull int
	Missing int
	Zeros   int
	Min     float64
	Max     float64
	Mean    float64
	Std     float64
	// Outliers (robust Z via MAD)
	OutliersCount    int
	OutliersMaxAbsZ  float64
	OutlierThreshold float64
}

// Summarize computes per-attribute statistics over ds.
func Summarize(ds *dataset.Dataset, opt Options) *Report {
	rep := &Report{Name: filepath.Base(ds.Path), Rows: ds.Len(), Columns: len(ds.Columns)}
	if opt.SampleRows < 0 {
		opt.SampleRows = 0
	}
	n := min(opt.SampleRows, ds.Len())
	rep.Samples = append(rep.Samples, ds.Movies[:n]...)

	for _, a := range dataset.Attributes() {
		s := ColumnSummary{Name: a}
		vals := make([]float64, 0, ds.Len())
		for _, m := range ds.Movies {
			x := m.Raw(a)
			if math.IsNaN(x) {
				s.Missing++
				continue
			}
			if x == 0 {
				s.Zeros++
			}
			vals = append(vals, x)
		}
		s.NonNull = len(vals)
		switch {
		case s.NonNull > 1:
			s.Mean, s.Std = stat.MeanStdDev(vals, nil)
		case s.NonNull == 1:
			s.Mean = vals[0]
		}
		if s.NonNull > 0 {
			s.Min, s.Max = floats.Min(vals), floats.Max(vals)
		}
		if opt.Outliers && len(vals) >= 8 {
			thr := opt.OutlierThreshold
			if thr <= 0 {
				thr = 3.5
			}
			median, mad := medianMAD(vals)
			if mad > 0 {
				for _, v := range vals {
					az := math.Abs(0.6745 * (v - median) / mad)
					if az > thr {
						s.OutliersCount++
					}
					if az > s.OutliersMaxAbsZ {
						s.OutliersMaxAbsZ = az
					}
				}
			}
			s.OutlierThreshold = thr
		}
		if s.Missing > 0 {
			rep.Warnings = append(rep.Warnings, fmt.Sprintf("%s: %d missing values are treated as 0 for filtering and modeling", a, s.Missing))
		}
		rep.Cols = append(rep.Cols, s)
	}
	return rep
}

// Text renders a compact plain-text report.
func (r *Report) Text() string {
	var b strings.Builder
	b.WriteString("[DATASET SUMMARY]\n")
	if r.Name != "" {
		b.WriteString(fmt.Sprintf("File: %s\n", r.Name))
	}
	b.WriteString(fmt.Sprintf("Rows: %d\n", r.Rows))
	b.WriteString(fmt.Sprintf("Columns: %d (%d numeric used)\n\n", r.Columns, len(r.Cols)))

	b.WriteString("[SCHEMA]\n")
	for _, c := range r.Cols {
		total := c.NonNull + c.Missing
		missPct := 0.0
		if total > 0 {
			missPct = float64(c.Missing) * 100.0 / float64(total)
		}
		b.WriteString(fmt.Sprintf("- %s: numeric (non-null %d, missing %.1f%%, zeros %d)", c.Name, c.NonNull, missPct, c.Zeros))
		b.WriteString(fmt.Sprintf(" min %.4g, max %.4g, mean %.4g, std %.4g", c.Min, c.Max, c.Mean, c.Std))
		if c.OutlierThreshold > 0 {
			b.WriteString(fmt.Sprintf("; outliers: %d above |z|>%.1f", c.OutliersCount, c.OutlierThreshold))
		}
		b.WriteString("\n")
	}
	if len(r.Warnings) > 0 {
		b.WriteString("\n[NOTES]\n")
		for _, w := range r.Warnings {
			b.WriteString("- ")
			b.WriteString(w)
			b.WriteString("\n")
		}
	}
	return b.String()
}

// SampleTable returns the head rows as a header and string cells.
func (r *Report) SampleTable() ([]string, [][]string) {
	header := []string{"title"}
	for _, a := range dataset.Attributes() {
		header = append(header, string(a))
	}
	rows := make([][]string, 0, len(r.Samples))
	for _, m := range r.Samples {
		row := []string{safeVal(m.Title)}
		for _, a := range dataset.Attributes() {
			v := m.Raw(a)
			if math.IsNaN(v) {
				row = append(row, "")
				continue
			}
			row = append(row, fmt.Sprintf("%.6g", v))
		}
		rows = append(rows, row)
	}
	return header, rows
}

func safeVal(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	if utf8.RuneCountInString(s) > 40 {
		s = string([]rune(s)[:37]) + "..."
	}
	return s
}

// medianMAD computes median and MAD (median absolute deviation) of values.
func medianMAD(vals []float64) (median, mad float64) {
	if len(vals) == 0 {
		return 0, 0
	}
	cp := make([]float64, len(vals))
	copy(cp, vals)
	sort.Float64s(cp)
	median = stat.Quantile(0.5, stat.Empirical, cp, nil)
	dev := make([]float64, len(cp))
	for i, v := range cp {
		dev[i] = math.Abs(v - median)
	}
	sort.Float64s(dev)
	mad = stat.Quantile(0.5, stat.Empirical, dev, nil)
	return
}
