package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
)

var (
	// ErrEmpty indicates a file without a header row.
	ErrEmpty = errors.New("empty dataset file")
	// ErrMissingColumn indicates a required column is absent from the header.
	ErrMissingColumn = errors.New("required column missing")
	// ErrMalformedValue indicates a non-numeric cell in a numeric column.
	ErrMalformedValue = errors.New("malformed numeric value")
	// ErrFieldCount indicates a row with more fields than the header.
	ErrFieldCount = errors.New("too many fields")
)

// LoadOptions controls how the dataset file is read.
type LoadOptions struct {
	// Delimiter for the file. If 0, ',' is used, or '\t' for .tsv files.
	Delimiter rune
}

// DefaultLoadOptions returns options suitable for the TMDB CSV export.
func DefaultLoadOptions() LoadOptions {
	return LoadOptions{}
}

// missing markers besides the empty cell
var missingTokens = map[string]bool{"na": true, "nan": true, "null": true, "none": true}

// Load reads the delimited file at path into a Dataset.
// Every failure is returned as a *LoadError.
func Load(path string, opt LoadOptions) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: fmt.Errorf("open: %w", err)}
	}
	defer f.Close()

	delim := opt.Delimiter
	if delim == 0 {
		delim = sniffDelimiter(path)
	}
	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true
	r.Comma = delim

	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &LoadError{Path: path, Err: ErrEmpty}
		}
		return nil, &LoadError{Path: path, Line: 1, Err: fmt.Errorf("read header: %w", err)}
	}

	// Map required attributes and optional display columns to header positions.
	index := map[string]int{}
	cols := make([]string, len(header))
	for i, h := range header {
		name := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		cols[i] = name
		if _, dup := index[name]; !dup {
			index[name] = i
		}
	}
	attrIdx := make(map[Attribute]int, len(Attributes()))
	for _, a := range Attributes() {
		i, ok := index[string(a)]
		if !ok {
			return nil, &LoadError{Path: path, Column: string(a), Err: ErrMissingColumn}
		}
		attrIdx[a] = i
	}
	idIdx, hasID := index["id"]
	titleIdx, hasTitle := index["title"]

	ds := &Dataset{Path: path, Columns: cols, Missing: map[Attribute]int{}}
	for {
		rec, err := r.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			var pe *csv.ParseError
			if errors.As(err, &pe) {
				return nil, &LoadError{Path: path, Line: pe.Line, Err: pe.Err}
			}
			return nil, &LoadError{Path: path, Err: fmt.Errorf("read row %d: %w", len(ds.Movies)+1, err)}
		}
		line, _ := r.FieldPos(0)
		if isBlank(rec) {
			continue
		}
		if len(rec) > len(header) {
			return nil, &LoadError{Path: path, Line: line, Err: fmt.Errorf("%w: got %d, header has %d", ErrFieldCount, len(rec), len(header))}
		}
		var m Movie
		if hasID && idIdx < len(rec) {
			m.ID = strings.TrimSpace(rec[idIdx])
		}
		if hasTitle && titleIdx < len(rec) {
			m.Title = strings.TrimSpace(rec[titleIdx])
		}
		for _, a := range Attributes() {
			var cell string
			if i := attrIdx[a]; i < len(rec) {
				cell = rec[i]
			}
			v, ok, err := parseCell(cell)
			if err != nil {
				return nil, &LoadError{Path: path, Line: line, Column: string(a), Err: err}
			}
			if !ok {
				ds.Missing[a]++
			}
			m.set(a, v)
		}
		ds.Movies = append(ds.Movies, m)
	}
	return ds, nil
}

// parseCell returns (value, present, error). Missing cells yield NaN.
func parseCell(s string) (float64, bool, error) {
	v := strings.TrimSpace(s)
	if v == "" || missingTokens[strings.ToLower(v)] {
		return math.NaN(), false, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, false, fmt.Errorf("%w: %q", ErrMalformedValue, v)
	}
	return f, true, nil
}

func sniffDelimiter(path string) rune {
	if strings.HasSuffix(strings.ToLower(path), ".tsv") {
		return '\t'
	}
	return ','
}

// ParseDelimiter maps a flag/config value to a delimiter rune. Empty means auto.
func ParseDelimiter(s string) (rune, error) {
	switch s {
	case "":
		return 0, nil
	case ",":
		return ',', nil
	case "\t", "tab":
		return '\t', nil
	case ";":
		return ';', nil
	}
	return 0, fmt.Errorf("unsupported delimiter: %s (use ','|';'|'tab')", s)
}

func isBlank(rec []string) bool {
	for _, c := range rec {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
