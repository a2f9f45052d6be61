package dataset

import "fmt"

// LoadError reports a dataset that could not be opened, read, or parsed.
// No section of the dashboard can run without a dataset, so callers treat it as fatal.
type LoadError struct {
	Path   string
	Line   int    // 1-based line in the file; 0 when not tied to a row
	Column string // offending column, if any
	Err    error
}

func (e *LoadError) Error() string {
	if e == nil {
		return "load error"
	}
	switch {
	case e.Line > 0 && e.Column != "":
		return fmt.Sprintf("load %s: line %d, column %s: %v", e.Path, e.Line, e.Column, e.Err)
	case e.Line > 0:
		return fmt.Sprintf("load %s: line %d: %v", e.Path, e.Line, e.Err)
	case e.Column != "":
		return fmt.Sprintf("load %s: column %s: %v", e.Path, e.Column, e.Err)
	}
	return fmt.Sprintf("load %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }
