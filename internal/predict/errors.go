package predict

import "fmt"

// InsufficientDataError indicates there are too few rows for a train/test split.
type InsufficientDataError struct {
	Rows  int
	Train int
	Test  int
}

func (e *InsufficientDataError) Error() string {
	if e == nil {
		return "insufficient data"
	}
	return fmt.Sprintf("insufficient data for prediction: %d rows (train %d, test %d)", e.Rows, e.Train, e.Test)
}
