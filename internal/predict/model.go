package predict

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// Model is an ordinary least-squares fit: y ≈ Weights·x + Intercept.
type Model struct {
	Weights   []float64
	Intercept float64
}

// Fit solves the least-squares problem for x (rows × features) and y.
// Columns are centered on their means so the intercept is recovered as
// mean(y) - mean(x)·w. The solve goes through an SVD with numpy-style rank
// cutoff, so collinear or all-zero columns get a minimum-norm (zero) weight.
func Fit(x *mat.Dense, y []float64) (*Model, error) {
	r, c := x.Dims()
	if r == 0 {
		return nil, errors.New("fit: no rows")
	}
	if len(y) != r {
		return nil, fmt.Errorf("fit: %d targets for %d rows", len(y), r)
	}
	means := make([]float64, c)
	col := make([]float64, r)
	for j := 0; j < c; j++ {
		mat.Col(col, j, x)
		means[j] = stat.Mean(col, nil)
	}
	ymean := stat.Mean(y, nil)

	var xc mat.Dense
	xc.Apply(func(_, j int, v float64) float64 { return v - means[j] }, x)
	yc := make([]float64, r)
	copy(yc, y)
	floats.AddConst(-ymean, yc)

	var svd mat.SVD
	if ok := svd.Factorize(&xc, mat.SVDThin); !ok {
		return nil, errors.New("fit: SVD factorization failed")
	}
	rcond := float64(max(r, c)) * (math.Nextafter(1, 2) - 1)
	rank := svd.Rank(rcond)

	w := make([]float64, c)
	if rank > 0 {
		var sol mat.VecDense
		svd.SolveVecTo(&sol, mat.NewVecDense(r, yc), rank)
		for j := range w {
			w[j] = sol.AtVec(j)
		}
	}
	return &Model{Weights: w, Intercept: ymean - floats.Dot(means, w)}, nil
}

// Predict returns the model's estimate for every row of x.
func (m *Model) Predict(x *mat.Dense) []float64 {
	r, c := x.Dims()
	out := make([]float64, r)
	row := make([]float64, c)
	for i := 0; i < r; i++ {
		mat.Row(row, i, x)
		out[i] = m.Intercept + floats.Dot(m.Weights, row)
	}
	return out
}

// MeanSquaredError is the mean of squared residuals.
func MeanSquaredError(actual, predicted []float64) float64 {
	if len(actual) == 0 {
		return 0
	}
	d := floats.Distance(actual, predicted, 2)
	return d * d / float64(len(actual))
}

// RSquared is 1 - SSres/SStot. A constant actual vector has no variance to
// explain and scores 0.
func RSquared(actual, predicted []float64) float64 {
	if len(actual) == 0 || constant(actual) {
		return 0
	}
	return stat.RSquaredFrom(predicted, actual, nil)
}

func constant(xs []float64) bool {
	for _, x := range xs[1:] {
		if x != xs[0] {
			return false
		}
	}
	return true
}

