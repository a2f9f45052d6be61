package predict

import (
	"math"

	"github.com/KaramelBytes/moviescope-cli/internal/dataset"
	"gonum.org/v1/gonum/mat"
)

// Features are the model inputs, in coefficient order.
var Features = []dataset.Attribute{dataset.Budget, dataset.Revenue, dataset.Popularity, dataset.VoteCount}

// Target is the predicted column.
const Target = dataset.VoteAverage

// Options controls the split and the size of the report tables.
type Options struct {
	Seed         int64
	TestFraction float64
	// SampleRows is the number of test rows in the actual vs predicted table.
	SampleRows int
	// CompareRows is the number of test rows in the line comparison chart.
	CompareRows int
}

// DefaultOptions is an 80/20 split with seed 42.
func DefaultOptions() Options {
	return Options{Seed: 42, TestFraction: 0.2, SampleRows: 20, CompareRows: 50}
}

// Coefficient is the fitted weight of a single feature.
type Coefficient struct {
	Feature dataset.Attribute
	Weight  float64
}

// SamplePoint pairs an actual target value with its prediction.
type SamplePoint struct {
	Row       int
	Title     string
	Actual    float64
	Predicted float64
}

// Report holds everything the models section shows for one fit.
type Report struct {
	Rows      int
	TrainRows int
	TestRows  int

	MSE  float64
	RMSE float64
	R2   float64

	Coefficients []Coefficient
	Intercept    float64
	Sample       []SamplePoint

	// Test-partition vectors in partition order.
	TestIndex []int
	Actual    []float64
	Predicted []float64

	// Observed target bounds over the whole input, for the reference diagonal.
	TargetMin float64
	TargetMax float64

	CompareRows int
}

// FitAndEvaluate splits ds, fits OLS on the train rows and scores the test rows.
// Missing feature and target values are treated as zero.
func FitAndEvaluate(ds *dataset.Dataset, opt Options) (*Report, error) {
	def := DefaultOptions()
	if opt.TestFraction <= 0 || opt.TestFraction >= 1 {
		opt.TestFraction = def.TestFraction
	}
	if opt.SampleRows <= 0 {
		opt.SampleRows = def.SampleRows
	}
	if opt.CompareRows <= 0 {
		opt.CompareRows = def.CompareRows
	}
	n := ds.Len()
	split := TrainTestSplit(n, opt.TestFraction, opt.Seed)
	if len(split.Train) == 0 || len(split.Test) == 0 {
		return nil, &InsufficientDataError{Rows: n, Train: len(split.Train), Test: len(split.Test)}
	}

	xTrain, yTrain := design(ds, split.Train)
	model, err := Fit(xTrain, yTrain)
	if err != nil {
		return nil, err
	}
	xTest, yTest := design(ds, split.Test)
	yPred := model.Predict(xTest)

	rep := &Report{
		Rows:        n,
		TrainRows:   len(split.Train),
		TestRows:    len(split.Test),
		Intercept:   model.Intercept,
		TestIndex:   split.Test,
		Actual:      yTest,
		Predicted:   yPred,
		CompareRows: opt.CompareRows,
	}
	rep.MSE = MeanSquaredError(yTest, yPred)
	rep.RMSE = math.Sqrt(rep.MSE)
	rep.R2 = RSquared(yTest, yPred)
	rep.TargetMin, rep.TargetMax = ds.Bounds(Target)

	for j, f := range Features {
		rep.Coefficients = append(rep.Coefficients, Coefficient{Feature: f, Weight: model.Weights[j]})
	}
	for i := 0; i < len(split.Test) && i < opt.SampleRows; i++ {
		row := split.Test[i]
		rep.Sample = append(rep.Sample, SamplePoint{
			Row:       row,
			Title:     ds.Movies[row].Title,
			Actual:    yTest[i],
			Predicted: yPred[i],
		})
	}
	return rep, nil
}

// design builds the feature matrix and target vector for the given rows.
func design(ds *dataset.Dataset, rows []int) (*mat.Dense, []float64) {
	x := mat.NewDense(len(rows), len(Features), nil)
	y := make([]float64, len(rows))
	for i, r := range rows {
		m := ds.Movies[r]
		for j, f := range Features {
			x.Set(i, j, m.Value(f))
		}
		y[i] = m.Value(Target)
	}
	return x, y
}
