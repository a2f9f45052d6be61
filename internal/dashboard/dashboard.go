// Package dashboard turns the loaded dataset and the user's current selection
// into a rendered page. Render performs no I/O.
package dashboard

import (
	"fmt"

	"github.com/KaramelBytes/moviescope-cli/internal/charts"
	"github.com/KaramelBytes/moviescope-cli/internal/dataset"
	"github.com/KaramelBytes/moviescope-cli/internal/filter"
	"github.com/KaramelBytes/moviescope-cli/internal/narrative"
	"github.com/KaramelBytes/moviescope-cli/internal/predict"
	"gonum.org/v1/plot"
)

// State is the user's current selection. Ranges only affect the analyses section.
type State struct {
	Section narrative.Section
	Ranges  filter.Ranges
}

// NewState selects section with ranges reset to the dataset's observed bounds.
func NewState(ds *dataset.Dataset, section narrative.Section) State {
	return State{Section: section, Ranges: filter.Defaults(ds)}
}

// Options controls the computed sections.
type Options struct {
	HistBins int
	Predict  predict.Options
}

// DefaultOptions uses 20 histogram bins and the default prediction split.
func DefaultOptions() Options {
	return Options{HistBins: 20, Predict: predict.DefaultOptions()}
}

// Table is a titled grid of string cells.
type Table struct {
	Title  string
	Header []string
	Rows   [][]string
}

// Chart is a named plot ready to be encoded.
type Chart struct {
	Name  string
	Title string
	Plot  *plot.Plot
}

// Page is everything one render pass produces for a section.
type Page struct {
	Section    narrative.Section
	Title      string
	Paragraphs []string
	Tables     []Table
	Charts     []Chart
	// Count is the number of records selected by the filters (analyses only).
	Count int
	// Err is a section-level failure shown in place of the output; other sections stay usable.
	Err error
}

// Render runs the component behind st.Section and collects its output.
func Render(ds *dataset.Dataset, st State, opt Options) Page {
	page := Page{Section: st.Section, Title: st.Section.Title()}
	switch st.Section {
	case narrative.Analyses:
		renderAnalyses(&page, ds, st.Ranges, opt)
	case narrative.Models:
		renderModels(&page, ds, opt)
	default:
		if !narrative.IsNarrative(st.Section) {
			page.Err = fmt.Errorf("unknown section: %q", st.Section)
			return page
		}
		page.Paragraphs = narrative.Text(st.Section)
	}
	return page
}

func renderAnalyses(page *Page, ds *dataset.Dataset, rs filter.Ranges, opt Options) {
	if rs == nil {
		rs = filter.Defaults(ds)
	}
	view := filter.Apply(ds, rs)
	page.Count = view.Count()
	page.Paragraphs = append(page.Paragraphs, fmt.Sprintf("📌 %d movies selected after applying the filters.", view.Count()))

	active := Table{Title: "🔎 Filters", Header: []string{"attribute", "min", "max"}}
	for _, a := range dataset.Attributes() {
		if r, ok := rs[a]; ok {
			active.Rows = append(active.Rows, []string{string(a), fmt.Sprintf("%g", r.Min), fmt.Sprintf("%g", r.Max)})
		}
	}
	page.Tables = append(page.Tables, active)

	sc, err := charts.Scatter(view, dataset.Budget, dataset.Revenue, dataset.VoteAverage, "Revenue x Budget")
	if err != nil {
		page.Err = err
		return
	}
	page.Charts = append(page.Charts, Chart{Name: "scatter_revenue_budget", Title: "🔹 Scatter: revenue vs budget", Plot: sc})

	hv, err := charts.Histogram(view, dataset.VoteAverage, opt.HistBins, true, charts.Blue(), "Distribution of the average rating (vote_average)")
	if err != nil {
		page.Err = err
		return
	}
	page.Charts = append(page.Charts, Chart{Name: "hist_vote_average", Title: "🔹 Histogram: average rating distribution", Plot: hv})

	hp, err := charts.Histogram(view, dataset.Popularity, opt.HistBins, true, charts.Green(), "Distribution of popularity")
	if err != nil {
		page.Err = err
		return
	}
	page.Charts = append(page.Charts, Chart{Name: "hist_popularity", Title: "🔹 Histogram: popularity", Plot: hp})
}

func renderModels(page *Page, ds *dataset.Dataset, opt Options) {
	rep, err := predict.FitAndEvaluate(ds, opt.Predict)
	if err != nil {
		page.Err = err
		return
	}
	page.Paragraphs = append(page.Paragraphs,
		"📈 Model evaluation",
		fmt.Sprintf("MSE: %.2f", rep.MSE),
		fmt.Sprintf("RMSE: %.2f", rep.RMSE),
		fmt.Sprintf("R²: %.2f", rep.R2),
	)

	sample := Table{Title: "🎥 Prediction sample", Header: []string{"title", "actual", "predicted"}}
	for _, s := range rep.Sample {
		sample.Rows = append(sample.Rows, []string{s.Title, fmt.Sprintf("%.2f", s.Actual), fmt.Sprintf("%.4f", s.Predicted)})
	}
	coef := Table{Title: "⚖️ Feature weights", Header: []string{"feature", "coefficient"}}
	for _, c := range rep.Coefficients {
		coef.Rows = append(coef.Rows, []string{string(c.Feature), fmt.Sprintf("%.6g", c.Weight)})
	}
	page.Tables = append(page.Tables, sample, coef)

	pva, err := charts.PredictedVsActual(rep.Actual, rep.Predicted, rep.TargetMin, rep.TargetMax)
	if err != nil {
		page.Err = err
		return
	}
	page.Charts = append(page.Charts, Chart{Name: "scatter_actual_predicted", Title: "📊 Scatter: actual vs predicted", Plot: pva})

	line, err := charts.LineComparison(rep.Actual, rep.Predicted, rep.CompareRows)
	if err != nil {
		page.Err = err
		return
	}
	page.Charts = append(page.Charts, Chart{
		Name:  "line_actual_predicted",
		Title: fmt.Sprintf("📉 Line comparison (first %d test movies)", rep.CompareRows),
		Plot:  line,
	})
}
