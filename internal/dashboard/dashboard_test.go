package dashboard

import (
	"errors"
	"strings"
	"testing"

	"github.com/KaramelBytes/moviescope-cli/internal/dataset"
	"github.com/KaramelBytes/moviescope-cli/internal/filter"
	"github.com/KaramelBytes/moviescope-cli/internal/narrative"
	"github.com/KaramelBytes/moviescope-cli/internal/predict"
)

func movies(n int) *dataset.Dataset {
	ds := &dataset.Dataset{}
	for i := 0; i < n; i++ {
		f := float64(i)
		ds.Movies = append(ds.Movies, dataset.Movie{
			Title:       "Movie",
			Budget:      float64(i%4) * 1e6,
			Revenue:     f * 3e6,
			Popularity:  float64((i * 7) % 40),
			VoteCount:   float64((i * 13) % 900),
			VoteAverage: 3 + float64(i%50)/10,
		})
	}
	return ds
}

func TestRenderNarrativeSections(t *testing.T) {
	ds := movies(10)
	for _, s := range []narrative.Section{narrative.Scenario, narrative.Questions, narrative.Conclusions, narrative.Suggestions} {
		page := Render(ds, NewState(ds, s), DefaultOptions())
		if page.Err != nil || len(page.Paragraphs) == 0 || len(page.Charts) != 0 || len(page.Tables) != 0 {
			t.Fatalf("%s: unexpected page %+v", s, page)
		}
		if page.Title != s.Title() {
			t.Fatalf("%s: title %q", s, page.Title)
		}
	}
}

func TestRenderAnalysesReportsFilteredCount(t *testing.T) {
	ds := movies(200)
	st := NewState(ds, narrative.Analyses)
	full := Render(ds, st, DefaultOptions())
	if full.Err != nil {
		t.Fatalf("render: %v", full.Err)
	}
	if full.Count != ds.Len() {
		t.Fatalf("default ranges count = %d, want %d", full.Count, ds.Len())
	}
	if len(full.Charts) != 3 {
		t.Fatalf("charts = %d, want 3", len(full.Charts))
	}
	st.Ranges[dataset.Budget] = filter.Range{Min: 0, Max: 0}
	zero := Render(ds, st, DefaultOptions())
	if zero.Count != 50 {
		t.Fatalf("zero budget count = %d, want 50", zero.Count)
	}
	if !strings.Contains(zero.Paragraphs[0], "50 movies selected") {
		t.Fatalf("count paragraph = %q", zero.Paragraphs[0])
	}
}

func TestRenderAnalysesEmptyView(t *testing.T) {
	ds := movies(20)
	st := NewState(ds, narrative.Analyses)
	st.Ranges[dataset.Revenue] = filter.Range{Min: 10, Max: 1}
	page := Render(ds, st, DefaultOptions())
	if page.Err != nil || page.Count != 0 {
		t.Fatalf("inverted range should be benign: count=%d err=%v", page.Count, page.Err)
	}
}

func TestRenderModelsIgnoresFilters(t *testing.T) {
	ds := movies(120)
	st := NewState(ds, narrative.Models)
	st.Ranges[dataset.Budget] = filter.Range{Min: 0, Max: 0}
	page := Render(ds, st, DefaultOptions())
	if page.Err != nil {
		t.Fatalf("render models: %v", page.Err)
	}
	rep, err := predict.FitAndEvaluate(ds, DefaultOptions().Predict)
	if err != nil {
		t.Fatal(err)
	}
	if len(page.Tables) != 2 || len(page.Tables[0].Rows) != len(rep.Sample) || len(page.Tables[1].Rows) != 4 {
		t.Fatalf("unexpected tables: %+v", page.Tables)
	}
	if len(page.Charts) != 2 {
		t.Fatalf("charts = %d, want 2", len(page.Charts))
	}
	var sawR2 bool
	for _, p := range page.Paragraphs {
		if strings.HasPrefix(p, "R²:") {
			sawR2 = true
		}
	}
	if !sawR2 {
		t.Fatalf("missing R² paragraph: %v", page.Paragraphs)
	}
}

func TestRenderModelsInsufficientData(t *testing.T) {
	ds := movies(1)
	page := Render(ds, NewState(ds, narrative.Models), DefaultOptions())
	var ie *predict.InsufficientDataError
	if !errors.As(page.Err, &ie) {
		t.Fatalf("expected InsufficientDataError, got %v", page.Err)
	}
	other := Render(ds, NewState(ds, narrative.Scenario), DefaultOptions())
	if other.Err != nil {
		t.Fatalf("other sections must keep working: %v", other.Err)
	}
}

func TestRenderUnknownSection(t *testing.T) {
	ds := movies(3)
	page := Render(ds, State{Section: "credits"}, DefaultOptions())
	if page.Err == nil {
		t.Fatalf("expected error for unknown section")
	}
}
