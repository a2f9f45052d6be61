package charts

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/KaramelBytes/moviescope-cli/internal/dataset"
	"github.com/KaramelBytes/moviescope-cli/internal/filter"
	"gonum.org/v1/plot"
)

func sampleView() filter.View {
	ds := &dataset.Dataset{}
	for i := 0; i < 40; i++ {
		f := float64(i)
		ds.Movies = append(ds.Movies, dataset.Movie{
			Budget:      f * 1e6,
			Revenue:     f * 2.5e6,
			Popularity:  math.Mod(f*7, 30),
			VoteCount:   f * 10,
			VoteAverage: 4 + math.Mod(f, 6),
		})
	}
	return filter.Apply(ds, filter.Defaults(ds))
}

var pngMagic = []byte("\x89PNG")

func TestBuildersEncodePNG(t *testing.T) {
	view := sampleView()
	sc, err := Scatter(view, dataset.Budget, dataset.Revenue, dataset.VoteAverage, "Revenue x Budget")
	if err != nil {
		t.Fatalf("Scatter: %v", err)
	}
	if sc.Title.Text != "Revenue x Budget (color = vote_average)" {
		t.Fatalf("scatter title = %q", sc.Title.Text)
	}
	hist, err := Histogram(view, dataset.VoteAverage, 20, true, Blue(), "vote_average")
	if err != nil {
		t.Fatalf("Histogram: %v", err)
	}
	actual := view.Column(dataset.VoteAverage)
	pred := make([]float64, len(actual))
	for i, a := range actual {
		pred[i] = a + 0.3
	}
	pva, err := PredictedVsActual(actual, pred, 0, 10)
	if err != nil {
		t.Fatalf("PredictedVsActual: %v", err)
	}
	line, err := LineComparison(actual, pred, 50)
	if err != nil {
		t.Fatalf("LineComparison: %v", err)
	}
	if line.Title.Text != "Actual vs predicted - first 50 test movies" {
		t.Fatalf("line title = %q", line.Title.Text)
	}
	for name, p := range map[string]*plot.Plot{"scatter": sc, "hist": hist, "pva": pva, "line": line} {
		b, err := Encode(p, 4, 3)
		if err != nil {
			t.Fatalf("%s: Encode: %v", name, err)
		}
		if !bytes.HasPrefix(b, pngMagic) {
			t.Fatalf("%s: output is not PNG", name)
		}
	}
}

func TestEncodeAndSave(t *testing.T) {
	view := sampleView()
	hist, err := Histogram(view, dataset.Popularity, 10, true, Green(), "popularity")
	if err != nil {
		t.Fatalf("Histogram: %v", err)
	}
	b, err := Encode(hist, 4, 3)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if !bytes.HasPrefix(b, pngMagic) {
		t.Fatalf("encoded output is not PNG")
	}
	path := filepath.Join(t.TempDir(), "hist.png")
	if err := Save(hist, path, 4, 3); err != nil {
		t.Fatalf("Save: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read saved chart: %v", err)
	}
	if !bytes.HasPrefix(data, pngMagic) {
		t.Fatalf("saved file is not PNG")
	}
}

func TestEmptyViewStillRenders(t *testing.T) {
	ds := &dataset.Dataset{}
	view := filter.Apply(ds, filter.Ranges{})
	sc, err := Scatter(view, dataset.Budget, dataset.Revenue, dataset.VoteAverage, "empty")
	if err != nil {
		t.Fatalf("Scatter: %v", err)
	}
	hist, err := Histogram(view, dataset.VoteAverage, 20, true, nil, "empty")
	if err != nil {
		t.Fatalf("Histogram: %v", err)
	}
	if len(sc.Title.Text) == 0 || len(hist.Title.Text) == 0 {
		t.Fatalf("expected titles on empty charts")
	}
}

func TestKDEIntegratesToOne(t *testing.T) {
	samples := []float64{1, 2, 2.5, 3, 3.2, 4, 5, 5.5, 6, 8}
	k := NewKDE(samples)
	if k.Bandwidth <= 0 {
		t.Fatalf("bandwidth = %v", k.Bandwidth)
	}
	var area float64
	const step = 0.01
	for x := -20.0; x < 30; x += step {
		area += k.At(x) * step
	}
	if math.Abs(area-1) > 1e-3 {
		t.Fatalf("density integrates to %v, want 1", area)
	}
	if NewKDE([]float64{3, 3, 3}).Bandwidth != 1 {
		t.Fatalf("degenerate samples should fall back to unit bandwidth")
	}
}
