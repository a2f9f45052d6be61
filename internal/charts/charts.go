// Package charts builds the dashboard's plots. Builders only construct
// *plot.Plot values; Save encodes them to PNG.
package charts

import (
	"bytes"
	"fmt"
	"image/color"
	"math"

	"github.com/KaramelBytes/moviescope-cli/internal/dataset"
	"github.com/KaramelBytes/moviescope-cli/internal/filter"
	"github.com/KaramelBytes/moviescope-cli/internal/utils"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

var (
	colorBlue   = color.RGBA{R: 31, G: 119, B: 180, A: 255}
	colorGreen  = color.RGBA{R: 44, G: 160, B: 44, A: 255}
	colorRed    = color.RGBA{R: 214, G: 39, B: 40, A: 255}
	colorOrange = color.RGBA{R: 255, G: 127, B: 14, A: 255}
)

// Scatter plots y against x for the rows in view. When colorBy is non-empty,
// each point is colored by that attribute on a continuous color map.
func Scatter(view filter.View, x, y, colorBy dataset.Attribute, title string) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = string(x)
	p.Y.Label.Text = string(y)
	p.Add(plotter.NewGrid())
	if view.Count() == 0 {
		return p, nil
	}

	xs, ys := view.Column(x), view.Column(y)
	pts := make(plotter.XYs, len(xs))
	for i := range xs {
		pts[i].X, pts[i].Y = xs[i], ys[i]
	}
	sc, err := plotter.NewScatter(pts)
	if err != nil {
		return nil, fmt.Errorf("scatter: %w", err)
	}
	sc.GlyphStyle.Shape = draw.CircleGlyph{}
	sc.GlyphStyle.Radius = vg.Points(2)
	sc.GlyphStyle.Color = colorBlue

	if colorBy != "" {
		hues := view.Column(colorBy)
		lo, hi := minMax(hues)
		cm := moreland.SmoothBlueRed()
		if hi > lo {
			cm.SetMin(lo)
			cm.SetMax(hi)
		} else {
			cm.SetMin(lo - 0.5)
			cm.SetMax(lo + 0.5)
		}
		sc.GlyphStyleFunc = func(i int) draw.GlyphStyle {
			gs := sc.GlyphStyle
			if c, err := cm.At(hues[i]); err == nil {
				gs.Color = c
			}
			return gs
		}
		p.Title.Text = fmt.Sprintf("%s (color = %s)", title, colorBy)
	}
	p.Add(sc)
	return p, nil
}

// Histogram bins attr over the rows in view. With density set, a Gaussian
// kernel density estimate scaled to bin counts is drawn on top.
func Histogram(view filter.View, attr dataset.Attribute, bins int, density bool, fill color.Color, title string) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = string(attr)
	p.Y.Label.Text = "count"
	if view.Count() == 0 {
		return p, nil
	}
	if bins <= 0 {
		bins = 20
	}
	vals := plotter.Values(view.Column(attr))
	h, err := plotter.NewHist(vals, bins)
	if err != nil {
		return nil, fmt.Errorf("histogram: %w", err)
	}
	if fill == nil {
		fill = colorBlue
	}
	h.FillColor = fill
	p.Add(h)

	if density && len(vals) > 1 {
		lo, hi := minMax(vals)
		width := (hi - lo) / float64(bins)
		if width == 0 {
			width = 1
		}
		kde := NewKDE(vals)
		scale := float64(len(vals)) * width
		fn := plotter.NewFunction(func(x float64) float64 { return scale * kde.At(x) })
		fn.Samples = 200
		fn.XMin, fn.XMax = lo, hi
		fn.Color = darker(fill)
		fn.Width = vg.Points(1.5)
		p.Add(fn)
	}
	return p, nil
}

// PredictedVsActual scatters predictions against actual values and draws the
// dashed y = x reference from (lo, lo) to (hi, hi).
func PredictedVsActual(actual, predicted []float64, lo, hi float64) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = "Actual vs predicted"
	p.X.Label.Text = "Actual"
	p.Y.Label.Text = "Predicted"
	p.Add(plotter.NewGrid())

	n := min(len(actual), len(predicted))
	pts := make(plotter.XYs, n)
	for i := 0; i < n; i++ {
		pts[i].X, pts[i].Y = actual[i], predicted[i]
	}
	if n > 0 {
		sc, err := plotter.NewScatter(pts)
		if err != nil {
			return nil, fmt.Errorf("scatter: %w", err)
		}
		sc.GlyphStyle.Shape = draw.CircleGlyph{}
		sc.GlyphStyle.Radius = vg.Points(2.5)
		sc.GlyphStyle.Color = color.RGBA{R: 31, G: 119, B: 180, A: 178}
		p.Add(sc)
	}

	ref, err := plotter.NewLine(plotter.XYs{{X: lo, Y: lo}, {X: hi, Y: hi}})
	if err != nil {
		return nil, fmt.Errorf("reference line: %w", err)
	}
	ref.Color = colorRed
	ref.Dashes = []vg.Length{vg.Points(5), vg.Points(5)}
	p.Add(ref)
	return p, nil
}

// LineComparison overlays actual and predicted values for the first n test
// rows, in partition order.
func LineComparison(actual, predicted []float64, n int) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("Actual vs predicted - first %d test movies", n)
	p.X.Label.Text = "test row"
	p.Y.Label.Text = string(dataset.VoteAverage)
	p.Add(plotter.NewGrid())
	p.Legend.Top = true

	n = min(n, len(actual), len(predicted))
	if n == 0 {
		return p, nil
	}
	series := []struct {
		name  string
		vals  []float64
		color color.Color
		glyph draw.GlyphDrawer
	}{
		{"Actual", actual[:n], colorBlue, draw.CircleGlyph{}},
		{"Predicted", predicted[:n], colorOrange, draw.CrossGlyph{}},
	}
	for _, s := range series {
		pts := make(plotter.XYs, n)
		for i, v := range s.vals {
			pts[i].X, pts[i].Y = float64(i), v
		}
		l, sc, err := plotter.NewLinePoints(pts)
		if err != nil {
			return nil, fmt.Errorf("line %s: %w", s.name, err)
		}
		l.Color = s.color
		sc.GlyphStyle.Color = s.color
		sc.GlyphStyle.Shape = s.glyph
		p.Add(l, sc)
		p.Legend.Add(s.name, l, sc)
	}
	return p, nil
}

// Encode renders p as PNG of the given size in inches.
func Encode(p *plot.Plot, widthIn, heightIn float64) ([]byte, error) {
	wt, err := p.WriterTo(vg.Length(widthIn)*vg.Inch, vg.Length(heightIn)*vg.Inch, "png")
	if err != nil {
		return nil, fmt.Errorf("png writer: %w", err)
	}
	var buf bytes.Buffer
	if _, err := wt.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// Save encodes p and writes it atomically to path.
func Save(p *plot.Plot, path string, widthIn, heightIn float64) error {
	b, err := Encode(p, widthIn, heightIn)
	if err != nil {
		return err
	}
	return utils.SafeWriteFile(path, b)
}

// Palette colors used by the analyses section.
func Blue() color.Color  { return colorBlue }
func Green() color.Color { return colorGreen }

func minMax(vs []float64) (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, v := range vs {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi
}

func darker(c color.Color) color.Color {
	r, g, b, a := c.RGBA()
	return color.RGBA64{R: uint16(r * 3 / 5), G: uint16(g * 3 / 5), B: uint16(b * 3 / 5), A: uint16(a)}
}
