package charts

import (
	"math"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// KDE is a one-dimensional Gaussian kernel density estimate.
type KDE struct {
	Samples   []float64
	Bandwidth float64
}

// NewKDE uses Scott's rule, std * n^(-1/5), for the bandwidth.
func NewKDE(samples []float64) KDE {
	k := KDE{Samples: samples}
	if len(samples) > 1 {
		k.Bandwidth = stat.StdDev(samples, nil) * math.Pow(float64(len(samples)), -0.2)
	}
	if k.Bandwidth <= 0 || math.IsNaN(k.Bandwidth) {
		k.Bandwidth = 1
	}
	return k
}

// At returns the estimated density at x.
func (k KDE) At(x float64) float64 {
	if len(k.Samples) == 0 {
		return 0
	}
	var sum float64
	for _, s := range k.Samples {
		sum += distuv.Normal{Mu: s, Sigma: k.Bandwidth}.Prob(x)
	}
	return sum / float64(len(k.Samples))
}
