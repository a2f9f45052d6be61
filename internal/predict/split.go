package predict

import (
	"math"
	"math/rand"
)

// Split is a partition of row indices into disjoint train and test sets.
// Test rows are kept in partition (shuffled) order.
type Split struct {
	Train []int
	Test  []int
}

// TrainTestSplit shuffles 0..n-1 with a seeded source and takes the first
// ceil(testFraction*n) rows as the test partition, the remainder as train.
// The same (n, testFraction, seed) always yields the same partition.
func TrainTestSplit(n int, testFraction float64, seed int64) Split {
	if n <= 0 {
		return Split{}
	}
	nTest := int(math.Ceil(testFraction * float64(n)))
	if nTest < 0 {
		nTest = 0
	}
	if nTest > n {
		nTest = n
	}
	perm := rand.New(rand.NewSource(seed)).Perm(n)
	return Split{Test: perm[:nTest], Train: perm[nTest:]}
}
