// Package model_selection partitions a dataset into training and holdout sets.
package model_selection

import (
	"fmt"
	"math"
	"math/rand"
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/ezoic/perfindex/pkg/errors"
)

// DefaultTestSize and DefaultSeed reproduce the reference 80/20 split.
const (
	DefaultTestSize = 0.2
	DefaultSeed     = 42
)

// Split is the result of TrainTestSplit. TrainIndex and TestIndex hold the
// source row numbers of each half, in the order the rows were copied.
type Split struct {
	XTrain     *mat.Dense
	XTest      *mat.Dense
	YTrain     *mat.VecDense
	YTest      *mat.VecDense
	TrainIndex []int
	TestIndex  []int
}

// TestSizeFor returns the holdout row count round(testSize·n).
func TestSizeFor(n int, testSize float64) int {
	return int(math.Round(testSize * float64(n)))
}

// TrainTestSplit shuffles row indices with a source seeded by seed, assigns
// the first round(testSize·n) to the holdout set and the rest to training.
// The same inputs and seed always give the same partition.
func TrainTestSplit(X mat.Matrix, y mat.Vector, testSize float64, seed int64) (*Split, error) {
	n, c := X.Dims()
	if n < 2 {
		return nil, errors.NewModelError("TrainTestSplit",
			fmt.Sprintf("need at least 2 rows, got %d", n), errors.ErrEmptyData)
	}
	if y.Len() != n {
		return nil, errors.NewDimensionError("TrainTestSplit", n, y.Len(), 0)
	}
	if !(testSize > 0 && testSize < 1) {
		return nil, errors.NewValidationError("test_size", "must be in (0, 1)", testSize)
	}

	nTest := TestSizeFor(n, testSize)
	if nTest == 0 || nTest == n {
		return nil, errors.NewValueError("TrainTestSplit",
			fmt.Sprintf("test_size %.2f leaves an empty split for %d rows", testSize, n))
	}

	perm := rand.New(rand.NewSource(seed)).Perm(n)
	s := &Split{
		TestIndex:  append([]int(nil), perm[:nTest]...),
		TrainIndex: append([]int(nil), perm[nTest:]...),
	}
	s.XTest, s.YTest = takeRows(X, y, s.TestIndex, c)
	s.XTrain, s.YTrain = takeRows(X, y, s.TrainIndex, c)
	return s, nil
}

// Disjoint reports whether the two index sets share no row and together cover
// 0..n-1 exactly once.
func (s *Split) Disjoint(n int) bool {
	if len(s.TrainIndex)+len(s.TestIndex) != n {
		return false
	}
	all := make([]int, 0, n)
	all = append(all, s.TrainIndex...)
	all = append(all, s.TestIndex...)
	sort.Ints(all)
	for i, v := range all {
		if v != i {
			return false
		}
	}
	return true
}

func takeRows(X mat.Matrix, y mat.Vector, idx []int, c int) (*mat.Dense, *mat.VecDense) {
	xs := mat.NewDense(len(idx), c, nil)
	ys := mat.NewVecDense(len(idx), nil)
	for i, row := range idx {
		for j := 0; j < c; j++ {
			xs.Set(i, j, X.At(row, j))
		}
		ys.SetVec(i, y.AtVec(row))
	}
	return xs, ys
}
