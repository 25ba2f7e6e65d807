package model_selection

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/ezoic/perfindex/pkg/errors"
)

func makeXY(n int) (*mat.Dense, *mat.VecDense) {
	X := mat.NewDense(n, 2, nil)
	y := mat.NewVecDense(n, nil)
	for i := 0; i < n; i++ {
		X.Set(i, 0, float64(i))
		X.Set(i, 1, float64(i)*10)
		y.SetVec(i, float64(i)*100)
	}
	return X, y
}

func TestTrainTestSplit_Sizes(t *testing.T) {
	for _, n := range []int{2, 3, 7, 10, 11, 99, 1000, 10000} {
		X, y := makeXY(n)
		s, err := TrainTestSplit(X, y, DefaultTestSize, DefaultSeed)
		if n*2 < 5 { // round(0.2·n) == 0
			assert.Error(t, err, "n=%d", n)
			continue
		}
		require.NoError(t, err, "n=%d", n)

		wantTest := TestSizeFor(n, 0.2)
		assert.Equal(t, wantTest, len(s.TestIndex), "n=%d", n)
		assert.Equal(t, n-wantTest, len(s.TrainIndex), "n=%d", n)
		r, _ := s.XTest.Dims()
		assert.Equal(t, wantTest, r)
		assert.Equal(t, n-wantTest, s.YTrain.Len())
		assert.True(t, s.Disjoint(n), "n=%d partition must be disjoint and exhaustive", n)
	}
}

func TestTrainTestSplit_RowsStayAligned(t *testing.T) {
	X, y := makeXY(50)
	s, err := TrainTestSplit(X, y, 0.2, 7)
	require.NoError(t, err)

	for i, row := range s.TestIndex {
		assert.Equal(t, float64(row), s.XTest.At(i, 0))
		assert.Equal(t, float64(row)*100, s.YTest.AtVec(i))
	}
	for i, row := range s.TrainIndex {
		assert.Equal(t, float64(row)*10, s.XTrain.At(i, 1))
		assert.Equal(t, float64(row)*100, s.YTrain.AtVec(i))
	}
}

func TestTrainTestSplit_Deterministic(t *testing.T) {
	X, y := makeXY(200)

	a, err := TrainTestSplit(X, y, 0.2, 42)
	require.NoError(t, err)
	b, err := TrainTestSplit(X, y, 0.2, 42)
	require.NoError(t, err)
	c, err := TrainTestSplit(X, y, 0.2, 43)
	require.NoError(t, err)

	assert.Equal(t, a.TestIndex, b.TestIndex)
	assert.Equal(t, a.TrainIndex, b.TrainIndex)
	assert.NotEqual(t, a.TestIndex, c.TestIndex)
}

func TestTrainTestSplit_Errors(t *testing.T) {
	X1, y1 := makeXY(1)
	_, err := TrainTestSplit(X1, y1, 0.2, 42)
	assert.ErrorIs(t, err, errors.ErrEmptyData)

	X, y := makeXY(10)
	_, err = TrainTestSplit(X, mat.NewVecDense(9, nil), 0.2, 42)
	assert.ErrorIs(t, err, errors.ErrDimensionMismatch)

	for _, ts := range []float64{0, 1, -0.1, 1.5} {
		_, err = TrainTestSplit(X, y, ts, 42)
		var vErr *errors.ValidationError
		assert.True(t, errors.As(err, &vErr), "test_size %v", ts)
	}
}

func TestDisjoint_DetectsOverlap(t *testing.T) {
	s := &Split{TrainIndex: []int{0, 1, 2}, TestIndex: []int{2}}
	assert.False(t, s.Disjoint(4))
	s = &Split{TrainIndex: []int{0, 1}, TestIndex: []int{2}}
	assert.False(t, s.Disjoint(4))
	s = &Split{TrainIndex: []int{3, 1}, TestIndex: []int{0, 2}}
	assert.True(t, s.Disjoint(4))
}
