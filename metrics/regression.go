// Package metrics provides the regression metrics used to evaluate the
// performance model on its holdout set.
//
//   - MSE: mean squared error
//   - RMSE: root mean squared error
//   - MAE: mean absolute error
//   - R2Score: coefficient of determination
//
// All functions take gonum vectors of equal length. MSEMatrix and R2Matrix
// accept n×1 column matrices, which is the shape LinearRegression.Predict
// returns.
//
//	mse, err := metrics.MSE(yTrue, yPred)
//	r2, err := metrics.R2Score(yTrue, yPred)
package metrics

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/ezoic/perfindex/pkg/errors"
)

func checkPair(op string, yTrue, yPred *mat.VecDense) (int, error) {
	n := yTrue.Len()
	if n == 0 {
		return 0, errors.NewValueErrorWrap(op, "empty vector", errors.ErrEmptyData)
	}
	if yPred.Len() != n {
		return 0, errors.NewDimensionError(op, n, yPred.Len(), 0)
	}
	return n, nil
}

// MSE calculates the mean squared error (1/n)·Σ(yTrue − yPred)².
// The result is never negative.
func MSE(yTrue, yPred *mat.VecDense) (float64, error) {
	n, err := checkPair("MSE", yTrue, yPred)
	if err != nil {
		return 0, err
	}

	var sum float64
	for i := 0; i < n; i++ {
		diff := yTrue.AtVec(i) - yPred.AtVec(i)
		sum += diff * diff
	}
	return sum / float64(n), nil
}

// RMSE is the square root of MSE, in the units of the target.
func RMSE(yTrue, yPred *mat.VecDense) (float64, error) {
	mse, err := MSE(yTrue, yPred)
	if err != nil {
		return 0, err
	}
	return math.Sqrt(mse), nil
}

// MAE calculates the mean absolute error (1/n)·Σ|yTrue − yPred|.
func MAE(yTrue, yPred *mat.VecDense) (float64, error) {
	n, err := checkPair("MAE", yTrue, yPred)
	if err != nil {
		return 0, err
	}

	var sum float64
	for i := 0; i < n; i++ {
		sum += math.Abs(yTrue.AtVec(i) - yPred.AtVec(i))
	}
	return sum / float64(n), nil
}

// R2Score calculates the coefficient of determination 1 − RSS/TSS, where TSS
// is taken around the mean of yTrue.
//
// The best possible score is 1. Predictions worse than the constant mean give
// a negative score. A yTrue with no variance has no defined R² and returns a
// ValueError.
func R2Score(yTrue, yPred *mat.VecDense) (float64, error) {
	n, err := checkPair("R2Score", yTrue, yPred)
	if err != nil {
		return 0, err
	}

	var yMean float64
	for i := 0; i < n; i++ {
		yMean += yTrue.AtVec(i)
	}
	yMean /= float64(n)

	var tss, rss float64
	for i := 0; i < n; i++ {
		t := yTrue.AtVec(i)
		d := t - yPred.AtVec(i)
		tss += (t - yMean) * (t - yMean)
		rss += d * d
	}

	if tss == 0 {
		return 0, errors.NewValueError("R2Score", "total sum of squares is zero (no variance in yTrue)")
	}
	return 1 - rss/tss, nil
}

// MSEMatrix is MSE for n×1 column matrices.
func MSEMatrix(yTrue, yPred mat.Matrix) (float64, error) {
	t, p, err := columnPair("MSEMatrix", yTrue, yPred)
	if err != nil {
		return 0, err
	}
	return MSE(t, p)
}

// R2Matrix is R2Score for n×1 column matrices.
func R2Matrix(yTrue, yPred mat.Matrix) (float64, error) {
	t, p, err := columnPair("R2Matrix", yTrue, yPred)
	if err != nil {
		return 0, err
	}
	return R2Score(t, p)
}

// ColumnVector copies the single column of an n×1 matrix into a vector.
func ColumnVector(m mat.Matrix) (*mat.VecDense, error) {
	r, c := m.Dims()
	if r == 0 || c == 0 {
		return nil, errors.NewValueErrorWrap("ColumnVector", "empty matrix", errors.ErrEmptyData)
	}
	if c != 1 {
		return nil, errors.NewDimensionError("ColumnVector", 1, c, 1)
	}
	v := mat.NewVecDense(r, nil)
	for i := 0; i < r; i++ {
		v.SetVec(i, m.At(i, 0))
	}
	return v, nil
}

func columnPair(op string, yTrue, yPred mat.Matrix) (*mat.VecDense, *mat.VecDense, error) {
	rt, ct := yTrue.Dims()
	rp, cp := yPred.Dims()
	if rt != rp || ct != cp {
		return nil, nil, errors.NewDimensionError(op, rt, rp, 0)
	}
	t, err := ColumnVector(yTrue)
	if err != nil {
		return nil, nil, err
	}
	p, err := ColumnVector(yPred)
	if err != nil {
		return nil, nil, err
	}
	return t, p, nil
}
