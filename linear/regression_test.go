package linear

import (
	"bytes"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/ezoic/perfindex/metrics"
	"github.com/ezoic/perfindex/pkg/errors"
)

func TestLinearRegression_Fit(t *testing.T) {
	tests := []struct {
		name    string
		X       *mat.Dense
		y       *mat.VecDense
		wantErr error
	}{
		{
			name: "simple linear relationship y = 2x + 1",
			X:    mat.NewDense(5, 1, []float64{1, 2, 3, 4, 5}),
			y:    mat.NewVecDense(5, []float64{3, 5, 7, 9, 11}),
		},
		{
			name: "multiple features",
			X: mat.NewDense(5, 2, []float64{
				1.0, 2.0,
				2.0, 1.0,
				3.0, 4.0,
				4.0, 3.0,
				5.0, 5.0,
			}),
			y: mat.NewVecDense(5, []float64{5, 4, 11, 10, 15}),
		},
		{
			name:    "empty data",
			X:       &mat.Dense{},
			y:       &mat.VecDense{},
			wantErr: errors.ErrEmptyData,
		},
		{
			name: "mismatched dimensions",
			X: mat.NewDense(3, 2, []float64{
				1.0, 2.0,
				3.0, 4.0,
				5.0, 6.0,
			}),
			y:       mat.NewVecDense(2, []float64{1.0, 2.0}),
			wantErr: errors.ErrDimensionMismatch,
		},
		{
			name:    "fewer samples than parameters",
			X:       mat.NewDense(2, 2, []float64{1, 2, 3, 4}),
			y:       mat.NewVecDense(2, []float64{1, 2}),
			wantErr: errors.ErrSingularMatrix,
		},
		{
			name: "rank deficient design",
			X: mat.NewDense(4, 2, []float64{
				1, 0,
				2, 0,
				3, 0,
				4, 0,
			}),
			y:       mat.NewVecDense(4, []float64{1, 2, 3, 4}),
			wantErr: errors.ErrSingularMatrix,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lr := NewLinearRegression()
			err := lr.Fit(tt.X, tt.y)

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				assert.False(t, lr.IsFitted())
				return
			}
			require.NoError(t, err)
			assert.True(t, lr.IsFitted(), "LinearRegression should be fitted after successful Fit()")
		})
	}
}

func TestLinearRegression_FitRejectsNaN(t *testing.T) {
	X := mat.NewDense(4, 1, []float64{1, math.NaN(), 3, 4})
	y := mat.NewVecDense(4, []float64{1, 2, 3, 4})

	err := NewLinearRegression().Fit(X, y)
	var valErr *errors.ValueError
	require.True(t, errors.As(err, &valErr), "want ValueError, got %v", err)
	assert.Contains(t, valErr.Message, "row 1, column 0")
}

func TestLinearRegression_FeatureNamesMustMatch(t *testing.T) {
	lr := NewLinearRegression(WithFeatureNames("a", "b"))
	err := lr.Fit(mat.NewDense(3, 1, []float64{1, 2, 3}), mat.NewVecDense(3, []float64{1, 2, 3}))
	assert.ErrorIs(t, err, errors.ErrDimensionMismatch)
}

func TestLinearRegression_Predict(t *testing.T) {
	// y = 2x + 1
	lr := NewLinearRegression()
	err := lr.Fit(
		mat.NewDense(5, 1, []float64{1, 2, 3, 4, 5}),
		mat.NewVecDense(5, []float64{3, 5, 7, 9, 11}),
	)
	if err != nil {
		t.Fatalf("Failed to fit model: %v", err)
	}

	tests := []struct {
		name    string
		X       *mat.Dense
		wantY   []float64
		wantErr bool
	}{
		{
			name:  "predict on training data",
			X:     mat.NewDense(2, 1, []float64{1.0, 5.0}),
			wantY: []float64{3.0, 11.0},
		},
		{
			name:  "predict on new data",
			X:     mat.NewDense(3, 1, []float64{0.0, 6.0, 10.0}),
			wantY: []float64{1.0, 13.0, 21.0},
		},
		{
			name:    "wrong number of features",
			X:       mat.NewDense(2, 2, []float64{1.0, 2.0, 3.0, 4.0}),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pred, err := lr.Predict(tt.X)
			if (err != nil) != tt.wantErr {
				t.Fatalf("LinearRegression.Predict() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}

			r, c := pred.Dims()
			if r != len(tt.wantY) || c != 1 {
				t.Fatalf("Prediction shape = [%d, %d], want [%d, 1]", r, c, len(tt.wantY))
			}
			for i := 0; i < r; i++ {
				if got := pred.At(i, 0); math.Abs(got-tt.wantY[i]) > 1e-6 {
					t.Errorf("Prediction[%d] = %v, want %v", i, got, tt.wantY[i])
				}
			}
		})
	}
}

func TestLinearRegression_PredictNotFitted(t *testing.T) {
	lr := NewLinearRegression()

	_, err := lr.Predict(mat.NewDense(2, 1, []float64{1.0, 2.0}))
	assert.ErrorIs(t, err, errors.ErrNotFitted)

	_, err = lr.PredictOne([]float64{1})
	assert.ErrorIs(t, err, errors.ErrNotFitted)
	assert.Zero(t, lr.GetIntercept())
	assert.Nil(t, lr.GetWeights())
}

func TestLinearRegression_MultipleFeatures(t *testing.T) {
	// y = 1*x1 + 2*x2 + 3
	lr := NewLinearRegression()
	XTrain := mat.NewDense(6, 2, []float64{
		1.0, 1.0,
		2.0, 1.0,
		1.0, 2.0,
		3.0, 2.0,
		2.0, 3.0,
		4.0, 3.0,
	})
	yTrain := mat.NewVecDense(6, []float64{6, 7, 8, 10, 11, 13})

	require.NoError(t, lr.Fit(XTrain, yTrain))

	assert.InDeltaSlice(t, []float64{1, 2}, lr.GetWeights(), 1e-9)
	assert.InDelta(t, 3.0, lr.GetIntercept(), 1e-9)

	got, err := lr.PredictOne([]float64{5.0, 1.0})
	require.NoError(t, err)
	assert.InDelta(t, 10.0, got, 1e-6)

	got, err = lr.PredictOne([]float64{1.0, 4.0})
	require.NoError(t, err)
	assert.InDelta(t, 12.0, got, 1e-6)
}

func TestLinearRegression_ScoreMatchesMetrics(t *testing.T) {
	// y ≈ 3x + 5 + noise
	X := mat.NewDense(20, 1, []float64{
		1.0, 1.5, 2.0, 2.5, 3.0, 3.5, 4.0, 4.5, 5.0, 5.5,
		6.0, 6.5, 7.0, 7.5, 8.0, 8.5, 9.0, 9.5, 10.0, 10.5,
	})
	y := mat.NewVecDense(20, []float64{
		8.1, 9.5, 11.2, 12.3, 14.1, 15.8, 17.2, 18.4, 20.1, 21.5,
		23.2, 24.3, 26.1, 27.8, 29.2, 30.4, 32.1, 33.5, 35.2, 36.8,
	})

	lr := NewLinearRegression()
	require.NoError(t, lr.Fit(X, y))

	pred, err := lr.Predict(X)
	require.NoError(t, err)
	predVec := mat.NewVecDense(20, nil)
	for i := 0; i < 20; i++ {
		predVec.SetVec(i, pred.At(i, 0))
	}

	mse, err := metrics.MSE(y, predVec)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, mse, 0.0)

	r2, err := lr.Score(X, y)
	require.NoError(t, err)
	r2FromMetrics, err := metrics.R2Score(y, predVec)
	require.NoError(t, err)

	assert.InDelta(t, r2FromMetrics, r2, 1e-12)
	assert.Greater(t, r2, 0.95)
	assert.LessOrEqual(t, r2, 1.0)
}

func TestLinearRegression_FitIsDeterministic(t *testing.T) {
	X := mat.NewDense(50, 3, nil)
	y := mat.NewVecDense(50, nil)
	for i := 0; i < 50; i++ {
		X.Set(i, 0, math.Sin(float64(i)/10.0))
		X.Set(i, 1, math.Cos(float64(i)/10.0))
		X.Set(i, 2, float64(i)/50.0)
		y.SetVec(i, 2*X.At(i, 0)+3*X.At(i, 1)-X.At(i, 2)+5+float64(i%5)/100.0)
	}

	a, b := NewLinearRegression(), NewLinearRegression()
	require.NoError(t, a.Fit(X, y))
	require.NoError(t, b.Fit(X, y))

	assert.Equal(t, a.GetWeights(), b.GetWeights())
	assert.Equal(t, a.GetIntercept(), b.GetIntercept())
}

func TestLinearRegression_ExportAndLoad(t *testing.T) {
	lr := NewLinearRegression(WithFeatureNames("x1", "x2"))
	require.NoError(t, lr.Fit(
		mat.NewDense(4, 2, []float64{1, 2, 2, 1, 3, 4, 4, 3}),
		mat.NewVecDense(4, []float64{5, 4, 11, 10}),
	))

	var buf bytes.Buffer
	require.NoError(t, lr.ExportToSKLearnWriter(&buf))
	assert.Contains(t, buf.String(), `"feature_names_in"`)

	loaded := NewLinearRegression()
	require.NoError(t, loaded.LoadFromSKLearnReader(&buf))

	want, err := lr.PredictOne([]float64{5, 6})
	require.NoError(t, err)
	got, err := loaded.PredictOne([]float64{5, 6})
	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.Equal(t, []string{"x1", "x2"}, loaded.FeatureNames)
}

func TestLinearRegression_ExportNotFitted(t *testing.T) {
	var buf bytes.Buffer
	err := NewLinearRegression().ExportToSKLearnWriter(&buf)
	assert.ErrorIs(t, err, errors.ErrNotFitted)
}

func BenchmarkLinearRegression_Fit(b *testing.B) {
	nSamples := 8000
	nFeatures := 5

	X := mat.NewDense(nSamples, nFeatures, nil)
	y := mat.NewVecDense(nSamples, nil)
	for i := 0; i < nSamples; i++ {
		sum := 0.0
		for j := 0; j < nFeatures; j++ {
			val := math.Sin(float64(i*(j+1))) * float64(j+1)
			X.Set(i, j, val)
			sum += val * float64(j+1)
		}
		y.SetVec(i, sum)
	}

	lr := NewLinearRegression()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = lr.Fit(X, y)
	}
}
