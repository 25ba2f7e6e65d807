// Package linear provides the ordinary least squares regressor used to predict
// the performance index.
//
// LinearRegression fits y = X·w + b by least squares on an intercept-augmented
// design matrix, solved with gonum's QR-based Solve. The fitted model is read
// only after Fit returns, so one instance can serve concurrent predictions.
//
// Example usage:
//
//	lr := linear.NewLinearRegression(linear.WithFeatureNames("HS", "Scores"))
//	if err := lr.Fit(X, y); err != nil {
//		log.Fatal(err)
//	}
//	yHat, err := lr.PredictOne([]float64{5, 70})
//
// Learned coefficients can be exported in the scikit-learn compatible JSON
// envelope with ExportToSKLearnWriter.
package linear

import (
	"fmt"
	"io"
	"math"
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/ezoic/perfindex/core/model"
	"github.com/ezoic/perfindex/core/parallel"
	"github.com/ezoic/perfindex/pkg/errors"
	"github.com/ezoic/perfindex/pkg/log"
)

// LinearRegression is an ordinary least squares regressor with intercept.
type LinearRegression struct {
	State        *model.StateManager // Fitted state and training shape
	Weights      *mat.VecDense       // Coefficients, one per feature
	Intercept    float64             // Bias term
	NFeatures    int                 // Number of features seen in Fit
	FeatureNames []string            // Optional names, exported as feature_names_in
	logger       log.Logger
}

// Option configures a LinearRegression.
type Option func(*LinearRegression)

// WithFeatureNames attaches column names to the model. They are only used for
// export and must match the number of features passed to Fit.
func WithFeatureNames(names ...string) Option {
	return func(lr *LinearRegression) {
		lr.FeatureNames = append([]string(nil), names...)
	}
}

// WithLogger overrides the package logger.
func WithLogger(l log.Logger) Option {
	return func(lr *LinearRegression) {
		lr.logger = l
	}
}

// NewLinearRegression creates an unfitted model.
func NewLinearRegression(opts ...Option) *LinearRegression {
	lr := &LinearRegression{
		State: model.NewStateManager(),
		logger: log.GetLoggerWithName("linear").With(
			log.ModelNameKey, "LinearRegression",
			log.ComponentKey, "linear",
		),
	}
	for _, opt := range opts {
		opt(lr)
	}
	return lr
}

// Fit trains the model on X (n_samples × n_features) and the column vector y.
//
// The intercept is learned by prepending a column of ones to X. The system is
// solved in the least squares sense with a QR factorisation, which avoids
// forming XᵀX explicitly.
//
// Errors:
//   - ErrEmptyData: X has no rows or no columns
//   - ErrDimensionMismatch: X and y disagree on the number of samples, or
//     feature names were given for a different number of columns
//   - ValueError: y is not a column vector, or X / y contain NaN or ±Inf
//   - ErrSingularMatrix: fewer samples than parameters, or a rank deficient X
func (lr *LinearRegression) Fit(X, y mat.Matrix) (err error) {
	defer errors.Recover(&err, "LinearRegression.Fit")

	startTime := time.Now()
	r, c := X.Dims()
	ry, cy := y.Dims()

	lr.logger.Info("Training started",
		log.OperationKey, log.OperationFit,
		log.PhaseKey, log.PhaseTraining,
		log.SamplesKey, r,
		log.FeaturesKey, c,
	)

	if r == 0 || c == 0 {
		return errors.NewModelError("LinearRegression.Fit", "empty data", errors.ErrEmptyData)
	}
	if ry != r {
		return errors.NewDimensionError("LinearRegression.Fit", r, ry, 0)
	}
	if cy != 1 {
		return errors.NewValueError("LinearRegression.Fit", "y must be a column vector")
	}
	if lr.FeatureNames != nil && len(lr.FeatureNames) != c {
		return errors.NewDimensionError("LinearRegression.Fit", len(lr.FeatureNames), c, 1)
	}
	if r < c+1 {
		return errors.NewModelError("LinearRegression.Fit",
			fmt.Sprintf("%d samples cannot determine %d parameters", r, c+1), errors.ErrSingularMatrix)
	}
	if err := checkFinite("LinearRegression.Fit", X); err != nil {
		return err
	}
	if err := checkFinite("LinearRegression.Fit", y); err != nil {
		return err
	}

	// Design matrix [1 | X]
	design := mat.NewDense(r, c+1, nil)
	yVec := mat.NewVecDense(r, nil)

	const parallelThreshold = 1000
	parallel.ParallelizeWithThreshold(r, parallelThreshold, func(start, end int) {
		for i := start; i < end; i++ {
			design.Set(i, 0, 1.0)
			for j := 0; j < c; j++ {
				design.Set(i, j+1, X.At(i, j))
			}
			yVec.SetVec(i, y.At(i, 0))
		}
	})

	var beta mat.VecDense
	if err := beta.SolveVec(design, yVec); err != nil {
		lr.logger.Warn("Least squares solve failed", err, log.OperationKey, log.OperationFit)
		return errors.NewModelError("LinearRegression.Fit", "singular matrix", errors.ErrSingularMatrix)
	}

	lr.NFeatures = c
	lr.Intercept = beta.AtVec(0)
	lr.Weights = mat.NewVecDense(c, nil)
	for j := 0; j < c; j++ {
		lr.Weights.SetVec(j, beta.AtVec(j+1))
	}

	lr.State.SetFitted()
	lr.State.SetDimensions(c, r)

	lr.logger.Info("Training completed",
		log.OperationKey, log.OperationFit,
		log.PhaseKey, log.PhaseTraining,
		log.DurationMsKey, time.Since(startTime).Milliseconds(),
		log.SamplesKey, r,
		log.FeaturesKey, c,
	)

	return nil
}

// Predict returns an n×1 matrix of predictions y = X·w + b.
func (lr *LinearRegression) Predict(X mat.Matrix) (_ mat.Matrix, err error) {
	defer errors.Recover(&err, "LinearRegression.Predict")
	if !lr.State.IsFitted() {
		return nil, errors.NewNotFittedError("LinearRegression", "Predict")
	}

	r, c := X.Dims()
	if c != lr.NFeatures {
		return nil, errors.NewDimensionError("LinearRegression.Predict", lr.NFeatures, c, 1)
	}

	lr.logger.Debug("Prediction started",
		log.OperationKey, log.OperationPredict,
		log.PhaseKey, log.PhaseInference,
		log.SamplesKey, r,
	)

	predictions := mat.NewDense(r, 1, nil)
	for i := 0; i < r; i++ {
		pred := lr.Intercept
		for j := 0; j < c; j++ {
			pred += X.At(i, j) * lr.Weights.AtVec(j)
		}
		predictions.Set(i, 0, pred)
	}

	return predictions, nil
}

// PredictOne predicts a single feature vector.
func (lr *LinearRegression) PredictOne(x []float64) (float64, error) {
	if len(x) == 0 {
		return 0, errors.NewModelError("LinearRegression.PredictOne", "empty data", errors.ErrEmptyData)
	}
	pred, err := lr.Predict(mat.NewDense(1, len(x), x))
	if err != nil {
		return 0, err
	}
	return pred.At(0, 0), nil
}

// GetWeights returns a copy of the coefficients, or nil before Fit.
func (lr *LinearRegression) GetWeights() []float64 {
	if lr.Weights == nil {
		return nil
	}
	weights := make([]float64, lr.Weights.Len())
	for i := range weights {
		weights[i] = lr.Weights.AtVec(i)
	}
	return weights
}

// GetIntercept returns the learned intercept, or 0 before Fit.
func (lr *LinearRegression) GetIntercept() float64 {
	if !lr.State.IsFitted() {
		return 0
	}
	return lr.Intercept
}

// IsFitted reports whether Fit has succeeded.
func (lr *LinearRegression) IsFitted() bool {
	return lr.State.IsFitted()
}

// Score returns the coefficient of determination R² of the model on X, y.
func (lr *LinearRegression) Score(X, y mat.Matrix) (_ float64, err error) {
	defer errors.Recover(&err, "LinearRegression.Score")
	if !lr.State.IsFitted() {
		return 0, errors.NewNotFittedError("LinearRegression", "Score")
	}

	yPred, err := lr.Predict(X)
	if err != nil {
		return 0, err
	}

	r, _ := y.Dims()
	if pr, _ := yPred.Dims(); pr != r {
		return 0, errors.NewDimensionError("LinearRegression.Score", pr, r, 0)
	}

	var yMean float64
	for i := 0; i < r; i++ {
		yMean += y.At(i, 0)
	}
	yMean /= float64(r)

	var tss, rss float64
	for i := 0; i < r; i++ {
		yTrue := y.At(i, 0)
		d := yTrue - yPred.At(i, 0)
		tss += (yTrue - yMean) * (yTrue - yMean)
		rss += d * d
	}
	if tss == 0 {
		return 0, errors.NewValueError("LinearRegression.Score", "total sum of squares is zero")
	}

	return 1 - rss/tss, nil
}

// LoadFromSKLearnReader restores a model from the scikit-learn JSON envelope.
func (lr *LinearRegression) LoadFromSKLearnReader(r io.Reader) (err error) {
	defer errors.Recover(&err, "LinearRegression.LoadFromSKLearnReader")

	skModel, err := model.LoadSKLearnModelFromReader(r)
	if err != nil {
		return errors.Wrap(err, "failed to load sklearn model")
	}
	params, err := model.LoadLinearRegressionParams(skModel)
	if err != nil {
		return errors.Wrap(err, "failed to load linear regression params")
	}

	lr.NFeatures = params.NFeatures
	lr.Intercept = params.Intercept
	lr.Weights = mat.NewVecDense(len(params.Coefficients), append([]float64(nil), params.Coefficients...))
	lr.FeatureNames = params.FeatureNames

	lr.State.SetFitted()
	// Sample count is not part of the envelope.
	lr.State.SetDimensions(lr.NFeatures, 0)
	return nil
}

// ExportToSKLearnWriter writes the learned parameters as scikit-learn
// compatible JSON.
func (lr *LinearRegression) ExportToSKLearnWriter(w io.Writer) (err error) {
	defer errors.Recover(&err, "LinearRegression.ExportToSKLearnWriter")
	if !lr.State.IsFitted() {
		return errors.NewNotFittedError("LinearRegression", "ExportToSKLearnWriter")
	}

	params := model.SKLearnLinearRegressionParams{
		Coefficients: lr.GetWeights(),
		Intercept:    lr.Intercept,
		NFeatures:    lr.NFeatures,
		FeatureNames: lr.FeatureNames,
	}
	return model.ExportSKLearnModel("LinearRegression", params, w)
}

func checkFinite(op string, m mat.Matrix) error {
	r, c := m.Dims()
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			v := m.At(i, j)
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return errors.NewValueError(op, fmt.Sprintf("non-finite value %v at row %d, column %d", v, i, j))
			}
		}
	}
	return nil
}
