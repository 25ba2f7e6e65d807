// Package pipeline trains the performance model once and exposes the result.
//
// Train runs load → encode → split → fit → evaluate and returns a Result.
// A Result is never modified after Train returns, so it can be shared by
// concurrent HTTP handlers without locking.
package pipeline

import (
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/ezoic/perfindex/dataset"
	"github.com/ezoic/perfindex/form"
	"github.com/ezoic/perfindex/linear"
	"github.com/ezoic/perfindex/metrics"
	"github.com/ezoic/perfindex/model_selection"
	"github.com/ezoic/perfindex/pkg/errors"
	"github.com/ezoic/perfindex/pkg/log"
)

// Evaluation holds holdout metrics.
type Evaluation struct {
	MSE       float64 `json:"mse"`
	RMSE      float64 `json:"rmse"`
	MAE       float64 `json:"mae"`
	R2        float64 `json:"r2"`
	TrainSize int     `json:"train_size"`
	TestSize  int     `json:"test_size"`
}

// Coefficient is one named model weight.
type Coefficient struct {
	Feature string  `json:"feature"`
	Weight  float64 `json:"weight"`
}

// Point pairs a holdout target with its prediction.
type Point struct {
	Actual    float64
	Predicted float64
}

// Result is the trained pipeline.
type Result struct {
	Config     Config
	Dataset    *dataset.Dataset
	Split      *model_selection.Split
	Model      *linear.LinearRegression
	Evaluation Evaluation
	TrainedAt  time.Time

	testPred *mat.VecDense
}

// Train runs the pipeline with cfg.
func Train(cfg Config) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	ds, err := dataset.Load(cfg.DataPath)
	if err != nil {
		return nil, err
	}
	return TrainDataset(cfg, ds)
}

// TrainDataset runs split → fit → evaluate on an already loaded dataset.
func TrainDataset(cfg Config, ds *dataset.Dataset) (*Result, error) {
	logger := log.GetLoggerWithName("pipeline")
	start := time.Now()

	split, err := model_selection.TrainTestSplit(ds.Features(), ds.Target(), cfg.TestSize, cfg.Seed)
	if err != nil {
		return nil, errors.Wrap(err, "split failed")
	}
	logger.Info("Dataset split",
		log.OperationKey, log.OperationSplit,
		log.SeedKey, cfg.Seed,
		"train", len(split.TrainIndex),
		"test", len(split.TestIndex),
	)

	model := linear.NewLinearRegression(linear.WithFeatureNames(dataset.FeatureNames...))
	if err := model.Fit(split.XTrain, split.YTrain); err != nil {
		return nil, errors.Wrap(err, "training failed")
	}

	res := &Result{
		Config:    cfg,
		Dataset:   ds,
		Split:     split,
		Model:     model,
		TrainedAt: time.Now(),
	}
	if err := res.evaluate(); err != nil {
		return nil, errors.Wrap(err, "evaluation failed")
	}

	logger.Info("Pipeline ready",
		log.OperationKey, log.OperationEvaluate,
		log.PhaseKey, log.PhaseEvaluation,
		"mse", res.Evaluation.MSE,
		"r2", res.Evaluation.R2,
		log.DurationMsKey, time.Since(start).Milliseconds(),
	)
	return res, nil
}

func (r *Result) evaluate() error {
	pred, err := r.Model.Predict(r.Split.XTest)
	if err != nil {
		return err
	}
	yPred, err := metrics.ColumnVector(pred)
	if err != nil {
		return err
	}
	yTrue := r.Split.YTest

	ev := Evaluation{
		TrainSize: len(r.Split.TrainIndex),
		TestSize:  len(r.Split.TestIndex),
	}
	if ev.MSE, err = metrics.MSE(yTrue, yPred); err != nil {
		return err
	}
	if ev.RMSE, err = metrics.RMSE(yTrue, yPred); err != nil {
		return err
	}
	if ev.MAE, err = metrics.MAE(yTrue, yPred); err != nil {
		return err
	}
	if ev.R2, err = metrics.R2Score(yTrue, yPred); err != nil {
		return err
	}

	r.Evaluation = ev
	r.testPred = yPred
	return nil
}

// Predict returns the performance index predicted for in.
func (r *Result) Predict(in form.Input) (float64, error) {
	x, err := in.Vector()
	if err != nil {
		return 0, err
	}
	return r.Model.PredictOne(x)
}

// Coefficients returns the named weights followed by the intercept.
func (r *Result) Coefficients() []Coefficient {
	w := r.Model.GetWeights()
	out := make([]Coefficient, 0, len(w)+1)
	for i, name := range dataset.FeatureNames {
		out = append(out, Coefficient{Feature: name, Weight: w[i]})
	}
	return append(out, Coefficient{Feature: "intercept", Weight: r.Model.GetIntercept()})
}

// TestPredictions returns the holdout targets paired with model predictions,
// in split order.
func (r *Result) TestPredictions() []Point {
	out := make([]Point, r.testPred.Len())
	for i := range out {
		out[i] = Point{Actual: r.Split.YTest.AtVec(i), Predicted: r.testPred.AtVec(i)}
	}
	return out
}
