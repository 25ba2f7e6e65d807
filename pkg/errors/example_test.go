package errors_test

import (
	"errors"
	"fmt"

	perrors "github.com/ezoic/perfindex/pkg/errors"
)

// Example_customErrorTypes shows how a dimension error survives wrapping.
func Example_customErrorTypes() {
	dimErr := perrors.NewDimensionError("LinearRegression.Predict", 5, 3, 1)

	wrappedErr := fmt.Errorf("prediction failed: %w", dimErr)

	var dimensionErr *perrors.DimensionError
	if errors.As(wrappedErr, &dimensionErr) {
		fmt.Printf("Dimension error: expected %d, got %d\n",
			dimensionErr.Expected, dimensionErr.Got)
	}
	if errors.Is(wrappedErr, perrors.ErrDimensionMismatch) {
		fmt.Println("Matches ErrDimensionMismatch")
	}

	// Output: Dimension error: expected 5, got 3
	// Matches ErrDimensionMismatch
}

// Example_errorComparison demonstrates errors.As on the typed errors.
func Example_errorComparison() {
	notFittedErr := perrors.NewNotFittedError("LinearRegression", "Predict")
	valueErr := perrors.NewValueError("BinaryEncoder.EncodeStrict", "unknown category \"Maybe\"")

	var notFitted *perrors.NotFittedError
	if errors.As(notFittedErr, &notFitted) {
		fmt.Printf("Model %s is not fitted for %s\n",
			notFitted.ModelName, notFitted.Method)
	}

	var valErr *perrors.ValueError
	if errors.As(valueErr, &valErr) {
		fmt.Printf("Value error in %s: %s\n", valErr.Op, valErr.Message)
	}

	// Output: Model LinearRegression is not fitted for Predict
	// Value error in BinaryEncoder.EncodeStrict: unknown category "Maybe"
}

// Example_errorLogging shows the message a pipeline failure produces.
func Example_errorLogging() {
	baseErr := perrors.NewModelError("LinearRegression.Fit", "singular matrix",
		perrors.ErrSingularMatrix)

	opErr := fmt.Errorf("training pipeline: %w", baseErr)

	fmt.Printf("Error: %v\n", opErr)

	// Output: Error: training pipeline: perfindex: LinearRegression.Fit: singular matrix: singular matrix
}
