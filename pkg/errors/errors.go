// Package errors provides the error taxonomy shared by every perfindex package.
//
// Errors are built on github.com/cockroachdb/errors so that they carry stack
// traces when printed with %+v, while still working with the standard
// errors.Is / errors.As helpers:
//
//   - Sentinel errors (ErrEmptyData, ErrSingularMatrix, ...) for errors.Is checks
//   - Typed errors (ModelError, DimensionError, ValueError, NotFittedError,
//     ValidationError) for errors.As checks
//   - Recover, which turns a panic raised inside gonum into a returned error
//
// Example usage:
//
//	func (lr *LinearRegression) Fit(X, y mat.Matrix) (err error) {
//		defer errors.Recover(&err, "LinearRegression.Fit")
//		if r == 0 {
//			return errors.NewModelError("LinearRegression.Fit", "empty data", errors.ErrEmptyData)
//		}
//		...
//	}
package errors

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// Sentinel errors.
var (
	ErrEmptyData         = errors.New("empty data")
	ErrSingularMatrix    = errors.New("singular matrix")
	ErrNotFitted         = errors.New("model is not fitted")
	ErrDimensionMismatch = errors.New("dimension mismatch")
	ErrUnknownCategory   = errors.New("unknown category")
	ErrSchema            = errors.New("schema mismatch")
	ErrNotImplemented    = errors.New("not implemented")
)

// Re-exports so callers need a single errors import.
var (
	New    = errors.New
	Newf   = errors.Newf
	Wrap   = errors.Wrap
	Wrapf  = errors.Wrapf
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
)

// ModelError reports a failure inside a model operation.
type ModelError struct {
	Op   string
	Kind string
	Err  error
}

// NewModelError creates a ModelError with a stack trace attached.
func NewModelError(op, kind string, err error) error {
	return errors.WithStack(&ModelError{Op: op, Kind: kind, Err: err})
}

func (e *ModelError) Error() string {
	return fmt.Sprintf("perfindex: %s: %s: %v", e.Op, e.Kind, e.Err)
}

func (e *ModelError) Unwrap() error { return e.Err }

// DimensionError reports a shape mismatch along Axis (0 = rows, 1 = columns).
type DimensionError struct {
	Op       string
	Expected int
	Got      int
	Axis     int
}

// NewDimensionError creates a DimensionError.
func NewDimensionError(op string, expected, got, axis int) error {
	return errors.WithStack(&DimensionError{Op: op, Expected: expected, Got: got, Axis: axis})
}

func (e *DimensionError) Error() string {
	axis := "rows"
	if e.Axis == 1 {
		axis = "columns"
	}
	return fmt.Sprintf("perfindex: %s: dimension mismatch on %s: expected %d, got %d", e.Op, axis, e.Expected, e.Got)
}

func (e *DimensionError) Unwrap() error { return ErrDimensionMismatch }

// ValueError reports an invalid argument value.
type ValueError struct {
	Op      string
	Message string
	Err     error
}

// NewValueError creates a ValueError.
func NewValueError(op, message string) error {
	return errors.WithStack(&ValueError{Op: op, Message: message})
}

// NewValueErrorWrap creates a ValueError that wraps a sentinel.
func NewValueErrorWrap(op, message string, err error) error {
	return errors.WithStack(&ValueError{Op: op, Message: message, Err: err})
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("perfindex: %s: %s", e.Op, e.Message)
}

func (e *ValueError) Unwrap() error { return e.Err }

// NotFittedError is returned when a model is used before Fit.
type NotFittedError struct {
	ModelName string
	Method    string
}

// NewNotFittedError creates a NotFittedError.
func NewNotFittedError(modelName, method string) error {
	return errors.WithStack(&NotFittedError{ModelName: modelName, Method: method})
}

func (e *NotFittedError) Error() string {
	return fmt.Sprintf("perfindex: %s: this instance is not fitted yet, call Fit before %s", e.ModelName, e.Method)
}

func (e *NotFittedError) Unwrap() error { return ErrNotFitted }

// ValidationError reports a rejected user-facing parameter.
type ValidationError struct {
	Param  string
	Reason string
	Value  interface{}
}

// NewValidationError creates a ValidationError.
func NewValidationError(param, reason string, value interface{}) error {
	return errors.WithStack(&ValidationError{Param: param, Reason: reason, Value: value})
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("perfindex: invalid %s %v: %s", e.Param, e.Value, e.Reason)
}

// Recover converts a panic into an error assigned to *err. It must be deferred.
func Recover(err *error, op string) {
	r := recover()
	if r == nil {
		return
	}
	switch v := r.(type) {
	case error:
		*err = errors.Wrapf(v, "%s: recovered from panic", op)
	default:
		*err = errors.Newf("%s: recovered from panic: %v", op, v)
	}
}
