// Package preprocessing turns raw dataset cells into model features.
//
// BinaryEncoder maps a two-valued categorical column onto {1, 0}. The mapping
// is one-directional; there is no inverse transform.
//
//	enc := preprocessing.NewYesNoEncoder()
//	enc.Encode("Yes")   // 1
//	enc.Encode("No")    // 0
//	enc.Encode("Maybe") // NaN
package preprocessing

import (
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/mat"

	"github.com/ezoic/perfindex/pkg/errors"
)

// BinaryEncoder maps Positive to 1 and Negative to 0.
type BinaryEncoder struct {
	Positive string
	Negative string
	// TrimSpace strips surrounding whitespace before matching. Matching is
	// otherwise exact and case sensitive.
	TrimSpace bool
}

// NewYesNoEncoder returns the encoder for "Yes"/"No" columns.
func NewYesNoEncoder() *BinaryEncoder {
	return &BinaryEncoder{Positive: "Yes", Negative: "No", TrimSpace: true}
}

// Categories returns the accepted values, positive first.
func (e *BinaryEncoder) Categories() []string {
	return []string{e.Positive, e.Negative}
}

// Encode returns 1 for Positive, 0 for Negative and NaN for anything else.
// NaN is the missing value; callers that must not see it use EncodeStrict.
func (e *BinaryEncoder) Encode(v string) float64 {
	if e.TrimSpace {
		v = strings.TrimSpace(v)
	}
	switch v {
	case e.Positive:
		return 1
	case e.Negative:
		return 0
	default:
		return math.NaN()
	}
}

// EncodeStrict is Encode but rejects unknown values with ErrUnknownCategory.
func (e *BinaryEncoder) EncodeStrict(v string) (float64, error) {
	x := e.Encode(v)
	if math.IsNaN(x) {
		return 0, errors.NewValueErrorWrap("BinaryEncoder.EncodeStrict",
			fmt.Sprintf("unknown category %q, want %q or %q", v, e.Positive, e.Negative),
			errors.ErrUnknownCategory)
	}
	return x, nil
}

// Transform strictly encodes a column. The error names the first offending row.
func (e *BinaryEncoder) Transform(values []string) (*mat.VecDense, error) {
	if len(values) == 0 {
		return nil, errors.NewModelError("BinaryEncoder.Transform", "empty data", errors.ErrEmptyData)
	}
	out := mat.NewVecDense(len(values), nil)
	for i, v := range values {
		x, err := e.EncodeStrict(v)
		if err != nil {
			return nil, errors.Wrapf(err, "row %d", i)
		}
		out.SetVec(i, x)
	}
	return out, nil
}
