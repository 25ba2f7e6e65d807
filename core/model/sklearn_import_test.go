package model_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ezoic/perfindex/core/model"
)

func TestExportThenLoadLinearRegressionParams(t *testing.T) {
	var buf bytes.Buffer
	params := model.SKLearnLinearRegressionParams{
		Coefficients: []float64{2.85, 1.02, 0.61, 0.48, 0.19},
		Intercept:    -34.07,
		NFeatures:    5,
		FeatureNames: []string{"HS", "Scores", "Activities", "Sleep", "Papers"},
	}
	require.NoError(t, model.ExportSKLearnModel("LinearRegression", params, &buf))

	m, err := model.LoadSKLearnModelFromReader(&buf)
	require.NoError(t, err)
	assert.Equal(t, "LinearRegression", m.ModelSpec.Name)

	got, err := model.LoadLinearRegressionParams(m)
	require.NoError(t, err)
	assert.Equal(t, params, *got)
}

func TestLoadSKLearnModelFromReader_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not json", `{`},
		{"missing version", `{"model_spec":{"name":"LinearRegression"},"params":{}}`},
		{"bad version", `{"model_spec":{"name":"LinearRegression","format_version":"2.0"},"params":{}}`},
		{"missing name", `{"model_spec":{"format_version":"1.0"},"params":{}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := model.LoadSKLearnModelFromReader(strings.NewReader(tt.body))
			assert.Error(t, err)
		})
	}
}

func TestLoadLinearRegressionParams_Mismatch(t *testing.T) {
	m, err := model.LoadSKLearnModelFromReader(strings.NewReader(
		`{"model_spec":{"name":"LinearRegression","format_version":"1.0"},"params":{"coefficients":[1,2],"intercept":0,"n_features":3}}`))
	require.NoError(t, err)

	_, err = model.LoadLinearRegressionParams(m)
	assert.ErrorContains(t, err, "n_features (3) does not match coefficients length (2)")
}

func TestStateManager(t *testing.T) {
	s := model.NewStateManager()
	assert.False(t, s.IsFitted())

	s.SetFitted()
	s.SetDimensions(5, 8000)
	assert.True(t, s.IsFitted())
	f, n := s.Dimensions()
	assert.Equal(t, 5, f)
	assert.Equal(t, 8000, n)

	s.Reset()
	assert.False(t, s.IsFitted())
}
