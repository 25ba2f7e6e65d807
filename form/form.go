// Package form describes the five prediction inputs, their widget bounds and
// defaults, and parses submitted values.
package form

import (
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/ezoic/perfindex/pkg/errors"
	"github.com/ezoic/perfindex/preprocessing"
)

// Form field names.
const (
	FieldHoursStudied   = "hours_studied"
	FieldPreviousScores = "previous_scores"
	FieldActivities     = "activities"
	FieldSleepHours     = "sleep_hours"
	FieldPracticePapers = "practice_papers"
)

// Kind is the widget type of a field.
type Kind int

const (
	KindNumber Kind = iota
	KindInteger
	KindChoice
)

// Field declares one input widget.
type Field struct {
	Name    string
	Label   string
	Kind    Kind
	Min     float64
	Max     float64
	Step    float64
	Default float64
	Options []string
}

var activities = preprocessing.NewYesNoEncoder()

// Fields lists the widgets in display order.
var Fields = []Field{
	{Name: FieldHoursStudied, Label: "Hours studied", Kind: KindNumber, Min: 0, Max: 24, Step: 0.01, Default: 5.0},
	{Name: FieldPreviousScores, Label: "Previous scores", Kind: KindNumber, Min: 0, Max: 100, Step: 0.01, Default: 70.0},
	{Name: FieldActivities, Label: "Takes part in extracurricular activities?", Kind: KindChoice, Options: activities.Categories()},
	{Name: FieldSleepHours, Label: "Sleep hours", Kind: KindNumber, Min: 0, Max: 24, Step: 0.01, Default: 8.0},
	{Name: FieldPracticePapers, Label: "Practice question papers", Kind: KindInteger, Min: 0, Max: 50, Step: 1, Default: 5},
}

// Input is one set of user-supplied feature values.
type Input struct {
	HoursStudied   float64 `json:"hours_studied"`
	PreviousScores float64 `json:"previous_scores"`
	Activities     string  `json:"activities"`
	SleepHours     float64 `json:"sleep_hours"`
	PracticePapers int     `json:"practice_papers"`
}

// Default returns the widget defaults. The activity choice defaults to the
// first option.
func Default() Input {
	return Input{
		HoursStudied:   5.0,
		PreviousScores: 70.0,
		Activities:     activities.Positive,
		SleepHours:     8.0,
		PracticePapers: 5,
	}
}

// Lookup returns the Field named name.
func Lookup(name string) (Field, bool) {
	for _, f := range Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Value returns the current value of field name formatted for an input
// element.
func (in Input) Value(name string) string {
	switch name {
	case FieldHoursStudied:
		return strconv.FormatFloat(in.HoursStudied, 'f', 2, 64)
	case FieldPreviousScores:
		return strconv.FormatFloat(in.PreviousScores, 'f', 2, 64)
	case FieldActivities:
		return in.Activities
	case FieldSleepHours:
		return strconv.FormatFloat(in.SleepHours, 'f', 2, 64)
	case FieldPracticePapers:
		return strconv.Itoa(in.PracticePapers)
	}
	return ""
}

// Clamp pulls every numeric value into its widget bounds.
func (in Input) Clamp() Input {
	in.HoursStudied = clamp(in.HoursStudied, FieldHoursStudied)
	in.PreviousScores = clamp(in.PreviousScores, FieldPreviousScores)
	in.SleepHours = clamp(in.SleepHours, FieldSleepHours)
	in.PracticePapers = int(clamp(float64(in.PracticePapers), FieldPracticePapers))
	return in
}

// Validate rejects inputs the widgets could never produce.
func (in Input) Validate() error {
	for name, v := range map[string]float64{
		FieldHoursStudied:   in.HoursStudied,
		FieldPreviousScores: in.PreviousScores,
		FieldSleepHours:     in.SleepHours,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return errors.NewValidationError(name, "must be a finite number", v)
		}
	}
	if _, err := activities.EncodeStrict(in.Activities); err != nil {
		return errors.NewValidationError(FieldActivities, "must be Yes or No", in.Activities)
	}
	return nil
}

// Vector returns the feature row in model column order: hours studied,
// previous scores, activities (1/0), sleep hours, practice papers.
func (in Input) Vector() ([]float64, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	act, _ := activities.EncodeStrict(in.Activities)
	return []float64{
		in.HoursStudied,
		in.PreviousScores,
		act,
		in.SleepHours,
		float64(in.PracticePapers),
	}, nil
}

// Parse reads an Input from submitted form values. Absent fields keep their
// defaults; values outside the widget bounds are clamped. Unparsable numbers
// and unknown activity choices return a ValidationError.
func Parse(values url.Values) (Input, error) {
	in := Default()

	var err error
	if in.HoursStudied, err = parseFloat(values, FieldHoursStudied, in.HoursStudied); err != nil {
		return Input{}, err
	}
	if in.PreviousScores, err = parseFloat(values, FieldPreviousScores, in.PreviousScores); err != nil {
		return Input{}, err
	}
	if in.SleepHours, err = parseFloat(values, FieldSleepHours, in.SleepHours); err != nil {
		return Input{}, err
	}
	if s := strings.TrimSpace(values.Get(FieldPracticePapers)); s != "" {
		n, perr := strconv.Atoi(s)
		if perr != nil {
			return Input{}, errors.NewValidationError(FieldPracticePapers, "must be a whole number", s)
		}
		in.PracticePapers = n
	}
	if s := strings.TrimSpace(values.Get(FieldActivities)); s != "" {
		in.Activities = s
	}

	in = in.Clamp()
	if err := in.Validate(); err != nil {
		return Input{}, err
	}
	return in, nil
}

func parseFloat(values url.Values, name string, def float64) (float64, error) {
	s := strings.TrimSpace(values.Get(name))
	if s == "" {
		return def, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, errors.NewValidationError(name, "must be a number", s)
	}
	return v, nil
}

func clamp(v float64, name string) float64 {
	f, ok := Lookup(name)
	if !ok {
		return v
	}
	return math.Max(f.Min, math.Min(f.Max, v))
}
