// Package dataset loads the student performance CSV into memory.
//
// Load reads the file with gota, checks the header against Schema, renames
// the columns to their short labels and encodes the Activities column to
// {1, 0}. Any malformed cell fails the whole load; nothing is skipped.
package dataset

import (
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"gonum.org/v1/gonum/mat"

	"github.com/ezoic/perfindex/pkg/errors"
	"github.com/ezoic/perfindex/pkg/log"
	"github.com/ezoic/perfindex/preprocessing"
)

// DefaultPath is the dataset file read when no path is configured.
const DefaultPath = "Student_Performance.csv"

// Record is one encoded dataset row.
type Record struct {
	HoursStudied   float64
	PreviousScores float64
	Activities     int
	SleepHours     float64
	PracticePapers int
	Performance    float64
}

// Dataset is an encoded, read-only view of the CSV.
type Dataset struct {
	frame    dataframe.DataFrame
	features *mat.Dense
	target   *mat.VecDense
}

// Load opens path and parses it with LoadReader.
func Load(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open dataset %s", path)
	}
	defer func() { _ = f.Close() }()

	ds, err := LoadReader(f)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load dataset %s", path)
	}
	return ds, nil
}

// LoadReader parses CSV from r.
func LoadReader(r io.Reader) (ds *Dataset, err error) {
	defer errors.Recover(&err, "dataset.LoadReader")

	logger := log.GetLoggerWithName("dataset")
	start := time.Now()

	types := map[string]series.Type{
		SourceHoursStudied:   series.Float,
		SourcePreviousScores: series.Float,
		SourceActivities:     series.String,
		SourceSleepHours:     series.Float,
		SourcePracticePapers: series.Int,
		SourcePerformance:    series.Float,
	}
	df := dataframe.ReadCSV(r,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.WithTypes(types),
	)
	if df.Err != nil {
		return nil, errors.Wrap(df.Err, "failed to parse CSV")
	}
	if err := checkHeader(df.Names()); err != nil {
		return nil, err
	}
	if df.Nrow() == 0 {
		return nil, errors.NewModelError("dataset.LoadReader", "no data rows", errors.ErrEmptyData)
	}

	for _, c := range Schema {
		df = df.Rename(c.Name, c.Source)
	}

	activities, err := preprocessing.NewYesNoEncoder().Transform(df.Col(ColActivities).Records())
	if err != nil {
		return nil, errors.Wrapf(err, "column %q", SourceActivities)
	}
	encoded := make([]int, activities.Len())
	for i := range encoded {
		encoded[i] = int(activities.AtVec(i))
	}
	df = df.Mutate(series.New(encoded, series.Int, ColActivities))

	names := make([]string, len(Schema))
	for i, c := range Schema {
		names[i] = c.Name
	}
	df = df.Select(names)
	if df.Err != nil {
		return nil, errors.Wrap(df.Err, "failed to encode dataset")
	}

	ds = &Dataset{frame: df}
	if ds.features, ds.target, err = toMatrices(df); err != nil {
		return nil, err
	}

	logger.Info("Dataset loaded",
		log.OperationKey, log.OperationLoad,
		log.PhaseKey, log.PhaseData,
		log.SamplesKey, df.Nrow(),
		log.FeaturesKey, len(FeatureNames),
		log.DurationMsKey, time.Since(start).Milliseconds(),
	)
	return ds, nil
}

func checkHeader(got []string) error {
	want := make(map[string]bool, len(Schema))
	for _, c := range Schema {
		want[c.Source] = true
	}
	seen := make(map[string]bool, len(got))
	var extra []string
	for _, name := range got {
		if !want[name] {
			extra = append(extra, name)
		}
		seen[name] = true
	}
	var missing []string
	for _, c := range Schema {
		if !seen[c.Source] {
			missing = append(missing, c.Source)
		}
	}
	if len(missing) == 0 && len(extra) == 0 {
		return nil
	}
	sort.Strings(extra)
	return errors.NewModelError("dataset.checkHeader",
		fmt.Sprintf("missing columns [%s], unexpected columns [%s]",
			strings.Join(missing, ", "), strings.Join(extra, ", ")),
		errors.ErrSchema)
}

func toMatrices(df dataframe.DataFrame) (*mat.Dense, *mat.VecDense, error) {
	n := df.Nrow()
	features := mat.NewDense(n, len(FeatureNames), nil)
	for j, name := range FeatureNames {
		col := df.Col(name).Float()
		for i, v := range col {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, nil, malformed(name, i)
			}
			features.Set(i, j, v)
		}
	}

	target := mat.NewVecDense(n, nil)
	for i, v := range df.Col(TargetName).Float() {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, nil, malformed(TargetName, i)
		}
		target.SetVec(i, v)
	}
	return features, target, nil
}

func malformed(col string, row int) error {
	source := col
	for _, c := range Schema {
		if c.Name == col {
			source = c.Source
		}
	}
	// +2: one for the header line, one for 1-based line numbers.
	return errors.NewValueError("dataset.LoadReader",
		fmt.Sprintf("malformed or missing value in column %q on line %d", source, row+2))
}

// Len returns the number of rows.
func (d *Dataset) Len() int { return d.frame.Nrow() }

// Columns returns the internal column labels in display order.
func (d *Dataset) Columns() []string { return d.frame.Names() }

// Frame returns a copy of the encoded dataframe.
func (d *Dataset) Frame() dataframe.DataFrame { return d.frame.Copy() }

// Features returns the n×5 feature matrix, columns ordered as FeatureNames.
// The returned matrix is shared and must not be modified.
func (d *Dataset) Features() *mat.Dense { return d.features }

// Target returns the performance index vector. It must not be modified.
func (d *Dataset) Target() *mat.VecDense { return d.target }

// Records returns every row as a typed Record.
func (d *Dataset) Records() []Record {
	n := d.Len()
	out := make([]Record, n)
	for i := 0; i < n; i++ {
		out[i] = Record{
			HoursStudied:   d.features.At(i, 0),
			PreviousScores: d.features.At(i, 1),
			Activities:     int(d.features.At(i, 2)),
			SleepHours:     d.features.At(i, 3),
			PracticePapers: int(d.features.At(i, 4)),
			Performance:    d.target.AtVec(i),
		}
	}
	return out
}

// Describe returns per-column summary statistics computed by gota.
func (d *Dataset) Describe() dataframe.DataFrame { return d.frame.Describe() }
