package dataset

// Source column names as they appear in the CSV header.
const (
	SourceHoursStudied   = "Hours Studied"
	SourcePreviousScores = "Previous Scores"
	SourceActivities     = "Extracurricular Activities"
	SourceSleepHours     = "Sleep Hours"
	SourcePracticePapers = "Sample Question Papers Practiced"
	SourcePerformance    = "Performance Index"
)

// Internal short labels.
const (
	ColHoursStudied   = "HS"
	ColPreviousScores = "Scores"
	ColActivities     = "Activities"
	ColSleepHours     = "Sleep"
	ColPracticePapers = "Papers"
	ColPerformance    = "Performance"
)

// Column pairs a source header with its internal label.
type Column struct {
	Source string
	Name   string
}

// Schema lists the six columns in model order; the target comes last.
var Schema = []Column{
	{Source: SourceHoursStudied, Name: ColHoursStudied},
	{Source: SourcePreviousScores, Name: ColPreviousScores},
	{Source: SourceActivities, Name: ColActivities},
	{Source: SourceSleepHours, Name: ColSleepHours},
	{Source: SourcePracticePapers, Name: ColPracticePapers},
	{Source: SourcePerformance, Name: ColPerformance},
}

// FeatureNames are the internal labels of the five model inputs, in the
// column order of Dataset.Features.
var FeatureNames = []string{
	ColHoursStudied,
	ColPreviousScores,
	ColActivities,
	ColSleepHours,
	ColPracticePapers,
}

// TargetName is the internal label of the regression target.
const TargetName = ColPerformance
