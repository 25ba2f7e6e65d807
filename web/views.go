package web

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/a-h/templ"

	"github.com/ezoic/perfindex/dataset"
	"github.com/ezoic/perfindex/form"
	"github.com/ezoic/perfindex/pipeline"
)

const (
	pageTitle       = "Student Performance Prediction"
	pageDescription = "This application uses a linear regression model to predict student performance from a few study habits. Fill in the form in the sidebar and press Predict to try the model."
)

// PageData is everything the index page shows.
type PageData struct {
	Input      form.Input
	Prediction *float64
	Evaluation pipeline.Evaluation
	Columns    []string
	Rows       []dataset.Record
	Error      string
}

const pageStyle = `
body { margin: 0; font-family: sans-serif; display: flex; }
.sidebar { background-color: #f4f4f4; padding: 1.5rem; min-width: 18rem; min-height: 100vh; box-sizing: border-box; }
.sidebar label { display: block; margin-top: 1rem; font-size: 0.9rem; }
.sidebar input[type=number] { width: 100%; box-sizing: border-box; }
.main { padding: 1.5rem 2rem; flex: 1; }
button { background-color: #4CAF50; color: white; border: none; padding: 0.6rem 1.4rem; margin-top: 1.5rem; cursor: pointer; }
.success { background-color: #e8f5e9; color: #1b5e20; padding: 0.8rem; border-radius: 4px; }
.error { background-color: #fdecea; color: #b71c1c; padding: 0.8rem; border-radius: 4px; }
table { border-collapse: collapse; font-size: 0.85rem; }
th, td { border: 1px solid #ddd; padding: 0.2rem 0.6rem; text-align: right; }
.table-wrap { max-height: 30rem; overflow-y: auto; }
`

// IndexPage renders the form, the optional prediction, the metrics and the
// dataset table.
func IndexPage(data PageData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w,
			"<!DOCTYPE html><html lang=\"en\"><head><meta charset=\"utf-8\"><title>%s</title><style>%s</style></head><body>",
			templ.EscapeString(pageTitle), pageStyle); err != nil {
			return err
		}
		if err := sidebar(data.Input).Render(ctx, w); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "<main class=\"main\"><h1>%s</h1><p>%s</p>",
			templ.EscapeString(pageTitle), templ.EscapeString(pageDescription)); err != nil {
			return err
		}
		if data.Error != "" {
			if _, err := fmt.Fprintf(w, "<div class=\"error\">%s</div>", templ.EscapeString(data.Error)); err != nil {
				return err
			}
		}
		if data.Prediction != nil {
			if err := predictionMessage(*data.Prediction).Render(ctx, w); err != nil {
				return err
			}
		}
		if err := evaluationBlock(data.Evaluation).Render(ctx, w); err != nil {
			return err
		}
		if err := datasetTable(data.Columns, data.Rows).Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, "</main></body></html>")
		return err
	})
}

func sidebar(in form.Input) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, "<aside class=\"sidebar\"><h2>Input parameters</h2><form method=\"post\" action=\"/predict\">"); err != nil {
			return err
		}
		for _, f := range form.Fields {
			if err := field(f, in.Value(f.Name)).Render(ctx, w); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, "<button type=\"submit\">Predict</button></form></aside>")
		return err
	})
}

func field(f form.Field, value string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		name := templ.EscapeString(f.Name)
		if f.Kind == form.KindChoice {
			if _, err := fmt.Fprintf(w, "<fieldset><legend>%s</legend>", templ.EscapeString(f.Label)); err != nil {
				return err
			}
			for _, opt := range f.Options {
				checked := ""
				if opt == value {
					checked = " checked"
				}
				o := templ.EscapeString(opt)
				if _, err := fmt.Fprintf(w, "<label><input type=\"radio\" name=\"%s\" value=\"%s\"%s> %s</label>",
					name, o, checked, o); err != nil {
					return err
				}
			}
			_, err := io.WriteString(w, "</fieldset>")
			return err
		}
		_, err := fmt.Fprintf(w,
			"<label for=\"%s\">%s</label><input type=\"number\" id=\"%s\" name=\"%s\" min=\"%s\" max=\"%s\" step=\"%s\" value=\"%s\">",
			name, templ.EscapeString(f.Label), name, name,
			formatBound(f.Min), formatBound(f.Max), formatBound(f.Step), templ.EscapeString(value))
		return err
	})
}

func predictionMessage(v float64) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w, "<div class=\"success\">Predicted performance index: <strong>%s</strong></div>", FormatScore(v))
		return err
	})
}

func evaluationBlock(ev pipeline.Evaluation) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w,
			"<h2>Model evaluation</h2><p>Mean squared error (MSE): %s</p><p>Coefficient of determination (R²): %s</p><img src=\"/plot.png\" alt=\"Actual vs predicted\" width=\"480\">",
			FormatScore(ev.MSE), FormatScore(ev.R2))
		return err
	})
}

func datasetTable(columns []string, rows []dataset.Record) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, "<h2>Dataset</h2><div class=\"table-wrap\"><table><thead><tr>"); err != nil {
			return err
		}
		for _, c := range columns {
			if _, err := fmt.Fprintf(w, "<th>%s</th>", templ.EscapeString(c)); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, "</tr></thead><tbody>"); err != nil {
			return err
		}
		for _, r := range rows {
			if _, err := fmt.Fprintf(w, "<tr><td>%g</td><td>%g</td><td>%d</td><td>%g</td><td>%d</td><td>%g</td></tr>",
				r.HoursStudied, r.PreviousScores, r.Activities, r.SleepHours, r.PracticePapers, r.Performance); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, "</tbody></table></div>")
		return err
	})
}

// FormatScore formats a metric or prediction with two decimals.
func FormatScore(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func formatBound(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
