package render

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"
	"text/template"

	"github.com/de-tools/data-brief/pkg/models/domain"
	chartsvc "github.com/de-tools/data-brief/pkg/services/chart"
	"github.com/de-tools/data-brief/pkg/services/effects"
)

const barWidth = 40

// Renderer writes results, history and reports to the console in a
// formatted text form.
type Renderer struct {
	writer io.Writer
}

func NewRenderer(writer io.Writer) *Renderer {
	if writer == nil {
		writer = os.Stdout
	}
	return &Renderer{writer: writer}
}

type resultView struct {
	Title       string
	Summary     string
	Factor      int
	Rows        []rowView
	Suggestions []string
}

type rowView struct {
	Name     string
	Bar      string
	Value    string
	Original string
}

// Result prints the current analysis card: title, the (possibly
// simulated) series as horizontal bars, the summary and the suggested
// follow-ups.
func (r *Renderer) Result(model *chartsvc.Model) error {
	result := model.Result()
	if result == nil {
		return nil
	}

	view := resultView{
		Title:       result.Title,
		Summary:     result.Summary,
		Factor:      model.Factor(),
		Suggestions: result.Suggestions,
	}

	points := model.SimulatedSeries()
	maxAbs := 0.0
	for _, p := range points {
		if abs := math.Abs(p.Value); abs > maxAbs {
			maxAbs = abs
		}
	}
	for _, p := range points {
		width := 0
		if maxAbs > 0 {
			width = int(math.Abs(p.Value) / maxAbs * barWidth)
		}
		row := rowView{
			Name:  p.Name,
			Bar:   strings.Repeat("█", width),
			Value: model.FormatValue(p.Value),
		}
		if model.Factor() != 0 {
			row.Original = model.FormatValue(p.Original)
		}
		view.Rows = append(view.Rows, row)
	}

	tmpl := `
{{.Title}}
{{if ne .Factor 0}}[simulation: {{printf "%+d" .Factor}}% impact]
{{end}}{{range .Rows}}{{formatRow .}}
{{end}}{{.Summary}}
{{if .Suggestions}}
Follow-ups:
{{range $i, $s := .Suggestions}}  [{{$i}}] {{$s}}
{{end}}{{end}}`

	funcMap := template.FuncMap{
		"formatRow": func(row rowView) string {
			line := fmt.Sprintf("  %-12s %-*s %s", row.Name, barWidth, row.Bar, row.Value)
			if row.Original != "" {
				line += fmt.Sprintf(" (was %s)", row.Original)
			}
			return line
		},
	}

	t, err := template.New("result").Funcs(funcMap).Parse(tmpl)
	if err != nil {
		return fmt.Errorf("failed to parse result template: %w", err)
	}
	return t.Execute(r.writer, view)
}

// History prints the exchange log.
func (r *Renderer) History(entries []domain.HistoryEntry) error {
	tmpl := `
{{- if not . }}No history yet.
{{- else }}
{{- range . }}
[{{ .Role }}] {{ .Content }}
{{- end }}
{{- end }}
`
	t, err := template.New("history").Parse(tmpl)
	if err != nil {
		return fmt.Errorf("failed to parse history template: %w", err)
	}
	return t.Execute(r.writer, entries)
}

// Report prints the executive briefing.
func (r *Renderer) Report(report domain.SessionReport) error {
	tmpl := `
=== Executive Briefing: {{.Title}} ===

KEY INSIGHTS
{{- range .KeyFindings }}
  • {{ . }}
{{- end }}

STRATEGIC MOVES
{{- range .Suggestions }}
  ➜ {{ . }}
{{- end }}
`
	t, err := template.New("report").Parse(tmpl)
	if err != nil {
		return fmt.Errorf("failed to parse report template: %w", err)
	}
	return t.Execute(r.writer, report)
}

// Notice surfaces a single user-visible message.
func (r *Renderer) Notice(message string) {
	fmt.Fprintf(r.writer, "! %s\n", message)
}

// Confetti draws one decorative emission.
func (r *Renderer) Confetti(e effects.Emission) {
	if e.Particles <= 0 {
		return
	}
	fmt.Fprintln(r.writer, strings.Repeat("*", e.Particles/5+1))
}
