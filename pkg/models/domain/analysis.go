package domain

type ChartType string

const (
	ChartTypeBar  ChartType = "bar"
	ChartTypeLine ChartType = "line"
	ChartTypePie  ChartType = "pie"
)

// SeriesPoint is one named numeric point of a chart series.
type SeriesPoint struct {
	Name  string
	Value float64
}

// SimulatedPoint is a series point after a what-if adjustment,
// carrying the pre-transform value.
type SimulatedPoint struct {
	Name     string
	Value    float64
	Original float64
}

// AnalysisResult is the outcome of one analysis exchange. It replaces
// the previous result wholesale; nothing is merged.
type AnalysisResult struct {
	Summary     string
	Title       string
	ChartType   ChartType
	Unit        string
	Data        []SeriesPoint
	Suggestions []string
}

// HasChart reports whether the result carries a renderable series.
func (r *AnalysisResult) HasChart() bool {
	return r != nil && len(r.Data) > 0
}
