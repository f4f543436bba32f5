package api

// AnalysisResult is the wire shape returned by POST /analyze.
// A service-reported failure comes back as {"error": "..."} instead;
// see Envelope.
type AnalysisResult struct {
	Summary     string        `json:"summary"`
	Title       string        `json:"title,omitempty"`
	ChartType   string        `json:"chart_type,omitempty"`
	Unit        string        `json:"unit,omitempty"`
	Data        []SeriesPoint `json:"data,omitempty"`
	Suggestions []string      `json:"suggestions,omitempty"`
}

type SeriesPoint struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

type HistoryEntry struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// SessionReport is the wire shape returned by GET /summary.
type SessionReport struct {
	Title       string   `json:"title"`
	KeyFindings []string `json:"key_findings"`
	Suggestions []string `json:"suggestions"`
}

// Envelope captures the error field every service endpoint may carry
// alongside or instead of its payload.
type Envelope struct {
	Error string `json:"error,omitempty"`
}

// Ack is the acknowledgement returned by POST /reset.
type Ack struct {
	Message string `json:"message"`
}
