package insight

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"

	"github.com/de-tools/data-brief/pkg/models/domain"
	"github.com/rs/zerolog"
)

const maxSeriesPoints = 12

// Analyzer is the analysis brain of the reference service: it turns a
// query plus an optional delimited attachment into an AnalysisResult,
// and a session log into an executive report.
type Analyzer interface {
	Analyze(ctx context.Context, query string, attachment []byte, needsChart bool) (domain.AnalysisResult, error)
	Summarize(ctx context.Context, entries []domain.HistoryEntry) (domain.SessionReport, error)
}

type analyzer struct {
	narrative Narrative
}

// Narrative produces the prose parts of a result. The OpenAI-backed
// implementation is used when a key is configured; the local one is
// fully deterministic.
type Narrative interface {
	Narrate(ctx context.Context, query string, points []domain.SeriesPoint, unit string) (summary string, suggestions []string, err error)
	Report(ctx context.Context, transcript string) (domain.SessionReport, error)
}

func NewAnalyzer(narrative Narrative) Analyzer {
	if narrative == nil {
		narrative = LocalNarrative{}
	}
	return &analyzer{narrative: narrative}
}

func (a *analyzer) Analyze(ctx context.Context, query string, attachment []byte, needsChart bool) (domain.AnalysisResult, error) {
	logger := zerolog.Ctx(ctx)

	var points []domain.SeriesPoint
	var unit string

	if len(attachment) > 0 {
		var err error
		points, unit, err = ParseSeries(attachment)
		if err != nil {
			return domain.AnalysisResult{}, fmt.Errorf("could not parse the attached file: %w", err)
		}
	}

	if needsChart && len(points) == 0 {
		return domain.AnalysisResult{}, fmt.Errorf("a chart needs a tabular attachment to draw from")
	}

	summary, suggestions, err := a.narrative.Narrate(ctx, query, points, unit)
	if err != nil {
		logger.Warn().Err(err).Msg("narrative generation failed, falling back to local narrative")
		summary, suggestions, _ = LocalNarrative{}.Narrate(ctx, query, points, unit)
	}

	result := domain.AnalysisResult{
		Summary:     summary,
		Title:       titleFromQuery(query),
		Suggestions: suggestions,
	}
	if needsChart {
		result.ChartType = chartTypeFromQuery(query)
		result.Unit = unit
		result.Data = points
	}
	return result, nil
}

func (a *analyzer) Summarize(ctx context.Context, entries []domain.HistoryEntry) (domain.SessionReport, error) {
	logger := zerolog.Ctx(ctx)

	if len(entries) == 0 {
		return domain.SessionReport{}, fmt.Errorf("no history")
	}

	var transcript strings.Builder
	for _, e := range entries {
		transcript.WriteString(string(e.Role))
		transcript.WriteString(": ")
		transcript.WriteString(e.Content)
		transcript.WriteString("\n")
	}

	report, err := a.narrative.Report(ctx, transcript.String())
	if err != nil {
		logger.Warn().Err(err).Msg("report generation failed, falling back to local report")
		return LocalNarrative{}.Report(ctx, transcript.String())
	}
	return report, nil
}

// ParseSeries extracts a chartable series from delimited text: the
// first mostly-textual column provides names, the first mostly-numeric
// column provides values, capped at 12 points. A currency hint in the
// value column's header becomes the unit.
func ParseSeries(data []byte) ([]domain.SeriesPoint, string, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, "", fmt.Errorf("invalid delimited text: %w", err)
	}
	if len(records) < 2 {
		return nil, "", fmt.Errorf("attachment has no data rows")
	}

	header, rows := records[0], records[1:]

	nameCol, valueCol := -1, -1
	for col := range header {
		numeric := true
		for _, row := range rows {
			if col >= len(row) {
				continue
			}
			if _, err := parseNumber(row[col]); err != nil {
				numeric = false
				break
			}
		}
		if numeric && valueCol == -1 {
			valueCol = col
		}
		if !numeric && nameCol == -1 {
			nameCol = col
		}
	}
	if valueCol == -1 {
		return nil, "", fmt.Errorf("attachment has no numeric column")
	}

	points := make([]domain.SeriesPoint, 0, maxSeriesPoints)
	for i, row := range rows {
		if i == maxSeriesPoints {
			break
		}
		if valueCol >= len(row) {
			continue
		}
		value, err := parseNumber(row[valueCol])
		if err != nil {
			continue
		}
		name := fmt.Sprintf("Row %d", i+1)
		if nameCol != -1 && nameCol < len(row) {
			name = row[nameCol]
		}
		points = append(points, domain.SeriesPoint{Name: name, Value: value})
	}
	if len(points) == 0 {
		return nil, "", fmt.Errorf("attachment has no usable rows")
	}

	return points, unitFromHeader(header[valueCol]), nil
}

func parseNumber(s string) (float64, error) {
	cleaned := strings.TrimSpace(s)
	cleaned = strings.TrimPrefix(cleaned, "$")
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	if cleaned == "" {
		return 0, fmt.Errorf("empty value")
	}
	return strconv.ParseFloat(cleaned, 64)
}

func unitFromHeader(header string) string {
	h := strings.ToLower(header)
	for _, hint := range []string{"revenue", "sales", "price", "cost", "amount", "spend", "profit", "$"} {
		if strings.Contains(h, hint) {
			return "$"
		}
	}
	return ""
}

func chartTypeFromQuery(query string) domain.ChartType {
	q := strings.ToLower(query)
	for _, hint := range []string{"trend", "over time", "growth", "timeline"} {
		if strings.Contains(q, hint) {
			return domain.ChartTypeLine
		}
	}
	for _, hint := range []string{"share", "breakdown", "distribution", "proportion", "split"} {
		if strings.Contains(q, hint) {
			return domain.ChartTypePie
		}
	}
	return domain.ChartTypeBar
}

func titleFromQuery(query string) string {
	title := strings.TrimSpace(query)
	if len(title) > 60 {
		title = title[:57] + "..."
	}
	return title
}
