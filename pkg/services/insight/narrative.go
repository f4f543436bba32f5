package insight

import (
	"context"
	"fmt"
	"strings"

	"github.com/de-tools/data-brief/pkg/models/domain"
	chartsvc "github.com/de-tools/data-brief/pkg/services/chart"
)

// LocalNarrative produces deterministic prose from the parsed series,
// used when no language model is configured and as the fallback when
// one fails.
type LocalNarrative struct{}

func (LocalNarrative) Narrate(_ context.Context, query string, points []domain.SeriesPoint, unit string) (string, []string, error) {
	if len(points) == 0 {
		return fmt.Sprintf("I looked at %q but had no data to analyze. Attach a delimited file to get a numeric breakdown.", strings.TrimSpace(query)),
			[]string{"Attach a CSV and ask again"}, nil
	}

	minPoint, maxPoint := points[0], points[0]
	total := 0.0
	for _, p := range points {
		if p.Value < minPoint.Value {
			minPoint = p
		}
		if p.Value > maxPoint.Value {
			maxPoint = p
		}
		total += p.Value
	}
	avg := total / float64(len(points))

	summary := fmt.Sprintf("Across %d entries, values range from %s (%s) to %s (%s), totaling %s with an average of %s.",
		len(points),
		chartsvc.FormatValue(minPoint.Value, unit), minPoint.Name,
		chartsvc.FormatValue(maxPoint.Value, unit), maxPoint.Name,
		chartsvc.FormatValue(total, unit),
		chartsvc.FormatValue(avg, unit))

	suggestions := []string{
		fmt.Sprintf("What drove the peak in %s?", maxPoint.Name),
		fmt.Sprintf("Show the share of %s as a breakdown", minPoint.Name),
		"Show the trend over time",
	}
	return summary, suggestions, nil
}

func (LocalNarrative) Report(_ context.Context, transcript string) (domain.SessionReport, error) {
	lines := strings.Split(strings.TrimSpace(transcript), "\n")

	title := "Session Briefing"
	var findings []string
	for _, line := range lines {
		role, content, ok := strings.Cut(line, ": ")
		if !ok {
			continue
		}
		switch domain.Role(role) {
		case domain.RoleUser:
			if title == "Session Briefing" && content != "" {
				title = titleFromQuery(content)
			}
		case domain.RoleAssistant:
			if len(findings) < 5 && content != "" {
				findings = append(findings, truncate(content))
			}
		}
	}

	return domain.SessionReport{
		Title:       title,
		KeyFindings: findings,
		Suggestions: []string{
			"Validate the findings against the source data",
			"Schedule a follow-up analysis next quarter",
		},
	}, nil
}

func truncate(s string) string {
	if len(s) > 160 {
		return s[:157] + "..."
	}
	return s
}
