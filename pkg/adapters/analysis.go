package adapters

import (
	"github.com/de-tools/data-brief/pkg/models/api"
	"github.com/de-tools/data-brief/pkg/models/domain"
)

// MapApiAnalysisResultToDomain normalizes a service payload into the
// canonical domain result. Unknown chart types fall back to bar, which
// mirrors how the rendering side treats anything it does not recognize.
func MapApiAnalysisResultToDomain(res api.AnalysisResult) domain.AnalysisResult {
	points := make([]domain.SeriesPoint, 0, len(res.Data))
	for _, p := range res.Data {
		points = append(points, domain.SeriesPoint{Name: p.Name, Value: p.Value})
	}

	return domain.AnalysisResult{
		Summary:     res.Summary,
		Title:       res.Title,
		ChartType:   mapChartType(res.ChartType),
		Unit:        res.Unit,
		Data:        points,
		Suggestions: append([]string{}, res.Suggestions...),
	}
}

func MapDomainAnalysisResultToApi(res domain.AnalysisResult) api.AnalysisResult {
	points := make([]api.SeriesPoint, 0, len(res.Data))
	for _, p := range res.Data {
		points = append(points, api.SeriesPoint{Name: p.Name, Value: p.Value})
	}

	return api.AnalysisResult{
		Summary:     res.Summary,
		Title:       res.Title,
		ChartType:   string(res.ChartType),
		Unit:        res.Unit,
		Data:        points,
		Suggestions: res.Suggestions,
	}
}

func mapChartType(t string) domain.ChartType {
	switch domain.ChartType(t) {
	case domain.ChartTypeLine:
		return domain.ChartTypeLine
	case domain.ChartTypePie:
		return domain.ChartTypePie
	default:
		return domain.ChartTypeBar
	}
}
