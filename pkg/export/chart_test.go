package export

import (
	"testing"

	"github.com/de-tools/data-brief/pkg/models/domain"
	chartsvc "github.com/de-tools/data-brief/pkg/services/chart"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngMagic = []byte{0x89, 'P', 'N', 'G'}

func modelWith(chartType domain.ChartType) *chartsvc.Model {
	m := chartsvc.NewModel()
	m.Ingest(domain.AnalysisResult{
		Summary:   "Revenue grew 12%",
		Title:     "Q1 Revenue",
		ChartType: chartType,
		Unit:      "$",
		Data: []domain.SeriesPoint{
			{Name: "Jan", Value: 1000},
			{Name: "Feb", Value: 1200},
			{Name: "Mar", Value: 900},
		},
	})
	return m
}

func TestChartPNG_RendersEachChartType(t *testing.T) {
	for _, chartType := range []domain.ChartType{
		domain.ChartTypeBar,
		domain.ChartTypeLine,
		domain.ChartTypePie,
	} {
		t.Run(string(chartType), func(t *testing.T) {
			img, err := ChartPNG(modelWith(chartType))

			require.NoError(t, err)
			require.Greater(t, len(img), 4)
			assert.Equal(t, pngMagic, img[:4])
		})
	}
}

func TestChartPNG_ReflectsSimulationFactor(t *testing.T) {
	m := modelWith(domain.ChartTypeBar)

	baseline, err := ChartPNG(m)
	require.NoError(t, err)

	m.SetFactor(25)
	adjusted, err := ChartPNG(m)
	require.NoError(t, err)

	assert.NotEqual(t, baseline, adjusted, "capture reflects the active what-if view")
}

func TestChartPNG_NoChartRendered(t *testing.T) {
	m := chartsvc.NewModel()

	_, err := ChartPNG(m)
	assert.ErrorIs(t, err, ErrNoChart)

	m.Ingest(domain.AnalysisResult{Summary: "text only", Title: "Analysis Result"})
	_, err = ChartPNG(m)
	assert.ErrorIs(t, err, ErrNoChart)
}
