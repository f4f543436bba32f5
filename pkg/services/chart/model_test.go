package chart

import (
	"testing"

	"github.com/de-tools/data-brief/pkg/models/domain"
	"github.com/stretchr/testify/assert"
)

func revenueResult() domain.AnalysisResult {
	return domain.AnalysisResult{
		Summary:   "Revenue grew 12%",
		Title:     "Q1 Revenue",
		ChartType: domain.ChartTypeBar,
		Unit:      "$",
		Data: []domain.SeriesPoint{
			{Name: "Jan", Value: 1000},
			{Name: "Feb", Value: 1200},
		},
		Suggestions: []string{"Compare to Q4"},
	}
}

func TestModel_IngestResetsFactor(t *testing.T) {
	m := NewModel()
	m.Ingest(revenueResult())
	m.SetFactor(25)

	m.Ingest(revenueResult())

	assert.Equal(t, 0, m.Factor())
}

func TestModel_SimulatedSeriesFollowsFactor(t *testing.T) {
	m := NewModel()
	m.Ingest(revenueResult())

	m.SetFactor(10)
	simulated := m.SimulatedSeries()

	assert.Equal(t, 1100.0, simulated[0].Value)
	assert.Equal(t, 1320.0, simulated[1].Value)
	assert.Equal(t, 1000.0, simulated[0].Original)

	m.SetFactor(0)
	simulated = m.SimulatedSeries()
	assert.Equal(t, 1000.0, simulated[0].Value)
	assert.Equal(t, 1200.0, simulated[1].Value)
}

func TestModel_SetFactorClampsToRange(t *testing.T) {
	m := NewModel()
	m.Ingest(revenueResult())

	m.SetFactor(200)
	assert.Equal(t, 50, m.Factor())

	m.SetFactor(-200)
	assert.Equal(t, -50, m.Factor())
}

func TestModel_ClearDropsResult(t *testing.T) {
	m := NewModel()
	m.Ingest(revenueResult())

	m.Clear()

	assert.Nil(t, m.Result())
	assert.False(t, m.HasChart())
	assert.Nil(t, m.SimulatedSeries())
	assert.Equal(t, 0, m.Factor())
}

func TestFormatValue(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		unit     string
		expected string
	}{
		{"currency prefix", 1000, "$", "$1000"},
		{"rupee prefix", 250, "₹", "₹250"},
		{"unit suffix", 42, "kg", "42 kg"},
		{"empty unit", 7, "", "7"},
		{"fractional", 12.5, "$", "$12.5"},
		{"negative", -300, "$", "$-300"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatValue(tt.value, tt.unit))
		})
	}
}

func TestFormatAxisLabel(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		unit     string
		expected string
	}{
		{"abbreviated currency", 1500, "$", "$1.5k"},
		{"abbreviated plain", 2000, "", "2.0k"},
		{"abbreviated suffix unit", 1260, "kg", "1.3k kg"},
		{"below threshold", 999, "$", "$999"},
		{"exactly one thousand", 1000, "", "1.0k"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatAxisLabel(tt.value, tt.unit))
		})
	}
}

func TestModel_FormatValueUsesResultUnit(t *testing.T) {
	m := NewModel()
	assert.Equal(t, "10", m.FormatValue(10))

	m.Ingest(revenueResult())
	assert.Equal(t, "$1000", m.FormatValue(1000))
	assert.Equal(t, "$1.5k", m.FormatAxisLabel(1500))
}
