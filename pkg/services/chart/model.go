package chart

import (
	"fmt"
	"strconv"

	"github.com/de-tools/data-brief/pkg/models/domain"
	"github.com/de-tools/data-brief/pkg/services/simulation"
)

// currencySymbols are rendered as a value prefix; any other unit is a
// suffix separated by a space.
var currencySymbols = map[string]bool{
	"$": true,
	"₹": true,
	"€": true,
	"£": true,
	"¥": true,
}

// Model normalizes an analysis result into the canonical series and
// exposes the what-if view of it. The simulated series is recomputed
// from the live factor on every read; only the factor itself is kept.
type Model struct {
	result *domain.AnalysisResult
	factor int
}

func NewModel() *Model {
	return &Model{}
}

// Ingest replaces the current result wholesale and resets the
// simulation factor.
func (m *Model) Ingest(result domain.AnalysisResult) {
	m.result = &result
	m.factor = 0
}

// Clear drops the current result and resets the factor.
func (m *Model) Clear() {
	m.result = nil
	m.factor = 0
}

// Result returns the current analysis result, nil when none is loaded.
func (m *Model) Result() *domain.AnalysisResult {
	return m.result
}

// HasChart reports whether a renderable series is loaded.
func (m *Model) HasChart() bool {
	return m.result.HasChart()
}

// SetFactor updates the live simulation factor, clamped to the
// supported range.
func (m *Model) SetFactor(factor int) {
	m.factor = simulation.ClampFactor(factor)
}

func (m *Model) Factor() int {
	return m.factor
}

// Series returns the canonical, unadjusted series.
func (m *Model) Series() []domain.SeriesPoint {
	if m.result == nil {
		return nil
	}
	return m.result.Data
}

// SimulatedSeries returns the what-if view of the canonical series
// under the live factor.
func (m *Model) SimulatedSeries() []domain.SimulatedPoint {
	if m.result == nil {
		return nil
	}
	return simulation.Simulate(m.result.Data, m.factor)
}

// FormatValue renders a value with the result's unit: currency symbols
// prefix the number, any other unit follows it, an empty unit yields
// the bare number.
func (m *Model) FormatValue(value float64) string {
	unit := ""
	if m.result != nil {
		unit = m.result.Unit
	}
	return FormatValue(value, unit)
}

// FormatAxisLabel renders an axis-scale label: values at or above 1000
// are abbreviated to one decimal with a "k" suffix, the unit keeping
// its usual placement.
func (m *Model) FormatAxisLabel(value float64) string {
	unit := ""
	if m.result != nil {
		unit = m.result.Unit
	}
	return FormatAxisLabel(value, unit)
}

func FormatValue(value float64, unit string) string {
	number := formatNumber(value)
	switch {
	case unit == "":
		return number
	case currencySymbols[unit]:
		return unit + number
	default:
		return number + " " + unit
	}
}

func FormatAxisLabel(value float64, unit string) string {
	number := formatNumber(value)
	if value >= 1000 {
		number = fmt.Sprintf("%.1fk", value/1000)
	}
	switch {
	case unit == "":
		return number
	case currencySymbols[unit]:
		return unit + number
	default:
		return number + " " + unit
	}
}

func formatNumber(value float64) string {
	if value == float64(int64(value)) {
		return strconv.FormatInt(int64(value), 10)
	}
	return strconv.FormatFloat(value, 'f', -1, 64)
}
