package simulation

import (
	"math"
	"testing"

	"github.com/de-tools/data-brief/pkg/models/domain"
	"github.com/stretchr/testify/assert"
)

func TestSimulate_ZeroFactorIsIdentity(t *testing.T) {
	series := []domain.SeriesPoint{
		{Name: "Jan", Value: 1000},
		{Name: "Feb", Value: 1200.5},
		{Name: "Mar", Value: -300.25},
		{Name: "Apr", Value: 0},
	}

	result := Simulate(series, 0)

	assert.Len(t, result, len(series))
	for i, p := range result {
		assert.Equal(t, series[i].Name, p.Name)
		assert.Equal(t, series[i].Value, p.Value)
		assert.Equal(t, series[i].Value, p.Original)
	}
}

func TestSimulate_AppliesRoundedPercentage(t *testing.T) {
	series := []domain.SeriesPoint{
		{Name: "Jan", Value: 1000},
		{Name: "Feb", Value: 1200},
	}

	result := Simulate(series, 10)

	assert.Equal(t, 1100.0, result[0].Value)
	assert.Equal(t, 1320.0, result[1].Value)
	assert.Equal(t, 1000.0, result[0].Original)
	assert.Equal(t, 1200.0, result[1].Original)
}

func TestSimulate_FormulaHoldsAcrossFactorRange(t *testing.T) {
	series := []domain.SeriesPoint{
		{Name: "a", Value: 37.4},
		{Name: "b", Value: -512},
		{Name: "c", Value: 0},
		{Name: "d", Value: 999999},
	}

	for factor := MinFactor; factor <= MaxFactor; factor++ {
		result := Simulate(series, factor)
		for i, p := range series {
			expected := p.Value
			if factor != 0 {
				expected = math.Round(p.Value * (1 + float64(factor)/100))
			}
			assert.Equal(t, expected, result[i].Value, "factor %d point %s", factor, p.Name)
		}
	}
}

func TestSimulate_PreservesSign(t *testing.T) {
	series := []domain.SeriesPoint{{Name: "loss", Value: -200}}

	assert.Equal(t, -300.0, Simulate(series, 50)[0].Value)
	assert.Equal(t, -100.0, Simulate(series, -50)[0].Value)
}

func TestSimulate_DoesNotMutateInput(t *testing.T) {
	series := []domain.SeriesPoint{{Name: "Jan", Value: 100}}

	_ = Simulate(series, 25)

	assert.Equal(t, 100.0, series[0].Value)
}

func TestSimulate_EmptySeries(t *testing.T) {
	assert.Empty(t, Simulate(nil, 10))
}

func TestClampFactor(t *testing.T) {
	assert.Equal(t, MinFactor, ClampFactor(-80))
	assert.Equal(t, MaxFactor, ClampFactor(120))
	assert.Equal(t, 13, ClampFactor(13))
}
