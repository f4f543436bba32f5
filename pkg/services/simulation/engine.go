package simulation

import (
	"math"

	"github.com/de-tools/data-brief/pkg/models/domain"
)

const (
	MinFactor = -50
	MaxFactor = 50
)

// ClampFactor bounds a what-if factor to the supported percentage range.
func ClampFactor(factor int) int {
	if factor < MinFactor {
		return MinFactor
	}
	if factor > MaxFactor {
		return MaxFactor
	}
	return factor
}

// Simulate applies a uniform percentage adjustment to a series and
// returns a new series of the same length and order. Each point keeps
// its pre-transform value in Original. A zero factor is the identity:
// values pass through untouched, without rounding.
func Simulate(series []domain.SeriesPoint, factor int) []domain.SimulatedPoint {
	result := make([]domain.SimulatedPoint, 0, len(series))

	for _, p := range series {
		value := p.Value
		if factor != 0 {
			value = math.Round(p.Value * (1 + float64(factor)/100))
		}
		result = append(result, domain.SimulatedPoint{
			Name:     p.Name,
			Value:    value,
			Original: p.Value,
		})
	}

	return result
}
