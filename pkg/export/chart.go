package export

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/de-tools/data-brief/pkg/models/domain"
	chartsvc "github.com/de-tools/data-brief/pkg/services/chart"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// ChartFileName is the fixed name the captured chart surface is saved
// under.
const ChartFileName = "DataBrief-chart.png"

// ErrNoChart is reported when a capture is requested while no chart is
// rendered.
var ErrNoChart = errors.New("no chart is currently rendered")

var seriesPalette = []string{"6366f1", "ec4899", "8b5cf6", "14b8a6", "f59e0b", "f43f5e"}

const (
	chartWidth  = 1024
	chartHeight = 512
)

// ChartPNG captures the chart surface in its current visual state,
// simulated values included, as a raster image.
func ChartPNG(model *chartsvc.Model) ([]byte, error) {
	if !model.HasChart() {
		return nil, ErrNoChart
	}

	result := model.Result()
	points := model.SimulatedSeries()

	var buf bytes.Buffer
	var err error
	switch result.ChartType {
	case domain.ChartTypePie:
		err = renderPie(&buf, result.Title, points)
	case domain.ChartTypeLine:
		err = renderLine(&buf, result, points)
	default:
		err = renderBar(&buf, result, points)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to render %s chart: %w", result.ChartType, err)
	}
	return buf.Bytes(), nil
}

func renderBar(buf *bytes.Buffer, result *domain.AnalysisResult, points []domain.SimulatedPoint) error {
	bars := make([]chart.Value, 0, len(points))
	for i, p := range points {
		color := drawing.ColorFromHex(seriesPalette[i%len(seriesPalette)])
		bars = append(bars, chart.Value{
			Value: p.Value,
			Label: p.Name,
			Style: chart.Style{FillColor: color, StrokeColor: color},
		})
	}

	graph := chart.BarChart{
		Title:    result.Title,
		Width:    chartWidth,
		Height:   chartHeight,
		BarWidth: 50,
		Bars:     bars,
		YAxis:    chart.YAxis{ValueFormatter: axisFormatter(result.Unit)},
	}
	return graph.Render(chart.PNG, buf)
}

func renderLine(buf *bytes.Buffer, result *domain.AnalysisResult, points []domain.SimulatedPoint) error {
	xs := make([]float64, 0, len(points))
	ys := make([]float64, 0, len(points))
	ticks := make([]chart.Tick, 0, len(points))
	for i, p := range points {
		xs = append(xs, float64(i))
		ys = append(ys, p.Value)
		ticks = append(ticks, chart.Tick{Value: float64(i), Label: p.Name})
	}

	indigo := drawing.ColorFromHex(seriesPalette[0])
	graph := chart.Chart{
		Title:  result.Title,
		Width:  chartWidth,
		Height: chartHeight,
		XAxis:  chart.XAxis{Ticks: ticks},
		YAxis:  chart.YAxis{ValueFormatter: axisFormatter(result.Unit)},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Style: chart.Style{
					StrokeColor: indigo,
					StrokeWidth: 4,
					DotColor:    indigo,
					DotWidth:    6,
				},
				XValues: xs,
				YValues: ys,
			},
		},
	}
	return graph.Render(chart.PNG, buf)
}

func renderPie(buf *bytes.Buffer, title string, points []domain.SimulatedPoint) error {
	values := make([]chart.Value, 0, len(points))
	for i, p := range points {
		color := drawing.ColorFromHex(seriesPalette[i%len(seriesPalette)])
		values = append(values, chart.Value{
			Value: p.Value,
			Label: p.Name,
			Style: chart.Style{FillColor: color},
		})
	}

	graph := chart.PieChart{
		Title:  title,
		Width:  chartHeight,
		Height: chartHeight,
		Values: values,
	}
	return graph.Render(chart.PNG, buf)
}

func axisFormatter(unit string) chart.ValueFormatter {
	return func(v interface{}) string {
		if value, ok := v.(float64); ok {
			return chartsvc.FormatAxisLabel(value, unit)
		}
		return ""
	}
}
