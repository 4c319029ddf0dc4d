package statservice

import (
	"bytes"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	statdomain "github.com/copperhead-cup/cup-bot/app/modules/stats/domain"
)

// ChartPalette carries the colors used by rendered charts.
type ChartPalette struct {
	Background drawing.Color
	BarFill    drawing.Color
	BarStroke  drawing.Color
	TextColor  drawing.Color
}

// DefaultChartPalette is the copper-on-cream scheme used by the API.
var DefaultChartPalette = ChartPalette{
	Background: drawing.Color{R: 0xFA, G: 0xF6, B: 0xF0, A: 0xFF},
	BarFill:    drawing.Color{R: 0xB8, G: 0x73, B: 0x33, A: 0xFF},
	BarStroke:  drawing.Color{R: 0x8A, G: 0x50, B: 0x1E, A: 0xFF},
	TextColor:  drawing.Color{R: 0x2B, G: 0x2B, B: 0x2B, A: 0xFF},
}

// GenerateStandingsChart produces a PNG bar chart of points per player for a
// scope's standings. Standings arrive already sorted; the chart keeps that
// order left to right.
func GenerateStandingsChart(standings []statdomain.PlayerStats, palette ChartPalette) ([]byte, error) {
	if len(standings) == 0 {
		return renderNoDataPlaceholder(palette)
	}

	bars := make([]chart.Value, len(standings))
	for i, line := range standings {
		bars[i] = chart.Value{
			Label: string(line.PlayerID),
			Value: line.Points,
			Style: chart.Style{
				FillColor:   palette.BarFill,
				StrokeColor: palette.BarStroke,
				StrokeWidth: 1,
			},
		}
	}

	graph := chart.BarChart{
		Width:    800,
		Height:   400,
		BarWidth: 40,
		Background: chart.Style{
			FillColor: palette.Background,
		},
		Canvas: chart.Style{
			FillColor: palette.Background,
		},
		XAxis: chart.Style{
			FontColor: palette.TextColor,
		},
		YAxis: chart.YAxis{
			Name: "Points",
			Style: chart.Style{
				FontColor: palette.TextColor,
			},
		},
		Bars: bars,
	}

	buffer := bytes.NewBuffer([]byte{})
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}

func renderNoDataPlaceholder(palette ChartPalette) ([]byte, error) {
	const (
		width  = 400
		height = 200
		msg    = "No standings yet"
	)

	graph := chart.Chart{
		Width:  width,
		Height: height,
		Background: chart.Style{
			FillColor: palette.Background,
		},
		Canvas: chart.Style{
			FillColor: palette.Background,
		},
		Elements: []chart.Renderable{
			func(r chart.Renderer, cb chart.Box, chartDefaults chart.Style) {
				r.SetFontColor(palette.TextColor)
				r.SetFontSize(12.0)
				tb := r.MeasureText(msg)
				x := (cb.Width() - tb.Width()) / 2
				y := (cb.Height() + tb.Height()) / 2
				r.Text(msg, x, y)
			},
		},
	}
	buffer := bytes.NewBuffer([]byte{})
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}
