package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"grid-dispatch/internal/config"
	"grid-dispatch/internal/sim"
)

var colorFallback = drawing.Color{R: 153, G: 153, B: 153, A: 255}

// Palette resolves fuel names to chart colors from the config map.
type Palette struct {
	colors map[string]drawing.Color
}

func NewPalette(colors map[string]string) Palette {
	p := Palette{colors: make(map[string]drawing.Color, len(colors))}
	for fuel, hex := range colors {
		p.colors[fuel] = drawing.ColorFromHex(strings.TrimPrefix(hex, "#"))
	}
	return p
}

func (p Palette) For(fuel string) drawing.Color {
	if c, ok := p.colors[fuel]; ok {
		return c
	}
	return colorFallback
}

// WriteCharts renders all result charts into the results directory and
// returns the written paths: one hourly dispatch chart per year (or a
// placeholder for infeasible years), the yearly generation mix and the
// horizon mix pie.
func WriteCharts(cfg *config.Config, res *sim.Result) ([]string, error) {
	dir := cfg.Paths.ResultsDir
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	palette := NewPalette(cfg.Charts.Colors)
	width, height := cfg.Charts.WidthPX, cfg.Charts.HeightPX

	var written []string
	for _, yr := range res.Years {
		path := filepath.Join(dir, fmt.Sprintf("hourly_generation_%d.png", yr.Year))
		if err := writeHourlyChart(path, yr, palette, width, height); err != nil {
			return written, fmt.Errorf("hourly chart %d: %w", yr.Year, err)
		}
		written = append(written, path)
	}

	path := filepath.Join(dir, "yearly_generation_mix.png")
	if err := writeYearlyMixChart(path, res, palette, width, height); err != nil {
		return written, fmt.Errorf("yearly mix chart: %w", err)
	}
	written = append(written, path)

	path = filepath.Join(dir, "generation_mix_pie.png")
	if err := writeMixPie(path, res, palette, height); err != nil {
		return written, fmt.Errorf("mix pie chart: %w", err)
	}
	written = append(written, path)

	return written, nil
}

// writeHourlyChart draws the hour-of-day average dispatch as a stacked area
// chart. Cumulative series are drawn from the full stack downward so each
// fuel shows as a band in its own color.
func writeHourlyChart(path string, yr sim.YearResult, palette Palette, width, height int) error {
	if !yr.Feasible {
		return writePlaceholderChart(path,
			fmt.Sprintf("Hourly Generation Pattern - %d (%s)", yr.Year, yr.Message),
			width, height)
	}

	hours := make([]float64, 24)
	for h := range hours {
		hours[h] = float64(h)
	}

	fuels := yr.Fuels()
	averages := yr.HourOfDayAverages()

	cumulative := make([][]float64, len(fuels))
	running := make([]float64, 24)
	for i, fuel := range fuels {
		avg := averages[fuel]
		cum := make([]float64, 24)
		for h := 0; h < 24; h++ {
			running[h] += avg[h]
			cum[h] = running[h]
		}
		cumulative[i] = cum
	}

	series := make([]chart.Series, 0, len(fuels))
	for i := len(fuels) - 1; i >= 0; i-- {
		col := palette.For(fuels[i])
		series = append(series, chart.ContinuousSeries{
			Name:    fuels[i],
			XValues: hours,
			YValues: cumulative[i],
			Style: chart.Style{
				StrokeColor: col,
				FillColor:   col.WithAlpha(230),
			},
		})
	}

	graph := chart.Chart{
		Title:  fmt.Sprintf("Hourly Generation Pattern - %d", yr.Year),
		Width:  width,
		Height: height,
		XAxis:  chart.XAxis{Name: "Hour of Day"},
		YAxis:  chart.YAxis{Name: "MW"},
		Series: series,
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	return renderPNG(path, &graph)
}

// writeYearlyMixChart draws the per-year generation mix as stacked bars.
func writeYearlyMixChart(path string, res *sim.Result, palette Palette, width, height int) error {
	bars := make([]chart.StackedBar, 0, len(res.Years))
	for _, yr := range res.Years {
		bar := chart.StackedBar{Name: fmt.Sprintf("%d", yr.Year)}
		if !yr.Feasible {
			bar.Values = []chart.Value{{
				Value: 1,
				Label: "infeasible",
				Style: chart.Style{FillColor: colorFallback},
			}}
			bars = append(bars, bar)
			continue
		}
		for _, fuel := range yr.Fuels() {
			gwh := yr.TotalGenerationMWh(fuel) / 1e3
			if gwh <= 0 {
				continue
			}
			bar.Values = append(bar.Values, chart.Value{
				Value: gwh,
				Label: fuel,
				Style: chart.Style{FillColor: palette.For(fuel)},
			})
		}
		bars = append(bars, bar)
	}

	graph := chart.StackedBarChart{
		Title:      "Yearly Generation Mix",
		Width:      width,
		Height:     height,
		XAxis:      chart.Style{},
		YAxis:      chart.Style{},
		Bars:       bars,
		BarSpacing: 40,
	}
	return renderPNG(path, &graph)
}

// writeMixPie draws the generation mix across the whole horizon.
func writeMixPie(path string, res *sim.Result, palette Palette, size int) error {
	totals := map[string]float64{}
	grand := 0.0
	for _, yr := range res.Years {
		if !yr.Feasible {
			continue
		}
		for _, fuel := range yr.Fuels() {
			mwh := yr.TotalGenerationMWh(fuel)
			totals[fuel] += mwh
			grand += mwh
		}
	}
	if grand == 0 {
		return writePlaceholderChart(path, "Generation Mix (no solution found)", size, size)
	}

	values := make([]chart.Value, 0, len(totals))
	for _, fuel := range res.AllFuels() {
		mwh := totals[fuel]
		if mwh <= 0 {
			continue
		}
		values = append(values, chart.Value{
			Value: mwh,
			Label: fmt.Sprintf("%s %.1f%%", fuel, 100*mwh/grand),
			Style: chart.Style{FillColor: palette.For(fuel)},
		})
	}

	graph := chart.PieChart{
		Title:  "Generation Mix",
		Width:  size,
		Height: size,
		Values: values,
	}
	return renderPNG(path, &graph)
}

// writePlaceholderChart emits a labeled empty chart so infeasible years
// still produce an artifact instead of a crash.
func writePlaceholderChart(path, title string, width, height int) error {
	zeros := make([]float64, 24)
	hours := make([]float64, 24)
	for h := range hours {
		hours[h] = float64(h)
	}
	graph := chart.Chart{
		Title:  title,
		Width:  width,
		Height: height,
		YAxis:  chart.YAxis{Range: &chart.ContinuousRange{Min: 0, Max: 1}},
		Series: []chart.Series{chart.ContinuousSeries{
			XValues: hours,
			YValues: zeros,
			Style:   chart.Style{StrokeColor: colorFallback},
		}},
	}
	return renderPNG(path, &graph)
}

type pngRenderable interface {
	Render(rp chart.RendererProvider, w io.Writer) error
}

func renderPNG(path string, graph pngRenderable) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return graph.Render(chart.PNG, f)
}
