// Package highcharts turns a chart spec into Highcharts stockChart options.
// It only produces configuration; drawing is left to the page that loads it.
package highcharts

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/rustyeddy/indichart/chart"
	"github.com/rustyeddy/indichart/market"
	"github.com/rustyeddy/indichart/profile"
)

const axisLineWidth = 2

type Title struct {
	Text string `json:"text"`
}

type LabelStyle struct {
	Color string `json:"color,omitempty"`
}

type Label struct {
	Text  string      `json:"text"`
	Align string      `json:"align,omitempty"`
	Style *LabelStyle `json:"style,omitempty"`
}

type PlotLine struct {
	Value     float64 `json:"value"`
	Color     string  `json:"color"`
	DashStyle string  `json:"dashStyle,omitempty"`
	Width     int     `json:"width"`
	Label     Label   `json:"label"`
}

// Axis is one entry of the yAxis array. Top and Height are percent strings.
type Axis struct {
	Title     Title      `json:"title"`
	Top       string     `json:"top,omitempty"`
	Height    string     `json:"height"`
	Offset    *int       `json:"offset,omitempty"`
	LineWidth int        `json:"lineWidth"`
	PlotLines []PlotLine `json:"plotLines,omitempty"`
}

// Series is one entry of the series array. Data rows are
// [x, open, high, low, close] for candlesticks and [x, y] otherwise, with x
// in epoch milliseconds.
type Series struct {
	Type          string      `json:"type"`
	Name          string      `json:"name"`
	Data          [][]float64 `json:"data"`
	Color         string      `json:"color,omitempty"`
	NegativeColor string      `json:"negativeColor,omitempty"`
	UpColor       string      `json:"upColor,omitempty"`
	LineColor     string      `json:"lineColor,omitempty"`
	UpLineColor   string      `json:"upLineColor,omitempty"`
	YAxis         int         `json:"yAxis"`
}

// Options is the subset of a stockChart configuration derived from a spec.
type Options struct {
	Title  *Title   `json:"title,omitempty"`
	YAxis  []Axis   `json:"yAxis"`
	Series []Series `json:"series"`
}

// FromSpec converts spec into stockChart options.
func FromSpec(spec *chart.Spec) (*Options, error) {
	if spec == nil {
		return nil, fmt.Errorf("highcharts: nil spec")
	}

	opts := &Options{
		YAxis:  make([]Axis, 0, len(spec.Panes)),
		Series: make([]Series, 0, len(spec.Series)),
	}
	if spec.Title != "" {
		opts.Title = &Title{Text: spec.Title}
	}

	for i, pane := range spec.Panes {
		ax := Axis{
			Title:     Title{Text: pane.Title},
			Height:    percent(pane.Height),
			LineWidth: axisLineWidth,
		}
		// the first axis sits at the top and keeps the default offset
		if i > 0 {
			zero := 0
			ax.Top = percent(pane.Top)
			ax.Offset = &zero
		}
		for _, pl := range pane.PlotLines {
			ax.PlotLines = append(ax.PlotLines, plotLine(pl))
		}
		opts.YAxis = append(opts.YAxis, ax)
	}

	for _, s := range spec.Series {
		if s.Pane < 0 || s.Pane >= len(spec.Panes) {
			return nil, fmt.Errorf("highcharts: series %q on pane %d of %d", s.Name, s.Pane, len(spec.Panes))
		}
		out := Series{
			Type:          string(s.Type),
			Name:          s.Name,
			Color:         s.Color,
			NegativeColor: s.NegativeColor,
			UpColor:       s.UpColor,
			LineColor:     s.LineColor,
			UpLineColor:   s.UpLineColor,
			YAxis:         s.Pane,
		}
		if s.Type == profile.Candlestick {
			out.Data = candleData(s.Candles)
		} else {
			out.Data = pointData(s.Points)
		}
		opts.Series = append(opts.Series, out)
	}
	return opts, nil
}

// Marshal returns the options for spec as indented JSON.
func Marshal(spec *chart.Spec) ([]byte, error) {
	opts, err := FromSpec(spec)
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(opts, "", "  ")
}

func plotLine(pl chart.PlotLine) PlotLine {
	out := PlotLine{
		Value:     pl.Value,
		Color:     pl.Color,
		DashStyle: pl.DashStyle,
		Width:     pl.Width,
		Label:     Label{Text: pl.Label, Align: pl.Align},
	}
	// threshold labels take the line color; range labels keep the default
	if pl.DashStyle == "" {
		out.Label.Style = &LabelStyle{Color: pl.Color}
	}
	return out
}

func candleData(cs []market.Candle) [][]float64 {
	out := make([][]float64, 0, len(cs))
	for _, c := range cs {
		out = append(out, []float64{millis(c.Date), c.Open, c.High, c.Low, c.Close})
	}
	return out
}

func pointData(ps []market.Point) [][]float64 {
	out := make([][]float64, 0, len(ps))
	for _, p := range ps {
		out = append(out, []float64{millis(p.Date), p.Value})
	}
	return out
}

func millis(t time.Time) float64 {
	return float64(t.UnixMilli())
}

func percent(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "%"
}
