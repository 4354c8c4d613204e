package chart

import (
	"github.com/rustyeddy/indichart/market"
	"github.com/rustyeddy/indichart/profile"
)

// Spec is the declarative description of a multi-pane chart. It carries no
// behavior; a renderer turns it into pixels.
type Spec struct {
	Profile string   `json:"profile" yaml:"profile"`
	Title   string   `json:"title" yaml:"title"`
	Panes   []Pane   `json:"panes" yaml:"panes"`
	Series  []Series `json:"series" yaml:"series"`
}

// Pane is one vertically stacked region. Top and Height are percentages of
// the chart height.
type Pane struct {
	Title     string     `json:"title" yaml:"title"`
	Top       float64    `json:"top" yaml:"top"`
	Height    float64    `json:"height" yaml:"height"`
	PlotLines []PlotLine `json:"plot_lines,omitempty" yaml:"plot_lines,omitempty"`
}

// PlotLine is a horizontal decoration line on a pane.
type PlotLine struct {
	Value     float64 `json:"value" yaml:"value"`
	Color     string  `json:"color" yaml:"color"`
	Width     int     `json:"width" yaml:"width"`
	DashStyle string  `json:"dash_style,omitempty" yaml:"dash_style,omitempty"`
	Label     string  `json:"label" yaml:"label"`
	Align     string  `json:"align" yaml:"align"`
}

// Series is one data series bound to a pane by index. Candlestick series
// carry Candles, line and column series carry Points.
type Series struct {
	Name          string             `json:"name" yaml:"name"`
	Type          profile.SeriesType `json:"type" yaml:"type"`
	Pane          int                `json:"pane" yaml:"pane"`
	Color         string             `json:"color" yaml:"color"`
	NegativeColor string             `json:"negative_color,omitempty" yaml:"negative_color,omitempty"`
	UpColor       string             `json:"up_color,omitempty" yaml:"up_color,omitempty"`
	LineColor     string             `json:"line_color,omitempty" yaml:"line_color,omitempty"`
	UpLineColor   string             `json:"up_line_color,omitempty" yaml:"up_line_color,omitempty"`
	Candles       []market.Candle    `json:"candles,omitempty" yaml:"candles,omitempty"`
	Points        []market.Point     `json:"points,omitempty" yaml:"points,omitempty"`
}

// PlotLine returns the decoration line with the given label, if any.
func (p Pane) PlotLine(label string) (PlotLine, bool) {
	for _, l := range p.PlotLines {
		if l.Label == label {
			return l, true
		}
	}
	return PlotLine{}, false
}
