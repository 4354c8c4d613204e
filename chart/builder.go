package chart

import (
	"fmt"
	"math"
	"slices"

	"github.com/rustyeddy/indichart/market"
	"github.com/rustyeddy/indichart/profile"
	"github.com/rustyeddy/indichart/table"
)

// layoutEpsilon absorbs float noise when pane heights are summed.
const layoutEpsilon = 1e-9

// Builder assembles chart specs with a fixed style table.
type Builder struct {
	Style Style
}

func NewBuilder() *Builder {
	return &Builder{Style: DefaultStyle}
}

// Build assembles a spec from the primary bundle with DefaultStyle.
func Build(p profile.Profile, primary *market.Bundle, extra ...*market.Bundle) (*Spec, error) {
	return NewBuilder().Build(p, primary, extra...)
}

// BuildChart runs the whole pipeline for one render request: it reads src
// through the mapping and builds the chart spec for the profile.
func BuildChart(src table.Source, m table.ColumnMapping, p profile.Profile) (*Spec, error) {
	b, err := table.Extract(src, m)
	if err != nil {
		return nil, err
	}
	return Build(p, b)
}

// Build lays the panes out top to bottom (price, indicator panes in profile
// order, volume) and binds one series per profile field. Indicator fields
// are looked up in primary first, then in each extra bundle in order.
func (bl *Builder) Build(p profile.Profile, primary *market.Bundle, extra ...*market.Bundle) (*Spec, error) {
	if primary == nil {
		return nil, fmt.Errorf("profile %q: no price bundle", p.Name)
	}

	heights, err := layout(p)
	if err != nil {
		return nil, err
	}
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("invalid profile: %w", err)
	}

	series := make(map[string][]market.Point)
	for _, f := range p.Fields() {
		pts, err := lookup(p.Name, f, primary, extra)
		if err != nil {
			return nil, err
		}
		series[f] = pts
	}

	spec := &Spec{
		Profile: p.Name,
		Title:   p.Title,
	}

	top := 0.0
	addPane := func(title string, height float64, lines []PlotLine) int {
		spec.Panes = append(spec.Panes, Pane{Title: title, Top: top, Height: height, PlotLines: lines})
		top += height
		return len(spec.Panes) - 1
	}

	price := addPane(bl.Style.PriceTitle, heights[0], bl.rangeLines(primary))
	spec.Series = append(spec.Series, Series{
		Name:        bl.Style.PriceName,
		Type:        profile.Candlestick,
		Pane:        price,
		Color:       bl.Style.CandleDown,
		UpColor:     bl.Style.CandleUp,
		LineColor:   bl.Style.CandleDown,
		UpLineColor: bl.Style.CandleUp,
		Candles:     slices.Clone(primary.Candles),
	})
	for _, o := range p.Overlays {
		spec.Series = append(spec.Series, fieldSeries(o, price, series[o.Field]))
	}

	for i, pane := range p.Panes {
		idx := addPane(pane.Title, heights[i+1], bl.levelLines(pane.Thresholds))
		for _, fs := range pane.Series {
			spec.Series = append(spec.Series, fieldSeries(fs, idx, series[fs.Field]))
		}
	}

	vol := addPane(bl.Style.VolumeTitle, heights[len(heights)-1], nil)
	spec.Series = append(spec.Series, Series{
		Name:   bl.Style.VolumeName,
		Type:   profile.Column,
		Pane:   vol,
		Color:  bl.Style.VolumeColor,
		Points: slices.Clone(primary.Volume),
	})

	return spec, nil
}

// layout returns the pane heights in stacking order and checks that they
// fill the chart exactly.
func layout(p profile.Profile) ([]float64, error) {
	heights := []float64{p.PriceHeight}
	for _, pane := range p.Panes {
		heights = append(heights, pane.Height)
	}
	heights = append(heights, p.VolumeHeight)

	total := 0.0
	for _, h := range heights {
		if h <= 0 || math.IsNaN(h) || math.IsInf(h, 0) {
			return nil, &LayoutOverflowError{Profile: p.Name, Total: h, Reason: "pane heights must be positive"}
		}
		total += h
	}
	switch {
	case total > 100+layoutEpsilon:
		return nil, &LayoutOverflowError{Profile: p.Name, Total: total, Reason: "panes exceed 100%"}
	case total < 100-layoutEpsilon:
		return nil, &LayoutOverflowError{Profile: p.Name, Total: total, Reason: "panes do not fill 100%"}
	}
	return heights, nil
}

func lookup(name, field string, primary *market.Bundle, extra []*market.Bundle) ([]market.Point, error) {
	for _, b := range append([]*market.Bundle{primary}, extra...) {
		if b == nil {
			continue
		}
		pts, ok := b.Series(field)
		if !ok {
			continue
		}
		if len(pts) != primary.Len() {
			return nil, &ProfileMismatchError{
				Profile: name,
				Field:   field,
				Reason:  fmt.Sprintf("has %d points, price series has %d", len(pts), primary.Len()),
			}
		}
		for i, pt := range pts {
			if !pt.Date.Equal(primary.Candles[i].Date) {
				return nil, &ProfileMismatchError{
					Profile: name,
					Field:   field,
					Reason:  fmt.Sprintf("row %d dated %s, price row dated %s", i, pt.Date.Format("2006-01-02"), primary.Candles[i].Date.Format("2006-01-02")),
				}
			}
		}
		return pts, nil
	}
	return nil, &ProfileMismatchError{Profile: name, Field: field, Reason: "not present in any bundle"}
}

// rangeLines marks the highest high and lowest low of the whole bundle. An
// empty bundle gets no lines.
func (bl *Builder) rangeLines(b *market.Bundle) []PlotLine {
	high, low, ok := market.HighLow(b.Candles)
	if !ok {
		return nil
	}
	return []PlotLine{
		{Value: high, Color: bl.Style.HighColor, Width: bl.Style.LineWidth, DashStyle: bl.Style.RangeDash, Label: bl.Style.HighLabel, Align: bl.Style.RangeAlign},
		{Value: low, Color: bl.Style.LowColor, Width: bl.Style.LineWidth, DashStyle: bl.Style.RangeDash, Label: bl.Style.LowLabel, Align: bl.Style.RangeAlign},
	}
}

func (bl *Builder) levelLines(ts []profile.Threshold) []PlotLine {
	var out []PlotLine
	for _, t := range ts {
		out = append(out, PlotLine{
			Value: t.Value,
			Color: t.Color,
			Width: bl.Style.LineWidth,
			Label: t.Label,
			Align: bl.Style.LevelAlign,
		})
	}
	return out
}

func fieldSeries(fs profile.FieldStyle, pane int, pts []market.Point) Series {
	return Series{
		Name:          fs.Name,
		Type:          fs.Type,
		Pane:          pane,
		Color:         fs.Color,
		NegativeColor: fs.NegativeColor,
		Points:        slices.Clone(pts),
	}
}
