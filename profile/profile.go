package profile

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Kind tags the indicator family a profile describes.
type Kind string

const (
	KindPlain      Kind = "plain"
	KindSMA        Kind = "sma"
	KindRSI        Kind = "rsi"
	KindMACD       Kind = "macd"
	KindStochastic Kind = "stochastic"
	KindCMF        Kind = "cmf"
	KindOBV        Kind = "obv"
)

// SeriesType is how the renderer draws a series.
type SeriesType string

const (
	Candlestick SeriesType = "candlestick"
	Line        SeriesType = "line"
	Column      SeriesType = "column"
)

// Zone says which side of a threshold line its label describes.
type Zone string

const (
	Above Zone = "above"
	Below Zone = "below"
)

// Neutral is the reading of a value that sits in no threshold zone.
const Neutral = "Neutral"

// Threshold is a static horizontal line on an indicator pane.
type Threshold struct {
	Value float64 `json:"value" yaml:"value"`
	Label string  `json:"label" yaml:"label" validate:"required"`
	Color string  `json:"color" yaml:"color" validate:"required"`
	Zone  Zone    `json:"zone,omitempty" yaml:"zone,omitempty" validate:"omitempty,oneof=above below"`
}

// FieldStyle binds an indicator field to a series and its styling.
// NegativeColor, when set, paints the points below zero.
type FieldStyle struct {
	Field         string     `json:"field" yaml:"field" validate:"required"`
	Name          string     `json:"name" yaml:"name" validate:"required"`
	Type          SeriesType `json:"type" yaml:"type" validate:"required,oneof=line column"`
	Color         string     `json:"color" yaml:"color" validate:"required"`
	NegativeColor string     `json:"negative_color,omitempty" yaml:"negative_color,omitempty"`
}

// Pane is one indicator pane, stacked between the price and volume panes.
// Height is a percentage of the chart.
type Pane struct {
	Title      string       `json:"title" yaml:"title" validate:"required"`
	Height     float64      `json:"height" yaml:"height" validate:"gt=0"`
	Thresholds []Threshold  `json:"thresholds,omitempty" yaml:"thresholds,omitempty" validate:"dive"`
	Series     []FieldStyle `json:"series" yaml:"series" validate:"required,min=1,dive"`
}

// Profile is the static description of one indicator chart: which fields
// it reads, how tall each pane is and which lines decorate it. Overlays are
// drawn on the price pane.
type Profile struct {
	Name         string       `json:"name" yaml:"name" validate:"required"`
	Kind         Kind         `json:"kind" yaml:"kind" validate:"required,oneof=plain sma rsi macd stochastic cmf obv"`
	Title        string       `json:"title,omitempty" yaml:"title,omitempty"`
	PriceHeight  float64      `json:"price_height" yaml:"price_height" validate:"gt=0"`
	VolumeHeight float64      `json:"volume_height" yaml:"volume_height" validate:"gt=0"`
	Overlays     []FieldStyle `json:"overlays,omitempty" yaml:"overlays,omitempty" validate:"dive"`
	Panes        []Pane       `json:"panes,omitempty" yaml:"panes,omitempty" validate:"dive"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Fields returns every indicator field the profile reads: overlays first,
// then each pane's series, in declaration order.
func (p Profile) Fields() []string {
	var out []string
	for _, o := range p.Overlays {
		out = append(out, o.Field)
	}
	for _, pane := range p.Panes {
		for _, s := range pane.Series {
			out = append(out, s.Field)
		}
	}
	return out
}

// Validate checks the struct tags and the per-kind shape.
func (p Profile) Validate() error {
	if err := validate.Struct(p); err != nil {
		return fmt.Errorf("profile %q: %w", p.Name, err)
	}

	seen := make(map[string]bool)
	for _, f := range p.Fields() {
		if seen[f] {
			return fmt.Errorf("profile %q: field %q declared twice", p.Name, f)
		}
		seen[f] = true
	}

	switch p.Kind {
	case KindPlain:
		if len(p.Overlays) > 0 || len(p.Panes) > 0 {
			return fmt.Errorf("profile %q: plain profile takes no indicator series", p.Name)
		}
	case KindSMA:
		if len(p.Overlays) == 0 {
			return fmt.Errorf("profile %q: sma profile needs at least one overlay", p.Name)
		}
	default:
		if len(p.Panes) == 0 {
			return fmt.Errorf("profile %q: %s profile needs an indicator pane", p.Name, p.Kind)
		}
	}
	return nil
}

// Classify returns the label of the threshold zone v falls in, or Neutral.
func (pane Pane) Classify(v float64) string {
	for _, t := range pane.Thresholds {
		switch t.Zone {
		case Above:
			if v > t.Value {
				return t.Label
			}
		case Below:
			if v < t.Value {
				return t.Label
			}
		}
	}
	return Neutral
}

// PaneOf returns the pane that draws field, or false for overlays and
// unknown fields.
func (p Profile) PaneOf(field string) (Pane, bool) {
	for _, pane := range p.Panes {
		for _, s := range pane.Series {
			if s.Field == field {
				return pane, true
			}
		}
	}
	return Pane{}, false
}
