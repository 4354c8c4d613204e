package chart

import (
	"time"

	"github.com/rustyeddy/indichart/market"
	"github.com/rustyeddy/indichart/profile"
)

// Price-relative readings for overlay fields.
const (
	PriceAbove = "Price Above"
	PriceBelow = "Price Below"
)

// Reading is the latest value of one indicator field and the zone it sits
// in.
type Reading struct {
	Field string
	Pane  string
	Date  time.Time
	Value float64
	Zone  string
}

// Readings reports the latest readings with DefaultStyle.
func Readings(p profile.Profile, b *market.Bundle) []Reading {
	return NewBuilder().Readings(p, b)
}

// Readings reports the last row of every profile field found in b. Pane
// fields are classified against their pane's thresholds; overlay fields
// against the last close and reported under the price pane title.
func (bl *Builder) Readings(p profile.Profile, b *market.Bundle) []Reading {
	var out []Reading
	if b == nil || b.Len() == 0 {
		return out
	}
	last := b.Candles[b.Len()-1]

	for _, o := range p.Overlays {
		pt, ok := b.Latest(o.Field)
		if !ok {
			continue
		}
		zone := profile.Neutral
		switch {
		case last.Close > pt.Value:
			zone = PriceAbove
		case last.Close < pt.Value:
			zone = PriceBelow
		}
		out = append(out, Reading{Field: o.Field, Pane: bl.Style.PriceTitle, Date: pt.Date, Value: pt.Value, Zone: zone})
	}

	for _, pane := range p.Panes {
		for _, s := range pane.Series {
			pt, ok := b.Latest(s.Field)
			if !ok {
				continue
			}
			out = append(out, Reading{Field: s.Field, Pane: pane.Title, Date: pt.Date, Value: pt.Value, Zone: pane.Classify(pt.Value)})
		}
	}
	return out
}
