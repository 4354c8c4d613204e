package market

import (
	"fmt"
	"time"
)

// Bundle holds the aligned time series read from one table: candlesticks,
// volume and one series per indicator field. Every series has exactly one
// entry per source row, in source row order.
type Bundle struct {
	Candles    []Candle           `json:"candlestick" yaml:"candlestick"`
	Volume     []Point            `json:"volume" yaml:"volume"`
	Indicators map[string][]Point `json:"indicators" yaml:"indicators"`

	fields []string
}

// NewBundle returns an empty bundle that will carry the given indicator
// fields, in the given order.
func NewBundle(fields ...string) *Bundle {
	b := &Bundle{
		Candles:    []Candle{},
		Volume:     []Point{},
		Indicators: make(map[string][]Point, len(fields)),
	}
	for _, f := range fields {
		if _, ok := b.Indicators[f]; ok {
			continue
		}
		b.Indicators[f] = []Point{}
		b.fields = append(b.fields, f)
	}
	return b
}

// Append adds one row to every series of the bundle.
func (b *Bundle) Append(r Row) error {
	for _, f := range b.fields {
		if _, ok := r.Indicators[f]; !ok {
			return fmt.Errorf("row %s has no value for %q", r.Date.Format(time.DateOnly), f)
		}
	}

	b.Candles = append(b.Candles, r.Candle())
	b.Volume = append(b.Volume, Point{Date: r.Date, Value: r.Volume})
	for _, f := range b.fields {
		b.Indicators[f] = append(b.Indicators[f], Point{Date: r.Date, Value: r.Indicators[f]})
	}
	return nil
}

// Len is the number of rows in the bundle.
func (b *Bundle) Len() int {
	return len(b.Candles)
}

// Fields returns the indicator field names in declaration order.
func (b *Bundle) Fields() []string {
	out := make([]string, len(b.fields))
	copy(out, b.fields)
	return out
}

// Series returns the series for an indicator field.
func (b *Bundle) Series(field string) ([]Point, bool) {
	s, ok := b.Indicators[field]
	return s, ok
}

// DateRange returns the dates of the first and last rows. The table order is
// authoritative, so first is not necessarily the earliest date.
func (b *Bundle) DateRange() (first, last time.Time, ok bool) {
	if len(b.Candles) == 0 {
		return time.Time{}, time.Time{}, false
	}
	return b.Candles[0].Date, b.Candles[len(b.Candles)-1].Date, true
}

// Latest returns the last value of an indicator field.
func (b *Bundle) Latest(field string) (Point, bool) {
	s, ok := b.Indicators[field]
	if !ok || len(s) == 0 {
		return Point{}, false
	}
	return s[len(s)-1], true
}
