package table

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/rustyeddy/indichart/market"
)

// Accepted date layouts, tried in order. Parsing never depends on the
// process locale or time zone.
var dateLayouts = []string{
	time.DateOnly,
	time.DateTime,
	time.RFC3339,
	time.RFC3339Nano,
	"2006/01/02",
	"01/02/2006",
	"1/2/2006",
	"Jan 2, 2006",
	"January 2, 2006",
	"2 Jan 2006",
	"02-Jan-2006",
}

var errNotFinite = errors.New("not a finite number")

// ParseDate parses a date cell and truncates it to the calendar day, in UTC.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, errors.New("empty date")
	}
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, s)
		if err != nil {
			continue
		}
		y, m, d := t.Date()
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}

// ParseNumber parses a numeric cell. NaN and infinities are rejected.
func ParseNumber(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, errNotFinite
	}
	return v, nil
}

// ParseVolume parses a volume cell after removing thousands separators.
// Volume is a share count, so it must be a whole non-negative number.
func ParseVolume(s string) (float64, error) {
	v, err := ParseNumber(strings.ReplaceAll(s, ",", ""))
	if err != nil {
		return 0, err
	}
	if v < 0 {
		return 0, errors.New("negative volume")
	}
	if v != math.Trunc(v) {
		return 0, errors.New("fractional volume")
	}
	return v, nil
}

// ParseRow turns the cells of data row idx into a market.Row according to
// the mapping. The first cell that fails stops parsing.
func ParseRow(idx int, cells []string, m ColumnMapping) (market.Row, error) {
	if len(cells) < m.Required() {
		return market.Row{}, &MalformedRowError{
			Row:    idx,
			Column: len(cells),
			Field:  "row",
			Value:  strings.Join(cells, ","),
			Err:    fmt.Errorf("have %d cells, need %d", len(cells), m.Required()),
		}
	}

	bad := func(col int, field string, err error) error {
		return &MalformedRowError{Row: idx, Column: col, Field: field, Value: cells[col], Err: err}
	}

	var (
		r   market.Row
		err error
	)
	if r.Date, err = ParseDate(cells[m.Date]); err != nil {
		return market.Row{}, bad(m.Date, "date", err)
	}

	prices := []struct {
		field string
		col   int
		dst   *float64
	}{
		{"open", m.Open, &r.Open},
		{"high", m.High, &r.High},
		{"low", m.Low, &r.Low},
		{"close", m.Close, &r.Close},
	}
	for _, p := range prices {
		if *p.dst, err = ParseNumber(cells[p.col]); err != nil {
			return market.Row{}, bad(p.col, p.field, err)
		}
	}

	if r.Volume, err = ParseVolume(cells[m.Volume]); err != nil {
		return market.Row{}, bad(m.Volume, "volume", err)
	}

	r.Indicators = make(map[string]float64, len(m.Indicators))
	for _, c := range m.Indicators {
		v, err := ParseNumber(cells[c.Index])
		if err != nil {
			return market.Row{}, bad(c.Index, c.Field, err)
		}
		r.Indicators[c.Field] = v
	}
	return r, nil
}
