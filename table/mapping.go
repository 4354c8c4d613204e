package table

import (
	"fmt"
	"strings"
)

// IndicatorColumn binds one indicator field name to a column index.
type IndicatorColumn struct {
	Field string `json:"field" yaml:"field"`
	Index int    `json:"index" yaml:"index"`
}

// ColumnMapping assigns a column index to every semantic field of a row.
// Column order differs between table variants, so a mapping is always
// given explicitly rather than inferred.
type ColumnMapping struct {
	Date       int               `json:"date" yaml:"date"`
	Open       int               `json:"open" yaml:"open"`
	High       int               `json:"high" yaml:"high"`
	Low        int               `json:"low" yaml:"low"`
	Close      int               `json:"close" yaml:"close"`
	Volume     int               `json:"volume" yaml:"volume"`
	Indicators []IndicatorColumn `json:"indicators,omitempty" yaml:"indicators,omitempty"`
}

// MainMapping is the layout of the main price table: close sits before
// open/high/low and volume is in column 7.
func MainMapping() ColumnMapping {
	return ColumnMapping{Date: 0, Close: 1, Open: 2, High: 3, Low: 4, Volume: 7}
}

// IndicatorMapping is the layout shared by the per-indicator tables:
// volume in column 5 followed by the indicator fields from column 6 on.
func IndicatorMapping(fields ...string) ColumnMapping {
	m := ColumnMapping{Date: 0, Close: 1, Open: 2, High: 3, Low: 4, Volume: 5}
	for i, f := range fields {
		m.Indicators = append(m.Indicators, IndicatorColumn{Field: f, Index: 6 + i})
	}
	return m
}

// HeaderMapping keeps the price columns of base and locates each indicator
// field by its header name (case-insensitive). Fields missing from the
// header are left out of the mapping.
func HeaderMapping(header []string, base ColumnMapping, fields ...string) ColumnMapping {
	m := base
	m.Indicators = nil
	for _, f := range fields {
		for i, h := range header {
			if strings.EqualFold(strings.TrimSpace(h), f) {
				m.Indicators = append(m.Indicators, IndicatorColumn{Field: f, Index: i})
				break
			}
		}
	}
	return m
}

// Confirm drops the indicator columns that the header contradicts: the
// column is past the end of the header, or its header cell names a
// different field (case-insensitive). Blank header cells are trusted.
func (m ColumnMapping) Confirm(header []string) ColumnMapping {
	var kept []IndicatorColumn
	for _, c := range m.Indicators {
		if c.Index < 0 || c.Index >= len(header) {
			continue
		}
		h := strings.TrimSpace(header[c.Index])
		if h != "" && !strings.EqualFold(h, c.Field) {
			continue
		}
		kept = append(kept, c)
	}
	m.Indicators = kept
	return m
}

// Required is the minimum number of cells a row must have.
func (m ColumnMapping) Required() int {
	n := 0
	for _, c := range m.columns() {
		if c.index+1 > n {
			n = c.index + 1
		}
	}
	return n
}

// Fields returns the indicator field names in mapping order.
func (m ColumnMapping) Fields() []string {
	out := make([]string, 0, len(m.Indicators))
	for _, c := range m.Indicators {
		out = append(out, c.Field)
	}
	return out
}

// Validate checks for negative indices and duplicate indicator fields.
func (m ColumnMapping) Validate() error {
	for _, c := range m.columns() {
		if c.index < 0 {
			return fmt.Errorf("%s column index must not be negative (got %d)", c.field, c.index)
		}
	}
	seen := make(map[string]bool, len(m.Indicators))
	for _, c := range m.Indicators {
		if c.Field == "" {
			return fmt.Errorf("indicator column %d has no field name", c.Index)
		}
		if seen[c.Field] {
			return fmt.Errorf("indicator field %q mapped twice", c.Field)
		}
		seen[c.Field] = true
	}
	return nil
}

type column struct {
	field string
	index int
}

func (m ColumnMapping) columns() []column {
	cols := []column{
		{"date", m.Date},
		{"open", m.Open},
		{"high", m.High},
		{"low", m.Low},
		{"close", m.Close},
		{"volume", m.Volume},
	}
	for _, c := range m.Indicators {
		cols = append(cols, column{c.Field, c.Index})
	}
	return cols
}
