package market

import "time"

// Candle represents one OHLC (Open, High, Low, Close) candlestick for a
// single trading day.
type Candle struct {
	Date  time.Time `json:"date" yaml:"date"`
	Open  float64   `json:"open" yaml:"open"`
	High  float64   `json:"high" yaml:"high"`
	Low   float64   `json:"low" yaml:"low"`
	Close float64   `json:"close" yaml:"close"`
}

// Point is a single dated value of a line or column series.
type Point struct {
	Date  time.Time `json:"date" yaml:"date"`
	Value float64   `json:"value" yaml:"value"`
}

// Row is one dated observation as read from a table: prices, volume and
// whatever pre-computed indicator values the table carries.
type Row struct {
	Date       time.Time
	Open       float64
	High       float64
	Low        float64
	Close      float64
	Volume     float64
	Indicators map[string]float64
}

// Candle returns the candlestick part of the row.
func (r Row) Candle() Candle {
	return Candle{
		Date:  r.Date,
		Open:  r.Open,
		High:  r.High,
		Low:   r.Low,
		Close: r.Close,
	}
}
