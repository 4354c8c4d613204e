package profile

import (
	"fmt"
	"strconv"
)

// Pane heights, in percent of the chart.
const (
	PriceOnlyHeight = 90.0
	PriceHeight     = 60.0
	IndicatorHeight = 30.0
	VolumeHeight    = 10.0
)

const (
	primaryLineColor   = "#2c3e50"
	secondaryLineColor = "#FF4136"
	smoothingLineColor = "#FF9800"
	histogramColor     = "#95a5a6"
	negativeBarColor   = "#FF4136"
	overboughtColor    = "red"
	oversoldColor      = "green"
	zeroLineColor      = "blue"

	overboughtLabel = "Overbought"
	oversoldLabel   = "Oversold"
	zeroLineLabel   = "Zero Line"
	strongBuyLabel  = "Strong Buy Signal"
	strongSellLabel = "Strong Sell Signal"

	rsiOverbought      = 70.0
	rsiOversold        = 30.0
	stochOverbought    = 80.0
	stochOversold      = 20.0
	cmfSignalThreshold = 0.05

	obvField = "OBV"
)

// SMAColors is the palette for moving average overlays, used in order and
// cycled when there are more overlays than colors.
var SMAColors = []string{"#3498db", "#e67e22", "#8e44ad"}

// Plain is the bare price and volume chart.
func Plain() Profile {
	return Profile{
		Name:         "main",
		Kind:         KindPlain,
		Title:        "Stock Price",
		PriceHeight:  PriceOnlyHeight,
		VolumeHeight: VolumeHeight,
	}
}

// SMA overlays one simple moving average line per period on the price pane.
// Fields are named SMA<period>.
func SMA(periods ...int) Profile {
	p := Profile{
		Name:         "sma",
		Kind:         KindSMA,
		Title:        "Simple Moving Averages",
		PriceHeight:  PriceOnlyHeight,
		VolumeHeight: VolumeHeight,
	}
	for i, n := range periods {
		f := "SMA" + strconv.Itoa(n)
		p.Overlays = append(p.Overlays, FieldStyle{
			Field: f,
			Name:  f,
			Type:  Line,
			Color: SMAColors[i%len(SMAColors)],
		})
	}
	return p
}

// RSI is the relative strength index with 70/30 bands.
func RSI(period int) Profile {
	f := fmt.Sprintf("RSI_%d", period)
	return Profile{
		Name:         fmt.Sprintf("rsi_%d", period),
		Kind:         KindRSI,
		Title:        f,
		PriceHeight:  PriceHeight,
		VolumeHeight: VolumeHeight,
		Panes: []Pane{{
			Title:  f,
			Height: IndicatorHeight,
			Thresholds: []Threshold{
				{Value: rsiOverbought, Label: overboughtLabel, Color: overboughtColor, Zone: Above},
				{Value: rsiOversold, Label: oversoldLabel, Color: oversoldColor, Zone: Below},
			},
			Series: []FieldStyle{{Field: f, Name: f, Type: Line, Color: primaryLineColor}},
		}},
	}
}

// Stochastic is the %K/%D oscillator with 80/20 bands.
func Stochastic(k, d, smooth int) Profile {
	suffix := fmt.Sprintf("%d_%d_%d", k, d, smooth)
	kf, df := "STOCHk_"+suffix, "STOCHd_"+suffix
	return Profile{
		Name:         "stoch_" + suffix,
		Kind:         KindStochastic,
		Title:        "STOCH_" + suffix,
		PriceHeight:  PriceHeight,
		VolumeHeight: VolumeHeight,
		Panes: []Pane{{
			Title:  "STOCH_" + suffix,
			Height: IndicatorHeight,
			Thresholds: []Threshold{
				{Value: stochOverbought, Label: overboughtLabel, Color: overboughtColor, Zone: Above},
				{Value: stochOversold, Label: oversoldLabel, Color: oversoldColor, Zone: Below},
			},
			Series: []FieldStyle{
				{Field: kf, Name: kf, Type: Line, Color: primaryLineColor},
				{Field: df, Name: df, Type: Line, Color: secondaryLineColor},
			},
		}},
	}
}

// CMF is Chaikin money flow with a zero line and +/-0.05 signal lines.
func CMF(period int) Profile {
	f := fmt.Sprintf("CMF_%d", period)
	return Profile{
		Name:         fmt.Sprintf("cmf_%d", period),
		Kind:         KindCMF,
		Title:        f,
		PriceHeight:  PriceHeight,
		VolumeHeight: VolumeHeight,
		Panes: []Pane{{
			Title:  f,
			Height: IndicatorHeight,
			Thresholds: []Threshold{
				{Value: 0, Label: zeroLineLabel, Color: zeroLineColor},
				{Value: cmfSignalThreshold, Label: strongBuyLabel, Color: oversoldColor, Zone: Above},
				{Value: -cmfSignalThreshold, Label: strongSellLabel, Color: overboughtColor, Zone: Below},
			},
			Series: []FieldStyle{{Field: f, Name: f, Type: Line, Color: primaryLineColor}},
		}},
	}
}

// MACD draws the MACD line, its signal line and the histogram in one pane
// around a zero line.
func MACD(fast, slow, signal int) Profile {
	suffix := fmt.Sprintf("%d_%d_%d", fast, slow, signal)
	return Profile{
		Name:         "macd_" + suffix,
		Kind:         KindMACD,
		Title:        "MACD_" + suffix,
		PriceHeight:  PriceHeight,
		VolumeHeight: VolumeHeight,
		Panes: []Pane{{
			Title:  "MACD_" + suffix,
			Height: IndicatorHeight,
			Thresholds: []Threshold{
				{Value: 0, Label: zeroLineLabel, Color: zeroLineColor},
			},
			Series: []FieldStyle{
				{Field: "MACD_" + suffix, Name: "MACD", Type: Line, Color: primaryLineColor},
				{Field: "MACDs_" + suffix, Name: "Signal Line", Type: Line, Color: secondaryLineColor},
				{Field: "MACDh_" + suffix, Name: "Histogram", Type: Column, Color: histogramColor, NegativeColor: negativeBarColor},
			},
		}},
	}
}

// OBV is on-balance volume plus its moving average. It has no thresholds.
func OBV() Profile {
	return Profile{
		Name:         "obv",
		Kind:         KindOBV,
		Title:        obvField,
		PriceHeight:  PriceHeight,
		VolumeHeight: VolumeHeight,
		Panes: []Pane{{
			Title:  obvField,
			Height: IndicatorHeight,
			Series: []FieldStyle{
				{Field: obvField, Name: obvField, Type: Line, Color: primaryLineColor},
				{Field: obvField + "_SMA", Name: obvField + "_SMA", Type: Line, Color: smoothingLineColor},
			},
		}},
	}
}

// Builtin returns fresh copies of the profiles for the standard indicator
// tables.
func Builtin() []Profile {
	return []Profile{
		Plain(),
		SMA(10, 50, 200),
		RSI(9),
		RSI(14),
		RSI(25),
		Stochastic(9, 6, 3),
		CMF(20),
		MACD(12, 26, 9),
		OBV(),
	}
}
