package highcharts

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/indichart/chart"
	"github.com/rustyeddy/indichart/market"
	"github.com/rustyeddy/indichart/profile"
	"github.com/rustyeddy/indichart/table"
)

func rsiSpec(t *testing.T) *chart.Spec {
	t.Helper()
	cells := [][]string{
		{"Date", "Close", "Open", "High", "Low", "Volume", "RSI_14"},
		{"2024-01-02", "101.5", "100.0", "102.0", "99.5", "1,200", "55.3"},
	}
	spec, err := chart.BuildChart(table.NewMemory("rsi", cells), table.IndicatorMapping("RSI_14"), profile.RSI(14))
	require.NoError(t, err)
	return spec
}

func TestFromSpecAxes(t *testing.T) {
	opts, err := FromSpec(rsiSpec(t))
	require.NoError(t, err)

	require.Len(t, opts.YAxis, 3)

	price := opts.YAxis[0]
	assert.Equal(t, "Stock Price", price.Title.Text)
	assert.Equal(t, "60%", price.Height)
	assert.Empty(t, price.Top)
	assert.Nil(t, price.Offset)
	require.Len(t, price.PlotLines, 2)
	assert.Equal(t, 102.0, price.PlotLines[0].Value)
	assert.Equal(t, "ShortDash", price.PlotLines[0].DashStyle)
	assert.Nil(t, price.PlotLines[0].Label.Style)

	rsi := opts.YAxis[1]
	assert.Equal(t, "60%", rsi.Top)
	assert.Equal(t, "30%", rsi.Height)
	require.NotNil(t, rsi.Offset)
	assert.Equal(t, 0, *rsi.Offset)
	require.Len(t, rsi.PlotLines, 2)
	assert.Equal(t, "Overbought", rsi.PlotLines[0].Label.Text)
	require.NotNil(t, rsi.PlotLines[0].Label.Style)
	assert.Equal(t, "red", rsi.PlotLines[0].Label.Style.Color)

	vol := opts.YAxis[2]
	assert.Equal(t, "90%", vol.Top)
	assert.Equal(t, "10%", vol.Height)
	assert.Empty(t, vol.PlotLines)
}

func TestFromSpecSeries(t *testing.T) {
	opts, err := FromSpec(rsiSpec(t))
	require.NoError(t, err)
	require.Len(t, opts.Series, 3)

	// 2024-01-02T00:00:00Z
	const x = 1704153600000.0

	candles := opts.Series[0]
	assert.Equal(t, "candlestick", candles.Type)
	assert.Equal(t, 0, candles.YAxis)
	assert.Equal(t, "#3D9970", candles.UpColor)
	assert.Equal(t, [][]float64{{x, 100.0, 102.0, 99.5, 101.5}}, candles.Data)

	line := opts.Series[1]
	assert.Equal(t, "line", line.Type)
	assert.Equal(t, 1, line.YAxis)
	assert.Equal(t, [][]float64{{x, 55.3}}, line.Data)

	vol := opts.Series[2]
	assert.Equal(t, "column", vol.Type)
	assert.Equal(t, 2, vol.YAxis)
	assert.Equal(t, [][]float64{{x, 1200}}, vol.Data)
}

func TestMarshal(t *testing.T) {
	spec := rsiSpec(t)
	a, err := Marshal(spec)
	require.NoError(t, err)
	b, err := Marshal(spec)
	require.NoError(t, err)
	assert.Equal(t, a, b)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(a, &decoded))
	assert.Contains(t, decoded, "yAxis")
	assert.Contains(t, decoded, "series")
	assert.Contains(t, string(a), "1704153600000")
}

func TestFromSpecErrors(t *testing.T) {
	_, err := FromSpec(nil)
	assert.Error(t, err)

	spec := rsiSpec(t)
	spec.Series[1].Pane = 7
	_, err = FromSpec(spec)
	assert.Error(t, err)
}

func TestFromSpecEmptyData(t *testing.T) {
	spec, err := chart.BuildChart(table.NewMemory("main", [][]string{{"Date"}}), table.MainMapping(), profile.Plain())
	require.NoError(t, err)

	data, err := Marshal(spec)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"data": []`)
}

func TestMarshalNegativeColor(t *testing.T) {
	b := market.NewBundle("MACD_12_26_9", "MACDs_12_26_9", "MACDh_12_26_9")
	require.NoError(t, b.Append(market.Row{
		Date: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), Open: 1, High: 2, Low: 0.5, Close: 1.5, Volume: 10,
		Indicators: map[string]float64{"MACD_12_26_9": -0.4, "MACDs_12_26_9": -0.3, "MACDh_12_26_9": -0.1},
	}))
	spec, err := chart.Build(profile.MACD(12, 26, 9), b)
	require.NoError(t, err)

	opts, err := FromSpec(spec)
	require.NoError(t, err)
	require.Len(t, opts.Series, 5)
	assert.Equal(t, "#FF4136", opts.Series[3].NegativeColor)
	assert.Empty(t, opts.Series[1].NegativeColor)

	data, err := Marshal(spec)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"negativeColor": "#FF4136"`)
}
