package market

// HighLow scans every candle and returns the highest high and the lowest
// low. It is a global extremum over whatever range the candles cover, not a
// rolling window. ok is false when there are no candles.
func HighLow(candles []Candle) (high, low float64, ok bool) {
	if len(candles) == 0 {
		return 0, 0, false
	}
	high = candles[0].High
	low = candles[0].Low
	for _, c := range candles[1:] {
		if c.High > high {
			high = c.High
		}
		if c.Low < low {
			low = c.Low
		}
	}
	return high, low, true
}
