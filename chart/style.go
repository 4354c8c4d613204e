package chart

// Style is the fixed set of styling attributes that do not belong to any
// indicator profile.
type Style struct {
	PriceTitle  string
	PriceName   string
	VolumeTitle string
	VolumeName  string

	CandleDown  string
	CandleUp    string
	VolumeColor string
	HighColor   string
	LowColor    string
	HighLabel   string
	LowLabel    string
	RangeDash   string
	RangeAlign  string
	LineWidth   int
	LevelAlign  string
}

// DefaultStyle is the global style table used by Build.
var DefaultStyle = Style{
	PriceTitle:  "Stock Price",
	PriceName:   "Stock Price",
	VolumeTitle: "Volume",
	VolumeName:  "Volume",

	CandleDown:  "#FF4136",
	CandleUp:    "#3D9970",
	VolumeColor: "#95a5a6",
	HighColor:   "#FF4136",
	LowColor:    "#3D9970",
	HighLabel:   "52-week high",
	LowLabel:    "52-week low",
	RangeDash:   "ShortDash",
	RangeAlign:  "left",
	LineWidth:   1,
	LevelAlign:  "right",
}
