package weather

// Condition is the display label and icon for a WMO weather code
type Condition struct {
	Label string
	Icon  string
}

// Unknown is used for codes missing from the table
var Unknown = Condition{Label: "알 수 없음", Icon: "❓"}

// WMO weather interpretation codes as reported by Open-Meteo
var conditions = map[int]Condition{
	0:  {"맑음", "☀️"},
	1:  {"대체로 맑음", "🌤️"},
	2:  {"구름 조금", "⛅"},
	3:  {"흐림", "☁️"},
	45: {"안개", "🌫️"},
	48: {"짙은 안개", "🌫️"},
	51: {"가벼운 이슬비", "🌦️"},
	53: {"이슬비", "🌦️"},
	55: {"강한 이슬비", "🌦️"},
	61: {"가벼운 비", "🌧️"},
	63: {"비", "🌧️"},
	65: {"강한 비", "🌧️"},
	71: {"가벼운 눈", "🌨️"},
	73: {"눈", "❄️"},
	75: {"강한 눈", "❄️"},
	77: {"싸락눈", "🌨️"},
	80: {"소나기", "🌦️"},
	81: {"강한 소나기", "🌧️"},
	82: {"폭우", "⛈️"},
	85: {"눈 소나기", "🌨️"},
	86: {"강한 눈 소나기", "❄️"},
	95: {"뇌우", "⛈️"},
	96: {"뇌우+우박", "⛈️"},
	99: {"강한 뇌우+우박", "⛈️"},
}

// Lookup returns the condition for a weather code
func Lookup(code int) Condition {
	if c, ok := conditions[code]; ok {
		return c
	}
	return Unknown
}
