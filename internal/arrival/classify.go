package arrival

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	minutesRegex = regexp.MustCompile(`(\d+)분`)
	leadingInt   = regexp.MustCompile(`\d+`)
)

// Display texts
const (
	TextArrivingSoon = "곧 도착"
	TextArrivingNow  = "도착 중"
	TextMissing      = "-"
)

// Urgent trains are at most this many minutes away
const urgentMinutes = 2

// maxRawRunes bounds the fallback text for unrecognized messages
const maxRawRunes = 10

// Classification is the display text and urgency of an arrival message
type Classification struct {
	Text   string
	Urgent bool
}

// Classify turns a free-text arrival message into a short label.
// Departure phrases are tested before the minute pattern because some
// messages carry both ("전역출발 (3분)").
func Classify(msg string) Classification {
	switch {
	case msg == "":
		return Classification{Text: TextMissing}
	case strings.Contains(msg, "전역출발") || strings.Contains(msg, "출발"):
		return Classification{Text: TextArrivingSoon, Urgent: true}
	case strings.Contains(msg, "진입") || strings.Contains(msg, "도착"):
		return Classification{Text: TextArrivingNow, Urgent: true}
	}

	if m := minutesRegex.FindStringSubmatch(msg); m != nil {
		n, _ := strconv.Atoi(m[1])
		return Classification{Text: m[1] + "분 후", Urgent: n <= urgentMinutes}
	}

	return Classification{Text: truncate(msg, maxRawRunes)}
}

// Minutes returns the first integer in the message, or 0 if there is none.
// A message without digits therefore sorts like a train arriving now.
func Minutes(msg string) int {
	m := leadingInt.FindString(msg)
	if m == "" {
		return 0
	}
	// Out of range values saturate, sorting such trains last
	n, _ := strconv.Atoi(m)
	return n
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
