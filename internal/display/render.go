// Package display renders the mirror panels as plain text.
package display

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"time"

	"golang.org/x/text/width"

	"github.com/jusunglee/mirror-go/internal/calendar"
	"github.com/jusunglee/mirror-go/internal/models"
	"github.com/jusunglee/mirror-go/internal/store"
)

var (
	weekdays  = [...]string{"일요일", "월요일", "화요일", "수요일", "목요일", "금요일", "토요일"}
	dayHeader = [...]string{"일", "월", "화", "수", "목", "금", "토"}
)

// Terminal columns reserved for the destination name
const destinationWidth = 12

const (
	ansiReset = "\033[0m"
	ansiDim   = "\033[2m"
	ansiRed   = "\033[31m"
	ansiBlue  = "\033[34m"
	ansiBold  = "\033[1m"
	ansiClear = "\033[H\033[2J"
)

// Options controls the subway panel labels and styling
type Options struct {
	Station      string
	LineName     string
	UpLabel      string
	DownLabel    string
	RefreshLabel string
	Color        bool
	ClearScreen  bool
}

// DefaultOptions returns the labels for 반월 on line 4
func DefaultOptions() Options {
	return Options{
		Station:      "반월",
		LineName:     "4호선",
		UpLabel:      "당고개 · 진접 방향",
		DownLabel:    "오이도 방향",
		RefreshLabel: "40초",
	}
}

// Renderer draws a full frame from a store snapshot
type Renderer struct {
	opts Options
}

// NewRenderer creates a renderer
func NewRenderer(opts Options) *Renderer {
	return &Renderer{opts: opts}
}

// Render writes one frame in a single write
func (r *Renderer) Render(w io.Writer, now time.Time, snap store.Snapshot) error {
	var buf bytes.Buffer
	if r.opts.ClearScreen {
		buf.WriteString(ansiClear)
	}

	r.clock(&buf, now)
	buf.WriteString("\n")
	r.calendar(&buf, calendar.New(now))
	buf.WriteString("\n")
	r.weather(&buf, snap.Weather)
	buf.WriteString("\n")
	r.subway(&buf, snap.Arrivals)

	_, err := w.Write(buf.Bytes())
	return err
}

func (r *Renderer) clock(buf *bytes.Buffer, now time.Time) {
	fmt.Fprintf(buf, "%s %s\n", now.Format("15:04"), r.style(ansiDim, now.Format("05")))
	fmt.Fprintf(buf, "%d년 %d월 %d일\n", now.Year(), int(now.Month()), now.Day())
	fmt.Fprintf(buf, "%s\n", weekdays[now.Weekday()])
}

func (r *Renderer) calendar(buf *bytes.Buffer, m calendar.Month) {
	fmt.Fprintf(buf, "%d년 %d월\n", m.Year, int(m.Month))
	for i, h := range dayHeader {
		fmt.Fprintf(buf, " %s ", r.style(weekdayColor(time.Weekday(i)), h))
	}
	buf.WriteString("\n")

	for _, week := range m.Weeks() {
		for _, c := range week {
			buf.WriteString(r.cell(c))
		}
		buf.WriteString("\n")
	}
}

func (r *Renderer) cell(c calendar.Cell) string {
	switch {
	case c.Today:
		return r.style(ansiBold, fmt.Sprintf("[%2d]", c.Day))
	case !c.Current:
		if r.opts.Color {
			return r.style(ansiDim, fmt.Sprintf(" %2d ", c.Day))
		}
		return fmt.Sprintf("(%2d)", c.Day)
	default:
		return r.style(weekdayColor(c.Weekday), fmt.Sprintf(" %2d ", c.Day))
	}
}

func (r *Renderer) weather(buf *bytes.Buffer, state store.WeatherState) {
	if state.Summary == nil {
		buf.WriteString("날씨 로딩 중...\n")
		return
	}
	w := state.Summary
	fmt.Fprintf(buf, "%s %d°\n", w.WeatherIcon, w.Temperature)
	fmt.Fprintf(buf, "%s\n", w.WeatherLabel)
	fmt.Fprintf(buf, "↑%d° ↓%d°\n", w.MaxTemp, w.MinTemp)
	fmt.Fprintf(buf, "체감 %d° · 바람 %d km/h\n", w.FeelsLike, w.Windspeed)
}

func (r *Renderer) subway(buf *bytes.Buffer, state store.ArrivalState) {
	fmt.Fprintf(buf, "[%s] %s역 실시간 도착\n", r.opts.LineName, r.opts.Station)

	if state.Error != "" {
		fmt.Fprintf(buf, "%s\n", r.style(ansiRed, state.Error))
	} else {
		fmt.Fprintf(buf, "▲ %s\n", r.opts.UpLabel)
		r.trains(buf, state.Board.Bucket(models.DirectionUp))
		buf.WriteString("----\n")
		fmt.Fprintf(buf, "▼ %s\n", r.opts.DownLabel)
		r.trains(buf, state.Board.Bucket(models.DirectionDown))
	}

	if !state.UpdatedAt.IsZero() {
		fmt.Fprintf(buf, "최종 갱신 %s · %s 자동 새로고침\n", state.UpdatedAt.Format("15:04:05"), r.opts.RefreshLabel)
	}
}

func (r *Renderer) trains(buf *bytes.Buffer, trains []models.ClassifiedArrival) {
	if len(trains) == 0 {
		buf.WriteString("  조회 중...\n")
		return
	}
	for _, t := range trains {
		text := t.Text
		if t.Urgent {
			if r.opts.Color {
				text = r.style(ansiRed+ansiBold, text)
			} else {
				text = "*" + text
			}
		}
		fmt.Fprintf(buf, "  %s %s\n", padRight(t.Destination, destinationWidth), text)
	}
}

func (r *Renderer) style(code, s string) string {
	if !r.opts.Color || code == "" {
		return s
	}
	return code + s + ansiReset
}

func weekdayColor(d time.Weekday) string {
	switch d {
	case time.Sunday:
		return ansiRed
	case time.Saturday:
		return ansiBlue
	}
	return ""
}

// displayWidth counts terminal columns; Hangul and other wide runes take two
func displayWidth(s string) int {
	n := 0
	for _, r := range s {
		switch width.LookupRune(r).Kind() {
		case width.EastAsianWide, width.EastAsianFullwidth:
			n += 2
		default:
			n++
		}
	}
	return n
}

func padRight(s string, cols int) string {
	if w := displayWidth(s); w < cols {
		return s + strings.Repeat(" ", cols-w)
	}
	return s
}
