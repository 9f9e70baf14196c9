// Package calendar lays out a month as a fixed six-week grid.
package calendar

import "time"

// Cells in a six-week, Sunday-first grid
const GridSize = 42

// Cell is one day in the month grid
type Cell struct {
	Day     int
	Current bool // belongs to the displayed month
	Today   bool
	Weekday time.Weekday
}

// Month is the grid for one calendar month
type Month struct {
	Year  int
	Month time.Month
	Cells [GridSize]Cell
}

// New builds the grid for the month containing today.
// Leading cells hold the tail of the previous month and trailing cells
// the start of the next one.
func New(today time.Time) Month {
	year, month, date := today.Date()
	loc := today.Location()

	first := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	lastDate := daysIn(year, month, loc)
	prevLastDate := first.AddDate(0, 0, -1).Day()
	lead := int(first.Weekday())

	m := Month{Year: year, Month: month}
	i := 0
	for d := prevLastDate - lead + 1; d <= prevLastDate; d++ {
		m.Cells[i] = Cell{Day: d}
		i++
	}
	for d := 1; d <= lastDate; d++ {
		m.Cells[i] = Cell{Day: d, Current: true, Today: d == date}
		i++
	}
	for d := 1; i < GridSize; d++ {
		m.Cells[i] = Cell{Day: d}
		i++
	}

	for i := range m.Cells {
		m.Cells[i].Weekday = time.Weekday(i % 7)
	}
	return m
}

// Weeks returns the grid as six rows of seven days
func (m Month) Weeks() [][]Cell {
	weeks := make([][]Cell, 0, GridSize/7)
	for i := 0; i < GridSize; i += 7 {
		weeks = append(weeks, m.Cells[i:i+7])
	}
	return weeks
}

func daysIn(year int, month time.Month, loc *time.Location) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, loc).Day()
}
