package main

import (
	"strconv"
	"time"
)

// refreshLabel formats the poll interval the way the footer shows it
func refreshLabel(d time.Duration) string {
	if d >= time.Minute && d%time.Minute == 0 {
		return strconv.Itoa(int(d/time.Minute)) + "분"
	}
	return strconv.Itoa(int(d.Round(time.Second)/time.Second)) + "초"
}
