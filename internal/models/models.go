package models

import (
	"time"
)

// Direction is the travel direction of a train relative to the station
type Direction string

const (
	DirectionUp   Direction = "up"
	DirectionDown Direction = "down"
)

// ArrivalRecord is one entry of the upstream realtimeArrivalList
type ArrivalRecord struct {
	SubwayID    string `json:"subwayId"`
	UpdnLine    string `json:"updnLine"`
	TrainLineNm string `json:"trainLineNm"`
	StatnNm     string `json:"statnNm"`
	BstatnNm    string `json:"bstatnNm"`
	BtrainNo    string `json:"btrainNo"`
	ArvlMsg2    string `json:"arvlMsg2"`
	ArvlMsg3    string `json:"arvlMsg3"`
	ArvlCd      string `json:"arvlCd"`
	RecptnDt    string `json:"recptnDt"`
}

// Destination returns the name shown next to a train
func (r ArrivalRecord) Destination() string {
	if r.BstatnNm != "" {
		return r.BstatnNm
	}
	return r.TrainLineNm
}

// ProxyMeta is attached to every transit proxy response
type ProxyMeta struct {
	FetchedAt string `json:"fetchedAt"`
	Station   string `json:"station"`
}

// ArrivalFeed is the transit proxy response as seen by the display
type ArrivalFeed struct {
	Error               string          `json:"error,omitempty"`
	RealtimeArrivalList []ArrivalRecord `json:"realtimeArrivalList"`
	Meta                *ProxyMeta      `json:"_meta,omitempty"`
}

// ClassifiedArrival is a train ready for display
type ClassifiedArrival struct {
	Destination string `json:"destination"`
	Text        string `json:"text"`
	Urgent      bool   `json:"urgent"`
	Message     string `json:"message"`
}

// DropStats counts records removed during normalization
type DropStats struct {
	Line      int `json:"line"`
	Direction int `json:"direction"`
}

// Total returns the number of dropped records
func (d DropStats) Total() int {
	return d.Line + d.Direction
}

// Board groups the nearest trains by direction
type Board struct {
	Up      []ClassifiedArrival `json:"up"`
	Down    []ClassifiedArrival `json:"down"`
	Dropped DropStats           `json:"dropped"`
}

// Bucket returns the trains for a direction
func (b Board) Bucket(dir Direction) []ClassifiedArrival {
	if dir == DirectionDown {
		return b.Down
	}
	return b.Up
}

// WeatherSummary is the flattened weather proxy response
type WeatherSummary struct {
	Temperature  int    `json:"temperature"`
	FeelsLike    int    `json:"feelsLike"`
	WeatherCode  int    `json:"weatherCode"`
	WeatherLabel string `json:"weatherLabel"`
	WeatherIcon  string `json:"weatherIcon"`
	Windspeed    int    `json:"windspeed"`
	MaxTemp      int    `json:"maxTemp"`
	MinTemp      int    `json:"minTemp"`
}

// NewProxyMeta stamps a fetch for the given station
func NewProxyMeta(now time.Time, station string) ProxyMeta {
	return ProxyMeta{
		FetchedAt: now.UTC().Format("2006-01-02T15:04:05.000Z"),
		Station:   station,
	}
}
