package store

import (
	"sync"
	"testing"
	"time"

	"github.com/jusunglee/mirror-go/internal/models"
)

func TestStore(t *testing.T) {
	s := NewStore()
	now := time.Now()

	board := models.Board{
		Up:   []models.ClassifiedArrival{{Destination: "당고개", Text: "3분 후"}},
		Down: []models.ClassifiedArrival{{Destination: "오이도", Text: "도착 중", Urgent: true}},
	}

	t.Run("UpdateArrivals", func(t *testing.T) {
		if !s.UpdateArrivals(1, board, now) {
			t.Fatal("Expected first update to be applied")
		}
		snap := s.Snapshot()
		if len(snap.Arrivals.Board.Up) != 1 || snap.Arrivals.Board.Up[0].Destination != "당고개" {
			t.Errorf("Unexpected up bucket %+v", snap.Arrivals.Board.Up)
		}
		if !snap.Arrivals.UpdatedAt.Equal(now) {
			t.Errorf("Expected UpdatedAt %v, got %v", now, snap.Arrivals.UpdatedAt)
		}
	})

	t.Run("SetArrivalsError keeps board", func(t *testing.T) {
		if !s.SetArrivalsError(2, "upstream returned HTTP 500") {
			t.Fatal("Expected error to be applied")
		}
		snap := s.Snapshot()
		if snap.Arrivals.Error != "upstream returned HTTP 500" {
			t.Errorf("Unexpected error %q", snap.Arrivals.Error)
		}
		if len(snap.Arrivals.Board.Down) != 1 {
			t.Error("Expected previous board to be kept")
		}
	})

	t.Run("success clears error", func(t *testing.T) {
		s.UpdateArrivals(3, board, now.Add(time.Minute))
		if snap := s.Snapshot(); snap.Arrivals.Error != "" {
			t.Errorf("Expected error cleared, got %q", snap.Arrivals.Error)
		}
	})

	t.Run("stale results are discarded", func(t *testing.T) {
		if s.UpdateArrivals(2, models.Board{}, now) {
			t.Error("Expected stale update to be rejected")
		}
		if s.SetArrivalsError(3, "late failure") {
			t.Error("Expected stale error to be rejected")
		}
		snap := s.Snapshot()
		if snap.Arrivals.Seq != 3 || snap.Arrivals.Error != "" {
			t.Errorf("Expected seq 3 without error, got %d %q", snap.Arrivals.Seq, snap.Arrivals.Error)
		}
	})

	t.Run("weather", func(t *testing.T) {
		if s.Snapshot().Weather.Summary != nil {
			t.Error("Expected no weather before first update")
		}
		s.UpdateWeather(1, models.WeatherSummary{Temperature: 15, WeatherLabel: "맑음"}, now)
		s.SetWeatherError(2, "timeout")

		snap := s.Snapshot()
		if snap.Weather.Summary == nil || snap.Weather.Summary.Temperature != 15 {
			t.Errorf("Expected last summary to stay visible, got %+v", snap.Weather.Summary)
		}
		if snap.Weather.Error != "timeout" {
			t.Errorf("Expected weather error, got %q", snap.Weather.Error)
		}
	})

	t.Run("GetLastUpdate", func(t *testing.T) {
		if !s.GetLastUpdate().Equal(now.Add(time.Minute)) {
			t.Errorf("Unexpected last update %v", s.GetLastUpdate())
		}
	})
}

func TestSnapshotIsCopy(t *testing.T) {
	s := NewStore()
	s.UpdateArrivals(1, models.Board{Up: []models.ClassifiedArrival{{Text: "3분 후"}}}, time.Now())

	snap := s.Snapshot()
	snap.Arrivals.Board.Up[0].Text = "changed"

	if s.Snapshot().Arrivals.Board.Up[0].Text != "3분 후" {
		t.Error("Snapshot mutation leaked into store")
	}
}

func TestConcurrentUpdates(t *testing.T) {
	s := NewStore()

	var wg sync.WaitGroup
	for i := 1; i <= 50; i++ {
		wg.Add(1)
		go func(seq uint64) {
			defer wg.Done()
			s.UpdateArrivals(seq, models.Board{}, time.Now())
			s.Snapshot()
		}(uint64(i))
	}
	wg.Wait()

	if got := s.Snapshot().Arrivals.Seq; got != 50 {
		t.Errorf("Expected newest sequence 50 to win, got %d", got)
	}
}
