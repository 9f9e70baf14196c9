package store

import (
	"sync"
	"time"

	"github.com/jusunglee/mirror-go/internal/models"
)

// ArrivalState is the latest subway panel state
type ArrivalState struct {
	Board     models.Board
	Error     string
	UpdatedAt time.Time
	Seq       uint64
}

// WeatherState is the latest weather panel state
type WeatherState struct {
	Summary   *models.WeatherSummary
	Error     string
	UpdatedAt time.Time
	Seq       uint64
}

// Snapshot is a consistent copy of both panels
type Snapshot struct {
	Arrivals ArrivalState
	Weather  WeatherState
}

// Store keeps the most recent poll results in memory.
// Each stream accepts an update only if its sequence number is newer than
// the one already applied, so a slow response never replaces a fresher one.
type Store struct {
	mu       sync.RWMutex
	arrivals ArrivalState
	weather  WeatherState
}

// NewStore creates a new store instance
func NewStore() *Store {
	return &Store{}
}

// UpdateArrivals replaces the board and clears any previous error
func (s *Store) UpdateArrivals(seq uint64, board models.Board, at time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if seq <= s.arrivals.Seq {
		return false
	}
	s.arrivals = ArrivalState{
		Board:     board,
		UpdatedAt: at,
		Seq:       seq,
	}
	return true
}

// SetArrivalsError records a failed poll; the previous board is kept
func (s *Store) SetArrivalsError(seq uint64, message string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if seq <= s.arrivals.Seq {
		return false
	}
	s.arrivals.Error = message
	s.arrivals.Seq = seq
	return true
}

// UpdateWeather replaces the weather summary
func (s *Store) UpdateWeather(seq uint64, summary models.WeatherSummary, at time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if seq <= s.weather.Seq {
		return false
	}
	s.weather = WeatherState{
		Summary:   &summary,
		UpdatedAt: at,
		Seq:       seq,
	}
	return true
}

// SetWeatherError records a failed poll; the last summary stays visible
func (s *Store) SetWeatherError(seq uint64, message string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if seq <= s.weather.Seq {
		return false
	}
	s.weather.Error = message
	s.weather.Seq = seq
	return true
}

// Snapshot returns a copy of the current state
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := Snapshot{
		Arrivals: s.arrivals,
		Weather:  s.weather,
	}
	snap.Arrivals.Board.Up = copyArrivals(s.arrivals.Board.Up)
	snap.Arrivals.Board.Down = copyArrivals(s.arrivals.Board.Down)
	if s.weather.Summary != nil {
		summary := *s.weather.Summary
		snap.Weather.Summary = &summary
	}
	return snap
}

// GetLastUpdate returns the time of the last successful arrivals poll
func (s *Store) GetLastUpdate() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.arrivals.UpdatedAt
}

func copyArrivals(in []models.ClassifiedArrival) []models.ClassifiedArrival {
	if in == nil {
		return nil
	}
	out := make([]models.ClassifiedArrival, len(in))
	copy(out, in)
	return out
}
