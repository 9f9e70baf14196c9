package mirror

import (
	"context"
	"fmt"
	"time"

	"github.com/jusunglee/mirror-go/internal/arrival"
	"github.com/jusunglee/mirror-go/internal/models"
)

// Client defines the interface for reading the mirror proxies
// Remote talks HTTP; tests and embedders can substitute their own
type Client interface {
	FetchArrivals(ctx context.Context, station string) (*models.ArrivalFeed, error)
	FetchWeather(ctx context.Context) (*models.WeatherSummary, error)
}

// Config holds configuration for the mirror display client
type Config struct {
	ProxyURL        string
	Station         string
	TargetLine      string
	Limit           int
	SubwayInterval  time.Duration
	WeatherInterval time.Duration
	RequestTimeout  time.Duration
}

// DefaultConfig returns default configuration
// 40 seconds matches the upstream arrival refresh; weather changes slowly
func DefaultConfig() Config {
	return Config{
		ProxyURL:        "http://localhost:8080",
		Station:         "반월",
		TargetLine:      arrival.DefaultTargetLine,
		Limit:           arrival.DefaultLimit,
		SubwayInterval:  40 * time.Second,
		WeatherInterval: 10 * time.Minute,
		RequestTimeout:  20 * time.Second,
	}
}

// Validate rejects intervals the poll loops cannot run with
func (c Config) Validate() error {
	if c.SubwayInterval <= 0 {
		return fmt.Errorf("subway interval must be positive, got %s", c.SubwayInterval)
	}
	if c.WeatherInterval <= 0 {
		return fmt.Errorf("weather interval must be positive, got %s", c.WeatherInterval)
	}
	return nil
}
