package config

import (
	"errors"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// MissingKeyMessage is returned to clients when the subway API key is absent
const MissingKeyMessage = "API 키가 설정되지 않았습니다"

// ErrMissingCredential is wrapped by ConfigurationError for a missing API key
var ErrMissingCredential = errors.New("credential not configured")

// ConfigurationError reports a request that cannot proceed because of missing configuration
type ConfigurationError struct {
	Key string
}

func (e *ConfigurationError) Error() string {
	return MissingKeyMessage
}

func (e *ConfigurationError) Unwrap() error {
	return ErrMissingCredential
}

// Provider looks up a single configuration value
type Provider interface {
	Lookup(key string) (string, bool)
}

// EnvProvider reads from the process environment
type EnvProvider struct{}

func (EnvProvider) Lookup(key string) (string, bool) {
	return os.LookupEnv(key)
}

// MapProvider serves values from a fixed map
type MapProvider map[string]string

func (m MapProvider) Lookup(key string) (string, bool) {
	v, ok := m[key]
	return v, ok
}

// Config holds all configuration for the mirror services
type Config struct {
	Port string

	// Seoul realtime subway arrivals
	SubwayKey      string
	SubwayAPIURL   string
	DefaultStation string
	SubwayTimeout  time.Duration

	// Open-Meteo
	WeatherAPIURL   string
	Latitude        float64
	Longitude       float64
	Timezone        string
	WeatherTimeout  time.Duration
	WeatherCacheTTL time.Duration

	CORSOrigins []string
	LogLevel    slog.Level
}

// Load reads configuration from the provider with sensible defaults
func Load(p Provider) *Config {
	return &Config{
		Port: getString(p, "PORT", "8080"),

		SubwayKey:      getString(p, "SUBWAY_KEY", ""),
		SubwayAPIURL:   strings.TrimRight(getString(p, "SUBWAY_API_URL", "http://swopenapi.seoul.go.kr/api/subway"), "/"),
		DefaultStation: getString(p, "SUBWAY_STATION", "반월"),
		SubwayTimeout:  getDuration(p, "SUBWAY_TIMEOUT", 15*time.Second),

		WeatherAPIURL:   getString(p, "WEATHER_API_URL", "https://api.open-meteo.com/v1/forecast"),
		Latitude:        getFloat(p, "WEATHER_LAT", 37.3952),
		Longitude:       getFloat(p, "WEATHER_LON", 126.8302),
		Timezone:        getString(p, "WEATHER_TIMEZONE", "Asia/Seoul"),
		WeatherTimeout:  getDuration(p, "WEATHER_TIMEOUT", 6*time.Second),
		WeatherCacheTTL: getDuration(p, "WEATHER_CACHE_TTL", 10*time.Minute),

		CORSOrigins: getList(p, "CORS_ORIGINS", []string{"*"}),
		LogLevel:    getLevel(p, "LOG_LEVEL", slog.LevelInfo),
	}
}

// LoadDotEnv loads .env files into the process environment.
// Later files override earlier ones; missing files are skipped.
func LoadDotEnv(base string, overrides ...string) {
	_ = godotenv.Load(base)
	for _, path := range overrides {
		_ = godotenv.Overload(path)
	}
}

// HasSubwayKey reports whether the subway API key is configured
func (c *Config) HasSubwayKey() bool {
	return c.SubwayKey != ""
}

func getString(p Provider, key, defaultValue string) string {
	if value, ok := p.Lookup(key); ok && value != "" {
		return value
	}
	return defaultValue
}

func getDuration(p Provider, key string, defaultValue time.Duration) time.Duration {
	value, ok := p.Lookup(key)
	if !ok || value == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(value); err == nil && d >= 0 {
		return d
	}
	// Bare integers are seconds
	if secs, err := strconv.Atoi(value); err == nil && secs >= 0 {
		return time.Duration(secs) * time.Second
	}
	slog.Warn("Ignoring invalid duration", "key", key, "value", value)
	return defaultValue
}

func getFloat(p Provider, key string, defaultValue float64) float64 {
	if value, ok := p.Lookup(key); ok && value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
		slog.Warn("Ignoring invalid number", "key", key, "value", value)
	}
	return defaultValue
}

func getList(p Provider, key string, defaultValue []string) []string {
	value, ok := p.Lookup(key)
	if !ok || strings.TrimSpace(value) == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}

func getLevel(p Provider, key string, defaultValue slog.Level) slog.Level {
	value, ok := p.Lookup(key)
	if !ok || value == "" {
		return defaultValue
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(value)); err != nil {
		slog.Warn("Ignoring invalid log level", "key", key, "value", value)
		return defaultValue
	}
	return level
}
