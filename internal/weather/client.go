package weather

import (
	"context"
	"errors"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/bluele/gcache"

	"github.com/jusunglee/mirror-go/internal/config"
	"github.com/jusunglee/mirror-go/internal/models"
	"github.com/jusunglee/mirror-go/internal/upstream"
)

var errNotObject = errors.New("expected a JSON object")

// forecastResponse is the subset of the Open-Meteo forecast we read.
// Every field is optional; absent values count as zero.
type forecastResponse struct {
	Current *struct {
		Temperature         *float64 `json:"temperature_2m"`
		ApparentTemperature *float64 `json:"apparent_temperature"`
		WeatherCode         *float64 `json:"weathercode"`
		Windspeed           *float64 `json:"windspeed_10m"`
	} `json:"current"`
	Daily *struct {
		MaxTemp []*float64 `json:"temperature_2m_max"`
		MinTemp []*float64 `json:"temperature_2m_min"`
	} `json:"daily"`
}

// Client fetches current conditions for a fixed location
type Client struct {
	baseURL    string
	latitude   float64
	longitude  float64
	timezone   string
	httpClient *http.Client
	cache      gcache.Cache
	cacheTTL   time.Duration
}

// NewClient creates a weather client from the loaded configuration
func NewClient(cfg *config.Config) *Client {
	c := &Client{
		baseURL:   cfg.WeatherAPIURL,
		latitude:  cfg.Latitude,
		longitude: cfg.Longitude,
		timezone:  cfg.Timezone,
		httpClient: &http.Client{
			Timeout: cfg.WeatherTimeout,
		},
		cacheTTL: cfg.WeatherCacheTTL,
	}
	if c.cacheTTL > 0 {
		c.cache = gcache.New(16).
			LRU().
			Expiration(c.cacheTTL).
			Build()
	}
	return c
}

// ForecastURL builds the Open-Meteo request for the configured location
func (c *Client) ForecastURL() string {
	return c.baseURL +
		"?latitude=" + strconv.FormatFloat(c.latitude, 'f', -1, 64) +
		"&longitude=" + strconv.FormatFloat(c.longitude, 'f', -1, 64) +
		"&current=temperature_2m,apparent_temperature,weathercode,windspeed_10m" +
		"&daily=temperature_2m_max,temperature_2m_min,weathercode" +
		"&timezone=" + url.QueryEscape(c.timezone) +
		"&forecast_days=1"
}

// Fetch returns the flattened weather summary
func (c *Client) Fetch(ctx context.Context) (*models.WeatherSummary, error) {
	key := c.ForecastURL()
	if c.cache != nil {
		if v, err := c.cache.Get(key); err == nil {
			summary := v.(models.WeatherSummary)
			return &summary, nil
		}
	}

	var resp *forecastResponse
	if err := upstream.GetJSON(ctx, c.httpClient, key, &resp); err != nil {
		return nil, err
	}
	if resp == nil {
		return nil, &upstream.Error{Op: "decode", Err: errNotObject}
	}

	summary := summarize(resp)
	if c.cache != nil {
		c.cache.Set(key, summary)
	}
	return &summary, nil
}

// summarize flattens a forecast into display values
func summarize(resp *forecastResponse) models.WeatherSummary {
	var temp, feels, code, wind, maxTemp, minTemp float64
	if cur := resp.Current; cur != nil {
		temp = valueOf(cur.Temperature)
		feels = valueOf(cur.ApparentTemperature)
		code = valueOf(cur.WeatherCode)
		wind = valueOf(cur.Windspeed)
	}
	if daily := resp.Daily; daily != nil {
		if len(daily.MaxTemp) > 0 {
			maxTemp = valueOf(daily.MaxTemp[0])
		}
		if len(daily.MinTemp) > 0 {
			minTemp = valueOf(daily.MinTemp[0])
		}
	}

	weatherCode := int(code)
	condition := Lookup(weatherCode)

	return models.WeatherSummary{
		Temperature:  round(temp),
		FeelsLike:    round(feels),
		WeatherCode:  weatherCode,
		WeatherLabel: condition.Label,
		WeatherIcon:  condition.Icon,
		Windspeed:    round(wind),
		MaxTemp:      round(maxTemp),
		MinTemp:      round(minTemp),
	}
}

func valueOf(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

// round rounds halves toward positive infinity, so -2.5 becomes -2
func round(v float64) int {
	return int(math.Floor(v + 0.5))
}
