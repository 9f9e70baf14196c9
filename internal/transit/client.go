package transit

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/jusunglee/mirror-go/internal/config"
	"github.com/jusunglee/mirror-go/internal/upstream"
)

// Seoul Open Data returns at most 20 arrivals per station query
const (
	firstRow = 0
	lastRow  = 20
)

var errNotObject = errors.New("expected a JSON object")

// Client queries the Seoul realtime station arrival API
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a client from the loaded configuration
func NewClient(cfg *config.Config) *Client {
	return &Client{
		baseURL: cfg.SubwayAPIURL,
		apiKey:  cfg.SubwayKey,
		httpClient: &http.Client{
			Timeout: cfg.SubwayTimeout,
		},
	}
}

// StationURL builds the upstream arrival URL for a station
func (c *Client) StationURL(station string) string {
	return c.baseURL + "/" + url.PathEscape(c.apiKey) +
		"/json/realtimeStationArrival/" +
		strconv.Itoa(firstRow) + "/" + strconv.Itoa(lastRow) + "/" +
		url.PathEscape(station)
}

// FetchStation returns the upstream JSON object for a station, untouched.
// A missing API key fails with *config.ConfigurationError before any request is made.
func (c *Client) FetchStation(ctx context.Context, station string) (map[string]json.RawMessage, error) {
	if c.apiKey == "" {
		return nil, &config.ConfigurationError{Key: "SUBWAY_KEY"}
	}

	var body map[string]json.RawMessage
	if err := upstream.GetJSON(ctx, c.httpClient, c.StationURL(station), &body); err != nil {
		return nil, err
	}
	if body == nil {
		return nil, &upstream.Error{Op: "decode", Err: errNotObject}
	}
	return body, nil
}
