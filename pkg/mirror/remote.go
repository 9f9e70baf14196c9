package mirror

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/jusunglee/mirror-go/internal/models"
	"github.com/jusunglee/mirror-go/internal/upstream"
)

// RemoteClient reads the proxies served by cmd/server
type RemoteClient struct {
	baseURL    *url.URL
	httpClient *http.Client
}

// NewRemote creates a client for the proxy at config.ProxyURL
func NewRemote(config Config) (*RemoteClient, error) {
	u, err := url.Parse(strings.TrimRight(config.ProxyURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid proxy url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid proxy url %q: scheme and host required", config.ProxyURL)
	}
	return &RemoteClient{
		baseURL:    u,
		httpClient: &http.Client{Timeout: config.RequestTimeout},
	}, nil
}

// FetchArrivals returns the subway proxy response for a station.
// An error body from the proxy comes back in ArrivalFeed.Error, not as err.
func (c *RemoteClient) FetchArrivals(ctx context.Context, station string) (*models.ArrivalFeed, error) {
	q := url.Values{}
	if station != "" {
		q.Set("station", station)
	}

	var feed models.ArrivalFeed
	if err := c.get(ctx, "/subway-proxy", q, &feed, func() bool { return feed.Error != "" }); err != nil {
		return nil, err
	}
	return &feed, nil
}

type weatherResponse struct {
	Error string `json:"error"`
	models.WeatherSummary
}

// FetchWeather returns the weather proxy summary
func (c *RemoteClient) FetchWeather(ctx context.Context) (*models.WeatherSummary, error) {
	var resp weatherResponse
	if err := c.get(ctx, "/weather-proxy", nil, &resp, func() bool { return resp.Error != "" }); err != nil {
		return nil, err
	}
	if resp.Error != "" {
		return nil, errors.New(resp.Error)
	}
	return &resp.WeatherSummary, nil
}

// get decodes the proxy body whatever the status, since error responses
// carry a JSON message. hasError reports whether the decoded body did.
func (c *RemoteClient) get(ctx context.Context, path string, q url.Values, v any, hasError func() bool) error {
	u := *c.baseURL
	u.Path += path
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return &upstream.Error{Op: "request", Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &upstream.Error{Op: "request", Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &upstream.Error{Op: "read", Err: err}
	}

	ok := resp.StatusCode >= 200 && resp.StatusCode <= 299
	if err := json.Unmarshal(body, v); err != nil {
		if !ok {
			return &upstream.Error{Op: "status", StatusCode: resp.StatusCode}
		}
		return &upstream.Error{Op: "decode", Err: err}
	}
	if !ok && !hasError() {
		return &upstream.Error{Op: "status", StatusCode: resp.StatusCode}
	}
	return nil
}
