package transit

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jusunglee/mirror-go/internal/config"
	"github.com/jusunglee/mirror-go/internal/upstream"
)

func newTestClient(baseURL, key string) *Client {
	return NewClient(&config.Config{
		SubwayAPIURL:  baseURL,
		SubwayKey:     key,
		SubwayTimeout: 2 * time.Second,
	})
}

func TestStationURL(t *testing.T) {
	c := newTestClient("http://swopenapi.seoul.go.kr/api/subway", "sample")

	tests := []struct {
		station  string
		expected string
	}{
		{"강남", "http://swopenapi.seoul.go.kr/api/subway/sample/json/realtimeStationArrival/0/20/%EA%B0%95%EB%82%A8"},
		{"반월", "http://swopenapi.seoul.go.kr/api/subway/sample/json/realtimeStationArrival/0/20/%EB%B0%98%EC%9B%94"},
		{"a b/c", "http://swopenapi.seoul.go.kr/api/subway/sample/json/realtimeStationArrival/0/20/a%20b%2Fc"},
	}

	for _, tt := range tests {
		t.Run(tt.station, func(t *testing.T) {
			if got := c.StationURL(tt.station); got != tt.expected {
				t.Errorf("StationURL(%q) = %q, want %q", tt.station, got, tt.expected)
			}
		})
	}
}

func TestFetchStation(t *testing.T) {
	var requestURI string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestURI = r.RequestURI
		w.Write([]byte(`{"errorMessage":{"code":"INFO-000"},"realtimeArrivalList":[{"subwayId":"1004"}]}`))
	}))
	defer server.Close()

	c := newTestClient(server.URL+"/api/subway", "sample")
	body, err := c.FetchStation(context.Background(), "강남")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	expectedURI := "/api/subway/sample/json/realtimeStationArrival/0/20/%EA%B0%95%EB%82%A8"
	if requestURI != expectedURI {
		t.Errorf("Expected request %s, got %s", expectedURI, requestURI)
	}
	if _, ok := body["realtimeArrivalList"]; !ok {
		t.Error("Expected realtimeArrivalList to be passed through")
	}
	if string(body["errorMessage"]) != `{"code":"INFO-000"}` {
		t.Errorf("Expected errorMessage untouched, got %s", body["errorMessage"])
	}
}

func TestFetchStationMissingKey(t *testing.T) {
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
	}))
	defer server.Close()

	c := newTestClient(server.URL, "")
	_, err := c.FetchStation(context.Background(), "반월")

	var cerr *config.ConfigurationError
	if !errors.As(err, &cerr) {
		t.Fatalf("Expected ConfigurationError, got %v", err)
	}
	if atomic.LoadInt32(&hits) != 0 {
		t.Errorf("Expected no upstream call, got %d", hits)
	}
}

func TestFetchStationRejectsNonObject(t *testing.T) {
	for _, body := range []string{`null`, `[1,2]`} {
		t.Run(body, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(body))
			}))
			defer server.Close()

			c := newTestClient(server.URL, "sample")
			_, err := c.FetchStation(context.Background(), "반월")

			var uerr *upstream.Error
			if !errors.As(err, &uerr) || uerr.Op != "decode" {
				t.Errorf("Expected decode error, got %v", err)
			}
		})
	}
}
