package mirror

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jusunglee/mirror-go/internal/upstream"
)

func newTestRemote(t *testing.T, handler http.HandlerFunc) *RemoteClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	config := DefaultConfig()
	config.ProxyURL = srv.URL + "/"
	config.RequestTimeout = time.Second
	c, err := NewRemote(config)
	if err != nil {
		t.Fatalf("NewRemote failed: %v", err)
	}
	return c
}

func TestNewRemoteInvalidURL(t *testing.T) {
	config := DefaultConfig()
	config.ProxyURL = "localhost"
	if _, err := NewRemote(config); err == nil {
		t.Error("Expected error for URL without scheme")
	}
}

func TestFetchArrivals(t *testing.T) {
	var gotPath, gotStation string
	c := newTestRemote(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotStation = r.URL.Query().Get("station")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"errorMessage":{"status":200},"realtimeArrivalList":[
			{"subwayId":"1004","updnLine":"상행","bstatnNm":"당고개","arvlMsg2":"3분 후 (대야미)"}
		],"_meta":{"fetchedAt":"2026-10-19T00:30:05.000Z","station":"반월"}}`))
	})

	feed, err := c.FetchArrivals(context.Background(), "반월")
	if err != nil {
		t.Fatalf("FetchArrivals failed: %v", err)
	}
	if gotPath != "/subway-proxy" || gotStation != "반월" {
		t.Errorf("Expected /subway-proxy?station=반월, got %s?station=%s", gotPath, gotStation)
	}
	if len(feed.RealtimeArrivalList) != 1 || feed.RealtimeArrivalList[0].BstatnNm != "당고개" {
		t.Errorf("Unexpected arrivals %+v", feed.RealtimeArrivalList)
	}
	if feed.Meta == nil || feed.Meta.Station != "반월" {
		t.Errorf("Expected _meta station 반월, got %+v", feed.Meta)
	}
}

func TestFetchArrivalsErrorBody(t *testing.T) {
	c := newTestRemote(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":"API 키가 설정되지 않았습니다"}`))
	})

	feed, err := c.FetchArrivals(context.Background(), "반월")
	if err != nil {
		t.Fatalf("Expected error body to be returned in the feed, got %v", err)
	}
	if feed.Error != "API 키가 설정되지 않았습니다" {
		t.Errorf("Expected configuration message, got %q", feed.Error)
	}
}

func TestFetchStatusWithoutErrorBody(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"html", "<html>bad gateway</html>"},
		{"empty object", "{}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestRemote(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadGateway)
				w.Write([]byte(tt.body))
			})

			_, err := c.FetchArrivals(context.Background(), "반월")
			var uerr *upstream.Error
			if !errors.As(err, &uerr) || uerr.Op != "status" || uerr.StatusCode != http.StatusBadGateway {
				t.Errorf("Expected status 502 error, got %v", err)
			}
		})
	}
}

func TestFetchWeather(t *testing.T) {
	c := newTestRemote(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/weather-proxy" {
			t.Errorf("Unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(`{"temperature":15,"feelsLike":12,"weatherCode":61,"weatherLabel":"가벼운 비","weatherIcon":"🌧️","windspeed":8,"maxTemp":18,"minTemp":-2}`))
	})

	w, err := c.FetchWeather(context.Background())
	if err != nil {
		t.Fatalf("FetchWeather failed: %v", err)
	}
	if w.Temperature != 15 || w.WeatherLabel != "가벼운 비" || w.MinTemp != -2 {
		t.Errorf("Unexpected summary %+v", w)
	}
}

func TestFetchWeatherErrorBody(t *testing.T) {
	c := newTestRemote(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":"upstream returned HTTP 503"}`))
	})

	_, err := c.FetchWeather(context.Background())
	if err == nil || err.Error() != "upstream returned HTTP 503" {
		t.Errorf("Expected proxy error message, got %v", err)
	}
}

func TestFetchDecodeError(t *testing.T) {
	c := newTestRemote(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	})

	_, err := c.FetchWeather(context.Background())
	var uerr *upstream.Error
	if !errors.As(err, &uerr) || uerr.Op != "decode" {
		t.Errorf("Expected decode error, got %v", err)
	}
}
