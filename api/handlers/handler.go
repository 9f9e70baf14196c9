package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/gorilla/mux"
	"github.com/jusunglee/mirror-go/internal/config"
	"github.com/jusunglee/mirror-go/internal/models"
)

// TransitFetcher returns the raw upstream arrival document for a station
type TransitFetcher interface {
	FetchStation(ctx context.Context, station string) (map[string]json.RawMessage, error)
}

// WeatherFetcher returns the current weather summary
type WeatherFetcher interface {
	Fetch(ctx context.Context) (*models.WeatherSummary, error)
}

// Handler handles HTTP requests
type Handler struct {
	transit        TransitFetcher
	weather        WeatherFetcher
	defaultStation string
	hasKey         bool
	now            func() time.Time
}

// NewHandler creates a new HTTP handler
func NewHandler(transit TransitFetcher, weather WeatherFetcher, cfg *config.Config) *Handler {
	return &Handler{
		transit:        transit,
		weather:        weather,
		defaultStation: cfg.DefaultStation,
		hasKey:         cfg.HasSubwayKey(),
		now:            time.Now,
	}
}

// RegisterRoutes registers all routes
func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/", h.handleIndex).Methods("GET")
	r.HandleFunc("/health", h.handleHealth).Methods("GET")
	r.HandleFunc(subwayPath, h.handleSubway).Methods("GET")
	r.HandleFunc("/weather-proxy", h.handleWeather).Methods("GET")

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h.writeError(w, "Not found", http.StatusNotFound)
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == subwayPath {
			setSubwayHeaders(w)
		}
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
	})
}

const subwayPath = "/subway-proxy"

// setSubwayHeaders applies to every /subway-proxy response, errors included
func setSubwayHeaders(w http.ResponseWriter) {
	w.Header().Set("Cache-Control", "no-cache, no-store")
	w.Header().Set("Access-Control-Allow-Origin", "*")
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// SubwayErrorResponse is an upstream failure with request metadata
type SubwayErrorResponse struct {
	Error string           `json:"error"`
	Meta  models.ProxyMeta `json:"_meta"`
}

// HealthResponse reports liveness
type HealthResponse struct {
	Status       string `json:"status"`
	SubwayKeySet bool   `json:"subwayKeyConfigured"`
}

func (h *Handler) handleIndex(w http.ResponseWriter, r *http.Request) {
	response := map[string]string{
		"title":   "mirror-go",
		"subway":  subwayPath + "?station=" + url.QueryEscape(h.defaultStation),
		"weather": "/weather-proxy",
	}
	h.writeJSON(w, response)
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, HealthResponse{Status: "ok", SubwayKeySet: h.hasKey})
}

func (h *Handler) handleSubway(w http.ResponseWriter, r *http.Request) {
	setSubwayHeaders(w)

	station := r.URL.Query().Get("station")
	if station == "" {
		station = h.defaultStation
	}

	body, err := h.transit.FetchStation(r.Context(), station)
	if err != nil {
		var cerr *config.ConfigurationError
		if errors.As(err, &cerr) {
			slog.Warn("Subway proxy not configured", "key", cerr.Key)
			h.writeError(w, err.Error(), http.StatusInternalServerError)
			return
		}

		slog.Error("Subway upstream failed", "station", station, "error", err)
		h.writeJSONStatus(w, SubwayErrorResponse{
			Error: err.Error(),
			Meta:  models.NewProxyMeta(h.now(), station),
		}, http.StatusInternalServerError)
		return
	}

	meta, err := json.Marshal(models.NewProxyMeta(h.now(), station))
	if err != nil {
		h.writeError(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
	body["_meta"] = meta
	h.writeJSON(w, body)
}

func (h *Handler) handleWeather(w http.ResponseWriter, r *http.Request) {
	summary, err := h.weather.Fetch(r.Context())
	if err != nil {
		slog.Error("Weather upstream failed", "error", err)
		h.writeError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Cache-Control", "max-age=600")
	h.writeJSON(w, summary)
}

func (h *Handler) writeJSON(w http.ResponseWriter, data interface{}) {
	h.writeJSONStatus(w, data, http.StatusOK)
}

func (h *Handler) writeJSONStatus(w http.ResponseWriter, data interface{}, status int) {
	buf, err := json.Marshal(data)
	if err != nil {
		h.writeError(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(buf)
}

func (h *Handler) writeError(w http.ResponseWriter, message string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(ErrorResponse{Error: message})
}
