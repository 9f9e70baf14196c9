package main

import (
	"context"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/cors"
	"github.com/gorilla/mux"
	"github.com/jusunglee/mirror-go/api/handlers"
	"github.com/jusunglee/mirror-go/internal/config"
	"github.com/jusunglee/mirror-go/internal/transit"
	"github.com/jusunglee/mirror-go/internal/weather"
)

func main() {
	config.LoadDotEnv(".env", ".env.local")
	cfg := config.Load(config.EnvProvider{})

	port := flag.String("port", cfg.Port, "Server port")
	flag.Parse()

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel})))

	// Missing key is reported per request, the weather proxy still works
	if !cfg.HasSubwayKey() {
		slog.Warn("SUBWAY_KEY not set, /subway-proxy will return a configuration error")
	}

	r := mux.NewRouter()
	h := handlers.NewHandler(transit.NewClient(cfg), weather.NewClient(cfg), cfg)
	h.RegisterRoutes(r)

	// mux only runs middleware on matched routes, so wrap the whole router
	var handler http.Handler = r
	handler = cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSOrigins,
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		ExposedHeaders: []string{requestIDHeader},
		MaxAge:         300,
	})(handler)
	handler = loggingMiddleware(handler)

	srv := &http.Server{
		Addr:         ":" + *port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		slog.Info("Server starting", "port", *port, "station", cfg.DefaultStation)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	slog.Info("Shutting down server...")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("Server stopped")
}
