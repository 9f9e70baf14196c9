package main

import (
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jusunglee/mirror-go/internal/display"
	"github.com/jusunglee/mirror-go/pkg/mirror"
)

func main() {
	defaults := mirror.DefaultConfig()
	var (
		proxyURL = flag.String("proxy-url", defaults.ProxyURL, "Base URL of the mirror proxy server")
		station  = flag.String("station", defaults.Station, "Station to display")
		line     = flag.String("line", defaults.TargetLine, "Subway line id to keep")
		refresh  = flag.Duration("refresh", defaults.SubwayInterval, "Subway poll interval")
		color    = flag.Bool("color", true, "Use ANSI colors")
		verbose  = flag.Bool("v", false, "Debug logging")
	)
	flag.Parse()

	// Logs go to stderr so they do not tear the frame on stdout
	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	config := defaults
	config.ProxyURL = *proxyURL
	config.Station = *station
	config.TargetLine = *line
	config.SubwayInterval = *refresh
	if err := config.Validate(); err != nil {
		slog.Error("Invalid -refresh", "error", err)
		os.Exit(1)
	}

	client, err := mirror.NewLocal(config)
	if err != nil {
		slog.Error("Failed to create mirror client", "error", err)
		os.Exit(1)
	}
	defer client.Close()

	opts := display.DefaultOptions()
	opts.Station = *station
	opts.RefreshLabel = refreshLabel(*refresh)
	opts.Color = *color
	opts.ClearScreen = true
	renderer := display.NewRenderer(opts)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		if err := renderer.Render(os.Stdout, time.Now(), client.Snapshot()); err != nil {
			slog.Error("Failed to render", "error", err)
			return
		}
		select {
		case <-ticker.C:
		case <-quit:
			return
		}
	}
}
