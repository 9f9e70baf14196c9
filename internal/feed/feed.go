package feed

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jusunglee/mirror-go/internal/arrival"
	"github.com/jusunglee/mirror-go/internal/models"
	"github.com/jusunglee/mirror-go/internal/store"
)

// Source fetches data from the mirror proxies
type Source interface {
	FetchArrivals(ctx context.Context, station string) (*models.ArrivalFeed, error)
	FetchWeather(ctx context.Context) (*models.WeatherSummary, error)
}

// Options configures the polling manager
type Options struct {
	Station         string
	TargetLine      string
	Limit           int
	SubwayInterval  time.Duration
	WeatherInterval time.Duration
	RequestTimeout  time.Duration
}

// Manager polls arrivals and weather on independent timers
type Manager struct {
	source          Source
	store           *store.Store
	normalizer      *arrival.Normalizer
	station         string
	subwayInterval  time.Duration
	weatherInterval time.Duration
	requestTimeout  time.Duration
	now             func() time.Time

	subwaySeq  atomic.Uint64
	weatherSeq atomic.Uint64

	cancel context.CancelFunc
	group  *errgroup.Group
}

// NewManager creates a new feed manager
func NewManager(source Source, s *store.Store, opts Options) *Manager {
	return &Manager{
		source:          source,
		store:           s,
		normalizer:      arrival.NewNormalizer(opts.TargetLine, opts.Limit),
		station:         opts.Station,
		subwayInterval:  opts.SubwayInterval,
		weatherInterval: opts.WeatherInterval,
		requestTimeout:  opts.RequestTimeout,
		now:             time.Now,
	}
}

// Start begins both polling loops. Each loop polls immediately, then on every tick.
func (m *Manager) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel
	m.group, ctx = errgroup.WithContext(ctx)

	m.group.Go(func() error {
		m.pollLoop(ctx, "subway", m.subwayInterval, m.PollSubway)
		return nil
	})
	m.group.Go(func() error {
		m.pollLoop(ctx, "weather", m.weatherInterval, m.PollWeather)
		return nil
	})
}

// Stop cancels in-flight requests and waits for the loops to exit
func (m *Manager) Stop() {
	if m.cancel == nil {
		return
	}
	m.cancel()
	m.group.Wait()
}

// pollLoop fires a poll per tick without waiting for the previous one;
// ordering is restored by the store's sequence check.
func (m *Manager) pollLoop(ctx context.Context, name string, interval time.Duration, poll func(context.Context)) {
	fire := func() {
		m.group.Go(func() error {
			poll(ctx)
			return nil
		})
	}

	fire()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			fire()
		case <-ctx.Done():
			slog.Debug("Polling loop stopped", "feed", name)
			return
		}
	}
}

// PollSubway runs one arrivals cycle
func (m *Manager) PollSubway(ctx context.Context) {
	seq := m.subwaySeq.Add(1)

	reqCtx, cancel := m.withTimeout(ctx)
	defer cancel()

	feed, err := m.source.FetchArrivals(reqCtx, m.station)
	if ctx.Err() != nil {
		return
	}
	if err != nil {
		slog.Warn("Subway poll failed", "seq", seq, "error", err)
		m.store.SetArrivalsError(seq, err.Error())
		return
	}
	if feed.Error != "" {
		slog.Warn("Subway proxy reported error", "seq", seq, "error", feed.Error)
		m.store.SetArrivalsError(seq, feed.Error)
		return
	}

	board := m.normalizer.Normalize(feed.RealtimeArrivalList)
	slog.Debug("Normalized arrivals",
		"seq", seq,
		"records", len(feed.RealtimeArrivalList),
		"up", len(board.Up),
		"down", len(board.Down),
		"dropped_line", board.Dropped.Line,
		"dropped_direction", board.Dropped.Direction,
	)

	if !m.store.UpdateArrivals(seq, board, m.now()) {
		slog.Debug("Discarded stale arrivals", "seq", seq)
	}
}

// PollWeather runs one weather cycle
func (m *Manager) PollWeather(ctx context.Context) {
	seq := m.weatherSeq.Add(1)

	reqCtx, cancel := m.withTimeout(ctx)
	defer cancel()

	summary, err := m.source.FetchWeather(reqCtx)
	if ctx.Err() != nil {
		return
	}
	if err != nil {
		slog.Warn("Weather poll failed", "seq", seq, "error", err)
		m.store.SetWeatherError(seq, err.Error())
		return
	}

	if !m.store.UpdateWeather(seq, *summary, m.now()) {
		slog.Debug("Discarded stale weather", "seq", seq)
	}
}

func (m *Manager) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if m.requestTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, m.requestTimeout)
}
