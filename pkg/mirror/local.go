package mirror

import (
	"time"

	"github.com/jusunglee/mirror-go/internal/feed"
	"github.com/jusunglee/mirror-go/internal/store"
)

// Local owns the in-memory store and the background poll loops
type Local struct {
	store       *store.Store
	feedManager *feed.Manager
}

// NewLocal creates a local mirror client polling the proxies over HTTP
func NewLocal(config Config) (*Local, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	remote, err := NewRemote(config)
	if err != nil {
		return nil, err
	}
	return NewLocalWithClient(remote, config), nil
}

// NewLocalWithClient starts polling the given client
func NewLocalWithClient(client Client, config Config) *Local {
	s := store.NewStore()

	fm := feed.NewManager(client, s, feed.Options{
		Station:         config.Station,
		TargetLine:      config.TargetLine,
		Limit:           config.Limit,
		SubwayInterval:  config.SubwayInterval,
		WeatherInterval: config.WeatherInterval,
		RequestTimeout:  config.RequestTimeout,
	})
	fm.Start()

	return &Local{
		store:       s,
		feedManager: fm,
	}
}

// Close stops the poll loops and cancels in-flight requests
func (l *Local) Close() {
	l.feedManager.Stop()
}

// Snapshot returns the latest arrivals and weather
func (l *Local) Snapshot() store.Snapshot {
	return l.store.Snapshot()
}

func (l *Local) GetLastUpdate() time.Time {
	return l.store.GetLastUpdate()
}
