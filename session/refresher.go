package session

import (
	"context"
	"time"
)

// DefaultRefreshInterval matches the tracker's two second refresh.
const DefaultRefreshInterval = 2 * time.Second

// Refresher periodically re-announces the facade's in-memory state. It
// never reads storage.
type Refresher struct {
	facade   *Facade
	interval time.Duration
}

func NewRefresher(f *Facade, interval time.Duration) *Refresher {
	if interval <= 0 {
		interval = DefaultRefreshInterval
	}
	return &Refresher{facade: f, interval: interval}
}

// Run blocks until ctx is done.
func (r *Refresher) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.facade.Announce()
		}
	}
}
