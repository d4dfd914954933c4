package track

import (
	"context"
	"time"

	"github.com/banshee-data/allision.report/internal/monitoring"
	"github.com/banshee-data/allision.report/internal/timeutil"
)

// Janitor periodically removes vessels that have not reported within the
// expiry horizon, so the harbor does not accumulate traffic that left the
// coverage area.
type Janitor struct {
	harbor   *Harbor
	clock    timeutil.Clock
	interval time.Duration
	expiry   time.Duration
}

// NewJanitor returns a Janitor that sweeps the harbor every interval,
// removing vessels unheard from for longer than expiry.
func NewJanitor(harbor *Harbor, clock timeutil.Clock, interval, expiry time.Duration) *Janitor {
	return &Janitor{
		harbor:   harbor,
		clock:    clock,
		interval: interval,
		expiry:   expiry,
	}
}

// Run sweeps until the context is cancelled.
func (j *Janitor) Run(ctx context.Context) {
	ticker := j.clock.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C():
			j.Sweep()
		}
	}
}

// Sweep performs a single pruning pass.
func (j *Janitor) Sweep() {
	cutoff := j.clock.Now().Add(-j.expiry)
	if removed := j.harbor.Prune(cutoff); removed > 0 {
		monitoring.Logf("track: pruned %d stale vessel(s), %d remain", removed, j.harbor.Len())
	}
}
