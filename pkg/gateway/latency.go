package gateway

import (
	"sync"
	"time"

	"github.com/sigmapin/go-sigma/pkg/stats"
)

// latencyWindow keeps the most recent query latencies for /api/stats.
type latencyWindow struct {
	mu      sync.Mutex
	max     int
	samples []float64
	total   uint64
}

type latencySnapshot struct {
	// Requests is the total number of recorded queries.
	Requests uint64

	// AvgMs is the mean latency over the window.
	AvgMs float64

	// LastMs is the most recent latency.
	LastMs float64

	// LastRank is the midrank percentile of the most recent latency
	// within the window, showing whether the last request was slow for
	// this gateway.
	LastRank float64
}

func newLatencyWindow(max int) *latencyWindow {
	return &latencyWindow{max: max}
}

func (w *latencyWindow) record(d time.Duration) {
	ms := float64(d.Milliseconds())
	w.mu.Lock()
	defer w.mu.Unlock()
	w.total++
	w.samples = append(w.samples, ms)
	if len(w.samples) > w.max {
		w.samples = w.samples[len(w.samples)-w.max:]
	}
}

func (w *latencyWindow) snapshot() latencySnapshot {
	w.mu.Lock()
	defer w.mu.Unlock()

	snap := latencySnapshot{Requests: w.total}
	if len(w.samples) == 0 {
		return snap
	}

	sum := 0.0
	for _, v := range w.samples {
		sum += v
	}
	snap.AvgMs = sum / float64(len(w.samples))
	snap.LastMs = w.samples[len(w.samples)-1]
	if rank, err := stats.PercentileRank(w.samples, snap.LastMs); err == nil {
		snap.LastRank = rank
	}
	return snap
}
