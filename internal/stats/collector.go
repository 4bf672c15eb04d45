package stats

import (
	"sync"
	"time"

	"github.com/apiprobe/apiprobe/internal/models"
)

// Collector aggregates observed response times for one run. Tests that
// never received a response are not recorded.
type Collector struct {
	mu    sync.Mutex
	count int
	total time.Duration
	min   time.Duration
	max   time.Duration
}

// NewCollector creates an empty latency collector
func NewCollector() *Collector {
	return &Collector{}
}

// Record adds one observed response time
func (c *Collector) Record(elapsed time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.count == 0 || elapsed < c.min {
		c.min = elapsed
	}
	if elapsed > c.max {
		c.max = elapsed
	}
	c.count++
	c.total += elapsed
}

// Snapshot returns the latency aggregates collected so far
func (c *Collector) Snapshot() models.LatencyStats {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.count == 0 {
		return models.LatencyStats{}
	}
	return models.LatencyStats{
		Count:       c.count,
		MinSeconds:  c.min.Seconds(),
		MaxSeconds:  c.max.Seconds(),
		MeanSeconds: c.total.Seconds() / float64(c.count),
	}
}
