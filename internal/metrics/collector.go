package metrics

import (
	"sync"
	"time"

	apiv1 "github.com/Sameer-kulkarni-sk/ACS-GCP/api/v1"
)

// RuntimeReader supplies process figures that the collector reports but
// does not own.
type RuntimeReader interface {
	Process() apiv1.ProcessStats
}

// Collector aggregates request telemetry for this process. All methods are
// safe for concurrent use.
type Collector struct {
	mu                  sync.Mutex
	requestCount        uint64
	errorCount          uint64
	healthCheckCount    uint64
	totalResponseTimeMs uint64
	perInstance         map[string]uint64

	app       apiv1.AppInfo
	runtime   RuntimeReader
	startTime time.Time
	now       func() time.Time
}

// Option configures a Collector.
type Option func(*Collector)

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(c *Collector) {
		c.now = now
	}
}

// NewCollector creates a Collector whose uptime starts now. rt may be nil, in
// which case process figures are reported as zero.
func NewCollector(app apiv1.AppInfo, rt RuntimeReader, opts ...Option) *Collector {
	c := &Collector{
		perInstance: make(map[string]uint64),
		app:         app,
		runtime:     rt,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.startTime = c.now()
	return c
}

// RecordRequestCompletion accounts one finished request. It never panics:
// it runs after the response is sent and must not disturb it.
func (c *Collector) RecordRequestCompletion(instanceID string, statusCode int, durationMs uint64) {
	if c == nil {
		return
	}
	defer func() { _ = recover() }()

	c.mu.Lock()
	defer c.mu.Unlock()

	c.requestCount++
	c.totalResponseTimeMs += durationMs
	if statusCode >= 400 {
		c.errorCount++
	}
	if c.perInstance == nil {
		c.perInstance = make(map[string]uint64)
	}
	c.perInstance[instanceID]++
}

// RecordHealthCheck counts one health endpoint hit.
func (c *Collector) RecordHealthCheck() {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.healthCheckCount++
	c.mu.Unlock()
}

// Snapshot returns a copy of the counters together with process figures.
func (c *Collector) Snapshot() apiv1.TelemetrySnapshot {
	c.mu.Lock()
	snap := apiv1.TelemetrySnapshot{
		RequestCount:             c.requestCount,
		ErrorCount:               c.errorCount,
		HealthCheckCount:         c.healthCheckCount,
		AvgResponseTimeMs:        average(c.totalResponseTimeMs, c.requestCount),
		PerInstanceRequestCounts: make(map[string]uint64, len(c.perInstance)),
		TotalRequests:            c.requestCount,
	}
	for id, n := range c.perInstance {
		snap.PerInstanceRequestCounts[id] = n
	}
	c.mu.Unlock()

	snap.UptimeSeconds = c.now().Sub(c.startTime).Seconds()
	snap.Memory = c.process().Memory
	return snap
}

// App returns the application labels reported by app_info.
func (c *Collector) App() apiv1.AppInfo {
	return c.app
}

func (c *Collector) process() apiv1.ProcessStats {
	if c.runtime == nil {
		return apiv1.ProcessStats{}
	}
	return c.runtime.Process()
}

func average(total, count uint64) float64 {
	if count == 0 {
		return 0
	}
	return float64(total) / float64(count)
}
