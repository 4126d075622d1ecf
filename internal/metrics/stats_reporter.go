package metrics

import (
	"context"
	"time"

	"sigs.k8s.io/controller-runtime/pkg/log"
)

// StatsReporter periodically logs the collector counters.
type StatsReporter struct {
	collector *Collector
	interval  time.Duration
}

// NewStatsReporter creates a reporter logging every interval.
func NewStatsReporter(collector *Collector, interval time.Duration) *StatsReporter {
	return &StatsReporter{
		collector: collector,
		interval:  interval,
	}
}

// Start logs until ctx is cancelled.
func (p *StatsReporter) Start(ctx context.Context) error {
	logger := log.FromContext(ctx).WithName("stats-reporter")
	logger.Info("Starting stats reporter", "interval", p.interval)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("Stopping stats reporter")
			return nil
		case <-ticker.C:
			p.report(ctx)
		}
	}
}

func (p *StatsReporter) report(ctx context.Context) {
	logger := log.FromContext(ctx).WithName("stats-reporter")
	snap := p.collector.Snapshot()
	logger.Info("Request telemetry",
		"requests", snap.RequestCount,
		"errors", snap.ErrorCount,
		"healthChecks", snap.HealthCheckCount,
		"avgResponseTimeMs", snap.AvgResponseTimeMs,
		"uptimeSeconds", snap.UptimeSeconds)
}
