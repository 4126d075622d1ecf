package metrics

import (
	"fmt"
	"strings"
)

var labelEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`)

type exposition struct {
	b strings.Builder
}

func (e *exposition) header(name, kind, help string) {
	fmt.Fprintf(&e.b, "# HELP %s %s\n# TYPE %s %s\n", name, help, name, kind)
}

func (e *exposition) counter(name, help string, v uint64) {
	e.header(name, "counter", help)
	fmt.Fprintf(&e.b, "%s %d\n", name, v)
}

func (e *exposition) gaugeInt(name, help string, v uint64) {
	e.header(name, "gauge", help)
	fmt.Fprintf(&e.b, "%s %d\n", name, v)
}

func (e *exposition) gaugeFixed(name, help string, v float64) {
	e.header(name, "gauge", help)
	fmt.Fprintf(&e.b, "%s %.2f\n", name, v)
}

// PrometheusText renders the counters in the Prometheus text exposition
// format. Counters are integers; averages and uptimes use two decimals.
func (c *Collector) PrometheusText() string {
	snap := c.Snapshot()
	proc := c.process()

	var e exposition
	e.header("app_info", "gauge", "Application information")
	fmt.Fprintf(&e.b, "app_info{platform=\"%s\",deployment=\"%s\",version=\"%s\"} 1\n",
		labelEscaper.Replace(c.app.Platform),
		labelEscaper.Replace(c.app.Deployment),
		labelEscaper.Replace(c.app.Version))

	e.counter("app_requests_total", "Total number of HTTP requests handled", snap.RequestCount)
	e.counter("app_errors_total", "Total number of HTTP responses with status >= 400", snap.ErrorCount)
	e.gaugeFixed("app_response_time_ms", "Average response time in milliseconds", snap.AvgResponseTimeMs)
	e.gaugeFixed("app_uptime_seconds", "Time since the application started in seconds", snap.UptimeSeconds)
	e.gaugeFixed("process_uptime_seconds", "Process uptime in seconds", proc.UptimeSeconds)
	e.gaugeInt("memory_heap_used_bytes", "Heap memory in use in bytes", proc.Memory.HeapUsed)
	e.gaugeInt("memory_heap_total_bytes", "Heap memory obtained from the OS in bytes", proc.Memory.HeapTotal)
	e.gaugeInt("memory_rss_bytes", "Resident set size in bytes", proc.Memory.RSS)
	e.gaugeInt("cpu_cores", "Number of CPU cores", uint64(proc.CPUCores))
	e.counter("health_checks_total", "Total number of health check requests", snap.HealthCheckCount)

	return e.b.String()
}
