// Package metrics keeps the per-instance request telemetry: request, error
// and health check counters plus accumulated response time. It renders the
// counters as a JSON snapshot and in the Prometheus text exposition format,
// and can periodically log them.
package metrics
