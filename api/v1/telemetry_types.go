/*
Copyright 2025.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package v1

import "time"

// TelemetrySnapshot is a read-only copy of the request telemetry counters.
type TelemetrySnapshot struct {
	RequestCount      uint64  `json:"requestCount"`
	ErrorCount        uint64  `json:"errorCount"`
	HealthCheckCount  uint64  `json:"healthCheckCount"`
	AvgResponseTimeMs float64 `json:"avgResponseTimeMs"`
	// UptimeSeconds is measured from collector start, not process start.
	UptimeSeconds            float64           `json:"uptime"`
	Memory                   MemoryStats       `json:"memory"`
	PerInstanceRequestCounts map[string]uint64 `json:"perInstanceRequestCounts"`
	TotalRequests            uint64            `json:"totalRequests"`
}

// InstanceMetrics is the per-instance telemetry summary on /api/instance.
type InstanceMetrics struct {
	RequestsHandled uint64  `json:"requestsHandled"`
	ErrorsHandled   uint64  `json:"errorsHandled"`
	HealthChecks    uint64  `json:"healthChecks"`
	AvgResponseTime float64 `json:"avgResponseTime"`
	Uptime          float64 `json:"uptime"`
}

// InstanceResponse is served by /api/instance.
type InstanceResponse struct {
	Instance  InstanceIdentity `json:"instance"`
	Metrics   InstanceMetrics  `json:"metrics"`
	Timestamp time.Time        `json:"timestamp"`
}

// FormattedMemory renders memory figures as whole megabytes.
type FormattedMemory struct {
	HeapUsed  string `json:"heapUsed"`
	HeapTotal string `json:"heapTotal"`
	External  string `json:"external"`
	RSS       string `json:"rss"`
}

// CPUInfo describes the processors visible to the process.
type CPUInfo struct {
	Cores int    `json:"cores"`
	Model string `json:"model"`
}

// SystemInfo is the operating system section of /api/metrics.
type SystemInfo struct {
	Uptime      string     `json:"uptime"`
	LoadAverage [3]float64 `json:"loadAverage"`
	Platform    string     `json:"platform"`
	Arch        string     `json:"arch"`
}

// RuntimeInfo is the language runtime section of /api/metrics.
type RuntimeInfo struct {
	Version string `json:"version"`
	Uptime  string `json:"uptime"`
}

// MetricsResponse is served by /api/metrics.
type MetricsResponse struct {
	Instance         InstanceIdentity  `json:"instance"`
	Memory           FormattedMemory   `json:"memory"`
	CPU              CPUInfo           `json:"cpu"`
	System           SystemInfo        `json:"system"`
	Runtime          RuntimeInfo       `json:"runtime"`
	Uptime           float64           `json:"uptime"`
	LoadDistribution map[string]uint64 `json:"loadDistribution"`
	TotalRequests    uint64            `json:"totalRequests"`
	Timestamp        time.Time         `json:"timestamp"`
}
