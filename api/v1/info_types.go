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

// Package v1 contains the JSON payloads served by the platform comparison API.
package v1

import "time"

// AppInfo describes the running application build and deployment target.
type AppInfo struct {
	Name        string `json:"name"`
	Version     string `json:"version"`
	Platform    string `json:"platform"`
	Environment string `json:"environment"`
	Deployment  string `json:"deployment"`
}

// InstanceIdentity identifies the running process. It is computed once at
// startup and never changes afterwards.
type InstanceIdentity struct {
	Hostname   string `json:"hostname"`
	IPAddress  string `json:"ipAddress"`
	InstanceID string `json:"instanceId"`
	PodName    string `json:"podName"`
	Namespace  string `json:"namespace"`
}

// MemoryStats holds process memory figures in bytes.
type MemoryStats struct {
	RSS       uint64 `json:"rss"`
	HeapTotal uint64 `json:"heapTotal"`
	HeapUsed  uint64 `json:"heapUsed"`
	External  uint64 `json:"external"`
}

// ProcessStats is a point-in-time view of the current process.
type ProcessStats struct {
	UptimeSeconds float64     `json:"uptime"`
	Memory        MemoryStats `json:"memory"`
	CPUCores      int         `json:"cpus"`
	GoVersion     string      `json:"goVersion"`
}

// SystemStats is a point-in-time view of the host operating system.
type SystemStats struct {
	Hostname      string     `json:"hostname"`
	UptimeSeconds float64    `json:"uptime"`
	LoadAverage   [3]float64 `json:"loadAverage"`
	Platform      string     `json:"platform"`
	Arch          string     `json:"arch"`
	CPUModel      string     `json:"cpuModel"`
}

// HealthResponse is served by /health.
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Uptime    float64   `json:"uptime"`
}

// InfoResponse is served by /api/info.
type InfoResponse struct {
	AppInfo
	Hostname  string      `json:"hostname"`
	Timestamp time.Time   `json:"timestamp"`
	Uptime    float64     `json:"uptime"`
	Memory    MemoryStats `json:"memory"`
	CPUs      int         `json:"cpus"`
}

// ErrorResponse is the body of every 404 and 500 reply.
type ErrorResponse struct {
	Error   string `json:"error"`
	Path    string `json:"path,omitempty"`
	Message string `json:"message,omitempty"`
}
