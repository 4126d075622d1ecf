package http

import (
	"fmt"
	"math"
	"net/http"

	"sigs.k8s.io/controller-runtime/pkg/log"

	apiv1 "github.com/Sameer-kulkarni-sk/ACS-GCP/api/v1"
)

const prometheusContentType = "text/plain; version=0.0.4; charset=utf-8"

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	s.opts.Collector.RecordHealthCheck()
	writeJSON(w, r, http.StatusOK, apiv1.HealthResponse{
		Status:    "healthy",
		Timestamp: s.now(),
		Uptime:    s.opts.System.Process().UptimeSeconds,
	})
}

func (s *Server) prometheus(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", prometheusContentType)
	w.WriteHeader(http.StatusOK)
	if _, err := fmt.Fprint(w, s.opts.Collector.PrometheusText()); err != nil {
		log.FromContext(r.Context()).Error(err, "Failed to write metrics")
	}
}

func (s *Server) info(w http.ResponseWriter, r *http.Request) {
	proc := s.opts.System.Process()
	writeJSON(w, r, http.StatusOK, apiv1.InfoResponse{
		AppInfo:   s.opts.Collector.App(),
		Hostname:  s.opts.Identity.Hostname,
		Timestamp: s.now(),
		Uptime:    proc.UptimeSeconds,
		Memory:    proc.Memory,
		CPUs:      proc.CPUCores,
	})
}

func (s *Server) instance(w http.ResponseWriter, r *http.Request) {
	snap := s.opts.Collector.Snapshot()
	writeJSON(w, r, http.StatusOK, apiv1.InstanceResponse{
		Instance: s.opts.Identity,
		Metrics: apiv1.InstanceMetrics{
			RequestsHandled: snap.RequestCount,
			ErrorsHandled:   snap.ErrorCount,
			HealthChecks:    snap.HealthCheckCount,
			AvgResponseTime: snap.AvgResponseTimeMs,
			Uptime:          snap.UptimeSeconds,
		},
		Timestamp: s.now(),
	})
}

func (s *Server) comparison(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, s.opts.Comparison)
}

func (s *Server) metrics(w http.ResponseWriter, r *http.Request) {
	proc := s.opts.System.Process()
	sys := s.opts.System.System()
	snap := s.opts.Collector.Snapshot()

	writeJSON(w, r, http.StatusOK, apiv1.MetricsResponse{
		Instance: s.opts.Identity,
		Memory: apiv1.FormattedMemory{
			HeapUsed:  megabytes(proc.Memory.HeapUsed),
			HeapTotal: megabytes(proc.Memory.HeapTotal),
			External:  megabytes(proc.Memory.External),
			RSS:       megabytes(proc.Memory.RSS),
		},
		CPU: apiv1.CPUInfo{Cores: proc.CPUCores, Model: sys.CPUModel},
		System: apiv1.SystemInfo{
			Uptime:      fmt.Sprintf("%d seconds", int64(sys.UptimeSeconds)),
			LoadAverage: sys.LoadAverage,
			Platform:    sys.Platform,
			Arch:        sys.Arch,
		},
		Runtime: apiv1.RuntimeInfo{
			Version: proc.GoVersion,
			Uptime:  fmt.Sprintf("%.2f seconds", proc.UptimeSeconds),
		},
		Uptime:           proc.UptimeSeconds,
		LoadDistribution: snap.PerInstanceRequestCounts,
		TotalRequests:    snap.TotalRequests,
		Timestamp:        s.now(),
	})
}

func (s *Server) clusterStatus(w http.ResponseWriter, r *http.Request) {
	status, err := s.opts.Topology.Report(r.Context())
	if err != nil {
		log.FromContext(r.Context()).Error(err, "Failed to build cluster status")
		writeInternalError(w, r, err.Error())
		return
	}
	writeJSON(w, r, http.StatusOK, status)
}

func megabytes(b uint64) string {
	return fmt.Sprintf("%d MB", int64(math.Round(float64(b)/1024/1024)))
}
