// Package http serves the platform comparison API, the Prometheus endpoint
// and the dashboard page.
package http

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"sigs.k8s.io/controller-runtime/pkg/log"

	apiv1 "github.com/Sameer-kulkarni-sk/ACS-GCP/api/v1"
	"github.com/Sameer-kulkarni-sk/ACS-GCP/internal/metrics"
)

// SystemReader provides process and host introspection.
type SystemReader interface {
	Process() apiv1.ProcessStats
	System() apiv1.SystemStats
}

// TopologyReporter builds the cluster status snapshot.
type TopologyReporter interface {
	Report(ctx context.Context) (*apiv1.ClusterStatus, error)
}

// Options configures a Server.
type Options struct {
	BindAddress     string
	ShutdownTimeout time.Duration

	Identity   apiv1.InstanceIdentity
	Collector  *metrics.Collector
	System     SystemReader
	Topology   TopologyReporter
	Comparison *apiv1.ComparisonResponse

	// Now defaults to time.Now.
	Now func() time.Time
}

// Server is the HTTP front end. It implements the controller-runtime
// Runnable contract: Start blocks until ctx is cancelled.
type Server struct {
	opts    Options
	handler http.Handler
	now     func() time.Time
}

// NewServer wires the routes and middleware.
func NewServer(opts Options) (*Server, error) {
	switch {
	case opts.Collector == nil:
		return nil, errors.New("collector is required")
	case opts.System == nil:
		return nil, errors.New("system reader is required")
	case opts.Topology == nil:
		return nil, errors.New("topology reporter is required")
	case opts.Comparison == nil:
		return nil, errors.New("comparison catalog is required")
	}

	s := &Server{opts: opts, now: opts.Now}
	if s.now == nil {
		s.now = time.Now
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.health)
	mux.HandleFunc("GET /metrics", s.prometheus)
	mux.HandleFunc("GET /api/info", s.info)
	mux.HandleFunc("GET /api/instance", s.instance)
	mux.HandleFunc("GET /api/comparison", s.comparison)
	mux.HandleFunc("GET /api/metrics", s.metrics)
	mux.HandleFunc("GET /api/cluster-status", s.clusterStatus)
	mux.HandleFunc("GET /{$}", s.index)
	mux.HandleFunc("/", notFound)

	s.handler = Chain(mux,
		Telemetry(opts.Collector, opts.Identity.InstanceID),
		Logger,
		Recover,
		CleanPaths,
	)
	return s, nil
}

// Handler returns the fully wrapped handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Start serves until ctx is cancelled, then drains in-flight requests for
// at most ShutdownTimeout.
func (s *Server) Start(ctx context.Context) error {
	logger := log.FromContext(ctx).WithName("http-server")

	ln, err := net.Listen("tcp", s.opts.BindAddress)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.opts.BindAddress, err)
	}

	// Request contexts keep the logger but are not cancelled by shutdown,
	// so draining requests can finish.
	baseCtx := log.IntoContext(context.Background(), logger)
	srv := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return baseCtx },
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Server listening", "address", ln.Addr().String())
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down server", "timeout", s.opts.ShutdownTimeout)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.opts.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	logger.Info("Server stopped")
	return nil
}
