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

package main

import (
	"flag"
	"fmt"
	"os"

	"golang.org/x/sync/errgroup"
	// Import all Kubernetes client auth plugins (e.g. Azure, GCP, OIDC, etc.)
	// so the api topology source can use them.
	_ "k8s.io/client-go/plugin/pkg/client/auth"
	ctrl "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/log"
	"sigs.k8s.io/controller-runtime/pkg/log/zap"

	"github.com/Sameer-kulkarni-sk/ACS-GCP/internal/comparison"
	"github.com/Sameer-kulkarni-sk/ACS-GCP/internal/config"
	"github.com/Sameer-kulkarni-sk/ACS-GCP/internal/metrics"
	"github.com/Sameer-kulkarni-sk/ACS-GCP/internal/sysinfo"
	"github.com/Sameer-kulkarni-sk/ACS-GCP/internal/topology"
	"github.com/Sameer-kulkarni-sk/ACS-GCP/internal/transport"
	transporthttp "github.com/Sameer-kulkarni-sk/ACS-GCP/internal/transport/http"
	"github.com/Sameer-kulkarni-sk/ACS-GCP/internal/transport/kube"
	"github.com/Sameer-kulkarni-sk/ACS-GCP/internal/transport/kubectl"
)

var setupLog = ctrl.Log.WithName("setup")

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid environment: %v\n", err)
		os.Exit(1)
	}
	cfg.BindFlags(flag.CommandLine)

	opts := zap.Options{
		Development: true,
	}
	opts.BindFlags(flag.CommandLine)
	flag.Parse()

	ctrl.SetLogger(zap.New(zap.UseFlagOptions(&opts)))

	if err := cfg.Validate(); err != nil {
		setupLog.Error(err, "invalid configuration")
		os.Exit(1)
	}

	setupLog.Info("Starting",
		"app", cfg.App.Name,
		"version", cfg.App.Version,
		"platform", cfg.App.Platform,
		"environment", cfg.App.Environment,
		"deployment", cfg.App.Deployment,
		"orchestrated", cfg.Orchestrated)

	identity := sysinfo.DiscoverIdentity(cfg.PodName, cfg.Namespace)
	setupLog.Info("Instance identity", "instanceID", identity.InstanceID, "ip", identity.IPAddress)

	reader := sysinfo.NewReader()
	collector := metrics.NewCollector(cfg.App, reader)

	querier, err := NewClusterQuerier(cfg)
	if err != nil {
		setupLog.Error(err, "failed to create cluster querier", "source", cfg.Cluster.Source)
		os.Exit(1)
	}

	reporter, err := topology.NewReporter(cfg, querier)
	if err != nil {
		setupLog.Error(err, "failed to create topology reporter")
		os.Exit(1)
	}

	catalog, err := comparison.Load()
	if err != nil {
		setupLog.Error(err, "failed to load comparison catalog")
		os.Exit(1)
	}

	server, err := transporthttp.NewServer(transporthttp.Options{
		BindAddress:     cfg.BindAddress,
		ShutdownTimeout: cfg.ShutdownTimeout,
		Identity:        identity,
		Collector:       collector,
		System:          reader,
		Topology:        reporter,
		Comparison:      catalog,
	})
	if err != nil {
		setupLog.Error(err, "failed to create server")
		os.Exit(1)
	}

	ctx := log.IntoContext(ctrl.SetupSignalHandler(), ctrl.Log)
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error { return server.Start(ctx) })
	if cfg.StatsInterval > 0 {
		stats := metrics.NewStatsReporter(collector, cfg.StatsInterval)
		g.Go(func() error { return stats.Start(ctx) })
	}

	if err := g.Wait(); err != nil {
		setupLog.Error(err, "problem running server")
		os.Exit(1)
	}
}

// NewClusterQuerier creates the ClusterQuerier selected by the topology
// source. It returns nil outside a cluster, where none is needed.
func NewClusterQuerier(cfg *config.Config) (transport.ClusterQuerier, error) {
	if !cfg.Orchestrated {
		return nil, nil
	}

	switch cfg.Cluster.Source {
	case config.TopologySourceKubectl:
		return kubectl.NewQuerier(kubectl.ExecRunner{
			Binary:  cfg.Cluster.KubectlBinary,
			Timeout: cfg.Cluster.SubQueryTimeout,
		}, cfg.Cluster.Kubeconfig), nil

	case config.TopologySourceKubernetes:
		c, err := kube.NewClient(cfg.Cluster.Kubeconfig)
		if err != nil {
			return nil, err
		}
		return kube.NewQuerier(c), nil

	default:
		return nil, fmt.Errorf("unknown topology source: %s (supported: %s, %s)",
			cfg.Cluster.Source, config.TopologySourceKubectl, config.TopologySourceKubernetes)
	}
}
