// Package config builds the service configuration once at startup.
//
// Values come from the environment first (the variables the deployment
// manifests set) and can then be overridden by command line flags. Nothing
// re-reads the environment after Load returns.
package config

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	apiv1 "github.com/Sameer-kulkarni-sk/ACS-GCP/api/v1"
	"k8s.io/apimachinery/pkg/labels"
)

const (
	AppName    = "GCP Compare Project"
	AppVersion = "1.0.0"

	// OrchestratorMarker is set by the kubelet in every pod.
	OrchestratorMarker = "KUBERNETES_SERVICE_HOST"

	DefaultPort              = 8080
	DefaultNamespace         = "default"
	DefaultRegion            = "us-central1"
	DefaultVersionID         = "unknown"
	DefaultServiceID         = "default"
	DefaultClusterName       = "gke-cluster"
	DefaultZone              = "us-central1-a"
	DefaultPodSelector       = "app=gcp-compare"
	DefaultServiceName       = "gcp-compare-service"
	DefaultServicePort       = 80
	DefaultSubQueryTimeout   = 5 * time.Second
	DefaultKubectlBinary     = "kubectl"
	DefaultShutdownTimeout   = 10 * time.Second
	TopologySourceKubectl    = "kubectl"
	TopologySourceKubernetes = "api"
)

// ServerlessConfig describes the managed serverless deployment.
type ServerlessConfig struct {
	Region    string
	VersionID string
	ServiceID string
	ProjectID string
}

// ClusterConfig describes the orchestration cluster and how to query it.
type ClusterConfig struct {
	Name        string
	Zone        string
	PodSelector string
	ServiceName string
	ServicePort int32

	Source          string
	KubectlBinary   string
	Kubeconfig      string
	SubQueryTimeout time.Duration
}

// Config is the complete service configuration.
type Config struct {
	App apiv1.AppInfo

	BindAddress     string
	Port            int
	ShutdownTimeout time.Duration
	StatsInterval   time.Duration

	PodName   string
	Namespace string

	// Orchestrated is true when the orchestrator marker is present.
	Orchestrated bool

	Serverless ServerlessConfig
	Cluster    ClusterConfig
}

// LookupFunc has the signature of os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// Load reads the process environment.
func Load() (*Config, error) {
	return FromEnv(os.LookupEnv)
}

// FromEnv builds a Config from lookup, applying defaults for anything unset.
func FromEnv(lookup LookupFunc) (*Config, error) {
	get := func(key, def string) string {
		if v, ok := lookup(key); ok && v != "" {
			return v
		}
		return def
	}

	hostname, err := os.Hostname()
	if err != nil {
		hostname = "localhost"
	}

	cfg := &Config{
		App: apiv1.AppInfo{
			Name:        AppName,
			Version:     AppVersion,
			Platform:    get("PLATFORM", "unknown"),
			Environment: get("NODE_ENV", "development"),
			Deployment:  get("DEPLOYMENT_TYPE", "unknown"),
		},
		ShutdownTimeout: DefaultShutdownTimeout,
		PodName:         get("POD_NAME", hostname),
		Namespace:       get("POD_NAMESPACE", DefaultNamespace),
		Serverless: ServerlessConfig{
			Region:    get("GAE_REGION", DefaultRegion),
			VersionID: get("GAE_VERSION", DefaultVersionID),
			ServiceID: get("GAE_SERVICE", DefaultServiceID),
			ProjectID: get("GOOGLE_CLOUD_PROJECT", ""),
		},
		Cluster: ClusterConfig{
			Name:            get("CLUSTER_NAME", DefaultClusterName),
			Zone:            get("GCP_ZONE", DefaultZone),
			PodSelector:     get("APP_LABEL_SELECTOR", DefaultPodSelector),
			ServiceName:     get("SERVICE_NAME", DefaultServiceName),
			Source:          TopologySourceKubectl,
			KubectlBinary:   DefaultKubectlBinary,
			SubQueryTimeout: DefaultSubQueryTimeout,
		},
	}

	if v, ok := lookup(OrchestratorMarker); ok && v != "" {
		cfg.Orchestrated = true
	}

	cfg.Port, err = parsePort("PORT", get("PORT", strconv.Itoa(DefaultPort)))
	if err != nil {
		return nil, err
	}
	cfg.BindAddress = fmt.Sprintf("0.0.0.0:%d", cfg.Port)

	servicePort, err := parsePort("SERVICE_PORT", get("SERVICE_PORT", strconv.Itoa(DefaultServicePort)))
	if err != nil {
		return nil, err
	}
	cfg.Cluster.ServicePort = int32(servicePort)

	return cfg, nil
}

// BindFlags registers the operational overrides on fs. Defaults are the
// values already held by c, so flags only win when given explicitly.
func (c *Config) BindFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.BindAddress, "bind-address", c.BindAddress, "The address the HTTP server binds to.")
	fs.DurationVar(&c.ShutdownTimeout, "shutdown-timeout", c.ShutdownTimeout,
		"How long to wait for in-flight requests on shutdown.")
	fs.DurationVar(&c.StatsInterval, "stats-log-interval", c.StatsInterval,
		"Interval for logging request telemetry, 0 disables it.")
	fs.StringVar(&c.Cluster.Source, "topology-source", c.Cluster.Source,
		"Where cluster topology is read from (kubectl|api).")
	fs.StringVar(&c.Cluster.KubectlBinary, "kubectl", c.Cluster.KubectlBinary, "Path or name of the kubectl binary.")
	fs.StringVar(&c.Cluster.Kubeconfig, "kubeconfig", c.Cluster.Kubeconfig,
		"Path to a kubeconfig for the api topology source (in-cluster config when empty).")
	fs.DurationVar(&c.Cluster.SubQueryTimeout, "subquery-timeout", c.Cluster.SubQueryTimeout,
		"Timeout applied to each cluster topology query.")
	fs.StringVar(&c.Cluster.PodSelector, "pod-selector", c.Cluster.PodSelector, "Label selector of application pods.")
	fs.StringVar(&c.Cluster.ServiceName, "service-name", c.Cluster.ServiceName, "Name of the load balancer service.")
}

// Validate checks the values that cannot be defaulted.
func (c *Config) Validate() error {
	if c.BindAddress == "" {
		return fmt.Errorf("bind address must not be empty")
	}
	switch c.Cluster.Source {
	case TopologySourceKubectl, TopologySourceKubernetes:
	default:
		return fmt.Errorf("unknown topology source %q (supported: %s, %s)",
			c.Cluster.Source, TopologySourceKubectl, TopologySourceKubernetes)
	}
	if c.Cluster.SubQueryTimeout <= 0 {
		return fmt.Errorf("subquery timeout must be positive, got %s", c.Cluster.SubQueryTimeout)
	}
	if c.StatsInterval < 0 {
		return fmt.Errorf("stats log interval must not be negative, got %s", c.StatsInterval)
	}
	if _, err := c.Selector(); err != nil {
		return err
	}
	if c.Cluster.ServiceName == "" {
		return fmt.Errorf("service name must not be empty")
	}
	return nil
}

// Selector parses the configured pod label selector.
func (c *Config) Selector() (labels.Selector, error) {
	sel, err := labels.Parse(c.Cluster.PodSelector)
	if err != nil {
		return nil, fmt.Errorf("invalid pod selector %q: %w", c.Cluster.PodSelector, err)
	}
	return sel, nil
}

func parsePort(key, raw string) (int, error) {
	port, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	if port < 1 || port > 65535 {
		return 0, fmt.Errorf("%s out of range: %d", key, port)
	}
	return port, nil
}
