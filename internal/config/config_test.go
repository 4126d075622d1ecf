package config

import (
	"flag"
	"strings"
	"testing"
	"time"
)

func lookupFrom(env map[string]string) LookupFunc {
	return func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
}

func TestFromEnvDefaults(t *testing.T) {
	cfg, err := FromEnv(lookupFrom(nil))
	if err != nil {
		t.Fatalf("FromEnv failed: %v", err)
	}

	if cfg.Port != DefaultPort {
		t.Errorf("Port = %d, want %d", cfg.Port, DefaultPort)
	}
	if cfg.BindAddress != "0.0.0.0:8080" {
		t.Errorf("BindAddress = %q", cfg.BindAddress)
	}
	if cfg.Namespace != DefaultNamespace {
		t.Errorf("Namespace = %q, want %q", cfg.Namespace, DefaultNamespace)
	}
	if cfg.PodName == "" {
		t.Error("PodName should default to the hostname")
	}
	if cfg.Orchestrated {
		t.Error("Orchestrated should be false without the marker")
	}
	if cfg.Serverless.Region != "us-central1" {
		t.Errorf("Region = %q, want us-central1", cfg.Serverless.Region)
	}
	if cfg.App.Platform != "unknown" || cfg.App.Environment != "development" || cfg.App.Deployment != "unknown" {
		t.Errorf("unexpected app defaults: %+v", cfg.App)
	}
	if cfg.Cluster.SubQueryTimeout != 5*time.Second {
		t.Errorf("SubQueryTimeout = %s, want 5s", cfg.Cluster.SubQueryTimeout)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestFromEnvOverrides(t *testing.T) {
	cfg, err := FromEnv(lookupFrom(map[string]string{
		"PLATFORM":                "GKE",
		"NODE_ENV":                "production",
		"DEPLOYMENT_TYPE":         "kubernetes",
		"PORT":                    "3000",
		"POD_NAME":                "web-7d9f",
		"POD_NAMESPACE":           "prod",
		"KUBERNETES_SERVICE_HOST": "10.96.0.1",
		"CLUSTER_NAME":            "compare",
		"GCP_ZONE":                "europe-west1-b",
		"SERVICE_PORT":            "8443",
	}))
	if err != nil {
		t.Fatalf("FromEnv failed: %v", err)
	}

	if !cfg.Orchestrated {
		t.Error("Orchestrated should be true when the marker is set")
	}
	if cfg.Port != 3000 || cfg.BindAddress != "0.0.0.0:3000" {
		t.Errorf("Port = %d, BindAddress = %q", cfg.Port, cfg.BindAddress)
	}
	if cfg.PodName != "web-7d9f" || cfg.Namespace != "prod" {
		t.Errorf("PodName = %q, Namespace = %q", cfg.PodName, cfg.Namespace)
	}
	if cfg.Cluster.Name != "compare" || cfg.Cluster.Zone != "europe-west1-b" {
		t.Errorf("unexpected cluster config: %+v", cfg.Cluster)
	}
	if cfg.Cluster.ServicePort != 8443 {
		t.Errorf("ServicePort = %d, want 8443", cfg.Cluster.ServicePort)
	}
	if cfg.App.Platform != "GKE" {
		t.Errorf("Platform = %q", cfg.App.Platform)
	}
}

func TestFromEnvEmptyMarkerIsServerless(t *testing.T) {
	cfg, err := FromEnv(lookupFrom(map[string]string{"KUBERNETES_SERVICE_HOST": ""}))
	if err != nil {
		t.Fatalf("FromEnv failed: %v", err)
	}
	if cfg.Orchestrated {
		t.Error("an empty marker should not enable orchestrated mode")
	}
}

func TestFromEnvRejectsBadPort(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{name: "not a number", env: map[string]string{"PORT": "http"}, want: "parse PORT"},
		{name: "out of range", env: map[string]string{"PORT": "70000"}, want: "PORT out of range"},
		{name: "bad service port", env: map[string]string{"SERVICE_PORT": "0"}, want: "SERVICE_PORT out of range"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromEnv(lookupFrom(tt.env))
			if err == nil {
				t.Fatal("expected an error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %q, want substring %q", err, tt.want)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "unknown source", mutate: func(c *Config) { c.Cluster.Source = "grpc" }, wantErr: "unknown topology source"},
		{name: "zero timeout", mutate: func(c *Config) { c.Cluster.SubQueryTimeout = 0 }, wantErr: "subquery timeout"},
		{name: "bad selector", mutate: func(c *Config) { c.Cluster.PodSelector = "app in (" }, wantErr: "invalid pod selector"},
		{name: "negative stats interval", mutate: func(c *Config) { c.StatsInterval = -time.Second }, wantErr: "stats log interval"},
		{name: "empty service", mutate: func(c *Config) { c.Cluster.ServiceName = "" }, wantErr: "service name"},
		{name: "api source", mutate: func(c *Config) { c.Cluster.Source = TopologySourceKubernetes }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := FromEnv(lookupFrom(nil))
			if err != nil {
				t.Fatalf("FromEnv failed: %v", err)
			}
			tt.mutate(cfg)

			err = cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %v, want substring %q", err, tt.wantErr)
			}
		})
	}
}

func TestBindFlagsOverrideEnvironment(t *testing.T) {
	cfg, err := FromEnv(lookupFrom(map[string]string{"PORT": "9000"}))
	if err != nil {
		t.Fatalf("FromEnv failed: %v", err)
	}

	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	cfg.BindFlags(fs)
	if err := fs.Parse([]string{"--topology-source=api", "--subquery-timeout=2s"}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}

	if cfg.Cluster.Source != TopologySourceKubernetes {
		t.Errorf("Source = %q, want api", cfg.Cluster.Source)
	}
	if cfg.Cluster.SubQueryTimeout != 2*time.Second {
		t.Errorf("SubQueryTimeout = %s, want 2s", cfg.Cluster.SubQueryTimeout)
	}
	if cfg.BindAddress != "0.0.0.0:9000" {
		t.Errorf("BindAddress = %q, unset flags must keep env values", cfg.BindAddress)
	}
}

func TestSelector(t *testing.T) {
	cfg, err := FromEnv(lookupFrom(map[string]string{"APP_LABEL_SELECTOR": "app=web,tier=frontend"}))
	if err != nil {
		t.Fatalf("FromEnv failed: %v", err)
	}
	sel, err := cfg.Selector()
	if err != nil {
		t.Fatalf("Selector failed: %v", err)
	}
	if got := sel.String(); got != "app=web,tier=frontend" {
		t.Errorf("Selector = %q", got)
	}
}
