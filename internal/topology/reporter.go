// Package topology reports where the service is deployed: static metadata
// on the serverless platform, or a best-effort pod/node/service view when
// running inside a cluster.
package topology

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/go-logr/logr"
	"golang.org/x/sync/errgroup"
	corev1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/labels"
	"k8s.io/apimachinery/pkg/types"
	"sigs.k8s.io/controller-runtime/pkg/log"

	apiv1 "github.com/Sameer-kulkarni-sk/ACS-GCP/api/v1"
	"github.com/Sameer-kulkarni-sk/ACS-GCP/internal/config"
	"github.com/Sameer-kulkarni-sk/ACS-GCP/internal/transport"
	"github.com/Sameer-kulkarni-sk/ACS-GCP/internal/transport/dto"
)

const (
	serverlessDeploymentType = "App Engine"
	serverlessWarning        = "App Engine is a fully managed platform. Instances sit behind a managed " +
		"load balancer, so pod, node and instance IPs are not exposed."
	consoleBaseURL = "https://console.cloud.google.com/appengine"
)

// ErrNoQuerier is returned when orchestration is detected but no cluster
// querier was configured.
var ErrNoQuerier = errors.New("no cluster querier configured")

// Reporter builds a fresh ClusterStatus on every call. It never caches.
type Reporter struct {
	cfg      *config.Config
	selector labels.Selector
	querier  transport.ClusterQuerier
	now      func() time.Time
}

// Option customises a Reporter.
type Option func(*Reporter)

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(r *Reporter) { r.now = now }
}

// NewReporter creates a reporter. querier may be nil when cfg is not
// orchestrated.
func NewReporter(cfg *config.Config, querier transport.ClusterQuerier, opts ...Option) (*Reporter, error) {
	selector, err := cfg.Selector()
	if err != nil {
		return nil, err
	}
	r := &Reporter{
		cfg:      cfg,
		selector: selector,
		querier:  querier,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Report returns the current topology. Sub-query failures degrade the
// affected field and are only logged; an error means the snapshot could
// not be built at all.
func (r *Reporter) Report(ctx context.Context) (status *apiv1.ClusterStatus, err error) {
	defer func() {
		if p := recover(); p != nil {
			status, err = nil, fmt.Errorf("topology report panicked: %v", p)
		}
	}()

	if !r.cfg.Orchestrated {
		return r.serverless(), nil
	}
	if r.querier == nil {
		return nil, ErrNoQuerier
	}
	return r.orchestrated(ctx), nil
}

func (r *Reporter) serverless() *apiv1.ClusterStatus {
	sc := r.cfg.Serverless
	return &apiv1.ClusterStatus{
		Platform:  apiv1.PlatformServerless,
		Timestamp: r.now(),
		ServerlessStatus: &apiv1.ServerlessStatus{
			Warning: serverlessWarning,
			Deployment: apiv1.ServerlessDeployment{
				Type:      serverlessDeploymentType,
				Region:    orDefault(sc.Region, config.DefaultRegion),
				VersionID: orDefault(sc.VersionID, config.DefaultVersionID),
				ServiceID: orDefault(sc.ServiceID, config.DefaultServiceID),
			},
			ConsoleURL: ConsoleURL(sc.ProjectID, sc.ServiceID),
		},
	}
}

func (r *Reporter) orchestrated(ctx context.Context) *apiv1.ClusterStatus {
	logger := log.FromContext(ctx).WithName("topology")

	var (
		pods       []dto.PodRecord
		nodes      []dto.NodeRecord
		externalIP string
	)

	// Each sub-query absorbs its own failure, so the group never cancels
	// the others.
	var g errgroup.Group
	g.Go(func() error {
		pods = r.listPods(ctx, logger)
		return nil
	})
	g.Go(func() error {
		nodes = r.listNodes(ctx, logger)
		return nil
	})
	g.Go(func() error {
		externalIP = r.serviceIP(ctx, logger)
		return nil
	})
	_ = g.Wait()

	apiPods := dto.ToAPIPods(pods, nodes)
	ready := 0
	for _, p := range apiPods {
		if p.Status == corev1.PodRunning {
			ready++
		}
	}

	return &apiv1.ClusterStatus{
		Platform:  apiv1.PlatformOrchestrated,
		Timestamp: r.now(),
		OrchestratedStatus: &apiv1.OrchestratedStatus{
			Cluster: apiv1.ClusterInfo{
				Name:      r.cfg.Cluster.Name,
				Namespace: r.cfg.Namespace,
				Zone:      r.cfg.Cluster.Zone,
			},
			Service: apiv1.ServiceInfo{
				Name:       r.cfg.Cluster.ServiceName,
				ExternalIP: externalIP,
				Port:       r.cfg.Cluster.ServicePort,
			},
			Pods:  apiPods,
			Nodes: dto.ToAPINodes(nodes),
			Summary: apiv1.ClusterSummary{
				TotalPods:  len(apiPods),
				ReadyPods:  ready,
				TotalNodes: len(nodes),
			},
		},
	}
}

func (r *Reporter) listPods(ctx context.Context, logger logr.Logger) []dto.PodRecord {
	pods, err := bounded(ctx, r.timeout(), func(ctx context.Context) ([]dto.PodRecord, error) {
		return r.querier.ListPods(ctx, r.cfg.Namespace, r.selector)
	})
	if err != nil {
		logger.Error(err, "Failed to list pods", "namespace", r.cfg.Namespace, "selector", r.selector.String())
		return nil
	}
	return pods
}

func (r *Reporter) listNodes(ctx context.Context, logger logr.Logger) []dto.NodeRecord {
	nodes, err := bounded(ctx, r.timeout(), r.querier.ListNodes)
	if err != nil {
		logger.Error(err, "Failed to list nodes")
		return nil
	}
	return nodes
}

func (r *Reporter) serviceIP(ctx context.Context, logger logr.Logger) string {
	key := types.NamespacedName{Namespace: r.cfg.Namespace, Name: r.cfg.Cluster.ServiceName}

	ip, err := bounded(ctx, r.timeout(), func(ctx context.Context) (string, error) {
		return r.querier.ServiceExternalIP(ctx, key)
	})
	if err != nil {
		logger.Error(err, "Failed to get service external IP", "service", key.String())
		return apiv1.PendingIP
	}
	if ip == "" {
		return apiv1.PendingIP
	}
	return ip
}

func (r *Reporter) timeout() time.Duration {
	if r.cfg.Cluster.SubQueryTimeout <= 0 {
		return config.DefaultSubQueryTimeout
	}
	return r.cfg.Cluster.SubQueryTimeout
}

// bounded runs fn under its own timeout. It returns once the deadline
// passes even if fn ignores ctx, and turns a panic in fn into an error.
func bounded[T any](ctx context.Context, timeout time.Duration, fn func(context.Context) (T, error)) (T, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	type result struct {
		val T
		err error
	}
	done := make(chan result, 1)
	go func() {
		defer func() {
			if p := recover(); p != nil {
				done <- result{err: fmt.Errorf("cluster query panicked: %v", p)}
			}
		}()
		val, err := fn(ctx)
		done <- result{val: val, err: err}
	}()

	select {
	case res := <-done:
		return res.val, res.err
	case <-ctx.Done():
		var zero T
		return zero, fmt.Errorf("cluster query: %w", ctx.Err())
	}
}

// ConsoleURL links to the App Engine dashboard, scoped to the project and
// service when they are known.
func ConsoleURL(projectID, serviceID string) string {
	q := url.Values{}
	if projectID != "" {
		q.Set("project", projectID)
	}
	if serviceID != "" {
		q.Set("serviceId", serviceID)
	}
	if len(q) == 0 {
		return consoleBaseURL
	}
	return consoleBaseURL + "?" + q.Encode()
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
