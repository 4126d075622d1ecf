package kubectl

import (
	"context"
	"fmt"
	"strings"

	"k8s.io/apimachinery/pkg/labels"
	"k8s.io/apimachinery/pkg/types"

	"github.com/Sameer-kulkarni-sk/ACS-GCP/internal/transport/dto"
)

const (
	podsJSONPath    = `jsonpath={range .items[*]}{.metadata.name}{"\t"}{.status.podIP}{"\t"}{.spec.nodeName}{"\t"}{.status.phase}{"\n"}{end}`
	nodesJSONPath   = `jsonpath={range .items[*]}{.metadata.name}{"\t"}{.status.addresses[?(@.type=="InternalIP")].address}{"\n"}{end}`
	serviceJSONPath = `jsonpath={.status.loadBalancer.ingress[0].ip}`
)

// Querier implements transport.ClusterQuerier on top of a Runner.
type Querier struct {
	runner     Runner
	kubeconfig string
}

// NewQuerier creates a querier. kubeconfig is passed through with
// --kubeconfig when non-empty.
func NewQuerier(runner Runner, kubeconfig string) *Querier {
	return &Querier{runner: runner, kubeconfig: kubeconfig}
}

// ListPods runs "kubectl get pods -l <selector> -n <namespace>".
func (q *Querier) ListPods(ctx context.Context, namespace string, selector labels.Selector) ([]dto.PodRecord, error) {
	args := []string{"get", "pods", "-n", namespace, "-o", podsJSONPath}
	if selector != nil && !selector.Empty() {
		args = append(args, "-l", selector.String())
	}
	out, err := q.run(ctx, args...)
	if err != nil {
		return nil, fmt.Errorf("list pods: %w", err)
	}
	return parsePods(out), nil
}

// ListNodes runs "kubectl get nodes".
func (q *Querier) ListNodes(ctx context.Context) ([]dto.NodeRecord, error) {
	out, err := q.run(ctx, "get", "nodes", "-o", nodesJSONPath)
	if err != nil {
		return nil, fmt.Errorf("list nodes: %w", err)
	}
	return parseNodes(out), nil
}

// ServiceExternalIP runs "kubectl get service <name> -n <namespace>" and
// returns the first ingress IP, "" when none is assigned.
func (q *Querier) ServiceExternalIP(ctx context.Context, key types.NamespacedName) (string, error) {
	out, err := q.run(ctx, "get", "service", key.Name, "-n", key.Namespace, "-o", serviceJSONPath)
	if err != nil {
		return "", fmt.Errorf("get service %s: %w", key, err)
	}
	return strings.TrimSpace(string(out)), nil
}

func (q *Querier) run(ctx context.Context, args ...string) ([]byte, error) {
	if q.kubeconfig != "" {
		args = append([]string{"--kubeconfig", q.kubeconfig}, args...)
	}
	return q.runner.Run(ctx, args...)
}
