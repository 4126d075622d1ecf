package kube

import (
	"context"
	"fmt"

	corev1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/labels"
	"k8s.io/apimachinery/pkg/types"
	"sigs.k8s.io/controller-runtime/pkg/client"

	"github.com/Sameer-kulkarni-sk/ACS-GCP/internal/transport/dto"
)

// Querier implements transport.ClusterQuerier with a controller-runtime client.
type Querier struct {
	client client.Reader
}

// NewQuerier wraps a client reader.
func NewQuerier(c client.Reader) *Querier {
	return &Querier{client: c}
}

// ListPods lists pods in namespace matching selector.
func (q *Querier) ListPods(ctx context.Context, namespace string, selector labels.Selector) ([]dto.PodRecord, error) {
	opts := []client.ListOption{client.InNamespace(namespace)}
	if selector != nil {
		opts = append(opts, client.MatchingLabelsSelector{Selector: selector})
	}

	podList := &corev1.PodList{}
	if err := q.client.List(ctx, podList, opts...); err != nil {
		return nil, fmt.Errorf("list pods: %w", err)
	}

	pods := make([]dto.PodRecord, 0, len(podList.Items))
	for i := range podList.Items {
		pods = append(pods, dto.PodFromCore(&podList.Items[i]))
	}
	return pods, nil
}

// ListNodes lists all cluster nodes.
func (q *Querier) ListNodes(ctx context.Context) ([]dto.NodeRecord, error) {
	nodeList := &corev1.NodeList{}
	if err := q.client.List(ctx, nodeList); err != nil {
		return nil, fmt.Errorf("list nodes: %w", err)
	}

	nodes := make([]dto.NodeRecord, 0, len(nodeList.Items))
	for i := range nodeList.Items {
		nodes = append(nodes, dto.NodeFromCore(&nodeList.Items[i]))
	}
	return nodes, nil
}

// ServiceExternalIP returns the first load balancer ingress address of the
// service, preferring IP over hostname.
func (q *Querier) ServiceExternalIP(ctx context.Context, key types.NamespacedName) (string, error) {
	svc := &corev1.Service{}
	if err := q.client.Get(ctx, key, svc); err != nil {
		return "", fmt.Errorf("get service %s: %w", key, err)
	}

	ingress := svc.Status.LoadBalancer.Ingress
	if len(ingress) == 0 {
		return "", nil
	}
	if ingress[0].IP != "" {
		return ingress[0].IP, nil
	}
	return ingress[0].Hostname, nil
}
