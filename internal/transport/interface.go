package transport

import (
	"context"

	"k8s.io/apimachinery/pkg/labels"
	"k8s.io/apimachinery/pkg/types"

	"github.com/Sameer-kulkarni-sk/ACS-GCP/internal/transport/dto"
)

// ClusterQuerier abstracts how cluster topology is read.
// Implementations: kubectl shell-out, Kubernetes API client.
// Each call is independent; a failure in one says nothing about the others.
type ClusterQuerier interface {
	// ListPods returns the pods matching selector in namespace
	ListPods(ctx context.Context, namespace string, selector labels.Selector) ([]dto.PodRecord, error)

	// ListNodes returns every node of the cluster
	ListNodes(ctx context.Context) ([]dto.NodeRecord, error)

	// ServiceExternalIP returns the load balancer ingress IP of a service,
	// or "" if none is assigned yet
	ServiceExternalIP(ctx context.Context, key types.NamespacedName) (string, error)
}
