package kube

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	corev1 "k8s.io/api/core/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/labels"
	"k8s.io/apimachinery/pkg/types"
	"sigs.k8s.io/controller-runtime/pkg/client/fake"

	"github.com/Sameer-kulkarni-sk/ACS-GCP/internal/transport/dto"
)

func pod(name, ns, node string, phase corev1.PodPhase, lbls map[string]string) *corev1.Pod {
	return &corev1.Pod{
		ObjectMeta: metav1.ObjectMeta{Name: name, Namespace: ns, Labels: lbls},
		Spec:       corev1.PodSpec{NodeName: node},
		Status:     corev1.PodStatus{Phase: phase, PodIP: "10.8.0.1"},
	}
}

func TestListPodsFiltersBySelectorAndNamespace(t *testing.T) {
	app := map[string]string{"app": "gcp-compare"}
	c := fake.NewClientBuilder().WithScheme(Scheme).WithObjects(
		pod("web-1", "default", "n1", corev1.PodRunning, app),
		pod("web-2", "other", "n1", corev1.PodRunning, app),
		pod("db-0", "default", "n1", corev1.PodRunning, map[string]string{"app": "db"}),
	).Build()

	q := NewQuerier(c)
	pods, err := q.ListPods(context.Background(), "default", labels.SelectorFromSet(app))
	if err != nil {
		t.Fatalf("ListPods() error = %v", err)
	}
	if len(pods) != 1 {
		t.Fatalf("ListPods() returned %d pods, want 1", len(pods))
	}
	want := dto.PodRecord{Name: "web-1", PodIP: "10.8.0.1", NodeName: "n1", Phase: corev1.PodRunning}
	if pods[0] != want {
		t.Errorf("ListPods()[0] = %+v, want %+v", pods[0], want)
	}
}

func TestListNodes(t *testing.T) {
	c := fake.NewClientBuilder().WithScheme(Scheme).WithObjects(&corev1.Node{
		ObjectMeta: metav1.ObjectMeta{Name: "n1"},
		Status: corev1.NodeStatus{Addresses: []corev1.NodeAddress{
			{Type: corev1.NodeInternalIP, Address: "10.0.0.1"},
		}},
	}).Build()

	nodes, err := NewQuerier(c).ListNodes(context.Background())
	if err != nil {
		t.Fatalf("ListNodes() error = %v", err)
	}
	if len(nodes) != 1 || nodes[0] != (dto.NodeRecord{Name: "n1", InternalIP: "10.0.0.1"}) {
		t.Errorf("ListNodes() = %+v", nodes)
	}
}

func TestServiceExternalIP(t *testing.T) {
	key := types.NamespacedName{Namespace: "default", Name: "gcp-compare-service"}

	tests := []struct {
		name    string
		ingress []corev1.LoadBalancerIngress
		want    string
	}{
		{name: "ip assigned", ingress: []corev1.LoadBalancerIngress{{IP: "34.120.1.2"}}, want: "34.120.1.2"},
		{name: "hostname only", ingress: []corev1.LoadBalancerIngress{{Hostname: "lb.example.com"}}, want: "lb.example.com"},
		{name: "not provisioned", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &corev1.Service{
				ObjectMeta: metav1.ObjectMeta{Name: key.Name, Namespace: key.Namespace},
				Status:     corev1.ServiceStatus{LoadBalancer: corev1.LoadBalancerStatus{Ingress: tt.ingress}},
			}
			c := fake.NewClientBuilder().WithScheme(Scheme).WithObjects(svc).WithStatusSubresource(svc).Build()

			got, err := NewQuerier(c).ServiceExternalIP(context.Background(), key)
			if err != nil {
				t.Fatalf("ServiceExternalIP() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("ServiceExternalIP() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestServiceExternalIPMissingService(t *testing.T) {
	c := fake.NewClientBuilder().WithScheme(Scheme).Build()

	_, err := NewQuerier(c).ServiceExternalIP(context.Background(), types.NamespacedName{Namespace: "default", Name: "nope"})
	if !apierrors.IsNotFound(err) {
		t.Errorf("ServiceExternalIP() error = %v, want NotFound", err)
	}
}

func TestLoadRestConfig(t *testing.T) {
	kubeconfig := `apiVersion: v1
kind: Config
clusters:
- name: test
  cluster:
    server: https://127.0.0.1:6443
contexts:
- name: test
  context:
    cluster: test
    user: test
current-context: test
users:
- name: test
  user:
    token: abc
`
	path := filepath.Join(t.TempDir(), "config")
	if err := os.WriteFile(path, []byte(kubeconfig), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadRestConfig(path)
	if err != nil {
		t.Fatalf("LoadRestConfig() error = %v", err)
	}
	if cfg.Host != "https://127.0.0.1:6443" {
		t.Errorf("Host = %q", cfg.Host)
	}

	if _, err := LoadRestConfig(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Error("expected error for missing kubeconfig")
	}
}
