package dto

import (
	"reflect"
	"testing"

	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	apiv1 "github.com/Sameer-kulkarni-sk/ACS-GCP/api/v1"
)

func TestPodFromFields(t *testing.T) {
	tests := []struct {
		name   string
		fields []string
		want   PodRecord
	}{
		{
			name:   "complete row",
			fields: []string{"web-1", "10.8.0.4", "n1", "Running"},
			want:   PodRecord{Name: "web-1", PodIP: "10.8.0.4", NodeName: "n1", Phase: corev1.PodRunning},
		},
		{
			name:   "pending pod without ip or node",
			fields: []string{"web-2", "", "", "Pending"},
			want:   PodRecord{Name: "web-2", PodIP: "N/A", NodeName: "unknown", Phase: corev1.PodPending},
		},
		{
			name:   "truncated row",
			fields: []string{"web-3"},
			want:   PodRecord{Name: "web-3", PodIP: "N/A", NodeName: "unknown", Phase: "unknown"},
		},
		{
			name: "empty row",
			want: PodRecord{Name: "unknown", PodIP: "N/A", NodeName: "unknown", Phase: "unknown"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PodFromFields(tt.fields); got != tt.want {
				t.Errorf("PodFromFields() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestNodeFromFields(t *testing.T) {
	if got := NodeFromFields([]string{"n1", "10.0.0.1"}); got != (NodeRecord{Name: "n1", InternalIP: "10.0.0.1"}) {
		t.Errorf("unexpected node: %+v", got)
	}
	if got := NodeFromFields([]string{"n2"}); got.InternalIP != apiv1.NotAvailable {
		t.Errorf("InternalIP = %q, want N/A", got.InternalIP)
	}
}

func TestDualStackNodeMatchesAcrossBackEnds(t *testing.T) {
	node := &corev1.Node{
		ObjectMeta: metav1.ObjectMeta{Name: "n1"},
		Status: corev1.NodeStatus{Addresses: []corev1.NodeAddress{
			{Type: corev1.NodeInternalIP, Address: "10.0.0.1"},
			{Type: corev1.NodeInternalIP, Address: "fd00::1"},
		}},
	}

	fromAPI := NodeFromCore(node)
	fromCLI := NodeFromFields([]string{"n1", "10.0.0.1 fd00::1"})
	if fromCLI != fromAPI {
		t.Errorf("NodeFromFields() = %+v, NodeFromCore() = %+v", fromCLI, fromAPI)
	}
	if fromCLI.InternalIP != "10.0.0.1" {
		t.Errorf("InternalIP = %q, want 10.0.0.1", fromCLI.InternalIP)
	}

	pods := ToAPIPods([]PodRecord{{Name: "a", NodeName: "n1"}}, []NodeRecord{fromCLI})
	if pods[0].NodeIP != "10.0.0.1" {
		t.Errorf("joined NodeIP = %q", pods[0].NodeIP)
	}
}

func TestFromCore(t *testing.T) {
	pod := &corev1.Pod{
		ObjectMeta: metav1.ObjectMeta{Name: "web-1", Namespace: "default"},
		Spec:       corev1.PodSpec{NodeName: "n1"},
		Status:     corev1.PodStatus{Phase: corev1.PodRunning, PodIP: "10.8.0.4"},
	}
	if got := PodFromCore(pod); got != (PodRecord{Name: "web-1", PodIP: "10.8.0.4", NodeName: "n1", Phase: corev1.PodRunning}) {
		t.Errorf("PodFromCore() = %+v", got)
	}

	node := &corev1.Node{
		ObjectMeta: metav1.ObjectMeta{Name: "n1"},
		Status: corev1.NodeStatus{Addresses: []corev1.NodeAddress{
			{Type: corev1.NodeHostName, Address: "n1"},
			{Type: corev1.NodeExternalIP, Address: "34.1.2.3"},
			{Type: corev1.NodeInternalIP, Address: "10.0.0.1"},
		}},
	}
	if got := NodeFromCore(node); got != (NodeRecord{Name: "n1", InternalIP: "10.0.0.1"}) {
		t.Errorf("NodeFromCore() = %+v", got)
	}

	bare := &corev1.Node{ObjectMeta: metav1.ObjectMeta{Name: "n2"}}
	if got := NodeFromCore(bare); got.InternalIP != apiv1.NotAvailable {
		t.Errorf("InternalIP = %q, want N/A", got.InternalIP)
	}
}

func TestToAPIPodsJoinsNodes(t *testing.T) {
	pods := []PodRecord{
		{Name: "a", PodIP: "10.8.0.1", NodeName: "n1", Phase: corev1.PodRunning},
		{Name: "b", PodIP: "10.8.0.2", NodeName: "n2", Phase: corev1.PodRunning},
	}
	nodes := []NodeRecord{{Name: "n1", InternalIP: "10.0.0.1"}}

	got := ToAPIPods(pods, nodes)
	want := []apiv1.Pod{
		{Name: "a", PodIP: "10.8.0.1", NodeName: "n1", NodeIP: "10.0.0.1", Status: corev1.PodRunning},
		{Name: "b", PodIP: "10.8.0.2", NodeName: "n2", NodeIP: "N/A", Status: corev1.PodRunning},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ToAPIPods() = %+v, want %+v", got, want)
	}
}

func TestToAPIConversionsNeverReturnNil(t *testing.T) {
	if got := ToAPIPods(nil, nil); got == nil || len(got) != 0 {
		t.Errorf("ToAPIPods(nil) = %#v, want empty slice", got)
	}
	if got := ToAPINodes(nil); got == nil || len(got) != 0 {
		t.Errorf("ToAPINodes(nil) = %#v, want empty slice", got)
	}
}
