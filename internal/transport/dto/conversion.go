package dto

import (
	"strings"

	corev1 "k8s.io/api/core/v1"

	apiv1 "github.com/Sameer-kulkarni-sk/ACS-GCP/api/v1"
)

// PodFromFields builds a record from the (name, podIP, nodeName, phase)
// columns. Missing or blank columns become "unknown", or "N/A" for the IP.
func PodFromFields(fields []string) PodRecord {
	return PodRecord{
		Name:     field(fields, 0, Unknown),
		PodIP:    field(fields, 1, apiv1.NotAvailable),
		NodeName: field(fields, 2, Unknown),
		Phase:    corev1.PodPhase(field(fields, 3, Unknown)),
	}
}

// NodeFromFields builds a record from the (name, internalIP) columns. A
// dual-stack node lists several space separated addresses; only the first
// is kept, as NodeFromCore does.
func NodeFromFields(fields []string) NodeRecord {
	ip := field(fields, 1, apiv1.NotAvailable)
	if addrs := strings.Fields(ip); len(addrs) > 0 {
		ip = addrs[0]
	}
	return NodeRecord{
		Name:       field(fields, 0, Unknown),
		InternalIP: ip,
	}
}

// PodFromCore converts an API pod with the same defaulting as PodFromFields.
func PodFromCore(pod *corev1.Pod) PodRecord {
	return PodFromFields([]string{pod.Name, pod.Status.PodIP, pod.Spec.NodeName, string(pod.Status.Phase)})
}

// NodeFromCore converts an API node, taking its first InternalIP address.
func NodeFromCore(node *corev1.Node) NodeRecord {
	ip := ""
	for _, addr := range node.Status.Addresses {
		if addr.Type == corev1.NodeInternalIP {
			ip = addr.Address
			break
		}
	}
	return NodeFromFields([]string{node.Name, ip})
}

// ToAPIPods converts pod records and joins each pod to its node's internal
// IP by node name. Pods on unknown nodes get "N/A".
func ToAPIPods(pods []PodRecord, nodes []NodeRecord) []apiv1.Pod {
	nodeIPs := make(map[string]string, len(nodes))
	for _, n := range nodes {
		nodeIPs[n.Name] = n.InternalIP
	}

	out := make([]apiv1.Pod, 0, len(pods))
	for _, p := range pods {
		nodeIP, ok := nodeIPs[p.NodeName]
		if !ok {
			nodeIP = apiv1.NotAvailable
		}
		out = append(out, apiv1.Pod{
			Name:     p.Name,
			PodIP:    p.PodIP,
			NodeName: p.NodeName,
			NodeIP:   nodeIP,
			Status:   p.Phase,
		})
	}
	return out
}

// ToAPINodes converts node records.
func ToAPINodes(nodes []NodeRecord) []apiv1.Node {
	out := make([]apiv1.Node, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, apiv1.Node{Name: n.Name, InternalIP: n.InternalIP})
	}
	return out
}

func field(fields []string, i int, def string) string {
	if i >= len(fields) {
		return def
	}
	if v := strings.TrimSpace(fields[i]); v != "" {
		return v
	}
	return def
}
