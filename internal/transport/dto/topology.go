package dto

import corev1 "k8s.io/api/core/v1"

// Unknown is used for textual fields a back end did not return.
const Unknown = "unknown"

// PodRecord is a protocol-agnostic view of one pod, whichever back end
// (kubectl output or API objects) produced it.
type PodRecord struct {
	Name     string
	PodIP    string
	NodeName string
	Phase    corev1.PodPhase
}

// NodeRecord is a protocol-agnostic view of one node.
type NodeRecord struct {
	Name       string
	InternalIP string
}
