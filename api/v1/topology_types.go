/*
Copyright 2025.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package v1

import (
	"time"

	corev1 "k8s.io/api/core/v1"
)

// PlatformType identifies the kind of deployment the process runs on.
type PlatformType string

const (
	// PlatformServerless is a fully managed platform without visible pods or nodes.
	PlatformServerless PlatformType = "GAE"
	// PlatformOrchestrated is a container orchestration cluster.
	PlatformOrchestrated PlatformType = "GKE"
)

// NotAvailable is rendered for addresses that could not be resolved.
const NotAvailable = "N/A"

// PendingIP is rendered while a load balancer has no ingress address.
const PendingIP = "Pending"

// ClusterStatus is the topology snapshot served by /api/cluster-status.
// Exactly one of the embedded sections is set, matching Platform.
type ClusterStatus struct {
	Platform  PlatformType `json:"platform"`
	Timestamp time.Time    `json:"timestamp"`

	*ServerlessStatus
	*OrchestratedStatus
}

// ServerlessStatus is reported when no orchestrator is detected.
type ServerlessStatus struct {
	Warning    string               `json:"warning"`
	Deployment ServerlessDeployment `json:"deployment"`
	ConsoleURL string               `json:"consoleUrl"`
}

// OrchestratedStatus is the best-effort cluster view. Pods and Nodes are
// never nil so that empty results serialise as [].
type OrchestratedStatus struct {
	Cluster ClusterInfo    `json:"cluster"`
	Service ServiceInfo    `json:"service"`
	Pods    []Pod          `json:"pods"`
	Nodes   []Node         `json:"nodes"`
	Summary ClusterSummary `json:"summary"`
}

// ServerlessDeployment describes a managed serverless deployment.
type ServerlessDeployment struct {
	Type      string `json:"type"`
	Region    string `json:"region"`
	VersionID string `json:"versionId"`
	ServiceID string `json:"serviceId"`
}

// ClusterInfo names the cluster the process runs in.
type ClusterInfo struct {
	Name      string `json:"name"`
	Namespace string `json:"namespace"`
	Zone      string `json:"zone"`
}

// ServiceInfo describes the load-balanced service fronting the pods.
type ServiceInfo struct {
	Name       string `json:"name"`
	ExternalIP string `json:"externalIP"`
	Port       int32  `json:"port"`
}

// Pod is one application pod. NodeIP is joined from the node list.
type Pod struct {
	Name     string          `json:"name"`
	PodIP    string          `json:"podIP"`
	NodeName string          `json:"nodeName"`
	NodeIP   string          `json:"nodeIP"`
	Status   corev1.PodPhase `json:"status"`
}

// Node is one cluster node.
type Node struct {
	Name       string `json:"name"`
	InternalIP string `json:"internalIP"`
}

// ClusterSummary is derived from the pod and node lists only.
type ClusterSummary struct {
	TotalPods  int `json:"totalPods"`
	ReadyPods  int `json:"readyPods"`
	TotalNodes int `json:"totalNodes"`
}
