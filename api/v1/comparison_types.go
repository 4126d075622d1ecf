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

// PlatformProfile summarises one hosting platform.
type PlatformProfile struct {
	Description string   `json:"description"`
	BestFor     []string `json:"best_for"`
	Scaling     string   `json:"scaling"`
	CostModel   string   `json:"cost_model"`
	Management  string   `json:"management"`
	Deployment  string   `json:"deployment"`
	Latency     string   `json:"latency"`
	Compliance  []string `json:"compliance"`
}

// ComparisonResponse is served by /api/comparison, keyed by platform name.
type ComparisonResponse struct {
	Comparison map[string]PlatformProfile `json:"comparison"`
}
