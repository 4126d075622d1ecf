// Package comparison holds the static platform comparison served by the API.
package comparison

import (
	_ "embed"
	"fmt"

	"sigs.k8s.io/yaml"

	apiv1 "github.com/Sameer-kulkarni-sk/ACS-GCP/api/v1"
)

//go:embed comparison.yaml
var catalogYAML []byte

// Load decodes the embedded catalog.
func Load() (*apiv1.ComparisonResponse, error) {
	return Parse(catalogYAML)
}

// Parse decodes a catalog document mapping platform names to profiles.
func Parse(data []byte) (*apiv1.ComparisonResponse, error) {
	profiles := map[string]apiv1.PlatformProfile{}
	if err := yaml.UnmarshalStrict(data, &profiles); err != nil {
		return nil, fmt.Errorf("failed to decode comparison catalog: %w", err)
	}
	if len(profiles) == 0 {
		return nil, fmt.Errorf("comparison catalog is empty")
	}
	return &apiv1.ComparisonResponse{Comparison: profiles}, nil
}
