// Package seed carries the built-in dataset used on first run, when a
// collection has never been written.
package seed

import (
	_ "embed"
	"fmt"

	"go.yaml.in/yaml/v3"

	"github.com/rcliao/faq-catalog/internal/model"
)

//go:embed seed.yaml
var raw []byte

// Dataset is the full seed: taxonomy plus sample entries.
type Dataset struct {
	model.Taxonomy `yaml:",inline"`
	Entries        []model.Entry `yaml:"entries"`
}

// Load decodes the embedded seed. Every call returns a fresh copy.
func Load() (*Dataset, error) {
	var d Dataset
	if err := yaml.Unmarshal(raw, &d); err != nil {
		return nil, fmt.Errorf("decode seed: %w", err)
	}
	return &d, nil
}
