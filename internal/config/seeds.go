package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// CategorySeed is one registry entry loaded from a seed file. A seed file
// replaces the built-in category set entirely.
type CategorySeed struct {
	Name     string   `yaml:"name"`
	Keywords []string `yaml:"keywords"`
}

func LoadCategorySeeds(path string) ([]CategorySeed, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}

	var seeds []CategorySeed
	if err := yaml.Unmarshal(raw, &seeds); err != nil {
		return nil, fmt.Errorf("parse seed file: %w", err)
	}
	if len(seeds) == 0 {
		return nil, fmt.Errorf("seed file %s defines no categories", path)
	}
	for i, seed := range seeds {
		if seed.Name == "" {
			return nil, fmt.Errorf("seed %d has no name", i)
		}
		if len(seed.Keywords) == 0 {
			return nil, fmt.Errorf("seed %q has no keywords", seed.Name)
		}
	}
	return seeds, nil
}
