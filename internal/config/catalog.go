package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/dustinkb1983/nyxchat/internal/models"
)

// Catalog is the deploy-time model and profile seed, loaded from YAML. The
// profiles are written into the settings store on first boot only; the model
// list is authoritative on every boot.
type Catalog struct {
	Models   []string `yaml:"models"`
	Profiles []struct {
		ID           string  `yaml:"id"`
		Name         string  `yaml:"name"`
		SystemPrompt string  `yaml:"system_prompt"`
		Model        string  `yaml:"model"`
		Temperature  float64 `yaml:"temperature"`
	} `yaml:"profiles"`
}

// DefaultModels is the built-in list used when no catalog file is configured.
var DefaultModels = []string{
	"gpt-4o",
	"gpt-4o-mini",
	"gpt-4.1",
	"gpt-4.1-mini",
	"o3-mini",
}

// LoadCatalog reads the model catalog at path. An empty path yields the
// built-in defaults; a configured path that cannot be read is an error.
func LoadCatalog(path string) ([]string, []models.Profile, error) {
	if path == "" {
		return DefaultModels, nil, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("read model catalog: %w", err)
	}

	var cat Catalog
	if err := yaml.Unmarshal(raw, &cat); err != nil {
		return nil, nil, fmt.Errorf("parse model catalog: %w", err)
	}
	if len(cat.Models) == 0 {
		return nil, nil, fmt.Errorf("model catalog %s lists no models", path)
	}

	profiles := make([]models.Profile, 0, len(cat.Profiles))
	for _, p := range cat.Profiles {
		if p.ID == "" || p.Model == "" {
			return nil, nil, fmt.Errorf("model catalog %s: profile needs id and model", path)
		}
		profiles = append(profiles, models.Profile{
			ID:           p.ID,
			Name:         p.Name,
			SystemPrompt: p.SystemPrompt,
			Model:        p.Model,
			Temperature:  p.Temperature,
		})
	}

	return cat.Models, profiles, nil
}
