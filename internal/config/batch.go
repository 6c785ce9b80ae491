package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// BatchSettings are the global knobs of a batch file. CLI flags win over them.
type BatchSettings struct {
	Headless    *bool  `yaml:"headless"`
	UseDatabase *bool  `yaml:"use_database"`
	JobBankOnly bool   `yaml:"job_bank_only"`
	Format      string `yaml:"format"`
}

type BatchSearch struct {
	Keyword  string `yaml:"keyword"`
	Location string `yaml:"location"`
	Pages    int    `yaml:"pages"`
}

type BatchConfig struct {
	Settings BatchSettings `yaml:"settings"`
	Searches []BatchSearch `yaml:"searches"`
}

// LoadBatch reads and validates a batch search file. Every entry needs at
// least a keyword or a location; pages defaults to 1.
func LoadBatch(path string) (*BatchConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config file not found: %w", err)
	}

	cfg := &BatchConfig{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("invalid YAML file: %w", err)
	}

	if len(cfg.Searches) == 0 {
		return nil, fmt.Errorf("config file must contain a 'searches' list")
	}

	for i, search := range cfg.Searches {
		if search.Keyword == "" && search.Location == "" {
			return nil, fmt.Errorf("search entry %d must have at least 'keyword' or 'location'", i)
		}
		if search.Pages <= 0 {
			cfg.Searches[i].Pages = 1
		}
	}

	return cfg, nil
}
