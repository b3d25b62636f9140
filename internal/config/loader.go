package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/lucasnoah/hivecheck/internal/verify"
)

// Load reads and parses an expectations file from the given YAML path.
// Fields left unset fall back to the built-in defaults.
func Load(path string) (*Expectations, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading expectations file: %w", err)
	}

	var cfg Expectations
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing expectations YAML: %w", err)
	}

	applyDefaults(&cfg)
	return &cfg, nil
}

// Default returns the built-in expectations used when no file is given.
func Default() *Expectations {
	cfg := &Expectations{}
	applyDefaults(cfg)
	return cfg
}

// LoadDefault searches for an expectations file in standard locations and
// loads the first one found. Search order: ./hivecheck.yaml,
// ~/.hivecheck/config.yaml. When no file exists the built-in defaults apply.
func LoadDefault() (*Expectations, error) {
	candidates := []string{"hivecheck.yaml"}

	home, err := os.UserHomeDir()
	if err == nil {
		candidates = append(candidates, filepath.Join(home, ".hivecheck", "config.yaml"))
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return Load(path)
		}
	}

	return Default(), nil
}

// applyDefaults fills unset fields with the verification defaults.
func applyDefaults(cfg *Expectations) {
	if len(cfg.Verify.ExpectedTools) == 0 {
		cfg.Verify.ExpectedTools = append([]string(nil), verify.DefaultExpectedTools...)
	}
	if cfg.Verify.MinReadyActors == 0 {
		cfg.Verify.MinReadyActors = verify.DefaultMinReadyActors
	}
}
