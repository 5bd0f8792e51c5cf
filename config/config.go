// Package config composes the analysis thresholds into one
// configuration structure with defaults and optional file/env loading.
package config

import (
	"fmt"

	"github.com/dpup/prefab"

	"github.com/fleetglass/tripcore/continuity"
	"github.com/fleetglass/tripcore/segments"
)

// Config holds every tunable threshold of the analysis core. The
// defaults are sensible for road vehicles; deployments should validate
// them against real GPS traces before tuning.
type Config struct {
	Segmentation segments.Config   `yaml:"segmentation"`
	Continuity   continuity.Config `yaml:"continuity"`
}

// Default returns the default thresholds for all components.
func Default() Config {
	return Config{
		Segmentation: segments.DefaultConfig(),
		Continuity:   continuity.DefaultConfig(),
	}
}

// Load reads the "tripcore" section from Prefab's config system
// (prefab.yaml and environment variables with the PF__ prefix), layered
// over the defaults. Embedding applications that do not use Prefab can
// simply build a Config directly.
func Load() (Config, error) {
	cfg := Default()
	if err := prefab.Config.Unmarshal("tripcore", &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal tripcore config section: %w", err)
	}
	return cfg, nil
}
