// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Practice PracticeConfig `toml:"practice"`
	Audio    AudioConfig    `toml:"audio"`
}

// PracticeConfig maps generation and session settings.
type PracticeConfig struct {
	Length  *int     `toml:"length"`
	Scale   *float64 `toml:"scale"`
	Speed   *float64 `toml:"speed"`
	Speed2  *float64 `toml:"farnsworth"`
	MinWord *int     `toml:"min-word"`
	MaxWord *int     `toml:"max-word"`
	File    *string  `toml:"file"`
}

// AudioConfig maps playback settings.
type AudioConfig struct {
	Freq  *float64 `toml:"freq"`
	Amp   *float64 `toml:"amp"`
	Delay *float64 `toml:"delay"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}
