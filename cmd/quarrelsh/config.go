// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 Quarrel Authors

package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// config holds the shell settings loaded from YAML.
type config struct {
	Prompt      string `yaml:"prompt"`
	HistoryFile string `yaml:"history_file"`
	MacroFile   string `yaml:"macro_file"`
	Verbose     bool   `yaml:"verbose"`
}

func defaultConfig() config {
	home, _ := os.UserHomeDir()
	return config{
		Prompt:      "quarrel> ",
		HistoryFile: filepath.Join(home, ".quarrelsh_history"),
	}
}

// loadConfig reads the config file, falling back to defaults when the file
// does not exist. An empty path means ~/.quarrelsh.yaml.
func loadConfig(path string) (config, error) {
	cfg := defaultConfig()
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return cfg, nil
		}
		path = filepath.Join(home, ".quarrelsh.yaml")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	if cfg.Prompt == "" {
		cfg.Prompt = defaultConfig().Prompt
	}
	return cfg, nil
}
