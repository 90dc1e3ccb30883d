// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package config loads and validates pydocgen configuration.
//
// Configuration comes from a YAML file (.pydocgen.yaml or .pydocgen.yml in
// the working directory, or an explicit path) merged with CLI flags; flags
// win. A missing file is not an error: defaults apply.
package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// defaultPaths are searched, in order, when no config path is given.
var defaultPaths = []string{".pydocgen.yaml", ".pydocgen.yml"}

// configValidate is the shared validator instance for Config.
var configValidate = validator.New()

// Config holds the merged pydocgen settings.
type Config struct {
	// Style selects the docstring layout: google, numpy, or rst.
	Style string `yaml:"style" validate:"oneof=google numpy rst"`

	// Verbosity is the level of detail in generated docstrings (1-3).
	Verbosity int `yaml:"verbosity" validate:"min=1,max=3"`

	// Exclude lists glob patterns for files to skip entirely.
	// Examples: ["tests/*.py", "pydocgen/cli.py", "*_test.py"]
	Exclude []string `yaml:"exclude"`

	// IncludePrivate documents functions whose names start with an
	// underscore. Dunder methods (__init__) are never considered private.
	IncludePrivate bool `yaml:"include_private"`
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		Style:     "google",
		Verbosity: 2,
	}
}

// Load reads configuration from path, or from the default search paths when
// path is empty. A file that does not exist yields the defaults; a file
// that exists but fails to parse or validate is an error.
func Load(path string) (Config, error) {
	cfg := Default()

	data, found, err := readFirst(path)
	if err != nil {
		return cfg, err
	}
	if !found {
		return cfg, nil
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}
	// Drop empty patterns early so the matcher never sees them.
	cleaned := cfg.Exclude[:0]
	for _, p := range cfg.Exclude {
		if p != "" {
			cleaned = append(cleaned, p)
		}
	}
	cfg.Exclude = cleaned

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks the configuration against its constraints.
func (c Config) Validate() error {
	if err := configValidate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// readFirst returns the contents of path, or of the first default path that
// exists when path is empty. found is false when no file was read.
func readFirst(path string) (data []byte, found bool, err error) {
	candidates := defaultPaths
	if path != "" {
		candidates = []string{path}
	}
	for _, p := range candidates {
		data, err := os.ReadFile(p)
		if err == nil {
			return data, true, nil
		}
		if !os.IsNotExist(err) {
			return nil, false, fmt.Errorf("reading config %s: %w", p, err)
		}
	}
	return nil, false, nil
}
