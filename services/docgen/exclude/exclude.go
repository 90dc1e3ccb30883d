// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package exclude decides whether a file path is skipped entirely, based on
// glob-style patterns from configuration (ex: "tests/*.py", "*_test.py",
// exact paths).
package exclude

import (
	"errors"
	"log/slog"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
)

// ErrInvalidPath reports a missing path argument. An empty path is a
// programmer error, not a data error, and fails fast.
var ErrInvalidPath = errors.New("path must not be empty")

// Matcher holds the compiled exclusion patterns for a run. Compile once at
// startup; a Matcher is read-only afterwards and safe for concurrent use.
type Matcher struct {
	patterns []string
	logger   *slog.Logger
}

// NewMatcher validates each pattern once and keeps the usable ones. A
// malformed pattern is not a hard failure: it is logged as a warning,
// dropped, and compilation continues with the rest.
func NewMatcher(patterns []string, logger *slog.Logger) *Matcher {
	if logger == nil {
		logger = slog.Default()
	}
	m := &Matcher{logger: logger}
	for _, p := range patterns {
		if p == "" {
			logger.Warn("dropping empty exclude pattern")
			continue
		}
		if !doublestar.ValidatePattern(p) {
			logger.Warn("dropping invalid exclude pattern", "pattern", p)
			continue
		}
		m.patterns = append(m.patterns, p)
	}
	return m
}

// Patterns returns the compiled pattern strings, for reporting.
func (m *Matcher) Patterns() []string {
	return m.patterns
}

// ShouldExclude reports whether any pattern matches the path's slash-
// normalized string form. A pattern that fails at match time is logged and
// skipped without aborting the remaining patterns. An empty path returns
// ErrInvalidPath.
func (m *Matcher) ShouldExclude(path string) (bool, error) {
	if path == "" {
		return false, ErrInvalidPath
	}
	normalized := filepath.ToSlash(path)
	for _, p := range m.patterns {
		matched, err := doublestar.Match(p, normalized)
		if err != nil {
			// Validated at compile time, so this is unexpected; skip the
			// one pattern and keep matching.
			m.logger.Warn("exclude pattern failed to match", "pattern", p, "error", err)
			continue
		}
		if matched {
			return true, nil
		}
	}
	return false, nil
}
