// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package docgen adds missing docstrings to Python source files.
//
// The service runs the analyze → synthesize → render → patch pipeline over
// one file at a time: the file is read whole, its declaration tree is
// built, content is synthesized for every declaration missing a docstring,
// and all insertions are spliced back in a single edit. Files are rewritten
// only when something changed; declarations that already have docstrings
// are byte-for-byte untouched.
//
// Batch processing is single-threaded and synchronous. A parse or I/O
// failure on one file is logged, recorded in the batch result, and never
// aborts the remaining files.
package docgen

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/AleutianAI/pydocgen/services/docgen/ast"
	"github.com/AleutianAI/pydocgen/services/docgen/exclude"
	"github.com/AleutianAI/pydocgen/services/docgen/patch"
	"github.com/AleutianAI/pydocgen/services/docgen/render"
	"github.com/AleutianAI/pydocgen/services/docgen/synth"
)

// ServiceConfig configures the docgen service.
type ServiceConfig struct {
	// Style is the docstring layout to render. Default: render.StyleGoogle.
	Style render.Style

	// IncludePrivate documents functions whose names start with an
	// underscore. Default: false.
	IncludePrivate bool

	// Exclude lists glob patterns for files to skip. Compiled once at
	// service construction.
	Exclude []string

	// MaxFileSize is the largest source file the analyzer accepts.
	// Default: ast.DefaultMaxFileSize.
	MaxFileSize int64

	// Logger receives structured warnings and per-file failures.
	// Default: slog.Default().
	Logger *slog.Logger
}

// DefaultServiceConfig returns sensible defaults.
func DefaultServiceConfig() ServiceConfig {
	return ServiceConfig{
		Style:       render.StyleGoogle,
		MaxFileSize: ast.DefaultMaxFileSize,
	}
}

// Service runs the docstring pipeline. Construct once per run; the compiled
// exclusion matcher and style definitions are the only state shared across
// files, and both are read-only after construction.
type Service struct {
	cfg      ServiceConfig
	analyzer *ast.Analyzer
	matcher  *exclude.Matcher
	logger   *slog.Logger
}

// NewService creates a Service from cfg. An unknown style is rejected here
// rather than at first render.
func NewService(cfg ServiceConfig) (*Service, error) {
	if cfg.Style == "" {
		cfg.Style = render.StyleGoogle
	}
	if _, err := render.Render(cfg.Style, render.Content{Summary: "probe"}); err != nil {
		return nil, err
	}
	if cfg.MaxFileSize <= 0 {
		cfg.MaxFileSize = ast.DefaultMaxFileSize
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	return &Service{
		cfg:      cfg,
		analyzer: ast.NewAnalyzer(ast.WithMaxFileSize(cfg.MaxFileSize)),
		matcher:  exclude.NewMatcher(cfg.Exclude, cfg.Logger),
		logger:   cfg.Logger,
	}, nil
}

// ProcessFile runs the pipeline over one file.
//
// Excluded files are reported as such without ever being read. Files where
// every declaration is already documented are left byte-identical and
// reported unmodified. The returned error covers this file only; batch
// callers convert it into a FileFailure and continue.
func (s *Service) ProcessFile(ctx context.Context, path string) (FileResult, error) {
	result := FileResult{Path: path}

	excluded, err := s.matcher.ShouldExclude(path)
	if err != nil {
		// Empty path: programmer error, propagate.
		return result, err
	}
	if excluded {
		s.logger.Debug("file excluded", "path", path)
		result.Excluded = true
		return result, nil
	}

	original, err := os.ReadFile(path)
	if err != nil {
		return result, fmt.Errorf("reading %s: %w", path, err)
	}

	file, err := s.analyzer.Analyze(ctx, original, path)
	if err != nil {
		return result, err
	}

	missing := file.Missing(s.cfg.IncludePrivate)
	if len(missing) == 0 {
		return result, nil
	}

	insertions := make([]patch.Insertion, 0, len(missing))
	for _, decl := range missing {
		content := synth.Synthesize(file, decl)
		text, err := render.Render(s.cfg.Style, content)
		if err != nil {
			// Style was validated at construction; any failure here is a bug.
			return result, err
		}
		s.logger.Debug("synthesized docstring", "decl", file.DeclID(decl), "kind", decl.Kind.String())
		insertions = append(insertions, patch.Insertion{Decl: decl, Text: text})
	}

	updated, inserted := patch.Apply(string(original), insertions)
	if inserted == 0 || updated == string(original) {
		return result, nil
	}

	if err := os.WriteFile(path, []byte(updated), filePerm(path)); err != nil {
		return result, fmt.Errorf("writing %s: %w", path, err)
	}

	result.Modified = true
	result.Inserted = inserted
	s.logger.Info("added docstrings", "path", path, "count", inserted)
	return result, nil
}

// Progress is called before each file in a batch is processed. index is
// zero-based; total is the batch size.
type Progress func(path string, index, total int)

// ProcessBatch runs ProcessFile over every path in order, calling progress
// (when non-nil) before each file. Per-file parse and I/O failures are
// logged and collected; they never abort the batch. Only an invalid path
// argument (a programmer error) stops processing.
func (s *Service) ProcessBatch(ctx context.Context, paths []string, progress Progress) (BatchResult, error) {
	var batch BatchResult
	for i, path := range paths {
		if progress != nil {
			progress(path, i, len(paths))
		}
		res, err := s.ProcessFile(ctx, path)
		if err != nil {
			if errors.Is(err, exclude.ErrInvalidPath) {
				return batch, err
			}
			s.logger.Error("file processing failed", "path", path, "error", err)
			batch.Failures = append(batch.Failures, FileFailure{Path: path, Err: err})
			continue
		}
		switch {
		case res.Excluded:
			batch.Excluded++
		default:
			batch.Processed++
			if res.Modified {
				batch.Modified++
			}
		}
	}
	return batch, nil
}

// filePerm returns the file's current permissions, or a default when the
// file cannot be inspected. Writes happen in place; there is no
// write-to-temp-then-rename discipline, so a crash mid-write can leave a
// partial file.
func filePerm(path string) fs.FileMode {
	if info, err := os.Stat(path); err == nil {
		return info.Mode().Perm()
	}
	return 0o644
}
