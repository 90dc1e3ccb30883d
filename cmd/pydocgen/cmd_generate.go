// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/AleutianAI/pydocgen/pkg/logging"
	"github.com/AleutianAI/pydocgen/pkg/ux"
	"github.com/AleutianAI/pydocgen/services/docgen"
	"github.com/AleutianAI/pydocgen/services/docgen/config"
	"github.com/AleutianAI/pydocgen/services/docgen/gitfiles"
	"github.com/AleutianAI/pydocgen/services/docgen/render"
)

// styleMirrorDir is where the built-in style layouts are materialized for
// inspection on first run. The on-disk copies are a convenience mirror;
// the in-memory definitions stay authoritative.
const styleMirrorDir = ".pydocgen/styles"

// runGenerate is the root command: resolve configuration, pick the files,
// and run the docstring pipeline over them.
func runGenerate(cmd *cobra.Command, args []string) error {
	if noColorFlag {
		ux.SetPlain(true)
	}

	level := logging.LevelWarn
	if debugFlag {
		level = logging.LevelDebug
	}
	logger := logging.New(logging.Config{Level: level, Service: "pydocgen"})
	defer logger.Close()

	cfg, err := resolveConfig(cmd)
	if err != nil {
		ux.Error(err.Error())
		return err
	}

	files := resolveFiles(cmd, args)
	if len(files) == 0 {
		ux.Info("No Python files to process.")
		return nil
	}

	if err := render.MaterializeStyles(styleMirrorDir); err != nil {
		logger.Warn("could not materialize style files", "error", err)
	}

	svc, err := docgen.NewService(docgen.ServiceConfig{
		Style:          render.Style(cfg.Style),
		IncludePrivate: cfg.IncludePrivate,
		Exclude:        cfg.Exclude,
		Logger:         logger.Slog(),
	})
	if err != nil {
		ux.Error(err.Error())
		return err
	}

	result, err := svc.ProcessBatch(cmd.Context(), files, func(path string, index, total int) {
		ux.FileStatus(path, fmt.Sprintf("[%d/%d]", index+1, total))
	})
	if err != nil {
		ux.Error(err.Error())
		return err
	}

	for _, f := range result.Failures {
		ux.Error(f.Error())
	}
	ux.Summary(result.Modified, result.Excluded, len(result.Failures), len(files))
	if result.Modified > 0 {
		ux.Success(result.Summary())
	} else {
		ux.Info(result.Summary())
	}

	// Per-file failures are reported above but do not fail the run: the
	// batch as a whole ran.
	return nil
}

// resolveConfig loads the config file and applies explicit CLI flags over
// it.
func resolveConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(configFlag)
	if err != nil {
		return cfg, err
	}

	if cmd.Flags().Changed("style") {
		cfg.Style = styleFlag
	}
	if cmd.Flags().Changed("verbosity") {
		cfg.Verbosity = verbosityFlag
	}
	if cmd.Flags().Changed("exclude") {
		cfg.Exclude = excludeFlag
	}
	if includePrivateFlag {
		cfg.IncludePrivate = true
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// resolveFiles returns the explicit .py arguments, or git-modified Python
// files when no arguments were given.
func resolveFiles(cmd *cobra.Command, args []string) []string {
	if len(args) > 0 {
		var files []string
		for _, arg := range args {
			if strings.HasSuffix(arg, ".py") {
				files = append(files, arg)
			}
		}
		return files
	}
	return gitfiles.ModifiedPythonFiles(cmd.Context())
}
