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

	"github.com/spf13/cobra"
)

// Version is the pydocgen release version.
const Version = "0.1.0"

// --- Global Command Variables ---
var (
	styleFlag          string
	verbosityFlag      int
	configFlag         string
	excludeFlag        []string
	includePrivateFlag bool
	debugFlag          bool
	noColorFlag        bool

	rootCmd = &cobra.Command{
		Use:   "pydocgen [files...]",
		Short: "Automatic Python docstring generator",
		Long: `PyDocGen processes Python files and adds missing docstrings to
modules, classes, and functions based on static analysis of their
signatures and bodies. When no files are given, git-modified Python
files are processed.`,
		Args:          cobra.ArbitraryArgs,
		RunE:          runGenerate, // Defined in cmd_generate.go
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the pydocgen version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("pydocgen %s\n", Version)
		},
	}
)

func init() {
	rootCmd.Flags().StringVar(&styleFlag, "style", "google", "Docstring style: google, numpy, or rst")
	rootCmd.Flags().IntVar(&verbosityFlag, "verbosity", 2, "Level of detail in docstrings (1-3)")
	rootCmd.Flags().StringVar(&configFlag, "config", "", "Path to configuration file")
	rootCmd.Flags().StringArrayVar(&excludeFlag, "exclude", nil, "Glob pattern to exclude (repeatable)")
	rootCmd.Flags().BoolVar(&includePrivateFlag, "include-private", false, "Include private functions (prefixed with _)")
	rootCmd.Flags().BoolVar(&debugFlag, "debug", false, "Enable debug logging")
	rootCmd.Flags().BoolVar(&noColorFlag, "no-color", false, "Disable styled output")

	rootCmd.AddCommand(versionCmd)
}
