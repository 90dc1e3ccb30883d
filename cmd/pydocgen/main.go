// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Command pydocgen adds missing docstrings to Python source files.
//
// Usage:
//
//	# Process explicit files
//	pydocgen src/app.py src/util.py
//
//	# Process git-modified files (staged and unstaged)
//	pydocgen
//
//	# NumPy style, including private functions
//	pydocgen --style numpy --include-private src/app.py
//
//	# Skip tests
//	pydocgen --exclude 'tests/*.py' --exclude '*_test.py' src/*.py
//
// Configuration can also come from .pydocgen.yaml in the working
// directory; command-line flags take priority.
package main

import (
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
