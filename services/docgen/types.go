// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package docgen

import "fmt"

// FileResult reports what happened to one file.
type FileResult struct {
	// Path is the file processed.
	Path string

	// Excluded is true when an exclusion pattern matched; the file was
	// never read.
	Excluded bool

	// Modified is true when the file was rewritten with new docstrings.
	Modified bool

	// Inserted is the number of docstrings spliced in.
	Inserted int
}

// FileFailure records one file that could not be processed. Failures are
// result values, not panics: a failed file never aborts the batch.
type FileFailure struct {
	Path string
	Err  error
}

// Error formats the failure for user display.
func (f FileFailure) Error() string {
	return fmt.Sprintf("error processing %s: %v", f.Path, f.Err)
}

// BatchResult aggregates one ProcessBatch run.
type BatchResult struct {
	// Processed counts files that were read and analyzed (including ones
	// that needed no changes).
	Processed int

	// Modified counts files rewritten with new docstrings.
	Modified int

	// Excluded counts files skipped by exclusion patterns.
	Excluded int

	// Failures lists files that could not be processed.
	Failures []FileFailure
}

// Summary returns the human-readable batch outcome.
func (r BatchResult) Summary() string {
	if r.Modified > 0 {
		return fmt.Sprintf("Added or updated docstrings in %d file(s).", r.Modified)
	}
	return "No docstrings needed to be added or updated."
}
