// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package gitfiles discovers Python files to process from git status when
// the caller supplies no explicit paths.
package gitfiles

import (
	"context"
	"os/exec"
	"sort"
	"strings"
)

// ModifiedPythonFiles returns the union of staged and unstaged modified
// .py files in the current repository, sorted for deterministic batch
// order. Outside a git repository (or when git fails) it returns an empty
// list and no error: discovery is best-effort by design.
func ModifiedPythonFiles(ctx context.Context) []string {
	staged := diffNames(ctx, "--cached", "--name-only", "--diff-filter=ACMR")
	unstaged := diffNames(ctx, "--name-only", "--diff-filter=ACMR")

	seen := make(map[string]bool)
	var files []string
	for _, f := range append(staged, unstaged...) {
		if f == "" || !strings.HasSuffix(f, ".py") || seen[f] {
			continue
		}
		seen[f] = true
		files = append(files, f)
	}
	sort.Strings(files)
	return files
}

// diffNames runs git diff with the given arguments and returns one path per
// output line.
func diffNames(ctx context.Context, args ...string) []string {
	cmd := exec.CommandContext(ctx, "git", append([]string{"diff"}, args...)...)
	output, err := cmd.Output()
	if err != nil {
		return nil
	}
	trimmed := strings.TrimSpace(string(output))
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, "\n")
}
