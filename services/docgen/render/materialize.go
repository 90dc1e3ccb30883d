// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package render

import (
	"fmt"
	"os"
	"path/filepath"
)

// sampleContent is rendered into the materialized style files so users can
// see each layout filled in.
var sampleContent = Content{
	Summary:     "Process data.",
	Description: "This function demonstrates the layout.",
	Args: []Arg{
		{Name: "data", Type: "dict", Description: "The data."},
		{Name: "strict", Type: "bool", Description: "The strict.", Default: strPtr("False")},
	},
	Returns: &Return{Type: "dict", Description: "The result."},
	Raises:  []Raise{{Type: "ValueError", Description: "If an error occurs during process data."}},
}

func strPtr(s string) *string { return &s }

// MaterializeStyles writes the built-in style definitions to dir as one
// example file per style, for inspection only. Existing files are left
// alone; the in-memory definitions stay authoritative regardless of what is
// on disk.
func MaterializeStyles(dir string) error {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("creating style dir: %w", err)
	}
	for _, style := range Styles() {
		path := filepath.Join(dir, string(style)+".txt")
		if _, err := os.Stat(path); err == nil {
			continue
		}
		text, err := Render(style, sampleContent)
		if err != nil {
			return err
		}
		body := fmt.Sprintf("# Built-in %q docstring layout (example rendering).\n# Editing this file has no effect.\n\n%s", style, text)
		if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
			return fmt.Errorf("writing style file: %w", err)
		}
	}
	return nil
}
