// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package docgen

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/AleutianAI/pydocgen/services/docgen/exclude"
	"github.com/AleutianAI/pydocgen/services/docgen/render"
)

func newTestService(t *testing.T, cfg ServiceConfig) *Service {
	t.Helper()
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	svc, err := NewService(cfg)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc
}

func writePyFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
	return path
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return string(data)
}

func TestService_ProcessFile_AddsDocstrings(t *testing.T) {
	svc := newTestService(t, ServiceConfig{})
	path := writePyFile(t, "calc.py", "def calculate_total(items, tax_rate):\n    return sum(items)\n")

	res, err := svc.ProcessFile(context.Background(), path)

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Modified {
		t.Fatal("expected the file to be modified")
	}
	// Module docstring plus function docstring.
	if res.Inserted != 2 {
		t.Errorf("expected 2 insertions, got %d", res.Inserted)
	}

	got := readFile(t, path)
	if !strings.HasPrefix(got, `"""Calc module.`) {
		t.Errorf("expected a module docstring at the top, got:\n%s", got)
	}
	if !strings.Contains(got, `"""Calculate total.`) {
		t.Errorf("expected a function docstring, got:\n%s", got)
	}
	if !strings.Contains(got, "tax_rate (Any): The tax rate.") {
		t.Errorf("expected an Args entry for tax_rate, got:\n%s", got)
	}
	if !strings.Contains(got, "    return sum(items)\n") {
		t.Errorf("original body must be preserved, got:\n%s", got)
	}
}

func TestService_ProcessFile_FullyDocumentedUntouched(t *testing.T) {
	svc := newTestService(t, ServiceConfig{})
	original := `"""Documented module."""


def fn():
    """Documented function."""
    return 1
`
	path := writePyFile(t, "documented.py", original)

	res, err := svc.ProcessFile(context.Background(), path)

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Modified {
		t.Error("fully documented file must not be modified")
	}
	if got := readFile(t, path); got != original {
		t.Error("fully documented file must stay byte-identical")
	}
}

func TestService_ProcessFile_Idempotent(t *testing.T) {
	svc := newTestService(t, ServiceConfig{})
	path := writePyFile(t, "idem.py", "def roll(sides):\n    return sides\n")

	ctx := context.Background()
	if _, err := svc.ProcessFile(ctx, path); err != nil {
		t.Fatalf("first pass: %v", err)
	}
	afterFirst := readFile(t, path)

	res, err := svc.ProcessFile(ctx, path)
	if err != nil {
		t.Fatalf("second pass: %v", err)
	}
	if res.Modified {
		t.Error("second pass must not modify the file")
	}
	if got := readFile(t, path); got != afterFirst {
		t.Error("second pass changed the file")
	}
}

func TestService_ProcessFile_Excluded(t *testing.T) {
	svc := newTestService(t, ServiceConfig{Exclude: []string{"**/skip_me.py"}})
	original := "def undocumented():\n    pass\n"
	path := writePyFile(t, "skip_me.py", original)

	res, err := svc.ProcessFile(context.Background(), path)

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Excluded {
		t.Fatal("expected the file to be excluded")
	}
	if got := readFile(t, path); got != original {
		t.Error("excluded file must not be touched")
	}
}

func TestService_ProcessFile_PrivateSkippedByDefault(t *testing.T) {
	source := `"""Documented."""


def _helper(x):
    return x
`
	path := writePyFile(t, "private.py", source)

	svc := newTestService(t, ServiceConfig{})
	res, err := svc.ProcessFile(context.Background(), path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Modified {
		t.Error("private-only file must not be modified by default")
	}

	svc = newTestService(t, ServiceConfig{IncludePrivate: true})
	res, err = svc.ProcessFile(context.Background(), path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Modified {
		t.Error("include-private run must document _helper")
	}
	// The underscore becomes a space and str.capitalize-style casing
	// leaves a leading space in the summary.
	if got := readFile(t, path); !strings.Contains(got, `""" helper."""`) {
		t.Errorf("expected _helper docstring, got:\n%s", got)
	}
}

func TestService_ProcessFile_OneLineSuite(t *testing.T) {
	svc := newTestService(t, ServiceConfig{})
	path := writePyFile(t, "oneliner.py", "\"\"\"Documented module.\"\"\"\ndef f(): pass\n")

	ctx := context.Background()
	res, err := svc.ProcessFile(ctx, path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// f has its suite on the header line; there is nowhere to put a
	// docstring without rewriting the statement, so nothing changes.
	if res.Modified {
		t.Error("one-line suite must not modify the file")
	}
	got := readFile(t, path)
	if got != "\"\"\"Documented module.\"\"\"\ndef f(): pass\n" {
		t.Errorf("file bytes changed:\n%q", got)
	}

	// And it stays that way on repeated runs.
	res, err = svc.ProcessFile(ctx, path)
	if err != nil {
		t.Fatalf("second pass: %v", err)
	}
	if res.Modified {
		t.Error("second pass must not modify the file")
	}
}

func TestService_ProcessFile_ClassWithGetter(t *testing.T) {
	svc := newTestService(t, ServiceConfig{})
	path := writePyFile(t, "named.py", "class TestClass:\n"+
		"    def __init__(self, name):\n"+
		"        self.name = name\n"+
		"    def get_name(self):\n"+
		"        return self.name\n")

	res, err := svc.ProcessFile(context.Background(), path)

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Module, class, __init__ (a dunder, so not private), get_name.
	if res.Inserted != 4 {
		t.Errorf("expected 4 insertions, got %d", res.Inserted)
	}

	got := readFile(t, path)
	if !strings.Contains(got, `"""TestClass class for testclass."""`) {
		t.Errorf("class summary missing:\n%s", got)
	}
	// Underscore-to-space on a dunder name leaves space artifacts in the
	// summary; the formula is applied verbatim.
	if !strings.Contains(got, `"""  init   for TestClass.`) {
		t.Errorf("__init__ docstring missing:\n%s", got)
	}
	if !strings.Contains(got, `"""Get name for TestClass.`) {
		t.Errorf("get_name docstring missing:\n%s", got)
	}
	if strings.Contains(got, "self (") {
		t.Errorf("receiver must not be documented:\n%s", got)
	}
}

func TestService_ProcessFile_SyntaxError(t *testing.T) {
	svc := newTestService(t, ServiceConfig{})
	original := "def broken(:\n    pass\n"
	path := writePyFile(t, "broken.py", original)

	_, err := svc.ProcessFile(context.Background(), path)

	if err == nil {
		t.Fatal("expected an error for a syntax-broken file")
	}
	if got := readFile(t, path); got != original {
		t.Error("failed file must not be rewritten")
	}
}

func TestService_ProcessFile_MissingFile(t *testing.T) {
	svc := newTestService(t, ServiceConfig{})

	_, err := svc.ProcessFile(context.Background(), filepath.Join(t.TempDir(), "ghost.py"))

	if err == nil {
		t.Fatal("expected an error for a missing file")
	}
}

func TestService_ProcessFile_Styles(t *testing.T) {
	source := "def fetch(url: str) -> str:\n    return url\n"

	cases := []struct {
		style render.Style
		want  string
	}{
		{render.StyleGoogle, "Args:"},
		{render.StyleNumpy, "Parameters\n    ----------"},
		{render.StyleRST, ":param url:"},
	}
	for _, tc := range cases {
		path := writePyFile(t, "styled.py", source)
		svc := newTestService(t, ServiceConfig{Style: tc.style})

		if _, err := svc.ProcessFile(context.Background(), path); err != nil {
			t.Fatalf("%s: unexpected error: %v", tc.style, err)
		}
		if got := readFile(t, path); !strings.Contains(got, tc.want) {
			t.Errorf("%s: expected %q in output:\n%s", tc.style, tc.want, got)
		}
	}
}

func TestService_ProcessFile_Deterministic(t *testing.T) {
	source := "class Store:\n    def put(self, key, value):\n        pass\n"

	first := ""
	for i := 0; i < 3; i++ {
		path := writePyFile(t, "det.py", source)
		svc := newTestService(t, ServiceConfig{})
		if _, err := svc.ProcessFile(context.Background(), path); err != nil {
			t.Fatalf("run %d: %v", i, err)
		}
		got := readFile(t, path)
		if first == "" {
			first = got
			continue
		}
		if got != first {
			t.Fatalf("run %d produced different output", i)
		}
	}
}

func TestService_ProcessBatch(t *testing.T) {
	svc := newTestService(t, ServiceConfig{Exclude: []string{"**/skipped.py"}})
	dir := t.TempDir()

	write := func(name, content string) string {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("writing %s: %v", name, err)
		}
		return path
	}

	needsDocs := write("a.py", "def alpha():\n    return 1\n")
	documented := write("b.py", "\"\"\"Done.\"\"\"\n")
	skipped := write("skipped.py", "def beta():\n    return 2\n")
	broken := write("c.py", "def broken(:\n")

	var visited []string
	batch, err := svc.ProcessBatch(context.Background(),
		[]string{needsDocs, documented, skipped, broken},
		func(path string, index, total int) {
			if total != 4 {
				t.Errorf("progress total = %d, want 4", total)
			}
			visited = append(visited, path)
		})

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(visited) != 4 {
		t.Errorf("progress called %d times, want 4", len(visited))
	}
	if batch.Processed != 2 {
		t.Errorf("Processed = %d, want 2", batch.Processed)
	}
	if batch.Modified != 1 {
		t.Errorf("Modified = %d, want 1", batch.Modified)
	}
	if batch.Excluded != 1 {
		t.Errorf("Excluded = %d, want 1", batch.Excluded)
	}
	if len(batch.Failures) != 1 || batch.Failures[0].Path != broken {
		t.Errorf("Failures = %v, want one failure for %s", batch.Failures, broken)
	}
	if batch.Summary() != "Added or updated docstrings in 1 file(s)." {
		t.Errorf("Summary = %q", batch.Summary())
	}
}

func TestService_ProcessBatch_EmptyPathAborts(t *testing.T) {
	svc := newTestService(t, ServiceConfig{})

	_, err := svc.ProcessBatch(context.Background(), []string{""}, nil)

	if !errors.Is(err, exclude.ErrInvalidPath) {
		t.Fatalf("expected ErrInvalidPath, got: %v", err)
	}
}

func TestService_ProcessBatch_NoChangesSummary(t *testing.T) {
	var batch BatchResult
	if batch.Summary() != "No docstrings needed to be added or updated." {
		t.Errorf("Summary = %q", batch.Summary())
	}
}

func TestNewService_UnknownStyle(t *testing.T) {
	_, err := NewService(ServiceConfig{Style: render.Style("markdown")})
	if !errors.Is(err, render.ErrUnknownStyle) {
		t.Fatalf("expected ErrUnknownStyle, got: %v", err)
	}
}
