// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package patch splices rendered docstrings into original source text.
//
// Every byte outside the inserted blocks is preserved. Insertion points are
// found textually: a declaration's docstring goes on the line after the
// header's terminating colon, which for multi-line headers means scanning
// forward with bracket and quote tracking. The scan is a heuristic; a
// pathological header (ex: an unterminated string in a default) can defeat
// it, in which case the block lands directly under the header line.
//
// A one-line suite (`def f(): pass`) has its body on the header line, so no
// line exists where a docstring could go without rewriting the statement.
// Such declarations are skipped: their bytes stay untouched.
package patch

import (
	"sort"
	"strings"

	"github.com/AleutianAI/pydocgen/services/docgen/ast"
)

// standardIndent is one indentation unit, used when a declaration has no
// body line to copy indentation from.
const standardIndent = "    "

// Insertion is one rendered docstring destined for a declaration.
type Insertion struct {
	// Decl locates the insertion target. Module declarations insert at the
	// top of the file; classes and functions insert after their header.
	Decl *ast.Declaration

	// Text is the rendered docstring content: unindented, unfenced lines
	// with a trailing newline, as produced by render.Render.
	Text string
}

// placed is an insertion with its computed target line and indentation.
type placed struct {
	Insertion
	line   int // index into the line slice; the block is inserted before it
	indent string
	order  int // document order, for a deterministic sort
}

// Apply splices every insertion into original and returns the new text
// together with the number of docstrings spliced in. Zero means the original
// text is returned unchanged; insertions targeting one-line suites do not
// count, since they are skipped rather than placed.
//
// Insertions are applied in descending target-line order so that splicing
// one block never shifts the computed line of a block still pending. A
// module insertion at the same coordinate as another block goes last
// (cannot happen in practice: the module always targets line 0).
func Apply(original string, insertions []Insertion) (string, int) {
	if len(insertions) == 0 {
		return original, 0
	}

	lines := strings.Split(original, "\n")

	targets := make([]placed, 0, len(insertions))
	for i, ins := range insertions {
		line, indent, ok := placeFor(lines, ins.Decl)
		if !ok {
			continue
		}
		targets = append(targets, placed{Insertion: ins, line: line, indent: indent, order: i})
	}
	if len(targets) == 0 {
		return original, 0
	}

	sort.Slice(targets, func(i, j int) bool {
		a, b := targets[i], targets[j]
		if a.line != b.line {
			return a.line > b.line
		}
		if (a.Decl.Kind == ast.DeclModule) != (b.Decl.Kind == ast.DeclModule) {
			return b.Decl.Kind == ast.DeclModule
		}
		return a.order < b.order
	})

	for _, t := range targets {
		block := fence(t.Text, t.indent)
		lines = append(lines[:t.line], append(block, lines[t.line:]...)...)
	}
	return strings.Join(lines, "\n"), len(targets)
}

// placeFor computes the insertion line and indentation for one declaration.
// ok is false when the declaration cannot take a docstring (one-line suite).
func placeFor(lines []string, decl *ast.Declaration) (line int, indent string, ok bool) {
	if decl.Kind == ast.DeclModule {
		return 0, "", true
	}

	header := decl.StartLine - 1
	if header < 0 {
		header = 0
	}
	if header >= len(lines) {
		return len(lines), "", true
	}

	colonLine, inline, found := findHeaderEnd(lines, header)
	if !found {
		colonLine = header
	}
	if inline {
		return 0, "", false
	}
	target := colonLine + 1

	if target < len(lines) && strings.TrimSpace(lines[target]) != "" {
		return target, leadingWhitespace(lines[target]), true
	}
	return target, leadingWhitespace(lines[header]) + standardIndent, true
}

// findHeaderEnd scans forward from the header line for the colon that
// terminates the declaration header, tracking bracket depth and string
// state so that colons in annotations, dict-literal defaults, and lambda
// defaults do not terminate the scan early. inline reports that code
// follows the colon on the same line, meaning the suite has no body line.
func findHeaderEnd(lines []string, header int) (line int, inline, ok bool) {
	depth := 0
	var quote byte // active string delimiter, 0 when outside strings

	for i := header; i < len(lines); i++ {
		l := lines[i]
		for j := 0; j < len(l); j++ {
			ch := l[j]
			if quote != 0 {
				switch ch {
				case '\\':
					j++ // skip the escaped character
				case quote:
					quote = 0
				}
				continue
			}
			switch ch {
			case '\'', '"':
				quote = ch
			case '#':
				// Comment: the rest of the line is not code.
				j = len(l)
			case '(', '[', '{':
				depth++
			case ')', ']', '}':
				depth--
			case ':':
				if depth <= 0 {
					return i, hasCodeAfter(l, j+1), true
				}
			}
		}
		// Single-quoted strings do not continue across lines.
		quote = 0
	}
	return 0, false, false
}

// hasCodeAfter reports whether line carries anything but whitespace and
// comments from position from onward.
func hasCodeAfter(line string, from int) bool {
	for i := from; i < len(line); i++ {
		switch line[i] {
		case ' ', '\t':
		case '#':
			return false
		default:
			return true
		}
	}
	return false
}

// fence wraps rendered content in docstring quotes and applies indent to
// every non-blank line. Single-line content collapses to one quoted line.
func fence(text, indent string) []string {
	content := strings.TrimSuffix(text, "\n")
	contentLines := strings.Split(content, "\n")

	if len(contentLines) == 1 {
		return []string{indent + `"""` + contentLines[0] + `"""`}
	}

	out := make([]string, 0, len(contentLines)+1)
	out = append(out, indent+`"""`+contentLines[0])
	for _, line := range contentLines[1:] {
		if line == "" {
			out = append(out, "")
			continue
		}
		out = append(out, indent+line)
	}
	out = append(out, indent+`"""`)
	return out
}

// leadingWhitespace returns the run of spaces and tabs opening a line.
func leadingWhitespace(line string) string {
	for i := 0; i < len(line); i++ {
		if line[i] != ' ' && line[i] != '\t' {
			return line[:i]
		}
	}
	return line
}
