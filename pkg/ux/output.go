// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package ux provides styled terminal output for the pydocgen CLI.
//
// Output degrades to plain text automatically when stdout is not a
// terminal, so piped output stays machine-friendly.
package ux

import (
	"fmt"
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// Aleutian brand palette plus semantic colors.
var (
	ColorTealBright = lipgloss.Color("#2CD7C7") // highlights, success
	ColorSlate      = lipgloss.Color("#2C4A54") // muted text
	ColorSuccess    = lipgloss.Color("#2CD7C7")
	ColorWarning    = lipgloss.Color("#F4D03F")
	ColorError      = lipgloss.Color("#E74C3C")
)

// Styles provides pre-configured lipgloss styles.
var Styles = struct {
	Bold    lipgloss.Style
	Muted   lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
}{
	Bold:    lipgloss.NewStyle().Bold(true),
	Muted:   lipgloss.NewStyle().Foreground(ColorSlate),
	Success: lipgloss.NewStyle().Foreground(ColorSuccess),
	Warning: lipgloss.NewStyle().Foreground(ColorWarning),
	Error:   lipgloss.NewStyle().Foreground(ColorError),
}

var (
	plainOnce sync.Once
	plainMode bool
)

// plain reports whether styling should be suppressed (stdout is not a
// terminal).
func plain() bool {
	plainOnce.Do(func() {
		plainMode = !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd())
	})
	return plainMode
}

// SetPlain forces plain output on or off, overriding terminal detection.
// Used by tests and the --no-color flag.
func SetPlain(v bool) {
	plainOnce.Do(func() {})
	plainMode = v
}

// Success prints a success message.
func Success(text string) {
	if plain() {
		fmt.Fprintf(os.Stdout, "OK: %s\n", text)
		return
	}
	fmt.Printf("%s %s\n", Styles.Success.Render("✓"), Styles.Success.Render(text))
}

// Warning prints a warning message.
func Warning(text string) {
	if plain() {
		fmt.Fprintf(os.Stderr, "WARN: %s\n", text)
		return
	}
	fmt.Printf("%s %s\n", Styles.Warning.Render("!"), Styles.Warning.Render(text))
}

// Error prints an error message.
func Error(text string) {
	if plain() {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", text)
		return
	}
	fmt.Printf("%s %s\n", Styles.Error.Render("✗"), Styles.Error.Render(text))
}

// Info prints an informational message.
func Info(text string) {
	if plain() {
		fmt.Println(text)
		return
	}
	fmt.Printf("%s %s\n", Styles.Muted.Render("│"), text)
}

// FileStatus prints a file with its processing outcome.
func FileStatus(path, status string) {
	if plain() {
		fmt.Printf("%s\t%s\n", status, path)
		return
	}
	fmt.Printf("%s %s\n", Styles.Muted.Render(status), path)
}

// Summary prints the batch counts on one line.
func Summary(modified, excluded, failed, total int) {
	if plain() {
		fmt.Printf("SUMMARY: modified=%d excluded=%d failed=%d total=%d\n", modified, excluded, failed, total)
		return
	}
	fmt.Printf("\n%s %s  %s %s  %s %s  %s %s\n",
		Styles.Success.Render(fmt.Sprintf("%d", modified)), Styles.Muted.Render("modified"),
		Styles.Warning.Render(fmt.Sprintf("%d", excluded)), Styles.Muted.Render("excluded"),
		Styles.Error.Render(fmt.Sprintf("%d", failed)), Styles.Muted.Render("failed"),
		Styles.Bold.Render(fmt.Sprintf("%d", total)), Styles.Muted.Render("total"),
	)
}
