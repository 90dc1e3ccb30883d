// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package render turns structured docstring content into text under one of
// the fixed output styles (google, numpy, rst).
//
// Style definitions are immutable package-level data initialized once;
// rendering is deterministic: identical Content and Style always produce
// byte-identical text. The rendered text carries no indentation and no
// quote fencing; the patcher applies both when splicing into a file.
package render

import (
	"errors"
	"fmt"
	"strings"
	"sync"
)

// Style selects one of the built-in docstring layouts.
type Style string

const (
	// StyleGoogle is the Google docstring layout (Args:/Returns:/Raises:).
	StyleGoogle Style = "google"

	// StyleNumpy is the NumPy layout with underlined section headers.
	StyleNumpy Style = "numpy"

	// StyleRST is the reStructuredText field-list layout (:param:/:rtype:).
	StyleRST Style = "rst"
)

// ErrUnknownStyle reports a style outside the built-in set.
var ErrUnknownStyle = errors.New("unknown docstring style")

// Styles returns the built-in style names in stable order.
func Styles() []Style {
	return []Style{StyleGoogle, StyleNumpy, StyleRST}
}

// Arg is one documented parameter.
type Arg struct {
	Name        string
	Type        string
	Description string

	// Default is the rendered default expression, or nil when the parameter
	// has none. A non-nil Default also marks the argument optional.
	Default *string
}

// Return describes the documented return value.
type Return struct {
	Type        string
	Description string
}

// Raise is one documented exception.
type Raise struct {
	Type        string
	Description string
}

// Content is the rendering input for one docstring: a summary line, an
// optional description, and the argument, return, and raise sections.
type Content struct {
	Summary     string
	Description string
	Args        []Arg
	Returns     *Return
	Raises      []Raise
}

// definition is one immutable style definition. The renderer receives a
// definition by reference from the registry; definitions are never mutated
// after initialization.
type definition struct {
	name   Style
	render func(b *strings.Builder, c Content)
}

var (
	registryOnce sync.Once
	registry     map[Style]*definition
)

// styleRegistry returns the process-wide read-only style registry, building
// it on first use.
func styleRegistry() map[Style]*definition {
	registryOnce.Do(func() {
		registry = map[Style]*definition{
			StyleGoogle: {name: StyleGoogle, render: renderGoogle},
			StyleNumpy:  {name: StyleNumpy, render: renderNumpy},
			StyleRST:    {name: StyleRST, render: renderRST},
		}
	})
	return registry
}

// Render renders content under the given style. Unknown styles are an
// error; there is no fallback style.
func Render(style Style, c Content) (string, error) {
	def, ok := styleRegistry()[style]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownStyle, style)
	}
	var b strings.Builder
	def.render(&b, c)
	return b.String(), nil
}

// renderGoogle writes the Google layout:
//
//	Summary.
//
//	Description.
//
//	Args:
//	    name (type, optional): The name. Defaults to X.
//
//	Returns:
//	    type: The result.
//
//	Raises:
//	    type: If an error occurs.
func renderGoogle(b *strings.Builder, c Content) {
	b.WriteString(c.Summary)
	if c.Description != "" {
		b.WriteString("\n\n")
		b.WriteString(c.Description)
	}
	if len(c.Args) > 0 {
		b.WriteString("\n\nArgs:")
		for _, a := range c.Args {
			b.WriteString("\n    ")
			b.WriteString(a.Name)
			if a.Default != nil {
				fmt.Fprintf(b, " (%s, optional): %s Defaults to %s.", a.Type, a.Description, *a.Default)
			} else {
				fmt.Fprintf(b, " (%s): %s", a.Type, a.Description)
			}
		}
	}
	if c.Returns != nil {
		fmt.Fprintf(b, "\n\nReturns:\n    %s: %s", c.Returns.Type, c.Returns.Description)
	}
	if len(c.Raises) > 0 {
		b.WriteString("\n\nRaises:")
		for _, r := range c.Raises {
			fmt.Fprintf(b, "\n    %s: %s", r.Type, r.Description)
		}
	}
	b.WriteString("\n")
}

// renderNumpy writes the NumPy layout with underlined section headers and
// four-space indented descriptions.
func renderNumpy(b *strings.Builder, c Content) {
	b.WriteString(c.Summary)
	b.WriteString("\n")
	if c.Description != "" {
		b.WriteString("\n")
		b.WriteString(c.Description)
		b.WriteString("\n")
	}
	if len(c.Args) > 0 {
		b.WriteString("\nParameters\n----------")
		for _, a := range c.Args {
			fmt.Fprintf(b, "\n%s : %s\n    %s", a.Name, a.Type, a.Description)
			if a.Default != nil {
				fmt.Fprintf(b, " Default is %s.", *a.Default)
			}
		}
		b.WriteString("\n")
	}
	if c.Returns != nil {
		fmt.Fprintf(b, "\nReturns\n-------\n%s\n    %s\n", c.Returns.Type, c.Returns.Description)
	}
	if len(c.Raises) > 0 {
		b.WriteString("\nRaises\n------")
		for _, r := range c.Raises {
			fmt.Fprintf(b, "\n%s\n    %s", r.Type, r.Description)
		}
		b.WriteString("\n")
	}
}

// renderRST writes the reStructuredText field-list layout.
func renderRST(b *strings.Builder, c Content) {
	b.WriteString(c.Summary)
	b.WriteString("\n")
	if c.Description != "" {
		b.WriteString("\n")
		b.WriteString(c.Description)
		b.WriteString("\n")
	}
	if len(c.Args) > 0 {
		b.WriteString("\n")
		for _, a := range c.Args {
			fmt.Fprintf(b, ":param %s: %s\n", a.Name, a.Description)
			if a.Default != nil {
				fmt.Fprintf(b, ":type %s: %s, optional\n", a.Name, a.Type)
			} else {
				fmt.Fprintf(b, ":type %s: %s\n", a.Name, a.Type)
			}
		}
	}
	if c.Returns != nil {
		fmt.Fprintf(b, "\n:return: %s\n:rtype: %s\n", c.Returns.Description, c.Returns.Type)
	}
	if len(c.Raises) > 0 {
		b.WriteString("\n")
		for _, r := range c.Raises {
			fmt.Fprintf(b, ":raises %s: %s\n", r.Type, r.Description)
		}
	}
}
