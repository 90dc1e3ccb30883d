// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package synth derives docstring content from a declaration's static shape.
//
// Synthesis is a pure function of the declaration tree: no I/O, no
// randomness. The same declaration always yields the same Content. The
// descriptions are deliberately best-effort heuristics built from names and
// signatures; they are meant as a starting point, not as correct prose.
package synth

import (
	"fmt"
	"path/filepath"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/AleutianAI/pydocgen/services/docgen/ast"
	"github.com/AleutianAI/pydocgen/services/docgen/render"
)

// maxModuleMentions caps how many class or function names the module
// description lists.
const maxModuleMentions = 3

var titleCaser = cases.Title(language.English)

// Synthesize builds the docstring content for one declaration.
func Synthesize(file *ast.File, decl *ast.Declaration) render.Content {
	switch decl.Kind {
	case ast.DeclModule:
		return moduleContent(file)
	case ast.DeclClass:
		return classContent(decl)
	case ast.DeclFunction:
		return functionContent(file, decl)
	default:
		return render.Content{}
	}
}

// moduleContent summarizes a module from its file stem and describes it from
// its top-level classes or functions.
func moduleContent(file *ast.File) render.Content {
	base := filepath.Base(file.Path)
	stem := strings.TrimSuffix(base, filepath.Ext(base))

	c := render.Content{
		Summary: titleCaser.String(spaced(stem)) + " module.",
	}

	classes := file.TopLevel(ast.DeclClass)
	functions := file.TopLevel(ast.DeclFunction)

	desc := "This module provides functionality for "
	switch {
	case len(classes) > 0:
		desc += "working with " + strings.Join(truncate(classes), ", ") + "."
	case len(functions) > 0:
		for i, name := range functions {
			functions[i] = spaced(name)
		}
		desc += "performing operations like " + strings.Join(truncate(functions), ", ") + "."
	default:
		desc += "various operations."
	}
	c.Description = desc
	return c
}

// classContent summarizes a class from its name and describes its bases.
func classContent(decl *ast.Declaration) render.Content {
	c := render.Content{
		Summary: fmt.Sprintf("%s class for %s.", decl.Name, spaced(strings.ToLower(decl.Name))),
	}
	if len(decl.Bases) > 0 {
		c.Description = "This class inherits from " + strings.Join(decl.Bases, ", ") + "."
	}
	return c
}

// functionContent builds the summary, argument, return, and raise sections
// for a function or method.
func functionContent(file *ast.File, decl *ast.Declaration) render.Content {
	name := spaced(decl.Name)

	var c render.Content
	if parent := file.Parent(decl); file.IsMethod(decl) && parent != nil {
		c.Summary = fmt.Sprintf("%s for %s.", capitalize(name), parent.Name)
	} else {
		c.Summary = capitalize(name) + "."
	}

	for _, p := range decl.Params {
		argType := p.Type
		if argType == "" {
			argType = "Any"
		}
		c.Args = append(c.Args, render.Arg{
			Name:        p.Name,
			Type:        argType,
			Description: fmt.Sprintf("The %s.", spaced(p.Name)),
			Default:     p.Default,
		})
	}

	if decl.ReturnType != "" {
		c.Returns = &render.Return{
			Type:        decl.ReturnType,
			Description: returnDescription(name),
		}
	}

	for _, raised := range decl.Raised {
		c.Raises = append(c.Raises, render.Raise{
			Type:        raised,
			Description: fmt.Sprintf("If an error occurs during %s.", name),
		})
	}
	return c
}

// returnDescription is "The result." except for getters, where the getter
// prefix is stripped: "get name" describes its return as "The name.".
func returnDescription(spacedName string) string {
	if !strings.HasPrefix(spacedName, "get") {
		return "The result."
	}
	rest := ""
	if len(spacedName) > 4 {
		rest = spacedName[4:]
	}
	return fmt.Sprintf("The %s.", rest)
}

// spaced converts underscores to spaces.
func spaced(name string) string {
	return strings.ReplaceAll(name, "_", " ")
}

// capitalize upper-cases the first rune and lower-cases the rest, matching
// Python's str.capitalize. Python identifiers may open with non-ASCII
// letters, so the first character is decoded as a rune, not a byte.
func capitalize(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
}

// truncate limits a name list to maxModuleMentions entries.
func truncate(names []string) []string {
	if len(names) > maxModuleMentions {
		return names[:maxModuleMentions]
	}
	return names
}
