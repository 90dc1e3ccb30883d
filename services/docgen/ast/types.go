// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package ast parses Python source into a declaration tree used for
// docstring generation.
//
// The package extracts one Declaration per module, class, and function
// (including methods and nested definitions), records each declaration's
// signature and raised exceptions, and reports whether it already carries a
// docstring. Declarations live in a flat arena owned by File; parent links
// are arena handles rather than pointers, so the tree has no cycles and a
// child can always name its enclosing class.
package ast

import (
	"errors"
	"fmt"
	"strings"
)

// DeclKind identifies the kind of declaration.
//
// The set is closed: every switch over DeclKind in this module handles all
// three values explicitly.
type DeclKind int

const (
	// DeclModule is the file-level module declaration. There is exactly one
	// per parsed file and it is always the first arena entry.
	DeclModule DeclKind = iota

	// DeclClass is a class definition.
	DeclClass

	// DeclFunction is a function or method definition.
	DeclFunction
)

// String returns the human-readable kind name.
func (k DeclKind) String() string {
	switch k {
	case DeclModule:
		return "module"
	case DeclClass:
		return "class"
	case DeclFunction:
		return "function"
	default:
		return "unknown"
	}
}

// NoParent is the parent handle of the module declaration.
const NoParent = -1

// Param is a single declared parameter of a function or method.
//
// The receiver parameter (self) of a method is never included.
type Param struct {
	// Name is the parameter identifier.
	Name string

	// Type is the declared annotation text, or "" when unannotated.
	Type string

	// Default is the source text of the default expression, or nil when the
	// parameter has no default.
	Default *string
}

// Declaration is one module, class, or function found in a source file.
type Declaration struct {
	// Name is the declared identifier. Empty for the module declaration.
	Name string

	// Kind distinguishes module, class, and function declarations.
	Kind DeclKind

	// StartLine is the 1-based line of the def/class keyword, or 1 for the
	// module declaration.
	StartLine int

	// Parent is the arena handle of the enclosing declaration, or NoParent
	// for the module. Resolve it through File.Parent.
	Parent int

	// Params are the declared parameters, receiver excluded. Function only.
	Params []Param

	// ReturnType is the declared return annotation text, or "". Function only.
	ReturnType string

	// Raised lists exception type names raised anywhere in the body,
	// deduplicated in discovery order. Collection stops at nested class and
	// function boundaries so inner declarations keep their own raises.
	Raised []string

	// Bases are the base-class expressions in declaration order. Class only.
	Bases []string

	// HasDoc reports whether the declaration already has a docstring. A
	// declaration with HasDoc set is never synthesized or touched.
	HasDoc bool
}

// File is the result of analyzing one Python source file.
//
// Decls is an arena: index 0 is always the module declaration, and every
// Declaration.Parent is an index into the same slice. A File is built once
// by Analyze and read-only afterwards.
type File struct {
	// Path is the file path the source was read from, used for module naming.
	Path string

	// Decls holds every declaration in document order, module first.
	Decls []Declaration
}

// Parse and input sentinels. Callers match with errors.Is.
var (
	// ErrParse reports that the source is not syntactically valid Python.
	ErrParse = errors.New("python parse error")

	// ErrFileTooLarge reports that the source exceeds the analyzer's limit.
	ErrFileTooLarge = errors.New("file exceeds maximum size")

	// ErrInvalidContent reports that the source is not valid UTF-8.
	ErrInvalidContent = errors.New("invalid file content")
)

// Module returns the module declaration.
func (f *File) Module() *Declaration {
	return &f.Decls[0]
}

// Parent resolves a declaration's parent handle, or nil for the module.
func (f *File) Parent(d *Declaration) *Declaration {
	if d.Parent == NoParent {
		return nil
	}
	return &f.Decls[d.Parent]
}

// IsMethod reports whether d is a function declared directly inside a class.
func (f *File) IsMethod(d *Declaration) bool {
	p := f.Parent(d)
	return d.Kind == DeclFunction && p != nil && p.Kind == DeclClass
}

// TopLevel returns the names of direct module children of the given kind, in
// document order. Used to describe the module's contents.
func (f *File) TopLevel(kind DeclKind) []string {
	var names []string
	for i := range f.Decls {
		d := &f.Decls[i]
		if d.Parent == 0 && d.Kind == kind {
			names = append(names, d.Name)
		}
	}
	return names
}

// Missing returns every declaration that lacks a docstring and is eligible
// for generation, in document order: the module first, then classes and
// functions depth-first.
//
// Eligibility: functions and methods with a private name are skipped unless
// includePrivate is set; the module and classes are always eligible.
func (f *File) Missing(includePrivate bool) []*Declaration {
	var out []*Declaration
	for i := range f.Decls {
		d := &f.Decls[i]
		if d.HasDoc {
			continue
		}
		if d.Kind == DeclFunction && !includePrivate && !IsExported(d.Name) {
			continue
		}
		out = append(out, d)
	}
	return out
}

// IsExported reports whether a Python name is public.
//
// Convention: a leading underscore marks a name private, and a leading
// double underscore marks it name-mangled. Dunder names (__init__, __str__)
// are special methods and count as public.
func IsExported(name string) bool {
	if name == "" {
		return false
	}
	if strings.HasPrefix(name, "__") && strings.HasSuffix(name, "__") {
		return true
	}
	return !strings.HasPrefix(name, "_")
}

// DeclID returns a stable identifier for a declaration, used in logs.
func (f *File) DeclID(d *Declaration) string {
	name := d.Name
	if d.Kind == DeclModule {
		name = "__module__"
	}
	return fmt.Sprintf("%s:%d:%s", f.Path, d.StartLine, name)
}
