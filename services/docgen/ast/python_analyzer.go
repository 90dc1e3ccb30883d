// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package ast

import (
	"context"
	"fmt"
	"time"
	"unicode/utf8"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"
)

// DefaultMaxFileSize is the largest source file the analyzer accepts.
const DefaultMaxFileSize = 10 * 1024 * 1024 // 10MB

// AnalyzerOption configures an Analyzer instance.
type AnalyzerOption func(*Analyzer)

// WithMaxFileSize sets the maximum file size the analyzer will accept.
func WithMaxFileSize(bytes int64) AnalyzerOption {
	return func(a *Analyzer) {
		if bytes > 0 {
			a.maxFileSize = bytes
		}
	}
}

// Analyzer parses Python source into a declaration tree.
//
// Analyzer uses tree-sitter and is safe for concurrent use: each Analyze
// call creates its own tree-sitter parser instance internally.
type Analyzer struct {
	maxFileSize int64
}

// NewAnalyzer creates an Analyzer with the given options.
func NewAnalyzer(opts ...AnalyzerOption) *Analyzer {
	a := &Analyzer{maxFileSize: DefaultMaxFileSize}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Analyze parses content as Python source and returns the declaration tree.
//
// The returned File holds every module, class, and function declaration in
// document order with parent handles resolved. Analyze fails with ErrParse
// when the source is not syntactically valid Python, with ErrFileTooLarge
// when content exceeds the size limit, and with ErrInvalidContent when
// content is not valid UTF-8. path is used for module naming and error
// reporting only; no I/O happens here.
func (a *Analyzer) Analyze(ctx context.Context, content []byte, path string) (*File, error) {
	start := time.Now()

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("analyze canceled before start: %w", err)
	}
	if int64(len(content)) > a.maxFileSize {
		recordAnalyze(ctx, 0, time.Since(start), false)
		return nil, fmt.Errorf("%w: size %d exceeds limit %d", ErrFileTooLarge, len(content), a.maxFileSize)
	}
	if !utf8.Valid(content) {
		recordAnalyze(ctx, 0, time.Since(start), false)
		return nil, fmt.Errorf("%w: content is not valid UTF-8", ErrInvalidContent)
	}

	// New parser instance per call for thread safety.
	parser := sitter.NewParser()
	parser.SetLanguage(python.GetLanguage())

	tree, err := parser.ParseCtx(ctx, nil, content)
	if err != nil {
		recordAnalyze(ctx, 0, time.Since(start), false)
		return nil, fmt.Errorf("tree-sitter parse failed: %w", err)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root == nil {
		recordAnalyze(ctx, 0, time.Since(start), false)
		return nil, fmt.Errorf("%w: tree-sitter returned no root node", ErrParse)
	}
	if root.HasError() {
		recordAnalyze(ctx, 0, time.Since(start), false)
		return nil, fmt.Errorf("%w: %s contains syntax errors", ErrParse, path)
	}

	b := &builder{src: content, file: &File{Path: path}}
	b.file.Decls = append(b.file.Decls, Declaration{
		Kind:      DeclModule,
		StartLine: 1,
		Parent:    NoParent,
		HasDoc:    hasDocstring(root, content),
	})
	b.walk(root, 0)

	recordAnalyze(ctx, len(b.file.Decls), time.Since(start), true)
	return b.file, nil
}

// builder accumulates declarations into the file arena during the walk.
type builder struct {
	src  []byte
	file *File
}

// walk descends depth-first from node, registering every class and function
// declaration under the given parent handle. Declarations open a new scope:
// their bodies are walked with the new handle as parent.
func (b *builder) walk(node *sitter.Node, parent int) {
	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)
		switch child.Type() {
		case "class_definition":
			b.addClass(child, parent)
		case "function_definition":
			b.addFunction(child, parent)
		case "decorated_definition":
			// Decorators do not affect generation; process the wrapped
			// definition with the definition's own start line.
			for j := 0; j < int(child.NamedChildCount()); j++ {
				inner := child.NamedChild(j)
				switch inner.Type() {
				case "class_definition":
					b.addClass(inner, parent)
				case "function_definition":
					b.addFunction(inner, parent)
				}
			}
		case "comment", "string":
			// Nothing to find inside.
		default:
			// Declarations may be nested in control flow (if/try/with);
			// keep descending through statement nodes.
			b.walk(child, parent)
		}
	}
}

// addClass appends a class declaration and walks its body for members.
func (b *builder) addClass(node *sitter.Node, parent int) {
	var name string
	var bases []string
	var body *sitter.Node

	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)
		switch child.Type() {
		case "identifier":
			if name == "" {
				name = b.text(child)
			}
		case "argument_list":
			for j := 0; j < int(child.NamedChildCount()); j++ {
				arg := child.NamedChild(j)
				switch arg.Type() {
				case "keyword_argument", "comment":
					// metaclass=... and friends are not bases.
				default:
					bases = append(bases, b.text(arg))
				}
			}
		case "block":
			body = child
		}
	}
	if name == "" {
		return
	}

	handle := len(b.file.Decls)
	b.file.Decls = append(b.file.Decls, Declaration{
		Name:      name,
		Kind:      DeclClass,
		StartLine: int(node.StartPoint().Row + 1),
		Parent:    parent,
		Bases:     bases,
		HasDoc:    body != nil && hasDocstring(body, b.src),
	})
	if body != nil {
		b.walk(body, handle)
	}
}

// addFunction appends a function declaration and walks its body for nested
// definitions.
func (b *builder) addFunction(node *sitter.Node, parent int) {
	var name string
	var returnType string
	var params *sitter.Node
	var body *sitter.Node

	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)
		switch child.Type() {
		case "identifier":
			if name == "" {
				name = b.text(child)
			}
		case "parameters":
			params = child
		case "type":
			returnType = b.text(child)
		case "block":
			body = child
		}
	}
	if name == "" {
		return
	}

	isMethod := parent != NoParent && b.file.Decls[parent].Kind == DeclClass

	handle := len(b.file.Decls)
	b.file.Decls = append(b.file.Decls, Declaration{
		Name:       name,
		Kind:       DeclFunction,
		StartLine:  int(node.StartPoint().Row + 1),
		Parent:     parent,
		Params:     b.extractParams(params, isMethod),
		ReturnType: returnType,
		Raised:     b.collectRaises(body),
		HasDoc:     body != nil && hasDocstring(body, b.src),
	})
	if body != nil {
		b.walk(body, handle)
	}
}

// extractParams reads the parameter list, dropping the receiver of a method.
// Splat parameters (*args, **kwargs) and positional/keyword separators are
// not documented and are skipped.
func (b *builder) extractParams(params *sitter.Node, isMethod bool) []Param {
	if params == nil {
		return nil
	}

	var out []Param
	first := true
	for i := 0; i < int(params.NamedChildCount()); i++ {
		child := params.NamedChild(i)
		var p Param
		switch child.Type() {
		case "identifier":
			p.Name = b.text(child)
		case "typed_parameter":
			// The name is the first named child; only the type is a field.
			if id := child.NamedChild(0); id != nil && id.Type() == "identifier" {
				p.Name = b.text(id)
			}
			if typ := child.ChildByFieldName("type"); typ != nil {
				p.Type = b.text(typ)
			}
		case "default_parameter", "typed_default_parameter":
			// Resolve by grammar field so an identifier-valued default
			// (x=SENTINEL) is never mistaken for the parameter name.
			if id := child.ChildByFieldName("name"); id != nil && id.Type() == "identifier" {
				p.Name = b.text(id)
			}
			if typ := child.ChildByFieldName("type"); typ != nil {
				p.Type = b.text(typ)
			}
			if val := child.ChildByFieldName("value"); val != nil {
				v := b.text(val)
				p.Default = &v
			}
		default:
			continue
		}
		if p.Name == "" {
			continue
		}
		if first && isMethod && p.Name == "self" {
			first = false
			continue
		}
		first = false
		out = append(out, p)
	}
	return out
}

// collectRaises finds the exception type of every raise statement lexically
// inside body, deduplicated in discovery order. The search is an iterative
// depth-first traversal with an explicit stack and stops descending at
// nested class and function boundaries so inner declarations keep their own
// raises.
func (b *builder) collectRaises(body *sitter.Node) []string {
	if body == nil {
		return nil
	}

	var raised []string
	seen := make(map[string]bool)

	stack := []*sitter.Node{body}
	for len(stack) > 0 {
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		switch node.Type() {
		case "function_definition", "class_definition":
			continue
		case "raise_statement":
			name := b.raisedType(node)
			if !seen[name] {
				seen[name] = true
				raised = append(raised, name)
			}
			continue
		}

		// Push children in reverse so the traversal pops in document order.
		for i := int(node.NamedChildCount()) - 1; i >= 0; i-- {
			stack = append(stack, node.NamedChild(i))
		}
	}
	return raised
}

// raisedType derives the exception type name for one raise statement: the
// callee name for a constructed exception, the expression's source text
// otherwise, and "Exception" for a bare raise.
func (b *builder) raisedType(raise *sitter.Node) string {
	if raise.NamedChildCount() == 0 {
		return "Exception"
	}
	exc := raise.NamedChild(0)
	if exc.Type() == "call" && exc.NamedChildCount() > 0 {
		return b.text(exc.NamedChild(0))
	}
	return b.text(exc)
}

// hasDocstring reports whether the first statement of a module or block body
// is a string expression. Leading comments are not statements and are
// skipped.
func hasDocstring(body *sitter.Node, src []byte) bool {
	for i := 0; i < int(body.NamedChildCount()); i++ {
		child := body.NamedChild(i)
		if child.Type() == "comment" {
			continue
		}
		if child.Type() == "expression_statement" && child.NamedChildCount() > 0 {
			return child.NamedChild(0).Type() == "string"
		}
		return false
	}
	return false
}

// text returns the node's source text.
func (b *builder) text(node *sitter.Node) string {
	return string(b.src[node.StartByte():node.EndByte()])
}
