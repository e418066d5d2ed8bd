// Copyright 2024 The Sprig Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package parser

import (
	"strings"

	"github.com/mleku/sprig/pkg/token"
)

// Print reconstructs source text from a CST, a structural pretty-printer
// exercising the same tree the parser produces (spec §8's round-trip
// property, made into a runnable command by `sprig fmt`). The grammar
// rules consume most delimiter tokens ("(", ")", "{", "}", ",", ".")
// without keeping them as CST children, so reconstructing them is rule
// driven rather than a generic token join. Fidelity is structural, not
// textual: blank-line placement and comments from the original source are
// not preserved, only a consistently indented rendering that re-parses to
// an equivalent tree.
func Print(tree *Tree) string {
	p := &printer{}
	p.block(tree, 0)
	return strings.TrimRight(p.buf.String(), "\n") + "\n"
}

type printer struct {
	buf strings.Builder
}

func (p *printer) indent(depth int) {
	p.buf.WriteString(strings.Repeat("\t", depth))
}

// block prints "start" and "statements_block" nodes one statement per
// line; any other node is rendered inline on its own line.
func (p *printer) block(n any, depth int) {
	tree, ok := n.(*Tree)
	if !ok {
		p.indent(depth)
		p.buf.WriteString(renderInline(n))
		p.buf.WriteString("\n")
		return
	}
	switch tree.Rule {
	case "start", "statements_block":
		for _, child := range tree.Children {
			p.statement(child, depth)
		}
	default:
		p.indent(depth)
		p.buf.WriteString(renderInline(tree))
		p.buf.WriteString("\n")
	}
}

// statement prints one statement-level node. Constructs with an embedded
// statements_block (function body, loop body, if/elif/else arms) get their
// own brace/indent handling since the grammar never keeps "{" and "}" as
// CST children.
func (p *printer) statement(n any, depth int) {
	tree, ok := n.(*Tree)
	if !ok {
		p.indent(depth)
		p.buf.WriteString(renderInline(n))
		p.buf.WriteString("\n")
		return
	}
	switch tree.Rule {
	case "function_declaration":
		name, params, retType, body := tree.Token(0), tree.Subtree(1), tree.Token(2), tree.Subtree(3)
		p.indent(depth)
		p.buf.WriteString(renderInline(name) + "(" + renderInline(params) + ") " + renderInline(retType))
		p.blockBody(body, depth)
		p.buf.WriteString("\n")
	case "for_statement":
		name, iter, body := tree.Token(0), tree.Children[1], tree.Subtree(2)
		p.indent(depth)
		p.buf.WriteString("for " + renderInline(name) + " in " + renderInline(iter))
		p.blockBody(body, depth)
		p.buf.WriteString("\n")
	case "while_statement":
		cond, body := tree.Children[0], tree.Subtree(1)
		p.indent(depth)
		p.buf.WriteString("while " + renderInline(cond))
		p.blockBody(body, depth)
		p.buf.WriteString("\n")
	case "if_expression":
		p.indent(depth)
		p.ifChain(tree, depth)
		p.buf.WriteString("\n")
	default:
		p.indent(depth)
		p.buf.WriteString(renderInline(tree))
		p.buf.WriteString("\n")
	}
}

// blockBody prints " { <indented statements> }" for a nested
// statements_block, without a trailing newline (the caller adds one).
func (p *printer) blockBody(body *Tree, depth int) {
	p.buf.WriteString(" {\n")
	for _, stmt := range body.Children {
		p.statement(stmt, depth+1)
	}
	p.indent(depth)
	p.buf.WriteString("}")
}

// ifChain prints an if_expression and its elseif_expression/else_expression
// tail in place, e.g. "if c { ... } elif c2 { ... } else { ... }".
func (p *printer) ifChain(tree *Tree, depth int) {
	switch tree.Rule {
	case "if_expression":
		cond, body := tree.Children[0], tree.Subtree(1)
		p.buf.WriteString("if " + renderInline(cond))
		p.blockBody(body, depth)
		for _, child := range tree.Children[2:] {
			sub, ok := child.(*Tree)
			if !ok {
				continue
			}
			p.buf.WriteString(" ")
			p.ifChain(sub, depth)
		}
	case "elseif_expression":
		cond, body := tree.Children[0], tree.Subtree(1)
		p.buf.WriteString("elif " + renderInline(cond))
		p.blockBody(body, depth)
	case "else_expression":
		body := tree.Subtree(0)
		p.buf.WriteString("else")
		p.blockBody(body, depth)
	}
}

// tight lists token kinds that appendInline writes without a leading
// space. It is empty, so every child after the first is preceded by one
// space.
var tight = map[token.Kind]bool{}

// renderInline renders n as source text on a single line. Rules whose
// delimiter tokens ("(", ")", "[", "]", ",", ".", the "ret" keyword) were
// dropped during parsing reconstruct them explicitly; every other rule
// falls back to a generic space-joined child list. The "if"/"elif"/"else"
// keywords and braces are written only by ifChain, for an if_expression
// in statement position.
func renderInline(n any) string {
	switch v := n.(type) {
	case nil:
		return ""
	case *token.Token:
		if v == nil {
			return ""
		}
		return v.Text
	case *Tree:
		switch v.Rule {
		case "function_parameters":
			return joinInline(v.Children, ", ")
		case "type":
			return joinInline(v.Children, ".")
		case "call_suffix":
			return "(" + joinInline(v.Children, ", ") + ")"
		case "indexing_suffix":
			return "[" + renderInline(v.Children[0]) + "]"
		case "navigation_suffix":
			return "." + renderInline(v.Children[0])
		case "parenthesized_expression":
			return "(" + renderInline(v.Children[0]) + ")"
		case "collection_literal":
			return "[" + joinInline(v.Children, ", ") + "]"
		case "postfix_unary_expression":
			var b strings.Builder
			for _, c := range v.Children {
				b.WriteString(renderInline(c))
			}
			return b.String()
		case "prefix_unary_expression":
			var b strings.Builder
			for _, c := range v.Children {
				b.WriteString(renderInline(c))
			}
			return b.String()
		case "return_statement":
			if len(v.Children) == 0 {
				return "ret"
			}
			return "ret " + renderInline(v.Children[0])
		default:
			var b strings.Builder
			for _, child := range v.Children {
				appendInline(&b, child)
			}
			return b.String()
		}
	default:
		return ""
	}
}

func joinInline(children []any, sep string) string {
	parts := make([]string, len(children))
	for i, c := range children {
		parts[i] = renderInline(c)
	}
	return strings.Join(parts, sep)
}

func appendInline(b *strings.Builder, child any) {
	var text string
	var kind token.Kind
	var hasKind bool
	switch v := child.(type) {
	case *token.Token:
		text, kind, hasKind = v.Text, v.Kind, true
	default:
		text = renderInline(v)
	}

	s := b.String()
	needSpace := len(s) > 0
	if needSpace && hasKind && tight[kind] {
		needSpace = false
	}
	if needSpace {
		b.WriteString(" ")
	}
	b.WriteString(text)
}
