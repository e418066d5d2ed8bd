// Copyright 2024 The Sprig Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package parser implements the token controller (spec §4.3) and the
// recursive-descent parser (spec §4.4) that together turn a token stream
// into a CST.
package parser

import "github.com/mleku/sprig/pkg/token"

// Tree is a CST node: a symbolic rule name with ordered children, each of
// which is either a *token.Token (a leaf) or another *Tree (a subtree).
type Tree struct {
	Rule     string
	Children []any
}

// NewTree builds a Tree, accepting *token.Token and *Tree children in any
// mix, in the order the grammar rule produced them.
func NewTree(rule string, children ...any) *Tree {
	return &Tree{Rule: rule, Children: children}
}

// Token returns the i-th child as a token, or nil if it isn't one.
func (t *Tree) Token(i int) *token.Token {
	if i < 0 || i >= len(t.Children) {
		return nil
	}
	tok, _ := t.Children[i].(*token.Token)
	return tok
}

// Subtree returns the i-th child as a subtree, or nil if it isn't one.
func (t *Tree) Subtree(i int) *Tree {
	if i < 0 || i >= len(t.Children) {
		return nil
	}
	sub, _ := t.Children[i].(*Tree)
	return sub
}
