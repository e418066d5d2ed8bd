// Copyright 2024 The Sprig Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package closure implements C7, the nested name-to-binding environment
// shared by the semantic analyzer (which tracks declared/resolved types)
// and the evaluator (which additionally carries runtime values). Both
// stages walk the same parent-pointer chain, grounded in
// original_source/src/interpreter/interpretation.py's Closure class.
package closure

import (
	"fmt"

	"github.com/mleku/sprig/pkg/ast"
)

// Kind distinguishes the two closure item variants of spec §3.
type Kind int

const (
	VariableItem Kind = iota
	FunctionItem
)

// Item is one binding in a Closure: a Variable (name, type, bound/const
// flags, and — once assigned — a runtime Value) or a Function (name,
// signature, body).
type Item struct {
	Kind Kind
	Name string

	// Variable fields.
	Type    ast.UnitType
	IsBound bool
	IsConst bool
	Value   any

	// Function fields.
	Params     []*ast.FunctionParam
	ReturnType ast.UnitType
	Body       *ast.StatementsBlock

	// Native, when non-nil, makes this a builtin: calling it invokes
	// Native directly instead of walking Body.
	Native func(args []any) (any, error)
}

// FuncType synthesizes this item's FunctionType, for Identifier type
// resolution over a Function item.
func (it *Item) FuncType() ast.FunctionType {
	params := make([]ast.UnitType, len(it.Params))
	for i, p := range it.Params {
		params[i] = p.Type
	}
	return ast.FunctionType{Params: params, Return: it.ReturnType}
}

// Closure is an ordered name-to-Item mapping with a non-owning pointer to
// its parent scope. Frames are created on entry to a statements block or
// function call and discarded on exit (spec §3's Lifecycles).
type Closure struct {
	parent *Closure
	items  map[string]*Item
	order  []string
}

// New builds a Closure nested inside parent. parent may be nil for the
// root closure.
func New(parent *Closure) *Closure {
	return &Closure{parent: parent, items: make(map[string]*Item)}
}

// Parent returns the enclosing closure, or nil at the root.
func (c *Closure) Parent() *Closure { return c.parent }

// HasLocal reports whether name is bound in this scope only, ignoring
// ancestors. The semantic analyzer uses this to detect
// InvalidRedeclaration before calling Declare.
func (c *Closure) HasLocal(name string) bool {
	_, ok := c.items[name]
	return ok
}

// Local returns the item bound to name in this scope only, ignoring
// ancestors.
func (c *Closure) Local(name string) (*Item, bool) {
	item, ok := c.items[name]
	return item, ok
}

// Declare inserts item into this scope, recording insertion order.
// Overwrites silently if name was already local; callers enforce
// redeclaration rules with Local/HasLocal first.
func (c *Closure) Declare(item *Item) {
	if _, exists := c.items[item.Name]; !exists {
		c.order = append(c.order, item.Name)
	}
	c.items[item.Name] = item
}

// AssignValue places item into this scope under name, exactly the
// "innermost scope" semantics of spec §3's assignValue.
func (c *Closure) AssignValue(name string, item *Item) {
	item.Name = name
	c.Declare(item)
}

// Lookup walks the parent chain starting at c and returns the item bound
// to name along with the closure that owns it.
func (c *Closure) Lookup(name string) (*Item, *Closure, bool) {
	for cur := c; cur != nil; cur = cur.parent {
		if item, ok := cur.items[name]; ok {
			return item, cur, true
		}
	}
	return nil, nil, false
}

// ReassignValue updates the Value (and marks bound) of the innermost
// enclosing scope that already defines name, per spec §3's
// reassignValue. It fails if no enclosing scope defines name.
func (c *Closure) ReassignValue(name string, value any) error {
	_, owner, ok := c.Lookup(name)
	if !ok {
		return fmt.Errorf("closure: reassignValue: %q is not declared in any enclosing scope", name)
	}
	item := owner.items[name]
	item.Value = value
	item.IsBound = true
	return nil
}

// Items returns every local binding in insertion order, for debugging
// and test assertions.
func (c *Closure) Items() []*Item {
	out := make([]*Item, 0, len(c.order))
	for _, name := range c.order {
		out = append(out, c.items[name])
	}
	return out
}
