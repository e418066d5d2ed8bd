// Copyright 2024 The Sprig Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package closure

import (
	"testing"

	"github.com/mleku/sprig/pkg/ast"
)

func TestDeclareAndLocal(t *testing.T) {
	c := New(nil)
	if c.HasLocal("x") {
		t.Fatal("empty closure should not have x")
	}
	c.Declare(&Item{Kind: VariableItem, Name: "x", Type: ast.Int, Value: int64(1)})
	if !c.HasLocal("x") {
		t.Fatal("x should be local after Declare")
	}
	item, ok := c.Local("x")
	if !ok || item.Value != int64(1) {
		t.Fatalf("Local(x) = %v, %v", item, ok)
	}
}

func TestLookupWalksParentChain(t *testing.T) {
	root := New(nil)
	root.Declare(&Item{Kind: VariableItem, Name: "g", Value: int64(42)})
	child := New(root)

	item, owner, ok := child.Lookup("g")
	if !ok {
		t.Fatal("expected g to resolve through parent")
	}
	if item.Value != int64(42) {
		t.Fatalf("Lookup(g).Value = %v, want 42", item.Value)
	}
	if owner != root {
		t.Fatal("Lookup should report root as owning closure")
	}

	if _, _, ok := child.Lookup("missing"); ok {
		t.Fatal("Lookup(missing) should fail")
	}
}

func TestReassignValueUpdatesOwningScope(t *testing.T) {
	root := New(nil)
	root.Declare(&Item{Kind: VariableItem, Name: "x", Value: int64(0)})
	child := New(root)

	if err := child.ReassignValue("x", int64(5)); err != nil {
		t.Fatalf("ReassignValue: %v", err)
	}
	item, ok := root.Local("x")
	if !ok || item.Value != int64(5) {
		t.Fatalf("root.Local(x) = %v, %v, want 5", item, ok)
	}
	if _, ok := child.Local("x"); ok {
		t.Fatal("x should not have been declared locally in child")
	}
}

func TestReassignValueUndeclaredFails(t *testing.T) {
	c := New(nil)
	if err := c.ReassignValue("nope", int64(1)); err == nil {
		t.Fatal("expected error reassigning an undeclared name")
	}
}

func TestItemsPreservesInsertionOrder(t *testing.T) {
	c := New(nil)
	c.Declare(&Item{Kind: VariableItem, Name: "b"})
	c.Declare(&Item{Kind: VariableItem, Name: "a"})
	c.Declare(&Item{Kind: VariableItem, Name: "b"})

	items := c.Items()
	if len(items) != 2 {
		t.Fatalf("expected 2 distinct items, got %d", len(items))
	}
	if items[0].Name != "b" || items[1].Name != "a" {
		t.Fatalf("unexpected order: %v, %v", items[0].Name, items[1].Name)
	}
}

func TestFuncType(t *testing.T) {
	item := &Item{
		Kind:       FunctionItem,
		Params:     []*ast.FunctionParam{{Name: "a", Type: ast.Int}, {Name: "b", Type: ast.Str}},
		ReturnType: ast.Bool,
	}
	ft := item.FuncType()
	want := ast.FunctionType{Params: []ast.UnitType{ast.Int, ast.Str}, Return: ast.Bool}
	if !ast.Equal(ft, want) {
		t.Errorf("FuncType() = %v, want %v", ft, want)
	}
}
