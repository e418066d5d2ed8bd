// Copyright 2024 The Sprig Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package value

import "testing"

func TestEqual(t *testing.T) {
	cases := []struct {
		name string
		a, b any
		want bool
	}{
		{"int equal", int64(3), int64(3), true},
		{"int float cross", int64(3), float64(3), true},
		{"int mismatch", int64(3), int64(4), false},
		{"string equal", "hi", "hi", true},
		{"bool equal", true, true, true},
		{"nil both", nil, nil, true},
		{"nil one side", nil, int64(0), false},
		{"collection equal", NewCollection(int64(1), int64(2)), NewCollection(int64(1), int64(2)), true},
		{"collection length mismatch", NewCollection(int64(1)), NewCollection(int64(1), int64(2)), false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := Equal(c.a, c.b); got != c.want {
				t.Errorf("Equal(%v, %v) = %v, want %v", c.a, c.b, got, c.want)
			}
		})
	}
}

func TestDisplay(t *testing.T) {
	cases := []struct {
		name string
		v    any
		want string
	}{
		{"int", int64(10), "10"},
		{"float", float64(1.5), "1.5"},
		{"bool true", true, "true"},
		{"bool false", false, "false"},
		{"string bare", "hello", "hello"},
		{"nil", nil, "None"},
		{"collection of strings", NewCollection("Hello", "world"), "['Hello', 'world']"},
		{"collection of ints", NewCollection(int64(1), int64(2), int64(3)), "[1, 2, 3]"},
		{"nested collection", NewCollection(NewCollection(int64(1)), int64(2)), "[[1], 2]"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := Display(c.v); got != c.want {
				t.Errorf("Display(%v) = %q, want %q", c.v, got, c.want)
			}
		})
	}
}

func TestCollectionAppendRemove(t *testing.T) {
	c := NewCollection(int64(1), int64(2))
	c.Append(int64(3))
	if Display(c) != "[1, 2, 3]" {
		t.Fatalf("after append: %s", Display(c))
	}
	if !c.Remove(int64(2)) {
		t.Fatal("expected Remove to find element")
	}
	if Display(c) != "[1, 3]" {
		t.Fatalf("after remove: %s", Display(c))
	}
	if c.Remove(int64(99)) {
		t.Fatal("Remove should report false for an absent element")
	}
}

func TestCollectionAppendSharesUnderlyingBinding(t *testing.T) {
	c := NewCollection(int64(1), int64(2))
	alias := c
	c.Append(int64(3))
	if len(alias.Elements) != 3 {
		t.Fatalf("mutation through alias not observed: %v", alias.Elements)
	}
}
