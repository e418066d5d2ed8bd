// Copyright 2024 The Sprig Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package parser

import (
	"testing"

	"github.com/mleku/sprig/pkg/token"
)

// structurallyEqual compares two CST nodes ignoring source position
// (Line/Column), which Print intentionally does not reproduce exactly.
func structurallyEqual(a, b any) bool {
	at, aIsTree := a.(*Tree)
	bt, bIsTree := b.(*Tree)
	if aIsTree != bIsTree {
		return false
	}
	if aIsTree {
		if at.Rule != bt.Rule || len(at.Children) != len(bt.Children) {
			return false
		}
		for i := range at.Children {
			if !structurallyEqual(at.Children[i], bt.Children[i]) {
				return false
			}
		}
		return true
	}

	atok, aok := a.(*token.Token)
	btok, bok := b.(*token.Token)
	if !aok || !bok {
		return false
	}
	return atok.Kind == btok.Kind && atok.Text == btok.Text
}

// TestPrintReparseRoundTrip exercises spec.md §8's AST round-trip property
// at the CST level: pretty-printing a parsed tree and re-parsing the
// printed text must produce a structurally equivalent tree.
func TestPrintReparseRoundTrip(t *testing.T) {
	sources := []string{
		"main() None { test_print(1) }",
		"sum(a int, b int) int { ret a + b }",
		"main() None {\n  let x int = 1\n  while x < 10 { x += 1 }\n}",
		"main() None {\n  if x { 1 } elif y { 2 } else { 3 }\n}",
		"main() None { var xs List = [1, 2, 3] ret xs[0] }",
	}
	for _, src := range sources {
		original := mustParse(t, src)
		printed := Print(original)

		reparsed, err := parse(t, printed)
		if err != nil {
			t.Fatalf("source %q: re-parsing printed output %q: %v", src, printed, err)
		}
		if !structurallyEqual(original, reparsed) {
			t.Errorf("source %q: round-trip mismatch\nprinted: %s\noriginal: %+v\nreparsed: %+v", src, printed, original, reparsed)
		}

		reprinted := Print(reparsed)
		if reprinted != printed {
			t.Errorf("source %q: printing is not idempotent\nfirst:  %q\nsecond: %q", src, printed, reprinted)
		}
	}
}
