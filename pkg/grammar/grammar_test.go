// Copyright 2024 The Sprig Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package grammar

import "testing"

func matcherNames(matchers []Matcher, candidate string) []string {
	var names []string
	for _, m := range matchers {
		if m.Matches(candidate) {
			names = append(names, m.Name())
		}
	}
	return names
}

func TestLoadIncludesBuiltinPunctuation(t *testing.T) {
	matchers := Load("")
	if len(matcherNames(matchers, "(")) != 1 {
		t.Fatalf("expected exactly one matcher for '(' even with empty grammar text")
	}
}

func TestNameExcludesReservedKeywords(t *testing.T) {
	matchers := Load(Default)
	for _, kw := range []string{"true", "false", "let", "var", "for", "while", "if", "elif", "else", "in", "ret", "break", "or", "and"} {
		names := matcherNames(matchers, kw)
		if len(names) != 1 {
			t.Fatalf("candidate %q matched %v, want exactly one matcher (not NAME)", kw, names)
		}
		for _, n := range names {
			if n == "NAME" {
				t.Errorf("keyword %q matched NAME as well as its own terminal", kw)
			}
		}
	}
}

func TestNameMatchesOrdinaryIdentifiers(t *testing.T) {
	matchers := Load(Default)
	for _, ident := range []string{"x", "foo", "_bar", "letter", "forever", "Hello", "test_print"} {
		names := matcherNames(matchers, ident)
		if len(names) != 1 || names[0] != "NAME" {
			t.Errorf("identifier %q matched %v, want exactly [NAME]", ident, names)
		}
	}
}

func TestNumberMatchers(t *testing.T) {
	matchers := Load(Default)
	if names := matcherNames(matchers, "123"); len(names) != 1 || names[0] != "DEC_NUMBER" {
		t.Errorf("'123' matched %v, want [DEC_NUMBER]", names)
	}
	if names := matcherNames(matchers, "1.5"); len(names) != 1 || names[0] != "FLOAT_NUMBER" {
		t.Errorf("'1.5' matched %v, want [FLOAT_NUMBER]", names)
	}
}

func TestBooleanLiteralMatcher(t *testing.T) {
	matchers := Load(Default)
	for _, lit := range []string{"true", "false"} {
		if names := matcherNames(matchers, lit); len(names) != 1 || names[0] != "BOOLEAN" {
			t.Errorf("%q matched %v, want [BOOLEAN]", lit, names)
		}
	}
}
