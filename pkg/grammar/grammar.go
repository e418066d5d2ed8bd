// Copyright 2024 The Sprig Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package grammar loads the terminal-definition file (spec §4.1, §6.2) into
// a set of named Matchers the scanner drives.
package grammar

import (
	"regexp"
	"strings"

	"github.com/mleku/sprig/pkg/token"
)

// Matcher decides whether a growing candidate buffer is a complete instance
// of one terminal. It never looks past the buffer it is given.
type Matcher interface {
	Name() string
	Matches(candidate string) bool
}

// literalMatcher implements the literal-alternation form: "a" | "b" | ... .
type literalMatcher struct {
	name     string
	literals []string
}

func (m *literalMatcher) Name() string { return m.name }

func (m *literalMatcher) Matches(candidate string) bool {
	for _, lit := range m.literals {
		if candidate == lit {
			return true
		}
	}
	return false
}

// regexMatcher implements the /pattern/flags form. Matches require the
// whole candidate to match, not merely a prefix.
type regexMatcher struct {
	name string
	re   *regexp.Regexp
}

func (m *regexMatcher) Name() string { return m.name }

func (m *regexMatcher) Matches(candidate string) bool {
	loc := m.re.FindStringIndex(candidate)
	return loc != nil && loc[0] == 0 && loc[1] == len(candidate)
}

// nameMatcher is regexMatcher plus a reserved-word exclusion. The reference
// grammar expresses "NAME, but not one of the keyword literals" with a
// regex negative-lookahead assertion; Go's RE2 engine does not support
// lookahead at all (regexp/syntax rejects "(?!" outright), so the exclusion
// is done here as a plain map lookup instead, over the keyword literals
// collected from the rest of the same terminal table.
type nameMatcher struct {
	name     string
	re       *regexp.Regexp
	reserved map[string]bool
}

func (m *nameMatcher) Name() string { return m.name }

func (m *nameMatcher) Matches(candidate string) bool {
	if m.reserved[candidate] {
		return false
	}
	loc := m.re.FindStringIndex(candidate)
	return loc != nil && loc[0] == 0 && loc[1] == len(candidate)
}

// stringMatcher is the bit-exact built-in STRING matcher (spec §4.1, §9):
// it accepts any candidate that starts with a double quote and either
// contains exactly one quote (an unclosed string still being accumulated)
// or exactly two quotes with the second one at the very end (a closed
// string). This is not expressible as a regex or alternation because it
// must accept the unclosed prefix while the scanner is still accumulating.
type stringMatcher struct {
	name string
}

func (m *stringMatcher) Name() string { return m.name }

func (m *stringMatcher) Matches(candidate string) bool {
	if !strings.HasPrefix(candidate, `"`) {
		return false
	}
	count := strings.Count(candidate, `"`)
	switch count {
	case 1:
		return true
	case 2:
		return strings.HasSuffix(candidate, `"`)
	default:
		return false
	}
}

// defaultTerminalEntries is the built-in prelude of single-character
// punctuation terminals, always present regardless of the grammar text.
var defaultTerminalEntries = []struct{ name, rhs string }{
	{string(token.LEFT_PAREN), `"("`},
	{string(token.RIGHT_PAREN), `")"`},
	{string(token.LEFT_CURLY_BR), `"{"`},
	{string(token.RIGHT_CURLY_BR), `"}"`},
	{string(token.LEFT_SQR_BR), `"["`},
	{string(token.RIGHT_SQR_BR), `"]"`},
	{string(token.COMMA), `","`},
	{string(token.DOT), `"."`},
}

var entryPattern = regexp.MustCompile(`^([A-Z_]+)\s*:\s*(.+)$`)

// iterEntries yields (name, rhs) pairs: the built-in prelude first, then
// every non-blank "NAME : RHS" line of the grammar text in file order.
func iterEntries(grammarText string) [][2]string {
	entries := make([][2]string, 0, len(defaultTerminalEntries))
	for _, e := range defaultTerminalEntries {
		entries = append(entries, [2]string{e.name, e.rhs})
	}
	for _, line := range strings.Split(grammarText, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		m := entryPattern.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		entries = append(entries, [2]string{m[1], strings.TrimSpace(m[2])})
	}
	return entries
}

func isQuoted(s string) bool {
	return len(s) >= 2 && strings.HasPrefix(s, `"`) && strings.HasSuffix(s, `"`)
}

func unquote(s string) string {
	return s[1 : len(s)-1]
}

// literalsOf returns the quoted literals of an alternation RHS ("a" | "b"),
// or nil for a regex RHS.
func literalsOf(rhs string) []string {
	if strings.HasPrefix(rhs, "/") {
		return nil
	}
	parts := strings.Split(rhs, "|")
	literals := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if isQuoted(part) {
			literals = append(literals, unquote(part))
		}
	}
	return literals
}

// reservedWords collects every literal (keyword or punctuation) entries
// other than NAME itself contribute, for nameMatcher's exclusion.
func reservedWords(entries [][2]string) map[string]bool {
	reserved := make(map[string]bool)
	for _, e := range entries {
		if e[0] == string(token.NAME) {
			continue
		}
		for _, lit := range literalsOf(e[1]) {
			reserved[lit] = true
		}
	}
	return reserved
}

// build constructs the Matcher for a single grammar entry.
func build(name, rhs string, reserved map[string]bool) Matcher {
	if name == string(token.STRING) {
		return &stringMatcher{name: name}
	}

	if strings.HasPrefix(rhs, "/") {
		last := strings.LastIndex(rhs, "/")
		pattern := rhs[1:last]
		flags := rhs[last:]
		if strings.Contains(flags, "i") {
			pattern = "(?i)" + pattern
		}
		re := regexp.MustCompile(pattern)
		if name == string(token.NAME) {
			return &nameMatcher{name: name, re: re, reserved: reserved}
		}
		return &regexMatcher{name: name, re: re}
	}

	return &literalMatcher{name: name, literals: literalsOf(rhs)}
}

// Load builds the ordered list of named matchers from grammar text. No
// other operation is required of this component (spec §4.1).
func Load(grammarText string) []Matcher {
	entries := iterEntries(grammarText)
	reserved := reservedWords(entries)
	matchers := make([]Matcher, 0, len(entries))
	for _, e := range entries {
		matchers = append(matchers, build(e[0], e[1], reserved))
	}
	return matchers
}
