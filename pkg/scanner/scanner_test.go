// Copyright 2024 The Sprig Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scanner

import (
	"strings"
	"testing"

	"github.com/mleku/sprig/pkg/diag"
	"github.com/mleku/sprig/pkg/grammar"
	"github.com/mleku/sprig/pkg/token"
)

func scanAll(t *testing.T, grammarText, source string, opts ...Option) ([]*token.Token, error) {
	t.Helper()
	scan := New(grammarText, NewCharSource(source), opts...)
	var toks []*token.Token
	for {
		tok, err := scan.Next()
		if err != nil {
			return toks, err
		}
		if tok == nil {
			return toks, nil
		}
		toks = append(toks, tok)
	}
}

func TestLongestMatchPrefersKeywordOverPrefix(t *testing.T) {
	toks, err := scanAll(t, grammar.Default, "forever")
	if err != nil {
		t.Fatalf("scanAll error = %v", err)
	}
	if len(toks) != 1 || toks[0].Kind != token.NAME || toks[0].Text != "forever" {
		t.Fatalf("got %v, want a single NAME token 'forever'", toks)
	}
}

func TestLongestMatchGreedyNumber(t *testing.T) {
	toks, err := scanAll(t, grammar.Default, "12345")
	if err != nil {
		t.Fatalf("scanAll error = %v", err)
	}
	if len(toks) != 1 || toks[0].Kind != token.DEC_NUMBER || toks[0].Text != "12345" {
		t.Fatalf("got %v, want a single DEC_NUMBER token '12345'", toks)
	}
}

func TestKeywordsTokenizeAsTheirOwnKind(t *testing.T) {
	cases := map[string]token.Kind{
		"let":   token.LET,
		"var":   token.VAR,
		"for":   token.FOR,
		"while": token.WHILE,
		"if":    token.IF,
		"ret":   token.RETURN,
		"break": token.BREAK,
		"or":    token.OR,
		"and":   token.AND,
		"true":  token.BOOLEAN,
		"false": token.BOOLEAN,
	}
	for src, want := range cases {
		toks, err := scanAll(t, grammar.Default, src)
		if err != nil {
			t.Fatalf("scanAll(%q) error = %v", src, err)
		}
		if len(toks) != 1 || toks[0].Kind != want {
			t.Errorf("scanAll(%q) = %v, want a single %s token", src, toks, want)
		}
	}
}

func TestCompoundOperatorsLongestMatch(t *testing.T) {
	toks, err := scanAll(t, grammar.Default, "+=")
	if err != nil {
		t.Fatalf("scanAll error = %v", err)
	}
	if len(toks) != 1 || toks[0].Kind != token.ASSIGNMENT_AND_OPERATOR || toks[0].Text != "+=" {
		t.Fatalf("got %v, want a single ASSIGNMENT_AND_OPERATOR '+='", toks)
	}
}

func TestCandidatesNotFound(t *testing.T) {
	_, err := scanAll(t, grammar.Default, "$$$")
	var de *diag.Error
	assertDiag(t, err, &de, diag.CandidatesNotFound)
}

func TestTokenTooLong(t *testing.T) {
	_, err := scanAll(t, grammar.Default, strings.Repeat("a", 300))
	var de *diag.Error
	assertDiag(t, err, &de, diag.TokenTooLong)
}

func TestWSAndCommentsFilteredByDefault(t *testing.T) {
	toks, err := scanAll(t, grammar.Default, "a   # a comment\nb")
	if err != nil {
		t.Fatalf("scanAll error = %v", err)
	}
	for _, tok := range toks {
		if tok.Kind == token.WS || tok.Kind == token.COMMENT {
			t.Fatalf("found filtered token kind %s in default-mode output: %v", tok.Kind, toks)
		}
	}
}

func TestKeepWSAndCommentsRetainsThem(t *testing.T) {
	toks, err := scanAll(t, grammar.Default, "a # hi\nb", KeepWS(), KeepComments())
	if err != nil {
		t.Fatalf("scanAll error = %v", err)
	}
	var sawWS, sawComment bool
	for _, tok := range toks {
		if tok.Kind == token.WS {
			sawWS = true
		}
		if tok.Kind == token.COMMENT {
			sawComment = true
		}
	}
	if !sawWS || !sawComment {
		t.Fatalf("expected WS and COMMENT tokens with KeepWS/KeepComments, got %v", toks)
	}
}

// TestTokensConcatenateToSource exercises spec.md §8's universal property:
// tokens(source) is strictly monotone in position, and its concatenation
// (with whitespace and comments re-inserted, i.e. kept rather than
// filtered) equals the source exactly.
func TestTokensConcatenateToSource(t *testing.T) {
	sources := []string{
		`main() None { let a int = 10  test_print(str(a)) }`,
		"sum(a int, b int) int { ret a + b }\nmain() None { test_print(str(sum(sum(1,2),3))) }",
		"# leading comment\nmain() None {\n  var x int = 0\n  while x < 5 { x = x + 1 }\n}\n",
	}
	for _, src := range sources {
		toks, err := scanAll(t, grammar.Default, src, KeepWS(), KeepComments())
		if err != nil {
			t.Fatalf("scanAll(%q) error = %v", src, err)
		}

		var b strings.Builder
		for _, tok := range toks {
			b.WriteString(tok.Text)
		}
		if got := b.String(); got != src {
			t.Errorf("concatenated tokens = %q, want %q", got, src)
		}

		for i := 1; i < len(toks); i++ {
			prev, cur := toks[i-1], toks[i]
			if cur.Line < prev.Line || (cur.Line == prev.Line && cur.Column < prev.Column) {
				t.Errorf("token stream not monotone at index %d: %v then %v", i, prev, cur)
			}
		}
	}
}

func TestAmbiguousMatch(t *testing.T) {
	customGrammar := "FOO : /[a-z]+/\nBAR : /[a-z]+/\n"
	_, err := scanAll(t, customGrammar, "abc")
	var de *diag.Error
	assertDiag(t, err, &de, diag.AmbiguousMatch)
}

func TestStringMatcherAcceptsQuotedText(t *testing.T) {
	toks, err := scanAll(t, grammar.Default, `"hello world"`)
	if err != nil {
		t.Fatalf("scanAll error = %v", err)
	}
	if len(toks) != 1 || toks[0].Kind != token.STRING || toks[0].Text != `"hello world"` {
		t.Fatalf("got %v, want a single STRING token", toks)
	}
}

func assertDiag(t *testing.T, err error, target **diag.Error, want diag.Kind) {
	t.Helper()
	de, ok := err.(*diag.Error)
	if !ok {
		t.Fatalf("error = %v (%T), want *diag.Error", err, err)
	}
	*target = de
	if de.Kind != want {
		t.Errorf("error kind = %s, want %s", de.Kind, want)
	}
}
