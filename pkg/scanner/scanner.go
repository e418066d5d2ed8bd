// Copyright 2024 The Sprig Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package scanner implements the longest-match disambiguating tokenizer of
// spec §4.2, grounded bit-for-bit in the teacher's source-derived reference
// implementation (original_source/src/interpreter/scanner/scanner.py).
package scanner

import (
	"github.com/mleku/sprig/pkg/diag"
	"github.com/mleku/sprig/pkg/grammar"
	"github.com/mleku/sprig/pkg/token"
)

// maxTokenLen is the fatal token-length ceiling of spec §4.2.
const maxTokenLen = 255

// CharSource is the read-only character stream of spec §6.1: Unicode
// scalars in source order. It is the one collaborator the scanner needs;
// callers adapt a string, a file, or any io.Reader into this shape.
type CharSource interface {
	// Next returns the next rune and true, or (0, false) at end of input.
	Next() (rune, bool)
}

// runeSource adapts an in-memory []rune slice to CharSource. Source
// programs in this interpreter are small enough that loading the whole
// text up front (rather than streaming an io.Reader rune by rune) is the
// simpler, equally-correct choice.
type runeSource struct {
	runes []rune
	pos   int
}

// NewCharSource builds a CharSource over source text.
func NewCharSource(text string) CharSource {
	return &runeSource{runes: []rune(text)}
}

func (s *runeSource) Next() (rune, bool) {
	if s.pos >= len(s.runes) {
		return 0, false
	}
	r := s.runes[s.pos]
	s.pos++
	return r, true
}

// Scanner is the longest-match tokenizer. A Scanner is single-use: create
// one per run via New, then pull tokens with Next until it reports EOF.
type Scanner struct {
	matchers       []grammar.Matcher
	ignoreWS       bool
	ignoreComments bool

	chars CharSource

	endCursor   Cursor
	prevCursor  Cursor
	startCursor Cursor

	curText         string
	lastMatchedText string
	noMoreChars     bool
	pending         *rune // one char pushed back after a token was emitted
}

// Option configures a Scanner.
type Option func(*Scanner)

// KeepWS disables the default filtering of WS tokens.
func KeepWS() Option { return func(s *Scanner) { s.ignoreWS = false } }

// KeepComments disables the default filtering of COMMENT tokens.
func KeepComments() Option { return func(s *Scanner) { s.ignoreComments = false } }

// New builds a Scanner over chars using the matchers built from grammarText.
func New(grammarText string, chars CharSource, opts ...Option) *Scanner {
	s := &Scanner{
		matchers:       grammar.Load(grammarText),
		ignoreWS:       true,
		ignoreComments: true,
		chars:          chars,
		endCursor:      newCursor(),
		prevCursor:     newCursor(),
		startCursor:    newCursor(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Next returns the next token, or (nil, nil) at end of input, or a
// *diag.Error if the input cannot be tokenized (CandidatesNotFound,
// AmbiguousMatch, TokenTooLong — all fatal for the run per spec §4.2).
func (s *Scanner) Next() (*token.Token, error) {
	for {
		tok, err := s.nextRaw()
		if err != nil {
			return nil, err
		}
		if tok == nil {
			return nil, nil
		}
		if s.ignoreComments && tok.Kind == token.COMMENT {
			continue
		}
		if s.ignoreWS && tok.Kind == token.WS {
			continue
		}
		return tok, nil
	}
}

// nextChar returns the next rune, honoring a single pushed-back char.
func (s *Scanner) nextChar() (rune, bool) {
	if s.pending != nil {
		r := *s.pending
		s.pending = nil
		return r, true
	}
	return s.chars.Next()
}

func (s *Scanner) pushBack(r rune) {
	s.pending = &r
}

// nextRaw implements the state machine of spec §4.2 step-for-step: grow
// curText one rune at a time, track the last buffer any matcher accepted
// and the set of matchers that accepted it, and emit as soon as growing the
// buffer further loses every matcher.
func (s *Scanner) nextRaw() (*token.Token, error) {
	if s.noMoreChars && s.curText == "" {
		return nil, nil
	}

	s.startCursor = s.endCursor.Clone()
	var carryCandidates []grammar.Matcher

	for {
		r, ok := s.nextChar()
		if !ok {
			s.noMoreChars = true
			break
		}
		s.prevCursor = s.endCursor.Clone()
		s.endCursor.advance(r)
		s.curText += string(r)

		if len(s.curText) > maxTokenLen {
			return nil, diag.New(diag.TokenTooLong, s.startCursor.Line, s.startCursor.Column+1,
				"current scanned value is too large, couldn't create token for: %s", s.curText)
		}

		now := matching(s.matchers, s.curText)
		if len(now) > 0 {
			s.lastMatchedText = s.curText
			carryCandidates = now
			continue
		}

		// now is empty: the buffer just grew past every matcher.
		if s.lastMatchedText == "" {
			return nil, diag.New(diag.CandidatesNotFound, s.startCursor.Line, s.startCursor.Column+1,
				"couldn't find candidates for: %s", s.curText)
		}

		// Roll back the one rune that broke the match; the cursor for the
		// emitted token is the position right before that rune.
		s.pushBack(r)
		s.endCursor = s.prevCursor.Clone()
		return s.emit(carryCandidates)
	}

	if s.lastMatchedText == "" {
		return nil, nil
	}
	return s.emit(carryCandidates)
}

func (s *Scanner) emit(carryCandidates []grammar.Matcher) (*token.Token, error) {
	if len(carryCandidates) > 1 {
		names := make([]string, len(carryCandidates))
		for i, m := range carryCandidates {
			names[i] = m.Name()
		}
		return nil, diag.New(diag.AmbiguousMatch, s.startCursor.Line, s.startCursor.Column+1,
			"ambiguous match for: %s\ncandidates: %s", s.lastMatchedText, joinNames(names))
	}

	tok := &token.Token{
		Kind:   token.Kind(carryCandidates[0].Name()),
		Text:   s.lastMatchedText,
		Line:   s.startCursor.Line,
		Column: s.startCursor.Column + 1,
	}

	s.curText = ""
	s.lastMatchedText = ""
	s.startCursor = s.endCursor.Clone()
	return tok, nil
}

func matching(matchers []grammar.Matcher, candidate string) []grammar.Matcher {
	var out []grammar.Matcher
	for _, m := range matchers {
		if m.Matches(candidate) {
			out = append(out, m)
		}
	}
	return out
}

func joinNames(names []string) string {
	out := ""
	for i, n := range names {
		if i > 0 {
			out += ", "
		}
		out += n
	}
	return out
}
