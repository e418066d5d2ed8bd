// Copyright 2024 The Sprig Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package token defines the closed terminal set and the Token value the
// scanner produces.
package token

// Kind identifies a terminal in the closed set the grammar reserves
// (spec §6.2). Kind values are stable strings so that grammar-file entries,
// scanner matcher names, and parser comparisons all share one vocabulary.
type Kind string

const (
	NAME          Kind = "NAME"
	DEC_NUMBER    Kind = "DEC_NUMBER"
	FLOAT_NUMBER  Kind = "FLOAT_NUMBER"
	BOOLEAN       Kind = "BOOLEAN"
	STRING        Kind = "STRING"
	NEWLINE       Kind = "NEWLINE"
	WS            Kind = "WS"
	COMMENT       Kind = "COMMENT"
	LEFT_PAREN    Kind = "LEFT_PAREN"
	RIGHT_PAREN   Kind = "RIGHT_PAREN"
	LEFT_CURLY_BR Kind = "LEFT_CURLY_BR"
	RIGHT_CURLY_BR Kind = "RIGHT_CURLY_BR"
	LEFT_SQR_BR   Kind = "LEFT_SQR_BR"
	RIGHT_SQR_BR  Kind = "RIGHT_SQR_BR"
	COMMA         Kind = "COMMA"
	DOT           Kind = "DOT"

	LET   Kind = "LET"
	VAR   Kind = "VAR"
	FOR   Kind = "FOR"
	WHILE Kind = "WHILE"
	IF    Kind = "IF"
	ELIF  Kind = "ELIF"
	ELSE  Kind = "ELSE"
	IN    Kind = "IN"
	RETURN Kind = "RETURN"
	BREAK  Kind = "BREAK"
	OR     Kind = "OR"
	AND    Kind = "AND"

	NEGATION                Kind = "NEGATION"
	ADDITIVE_OPERATOR       Kind = "ADDITIVE_OPERATOR"
	MULTIPLICATIVE_OPERATOR Kind = "MULTIPLICATIVE_OPERATOR"
	COMPARISON_OPERATOR     Kind = "COMPARISON_OPERATOR"
	EQUALITY_OPERATOR       Kind = "EQUALITY_OPERATOR"
	ASSIGNMENT_OPERATOR     Kind = "ASSIGNMENT_OPERATOR"
	ASSIGNMENT_AND_OPERATOR Kind = "ASSIGNMENT_AND_OPERATOR"
)

// Token is an immutable lexical unit with its source position. Column and
// Line are 1-based; the scanner reports its 0-based Cursor column plus one.
type Token struct {
	Kind   Kind
	Text   string
	Line   int
	Column int
}

// String renders the token for diagnostics and debug dumps.
func (t Token) String() string {
	return string(t.Kind) + " " + t.Text
}

// Is reports whether the token is non-nil and of the given kind. A nil
// *Token (end of stream) never matches.
func (t *Token) Is(k Kind) bool {
	return t != nil && t.Kind == k
}
