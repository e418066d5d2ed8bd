// Copyright 2024 The Sprig Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package diag is the structured diagnostic type every pipeline stage
// raises on failure (spec §7). A single *Error is fatal for the run; there
// is no recovery or continuation, and only the first one is ever reported.
package diag

import "fmt"

// Kind names one of the error classes from spec.md §7. Kind, not a Go type,
// is the unit of error identity: callers switch on Kind, never on the
// concrete error value.
type Kind string

const (
	// Lexical
	CandidatesNotFound Kind = "CandidatesNotFound"
	AmbiguousMatch     Kind = "AmbiguousMatch"
	TokenTooLong       Kind = "TokenTooLong"

	// Syntactic
	UnexpectedToken           Kind = "UnexpectedToken"
	PrimaryExpressionExpected Kind = "PrimaryExpressionExpected"
	MissingTerminator         Kind = "MissingTerminator"

	// Semantic
	DeclarationNotFound  Kind = "DeclarationNotFound"
	InvalidRedeclaration Kind = "InvalidRedeclaration"
	Reassign             Kind = "Reassign"
	TypeMismatch         Kind = "TypeMismatch"

	// Evaluation
	NotCallable           Kind = "NotCallable"
	NotIterable           Kind = "NotIterable"
	IndexOutOfRange       Kind = "IndexOutOfRange"
	DivideByZero          Kind = "DivideByZero"
	ArithmeticTypeMismatch Kind = "ArithmeticTypeMismatch"
	NotImplemented        Kind = "NotImplemented"
)

// Error carries the offending source position alongside the error kind and
// a human-readable message, per spec §7's "every error carries ... line:col
// and a ... message" requirement.
type Error struct {
	Kind    Kind
	Message string
	Line    int
	Column  int
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s (%d:%d)", e.Kind, e.Message, e.Line, e.Column)
}

// New builds a diagnostic at the given position.
func New(kind Kind, line, column int, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Line: line, Column: column}
}
